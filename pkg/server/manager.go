package server

import (
	"errors"
	"sync"
)

// ErrTooManySessions is returned when the session cap is reached.
var ErrTooManySessions = errors.New("server: session limit reached")

// SessionManager tracks live sessions by ID.
type SessionManager struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	max      int
}

// NewSessionManager creates a manager. max of zero means unlimited.
func NewSessionManager(max int) *SessionManager {
	return &SessionManager{
		sessions: make(map[string]*Session),
		max:      max,
	}
}

// Add registers a session, enforcing the cap.
func (m *SessionManager) Add(s *Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.max > 0 && len(m.sessions) >= m.max {
		return ErrTooManySessions
	}
	m.sessions[s.ID] = s
	return nil
}

// Get returns the session with the given ID, or nil.
func (m *SessionManager) Get(id string) *Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.sessions[id]
}

// Remove drops a session from the registry. It does not close it.
func (m *SessionManager) Remove(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
}

// Count returns the number of live sessions.
func (m *SessionManager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// CloseAll closes every session, used during shutdown.
func (m *SessionManager) CloseAll() {
	m.mu.Lock()
	all := make([]*Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		all = append(all, s)
	}
	m.sessions = make(map[string]*Session)
	m.mu.Unlock()

	for _, s := range all {
		s.Close()
	}
}
