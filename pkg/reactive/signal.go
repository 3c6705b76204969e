package reactive

import (
	"reflect"
	"sync"
)

// signalBase provides type-erased subscriber management. It is embedded in
// Signal[T] and Memo[T] to share subscription logic. The subscriber
// relation is non-owning: a signal never keeps a disposed effect alive, and
// removal during notification is safe because notification iterates over a
// snapshot.
type signalBase struct {
	id uint64

	// subs are the listeners subscribed to this signal.
	subs []Listener

	// subMu protects the subs slice.
	subMu sync.RWMutex
}

// subscribe adds a listener, deduplicating by listener ID.
func (s *signalBase) subscribe(l Listener) {
	if l == nil {
		return
	}

	s.subMu.Lock()
	defer s.subMu.Unlock()

	lid := l.ID()
	for _, existing := range s.subs {
		if existing.ID() == lid {
			return
		}
	}

	s.subs = append(s.subs, l)
}

// unsubscribe removes a listener from this signal's subscribers.
func (s *signalBase) unsubscribe(l Listener) {
	if l == nil {
		return
	}

	s.subMu.Lock()
	defer s.subMu.Unlock()

	lid := l.ID()
	for i, existing := range s.subs {
		if existing.ID() == lid {
			// Order doesn't matter; swap with the last element.
			s.subs[i] = s.subs[len(s.subs)-1]
			s.subs = s.subs[:len(s.subs)-1]
			return
		}
	}
}

// notifySubscribers queues a snapshot of the current subscribers for
// notification. Outside a batch the queue drains before this returns, so
// dependent effects have run by the time the triggering Set unwinds.
func (s *signalBase) notifySubscribers() {
	s.subMu.RLock()
	subs := make([]Listener, len(s.subs))
	copy(subs, s.subs)
	s.subMu.RUnlock()

	if len(subs) == 0 {
		return
	}
	enqueue(subs)
}

// track subscribes the active listener, if any, and records the reverse
// edge so the listener can drop the subscription on its next run.
func (s *signalBase) track() {
	if listener := currentListener(); listener != nil {
		s.subscribe(listener)
		if st, ok := listener.(sourceTracker); ok {
			st.addSource(s)
		}
	}
}

// Signal is a reactive mutable cell. Reading a Signal's value inside a
// tracking context (memo computation or effect execution) subscribes the
// active listener; writing notifies every current dependent exactly once
// per flush.
//
// A write that sets a signal to a value equal to its current one (under the
// signal's equality function) does not notify. This is the one policy the
// engine fixes rather than leaving per-call-site.
type Signal[T any] struct {
	base signalBase

	// value is the current signal value.
	value T

	// mu protects the value.
	mu sync.RWMutex

	// equal is the equality function used to detect changed values.
	// If nil, uses default equality checking.
	equal func(T, T) bool
}

// NewSignal creates a new signal with the given initial value.
// Signals have no explicit destruction; an unreferenced signal is garbage.
func NewSignal[T any](initial T) *Signal[T] {
	return &Signal[T]{
		base: signalBase{
			id: nextID(),
		},
		value: initial,
	}
}

// Get returns the current value and subscribes the active listener, if one
// is tracking.
func (s *Signal[T]) Get() T {
	s.mu.RLock()
	value := s.value
	s.mu.RUnlock()

	// Track after releasing the value lock to prevent deadlock.
	s.base.track()

	return value
}

// Peek returns the current value without subscribing.
func (s *Signal[T]) Peek() T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.value
}

// Set replaces the value and notifies subscribers if it changed.
func (s *Signal[T]) Set(value T) {
	s.mu.Lock()
	changed := !s.equals(s.value, value)
	if changed {
		s.value = value
	}
	s.mu.Unlock()

	if changed {
		if h := hooks.Load(); h != nil && h.SignalWrite != nil {
			h.SignalWrite()
		}
		s.base.notifySubscribers()
	}
}

// Update applies fn to the current value and stores the result.
func (s *Signal[T]) Update(fn func(T) T) {
	s.mu.Lock()
	oldValue := s.value
	newValue := fn(oldValue)
	changed := !s.equals(oldValue, newValue)
	if changed {
		s.value = newValue
	}
	s.mu.Unlock()

	if changed {
		if h := hooks.Load(); h != nil && h.SignalWrite != nil {
			h.SignalWrite()
		}
		s.base.notifySubscribers()
	}
}

// WithEquals configures a custom equality function, for types where
// reflect.DeepEqual is too expensive or has the wrong semantics.
func (s *Signal[T]) WithEquals(fn func(T, T) bool) *Signal[T] {
	s.equal = fn
	return s
}

// ID returns the unique identifier for this signal.
func (s *Signal[T]) ID() uint64 {
	return s.base.id
}

// Load implements Reader; it is a tracked read, like Get.
func (s *Signal[T]) Load() any {
	return s.Get()
}

func (s *Signal[T]) equals(a, b T) bool {
	if s.equal != nil {
		return s.equal(a, b)
	}
	return defaultEquals(a, b)
}

// defaultEquals provides type-appropriate equality checking: == for the
// common scalar types, reflect.DeepEqual for everything else.
func defaultEquals[T any](a, b T) bool {
	// For an interface-typed signal the two values may hold different
	// dynamic types; interface equality handles that (it is false, not a
	// panic, when the types differ).
	switch any(a).(type) {
	case int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64, string, bool:
		return any(a) == any(b)
	default:
		return reflect.DeepEqual(a, b)
	}
}
