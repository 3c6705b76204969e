package reactive

import "sync"

// Memo is a cached computation that automatically tracks its dependencies.
// Memos are lazy: a dependency write only marks them dirty, and the next
// Get recomputes. A read never observes a stale value. Memos can be
// subscribed to like signals, forming chains of derived values; the
// resulting graph must stay acyclic, and a computation that re-enters
// itself panics with *CycleError.
type Memo[T any] struct {
	base signalBase

	// compute is the function that derives the memo's value.
	compute func() T

	// value is the cached value; valid says whether it is current.
	value T
	valid bool
	mu    sync.RWMutex

	// sources are the signals/memos read during the last computation.
	sources   []*signalBase
	sourcesMu sync.Mutex

	// computing guards against re-entrant evaluation.
	computing bool
}

// NewMemo creates a new memo. The computation does not run until the first
// Get or Peek.
func NewMemo[T any](compute func() T) *Memo[T] {
	return &Memo[T]{
		base: signalBase{
			id: nextID(),
		},
		compute: compute,
	}
}

// Get returns the memo's value, recomputing first if a dependency changed
// since the last computation, and subscribes the active listener.
func (m *Memo[T]) Get() T {
	m.base.track()

	m.mu.RLock()
	valid := m.valid
	value := m.value
	m.mu.RUnlock()

	if valid {
		return value
	}
	return m.recompute()
}

// Peek returns the memo's value without subscribing. It still recomputes if
// the cached value is dirty; a memo is never read stale.
func (m *Memo[T]) Peek() T {
	m.mu.RLock()
	valid := m.valid
	value := m.value
	m.mu.RUnlock()

	if valid {
		return value
	}

	pushListener(nil)
	defer popListener()
	return m.recompute()
}

// Load implements Reader; it is a tracked read, like Get.
func (m *Memo[T]) Load() any {
	return m.Get()
}

// MarkDirty invalidates the cached value and propagates to subscribers.
// Invalidation is idempotent: only the valid-to-dirty transition notifies,
// which is what terminates propagation across any shape of graph.
func (m *Memo[T]) MarkDirty() {
	m.mu.Lock()
	wasValid := m.valid
	m.valid = false
	m.mu.Unlock()

	if wasValid {
		m.base.notifySubscribers()
	}
}

// ID returns the unique identifier for this memo.
func (m *Memo[T]) ID() uint64 {
	return m.base.id
}

// isDerived marks Memo as invalidate-only for the flusher.
func (m *Memo[T]) isDerived() {}

// addSource records a dependency for clearing on the next recomputation.
func (m *Memo[T]) addSource(source *signalBase) {
	m.sourcesMu.Lock()
	defer m.sourcesMu.Unlock()

	for _, s := range m.sources {
		if s == source {
			return
		}
	}
	m.sources = append(m.sources, source)
}

// recompute runs the computation inside a fresh tracking scope and caches
// the result. If the computation panics, the previous cached value is left
// untouched and the memo stays dirty; the next read retries.
func (m *Memo[T]) recompute() T {
	if m.computing {
		panic(&CycleError{MemoID: m.base.id})
	}
	m.computing = true
	defer func() { m.computing = false }()

	// Drop the old dependency set; the computation re-registers what it
	// actually reads this time.
	m.sourcesMu.Lock()
	for _, source := range m.sources {
		source.unsubscribe(m)
	}
	m.sources = m.sources[:0]
	m.sourcesMu.Unlock()

	pushListener(m)
	defer popListener()

	newValue := m.compute()

	m.mu.Lock()
	m.value = newValue
	m.valid = true
	m.mu.Unlock()

	return newValue
}

var _ derived = (*Memo[int])(nil)
var _ sourceTracker = (*Memo[int])(nil)
var _ Reader = (*Memo[int])(nil)
