package reactive

import (
	"sync"
	"sync/atomic"
)

// Effect is a side-effecting subscriber. It runs immediately when created
// and re-runs synchronously, in the call stack of the triggering write,
// whenever any signal or memo it read during its last run changes. The
// optional Cleanup returned by the function runs before each re-run and on
// disposal.
type Effect struct {
	id uint64

	// fn is the effect function.
	fn func() Cleanup

	// cleanup is the cleanup function from the last run.
	cleanup Cleanup

	// sources are the signals/memos this effect depends on.
	sources   []*signalBase
	sourcesMu sync.Mutex

	// owner is the Owner that owns this effect, if any.
	owner *Owner

	// disposed indicates the effect has been disposed.
	disposed atomic.Bool
}

// CreateEffect creates and immediately runs a new effect. If an owner scope
// is active the effect is registered on it and disposed with it; the
// returned disposer can also be used directly (the binding layer does).
//
// Example:
//
//	e := CreateEffect(func() Cleanup {
//	    fmt.Println("count is", count.Get())
//	    return nil
//	})
//	defer e.Dispose()
func CreateEffect(fn func() Cleanup) *Effect {
	e := &Effect{
		id: nextID(),
		fn: fn,
	}

	if owner := getCurrentOwner(); owner != nil {
		e.owner = owner
		owner.registerEffect(e)
	}

	e.run()

	return e
}

// MarkDirty re-runs the effect. Implements the Listener interface; the
// flusher calls this once per flush however many of the effect's
// dependencies were written.
func (e *Effect) MarkDirty() {
	e.run()
}

// ID returns the unique identifier for this effect.
func (e *Effect) ID() uint64 {
	return e.id
}

// IsDisposed reports whether Dispose has been called.
func (e *Effect) IsDisposed() bool {
	return e.disposed.Load()
}

// run executes the effect function inside a fresh tracking scope.
// The dependency set is rebuilt from scratch on every run.
func (e *Effect) run() {
	if e.disposed.Load() {
		return
	}

	if h := hooks.Load(); h != nil && h.EffectRun != nil {
		h.EffectRun()
	}

	if e.cleanup != nil {
		e.cleanup()
		e.cleanup = nil
	}

	e.sourcesMu.Lock()
	for _, source := range e.sources {
		source.unsubscribe(e)
	}
	e.sources = e.sources[:0]
	e.sourcesMu.Unlock()

	pushListener(e)
	defer popListener()

	e.cleanup = e.fn()
}

// addSource records a dependency for clearing on the next run.
func (e *Effect) addSource(source *signalBase) {
	e.sourcesMu.Lock()
	defer e.sourcesMu.Unlock()

	for _, s := range e.sources {
		if s == source {
			return
		}
	}
	e.sources = append(e.sources, source)
}

// Dispose runs the pending cleanup, unsubscribes from all sources and
// prevents further runs. Disposing twice is a no-op, as is disposing from
// inside a flush that was about to run this effect.
func (e *Effect) Dispose() {
	if e.disposed.Swap(true) {
		return
	}

	if e.cleanup != nil {
		e.cleanup()
		e.cleanup = nil
	}

	e.sourcesMu.Lock()
	for _, source := range e.sources {
		source.unsubscribe(e)
	}
	e.sources = nil
	e.sourcesMu.Unlock()
}

var _ Listener = (*Effect)(nil)
var _ sourceTracker = (*Effect)(nil)
