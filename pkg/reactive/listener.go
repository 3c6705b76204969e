package reactive

// Listener is anything that can be notified when a dependency changes.
// Memos and effects implement it; so does anything external that wants to
// observe a signal directly.
type Listener interface {
	// MarkDirty notifies the listener that one of its dependencies changed.
	// For memos this invalidates the cached value. For effects this re-runs
	// the effect synchronously.
	MarkDirty()

	// ID returns a unique identifier for this listener.
	// Used for deduplication during flush processing.
	ID() uint64
}

// derived is implemented by listeners whose MarkDirty only invalidates
// cached state (memos). Derived listeners are invalidated at write time,
// before any effect runs, so neither an effect nor a read inside a batch
// ever observes a half-updated upstream value.
type derived interface {
	Listener
	isDerived()
}

// sourceTracker is implemented by listeners that record which signals they
// read, so the subscriptions can be dropped and re-established on the next
// run. Dependency sets are rebuilt from scratch on every run; a conditional
// read pattern can change them run-to-run.
type sourceTracker interface {
	addSource(source *signalBase)
}

// Cleanup is a function returned by effects to release resources.
// It is called before the effect re-runs and when the effect is disposed.
type Cleanup func()

// Reader is the type-erased read surface of a signal or memo. The binding
// layer uses it to detect reactive prop values: reading through Load inside
// a tracking context subscribes the active listener exactly like Get.
type Reader interface {
	Load() any
}
