package reactive

import (
	"sync"
	"sync/atomic"
)

// Owner is a structured disposal scope. Effects created while an Owner is
// current are disposed with it, along with child owners and any manually
// registered cleanups. Owners form a tree mirroring whatever structure the
// caller builds (typically a component tree).
//
// Ownership of an effect always belongs to whatever created it; the signals
// an effect reads never own it.
type Owner struct {
	id uint64

	// parent is the parent Owner, nil for a root.
	parent *Owner

	// children are nested scopes.
	children   []*Owner
	childrenMu sync.Mutex

	// effects owned by this scope.
	effects   []*Effect
	effectsMu sync.Mutex

	// cleanups are manual cleanup functions registered via OnCleanup.
	cleanups   []func()
	cleanupsMu sync.Mutex

	// disposed indicates this Owner has been disposed.
	disposed atomic.Bool
}

// NewOwner creates a new Owner under parent. A nil parent creates a root.
func NewOwner(parent *Owner) *Owner {
	o := &Owner{
		id:     nextID(),
		parent: parent,
	}

	if parent != nil {
		parent.addChild(o)
	}

	return o
}

// ID returns the unique identifier for this Owner.
func (o *Owner) ID() uint64 {
	return o.id
}

// Parent returns the parent Owner, or nil for a root.
func (o *Owner) Parent() *Owner {
	return o.parent
}

// IsDisposed reports whether this Owner has been disposed.
func (o *Owner) IsDisposed() bool {
	return o.disposed.Load()
}

func (o *Owner) addChild(child *Owner) {
	o.childrenMu.Lock()
	defer o.childrenMu.Unlock()
	o.children = append(o.children, child)
}

func (o *Owner) removeChild(child *Owner) {
	o.childrenMu.Lock()
	defer o.childrenMu.Unlock()

	for i, c := range o.children {
		if c == child {
			o.children = append(o.children[:i], o.children[i+1:]...)
			return
		}
	}
}

// registerEffect attaches an effect to this scope.
func (o *Owner) registerEffect(e *Effect) {
	if o.disposed.Load() {
		return
	}

	o.effectsMu.Lock()
	defer o.effectsMu.Unlock()
	o.effects = append(o.effects, e)
}

// OnCleanup registers fn to run when this Owner is disposed. Registering on
// an already-disposed Owner runs fn immediately.
func (o *Owner) OnCleanup(fn func()) {
	if o.disposed.Load() {
		fn()
		return
	}

	o.cleanupsMu.Lock()
	defer o.cleanupsMu.Unlock()
	o.cleanups = append(o.cleanups, fn)
}

// Dispose tears down this Owner: children first (in reverse creation
// order), then effects, then cleanups in reverse registration order.
// Disposing twice is a no-op.
func (o *Owner) Dispose() {
	if o.disposed.Swap(true) {
		return
	}

	if o.parent != nil {
		o.parent.removeChild(o)
	}

	o.childrenMu.Lock()
	children := make([]*Owner, len(o.children))
	copy(children, o.children)
	o.children = nil
	o.childrenMu.Unlock()

	for i := len(children) - 1; i >= 0; i-- {
		children[i].Dispose()
	}

	o.effectsMu.Lock()
	effects := o.effects
	o.effects = nil
	o.effectsMu.Unlock()

	for _, e := range effects {
		e.Dispose()
	}

	o.cleanupsMu.Lock()
	cleanups := o.cleanups
	o.cleanups = nil
	o.cleanupsMu.Unlock()

	for i := len(cleanups) - 1; i >= 0; i-- {
		cleanups[i]()
	}
}
