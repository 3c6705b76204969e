package reactive

import (
	"runtime"
	"sync"
)

// trackingContext holds the reactive state for one goroutine. All reads,
// writes and effect re-runs execute synchronously on the caller's
// goroutine; the context is what makes nested and re-entrant evaluations
// compose.
type trackingContext struct {
	// listeners is the stack of active tracking scopes. The top entry is
	// subscribed by every signal read. A nil entry suppresses tracking
	// (Untracked pushes nil rather than popping, so nesting stays balanced).
	listeners []Listener

	// currentOwner is the Owner that newly created effects attach to.
	currentOwner *Owner

	// batchDepth tracks nested Batch() calls. When > 0, notifications queue
	// instead of flushing immediately.
	batchDepth int

	// pending accumulates listeners to notify when the outermost batch (or
	// the implicit batch around a bare Set) completes.
	pending []Listener

	// notifyDepth tracks re-entrant notification while a memo invalidation
	// cascade is in progress; only the outermost notification may flush.
	notifyDepth int

	// flushing is true while a flush is draining pending. Writes performed
	// by a running effect land in pending and are picked up by the
	// in-progress flush instead of starting a nested one.
	flushing bool
}

// trackingContexts stores per-goroutine tracking contexts.
var trackingContexts sync.Map

// getGoroutineID extracts the current goroutine's ID from the runtime
// stack header ("goroutine <id> ..."). Implementation detail; never exposed.
func getGoroutineID() uint64 {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)

	var id uint64
	for i := 10; i < n; i++ { // skip "goroutine "
		if buf[i] == ' ' {
			break
		}
		id = id*10 + uint64(buf[i]-'0')
	}
	return id
}

// getTrackingContext returns the tracking context for the current
// goroutine, creating one if needed.
func getTrackingContext() *trackingContext {
	gid := getGoroutineID()

	if ctx, ok := trackingContexts.Load(gid); ok {
		return ctx.(*trackingContext)
	}

	ctx := &trackingContext{}
	trackingContexts.Store(gid, ctx)
	return ctx
}

// currentListener returns the top of the listener stack, or nil when no
// tracking scope is active.
func currentListener() Listener {
	ctx := getTrackingContext()
	if len(ctx.listeners) == 0 {
		return nil
	}
	return ctx.listeners[len(ctx.listeners)-1]
}

// pushListener enters a tracking scope. Every pushListener must be paired
// with popListener, normally via defer so a panicking computation unwinds
// the stack correctly.
func pushListener(l Listener) {
	ctx := getTrackingContext()
	ctx.listeners = append(ctx.listeners, l)
}

// popListener leaves the innermost tracking scope.
func popListener() {
	ctx := getTrackingContext()
	if n := len(ctx.listeners); n > 0 {
		ctx.listeners = ctx.listeners[:n-1]
	}
}

// getCurrentOwner returns the owner new effects attach to, or nil.
func getCurrentOwner() *Owner {
	return getTrackingContext().currentOwner
}

// setCurrentOwner swaps the current owner, returning the previous one.
func setCurrentOwner(o *Owner) *Owner {
	ctx := getTrackingContext()
	old := ctx.currentOwner
	ctx.currentOwner = o
	return old
}

// WithOwner runs fn with owner as the current owner. Effects created inside
// fn are registered on (and disposed with) that owner. This is also how a
// spawned goroutine adopts a component's scope.
func WithOwner(owner *Owner, fn func()) {
	old := setCurrentOwner(owner)
	defer setCurrentOwner(old)
	fn()
}

// Untracked runs fn without tracking signal reads as dependencies.
// For a single read, Peek is the clearer choice.
func Untracked(fn func()) {
	pushListener(nil)
	defer popListener()
	fn()
}
