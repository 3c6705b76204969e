package reactive

import (
	"time"

	mapset "github.com/deckarep/golang-set/v2"
)

// Batch groups multiple signal writes into a single notification phase.
// Effects woken by any number of writes inside fn run exactly once when the
// outermost batch exits. Memo invalidation is not deferred — it propagates
// at write time, so a memo read anywhere, including inside the batch, is
// never stale.
//
// Batches nest; only the outermost exit flushes. A write outside any batch
// behaves as a batch of one.
//
// Example:
//
//	Batch(func() {
//	    firstName.Set("John")
//	    lastName.Set("Doe")
//	})
//	// an effect reading both runs once, not twice
func Batch(fn func()) {
	ctx := getTrackingContext()
	ctx.batchDepth++

	defer func() {
		ctx.batchDepth--
		if ctx.batchDepth == 0 {
			flush(ctx)
		}
	}()

	fn()
}

// enqueue is the single notification entry point for signal writes.
// Derived listeners (memos) are invalidated on the spot, which cascades
// through the whole derived layer; effects queue for the flush. Outside any
// batch or in-progress flush the queue drains before this returns.
func enqueue(subs []Listener) {
	ctx := getTrackingContext()

	// Invalidating a memo re-enters enqueue for its own subscribers; only
	// the outermost call may flush, once the whole cascade has settled.
	ctx.notifyDepth++
	for _, l := range subs {
		if d, ok := l.(derived); ok {
			d.MarkDirty()
			continue
		}
		ctx.pending = append(ctx.pending, l)
	}
	ctx.notifyDepth--

	if ctx.notifyDepth == 0 && ctx.batchDepth == 0 && !ctx.flushing {
		flush(ctx)
	}
}

// flush runs the queued effects. By the time it starts, every memo
// downstream of the triggering writes is already dirty, so an effect pulls
// fully re-derived values — upstream settles before downstream observes.
//
// Within a pass each distinct effect runs once, however many writes touched
// it. Writes performed by a running effect land in pending and feed the
// next pass of the same flush rather than starting a nested one; only a
// graph that never settles trips the pass guard.
func flush(ctx *trackingContext) {
	if ctx.flushing || len(ctx.pending) == 0 {
		return
	}
	ctx.flushing = true
	defer func() { ctx.flushing = false }()

	start := time.Now()
	if h := hooks.Load(); h != nil && h.FlushStart != nil {
		h.FlushStart()
	}

	passes := 0
	for len(ctx.pending) > 0 {
		passes++
		if passes > MaxFlushPasses {
			ctx.pending = nil
			panic(&StormError{Passes: passes})
		}

		batch := ctx.pending
		ctx.pending = nil

		ran := mapset.NewThreadUnsafeSet[uint64]()
		for _, l := range batch {
			if !ran.Add(l.ID()) {
				continue
			}
			l.MarkDirty()
		}
	}

	if h := hooks.Load(); h != nil && h.FlushEnd != nil {
		h.FlushEnd(passes, time.Since(start))
	}
}
