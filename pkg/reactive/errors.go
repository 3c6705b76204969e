package reactive

import "fmt"

// MaxFlushPasses bounds the number of passes a single flush may take before
// the runtime concludes the graph is re-dirtying itself without converging.
// Each pass covers one wave of invalidation plus the effects it woke; deep
// memo chains consume one pass per level, so the bound is generous.
const MaxFlushPasses = 1000

// CycleError reports a dependency cycle: a memo whose computation, directly
// or transitively, read the memo itself while it was still being derived.
// Cycles are a programmer error; the runtime panics with a *CycleError
// rather than looping or serving a stale value.
type CycleError struct {
	// MemoID identifies the memo that was re-entered.
	MemoID uint64
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("reactive: dependency cycle: memo %d read during its own computation", e.MemoID)
}

// StormError reports a flush that failed to converge within MaxFlushPasses.
// This happens when effects keep writing signals that wake further effects
// without ever settling.
type StormError struct {
	Passes int
}

func (e *StormError) Error() string {
	return fmt.Sprintf("reactive: flush did not converge after %d passes", e.Passes)
}
