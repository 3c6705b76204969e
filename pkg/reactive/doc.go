// Package reactive implements the fine-grained signal graph at the core of
// Filament: signals (mutable reactive cells), memos (lazy, memoized derived
// values), effects (side-effecting subscribers) and batches.
//
// Dependency tracking is automatic. Reading a signal inside a memo
// computation or effect body subscribes the active listener; the dependency
// set is cleared and re-recorded on every run, so conditional reads work.
//
// Propagation is synchronous: a Set outside a batch runs every dependent
// effect before it returns. Inside Batch, notifications are deferred to the
// outermost batch exit and each distinct effect runs exactly once, after
// the entire derived layer has been invalidated — an effect never observes
// a half-updated upstream memo.
//
// There is no scheduler, no priority lanes and no internal goroutine; all
// work happens on the caller's goroutine. Asynchronous producers interact
// with the graph only by calling Set when a result is available.
package reactive
