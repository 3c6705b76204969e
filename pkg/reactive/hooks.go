package reactive

import (
	"sync/atomic"
	"time"
)

// Hooks receives low-level runtime events. All fields are optional; the
// runtime treats a nil hook set and nil fields as no-ops, so uninstrumented
// programs pay one atomic load per event. The instrument package wires
// these to Prometheus counters and OpenTelemetry spans.
type Hooks struct {
	// SignalWrite fires for every write that actually changed a value.
	SignalWrite func()

	// EffectRun fires for every effect execution, including the first.
	EffectRun func()

	// FlushStart fires when a notification flush begins.
	FlushStart func()

	// FlushEnd fires when a flush completes, with the number of passes it
	// took to converge and its wall duration.
	FlushEnd func(passes int, d time.Duration)
}

var hooks atomic.Pointer[Hooks]

// SetHooks installs h as the process-wide hook set. Pass nil to remove
// instrumentation. Safe to call at any time.
func SetHooks(h *Hooks) {
	hooks.Store(h)
}
