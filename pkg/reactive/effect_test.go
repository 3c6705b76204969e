package reactive

import "testing"

func TestEffectRunsImmediately(t *testing.T) {
	runs := 0
	e := CreateEffect(func() Cleanup {
		runs++
		return nil
	})
	defer e.Dispose()

	if runs != 1 {
		t.Errorf("expected immediate run, got %d", runs)
	}
}

func TestEffectRerunsSynchronously(t *testing.T) {
	count := NewSignal(0)

	var seen []int
	e := CreateEffect(func() Cleanup {
		seen = append(seen, count.Get())
		return nil
	})
	defer e.Dispose()

	count.Set(1)
	// The re-run happened inside Set, not on some later tick.
	if len(seen) != 2 || seen[1] != 1 {
		t.Errorf("expected synchronous re-run with value 1, got %v", seen)
	}
}

func TestEffectCleanupOrdering(t *testing.T) {
	count := NewSignal(0)

	var events []string
	e := CreateEffect(func() Cleanup {
		v := count.Get()
		events = append(events, "run")
		return func() {
			events = append(events, "cleanup")
			_ = v
		}
	})

	count.Set(1)
	e.Dispose()

	want := []string{"run", "cleanup", "run", "cleanup"}
	if len(events) != len(want) {
		t.Fatalf("expected %v, got %v", want, events)
	}
	for i := range want {
		if events[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, events)
		}
	}
}

func TestEffectDisposeStopsUpdates(t *testing.T) {
	count := NewSignal(0)

	runs := 0
	e := CreateEffect(func() Cleanup {
		runs++
		_ = count.Get()
		return nil
	})

	e.Dispose()
	count.Set(42)

	if runs != 1 {
		t.Errorf("disposed effect re-ran: %d runs", runs)
	}
}

func TestEffectDisposeIdempotent(t *testing.T) {
	e := CreateEffect(func() Cleanup { return nil })
	e.Dispose()
	e.Dispose() // must be a safe no-op

	if !e.IsDisposed() {
		t.Error("expected disposed effect")
	}
}

func TestEffectDynamicDependencies(t *testing.T) {
	cond := NewSignal(true)
	a := NewSignal("a")
	b := NewSignal("b")

	runs := 0
	e := CreateEffect(func() Cleanup {
		runs++
		if cond.Get() {
			_ = a.Get()
		} else {
			_ = b.Get()
		}
		return nil
	})
	defer e.Dispose()

	b.Set("b2")
	if runs != 1 {
		t.Errorf("unread branch triggered effect: %d runs", runs)
	}

	cond.Set(false)
	if runs != 2 {
		t.Fatalf("expected run on cond change, got %d", runs)
	}

	// a was dropped from the dependency set on the last run.
	a.Set("a2")
	if runs != 2 {
		t.Errorf("dropped dependency triggered effect: %d runs", runs)
	}

	b.Set("b3")
	if runs != 3 {
		t.Errorf("expected run on b change, got %d", runs)
	}
}

func TestEffectDisposingSiblingDuringFlush(t *testing.T) {
	trigger := NewSignal(0)

	var second *Effect
	secondRuns := 0

	first := CreateEffect(func() Cleanup {
		if trigger.Get() > 0 && second != nil {
			second.Dispose()
		}
		return nil
	})
	defer first.Dispose()

	second = CreateEffect(func() Cleanup {
		secondRuns++
		_ = trigger.Get()
		return nil
	})

	// The flush iterates a stable snapshot; disposing a sibling mid-flush
	// must not crash, and the disposed effect must not run afterwards.
	trigger.Set(1)
	trigger.Set(2)

	if secondRuns > 2 {
		t.Errorf("disposed sibling kept running: %d runs", secondRuns)
	}
}

func TestEffectSelfWriteCoalesces(t *testing.T) {
	count := NewSignal(0)

	runs := 0
	e := CreateEffect(func() Cleanup {
		runs++
		if count.Get() < 1 {
			count.Set(1)
		}
		return nil
	})
	defer e.Dispose()

	// The write from inside the effect coalesced into the in-progress
	// flush; no unbounded re-entry.
	if count.Peek() != 1 {
		t.Errorf("expected settled value 1, got %d", count.Peek())
	}
	if runs > 2 {
		t.Errorf("self-write re-entered unboundedly: %d runs", runs)
	}
}

func TestOwnerDisposesEffects(t *testing.T) {
	count := NewSignal(0)
	owner := NewOwner(nil)

	runs := 0
	WithOwner(owner, func() {
		CreateEffect(func() Cleanup {
			runs++
			_ = count.Get()
			return nil
		})
	})

	count.Set(1)
	if runs != 2 {
		t.Fatalf("expected 2 runs, got %d", runs)
	}

	owner.Dispose()
	count.Set(2)
	if runs != 2 {
		t.Errorf("owned effect survived disposal: %d runs", runs)
	}
}

func TestOwnerCleanupOrder(t *testing.T) {
	owner := NewOwner(nil)
	child := NewOwner(owner)

	var order []string
	owner.OnCleanup(func() { order = append(order, "parent-1") })
	owner.OnCleanup(func() { order = append(order, "parent-2") })
	child.OnCleanup(func() { order = append(order, "child") })

	owner.Dispose()

	// Children first, then cleanups in reverse registration order.
	want := []string{"child", "parent-2", "parent-1"}
	for i := range want {
		if i >= len(order) || order[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, order)
		}
	}

	// Disposing again is a no-op; OnCleanup after disposal runs immediately.
	owner.Dispose()
	ran := false
	owner.OnCleanup(func() { ran = true })
	if !ran {
		t.Error("OnCleanup after disposal did not run immediately")
	}
}
