package reactive

import "testing"

func TestBatchCoalescesNotification(t *testing.T) {
	a := NewSignal(0)
	b := NewSignal(0)

	runs := 0
	e := CreateEffect(func() Cleanup {
		runs++
		_ = a.Get()
		_ = b.Get()
		return nil
	})
	defer e.Dispose()

	Batch(func() {
		a.Set(1)
		b.Set(2)

		// Nothing has flushed yet.
		if runs != 1 {
			t.Errorf("effect ran inside batch: %d runs", runs)
		}
	})

	if runs != 2 {
		t.Errorf("expected exactly one post-batch run, got %d total", runs)
	}
}

func TestBatchManyWritesOneRun(t *testing.T) {
	a := NewSignal(0)

	runs := 0
	e := CreateEffect(func() Cleanup {
		runs++
		_ = a.Get()
		return nil
	})
	defer e.Dispose()

	Batch(func() {
		for i := 1; i <= 100; i++ {
			a.Set(i)
		}
	})

	if runs != 2 {
		t.Errorf("expected 1 post-batch run, got %d total", runs)
	}
	if a.Peek() != 100 {
		t.Errorf("expected final value 100, got %d", a.Peek())
	}
}

func TestNestedBatchesFlattenToOutermost(t *testing.T) {
	a := NewSignal(0)
	b := NewSignal(0)

	runs := 0
	e := CreateEffect(func() Cleanup {
		runs++
		_ = a.Get()
		_ = b.Get()
		return nil
	})
	defer e.Dispose()

	Batch(func() {
		a.Set(1)
		Batch(func() {
			b.Set(2)
		})
		// Inner batch exit must not flush.
		if runs != 1 {
			t.Errorf("inner batch flushed: %d runs", runs)
		}
	})

	if runs != 2 {
		t.Errorf("expected single flush at outermost exit, got %d total", runs)
	}
}

func TestGlitchFreeOrdering(t *testing.T) {
	a := NewSignal(1)
	b := NewMemo(func() int { return a.Get() * 2 })
	c := NewMemo(func() int { return a.Get() + b.Get() })

	if got := c.Get(); got != 3 {
		t.Fatalf("expected 3, got %d", got)
	}

	a.Set(5)
	// First read after the write: never a transient old-b state.
	if got := c.Get(); got != 15 {
		t.Errorf("glitch: expected 15 on first read, got %d", got)
	}
}

func TestGlitchFreeEffectOverDiamond(t *testing.T) {
	a := NewSignal(1)
	b := NewMemo(func() int { return a.Get() * 2 })

	var seen []int
	e := CreateEffect(func() Cleanup {
		seen = append(seen, a.Get()+b.Get())
		return nil
	})
	defer e.Dispose()

	a.Set(5)

	// One run per write, and the run saw both halves of the diamond fresh.
	if len(seen) != 2 {
		t.Fatalf("expected 2 observations, got %v", seen)
	}
	if seen[1] != 15 {
		t.Errorf("effect observed half-updated state: got %d, want 15", seen[1])
	}
}

func TestMemoFreshInsideBatch(t *testing.T) {
	a := NewSignal(1)
	b := NewMemo(func() int { return a.Get() * 2 })

	if got := b.Get(); got != 2 {
		t.Fatalf("expected 2, got %d", got)
	}

	Batch(func() {
		a.Set(10)
		// Invalidation is not deferred: a memo read is never stale, even
		// before the batch has flushed.
		if got := b.Get(); got != 20 {
			t.Errorf("stale memo read inside batch: got %d, want 20", got)
		}
	})
}

func TestWriteDuringFlushCoalesces(t *testing.T) {
	a := NewSignal(0)
	b := NewSignal(0)

	bRuns := 0
	eb := CreateEffect(func() Cleanup {
		bRuns++
		_ = b.Get()
		return nil
	})
	defer eb.Dispose()

	ea := CreateEffect(func() Cleanup {
		if a.Get() > 0 {
			// Written mid-flush; eb must still run exactly once more.
			b.Set(a.Peek())
		}
		return nil
	})
	defer ea.Dispose()

	a.Set(7)

	if bRuns != 2 {
		t.Errorf("expected downstream effect to run once more, got %d total", bRuns)
	}
	if b.Peek() != 7 {
		t.Errorf("expected propagated value 7, got %d", b.Peek())
	}
}

func TestStormDetection(t *testing.T) {
	a := NewSignal(0)
	b := NewSignal(0)

	// Two effects that keep re-dirtying each other never converge.
	ea := CreateEffect(func() Cleanup {
		b.Set(a.Get() + 1)
		return nil
	})
	defer ea.Dispose()

	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected storm panic")
		}
		if _, ok := r.(*StormError); !ok {
			t.Fatalf("expected *StormError, got %T: %v", r, r)
		}
	}()

	eb := CreateEffect(func() Cleanup {
		a.Set(b.Get() + 1)
		return nil
	})
	defer eb.Dispose()

	a.Set(1)
	t.Fatal("unreachable: storm was not detected")
}
