package reactive

import "testing"

func TestSignalBasic(t *testing.T) {
	count := NewSignal(0)

	if count.Get() != 0 {
		t.Errorf("expected initial value 0, got %d", count.Get())
	}

	count.Set(5)
	if count.Get() != 5 {
		t.Errorf("expected value 5, got %d", count.Get())
	}

	count.Update(func(n int) int { return n * 2 })
	if count.Get() != 10 {
		t.Errorf("expected value 10, got %d", count.Get())
	}
}

func TestSignalPeekDoesNotTrack(t *testing.T) {
	count := NewSignal(1)

	runs := 0
	e := CreateEffect(func() Cleanup {
		runs++
		_ = count.Peek()
		return nil
	})
	defer e.Dispose()

	count.Set(2)
	if runs != 1 {
		t.Errorf("expected 1 run after Peek-only effect, got %d", runs)
	}
}

func TestSignalEqualWriteDoesNotNotify(t *testing.T) {
	count := NewSignal(3)

	runs := 0
	e := CreateEffect(func() Cleanup {
		runs++
		_ = count.Get()
		return nil
	})
	defer e.Dispose()

	count.Set(3)
	if runs != 1 {
		t.Errorf("equal write notified: expected 1 run, got %d", runs)
	}

	count.Set(4)
	if runs != 2 {
		t.Errorf("expected 2 runs after change, got %d", runs)
	}
}

func TestSignalCustomEquals(t *testing.T) {
	// Treat all even values as equal to each other.
	s := NewSignal(2).WithEquals(func(a, b int) bool {
		return a%2 == b%2
	})

	runs := 0
	e := CreateEffect(func() Cleanup {
		runs++
		_ = s.Get()
		return nil
	})
	defer e.Dispose()

	s.Set(4)
	if runs != 1 {
		t.Errorf("expected custom equals to suppress notify, got %d runs", runs)
	}

	s.Set(5)
	if runs != 2 {
		t.Errorf("expected notify on parity change, got %d runs", runs)
	}
}

func TestSignalUpdateNoChange(t *testing.T) {
	s := NewSignal("a")

	runs := 0
	e := CreateEffect(func() Cleanup {
		runs++
		_ = s.Get()
		return nil
	})
	defer e.Dispose()

	s.Update(func(v string) string { return v })
	if runs != 1 {
		t.Errorf("identity Update notified: expected 1 run, got %d", runs)
	}
}

func TestUntracked(t *testing.T) {
	a := NewSignal(1)
	b := NewSignal(10)

	runs := 0
	e := CreateEffect(func() Cleanup {
		runs++
		_ = a.Get()
		Untracked(func() {
			_ = b.Get()
		})
		return nil
	})
	defer e.Dispose()

	b.Set(20)
	if runs != 1 {
		t.Errorf("untracked read created a dependency: got %d runs", runs)
	}

	a.Set(2)
	if runs != 2 {
		t.Errorf("expected 2 runs after tracked write, got %d", runs)
	}
}

func TestWriteWithNoSubscribersIsLegal(t *testing.T) {
	s := NewSignal(0)

	e := CreateEffect(func() Cleanup {
		_ = s.Get()
		return nil
	})
	e.Dispose()

	// Writes are always legal, even when every subscriber is gone.
	s.Set(99)
	if s.Peek() != 99 {
		t.Errorf("expected 99, got %d", s.Peek())
	}
}

func TestInterfaceSignalMixedTypes(t *testing.T) {
	s := NewSignal[any]("hello")

	runs := 0
	e := CreateEffect(func() Cleanup {
		_ = s.Get()
		runs++
		return nil
	})
	defer e.Dispose()

	// The old and new values hold different dynamic types; the write must
	// compare as unequal and notify, never panic.
	s.Set(nil)
	if runs != 2 {
		t.Fatalf("expected 2 runs after nil write, got %d", runs)
	}
	if s.Peek() != nil {
		t.Errorf("expected nil, got %v", s.Peek())
	}

	s.Set(42)
	if runs != 3 {
		t.Errorf("expected 3 runs after typed write, got %d", runs)
	}
}
