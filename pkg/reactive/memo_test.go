package reactive

import "testing"

func TestMemoLazy(t *testing.T) {
	a := NewSignal(1)

	computes := 0
	double := NewMemo(func() int {
		computes++
		return a.Get() * 2
	})

	if computes != 0 {
		t.Fatalf("memo computed eagerly: %d computes", computes)
	}

	if got := double.Get(); got != 2 {
		t.Errorf("expected 2, got %d", got)
	}
	if computes != 1 {
		t.Errorf("expected 1 compute, got %d", computes)
	}

	// Repeated reads hit the cache.
	_ = double.Get()
	_ = double.Get()
	if computes != 1 {
		t.Errorf("cached read recomputed: %d computes", computes)
	}
}

func TestMemoDirtyOnDependencyWrite(t *testing.T) {
	a := NewSignal(1)
	b := NewSignal(100)

	computes := 0
	double := NewMemo(func() int {
		computes++
		return a.Get() * 2
	})
	_ = double.Get()

	// Writing an unrelated signal never dirties the memo.
	b.Set(200)
	_ = double.Get()
	if computes != 1 {
		t.Errorf("unrelated write dirtied memo: %d computes", computes)
	}

	a.Set(5)
	if got := double.Get(); got != 10 {
		t.Errorf("expected 10, got %d", got)
	}
	if computes != 2 {
		t.Errorf("expected 2 computes, got %d", computes)
	}
}

func TestMemoDynamicDependencies(t *testing.T) {
	useFirst := NewSignal(true)
	first := NewSignal("a")
	second := NewSignal("x")

	computes := 0
	pick := NewMemo(func() string {
		computes++
		if useFirst.Get() {
			return first.Get()
		}
		return second.Get()
	})

	if got := pick.Get(); got != "a" {
		t.Fatalf("expected a, got %s", got)
	}

	// While useFirst is true, second is not a dependency.
	second.Set("y")
	_ = pick.Get()
	if computes != 1 {
		t.Errorf("write to unread branch recomputed memo: %d computes", computes)
	}

	useFirst.Set(false)
	if got := pick.Get(); got != "y" {
		t.Errorf("expected y, got %s", got)
	}

	// After the switch, first is no longer a dependency.
	computes = 0
	first.Set("b")
	_ = pick.Get()
	if computes != 0 {
		t.Errorf("write to dropped dependency recomputed memo: %d computes", computes)
	}
}

func TestMemoChain(t *testing.T) {
	a := NewSignal(2)
	b := NewMemo(func() int { return a.Get() * 2 })
	c := NewMemo(func() int { return b.Get() + 1 })

	if got := c.Get(); got != 5 {
		t.Fatalf("expected 5, got %d", got)
	}

	a.Set(10)
	if got := c.Get(); got != 21 {
		t.Errorf("expected 21, got %d", got)
	}
}

func TestMemoCyclePanics(t *testing.T) {
	var m *Memo[int]
	m = NewMemo(func() int {
		return m.Get() + 1
	})

	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected panic on cyclic memo")
		}
		if _, ok := r.(*CycleError); !ok {
			t.Fatalf("expected *CycleError, got %T: %v", r, r)
		}
	}()
	_ = m.Get()
}

func TestMemoPanicLeavesPriorValue(t *testing.T) {
	a := NewSignal(1)
	boom := NewSignal(false)

	m := NewMemo(func() int {
		if boom.Get() {
			panic("computation failed")
		}
		return a.Get() * 10
	})

	if got := m.Get(); got != 10 {
		t.Fatalf("expected 10, got %d", got)
	}

	boom.Set(true)
	func() {
		defer func() {
			if recover() == nil {
				t.Error("expected panic to propagate to the reader")
			}
		}()
		_ = m.Get()
	}()

	// The graph is not poisoned: fix the dependency and read again.
	boom.Set(false)
	a.Set(3)
	if got := m.Get(); got != 30 {
		t.Errorf("expected 30 after recovery, got %d", got)
	}
}

func TestMemoPeekRecomputesWithoutTracking(t *testing.T) {
	a := NewSignal(4)
	m := NewMemo(func() int { return a.Get() + 1 })

	runs := 0
	e := CreateEffect(func() Cleanup {
		runs++
		_ = m.Peek()
		return nil
	})
	defer e.Dispose()

	if got := m.Peek(); got != 5 {
		t.Errorf("expected 5, got %d", got)
	}

	a.Set(10)
	if runs != 1 {
		t.Errorf("Peek created a dependency: %d runs", runs)
	}
	if got := m.Peek(); got != 11 {
		t.Errorf("Peek served stale value %d", got)
	}
}
