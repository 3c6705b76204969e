package demo

import (
	"strings"
	"testing"
	"time"

	"github.com/filament-ui/filament/pkg/bind"
	"github.com/filament-ui/filament/pkg/host"
	"github.com/filament-ui/filament/pkg/reactive"
	"github.com/filament-ui/filament/pkg/vnode"
)

func mountApp(t *testing.T, n *vnode.VNode) (*host.MemNode, *reactive.Owner) {
	t.Helper()
	a := host.NewMemAdapter()
	container := a.NewContainer()

	owner := reactive.NewOwner(nil)
	var mountErr error
	reactive.WithOwner(owner, func() {
		_, mountErr = bind.Mount(n, a, container)
	})
	if mountErr != nil {
		t.Fatalf("Mount: %v", mountErr)
	}
	return container, owner
}

func TestCounterIncrements(t *testing.T) {
	node := vnode.NewComponent(Counter{Start: 10}, nil)
	container, owner := mountApp(t, node)
	defer owner.Dispose()

	html := container.Children[0].OuterHTML()
	if !strings.Contains(html, ">10<") {
		t.Fatalf("initial render missing count: %s", html)
	}
	if !strings.Contains(html, `class="even"`) {
		t.Errorf("10 should be even: %s", html)
	}

	root := container.Children[0]
	plus := root.Children[1]
	plus.Dispatch(host.Event{Type: "click"})

	html = container.Children[0].OuterHTML()
	if !strings.Contains(html, ">11<") {
		t.Errorf("count did not advance: %s", html)
	}
	if !strings.Contains(html, `class="odd"`) {
		t.Errorf("11 should be odd: %s", html)
	}

	minus := root.Children[2]
	minus.Dispatch(host.Event{Type: "click"})
	if html := container.Children[0].OuterHTML(); !strings.Contains(html, ">10<") {
		t.Errorf("count did not decrement: %s", html)
	}
}

func TestClockTicksAndStops(t *testing.T) {
	a := host.NewMemAdapter()
	container := a.NewContainer()

	node := vnode.NewComponent(Clock{Interval: 10 * time.Millisecond}, nil)
	owner := reactive.NewOwner(nil)
	var mountErr error
	reactive.WithOwner(owner, func() {
		_, mountErr = bind.Mount(node, a, container)
	})
	if mountErr != nil {
		t.Fatalf("Mount: %v", mountErr)
	}

	if container.Children[0].TextContent() == "" {
		t.Fatal("clock rendered empty")
	}

	// Dispose stops the ticker goroutine via the effect cleanup.
	bind.Unmount(node, a)
	owner.Dispose()
	time.Sleep(30 * time.Millisecond)
}

func TestAppComposition(t *testing.T) {
	node := vnode.NewComponent(App{Title: "Demo"}, nil)
	container, owner := mountApp(t, node)
	defer owner.Dispose()

	html := container.Children[0].OuterHTML()
	for _, want := range []string{"<main>", "<h1>Demo</h1>", `class="clock"`, `class="counter"`} {
		if !strings.Contains(html, want) {
			t.Errorf("missing %q in %s", want, html)
		}
	}
}
