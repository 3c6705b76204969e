// Package demo provides the example application served by `filament serve`.
// It exercises the full pipeline: signals and memos drive text, attribute
// and class bindings, and button listeners mutate state from host events.
package demo

import (
	"strconv"
	"time"

	"github.com/filament-ui/filament/pkg/reactive"
	"github.com/filament-ui/filament/pkg/vnode"
)

// Counter is a stateful counter component. Each mount gets its own
// signal state; the count label and parity class update in place while
// the buttons never re-render.
type Counter struct {
	// Start is the initial count.
	Start int
}

func (c Counter) Render(props vnode.Props) *vnode.VNode {
	count := reactive.NewSignal(c.Start)
	parity := reactive.NewMemo(func() string {
		if count.Get()%2 == 0 {
			return "even"
		}
		return "odd"
	})

	return vnode.NewElement("div", vnode.Props{"class": "counter"},
		vnode.NewElement("span", vnode.Props{
			"class":       parity,
			"textContent": func() any { return strconv.Itoa(count.Get()) },
		}),
		vnode.NewElement("button", vnode.Props{
			"onclick": func() {
				count.Update(func(n int) int { return n + 1 })
			},
		}, "+"),
		vnode.NewElement("button", vnode.Props{
			"onclick": func() {
				count.Update(func(n int) int { return n - 1 })
			},
		}, "-"),
	)
}

// Clock shows the server time. The ticker effect owns its timer and
// stops it when the mount is cleaned up.
type Clock struct {
	// Interval between updates. Zero means one second.
	Interval time.Duration
}

func (c Clock) Render(props vnode.Props) *vnode.VNode {
	interval := c.Interval
	if interval <= 0 {
		interval = time.Second
	}

	now := reactive.NewSignal(time.Now().Format("15:04:05"))

	reactive.CreateEffect(func() reactive.Cleanup {
		ticker := time.NewTicker(interval)
		done := make(chan struct{})
		go func() {
			for {
				select {
				case t := <-ticker.C:
					now.Set(t.Format("15:04:05"))
				case <-done:
					return
				}
			}
		}()
		return func() {
			ticker.Stop()
			close(done)
		}
	})

	return vnode.NewElement("time", vnode.Props{
		"class":       "clock",
		"textContent": now,
	})
}

// App composes the demo page body.
type App struct {
	Title string
}

func (a App) Render(props vnode.Props) *vnode.VNode {
	title := a.Title
	if title == "" {
		title = "Filament"
	}

	return vnode.NewElement("main", nil,
		vnode.NewElement("h1", nil, title),
		vnode.NewComponent(Clock{}, nil),
		vnode.NewComponent(Counter{}, nil),
	)
}
