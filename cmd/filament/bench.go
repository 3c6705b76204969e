package main

import (
	"fmt"
	"os"
	"time"

	"github.com/jamiealquiza/tachymeter"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/filament-ui/filament/pkg/bind"
	"github.com/filament-ui/filament/pkg/host"
	"github.com/filament-ui/filament/pkg/reactive"
	"github.com/filament-ui/filament/pkg/vnode"
)

func benchCmd() *cobra.Command {
	var iters int

	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Benchmark signal propagation and binding updates",
		Long: `Run latency benchmarks against the reactive graph.

Two suites run: raw signal propagation through memo chains of varying
width and depth, and end-to-end binding updates against the in-memory
host tree.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			benchPropagation(iters)
			benchBindings(iters)
			return nil
		},
	}

	cmd.Flags().IntVarP(&iters, "iterations", "n", 100, "Iterations per case")

	return cmd
}

// benchPropagation measures one write flushing through w independent
// memo chains of depth h.
func benchPropagation(iters int) {
	widths := []int{1, 10, 100}
	depths := []int{1, 10, 100}

	tbl := table.NewWriter()
	tbl.SetTitle("Signal Propagation")
	tbl.SetOutputMirror(os.Stdout)
	tbl.AppendHeader(table.Row{"case", "avg", "min", "p75", "p99", "max"})

	for _, w := range widths {
		for _, h := range depths {
			tach := tachymeter.New(&tachymeter.Config{Size: iters})

			owner := reactive.NewOwner(nil)
			reactive.WithOwner(owner, func() {
				src := reactive.NewSignal(0)
				for i := 0; i < w; i++ {
					last := reactive.NewMemo(func() int { return src.Get() + 1 })
					for j := 1; j < h; j++ {
						prev := last
						last = reactive.NewMemo(func() int { return prev.Get() + 1 })
					}
					tail := last
					reactive.CreateEffect(func() reactive.Cleanup {
						tail.Get()
						return nil
					})
				}

				for i := 0; i < iters; i++ {
					start := time.Now()
					src.Update(func(n int) int { return n + 1 })
					tach.AddTime(time.Since(start))
				}
			})
			owner.Dispose()

			calc := tach.Calc()
			tbl.AppendRow(table.Row{
				fmt.Sprintf("propagate %d x %d", w, h),
				calc.Time.Avg, calc.Time.Min, calc.Time.P75, calc.Time.P99, calc.Time.Max,
			})
		}
	}

	tbl.Render()
}

// benchBindings measures a write landing in the host tree through n
// text bindings.
func benchBindings(iters int) {
	counts := []int{1, 10, 100, 1000}

	tbl := table.NewWriter()
	tbl.SetTitle("Binding Updates")
	tbl.SetOutputMirror(os.Stdout)
	tbl.AppendHeader(table.Row{"case", "avg", "min", "p75", "p99", "max"})

	for _, n := range counts {
		tach := tachymeter.New(&tachymeter.Config{Size: iters})

		a := host.NewMemAdapter()
		container := a.NewContainer()

		owner := reactive.NewOwner(nil)
		reactive.WithOwner(owner, func() {
			src := reactive.NewSignal(0)
			children := make([]any, n)
			for i := range children {
				children[i] = vnode.NewElement("span", vnode.Props{"textContent": src})
			}
			node := vnode.NewElement("div", nil, children...)
			if _, err := bind.Mount(node, a, container); err != nil {
				panic(err)
			}

			for i := 0; i < iters; i++ {
				start := time.Now()
				src.Update(func(v int) int { return v + 1 })
				tach.AddTime(time.Since(start))
			}
		})
		owner.Dispose()

		calc := tach.Calc()
		tbl.AppendRow(table.Row{
			fmt.Sprintf("%d text bindings", n),
			calc.Time.Avg, calc.Time.Min, calc.Time.P75, calc.Time.P99, calc.Time.Max,
		})
	}

	tbl.Render()
}
