package render

import (
	"io"
	"testing"

	"github.com/filament-ui/filament/pkg/reactive"
	"github.com/filament-ui/filament/pkg/vnode"
)

func benchTree(rows int) *vnode.VNode {
	items := make([]any, 0, rows)
	for i := 0; i < rows; i++ {
		items = append(items, vnode.NewElement("li", vnode.Props{"class": "row"}, "item ", i))
	}
	return vnode.NewElement("ul", vnode.Props{"id": "list"}, items...)
}

func BenchmarkRenderStatic(b *testing.B) {
	r := NewRenderer(Config{})
	tree := benchTree(100)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := r.RenderToWriter(io.Discard, tree); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkRenderReactive(b *testing.B) {
	sig := reactive.NewSignal("value")
	tree := vnode.NewElement("div", vnode.Props{"textContent": sig})
	r := NewRenderer(Config{})
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := r.RenderToWriter(io.Discard, tree); err != nil {
			b.Fatal(err)
		}
	}
}
