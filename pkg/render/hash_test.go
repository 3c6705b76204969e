package render

import (
	"strings"
	"testing"

	"github.com/filament-ui/filament/pkg/reactive"
	"github.com/filament-ui/filament/pkg/vnode"
)

func TestContentHashStable(t *testing.T) {
	node := vnode.NewElement("div", vnode.Props{"id": "a"}, "hello")
	h1, err := ContentHash(node)
	if err != nil {
		t.Fatal(err)
	}
	h2, err := ContentHash(vnode.Clone(node))
	if err != nil {
		t.Fatal(err)
	}
	if h1 != h2 {
		t.Errorf("identical trees hashed differently: %x vs %x", h1, h2)
	}
}

func TestContentHashTracksValues(t *testing.T) {
	sig := reactive.NewSignal("one")
	node := vnode.NewElement("span", vnode.Props{"textContent": sig})

	h1, err := ContentHash(node)
	if err != nil {
		t.Fatal(err)
	}
	sig.Set("two")
	h2, err := ContentHash(node)
	if err != nil {
		t.Fatal(err)
	}
	if h1 == h2 {
		t.Error("hash unchanged after content changed")
	}
}

func TestETagFormat(t *testing.T) {
	tag, err := ETag(vnode.NewElement("div", nil))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(tag, `"`) || !strings.HasSuffix(tag, `"`) {
		t.Errorf("ETag not quoted: %s", tag)
	}
	if len(tag) != 18 {
		t.Errorf("ETag length = %d, want 18 (16 hex digits plus quotes)", len(tag))
	}
}
