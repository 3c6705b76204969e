package render

import (
	"fmt"

	"github.com/cespare/xxhash/v2"

	"github.com/filament-ui/filament/pkg/vnode"
)

// ContentHash renders the tree compactly and hashes the output. Two trees
// that render to identical markup hash identically.
func ContentHash(node *vnode.VNode) (uint64, error) {
	d := xxhash.New()
	r := NewRenderer(Config{})
	if err := r.RenderToWriter(d, node); err != nil {
		return 0, err
	}
	return d.Sum64(), nil
}

// ETag formats a content hash as a strong HTTP entity tag.
func ETag(node *vnode.VNode) (string, error) {
	h, err := ContentHash(node)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf(`"%016x"`, h), nil
}
