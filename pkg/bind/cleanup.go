package bind

import (
	"github.com/filament-ui/filament/pkg/host"
	"github.com/filament-ui/filament/pkg/vnode"
)

// CleanupBindings tears down a materialized subtree: every binding in the
// subtree is disposed depth-first so no further host mutations can fire,
// then the top-level node is detached from its host parent and its handle
// nulled. Child handles are left in place; the detached host subtree is
// discarded as a unit.
//
// Calling it on a node that was never materialized, or was already cleaned
// up, is a no-op.
func CleanupBindings(n *vnode.VNode, a host.Adapter) {
	if n == nil || n.State != vnode.StateMaterialized {
		return
	}
	disposeTree(n)
	detach(n, a)
}

// Unmount is CleanupBindings under its attachment-centric name.
func Unmount(n *vnode.VNode, a host.Adapter) {
	CleanupBindings(n, a)
}

// disposeTree disposes bindings bottom-up so child teardown never runs
// against an already-mutated ancestor.
func disposeTree(n *vnode.VNode) {
	for _, child := range n.Children {
		disposeTree(child)
	}
	for _, b := range n.Bindings {
		b.Dispose()
	}
	n.Bindings = nil
	n.State = vnode.StateCleanedUp
}

// detach removes the node's host subtree from its parent and nulls the
// top-level handle. Fragments and handle-less components detach each
// direct child, since the child sequence is their attachment surface.
func detach(n *vnode.VNode, a host.Adapter) {
	if n.Handle == nil || n.Kind == vnode.KindComponent {
		for _, child := range n.Children {
			detach(child, a)
		}
		n.Handle = nil
		n.HostParent = nil
		return
	}
	if n.HostParent != nil {
		a.RemoveChild(n.HostParent, n.Handle)
	}
	n.Handle = nil
	n.HostParent = nil
}
