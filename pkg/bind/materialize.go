package bind

import (
	"errors"
	"fmt"
	"strings"

	"github.com/filament-ui/filament/pkg/host"
	"github.com/filament-ui/filament/pkg/reactive"
	"github.com/filament-ui/filament/pkg/vnode"
)

var (
	// ErrCleanedUp is returned when materializing a node that was already
	// torn down. Cleaned-up nodes are re-rendered via vnode.Clone, never
	// reused in place.
	ErrCleanedUp = errors.New("bind: node was cleaned up; re-render a fresh node via Clone")

	// ErrAlreadyMaterialized is returned when materializing a node twice.
	ErrAlreadyMaterialized = errors.New("bind: node is already materialized")

	// ErrNilNode is returned when materializing a nil node.
	ErrNilNode = errors.New("bind: nil node")

	// ErrNilComponent is returned for a component node without a component.
	ErrNilComponent = errors.New("bind: component node has no component")
)

// Materialize converts a view-node subtree into a live host subtree:
// host nodes are created, static props applied once, reactive props turned
// into bindings owned by their node, and listeners attached. The returned
// handle is nil for fragments, whose "handle" is logically their ordered
// child sequence.
//
// The subtree is not attached to anything; Mount is Materialize plus
// attachment.
func Materialize(n *vnode.VNode, a host.Adapter) (host.Node, error) {
	if n == nil {
		return nil, ErrNilNode
	}
	switch n.State {
	case vnode.StateCleanedUp:
		return nil, ErrCleanedUp
	case vnode.StateMaterialized:
		return nil, ErrAlreadyMaterialized
	}

	switch n.Kind {
	case vnode.KindText:
		n.Handle = a.CreateText(n.Text)

	case vnode.KindElement:
		h := a.CreateElement(n.Tag)
		n.Handle = h
		bindProps(n, a, h)
		for i, child := range n.Children {
			child.Parent = n
			if _, err := Materialize(child, a); err != nil {
				disposePartial(n, i)
				return nil, err
			}
			attach(child, a, h)
		}

	case vnode.KindFragment:
		for i, child := range n.Children {
			child.Parent = n
			if _, err := Materialize(child, a); err != nil {
				disposePartial(n, i)
				return nil, err
			}
		}

	case vnode.KindComponent:
		if n.Comp == nil {
			return nil, ErrNilComponent
		}
		rendered := n.Comp.Render(n.Props)
		if rendered != nil {
			rendered.Parent = n
			n.Children = []*vnode.VNode{rendered}
			h, err := Materialize(rendered, a)
			if err != nil {
				return nil, err
			}
			n.Handle = h
		}

	default:
		return nil, fmt.Errorf("bind: unknown node kind %d", n.Kind)
	}

	n.State = vnode.StateMaterialized
	return n.Handle, nil
}

// disposePartial tears down a node whose child materialization failed:
// the node's own binding effects and the subtrees of the children this
// call already materialized are disposed, so no orphaned subscription
// outlives the error. Only the first `materialized` children are touched;
// the failing child cleaned up after itself or never created bindings,
// and may even be a node still live under another parent.
func disposePartial(n *vnode.VNode, materialized int) {
	for _, child := range n.Children[:materialized] {
		disposeTree(child)
		child.Handle = nil
		child.HostParent = nil
	}
	for _, b := range n.Bindings {
		b.Dispose()
	}
	n.Bindings = nil
	n.Handle = nil
}

// Mount materializes node and attaches it under container.
func Mount(n *vnode.VNode, a host.Adapter, container host.Node) (host.Node, error) {
	h, err := Materialize(n, a)
	if err != nil {
		return nil, err
	}
	attach(n, a, container)
	return h, nil
}

// attach appends an already-materialized node under parent. Fragments and
// handle-less components attach their children in order.
func attach(n *vnode.VNode, a host.Adapter, parent host.Node) {
	if n == nil {
		return
	}
	if n.Handle == nil {
		// Fragment, or a component that rendered a fragment or nothing.
		for _, child := range n.Children {
			attach(child, a, parent)
		}
		n.HostParent = parent
		return
	}
	if n.Kind == vnode.KindComponent {
		// The handle belongs to the rendered child; attach through it so
		// the child records its own host parent.
		for _, child := range n.Children {
			attach(child, a, parent)
		}
		n.HostParent = parent
		return
	}
	a.AppendChild(parent, n.Handle)
	n.HostParent = parent
}

// bindProps applies every prop of an element node: plain values once,
// reactive values as one binding effect each, event-like names as static
// listeners. Bindings are appended to the node's own binding list; nothing
// else ever owns them.
func bindProps(n *vnode.VNode, a host.Adapter, h host.Node) {
	for name, value := range n.Props {
		kind := propKindOf(name)

		switch kind {
		case propSkip:
			continue

		case propEvent:
			if handler, ok := eventHandlerOf(value); ok {
				bindListener(n, a, h, strings.ToLower(name[2:]), handler)
				continue
			}
			// An "on"-prefixed name with a non-handler value is an
			// ordinary attribute, "once" for instance.
			kind = propAttribute

		case propStyle:
			bindStyle(n, a, h, value)
			continue
		}

		if get, ok := reactiveGetter(value); ok {
			addBinding(n, func() { applyProp(a, h, kind, name, get()) })
			continue
		}
		applyProp(a, h, kind, name, value)
	}
}

// addBinding creates the effect for one binding and records it on the
// owning node. The effect reads its reactive inputs first and applies the
// host mutation last, so a mutation that panics leaves the subscription
// established: the binding stays live for future, potentially valid,
// updates while the panic surfaces to whoever triggered the write.
func addBinding(n *vnode.VNode, apply func()) {
	e := reactive.CreateEffect(func() reactive.Cleanup {
		apply()
		return nil
	})
	n.Bindings = append(n.Bindings, e)
}

// bindListener attaches a static event listener. Listeners are attached
// exactly once, are never re-bound, and never register as dependencies;
// teardown goes through the node's binding list like every other binding
// so handle and listeners die together.
func bindListener(n *vnode.VNode, a host.Adapter, h host.Node, eventType string, handler host.EventHandler) {
	var lh host.ListenerHandle
	e := reactive.CreateEffect(func() reactive.Cleanup {
		reactive.Untracked(func() {
			lh = a.AddEventListener(h, eventType, handler)
		})
		return func() {
			a.RemoveEventListener(h, eventType, lh)
		}
	})
	n.Bindings = append(n.Bindings, e)
}

// bindStyle handles the style prop: a map whose entries may each be plain
// or reactive. A nil entry value clears that one style property only.
func bindStyle(n *vnode.VNode, a host.Adapter, h host.Node, value any) {
	switch styles := value.(type) {
	case map[string]any:
		for prop, v := range styles {
			prop, v := prop, v
			if get, ok := reactiveGetter(v); ok {
				addBinding(n, func() { applyStyleProperty(a, h, prop, get()) })
				continue
			}
			applyStyleProperty(a, h, prop, v)
		}
	case map[string]string:
		for prop, v := range styles {
			applyStyleProperty(a, h, prop, v)
		}
	case string:
		// A whole-style string routes through the style attribute.
		applyAttribute(a, h, "style", styles)
	}
}

// applyProp performs one host mutation for a non-style, non-event prop.
func applyProp(a host.Adapter, h host.Node, kind propKind, name string, v any) {
	switch kind {
	case propText:
		a.SetTextContent(h, textString(v))
	case propMarkup:
		a.SetInnerMarkup(h, textString(v))
	case propClass:
		// A reactive class string replaces the full attribute value; no
		// token diffing.
		applyAttribute(a, h, "class", v)
	case propProperty:
		a.SetProperty(h, name, v)
	default:
		applyAttribute(a, h, name, v)
	}
}
