package vnode

import (
	"github.com/filament-ui/filament/pkg/reactive"
)

// Kind is the node type discriminator.
type Kind uint8

const (
	KindElement   Kind = iota // <div>, <button>, etc.
	KindText                  // Plain text node
	KindComponent             // Component invocation
	KindFragment              // Grouping without wrapper
)

// String returns the string representation of the Kind.
func (k Kind) String() string {
	switch k {
	case KindElement:
		return "Element"
	case KindText:
		return "Text"
	case KindComponent:
		return "Component"
	case KindFragment:
		return "Fragment"
	default:
		return "Unknown"
	}
}

// LifeState tracks a node's position in the materialization lifecycle.
// The only transitions are Unmaterialized -> Materialized -> CleanedUp;
// there is no way back. A cleaned-up node is discarded or re-rendered as a
// fresh node via Clone, never reused in place.
type LifeState uint8

const (
	StateUnmaterialized LifeState = iota
	StateMaterialized
	StateCleanedUp
)

// String returns the string representation of the LifeState.
func (s LifeState) String() string {
	switch s {
	case StateUnmaterialized:
		return "Unmaterialized"
	case StateMaterialized:
		return "Materialized"
	case StateCleanedUp:
		return "CleanedUp"
	default:
		return "Unknown"
	}
}

// Props holds attributes, event handlers and component inputs. A value that
// implements reactive.Reader (any signal or memo), or is a func() any
// thunk, is treated as reactive by the binding layer.
type Props map[string]any

// VNode describes one view fragment. It is pure data until the binding
// layer materializes it: Handle and Bindings stay zero until mount and are
// always created and torn down together — neither outlives the other.
type VNode struct {
	Kind     Kind
	Tag      string   // element tag name, for KindElement
	Props    Props    // attributes, handlers, component inputs
	Children []*VNode // child nodes, for Element and Fragment
	Text     string   // text payload, for KindText
	Comp     Component // view-producing function, for KindComponent

	// Key is the explicit reconciliation key. nil means absent; 0 and ""
	// are valid keys, distinct from absence.
	Key any

	// Handle is the materialized host-tree node, nil before mount and
	// after unmount. Owned by this node.
	Handle any

	// HostParent is the host node Handle is currently attached under.
	// Managed by the binding layer; nil while detached.
	HostParent any

	// Bindings are the effects attached during materialization, one per
	// reactive prop/style/class/content. Owned by this node; disposed on
	// unmount.
	Bindings []*reactive.Effect

	// State is the node's lifecycle state, advanced by the binding layer.
	State LifeState

	// Parent is a non-owning back-reference used only for traversal.
	Parent *VNode
}

// Component is anything that can render to a VNode given its props.
type Component interface {
	Render(props Props) *VNode
}

// FuncComponent wraps a render function.
type FuncComponent struct {
	render func(props Props) *VNode
}

// Render implements Component.
func (f *FuncComponent) Render(props Props) *VNode {
	return f.render(props)
}

// Func creates a component from a render function.
func Func(render func(props Props) *VNode) Component {
	return &FuncComponent{render: render}
}

// NewElement creates an element node. An empty tag and an empty child list
// are valid.
func NewElement(tag string, props Props, children ...any) *VNode {
	return &VNode{
		Kind:     KindElement,
		Tag:      tag,
		Props:    props,
		Children: Normalize(children...),
	}
}

// NewText creates a text node.
func NewText(text string) *VNode {
	return &VNode{
		Kind: KindText,
		Text: text,
	}
}

// NewComponent creates a component invocation node.
func NewComponent(comp Component, props Props) *VNode {
	return &VNode{
		Kind:  KindComponent,
		Comp:  comp,
		Props: props,
	}
}

// NewFragment groups children without a wrapper element.
func NewFragment(children ...any) *VNode {
	return &VNode{
		Kind:     KindFragment,
		Children: Normalize(children...),
	}
}

// WithKey sets the explicit key and returns the node for chaining.
func (v *VNode) WithKey(key any) *VNode {
	v.Key = key
	return v
}

// IsElement reports whether the node is an element.
func (v *VNode) IsElement() bool { return v != nil && v.Kind == KindElement }

// IsText reports whether the node is a text node.
func (v *VNode) IsText() bool { return v != nil && v.Kind == KindText }

// IsComponent reports whether the node is a component invocation.
func (v *VNode) IsComponent() bool { return v != nil && v.Kind == KindComponent }

// IsFragment reports whether the node is a fragment.
func (v *VNode) IsFragment() bool { return v != nil && v.Kind == KindFragment }

// Clone produces a fresh, unmaterialized node of the same variant: props,
// tag and text are shared shallowly, the children slice is copied (not
// shared), the binding list is empty and the handle nil. A cleaned-up node
// is re-rendered via Clone, never reused in place.
func Clone(v *VNode) *VNode {
	if v == nil {
		return nil
	}

	c := &VNode{
		Kind:  v.Kind,
		Tag:   v.Tag,
		Props: v.Props,
		Text:  v.Text,
		Comp:  v.Comp,
		Key:   v.Key,
	}
	if v.Children != nil {
		c.Children = make([]*VNode, len(v.Children))
		copy(c.Children, v.Children)
	}
	return c
}
