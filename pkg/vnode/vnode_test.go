package vnode

import "testing"

func TestKindString(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{KindElement, "Element"},
		{KindText, "Text"},
		{KindComponent, "Component"},
		{KindFragment, "Fragment"},
		{Kind(99), "Unknown"},
	}

	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("Kind(%d).String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}

func TestConstructorsStartUnmaterialized(t *testing.T) {
	nodes := []*VNode{
		NewElement("div", Props{"id": "a"}, NewText("hi")),
		NewText("hello"),
		NewComponent(Func(func(props Props) *VNode { return NewText("c") }), nil),
		NewFragment(NewText("x"), NewText("y")),
	}

	for _, n := range nodes {
		if n.Handle != nil {
			t.Errorf("%s node created with non-nil handle", n.Kind)
		}
		if len(n.Bindings) != 0 {
			t.Errorf("%s node created with bindings", n.Kind)
		}
	}
}

func TestTypeGuards(t *testing.T) {
	el := NewElement("div", nil)
	txt := NewText("t")
	comp := NewComponent(Func(func(props Props) *VNode { return txt }), nil)
	frag := NewFragment()

	if !el.IsElement() || el.IsText() || el.IsComponent() || el.IsFragment() {
		t.Error("element guard mismatch")
	}
	if !txt.IsText() || txt.IsElement() {
		t.Error("text guard mismatch")
	}
	if !comp.IsComponent() || comp.IsFragment() {
		t.Error("component guard mismatch")
	}
	if !frag.IsFragment() || frag.IsElement() {
		t.Error("fragment guard mismatch")
	}

	var nilNode *VNode
	if nilNode.IsElement() || nilNode.IsText() {
		t.Error("nil node matched a type guard")
	}
}

func TestEmptyTagAndChildrenAreValid(t *testing.T) {
	el := NewElement("", nil)
	if !el.IsElement() || el.Tag != "" {
		t.Error("empty tag should construct a valid element")
	}
	frag := NewFragment()
	if len(frag.Children) != 0 {
		t.Errorf("expected no children, got %d", len(frag.Children))
	}
}

func TestCloneSharesPropsCopiesChildren(t *testing.T) {
	child := NewText("one")
	props := Props{"class": "box"}
	orig := NewElement("div", props, child).WithKey("k")
	orig.Handle = struct{}{} // simulate materialization
	orig.Bindings = nil

	c := Clone(orig)

	if c == orig {
		t.Fatal("Clone returned the same node")
	}
	if c.Handle != nil {
		t.Error("clone must start with a nil handle")
	}
	if len(c.Bindings) != 0 {
		t.Error("clone must start with an empty binding list")
	}
	// Props map is shared shallowly.
	c.Props["class"] = "changed"
	if orig.Props["class"] != "changed" {
		t.Error("props should be shared, not deep-copied")
	}
	// Children slice is copied, not shared.
	c.Children[0] = NewText("two")
	if orig.Children[0] != child {
		t.Error("children slice must be copied, not shared")
	}
	if KeyOf(c, 0) != "k" {
		t.Errorf("clone lost its key: %q", KeyOf(c, 0))
	}

	if Clone(nil) != nil {
		t.Error("Clone(nil) should be nil")
	}
}
