package host

import (
	"html"
	"sort"
	"strings"
	"sync/atomic"
)

// MemNode is a node in the in-memory host tree.
type MemNode struct {
	// IsText distinguishes text nodes from elements.
	IsText bool

	Tag  string
	Text string

	Attrs  map[string]string
	Props  map[string]any
	Styles map[string]string

	Children []*MemNode
	Parent   *MemNode

	// InnerMarkup, when non-empty, replaces children in serialized output.
	InnerMarkup string

	listeners map[string]map[ListenerHandle]EventHandler
}

// MemAdapter is a complete in-memory Adapter: the off-tree test harness and
// the server-side mirror behind the dev server's recording layer.
type MemAdapter struct {
	nextHandle atomic.Uint64
}

// NewMemAdapter creates an in-memory host-tree adapter.
func NewMemAdapter() *MemAdapter {
	return &MemAdapter{}
}

// NewContainer returns a detached element to mount into, for tests and
// mirrors that need a root.
func (a *MemAdapter) NewContainer() *MemNode {
	return a.CreateElement("div").(*MemNode)
}

// CreateElement implements Adapter.
func (a *MemAdapter) CreateElement(tag string) Node {
	return &MemNode{
		Tag:    tag,
		Attrs:  map[string]string{},
		Props:  map[string]any{},
		Styles: map[string]string{},
	}
}

// CreateText implements Adapter.
func (a *MemAdapter) CreateText(value string) Node {
	return &MemNode{IsText: true, Text: value}
}

// SetAttribute implements Adapter.
func (a *MemAdapter) SetAttribute(node Node, name string, value *string) {
	n := node.(*MemNode)
	if value == nil {
		delete(n.Attrs, name)
		return
	}
	n.Attrs[name] = *value
}

// SetProperty implements Adapter.
func (a *MemAdapter) SetProperty(node Node, name string, value any) {
	node.(*MemNode).Props[name] = value
}

// SetStyleProperty implements Adapter.
func (a *MemAdapter) SetStyleProperty(node Node, name string, value *string) {
	n := node.(*MemNode)
	if value == nil {
		delete(n.Styles, name)
		return
	}
	n.Styles[name] = *value
}

// SetTextContent implements Adapter.
func (a *MemAdapter) SetTextContent(node Node, value string) {
	n := node.(*MemNode)
	if n.IsText {
		n.Text = value
		return
	}
	// On an element, text content replaces all children.
	n.Children = nil
	n.Text = value
}

// SetInnerMarkup implements Adapter.
func (a *MemAdapter) SetInnerMarkup(node Node, value string) {
	n := node.(*MemNode)
	n.Children = nil
	n.InnerMarkup = value
}

// AddEventListener implements Adapter.
func (a *MemAdapter) AddEventListener(node Node, eventType string, handler EventHandler) ListenerHandle {
	n := node.(*MemNode)
	if n.listeners == nil {
		n.listeners = map[string]map[ListenerHandle]EventHandler{}
	}
	if n.listeners[eventType] == nil {
		n.listeners[eventType] = map[ListenerHandle]EventHandler{}
	}

	h := ListenerHandle(a.nextHandle.Add(1))
	n.listeners[eventType][h] = handler
	return h
}

// RemoveEventListener implements Adapter.
func (a *MemAdapter) RemoveEventListener(node Node, eventType string, handle ListenerHandle) {
	n := node.(*MemNode)
	if n.listeners == nil {
		return
	}
	delete(n.listeners[eventType], handle)
}

// AppendChild implements Adapter.
func (a *MemAdapter) AppendChild(parent, child Node) {
	p := parent.(*MemNode)
	c := child.(*MemNode)
	c.Parent = p
	p.Children = append(p.Children, c)
}

// RemoveChild implements Adapter.
func (a *MemAdapter) RemoveChild(parent, child Node) {
	p := parent.(*MemNode)
	c := child.(*MemNode)

	for i, existing := range p.Children {
		if existing == c {
			p.Children = append(p.Children[:i], p.Children[i+1:]...)
			c.Parent = nil
			return
		}
	}
}

// InsertBefore implements Adapter.
func (a *MemAdapter) InsertBefore(parent, child, ref Node) {
	if ref == nil {
		a.AppendChild(parent, child)
		return
	}

	p := parent.(*MemNode)
	c := child.(*MemNode)
	r := ref.(*MemNode)

	for i, existing := range p.Children {
		if existing == r {
			c.Parent = p
			p.Children = append(p.Children[:i], append([]*MemNode{c}, p.Children[i:]...)...)
			return
		}
	}
	a.AppendChild(parent, child)
}

// Dispatch delivers an event to every listener of its type on the node.
// Listener iteration is snapshot-based, so a handler may remove itself.
func (n *MemNode) Dispatch(ev Event) {
	if n.listeners == nil {
		return
	}
	ev.Target = n

	handlers := make([]EventHandler, 0, len(n.listeners[ev.Type]))
	for _, h := range n.listeners[ev.Type] {
		handlers = append(handlers, h)
	}
	for _, h := range handlers {
		h(ev)
	}
}

// ListenerCount returns the number of listeners registered for eventType.
func (n *MemNode) ListenerCount(eventType string) int {
	if n.listeners == nil {
		return 0
	}
	return len(n.listeners[eventType])
}

// TextContent returns the concatenated text beneath the node.
func (n *MemNode) TextContent() string {
	if n.IsText {
		return n.Text
	}
	var sb strings.Builder
	sb.WriteString(n.Text)
	for _, c := range n.Children {
		sb.WriteString(c.TextContent())
	}
	return sb.String()
}

// OuterHTML serializes the subtree for assertions and mirror snapshots.
// Attributes and styles are emitted in sorted order for determinism.
func (n *MemNode) OuterHTML() string {
	var sb strings.Builder
	n.writeHTML(&sb)
	return sb.String()
}

// InnerHTML serializes only the node's children, for container snapshots.
func (n *MemNode) InnerHTML() string {
	var sb strings.Builder
	for _, c := range n.Children {
		c.writeHTML(&sb)
	}
	return sb.String()
}

func (n *MemNode) writeHTML(sb *strings.Builder) {
	if n.IsText {
		sb.WriteString(html.EscapeString(n.Text))
		return
	}

	sb.WriteByte('<')
	sb.WriteString(n.Tag)

	keys := make([]string, 0, len(n.Attrs))
	for k := range n.Attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		sb.WriteByte(' ')
		sb.WriteString(k)
		sb.WriteString(`="`)
		sb.WriteString(html.EscapeString(n.Attrs[k]))
		sb.WriteByte('"')
	}

	if len(n.Styles) > 0 {
		styleKeys := make([]string, 0, len(n.Styles))
		for k := range n.Styles {
			styleKeys = append(styleKeys, k)
		}
		sort.Strings(styleKeys)
		sb.WriteString(` style="`)
		for i, k := range styleKeys {
			if i > 0 {
				sb.WriteByte(';')
			}
			sb.WriteString(k)
			sb.WriteByte(':')
			sb.WriteString(n.Styles[k])
		}
		sb.WriteByte('"')
	}

	sb.WriteByte('>')

	if n.InnerMarkup != "" {
		sb.WriteString(n.InnerMarkup)
	} else if n.Text != "" && len(n.Children) == 0 {
		sb.WriteString(html.EscapeString(n.Text))
	} else {
		for _, c := range n.Children {
			c.writeHTML(sb)
		}
	}

	sb.WriteString("</")
	sb.WriteString(n.Tag)
	sb.WriteByte('>')
}

var _ Adapter = (*MemAdapter)(nil)
