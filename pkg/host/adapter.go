package host

// Node is an opaque handle to a host-tree node. Its concrete type belongs
// to the adapter that created it; the binding layer never inspects it.
type Node any

// Event is a host event delivered to a listener.
type Event struct {
	// Type is the event name ("click", "input", ...).
	Type string

	// Target is the node the event was dispatched on.
	Target Node

	// Data carries adapter-specific payload (form values, coordinates...).
	Data map[string]any
}

// EventHandler handles one host event.
type EventHandler func(Event)

// ListenerHandle identifies one registered listener for removal.
// Handles are per-adapter and never reused.
type ListenerHandle uint64

// Adapter is the platform boundary the binding layer drives: a browser
// tree, the in-memory test tree, or a remote mirror all implement it.
// Created nodes start unattached; structural mutation is order-preserving.
type Adapter interface {
	// CreateElement returns a new, unattached host element for tag.
	CreateElement(tag string) Node

	// CreateText returns a new, unattached host text node.
	CreateText(value string) Node

	// SetAttribute sets an attribute, or removes it when value is nil.
	SetAttribute(node Node, name string, value *string)

	// SetProperty sets a direct property (form-control value/checked and
	// the like), distinct from an attribute.
	SetProperty(node Node, name string, value any)

	// SetStyleProperty sets one inline style property, or clears that one
	// property when value is nil.
	SetStyleProperty(node Node, name string, value *string)

	// SetTextContent replaces a node's text payload.
	SetTextContent(node Node, value string)

	// SetInnerMarkup replaces a node's structural content from a markup
	// string.
	SetInnerMarkup(node Node, value string)

	// AddEventListener registers a static subscription and returns a
	// handle for removal. The handler is never re-invoked for the same
	// binding: listeners attach once and are only removed on teardown.
	AddEventListener(node Node, eventType string, handler EventHandler) ListenerHandle

	// RemoveEventListener removes a previously registered listener.
	// Removing an unknown handle is a no-op.
	RemoveEventListener(node Node, eventType string, handle ListenerHandle)

	// AppendChild appends child under parent.
	AppendChild(parent, child Node)

	// RemoveChild removes child from parent.
	RemoveChild(parent, child Node)

	// InsertBefore inserts child under parent, before ref. A nil ref
	// appends.
	InsertBefore(parent, child, ref Node)
}

// StringPtr is a convenience for adapter calls taking an optional string.
func StringPtr(s string) *string {
	return &s
}
