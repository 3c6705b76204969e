package bind

import (
	"fmt"
	"strings"

	"github.com/filament-ui/filament/pkg/host"
	"github.com/filament-ui/filament/pkg/reactive"
)

// propKindOf routes a prop name to its binding kind. Routing is
// name-driven: event-like names attach listeners, a handful of names get
// dedicated handling, everything else is an attribute. An "on"-prefixed
// name only sticks as an event if its value is actually a handler; the
// binder demotes the rest back to attributes.
type propKind uint8

const (
	propAttribute propKind = iota
	propEvent
	propClass
	propStyle
	propText
	propMarkup
	propProperty
	propSkip
)

// directProperties are set through the adapter's property channel rather
// than as attributes: form-control state diverges from its attribute once
// the user interacts with the control.
var directProperties = map[string]bool{
	"value":   true,
	"checked": true,
}

func propKindOf(name string) propKind {
	switch name {
	case "key":
		return propSkip
	case "class", "className":
		return propClass
	case "style":
		return propStyle
	case "textContent":
		return propText
	case "unsafeHTML":
		return propMarkup
	}
	if directProperties[name] {
		return propProperty
	}
	if strings.HasPrefix(name, "on") && len(name) > 2 {
		return propEvent
	}
	return propAttribute
}

// reactiveGetter reports whether a prop value is reactive and returns its
// read function. Signals and memos implement reactive.Reader; a bare
// func() any thunk also counts.
func reactiveGetter(v any) (func() any, bool) {
	switch r := v.(type) {
	case reactive.Reader:
		return r.Load, true
	case func() any:
		return r, true
	}
	return nil, false
}

// eventHandlerOf coerces the supported handler shapes to a host handler.
func eventHandlerOf(v any) (host.EventHandler, bool) {
	switch h := v.(type) {
	case host.EventHandler:
		return h, true
	case func(host.Event):
		return h, true
	case func():
		return func(host.Event) { h() }, true
	}
	return nil, false
}

// attrString coerces a non-nil value to its attribute string form.
func attrString(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case bool:
		if s {
			return "true"
		}
		return "false"
	case int:
		return fmt.Sprintf("%d", s)
	case int64:
		return fmt.Sprintf("%d", s)
	case float64:
		return fmt.Sprintf("%g", s)
	default:
		return fmt.Sprintf("%v", s)
	}
}

// textString coerces a value to text content. nil renders as the empty
// string, never as the literal "null" or "<nil>".
func textString(v any) string {
	if v == nil {
		return ""
	}
	return attrString(v)
}

// applyAttribute sets or removes an attribute: nil removes it entirely.
func applyAttribute(a host.Adapter, node host.Node, name string, v any) {
	if v == nil {
		a.SetAttribute(node, name, nil)
		return
	}
	a.SetAttribute(node, name, host.StringPtr(attrString(v)))
}

// applyStyleProperty sets or clears one style property: nil clears that
// property only.
func applyStyleProperty(a host.Adapter, node host.Node, name string, v any) {
	if v == nil {
		a.SetStyleProperty(node, name, nil)
		return
	}
	a.SetStyleProperty(node, name, host.StringPtr(attrString(v)))
}
