package render

import (
	"bytes"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/filament-ui/filament/pkg/reactive"
	"github.com/filament-ui/filament/pkg/vnode"
)

// Config configures the HTML renderer.
type Config struct {
	// Pretty enables pretty-printed HTML output with indentation.
	// Should only be used in development as it increases output size.
	Pretty bool

	// Indent is the string used for each indentation level in pretty mode.
	// Defaults to two spaces if not specified.
	Indent string
}

// Renderer turns a view-node tree into HTML once. Reactive props are read
// without registering dependencies, so rendering never subscribes the
// renderer to anything; event props are dropped from the markup and
// surfaced only as data-on-* markers for a client to bind against.
type Renderer struct {
	config Config
}

// NewRenderer creates a new Renderer with the given configuration.
func NewRenderer(config Config) *Renderer {
	if config.Indent == "" {
		config.Indent = "  "
	}
	return &Renderer{config: config}
}

// RenderToString renders a view-node tree to an HTML string.
func (r *Renderer) RenderToString(node *vnode.VNode) (string, error) {
	var buf bytes.Buffer
	if err := r.RenderToWriter(&buf, node); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// RenderToWriter streams a view-node tree to the given writer. The whole
// walk runs untracked: a render inside an effect must not re-run that
// effect when some prop's signal later changes.
func (r *Renderer) RenderToWriter(w io.Writer, node *vnode.VNode) error {
	var err error
	reactive.Untracked(func() {
		err = r.renderNode(w, node, 0)
	})
	return err
}

// renderNode dispatches rendering based on node kind.
func (r *Renderer) renderNode(w io.Writer, node *vnode.VNode, depth int) error {
	if node == nil {
		return nil
	}

	switch node.Kind {
	case vnode.KindElement:
		return r.renderElement(w, node, depth)
	case vnode.KindText:
		return r.renderText(w, node)
	case vnode.KindFragment:
		return r.renderFragment(w, node, depth)
	case vnode.KindComponent:
		return r.renderComponent(w, node, depth)
	default:
		return fmt.Errorf("render: unknown node kind: %d", node.Kind)
	}
}

// renderElement renders an HTML element with its attributes and children.
func (r *Renderer) renderElement(w io.Writer, node *vnode.VNode, depth int) error {
	tag := node.Tag

	if r.config.Pretty && depth > 0 {
		r.writeIndent(w, depth)
	}

	if _, err := w.Write([]byte{'<'}); err != nil {
		return err
	}
	if _, err := w.Write([]byte(tag)); err != nil {
		return err
	}

	if err := r.renderAttributes(w, node); err != nil {
		return err
	}

	if isVoidElement(tag) {
		if _, err := w.Write([]byte{'>'}); err != nil {
			return err
		}
		if r.config.Pretty {
			w.Write([]byte{'\n'})
		}
		return nil
	}

	if _, err := w.Write([]byte{'>'}); err != nil {
		return err
	}

	if raw, ok := node.Props["unsafeHTML"]; ok {
		// Raw markup replaces children and is written unescaped.
		if _, err := io.WriteString(w, contentString(resolveValue(raw))); err != nil {
			return err
		}
	} else if text, ok := node.Props["textContent"]; ok {
		// A textContent prop replaces children, matching the live
		// binding which replaces the host node's children with one
		// text node.
		if _, err := io.WriteString(w, escapeHTML(contentString(resolveValue(text)))); err != nil {
			return err
		}
	} else {
		hasBlockChildren := len(node.Children) > 0 && !isInlineElement(tag)
		if r.config.Pretty && hasBlockChildren {
			w.Write([]byte{'\n'})
		}

		for _, child := range node.Children {
			if err := r.renderNode(w, child, depth+1); err != nil {
				return err
			}
		}

		if r.config.Pretty && hasBlockChildren {
			r.writeIndent(w, depth)
		}
	}

	if _, err := fmt.Fprintf(w, "</%s>", tag); err != nil {
		return err
	}
	if r.config.Pretty {
		w.Write([]byte{'\n'})
	}

	return nil
}

// renderText renders a text node with HTML escaping.
func (r *Renderer) renderText(w io.Writer, node *vnode.VNode) error {
	_, err := io.WriteString(w, escapeHTML(node.Text))
	return err
}

// renderFragment renders a fragment's children without a wrapper element.
func (r *Renderer) renderFragment(w io.Writer, node *vnode.VNode, depth int) error {
	for _, child := range node.Children {
		if err := r.renderNode(w, child, depth); err != nil {
			return err
		}
	}
	return nil
}

// renderComponent renders a component by rendering its output node.
func (r *Renderer) renderComponent(w io.Writer, node *vnode.VNode, depth int) error {
	if node.Comp == nil {
		return nil
	}
	return r.renderNode(w, node.Comp.Render(node.Props), depth)
}

// renderAttributes renders all attributes for an element.
func (r *Renderer) renderAttributes(w io.Writer, node *vnode.VNode) error {
	if len(node.Props) == 0 {
		return nil
	}

	// Sort keys for deterministic output
	keys := make([]string, 0, len(node.Props))
	for key := range node.Props {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		value := node.Props[key]

		switch key {
		case "key", "textContent", "unsafeHTML":
			continue
		case "className":
			key = "class"
		case "style":
			if err := r.renderStyleAttr(w, value); err != nil {
				return err
			}
			continue
		}

		// Event props never reach the markup as attributes.
		if strings.HasPrefix(key, "on") && len(key) > 2 {
			continue
		}

		value = resolveValue(value)

		// Boolean attributes
		if isBooleanAttr(key) {
			if boolValue, ok := value.(bool); ok {
				if boolValue {
					if _, err := fmt.Fprintf(w, " %s", key); err != nil {
						return err
					}
				}
				continue
			}
		}

		if value == nil {
			// A nil prop is an absent attribute.
			continue
		}

		strValue := attrToString(value)
		if strValue != "" {
			if _, err := fmt.Fprintf(w, ` %s="%s"`, key, escapeAttr(strValue)); err != nil {
				return err
			}
		}
	}

	// Event marker attributes, for client-side binding.
	for _, key := range keys {
		if strings.HasPrefix(key, "on") && len(key) > 2 {
			eventName := strings.ToLower(key[2:])
			if _, err := fmt.Fprintf(w, ` data-on-%s="true"`, eventName); err != nil {
				return err
			}
		}
	}

	return nil
}

// renderStyleAttr renders a style prop map as a single style attribute,
// entries sorted by property name.
func (r *Renderer) renderStyleAttr(w io.Writer, value any) error {
	entries := map[string]string{}
	switch styles := resolveValue(value).(type) {
	case map[string]any:
		for prop, v := range styles {
			v = resolveValue(v)
			if v == nil {
				continue
			}
			entries[prop] = attrToString(v)
		}
	case map[string]string:
		for prop, v := range styles {
			entries[prop] = v
		}
	case string:
		_, err := fmt.Fprintf(w, ` style="%s"`, escapeAttr(styles))
		return err
	default:
		return nil
	}
	if len(entries) == 0 {
		return nil
	}

	props := make([]string, 0, len(entries))
	for prop := range entries {
		props = append(props, prop)
	}
	sort.Strings(props)

	var sb strings.Builder
	for i, prop := range props {
		if i > 0 {
			sb.WriteByte(';')
		}
		sb.WriteString(prop)
		sb.WriteByte(':')
		sb.WriteString(entries[prop])
	}
	_, err := fmt.Fprintf(w, ` style="%s"`, escapeAttr(sb.String()))
	return err
}

// resolveValue unwraps a reactive prop to its current value. Plain values
// pass through.
func resolveValue(value any) any {
	switch v := value.(type) {
	case reactive.Reader:
		return v.Load()
	case func() any:
		return v()
	}
	return value
}

// attrToString converts an attribute value to a string.
func attrToString(value any) string {
	if value == nil {
		return ""
	}
	switch v := value.(type) {
	case string:
		return v
	case bool:
		if v {
			return "true"
		}
		return "false"
	case int:
		return fmt.Sprintf("%d", v)
	case int64:
		return fmt.Sprintf("%d", v)
	case float64:
		return fmt.Sprintf("%g", v)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// contentString converts a textContent or unsafeHTML value to a string; a
// nil value is empty content.
func contentString(value any) string {
	if value == nil {
		return ""
	}
	return attrToString(value)
}

// writeIndent writes indentation for pretty printing.
func (r *Renderer) writeIndent(w io.Writer, depth int) {
	for i := 0; i < depth; i++ {
		w.Write([]byte(r.config.Indent))
	}
}
