// Package render converts view-node trees into HTML strings or streams.
//
// Rendering is a one-shot snapshot: reactive props are read at their
// current values without registering any dependencies, and event props are
// dropped from the markup (a data-on-* marker records that a listener
// exists). Nothing stays subscribed after a render returns.
//
// It handles:
//
//   - HTML5 compliant element rendering
//   - Proper text and attribute escaping (XSS prevention)
//   - Void element handling (input, br, img, etc.)
//   - Boolean attribute handling (disabled, checked, etc.)
//   - Full page rendering with DOCTYPE, head, body
//   - Thin client script injection
//   - Content hashing for HTTP ETags
//
// # Basic Usage
//
// To render a tree to a string:
//
//	renderer := render.NewRenderer(render.Config{})
//	html, err := renderer.RenderToString(node)
//
// To stream HTML to a writer:
//
//	renderer := render.NewRenderer(render.Config{})
//	err := renderer.RenderToWriter(w, node)
//
// # Full Page Rendering
//
// To render a complete HTML document:
//
//	page := render.PageData{
//	    Body:      bodyNode,
//	    Title:     "My Page",
//	    SessionID: session.ID,
//	}
//	err := renderer.RenderPage(w, page)
//
// # Streaming
//
// For large pages, use StreamingRenderer to flush content incrementally:
//
//	sr := render.NewStreamingRenderer(w, config)
//	err := sr.RenderPage(page)
//
// # Security
//
// All text content is escaped by default to prevent XSS attacks. Raw HTML
// can be inserted through the unsafeHTML prop, but should only be used
// with trusted content.
package render
