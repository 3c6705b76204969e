package render

import (
	"io"
	"net/http"
)

// StreamingRenderer renders a page in flushed sections so the browser can
// start parsing the head while the body is still being produced. The
// sections reuse the same head and script rendering as the buffered page
// renderer; only the pacing differs.
type StreamingRenderer struct {
	*Renderer
	flusher http.Flusher
	w       io.Writer
}

// NewStreamingRenderer creates a streaming renderer over an
// http.ResponseWriter. Writers without http.Flusher degrade to a single
// unflushed write, which is still a correct page.
func NewStreamingRenderer(w http.ResponseWriter, config Config) *StreamingRenderer {
	flusher, _ := w.(http.Flusher)
	return &StreamingRenderer{
		Renderer: NewRenderer(config),
		flusher:  flusher,
		w:        w,
	}
}

// RenderPage renders a complete HTML document in three flushed sections:
// the head, the app container with the rendered body, and the trailing
// client script.
func (s *StreamingRenderer) RenderPage(page PageData) error {
	lang := page.Lang
	if lang == "" {
		lang = "en"
	}
	out := &stickyWriter{w: s.w}

	out.writeString("<!DOCTYPE html>\n<html lang=\"")
	out.writeString(escapeAttr(lang))
	out.writeString("\">\n")
	out.call(func(w io.Writer) error { return s.renderHead(w, page) })
	if out.err != nil {
		return out.err
	}
	s.flush()

	out.writeString("<body>\n<div id=\"app\">")
	out.call(func(w io.Writer) error { return s.RenderToWriter(w, page.Body) })
	out.writeString("</div>\n")
	if out.err != nil {
		return out.err
	}
	s.flush()

	out.call(func(w io.Writer) error { return s.renderClientScript(w, page) })
	out.writeString("</body>\n</html>\n")
	if out.err != nil {
		return out.err
	}
	s.flush()

	return nil
}

func (s *StreamingRenderer) flush() {
	if s.flusher != nil {
		s.flusher.Flush()
	}
}

// stickyWriter latches the first write error so a section can be emitted
// as a straight sequence of writes with one check at the flush point.
type stickyWriter struct {
	w   io.Writer
	err error
}

func (sw *stickyWriter) writeString(s string) {
	if sw.err == nil {
		_, sw.err = io.WriteString(sw.w, s)
	}
}

func (sw *stickyWriter) call(fn func(io.Writer) error) {
	if sw.err == nil {
		sw.err = fn(sw.w)
	}
}

// FlushableWriter wraps an io.Writer with flush counting, for exercising
// streaming behavior without an http.ResponseWriter.
type FlushableWriter struct {
	io.Writer
	FlushCount int
}

// Flush implements http.Flusher.
func (w *FlushableWriter) Flush() {
	w.FlushCount++
}
