package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/filament-ui/filament/pkg/vnode"
)

func TestRenderPage(t *testing.T) {
	var buf bytes.Buffer
	err := NewRenderer(Config{}).RenderPage(&buf, PageData{
		Body:        vnode.NewElement("main", nil, "content"),
		Title:       "Filament <Demo>",
		StyleSheets: []string{"/app.css"},
		SessionID:   "sess-1",
	})
	if err != nil {
		t.Fatalf("RenderPage: %v", err)
	}
	out := buf.String()

	checks := []string{
		"<!DOCTYPE html>",
		`<html lang="en">`,
		`<meta charset="utf-8">`,
		"<title>Filament &lt;Demo&gt;</title>",
		`<link rel="stylesheet" href="/app.css">`,
		"<main>content</main>",
		`window.__FILAMENT_SESSION__="sess-1"`,
		`<script src="/_filament/client.js" defer></script>`,
		"</body>\n</html>\n",
	}
	for _, want := range checks {
		if !strings.Contains(out, want) {
			t.Errorf("page output missing %q\noutput:\n%s", want, out)
		}
	}
}

func TestRenderPageHeadTags(t *testing.T) {
	var buf bytes.Buffer
	err := NewRenderer(Config{}).RenderPage(&buf, PageData{
		Body: vnode.NewElement("div", nil),
		Lang: "de",
		Meta: []MetaTag{
			{Name: "description", Content: "a demo"},
			{Property: "og:title", Content: "demo"},
		},
		Links:   []LinkTag{{Rel: "icon", Href: "/favicon.ico", Type: "image/x-icon"}},
		Scripts: []ScriptTag{{Src: "/extra.js", Defer: true}},
		Styles:  []string{"body{margin:0}"},
	})
	if err != nil {
		t.Fatal(err)
	}
	out := buf.String()

	checks := []string{
		`<html lang="de">`,
		`<meta name="description" content="a demo">`,
		`<meta property="og:title" content="demo">`,
		`<link rel="icon" href="/favicon.ico" type="image/x-icon">`,
		`<script src="/extra.js" defer></script>`,
		"<style>body{margin:0}</style>",
	}
	for _, want := range checks {
		if !strings.Contains(out, want) {
			t.Errorf("page output missing %q", want)
		}
	}
}

func TestRenderPageNoSession(t *testing.T) {
	var buf bytes.Buffer
	if err := NewRenderer(Config{}).RenderPage(&buf, PageData{
		Body: vnode.NewElement("div", nil),
	}); err != nil {
		t.Fatal(err)
	}
	if strings.Contains(buf.String(), "__FILAMENT_SESSION__") {
		t.Error("session script injected without a session ID")
	}
}
