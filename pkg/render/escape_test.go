package render

import "testing"

func TestEscapeHTML(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"plain", "plain"},
		{"a < b", "a &lt; b"},
		{"a > b", "a &gt; b"},
		{"fish & chips", "fish &amp; chips"},
		{`say "hi"`, "say &quot;hi&quot;"},
		{"it's", "it&#39;s"},
		{"<script>alert(1)</script>", "&lt;script&gt;alert(1)&lt;/script&gt;"},
		{"", ""},
		{"héllo→", "héllo→"},
		{"héllo <б>", "héllo &lt;б&gt;"},
	}
	for _, tt := range tests {
		if got := escapeHTML(tt.in); got != tt.want {
			t.Errorf("escapeHTML(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestEscapeAttr(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"plain", "plain"},
		{`a"b`, "a&quot;b"},
		{"line\nbreak", "line&#10;break"},
		{"tab\there", "tab&#9;here"},
		{"cr\rhere", "cr&#13;here"},
		{"<&>", "&lt;&amp;&gt;"},
	}
	for _, tt := range tests {
		if got := escapeAttr(tt.in); got != tt.want {
			t.Errorf("escapeAttr(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
