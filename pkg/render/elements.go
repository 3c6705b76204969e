package render

// isVoidElement reports whether tag has no closing tag and can never have
// children.
func isVoidElement(tag string) bool {
	switch tag {
	case "area", "base", "br", "col", "embed", "hr", "img", "input",
		"link", "meta", "param", "source", "track", "wbr":
		return true
	}
	return false
}

// isInlineElement reports whether tag renders inline; pretty-printed
// output gives such elements no surrounding newlines.
func isInlineElement(tag string) bool {
	switch tag {
	case "a", "abbr", "b", "bdi", "bdo", "br", "cite", "code", "data",
		"dfn", "em", "i", "kbd", "mark", "q", "rb", "rp", "rt", "rtc",
		"ruby", "s", "samp", "small", "span", "strong", "sub", "sup",
		"time", "u", "var", "wbr":
		return true
	}
	return false
}

// isBooleanAttr reports whether name is a boolean attribute: rendered as
// the bare name when true, omitted entirely when false.
func isBooleanAttr(name string) bool {
	switch name {
	case "allowfullscreen", "async", "autofocus", "autoplay", "checked",
		"controls", "default", "defer", "disabled", "formnovalidate",
		"hidden", "ismap", "itemscope", "loop", "multiple", "muted",
		"nomodule", "novalidate", "open", "playsinline", "readonly",
		"required", "reversed", "selected":
		return true
	}
	return false
}
