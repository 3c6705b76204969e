package render

import "strings"

// Characters rewritten by the two escaping modes. Attribute values
// additionally escape whitespace that a parser would normalize inside a
// quoted value.
const (
	contentUnsafe = `&<>"'`
	attrUnsafe    = contentUnsafe + "\n\r\t"
)

// escapeHTML escapes text for element content. Most strings flowing
// through the renderer (tag text, class tokens) contain nothing to
// escape, so the clean case returns the input without allocating.
func escapeHTML(s string) string {
	if !strings.ContainsAny(s, contentUnsafe) {
		return s
	}
	return escape(s, false)
}

// escapeAttr escapes text for a double-quoted attribute value.
func escapeAttr(s string) string {
	if !strings.ContainsAny(s, attrUnsafe) {
		return s
	}
	return escape(s, true)
}

func escape(s string, attr bool) string {
	var b strings.Builder
	b.Grow(len(s) + 8)

	// All escaped characters are single ASCII bytes, so byte indexing is
	// safe in the middle of multi-byte runes.
	for i := 0; i < len(s); i++ {
		var entity string
		switch s[i] {
		case '&':
			entity = "&amp;"
		case '<':
			entity = "&lt;"
		case '>':
			entity = "&gt;"
		case '"':
			entity = "&quot;"
		case '\'':
			entity = "&#39;"
		case '\n':
			if attr {
				entity = "&#10;"
			}
		case '\r':
			if attr {
				entity = "&#13;"
			}
		case '\t':
			if attr {
				entity = "&#9;"
			}
		}
		if entity == "" {
			b.WriteByte(s[i])
		} else {
			b.WriteString(entity)
		}
	}

	return b.String()
}
