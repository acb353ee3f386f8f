// Package encoding provides shared text escaping utilities for generated markup.
package encoding

import (
	"strings"
	"unicode/utf8"
)

// SanitizeXML replaces invalid UTF-8 and characters outside the XML 1.0
// Char production with U+FFFD, matching what xml.EscapeText does.
func SanitizeXML(s string) string {
	if isXMLSafe(s) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if (r == utf8.RuneError && size == 1) || !isInCharacterRange(r) {
			r = utf8.RuneError
		}
		b.WriteRune(r)
		i += size
	}
	return b.String()
}

func isXMLSafe(s string) bool {
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if (r == utf8.RuneError && size == 1) || !isInCharacterRange(r) {
			return false
		}
		i += size
	}
	return true
}

// isInCharacterRange reports whether r may appear in an XML document.
func isInCharacterRange(r rune) bool {
	return r == 0x09 ||
		r == 0x0A ||
		r == 0x0D ||
		r >= 0x20 && r <= 0xD7FF ||
		r >= 0xE000 && r <= 0xFFFD ||
		r >= 0x10000 && r <= 0x10FFFF
}

// EscapeXMLText escapes only the basic XML entities for text content.
// Whitespace is left untouched, which matters inside <pre> and <mtext>.
// Characters XML cannot carry are replaced first.
func EscapeXMLText(s string) string {
	s = SanitizeXML(s)
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	return s
}
