package encoding

import "testing"

func TestSanitizeXML(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"plain text", "x + y", "x + y"},
		{"whitespace kept", "a\tb\r\nc", "a\tb\r\nc"},
		{"vertical tab", "a\x0bb", "a\uFFFDb"},
		{"escape sequence", "\x1b[31mred", "\uFFFD[31mred"},
		{"nul", "a\x00", "a\uFFFD"},
		{"invalid utf-8", "caf\xe9", "caf\uFFFD"},
		{"truncated sequence", "x\xe2\x82", "x\uFFFD\uFFFD"},
		{"non-characters", "\uFFFE\uFFFF", "\uFFFD\uFFFD"},
		{"multibyte kept", "Δx → ∞ 🎵", "Δx → ∞ 🎵"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizeXML(tt.input); got != tt.want {
				t.Errorf("SanitizeXML(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestEscapeXMLText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"operators", "x<y&z>w", "x&lt;y&amp;z&gt;w"},
		{"quotes preserved", `"q"`, `"q"`},
		{"whitespace preserved", "line 1\n\tline 2", "line 1\n\tline 2"},
		{"musicxml", "<note><pitch/></note>", "&lt;note&gt;&lt;pitch/&gt;&lt;/note&gt;"},
		{"control character", "a\x0b<b", "a\uFFFD&lt;b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EscapeXMLText(tt.input); got != tt.want {
				t.Errorf("EscapeXMLText(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
