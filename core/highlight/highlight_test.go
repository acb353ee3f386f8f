package highlight

import (
	"bytes"
	"encoding/xml"
	"io"
	"strings"
	"testing"
)

func assertWellFormed(t *testing.T, fragment string) {
	t.Helper()
	dec := xml.NewDecoder(bytes.NewReader([]byte("<root>" + fragment + "</root>")))
	for {
		_, err := dec.Token()
		if err == io.EOF {
			return
		}
		if err != nil {
			t.Fatalf("fragment is not well-formed: %v\n%s", err, fragment)
		}
	}
}

func TestHighlight(t *testing.T) {
	tests := []struct {
		name string
		lang string
		code string
	}{
		{"python", "python", "def f(x):\n    return x < 1 and 'a' or \"b\"\n"},
		{"go", "go", "package main\n\nfunc main() { println(1 & 2) }\n"},
		{"unknown language", "nosuchlang", "a <b> & c\n"},
		{"no language", "", "plain text\n"},
	}

	h := NewChroma("")
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := h.Highlight(tt.lang, tt.code)
			if err != nil {
				t.Fatalf("Highlight() error: %v", err)
			}
			if !strings.HasPrefix(got, "<pre") || !strings.HasSuffix(got, "</code></pre>") {
				t.Errorf("unexpected wrapper: %s", got)
			}
			if strings.Contains(got, "class=") {
				t.Errorf("expected inline styles, got classes: %s", got)
			}
			assertWellFormed(t, got)
		})
	}
}

// TestHighlightEscapes verifies markup characters in code are escaped.
func TestHighlightEscapes(t *testing.T) {
	got, err := NewChroma(DefaultStyle).Highlight("", "<script>&</script>")
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(got, "<script>") {
		t.Errorf("raw markup leaked into output: %s", got)
	}
	if !strings.Contains(got, "&lt;script&gt;") {
		t.Errorf("expected escaped text, got %s", got)
	}
}

func TestStyleFallback(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", DefaultStyle},
		{"does-not-exist", DefaultStyle},
		{"monokai", "monokai"},
	}
	for _, tt := range tests {
		if got := NewChroma(tt.in).Style(); got != tt.want {
			t.Errorf("NewChroma(%q).Style() = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestLexerFor(t *testing.T) {
	if lexerFor("python") == nil || lexerFor("") == nil || lexerFor("zzz") == nil {
		t.Fatal("lexerFor returned nil")
	}
}
