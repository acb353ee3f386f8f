// Package lexer splits quiz markup into inline tokens: math, chemistry,
// images, music notation and fenced code. Everything else is Text.
package lexer

import (
	"regexp"
	"strings"
)

// Token is one classified span of markup. The concrete types below are the
// only implementations.
type Token interface {
	token()
}

// Text is verbatim markup between recognized constructs.
type Text struct {
	Value string
}

// LatexMath is a $...$ or $$...$$ span with its delimiters removed.
type LatexMath struct {
	Source  string
	Display bool
}

// Chemistry is the body of a \ce{...} macro.
type Chemistry struct {
	Formula string
}

// Image is a ![alt](src) reference.
type Image struct {
	Src string
	Alt string
}

// Music is the payload of a ```musicxml fenced block.
type Music struct {
	Content string
}

// Code is a fenced block with any other language tag, possibly empty.
type Code struct {
	Lang    string
	Content string
}

func (Text) token()      {}
func (LatexMath) token() {}
func (Chemistry) token() {}
func (Image) token()     {}
func (Music) token()     {}
func (Code) token()      {}

// Alternatives are tried in this order at each position; the leftmost
// match in the input wins.
//
// Inline math opens at a '$' not followed by whitespace, stays on one line,
// and closes at the next '$' not preceded by whitespace, so prices such as
// "$5 and $10" remain text.
var pattern = regexp.MustCompile(strings.Join([]string{
	`(\$\$[\s\S]*?\$\$)`,
	`(\$[^\s$](?:[^$\n]*[^\s$])?\$)`,
	`\\ce\{([\s\S]*?)\}`,
	`!\[(.*?)\]\((.*?)\)`,
	"```musicxml\\n([\\s\\S]*?)```",
	"```(\\w*)\\n([\\s\\S]*?)```",
}, "|"))

// Submatch group numbers in pattern.
const (
	groupBlockMath = iota + 1
	groupInlineMath
	groupChem
	groupImageAlt
	groupImageSrc
	groupMusic
	groupCodeLang
	groupCodeBody
)

// Tokenize returns the tokens of text in source order. Adjacent constructs
// produce no empty Text between them, and text without any construct
// yields a single Text token.
func Tokenize(text string) []Token {
	matches := pattern.FindAllStringSubmatchIndex(text, -1)
	if len(matches) == 0 {
		return []Token{Text{Value: text}}
	}

	tokens := make([]Token, 0, 2*len(matches)+1)
	last := 0
	for _, m := range matches {
		if m[0] > last {
			tokens = append(tokens, Text{Value: text[last:m[0]]})
		}
		tokens = append(tokens, classify(text, m))
		last = m[1]
	}
	if last < len(text) {
		tokens = append(tokens, Text{Value: text[last:]})
	}
	return tokens
}

func classify(text string, m []int) Token {
	group := func(n int) (string, bool) {
		if m[2*n] < 0 {
			return "", false
		}
		return text[m[2*n]:m[2*n+1]], true
	}

	if s, ok := group(groupBlockMath); ok {
		return LatexMath{Source: stripMath(s), Display: true}
	}
	if s, ok := group(groupInlineMath); ok {
		return LatexMath{Source: stripMath(s)}
	}
	if s, ok := group(groupChem); ok {
		return Chemistry{Formula: s}
	}
	if src, ok := group(groupImageSrc); ok {
		alt, _ := group(groupImageAlt)
		return Image{Src: src, Alt: alt}
	}
	if s, ok := group(groupMusic); ok {
		return Music{Content: s}
	}
	lang, _ := group(groupCodeLang)
	body, _ := group(groupCodeBody)
	return Code{Lang: lang, Content: body}
}

func stripMath(s string) string {
	return strings.TrimSpace(strings.Trim(s, "$"))
}
