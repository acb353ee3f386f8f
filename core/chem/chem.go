// Package chem rewrites \ce{...} chemistry notation into LaTeX.
//
// The rewrite is a single character scan, not a chemistry grammar. It does
// not understand nested groups, stoichiometric coefficients or ions that
// span a space.
package chem

import "strings"

// ToLaTeX converts formula to upright LaTeX. Digit runs become subscripts,
// "->" becomes a right arrow between upright groups, and '^' superscripts
// everything up to the next space.
func ToLaTeX(formula string) string {
	var b strings.Builder
	b.WriteString(`\mathrm{`)

	runes := []rune(formula)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		switch {
		case isDigit(r):
			b.WriteString("_{")
			for i < len(runes) && isDigit(runes[i]) {
				b.WriteRune(runes[i])
				i++
			}
			b.WriteString("}")
			i--
		case r == '-' && i+1 < len(runes) && runes[i+1] == '>':
			b.WriteString(`}\rightarrow\mathrm{`)
			i++
		case r == '^':
			b.WriteString("^{")
			i++
			for i < len(runes) && runes[i] != ' ' {
				b.WriteRune(runes[i])
				i++
			}
			b.WriteString("}")
			// the terminating space, if any, is emitted by the next iteration
			i--
		default:
			b.WriteRune(r)
		}
	}

	b.WriteString("}")
	return b.String()
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}
