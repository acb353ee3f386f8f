// Package mathml renders a practical subset of LaTeX math into
// Presentation MathML.
//
// The supported subset covers identifiers, numbers, operators, braced
// groups, sub- and superscripts, \frac, \sqrt, \text, font switches
// (\mathrm, \mathbf, \mathit, \operatorname), Greek letters, common
// relations, arrows, big operators, named functions and spacing commands.
// Anything else is reported as an error so that callers can fall back to
// showing the source.
package mathml

import (
	"fmt"
	"strings"

	"github.com/FocuswithJustin/quizpack/core/cache"
	"github.com/FocuswithJustin/quizpack/core/encoding"
)

// Namespace is the MathML namespace URI.
const Namespace = "http://www.w3.org/1998/Math/MathML"

// Renderer turns LaTeX source into a MathML document fragment.
type Renderer interface {
	Render(latex string, display bool) (string, error)
}

// DefaultCacheSize bounds the number of memoized renderings per Engine.
const DefaultCacheSize = 512

type memoKey struct {
	src     string
	display bool
}

type memoValue struct {
	markup string
	err    error
}

// Engine is the built-in Renderer. It is safe for concurrent use.
type Engine struct {
	memo cache.Cache[memoKey, memoValue]
}

// NewEngine returns an Engine memoizing up to cacheSize renderings.
func NewEngine(cacheSize int) *Engine {
	return &Engine{memo: cache.NewLRU[memoKey, memoValue](cacheSize)}
}

// Render converts latex to a <math> element. Failures are memoized as well,
// so a broken formula repeated across a quiz is parsed once.
func (e *Engine) Render(latex string, display bool) (string, error) {
	key := memoKey{src: latex, display: display}
	if v, ok := e.memo.Get(key); ok {
		return v.markup, v.err
	}
	markup, err := render(latex, display)
	e.memo.Put(key, memoValue{markup: markup, err: err})
	return markup, err
}

// Stats exposes memo cache statistics.
func (e *Engine) Stats() cache.Stats {
	return e.memo.Stats()
}

func render(latex string, display bool) (string, error) {
	mode := "inline"
	if display {
		mode = "block"
	}

	var body string
	if strings.TrimSpace(latex) != "" {
		expr, err := mathParser.ParseString("", latex)
		if err != nil {
			return "", fmt.Errorf("parse latex: %w", err)
		}
		nodes, err := expr.nodes(styleDefault)
		if err != nil {
			return "", err
		}
		body = strings.Join(nodes, "")
	}

	return fmt.Sprintf(`<math xmlns="%s" display="%s">%s</math>`, Namespace, mode, body), nil
}

type style int

const (
	styleDefault style = iota
	styleNormal
	styleBold
	styleItalic
)

func (s style) variant() string {
	switch s {
	case styleNormal:
		return "normal"
	case styleBold:
		return "bold"
	case styleItalic:
		return "italic"
	}
	return ""
}

var fontStyles = map[string]style{
	`\mathrm`:       styleNormal,
	`\operatorname`: styleNormal,
	`\mathbf`:       styleBold,
	`\mathit`:       styleItalic,
}

const emptyRow = "<mrow></mrow>"

// scripted is an atom together with the scripts attached to it.
type scripted struct {
	base           string
	sub, sup       string
	hasSub, hasSup bool
}

func (s *scripted) markup() string {
	switch {
	case s.hasSub && s.hasSup:
		return "<msubsup>" + s.base + s.sub + s.sup + "</msubsup>"
	case s.hasSub:
		return "<msub>" + s.base + s.sub + "</msub>"
	case s.hasSup:
		return "<msup>" + s.base + s.sup + "</msup>"
	}
	return s.base
}

func (e *mathExpr) nodes(st style) ([]string, error) {
	var pieces []*scripted
	for _, item := range e.Items {
		if item.Atom != nil {
			s, err := item.Atom.render(st)
			if err != nil {
				return nil, err
			}
			if s != "" {
				pieces = append(pieces, &scripted{base: s})
			}
			continue
		}

		arg, isSup := item.Sub, false
		if item.Sup != nil {
			arg, isSup = item.Sup, true
		}
		s, err := arg.render(st)
		if err != nil {
			return nil, err
		}
		if len(pieces) == 0 {
			pieces = append(pieces, &scripted{base: emptyRow})
		}
		last := pieces[len(pieces)-1]
		if isSup {
			if last.hasSup {
				return nil, fmt.Errorf("double superscript")
			}
			last.sup, last.hasSup = s, true
		} else {
			if last.hasSub {
				return nil, fmt.Errorf("double subscript")
			}
			last.sub, last.hasSub = s, true
		}
	}

	out := make([]string, len(pieces))
	for i, p := range pieces {
		out[i] = p.markup()
	}
	return out, nil
}

// row renders an expression as a single MathML node.
func (e *mathExpr) row(st style) (string, error) {
	nodes, err := e.nodes(st)
	if err != nil {
		return "", err
	}
	if len(nodes) == 1 {
		return nodes[0], nil
	}
	return "<mrow>" + strings.Join(nodes, "") + "</mrow>", nil
}

func (a *mathArg) render(st style) (string, error) {
	if a.Group != nil {
		return a.Group.row(st)
	}
	s, err := a.Atom.render(st)
	if err != nil {
		return "", err
	}
	if s == "" {
		return emptyRow, nil
	}
	return s, nil
}

func (a *mathAtom) render(st style) (string, error) {
	switch {
	case a.Group != nil:
		return a.Group.row(st)
	case a.Frac != nil:
		num, err := a.Frac.Num.render(st)
		if err != nil {
			return "", err
		}
		den, err := a.Frac.Den.render(st)
		if err != nil {
			return "", err
		}
		return "<mfrac>" + num + den + "</mfrac>", nil
	case a.Sqrt != nil:
		body, err := a.Sqrt.Body.render(st)
		if err != nil {
			return "", err
		}
		if a.Sqrt.Index == nil {
			return "<msqrt>" + body + "</msqrt>", nil
		}
		index, err := a.Sqrt.Index.render(st)
		if err != nil {
			return "", err
		}
		return "<mroot>" + body + index + "</mroot>", nil
	case a.Font != nil:
		return a.Font.Body.render(fontStyles[a.Font.Name])
	case a.Text != "":
		inner := strings.TrimSuffix(strings.TrimPrefix(a.Text, `\text{`), "}")
		return "<mtext>" + encoding.EscapeXMLText(inner) + "</mtext>", nil
	case a.Command != "":
		sym, ok := symbols[a.Command]
		if !ok {
			return "", fmt.Errorf("unsupported command %s", a.Command)
		}
		return sym.markup(), nil
	case a.Number != "":
		return "<mn>" + a.Number + "</mn>", nil
	case a.Ident != "":
		if v := st.variant(); v != "" {
			return fmt.Sprintf(`<mi mathvariant="%s">%s</mi>`, v, a.Ident), nil
		}
		return "<mi>" + a.Ident + "</mi>", nil
	case a.Op != "":
		return "<mo>" + encoding.EscapeXMLText(a.Op) + "</mo>", nil
	}
	return "", nil
}

func (s symbol) markup() string {
	switch s.tag {
	case "":
		return ""
	case "mspace":
		return fmt.Sprintf(`<mspace width="%s"></mspace>`, s.width)
	}
	return "<" + s.tag + ">" + encoding.EscapeXMLText(s.text) + "</" + s.tag + ">"
}
