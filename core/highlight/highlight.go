// Package highlight turns fenced code blocks into inline-styled XHTML.
package highlight

import (
	"strings"
	"sync"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"

	"github.com/FocuswithJustin/quizpack/core/errors"
)

// DefaultStyle is used when no style is configured.
const DefaultStyle = "github"

// Highlighter renders source code in a language to a markup fragment.
// The fragment must be well-formed XML.
type Highlighter interface {
	Highlight(lang, code string) (string, error)
}

// Chroma is a Highlighter backed by chroma. Styles use inline attributes
// rather than CSS classes since QTI packages carry no stylesheet.
type Chroma struct {
	styleName string

	once      sync.Once
	style     *chroma.Style
	formatter *html.Formatter
}

// NewChroma returns a Chroma highlighter for the named style. An empty or
// unknown name falls back to DefaultStyle.
func NewChroma(style string) *Chroma {
	return &Chroma{styleName: style}
}

func (c *Chroma) init() {
	name := c.styleName
	if _, ok := styles.Registry[name]; !ok {
		name = DefaultStyle
	}
	c.style = styles.Get(name)
	c.formatter = html.New(html.WithClasses(false), html.TabWidth(4))
}

// Style reports the resolved style name.
func (c *Chroma) Style() string {
	c.once.Do(c.init)
	return c.style.Name
}

// Highlight renders code. Unknown or empty language tags use the
// plain-text lexer.
func (c *Chroma) Highlight(lang, code string) (string, error) {
	c.once.Do(c.init)

	lexer := lexerFor(lang)
	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		return "", errors.NewRender("highlight", code, err)
	}

	var b strings.Builder
	if err := c.formatter.Format(&b, c.style, iterator); err != nil {
		return "", errors.NewRender("highlight", code, err)
	}
	return b.String(), nil
}

func lexerFor(lang string) chroma.Lexer {
	var l chroma.Lexer
	if lang != "" {
		l = lexers.Get(lang)
	}
	if l == nil {
		l = lexers.Fallback
	}
	return chroma.Coalesce(l)
}
