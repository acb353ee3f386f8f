package parser

import (
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// blockHeader is the opener line of a question block:
//
//	:::{.question type=multiple_choice points=2 title=Cell_Biology}
//
//nolint:govet // participle grammar tags are not standard struct tags
type blockHeader struct {
	Items []*headerItem `":::{.question" ( @@ | "}" )*`
}

//nolint:govet // participle grammar tags are not standard struct tags
type headerItem struct {
	Pair string `  @Pair`
	Word string `| @Word`
}

var headerLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Opener", Pattern: `:::\{\.question`},
	{Name: "Close", Pattern: `\}`},
	{Name: "Pair", Pattern: `[^\s=}]+=[^\s}]*`},
	{Name: "Word", Pattern: `[^\s}]+`},
	{Name: "Whitespace", Pattern: `\s+`},
})

var headerParser = participle.MustBuild[blockHeader](
	participle.Lexer(headerLexer),
	participle.Elide("Whitespace"),
)

// parseHeader returns the key=value attributes of an opener line in
// order. Bare words are ignored; a repeated key keeps the last value.
func parseHeader(line string) (map[string]string, error) {
	h, err := headerParser.ParseString("", strings.TrimSpace(line))
	if err != nil {
		return nil, err
	}

	attrs := make(map[string]string, len(h.Items))
	for _, item := range h.Items {
		if item.Pair == "" {
			continue
		}
		key, value, _ := strings.Cut(item.Pair, "=")
		attrs[key] = value
	}
	return attrs, nil
}
