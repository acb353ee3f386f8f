package mathml

import (
	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// mathExpr is a sequence of atoms and scripts, e.g. the body of a group.
//
//nolint:govet // participle grammar tags are not standard struct tags
type mathExpr struct {
	Items []*mathItem `@@*`
}

// Scripts are parsed as postfix items and attached to the preceding atom
// while rendering, which keeps the grammar free of empty alternatives.
//
//nolint:govet // participle grammar tags are not standard struct tags
type mathItem struct {
	Sup  *mathArg  `  "^" @@`
	Sub  *mathArg  `| "_" @@`
	Atom *mathAtom `| @@`
}

// mathArg is the argument of a script or command: a braced group or a
// single atom.
//
//nolint:govet // participle grammar tags are not standard struct tags
type mathArg struct {
	Group *mathExpr `  "{" @@ "}"`
	Atom  *mathAtom `| @@`
}

//nolint:govet // participle grammar tags are not standard struct tags
type mathAtom struct {
	Group   *mathExpr `  "{" @@ "}"`
	Frac    *mathFrac `| @@`
	Sqrt    *mathSqrt `| @@`
	Font    *mathFont `| @@`
	Text    string    `| @TextCmd`
	Command string    `| @Command`
	Number  string    `| @Number`
	Ident   string    `| @Ident`
	Op      string    `| @Op`
}

//nolint:govet // participle grammar tags are not standard struct tags
type mathFrac struct {
	Num *mathArg `("\\frac" | "\\dfrac" | "\\tfrac") @@`
	Den *mathArg `@@`
}

//nolint:govet // participle grammar tags are not standard struct tags
type mathSqrt struct {
	Index *mathArg `"\\sqrt" ( "[" @@ "]" )?`
	Body  *mathArg `@@`
}

//nolint:govet // participle grammar tags are not standard struct tags
type mathFont struct {
	Name string   `@("\\mathrm" | "\\mathbf" | "\\mathit" | "\\operatorname")`
	Body *mathArg `@@`
}

// mathLexer tokenizes the supported LaTeX subset. Rule order matters:
// \text{...} is captured whole so its spaces survive whitespace elision.
var mathLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "TextCmd", Pattern: `\\text\{[^{}]*\}`},
	{Name: "Command", Pattern: `\\([a-zA-Z]+|[^a-zA-Z\n])`},
	{Name: "Number", Pattern: `[0-9]+(\.[0-9]+)?`},
	{Name: "Ident", Pattern: `[a-zA-Z]`},
	{Name: "Punct", Pattern: `[{}^_]`},
	{Name: "Op", Pattern: `[^\s{}^_\\a-zA-Z0-9]`},
	{Name: "Whitespace", Pattern: `\s+`},
})

var mathParser = participle.MustBuild[mathExpr](
	participle.Lexer(mathLexer),
	participle.Elide("Whitespace"),
)
