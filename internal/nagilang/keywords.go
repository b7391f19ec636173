// Package nagilang is a worked-example target language for the ebnf/lex,
// ebnf/grammar, and ebnf/packrat packages: a small expression- and
// statement-oriented language with a left-recursive precedence chain,
// giving those packages something non-trivial to tokenize and parse in
// their own tests and in the cmd/nagic driver.
package nagilang

// Keywords maps each reserved word to its shaped-token keyword tag. Any
// identifier not present here stays a plain identifier.
var Keywords = map[string]string{
	"fn":       "fn",
	"let":      "let",
	"ref":      "ref",
	"mut":      "mut",
	"const":    "const",
	"loop":     "loop",
	"for":      "for",
	"while":    "while",
	"if":       "if",
	"else":     "else",
	"in":       "in",
	"impl":     "impl",
	"return":   "return",
	"break":    "break",
	"continue": "continue",
	"struct":   "struct",
	"union":    "union",
	"enum":     "enum",
	"pub":      "pub",
	"type":     "type",
	"match":    "match",
	"static":   "static",
	"extern":   "extern",
}
