package nagilang

import "github.com/dekarrin/nagi/internal/ebnf/lex"

// Symbols is nagilang's structural-punctuation pattern table. It is tried
// before Operators by the shaper (see lex.Config), so "::" is never misread
// as two colons each needing their own operator entry.
var Symbols = lex.NewPatternTable([]lex.Pattern[string]{
	{Runes: []rune("("), Value: "lparen"},
	{Runes: []rune(")"), Value: "rparen"},
	{Runes: []rune("{"), Value: "lbrace"},
	{Runes: []rune("}"), Value: "rbrace"},
	{Runes: []rune("["), Value: "lbracket"},
	{Runes: []rune("]"), Value: "rbracket"},
	{Runes: []rune(","), Value: "comma"},
	{Runes: []rune(";"), Value: "semi"},
	{Runes: []rune("::"), Value: "path_sep"},
	{Runes: []rune(":"), Value: "colon"},
})
