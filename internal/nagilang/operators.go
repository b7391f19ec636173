package nagilang

import "github.com/dekarrin/nagi/internal/ebnf/lex"

// Operators is nagilang's operator pattern table: arithmetic, compound
// assignment, comparison, logical, bitwise, member access, and the
// try/propagate suffix. Entries sharing a leading rune (e.g. "<", "<=",
// "<<") are disambiguated by PatternTable's longest-match-first ordering.
var Operators = lex.NewPatternTable([]lex.Pattern[string]{
	{Runes: []rune("->"), Value: "arrow"},

	{Runes: []rune("+="), Value: "add_assign"},
	{Runes: []rune("-="), Value: "sub_assign"},
	{Runes: []rune("*="), Value: "mul_assign"},
	{Runes: []rune("/="), Value: "div_assign"},
	{Runes: []rune("%="), Value: "rem_assign"},

	{Runes: []rune("+"), Value: "add"},
	{Runes: []rune("-"), Value: "sub"},
	{Runes: []rune("*"), Value: "mul"},
	{Runes: []rune("/"), Value: "div"},
	{Runes: []rune("%"), Value: "rem"},

	{Runes: []rune("=="), Value: "eq"},
	{Runes: []rune("!="), Value: "ne"},
	{Runes: []rune("<="), Value: "le"},
	{Runes: []rune(">="), Value: "ge"},
	{Runes: []rune("<<"), Value: "shl"},
	{Runes: []rune(">>"), Value: "shr"},
	{Runes: []rune("<"), Value: "lt"},
	{Runes: []rune(">"), Value: "gt"},

	{Runes: []rune("&&"), Value: "and"},
	{Runes: []rune("||"), Value: "or"},
	{Runes: []rune("!"), Value: "not"},

	{Runes: []rune("&"), Value: "bitand"},
	{Runes: []rune("|"), Value: "bitor"},
	{Runes: []rune("^"), Value: "bitxor"},
	{Runes: []rune("~"), Value: "bitnot"},

	{Runes: []rune("."), Value: "dot"},
	{Runes: []rune("?"), Value: "try"},

	{Runes: []rune("="), Value: "assign"},
})
