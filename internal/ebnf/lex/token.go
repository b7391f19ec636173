package lex

import "fmt"

// TokenKind classifies a shaped token.
type TokenKind int

const (
	TokenIdentifier TokenKind = iota
	TokenKeyword
	TokenLiteral
	TokenOperator
	TokenSymbol
)

func (k TokenKind) String() string {
	switch k {
	case TokenIdentifier:
		return "Identifier"
	case TokenKeyword:
		return "Keyword"
	case TokenLiteral:
		return "Literal"
	case TokenOperator:
		return "Operator"
	case TokenSymbol:
		return "Symbol"
	default:
		return fmt.Sprintf("TokenKind(%d)", int(k))
	}
}

// LiteralKind distinguishes the three literal payload shapes.
type LiteralKind int

const (
	LiteralInteger LiteralKind = iota
	LiteralFloat
	LiteralString
)

// Literal is the payload of a TokenLiteral token.
type Literal struct {
	Kind LiteralKind

	// Integer fields.
	Signed bool
	Int    uint64

	// Float fields.
	Float float64

	// Shared trailing-identifier suffix, e.g. the "u32" in 42u32.
	Suffix   string
	HasSuffix bool

	// String fields (payload intentionally left to the caller's literal
	// matcher to interpret; the shaper only recognizes that a string
	// literal occupies the token).
	Text string
}

// Token is a single shaped token: a language-aware lexical unit with no
// whitespace or comments remaining in the stream.
//
// Exactly one of Name, Keyword, Lit, Operator, Symbol is meaningful,
// selected by Kind.
type Token struct {
	Kind   TokenKind
	Offset int

	Name     string  // TokenIdentifier
	Keyword  string  // TokenKeyword: tag name from the caller's keyword table
	Lit      Literal // TokenLiteral
	Operator string  // TokenOperator: tag name from the caller's operator table
	Symbol   string  // TokenSymbol: tag name from the caller's symbol table
}

func (t Token) String() string {
	switch t.Kind {
	case TokenIdentifier:
		return fmt.Sprintf("Identifier(%s)@%d", t.Name, t.Offset)
	case TokenKeyword:
		return fmt.Sprintf("Keyword(%s)@%d", t.Keyword, t.Offset)
	case TokenLiteral:
		return fmt.Sprintf("Literal(%v)@%d", t.Lit, t.Offset)
	case TokenOperator:
		return fmt.Sprintf("Operator(%s)@%d", t.Operator, t.Offset)
	case TokenSymbol:
		return fmt.Sprintf("Symbol(%s)@%d", t.Symbol, t.Offset)
	default:
		return fmt.Sprintf("Token(?)@%d", t.Offset)
	}
}
