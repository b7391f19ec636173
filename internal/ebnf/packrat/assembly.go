// Package packrat implements an iterative, memoizing Packrat parser with
// support for direct left recursion via the seed-and-grow algorithm. The
// engine is driven entirely by an explicit frame stack rather than the Go
// call stack, so arbitrarily deep grammars never risk a stack overflow.
package packrat

import "github.com/dekarrin/nagi/internal/ebnf/grammar"

// AssemblyKind discriminates the states an ASTAssembly can be in.
type AssemblyKind int

const (
	// AssemblyNone means a rule matched but produced no AST of its own —
	// typical of punctuation-only rules whose match is only structurally
	// interesting to a parent rule.
	AssemblyNone AssemblyKind = iota
	// AssemblyAST means the rule produced a complete AST node of type A.
	AssemblyAST
	// AssemblyParts means the rule produced an intermediate value of type
	// P, to be folded into a parent rule's own AST construction rather
	// than stand as a complete node on its own.
	AssemblyParts
)

// ASTAssembly is the result a matched rule hands back to its caller: no
// value, a finished AST node, or a partial value a parent rule's builder
// will fold in.
type ASTAssembly[A, P any] struct {
	Kind  AssemblyKind
	AST   A
	Parts P
}

// NoAssembly builds an ASTAssembly carrying no value.
func NoAssembly[A, P any]() ASTAssembly[A, P] {
	return ASTAssembly[A, P]{Kind: AssemblyNone}
}

// ASTResult builds an ASTAssembly wrapping a finished AST node.
func ASTResult[A, P any](ast A) ASTAssembly[A, P] {
	return ASTAssembly[A, P]{Kind: AssemblyAST, AST: ast}
}

// PartsResult builds an ASTAssembly wrapping a partial value for a parent
// rule to assemble further.
func PartsResult[A, P any](parts P) ASTAssembly[A, P] {
	return ASTAssembly[A, P]{Kind: AssemblyParts, Parts: parts}
}

// BuilderKind discriminates the variants of ASTBuilder.
type BuilderKind int

const (
	// BuilderNone means the rule is structural only: no callback fires
	// when it matches.
	BuilderNone BuilderKind = iota
	// BuilderOnMatch fires once a rule's root state has fully matched,
	// receiving the rule's own tree so it can inspect whatever shape
	// matched and assemble an AST from it.
	BuilderOnMatch
	// BuilderParsed marks a rule as a terminal that is already resolved
	// at the token level: instead of walking the rule's grammar tree, the
	// callback is handed the current token directly and decides the
	// match itself, consuming exactly one token on success.
	BuilderParsed
)

// ASTBuilder attaches AST-construction behavior to a rule.
type ASTBuilder[T, A, P any] struct {
	Kind    BuilderKind
	OnMatch func(rule *grammar.Rule) (ASTAssembly[A, P], error)
	Parsed  func(token *T) (ASTAssembly[A, P], error)
}

// NoBuilder returns a builder that performs no AST construction.
func NoBuilder[T, A, P any]() ASTBuilder[T, A, P] {
	return ASTBuilder[T, A, P]{Kind: BuilderNone}
}

// OnMatchBuilder returns a builder that fires fn when the rule's root
// state fully matches.
func OnMatchBuilder[T, A, P any](fn func(rule *grammar.Rule) (ASTAssembly[A, P], error)) ASTBuilder[T, A, P] {
	return ASTBuilder[T, A, P]{Kind: BuilderOnMatch, OnMatch: fn}
}

// ParsedBuilder returns a builder that resolves a rule directly against
// the current token, without walking a grammar tree.
func ParsedBuilder[T, A, P any](fn func(token *T) (ASTAssembly[A, P], error)) ASTBuilder[T, A, P] {
	return ASTBuilder[T, A, P]{Kind: BuilderParsed, Parsed: fn}
}

// LiteralMatcher decides whether a literal token text from a grammar rule
// matches the given token, producing the assembly to attach on a match.
// It is supplied once per Engine and consulted for every Literal node.
type LiteralMatcher[T, A, P any] func(literal string, token *T) (ASTAssembly[A, P], bool)
