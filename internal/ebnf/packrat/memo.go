package packrat

import "github.com/dekarrin/nagi/internal/ebnf/grammar"

// memoKey addresses one memoized evaluation: a rule name, the token
// position evaluation started from, and the address within that rule's
// tree being evaluated.
type memoKey struct {
	rule     string
	position int
	state    grammar.State
}

// growKey identifies a (rule, state) pair under consideration for
// left-recursive growth, independent of position — the position is what
// the grow loop advances.
type growKey struct {
	rule  string
	state grammar.State
}

// resultKind discriminates the outcomes a rule evaluation can settle into.
type resultKind int

const (
	// resultFail is the internal-only placeholder seed value used while a
	// left-recursive rule's evaluation is still pending. It never escapes
	// to a caller of Engine.Parse.
	resultFail resultKind = iota
	resultMatch
	resultMismatch
)

// memoResult is the outcome recorded for a memoKey: pending (Fail),
// matched (with an assembly), or mismatched.
type memoResult[A, P any] struct {
	kind     resultKind
	assembly ASTAssembly[A, P]
}

func failResult[A, P any]() memoResult[A, P] {
	return memoResult[A, P]{kind: resultFail}
}

func mismatchResult[A, P any]() memoResult[A, P] {
	return memoResult[A, P]{kind: resultMismatch}
}

func matchResult[A, P any](assembly ASTAssembly[A, P]) memoResult[A, P] {
	return memoResult[A, P]{kind: resultMatch, assembly: assembly}
}

// memoEntry pairs a recorded result with the token position parsing
// should resume from after it.
type memoEntry[A, P any] struct {
	result   memoResult[A, P]
	position int
}
