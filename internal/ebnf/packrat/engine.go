package packrat

import (
	"github.com/dekarrin/nagi/internal/ebnf/grammar"
	"github.com/dekarrin/nagi/internal/ebnf/lex"
)

// RuleTable pairs a parsed grammar rule with the AST-construction behavior
// to apply when it matches, the unit Engine is built from.
type RuleTable[T, A, P any] struct {
	Rule    *grammar.Rule
	Builder ASTBuilder[T, A, P]
}

// Engine holds the immutable configuration needed to parse a token stream
// against a fixed set of rules: the rule tables themselves and the literal
// matcher used at every Literal node. It carries no parse-in-progress
// state, so a single Engine is safe to reuse — and to share across
// goroutines — for any number of independent Parse calls; each call starts
// a fresh, self-contained session.
type Engine[T, A, P any] struct {
	rules     map[string]*RuleTable[T, A, P]
	literal   LiteralMatcher[T, A, P]
	startRule string
}

// NewEngine builds an Engine from a literal matcher and a set of rule
// tables. startRule names the rule Parse begins from by default.
func NewEngine[T, A, P any](literal LiteralMatcher[T, A, P], startRule string, tables []RuleTable[T, A, P]) (*Engine[T, A, P], error) {
	rules := make(map[string]*RuleTable[T, A, P], len(tables))
	for i := range tables {
		t := tables[i]
		if _, exists := rules[t.Rule.Name]; exists {
			return nil, &DuplicateRuleError{RuleName: t.Rule.Name}
		}
		rules[t.Rule.Name] = &t
	}

	return &Engine[T, A, P]{rules: rules, literal: literal, startRule: startRule}, nil
}

// Parse runs the engine against cursor starting from the engine's start
// rule, and returns the AST assembled by that rule's builder. The cursor's
// position on return is the position immediately following the matched
// text; callers that want to confirm the whole input was consumed should
// check cursor.Position() == cursor.Len().
func (e *Engine[T, A, P]) Parse(cursor *lex.Cursor[T]) (A, error) {
	return e.ParseRule(cursor, e.startRule)
}

// ParseRule runs the engine starting from an explicitly named rule rather
// than the engine's configured start rule — useful for testing a single
// production in isolation.
func (e *Engine[T, A, P]) ParseRule(cursor *lex.Cursor[T], ruleName string) (A, error) {
	var zero A
	if _, ok := e.rules[ruleName]; !ok {
		return zero, &UnknownRuleError{RuleName: ruleName, CallerRule: "<start>"}
	}

	s := newSession(e, cursor)
	start := memoKey{rule: ruleName, position: cursor.Position(), state: grammar.RootState()}

	s.frameStack = append(s.frameStack, frame[A, P]{kind: frameApplyRule, key: start})

	for len(s.frameStack) > 0 {
		f := s.frameStack[len(s.frameStack)-1]
		s.frameStack = s.frameStack[:len(s.frameStack)-1]

		var err error
		switch f.kind {
		case frameApplyRule:
			err = s.applyRule(f.key)
		case frameUpdateMemo:
			err = s.updateMemo(f.key)
		case frameEval:
			err = s.eval(f.key)
		case frameGrowStart:
			err = s.growStart(f.key, f.memo)
		case frameGrowStep:
			err = s.growStep(f.key, f.memo)
		case frameHandleLR:
			err = s.handleLR(f.key)
		case frameEvalResult:
			err = s.pushEvalResult(f.key, f.result)
		case frameContinuation:
			err = s.continuation(f.key, f.node)
		case framePopCallStack:
			err = s.popCallStack()
		}
		if err != nil {
			return zero, err
		}
	}

	entry, ok := s.memo[start]
	if !ok {
		return zero, &InvalidStateError{Detail: "no memo recorded for start rule after parse loop exited"}
	}
	if entry.result.kind != resultMatch {
		if start.position >= cursor.Len() {
			return zero, &UnexpectedEOFError{}
		}
		return zero, &NoMatchError{RuleName: ruleName}
	}
	if entry.result.assembly.Kind != AssemblyAST {
		return zero, &InvalidStateError{Detail: "start rule matched but its builder did not produce an AST"}
	}

	return entry.result.assembly.AST, nil
}
