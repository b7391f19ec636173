package packrat

import (
	"github.com/dekarrin/nagi/internal/ebnf/grammar"
	"github.com/dekarrin/nagi/internal/ebnf/lex"
)

// session holds every piece of state that changes during a single Parse
// call: the memo table, the left-recursion grow set, the active call
// stack, and the two stacks that drive the trampoline itself. Nothing
// here survives past the Parse call it was created for — an Engine can
// run any number of sessions, sequentially or concurrently, without one
// parse's state leaking into another's.
type session[T, A, P any] struct {
	engine *Engine[T, A, P]
	cursor *lex.Cursor[T]

	memo      map[memoKey]memoEntry[A, P]
	growList  map[growKey]struct{}
	callStack []memoKey

	frameStack      []frame[A, P]
	evalResultStack []evalResultEntry[A, P]
}

type evalResultEntry[A, P any] struct {
	key    memoKey
	result memoResult[A, P]
}

func newSession[T, A, P any](engine *Engine[T, A, P], cursor *lex.Cursor[T]) *session[T, A, P] {
	return &session[T, A, P]{
		engine:   engine,
		cursor:   cursor,
		memo:     make(map[memoKey]memoEntry[A, P]),
		growList: make(map[growKey]struct{}),
	}
}

func (s *session[T, A, P]) pushFrame(f frame[A, P]) {
	s.frameStack = append(s.frameStack, f)
}

func (s *session[T, A, P]) pushEvalResultFrame(key memoKey, result memoResult[A, P]) {
	s.pushFrame(frame[A, P]{kind: frameEvalResult, key: key, result: result})
}

func (s *session[T, A, P]) pushApplyRule(key memoKey) {
	s.pushFrame(frame[A, P]{kind: frameApplyRule, key: key})
}

// applyRule is the entry point every reference to a grammar address goes
// through. If no memo entry exists yet, it defers to updateMemo to
// actually run the evaluation; otherwise it reuses whatever is already
// recorded — whether that is a completed result from an earlier call, or
// the pending seed value of a left-recursive rule still being grown.
// Reusing the seed value unconditionally (rather than only when the key
// is on the active call stack) is what makes memoization actually avoid
// re-evaluating a rule at a given position more than once. A rule's inner
// addresses (any state but its root, other than an Expansion, whose entry
// aliases the referenced rule's root) are evaluated again instead: they
// are only applied a second time when a left-recursion growth iteration
// re-runs their rule, and that iteration has to see the grown seed.
func (s *session[T, A, P]) applyRule(key memoKey) error {
	memo, ok := s.getMemo(key)
	if !ok {
		s.pushFrame(frame[A, P]{kind: frameUpdateMemo, key: key})
		return nil
	}

	table, err := s.ruleTable(key.rule)
	if err != nil {
		return err
	}
	node, err := s.node(key)
	if err != nil {
		return err
	}
	if key.state != grammar.RootState() && node.Kind != grammar.NodeExpansion {
		s.pushFrame(frame[A, P]{kind: frameUpdateMemo, key: key})
		return nil
	}

	isTerminal := node.Kind == grammar.NodeLiteral || table.Builder.Kind == BuilderParsed
	if memo.result.kind == resultFail && !isTerminal {
		s.growList[growKey{rule: key.rule, state: key.state}] = struct{}{}
	}

	s.cursor.SetPosition(memo.position)
	return nil
}

// updateMemo seeds a fresh memo entry (Fail, pending) and schedules the
// rule's actual evaluation, followed by left-recursion grow handling and
// call-stack cleanup.
func (s *session[T, A, P]) updateMemo(key memoKey) error {
	s.callStack = append(s.callStack, key)

	if _, ok := s.memo[key]; !ok {
		s.memo[key] = memoEntry[A, P]{result: failResult[A, P](), position: key.position}
	}

	s.pushFrame(frame[A, P]{kind: framePopCallStack})
	s.pushFrame(frame[A, P]{kind: frameHandleLR, key: key})
	s.pushFrame(frame[A, P]{kind: frameEval, key: key})
	return nil
}

// pushEvalResult records a node's outcome, firing the rule's AST builder
// first if this outcome completes the rule's root state.
func (s *session[T, A, P]) pushEvalResult(key memoKey, result memoResult[A, P]) error {
	if result.kind == resultMatch && key.state == grammar.RootState() {
		built, err := s.constructAST(result, key)
		if err != nil {
			return err
		}
		result = built
	}
	s.evalResultStack = append(s.evalResultStack, evalResultEntry[A, P]{key: key, result: result})
	return nil
}

// handleLR saves the result of evaluating key as key's memo entry — a
// non-match consumes nothing, so it is recorded at key's own position and
// the cursor is rewound there — and, if key's rule/state pair is under
// left-recursion growth and this evaluation advanced past key's position,
// schedules another growth attempt.
func (s *session[T, A, P]) handleLR(key memoKey) error {
	n := len(s.evalResultStack)
	if n == 0 {
		return &InvalidStateError{Detail: "eval result stack empty in handleLR"}
	}
	er := s.evalResultStack[n-1]
	s.evalResultStack = s.evalResultStack[:n-1]
	if er.key != key {
		return &InvalidStateError{Detail: "eval result key mismatch in handleLR"}
	}

	if _, ok := s.memo[key]; !ok {
		return &InvalidStateError{Detail: "missing memo entry in handleLR"}
	}

	position := s.cursor.Position()
	if er.result.kind != resultMatch {
		position = key.position
		s.cursor.SetPosition(position)
	}
	memo := memoEntry[A, P]{result: er.result, position: position}
	s.saveMemo(key, memo)

	gk := growKey{rule: key.rule, state: key.state}
	if _, growing := s.growList[gk]; growing && key.position < memo.position {
		s.pushFrame(frame[A, P]{kind: frameGrowStart, key: key, memo: memo})
	}
	return nil
}

// growStart rewinds the call stack back to key and restarts evaluation
// from key's starting position, kicking off the first growth iteration.
func (s *session[T, A, P]) growStart(key memoKey, memo memoEntry[A, P]) error {
	for len(s.callStack) > 0 {
		last := s.callStack[len(s.callStack)-1]
		if last == key {
			break
		}
		s.callStack = s.callStack[:len(s.callStack)-1]
	}

	s.cursor.SetPosition(key.position)
	s.pushFrame(frame[A, P]{kind: frameGrowStep, key: key, memo: memo})
	s.pushFrame(frame[A, P]{kind: frameEval, key: key})
	return nil
}

// growStep checks whether the latest growth iteration advanced further
// than the previous one; if so it keeps growing, and if not it commits
// the last successful iteration's memo entry and stops.
func (s *session[T, A, P]) growStep(key memoKey, memo memoEntry[A, P]) error {
	n := len(s.evalResultStack)
	if n == 0 {
		return &InvalidStateError{Detail: "eval result stack empty in growStep"}
	}
	er := s.evalResultStack[n-1]
	s.evalResultStack = s.evalResultStack[:n-1]
	if er.key != key {
		return &InvalidStateError{Detail: "eval result key mismatch in growStep"}
	}

	position := s.cursor.Position()
	if er.result.kind == resultFail || position <= memo.position {
		s.cursor.SetPosition(memo.position)
		s.saveMemo(key, memo)
		return nil
	}

	memo.result = er.result
	memo.position = s.cursor.Position()
	s.saveMemo(key, memo)

	s.pushFrame(frame[A, P]{kind: frameGrowStep, key: key, memo: memo})
	s.cursor.SetPosition(key.position)
	s.pushFrame(frame[A, P]{kind: frameEval, key: key})
	return nil
}

func (s *session[T, A, P]) popCallStack() error {
	if len(s.callStack) > 0 {
		s.callStack = s.callStack[:len(s.callStack)-1]
	}
	return nil
}

// eval dispatches to the node-kind-specific evaluator for key's address.
// A BuilderParsed rule evaluated at its own root state — which only
// happens when that rule is applied directly (the engine's start rule, or
// an explicit ParseRule target), since evalExpansion already intercepts
// references to it from a parent rule before ever reaching here — resolves
// against the current token the same way evalExpansion would, instead of
// walking its tree and asking the literal matcher to recognize a token
// kind it was never meant to see.
func (s *session[T, A, P]) eval(key memoKey) error {
	if key.state == grammar.RootState() {
		table, err := s.ruleTable(key.rule)
		if err != nil {
			return err
		}
		if table.Builder.Kind == BuilderParsed {
			result, err := s.parsedRule(table.Builder.Parsed)
			if err != nil {
				return err
			}
			s.pushEvalResultFrame(key, result)
			return nil
		}
	}

	node, err := s.node(key)
	if err != nil {
		return err
	}

	switch node.Kind {
	case grammar.NodeExpansion:
		return s.evalExpansion(key, node.Expansion)
	case grammar.NodeConcat:
		return s.evalConcat(key)
	case grammar.NodeOr:
		return s.evalOr(key)
	case grammar.NodeRepeat:
		return s.evalRepeat(key, node.Min, node.Max)
	case grammar.NodeGroup:
		return s.evalGroup(key)
	case grammar.NodeLiteral:
		return s.evalLiteral(key, node.Literal)
	default:
		return &InvalidStateError{Detail: "unrecognized node kind in eval"}
	}
}

// evalExpansion either resolves a token-level rule directly (BuilderParsed)
// or descends into the referenced rule's root state.
func (s *session[T, A, P]) evalExpansion(key memoKey, expansion string) error {
	table, err := s.ruleTable(expansion)
	if err != nil {
		return &UnknownRuleError{RuleName: expansion, CallerRule: key.rule}
	}

	if table.Builder.Kind == BuilderParsed {
		result, err := s.parsedRule(table.Builder.Parsed)
		if err != nil {
			return err
		}
		s.pushEvalResultFrame(key, result)
		return nil
	}

	next := memoKey{rule: table.Rule.Name, position: key.position, state: grammar.RootState()}
	s.pushFrame(frame[A, P]{kind: frameContinuation, key: key, node: continuationNode{kind: contExpansion, next: next}})
	s.pushApplyRule(next)
	return nil
}

func (s *session[T, A, P]) evalConcat(key memoKey) error {
	child, err := s.childState(key)
	if err != nil {
		return err
	}
	next := memoKey{rule: key.rule, position: key.position, state: child}
	s.pushFrame(frame[A, P]{kind: frameContinuation, key: key, node: continuationNode{kind: contConcat, next: next}})
	s.pushApplyRule(next)
	return nil
}

func (s *session[T, A, P]) evalOr(key memoKey) error {
	child, err := s.childState(key)
	if err != nil {
		return err
	}
	next := memoKey{rule: key.rule, position: key.position, state: child}
	s.pushFrame(frame[A, P]{kind: frameContinuation, key: key, node: continuationNode{kind: contOr, next: next}})
	s.pushApplyRule(next)
	return nil
}

func (s *session[T, A, P]) evalGroup(key memoKey) error {
	child, err := s.childState(key)
	if err != nil {
		return err
	}
	next := memoKey{rule: key.rule, position: key.position, state: child}
	s.pushFrame(frame[A, P]{kind: frameContinuation, key: key, node: continuationNode{kind: contGroup, next: next}})
	s.pushApplyRule(next)
	return nil
}

func (s *session[T, A, P]) evalRepeat(key memoKey, min uint64, max *uint64) error {
	child, err := s.childState(key)
	if err != nil {
		return err
	}
	next := memoKey{rule: key.rule, position: key.position, state: child}
	s.pushFrame(frame[A, P]{kind: frameContinuation, key: key, node: continuationNode{kind: contRepeat, next: next, count: 0, min: min, max: max}})
	s.pushApplyRule(next)
	return nil
}

// evalLiteral is the one evaluator that never defers: it resolves
// immediately against the current token via the engine's literal matcher,
// and mismatches when no token is left.
func (s *session[T, A, P]) evalLiteral(key memoKey, literal string) error {
	token, ok := s.cursor.Peek()
	if !ok {
		s.pushEvalResultFrame(key, mismatchResult[A, P]())
		return nil
	}

	var result memoResult[A, P]
	if assembly, matched := s.engine.literal(literal, token); matched {
		s.cursor.Advance()
		result = matchResult(assembly)
	} else {
		result = mismatchResult[A, P]()
	}

	s.pushEvalResultFrame(key, result)
	return nil
}

func (s *session[T, A, P]) continuation(key memoKey, node continuationNode) error {
	switch node.kind {
	case contExpansion:
		return s.continuationExpansion(key, node.next)
	case contConcat:
		return s.continuationConcat(key, node.next)
	case contOr:
		return s.continuationOr(key, node.next)
	case contRepeat:
		return s.continuationRepeat(key, node.next, node.count, node.min, node.max)
	case contGroup:
		return s.continuationGroup(key, node.next)
	default:
		return &InvalidStateError{Detail: "unrecognized continuation kind"}
	}
}

func (s *session[T, A, P]) continuationExpansion(key memoKey, next memoKey) error {
	memo, ok := s.getMemo(next)
	if !ok {
		return &InvalidStateError{Detail: "missing memo for expansion continuation"}
	}
	s.cursor.SetPosition(memo.position)
	s.pushEvalResultFrame(key, memo.result)
	return nil
}

// continuationConcat only succeeds once every child in the sequence has
// matched; a mismatch anywhere fails the whole rule immediately.
func (s *session[T, A, P]) continuationConcat(key memoKey, next memoKey) error {
	memo, ok := s.getMemo(next)
	if !ok {
		return &InvalidStateError{Detail: "missing memo for concat continuation"}
	}
	s.cursor.SetPosition(memo.position)

	if memo.result.kind != resultMatch {
		s.pushEvalResultFrame(key, mismatchResult[A, P]())
		return nil
	}

	rule, err := s.rule(key.rule)
	if err != nil {
		return err
	}
	_, nextState, ok := rule.NextGroup(next.state)
	if !ok {
		s.pushEvalResultFrame(key, matchResult[A, P](NoAssembly[A, P]()))
		return nil
	}

	nk := memoKey{rule: key.rule, position: s.cursor.Position(), state: nextState}
	s.pushFrame(frame[A, P]{kind: frameContinuation, key: key, node: continuationNode{kind: contConcat, next: nk}})
	s.pushApplyRule(nk)
	return nil
}

// continuationOr succeeds as soon as any alternative matches, trying the
// next one in source order on a mismatch.
func (s *session[T, A, P]) continuationOr(key memoKey, next memoKey) error {
	memo, ok := s.getMemo(next)
	if !ok {
		return &InvalidStateError{Detail: "missing memo for or continuation"}
	}
	s.cursor.SetPosition(memo.position)

	if memo.result.kind == resultMatch {
		s.pushEvalResultFrame(key, memo.result)
		return nil
	}

	rule, err := s.rule(key.rule)
	if err != nil {
		return err
	}
	_, nextState, ok := rule.NextGroup(next.state)
	if !ok {
		s.pushEvalResultFrame(key, mismatchResult[A, P]())
		return nil
	}

	nk := memoKey{rule: key.rule, position: key.position, state: nextState}
	s.pushFrame(frame[A, P]{kind: frameContinuation, key: key, node: continuationNode{kind: contOr, next: nk}})
	s.pushApplyRule(nk)
	return nil
}

// continuationRepeat folds in one iteration's outcome: a mismatch ends the
// repetition (matching overall only if enough iterations already landed),
// and a match either stops at the configured maximum, flags an unbounded
// rule that consumed no input as a bug in the grammar, or continues.
func (s *session[T, A, P]) continuationRepeat(key memoKey, next memoKey, count, min uint64, max *uint64) error {
	memo, ok := s.getMemo(next)
	if !ok {
		return &InvalidStateError{Detail: "missing memo for repeat continuation"}
	}
	s.cursor.SetPosition(memo.position)

	switch memo.result.kind {
	case resultMismatch:
		var result memoResult[A, P]
		if count >= min {
			result = matchResult[A, P](NoAssembly[A, P]())
		} else {
			result = mismatchResult[A, P]()
		}
		s.pushEvalResultFrame(key, result)
		return nil

	case resultMatch:
		if max != nil && count+1 >= *max {
			s.pushEvalResultFrame(key, memo.result)
			return nil
		}
		if max == nil && next.position == s.cursor.Position() {
			return &GrammarPanic{RuleName: key.rule}
		}
	}

	if max == nil && key.position == s.cursor.Position() {
		s.pushEvalResultFrame(key, mismatchResult[A, P]())
		return nil
	}
	if max != nil && count == *max {
		s.pushEvalResultFrame(key, mismatchResult[A, P]())
		return nil
	}

	nk := memoKey{rule: next.rule, position: s.cursor.Position(), state: next.state}
	s.pushFrame(frame[A, P]{kind: frameContinuation, key: key, node: continuationNode{kind: contRepeat, next: nk, count: count + 1, min: min, max: max}})
	s.pushApplyRule(nk)
	return nil
}

// continuationGroup simply forwards its single child's result: a Group
// node exists only to give a parenthesized sub-expression its own tree
// address, not to add sequencing.
func (s *session[T, A, P]) continuationGroup(key memoKey, next memoKey) error {
	memo, ok := s.getMemo(next)
	if !ok {
		return &InvalidStateError{Detail: "missing memo for group continuation"}
	}
	s.cursor.SetPosition(memo.position)
	s.pushEvalResultFrame(key, memo.result)
	return nil
}

func (s *session[T, A, P]) parsedRule(fn func(token *T) (ASTAssembly[A, P], error)) (memoResult[A, P], error) {
	token, ok := s.cursor.Peek()
	if !ok {
		return mismatchResult[A, P](), nil
	}
	assembly, err := fn(token)
	if err != nil {
		return mismatchResult[A, P](), nil
	}
	s.cursor.Advance()
	return matchResult(assembly), nil
}

// constructAST fires a rule's OnMatch builder once its root state has
// fully matched, replacing the bare structural Match with the AST it
// assembles.
func (s *session[T, A, P]) constructAST(result memoResult[A, P], key memoKey) (memoResult[A, P], error) {
	if result.kind != resultMatch {
		return result, nil
	}

	table, err := s.ruleTable(key.rule)
	if err != nil {
		return memoResult[A, P]{}, err
	}
	if table.Builder.Kind != BuilderOnMatch {
		return result, nil
	}

	assembly, err := table.Builder.OnMatch(table.Rule)
	if err != nil {
		return memoResult[A, P]{}, &ASTBuildError{RuleName: key.rule, Err: err}
	}
	return matchResult(assembly), nil
}

// getMemo and saveMemo alias an Expansion node's memo entry with the one
// for the referenced rule's own root state: the two addresses describe
// the same evaluation (the referenced rule starting at the same
// position), so a lookup under either address must see the same result.
func (s *session[T, A, P]) getMemo(key memoKey) (memoEntry[A, P], bool) {
	memo, ok := s.memo[key]
	if !ok {
		return memoEntry[A, P]{}, false
	}

	node, err := s.node(key)
	if err == nil && node.Kind == grammar.NodeExpansion {
		alias := memoKey{rule: node.Expansion, position: key.position, state: grammar.RootState()}
		if aliased, ok := s.memo[alias]; ok {
			return aliased, true
		}
	}
	return memo, true
}

func (s *session[T, A, P]) saveMemo(key memoKey, entry memoEntry[A, P]) {
	node, err := s.node(key)
	if err == nil && node.Kind == grammar.NodeExpansion {
		alias := memoKey{rule: node.Expansion, position: key.position, state: grammar.RootState()}
		s.memo[alias] = entry
	}
	s.memo[key] = entry
}

func (s *session[T, A, P]) ruleTable(name string) (*RuleTable[T, A, P], error) {
	table, ok := s.engine.rules[name]
	if !ok {
		caller := "<start>"
		if len(s.callStack) > 0 {
			caller = s.callStack[len(s.callStack)-1].rule
		}
		return nil, &UnknownRuleError{RuleName: name, CallerRule: caller}
	}
	return table, nil
}

func (s *session[T, A, P]) rule(name string) (*grammar.Rule, error) {
	table, err := s.ruleTable(name)
	if err != nil {
		return nil, err
	}
	return table.Rule, nil
}

func (s *session[T, A, P]) node(key memoKey) (*grammar.Node, error) {
	rule, err := s.rule(key.rule)
	if err != nil {
		return nil, err
	}
	node := rule.Node(key.state)
	if node == nil {
		return nil, &InvalidStateError{Detail: "no node recorded at the given grammar address"}
	}
	return node, nil
}

func (s *session[T, A, P]) childState(key memoKey) (grammar.State, error) {
	rule, err := s.rule(key.rule)
	if err != nil {
		return grammar.State{}, err
	}
	_, next, ok := rule.StepIn(key.state)
	if !ok {
		return grammar.State{}, &InvalidStateError{Detail: "stepIn found no child state"}
	}
	return next, nil
}
