package packrat

import "fmt"

// UnknownRuleError reports a reference to a rule name the engine was never
// given a table for.
type UnknownRuleError struct {
	RuleName string
	CallerRule string
}

func (e *UnknownRuleError) Error() string {
	return fmt.Sprintf("packrat: rule %q referenced from %q has no registered table", e.RuleName, e.CallerRule)
}

// DuplicateRuleError reports two rule tables registered under the same
// name when building an Engine.
type DuplicateRuleError struct {
	RuleName string
}

func (e *DuplicateRuleError) Error() string {
	return fmt.Sprintf("packrat: rule %q registered more than once", e.RuleName)
}

// UnexpectedEOFError reports that the start rule did not match because the
// input was already exhausted at the position the parse began from.
type UnexpectedEOFError struct{}

func (e *UnexpectedEOFError) Error() string {
	return "packrat: unexpected end of input"
}

// InvalidStateError reports an internal inconsistency in the frame
// machine — a grammar address with no node, or a mismatched
// continuation — that indicates a bug in the engine or in the grammar it
// was given rather than a parse failure.
type InvalidStateError struct {
	Detail string
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("packrat: invalid internal state: %s", e.Detail)
}

// NoMatchError reports that the start rule did not match the input at
// all — this is an ordinary parse failure, not an engine bug.
type NoMatchError struct {
	RuleName string
}

func (e *NoMatchError) Error() string {
	return fmt.Sprintf("packrat: rule %q did not match the input", e.RuleName)
}

// GrammarPanic reports a malformed grammar caught at parse time rather
// than at load time: currently the one case is an unbounded repetition
// whose child matched without consuming any input, which would
// otherwise repeat forever. It names a category of engine-detected
// grammar defect, not a Go panic.
type GrammarPanic struct {
	RuleName string
}

func (e *GrammarPanic) Error() string {
	return fmt.Sprintf("packrat: unbounded repetition in rule %q matched without consuming input", e.RuleName)
}

// ASTBuildError wraps an error returned by a rule's AST-builder callback.
type ASTBuildError struct {
	RuleName string
	Err      error
}

func (e *ASTBuildError) Error() string {
	return fmt.Sprintf("packrat: AST builder for rule %q failed: %v", e.RuleName, e.Err)
}

func (e *ASTBuildError) Unwrap() error {
	return e.Err
}
