package grammar

import "fmt"

// ParseError reports a problem found while loading a grammar's meta-grammar
// source text, positioned at the rune index into that text where it was
// detected.
type ParseError struct {
	Offset  int
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("grammar: %s (at offset %d)", e.Message, e.Offset)
}

func newParseError(offset int, format string, args ...any) *ParseError {
	return &ParseError{Offset: offset, Message: fmt.Sprintf(format, args...)}
}

// UndefinedRuleError reports a reference, from some rule's body, to a rule
// name that the grammar never defines.
type UndefinedRuleError struct {
	From string
	Name string
}

func (e *UndefinedRuleError) Error() string {
	return fmt.Sprintf("grammar: rule %q references undefined rule %q", e.From, e.Name)
}

// DuplicateRuleError reports a rule name defined more than once in the same
// grammar.
type DuplicateRuleError struct {
	Name string
}

func (e *DuplicateRuleError) Error() string {
	return fmt.Sprintf("grammar: rule %q defined more than once", e.Name)
}
