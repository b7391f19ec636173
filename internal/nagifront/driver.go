package nagifront

import (
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/dekarrin/nagi/internal/ebnf/lex"
	"github.com/dekarrin/nagi/internal/ebnf/packrat"
	"github.com/dekarrin/nagi/internal/nagilang"
)

// Driver is the front-end's single entry point: it owns a packrat engine
// wired to nagilang's worked-example grammar and turns raw source bytes
// into an assembled AST.
type Driver struct {
	engine  *packrat.Engine[lex.Token, nagilang.Node, nagilang.Parts]
	Verbose bool
}

// NewDriver builds a Driver over nagilang's compiled-in rule table.
func NewDriver() (*Driver, error) {
	engine, err := nagilang.NewEngine()
	if err != nil {
		return nil, fmt.Errorf("building engine: %w", err)
	}
	return &Driver{engine: engine}, nil
}

// Result is what one Parse call against source text produces.
type Result struct {
	// AST is the value the start rule's builder assembled.
	AST nagilang.Node
	// Cursor is left at the position immediately after the matched
	// text; compare Cursor.Position() to Cursor.Len() to check whether
	// the whole input was consumed.
	Cursor *lex.Cursor[lex.Token]
	// RunID correlates this parse's diagnostics in verbose output.
	RunID uuid.UUID
}

// Parse tokenizes, shapes, and parses src from nagilang's start rule.
func (d *Driver) Parse(src []byte) (Result, error) {
	return d.parse(src, "")
}

// ParseRule tokenizes, shapes, and parses src starting from an
// explicitly named rule instead of the engine's default start rule.
func (d *Driver) ParseRule(src []byte, ruleName string) (Result, error) {
	return d.parse(src, ruleName)
}

func (d *Driver) parse(src []byte, ruleName string) (Result, error) {
	runID, err := uuid.NewRandom()
	if err != nil {
		return Result{}, fmt.Errorf("generating run id: %w", err)
	}

	if d.Verbose {
		fmt.Fprintf(os.Stderr, "[%s] tokenizing %d bytes\n", runID, len(src))
	}

	cursor, err := nagilang.Lex(src)
	if err != nil {
		return Result{}, &LexError{RunID: runID, Err: err}
	}

	if d.Verbose {
		fmt.Fprintf(os.Stderr, "[%s] shaped %d tokens\n", runID, cursor.Len())
	}

	start := time.Now()
	var ast nagilang.Node
	if ruleName == "" {
		ast, err = d.engine.Parse(cursor)
	} else {
		ast, err = d.engine.ParseRule(cursor, ruleName)
	}
	if err != nil {
		return Result{}, &ParseError{RunID: runID, Err: err}
	}

	if d.Verbose {
		fmt.Fprintf(os.Stderr, "[%s] parsed in %s\n", runID, time.Since(start))
	}

	return Result{AST: ast, Cursor: cursor, RunID: runID}, nil
}
