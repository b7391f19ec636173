package packrat

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dekarrin/nagi/internal/ebnf/grammar"
	"github.com/dekarrin/nagi/internal/ebnf/lex"
)

// The tests in this file drive the engine over a bare []string token
// stream rather than shaped lexer tokens, so each case can be set up
// without a grammar-loader round trip. The literal matcher below treats a
// Literal node's text as an exact string match against the token.

func stringLiteralMatcher() LiteralMatcher[string, string, string] {
	return func(literal string, token *string) (ASTAssembly[string, string], bool) {
		if *token != literal {
			return ASTAssembly[string, string]{}, false
		}
		return ASTResult[string, string](*token), true
	}
}

func nameBuilder() ASTBuilder[string, string, string] {
	return OnMatchBuilder[string, string, string](func(rule *grammar.Rule) (ASTAssembly[string, string], error) {
		return ASTResult[string, string](rule.Node(rule.Root()).Name()), nil
	})
}

func newEngine(t *testing.T, start string, tables ...RuleTable[string, string, string]) *Engine[string, string, string] {
	t.Helper()
	e, err := NewEngine(stringLiteralMatcher(), start, tables)
	require.NoError(t, err)
	return e
}

func TestEngine_ConcatLiteralMatch(t *testing.T) {
	rule := grammar.NewRule("Greeting", grammar.Concat(grammar.LiteralNode("hello"), grammar.LiteralNode("world")))
	e := newEngine(t, "Greeting", RuleTable[string, string, string]{Rule: rule, Builder: nameBuilder()})

	cursor := lex.NewCursor([]string{"hello", "world"})
	ast, err := e.Parse(cursor)
	require.NoError(t, err)
	assert.Equal(t, "`hello` `world`", ast)
	assert.Equal(t, 2, cursor.Position())
}

func TestEngine_ConcatMismatchFailsWhole(t *testing.T) {
	rule := grammar.NewRule("Greeting", grammar.Concat(grammar.LiteralNode("hello"), grammar.LiteralNode("world")))
	e := newEngine(t, "Greeting", RuleTable[string, string, string]{Rule: rule, Builder: nameBuilder()})

	cursor := lex.NewCursor([]string{"hello", "there"})
	_, err := e.Parse(cursor)
	var noMatch *NoMatchError
	require.ErrorAs(t, err, &noMatch)
}

func TestEngine_OrAlternation(t *testing.T) {
	rule := grammar.NewRule("AOrB", grammar.Or(grammar.LiteralNode("a"), grammar.LiteralNode("b")))
	e := newEngine(t, "AOrB", RuleTable[string, string, string]{Rule: rule, Builder: nameBuilder()})

	ast, err := e.Parse(lex.NewCursor([]string{"b"}))
	require.NoError(t, err)
	assert.Equal(t, "`a` | `b`", ast)

	_, err = e.Parse(lex.NewCursor([]string{"c"}))
	var noMatch *NoMatchError
	require.ErrorAs(t, err, &noMatch)
}

func TestEngine_RepeatStarZeroOrMore(t *testing.T) {
	rule := grammar.NewRule("As", grammar.Repeat(grammar.LiteralNode("a"), 0, nil))
	e := newEngine(t, "As", RuleTable[string, string, string]{Rule: rule, Builder: nameBuilder()})

	cursor := lex.NewCursor([]string{})
	_, err := e.Parse(cursor)
	require.NoError(t, err)
	assert.Equal(t, 0, cursor.Position())

	cursor = lex.NewCursor([]string{"a", "a", "a"})
	_, err = e.Parse(cursor)
	require.NoError(t, err)
	assert.Equal(t, 3, cursor.Position())
}

func TestEngine_RepeatMinCountMismatch(t *testing.T) {
	rule := grammar.NewRule("TwoOrMoreAs", grammar.Repeat(grammar.LiteralNode("a"), 2, nil))
	e := newEngine(t, "TwoOrMoreAs", RuleTable[string, string, string]{Rule: rule, Builder: nameBuilder()})

	_, err := e.Parse(lex.NewCursor([]string{"a"}))
	var noMatch *NoMatchError
	require.ErrorAsf(t, err, &noMatch, "single match below min should fail the whole repeat")

	cursor := lex.NewCursor([]string{"a", "a"})
	_, err = e.Parse(cursor)
	require.NoError(t, err)
	assert.Equal(t, 2, cursor.Position())
}

func TestEngine_RepeatBoundedMax(t *testing.T) {
	max := uint64(2)
	rule := grammar.NewRule("UpToTwoAs", grammar.Concat(
		grammar.Repeat(grammar.LiteralNode("a"), 0, &max),
		grammar.LiteralNode("b"),
	))
	e := newEngine(t, "UpToTwoAs", RuleTable[string, string, string]{Rule: rule, Builder: nameBuilder()})

	cursor := lex.NewCursor([]string{"a", "a", "b"})
	_, err := e.Parse(cursor)
	require.NoError(t, err)
	assert.Equal(t, 3, cursor.Position())
}

func TestEngine_GroupNode(t *testing.T) {
	rule := grammar.NewRule("Grouped", grammar.Concat(
		grammar.Group(grammar.Or(grammar.LiteralNode("a"), grammar.LiteralNode("b"))),
		grammar.LiteralNode("c"),
	))
	e := newEngine(t, "Grouped", RuleTable[string, string, string]{Rule: rule, Builder: nameBuilder()})

	cursor := lex.NewCursor([]string{"b", "c"})
	_, err := e.Parse(cursor)
	require.NoError(t, err)
	assert.Equal(t, 2, cursor.Position())
}

// TestEngine_DirectLeftRecursion exercises the seed-and-grow algorithm:
// Expr = Expr "+" "n" | "n" lets a chain of additions grow one "+ n" at
// a time from the "n" seed, entirely through Expansion-node memo
// aliasing back into Expr's own root state.
func TestEngine_DirectLeftRecursion(t *testing.T) {
	rule := grammar.NewRule("Expr", grammar.Or(
		grammar.Concat(grammar.Expansion("Expr"), grammar.LiteralNode("+"), grammar.LiteralNode("n")),
		grammar.LiteralNode("n"),
	))
	e := newEngine(t, "Expr", RuleTable[string, string, string]{Rule: rule, Builder: nameBuilder()})

	cursor := lex.NewCursor([]string{"n", "+", "n", "+", "n"})
	_, err := e.Parse(cursor)
	require.NoError(t, err)
	assert.Equalf(t, 5, cursor.Position(), "should have grown across the whole chain")
}

func TestEngine_DirectLeftRecursionSingleSeedOnly(t *testing.T) {
	rule := grammar.NewRule("Expr", grammar.Or(
		grammar.Concat(grammar.Expansion("Expr"), grammar.LiteralNode("+"), grammar.LiteralNode("n")),
		grammar.LiteralNode("n"),
	))
	e := newEngine(t, "Expr", RuleTable[string, string, string]{Rule: rule, Builder: nameBuilder()})

	cursor := lex.NewCursor([]string{"n"})
	_, err := e.Parse(cursor)
	require.NoError(t, err)
	assert.Equal(t, 1, cursor.Position())
}

// TestEngine_InfiniteLoopDetected builds an epsilon rule (one that can
// match while consuming no input) and repeats it without an upper bound,
// which the engine must refuse rather than loop forever.
func TestEngine_InfiniteLoopDetected(t *testing.T) {
	emptyRule := grammar.NewRule("Empty", grammar.Repeat(grammar.LiteralNode("x"), 0, nil))
	badRule := grammar.NewRule("Bad", grammar.Repeat(grammar.Expansion("Empty"), 0, nil))

	e := newEngine(t, "Bad",
		RuleTable[string, string, string]{Rule: emptyRule, Builder: NoBuilder[string, string, string]()},
		RuleTable[string, string, string]{Rule: badRule, Builder: NoBuilder[string, string, string]()},
	)

	_, err := e.Parse(lex.NewCursor([]string{"q"}))
	var loopErr *GrammarPanic
	require.ErrorAs(t, err, &loopErr)
}

func TestEngine_ParsedBuilderConsumesOneToken(t *testing.T) {
	digit := grammar.NewRule("Digit", grammar.LiteralNode("<digit>"))
	wrapper := grammar.NewRule("Wrapper", grammar.Expansion("Digit"))

	digitBuilder := ParsedBuilder[string, string, string](func(token *string) (ASTAssembly[string, string], error) {
		if !strings.HasPrefix(*token, "digit:") {
			return ASTAssembly[string, string]{}, &NoMatchError{RuleName: "Digit"}
		}
		return ASTResult[string, string](*token), nil
	})

	e := newEngine(t, "Wrapper",
		RuleTable[string, string, string]{Rule: digit, Builder: digitBuilder},
		RuleTable[string, string, string]{Rule: wrapper, Builder: nameBuilder()},
	)

	cursor := lex.NewCursor([]string{"digit:7"})
	ast, err := e.Parse(cursor)
	require.NoError(t, err)
	assert.Equal(t, "Digit", ast)
	assert.Equal(t, 1, cursor.Position())

	_, err = e.Parse(lex.NewCursor([]string{"notadigit"}))
	var noMatch *NoMatchError
	require.ErrorAs(t, err, &noMatch)
}

func TestEngine_UnexpectedEOF(t *testing.T) {
	rule := grammar.NewRule("NeedsOne", grammar.LiteralNode("a"))
	e := newEngine(t, "NeedsOne", RuleTable[string, string, string]{Rule: rule, Builder: nameBuilder()})

	_, err := e.Parse(lex.NewCursor([]string{}))
	var eofErr *UnexpectedEOFError
	require.ErrorAs(t, err, &eofErr)
}

func TestEngine_UnknownRule(t *testing.T) {
	rule := grammar.NewRule("Lonely", grammar.Expansion("NoSuchRule"))
	e := newEngine(t, "Lonely", RuleTable[string, string, string]{Rule: rule, Builder: nameBuilder()})

	_, err := e.Parse(lex.NewCursor([]string{"a"}))
	var unknownErr *UnknownRuleError
	require.ErrorAs(t, err, &unknownErr)
}

func TestEngine_DuplicateRuleRejected(t *testing.T) {
	a := grammar.NewRule("A", grammar.LiteralNode("a"))
	b := grammar.NewRule("A", grammar.LiteralNode("b"))

	_, err := NewEngine(stringLiteralMatcher(), "A", []RuleTable[string, string, string]{
		{Rule: a, Builder: nameBuilder()},
		{Rule: b, Builder: nameBuilder()},
	})
	var dupErr *DuplicateRuleError
	require.ErrorAs(t, err, &dupErr)
}

// TestEngine_NoBuilderYieldsNoAssembly confirms that a composite node
// (Concat, unlike a bare Literal) carries no payload of its own: without
// an OnMatch builder to construct one, Parse has nothing to return.
func TestEngine_NoBuilderYieldsNoAssembly(t *testing.T) {
	rule := grammar.NewRule("Structural", grammar.Concat(grammar.LiteralNode("a"), grammar.LiteralNode("b")))
	e := newEngine(t, "Structural", RuleTable[string, string, string]{Rule: rule, Builder: NoBuilder[string, string, string]()})

	_, err := e.Parse(lex.NewCursor([]string{"a", "b"}))
	var invalidErr *InvalidStateError
	require.ErrorAs(t, err, &invalidErr)
}

func TestEngine_ParseRuleExplicitStart(t *testing.T) {
	a := grammar.NewRule("A", grammar.LiteralNode("a"))
	b := grammar.NewRule("B", grammar.LiteralNode("b"))
	e := newEngine(t, "A",
		RuleTable[string, string, string]{Rule: a, Builder: nameBuilder()},
		RuleTable[string, string, string]{Rule: b, Builder: nameBuilder()},
	)

	ast, err := e.ParseRule(lex.NewCursor([]string{"b"}), "B")
	require.NoError(t, err)
	assert.Equal(t, "`b`", ast)
}
