package nagilang

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLex_Basics(t *testing.T) {
	cursor, err := Lex([]byte("let x = 1 + 2;"))
	require.NoError(t, err)

	toks := cursor.Tokens()
	require.Len(t, toks, 7)
	assert.Equal(t, "let", toks[0].Keyword)
	assert.Equal(t, "x", toks[1].Name)
	assert.Equal(t, "assign", toks[2].Operator)
	assert.Equal(t, uint64(1), toks[3].Lit.Int)
	assert.Equal(t, "add", toks[4].Operator)
	assert.Equal(t, uint64(2), toks[5].Lit.Int)
	assert.Equal(t, "semi", toks[6].Symbol)
}

func parseProgram(t *testing.T, src string) int {
	t.Helper()
	cursor, err := Lex([]byte(src))
	require.NoError(t, err)

	engine, err := NewEngine()
	require.NoError(t, err)

	_, err = engine.Parse(cursor)
	require.NoError(t, err)
	return cursor.Position()
}

func TestEngine_LetStatement(t *testing.T) {
	cursor, err := Lex([]byte("let x = 1;"))
	require.NoError(t, err)
	pos := len(cursor.Tokens())

	got := parseProgram(t, "let x = 1;")
	assert.Equal(t, pos, got, "a single complete let-statement should be fully consumed")
}

// TestEngine_ExpressionPrecedenceChainGrows exercises the same
// seed-and-grow left recursion as the packrat engine's own tests, but
// over a real lexed token stream: growth has to carry the Expr match
// past every "+ <int>" to the semicolon.
func TestEngine_ExpressionPrecedenceChainGrows(t *testing.T) {
	cursor, err := Lex([]byte("1 + 2 + 3;"))
	require.NoError(t, err)
	total := len(cursor.Tokens())

	got := parseProgram(t, "1 + 2 + 3;")
	assert.Equal(t, total, got)
}

func TestEngine_IfElseBlock(t *testing.T) {
	cursor, err := Lex([]byte("if x { 1; } else { 2; }"))
	require.NoError(t, err)
	total := len(cursor.Tokens())

	got := parseProgram(t, "if x { 1; } else { 2; }")
	assert.Equal(t, total, got)
}

func TestEngine_NestedIfWithoutElse(t *testing.T) {
	cursor, err := Lex([]byte("if x { if y { 1; } }"))
	require.NoError(t, err)
	total := len(cursor.Tokens())

	got := parseProgram(t, "if x { if y { 1; } }")
	assert.Equal(t, total, got)
}

func TestEngine_MissingSemicolonLeavesTrailingTokens(t *testing.T) {
	cursor, err := Lex([]byte("let x = 1"))
	require.NoError(t, err)

	engine, err := NewEngine()
	require.NoError(t, err)

	_, err = engine.Parse(cursor)
	require.NoError(t, err, "Program matches zero or more statements, so an incomplete one just isn't absorbed")
	assert.Less(t, cursor.Position(), cursor.Len(), "the unterminated let-statement should not have been consumed")
}

func TestEngine_IdentifierBuilderProducesNode(t *testing.T) {
	cursor, err := Lex([]byte("count"))
	require.NoError(t, err)

	engine, err := NewEngine()
	require.NoError(t, err)

	node, err := engine.ParseRule(cursor, "Ident")
	require.NoError(t, err)
	assert.Equal(t, NodeIdentifier, node.Kind)
	assert.Equal(t, "count", node.Ident)
}

func TestEngine_IntLiteralBuilderProducesNode(t *testing.T) {
	cursor, err := Lex([]byte("42"))
	require.NoError(t, err)

	engine, err := NewEngine()
	require.NoError(t, err)

	node, err := engine.ParseRule(cursor, "IntLit")
	require.NoError(t, err)
	assert.Equal(t, NodeIntLiteral, node.Kind)
	assert.Equal(t, uint64(42), node.Int)
}
