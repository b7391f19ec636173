package grammar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_S4_SimpleGrammar(t *testing.T) {
	src := "Expr = Term (`+` Term)* ;\nTerm = `x` ;\n"
	g, err := Load(src)
	require.NoError(t, err)
	assert.Equal(t, "Expr", g.Start)

	expr, ok := g.Rule("Expr")
	require.True(t, ok)
	root := expr.Node(expr.Root())
	require.NotNil(t, root)
	assert.Equal(t, NodeConcat, root.Kind)
}

func TestLoad_UndefinedRuleReference(t *testing.T) {
	_, err := Load("Expr = Missing ;\n")
	require.Error(t, err)
	var undef *UndefinedRuleError
	require.ErrorAs(t, err, &undef)
	assert.Equal(t, "Missing", undef.Name)
}

func TestLoad_DuplicateRule(t *testing.T) {
	_, err := Load("A = `a` ;\nA = `b` ;\n")
	require.Error(t, err)
	var dup *DuplicateRuleError
	require.ErrorAs(t, err, &dup)
}

func TestLoad_Alternation(t *testing.T) {
	g, err := Load("A = `x` | `y` | `z` ;\n")
	require.NoError(t, err)
	rule, _ := g.Rule("A")
	root := rule.Node(rule.Root())
	require.Equal(t, NodeOr, root.Kind)
	assert.Len(t, root.Children, 3)
}

func TestLoad_BraceQuantifiers(t *testing.T) {
	g, err := Load("A = `x`{2, 5} ;\nB = `x`{3} ;\nC = `x`{1,} ;\n")
	require.NoError(t, err)

	a, _ := g.Rule("A")
	aRoot := a.Node(a.Root())
	require.Equal(t, NodeRepeat, aRoot.Kind)
	require.NotNil(t, aRoot.Max)
	assert.Equal(t, uint64(2), aRoot.Min)
	assert.Equal(t, uint64(5), *aRoot.Max)

	b, _ := g.Rule("B")
	bRoot := b.Node(b.Root())
	require.NotNil(t, bRoot.Max)
	assert.Equal(t, uint64(3), bRoot.Min)
	assert.Equal(t, uint64(3), *bRoot.Max)

	c, _ := g.Rule("C")
	cRoot := c.Node(c.Root())
	assert.Nil(t, cRoot.Max)
	assert.Equal(t, uint64(1), cRoot.Min)
}

func TestLoad_CommentsIgnored(t *testing.T) {
	src := "// a leading comment\nA = `x` ; // trailing\n"
	g, err := Load(src)
	require.NoError(t, err)
	_, ok := g.Rule("A")
	assert.True(t, ok)
}

func TestLoad_UnterminatedLiteral(t *testing.T) {
	_, err := Load("A = `x ;\n")
	require.Error(t, err)
	var perr *ParseError
	require.ErrorAs(t, err, &perr)
}

func TestLoad_GroupedExpression(t *testing.T) {
	g, err := Load("A = ( `x` | `y` ) `z` ;\n")
	require.NoError(t, err)
	rule, _ := g.Rule("A")
	root := rule.Node(rule.Root())
	require.Equal(t, NodeConcat, root.Kind)
	require.Len(t, root.Children, 2)
	assert.Equal(t, NodeGroup, root.Children[0].Kind)
}

func TestRule_Navigation(t *testing.T) {
	g, err := Load("A = X Y Z ;\nX = `x` ;\nY = `y` ;\nZ = `z` ;\n")
	require.NoError(t, err)
	rule, _ := g.Rule("A")

	root := rule.Root()
	rootNode := rule.Node(root)
	require.Equal(t, NodeConcat, rootNode.Kind)

	first, firstState, ok := rule.StepIn(root)
	require.True(t, ok)
	assert.Equal(t, NodeExpansion, first.Kind)
	assert.Equal(t, "X", first.Expansion)

	second, secondState, ok := rule.StepOver(firstState)
	require.True(t, ok)
	assert.Equal(t, "Y", second.Expansion)

	third, _, ok := rule.StepOver(secondState)
	require.True(t, ok)
	assert.Equal(t, "Z", third.Expansion)

	parentNode, _, ok := rule.Parent(firstState)
	require.True(t, ok)
	assert.Equal(t, rootNode, parentNode)
}

func TestNode_Name(t *testing.T) {
	g, err := Load("A = B+ | `lit` ;\nB = `b` ;\n")
	require.NoError(t, err)
	rule, _ := g.Rule("A")
	root := rule.Node(rule.Root())
	assert.Equal(t, "B+ | `lit`", root.Name())
}
