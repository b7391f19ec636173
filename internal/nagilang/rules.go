package nagilang

import (
	"github.com/dekarrin/nagi/internal/ebnf/grammar"
	"github.com/dekarrin/nagi/internal/ebnf/lex"
	"github.com/dekarrin/nagi/internal/ebnf/packrat"
)

// StartRule is the grammar's entry point: a source file is a sequence of
// statements.
const StartRule = "Program"

// literalMatcher resolves a grammar Literal node's text against a shaped
// token's tag, regardless of which of the three tagged token kinds
// (keyword, operator, symbol) carries that tag. Identifier and literal
// tokens never match a Literal node directly — they're only reachable
// through the Parsed-builder rules below.
func literalMatcher() packrat.LiteralMatcher[lex.Token, Node, Parts] {
	return func(text string, token *lex.Token) (packrat.ASTAssembly[Node, Parts], bool) {
		var tag string
		switch token.Kind {
		case lex.TokenKeyword:
			tag = token.Keyword
		case lex.TokenOperator:
			tag = token.Operator
		case lex.TokenSymbol:
			tag = token.Symbol
		default:
			return packrat.ASTAssembly[Node, Parts]{}, false
		}
		if tag != text {
			return packrat.ASTAssembly[Node, Parts]{}, false
		}
		return packrat.NoAssembly[Node, Parts](), true
	}
}

func identBuilder() packrat.ASTBuilder[lex.Token, Node, Parts] {
	return packrat.ParsedBuilder[lex.Token, Node, Parts](func(token *lex.Token) (packrat.ASTAssembly[Node, Parts], error) {
		if token.Kind != lex.TokenIdentifier {
			return packrat.ASTAssembly[Node, Parts]{}, &packrat.NoMatchError{RuleName: "Ident"}
		}
		return packrat.ASTResult[Node, Parts](Node{Kind: NodeIdentifier, Ident: token.Name}), nil
	})
}

func intLitBuilder() packrat.ASTBuilder[lex.Token, Node, Parts] {
	return packrat.ParsedBuilder[lex.Token, Node, Parts](func(token *lex.Token) (packrat.ASTAssembly[Node, Parts], error) {
		if token.Kind != lex.TokenLiteral || token.Lit.Kind != lex.LiteralInteger {
			return packrat.ASTAssembly[Node, Parts]{}, &packrat.NoMatchError{RuleName: "IntLit"}
		}
		return packrat.ASTResult[Node, Parts](Node{Kind: NodeIntLiteral, Int: token.Lit.Int, Suffix: token.Lit.Suffix}), nil
	})
}

func floatLitBuilder() packrat.ASTBuilder[lex.Token, Node, Parts] {
	return packrat.ParsedBuilder[lex.Token, Node, Parts](func(token *lex.Token) (packrat.ASTAssembly[Node, Parts], error) {
		if token.Kind != lex.TokenLiteral || token.Lit.Kind != lex.LiteralFloat {
			return packrat.ASTAssembly[Node, Parts]{}, &packrat.NoMatchError{RuleName: "FloatLit"}
		}
		return packrat.ASTResult[Node, Parts](Node{Kind: NodeFloatLiteral, Float: token.Lit.Float, Suffix: token.Lit.Suffix}), nil
	})
}

// programBuilder fires once Program's root state has fully matched. The
// engine requires the rule it parses from to produce Match(AST(...)) at
// the root, so unlike the rest of the composite rules below, Program
// cannot carry NoBuilder even though it has no values of its own to
// collect from its matched statements.
func programBuilder() packrat.ASTBuilder[lex.Token, Node, Parts] {
	return packrat.OnMatchBuilder[lex.Token, Node, Parts](func(rule *grammar.Rule) (packrat.ASTAssembly[Node, Parts], error) {
		return packrat.ASTResult[Node, Parts](Node{Kind: NodeProgram}), nil
	})
}

// Rules builds nagilang's full rule table: a left-recursive expression
// precedence chain, if/else, block, let-bindings, and expression
// statements. Every composite rule but Program carries NoBuilder — the
// engine's OnMatch hook only ever sees a rule's static shape, never its
// matched children's values, so (as in the grammar this is adapted from)
// only the leaf token rules construct a Node; the rules that combine them
// are pure recognizers. Program is the exception, since it is the rule the
// engine's top-level parse actually runs and that call requires an AST at
// the root.
func Rules() []packrat.RuleTable[lex.Token, Node, Parts] {
	one := uint64(1)

	ident := grammar.NewRule("Ident", grammar.LiteralNode("<ident>"))
	intLit := grammar.NewRule("IntLit", grammar.LiteralNode("<int>"))
	floatLit := grammar.NewRule("FloatLit", grammar.LiteralNode("<float>"))

	primary := grammar.NewRule("Primary", grammar.Or(
		grammar.Expansion("IfExpr"),
		grammar.Expansion("FloatLit"),
		grammar.Expansion("IntLit"),
		grammar.Expansion("Ident"),
		grammar.Group(grammar.Concat(
			grammar.LiteralNode("lparen"),
			grammar.Expansion("Expr"),
			grammar.LiteralNode("rparen"),
		)),
	))

	// Expr is left-recursive: the seed is Primary, and a growth iteration
	// adds one operator and a right-hand Expr, which grows on its own, so
	// a chain like 1 + 2 + 3 is absorbed in the first iteration and groups
	// to the right.
	expr := grammar.NewRule("Expr", grammar.Or(
		grammar.Concat(grammar.Expansion("Expr"), grammar.LiteralNode("assign"), grammar.Expansion("Expr")),
		grammar.Concat(grammar.Expansion("Expr"), grammar.LiteralNode("eq"), grammar.Expansion("Expr")),
		grammar.Concat(grammar.Expansion("Expr"), grammar.LiteralNode("ne"), grammar.Expansion("Expr")),
		grammar.Concat(grammar.Expansion("Expr"), grammar.LiteralNode("lt"), grammar.Expansion("Expr")),
		grammar.Concat(grammar.Expansion("Expr"), grammar.LiteralNode("gt"), grammar.Expansion("Expr")),
		grammar.Concat(grammar.Expansion("Expr"), grammar.LiteralNode("add"), grammar.Expansion("Expr")),
		grammar.Concat(grammar.Expansion("Expr"), grammar.LiteralNode("sub"), grammar.Expansion("Expr")),
		grammar.Concat(grammar.Expansion("Expr"), grammar.LiteralNode("mul"), grammar.Expansion("Expr")),
		grammar.Concat(grammar.Expansion("Expr"), grammar.LiteralNode("div"), grammar.Expansion("Expr")),
		grammar.Expansion("Primary"),
	))

	block := grammar.NewRule("Block", grammar.Concat(
		grammar.LiteralNode("lbrace"),
		grammar.Repeat(grammar.Expansion("Stmt"), 0, nil),
		grammar.LiteralNode("rbrace"),
	))

	ifExpr := grammar.NewRule("IfExpr", grammar.Concat(
		grammar.LiteralNode("if"),
		grammar.Expansion("Expr"),
		grammar.Expansion("Block"),
		grammar.Repeat(grammar.Group(grammar.Concat(
			grammar.LiteralNode("else"),
			grammar.Or(grammar.Expansion("Block"), grammar.Expansion("IfExpr")),
		)), 0, &one),
	))

	letStmt := grammar.NewRule("LetStmt", grammar.Concat(
		grammar.LiteralNode("let"),
		grammar.Repeat(grammar.LiteralNode("mut"), 0, &one),
		grammar.Expansion("Ident"),
		grammar.LiteralNode("assign"),
		grammar.Expansion("Expr"),
		grammar.LiteralNode("semi"),
	))

	exprStmt := grammar.NewRule("ExprStmt", grammar.Concat(
		grammar.Expansion("Expr"),
		grammar.LiteralNode("semi"),
	))

	// IfExpr and Block are tried before ExprStmt so an if/else or a
	// nested block can stand alone as a statement without a trailing
	// semicolon, the same way a braced control-flow expression does in
	// the language this is adapted from.
	stmt := grammar.NewRule("Stmt", grammar.Or(
		grammar.Expansion("LetStmt"),
		grammar.Expansion("IfExpr"),
		grammar.Expansion("Block"),
		grammar.Expansion("ExprStmt"),
	))

	program := grammar.NewRule(StartRule, grammar.Repeat(grammar.Expansion("Stmt"), 0, nil))

	noBuilder := packrat.NoBuilder[lex.Token, Node, Parts]()

	return []packrat.RuleTable[lex.Token, Node, Parts]{
		{Rule: ident, Builder: identBuilder()},
		{Rule: intLit, Builder: intLitBuilder()},
		{Rule: floatLit, Builder: floatLitBuilder()},
		{Rule: primary, Builder: noBuilder},
		{Rule: expr, Builder: noBuilder},
		{Rule: block, Builder: noBuilder},
		{Rule: ifExpr, Builder: noBuilder},
		{Rule: letStmt, Builder: noBuilder},
		{Rule: exprStmt, Builder: noBuilder},
		{Rule: stmt, Builder: noBuilder},
		{Rule: program, Builder: programBuilder()},
	}
}

// NewEngine builds the packrat engine over nagilang's full rule table,
// ready to Parse a cursor produced by Lex.
func NewEngine() (*packrat.Engine[lex.Token, Node, Parts], error) {
	return packrat.NewEngine(literalMatcher(), StartRule, Rules())
}
