package nagilang

// Node is the AST payload nagilang's rule tables assemble. Only the
// terminal rules (identifiers and numeric literals) and the grammar's
// start rule ever produce a non-empty Node — every other composite rule
// (expressions, statements, blocks) is a pure recognizer with no OnMatch
// builder, the same division the worked grammar they're adapted from uses:
// an OnMatch callback sees only the static shape of the rule that just
// matched, never the values its matched children produced, so there is no
// mechanism in the engine for a composite rule to collect its children's
// Nodes even if it wanted to. Program is the one exception, since the
// engine requires the rule it parses from to yield an AST at its root.
type Node struct {
	Kind NodeKind

	Ident  string
	Int    uint64
	Float  float64
	Suffix string
	Op     string
}

type NodeKind int

const (
	NodeNone NodeKind = iota
	NodeIdentifier
	NodeIntLiteral
	NodeFloatLiteral
	NodeOperator
	NodeProgram
)

// Parts is nagilang's ASTAssembly Parts payload. Nothing in this grammar
// ever constructs one — every rule either yields a Node or nothing at
// all — but the packrat engine is generic over a Parts type regardless,
// so one has to be named.
type Parts struct{}
