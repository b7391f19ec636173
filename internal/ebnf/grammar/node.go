// Package grammar represents an EBNF rule body as a navigable tree and
// loads a full grammar from its meta-grammar source text.
package grammar

import "fmt"

// Node is one node of a rule's expression tree. Exactly one of the typed
// fields is meaningful, selected by Kind.
type Node struct {
	Kind NodeKind

	// Expansion names another rule this node refers to.
	Expansion string

	// Literal holds the exact token text matched by a Literal node.
	Literal string

	// Children holds the child nodes of Concat, Or, Repeat, and Group
	// nodes. Concat and Or may have any number of children; Repeat and
	// Group always have exactly one (Children[0]).
	Children []*Node

	// Min and Max bound a Repeat node's match count. Max is nil for an
	// unbounded upper end ("*", "+", "{n,}").
	Min uint64
	Max *uint64
}

// NodeKind discriminates the variants of Node.
type NodeKind int

const (
	// NodeExpansion refers to another named rule, e.g. "Expression".
	NodeExpansion NodeKind = iota
	// NodeConcat matches its children in sequence.
	NodeConcat
	// NodeOr matches the first child that matches.
	NodeOr
	// NodeRepeat matches its single child between Min and Max times.
	NodeRepeat
	// NodeGroup is a parenthesized sub-expression, kept as a distinct
	// node so the state map gives it its own address.
	NodeGroup
	// NodeLiteral matches an exact token text.
	NodeLiteral
)

func (k NodeKind) String() string {
	switch k {
	case NodeExpansion:
		return "Expansion"
	case NodeConcat:
		return "Concat"
	case NodeOr:
		return "Or"
	case NodeRepeat:
		return "Repeat"
	case NodeGroup:
		return "Group"
	case NodeLiteral:
		return "Literal"
	default:
		return fmt.Sprintf("NodeKind(%d)", int(k))
	}
}

// Expansion builds a node referring to the named rule.
func Expansion(name string) *Node {
	return &Node{Kind: NodeExpansion, Expansion: name}
}

// LiteralNode builds a node matching an exact token text.
func LiteralNode(text string) *Node {
	return &Node{Kind: NodeLiteral, Literal: text}
}

// Concat builds a sequence node over the given children, in order.
func Concat(children ...*Node) *Node {
	return &Node{Kind: NodeConcat, Children: children}
}

// Or builds an alternation node trying each child in order.
func Or(children ...*Node) *Node {
	return &Node{Kind: NodeOr, Children: children}
}

// Group wraps a sub-expression so it gets its own tree address, matching
// the effect of explicit parentheses in the source grammar.
func Group(child *Node) *Node {
	return &Node{Kind: NodeGroup, Children: []*Node{child}}
}

// Repeat builds a bounded-repetition node. A nil max is unbounded.
func Repeat(child *Node, min uint64, max *uint64) *Node {
	return &Node{Kind: NodeRepeat, Children: []*Node{child}, Min: min, Max: max}
}

// hasChild reports whether child is one of node's direct children, by
// pointer identity against node's own Children slice — the state map built
// by buildStateMap stores the tree's original node pointers rather than
// copies, so this is exact even when two sibling subtrees happen to be
// structurally identical.
func hasChild(node, child *Node) bool {
	switch node.Kind {
	case NodeExpansion, NodeLiteral:
		return false
	case NodeOr, NodeConcat:
		for _, c := range node.Children {
			if c == child {
				return true
			}
		}
		return false
	case NodeRepeat, NodeGroup:
		return len(node.Children) == 1 && node.Children[0] == child
	default:
		return false
	}
}

// Name renders the node (and, recursively, its children) as the canonical
// grammar text it was parsed from, used in diagnostics and pretty-printed
// rule dumps.
func (n *Node) Name() string {
	if n == nil {
		return ""
	}
	switch n.Kind {
	case NodeExpansion:
		return n.Expansion
	case NodeLiteral:
		return literalQuote + n.Literal + literalQuote
	case NodeConcat:
		return joinNames(n.Children, " ")
	case NodeOr:
		return joinNames(n.Children, " | ")
	case NodeGroup:
		return "( " + n.Children[0].Name() + " )"
	case NodeRepeat:
		return n.Children[0].Name() + n.quantifierSuffix()
	default:
		return ""
	}
}

func (n *Node) quantifierSuffix() string {
	switch {
	case n.Min == 0 && n.Max == nil:
		return "*"
	case n.Min == 1 && n.Max == nil:
		return "+"
	case n.Min == 0 && n.Max != nil && *n.Max == 1:
		return "?"
	case n.Max == nil:
		return fmt.Sprintf("{%d,}", n.Min)
	case n.Min == *n.Max:
		return fmt.Sprintf("{%d}", n.Min)
	default:
		return fmt.Sprintf("{%d, %d}", n.Min, *n.Max)
	}
}

func joinNames(nodes []*Node, sep string) string {
	out := ""
	for i, c := range nodes {
		if i > 0 {
			out += sep
		}
		out += c.Name()
	}
	return out
}

// literalQuote is the delimiter used around literal text in both Name
// output and the meta-grammar's own literal syntax. A backtick keeps
// regular double quotes free for use inside the literal text itself.
const literalQuote = "`"
