// Package ast defines the tagged-tree AST node shape.
//
// The teacher models the tree as an interface hierarchy (Node/Statement/
// Expression with one Go type per node shape — lang/ast/ast.go). spec §3
// instead specifies one mutable tagged node type shared by every AST shape
// (Literal, Ident, Call, Func, If, Block, Group, Decl, Set, Builtin,
// Overload, Unknown), distinguished by a Kind field and an operator symbol,
// with a dynamically-grown child slice. That single-struct shape, not the
// teacher's per-kind interfaces, is what spec §4.4 calls for, so this
// package departs from the teacher's AST encoding while keeping its
// documentation register and doc-comment density.
package ast

import "github.com/muyoamon/morphl/interner"

// Kind tags the shape of a Node.
type Kind int

const (
	Unknown Kind = iota
	Literal
	Ident
	Call
	Func
	If
	Block
	Group
	Decl
	Set
	Builtin
	Overload
)

func (k Kind) String() string {
	switch k {
	case Literal:
		return "Literal"
	case Ident:
		return "Ident"
	case Call:
		return "Call"
	case Func:
		return "Func"
	case If:
		return "If"
	case Block:
		return "Block"
	case Group:
		return "Group"
	case Decl:
		return "Decl"
	case Set:
		return "Set"
	case Builtin:
		return "Builtin"
	case Overload:
		return "Overload"
	default:
		return "Unknown"
	}
}

// Span identifies the source location a node was produced from.
type Span struct {
	Filename string
	Row      int
	Col      int
}

// Node is one AST node. Builtin/structural nodes carry Op set to an
// interned operator symbol present in the operator registry; literal/ident
// nodes carry a non-empty Value (spec §3 invariants). Children are owned
// exclusively by their parent.
type Node struct {
	Kind     Kind
	Op       interner.Symbol
	Value    string
	Children []*Node
	Span     Span
}

const initialChildCap = 4

// New allocates an empty node of the given kind.
func New(kind Kind) *Node {
	return &Node{Kind: kind}
}

// NewLeaf allocates a Literal or Ident node carrying value and span.
func NewLeaf(kind Kind, value string, span Span) *Node {
	return &Node{Kind: kind, Value: value, Span: span}
}

// AppendChild grows Children by doubling, starting at 4.
func (n *Node) AppendChild(child *Node) {
	if n.Children == nil {
		n.Children = make([]*Node, 0, initialChildCap)
	} else if len(n.Children) == cap(n.Children) {
		grown := make([]*Node, len(n.Children), cap(n.Children)*2)
		copy(grown, n.Children)
		n.Children = grown
	}
	n.Children = append(n.Children, child)
}

// IsLeaf reports whether n has no children.
func (n *Node) IsLeaf() bool { return len(n.Children) == 0 }
