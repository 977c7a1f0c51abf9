package ast

import (
	"fmt"
	"io"
	"strings"

	"github.com/muyoamon/morphl/interner"
)

// Print renders n as a depth-first, indented tree ("traversal
// for pretty-printing is depth-first with per-level indentation").
func Print(w io.Writer, n *Node, interns *interner.Interner) {
	printNode(w, n, interns, 0)
}

func printNode(w io.Writer, n *Node, interns *interner.Interner, depth int) {
	if n == nil {
		return
	}
	indent := strings.Repeat("  ", depth)
	label := n.Kind.String()
	if n.Op != 0 && interns != nil {
		label += " " + interns.Lookup(n.Op)
	}
	if n.Value != "" {
		fmt.Fprintf(w, "%s%s %q\n", indent, label, n.Value)
	} else {
		fmt.Fprintf(w, "%s%s\n", indent, label)
	}
	for _, c := range n.Children {
		printNode(w, c, interns, depth+1)
	}
}

// Leaves returns the in-order sequence of leaf (childless) nodes,
// used to validate spec §8's "in-order leaves reconstruct the tokens" property.
func Leaves(n *Node) []*Node {
	if n == nil {
		return nil
	}
	if n.IsLeaf() {
		return []*Node{n}
	}
	var out []*Node
	for _, c := range n.Children {
		out = append(out, Leaves(c)...)
	}
	return out
}
