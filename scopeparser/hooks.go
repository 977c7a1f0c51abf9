package scopeparser

import (
	"github.com/muyoamon/morphl/ast"
	"github.com/muyoamon/morphl/diag"
	"github.com/muyoamon/morphl/registry"
	"github.com/muyoamon/morphl/token"
)

// hookContext dispatches each preprocessor operator's side effect as a
// typed method call. The original interpreted a single opaque callback
// taking two void* state pointers — a typing weakness this package avoids
// by making each hook a case in an enum of side effects the orchestrator
// interprets directly: a switch over the operator's registered name, each
// arm a concretely-typed method on hookContext.
type hookContext struct {
	p *Parser
}

func toTokenSpan(s ast.Span) token.Span {
	return token.Span{Filename: s.Filename, Row: s.Row, Col: s.Col}
}

// run dispatches to the handler for info's operator. Operators outside this
// switch never reach here: postProcess only calls run for rows with
// IsPreprocessor set, and every such row in the registry table is handled
// below.
func (h hookContext) run(info registry.Info, n *ast.Node) {
	switch info.Name {
	case registry.OpSyntax:
		h.handleSyntax(n)
	case registry.OpImport:
		h.handleImport(n)
	case registry.OpProp:
		h.handleProp(n)
	case registry.OpDecl:
		h.handleDecl(n)
	case registry.OpForward:
		h.handleForward(n)
	}
}

// handleSyntax implements $syntax "path": replaces the current
// scope's grammar. The node itself is always Dropped by its registry
// policy regardless of whether the load succeeds — a failed load is a
// warning, not a reason to keep the directive node.
func (h hookContext) handleSyntax(n *ast.Node) {
	if len(n.Children) != 1 || n.Children[0].Kind != ast.Literal {
		h.p.sink.Errorf(toTokenSpan(n.Span), diag.CodeParseBase+10, "$syntax requires exactly one string literal argument")
		return
	}
	h.p.ReplaceCurrent(n.Children[0].Value)
}

// handleImport implements $import "path": validates the
// literal only. Attaching the imported module's tree is reserved for
// future work, so there is nothing further to do here; the
// node's Keep policy leaves it in the tree for the backend to see.
func (h hookContext) handleImport(n *ast.Node) {
	if len(n.Children) != 1 || n.Children[0].Kind != ast.Literal {
		h.p.sink.Errorf(toTokenSpan(n.Span), diag.CodeParseBase+11, "$import requires exactly one string literal argument")
	}
}

// handleProp implements $prop key value: the hook validates
// arity only. Attaching the property to its surrounding declaration
// context is a type-level concern, not a parse-phase one.
func (h hookContext) handleProp(n *ast.Node) {
	if len(n.Children) != 2 {
		h.p.sink.Errorf(toTokenSpan(n.Span), diag.CodeParseBase+12, "$prop requires exactly 2 arguments")
	}
}

// handleDecl implements $decl name value. The parse-phase hook
// validates the binding's shape (an identifier target); the value's type
// is not known until the inference pass runs, so the actual scope binding
// happens in package infer, once resolution completes there.
func (h hookContext) handleDecl(n *ast.Node) {
	if len(n.Children) != 2 || n.Children[0].Kind != ast.Ident {
		h.p.sink.Errorf(toTokenSpan(n.Span), diag.CodeParseBase+13, "$decl requires an identifier target and a value")
	}
}

// handleForward implements $forward name <func-type>. Like $decl, the parse-phase hook only checks
// shape; DefineForward itself runs during inference.
func (h hookContext) handleForward(n *ast.Node) {
	if len(n.Children) != 2 || n.Children[0].Kind != ast.Ident {
		h.p.sink.Errorf(toTokenSpan(n.Span), diag.CodeParseBase+14, "$forward requires an identifier target and a type expression")
	}
}
