package infer

import (
	"testing"

	"github.com/muyoamon/morphl/ast"
	"github.com/muyoamon/morphl/diag"
	"github.com/muyoamon/morphl/interner"
	"github.com/muyoamon/morphl/registry"
	"github.com/muyoamon/morphl/types"
	"github.com/muyoamon/morphl/typectx"
	"github.com/stretchr/testify/require"
)

func newFixture() (*Inferrer, *diag.Sink) {
	in := interner.New()
	reg := registry.Init(in)
	ctx := typectx.New()
	sink := diag.NewSink(nil)
	return New(in, reg, ctx, sink), sink
}

func lit(v string) *ast.Node { return ast.NewLeaf(ast.Literal, v, ast.Span{}) }
func ident(v string) *ast.Node { return ast.NewLeaf(ast.Ident, v, ast.Span{}) }

func builtin(op string, in *interner.Interner, children ...*ast.Node) *ast.Node {
	n := ast.New(ast.Builtin)
	n.Op = in.Intern(op)
	for _, c := range children {
		n.AppendChild(c)
	}
	return n
}

func TestInferLiterals(t *testing.T) {
	inf, _ := newFixture()
	require.Equal(t, types.Int, inf.Infer(lit("42")).Kind)
	require.Equal(t, types.Float, inf.Infer(lit("4.2")).Kind)
	require.Equal(t, types.String, inf.Infer(lit("hello")).Kind)
}

func TestInferArithmeticRequiresMatchingIntOperands(t *testing.T) {
	inf, sink := newFixture()
	in := interner.New() // unused directly; reuse inf's own interner below
	_ = in
	node := builtin(registry.OpAdd, internerOf(inf), lit("1"), lit("2"))
	got := inf.Infer(node)
	require.Equal(t, types.Int, got.Kind)
	require.False(t, sink.HadFailure())
}

func TestInferArithmeticRejectsMixedKinds(t *testing.T) {
	inf, sink := newFixture()
	node := builtin(registry.OpAdd, internerOf(inf), lit("1"), lit("2.0"))
	got := inf.Infer(node)
	require.Equal(t, types.Unknown, got.Kind)
	require.True(t, sink.HadFailure())
}

func TestInferComparisonProducesBool(t *testing.T) {
	inf, _ := newFixture()
	node := builtin(registry.OpLt, internerOf(inf), lit("1"), lit("2"))
	require.Equal(t, types.Bool, inf.Infer(node).Kind)
}

func TestInferDeclThenIdentLookup(t *testing.T) {
	inf, sink := newFixture()
	decl := ast.New(ast.Decl)
	decl.AppendChild(ident("x"))
	decl.AppendChild(lit("1"))

	useBlock := ast.New(ast.Block)
	useBlock.AppendChild(decl)
	useBlock.AppendChild(ident("x"))

	got := inf.Infer(useBlock)
	require.Equal(t, types.Int, got.Kind)
	require.False(t, sink.HadFailure())
}

func TestInferUndeclaredIdentFails(t *testing.T) {
	inf, sink := newFixture()
	got := inf.Infer(ident("y"))
	require.Equal(t, types.Unknown, got.Kind)
	require.True(t, sink.HadFailure())
}

func TestInferIfRequiresMatchingBranches(t *testing.T) {
	inf, sink := newFixture()
	cond := builtin(registry.OpEq, internerOf(inf), lit("1"), lit("1"))
	ifNode := ast.New(ast.If)
	ifNode.AppendChild(cond)
	ifNode.AppendChild(lit("1"))
	ifNode.AppendChild(lit("2.0"))

	got := inf.Infer(ifNode)
	require.Equal(t, types.Unknown, got.Kind)
	require.True(t, sink.HadFailure())
}

func TestInferForwardDeclarationEmitsNoError(t *testing.T) {
	inf, sink := newFixture()
	sigParam := ast.New(ast.Group)
	fwd := builtin(registry.OpForward, internerOf(inf), ident("f"), sigParam)
	inf.Infer(fwd)
	require.False(t, sink.HadFailure())
}

// TestInferDeclResolvesMatchingForward exercises spec.md testable
// property scenario 3: a $forward followed by a $decl with a structurally
// equal signature resolves the forward (no "missing body" diagnostic) and
// registers the name in the flat function registry.
func TestInferDeclResolvesMatchingForward(t *testing.T) {
	inf, sink := newFixture()

	sig := ast.New(ast.Func)
	sig.AppendChild(ast.New(ast.Group))
	sig.AppendChild(lit("1"))

	fwd := builtin(registry.OpForward, internerOf(inf), ident("foo"), sig)
	inf.Infer(fwd)
	require.False(t, sink.HadFailure())

	body := ast.New(ast.Func)
	body.AppendChild(ast.New(ast.Group))
	body.AppendChild(lit("2"))

	decl := ast.New(ast.Decl)
	decl.AppendChild(ident("foo"))
	decl.AppendChild(body)
	inf.Infer(decl)
	require.False(t, sink.HadFailure())

	unresolved := inf.ctx.CheckUnresolvedForwards()
	require.Empty(t, unresolved)

	fsym := internerOf(inf).Intern("foo")
	got, ok := inf.ctx.LookupFunc(fsym)
	require.True(t, ok)
	require.Equal(t, types.Func, got.Kind)
}

// TestInferDeclMismatchedForwardFails covers the negative case: a $decl
// whose value does not structurally match the preceding $forward's
// signature is an error, not a silent resolution.
func TestInferDeclMismatchedForwardFails(t *testing.T) {
	inf, sink := newFixture()

	sig := ast.New(ast.Func)
	sig.AppendChild(ast.New(ast.Group))
	sig.AppendChild(lit("1"))
	fwd := builtin(registry.OpForward, internerOf(inf), ident("foo"), sig)
	inf.Infer(fwd)
	require.False(t, sink.HadFailure())

	decl := ast.New(ast.Decl)
	decl.AppendChild(ident("foo"))
	decl.AppendChild(lit("9"))
	inf.Infer(decl)

	require.True(t, sink.HadFailure())
}

// internerOf exposes the Inferrer's own interner so tests build operator
// symbols that compare equal to the ones baked in at New().
func internerOf(inf *Inferrer) *interner.Interner { return inf.in }
