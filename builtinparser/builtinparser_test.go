package builtinparser

import (
	"testing"

	"github.com/muyoamon/morphl/ast"
	"github.com/muyoamon/morphl/interner"
	"github.com/muyoamon/morphl/lexer"
	"github.com/muyoamon/morphl/registry"
	"github.com/muyoamon/morphl/token"
	"github.com/stretchr/testify/require"
)

func lex(in *interner.Interner, src string) []token.Token {
	lx := lexer.New(in, nil, "<test>", []byte(src))
	return lx.Tokenize()
}

func TestPrefixFallbackArithmetic(t *testing.T) {
	in := interner.New()
	reg := registry.Init(in)
	toks := lex(in, "$decl x $add 2 3")

	p := New(toks, in, reg)
	root, err := p.ParseOne()
	require.NoError(t, err)
	require.Equal(t, ast.Decl, root.Kind)
	require.Len(t, root.Children, 2)
	require.Equal(t, ast.Ident, root.Children[0].Kind)
	require.Equal(t, "x", root.Children[0].Value)
	require.Equal(t, ast.Builtin, root.Children[1].Kind)
	require.Len(t, root.Children[1].Children, 2)
}

func TestMultipleStatementsWrapInImplicitBlock(t *testing.T) {
	in := interner.New()
	reg := registry.Init(in)
	toks := lex(in, "$decl x 1; $decl y 2")

	p := New(toks, in, reg)
	root, err := p.ParseProgram()
	require.NoError(t, err)
	require.Equal(t, ast.Block, root.Kind)
	require.Len(t, root.Children, 2)
}

func TestSingleStatementIsNotWrapped(t *testing.T) {
	in := interner.New()
	reg := registry.Init(in)
	toks := lex(in, "$decl x 1")

	p := New(toks, in, reg)
	root, err := p.ParseProgram()
	require.NoError(t, err)
	require.Equal(t, ast.Decl, root.Kind)
}

func TestUnknownBuiltinFallsBackToBuiltinKind(t *testing.T) {
	in := interner.New()
	reg := registry.Init(in)
	toks := lex(in, "$mystery 1 2")

	p := New(toks, in, reg)
	root, err := p.ParseOne()
	require.NoError(t, err)
	require.Equal(t, ast.Builtin, root.Kind)
	require.Len(t, root.Children, 2)
}

func TestUnexpectedEOFIsAnError(t *testing.T) {
	in := interner.New()
	reg := registry.Init(in)
	toks := lex(in, "")

	p := New(toks, in, reg)
	_, err := p.ParseOne()
	require.Error(t, err)
}
