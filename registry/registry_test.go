package registry

import (
	"testing"

	"github.com/muyoamon/morphl/ast"
	"github.com/muyoamon/morphl/interner"
	"github.com/stretchr/testify/require"
)

func TestInitInternsEveryName(t *testing.T) {
	in := interner.New()
	r := Init(in)

	info, ok := r.LookupName(OpAdd)
	require.True(t, ok)
	require.Equal(t, in.Intern(OpAdd), info.Op)
}

func TestLookupByInternedSymbol(t *testing.T) {
	in := interner.New()
	r := Init(in)

	sym := in.Intern(OpDecl)
	info, ok := r.Lookup(sym)
	require.True(t, ok)
	require.Equal(t, ast.Decl, info.AstKind)
	require.True(t, info.IsPreprocessor)
}

func TestUnknownOperatorNotFound(t *testing.T) {
	in := interner.New()
	r := Init(in)

	_, ok := r.Lookup(in.Intern("$nope"))
	require.False(t, ok)
}

func TestSyntaxIsDropPolicyAndSinglePreprocessorArg(t *testing.T) {
	in := interner.New()
	r := Init(in)

	info, ok := r.LookupName(OpSyntax)
	require.True(t, ok)
	require.Equal(t, Drop, info.Policy)
	require.True(t, info.Arity(1))
	require.False(t, info.Arity(0))
	require.False(t, info.Arity(2))
}

func TestArityUnbounded(t *testing.T) {
	info := Info{MinArgs: 0, MaxArgs: Unbounded}
	require.True(t, info.Arity(0))
	require.True(t, info.Arity(1000))
}
