package typectx

import (
	"testing"

	"github.com/muyoamon/morphl/interner"
	"github.com/muyoamon/morphl/types"
	"github.com/stretchr/testify/require"
)

func TestVarLookupIsInnermostFirst(t *testing.T) {
	in := interner.New()
	x := in.Intern("x")

	ctx := New()
	ctx.DefineVar(x, types.NewInt())
	ctx.PushScope()
	ctx.DefineVar(x, types.NewBool())

	got, ok := ctx.LookupVar(x)
	require.True(t, ok)
	require.Equal(t, types.Bool, got.Kind)

	ctx.PopScope()
	got, ok = ctx.LookupVar(x)
	require.True(t, ok)
	require.Equal(t, types.Int, got.Kind)
}

func TestUpdateVarOnlyAffectsInnermostScope(t *testing.T) {
	in := interner.New()
	x := in.Intern("x")

	ctx := New()
	ctx.DefineVar(x, types.NewInt())
	ctx.PushScope()

	require.False(t, ctx.UpdateVar(x, types.NewBool()))

	ctx.PopScope()
	require.True(t, ctx.UpdateVar(x, types.NewBool()))
}

func TestCheckDuplicateVarIsScopeLocal(t *testing.T) {
	in := interner.New()
	x := in.Intern("x")

	ctx := New()
	ctx.DefineVar(x, types.NewInt())
	require.True(t, ctx.CheckDuplicateVar(x))

	ctx.PushScope()
	require.False(t, ctx.CheckDuplicateVar(x))
}

func TestDefineFuncRejectsCollision(t *testing.T) {
	in := interner.New()
	f := in.Intern("f")

	ctx := New()
	require.True(t, ctx.DefineFunc(f, types.NewFunc(nil, types.NewVoid())))
	require.False(t, ctx.DefineFunc(f, types.NewFunc(nil, types.NewInt())))

	got, ok := ctx.LookupFunc(f)
	require.True(t, ok)
	require.Equal(t, types.Void, got.Ret.Kind)
}

func TestForwardLifecycle(t *testing.T) {
	in := interner.New()
	f := in.Intern("f")
	sig := types.NewFunc([]*types.Type{types.NewInt()}, types.NewInt())

	ctx := New()
	require.True(t, ctx.DefineForward(f, sig))
	require.False(t, ctx.DefineForward(f, sig)) // duplicate forward

	_, resolved, ok := ctx.LookupForward(f)
	require.True(t, ok)
	require.False(t, resolved)

	require.Len(t, ctx.CheckUnresolvedForwards(), 1)

	require.False(t, ctx.DefineForwardBody(f, types.NewFunc([]*types.Type{types.NewBool()}, types.NewInt())))
	require.True(t, ctx.DefineForwardBody(f, sig))

	require.Empty(t, ctx.CheckUnresolvedForwards())
	require.False(t, ctx.DefineForwardBody(f, sig)) // already resolved
}

func TestPopScopeReportsUnresolvedForwardsButStillUnwinds(t *testing.T) {
	in := interner.New()
	f := in.Intern("f")

	ctx := New()
	ctx.PushScope()
	depth := ctx.Depth()
	ctx.DefineForward(f, types.NewFunc(nil, types.NewVoid()))

	unresolved := ctx.PopScope()
	require.Len(t, unresolved, 1)
	require.Equal(t, f, unresolved[0].Name)
	require.Equal(t, depth-1, ctx.Depth())
}

func TestNamespaceStacksNestAndRestore(t *testing.T) {
	ctx := New()
	require.Nil(t, ctx.File())

	ctx.PushFile(types.NewInt())
	require.Equal(t, types.Int, ctx.File().Kind)

	ctx.PushFile(types.NewBool())
	require.Equal(t, types.Bool, ctx.File().Kind)

	require.True(t, ctx.PopFile())
	require.Equal(t, types.Int, ctx.File().Kind)

	require.True(t, ctx.PopFile())
	require.Nil(t, ctx.File())
	require.False(t, ctx.PopFile())
}

func TestThisStackEmptyPopFails(t *testing.T) {
	ctx := New()
	_, ok := ctx.This()
	require.False(t, ok)
	require.False(t, ctx.PopThis())

	ctx.PushThis(types.NewInt())
	got, ok := ctx.This()
	require.True(t, ok)
	require.Equal(t, types.Int, got.Kind)
}

func TestExpectedReturnRoundTrip(t *testing.T) {
	ctx := New()
	require.Nil(t, ctx.ExpectedReturn())

	ctx.SetExpectedReturn(types.NewInt())
	require.Equal(t, types.Int, ctx.ExpectedReturn().Kind)

	ctx.ClearExpectedReturn()
	require.Nil(t, ctx.ExpectedReturn())
}
