package types

import (
	"testing"

	"github.com/muyoamon/morphl/interner"
	"github.com/stretchr/testify/require"
)

func TestPrimitiveEquality(t *testing.T) {
	require.True(t, Equals(NewInt(), NewInt()))
	require.False(t, Equals(NewInt(), NewFloat()))
}

func TestFuncEqualityRequiresSameParamsAndReturn(t *testing.T) {
	a := NewFunc([]*Type{NewInt()}, NewInt())
	b := NewFunc([]*Type{NewInt()}, NewInt())
	c := NewFunc([]*Type{NewInt(), NewInt()}, NewInt())
	d := NewFunc([]*Type{NewInt()}, NewBool())

	require.True(t, Equals(a, b))
	require.False(t, Equals(a, c))
	require.False(t, Equals(a, d))
}

func TestRefEqualityRequiresFlagsAndTarget(t *testing.T) {
	a := NewRef(NewInt(), true, false)
	b := NewRef(NewInt(), true, false)
	c := NewRef(NewInt(), false, false)

	require.True(t, Equals(a, b))
	require.False(t, Equals(a, c))
}

func TestGroupEqualityIsElementwise(t *testing.T) {
	a := NewGroup([]*Type{NewInt(), NewBool()})
	b := NewGroup([]*Type{NewInt(), NewBool()})
	c := NewGroup([]*Type{NewBool(), NewInt()})

	require.True(t, Equals(a, b))
	require.False(t, Equals(a, c))
}

func TestBlockEqualityIsFieldByField(t *testing.T) {
	in := interner.New()
	x := in.Intern("x")
	y := in.Intern("y")

	a := NewBlock([]interner.Symbol{x, y}, []*Type{NewInt(), NewBool()})
	b := NewBlock([]interner.Symbol{x, y}, []*Type{NewInt(), NewBool()})
	c := NewBlock([]interner.Symbol{y, x}, []*Type{NewBool(), NewInt()})

	require.True(t, Equals(a, b))
	require.False(t, Equals(a, c))
}

func TestNilTypesOnlyEqualEachOther(t *testing.T) {
	require.True(t, Equals(nil, nil))
	require.False(t, Equals(nil, NewVoid()))
}
