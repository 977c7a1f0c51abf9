package interner

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestInternIsIdempotent(t *testing.T) {
	in := New()
	a := in.Intern("$add")
	b := in.Intern("$add")
	require.Equal(t, a, b)
}

func TestLookupRoundTrips(t *testing.T) {
	in := New()
	sym := in.Intern("hello world")
	require.Equal(t, "hello world", in.Lookup(sym))
}

func TestZeroSymbolIsNone(t *testing.T) {
	in := New()
	require.Equal(t, "", in.Lookup(Symbol(0)))
	require.Equal(t, Symbol(0), in.Intern(""))
}

func TestSymbolsSurviveRehash(t *testing.T) {
	in := New()
	first := in.Intern("first")

	for i := 0; i < 1000; i++ {
		in.Intern(fmt.Sprintf("filler-%d", i))
	}

	require.Equal(t, "first", in.Lookup(first))
	require.Equal(t, first, in.Intern("first"))
}

func TestDistinctStringsGetDistinctSymbols(t *testing.T) {
	in := New()
	a := in.Intern("$add")
	b := in.Intern("$sub")
	require.NotEqual(t, a, b)
}
