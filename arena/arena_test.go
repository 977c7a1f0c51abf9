package arena

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAllocIsZeroed(t *testing.T) {
	a := New(0)
	b := a.Alloc(16)
	require.Len(t, b, 16)
	for _, c := range b {
		require.Equal(t, byte(0), c)
	}
}

func TestAllocGrowsWithoutAliasing(t *testing.T) {
	a := New(4)
	first := a.Alloc(4)
	copy(first, "abcd")
	second := a.Alloc(4)
	copy(second, "efgh")

	require.Equal(t, "abcd", string(first))
	require.Equal(t, "efgh", string(second))
}

func TestAllocStringReturnsOwnedCopy(t *testing.T) {
	a := New(0)
	src := []byte("hello")
	s := a.AllocString(string(src))
	src[0] = 'H'
	require.Equal(t, "hello", s)
}

func TestReset(t *testing.T) {
	a := New(0)
	a.Alloc(8)
	require.Equal(t, 8, a.Len())
	a.Reset()
	require.Equal(t, 0, a.Len())
}
