package libqubo_test

import (
	"testing"

	"github.com/fine-structures/qubo.SDK/goqubo"
	"github.com/fine-structures/qubo.SDK/libqubo"
	"github.com/stretchr/testify/require"
)

func TestSolutionSet(t *testing.T) {
	set := libqubo.NewSolutionSet()
	defer set.Close()

	require.True(t, set.TryAdd(goqubo.Solution{1, 0, 1}))
	require.False(t, set.TryAdd(goqubo.Solution{1, 0, 1}))
	require.True(t, set.TryAdd(goqubo.Solution{1, 0, 1, 0}), "length is part of identity")
	require.True(t, set.TryAdd(goqubo.Solution{0, 0, 0}))
	require.Equal(t, 3, set.Len())

	set.Close()
	require.Equal(t, 0, set.Len())
	require.True(t, set.TryAdd(goqubo.Solution{1, 0, 1}))
}

func TestSolutionKey(t *testing.T) {
	x := make(goqubo.Solution, 200)
	x[0], x[9], x[199] = 1, 1, 1

	key := libqubo.AppendSolutionKey(nil, x)
	require.Equal(t, []byte{0xC8, 0x01}, key[:2])
	require.Len(t, key, 2+25)
	require.Equal(t, byte(0x01), key[2])
	require.Equal(t, byte(0x02), key[3])
	require.Equal(t, byte(0x80), key[len(key)-1])
}
