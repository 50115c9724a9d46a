package libqubo_test

import (
	"testing"

	"github.com/fine-structures/qubo.SDK/libqubo"
	"github.com/stretchr/testify/require"
)

func TestMT19937ReferenceOutputs(t *testing.T) {
	r := libqubo.NewMT19937(5489)
	require.Equal(t, uint32(3499211612), r.Uint32())
	require.Equal(t, uint32(581869302), r.Uint32())
	require.Equal(t, uint32(3890346734), r.Uint32())

	r.Seed(42)
	require.Equal(t, uint32(1608637542), r.Uint32())
	require.Equal(t, uint32(3421126067), r.Uint32())
	require.Equal(t, uint32(4083286876), r.Uint32())
}

func TestMT19937Float64(t *testing.T) {
	r := libqubo.NewMT19937(42)
	require.Equal(t, 0.3745401188473625, r.Float64())
	require.Equal(t, 0.9507143064099162, r.Float64())

	for i := 0; i < 10000; i++ {
		f := r.Float64()
		require.True(t, f >= 0 && f < 1, "%v out of [0,1)", f)
	}
}
