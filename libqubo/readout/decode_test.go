package readout_test

import (
	"testing"

	"github.com/fine-structures/qubo.SDK/goqubo"
	"github.com/fine-structures/qubo.SDK/libqubo/readout"
	"github.com/stretchr/testify/require"
)

func TestSignExtend24(t *testing.T) {
	cases := []struct {
		raw  int32
		cost int32
	}{
		{0x000001, 1},
		{0x7FFFFF, goqubo.MaxCost24},
		{0x800000, goqubo.MinCost24},
		{0xFFFFFE, -2},
		{0xFFFFFF, -1},
		{-2, -2},
		{0x12FFFFFE, -2}, // bits above 23 are ignored
		{0x01000005, 5},
	}
	for _, c := range cases {
		require.Equal(t, c.cost, readout.SignExtend24(c.raw), "raw=%#x", c.raw)
	}

	// identity over the whole 24-bit range, sampled
	for v := int32(goqubo.MinCost24); v <= goqubo.MaxCost24; v += 997 {
		require.Equal(t, v, readout.SignExtend24(v))
		require.Equal(t, v, readout.SignExtend24(v&0xFFFFFF))
	}
}

func TestDecodeSolution(t *testing.T) {
	require.Equal(t, uint8(0), readout.DecodeSolutionBit(0))
	require.Equal(t, uint8(0), readout.DecodeSolutionBit(3))
	require.Equal(t, uint8(1), readout.DecodeSolutionBit(4))
	require.Equal(t, uint8(1), readout.DecodeSolutionBit(7))
	require.Equal(t, uint8(0), readout.DecodeSolutionBit(8))
	require.Equal(t, uint8(1), readout.DecodeSolutionBit(12))
	require.Equal(t, uint8(1), readout.DecodeSolutionBit(-1))

	x := make(goqubo.Solution, 4)
	readout.DecodeSolution(x, []int32{4, 0, 5, 2})
	require.Equal(t, goqubo.Solution{1, 0, 1, 0}, x)

	require.Equal(t, int64(7), readout.Step(-7))
	require.Equal(t, int64(7), readout.Step(7))
	require.Equal(t, int64(2147483648), readout.Step(-2147483648))
}
