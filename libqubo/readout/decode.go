package readout

import (
	"github.com/fine-structures/qubo.SDK/goqubo"
)

// costShift moves bit 23 of a readout cost word to the top of an int32.
const costShift = 32 - (goqubo.SignBit24 + 1)

// SignExtend24 returns the signed value of the 24-bit two's-complement pattern in the low bits of raw.
// Bits above bit 23 are ignored; the result is always in [MinCost24, MaxCost24].
func SignExtend24(raw int32) int32 {
	return int32(uint32(raw)<<costShift) >> costShift
}

// DecodeSolutionBit returns the variable value carried by a raw neuron state word:
// the word is masked to its low 3 bits and bit 2 of the result is returned.
func DecodeSolutionBit(raw int32) uint8 {
	return uint8(((raw & goqubo.NeuronStateMask) >> goqubo.NeuronStateBit) & 1)
}

// DecodeSolution decodes each raw neuron state word into dst, which must have the same length as raw.
func DecodeSolution(dst goqubo.Solution, raw []int32) {
	for i, word := range raw {
		dst[i] = DecodeSolutionBit(word)
	}
}

// Step returns the iteration index carried by a raw timestep (its magnitude).
func Step(rawTimestep int32) int64 {
	step := int64(rawTimestep)
	if step < 0 {
		step = -step
	}
	return step
}
