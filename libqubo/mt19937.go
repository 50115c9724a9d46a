package libqubo

// MT19937 is the 32-bit Mersenne Twister, seeded with the reference init_genrand routine.
//
// A given (numVertices, connectionProb, seed) must yield a bit-identical graph on every platform,
// so problem generation draws only from this source.
type MT19937 struct {
	mt  [mtN]uint32
	mti int
}

const (
	mtN         = 624
	mtM         = 397
	mtMatrixA   = 0x9908b0df
	mtUpperMask = 0x80000000
	mtLowerMask = 0x7fffffff
)

func NewMT19937(seed uint32) *MT19937 {
	r := &MT19937{}
	r.Seed(seed)
	return r
}

// Seed resets the generator state from the given seed.
func (r *MT19937) Seed(seed uint32) {
	r.mt[0] = seed
	for i := 1; i < mtN; i++ {
		prev := r.mt[i-1]
		r.mt[i] = 1812433253*(prev^(prev>>30)) + uint32(i)
	}
	r.mti = mtN
}

func (r *MT19937) twist() {
	for i := 0; i < mtN; i++ {
		y := (r.mt[i] & mtUpperMask) | (r.mt[(i+1)%mtN] & mtLowerMask)
		next := r.mt[(i+mtM)%mtN] ^ (y >> 1)
		if y&1 != 0 {
			next ^= mtMatrixA
		}
		r.mt[i] = next
	}
	r.mti = 0
}

// Uint32 returns the next tempered 32-bit output.
func (r *MT19937) Uint32() uint32 {
	if r.mti >= mtN {
		r.twist()
	}
	y := r.mt[r.mti]
	r.mti++

	y ^= y >> 11
	y ^= (y << 7) & 0x9d2c5680
	y ^= (y << 15) & 0xefc60000
	y ^= y >> 18
	return y
}

// Float64 returns a uniform value in [0, 1) with 53 bits of resolution, formed from two consecutive outputs.
func (r *MT19937) Float64() float64 {
	a := r.Uint32() >> 5
	b := r.Uint32() >> 6
	return (float64(a)*67108864.0 + float64(b)) * (1.0 / 9007199254740992.0)
}
