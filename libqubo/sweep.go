package libqubo

import (
	"math"

	"github.com/fine-structures/qubo.SDK/goqubo"
	"github.com/pkg/errors"
	"github.com/plan-systems/klog"
)

// SweepOpts specifies a family of random MIS instances that differ only by seed.
type SweepOpts struct {
	NumVertices    int
	ConnectionProb float64
	SeedStart      uint32
	SeedCount      int // 0 denotes 1
}

// EnumProblems streams one MISProblem per seed in [SeedStart, SeedStart+SeedCount).
func EnumProblems(opts SweepOpts) (*goqubo.ProblemStream, error) {
	if opts.SeedCount <= 0 {
		opts.SeedCount = 1
	}
	if uint64(opts.SeedStart)+uint64(opts.SeedCount)-1 > math.MaxUint32 {
		return nil, errors.Wrapf(goqubo.ErrInvalidParameter, "seeds %d+%d exceed 32 bits", opts.SeedStart, opts.SeedCount)
	}

	// Only the seed varies, so the first instance validates them all.
	first, err := NewMISProblem(opts.NumVertices, opts.ConnectionProb, opts.SeedStart)
	if err != nil {
		return nil, errors.Wrap(err, "EnumProblems")
	}

	stream := goqubo.NewProblemStream()
	go func() {
		stream.Outlet <- first
		for i := 1; i < opts.SeedCount; i++ {
			p, err := NewMISProblem(opts.NumVertices, opts.ConnectionProb, opts.SeedStart+uint32(i))
			if err != nil {
				klog.Warningf("EnumProblems: seed %d: %v", opts.SeedStart+uint32(i), err)
				break
			}
			stream.Outlet <- p
		}
		stream.Close()
	}()

	return stream, nil
}
