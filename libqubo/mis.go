package libqubo

import (
	"math"
	"sync"

	"github.com/fine-structures/qubo.SDK/goqubo"
	"github.com/pkg/errors"
)

// MISProblem is a Maximum Independent Set instance on a random graph.
//
// Given (numVertices, connectionProb, seed), an n x n block of uniform doubles R is drawn row-major
// from MT19937(seed), and vertices i < j are adjacent iff R[i][j] < connectionProb.
type MISProblem struct {
	spec       goqubo.ProblemSpec
	graph      *Graph
	complement *Graph

	misOnce sync.Once
	mis     goqubo.Solution
}

var _ goqubo.Problem = (*MISProblem)(nil)

// NewMISProblem generates the random graph instance determined by the given parameters.
func NewMISProblem(numVertices int, connectionProb float64, seed uint32) (*MISProblem, error) {
	if numVertices <= 0 {
		return nil, errors.Wrapf(goqubo.ErrInvalidParameter, "num_vertices must be > 0 (got %d)", numVertices)
	}
	if !(connectionProb >= 0 && connectionProb <= 1) {
		return nil, errors.Wrapf(goqubo.ErrInvalidParameter, "connection_prob must be in [0,1] (got %v)", connectionProb)
	}

	n := numVertices
	X := newGraph(n)
	rng := NewMT19937(seed)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			r := rng.Float64()
			if j > i && r < connectionProb {
				X.addEdge(i, j)
			}
		}
	}

	return newMISProblem(goqubo.ProblemSpec{
		NumVertices:    n,
		ConnectionProb: connectionProb,
		Seed:           seed,
	}, X), nil
}

// NewMISProblemFromGraph wraps an explicit graph; its Spec reports a zero connection probability and seed.
func NewMISProblemFromGraph(X *Graph) (*MISProblem, error) {
	if X == nil || X.NumVertices() <= 0 {
		return nil, errors.Wrap(goqubo.ErrInvalidParameter, "graph must have at least one vertex")
	}
	return newMISProblem(goqubo.ProblemSpec{
		NumVertices: X.NumVertices(),
	}, X), nil
}

func newMISProblem(spec goqubo.ProblemSpec, X *Graph) *MISProblem {
	return &MISProblem{
		spec:       spec,
		graph:      X,
		complement: X.Complement(),
	}
}

func (p *MISProblem) Spec() goqubo.ProblemSpec {
	return p.spec
}

func (p *MISProblem) NumVertices() int {
	return p.spec.NumVertices
}

func (p *MISProblem) ConnectionProb() float64 {
	return p.spec.ConnectionProb
}

func (p *MISProblem) Seed() uint32 {
	return p.spec.Seed
}

// Graph returns the (immutable) problem graph.
func (p *MISProblem) Graph() *Graph {
	return p.graph
}

// GraphMatrix returns the adjacency matrix of the problem graph.
func (p *MISProblem) GraphMatrix() [][]uint8 {
	return p.graph.AdjacencyMatrix()
}

// ComplementGraph returns the (immutable) complement of the problem graph.
func (p *MISProblem) ComplementGraph() *Graph {
	return p.complement
}

// ComplementGraphMatrix returns the adjacency matrix of the complement graph.
func (p *MISProblem) ComplementGraphMatrix() [][]uint8 {
	return p.complement.AdjacencyMatrix()
}

func (p *MISProblem) AppendEdgeEnds(dst []uint32) []uint32 {
	return p.graph.AppendEdgeEnds(dst)
}

// AsQUBO returns Q = -wDiag·I + (wOff/2)·A, where A is the adjacency matrix of the problem graph.
//
// For an independent set x, cost(x) = -wDiag·|x|; each edge with both ends selected adds wOff.
func (p *MISProblem) AsQUBO(wDiag, wOff float64) (*CostMatrix, error) {
	if !(wDiag > 0) || math.IsInf(wDiag, 1) {
		return nil, errors.Wrapf(goqubo.ErrInvalidParameter, "w_diag must be > 0 (got %v)", wDiag)
	}
	if !(wOff > 0) || math.IsInf(wOff, 1) {
		return nil, errors.Wrapf(goqubo.ErrInvalidParameter, "w_off must be > 0 (got %v)", wOff)
	}

	n := p.spec.NumVertices
	Q := &CostMatrix{
		n: n,
		q: make([]float64, n*n),
	}
	halfOff := wOff / 2
	for i := 0; i < n; i++ {
		Q.q[i*n+i] = -wDiag
		for j := 0; j < n; j++ {
			if p.graph.HasEdge(i, j) {
				Q.q[i*n+j] = halfOff
			}
		}
	}
	return Q, nil
}

func (p *MISProblem) QUBO(wDiag, wOff float64) (goqubo.CostModel, error) {
	Q, err := p.AsQUBO(wDiag, wOff)
	if err != nil {
		return nil, err
	}
	return Q, nil
}

// FindMaximumIndependentSet returns the indicator vector of a maximum independent set,
// found as a maximum clique of the complement graph.
//
// The result is exact and the same graph always yields the same set.
// Runtime is exponential in the worst case; this is a reference solver for small and moderate instances.
func (p *MISProblem) FindMaximumIndependentSet() goqubo.Solution {
	p.misOnce.Do(func() {
		p.mis = goqubo.SolutionFromIndices(p.spec.NumVertices, MaxClique(p.complement))
	})
	return p.mis.MakeCopy()
}

// IsIndependentSet returns true if no two vertices selected by x are adjacent in the problem graph.
func (p *MISProblem) IsIndependentSet(x goqubo.Solution) (bool, error) {
	return p.graph.IsIndependentSet(x)
}
