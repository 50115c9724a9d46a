package libqubo

import (
	"github.com/alecthomas/participle/v2"
	"github.com/fine-structures/qubo.SDK/goqubo"
	"github.com/pkg/errors"
)

// GraphExpr is a comma separated list of vertex runs, e.g. "0-1-2, 3-4, 5".
// Each run adds an edge between consecutive vertices; a lone vertex adds no edge.
type GraphExpr struct {
	Runs []*VtxRun `parser:"(@@ (\",\" @@)*)?"`
}

type VtxRun struct {
	StartVtx int64   `parser:"@Int"`
	NextVtx  []int64 `parser:"(\"-\" @Int)*"`
}

var parseGraphExpr = participle.MustBuild[GraphExpr]()

// NewGraphFromExpr forms a graph on numVertices vertices from a graph expression.
func NewGraphFromExpr(numVertices int, graphExpr string) (*Graph, error) {
	if numVertices <= 0 {
		return nil, errors.Wrapf(goqubo.ErrInvalidParameter, "vertex count must be > 0 (got %d)", numVertices)
	}

	Xexpr, err := parseGraphExpr.ParseString("", graphExpr)
	if err != nil {
		return nil, errors.Wrapf(goqubo.ErrBadGraphExpr, "%q: %v", graphExpr, err)
	}

	X := newGraph(numVertices)
	checkVtx := func(ri int, v int64) error {
		if v < 0 || v >= int64(numVertices) {
			return errors.Wrapf(goqubo.ErrBadVtxID, "run #%d: vertex %d not in [0,%d)", ri+1, v, numVertices)
		}
		return nil
	}

	for ri, run := range Xexpr.Runs {
		onVtx := run.StartVtx
		if err = checkVtx(ri, onVtx); err != nil {
			return nil, err
		}
		for _, nextVtx := range run.NextVtx {
			if err = checkVtx(ri, nextVtx); err != nil {
				return nil, err
			}
			if nextVtx == onVtx {
				return nil, errors.Wrapf(goqubo.ErrBadGraphExpr, "run #%d: self-loop at vertex %d", ri+1, onVtx)
			}
			X.addEdge(VtxID(onVtx), VtxID(nextVtx))
			onVtx = nextVtx
		}
	}

	return X, nil
}
