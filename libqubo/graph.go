package libqubo

import (
	"fmt"
	"io"

	"github.com/fine-structures/qubo.SDK/goqubo"
	"github.com/pkg/errors"
)

// VtxID is a zero-based vertex index.
type VtxID = int

// Graph is an undirected simple graph (no self-loops, no multi-edges) over vertices 0..NumVertices()-1.
// A Graph is immutable once constructed.
type Graph struct {
	numVerts int
	numEdges int
	adj      []uint8 // row-major n x n, symmetric, zero diagonal
}

// newGraph returns an edgeless graph on n vertices.
func newGraph(n int) *Graph {
	return &Graph{
		numVerts: n,
		adj:      make([]uint8, n*n),
	}
}

// addEdge is only called while a Graph is under construction.
func (X *Graph) addEdge(i, j VtxID) {
	if i == j || X.adj[i*X.numVerts+j] != 0 {
		return
	}
	X.adj[i*X.numVerts+j] = 1
	X.adj[j*X.numVerts+i] = 1
	X.numEdges++
}

// NewGraphFromEdges forms a graph on n vertices from (i, j) pairs.
func NewGraphFromEdges(n int, edges [][2]VtxID) (*Graph, error) {
	if n <= 0 {
		return nil, errors.Wrapf(goqubo.ErrInvalidParameter, "vertex count must be > 0 (got %d)", n)
	}
	X := newGraph(n)
	for _, e := range edges {
		if e[0] < 0 || e[0] >= n || e[1] < 0 || e[1] >= n {
			return nil, errors.Wrapf(goqubo.ErrBadVtxID, "edge %d-%d on %d vertices", e[0], e[1], n)
		}
		if e[0] == e[1] {
			return nil, errors.Wrapf(goqubo.ErrBadGraphExpr, "self-loop at vertex %d", e[0])
		}
		X.addEdge(e[0], e[1])
	}
	return X, nil
}

func (X *Graph) NumVertices() int {
	return X.numVerts
}

func (X *Graph) NumEdges() int {
	return X.numEdges
}

// HasEdge returns true if distinct vertices i and j are adjacent.
func (X *Graph) HasEdge(i, j VtxID) bool {
	return X.adj[i*X.numVerts+j] != 0
}

// Degree returns the number of neighbors of v.
func (X *Graph) Degree(v VtxID) int {
	deg := 0
	for _, a := range X.adj[v*X.numVerts : (v+1)*X.numVerts] {
		deg += int(a)
	}
	return deg
}

// Edges returns every edge (i, j), i < j, in ascending order.
func (X *Graph) Edges() [][2]VtxID {
	edges := make([][2]VtxID, 0, X.numEdges)
	for i := 0; i < X.numVerts; i++ {
		for j := i + 1; j < X.numVerts; j++ {
			if X.HasEdge(i, j) {
				edges = append(edges, [2]VtxID{i, j})
			}
		}
	}
	return edges
}

// AppendEdgeEnds appends i0, j0, i1, j1, ... for each edge (i, j), i < j, in ascending order.
func (X *Graph) AppendEdgeEnds(dst []uint32) []uint32 {
	for i := 0; i < X.numVerts; i++ {
		for j := i + 1; j < X.numVerts; j++ {
			if X.HasEdge(i, j) {
				dst = append(dst, uint32(i), uint32(j))
			}
		}
	}
	return dst
}

// AdjacencyMatrix returns a new symmetric 0/1 matrix with a zero diagonal.
func (X *Graph) AdjacencyMatrix() [][]uint8 {
	n := X.numVerts
	A := make([][]uint8, n)
	for i := range A {
		A[i] = append([]uint8(nil), X.adj[i*n:(i+1)*n]...)
	}
	return A
}

// Complement returns the graph on the same vertices whose edges are exactly the non-edges of X.
func (X *Graph) Complement() *Graph {
	n := X.numVerts
	Xc := newGraph(n)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if !X.HasEdge(i, j) {
				Xc.addEdge(i, j)
			}
		}
	}
	return Xc
}

// IsIndependentSet returns true if no two vertices selected by x are adjacent.
func (X *Graph) IsIndependentSet(x goqubo.Solution) (bool, error) {
	if len(x) != X.numVerts {
		return false, errors.Wrapf(goqubo.ErrDimensionMismatch, "solution has %d entries, graph has %d vertices", len(x), X.numVerts)
	}
	for i := range x {
		if x[i] == 0 {
			continue
		}
		for j := i + 1; j < len(x); j++ {
			if x[j] != 0 && X.HasEdge(i, j) {
				return false, nil
			}
		}
	}
	return true, nil
}

// WriteAsString prints a one-line summary followed by the adjacency matrix.
func (X *Graph) WriteAsString(out io.Writer) {
	fmt.Fprintf(out, "v=%d e=%d\n", X.numVerts, X.numEdges)
	n := X.numVerts
	row := make([]byte, 0, 2*n)
	for i := 0; i < n; i++ {
		row = row[:0]
		for j := 0; j < n; j++ {
			if j > 0 {
				row = append(row, ' ')
			}
			row = append(row, '0'+X.adj[i*n+j])
		}
		row = append(row, '\n')
		out.Write(row)
	}
}
