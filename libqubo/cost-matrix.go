package libqubo

import (
	"fmt"
	"io"
	"math"

	"github.com/fine-structures/qubo.SDK/goqubo"
	"github.com/pkg/errors"
)

// CostMatrix is an immutable QUBO cost model: cost(x) = xᵀQx over binary vectors x.
// Q is not assumed to be symmetric; Q[i][j] and Q[j][i] both contribute.
type CostMatrix struct {
	n int
	q []float64 // row-major n x n
}

var _ goqubo.CostModel = (*CostMatrix)(nil)

// NewCostMatrix returns a CostMatrix holding a copy of the given square matrix.
func NewCostMatrix(q [][]float64) (*CostMatrix, error) {
	n := len(q)
	if n == 0 {
		return nil, errors.Wrap(goqubo.ErrInvalidParameter, "cost matrix must have at least one variable")
	}

	Q := &CostMatrix{
		n: n,
		q: make([]float64, n*n),
	}
	for i, row := range q {
		if len(row) != n {
			return nil, errors.Wrapf(goqubo.ErrDimensionMismatch, "cost matrix row %d has %d entries, expected %d", i, len(row), n)
		}
		for j, qij := range row {
			if math.IsNaN(qij) || math.IsInf(qij, 0) {
				return nil, errors.Wrapf(goqubo.ErrInvalidParameter, "cost matrix entry (%d,%d) is not finite", i, j)
			}
		}
		copy(Q.q[i*n:], row)
	}
	return Q, nil
}

// NumVariables returns the number of binary decision variables (the matrix dimension).
func (Q *CostMatrix) NumVariables() int {
	return Q.n
}

// At returns Q[i][j].
func (Q *CostMatrix) At(i, j int) float64 {
	return Q.q[i*Q.n+j]
}

// Matrix returns a copy of Q.
func (Q *CostMatrix) Matrix() [][]float64 {
	rows := make([][]float64, Q.n)
	for i := range rows {
		rows[i] = append([]float64(nil), Q.q[i*Q.n:(i+1)*Q.n]...)
	}
	return rows
}

// EvaluateCost returns the sum over i, j of Q[i][j]·x[i]·x[j].
func (Q *CostMatrix) EvaluateCost(x goqubo.Solution) (float64, error) {
	if len(x) != Q.n {
		return 0, errors.Wrapf(goqubo.ErrDimensionMismatch, "assignment has %d variables, cost matrix has %d", len(x), Q.n)
	}

	cost := 0.0
	for i, xi := range x {
		if xi > 1 {
			return 0, errors.Wrapf(goqubo.ErrInvalidParameter, "assignment value x[%d]=%d is not binary", i, xi)
		}
		if xi == 0 {
			continue
		}
		row := Q.q[i*Q.n : (i+1)*Q.n]
		for j, xj := range x {
			if xj != 0 {
				cost += row[j]
			}
		}
	}
	return cost, nil
}

// WriteAsString prints Q one row per line.
func (Q *CostMatrix) WriteAsString(out io.Writer) {
	for i := 0; i < Q.n; i++ {
		for j := 0; j < Q.n; j++ {
			if j > 0 {
				io.WriteString(out, " ")
			}
			fmt.Fprintf(out, "%3g", Q.At(i, j))
		}
		io.WriteString(out, "\n")
	}
}
