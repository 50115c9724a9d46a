package goqubo

import (
	"strings"
)

const (

	// SignBit24 is the bit index of the sign bit of a 24-bit two's-complement readout cost.
	SignBit24 = 23

	// MinCost24 and MaxCost24 bound every decoded readout cost.
	MinCost24 = -(1 << SignBit24)
	MaxCost24 = (1 << SignBit24) - 1

	// NeuronStateMask selects the significant bits of a raw per-variable neuron state word.
	NeuronStateMask = 0b111

	// NeuronStateBit is the bit of the masked neuron state that carries the variable's value.
	NeuronStateBit = 2
)

// Solution is a binary assignment vector: Solution[i] is 1 if variable (or vertex) i is selected, 0 otherwise.
type Solution []uint8

// Size returns the number of selected variables.
func (x Solution) Size() int {
	count := 0
	for _, xi := range x {
		if xi != 0 {
			count++
		}
	}
	return count
}

// Selected returns the ascending indices of the selected variables.
func (x Solution) Selected() []int {
	var sel []int
	for i, xi := range x {
		if xi != 0 {
			sel = append(sel, i)
		}
	}
	return sel
}

// MakeCopy returns an independent copy of this Solution.
func (x Solution) MakeCopy() Solution {
	if x == nil {
		return nil
	}
	dup := make(Solution, len(x))
	copy(dup, x)
	return dup
}

// IsEqual returns true if both solutions have the same length and values.
func (x Solution) IsEqual(other Solution) bool {
	if len(x) != len(other) {
		return false
	}
	for i := range x {
		if x[i] != other[i] {
			return false
		}
	}
	return true
}

// String renders a Solution as a compact bit string, e.g. "0000001001".
func (x Solution) String() string {
	b := strings.Builder{}
	b.Grow(len(x))
	for _, xi := range x {
		if xi != 0 {
			b.WriteByte('1')
		} else {
			b.WriteByte('0')
		}
	}
	return b.String()
}

// SolutionFromIndices forms a Solution of length n with the given indices selected.
func SolutionFromIndices(n int, selected []int) Solution {
	x := make(Solution, n)
	for _, i := range selected {
		x[i] = 1
	}
	return x
}

// Readout is one message triple emitted by the backend per iteration.
//
// RawCost holds a 24-bit two's-complement cost in its low bits (0 denotes "nothing to report"),
// RawTimestep is signed: its magnitude is the iteration index and a positive sign marks the final report,
// RawSolution holds one neuron state word per variable (only the low 3 bits are significant).
type Readout struct {
	RawCost     int32
	RawTimestep int32
	RawSolution []int32
}

// IsEmpty returns true if this message is the "nothing to report" sentinel.
func (msg *Readout) IsEmpty() bool {
	return msg.RawCost == 0
}

// Halter is the external driver control that pauses the backend.
// A monitor calls Halt at most once per run.
type Halter interface {
	Halt(runID string)
}

// ReadoutObserver receives the observation events of a readout monitor.
type ReadoutObserver interface {

	// OnImprovedSolution is called each time a report with a negative cost is decoded.
	// The given Solution is owned by the callee.
	OnImprovedSolution(step int64, cost int32, x Solution)

	// OnTargetReached is called each time a decoded cost is at or below the target cost.
	OnTargetReached(targetCost int32)
}

// CostModel is a quadratic cost model over binary vectors.
type CostModel interface {
	NumVariables() int
	EvaluateCost(x Solution) (float64, error)
}

// ProblemSpec is the complete set of parameters that reproduces a random MIS instance.
type ProblemSpec struct {
	NumVertices    int
	ConnectionProb float64
	Seed           uint32
}

// Problem is a graph-based optimization instance that can be catalogued.
type Problem interface {

	// Spec returns the parameters that generated this problem.
	Spec() ProblemSpec

	// NumVertices returns the vertex (variable) count.
	NumVertices() int

	// AppendEdgeEnds appends the (i, j) pairs (i < j) of each edge in ascending order.
	AppendEdgeEnds(dst []uint32) []uint32

	// FindMaximumIndependentSet returns the exact reference solution.
	FindMaximumIndependentSet() Solution

	// QUBO returns the QUBO cost model of this problem.
	QUBO(wDiag, wOff float64) (CostModel, error)
}

// ProblemAdder is a sink of problems, reporting if a given problem was newly added.
type ProblemAdder interface {
	TryAddProblem(p Problem) bool
}

// OnProblemHit is used to return problem definitions meeting a set of selection criteria.
type OnProblemHit chan<- *ProblemDef

// ProblemSelector selects catalogued problems by vertex count.
type ProblemSelector struct {
	MinVertices int // 0 denotes no lower bound
	MaxVertices int // 0 denotes no upper bound
}

// SelectsDef returns true if the given definition meets this selector's bounds.
func (sel *ProblemSelector) SelectsDef(def *ProblemDef) bool {
	nv := int(def.NumVertices)
	if sel.MinVertices > 0 && nv < sel.MinVertices {
		return false
	}
	if sel.MaxVertices > 0 && nv > sel.MaxVertices {
		return false
	}
	return true
}

// CatalogContext is a container for open / active Catalog instances.
type CatalogContext interface {

	// Attaches the given Catalog to this context.
	AttachCatalog(cat Catalog)

	// Detaches the given Catalog from this context.
	DetachCatalog(cat Catalog)

	// Closes all open catalogs then closes.
	Close()

	// Signals when Close() completed and all open Catalogs have been closed
	Done() <-chan struct{}
}

// CatalogOpts specifies params for opening a Catalog
type CatalogOpts struct {
	DbPathName string  // omit for in-memory db
	ReadOnly   bool    // open in read-only mode
	WDiag      float64 // QUBO diagonal weight used for catalogued optimal costs (0 denotes 1)
	WOff       float64 // QUBO off-diagonal weight used for catalogued optimal costs (0 denotes 4)
}

// Catalog wraps a database of problem instances, their reference solutions, and readout runs.
type Catalog interface {
	ProblemAdder

	// Returns true if this catalog was opened for read-only access.
	IsReadOnly() bool

	// GetProblem returns the catalogued definition of the problem with the given spec.
	GetProblem(spec ProblemSpec) (*ProblemDef, error)

	// PutRun stores (or replaces) the record of a readout run.
	PutRun(rec *RunRecord) error

	// GetRun returns the record of a previously stored run.
	GetRun(runID string) (*RunRecord, error)

	// NumProblems returns the number of problems in this catalog.
	NumProblems() int64

	// NumRuns returns the number of distinct runs stored in this catalog.
	NumRuns() int64

	// Select sends each catalogued problem meeting the selection criteria to onHit.
	Select(sel ProblemSelector, onHit OnProblemHit)

	Close() error
}
