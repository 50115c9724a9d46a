package goqubo

import (
	"github.com/gogo/protobuf/proto"
)

// CatalogState is the persisted header of a Catalog.
type CatalogState struct {
	MajorVers   int32   `protobuf:"varint,1,opt,name=major_vers,json=majorVers,proto3" json:"major_vers,omitempty"`
	MinorVers   int32   `protobuf:"varint,2,opt,name=minor_vers,json=minorVers,proto3" json:"minor_vers,omitempty"`
	NumProblems uint64  `protobuf:"varint,3,opt,name=num_problems,json=numProblems,proto3" json:"num_problems,omitempty"`
	NumRuns     uint64  `protobuf:"varint,4,opt,name=num_runs,json=numRuns,proto3" json:"num_runs,omitempty"`
	WDiag       float64 `protobuf:"fixed64,5,opt,name=w_diag,json=wDiag,proto3" json:"w_diag,omitempty"`
	WOff        float64 `protobuf:"fixed64,6,opt,name=w_off,json=wOff,proto3" json:"w_off,omitempty"`
}

func (m *CatalogState) Reset()         { *m = CatalogState{} }
func (m *CatalogState) String() string { return proto.CompactTextString(m) }
func (*CatalogState) ProtoMessage()    {}

// ProblemDef is the catalogued form of a problem instance and its exact reference solution.
type ProblemDef struct {
	NumVertices    int32   `protobuf:"varint,1,opt,name=num_vertices,json=numVertices,proto3" json:"num_vertices,omitempty"`
	ConnectionProb float64 `protobuf:"fixed64,2,opt,name=connection_prob,json=connectionProb,proto3" json:"connection_prob,omitempty"`
	Seed           uint32  `protobuf:"varint,3,opt,name=seed,proto3" json:"seed,omitempty"`

	// EdgeEnds lists each edge (i, j), i < j, as consecutive values: i0, j0, i1, j1, ...
	EdgeEnds []uint32 `protobuf:"varint,4,rep,packed,name=edge_ends,json=edgeEnds,proto3" json:"edge_ends,omitempty"`

	// MIS lists the ascending vertex indices of the exact maximum independent set.
	MIS []uint32 `protobuf:"varint,5,rep,packed,name=mis,proto3" json:"mis,omitempty"`

	// OptimalCost is the QUBO cost of MIS under the catalog's weights.
	OptimalCost float64 `protobuf:"fixed64,6,opt,name=optimal_cost,json=optimalCost,proto3" json:"optimal_cost,omitempty"`
}

func (m *ProblemDef) Reset()         { *m = ProblemDef{} }
func (m *ProblemDef) String() string { return proto.CompactTextString(m) }
func (*ProblemDef) ProtoMessage()    {}

// Spec returns the generating parameters of this definition.
func (m *ProblemDef) Spec() ProblemSpec {
	return ProblemSpec{
		NumVertices:    int(m.NumVertices),
		ConnectionProb: m.ConnectionProb,
		Seed:           m.Seed,
	}
}

// NumEdges returns the edge count of the catalogued graph.
func (m *ProblemDef) NumEdges() int {
	return len(m.EdgeEnds) / 2
}

// Solution returns the catalogued MIS as an indicator vector.
func (m *ProblemDef) Solution() Solution {
	x := make(Solution, m.NumVertices)
	for _, vi := range m.MIS {
		x[vi] = 1
	}
	return x
}

// RunRecord is the catalogued outcome of one readout monitor run.
type RunRecord struct {
	RunID        string `protobuf:"bytes,1,opt,name=run_id,json=runId,proto3" json:"run_id,omitempty"`
	NumVertices  int32  `protobuf:"varint,2,opt,name=num_vertices,json=numVertices,proto3" json:"num_vertices,omitempty"`
	TargetCost   int32  `protobuf:"varint,3,opt,name=target_cost,json=targetCost,proto3" json:"target_cost,omitempty"`
	BestCost     int32  `protobuf:"varint,4,opt,name=best_cost,json=bestCost,proto3" json:"best_cost,omitempty"`
	BestStep     int64  `protobuf:"varint,5,opt,name=best_step,json=bestStep,proto3" json:"best_step,omitempty"`
	BestSolution []byte `protobuf:"bytes,6,opt,name=best_solution,json=bestSolution,proto3" json:"best_solution,omitempty"`
	Terminated   bool   `protobuf:"varint,7,opt,name=terminated,proto3" json:"terminated,omitempty"`
	Delivered    uint64 `protobuf:"varint,8,opt,name=delivered,proto3" json:"delivered,omitempty"`

	// Solved is set if the last decoded cost equals the target cost.
	Solved bool `protobuf:"varint,9,opt,name=solved,proto3" json:"solved,omitempty"`
}

func (m *RunRecord) Reset()         { *m = RunRecord{} }
func (m *RunRecord) String() string { return proto.CompactTextString(m) }
func (*RunRecord) ProtoMessage()    {}
