package goqubo_test

import (
	"testing"

	"github.com/fine-structures/qubo.SDK/goqubo"
	"github.com/gogo/protobuf/proto"
	"github.com/stretchr/testify/require"
)

func TestSolution(t *testing.T) {
	x := goqubo.SolutionFromIndices(10, []int{6, 9})
	require.Equal(t, 2, x.Size())
	require.Equal(t, []int{6, 9}, x.Selected())
	require.Equal(t, "0000001001", x.String())

	dup := x.MakeCopy()
	require.True(t, dup.IsEqual(x))
	dup[0] = 1
	require.False(t, dup.IsEqual(x))
	require.False(t, x.IsEqual(x[:9]))

	require.Nil(t, goqubo.Solution(nil).MakeCopy())
	require.Empty(t, goqubo.Solution{0, 0}.Selected())
}

func TestReadoutIsEmpty(t *testing.T) {
	msg := goqubo.Readout{RawTimestep: 5, RawSolution: []int32{4}}
	require.True(t, msg.IsEmpty())
	msg.RawCost = 0x1000000
	require.False(t, msg.IsEmpty())
}

func TestProblemSelector(t *testing.T) {
	def := &goqubo.ProblemDef{NumVertices: 8}
	require.True(t, (&goqubo.ProblemSelector{}).SelectsDef(def))
	require.True(t, (&goqubo.ProblemSelector{MinVertices: 8, MaxVertices: 8}).SelectsDef(def))
	require.False(t, (&goqubo.ProblemSelector{MinVertices: 9}).SelectsDef(def))
	require.False(t, (&goqubo.ProblemSelector{MaxVertices: 7}).SelectsDef(def))
}

func TestProblemDefEncoding(t *testing.T) {
	def := &goqubo.ProblemDef{
		NumVertices:    4,
		ConnectionProb: 0.25,
		Seed:           42,
		EdgeEnds:       []uint32{0, 1, 2, 3},
		MIS:            []uint32{0, 2},
		OptimalCost:    -2,
	}
	buf, err := proto.Marshal(def)
	require.NoError(t, err)

	var got goqubo.ProblemDef
	require.NoError(t, proto.Unmarshal(buf, &got))
	require.Equal(t, def.Spec(), got.Spec())
	require.Equal(t, 2, got.NumEdges())
	require.Equal(t, goqubo.Solution{1, 0, 1, 0}, got.Solution())
	require.Equal(t, -2.0, got.OptimalCost)
}

func TestCatalogContextClosesCatalogs(t *testing.T) {
	ctx := goqubo.NewCatalogContext()
	cat := &stubCatalog{ctx: ctx}
	ctx.AttachCatalog(cat)

	ctx.Close()
	<-ctx.Done()
	require.True(t, cat.closed)
}

type stubCatalog struct {
	goqubo.Catalog
	ctx    goqubo.CatalogContext
	closed bool
}

func (cat *stubCatalog) Close() error {
	cat.closed = true
	cat.ctx.DetachCatalog(cat)
	return nil
}
