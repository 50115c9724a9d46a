package catalog_test

import (
	"os"
	"path"
	"testing"

	"github.com/fine-structures/qubo.SDK/goqubo"
	"github.com/fine-structures/qubo.SDK/libqubo"
	"github.com/fine-structures/qubo.SDK/libqubo/catalog"
	"github.com/stretchr/testify/require"
)

func TestInMemoryCatalog(t *testing.T) {
	catCtx := goqubo.NewCatalogContext()
	defer func() {
		catCtx.Close()
		<-catCtx.Done()
	}()

	cat, err := catalog.OpenCatalog(catCtx, goqubo.CatalogOpts{})
	require.NoError(t, err)
	defer cat.Close()
	require.False(t, cat.IsReadOnly())

	ref, err := libqubo.NewMISProblem(10, 0.75, 42)
	require.NoError(t, err)
	require.True(t, cat.TryAddProblem(ref))
	require.False(t, cat.TryAddProblem(ref))

	// same graph parameters reproduce the same key
	dupe, err := libqubo.NewMISProblem(10, 0.75, 42)
	require.NoError(t, err)
	require.False(t, cat.TryAddProblem(dupe))
	require.Equal(t, int64(1), cat.NumProblems())

	def, err := cat.GetProblem(ref.Spec())
	require.NoError(t, err)
	require.Equal(t, ref.Spec(), def.Spec())
	require.Equal(t, 37, def.NumEdges())
	require.Equal(t, []uint32{6, 9}, def.MIS)
	require.Equal(t, -2.0, def.OptimalCost)
	require.Equal(t, ref.FindMaximumIndependentSet(), def.Solution())
	require.Equal(t, ref.AppendEdgeEnds(nil), def.EdgeEnds)

	_, err = cat.GetProblem(goqubo.ProblemSpec{NumVertices: 10, ConnectionProb: 0.75, Seed: 43})
	require.ErrorIs(t, err, goqubo.ErrProblemNotFound)
}

func TestCatalogSelect(t *testing.T) {
	cat, err := catalog.OpenCatalog(nil, goqubo.CatalogOpts{})
	require.NoError(t, err)
	defer cat.Close()

	for _, n := range []int{4, 6, 8} {
		stream, err := libqubo.EnumProblems(libqubo.SweepOpts{
			NumVertices:    n,
			ConnectionProb: 0.5,
			SeedStart:      1,
			SeedCount:      3,
		})
		require.NoError(t, err)
		require.Equal(t, 3, stream.AddTo(cat).PullAll())
	}
	require.Equal(t, int64(9), cat.NumProblems())

	var got []goqubo.ProblemSpec
	for def := range goqubo.SelectFromCatalog(cat, goqubo.ProblemSelector{MinVertices: 5, MaxVertices: 7}) {
		got = append(got, def.Spec())
	}
	require.Equal(t, []goqubo.ProblemSpec{
		{NumVertices: 6, ConnectionProb: 0.5, Seed: 1},
		{NumVertices: 6, ConnectionProb: 0.5, Seed: 2},
		{NumVertices: 6, ConnectionProb: 0.5, Seed: 3},
	}, got)

	total := 0
	for range goqubo.SelectFromCatalog(cat, goqubo.ProblemSelector{}) {
		total++
	}
	require.Equal(t, 9, total)
}

func TestCatalogRuns(t *testing.T) {
	cat, err := catalog.OpenCatalog(nil, goqubo.CatalogOpts{})
	require.NoError(t, err)
	defer cat.Close()

	_, err = cat.GetRun("run-0")
	require.ErrorIs(t, err, goqubo.ErrRunNotFound)

	rec := &goqubo.RunRecord{
		RunID:        "run-0",
		NumVertices:  3,
		TargetCost:   -2,
		BestCost:     -1,
		BestStep:     12,
		BestSolution: []byte{0, 1, 0},
		Delivered:    20,
	}
	require.NoError(t, cat.PutRun(rec))

	rec.BestCost = -2
	rec.Terminated = true
	rec.Solved = true
	require.NoError(t, cat.PutRun(rec))
	require.Equal(t, int64(1), cat.NumRuns())

	got, err := cat.GetRun("run-0")
	require.NoError(t, err)
	require.Equal(t, int32(-2), got.BestCost)
	require.True(t, got.Terminated)
	require.True(t, got.Solved)
	require.Equal(t, []byte{0, 1, 0}, got.BestSolution)
	require.Equal(t, uint64(20), got.Delivered)
}

func TestCatalogOnDisk(t *testing.T) {
	dir, err := os.MkdirTemp("", "qubo-catalog*")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	opts := goqubo.CatalogOpts{
		DbPathName: path.Join(dir, "TestCatalogOnDisk"),
	}

	{
		cat, err := catalog.OpenCatalog(nil, opts)
		require.NoError(t, err)
		p, err := libqubo.NewMISProblem(10, 0.75, 42)
		require.NoError(t, err)
		require.True(t, cat.TryAddProblem(p))
		require.NoError(t, cat.PutRun(&goqubo.RunRecord{RunID: "a", NumVertices: 10}))
		require.NoError(t, cat.Close())
	}

	{
		cat, err := catalog.OpenCatalog(nil, opts)
		require.NoError(t, err)
		require.Equal(t, int64(1), cat.NumProblems())
		require.Equal(t, int64(1), cat.NumRuns())
		def, err := cat.GetProblem(goqubo.ProblemSpec{NumVertices: 10, ConnectionProb: 0.75, Seed: 42})
		require.NoError(t, err)
		require.Equal(t, []uint32{6, 9}, def.MIS)
		require.NoError(t, cat.Close())
	}

	// a catalog only holds optimal costs for the weights it was created with
	_, err = catalog.OpenCatalog(nil, goqubo.CatalogOpts{DbPathName: opts.DbPathName, WOff: 3})
	require.ErrorIs(t, err, goqubo.ErrBadCatalogParam)
}

func TestCatalogParams(t *testing.T) {
	_, err := catalog.OpenCatalog(nil, goqubo.CatalogOpts{ReadOnly: true})
	require.ErrorIs(t, err, goqubo.ErrBadCatalogParam)

	_, err = catalog.OpenCatalog(nil, goqubo.CatalogOpts{WDiag: -1})
	require.ErrorIs(t, err, goqubo.ErrBadCatalogParam)

	cat, err := catalog.OpenCatalog(nil, goqubo.CatalogOpts{})
	require.NoError(t, err)
	require.NoError(t, cat.Close())
	require.NoError(t, cat.Close())

	_, err = cat.GetRun("x")
	require.ErrorIs(t, err, goqubo.ErrCatalogClosed)
	require.ErrorIs(t, cat.PutRun(&goqubo.RunRecord{RunID: "x"}), goqubo.ErrCatalogClosed)
}
