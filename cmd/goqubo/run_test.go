package main

import (
	"fmt"
	"os"
	"path"
	"strings"
	"testing"

	"github.com/fine-structures/qubo.SDK/goqubo"
	"github.com/fine-structures/qubo.SDK/libqubo/catalog"
	"github.com/stretchr/testify/require"
)

func TestRunConfigReplay(t *testing.T) {
	dir := t.TempDir()

	trace := strings.Join([]string{
		"# reference instance readout",
		"0",
		"0xFFFFFF -4 1 1 1 1 1 1 5 1 1 1",
		"0xFFFFFE 9 1 1 1 1 1 1 5 1 1 5",
	}, "\n")
	tracePathname := path.Join(dir, "trace.txt")
	require.NoError(t, os.WriteFile(tracePathname, []byte(trace), 0600))

	catPathname := path.Join(dir, "catalog")
	configPathname := path.Join(dir, "run.yaml")
	config := fmt.Sprintf(`
problem:
  num_vertices: 10
  connection_prob: 0.75
  seed: 42
readout:
  run_id: replay-1
  target_cost: -2
  trace_file: %s
  history: true
catalog:
  path: %s
`, tracePathname, catPathname)
	require.NoError(t, os.WriteFile(configPathname, []byte(config), 0600))

	require.NoError(t, runConfig(configPathname))

	cat, err := catalog.OpenCatalog(nil, goqubo.CatalogOpts{DbPathName: catPathname})
	require.NoError(t, err)
	defer cat.Close()

	def, err := cat.GetProblem(goqubo.ProblemSpec{NumVertices: 10, ConnectionProb: 0.75, Seed: 42})
	require.NoError(t, err)
	require.Equal(t, []uint32{6, 9}, def.MIS)

	rec, err := cat.GetRun("replay-1")
	require.NoError(t, err)
	require.Equal(t, int32(-2), rec.BestCost)
	require.Equal(t, int64(9), rec.BestStep)
	require.True(t, rec.Terminated)
	require.True(t, rec.Solved)
	require.Equal(t, uint64(3), rec.Delivered)
	require.Equal(t, []int{6, 9}, goqubo.Solution(rec.BestSolution).Selected())
}

func TestRunConfigGraphExpr(t *testing.T) {
	configPathname := path.Join(t.TempDir(), "run.yaml")
	require.NoError(t, os.WriteFile(configPathname, []byte("problem: {num_vertices: 4, graph: \"0-1-2-3\"}\n"), 0600))
	require.NoError(t, runConfig(configPathname))

	require.NoError(t, os.WriteFile(configPathname, []byte("problem: {num_vertices: 4, graph: \"0-4\"}\n"), 0600))
	require.ErrorIs(t, runConfig(configPathname), goqubo.ErrBadVtxID)
}
