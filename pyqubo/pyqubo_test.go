package pyqubo_test

import (
	"testing"

	"github.com/go-python/gpython/py"
	"github.com/stretchr/testify/require"

	_ "github.com/fine-structures/qubo.SDK/pyqubo"
	_ "github.com/go-python/gpython/stdlib"
)

const kReferenceScript = `
import _pyqubo as q

p = q.MISProblem(10, 0.75, 42)
num_edges = p.NumEdges()
num_comp_edges = sum([sum(row) for row in p.Complement()]) // 2
mis = p.MIS()
indep = p.IsIndependent(mis)

Q = p.QUBO(1, 4)
diag = Q.Matrix()[3][3]
cost = Q.EvaluateCost(mis)

ext = q.SignExtend24(0xFFFFFE)

mon = q.Monitor(10, -2, "py-test")
mon.Process(0)
stopped = mon.Process(0xFFFFFE, 3, [1, 1, 1, 1, 1, 1, 5, 1, 1, 5])
state = mon.State()

ws = q.GetWorkspace()
cat = ws.OpenCatalog("")
added = q.EnumProblems(8, 0.5, 1, 4).AddTo(cat).Go()
hits = len(cat.Select(8, 8))
cat.Close()
`

func TestReferenceScript(t *testing.T) {
	ctx := py.NewContext(py.DefaultContextOpts())
	defer func() {
		ctx.Close()
		<-ctx.Done()
	}()

	mod, err := runScript(ctx, kReferenceScript, "<reference>")
	require.NoError(t, err)

	g := mod.Globals
	require.Contains(t, g, "hits", "script must run past its first statement")
	require.Equal(t, py.Int(37), g["num_edges"])
	require.Equal(t, py.Int(8), g["num_comp_edges"])
	require.Equal(t, py.Tuple{
		py.Int(0), py.Int(0), py.Int(0), py.Int(0), py.Int(0),
		py.Int(0), py.Int(1), py.Int(0), py.Int(0), py.Int(1),
	}, g["mis"])
	require.Equal(t, py.True, g["indep"])
	require.Equal(t, py.Float(-1), g["diag"])
	require.Equal(t, py.Float(-2), g["cost"])
	require.Equal(t, py.Int(-2), g["ext"])
	require.Equal(t, py.True, g["stopped"])

	state := g["state"].(py.Tuple)
	require.Equal(t, py.Int(3), state[1])
	require.Equal(t, py.Int(-2), state[2])
	require.Equal(t, py.True, state[3])

	require.Equal(t, py.Int(4), g["added"])
	require.Equal(t, py.Int(4), g["hits"])
}

func TestScriptErrors(t *testing.T) {
	ctx := py.NewContext(py.DefaultContextOpts())
	defer func() {
		ctx.Close()
		<-ctx.Done()
	}()

	for _, src := range []string{
		"import _pyqubo as q\nq.MISProblem(0, 0.5, 1)\n",
		"import _pyqubo as q\nq.MISProblem(4, 0.5, 1).QUBO(1, 4).EvaluateCost([1, 0])\n",
		"import _pyqubo as q\nq.Monitor(3, -1).Process(5, 1, [4])\n",
		"import _pyqubo as q\nq.GraphProblem(3, '0-3')\n",
	} {
		_, err := runScript(ctx, src, "<errors>")
		require.Error(t, err, src)
	}
}

// runScript executes src as a whole module (every statement, not just the first).
func runScript(ctx py.Context, src, desc string) (*py.Module, error) {
	code, err := py.Compile(src, desc, py.ExecMode, 0, true)
	if err != nil {
		return nil, err
	}
	return py.RunCode(ctx, code, desc, nil)
}
