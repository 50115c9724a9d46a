package pyqubo

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	"github.com/fine-structures/qubo.SDK/goqubo"
	"github.com/fine-structures/qubo.SDK/libqubo"
	"github.com/fine-structures/qubo.SDK/libqubo/catalog"
	"github.com/fine-structures/qubo.SDK/libqubo/readout"
	"github.com/go-python/gpython/py"
	"github.com/pkg/errors"
)

var (
	LIB_VERSION = "v1.2024.1"
)

var (
	pyMISProblemType    = py.NewType("MISProblem", "a random Maximum Independent Set instance")
	pyCostMatrixType    = py.NewType("QUBO", "an immutable QUBO cost matrix")
	pyMonitorType       = py.NewType("Monitor", "consumes backend readout messages")
	pyProblemStreamType = py.NewType("ProblemStream", "goqubo.ProblemStream")
	pyCatalogType       = py.NewType("Catalog", "goqubo.Catalog")
	pyWorkspaceType     = py.NewType("Workspace", "collects active session resources and catalogs")
)

func pyError(err error) error {
	switch {
	case errors.Is(err, goqubo.ErrDimensionMismatch), errors.Is(err, goqubo.ErrInvalidParameter),
		errors.Is(err, goqubo.ErrBadGraphExpr), errors.Is(err, goqubo.ErrBadVtxID),
		errors.Is(err, goqubo.ErrBadReadout):
		return py.ExceptionNewf(py.ValueError, "%v", err)
	case errors.Is(err, goqubo.ErrCatalogReadOnly):
		return py.ExceptionNewf(py.PermissionError, "%v", err)
	default:
		return py.ExceptionNewf(py.RuntimeError, "%v", err)
	}
}

func getInt(obj py.Object) (int64, error) {
	val, err := py.GetInt(obj)
	if err != nil {
		return 0, err
	}
	return int64(val), nil
}

func getFloat(obj py.Object) (float64, error) {
	switch v := obj.(type) {
	case py.Float:
		return float64(v), nil
	case py.Int:
		return float64(v), nil
	}
	return 0, py.ExceptionNewf(py.TypeError, "expected a number (got %v)", obj.Type().Name)
}

// loadInts reads a tuple or list of ints.
func loadInts(obj py.Object) ([]int64, error) {
	var items py.Tuple
	switch v := obj.(type) {
	case py.Tuple:
		items = v
	case *py.List:
		items = v.Items
	default:
		return nil, py.ExceptionNewf(py.TypeError, "expected a list or tuple (got %v)", obj.Type().Name)
	}
	vals := make([]int64, len(items))
	for i, item := range items {
		val, err := getInt(item)
		if err != nil {
			return nil, err
		}
		vals[i] = val
	}
	return vals, nil
}

func loadSolution(obj py.Object) (goqubo.Solution, error) {
	vals, err := loadInts(obj)
	if err != nil {
		return nil, err
	}
	x := make(goqubo.Solution, len(vals))
	for i, v := range vals {
		if v < 0 || v > 1 {
			return nil, py.ExceptionNewf(py.ValueError, "x[%d]=%d is not binary", i, v)
		}
		x[i] = uint8(v)
	}
	return x, nil
}

func solutionTuple(x goqubo.Solution) py.Tuple {
	tup := make(py.Tuple, len(x))
	for i, xi := range x {
		tup[i] = py.Int(xi)
	}
	return tup
}

func matrixTuple[T uint8 | float64](rows [][]T, toObj func(T) py.Object) py.Tuple {
	tup := make(py.Tuple, len(rows))
	for i, row := range rows {
		rowTup := make(py.Tuple, len(row))
		for j, v := range row {
			rowTup[j] = toObj(v)
		}
		tup[i] = rowTup
	}
	return tup
}

func intObj(v uint8) py.Object     { return py.Int(v) }
func floatObj(v float64) py.Object { return py.Float(v) }

/////////////////////////////////
// MISProblem

type pyMISProblem struct {
	*libqubo.MISProblem
}

func (p pyMISProblem) Type() *py.Type {
	return pyMISProblemType
}

func (p pyMISProblem) M__str__() (py.Object, error) {
	writer := strings.Builder{}
	spec := p.Spec()
	fmt.Fprintf(&writer, "MISProblem(n=%d, p=%g, seed=%d) ", spec.NumVertices, spec.ConnectionProb, spec.Seed)
	p.Graph().WriteAsString(&writer)
	return py.String(writer.String()), nil
}

func (p pyMISProblem) M__repr__() (py.Object, error) {
	return p.M__str__()
}

// Arg 1 (int): num_vertices
// Arg 2 (float): connection_prob
// Arg 3 (int): seed
func py_NewMISProblem(module py.Object, args py.Tuple) (py.Object, error) {
	var nObj, probObj, seedObj py.Object
	err := py.ParseTuple(args, "OOO:MISProblem", &nObj, &probObj, &seedObj)
	if err != nil {
		return nil, err
	}
	n, err := getInt(nObj)
	if err != nil {
		return nil, err
	}
	prob, err := getFloat(probObj)
	if err != nil {
		return nil, err
	}
	seed, err := getInt(seedObj)
	if err != nil {
		return nil, err
	}
	if seed < 0 || seed > 0xFFFFFFFF {
		return nil, py.ExceptionNewf(py.ValueError, "seed must be a 32-bit unsigned int (got %d)", seed)
	}

	p, err := libqubo.NewMISProblem(int(n), prob, uint32(seed))
	if err != nil {
		return nil, pyError(err)
	}
	return pyMISProblem{p}, nil
}

// Arg 1 (int): num_vertices
// Arg 2 (str): graph expression, e.g. "0-1-2, 3-4"
func py_NewGraphProblem(module py.Object, args py.Tuple) (py.Object, error) {
	var nObj, exprObj py.Object
	err := py.ParseTuple(args, "OO:GraphProblem", &nObj, &exprObj)
	if err != nil {
		return nil, err
	}
	n, err := getInt(nObj)
	if err != nil {
		return nil, err
	}
	expr, ok := exprObj.(py.String)
	if !ok {
		return nil, py.ExceptionNewf(py.TypeError, "expected a graph expression string (got %v)", exprObj.Type().Name)
	}
	X, err := libqubo.NewGraphFromExpr(int(n), string(expr))
	if err != nil {
		return nil, pyError(err)
	}
	p, err := libqubo.NewMISProblemFromGraph(X)
	if err != nil {
		return nil, pyError(err)
	}
	return pyMISProblem{p}, nil
}

func py_MISProblem_Graph(self py.Object, args py.Tuple) (py.Object, error) {
	p := self.(pyMISProblem)
	return matrixTuple(p.GraphMatrix(), intObj), nil
}

func py_MISProblem_Complement(self py.Object, args py.Tuple) (py.Object, error) {
	p := self.(pyMISProblem)
	return matrixTuple(p.ComplementGraphMatrix(), intObj), nil
}

func py_MISProblem_NumVerts(self py.Object, args py.Tuple) (py.Object, error) {
	p := self.(pyMISProblem)
	return py.Int(p.NumVertices()), nil
}

func py_MISProblem_NumEdges(self py.Object, args py.Tuple) (py.Object, error) {
	p := self.(pyMISProblem)
	return py.Int(p.Graph().NumEdges()), nil
}

func py_MISProblem_MIS(self py.Object, args py.Tuple) (py.Object, error) {
	p := self.(pyMISProblem)
	return solutionTuple(p.FindMaximumIndependentSet()), nil
}

func py_MISProblem_IsIndependent(self py.Object, args py.Tuple) (py.Object, error) {
	p := self.(pyMISProblem)
	if len(args) != 1 {
		return nil, py.ExceptionNewf(py.TypeError, "IsIndependent() takes exactly 1 argument (%d given)", len(args))
	}
	x, err := loadSolution(args[0])
	if err != nil {
		return nil, err
	}
	indep, err := p.IsIndependentSet(x)
	if err != nil {
		return nil, pyError(err)
	}
	return py.NewBool(indep), nil
}

// Optional arg 1 (float): w_diag (default 1)
// Optional arg 2 (float): w_off (default 4)
func py_MISProblem_QUBO(self py.Object, args py.Tuple) (py.Object, error) {
	p := self.(pyMISProblem)
	weights := [2]float64{1, 4}
	if len(args) > len(weights) {
		return nil, py.ExceptionNewf(py.TypeError, "QUBO() takes at most 2 arguments (%d given)", len(args))
	}
	for i, arg := range args {
		w, err := getFloat(arg)
		if err != nil {
			return nil, err
		}
		weights[i] = w
	}
	Q, err := p.AsQUBO(weights[0], weights[1])
	if err != nil {
		return nil, pyError(err)
	}
	return pyCostMatrix{Q}, nil
}

func py_MISProblem_Stream(self py.Object, args py.Tuple) (py.Object, error) {
	p := self.(pyMISProblem)
	return wrapProblemStream(goqubo.StreamProblem(p.MISProblem)), nil
}

/////////////////////////////////
// QUBO

type pyCostMatrix struct {
	*libqubo.CostMatrix
}

func (Q pyCostMatrix) Type() *py.Type {
	return pyCostMatrixType
}

func (Q pyCostMatrix) M__str__() (py.Object, error) {
	writer := strings.Builder{}
	Q.WriteAsString(&writer)
	return py.String(writer.String()), nil
}

func (Q pyCostMatrix) M__repr__() (py.Object, error) {
	return Q.M__str__()
}

func py_QUBO_Matrix(self py.Object, args py.Tuple) (py.Object, error) {
	Q := self.(pyCostMatrix)
	return matrixTuple(Q.Matrix(), floatObj), nil
}

func py_QUBO_NumVars(self py.Object, args py.Tuple) (py.Object, error) {
	Q := self.(pyCostMatrix)
	return py.Int(Q.NumVariables()), nil
}

func py_QUBO_EvaluateCost(self py.Object, args py.Tuple) (py.Object, error) {
	Q := self.(pyCostMatrix)
	if len(args) != 1 {
		return nil, py.ExceptionNewf(py.TypeError, "EvaluateCost() takes exactly 1 argument (%d given)", len(args))
	}
	x, err := loadSolution(args[0])
	if err != nil {
		return nil, err
	}
	cost, err := Q.EvaluateCost(x)
	if err != nil {
		return nil, pyError(err)
	}
	return py.Float(cost), nil
}

/////////////////////////////////
// Monitor

type pyMonitor struct {
	*readout.Monitor
}

func (mon pyMonitor) Type() *py.Type {
	return pyMonitorType
}

// Arg 1 (int): variable count
// Arg 2 (int): target cost
// Optional arg 3 (str): run ID
func py_NewMonitor(module py.Object, args py.Tuple) (py.Object, error) {
	if len(args) < 2 || len(args) > 3 {
		return nil, py.ExceptionNewf(py.TypeError, "Monitor() takes 2 or 3 arguments (%d given)", len(args))
	}
	n, err := getInt(args[0])
	if err != nil {
		return nil, err
	}
	target, err := getInt(args[1])
	if err != nil {
		return nil, err
	}
	opts := readout.MonitorOpts{
		RunID:         "py",
		VariableCount: int(n),
		TargetCost:    int32(target),
		History:       true,
	}
	if len(args) == 3 {
		runID, ok := args[2].(py.String)
		if !ok {
			return nil, py.ExceptionNewf(py.TypeError, "expected a run ID string (got %v)", args[2].Type().Name)
		}
		opts.RunID = string(runID)
	}
	mon, err := readout.NewMonitor(opts)
	if err != nil {
		return nil, pyError(err)
	}
	return pyMonitor{mon}, nil
}

// Arg 1 (int): raw cost
// Optional arg 2 (int): raw timestep
// Optional arg 3 (list): raw neuron states
// Returns True if the monitor is stopped.
func py_Monitor_Process(self py.Object, args py.Tuple) (py.Object, error) {
	mon := self.(pyMonitor)
	if len(args) < 1 || len(args) > 3 {
		return nil, py.ExceptionNewf(py.TypeError, "Process() takes 1 to 3 arguments (%d given)", len(args))
	}

	var (
		msg   goqubo.Readout
		words [2]int64
	)
	for i := 0; i < 2 && i < len(args); i++ {
		word, err := getInt(args[i])
		if err != nil {
			return nil, err
		}
		words[i] = word
	}
	msg.RawCost = int32(uint32(words[0]))
	msg.RawTimestep = int32(uint32(words[1]))
	if len(args) == 3 {
		states, err := loadInts(args[2])
		if err != nil {
			return nil, err
		}
		msg.RawSolution = make([]int32, len(states))
		for i, s := range states {
			msg.RawSolution[i] = int32(uint32(s))
		}
	}

	if err := mon.Process(msg); err != nil {
		return nil, pyError(err)
	}
	return py.NewBool(mon.Stopped()), nil
}

// Returns (solution, step, cost, terminated)
func py_Monitor_State(self py.Object, args py.Tuple) (py.Object, error) {
	mon := self.(pyMonitor)
	st := mon.State()
	return py.Tuple{
		solutionTuple(st.BestSolution),
		py.Int(st.BestStep),
		py.Int(st.BestCost),
		py.NewBool(st.Terminated),
	}, nil
}

func py_Monitor_Stopped(self py.Object, args py.Tuple) (py.Object, error) {
	mon := self.(pyMonitor)
	return py.NewBool(mon.Stopped()), nil
}

// Returns (step, cost) of the lowest-cost report, or None.
func py_Monitor_Best(self py.Object, args py.Tuple) (py.Object, error) {
	mon := self.(pyMonitor)
	best, found := mon.History().Best()
	if !found {
		return py.None, nil
	}
	return py.Tuple{py.Int(best.Step), py.Int(best.Cost)}, nil
}

func py_SignExtend24(module py.Object, args py.Tuple) (py.Object, error) {
	if len(args) != 1 {
		return nil, py.ExceptionNewf(py.TypeError, "SignExtend24() takes exactly 1 argument (%d given)", len(args))
	}
	raw, err := getInt(args[0])
	if err != nil {
		return nil, err
	}
	return py.Int(readout.SignExtend24(int32(uint32(raw)))), nil
}

/////////////////////////////////
// ProblemStream

type problemStream struct {
	*goqubo.ProblemStream
}

func (stream problemStream) Type() *py.Type {
	return pyProblemStreamType
}

func wrapProblemStream(stream *goqubo.ProblemStream) py.Object {
	return py.Object(problemStream{stream})
}

// Arg 1 (int): num_vertices
// Arg 2 (float): connection_prob
// Arg 3 (int): first seed
// Arg 4 (int): seed count
func py_EnumProblems(module py.Object, args py.Tuple) (py.Object, error) {
	if len(args) != 4 {
		return nil, py.ExceptionNewf(py.TypeError, "EnumProblems() takes exactly 4 arguments (%d given)", len(args))
	}
	var ints [3]int64
	for i, argIdx := range []int{0, 2, 3} {
		val, err := getInt(args[argIdx])
		if err != nil {
			return nil, err
		}
		ints[i] = val
	}
	prob, err := getFloat(args[1])
	if err != nil {
		return nil, err
	}
	stream, err := libqubo.EnumProblems(libqubo.SweepOpts{
		NumVertices:    int(ints[0]),
		ConnectionProb: prob,
		SeedStart:      uint32(ints[1]),
		SeedCount:      int(ints[2]),
	})
	if err != nil {
		return nil, pyError(err)
	}
	return wrapProblemStream(stream), nil
}

func py_ProblemStream_Go(self py.Object, args py.Tuple) (py.Object, error) {
	stream := self.(problemStream)
	count := stream.PullAll()
	return py.Int(count), nil
}

type echoToWriter struct {
	stdout *os.File
	to     *os.File
}

func (echo *echoToWriter) Write(buf []byte) (int, error) {
	if echo.to == nil {
		return echo.stdout.Write(buf)
	}
	return echo.to.Write(buf)
}

func (echo *echoToWriter) Close() error {
	if echo.to != nil {
		return echo.to.Close()
	}
	return nil
}

var gOutCount = int32(0)

// Print(label="", edges=False, mis=False, file="")
func py_ProblemStream_Print(self py.Object, args py.Tuple, kwargs py.StringDict) (py.Object, error) {
	stream := self.(problemStream)

	var (
		opts        goqubo.PrintOpts
		labelObj    py.Object = py.String("")
		edgesObj    py.Object = py.False
		misObj      py.Object = py.False
		pathnameObj py.Object = py.String("")
	)
	kwlist := []string{"label", "edges", "mis", "file"}
	err := py.ParseTupleAndKeywords(args, kwargs, "|OOOO:Print", kwlist, &labelObj, &edgesObj, &misObj, &pathnameObj)
	if err != nil {
		return nil, err
	}

	label, _ := labelObj.(py.String)
	opts.Label = string(label)
	if opts.Label == "" {
		opts.Label = fmt.Sprintf("out[%d]", atomic.AddInt32(&gOutCount, 1))
	}
	opts.Edges = edgesObj == py.True
	opts.MIS = misObj == py.True

	writer := &echoToWriter{
		stdout: os.Stdout,
	}
	if pathname, _ := pathnameObj.(py.String); len(pathname) > 0 {
		os.MkdirAll(filepath.Dir(string(pathname)), 0700)

		file, err := os.OpenFile(string(pathname), os.O_TRUNC|os.O_WRONLY|os.O_CREATE, 0600)
		if err != nil {
			return nil, py.ExceptionNewf(py.FileNotFoundError, "%v", err)
		}
		writer.to = file
	}

	next := stream.Print(writer, opts)
	return wrapProblemStream(next), nil
}

func py_ProblemStream_AddTo(self py.Object, args py.Tuple) (py.Object, error) {
	stream := self.(problemStream)
	if len(args) != 1 {
		return nil, py.ExceptionNewf(py.TypeError, "AddTo() takes exactly 1 argument (%d given)", len(args))
	}
	cat, ok := args[0].(pyCatalog)
	if !ok {
		return nil, py.ExceptionNewf(py.TypeError, "expected Catalog object (got %v)", args[0].Type().Name)
	}
	if cat.IsReadOnly() {
		return nil, pyError(goqubo.ErrCatalogReadOnly)
	}

	next := stream.AddTo(cat)
	return wrapProblemStream(next), nil
}

/////////////////////////////////
// Workspace & Catalog

const (
	READ_ONLY = 0x01

	kWorkspaceAttr = "_Workspace"
)

type Workspace struct {
	CatalogCtx goqubo.CatalogContext
}

func (ws *Workspace) Close() {
	ws.CatalogCtx.Close()
	<-ws.CatalogCtx.Done()
}

func (ws *Workspace) Type() *py.Type {
	return pyWorkspaceType
}

func py_GetWorkspace(module py.Object, args py.Tuple) (py.Object, error) {
	wsObj, _ := py.GetAttrString(module, kWorkspaceAttr)
	if wsObj == nil {
		wsObj = &Workspace{
			CatalogCtx: goqubo.NewCatalogContext(),
		}
		py.SetAttrString(module, kWorkspaceAttr, wsObj)
	}
	return wsObj, nil
}

// Arg 1 (str): catalog pathname ("" for in-memory)
// Optional arg 2 (int): flags
func py_Workspace_OpenCatalog(self py.Object, args py.Tuple) (py.Object, error) {
	ws := self.(*Workspace)
	if len(args) < 1 || len(args) > 2 {
		return nil, py.ExceptionNewf(py.TypeError, "OpenCatalog() takes 1 or 2 arguments (%d given)", len(args))
	}
	pathname, ok := args[0].(py.String)
	if !ok {
		return nil, py.ExceptionNewf(py.TypeError, "expected a pathname string (got %v)", args[0].Type().Name)
	}
	flags := int64(0)
	if len(args) > 1 {
		var err error
		if flags, err = getInt(args[1]); err != nil {
			return nil, err
		}
	}

	cat, err := catalog.OpenCatalog(ws.CatalogCtx, goqubo.CatalogOpts{
		DbPathName: string(pathname),
		ReadOnly:   (flags & READ_ONLY) != 0,
	})
	if err != nil {
		return nil, pyError(err)
	}
	return pyCatalog{cat}, nil
}

type pyCatalog struct {
	goqubo.Catalog
}

func (cat pyCatalog) Type() *py.Type {
	return pyCatalogType
}

func py_Catalog_Close(self py.Object, args py.Tuple) (py.Object, error) {
	cat := self.(pyCatalog)
	if err := cat.Close(); err != nil {
		return nil, pyError(err)
	}
	return py.None, nil
}

func py_Catalog_NumProblems(self py.Object, args py.Tuple) (py.Object, error) {
	cat := self.(pyCatalog)
	return py.Int(cat.NumProblems()), nil
}

// Optional arg 1 (int): min vertex count
// Optional arg 2 (int): max vertex count
// Returns a list of (num_vertices, connection_prob, seed, num_edges, mis) tuples.
func py_Catalog_Select(self py.Object, args py.Tuple) (py.Object, error) {
	cat := self.(pyCatalog)
	var bounds [2]int64
	for i := 0; i < len(bounds) && i < len(args); i++ {
		val, err := getInt(args[i])
		if err != nil {
			return nil, err
		}
		bounds[i] = val
	}
	sel := goqubo.ProblemSelector{
		MinVertices: int(bounds[0]),
		MaxVertices: int(bounds[1]),
	}

	hits := py.NewList()
	for def := range goqubo.SelectFromCatalog(cat, sel) {
		hits.Append(py.Tuple{
			py.Int(def.NumVertices),
			py.Float(def.ConnectionProb),
			py.Int(def.Seed),
			py.Int(def.NumEdges()),
			solutionTuple(def.Solution()),
		})
	}
	return hits, nil
}

func init() {

	/////////////////////////////////
	// MISProblem
	{
		pyMISProblemType.Dict["Graph"] = py.MustNewMethod("Graph", py_MISProblem_Graph, 0, "returns the adjacency matrix as a tuple of rows")
		pyMISProblemType.Dict["Complement"] = py.MustNewMethod("Complement", py_MISProblem_Complement, 0, "returns the complement graph's adjacency matrix")
		pyMISProblemType.Dict["NumVerts"] = py.MustNewMethod("NumVerts", py_MISProblem_NumVerts, 0, "")
		pyMISProblemType.Dict["NumEdges"] = py.MustNewMethod("NumEdges", py_MISProblem_NumEdges, 0, "")
		pyMISProblemType.Dict["MIS"] = py.MustNewMethod("MIS", py_MISProblem_MIS, 0, "returns the indicator vector of a maximum independent set")
		pyMISProblemType.Dict["IsIndependent"] = py.MustNewMethod("IsIndependent", py_MISProblem_IsIndependent, 0, "")
		pyMISProblemType.Dict["QUBO"] = py.MustNewMethod("QUBO", py_MISProblem_QUBO, 0, "QUBO(w_diag=1, w_off=4)")
		pyMISProblemType.Dict["Stream"] = py.MustNewMethod("Stream", py_MISProblem_Stream, 0, "")
	}

	/////////////////////////////////
	// QUBO
	{
		pyCostMatrixType.Dict["Matrix"] = py.MustNewMethod("Matrix", py_QUBO_Matrix, 0, "")
		pyCostMatrixType.Dict["NumVars"] = py.MustNewMethod("NumVars", py_QUBO_NumVars, 0, "")
		pyCostMatrixType.Dict["EvaluateCost"] = py.MustNewMethod("EvaluateCost", py_QUBO_EvaluateCost, 0, "returns xᵀQx")
	}

	/////////////////////////////////
	// Monitor
	{
		pyMonitorType.Dict["Process"] = py.MustNewMethod("Process", py_Monitor_Process, 0, "Process(raw_cost, raw_timestep, raw_states)")
		pyMonitorType.Dict["State"] = py.MustNewMethod("State", py_Monitor_State, 0, "returns (solution, step, cost, terminated)")
		pyMonitorType.Dict["Stopped"] = py.MustNewMethod("Stopped", py_Monitor_Stopped, 0, "")
		pyMonitorType.Dict["Best"] = py.MustNewMethod("Best", py_Monitor_Best, 0, "returns (step, cost) of the lowest cost report")
	}

	/////////////////////////////////
	// Catalog
	{
		pyCatalogType.Dict["Select"] = py.MustNewMethod("Select", py_Catalog_Select, 0, "")
		pyCatalogType.Dict["NumProblems"] = py.MustNewMethod("NumProblems", py_Catalog_NumProblems, 0, "")
		pyCatalogType.Dict["Close"] = py.MustNewMethod("Close", py_Catalog_Close, 0, "")
	}

	/////////////////////////////////
	// Workspace
	{
		pyWorkspaceType.Dict["OpenCatalog"] = py.MustNewMethod("OpenCatalog", py_Workspace_OpenCatalog, 0, "")
	}

	/////////////////////////////////
	// ProblemStream
	{
		pyProblemStreamType.Dict["Go"] = py.MustNewMethod("Go", py_ProblemStream_Go, 0, "counts the number of problems output from the ProblemStream")
		pyProblemStreamType.Dict["Print"] = py.MustNewMethod("Print", py_ProblemStream_Print, 0, "prints each problem from the ProblemStream")
		pyProblemStreamType.Dict["AddTo"] = py.MustNewMethod("AddTo", py_ProblemStream_AddTo, 0, "")
	}

	{
		methods := []*py.Method{
			py.MustNewMethod("MISProblem", py_NewMISProblem, 0, "MISProblem(num_vertices, connection_prob, seed)"),
			py.MustNewMethod("GraphProblem", py_NewGraphProblem, 0, "GraphProblem(num_vertices, graph_expr)"),
			py.MustNewMethod("Monitor", py_NewMonitor, 0, "Monitor(variable_count, target_cost, run_id='py')"),
			py.MustNewMethod("EnumProblems", py_EnumProblems, 0, "EnumProblems(num_vertices, connection_prob, seed_start, seed_count)"),
			py.MustNewMethod("SignExtend24", py_SignExtend24, 0, ""),
			py.MustNewMethod("GetWorkspace", py_GetWorkspace, 0, ""),
		}

		globals := py.StringDict{
			"LIB_VERSION": py.String(LIB_VERSION),
			"READ_ONLY":   py.Int(READ_ONLY),
			"MIN_COST":    py.Int(goqubo.MinCost24),
			"MAX_COST":    py.Int(goqubo.MaxCost24),
		}

		py.RegisterModule(&py.ModuleImpl{
			Info: py.ModuleInfo{
				Name: "_pyqubo",
				Doc:  "QUBO / Maximum Independent Set gpython module",
			},
			Methods: methods,
			Globals: globals,
			OnContextClosed: func(m *py.Module) {
				wsObj, _ := py.GetAttrString(m, kWorkspaceAttr)
				if wsObj != nil {
					wsObj.(*Workspace).Close()
				}
			},
		})
	}
}
