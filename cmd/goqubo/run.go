package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/fine-structures/qubo.SDK/goqubo"
	"github.com/fine-structures/qubo.SDK/libqubo"
	"github.com/fine-structures/qubo.SDK/libqubo/catalog"
	"github.com/fine-structures/qubo.SDK/libqubo/readout"
	"github.com/pkg/errors"
	"github.com/plan-systems/klog"
)

// runConfig builds the configured MIS instance, solves it exactly, replays an optional readout trace
// against it, and records both in the catalog.  An empty pathname runs the default config.
func runConfig(pathname string) error {
	cfg := goqubo.DefaultRunConfig()
	if len(pathname) > 0 {
		var err error
		if cfg, err = goqubo.LoadRunConfig(pathname); err != nil {
			return err
		}
	}

	p, err := buildProblem(cfg.Problem)
	if err != nil {
		return err
	}
	Q, err := p.AsQUBO(cfg.QUBO.WDiag, cfg.QUBO.WOff)
	if err != nil {
		return err
	}
	mis := p.FindMaximumIndependentSet()
	optimal, err := Q.EvaluateCost(mis)
	if err != nil {
		return err
	}

	spec := p.Spec()
	fmt.Printf("problem: n=%d p=%g seed=%d edges=%d\n", spec.NumVertices, spec.ConnectionProb, spec.Seed, p.Graph().NumEdges())
	p.Graph().WriteAsString(os.Stdout)
	fmt.Printf("qubo (w_diag=%g, w_off=%g):\n", cfg.QUBO.WDiag, cfg.QUBO.WOff)
	Q.WriteAsString(os.Stdout)
	fmt.Printf("maximum independent set: %v (size %d, cost %g)\n", mis.Selected(), mis.Size(), optimal)

	catCtx := goqubo.NewCatalogContext()
	defer func() {
		catCtx.Close()
		<-catCtx.Done()
	}()

	cat, err := catalog.OpenCatalog(catCtx, goqubo.CatalogOpts{
		DbPathName: cfg.Catalog.Path,
		ReadOnly:   cfg.Catalog.ReadOnly,
		WDiag:      cfg.QUBO.WDiag,
		WOff:       cfg.QUBO.WOff,
	})
	if err != nil {
		return err
	}
	defer cat.Close()

	if !cat.IsReadOnly() && cat.TryAddProblem(p) {
		klog.V(2).Infof("catalogued problem %+v (%d problems total)", spec, cat.NumProblems())
	}

	if len(cfg.Readout.TraceFile) == 0 {
		return nil
	}

	rec, err := replayTrace(cfg, p.NumVertices())
	if err != nil {
		return err
	}

	fmt.Printf("readout: best cost %d at step %d (target %d, optimum %g), solution %v, solved=%v terminated=%v\n",
		rec.BestCost, rec.BestStep, rec.TargetCost, optimal, goqubo.Solution(rec.BestSolution).Selected(), rec.Solved, rec.Terminated)
	if float64(rec.BestCost) <= optimal {
		fmt.Println("readout reached the reference optimum")
	}

	if !cat.IsReadOnly() {
		if err = cat.PutRun(rec); err != nil {
			return err
		}
	}
	return nil
}

func buildProblem(cfg goqubo.ProblemConfig) (*libqubo.MISProblem, error) {
	if len(cfg.Graph) == 0 {
		return libqubo.NewMISProblem(cfg.NumVertices, cfg.ConnectionProb, cfg.Seed)
	}
	X, err := libqubo.NewGraphFromExpr(cfg.NumVertices, cfg.Graph)
	if err != nil {
		return nil, err
	}
	return libqubo.NewMISProblemFromGraph(X)
}

func replayTrace(cfg goqubo.RunConfig, numVars int) (*goqubo.RunRecord, error) {
	file, err := os.Open(cfg.Readout.TraceFile)
	if err != nil {
		return nil, errors.Wrap(err, "opening readout trace")
	}
	defer file.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	drv := readout.NewDriver()
	mon, err := readout.NewMonitor(readout.MonitorOpts{
		RunID:         cfg.Readout.RunID,
		VariableCount: numVars,
		TargetCost:    cfg.Readout.TargetCost,
		Halter:        drv,
		History:       cfg.Readout.History,
	})
	if err != nil {
		return nil, err
	}

	msgs, traceErrs := readout.ReadTrace(file)
	_, err = drv.Run(ctx, mon, msgs)
	if err != nil {
		return nil, err
	}
	if !drv.Halted() {
		if err = <-traceErrs; err != nil {
			return nil, err
		}
	}

	if hist := mon.History(); hist != nil {
		if best, found := hist.Best(); found {
			klog.Infof("%s: lowest cost %d at step %d over %d reports", mon.RunID(), best.Cost, best.Step, hist.Len())
		}
	}
	klog.V(2).Infof("%s: %d messages delivered, %d distinct solutions", mon.RunID(), drv.Delivered(), drv.Distinct())

	rec := mon.RunRecord()
	rec.Delivered = drv.Delivered()
	return rec, nil
}
