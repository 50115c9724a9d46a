package readout

import (
	"github.com/fine-structures/qubo.SDK/goqubo"
	"github.com/pkg/errors"
)

// State is the observable outcome of a readout run.
type State struct {
	BestSolution goqubo.Solution // solution decoded from the most recent report
	BestStep     int64           // step of the most recent report
	BestCost     int32           // cost of the most recent report
	Terminated   bool            // set once the backend signalled its final report
}

// MonitorOpts configures a Monitor.
type MonitorOpts struct {
	RunID         string
	VariableCount int
	TargetCost    int32
	Observer      goqubo.ReadoutObserver // nil denotes a LogObserver for RunID
	Halter        goqubo.Halter          // nil denotes no external driver
	History       bool                   // if set, every decoded report is retained
}

// Monitor consumes the per-iteration readout messages of a QUBO backend.
//
// A Monitor is not safe for concurrent use; a Driver serializes messages into it.
type Monitor struct {
	opts    MonitorOpts
	state   State
	history *History
	reports uint64
}

// NewMonitor returns a Monitor in its initial state: an all-zero solution at step 0 with cost 0.
func NewMonitor(opts MonitorOpts) (*Monitor, error) {
	if opts.VariableCount <= 0 {
		return nil, errors.Wrapf(goqubo.ErrInvalidParameter, "variable count must be > 0 (got %d)", opts.VariableCount)
	}
	if opts.Observer == nil {
		opts.Observer = LogObserver{RunID: opts.RunID}
	}

	mon := &Monitor{
		opts: opts,
		state: State{
			BestSolution: make(goqubo.Solution, opts.VariableCount),
		},
	}
	if opts.History {
		mon.history = NewHistory()
	}
	return mon, nil
}

func (mon *Monitor) RunID() string {
	return mon.opts.RunID
}

func (mon *Monitor) VariableCount() int {
	return mon.opts.VariableCount
}

func (mon *Monitor) TargetCost() int32 {
	return mon.opts.TargetCost
}

// Stopped returns true once the final report has been processed.
func (mon *Monitor) Stopped() bool {
	return mon.state.Terminated
}

// Reports returns how many non-sentinel messages have been decoded.
func (mon *Monitor) Reports() uint64 {
	return mon.reports
}

// History returns the retained reports, or nil if history was not enabled.
func (mon *Monitor) History() *History {
	return mon.history
}

// State returns a snapshot of the current state; the caller owns the returned solution.
func (mon *Monitor) State() State {
	st := mon.state
	st.BestSolution = st.BestSolution.MakeCopy()
	return st
}

// Process applies one readout message.
//
// Once stopped, and for the "nothing to report" sentinel (RawCost == 0), messages are ignored.
// A solution whose length differs from the variable count returns ErrDimensionMismatch and leaves the state unchanged.
// Otherwise the decoded report replaces the current state, the observer is notified of a negative cost
// and of a cost at or below the target, and a positive RawTimestep stops the monitor and halts the driver.
func (mon *Monitor) Process(msg goqubo.Readout) error {
	if mon.state.Terminated {
		return nil
	}
	if msg.IsEmpty() {
		return nil
	}
	if len(msg.RawSolution) != mon.opts.VariableCount {
		return errors.Wrapf(goqubo.ErrDimensionMismatch, "readout carries %d neuron states, expected %d", len(msg.RawSolution), mon.opts.VariableCount)
	}

	cost := SignExtend24(msg.RawCost)
	step := Step(msg.RawTimestep)
	DecodeSolution(mon.state.BestSolution, msg.RawSolution)
	mon.state.BestStep = step
	mon.state.BestCost = cost
	mon.reports++

	if mon.history != nil {
		mon.history.Record(Report{
			Step:     step,
			Cost:     cost,
			Solution: mon.state.BestSolution.MakeCopy(),
		})
	}

	if cost < 0 {
		mon.opts.Observer.OnImprovedSolution(step, cost, mon.state.BestSolution.MakeCopy())
	}
	if cost <= mon.opts.TargetCost {
		mon.opts.Observer.OnTargetReached(mon.opts.TargetCost)
	}

	if msg.RawTimestep > 0 {
		mon.state.Terminated = true
		if mon.opts.Halter != nil {
			mon.opts.Halter.Halt(mon.opts.RunID)
		}
	}
	return nil
}

// RunRecord returns the catalog form of the current state.
func (mon *Monitor) RunRecord() *goqubo.RunRecord {
	return &goqubo.RunRecord{
		RunID:        mon.opts.RunID,
		NumVertices:  int32(mon.opts.VariableCount),
		TargetCost:   mon.opts.TargetCost,
		BestCost:     mon.state.BestCost,
		BestStep:     mon.state.BestStep,
		BestSolution: []byte(mon.state.BestSolution.MakeCopy()),
		Terminated:   mon.state.Terminated,
		Solved:       mon.reports > 0 && mon.state.BestCost == mon.opts.TargetCost,
	}
}
