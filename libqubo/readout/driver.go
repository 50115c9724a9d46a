package readout

import (
	"context"
	"sync"

	"github.com/fine-structures/qubo.SDK/goqubo"
	"github.com/fine-structures/qubo.SDK/libqubo"
	"github.com/pkg/errors"
	"github.com/plan-systems/klog"
)

// Driver feeds a stream of readout messages into a Monitor and is the Halter the Monitor signals.
type Driver struct {
	halted    chan struct{}
	haltOnce  sync.Once
	haltedRun string
	delivered uint64
	distinct  int
}

var _ goqubo.Halter = (*Driver)(nil)

func NewDriver() *Driver {
	return &Driver{
		halted: make(chan struct{}),
	}
}

// Halt pauses delivery.  Only the first call has any effect.
func (drv *Driver) Halt(runID string) {
	drv.haltOnce.Do(func() {
		drv.haltedRun = runID
		close(drv.halted)
	})
}

// Halted returns true once Halt has been called.
func (drv *Driver) Halted() bool {
	select {
	case <-drv.halted:
		return true
	default:
		return false
	}
}

// HaltedRun returns the run ID passed to Halt, if any.
func (drv *Driver) HaltedRun() string {
	if !drv.Halted() {
		return ""
	}
	return drv.haltedRun
}

// Delivered returns how many messages were passed to the Monitor.
func (drv *Driver) Delivered() uint64 {
	return drv.delivered
}

// Distinct returns how many distinct solutions were decoded.
func (drv *Driver) Distinct() int {
	return drv.distinct
}

// Run delivers each message from in to mon, in order, until in closes, ctx is done, or mon halts this driver.
// Once halted or cancelled, remaining input is drained and discarded so that the producer is never blocked.
func (drv *Driver) Run(ctx context.Context, mon *Monitor, in <-chan goqubo.Readout) (State, error) {
	distinct := libqubo.NewSolutionSet()
	defer func() {
		drv.distinct = distinct.Len()
		distinct.Close()
	}()

	klog.V(2).Infof("%s: readout started (%d variables, target cost %d)", mon.RunID(), mon.VariableCount(), mon.TargetCost())

	drain := func() {
		go func() {
			for range in {
			}
		}()
	}

	for {
		select {
		case <-drv.halted:
			drain()
			klog.V(2).Infof("%s: readout halted after %d messages", mon.RunID(), drv.delivered)
			return mon.State(), nil
		case <-ctx.Done():
			drain()
			return mon.State(), ctx.Err()
		default:
		}

		select {
		case <-ctx.Done():
			drain()
			return mon.State(), ctx.Err()
		case <-drv.halted:
			// picked up at the top of the loop
		case msg, ok := <-in:
			if !ok {
				klog.V(2).Infof("%s: readout ended after %d messages", mon.RunID(), drv.delivered)
				return mon.State(), nil
			}
			drv.delivered++
			before := mon.Reports()
			if err := mon.Process(msg); err != nil {
				return mon.State(), errors.Wrapf(err, "%s: message #%d", mon.RunID(), drv.delivered)
			}
			if mon.Reports() != before {
				distinct.TryAdd(mon.state.BestSolution)
			}
		}
	}
}
