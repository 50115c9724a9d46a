package readout

import (
	"github.com/fine-structures/qubo.SDK/goqubo"
	"github.com/plan-systems/klog"
)

// LogObserver reports readout events to the log.
type LogObserver struct {
	RunID string
}

func (obs LogObserver) OnImprovedSolution(step int64, cost int32, x goqubo.Solution) {
	klog.Infof("%s: better solution found at step %d with cost %d: %v", obs.RunID, step, cost, x)
}

func (obs LogObserver) OnTargetReached(targetCost int32) {
	klog.Infof("%s: network reached target cost %d", obs.RunID, targetCost)
}
