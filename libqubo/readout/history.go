package readout

import (
	"github.com/emirpasic/gods/trees/redblacktree"
	"github.com/emirpasic/gods/utils"
	"github.com/fine-structures/qubo.SDK/goqubo"
)

// Report is one decoded (non-sentinel) readout message.
type Report struct {
	Step     int64
	Cost     int32
	Solution goqubo.Solution
}

// History is a step-ordered record of decoded reports.
// A later report for an already recorded step replaces the earlier one.
type History struct {
	tree *redblacktree.Tree
}

func NewHistory() *History {
	return &History{
		tree: redblacktree.NewWith(utils.Int64Comparator),
	}
}

// Record adds (or replaces) the report for r.Step.  The History takes ownership of r.Solution.
func (h *History) Record(r Report) {
	h.tree.Put(r.Step, r)
}

// Len returns the number of distinct steps recorded.
func (h *History) Len() int {
	return h.tree.Size()
}

// At returns the report recorded for the given step.
func (h *History) At(step int64) (Report, bool) {
	val, found := h.tree.Get(step)
	if !found {
		return Report{}, false
	}
	r := val.(Report)
	r.Solution = r.Solution.MakeCopy()
	return r, true
}

// Steps returns the recorded steps in ascending order.
func (h *History) Steps() []int64 {
	steps := make([]int64, 0, h.tree.Size())
	for it := h.tree.Iterator(); it.Next(); {
		steps = append(steps, it.Key().(int64))
	}
	return steps
}

// Best returns the report with the lowest cost, preferring the earliest step on ties.
func (h *History) Best() (Report, bool) {
	var (
		best  Report
		found bool
	)
	for it := h.tree.Iterator(); it.Next(); {
		r := it.Value().(Report)
		if !found || r.Cost < best.Cost {
			best = r
			found = true
		}
	}
	if found {
		best.Solution = best.Solution.MakeCopy()
	}
	return best, found
}
