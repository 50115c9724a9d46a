package readout_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/fine-structures/qubo.SDK/goqubo"
	"github.com/fine-structures/qubo.SDK/libqubo/readout"
	"github.com/stretchr/testify/require"
)

func newDrivenMonitor(t *testing.T, drv *readout.Driver, n int, target int32) *readout.Monitor {
	mon, err := readout.NewMonitor(readout.MonitorOpts{
		RunID:         "driven",
		VariableCount: n,
		TargetCost:    target,
		Observer:      &recorder{},
		Halter:        drv,
	})
	require.NoError(t, err)
	return mon
}

func TestDriverHaltsAndDrains(t *testing.T) {
	drv := readout.NewDriver()
	mon := newDrivenMonitor(t, drv, 3, -2)

	in := make(chan goqubo.Readout)
	go func() {
		in <- goqubo.Readout{}
		in <- goqubo.Readout{RawCost: 0xFFFFFF, RawTimestep: -1, RawSolution: states(1, 0, 0)}
		in <- goqubo.Readout{RawCost: 0xFFFFFF, RawTimestep: -2, RawSolution: states(1, 0, 0)}
		in <- goqubo.Readout{RawCost: 0xFFFFFE, RawTimestep: 3, RawSolution: states(1, 0, 1)}

		// the producer must never block once the driver halts
		for i := 0; i < 10; i++ {
			in <- goqubo.Readout{RawCost: 0xFFFFF0, RawTimestep: 4, RawSolution: states(1, 1, 1)}
		}
		close(in)
	}()

	st, err := drv.Run(context.Background(), mon, in)
	require.NoError(t, err)
	require.Equal(t, readout.State{
		BestSolution: goqubo.Solution{1, 0, 1},
		BestStep:     3,
		BestCost:     -2,
		Terminated:   true,
	}, st)
	require.True(t, drv.Halted())
	require.Equal(t, "driven", drv.HaltedRun())
	require.Equal(t, uint64(4), drv.Delivered())
	require.Equal(t, 2, drv.Distinct())
}

func TestDriverEndOfInput(t *testing.T) {
	drv := readout.NewDriver()
	mon := newDrivenMonitor(t, drv, 2, -5)

	in := make(chan goqubo.Readout, 4)
	in <- goqubo.Readout{RawCost: 0xFFFFFF, RawTimestep: -1, RawSolution: states(0, 1)}
	in <- goqubo.Readout{RawCost: 0xFFFFFD, RawTimestep: -2, RawSolution: states(1, 0)}
	close(in)

	st, err := drv.Run(context.Background(), mon, in)
	require.NoError(t, err)
	require.False(t, st.Terminated)
	require.False(t, drv.Halted())
	require.Equal(t, "", drv.HaltedRun())
	require.Equal(t, int32(-3), st.BestCost)
	require.Equal(t, uint64(2), drv.Delivered())
}

func TestDriverDimensionError(t *testing.T) {
	drv := readout.NewDriver()
	mon := newDrivenMonitor(t, drv, 2, -5)

	in := make(chan goqubo.Readout, 2)
	in <- goqubo.Readout{RawCost: 0xFFFFFF, RawTimestep: -1, RawSolution: states(0, 1, 1)}
	close(in)

	_, err := drv.Run(context.Background(), mon, in)
	require.ErrorIs(t, err, goqubo.ErrDimensionMismatch)
}

func TestDriverCancel(t *testing.T) {
	drv := readout.NewDriver()
	mon := newDrivenMonitor(t, drv, 2, -5)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := drv.Run(ctx, mon, make(chan goqubo.Readout))
	require.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestDriverHaltOnce(t *testing.T) {
	drv := readout.NewDriver()
	drv.Halt("first")
	drv.Halt("second")
	require.True(t, drv.Halted())
	require.Equal(t, "first", drv.HaltedRun())
}

func TestReplayTrace(t *testing.T) {
	const trace = `
# reference run: 10 variables, target -2
0
0xFFFFFF -1  1 1 1 1 1 1 5 1 1 1
0        -2
0xFFFFFE  2  1 1 1 1 1 1 5 1 1 5
0xFFFFF0  3  5 5 5 5 5 5 5 5 5 5
`
	drv := readout.NewDriver()
	mon := newDrivenMonitor(t, drv, 10, -2)

	msgs, errs := readout.ReadTrace(strings.NewReader(trace))
	st, err := drv.Run(context.Background(), mon, msgs)
	require.NoError(t, err)
	require.Equal(t, []int{6, 9}, st.BestSolution.Selected())
	require.Equal(t, int32(-2), st.BestCost)
	require.Equal(t, int64(2), st.BestStep)
	require.True(t, st.Terminated)
	require.Equal(t, uint64(4), drv.Delivered())

	for err := range errs {
		require.NoError(t, err)
	}
}

func TestDriverCancelDrainsInput(t *testing.T) {
	drv := readout.NewDriver()
	mon := newDrivenMonitor(t, drv, 2, -5)

	in := make(chan goqubo.Readout)
	produced := make(chan struct{})
	go func() {
		defer close(produced)
		for i := 0; i < 100; i++ {
			in <- goqubo.Readout{RawCost: 0xFFFFFF, RawTimestep: -1, RawSolution: states(1, 0)}
		}
		close(in)
	}()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := drv.Run(ctx, mon, in)
	require.ErrorIs(t, err, context.Canceled)

	select {
	case <-produced:
	case <-time.After(2 * time.Second):
		t.Fatal("producer still blocked after cancellation")
	}
}
