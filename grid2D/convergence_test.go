package grid2D

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTestMonitor(maxIter int) *ConvergenceMonitor {
	cfg := DefaultConfig()
	cfg.Tolerance = 1.e-6
	cfg.MaxIterations = maxIter
	cfg.DivergenceFactor = 10
	cfg.DivergenceWindow = 3
	return NewConvergenceMonitor(cfg)
}

func TestConvergenceMonitor(t *testing.T) {
	{ // Converges below tolerance
		cm := newTestMonitor(100)
		assert.True(t, math.IsInf(cm.Residual(), 1))
		for _, r := range []float64{1, 0.1, 1.e-3, 1.e-5} {
			assert.Equal(t, Running, cm.Update(r))
		}
		assert.Equal(t, Converged, cm.Update(9.e-7))
		assert.Equal(t, 5, cm.Iterations())
		assert.Equal(t, 9.e-7, cm.Residual())
		assert.Equal(t, 1.e-5, cm.Best)
		assert.Equal(t, "converged", cm.Status().String())
	}
	{ // Iteration cap
		cm := newTestMonitor(3)
		assert.Equal(t, Running, cm.Update(1))
		assert.Equal(t, Running, cm.Update(0.5))
		assert.Equal(t, MaxIterationsReached, cm.Update(0.25))
		assert.Len(t, cm.History, 3)
	}
	{ // Convergence on the last allowed sweep wins over the cap
		cm := newTestMonitor(2)
		cm.Update(1)
		assert.Equal(t, Converged, cm.Update(0))
	}
	{ // Non-finite residuals diverge immediately
		cm := newTestMonitor(100)
		cm.Update(1)
		assert.Equal(t, Diverged, cm.Update(math.NaN()))
		cm = newTestMonitor(100)
		assert.Equal(t, Diverged, cm.Update(math.Inf(1)))
	}
	{ // Sustained growth past the factor diverges, a transient spike does not
		cm := newTestMonitor(100)
		cm.Update(1.e-2)
		assert.Equal(t, Running, cm.Update(0.5))
		assert.Equal(t, Running, cm.Update(0.5))
		assert.Equal(t, Running, cm.Update(1.e-2)) // back under the threshold
		assert.Equal(t, Running, cm.Update(0.5))
		assert.Equal(t, Running, cm.Update(0.6))
		assert.Equal(t, Diverged, cm.Update(0.7))
	}
	{ // A refresh exempts one sweep, the growth run and the best residual carry over
		cm := newTestMonitor(100)
		cm.Update(1.e-4)
		cm.Update(0.5)
		cm.Update(0.5)
		cm.MarkRefresh()
		assert.Equal(t, Running, cm.Update(0.5))
		assert.Equal(t, 1.e-4, cm.Best)
		assert.Equal(t, Diverged, cm.Update(0.5))
	}
	{ // A spike on the sweep after a refresh does not start a growth run
		cm := newTestMonitor(100)
		cm.Update(1.e-2)
		cm.MarkRefresh()
		assert.Equal(t, Running, cm.Update(0.5))
		assert.Equal(t, Running, cm.Update(0.5))
		assert.Equal(t, Running, cm.Update(0.5))
		assert.Equal(t, Diverged, cm.Update(0.5))
	}
	{ // Unbounded growth diverges even with a control refresh every few sweeps
		cfg := DefaultConfig()
		cfg.MaxIterations = 400
		var (
			cm       = NewConvergenceMonitor(cfg)
			residual = 1.
			status   = Running
		)
		for iter := 1; status == Running; iter++ {
			if iter%5 == 0 {
				cm.MarkRefresh()
			}
			status = cm.Update(residual)
			residual *= 1.5
		}
		assert.Equal(t, Diverged, status)
		assert.Less(t, cm.Iterations(), 40)
		assert.False(t, math.IsInf(cm.Residual(), 0))
	}
	{ // Residual norms are reduced in node order
		deltas := []float64{3, 0, 4, 0}
		assert.Equal(t, 4., SweepResidual(NormMax, deltas))
		assert.InDelta(t, 2.5, SweepResidual(NormRMS, deltas), 1.e-15)
		assert.Equal(t, 0., SweepResidual(NormMax, nil))
		// a single NaN change is never skipped
		assert.True(t, math.IsNaN(SweepResidual(NormMax, []float64{1, math.NaN(), 2})))
		assert.True(t, math.IsNaN(SweepResidual(NormRMS, []float64{1, math.NaN(), 2})))
	}
}
