package grid2D

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

type Status uint8

const (
	Running Status = iota
	Converged
	MaxIterationsReached
	Diverged
)

func (s Status) String() string {
	switch s {
	case Running:
		return "running"
	case Converged:
		return "converged"
	case MaxIterationsReached:
		return "max iterations reached"
	case Diverged:
		return "diverged"
	}
	return "unknown"
}

// ConvergenceMonitor decides after each sweep whether the solve continues
type ConvergenceMonitor struct {
	Tolerance        float64
	MaxIterations    int
	DivergenceFactor float64
	DivergenceWindow int
	History          []float64
	Best             float64
	growing          int
	exempt           bool
	status           Status
}

func NewConvergenceMonitor(cfg Config) (cm *ConvergenceMonitor) {
	cm = &ConvergenceMonitor{
		Tolerance:        cfg.Tolerance,
		MaxIterations:    cfg.MaxIterations,
		DivergenceFactor: cfg.DivergenceFactor,
		DivergenceWindow: cfg.DivergenceWindow,
		History:          make([]float64, 0, min(cfg.MaxIterations, 1024)),
		Best:             math.Inf(1),
	}
	return
}

/*
Update records the residual of one sweep. Checks are made in order:
non-finite residual diverges, a residual below Tolerance converges, a residual
above DivergenceFactor times the best seen so far for DivergenceWindow
consecutive sweeps diverges, and the iteration cap ends the solve. The sweep
following MarkRefresh neither counts toward nor resets the growth run.
*/
func (cm *ConvergenceMonitor) Update(residual float64) Status {
	cm.History = append(cm.History, residual)
	switch {
	case math.IsNaN(residual) || math.IsInf(residual, 0):
		cm.status = Diverged
		return cm.status
	case residual < cm.Tolerance:
		cm.status = Converged
		return cm.status
	}
	switch {
	case cm.exempt:
		cm.exempt = false
	case residual > cm.DivergenceFactor*cm.Best:
		cm.growing++
	default:
		cm.growing = 0
	}
	cm.Best = math.Min(cm.Best, residual)
	switch {
	case cm.growing >= cm.DivergenceWindow:
		cm.status = Diverged
	case len(cm.History) >= cm.MaxIterations:
		cm.status = MaxIterationsReached
	default:
		cm.status = Running
	}
	return cm.status
}

// MarkRefresh exempts the next sweep from the growth test, the control functions just changed
func (cm *ConvergenceMonitor) MarkRefresh() { cm.exempt = true }

func (cm *ConvergenceMonitor) Status() Status { return cm.status }

func (cm *ConvergenceMonitor) Iterations() int { return len(cm.History) }

func (cm *ConvergenceMonitor) Residual() float64 {
	if len(cm.History) == 0 {
		return math.Inf(1)
	}
	return cm.History[len(cm.History)-1]
}

/*
SweepResidual reduces the per node changes |dx|+|dy| of one sweep. The
changes are always reduced in node order, so the value does not depend on how
the sweep was partitioned. Any NaN change makes the residual NaN.
*/
func SweepResidual(norm ResidualNorm, deltas []float64) float64 {
	if len(deltas) == 0 {
		return 0
	}
	if floats.HasNaN(deltas) {
		return math.NaN()
	}
	switch norm {
	case NormRMS:
		return floats.Norm(deltas, 2) / math.Sqrt(float64(len(deltas)))
	default:
		return floats.Max(deltas)
	}
}
