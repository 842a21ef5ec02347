package grid2D

import (
	"math"
	"time"

	"github.com/go-logr/logr"

	"github.com/notargets/airfoilgrid/logging"
	"github.com/notargets/airfoilgrid/utils"
)

type Solver struct {
	cfg    Config
	logger logr.Logger
}

type Result struct {
	Grid            *Grid
	Status          Status
	Converged       bool
	Iterations      int
	Residual        float64
	History         []float64
	RejectedUpdates int
	ControlRefresh  int
	Quality         QualityReport
	Elapsed         time.Duration
}

// NewSolver validates the configuration once, the solver never modifies it
func NewSolver(cfg Config, logger logr.Logger) (s *Solver, err error) {
	if err = cfg.Validate(); err != nil {
		return
	}
	s = &Solver{cfg: cfg, logger: logger.WithName("elliptic")}
	return
}

func (s *Solver) Config() Config { return s.cfg }

/*
Solve relaxes the interior nodes of g in place until the convergence monitor
stops it. Rows j=0 and j=M are never written.

Errors, in order of precedence:
  - *SolveError wrapping ErrDivergence, the result is nil and the error holds
    the partial grid
  - *DegenerateGridError wrapping ErrDegenerateGrid, returned with the result
  - *SolveError wrapping ErrMaxIterations, returned with the result, the grid
    is the last iterate and may be used
*/
func (s *Solver) Solve(g *Grid) (res *Result, err error) {
	if g == nil || g.N < 3 || g.M < 1 {
		err = configErrorf("Grid", "need a grid with N >= 3 and M >= 1")
		return
	}
	return s.solve(g, NewControlFunctions(s.cfg, g))
}

func (s *Solver) solve(g *Grid, cf *ControlFunctions) (res *Result, err error) {
	var (
		start   = time.Now()
		monitor = NewConvergenceMonitor(s.cfg)
		sw      = newSweeper(s.cfg, g)
		status  Status
		iter    int
	)
	s.logger.V(logging.DEFAULT).Info("starting elliptic solve",
		"N", g.N, "M", g.M, "scheme", s.cfg.Scheme.String(), "omega", s.cfg.Relaxation,
		"control", s.cfg.Control.Type.String(), "partitions", sw.parallelDegree())
	for status = Running; status == Running; {
		iter++
		if cf.RefreshDue(iter) {
			cf.Refresh(g)
			monitor.MarkRefresh()
			s.logger.V(logging.DEBUG).Info("refreshed control functions", "iteration", iter,
				"refreshes", cf.Refreshes)
		}
		var (
			residual float64
			rejected int
		)
		switch s.cfg.Scheme {
		case Jacobi:
			residual, rejected = sw.jacobi(g, cf)
		default:
			residual, rejected = sw.gaussSeidel(g, cf)
		}
		if rejected != 0 {
			s.logger.V(logging.DEBUG).Info("rejected folding updates", "iteration", iter, "count", rejected)
		}
		status = monitor.Update(residual)
		if s.cfg.LogInterval > 0 && iter%s.cfg.LogInterval == 0 {
			s.logger.V(logging.VERBOSE).Info("sweep", "iteration", iter, "residual", residual)
		}
	}
	s.logger.V(logging.DEFAULT).Info("elliptic solve finished", "status", status.String(),
		"iterations", monitor.Iterations(), "residual", monitor.Residual(), "rejected", sw.rejected,
		"elapsed", time.Since(start).String())
	s.logger.V(logging.DEBUG).Info("memory", "usage", utils.GetMemUsage())
	if status == Diverged {
		err = &SolveError{Err: ErrDivergence, Iterations: monitor.Iterations(), Residual: monitor.Residual(), Grid: g}
		return
	}
	res = &Result{
		Grid:            g,
		Status:          status,
		Converged:       status == Converged,
		Iterations:      monitor.Iterations(),
		Residual:        monitor.Residual(),
		History:         monitor.History,
		RejectedUpdates: sw.rejected,
		ControlRefresh:  cf.Refreshes,
		Quality:         CheckQuality(g),
		Elapsed:         time.Since(start),
	}
	switch {
	case len(res.Quality.Folded) != 0:
		err = &DegenerateGridError{Cells: res.Quality.Folded, Grid: g}
	case status == MaxIterationsReached:
		err = &SolveError{Err: ErrMaxIterations, Iterations: res.Iterations, Residual: res.Residual, Grid: g}
	}
	return
}

/*
sweeper owns the per sweep work arrays. Interior node (i,j) is numbered
k = i*(M-1) + (j-1), the order of the Gauss-Seidel sweep.
*/
type sweeper struct {
	cfg      Config
	nInt     int
	deltas   []float64
	work     *Grid // Jacobi write buffer
	pm       *utils.PartitionMap
	rejected int
}

func newSweeper(cfg Config, g *Grid) (sw *sweeper) {
	sw = &sweeper{cfg: cfg}
	if g.M > 1 {
		sw.nInt = g.N * (g.M - 1)
	}
	sw.deltas = make([]float64, sw.nInt)
	if cfg.Scheme == Jacobi {
		sw.work = g.Copy()
		sw.pm = utils.NewPartitionMap(cfg.parallelDegree(sw.nInt), sw.nInt)
	}
	return
}

func (sw *sweeper) parallelDegree() int {
	if sw.pm == nil {
		return 1
	}
	return sw.pm.ParallelDegree
}

func (sw *sweeper) gaussSeidel(g *Grid, cf *ControlFunctions) (residual float64, rejected int) {
	for i := 0; i < g.N; i++ {
		for j := 1; j < g.M; j++ {
			x, y, rej := sw.relax(g, cf, i, j)
			x0, y0 := g.Point(i, j)
			g.SetPoint(i, j, x, y)
			sw.deltas[i*(g.M-1)+j-1] = math.Abs(x-x0) + math.Abs(y-y0)
			if rej {
				rejected++
			}
		}
	}
	sw.rejected += rejected
	residual = SweepResidual(sw.cfg.ResidualNorm, sw.deltas)
	return
}

// jacobi reads only g and writes only the work buffer, then swaps them
func (sw *sweeper) jacobi(g *Grid, cf *ControlFunctions) (residual float64, rejected int) {
	if sw.nInt == 0 {
		return 0, 0
	}
	var (
		counts = make([]int, sw.pm.ParallelDegree)
		mm     = g.M - 1
	)
	sw.pm.Run(func(np, kMin, kMax int) {
		for k := kMin; k < kMax; k++ {
			i, j := k/mm, k%mm+1
			x, y, rej := sw.relax(g, cf, i, j)
			x0, y0 := g.Point(i, j)
			sw.work.SetPoint(i, j, x, y)
			sw.deltas[k] = math.Abs(x-x0) + math.Abs(y-y0)
			if rej {
				counts[np]++
			}
		}
	})
	for _, c := range counts {
		rejected += c
	}
	g.X, sw.work.X = sw.work.X, g.X
	g.Y, sw.work.Y = sw.work.Y, g.Y
	sw.rejected += rejected
	residual = SweepResidual(sw.cfg.ResidualNorm, sw.deltas)
	return
}

/*
relax returns the relaxed position of node (i,j). An update that folds one of
the four surrounding cells further is retried with omega halved, up to
MaxFoldRetries times, after which the node keeps its old position.
*/
func (sw *sweeper) relax(g *Grid, cf *ControlFunctions, i, j int) (x, y float64, rejected bool) {
	var (
		x0, y0     = g.Point(i, j)
		xNew, yNew = nodeUpdate(g, cf, i, j)
		omega      = sw.cfg.Relaxation
		before     = math.NaN()
	)
	for try := 0; ; try++ {
		x, y = x0+omega*(xNew-x0), y0+omega*(yNew-y0)
		after := g.minCornerAround(i, j, x, y)
		if after > 0 {
			return x, y, false
		}
		if math.IsNaN(before) {
			before = g.minCornerAround(i, j, x0, y0)
		}
		if after >= before {
			return x, y, false
		}
		if try == sw.cfg.MaxFoldRetries {
			return x0, y0, true
		}
		omega *= 0.5
	}
}

/*
nodeUpdate solves the discrete generation equation at (i,j) for the node
position, using unit computational spacing and central differences:

	x = [A(x[j+1] + x[j-1]) + B(x[i+1] + x[i-1]) + B*P*x_xi + A*Q*x_eta - 2*beta*x_xieta] / 2(A+B)

with A = gamma = |x_xi|^2 weighting the j neighbours and B = alpha = |x_eta|^2
weighting the i neighbours. A node with vanishing metrics is returned unchanged.
*/
func nodeUpdate(g *Grid, cf *ControlFunctions, i, j int) (x, y float64) {
	var (
		ip, im   = g.Next(i), g.Prev(i)
		xE, yE   = g.Point(ip, j)
		xW, yW   = g.Point(im, j)
		xN, yN   = g.Point(i, j+1)
		xS, yS   = g.Point(i, j-1)
		xNE, yNE = g.Point(ip, j+1)
		xSE, ySE = g.Point(ip, j-1)
		xNW, yNW = g.Point(im, j+1)
		xSW, ySW = g.Point(im, j-1)
		xXi      = 0.5 * (xE - xW)
		yXi      = 0.5 * (yE - yW)
		xEta     = 0.5 * (xN - xS)
		yEta     = 0.5 * (yN - yS)
		xXiEta   = 0.25 * (xNE - xSE - xNW + xSW)
		yXiEta   = 0.25 * (yNE - ySE - yNW + ySW)
		A        = xXi*xXi + yXi*yXi
		B        = xEta*xEta + yEta*yEta
		beta     = xXi*xEta + yXi*yEta
		P, Q     = cf.At(i, j)
		denom    = 2 * (A + B)
	)
	if denom < 1.e-300 {
		return g.Point(i, j)
	}
	x = (A*(xN+xS) + B*(xE+xW) + B*P*xXi + A*Q*xEta - 2*beta*xXiEta) / denom
	y = (A*(yN+yS) + B*(yE+yW) + B*P*yXi + A*Q*yEta - 2*beta*yXiEta) / denom
	return
}
