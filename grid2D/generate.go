package grid2D

import (
	"github.com/go-logr/logr"

	"github.com/notargets/airfoilgrid/geometry2D"
)

/*
Generate runs the elliptic pipeline on a counter-clockwise contour: the
algebraic initial grid, then the solver with its control functions and
convergence monitor. Errors follow Solve, configuration errors come back
before any sweep.
*/
func Generate(contour geometry2D.Contour, cfg Config, logger logr.Logger) (res *Result, err error) {
	var (
		solver *Solver
		g      *Grid
	)
	if solver, err = NewSolver(cfg, logger); err != nil {
		return
	}
	if g, err = Initialize(contour, cfg); err != nil {
		return
	}
	return solver.Solve(g)
}
