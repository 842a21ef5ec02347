package grid2D

import (
	"errors"
	"fmt"
)

var (
	// ErrConfiguration marks invalid geometry or parameters, found before any sweep runs
	ErrConfiguration = errors.New("grid2D: invalid configuration")

	// ErrDivergence marks a residual that became non-finite or kept growing past the safety threshold
	ErrDivergence = errors.New("grid2D: elliptic solve diverged")

	// ErrMaxIterations marks a solve that hit the iteration cap above tolerance. The grid is usable.
	ErrMaxIterations = errors.New("grid2D: iteration limit reached before convergence")

	// ErrDegenerateGrid marks a grid with folded or inverted cells
	ErrDegenerateGrid = errors.New("grid2D: degenerate grid (folded cells)")
)

type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s: %s: %s", ErrConfiguration, e.Field, e.Reason)
}

func (e *ConfigError) Unwrap() error { return ErrConfiguration }

func configErrorf(field, format string, args ...interface{}) error {
	return &ConfigError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// SolveError carries the state of a solve that stopped without converging
type SolveError struct {
	Err        error
	Iterations int
	Residual   float64
	Grid       *Grid // partial grid, owned by the caller
}

func (e *SolveError) Error() string {
	return fmt.Sprintf("%s after %d iterations, residual = %8.5e", e.Err, e.Iterations, e.Residual)
}

func (e *SolveError) Unwrap() error { return e.Err }

type DegenerateGridError struct {
	Cells []Cell
	Grid  *Grid
}

func (e *DegenerateGridError) Error() string {
	var first string
	if len(e.Cells) != 0 {
		first = fmt.Sprintf(", first at (i,j) = (%d,%d)", e.Cells[0].I, e.Cells[0].J)
	}
	return fmt.Sprintf("%s: %d folded cells%s", ErrDegenerateGrid, len(e.Cells), first)
}

func (e *DegenerateGridError) Unwrap() error { return ErrDegenerateGrid }
