package backend

import (
	"context"
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize/convex/lp"
)

// SimplexSolver solves LPs with gonum's dense simplex method. It is pure
// Go and fully deterministic, so Options.Seed is recorded but never
// consulted. Inequality rows are converted to equalities with slack
// columns before the simplex call.
type SimplexSolver struct {
	opts Options
}

// NewSimplexSolver creates a simplex backend with the given options
func NewSimplexSolver(opts Options) *SimplexSolver {
	return &SimplexSolver{opts: opts}
}

// Verify interface compliance
var _ Solver = (*SimplexSolver)(nil)

// Solve runs the simplex method on the problem. The context is checked
// before the (blocking, uninterruptible) simplex call; cancellation inside
// a single solve is not supported.
func (s *SimplexSolver) Solve(ctx context.Context, problem Problem) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{Status: StatusFailed}, err
	}
	if len(problem.C) == 0 {
		return Result{Status: StatusFailed}, fmt.Errorf("problem has no variables")
	}

	// With no constraint rows the LP is min c'x over x >= 0: the origin is
	// optimal unless some cost is negative, which makes it unbounded.
	if problem.G == nil && problem.A == nil {
		for _, cost := range problem.C {
			if cost < 0 {
				return Result{Status: StatusUnbounded}, lp.ErrUnbounded
			}
		}
		return Result{Status: StatusOptimal, X: make([]float64, problem.NumVariables())}, nil
	}

	c, a, b := toStandardForm(problem)

	obj, x, err := lp.Simplex(c, a, b, s.opts.Tolerance, nil)
	if err != nil {
		return Result{Status: classify(err)}, err
	}

	// Drop the slack columns; callers only know the original variables.
	vars := make([]float64, problem.NumVariables())
	copy(vars, x[:problem.NumVariables()])

	return Result{Status: StatusOptimal, Objective: obj, X: vars}, nil
}

// toStandardForm rewrites min c'x s.t. Gx<=h, Ax=b, x>=0 as the
// equality-only standard form the simplex routine expects, appending one
// non-negative slack variable per inequality row.
func toStandardForm(problem Problem) ([]float64, *mat.Dense, []float64) {
	nVar := problem.NumVariables()

	nIneq := 0
	if problem.G != nil {
		nIneq, _ = problem.G.Dims()
	}
	nEq := 0
	if problem.A != nil {
		nEq, _ = problem.A.Dims()
	}

	nNewVar := nVar + nIneq
	nRows := nEq + nIneq

	c := make([]float64, nNewVar)
	copy(c, problem.C)

	a := mat.NewDense(nRows, nNewVar, nil)
	b := make([]float64, nRows)

	for i := 0; i < nEq; i++ {
		for j := 0; j < nVar; j++ {
			a.Set(i, j, problem.A.At(i, j))
		}
		b[i] = problem.B[i]
	}
	for i := 0; i < nIneq; i++ {
		row := nEq + i
		for j := 0; j < nVar; j++ {
			a.Set(row, j, problem.G.At(i, j))
		}
		a.Set(row, nVar+i, 1) // slack column
		b[row] = problem.H[i]
	}

	return c, a, b
}

// classify maps gonum simplex errors onto backend statuses
func classify(err error) Status {
	switch {
	case errors.Is(err, lp.ErrInfeasible):
		return StatusInfeasible
	case errors.Is(err, lp.ErrUnbounded):
		return StatusUnbounded
	case errors.Is(err, lp.ErrSingular):
		return StatusSingular
	default:
		return StatusFailed
	}
}
