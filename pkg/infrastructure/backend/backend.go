// Package backend abstracts the LP solver the decomposition iterates
// against. The reduced model is handed over in the general form
//
//	minimize  c^T x
//	s.t.      G x <= h   (optional)
//	          A x  = b   (optional)
//	          x >= 0
//
// which matches what simplex-family backends consume after slack
// conversion. Implementations must be deterministic for a fixed Options
// value so repeated solves over an unchanged model reproduce bit-identical
// results.
package backend

import (
	"context"

	"gonum.org/v1/gonum/mat"
)

// Status is the backend's termination status
type Status string

const (
	StatusOptimal    Status = "optimal"
	StatusInfeasible Status = "infeasible"
	StatusUnbounded  Status = "unbounded"
	StatusSingular   Status = "singular"
	StatusFailed     Status = "failed"
)

// Problem is one LP instance in general form. Initial optionally carries
// per-variable starting values; backends that cannot use a starting point
// ignore it, so callers must treat it as a hint only.
type Problem struct {
	C []float64

	// G x <= h, both nil when the problem has no inequality rows
	G *mat.Dense
	H []float64

	// A x = b, both nil when the problem has no equality rows
	A *mat.Dense
	B []float64

	Initial []float64
}

// NumVariables returns the problem's variable count
func (p Problem) NumVariables() int {
	return len(p.C)
}

// Result is a backend solution
type Result struct {
	Status    Status
	Objective float64
	X         []float64
}

// Options configures a backend. Seed pins any internal randomization so
// repeated runs are reproducible; purely deterministic backends record it
// without consulting it. Tolerance is the pivot/feasibility tolerance, 0
// meaning the backend default.
type Options struct {
	Seed      int64
	Tolerance float64
}

// Solver is the LP backend contract. A non-nil error always accompanies a
// non-optimal status; the result still carries the status for reporting.
type Solver interface {
	Solve(ctx context.Context, problem Problem) (Result, error)
}
