package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

// ConvergenceStatus describes how the refinement loop ended
type ConvergenceStatus int

const (
	StatusConverged ConvergenceStatus = iota
	StatusMaxIterations
	StatusDiverging
	StatusFailed
)

// String method for ConvergenceStatus enum
func (s ConvergenceStatus) String() string {
	switch s {
	case StatusConverged:
		return "CONVERGED"
	case StatusMaxIterations:
		return "MAX_ITERATIONS"
	case StatusDiverging:
		return "DIVERGING"
	case StatusFailed:
		return "FAILED"
	default:
		return "Unknown"
	}
}

// DecompositionMetrics summarizes one solve: how hard the loop worked, how
// much smaller the reduced problem was, and how trustworthy the result is.
//
// AccuracyVsBaseline is nil unless a baseline solution was supplied to the
// validator. ReductionRatio is 1 - core/full: a typical network reduces by
// around 90%.
type DecompositionMetrics struct {
	Iterations         int
	Status             ConvergenceStatus
	CoreVariables      int
	FullVariables      int
	ReductionRatio     float64
	IterationDurations []time.Duration
	TotalSolveTime     time.Duration
	AccuracyVsBaseline *float64
	ViolationCount     int
	TotalCost          decimal.Decimal
}
