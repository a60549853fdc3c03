// Package dto carries the caller-facing results of a decomposition solve.
package dto

import (
	"github.com/shopspring/decimal"

	"github.com/systemiqofficial/steel-iq-sub003/pkg/domain/entities"
)

// Allocation is one resolved flow: edge keys translated back to process
// center objects, with the flow's unit cost and extended cost. Extended
// costs are decimal so report totals do not accumulate float drift.
type Allocation struct {
	From      *entities.ProcessCenter
	To        *entities.ProcessCenter
	Commodity entities.Commodity
	Flow      float64
	UnitCost  float64
	Cost      decimal.Decimal
}

// SolveResult is everything one solve returns: the allocations, the
// decomposition metrics, and the advisory validation report outcome.
type SolveResult struct {
	Allocations []Allocation
	Metrics     entities.DecompositionMetrics

	// ValidationPassed mirrors the validator outcome; a false value with
	// status MAX_ITERATIONS means "degraded, use with caution", not a
	// solve failure.
	ValidationPassed bool
}

// TotalFlow sums all allocated flow
func (r *SolveResult) TotalFlow() float64 {
	var total float64
	for _, a := range r.Allocations {
		total += a.Flow
	}
	return total
}
