package decomposition

import (
	"github.com/systemiqofficial/steel-iq-sub003/pkg/domain/entities"
)

// ConvergenceChecker compares two successive full solutions under a
// max-norm (Chebyshev) relative-change criterion: one large relative swing
// on any single edge blocks convergence even when aggregate flow is
// stable.
type ConvergenceChecker struct {
	tolerance float64
}

// NewConvergenceChecker creates a checker with the given relative
// tolerance (0.01 means 1%).
func NewConvergenceChecker(tolerance float64) *ConvergenceChecker {
	return &ConvergenceChecker{tolerance: tolerance}
}

// MaxRelativeChange returns the largest per-edge relative change across
// the union of keys of two solutions. A flow appearing from zero counts as
// 1.0; two zeros count as 0.
func (c *ConvergenceChecker) MaxRelativeChange(previous, current entities.Solution) float64 {
	var maxChange float64
	seen := make(map[entities.EdgeKey]struct{}, len(previous)+len(current))

	check := func(edge entities.EdgeKey) {
		if _, done := seen[edge]; done {
			return
		}
		seen[edge] = struct{}{}
		change := relativeChange(previous.Flow(edge), current.Flow(edge))
		if change > maxChange {
			maxChange = change
		}
	}
	for edge := range previous {
		check(edge)
	}
	for edge := range current {
		check(edge)
	}
	return maxChange
}

// Converged reports whether two solutions are stable under the tolerance
func (c *ConvergenceChecker) Converged(previous, current entities.Solution) bool {
	return c.MaxRelativeChange(previous, current) <= c.tolerance
}

func relativeChange(prev, curr float64) float64 {
	diff := curr - prev
	if diff < 0 {
		diff = -diff
	}
	switch {
	case prev > 0:
		return diff / prev
	case diff > 0:
		return 1.0
	default:
		return 0.0
	}
}
