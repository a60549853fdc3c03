package decomposition

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/systemiqofficial/steel-iq-sub003/pkg/domain/entities"
	"github.com/systemiqofficial/steel-iq-sub003/pkg/domain/repositories"
)

// ViolationKind classifies a validation finding
type ViolationKind int

const (
	ViolationCapacity ViolationKind = iota
	ViolationDemandShortfall
	ViolationNegativeFlow
	ViolationBaselineDeviation
)

// String method for ViolationKind enum
func (k ViolationKind) String() string {
	switch k {
	case ViolationCapacity:
		return "CAPACITY"
	case ViolationDemandShortfall:
		return "DEMAND_SHORTFALL"
	case ViolationNegativeFlow:
		return "NEGATIVE_FLOW"
	case ViolationBaselineDeviation:
		return "BASELINE_DEVIATION"
	default:
		return "Unknown"
	}
}

// Violation is one validation finding
type Violation struct {
	Kind    ViolationKind
	Center  string
	Edge    *entities.EdgeKey
	Amount  float64
	Message string
}

// ValidationReport accumulates every finding for one solution. Demand
// shortfalls are informational: the optimization's slack variables permit
// them by construction, so they do not fail the report on their own.
type ValidationReport struct {
	Violations   []Violation
	MaxDeviation float64
	Passed       bool
}

// SolutionValidator checks a full solution against the base model's
// capacities and demands, and optionally against a baseline solution. It
// accumulates without short-circuiting and never returns an error.
type SolutionValidator struct {
	tolerance float64
	logger    *zap.Logger
}

// NewSolutionValidator creates a validator. tolerance bounds the
// acceptable max relative deviation from a baseline solution (same
// criterion as the convergence check).
func NewSolutionValidator(tolerance float64, logger *zap.Logger) *SolutionValidator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SolutionValidator{tolerance: tolerance, logger: logger}
}

// Validate checks capacity, demand coverage, and non-negativity, plus the
// baseline deviation when baseline is non-nil. The report fails on
// capacity violations, negative flows, or excessive baseline deviation;
// demand shortfalls are logged but advisory.
func (v *SolutionValidator) Validate(model repositories.BaseModel, solution entities.Solution, baseline entities.Solution) ValidationReport {
	report := ValidationReport{Passed: true}
	epsilon := model.FlowEpsilon()

	for _, center := range model.Centers() {
		switch center.Role {
		case entities.RoleSupply, entities.RoleProduction:
			outgoing := solution.OutboundFlow(center.Name)
			if outgoing > center.Capacity+epsilon {
				report.Violations = append(report.Violations, Violation{
					Kind:    ViolationCapacity,
					Center:  center.Name,
					Amount:  outgoing - center.Capacity,
					Message: fmt.Sprintf("center %s ships %.4f over capacity %.4f", center.Name, outgoing, center.Capacity),
				})
				report.Passed = false
			}
		case entities.RoleDemand:
			incoming := v.primaryInbound(center, solution)
			if incoming < center.Capacity-epsilon {
				report.Violations = append(report.Violations, Violation{
					Kind:    ViolationDemandShortfall,
					Center:  center.Name,
					Amount:  center.Capacity - incoming,
					Message: fmt.Sprintf("center %s receives %.4f of demanded %.4f", center.Name, incoming, center.Capacity),
				})
			}
		}
	}

	for _, edge := range solution.SortedKeys() {
		flow := solution.Flow(edge)
		if flow < -epsilon {
			e := edge
			report.Violations = append(report.Violations, Violation{
				Kind:    ViolationNegativeFlow,
				Edge:    &e,
				Amount:  flow,
				Message: fmt.Sprintf("edge %s carries negative flow %.4f", edge, flow),
			})
			report.Passed = false
		}
	}

	if baseline != nil {
		checker := NewConvergenceChecker(v.tolerance)
		report.MaxDeviation = checker.MaxRelativeChange(baseline, solution)
		if report.MaxDeviation > v.tolerance {
			report.Violations = append(report.Violations, Violation{
				Kind:    ViolationBaselineDeviation,
				Amount:  report.MaxDeviation,
				Message: fmt.Sprintf("max relative deviation %.4f exceeds tolerance %.4f", report.MaxDeviation, v.tolerance),
			})
			report.Passed = false
		}
	}

	for _, violation := range report.Violations {
		v.logger.Warn("validation finding",
			zap.String("kind", violation.Kind.String()),
			zap.String("detail", violation.Message))
	}
	return report
}

// primaryInbound sums inbound flow of the commodities a demand center
// consumes; when the center lists no products, all inbound flow counts.
func (v *SolutionValidator) primaryInbound(center *entities.ProcessCenter, solution entities.Solution) float64 {
	if len(center.Products) == 0 {
		var total float64
		for edge, flow := range solution {
			if edge.To == center.Name {
				total += flow
			}
		}
		return total
	}
	var total float64
	for _, product := range center.Products {
		total += solution.InboundFlow(center.Name, product)
	}
	return total
}
