package decomposition

import (
	"sort"

	"github.com/systemiqofficial/steel-iq-sub003/pkg/domain/entities"
	"github.com/systemiqofficial/steel-iq-sub003/pkg/domain/repositories"
)

// DerivedFlowComputer expands a core solution into a full solution. Core
// entries are preserved unchanged; every other legal allocation ends up
// with an explicit value or is deliberately left undefined.
type DerivedFlowComputer struct {
	majorRouteDistanceKM float64
	strategy             DerivationStrategy
}

// NewDerivedFlowComputer creates a computer using the given minor-route /
// supplier strategy.
func NewDerivedFlowComputer(majorRouteDistanceKM float64, strategy DerivationStrategy) *DerivedFlowComputer {
	return &DerivedFlowComputer{
		majorRouteDistanceKM: majorRouteDistanceKM,
		strategy:             strategy,
	}
}

// Compute derives the full solution from a core solution, in order:
//
//  1. plant production totals per production center (logged and used for
//     reporting; derived from outbound core flows);
//  2. minor routes: every legal edge absent from the core solution gets
//     the strategy's flow, except international or above-threshold edges,
//     which must already be core or are legitimately absent and stay
//     undefined;
//  3. secondary feedstock: per production center and BOM line with a
//     dependent-ratio table, the inbound flow of the line's primary
//     commodity times each dependent ratio is attributed to the supplier
//     the strategy selects.
//
// The returned solution is a superset of the core solution.
func (d *DerivedFlowComputer) Compute(model repositories.BaseModel, core entities.Solution) entities.Solution {
	full := core.Clone()

	for _, edge := range model.LegalAllocations() {
		if full.Contains(edge) {
			continue
		}
		if d.beyondMinorReach(model, edge) {
			continue
		}
		if flow, ok := d.strategy.MinorRouteFlow(edge, core); ok {
			full.Set(edge, flow)
		}
	}

	d.attributeSecondaryFeedstock(model, core, full)
	return full
}

// ProductionTotals sums outbound core flow per production center, 0 when a
// plant ships nothing.
func (d *DerivedFlowComputer) ProductionTotals(model repositories.BaseModel, core entities.Solution) map[string]float64 {
	totals := make(map[string]float64)
	for _, center := range model.Centers() {
		if center.Role == entities.RoleProduction {
			totals[center.Name] = core.OutboundFlow(center.Name)
		}
	}
	return totals
}

// beyondMinorReach reports whether the edge is international or longer
// than the major-route threshold and therefore not assignable as minor.
func (d *DerivedFlowComputer) beyondMinorReach(model repositories.BaseModel, edge entities.EdgeKey) bool {
	from, okFrom := model.Center(edge.From)
	to, okTo := model.Center(edge.To)
	if !okFrom || !okTo {
		return true
	}
	if from.Location.Country != to.Location.Country {
		return true
	}
	return model.Distance(edge.From, edge.To) > d.majorRouteDistanceKM
}

// attributeSecondaryFeedstock adds the dependent-commodity requirements
// implied by each plant's inbound primary flow. Dependent commodities are
// walked in sorted order and the solution accumulates, so the expansion is
// deterministic and safe even if an attributed edge already exists.
func (d *DerivedFlowComputer) attributeSecondaryFeedstock(model repositories.BaseModel, core entities.Solution, full entities.Solution) {
	for _, center := range model.Centers() {
		if center.Role != entities.RoleProduction {
			continue
		}
		for _, line := range center.BOM {
			if len(line.Dependents) == 0 {
				continue
			}
			primaryInbound := core.InboundFlow(center.Name, line.Primary)
			if primaryInbound <= 0 {
				continue
			}

			dependents := make([]entities.Commodity, 0, len(line.Dependents))
			for dep := range line.Dependents {
				dependents = append(dependents, dep)
			}
			sort.Slice(dependents, func(i, j int) bool { return dependents[i] < dependents[j] })

			for _, dep := range dependents {
				required := primaryInbound * line.Dependents[dep]
				if required <= 0 {
					continue
				}
				supplier, ok := d.strategy.SelectSupplier(dep, d.suppliersOf(model, dep))
				if !ok {
					continue
				}
				full.Add(entities.EdgeKey{From: supplier.Name, To: center.Name, Commodity: dep}, required)
			}
		}
	}
}

// suppliersOf returns the supply centers producing a commodity, in the
// base model's stable order.
func (d *DerivedFlowComputer) suppliersOf(model repositories.BaseModel, commodity entities.Commodity) []*entities.ProcessCenter {
	var candidates []*entities.ProcessCenter
	for _, center := range model.Centers() {
		if center.Role == entities.RoleSupply && center.Produces(commodity) {
			candidates = append(candidates, center)
		}
	}
	return candidates
}
