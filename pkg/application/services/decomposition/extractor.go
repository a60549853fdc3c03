// Package decomposition implements the iterative decomposition solver: a
// small set of core decision variables is optimized exactly while the
// remaining flows are derived analytically, repeating until the derived
// solution stabilizes.
package decomposition

import (
	"sort"

	"github.com/systemiqofficial/steel-iq-sub003/pkg/domain/entities"
	"github.com/systemiqofficial/steel-iq-sub003/pkg/domain/errors"
	"github.com/systemiqofficial/steel-iq-sub003/pkg/domain/repositories"
)

// CoreVariableExtractor classifies network edges and plants into the core
// decision variables the reduced model optimizes.
type CoreVariableExtractor struct {
	majorRouteDistanceKM float64
}

// NewCoreVariableExtractor creates an extractor with the given major-route
// distance threshold in kilometers.
func NewCoreVariableExtractor(majorRouteDistanceKM float64) *CoreVariableExtractor {
	return &CoreVariableExtractor{majorRouteDistanceKM: majorRouteDistanceKM}
}

// Extract builds the core variable set from the base model:
//
//   - one utilization variable per (production center, distinct product);
//   - a major-route variable per edge that is supply→production or
//     production→demand (unconditionally), crosses a country boundary, or
//     spans more than the distance threshold;
//   - a primary-supply variable per remaining supply-sourced edge.
//
// The base model's orderings are stable and the groups are re-sorted, so
// two extractions from an unchanged model are identical. An empty legal
// allocation set is a configuration error.
func (x *CoreVariableExtractor) Extract(model repositories.BaseModel) (*entities.CoreVariableSet, error) {
	edges := model.LegalAllocations()
	if len(edges) == 0 {
		return nil, errors.Configuration("base model has no legal allocations")
	}

	set := &entities.CoreVariableSet{}

	for _, center := range model.Centers() {
		if center.Role != entities.RoleProduction {
			continue
		}
		seen := make(map[entities.Commodity]struct{}, len(center.Products))
		for _, product := range center.Products {
			if _, dup := seen[product]; dup {
				continue
			}
			seen[product] = struct{}{}
			set.Utilization = append(set.Utilization, entities.UtilizationKey{
				Center:  center.Name,
				Product: product,
			})
		}
	}

	for _, edge := range edges {
		if x.isMajorRoute(model, edge) {
			set.MajorRoutes = append(set.MajorRoutes, edge)
			continue
		}
		from, ok := model.Center(edge.From)
		if ok && from.Role == entities.RoleSupply {
			set.PrimarySupply = append(set.PrimarySupply, edge)
		}
	}

	sort.Slice(set.Utilization, func(i, j int) bool { return set.Utilization[i].Less(set.Utilization[j]) })
	sort.Slice(set.MajorRoutes, func(i, j int) bool { return set.MajorRoutes[i].Less(set.MajorRoutes[j]) })
	sort.Slice(set.PrimarySupply, func(i, j int) bool { return set.PrimarySupply[i].Less(set.PrimarySupply[j]) })

	return set, nil
}

// isMajorRoute applies the classification rules. The role-based rules fire
// unconditionally and take precedence over country and distance.
func (x *CoreVariableExtractor) isMajorRoute(model repositories.BaseModel, edge entities.EdgeKey) bool {
	from, okFrom := model.Center(edge.From)
	to, okTo := model.Center(edge.To)
	if !okFrom || !okTo {
		return false
	}

	if from.Role == entities.RoleSupply && to.Role == entities.RoleProduction {
		return true
	}
	if from.Role == entities.RoleProduction && to.Role == entities.RoleDemand {
		return true
	}
	if from.Location.Country != to.Location.Country {
		return true
	}
	return model.Distance(edge.From, edge.To) > x.majorRouteDistanceKM
}
