package decomposition

import (
	"github.com/systemiqofficial/steel-iq-sub003/pkg/domain/entities"
)

// DerivationStrategy decides the two policies the derived-flow expansion
// leaves open: what flow a non-core (minor) route carries, and which
// supplier covers a dependent-commodity requirement. Both default policies
// are deliberate simplifications a real network-flow algorithm could
// replace, which is why they are injectable.
type DerivationStrategy interface {
	// MinorRouteFlow returns the flow to assign to a minor route. ok=false
	// leaves the edge undefined.
	MinorRouteFlow(edge entities.EdgeKey, core entities.Solution) (flow float64, ok bool)

	// SelectSupplier picks the supply center that covers a dependent
	// commodity requirement. candidates is in the base model's stable
	// order and contains only supply centers producing the commodity.
	SelectSupplier(commodity entities.Commodity, candidates []*entities.ProcessCenter) (*entities.ProcessCenter, bool)
}

// defaultStrategy: minor routes carry zero flow, and the first matching
// supplier wins regardless of cost.
type defaultStrategy struct{}

// NewDefaultStrategy returns the default derivation policy
func NewDefaultStrategy() DerivationStrategy {
	return defaultStrategy{}
}

func (defaultStrategy) MinorRouteFlow(entities.EdgeKey, entities.Solution) (float64, bool) {
	return 0, true
}

func (defaultStrategy) SelectSupplier(_ entities.Commodity, candidates []*entities.ProcessCenter) (*entities.ProcessCenter, bool) {
	if len(candidates) == 0 {
		return nil, false
	}
	return candidates[0], true
}
