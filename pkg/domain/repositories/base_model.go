package repositories

import "github.com/systemiqofficial/steel-iq-sub003/pkg/domain/entities"

// BaseModel is the read-only view of the full network problem the
// decomposition approximates. It is consumed, never mutated: the solver
// owns nothing behind this interface and separate solver instances must be
// given separate copies for concurrent use.
//
// Centers and LegalAllocations must return stable, sorted orderings across
// calls; extraction determinism depends on it.
type BaseModel interface {
	// Centers returns every process center in a stable order
	Centers() []*entities.ProcessCenter

	// Center looks up a center by name
	Center(name string) (*entities.ProcessCenter, bool)

	// LegalAllocations returns the full permitted edge set in a stable order
	LegalAllocations() []entities.EdgeKey

	// Commodities returns the named commodities in a stable order
	Commodities() []entities.Commodity

	// Cost returns the per-unit transport/production cost of an edge,
	// 0 when the model carries none
	Cost(edge entities.EdgeKey) float64

	// Distance returns the distance in kilometers between two centers
	Distance(from, to string) float64

	// FlowEpsilon is the magnitude below which a flow is solver noise
	FlowEpsilon() float64
}
