package entities

// UtilizationKey identifies a plant-utilization decision variable: the
// fraction of a production center's capacity devoted to one product.
type UtilizationKey struct {
	Center  string
	Product Commodity
}

// Less orders utilization keys by center then product
func (k UtilizationKey) Less(other UtilizationKey) bool {
	if k.Center != other.Center {
		return k.Center < other.Center
	}
	return k.Product < other.Product
}

// CoreVariableSet holds the decision variables retained in the reduced
// optimization problem. The three groups are disjoint: an edge is either a
// major route or a primary supply, never both, and utilization keys live in
// a separate key space. All slices are sorted so repeated extraction from
// an unchanged base model is byte-identical.
type CoreVariableSet struct {
	Utilization   []UtilizationKey
	MajorRoutes   []EdgeKey
	PrimarySupply []EdgeKey
}

// Size returns the total number of core decision variables
func (s *CoreVariableSet) Size() int {
	return len(s.Utilization) + len(s.MajorRoutes) + len(s.PrimarySupply)
}

// FlowEdges returns major routes followed by primary supplies, the fixed
// variable ordering the reduced model and warm starts rely on.
func (s *CoreVariableSet) FlowEdges() []EdgeKey {
	edges := make([]EdgeKey, 0, len(s.MajorRoutes)+len(s.PrimarySupply))
	edges = append(edges, s.MajorRoutes...)
	edges = append(edges, s.PrimarySupply...)
	return edges
}

// IsCoreEdge reports whether the edge is a major route or primary supply
func (s *CoreVariableSet) IsCoreEdge(edge EdgeKey) bool {
	for _, e := range s.MajorRoutes {
		if e == edge {
			return true
		}
	}
	for _, e := range s.PrimarySupply {
		if e == edge {
			return true
		}
	}
	return false
}
