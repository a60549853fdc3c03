// Package memory provides the in-memory BaseModel implementation used by
// the surrounding system and by tests.
package memory

import (
	"fmt"
	"math"
	"sort"

	"github.com/systemiqofficial/steel-iq-sub003/pkg/domain/entities"
	"github.com/systemiqofficial/steel-iq-sub003/pkg/domain/repositories"
)

const earthRadiusKM = 6371.0

// BaseModel holds the full network problem: centers, the legal edge set,
// per-edge costs, and pairwise distances. Centers and edges are kept in
// sorted order so every accessor returns a stable iteration order.
type BaseModel struct {
	centers     []*entities.ProcessCenter
	centerIndex map[string]int
	edges       []entities.EdgeKey
	commodities []entities.Commodity
	costs       map[entities.EdgeKey]float64
	distances   map[[2]string]float64
	flowEpsilon float64
}

// NewBaseModel creates a base model over the given centers and legal
// allocations. Every edge endpoint must name a known center. Costs default
// to 0 per edge; distances default to the haversine great-circle distance
// between center coordinates unless overridden with SetDistance.
func NewBaseModel(centers []*entities.ProcessCenter, edges []entities.EdgeKey, flowEpsilon float64) (*BaseModel, error) {
	if flowEpsilon < 0 {
		return nil, fmt.Errorf("flow epsilon cannot be negative, got %g", flowEpsilon)
	}

	m := &BaseModel{
		centers:     make([]*entities.ProcessCenter, 0, len(centers)),
		centerIndex: make(map[string]int, len(centers)),
		edges:       make([]entities.EdgeKey, 0, len(edges)),
		costs:       make(map[entities.EdgeKey]float64),
		distances:   make(map[[2]string]float64),
		flowEpsilon: flowEpsilon,
	}

	for _, c := range centers {
		if _, exists := m.centerIndex[c.Name]; exists {
			return nil, fmt.Errorf("duplicate center name: %s", c.Name)
		}
		m.centerIndex[c.Name] = len(m.centers)
		m.centers = append(m.centers, c)
	}
	sort.Slice(m.centers, func(i, j int) bool { return m.centers[i].Name < m.centers[j].Name })
	for i, c := range m.centers {
		m.centerIndex[c.Name] = i
	}

	commoditySet := make(map[entities.Commodity]struct{})
	for _, e := range edges {
		if _, ok := m.centerIndex[e.From]; !ok {
			return nil, fmt.Errorf("edge %s references unknown center %s", e, e.From)
		}
		if _, ok := m.centerIndex[e.To]; !ok {
			return nil, fmt.Errorf("edge %s references unknown center %s", e, e.To)
		}
		m.edges = append(m.edges, e)
		commoditySet[e.Commodity] = struct{}{}
	}
	sort.Slice(m.edges, func(i, j int) bool { return m.edges[i].Less(m.edges[j]) })

	for c := range commoditySet {
		m.commodities = append(m.commodities, c)
	}
	sort.Slice(m.commodities, func(i, j int) bool { return m.commodities[i] < m.commodities[j] })

	return m, nil
}

// Verify interface compliance
var _ repositories.BaseModel = (*BaseModel)(nil)

// SetCost records a per-unit cost for an edge
func (m *BaseModel) SetCost(edge entities.EdgeKey, cost float64) {
	m.costs[edge] = cost
}

// SetDistance overrides the computed distance between two centers,
// in kilometers, symmetrically.
func (m *BaseModel) SetDistance(from, to string, km float64) {
	m.distances[[2]string{from, to}] = km
	m.distances[[2]string{to, from}] = km
}

// Centers returns every process center sorted by name
func (m *BaseModel) Centers() []*entities.ProcessCenter {
	return m.centers
}

// Center looks up a center by name
func (m *BaseModel) Center(name string) (*entities.ProcessCenter, bool) {
	i, ok := m.centerIndex[name]
	if !ok {
		return nil, false
	}
	return m.centers[i], true
}

// LegalAllocations returns the sorted legal edge set
func (m *BaseModel) LegalAllocations() []entities.EdgeKey {
	return m.edges
}

// Commodities returns the sorted commodity names
func (m *BaseModel) Commodities() []entities.Commodity {
	return m.commodities
}

// Cost returns the per-unit cost of an edge, 0 when none was set
func (m *BaseModel) Cost(edge entities.EdgeKey) float64 {
	return m.costs[edge]
}

// Distance returns the distance between two centers in kilometers
func (m *BaseModel) Distance(from, to string) float64 {
	if km, ok := m.distances[[2]string{from, to}]; ok {
		return km
	}
	a, okA := m.Center(from)
	b, okB := m.Center(to)
	if !okA || !okB {
		return 0
	}
	return haversineKM(a.Location, b.Location)
}

// FlowEpsilon returns the non-zero-flow threshold
func (m *BaseModel) FlowEpsilon() float64 {
	return m.flowEpsilon
}

// haversineKM computes the great-circle distance between two locations
func haversineKM(a, b entities.Location) float64 {
	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLon := (b.Lon - a.Lon) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	return 2 * earthRadiusKM * math.Asin(math.Sqrt(h))
}
