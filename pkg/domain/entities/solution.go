package entities

import "sort"

// Solution maps edges to non-negative flows. A core solution covers only
// the reduced model's variables; a full solution additionally covers every
// legal allocation the decomposition derives analytically.
type Solution map[EdgeKey]float64

// NewSolution creates an empty solution with the given capacity hint
func NewSolution(capacity int) Solution {
	return make(Solution, capacity)
}

// Flow returns the flow on an edge, 0 when absent
func (s Solution) Flow(edge EdgeKey) float64 {
	return s[edge]
}

// Contains reports whether the edge carries an explicit value
func (s Solution) Contains(edge EdgeKey) bool {
	_, ok := s[edge]
	return ok
}

// Set assigns the flow on an edge
func (s Solution) Set(edge EdgeKey, flow float64) {
	s[edge] = flow
}

// Add accumulates flow onto an edge
func (s Solution) Add(edge EdgeKey, flow float64) {
	s[edge] += flow
}

// Clone returns an independent copy
func (s Solution) Clone() Solution {
	out := make(Solution, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// SortedKeys returns the edge keys in their total order. All reporting and
// comparison paths iterate through this so output is reproducible.
func (s Solution) SortedKeys() []EdgeKey {
	keys := make([]EdgeKey, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].Less(keys[j]) })
	return keys
}

// InboundFlow sums flow arriving at a center for one commodity
func (s Solution) InboundFlow(center string, commodity Commodity) float64 {
	var total float64
	for edge, flow := range s {
		if edge.To == center && edge.Commodity == commodity {
			total += flow
		}
	}
	return total
}

// OutboundFlow sums all flow leaving a center
func (s Solution) OutboundFlow(center string) float64 {
	var total float64
	for edge, flow := range s {
		if edge.From == center {
			total += flow
		}
	}
	return total
}
