package entities

import "fmt"

// EdgeKey identifies a legal allocation: a permitted (from, to, commodity)
// route in the network. It is comparable and usable as a map key.
type EdgeKey struct {
	From      string
	To        string
	Commodity Commodity
}

// NewEdgeKey creates a validated EdgeKey
func NewEdgeKey(from, to string, commodity Commodity) (EdgeKey, error) {
	if from == "" {
		return EdgeKey{}, fmt.Errorf("edge source cannot be empty")
	}
	if to == "" {
		return EdgeKey{}, fmt.Errorf("edge destination cannot be empty")
	}
	if commodity == "" {
		return EdgeKey{}, fmt.Errorf("edge commodity cannot be empty")
	}
	return EdgeKey{From: from, To: to, Commodity: commodity}, nil
}

// Less defines the total order used wherever edges must be iterated
// deterministically: by source, then destination, then commodity.
func (e EdgeKey) Less(other EdgeKey) bool {
	if e.From != other.From {
		return e.From < other.From
	}
	if e.To != other.To {
		return e.To < other.To
	}
	return e.Commodity < other.Commodity
}

// SelfLoop reports whether the edge starts and ends at the same center
func (e EdgeKey) SelfLoop() bool {
	return e.From == e.To
}

func (e EdgeKey) String() string {
	return fmt.Sprintf("%s->%s[%s]", e.From, e.To, e.Commodity)
}
