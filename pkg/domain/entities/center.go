package entities

import "fmt"

// Role classifies a process center within the flow network
type Role int

const (
	RoleSupply Role = iota
	RoleProduction
	RoleDemand
)

// String method for Role enum
func (r Role) String() string {
	switch r {
	case RoleSupply:
		return "SUPPLY"
	case RoleProduction:
		return "PRODUCTION"
	case RoleDemand:
		return "DEMAND"
	default:
		return "Unknown"
	}
}

// Location places a center in a country at geographic coordinates.
// Country codes are compared verbatim; routes whose endpoints carry
// different codes are international.
type Location struct {
	Country string
	Lat     float64
	Lon     float64
}

// BOMLine describes one input line of a production center's bill of
// materials: the primary input commodity, how much of it one unit of
// output consumes, and the ratio table for dependent commodities whose
// requirement scales with the primary inbound flow.
type BOMLine struct {
	Primary    Commodity
	Ratio      float64
	Dependents map[Commodity]float64
}

// NewBOMLine creates a validated BOMLine
func NewBOMLine(primary Commodity, ratio float64, dependents map[Commodity]float64) (*BOMLine, error) {
	if primary == "" {
		return nil, fmt.Errorf("primary commodity cannot be empty")
	}
	if ratio <= 0 {
		return nil, fmt.Errorf("BOM ratio must be positive, got %g", ratio)
	}
	for dep, depRatio := range dependents {
		if dep == "" {
			return nil, fmt.Errorf("dependent commodity cannot be empty")
		}
		if depRatio < 0 {
			return nil, fmt.Errorf("dependent ratio for %s cannot be negative, got %g", dep, depRatio)
		}
	}
	return &BOMLine{
		Primary:    primary,
		Ratio:      ratio,
		Dependents: dependents,
	}, nil
}

// ProcessCenter is a node in the flow network: a mine or scrap source
// (SUPPLY), a plant (PRODUCTION), or a demand region (DEMAND).
//
// Products carries the commodities a SUPPLY center can provide, a
// PRODUCTION center makes, or a DEMAND center consumes. BOM is only
// meaningful for PRODUCTION centers.
type ProcessCenter struct {
	Name     string
	Role     Role
	Capacity float64
	Location Location
	Products []Commodity
	BOM      []BOMLine
}

// NewProcessCenter creates a validated ProcessCenter
func NewProcessCenter(name string, role Role, capacity float64, location Location, products []Commodity) (*ProcessCenter, error) {
	if name == "" {
		return nil, fmt.Errorf("center name cannot be empty")
	}
	if capacity < 0 {
		return nil, fmt.Errorf("capacity cannot be negative, got %g for %s", capacity, name)
	}
	if role != RoleSupply && role != RoleProduction && role != RoleDemand {
		return nil, fmt.Errorf("unknown role %d for %s", role, name)
	}
	return &ProcessCenter{
		Name:     name,
		Role:     role,
		Capacity: capacity,
		Location: location,
		Products: products,
	}, nil
}

// Produces reports whether the center lists the commodity among its products
func (c *ProcessCenter) Produces(commodity Commodity) bool {
	for _, p := range c.Products {
		if p == commodity {
			return true
		}
	}
	return false
}
