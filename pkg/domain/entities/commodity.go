package entities

import (
	"fmt"
	"strings"
)

// Commodity is a named material or energy carrier flowing between process
// centers. Names are case-insensitive; NewCommodity canonicalizes to lower
// case so "Iron Ore" and "iron ore" compare equal as map keys.
type Commodity string

// NewCommodity creates a canonicalized commodity name
func NewCommodity(name string) (Commodity, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return "", fmt.Errorf("commodity name cannot be empty")
	}
	return Commodity(strings.ToLower(trimmed)), nil
}

// MustCommodity creates a commodity and panics on invalid input. Intended
// for literals in tests and example builders.
func MustCommodity(name string) Commodity {
	c, err := NewCommodity(name)
	if err != nil {
		panic(err)
	}
	return c
}

func (c Commodity) String() string {
	return string(c)
}
