package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCommodity_Canonicalization(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected Commodity
	}{
		{"lower case passthrough", "iron ore", "iron ore"},
		{"mixed case folded", "Iron Ore", "iron ore"},
		{"whitespace trimmed", "  Scrap \t", "scrap"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			c, err := NewCommodity(tc.input)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, c)
		})
	}

	_, err := NewCommodity("   ")
	assert.Error(t, err)
}

func TestNewProcessCenter_Validation(t *testing.T) {
	loc := Location{Country: "DE", Lat: 51, Lon: 7}

	center, err := NewProcessCenter("plant", RoleProduction, 80, loc, []Commodity{"crude steel"})
	require.NoError(t, err)
	assert.True(t, center.Produces("crude steel"))
	assert.False(t, center.Produces("scrap"))

	_, err = NewProcessCenter("", RoleSupply, 10, loc, nil)
	assert.Error(t, err)

	_, err = NewProcessCenter("mine", RoleSupply, -1, loc, nil)
	assert.Error(t, err)

	_, err = NewProcessCenter("mine", Role(42), 10, loc, nil)
	assert.Error(t, err)
}

func TestNewBOMLine_Validation(t *testing.T) {
	line, err := NewBOMLine("iron ore", 1.5, map[Commodity]float64{"limestone": 0.25})
	require.NoError(t, err)
	assert.Equal(t, 1.5, line.Ratio)

	_, err = NewBOMLine("", 1.5, nil)
	assert.Error(t, err)

	_, err = NewBOMLine("iron ore", 0, nil)
	assert.Error(t, err)

	_, err = NewBOMLine("iron ore", 1.5, map[Commodity]float64{"limestone": -0.1})
	assert.Error(t, err)
}

func TestEdgeKey_Ordering(t *testing.T) {
	a := EdgeKey{From: "a", To: "b", Commodity: "x"}
	b := EdgeKey{From: "a", To: "b", Commodity: "y"}
	c := EdgeKey{From: "a", To: "c", Commodity: "x"}
	d := EdgeKey{From: "b", To: "a", Commodity: "x"}

	assert.True(t, a.Less(b))
	assert.True(t, b.Less(c))
	assert.True(t, c.Less(d))
	assert.False(t, d.Less(a))
}

func TestSolution_Accessors(t *testing.T) {
	s := NewSolution(4)
	s.Set(EdgeKey{From: "mine", To: "plant", Commodity: "iron ore"}, 45)
	s.Set(EdgeKey{From: "plant", To: "region", Commodity: "crude steel"}, 50)
	s.Set(EdgeKey{From: "quarry", To: "plant", Commodity: "limestone"}, 11.25)

	assert.Equal(t, 45.0, s.InboundFlow("plant", "iron ore"))
	assert.Equal(t, 11.25, s.InboundFlow("plant", "limestone"))
	assert.Equal(t, 50.0, s.OutboundFlow("plant"))
	assert.Equal(t, 0.0, s.Flow(EdgeKey{From: "x", To: "y", Commodity: "z"}))

	keys := s.SortedKeys()
	require.Len(t, keys, 3)
	assert.Equal(t, "mine", keys[0].From)
	assert.Equal(t, "plant", keys[1].From)
	assert.Equal(t, "quarry", keys[2].From)

	clone := s.Clone()
	clone.Set(EdgeKey{From: "mine", To: "plant", Commodity: "iron ore"}, 1)
	assert.Equal(t, 45.0, s.Flow(EdgeKey{From: "mine", To: "plant", Commodity: "iron ore"}))
}

func TestCoreVariableSet_FlowEdges(t *testing.T) {
	set := CoreVariableSet{
		Utilization:   []UtilizationKey{{Center: "plant", Product: "crude steel"}},
		MajorRoutes:   []EdgeKey{{From: "mine", To: "plant", Commodity: "iron ore"}},
		PrimarySupply: []EdgeKey{{From: "mine", To: "region", Commodity: "scrap"}},
	}

	assert.Equal(t, 3, set.Size())
	edges := set.FlowEdges()
	require.Len(t, edges, 2)
	assert.Equal(t, set.MajorRoutes[0], edges[0])
	assert.Equal(t, set.PrimarySupply[0], edges[1])
	assert.True(t, set.IsCoreEdge(set.PrimarySupply[0]))
	assert.False(t, set.IsCoreEdge(EdgeKey{From: "a", To: "b", Commodity: "c"}))
}
