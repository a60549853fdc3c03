package decomposition

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	testnets "github.com/systemiqofficial/steel-iq-sub003/pkg/application/services/testing"
	"github.com/systemiqofficial/steel-iq-sub003/pkg/domain/entities"
	"github.com/systemiqofficial/steel-iq-sub003/pkg/domain/errors"
	"github.com/systemiqofficial/steel-iq-sub003/pkg/infrastructure/repositories/memory"
)

func TestExtract_Deterministic(t *testing.T) {
	model := testnets.BuildTwoCountryNetwork()
	extractor := NewCoreVariableExtractor(1000)

	first, err := extractor.Extract(model)
	require.NoError(t, err)
	second, err := extractor.Extract(model)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestExtract_RolePrecedenceOverDistance(t *testing.T) {
	// Two production centers in different countries fed by nearby mines:
	// the supply->production edges are major even though they are
	// geographically close, and the cross-border steel route is major too.
	model := testnets.BuildTwoCountryNetwork()
	extractor := NewCoreVariableExtractor(1000)

	set, err := extractor.Extract(model)
	require.NoError(t, err)

	assert.Len(t, set.MajorRoutes, 4)
	assert.Empty(t, set.PrimarySupply)
	assert.Len(t, set.Utilization, 2)

	assert.Contains(t, set.MajorRoutes, entities.EdgeKey{From: "mine-de", To: "plant-de", Commodity: testnets.IronOre})
	assert.Contains(t, set.MajorRoutes, entities.EdgeKey{From: "mine-nl", To: "plant-nl", Commodity: testnets.IronOre})
}

func TestExtract_PrimarySupply(t *testing.T) {
	// A short domestic supply->demand edge is not major under any rule and
	// becomes a primary-supply variable.
	supply, err := entities.NewProcessCenter("scrapyard", entities.RoleSupply, 40,
		entities.Location{Country: "DE", Lat: 51.0, Lon: 7.0}, []entities.Commodity{testnets.Steel})
	require.NoError(t, err)
	region, err := entities.NewProcessCenter("region", entities.RoleDemand, 40,
		entities.Location{Country: "DE", Lat: 51.2, Lon: 7.2}, []entities.Commodity{testnets.Steel})
	require.NoError(t, err)

	model, err := memory.NewBaseModel(
		[]*entities.ProcessCenter{supply, region},
		[]entities.EdgeKey{{From: "scrapyard", To: "region", Commodity: testnets.Steel}},
		1e-6,
	)
	require.NoError(t, err)

	set, err := NewCoreVariableExtractor(1000).Extract(model)
	require.NoError(t, err)

	assert.Empty(t, set.MajorRoutes)
	require.Len(t, set.PrimarySupply, 1)
	assert.Equal(t, "scrapyard", set.PrimarySupply[0].From)
	assert.Empty(t, set.Utilization)
}

func TestExtract_DistanceThreshold(t *testing.T) {
	// A long domestic demand->demand transfer is major purely on distance.
	near, err := entities.NewProcessCenter("near", entities.RoleDemand, 10,
		entities.Location{Country: "AU", Lat: -33.9, Lon: 151.2}, nil)
	require.NoError(t, err)
	far, err := entities.NewProcessCenter("far", entities.RoleDemand, 10,
		entities.Location{Country: "AU", Lat: -31.9, Lon: 115.9}, nil)
	require.NoError(t, err)

	model, err := memory.NewBaseModel(
		[]*entities.ProcessCenter{near, far},
		[]entities.EdgeKey{{From: "near", To: "far", Commodity: testnets.Steel}},
		1e-6,
	)
	require.NoError(t, err)

	set, err := NewCoreVariableExtractor(1000).Extract(model)
	require.NoError(t, err)
	assert.Len(t, set.MajorRoutes, 1)
}

func TestExtract_EmptyEdgeSet(t *testing.T) {
	center, err := entities.NewProcessCenter("plant", entities.RoleProduction, 80,
		entities.Location{Country: "DE"}, []entities.Commodity{testnets.Steel})
	require.NoError(t, err)
	model, err := memory.NewBaseModel([]*entities.ProcessCenter{center}, nil, 1e-6)
	require.NoError(t, err)

	_, err = NewCoreVariableExtractor(1000).Extract(model)
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.TypeConfiguration))
}
