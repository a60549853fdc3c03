package decomposition

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	testnets "github.com/systemiqofficial/steel-iq-sub003/pkg/application/services/testing"
	"github.com/systemiqofficial/steel-iq-sub003/pkg/domain/entities"
	"github.com/systemiqofficial/steel-iq-sub003/pkg/domain/errors"
	"github.com/systemiqofficial/steel-iq-sub003/pkg/infrastructure/repositories/memory"
)

func buildReduced(t *testing.T, model *memory.BaseModel) (*ReducedModel, *entities.CoreVariableSet) {
	t.Helper()
	core, err := NewCoreVariableExtractor(1000).Extract(model)
	require.NoError(t, err)
	reduced, err := NewReducedModelBuilder(10000, 0.9).Build(model, core)
	require.NoError(t, err)
	return reduced, core
}

func TestBuild_LinearChainShape(t *testing.T) {
	model := testnets.BuildLinearChain(50)
	reduced, core := buildReduced(t, model)

	// 1 utilization + 2 flows + 1 demand slack.
	assert.Equal(t, 3, core.Size())
	assert.Equal(t, 4, reduced.NumVariables())
	assert.Equal(t, []string{"region"}, reduced.SlackCenters())

	problem := reduced.Problem()
	require.NotNil(t, problem.G)
	rows, cols := problem.G.Dims()
	// u<=1, utilization linking, capacity, material balance.
	assert.Equal(t, 4, rows)
	assert.Equal(t, 4, cols)

	require.NotNil(t, problem.A)
	eqRows, _ := problem.A.Dims()
	assert.Equal(t, 1, eqRows)

	// Objective carries edge costs on flows and the penalty on slack.
	assert.Equal(t, 0.0, problem.C[0])
	assert.Equal(t, 1.0, problem.C[1])
	assert.Equal(t, 2.0, problem.C[2])
	assert.Equal(t, 10000.0, problem.C[3])
}

func TestBuild_DemandRowOmittedWithoutMajorInbound(t *testing.T) {
	// Demand reachable only through a primary-supply edge gets no demand
	// constraint and no slack variable.
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

	reduced, _ := buildReduced(t, model)

	assert.Empty(t, reduced.SlackCenters())
	assert.Equal(t, 1, reduced.NumVariables())
	problem := reduced.Problem()
	assert.Nil(t, problem.A)
	assert.Nil(t, problem.G)
}

func TestBuild_InvalidCapacity(t *testing.T) {
	model := testnets.BuildLinearChain(50)
	plant, ok := model.Center("plant")
	require.True(t, ok)
	plant.Capacity = math.NaN()

	core, err := NewCoreVariableExtractor(1000).Extract(model)
	require.NoError(t, err)
	_, err = NewReducedModelBuilder(10000, 0.9).Build(model, core)
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.TypeConfiguration))
}

func TestReducedModel_WarmStartRoundTrip(t *testing.T) {
	model := testnets.BuildLinearChain(50)
	reduced, core := buildReduced(t, model)

	previous := entities.NewSolution(2)
	previous.Set(core.MajorRoutes[0], 45)
	previous.Set(core.MajorRoutes[1], 50)

	reduced.SetWarmStart(previous)
	problem := reduced.Problem()
	require.Len(t, problem.Initial, 4)
	assert.Equal(t, 45.0, problem.Initial[1])
	assert.Equal(t, 50.0, problem.Initial[2])

	reduced.SetWarmStart(nil)
	assert.Nil(t, reduced.Problem().Initial)
}

func TestReducedModel_DecodeFlows(t *testing.T) {
	model := testnets.BuildLinearChain(50)
	reduced, core := buildReduced(t, model)

	solution := reduced.DecodeFlows([]float64{0.6, 45, 50, 0})
	require.Len(t, solution, 2)
	assert.Equal(t, 45.0, solution.Flow(core.MajorRoutes[0]))
	assert.Equal(t, 50.0, solution.Flow(core.MajorRoutes[1]))
}
