// Package testing builds the standard test networks shared across the
// decomposition test suites. Every edge carries a small distinct cost so
// the reduced LP has a unique optimum and assertions stay exact.
package testing

import (
	"github.com/systemiqofficial/steel-iq-sub003/pkg/domain/entities"
	"github.com/systemiqofficial/steel-iq-sub003/pkg/infrastructure/repositories/memory"
)

// Steel is the output commodity of every test network
var Steel = entities.MustCommodity("crude steel")

// IronOre is the primary feedstock of every test network
var IronOre = entities.MustCommodity("iron ore")

// Limestone is the dependent feedstock used in BOM tests
var Limestone = entities.MustCommodity("limestone")

// mustCreateCenter is a helper for tests - panics on validation error
func mustCreateCenter(name string, role entities.Role, capacity float64, location entities.Location, products ...entities.Commodity) *entities.ProcessCenter {
	center, err := entities.NewProcessCenter(name, role, capacity, location, products)
	if err != nil {
		panic(err)
	}
	return center
}

// mustCreateModel is a helper for tests - panics on validation error
func mustCreateModel(centers []*entities.ProcessCenter, edges []entities.EdgeKey) *memory.BaseModel {
	model, err := memory.NewBaseModel(centers, edges, 1e-6)
	if err != nil {
		panic(err)
	}
	return model
}

// BuildLinearChain builds one SUPPLY (cap 100) feeding one PRODUCTION
// (cap 80, BOM 1.5 iron ore per unit of steel) feeding one DEMAND center
// with the given demand, all in the same country within 1000 km.
func BuildLinearChain(demand float64) *memory.BaseModel {
	mine := mustCreateCenter("mine", entities.RoleSupply, 100,
		entities.Location{Country: "DE", Lat: 51.5, Lon: 7.5}, IronOre)
	plant := mustCreateCenter("plant", entities.RoleProduction, 80,
		entities.Location{Country: "DE", Lat: 51.2, Lon: 6.8}, Steel)
	region := mustCreateCenter("region", entities.RoleDemand, demand,
		entities.Location{Country: "DE", Lat: 50.9, Lon: 6.9}, Steel)

	line, err := entities.NewBOMLine(IronOre, 1.5, nil)
	if err != nil {
		panic(err)
	}
	plant.BOM = []entities.BOMLine{*line}

	model := mustCreateModel(
		[]*entities.ProcessCenter{mine, plant, region},
		[]entities.EdgeKey{
			{From: "mine", To: "plant", Commodity: IronOre},
			{From: "plant", To: "region", Commodity: Steel},
		},
	)
	model.SetCost(entities.EdgeKey{From: "mine", To: "plant", Commodity: IronOre}, 1)
	model.SetCost(entities.EdgeKey{From: "plant", To: "region", Commodity: Steel}, 2)
	return model
}

// BuildTwoCountryNetwork builds two PRODUCTION centers in different
// countries, each fed by a geographically close SUPPLY center, both
// shipping to one DEMAND center.
func BuildTwoCountryNetwork() *memory.BaseModel {
	mineDE := mustCreateCenter("mine-de", entities.RoleSupply, 200,
		entities.Location{Country: "DE", Lat: 51.5, Lon: 7.5}, IronOre)
	mineNL := mustCreateCenter("mine-nl", entities.RoleSupply, 200,
		entities.Location{Country: "NL", Lat: 51.9, Lon: 6.1}, IronOre)
	plantDE := mustCreateCenter("plant-de", entities.RoleProduction, 120,
		entities.Location{Country: "DE", Lat: 51.4, Lon: 7.0}, Steel)
	plantNL := mustCreateCenter("plant-nl", entities.RoleProduction, 120,
		entities.Location{Country: "NL", Lat: 51.9, Lon: 6.0}, Steel)
	region := mustCreateCenter("region", entities.RoleDemand, 150,
		entities.Location{Country: "DE", Lat: 51.2, Lon: 6.8}, Steel)

	model := mustCreateModel(
		[]*entities.ProcessCenter{mineDE, mineNL, plantDE, plantNL, region},
		[]entities.EdgeKey{
			{From: "mine-de", To: "plant-de", Commodity: IronOre},
			{From: "mine-nl", To: "plant-nl", Commodity: IronOre},
			{From: "plant-de", To: "region", Commodity: Steel},
			{From: "plant-nl", To: "region", Commodity: Steel},
		},
	)
	model.SetCost(entities.EdgeKey{From: "mine-de", To: "plant-de", Commodity: IronOre}, 1)
	model.SetCost(entities.EdgeKey{From: "mine-nl", To: "plant-nl", Commodity: IronOre}, 1)
	model.SetCost(entities.EdgeKey{From: "plant-de", To: "region", Commodity: Steel}, 2)
	model.SetCost(entities.EdgeKey{From: "plant-nl", To: "region", Commodity: Steel}, 3)
	return model
}

// BuildFeedstockNetwork extends the linear chain with a dependent
// commodity: producing steel from iron ore also draws limestone from a
// quarry at 0.25 per unit of inbound ore. The limestone flow has no legal
// edge on purpose; it only ever appears through secondary-feedstock
// derivation.
func BuildFeedstockNetwork(demand float64) *memory.BaseModel {
	mine := mustCreateCenter("mine", entities.RoleSupply, 100,
		entities.Location{Country: "DE", Lat: 51.5, Lon: 7.5}, IronOre)
	quarry := mustCreateCenter("quarry", entities.RoleSupply, 100,
		entities.Location{Country: "DE", Lat: 51.0, Lon: 7.0}, Limestone)
	plant := mustCreateCenter("plant", entities.RoleProduction, 80,
		entities.Location{Country: "DE", Lat: 51.2, Lon: 6.8}, Steel)
	region := mustCreateCenter("region", entities.RoleDemand, demand,
		entities.Location{Country: "DE", Lat: 50.9, Lon: 6.9}, Steel)

	line, err := entities.NewBOMLine(IronOre, 1.5, map[entities.Commodity]float64{Limestone: 0.25})
	if err != nil {
		panic(err)
	}
	plant.BOM = []entities.BOMLine{*line}

	model := mustCreateModel(
		[]*entities.ProcessCenter{mine, quarry, plant, region},
		[]entities.EdgeKey{
			{From: "mine", To: "plant", Commodity: IronOre},
			{From: "plant", To: "region", Commodity: Steel},
		},
	)
	model.SetCost(entities.EdgeKey{From: "mine", To: "plant", Commodity: IronOre}, 1)
	model.SetCost(entities.EdgeKey{From: "plant", To: "region", Commodity: Steel}, 2)
	return model
}
