package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/systemiqofficial/steel-iq-sub003/internal/logging"
	"github.com/systemiqofficial/steel-iq-sub003/pkg/application/services/decomposition"
	"github.com/systemiqofficial/steel-iq-sub003/pkg/domain/entities"
	"github.com/systemiqofficial/steel-iq-sub003/pkg/infrastructure/events"
	"github.com/systemiqofficial/steel-iq-sub003/pkg/infrastructure/repositories/memory"
)

func main() {
	// Command line flags
	var (
		iterations = flag.Int("iterations", 8, "Maximum refinement iterations")
		tolerance  = flag.Float64("tolerance", 0.01, "Convergence tolerance (max relative change)")
		distance   = flag.Float64("major-km", 1000, "Major-route distance threshold in kilometers")
		warmStart  = flag.Bool("warm-start", true, "Warm-start each iteration from the previous solution")
		format     = flag.String("format", "text", "Output format: text, json")
		verbose    = flag.Bool("verbose", false, "Enable verbose output")
	)

	flag.Parse()

	logCfg := logging.DefaultConfig()
	if *verbose {
		logCfg.Level = "debug"
	}
	logger := logging.New(logCfg)
	defer func() { _ = logger.Sync() }()

	config := decomposition.DefaultConfig()
	config.MaxIterations = *iterations
	config.ConvergenceTolerance = *tolerance
	config.MajorRouteDistanceKM = *distance
	config.EnableWarmStart = *warmStart

	store := events.NewInMemoryStore()
	solver, err := decomposition.NewSolverWithConfig(config,
		decomposition.WithLogger(logger),
		decomposition.WithEventStore(store),
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	model, err := buildDemoNetwork()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	result, err := solver.Solve(context.Background(), model)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := renderResult(result, *format); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// buildDemoNetwork assembles a small two-country steel network: iron ore
// and scrap supply feeding two plants that ship crude steel to a pair of
// demand regions.
func buildDemoNetwork() (*memory.BaseModel, error) {
	ironOre := entities.MustCommodity("iron ore")
	scrap := entities.MustCommodity("scrap")
	limestone := entities.MustCommodity("limestone")
	steel := entities.MustCommodity("crude steel")

	mine, err := entities.NewProcessCenter("pilbara-mine", entities.RoleSupply, 2400,
		entities.Location{Country: "AU", Lat: -22.6, Lon: 117.8}, []entities.Commodity{ironOre})
	if err != nil {
		return nil, err
	}
	scrapYard, err := entities.NewProcessCenter("kwinana-scrap", entities.RoleSupply, 400,
		entities.Location{Country: "AU", Lat: -32.2, Lon: 115.8}, []entities.Commodity{scrap, limestone})
	if err != nil {
		return nil, err
	}
	plantAU, err := entities.NewProcessCenter("whyalla-works", entities.RoleProduction, 1200,
		entities.Location{Country: "AU", Lat: -33.0, Lon: 137.6}, []entities.Commodity{steel})
	if err != nil {
		return nil, err
	}
	plantJP, err := entities.NewProcessCenter("kimitsu-works", entities.RoleProduction, 900,
		entities.Location{Country: "JP", Lat: 35.3, Lon: 139.9}, []entities.Commodity{steel})
	if err != nil {
		return nil, err
	}
	line, err := entities.NewBOMLine(ironOre, 1.6, map[entities.Commodity]float64{limestone: 0.25})
	if err != nil {
		return nil, err
	}
	plantAU.BOM = []entities.BOMLine{*line}
	plantJP.BOM = []entities.BOMLine{*line}

	demandAU, err := entities.NewProcessCenter("melbourne-region", entities.RoleDemand, 800,
		entities.Location{Country: "AU", Lat: -37.8, Lon: 145.0}, []entities.Commodity{steel})
	if err != nil {
		return nil, err
	}
	demandJP, err := entities.NewProcessCenter("tokyo-region", entities.RoleDemand, 700,
		entities.Location{Country: "JP", Lat: 35.7, Lon: 139.7}, []entities.Commodity{steel})
	if err != nil {
		return nil, err
	}

	centers := []*entities.ProcessCenter{mine, scrapYard, plantAU, plantJP, demandAU, demandJP}
	edges := []entities.EdgeKey{
		{From: "pilbara-mine", To: "whyalla-works", Commodity: ironOre},
		{From: "pilbara-mine", To: "kimitsu-works", Commodity: ironOre},
		{From: "kwinana-scrap", To: "whyalla-works", Commodity: scrap},
		{From: "kwinana-scrap", To: "whyalla-works", Commodity: limestone},
		{From: "kwinana-scrap", To: "kimitsu-works", Commodity: limestone},
		{From: "whyalla-works", To: "melbourne-region", Commodity: steel},
		{From: "whyalla-works", To: "tokyo-region", Commodity: steel},
		{From: "kimitsu-works", To: "tokyo-region", Commodity: steel},
		{From: "kimitsu-works", To: "melbourne-region", Commodity: steel},
	}

	model, err := memory.NewBaseModel(centers, edges, 1e-6)
	if err != nil {
		return nil, err
	}
	model.SetCost(entities.EdgeKey{From: "pilbara-mine", To: "whyalla-works", Commodity: ironOre}, 14)
	model.SetCost(entities.EdgeKey{From: "pilbara-mine", To: "kimitsu-works", Commodity: ironOre}, 31)
	model.SetCost(entities.EdgeKey{From: "whyalla-works", To: "melbourne-region", Commodity: steel}, 22)
	model.SetCost(entities.EdgeKey{From: "whyalla-works", To: "tokyo-region", Commodity: steel}, 48)
	model.SetCost(entities.EdgeKey{From: "kimitsu-works", To: "tokyo-region", Commodity: steel}, 9)
	model.SetCost(entities.EdgeKey{From: "kimitsu-works", To: "melbourne-region", Commodity: steel}, 51)
	return model, nil
}
