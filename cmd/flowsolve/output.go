package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/systemiqofficial/steel-iq-sub003/pkg/application/dto"
)

// renderResult writes the solve result in the requested format
func renderResult(result *dto.SolveResult, format string) error {
	switch format {
	case "text":
		return renderText(result)
	case "json":
		return renderJSON(result)
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}

// renderText writes a human-readable report
func renderText(result *dto.SolveResult) error {
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println("                 DECOMPOSITION SOLVE RESULTS")
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println()

	m := result.Metrics
	fmt.Println("SUMMARY")
	fmt.Printf("  Status:           %s\n", m.Status)
	fmt.Printf("  Iterations:       %d\n", m.Iterations)
	fmt.Printf("  Core variables:   %d of %d (reduction %.1f%%)\n",
		m.CoreVariables, m.FullVariables, m.ReductionRatio*100)
	fmt.Printf("  Solve time:       %v\n", m.TotalSolveTime)
	fmt.Printf("  Total cost:       %s\n", m.TotalCost.StringFixed(2))
	fmt.Printf("  Validation:       passed=%v (%d findings)\n",
		result.ValidationPassed, m.ViolationCount)
	fmt.Println()

	fmt.Println("ALLOCATIONS")
	fmt.Println("────────────────────────────────────────────────────────────────")
	for _, alloc := range result.Allocations {
		if alloc.Flow == 0 {
			continue
		}
		fmt.Printf("%-18s -> %-18s %-12s %10.2f  cost %s\n",
			alloc.From.Name, alloc.To.Name, alloc.Commodity, alloc.Flow,
			alloc.Cost.StringFixed(2))
	}
	return nil
}

// jsonAllocation is the wire shape of one allocation
type jsonAllocation struct {
	From      string  `json:"from"`
	To        string  `json:"to"`
	Commodity string  `json:"commodity"`
	Flow      float64 `json:"flow"`
	UnitCost  float64 `json:"unit_cost"`
	Cost      string  `json:"cost"`
}

// jsonResult is the wire shape of a solve result
type jsonResult struct {
	Status           string           `json:"status"`
	Iterations       int              `json:"iterations"`
	CoreVariables    int              `json:"core_variables"`
	FullVariables    int              `json:"full_variables"`
	ReductionRatio   float64          `json:"reduction_ratio"`
	TotalCost        string           `json:"total_cost"`
	ValidationPassed bool             `json:"validation_passed"`
	ViolationCount   int              `json:"violation_count"`
	Allocations      []jsonAllocation `json:"allocations"`
}

// renderJSON writes the result as indented JSON to stdout
func renderJSON(result *dto.SolveResult) error {
	out := jsonResult{
		Status:           result.Metrics.Status.String(),
		Iterations:       result.Metrics.Iterations,
		CoreVariables:    result.Metrics.CoreVariables,
		FullVariables:    result.Metrics.FullVariables,
		ReductionRatio:   result.Metrics.ReductionRatio,
		TotalCost:        result.Metrics.TotalCost.StringFixed(2),
		ValidationPassed: result.ValidationPassed,
		ViolationCount:   result.Metrics.ViolationCount,
	}
	for _, alloc := range result.Allocations {
		out.Allocations = append(out.Allocations, jsonAllocation{
			From:      alloc.From.Name,
			To:        alloc.To.Name,
			Commodity: alloc.Commodity.String(),
			Flow:      alloc.Flow,
			UnitCost:  alloc.UnitCost,
			Cost:      alloc.Cost.StringFixed(2),
		})
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(out)
}
