// ABOUTME: Command-line benchmark runner for ranking-quality evaluation
// ABOUTME: Executes the offline scenario suite and outputs JSON results

package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"github.com/moodreel/moodreel/benchmarks/ranking"
)

func main() {
	scenarioID := flag.String("scenario", "", "Run a single scenario by ID. If empty, runs the full suite.")
	outputPath := flag.String("output", "benchmark_results.json", "Output path for JSON results")
	verbose := flag.Bool("verbose", false, "Enable verbose output")
	flag.Parse()

	fmt.Println("========================================")
	fmt.Println("moodreel ranking benchmarks")
	fmt.Println("========================================")
	fmt.Println()

	runner, err := ranking.NewRunner(*verbose)
	if err != nil {
		log.Fatalf("Failed to create benchmark runner: %v", err)
	}

	ctx := context.Background()
	var suite *ranking.SuiteResult

	if *scenarioID == "" {
		suite, err = runner.RunAll(ctx)
		if err != nil {
			log.Fatalf("Benchmark failed: %v", err)
		}
	} else {
		var found bool
		for _, scenario := range ranking.Scenarios() {
			if scenario.ID != *scenarioID {
				continue
			}
			result, err := runner.Run(ctx, scenario)
			if err != nil {
				log.Fatalf("Scenario failed: %v", err)
			}
			suite = &ranking.SuiteResult{
				Scenarios:   []ranking.ScenarioResult{result},
				MeanNDCG:    result.NDCG,
				MeanHitRate: result.HitRate,
			}
			found = true
		}
		if !found {
			log.Fatalf("Unknown scenario ID: %s", *scenarioID)
		}
	}

	fmt.Printf("Mean NDCG:     %.3f\n", suite.MeanNDCG)
	fmt.Printf("Mean hit-rate: %.3f\n", suite.MeanHitRate)

	if err := suite.WriteJSON(*outputPath); err != nil {
		log.Fatalf("Failed to write results: %v", err)
	}
	fmt.Printf("Results written to %s\n", *outputPath)
}
