// Command sensitivity runs one scenario repeatedly under design-table
// override sets and writes a CSV of scenario totals, one row per run.
//
// The overrides file is a headered CSV with Run, Technology, Variable, Index
// and Value columns; rows sharing a Run label are applied together.
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"barrier_tea/pkg/core/config"
	"barrier_tea/pkg/core/dataset"
	"barrier_tea/pkg/core/tea"
)

func main() {
	dataPath := flag.String("data", "data/tea-data.yaml", "dataset file (.yaml) or directory of CSV tables")
	scenarioPath := flag.String("scenario", "", "scenario definition file (.yaml or .hjson)")
	overridesPath := flag.String("overrides", "", "CSV of design overrides grouped by Run column")
	outPath := flag.String("out", "sensitivity.csv", "output CSV path")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, assuming environment variables are set.")
	}
	if *overridesPath == "" {
		log.Fatal("Error: -overrides is required.")
	}

	tables, err := dataset.Load(*dataPath)
	if err != nil {
		log.Fatalf("Failed to load dataset: %v", err)
	}

	sf := config.Default()
	if *scenarioPath != "" {
		sf, err = config.Load(*scenarioPath)
		if err != nil {
			log.Fatalf("Failed to load scenario: %v", err)
		}
	}
	cfg, err := sf.ScenarioConfig()
	if err != nil {
		log.Fatalf("Invalid scenario: %v", err)
	}

	runs, order, err := dataset.LoadOverrides(*overridesPath)
	if err != nil {
		log.Fatalf("Failed to load overrides: %v", err)
	}

	out, err := os.Create(*outPath)
	if err != nil {
		log.Fatalf("Failed to create %s: %v", *outPath, err)
	}
	defer out.Close()

	w := csv.NewWriter(out)
	defer w.Flush()
	header := []string{"Run", "Total Cost (USD)", "EOL Cost (USD)", "Virgin Production (lbs)", "Final Landfill (lbs)"}
	if err := w.Write(header); err != nil {
		log.Fatalf("Failed to write output: %v", err)
	}

	for _, run := range order {
		design := tables.Design.Snapshot()
		design.ApplyOverrides(runs[run])

		result, err := tea.BuildScenario(cfg, design, tables.Financial, tables.Structure)
		if err != nil {
			log.Fatalf("Run %q failed: %v", run, err)
		}

		record := []string{
			run,
			fmt.Sprintf("%.6f", result.TotalCost),
			fmt.Sprintf("%.6f", result.TotalEOLCost),
			fmt.Sprintf("%.6f", result.VirginProduction),
			fmt.Sprintf("%.6f", result.FinalLandfill),
		}
		if err := w.Write(record); err != nil {
			log.Fatalf("Failed to write output: %v", err)
		}
		fmt.Printf("Run %-20q total=%.4f eol=%.4f\n", run, result.TotalCost, result.TotalEOLCost)
	}

	fmt.Printf("Wrote %d run(s) to %s\n", len(order), *outPath)
}
