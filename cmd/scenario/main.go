// Command scenario runs one end-of-life TEA scenario and prints the result
// tables.
//
// Usage:
//
//	scenario -data data/tea-data.yaml -scenario scenarios/masc.yaml [-html out.html] [-save]
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"barrier_tea/pkg/core/config"
	"barrier_tea/pkg/core/dataset"
	"barrier_tea/pkg/core/report"
	"barrier_tea/pkg/core/store"
	"barrier_tea/pkg/core/tea"
)

func main() {
	dataPath := flag.String("data", "data/tea-data.yaml", "dataset file (.yaml) or directory of CSV tables")
	scenarioPath := flag.String("scenario", "", "scenario definition file (.yaml or .hjson); defaults to 100% landfilling")
	htmlPath := flag.String("html", "", "also write an HTML report to this path")
	save := flag.Bool("save", false, "persist the run to Postgres (requires DATABASE_URL)")
	list := flag.Int("list", 0, "list the N most recent saved runs and exit (requires DATABASE_URL)")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, assuming environment variables are set.")
	}

	if *list > 0 {
		listRuns(*list)
		return
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

	design := tables.Design
	if rows := sf.SensitivityRows(); len(rows) > 0 {
		design = design.Snapshot()
		design.ApplyOverrides(rows)
		fmt.Printf("Applied %d sensitivity override(s)\n", len(rows))
	}

	result, err := tea.BuildScenario(cfg, design, tables.Financial, tables.Structure)
	if err != nil {
		log.Fatalf("Scenario evaluation failed: %v", err)
	}

	md := report.Markdown(sf.Name, result)
	fmt.Print(md)

	if *htmlPath != "" {
		html, err := report.HTML(sf.Name, result)
		if err != nil {
			log.Fatalf("Failed to render HTML: %v", err)
		}
		if err := os.WriteFile(*htmlPath, html, 0o644); err != nil {
			log.Fatalf("Failed to write %s: %v", *htmlPath, err)
		}
		fmt.Printf("\nWrote HTML report to %s\n", *htmlPath)
	}

	if *save {
		ctx := context.Background()
		if err := store.InitDB(ctx); err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer store.Close()

		repo := store.NewScenarioRepo(store.GetPool())
		id, err := repo.Save(ctx, sf.Name, cfg, result)
		if err != nil {
			log.Fatalf("Failed to save run: %v", err)
		}
		fmt.Printf("Saved run %s\n", id)
	}
}

func listRuns(limit int) {
	ctx := context.Background()
	if err := store.InitDB(ctx); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer store.Close()

	runs, err := store.NewScenarioRepo(store.GetPool()).ListRecent(ctx, limit)
	if err != nil {
		log.Fatalf("Failed to list runs: %v", err)
	}
	for _, r := range runs {
		fmt.Printf("%s  %-30s  total=%.4f  eol=%.4f  %s\n",
			r.ID, r.Name, r.TotalCost, r.TotalEOLCost, r.CreatedAt.Format("2006-01-02 15:04"))
	}
	fmt.Printf("%d run(s)\n", len(runs))
}
