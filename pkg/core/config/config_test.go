package config

import (
	"os"
	"path/filepath"
	"testing"

	"barrier_tea/pkg/core/tea"
)

func write(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadYAMLScenario(t *testing.T) {
	path := write(t, "masc.yaml", `
name: masc-two-cycles
functional_unit: 1.0
pathways:
  - technology: Mechanical and Solvent Cleaning
    product: Barrier film
    fraction: 1.0
    cycles: 2
    kind: closed-loop-single
sensitivity:
  - {technology: Barrier Film, variable: Output efficiency, index: Barrier film, value: 0.75}
`)

	sf, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if sf.Name != "masc-two-cycles" {
		t.Errorf("Name = %q", sf.Name)
	}
	// Process/product fall back to the dataset defaults.
	if sf.Process != tea.ProcessBarrierFilm || sf.Product != tea.ProductBarrierFilm {
		t.Errorf("Defaults not applied: %q / %q", sf.Process, sf.Product)
	}

	cfg, err := sf.ScenarioConfig()
	if err != nil {
		t.Fatalf("ScenarioConfig failed: %v", err)
	}
	if len(cfg.Pathways) != 1 || cfg.Pathways[0].Kind != tea.PathwayClosedLoopSingle {
		t.Fatalf("Unexpected pathways: %+v", cfg.Pathways)
	}
	if cfg.Pathways[0].Cycles != 2 {
		t.Errorf("Cycles = %d", cfg.Pathways[0].Cycles)
	}

	rows := sf.SensitivityRows()
	if len(rows) != 1 || rows[0].Value != 0.75 {
		t.Fatalf("Unexpected sensitivity rows: %+v", rows)
	}
}

func TestLoadHJSONScenario(t *testing.T) {
	// HJSON: comments and unquoted strings are allowed.
	path := write(t, "strap.hjson", `
{
  # solvent loop with one reuse cycle
  name: strap-loop
  functional_unit: 2.5
  pathways: [
    {
      technology: Solvent Treatment and Precipitation
      product: Recovered polyethylene
      fraction: 1.0
      cycles: 1
      kind: closed-loop-two-stage
    }
  ]
}
`)

	sf, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if sf.FunctionalUnit != 2.5 {
		t.Errorf("FunctionalUnit = %f", sf.FunctionalUnit)
	}
	cfg, err := sf.ScenarioConfig()
	if err != nil {
		t.Fatalf("ScenarioConfig failed: %v", err)
	}
	if cfg.Pathways[0].Kind != tea.PathwayClosedLoopTwoStage {
		t.Errorf("Kind = %v", cfg.Pathways[0].Kind)
	}
}

func TestUnknownPathwayKind(t *testing.T) {
	path := write(t, "bad.yaml", `
pathways:
  - technology: Landfilling
    product: Landfilled waste
    fraction: 1.0
    kind: open-loop
`)
	sf, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if _, err := sf.ScenarioConfig(); err == nil {
		t.Fatal("Expected error for unknown pathway kind")
	}
}

func TestDefaultScenario(t *testing.T) {
	sf := Default()
	if sf.Process != tea.ProcessBarrierFilm || sf.FunctionalUnit != 1.0 {
		t.Errorf("Unexpected defaults: %+v", sf)
	}
	if len(sf.Pathways) != 1 || sf.Pathways[0].Technology != tea.ProcessLandfilling {
		t.Fatalf("Expected default landfilling pathway, got %+v", sf.Pathways)
	}
	cfg, err := sf.ScenarioConfig()
	if err != nil {
		t.Fatalf("ScenarioConfig failed: %v", err)
	}
	if cfg.Pathways[0].Kind != tea.PathwaySimple {
		t.Errorf("Kind = %v", cfg.Pathways[0].Kind)
	}
}

func TestUnsupportedExtension(t *testing.T) {
	path := write(t, "scenario.toml", "x = 1\n")
	if _, err := Load(path); err == nil {
		t.Fatal("Expected error for unsupported extension")
	}
}
