// Package config loads scenario definition files. YAML is the canonical
// format; HJSON is accepted for hand-written configs.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	hjson "github.com/hjson/hjson-go/v4"
	"gopkg.in/yaml.v2"

	"barrier_tea/pkg/core/dataset"
	"barrier_tea/pkg/core/tea"
)

// PathwaySpec is one end-of-life allocation entry as written in a scenario
// file.
type PathwaySpec struct {
	Technology string  `yaml:"technology" json:"technology"`
	Product    string  `yaml:"product" json:"product"`
	Fraction   float64 `yaml:"fraction" json:"fraction"`
	Cycles     int     `yaml:"cycles" json:"cycles"`
	// Kind is one of simple, closed-loop-single, closed-loop-two-stage.
	Kind string `yaml:"kind" json:"kind"`
	// Downstream overrides the structure-table lookup for two-stage loops.
	Downstream string `yaml:"downstream,omitempty" json:"downstream,omitempty"`
}

// OverrideSpec is one sensitivity override row: a design-table value
// replacement applied before evaluation begins.
type OverrideSpec struct {
	Technology string  `yaml:"technology" json:"technology"`
	Variable   string  `yaml:"variable" json:"variable"`
	Index      string  `yaml:"index" json:"index"`
	Value      float64 `yaml:"value" json:"value"`
}

// ScenarioFile is a parsed scenario definition.
type ScenarioFile struct {
	Name              string         `yaml:"name" json:"name"`
	Process           string         `yaml:"process" json:"process"`
	Product           string         `yaml:"product" json:"product"`
	FunctionalUnit    float64        `yaml:"functional_unit" json:"functional_unit"`
	Pathways          []PathwaySpec  `yaml:"pathways" json:"pathways"`
	EOLCostExclusions []string       `yaml:"eol_cost_exclusions,omitempty" json:"eol_cost_exclusions,omitempty"`
	Sensitivity       []OverrideSpec `yaml:"sensitivity,omitempty" json:"sensitivity,omitempty"`
}

// Default returns the built-in scenario: virgin barrier-film production with
// 100% landfilling at end of life, functional unit of 1 lb.
func Default() *ScenarioFile {
	sf := &ScenarioFile{}
	sf.applyDefaults()
	return sf
}

// Load reads and parses a scenario file by extension (.yaml/.yml or .hjson/
// .json) and fills in the dataset defaults: virgin barrier-film production,
// functional unit of 1 lb, and 100% landfilling at end of life.
func Load(path string) (*ScenarioFile, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	var sf ScenarioFile
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(raw, &sf); err != nil {
			return nil, fmt.Errorf("config: parse %s: %w", path, err)
		}
	case ".hjson", ".json":
		if err := hjson.Unmarshal(raw, &sf); err != nil {
			return nil, fmt.Errorf("config: parse %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("config: unsupported scenario file %q", path)
	}

	sf.applyDefaults()
	return &sf, nil
}

func (sf *ScenarioFile) applyDefaults() {
	if sf.Process == "" {
		sf.Process = tea.ProcessBarrierFilm
	}
	if sf.Product == "" {
		sf.Product = tea.ProductBarrierFilm
	}
	if sf.FunctionalUnit == 0 {
		sf.FunctionalUnit = 1.0
	}
	if len(sf.Pathways) == 0 {
		sf.Pathways = []PathwaySpec{{
			Technology: tea.ProcessLandfilling,
			Product:    tea.ProductLandfilledWaste,
			Fraction:   1.0,
			Kind:       tea.PathwaySimple.String(),
		}}
	}
	if sf.Name == "" {
		sf.Name = strings.Join(pathwayNames(sf.Pathways), " + ")
	}
}

func pathwayNames(specs []PathwaySpec) []string {
	names := make([]string, len(specs))
	for i, p := range specs {
		names[i] = p.Technology
	}
	return names
}

// ScenarioConfig converts the file to the core's typed configuration,
// resolving pathway kind strings.
func (sf *ScenarioFile) ScenarioConfig() (tea.ScenarioConfig, error) {
	cfg := tea.ScenarioConfig{
		Process:           sf.Process,
		Product:           sf.Product,
		FunctionalUnit:    sf.FunctionalUnit,
		EOLCostExclusions: sf.EOLCostExclusions,
	}
	for _, p := range sf.Pathways {
		kind, err := tea.ParsePathwayKind(p.Kind)
		if err != nil {
			return tea.ScenarioConfig{}, fmt.Errorf("config: pathway %s: %w", p.Technology, err)
		}
		cfg.Pathways = append(cfg.Pathways, tea.Pathway{
			Technology: p.Technology,
			Product:    p.Product,
			Fraction:   p.Fraction,
			Cycles:     p.Cycles,
			Kind:       kind,
			Downstream: p.Downstream,
		})
	}
	return cfg, nil
}

// SensitivityRows converts the file's sensitivity section to design override
// rows.
func (sf *ScenarioFile) SensitivityRows() []dataset.Row {
	rows := make([]dataset.Row, len(sf.Sensitivity))
	for i, ov := range sf.Sensitivity {
		rows[i] = dataset.Row{
			Technology: ov.Technology,
			Variable:   ov.Variable,
			Index:      ov.Index,
			Value:      ov.Value,
		}
	}
	return rows
}
