package dataset

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v2"
)

// Tables bundles the three input tables of one TEA dataset.
type Tables struct {
	Design    *Design
	Financial *Financial
	Structure *Structure
}

type yamlDataset struct {
	Design    []Row    `yaml:"design"`
	Financial []FinRow `yaml:"financial"`
	Structure []Link   `yaml:"structure"`
}

// Load reads a dataset from path. A .yaml/.yml path is read as a single file
// with design/financial/structure lists; a directory is read as three CSV
// files (design.csv, financial.csv, structure.csv) carrying the source
// workbook's column headers.
func Load(path string) (*Tables, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("dataset: %w", err)
	}
	if info.IsDir() {
		return loadCSVDir(path)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return loadYAML(path)
	default:
		return nil, fmt.Errorf("dataset: unsupported dataset file %q", path)
	}
}

func loadYAML(path string) (*Tables, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("dataset: %w", err)
	}
	var ds yamlDataset
	if err := yaml.Unmarshal(raw, &ds); err != nil {
		return nil, fmt.Errorf("dataset: parse %s: %w", path, err)
	}
	if len(ds.Design) == 0 {
		return nil, fmt.Errorf("dataset: %s has no design rows", path)
	}
	return &Tables{
		Design:    &Design{Rows: ds.Design},
		Financial: &Financial{Rows: ds.Financial},
		Structure: &Structure{Links: ds.Structure},
	}, nil
}

func loadCSVDir(dir string) (*Tables, error) {
	design, err := readCSV(filepath.Join(dir, "design.csv"),
		[]string{"Technology", "Variable", "Index", "Value"})
	if err != nil {
		return nil, err
	}
	finan, err := readCSV(filepath.Join(dir, "financial.csv"),
		[]string{"Category", "Variable", "Index", "Value"})
	if err != nil {
		return nil, err
	}
	structure, err := readCSV(filepath.Join(dir, "structure.csv"),
		[]string{"Technology", "Downstream"})
	if err != nil {
		return nil, err
	}

	t := &Tables{Design: &Design{}, Financial: &Financial{}, Structure: &Structure{}}
	for _, rec := range design {
		v, err := strconv.ParseFloat(rec[3], 64)
		if err != nil {
			return nil, fmt.Errorf("dataset: design row %v: %w", rec, err)
		}
		t.Design.Rows = append(t.Design.Rows, Row{
			Technology: rec[0], Variable: rec[1], Index: rec[2], Value: v,
		})
	}
	for _, rec := range finan {
		v, err := strconv.ParseFloat(rec[3], 64)
		if err != nil {
			return nil, fmt.Errorf("dataset: financial row %v: %w", rec, err)
		}
		t.Financial.Rows = append(t.Financial.Rows, FinRow{
			Category: rec[0], Variable: rec[1], Index: rec[2], Value: v,
		})
	}
	for _, rec := range structure {
		t.Structure.Links = append(t.Structure.Links, Link{
			Technology: rec[0], Downstream: rec[1],
		})
	}
	if t.Design.Empty() {
		return nil, fmt.Errorf("dataset: %s/design.csv has no rows", dir)
	}
	return t, nil
}

// readCSV reads a headered CSV file and returns its data records reordered
// to match wantCols. Header matching is case-insensitive.
func readCSV(path string, wantCols []string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("dataset: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.TrimLeadingSpace = true
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("dataset: read %s: %w", path, err)
	}
	if len(records) < 1 {
		return nil, fmt.Errorf("dataset: %s is empty", path)
	}

	header := records[0]
	colAt := make([]int, len(wantCols))
	for i, want := range wantCols {
		colAt[i] = -1
		for j, got := range header {
			if strings.EqualFold(strings.TrimSpace(got), want) {
				colAt[i] = j
				break
			}
		}
		if colAt[i] == -1 {
			return nil, fmt.Errorf("dataset: %s is missing column %q", path, want)
		}
	}

	out := make([][]string, 0, len(records)-1)
	for _, rec := range records[1:] {
		row := make([]string, len(wantCols))
		for i, j := range colAt {
			if j >= len(rec) {
				return nil, fmt.Errorf("dataset: %s has a short row %v", path, rec)
			}
			row[i] = strings.TrimSpace(rec[j])
		}
		out = append(out, row)
	}
	return out, nil
}

// LoadOverrides reads sensitivity override rows from a headered CSV file with
// Technology, Variable, Index and Value columns. An optional Run column
// groups rows into named override sets; rows without one fall into the ""
// set. Order of first appearance is preserved in the returned run names.
func LoadOverrides(path string) (map[string][]Row, []string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("dataset: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.TrimLeadingSpace = true
	records, err := r.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("dataset: read %s: %w", path, err)
	}
	if len(records) < 2 {
		return nil, nil, fmt.Errorf("dataset: %s has no override rows", path)
	}

	col := map[string]int{}
	for j, name := range records[0] {
		col[strings.ToLower(strings.TrimSpace(name))] = j
	}
	for _, want := range []string{"technology", "variable", "index", "value"} {
		if _, ok := col[want]; !ok {
			return nil, nil, fmt.Errorf("dataset: %s is missing column %q", path, want)
		}
	}

	runs := make(map[string][]Row)
	var order []string
	for _, rec := range records[1:] {
		v, err := strconv.ParseFloat(strings.TrimSpace(rec[col["value"]]), 64)
		if err != nil {
			return nil, nil, fmt.Errorf("dataset: override row %v: %w", rec, err)
		}
		run := ""
		if j, ok := col["run"]; ok && j < len(rec) {
			run = strings.TrimSpace(rec[j])
		}
		if _, seen := runs[run]; !seen {
			order = append(order, run)
		}
		runs[run] = append(runs[run], Row{
			Technology: strings.TrimSpace(rec[col["technology"]]),
			Variable:   strings.TrimSpace(rec[col["variable"]]),
			Index:      strings.TrimSpace(rec[col["index"]]),
			Value:      v,
		})
	}
	return runs, order, nil
}
