// Package dataset holds the in-memory TEA input tables: process design rows,
// shared financial rows, and the process structure links. Tables are flat
// record sets with explicit filter and lookup helpers; all joins the
// calculations need are expressed against these helpers.
package dataset

// Design table variable vocabulary.
const (
	VarOutputEfficiency = "Output efficiency"
	VarCapitalScale     = "Capital scale"
	VarCapitalDeprec    = "Capital depreciation"
	VarInput            = "Input"
	VarLabor            = "Labor"
	VarUtilities        = "Utilities"
	VarOutput           = "Output"
)

// Financial table parameter and multiplier keys.
const (
	VarOperatingHours = "Operating Hours"
	VarWorkingHours   = "Working Hours"

	CategoryCost           = "Cost"
	CategoryCostMultiplier = "Cost Multiplier"

	IndexInstallation  = "Installation"
	IndexMaintenance   = "Maintenance"
	IndexContingency   = "Contingency"
	IndexWasteDisposal = "Waste disposal"
)

// Row is one Design record: a design parameter of one technology.
type Row struct {
	Technology string  `yaml:"technology" json:"technology"`
	Variable   string  `yaml:"variable" json:"variable"`
	Index      string  `yaml:"index" json:"index"`
	Value      float64 `yaml:"value" json:"value"`
}

// FinRow is one Financial record. Financial rows are shared by every
// technology in a scenario.
type FinRow struct {
	Category string  `yaml:"category" json:"category"`
	Variable string  `yaml:"variable" json:"variable"`
	Index    string  `yaml:"index" json:"index"`
	Value    float64 `yaml:"value" json:"value"`
}

// Link is one Structure record: which technology consumes the output of an
// end-of-life technology.
type Link struct {
	Technology string `yaml:"technology" json:"technology"`
	Downstream string `yaml:"downstream" json:"downstream"`
}

// Design is the process design table.
type Design struct {
	Rows []Row
}

// Financial is the shared financial table.
type Financial struct {
	Rows []FinRow
}

// Structure is the process linkage table.
type Structure struct {
	Links []Link
}

// ForTechnology returns the subset of the design table for one technology,
// preserving row order.
func (d *Design) ForTechnology(name string) *Design {
	sub := &Design{}
	for _, r := range d.Rows {
		if r.Technology == name {
			sub.Rows = append(sub.Rows, r)
		}
	}
	return sub
}

// Where returns the rows with the given variable, preserving row order.
func (d *Design) Where(variable string) []Row {
	var out []Row
	for _, r := range d.Rows {
		if r.Variable == variable {
			out = append(out, r)
		}
	}
	return out
}

// ValueFor returns the value of the first row matching (variable, index).
func (d *Design) ValueFor(variable, index string) (float64, bool) {
	for _, r := range d.Rows {
		if r.Variable == variable && r.Index == index {
			return r.Value, true
		}
	}
	return 0, false
}

// TechnologyValue returns the first value for (technology, variable) across
// the full table. Used by the composer for output-efficiency lookups.
func (d *Design) TechnologyValue(technology, variable string) (float64, bool) {
	for _, r := range d.Rows {
		if r.Technology == technology && r.Variable == variable {
			return r.Value, true
		}
	}
	return 0, false
}

// Empty reports whether the table has no rows.
func (d *Design) Empty() bool {
	return len(d.Rows) == 0
}

// ApplyOverrides replaces design values in place. Each override row replaces
// the value of every design row matching its (Technology, Variable, Index)
// key. Rows that match nothing are ignored, matching the row-filter merge the
// sensitivity workflow uses.
func (d *Design) ApplyOverrides(rows []Row) {
	for _, ov := range rows {
		for i := range d.Rows {
			if d.Rows[i].Technology == ov.Technology &&
				d.Rows[i].Variable == ov.Variable &&
				d.Rows[i].Index == ov.Index {
				d.Rows[i].Value = ov.Value
			}
		}
	}
}

// Snapshot returns a deep value copy of the design table.
func (d *Design) Snapshot() *Design {
	cp := &Design{Rows: make([]Row, len(d.Rows))}
	copy(cp.Rows, d.Rows)
	return cp
}

// Override is a financial-table overwrite. Empty Category or Variable fields
// match any row, so {Index: "Barrier film"} rewrites every row carrying that
// index regardless of category. Evaluations propose overrides; only the
// scenario composer applies them.
type Override struct {
	Category string  `json:"category,omitempty"`
	Variable string  `json:"variable,omitempty"`
	Index    string  `json:"index"`
	Value    float64 `json:"value"`
}

func (ov Override) matches(r FinRow) bool {
	if ov.Category != "" && ov.Category != r.Category {
		return false
	}
	if ov.Variable != "" && ov.Variable != r.Variable {
		return false
	}
	return ov.Index == r.Index
}

// Apply overwrites every matching row's value and returns how many rows
// matched.
func (f *Financial) Apply(ov Override) int {
	n := 0
	for i := range f.Rows {
		if ov.matches(f.Rows[i]) {
			f.Rows[i].Value = ov.Value
			n++
		}
	}
	return n
}

// Snapshot returns a deep value copy of the financial table.
func (f *Financial) Snapshot() *Financial {
	cp := &Financial{Rows: make([]FinRow, len(f.Rows))}
	copy(cp.Rows, f.Rows)
	return cp
}

// ValuesByVariable returns an Index -> Value map over rows with the given
// variable. Later rows win on duplicate indexes.
func (f *Financial) ValuesByVariable(variable string) map[string]float64 {
	out := make(map[string]float64)
	for _, r := range f.Rows {
		if r.Variable == variable {
			out[r.Index] = r.Value
		}
	}
	return out
}

// First returns the value of the first row with the given variable.
func (f *Financial) First(variable string) (float64, bool) {
	for _, r := range f.Rows {
		if r.Variable == variable {
			return r.Value, true
		}
	}
	return 0, false
}

// FirstIndex returns the value of the first row with the given index.
func (f *Financial) FirstIndex(index string) (float64, bool) {
	for _, r := range f.Rows {
		if r.Index == index {
			return r.Value, true
		}
	}
	return 0, false
}

// Multiplier returns the first Cost Multiplier value for the given variable
// (e.g. the labor burden multiplier).
func (f *Financial) Multiplier(variable string) (float64, bool) {
	for _, r := range f.Rows {
		if r.Category == CategoryCostMultiplier && r.Variable == variable {
			return r.Value, true
		}
	}
	return 0, false
}

// DownstreamOf returns the technology linked downstream of the given one.
func (s *Structure) DownstreamOf(technology string) (string, bool) {
	for _, l := range s.Links {
		if l.Technology == technology {
			return l.Downstream, true
		}
	}
	return "", false
}
