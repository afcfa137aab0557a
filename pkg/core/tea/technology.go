// Package tea implements the techno-economic core of the barrier-film
// value-chain model: per-technology cost evaluation and the scenario-level
// composer that chains evaluations through the end-of-life mass balance.
package tea

import (
	"barrier_tea/pkg/core/dataset"
)

// Well-known process and product names from the TEA dataset.
const (
	ProcessBarrierFilm      = "Barrier Film"
	ProcessMechanicalClean  = "Mechanical and Solvent Cleaning"
	ProcessSolventTreatment = "Solvent Treatment and Precipitation"
	ProcessLandfilling      = "Landfilling"
	ProcessIncineration     = "Incineration"
	ProcessPyrolysis        = "Pyrolysis"

	ProductBarrierFilm     = "Barrier film"
	ProductLandfilledWaste = "Landfilled waste"
)

// Cost and revenue category labels used in result tables.
const (
	CatCapitalPurchased  = "Capital Purchased"
	CatCapitalInstalled  = "Capital Installed"
	CatCapitalAnnualized = "Capital, Annualized"
	CatMaintenance       = "Maintenance"
	CatRawMaterial       = "Raw Material"
	CatBarrierFilm       = "Barrier Film"
	CatLabor             = "Labor"
	CatUtilities         = "Utilities"
	CatWasteDisposal     = "Waste Disposal"
	CatContingency       = "Contingency"
)

// CostLine is one cost category of an evaluated technology.
type CostLine struct {
	Category string  `json:"category"`
	Value    float64 `json:"value"`
}

// OutputLine is the annual production amount of one output product.
type OutputLine struct {
	Index       string  `json:"index"`
	Actual      float64 `json:"actual"`
	Theoretical float64 `json:"theoretical"`
}

// RevenueLine is the annual revenue from one output product.
type RevenueLine struct {
	Index string  `json:"index"`
	Value float64 `json:"value"`
}

// Technology is the evaluation result for one process step in a value chain.
// All monetary fields are USD; annual costs reflect the process scale in the
// design table and do not scale with Output.
type Technology struct {
	// Name of the technology. The composer may suffix it (", initial",
	// ", final") to disambiguate repeated occurrences in one chain.
	Name string `json:"name"`
	// Product is the primary output used for cost normalization.
	Product string `json:"product"`
	// Output is the quantity (lbs) of primary product this step must supply.
	Output float64 `json:"output"`

	OneTimeCosts      []CostLine    `json:"one_time_costs"`
	AnnualCosts       []CostLine    `json:"annual_costs"`
	OutputAmounts     []OutputLine  `json:"output_amounts"`
	NormalizedCosts   []CostLine    `json:"normalized_costs"`
	AnnualRevenue     []RevenueLine `json:"annual_revenue"`
	NormalizedRevenue []RevenueLine `json:"normalized_revenue"`

	// NetNormalizedCost is cost minus revenue per lb of primary product.
	NetNormalizedCost float64 `json:"net_normalized_cost"`
	// ProductionCost = Output * NetNormalizedCost.
	ProductionCost float64 `json:"production_cost"`

	// Overrides are financial-table updates this evaluation proposes for the
	// rest of the chain. A non-initial production run proposes zeroing the
	// purchase cost of its recycled-content inputs; the composer decides when
	// to apply them. The caller's financial table is never mutated here.
	Overrides []dataset.Override `json:"overrides,omitempty"`
}

// Evaluator computes the TEA result of a single technology. The zero value is
// not usable; NewEvaluator fills in the dataset's conventional names, all of
// which can be overridden for datasets using a different vocabulary.
type Evaluator struct {
	// CoproductProducers lists the technologies whose revenue comes from
	// co-products only (the primary product stays inside the value chain).
	// Everything else earns revenue on its primary product only.
	CoproductProducers map[string]bool
	// DisposalProcess is the technology that disposes of what is fed into it.
	// Its waste cost is computed from its inputs rather than from a reject
	// fraction of its output, and its raw-material cost is reported as zero.
	DisposalProcess string
	// FilmInput is the input index whose cost is reported in its own category
	// to keep the primary material flow visible.
	FilmInput string
	// RecycledInputs are the raw materials supplied internally when the
	// production process runs on recycled feedstock. Non-initial evaluations
	// propose zeroing their purchase cost.
	RecycledInputs []string
}

// NewEvaluator returns an Evaluator configured for the barrier-film dataset.
func NewEvaluator() *Evaluator {
	return &Evaluator{
		CoproductProducers: map[string]bool{
			ProcessBarrierFilm:      true,
			ProcessMechanicalClean:  true,
			ProcessSolventTreatment: true,
		},
		DisposalProcess: ProcessLandfilling,
		FilmInput:       ProductBarrierFilm,
		RecycledInputs:  []string{"Nylon 6", "Polyethylene"},
	}
}

// Evaluate computes the TEA result of one technology.
//
// design must contain at least one row for name and an Output row for
// product, else a NotFoundError is returned. finan is read through a
// snapshot: when initial is false the recycled-content input costs are zeroed
// on the snapshot (those materials arrive from the upstream recycling loop
// instead of being purchased) and the same zeroing is returned in
// Technology.Overrides so the composer can make it visible to later steps.
// output is the quantity of primary product required from this step.
func (ev *Evaluator) Evaluate(name, product string, design *dataset.Design, finan *dataset.Financial, output float64, initial bool) (*Technology, error) {
	sub := design.ForTechnology(name)
	if sub.Empty() {
		return nil, &NotFoundError{Kind: NotFoundTechnology, Name: name}
	}
	if _, ok := sub.ValueFor(dataset.VarOutput, product); !ok {
		return nil, &NotFoundError{Kind: NotFoundProduct, Name: product, Technology: name}
	}

	t := &Technology{Name: name, Product: product, Output: output}

	snap := finan.Snapshot()
	if !initial {
		for _, mat := range ev.RecycledInputs {
			ov := dataset.Override{
				Category: dataset.CategoryCost,
				Variable: dataset.VarInput,
				Index:    mat,
				Value:    0,
			}
			snap.Apply(ov)
			t.Overrides = append(t.Overrides, ov)
		}
	}

	opHrs, ok := snap.First(dataset.VarOperatingHours)
	if !ok {
		return nil, &ComputationError{Technology: name, Reason: "financial data has no Operating Hours row"}
	}

	oneTime, capAnnual, err := ev.capital(name, sub, snap)
	if err != nil {
		return nil, err
	}
	t.OneTimeCosts = oneTime

	materials, err := ev.rawMaterial(name, sub, snap, opHrs)
	if err != nil {
		return nil, err
	}
	labor, err := ev.labor(name, sub, snap)
	if err != nil {
		return nil, err
	}
	wastes, err := ev.wastes(name, sub, snap, opHrs)
	if err != nil {
		return nil, err
	}

	t.AnnualCosts = append(t.AnnualCosts, capAnnual...)
	t.AnnualCosts = append(t.AnnualCosts, materials...)
	t.AnnualCosts = append(t.AnnualCosts, labor)
	t.AnnualCosts = append(t.AnnualCosts, ev.utilities(sub, snap, opHrs))
	t.AnnualCosts = append(t.AnnualCosts, wastes)
	t.AnnualCosts = append(t.AnnualCosts, ev.contingency(sub, snap, opHrs))

	t.OutputAmounts = ev.production(sub, opHrs)

	primary := 0.0
	for _, line := range t.OutputAmounts {
		if line.Index == product {
			primary = line.Actual
			break
		}
	}
	if primary == 0 {
		return nil, &ComputationError{Technology: name, Reason: "primary product " + product + " has zero actual output"}
	}

	t.NormalizedCosts = make([]CostLine, len(t.AnnualCosts))
	for i, c := range t.AnnualCosts {
		t.NormalizedCosts[i] = CostLine{Category: c.Category, Value: c.Value / primary}
	}

	t.AnnualRevenue = ev.revenue(name, product, t.OutputAmounts, snap)
	t.NormalizedRevenue = make([]RevenueLine, len(t.AnnualRevenue))
	for i, r := range t.AnnualRevenue {
		t.NormalizedRevenue[i] = RevenueLine{Index: r.Index, Value: r.Value / primary}
	}

	costSum, revSum := 0.0, 0.0
	for _, c := range t.NormalizedCosts {
		costSum += c.Value
	}
	for _, r := range t.NormalizedRevenue {
		revSum += r.Value
	}
	t.NetNormalizedCost = costSum - revSum
	t.ProductionCost = t.Output * t.NetNormalizedCost

	return t, nil
}

// capital computes one-time purchase and installed costs plus annualized
// capital and maintenance. Purchase cost per capital item is design scale
// times the financial unit cost; installed cost adds the installation
// multiplier; annualization is straight-line over each item's depreciation
// period.
func (ev *Evaluator) capital(name string, design *dataset.Design, finan *dataset.Financial) ([]CostLine, []CostLine, error) {
	unitCosts := finan.ValuesByVariable("Capital")
	install, _ := finan.FirstIndex(dataset.IndexInstallation)
	maintMult, _ := finan.FirstIndex(dataset.IndexMaintenance)

	var purchSum, installedSum, annSum, maintSum float64
	for _, r := range design.Where(dataset.VarCapitalScale) {
		unit, ok := unitCosts[r.Index]
		if !ok {
			return nil, nil, &ComputationError{
				Technology: name,
				Reason:     "no unit capital cost for " + r.Index,
			}
		}
		purch := r.Value * unit
		installed := (1 + install) * purch
		purchSum += purch
		installedSum += installed
		maintSum += maintMult * purch

		if dep, ok := design.ValueFor(dataset.VarCapitalDeprec, r.Index); ok {
			if dep == 0 {
				return nil, nil, &ComputationError{
					Technology: name,
					Reason:     "zero depreciation period for " + r.Index,
				}
			}
			annSum += installed / dep
		}
	}

	oneTime := []CostLine{
		{Category: CatCapitalPurchased, Value: purchSum},
		{Category: CatCapitalInstalled, Value: installedSum},
	}
	annual := []CostLine{
		{Category: CatCapitalAnnualized, Value: annSum},
		{Category: CatMaintenance, Value: maintSum},
	}
	return oneTime, annual, nil
}

// rawMaterial computes the annual cost of non-energy inputs. The barrier-film
// input is segregated into its own category so the primary material flow
// stays visible in the rollups. The disposal process reports zero here; what
// it consumes is its waste-disposal cost instead.
func (ev *Evaluator) rawMaterial(name string, design *dataset.Design, finan *dataset.Financial, opHrs float64) ([]CostLine, error) {
	if name == ev.DisposalProcess {
		return []CostLine{
			{Category: CatRawMaterial, Value: 0},
			{Category: CatBarrierFilm, Value: 0},
		}, nil
	}

	film, other := ev.hourlyInputCost(design, finan)
	return []CostLine{
		{Category: CatRawMaterial, Value: other * opHrs},
		{Category: CatBarrierFilm, Value: film * opHrs},
	}, nil
}

// hourlyInputCost sums hourly input costs over non-contingency input rows,
// split into the barrier-film line and everything else. Inputs without a
// financial price row are skipped, matching the source model's inner join.
func (ev *Evaluator) hourlyInputCost(design *dataset.Design, finan *dataset.Financial) (film, other float64) {
	prices := finan.ValuesByVariable(dataset.VarInput)
	for _, r := range design.Where(dataset.VarInput) {
		if r.Index == dataset.IndexContingency {
			continue
		}
		price, ok := prices[r.Index]
		if !ok {
			continue
		}
		cost := r.Value * price
		if r.Index == ev.FilmInput {
			film += cost
		} else {
			other += cost
		}
	}
	return film, other
}

// labor computes the annual burdened labor cost over all labor classes.
func (ev *Evaluator) labor(name string, design *dataset.Design, finan *dataset.Financial) (CostLine, error) {
	rates := finan.ValuesByVariable(dataset.VarLabor)
	hourly := 0.0
	for _, r := range design.Where(dataset.VarLabor) {
		if rate, ok := rates[r.Index]; ok {
			hourly += r.Value * rate
		}
	}

	workHrs, ok := finan.First(dataset.VarWorkingHours)
	if !ok {
		return CostLine{}, &ComputationError{Technology: name, Reason: "financial data has no Working Hours row"}
	}
	burden, _ := finan.Multiplier(dataset.VarLabor)

	return CostLine{Category: CatLabor, Value: hourly * workHrs * (1 + burden)}, nil
}

// utilities computes the annual cost of energy and related inputs.
func (ev *Evaluator) utilities(design *dataset.Design, finan *dataset.Financial, opHrs float64) CostLine {
	prices := finan.ValuesByVariable(dataset.VarUtilities)
	hourly := 0.0
	for _, r := range design.Where(dataset.VarUtilities) {
		if price, ok := prices[r.Index]; ok {
			hourly += r.Value * price
		}
	}
	return CostLine{Category: CatUtilities, Value: hourly * opHrs}
}

// wastes computes annual disposal costs. For most technologies the rejected
// fraction of each output line is landfilled at the tipping fee. The disposal
// process itself disposes of whatever is fed into it, so its cost comes from
// its input rows instead.
func (ev *Evaluator) wastes(name string, design *dataset.Design, finan *dataset.Financial, opHrs float64) (CostLine, error) {
	if name == ev.DisposalProcess {
		film, other := ev.hourlyInputCost(design, finan)
		return CostLine{Category: CatWasteDisposal, Value: (film + other) * opHrs}, nil
	}

	tipFee, _ := finan.FirstIndex(dataset.IndexWasteDisposal)
	hourly := 0.0
	for _, r := range design.Where(dataset.VarOutput) {
		eff, ok := design.ValueFor(dataset.VarOutputEfficiency, r.Index)
		if !ok {
			continue
		}
		hourly += tipFee * r.Value * (1 - eff)
	}
	return CostLine{Category: CatWasteDisposal, Value: hourly * opHrs}, nil
}

// contingency returns the flat multiplier-based contingency cost, or zero
// when the technology carries no contingency line.
func (ev *Evaluator) contingency(design *dataset.Design, finan *dataset.Financial, opHrs float64) CostLine {
	rate := 0.0
	found := false
	for _, r := range design.Rows {
		if r.Index == dataset.IndexContingency {
			rate = r.Value
			found = true
			break
		}
	}
	mult, haveMult := finan.FirstIndex(dataset.IndexContingency)
	if !found || !haveMult {
		return CostLine{Category: CatContingency, Value: 0}
	}
	return CostLine{Category: CatContingency, Value: rate * mult * opHrs}
}

// production computes the annual theoretical and actual amount of every
// output line. Output efficiency defaults to 1 for lines without an
// efficiency row.
func (ev *Evaluator) production(design *dataset.Design, opHrs float64) []OutputLine {
	var out []OutputLine
	for _, r := range design.Where(dataset.VarOutput) {
		eff := 1.0
		if e, ok := design.ValueFor(dataset.VarOutputEfficiency, r.Index); ok {
			eff = e
		}
		out = append(out, OutputLine{
			Index:       r.Index,
			Actual:      r.Value * eff * opHrs,
			Theoretical: r.Value * opHrs,
		})
	}
	return out
}

// revenue computes annual sales revenue from actual production amounts.
// Primary producers keep their primary product inside the value chain and
// earn on co-products only; everything else earns on the primary product.
// Output lines without a sale price row earn nothing.
func (ev *Evaluator) revenue(name, product string, amounts []OutputLine, finan *dataset.Financial) []RevenueLine {
	prices := finan.ValuesByVariable(dataset.VarOutput)
	coproductOnly := ev.CoproductProducers[name]

	var rev []RevenueLine
	for _, line := range amounts {
		if coproductOnly == (line.Index == product) {
			continue
		}
		rev = append(rev, RevenueLine{Index: line.Index, Value: prices[line.Index] * line.Actual})
	}
	return rev
}

// Evaluate runs a single evaluation with the default barrier-film
// configuration.
func Evaluate(name, product string, design *dataset.Design, finan *dataset.Financial, output float64, initial bool) (*Technology, error) {
	return NewEvaluator().Evaluate(name, product, design, finan, output, initial)
}
