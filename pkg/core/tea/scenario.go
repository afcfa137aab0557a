package tea

import (
	"fmt"

	"barrier_tea/pkg/core/dataset"
)

// ScenarioConfig defines one end-of-life scenario.
type ScenarioConfig struct {
	// Process is the virgin production technology that opens the chain.
	Process string `json:"process"`
	// Product is its primary product, the material the functional unit
	// is measured in.
	Product string `json:"product"`
	// FunctionalUnit is the quantity (lbs) of final usable product the whole
	// analysis is normalized to.
	FunctionalUnit float64 `json:"functional_unit"`
	// Pathways allocates the functional unit across end-of-life
	// technologies. Evaluation follows slice order.
	Pathways []Pathway `json:"pathways"`
	// EOLCostExclusions lists chain-entry names excluded from TotalEOLCost.
	// Empty means the default set: the renamed initial production entry plus
	// "Sheet Molding Compound", retained for historical reporting
	// compatibility with a related analysis.
	EOLCostExclusions []string `json:"eol_cost_exclusions,omitempty"`
}

// ProcessCost is one row of the per-technology production cost rollup.
type ProcessCost struct {
	Technology string  `json:"technology"`
	Cost       float64 `json:"cost"`
}

// ProcessAnnualCost is one row of the per-technology, per-category annual
// cost rollup. Annual costs reflect design-table process scale, not the
// functional unit.
type ProcessAnnualCost struct {
	Technology string  `json:"technology"`
	Category   string  `json:"category"`
	Value      float64 `json:"value"`
}

// Scenario is the evaluated value chain and its aggregate results.
type Scenario struct {
	// ValueChain holds every evaluated step in process order: initial
	// production, then per pathway the EOL step, any downstream regeneration
	// step, and any final landfilling of material leaving the loop.
	ValueChain []*Technology `json:"value_chain"`

	// TotalCost sums production cost over the whole chain.
	TotalCost float64 `json:"total_cost"`
	// TotalEOLCost sums production cost over the chain minus the exclusion
	// set (by default the initial production entry).
	TotalEOLCost float64 `json:"total_eol_cost"`
	// VirginProduction is the solved quantity of virgin product required to
	// deliver the functional unit across all pathways.
	VirginProduction float64 `json:"virgin_production"`
	// FinalLandfill is the total quantity landfilled after all reuse cycles.
	FinalLandfill float64 `json:"final_landfill"`

	ProcessProductionCosts []ProcessCost       `json:"process_production_costs"`
	ProcessAnnualCosts     []ProcessAnnualCost `json:"process_annual_costs"`
}

// Composer builds scenarios. NewComposer configures it for the barrier-film
// dataset; fields can be overridden for datasets with other vocabularies.
type Composer struct {
	Evaluator *Evaluator
	// TerminalSinks are the simple pathways that fully consume their feed;
	// they leave nothing for a final landfilling step.
	TerminalSinks map[string]bool
	// Disposal is the technology evaluated for final landfilling, and
	// DisposalProduct its primary product.
	Disposal        string
	DisposalProduct string
	// RecoverySplit is the fraction of regenerated material attributed to
	// the two-stage recycle step's own primary output (the precipitated
	// polymer split carried over from the source TEA dataset).
	RecoverySplit float64
}

// NewComposer returns a Composer with the barrier-film defaults.
func NewComposer() *Composer {
	return &Composer{
		Evaluator: NewEvaluator(),
		TerminalSinks: map[string]bool{
			ProcessLandfilling:  true,
			ProcessIncineration: true,
			ProcessPyrolysis:    true,
		},
		Disposal:        ProcessLandfilling,
		DisposalProduct: ProductLandfilledWaste,
		RecoverySplit:   0.7,
	}
}

// pathPlan is the solved mass balance for one pathway, computed before any
// technology evaluation runs.
type pathPlan struct {
	p Pathway
	// virgin is this pathway's contribution to initial virgin production.
	virgin float64
	// throughput is the quantity assigned to the pathway technology.
	throughput float64
	// downstream regeneration step and its required output (two-stage only).
	downstream       string
	downstreamOutput float64
	// leftover is the quantity sent to final landfilling after all cycles.
	leftover float64
}

// BuildScenario validates the configuration, solves the end-of-life mass
// balance, evaluates every step of the value chain in order, and aggregates
// scenario totals.
//
// Cross-step state is threaded explicitly: the composer works on a snapshot
// of the financial table and applies each evaluation's proposed overrides
// (and the closed-loop product price feedback) before the next evaluation, so
// evaluation order inside one scenario is significant while the caller's
// tables stay untouched.
func (c *Composer) BuildScenario(cfg ScenarioConfig, design *dataset.Design, finan *dataset.Financial, structure *dataset.Structure) (*Scenario, error) {
	plans, err := c.solveMassBalance(cfg, design, structure)
	if err != nil {
		return nil, err
	}

	virginTotal := 0.0
	for _, pl := range plans {
		virginTotal += pl.virgin
	}

	work := finan.Snapshot()
	s := &Scenario{VirginProduction: virginTotal}

	initial, err := c.Evaluator.Evaluate(cfg.Process, cfg.Product, design, work, virginTotal, true)
	if err != nil {
		return nil, err
	}
	initial.Name = cfg.Process + ", initial"
	c.append(s, work, initial)

	for _, pl := range plans {
		step, err := c.Evaluator.Evaluate(pl.p.Technology, pl.p.Product, design, work, pl.throughput, true)
		if err != nil {
			return nil, err
		}
		c.append(s, work, step)

		if pl.p.Kind == PathwayClosedLoopTwoStage {
			regen, err := c.Evaluator.Evaluate(pl.downstream, cfg.Product, design, work, pl.downstreamOutput, false)
			if err != nil {
				return nil, err
			}
			c.append(s, work, regen)
			// Feed the regenerated product's unit cost back into the
			// financial table; every later step buying the product pays the
			// closed-loop price.
			work.Apply(dataset.Override{Index: cfg.Product, Value: regen.NetNormalizedCost})
		}

		if pl.leftover != 0 {
			final, err := c.Evaluator.Evaluate(c.Disposal, c.DisposalProduct, design, work, pl.leftover, true)
			if err != nil {
				return nil, err
			}
			final.Name = c.Disposal + ", final"
			c.append(s, work, final)
			s.FinalLandfill += pl.leftover
		}
	}

	excluded := make(map[string]bool)
	if len(cfg.EOLCostExclusions) > 0 {
		for _, name := range cfg.EOLCostExclusions {
			excluded[name] = true
		}
	} else {
		excluded[cfg.Process+", initial"] = true
		excluded["Sheet Molding Compound"] = true
	}

	for _, t := range s.ValueChain {
		s.TotalCost += t.ProductionCost
		if !excluded[t.Name] {
			s.TotalEOLCost += t.ProductionCost
		}
	}

	return s, nil
}

// append adds an evaluated step to the chain, applies its proposed financial
// overrides to the working table, and extends the rollups.
func (c *Composer) append(s *Scenario, work *dataset.Financial, t *Technology) {
	for _, ov := range t.Overrides {
		work.Apply(ov)
	}
	s.ValueChain = append(s.ValueChain, t)
	s.ProcessProductionCosts = append(s.ProcessProductionCosts, ProcessCost{
		Technology: t.Name,
		Cost:       t.ProductionCost,
	})
	for _, line := range t.AnnualCosts {
		s.ProcessAnnualCosts = append(s.ProcessAnnualCosts, ProcessAnnualCost{
			Technology: t.Name,
			Category:   line.Category,
			Value:      line.Value,
		})
	}
}

// solveMassBalance validates every pathway and computes virgin production,
// per-technology throughput, and end-of-cycle leftovers.
//
// Closed loops follow the geometric decay of material surviving each reuse
// cycle: with survival rate e per cycle and n cycles, delivering f*FU of
// usable product requires virgin production f*FU / (1 + e + ... + e^n), and
// the material entering pass i of the loop is that virgin amount times e^i.
func (c *Composer) solveMassBalance(cfg ScenarioConfig, design *dataset.Design, structure *dataset.Structure) ([]pathPlan, error) {
	if cfg.Process == "" || cfg.Product == "" {
		return nil, &ValidationError{Field: "process", Reason: "process and product must be set"}
	}
	if cfg.FunctionalUnit <= 0 {
		return nil, &ValidationError{Field: "functional_unit", Reason: fmt.Sprintf("must be > 0, got %g", cfg.FunctionalUnit)}
	}
	if len(cfg.Pathways) == 0 {
		return nil, &ValidationError{Field: "pathways", Reason: "at least one pathway is required"}
	}

	fu := cfg.FunctionalUnit
	plans := make([]pathPlan, 0, len(cfg.Pathways))

	for i, p := range cfg.Pathways {
		field := fmt.Sprintf("pathways[%d] (%s)", i, p.Technology)
		if p.Technology == "" || p.Product == "" {
			return nil, &ValidationError{Field: field, Reason: "technology and product must be set"}
		}
		if p.Fraction < 0 || p.Fraction > 1 {
			return nil, &ValidationError{Field: field, Reason: fmt.Sprintf("fraction must be in [0, 1], got %g", p.Fraction)}
		}
		if p.Cycles < 0 {
			return nil, &ValidationError{Field: field, Reason: fmt.Sprintf("cycles must be >= 0, got %d", p.Cycles)}
		}

		pl := pathPlan{p: p}
		switch p.Kind {
		case PathwayClosedLoopSingle:
			e, err := c.loopEfficiency(design, p.Technology, field)
			if err != nil {
				return nil, err
			}
			denom := geometricSum(e, p.Cycles)
			pl.virgin = p.Fraction * fu / denom
			// Total material across all n+1 passes through the loop.
			for pass := 0; pass <= p.Cycles; pass++ {
				pl.throughput += p.Fraction * fu * powi(e, pass) / denom
			}
			pl.leftover = pl.virgin * p.Fraction * powi(e, p.Cycles)

		case PathwayClosedLoopTwoStage:
			e, err := c.loopEfficiency(design, p.Technology, field)
			if err != nil {
				return nil, err
			}
			downstream := p.Downstream
			if downstream == "" {
				var ok bool
				downstream, ok = structure.DownstreamOf(p.Technology)
				if !ok {
					return nil, &ValidationError{Field: field, Reason: "no downstream technology in structure data"}
				}
			}
			eDown, err := c.loopEfficiency(design, downstream, field)
			if err != nil {
				return nil, err
			}
			// Material survives one use cycle only by passing through both
			// stages of the loop.
			eLoop := e * eDown
			denom := geometricSum(eLoop, p.Cycles)
			pl.virgin = p.Fraction * fu / denom
			pl.downstream = downstream
			// Regenerated product made from recycled feedstock over all
			// passes, required from the downstream step.
			for pass := 0; pass <= p.Cycles; pass++ {
				pl.downstreamOutput += p.Fraction * fu * powi(eLoop, pass) / denom
			}
			pl.throughput = c.RecoverySplit * pl.downstreamOutput / eDown
			pl.leftover = pl.virgin * p.Fraction * powi(eLoop, p.Cycles)

		case PathwaySimple:
			pl.virgin = fu * p.Fraction
			pl.throughput = fu * p.Fraction
			if !c.TerminalSinks[p.Technology] {
				e, ok := design.TechnologyValue(p.Technology, dataset.VarOutputEfficiency)
				if !ok {
					return nil, &ValidationError{Field: field, Reason: "no Output efficiency row in design data"}
				}
				pl.leftover = fu * p.Fraction * e
			}

		default:
			return nil, &ValidationError{Field: field, Reason: fmt.Sprintf("unknown pathway kind %v", p.Kind)}
		}
		plans = append(plans, pl)
	}

	return plans, nil
}

// loopEfficiency reads a closed-loop survival rate, rejecting values the
// geometric-series denominators cannot accept.
func (c *Composer) loopEfficiency(design *dataset.Design, technology, field string) (float64, error) {
	e, ok := design.TechnologyValue(technology, dataset.VarOutputEfficiency)
	if !ok {
		return 0, &ValidationError{Field: field, Reason: technology + " has no Output efficiency row in design data"}
	}
	if e <= 0 || e > 1 {
		return 0, &ValidationError{Field: field, Reason: fmt.Sprintf("%s Output efficiency must be in (0, 1], got %g", technology, e)}
	}
	return e, nil
}

// BuildScenario builds a scenario with the default barrier-film composer.
func BuildScenario(cfg ScenarioConfig, design *dataset.Design, finan *dataset.Financial, structure *dataset.Structure) (*Scenario, error) {
	return NewComposer().BuildScenario(cfg, design, finan, structure)
}
