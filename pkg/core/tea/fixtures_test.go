package tea

import "barrier_tea/pkg/core/dataset"

// testTables builds a small but complete TEA dataset covering virgin film
// production, both closed-loop recyclers, landfilling, and incineration.
// Rates are per operating hour; the financial table uses 1000 operating hours
// and 2000 working hours per year to keep hand calculations simple.
func testTables() (*dataset.Design, *dataset.Financial, *dataset.Structure) {
	design := &dataset.Design{Rows: []dataset.Row{
		// Virgin barrier film production.
		{Technology: ProcessBarrierFilm, Variable: dataset.VarOutputEfficiency, Index: ProductBarrierFilm, Value: 0.8},
		{Technology: ProcessBarrierFilm, Variable: dataset.VarCapitalScale, Index: "Extruder", Value: 2},
		{Technology: ProcessBarrierFilm, Variable: dataset.VarCapitalDeprec, Index: "Extruder", Value: 10},
		{Technology: ProcessBarrierFilm, Variable: dataset.VarInput, Index: "Nylon 6", Value: 10},
		{Technology: ProcessBarrierFilm, Variable: dataset.VarInput, Index: "Polyethylene", Value: 20},
		{Technology: ProcessBarrierFilm, Variable: dataset.VarLabor, Index: "Operator", Value: 2},
		{Technology: ProcessBarrierFilm, Variable: dataset.VarUtilities, Index: "Electricity", Value: 50},
		{Technology: ProcessBarrierFilm, Variable: dataset.VarOutput, Index: ProductBarrierFilm, Value: 100},
		{Technology: ProcessBarrierFilm, Variable: dataset.VarOutput, Index: "Scrap pellets", Value: 5},

		// Single-stage closed loop: cleaning returns ready-to-use film.
		{Technology: ProcessMechanicalClean, Variable: dataset.VarOutputEfficiency, Index: ProductBarrierFilm, Value: 0.5},
		{Technology: ProcessMechanicalClean, Variable: dataset.VarCapitalScale, Index: "Washer", Value: 1},
		{Technology: ProcessMechanicalClean, Variable: dataset.VarCapitalDeprec, Index: "Washer", Value: 5},
		{Technology: ProcessMechanicalClean, Variable: dataset.VarInput, Index: "Solvent", Value: 2},
		{Technology: ProcessMechanicalClean, Variable: dataset.VarLabor, Index: "Operator", Value: 1},
		{Technology: ProcessMechanicalClean, Variable: dataset.VarUtilities, Index: "Electricity", Value: 10},
		{Technology: ProcessMechanicalClean, Variable: dataset.VarOutput, Index: ProductBarrierFilm, Value: 80},
		{Technology: ProcessMechanicalClean, Variable: dataset.VarOutput, Index: "Recovered resin", Value: 4},

		// Two-stage closed loop: solvent treatment feeds film regeneration.
		{Technology: ProcessSolventTreatment, Variable: dataset.VarOutputEfficiency, Index: "Recovered polyethylene", Value: 0.6},
		{Technology: ProcessSolventTreatment, Variable: dataset.VarInput, Index: ProductBarrierFilm, Value: 30},
		{Technology: ProcessSolventTreatment, Variable: dataset.VarLabor, Index: "Operator", Value: 1},
		{Technology: ProcessSolventTreatment, Variable: dataset.VarOutput, Index: "Recovered polyethylene", Value: 40},

		// Terminal sinks.
		{Technology: ProcessLandfilling, Variable: dataset.VarOutputEfficiency, Index: ProductLandfilledWaste, Value: 1.0},
		{Technology: ProcessLandfilling, Variable: dataset.VarInput, Index: ProductBarrierFilm, Value: 50},
		{Technology: ProcessLandfilling, Variable: dataset.VarLabor, Index: "Operator", Value: 1},
		{Technology: ProcessLandfilling, Variable: dataset.VarOutput, Index: ProductLandfilledWaste, Value: 50},

		{Technology: ProcessIncineration, Variable: dataset.VarOutputEfficiency, Index: "Recovered energy", Value: 1.0},
		{Technology: ProcessIncineration, Variable: dataset.VarInput, Index: ProductBarrierFilm, Value: 10},
		{Technology: ProcessIncineration, Variable: dataset.VarLabor, Index: "Operator", Value: 1},
		{Technology: ProcessIncineration, Variable: dataset.VarOutput, Index: "Recovered energy", Value: 10},
	}}

	finan := &dataset.Financial{Rows: []dataset.FinRow{
		{Category: "Parameter", Variable: dataset.VarOperatingHours, Index: "Annual", Value: 1000},
		{Category: "Parameter", Variable: dataset.VarWorkingHours, Index: "Annual", Value: 2000},

		{Category: dataset.CategoryCost, Variable: "Capital", Index: "Extruder", Value: 100000},
		{Category: dataset.CategoryCost, Variable: "Capital", Index: "Washer", Value: 50000},
		{Category: dataset.CategoryCostMultiplier, Variable: "Capital", Index: dataset.IndexInstallation, Value: 0.5},
		{Category: dataset.CategoryCostMultiplier, Variable: "Capital", Index: dataset.IndexMaintenance, Value: 0.1},

		{Category: dataset.CategoryCost, Variable: dataset.VarInput, Index: "Nylon 6", Value: 2.0},
		{Category: dataset.CategoryCost, Variable: dataset.VarInput, Index: "Polyethylene", Value: 1.0},
		{Category: dataset.CategoryCost, Variable: dataset.VarInput, Index: ProductBarrierFilm, Value: 3.0},
		{Category: dataset.CategoryCost, Variable: dataset.VarInput, Index: "Solvent", Value: 4.0},

		{Category: dataset.CategoryCost, Variable: dataset.VarLabor, Index: "Operator", Value: 30},
		{Category: dataset.CategoryCostMultiplier, Variable: dataset.VarLabor, Index: "Burden", Value: 0.5},

		{Category: dataset.CategoryCost, Variable: dataset.VarUtilities, Index: "Electricity", Value: 0.1},
		{Category: dataset.CategoryCost, Variable: "Waste", Index: dataset.IndexWasteDisposal, Value: 0.05},

		{Category: dataset.CategoryCost, Variable: dataset.VarOutput, Index: ProductBarrierFilm, Value: 5.0},
		{Category: dataset.CategoryCost, Variable: dataset.VarOutput, Index: "Scrap pellets", Value: 0.5},
		{Category: dataset.CategoryCost, Variable: dataset.VarOutput, Index: "Recovered resin", Value: 1.5},
		{Category: dataset.CategoryCost, Variable: dataset.VarOutput, Index: "Recovered energy", Value: 0.2},
		{Category: dataset.CategoryCost, Variable: dataset.VarOutput, Index: ProductLandfilledWaste, Value: 0.0},
	}}

	structure := &dataset.Structure{Links: []dataset.Link{
		{Technology: ProcessSolventTreatment, Downstream: ProcessBarrierFilm},
	}}

	return design, finan, structure
}

// costByCategory indexes annual cost lines for assertions.
func costByCategory(lines []CostLine) map[string]float64 {
	out := make(map[string]float64, len(lines))
	for _, c := range lines {
		out[c.Category] = c.Value
	}
	return out
}
