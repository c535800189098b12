// Package pricing builds the process-wide MaterialRates.
// Rates are layered once at startup (defaults, HCL standards file, price
// workbook) and never change afterwards.
package pricing

import (
	"github.com/shopspring/decimal"

	"construction-cost/core/types"
)

// SourceDefaults names the built-in layer
const SourceDefaults = "defaults"

// Defaults returns the built-in rates in INR.
// Every call returns a fresh copy.
func Defaults() types.MaterialRates {
	return types.MaterialRates{
		Currency: types.CurrencyINR,
		Prices: map[types.Material]types.Price{
			types.MaterialCement:    price(420, types.UnitBag, 1),
			types.MaterialSand:      price(1200, types.UnitM3, 1),
			types.MaterialAggregate: price(900, types.UnitM3, 1),
			types.MaterialSteel:     price(65, types.UnitKg, 1),
			types.MaterialBrick:     price(350, types.UnitNos, 100),
			types.MaterialTile:      price(300, types.UnitM2, 1),
			types.MaterialPaint:     price(500, types.UnitLitre, 1),
			types.MaterialPlaster:   price(2000, types.UnitM3, 1),
		},
		Standards: DefaultStandards(),
		Plans: map[types.Plan]types.PlanFactor{
			types.PlanEconomy:  {Quantity: 1.08, Rate: 0.90},
			types.PlanStandard: {Quantity: 1, Rate: 1},
			types.PlanPremium:  {Quantity: 0.95, Rate: 1.15},
		},
		Sources: []string{SourceDefaults},
	}
}

// DefaultStandards returns nominal-mix coefficients in common Indian practice
func DefaultStandards() types.Standards {
	return types.Standards{
		CementBagKg:   50,
		CementDensity: 1440,
		DryConcrete:   1.54,
		DryMortar:     1.33,
		DryPlaster:    1.27,
		PCCMix:        types.Ratio{Cement: 1, Sand: 4, Aggregate: 8},
		RCCMix: map[types.ConcreteGrade]types.Ratio{
			types.GradeM20: {Cement: 1, Sand: 1.5, Aggregate: 3},
			types.GradeM25: {Cement: 1, Sand: 1, Aggregate: 2},
			types.GradeM30: {Cement: 1, Sand: 0.75, Aggregate: 1.5},
		},
		MortarMix: map[types.MortarMix]types.Ratio{
			types.Mortar1to3: {Cement: 1, Sand: 3},
			types.Mortar1to4: {Cement: 1, Sand: 4},
			types.Mortar1to6: {Cement: 1, Sand: 6},
		},
		PlasterMix: types.Ratio{Cement: 1, Sand: 4},
		SteelFoundation: map[types.FoundationType]float64{
			types.FoundationIsolated: 90,
			types.FoundationCombined: 100,
			types.FoundationStrip:    80,
			types.FoundationRaft:     110,
			types.FoundationPile:     120,
		},
		SteelColumn:   130,
		SteelBeam:     120,
		SteelSlab:     100,
		BrickLengthMM: 230,
		BrickWidthMM:  115,
		BrickHeightMM: 75,
		BrickJointMM:  10,
		BrickWastage:  0.05,
		TileWastage:   0.05,
		PaintCoverage: map[types.PaintType]float64{
			types.PaintEmulsion:  10,
			types.PaintEnamel:    11,
			types.PaintDistemper: 8,
		},
	}
}

func price(rate int64, unit string, basis int64) types.Price {
	return types.Price{Rate: decimal.NewFromInt(rate), Unit: unit, Basis: basis}
}
