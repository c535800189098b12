package estimate

import (
	"github.com/shopspring/decimal"

	"construction-cost/core/types"
)

// BOQ sections for takeoff rows
const (
	SectionConcrete  = "Concrete"
	SectionMasonry   = "Masonry"
	SectionFinishing = "Finishing takeoff"
)

// BillOfQuantities lists the takeoff quantities without price, followed by
// every priced line item grouped by category. Zero quantities are left out.
func BillOfQuantities(r *types.EstimateResult) []types.BOQRow {
	var rows []types.BOQRow
	takeoff := func(section, item, unit string, qty decimal.Decimal) {
		if qty.IsPositive() {
			rows = append(rows, types.BOQRow{Section: section, Item: item, Unit: unit, Quantity: qty})
		}
	}

	c := r.Concrete
	takeoff(SectionConcrete, "PCC bed", types.UnitM3, c.PCC)
	takeoff(SectionConcrete, "Footings", types.UnitM3, c.Footing)
	takeoff(SectionConcrete, "Columns", types.UnitM3, c.Columns)
	takeoff(SectionConcrete, "Beams", types.UnitM3, c.Beams)
	takeoff(SectionConcrete, "Slab", types.UnitM3, c.Slab)

	m := r.Masonry
	takeoff(SectionMasonry, "Brick walls", types.UnitM3, m.WallVolume)
	takeoff(SectionMasonry, "Bricks", types.UnitNos, m.Bricks)
	takeoff(SectionMasonry, "Mortar (wet)", types.UnitM3, m.MortarWet)

	f := r.Finishing
	takeoff(SectionFinishing, "Internal plaster", types.UnitM2, f.InternalPlasterArea)
	takeoff(SectionFinishing, "External plaster", types.UnitM2, f.ExternalPlasterArea)
	takeoff(SectionFinishing, "Plaster (wet)", types.UnitM3, f.PlasterVolume)
	takeoff(SectionFinishing, "Flooring", types.UnitM2, f.FlooringArea)
	takeoff(SectionFinishing, "Tiles", types.UnitNos, f.Tiles)
	takeoff(SectionFinishing, "Paint", types.UnitLitre, f.PaintLitres)

	for _, cc := range r.Categories {
		for _, item := range cc.Items {
			rows = append(rows, types.BOQRow{
				Section:  cc.Label,
				Item:     item.Label,
				Unit:     item.Unit,
				Quantity: item.Quantity,
				Rate:     item.Rate,
				Per:      item.RateBasis,
				Amount:   item.Amount,
				Priced:   true,
			})
		}
	}
	return rows
}

// BOQTotal sums the priced rows
func BOQTotal(rows []types.BOQRow) decimal.Decimal {
	total := decimal.Zero
	for _, row := range rows {
		if row.Priced {
			total = total.Add(row.Amount)
		}
	}
	return total
}
