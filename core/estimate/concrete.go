package estimate

import (
	"fmt"

	"construction-cost/core/types"
)

// concreteTakeoff holds wet volumes in m3
type concreteTakeoff struct {
	pcc, footing, columns, beams, slab float64
}

func (c concreteTakeoff) rcc() float64 {
	return c.footing + c.columns + c.beams + c.slab
}

func (c concreteTakeoff) result() types.ConcreteVolumes {
	return types.ConcreteVolumes{
		PCC:     round(c.pcc, 3),
		Footing: round(c.footing, 3),
		Columns: round(c.columns, 3),
		Beams:   round(c.beams, 3),
		Slab:    round(c.slab, 3),
	}
}

// mixSplit is a dry volume split into its ingredients
type mixSplit struct {
	cementBags float64
	sand       float64
	aggregate  float64
}

// split divides a dry volume by the mix proportions. Cement is converted to
// whole bags; aggregate is zero for mortar and plaster mixes.
func split(dry float64, mix types.Ratio, std types.Standards) mixSplit {
	parts := mix.Parts()
	cementM3 := dry * mix.Cement / parts
	return mixSplit{
		cementBags: ceilWhole(cementM3 * std.CementDensity / std.CementBagKg),
		sand:       dry * mix.Sand / parts,
		aggregate:  dry * mix.Aggregate / parts,
	}
}

func (t *takeoff) takeConcrete() {
	s := t.spec
	floors := float64(s.Floors)
	f := s.Foundation
	count := float64(f.Count)

	c := &t.concrete
	c.pcc = count * f.Length.Meters() * f.Width.Meters() * f.PCCThickness.Meters()
	c.footing = count * f.Length.Meters() * f.Width.Meters() * f.Depth.Meters()
	if s.HasColumns() {
		c.columns = float64(s.Columns.Count) * floors *
			s.Columns.Length.Meters() * s.Columns.Width.Meters() * s.ColumnHeight().Meters()
	}
	c.beams = s.Beams.TotalLength.Meters() * s.Beams.Width.Meters() * s.Beams.Depth.Meters() * floors
	c.slab = s.Slab.Area.SquareMeters() * s.Slab.Thickness.Meters() * floors

	std := t.std
	rccMix := std.RCCMix[s.ConcreteGrade]

	pccDry := c.pcc * std.DryConcrete
	pcc := split(pccDry, std.PCCMix, std)
	rccDry := c.rcc() * std.DryConcrete
	rcc := split(rccDry, rccMix, std)

	pccBasis := fmt.Sprintf("PCC %.3f m3 x %s dry, mix %s", c.pcc, ftoa(std.DryConcrete), std.PCCMix)
	rccBasis := fmt.Sprintf("RCC %.3f m3 x %s dry, mix %s", c.rcc(), ftoa(std.DryConcrete), rccMix)

	t.add(draft{
		id: "cement.pcc", label: "Cement for PCC", category: types.CategoryCement,
		material: types.MaterialCement, quantity: pcc.cementBags, discrete: true, formula: pccBasis,
	})
	t.add(draft{
		id: "cement.rcc", label: "Cement for RCC", category: types.CategoryCement,
		material: types.MaterialCement, quantity: rcc.cementBags, discrete: true, formula: rccBasis,
	})
	t.add(draft{
		id: "sand.pcc", label: "Sand for PCC", category: types.CategorySand,
		material: types.MaterialSand, quantity: pcc.sand, formula: pccBasis,
	})
	t.add(draft{
		id: "sand.rcc", label: "Sand for RCC", category: types.CategorySand,
		material: types.MaterialSand, quantity: rcc.sand, formula: rccBasis,
	})
	t.add(draft{
		id: "aggregate.pcc", label: "Aggregate for PCC", category: types.CategoryAggregate,
		material: types.MaterialAggregate, quantity: pcc.aggregate, formula: pccBasis,
	})
	t.add(draft{
		id: "aggregate.rcc", label: "Aggregate for RCC", category: types.CategoryAggregate,
		material: types.MaterialAggregate, quantity: rcc.aggregate, formula: rccBasis,
	})

	steelFoundation := std.SteelFoundation[f.Type]
	for _, m := range []struct {
		id, label string
		volume    float64
		kgPerM3   float64
	}{
		{"steel.foundation", "Steel for footings", c.footing, steelFoundation},
		{"steel.columns", "Steel for columns", c.columns, std.SteelColumn},
		{"steel.beams", "Steel for beams", c.beams, std.SteelBeam},
		{"steel.slab", "Steel for slab", c.slab, std.SteelSlab},
	} {
		t.add(draft{
			id: m.id, label: m.label, category: types.CategorySteel,
			material: types.MaterialSteel, quantity: m.volume * m.kgPerM3,
			formula: fmt.Sprintf("%.3f m3 x %s kg/m3", m.volume, ftoa(m.kgPerM3)),
		})
	}

	t.note("Concrete grade %s, mix %s; PCC mix %s; dry volume factor %s",
		s.ConcreteGrade, rccMix, std.PCCMix, ftoa(std.DryConcrete))
	t.note("Cement bag %s kg at %s kg/m3, bags rounded up per use",
		ftoa(std.CementBagKg), ftoa(std.CementDensity))
	t.note("Steel kg/m3: %s foundation %s, columns %s, beams %s, slab %s",
		f.Type, ftoa(steelFoundation), ftoa(std.SteelColumn), ftoa(std.SteelBeam), ftoa(std.SteelSlab))
	if !s.HasColumns() {
		t.note("Load-bearing structure: no column concrete")
	}
}
