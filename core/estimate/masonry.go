package estimate

import (
	"fmt"

	"construction-cost/core/types"
)

type masonryTakeoff struct {
	wallVolume  float64
	bricksPerM3 float64
	bricks      float64
	mortarWet   float64
	mortarDry   float64
}

func (m masonryTakeoff) result(mix types.MortarMix) types.MasonryQuantities {
	return types.MasonryQuantities{
		WallVolume:  round(m.wallVolume, 3),
		BricksPerM3: round(m.bricksPerM3, 2),
		Bricks:      round(m.bricks, 0),
		MortarWet:   round(m.mortarWet, 3),
		MortarDry:   round(m.mortarDry, 3),
		MortarMix:   mix,
	}
}

func (t *takeoff) takeMasonry() {
	s := t.spec
	std := t.std
	w := s.Walls

	length := w.ExternalLength.Meters() + w.InternalLength.Meters()
	volume := length * float64(s.Floors) * s.WallHeight().Meters() * w.Thickness.Meters()

	l := std.BrickLengthMM * types.MmToM
	b := std.BrickWidthMM * types.MmToM
	h := std.BrickHeightMM * types.MmToM
	j := std.BrickJointMM * types.MmToM

	m := &t.masonry
	m.wallVolume = volume
	m.bricksPerM3 = 1 / ((l + j) * (b + j) * (h + j))

	net := volume * m.bricksPerM3
	m.bricks = ceilWhole(net * (1 + std.BrickWastage))
	m.mortarWet = volume - net*l*b*h
	if m.mortarWet < 0 {
		m.mortarWet = 0
	}
	m.mortarDry = m.mortarWet * std.DryMortar

	mix := std.MortarMix[w.Mortar]
	mortar := split(m.mortarDry, mix, std)
	basis := fmt.Sprintf("mortar %.3f m3 x %s dry, mix %s", m.mortarWet, ftoa(std.DryMortar), mix)

	t.add(draft{
		id: "bricks.walls", label: "Bricks for walls", category: types.CategoryBricks,
		material: types.MaterialBrick, quantity: m.bricks, discrete: true,
		formula: fmt.Sprintf("%.3f m3 x %.2f bricks/m3 x %s wastage", volume, m.bricksPerM3, ftoa(1+std.BrickWastage)),
	})
	t.add(draft{
		id: "cement.mortar", label: "Cement for mortar", category: types.CategoryCement,
		material: types.MaterialCement, quantity: mortar.cementBags, discrete: true, formula: basis,
	})
	t.add(draft{
		id: "sand.mortar", label: "Sand for mortar", category: types.CategorySand,
		material: types.MaterialSand, quantity: mortar.sand, formula: basis,
	})

	t.note("Brick %sx%sx%s mm with %s mm joints, %s%% wastage; mortar %s",
		ftoa(std.BrickLengthMM), ftoa(std.BrickWidthMM), ftoa(std.BrickHeightMM),
		ftoa(std.BrickJointMM), ftoa(std.BrickWastage*100), w.Mortar)
}
