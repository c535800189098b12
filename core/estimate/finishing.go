package estimate

import (
	"fmt"

	"construction-cost/core/types"
)

type finishingTakeoff struct {
	internalArea  float64
	externalArea  float64
	plasterVolume float64
	flooringArea  float64
	tiles         float64
	paintArea     float64
	paintLitres   float64
}

func (f finishingTakeoff) result() types.FinishingQuantities {
	return types.FinishingQuantities{
		InternalPlasterArea: round(f.internalArea, 2),
		ExternalPlasterArea: round(f.externalArea, 2),
		PlasterVolume:       round(f.plasterVolume, 3),
		FlooringArea:        round(f.flooringArea, 2),
		Tiles:               round(f.tiles, 0),
		PaintArea:           round(f.paintArea, 2),
		PaintLitres:         round(f.paintLitres, 2),
	}
}

// plasterAreas returns the internal and external wall faces in m2.
// Internal walls are plastered on both sides, external walls on the inside
// and the outside.
func (t *takeoff) plasterAreas() (internal, external float64) {
	s := t.spec
	w := s.Walls
	height := s.WallHeight().Meters() * float64(s.Floors)
	internal = (w.ExternalLength.Meters() + 2*w.InternalLength.Meters()) * height
	external = w.ExternalLength.Meters() * height
	return internal, external
}

func (t *takeoff) takeFinishing() {
	fin := t.spec.Finishing
	if fin.Plaster {
		t.takePlaster()
	} else {
		t.note("Plaster not included")
	}
	if fin.Tiles {
		t.takeTiles()
	} else {
		t.note("Floor tiles not included")
	}
	if fin.Paint {
		t.takePaint()
	} else {
		t.note("Paint not included")
	}
}

func (t *takeoff) takePlaster() {
	fin := t.spec.Finishing
	std := t.std
	f := &t.finishing

	f.internalArea, f.externalArea = t.plasterAreas()
	f.plasterVolume = f.internalArea*fin.InternalPlaster.Meters() + f.externalArea*fin.ExternalPlaster.Meters()

	dry := f.plasterVolume * std.DryPlaster
	mix := split(dry, std.PlasterMix, std)
	basis := fmt.Sprintf("plaster %.3f m3 x %s dry, mix %s", f.plasterVolume, ftoa(std.DryPlaster), std.PlasterMix)

	t.add(draft{
		id: "cement.plaster", label: "Cement for plaster", category: types.CategoryCement,
		material: types.MaterialCement, quantity: mix.cementBags, discrete: true, formula: basis,
	})
	t.add(draft{
		id: "sand.plaster", label: "Sand for plaster", category: types.CategorySand,
		material: types.MaterialSand, quantity: mix.sand, formula: basis,
	})
	t.add(draft{
		id: "finishing.plaster", label: "Plaster application", category: types.CategoryFinishing,
		material: types.MaterialPlaster, quantity: f.plasterVolume,
		formula: fmt.Sprintf("%.2f m2 x %s in + %.2f m2 x %s in",
			f.internalArea, ftoa(float64(fin.InternalPlaster)), f.externalArea, ftoa(float64(fin.ExternalPlaster))),
	})

	t.note("Plaster %s in internal, %s in external, mix %s",
		ftoa(float64(fin.InternalPlaster)), ftoa(float64(fin.ExternalPlaster)), std.PlasterMix)
}

func (t *takeoff) takeTiles() {
	fin := t.spec.Finishing
	std := t.std
	f := &t.finishing

	f.flooringArea = fin.FlooringArea.SquareMeters()
	edge := types.Inches(fin.TileSize).Meters()
	f.tiles = ceilWhole(f.flooringArea / (edge * edge) * (1 + std.TileWastage))

	t.add(draft{
		id: "finishing.tiles", label: fmt.Sprintf("Floor tiles %dx%d in", fin.TileSize, fin.TileSize),
		category: types.CategoryFinishing, material: types.MaterialTile,
		quantity: f.flooringArea * (1 + std.TileWastage),
		formula:  fmt.Sprintf("%.2f m2 x %s wastage, %s tiles", f.flooringArea, ftoa(1+std.TileWastage), ftoa(f.tiles)),
	})

	t.note("Tiles %d in square, %s%% wastage, priced per m2 laid",
		fin.TileSize, ftoa(std.TileWastage*100))
}

func (t *takeoff) takePaint() {
	fin := t.spec.Finishing
	std := t.std
	f := &t.finishing

	internal, external := t.plasterAreas()
	f.paintArea = internal + external
	coverage := std.PaintCoverage[fin.PaintType]
	f.paintLitres = f.paintArea * float64(fin.PaintCoats) / coverage

	t.add(draft{
		id: "finishing.paint", label: fmt.Sprintf("Paint (%s)", fin.PaintType),
		category: types.CategoryFinishing, material: types.MaterialPaint, quantity: f.paintLitres,
		formula: fmt.Sprintf("%.2f m2 x %d coats / %s m2/L", f.paintArea, fin.PaintCoats, ftoa(coverage)),
	})

	t.note("Paint %s, %d coats at %s m2/L per coat", fin.PaintType, fin.PaintCoats, ftoa(coverage))
}
