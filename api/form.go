package api

import (
	stderrors "errors"
	"net/url"
	"strconv"
	"strings"

	"go.uber.org/multierr"

	"construction-cost/core/types"
	"construction-cost/internal/errors"
)

// Form field names posted by the estimate form
const (
	FieldPlotLength      = "plot_length"
	FieldPlotWidth       = "plot_width"
	FieldFloors          = "num_floors"
	FieldFloorHeight     = "floor_height"
	FieldStructure       = "structure_type"
	FieldFootingType     = "footing_type"
	FieldFootings        = "num_footings"
	FieldFootingLength   = "footing_length"
	FieldFootingWidth    = "footing_width"
	FieldFootingDepth    = "footing_depth"
	FieldPCCThickness    = "pcc_thickness"
	FieldColumns         = "num_columns"
	FieldColumnLength    = "column_length"
	FieldColumnWidth     = "column_width"
	FieldColumnHeight    = "column_height"
	FieldBeamLength      = "total_beam_length"
	FieldBeamWidth       = "beam_width"
	FieldBeamDepth       = "beam_depth"
	FieldSlabArea        = "slab_area"
	FieldSlabThickness   = "slab_thickness"
	FieldExternalWall    = "external_wall_length"
	FieldInternalWall    = "internal_wall_length"
	FieldWallThickness   = "wall_thickness"
	FieldWallHeight      = "wall_height"
	FieldMortarMix       = "mortar_mix"
	FieldFinishPlaster   = "finish_plaster"
	FieldFinishTiles     = "finish_tiles"
	FieldFinishPaint     = "finish_paint"
	FieldFinishFlags     = "finish_flags"
	FieldInternalPlaster = "internal_plaster_thickness"
	FieldExternalPlaster = "external_plaster_thickness"
	FieldFlooringArea    = "flooring_area"
	FieldTileSize        = "tile_size"
	FieldPaintType       = "paint_type"
	FieldPaintCoats      = "paint_coats"
	FieldConcreteGrade   = "concrete_grade"
	FieldCementType      = "cement_type"
	FieldPlan            = "plan"
)

// formReader reads typed values and collects every parse error
type formReader struct {
	values url.Values
	err    error
	failed map[string]bool
}

func (r *formReader) fail(field, format string, args ...interface{}) {
	r.err = multierr.Append(r.err, errors.InvalidInput(field, format, args...))
	r.failed[field] = true
}

func (r *formReader) raw(name string) string {
	return strings.TrimSpace(r.values.Get(name))
}

// number reads a float. Blank optional fields are zero.
func (r *formReader) number(name, field string, required bool) float64 {
	s := r.raw(name)
	if s == "" {
		if required {
			r.fail(field, "is required")
		}
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		r.fail(field, "must be a number, got %q", s)
		return 0
	}
	return v
}

// count reads a whole number
func (r *formReader) count(name, field string, required bool) int {
	s := r.raw(name)
	if s == "" {
		if required {
			r.fail(field, "is required")
		}
		return 0
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		r.fail(field, "must be a whole number, got %q", s)
		return 0
	}
	return v
}

func (r *formReader) text(name string) string {
	return strings.ToLower(r.raw(name))
}

// flag reads a checkbox. A form without the finish_flags marker predates
// the checkboxes, so every finish defaults to on.
func (r *formReader) flag(name string) bool {
	if _, marked := r.values[FieldFinishFlags]; !marked {
		return true
	}
	switch strings.ToLower(r.raw(name)) {
	case "", "0", "off", "false", "no":
		return false
	}
	return true
}

// ParseForm builds a BuildingSpec from posted form values and validates it.
// Parse and validation errors are combined; a field reported as unparseable
// is not reported again by validation.
func ParseForm(values url.Values) (types.BuildingSpec, error) {
	r := &formReader{values: values, failed: make(map[string]bool)}

	spec := types.BuildingSpec{
		Plot: types.Plot{
			Length: types.Feet(r.number(FieldPlotLength, "plot.length", true)),
			Width:  types.Feet(r.number(FieldPlotWidth, "plot.width", true)),
		},
		Floors:      r.count(FieldFloors, "floors", true),
		FloorHeight: types.Feet(r.number(FieldFloorHeight, "floor_height", true)),
		Structure:   types.StructureType(r.text(FieldStructure)),
		Foundation: types.Foundation{
			Type:         types.FoundationType(r.text(FieldFootingType)),
			Count:        r.count(FieldFootings, "foundation.count", true),
			Length:       types.Feet(r.number(FieldFootingLength, "foundation.length", true)),
			Width:        types.Feet(r.number(FieldFootingWidth, "foundation.width", true)),
			Depth:        types.Feet(r.number(FieldFootingDepth, "foundation.depth", true)),
			PCCThickness: types.Inches(r.number(FieldPCCThickness, "foundation.pcc_thickness", true)),
		},
		Columns: types.Columns{
			Count:  r.count(FieldColumns, "columns.count", false),
			Length: types.Inches(r.number(FieldColumnLength, "columns.length", false)),
			Width:  types.Inches(r.number(FieldColumnWidth, "columns.width", false)),
			Height: types.Feet(r.number(FieldColumnHeight, "columns.height", false)),
		},
		Beams: types.Beams{
			TotalLength: types.Feet(r.number(FieldBeamLength, "beams.total_length", true)),
			Width:       types.Inches(r.number(FieldBeamWidth, "beams.width", true)),
			Depth:       types.Inches(r.number(FieldBeamDepth, "beams.depth", true)),
		},
		Slab: types.Slab{
			Area:      types.SquareFeet(r.number(FieldSlabArea, "slab.area", true)),
			Thickness: types.Inches(r.number(FieldSlabThickness, "slab.thickness", true)),
		},
		Walls: types.Walls{
			ExternalLength: types.Feet(r.number(FieldExternalWall, "walls.external_length", true)),
			InternalLength: types.Feet(r.number(FieldInternalWall, "walls.internal_length", false)),
			Thickness:      types.Inches(r.number(FieldWallThickness, "walls.thickness", true)),
			Height:         types.Feet(r.number(FieldWallHeight, "walls.height", false)),
			Mortar:         types.MortarMix(r.raw(FieldMortarMix)),
		},
		ConcreteGrade: types.ConcreteGrade(r.text(FieldConcreteGrade)),
		CementType:    types.CementType(r.text(FieldCementType)),
		Plan:          types.Plan(r.text(FieldPlan)),
	}

	fin := types.Finishing{
		Plaster: r.flag(FieldFinishPlaster),
		Tiles:   r.flag(FieldFinishTiles),
		Paint:   r.flag(FieldFinishPaint),
	}
	if fin.Plaster {
		fin.InternalPlaster = types.Inches(r.number(FieldInternalPlaster, "finishing.internal_plaster", true))
		fin.ExternalPlaster = types.Inches(r.number(FieldExternalPlaster, "finishing.external_plaster", true))
	}
	if fin.Tiles {
		fin.FlooringArea = types.SquareFeet(r.number(FieldFlooringArea, "finishing.flooring_area", true))
		fin.TileSize = r.count(FieldTileSize, "finishing.tile_size", true)
	}
	if fin.Paint {
		fin.PaintType = types.PaintType(r.text(FieldPaintType))
		fin.PaintCoats = r.count(FieldPaintCoats, "finishing.paint_coats", true)
	}
	spec.Finishing = fin

	err := r.err
	for _, e := range multierr.Errors(spec.Validate()) {
		var de *errors.Error
		if stderrors.As(e, &de) && r.failed[de.Field] {
			continue
		}
		err = multierr.Append(err, e)
	}
	if err != nil {
		return types.BuildingSpec{}, err
	}
	return spec, nil
}

// FormValues is the inverse of ParseForm, used to fill the form
func FormValues(s types.BuildingSpec) url.Values {
	v := url.Values{}
	set := func(name string, f float64) { v.Set(name, strconv.FormatFloat(f, 'f', -1, 64)) }
	setInt := func(name string, n int) { v.Set(name, strconv.Itoa(n)) }
	setBool := func(name string, b bool) {
		if b {
			v.Set(name, "on")
		}
	}

	set(FieldPlotLength, float64(s.Plot.Length))
	set(FieldPlotWidth, float64(s.Plot.Width))
	setInt(FieldFloors, s.Floors)
	set(FieldFloorHeight, float64(s.FloorHeight))
	v.Set(FieldStructure, string(s.Structure))
	v.Set(FieldFootingType, string(s.Foundation.Type))
	setInt(FieldFootings, s.Foundation.Count)
	set(FieldFootingLength, float64(s.Foundation.Length))
	set(FieldFootingWidth, float64(s.Foundation.Width))
	set(FieldFootingDepth, float64(s.Foundation.Depth))
	set(FieldPCCThickness, float64(s.Foundation.PCCThickness))
	setInt(FieldColumns, s.Columns.Count)
	set(FieldColumnLength, float64(s.Columns.Length))
	set(FieldColumnWidth, float64(s.Columns.Width))
	set(FieldColumnHeight, float64(s.Columns.Height))
	set(FieldBeamLength, float64(s.Beams.TotalLength))
	set(FieldBeamWidth, float64(s.Beams.Width))
	set(FieldBeamDepth, float64(s.Beams.Depth))
	set(FieldSlabArea, float64(s.Slab.Area))
	set(FieldSlabThickness, float64(s.Slab.Thickness))
	set(FieldExternalWall, float64(s.Walls.ExternalLength))
	set(FieldInternalWall, float64(s.Walls.InternalLength))
	set(FieldWallThickness, float64(s.Walls.Thickness))
	set(FieldWallHeight, float64(s.Walls.Height))
	v.Set(FieldMortarMix, string(s.Walls.Mortar))

	v.Set(FieldFinishFlags, "1")
	setBool(FieldFinishPlaster, s.Finishing.Plaster)
	setBool(FieldFinishTiles, s.Finishing.Tiles)
	setBool(FieldFinishPaint, s.Finishing.Paint)
	set(FieldInternalPlaster, float64(s.Finishing.InternalPlaster))
	set(FieldExternalPlaster, float64(s.Finishing.ExternalPlaster))
	set(FieldFlooringArea, float64(s.Finishing.FlooringArea))
	setInt(FieldTileSize, s.Finishing.TileSize)
	v.Set(FieldPaintType, string(s.Finishing.PaintType))
	setInt(FieldPaintCoats, s.Finishing.PaintCoats)

	v.Set(FieldConcreteGrade, string(s.ConcreteGrade))
	v.Set(FieldCementType, string(s.CementType))
	v.Set(FieldPlan, string(s.Plan))
	return v
}
