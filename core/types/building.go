package types

import (
	"go.uber.org/multierr"

	"construction-cost/internal/errors"
)

// StructureType is the structural system of the building
type StructureType string

const (
	StructureRCCFramed   StructureType = "rcc_framed"
	StructureLoadBearing StructureType = "load_bearing"
)

// IsValid checks if the structure type is known
func (s StructureType) IsValid() bool {
	switch s {
	case StructureRCCFramed, StructureLoadBearing:
		return true
	}
	return false
}

// FoundationType selects the footing system. The geometry is the same for
// every type; the type picks the reinforcement coefficient.
type FoundationType string

const (
	FoundationIsolated FoundationType = "isolated"
	FoundationCombined FoundationType = "combined"
	FoundationStrip    FoundationType = "strip"
	FoundationRaft     FoundationType = "raft"
	FoundationPile     FoundationType = "pile"
)

// FoundationTypes lists the known foundation types in display order
var FoundationTypes = []FoundationType{
	FoundationIsolated, FoundationCombined, FoundationStrip, FoundationRaft, FoundationPile,
}

// IsValid checks if the foundation type is known
func (f FoundationType) IsValid() bool {
	for _, k := range FoundationTypes {
		if f == k {
			return true
		}
	}
	return false
}

// MortarMix is the cement:sand proportion of brickwork mortar
type MortarMix string

const (
	Mortar1to3 MortarMix = "1:3"
	Mortar1to4 MortarMix = "1:4"
	Mortar1to6 MortarMix = "1:6"
)

// MortarMixes lists the known mortar mixes, richest first
var MortarMixes = []MortarMix{Mortar1to3, Mortar1to4, Mortar1to6}

// IsValid checks if the mortar mix is known
func (m MortarMix) IsValid() bool {
	for _, k := range MortarMixes {
		if m == k {
			return true
		}
	}
	return false
}

// PaintType is the wall paint system
type PaintType string

const (
	PaintEmulsion  PaintType = "emulsion"
	PaintEnamel    PaintType = "enamel"
	PaintDistemper PaintType = "distemper"
)

// PaintTypes lists the known paint types
var PaintTypes = []PaintType{PaintEmulsion, PaintEnamel, PaintDistemper}

// IsValid checks if the paint type is known
func (p PaintType) IsValid() bool {
	for _, k := range PaintTypes {
		if p == k {
			return true
		}
	}
	return false
}

// ConcreteGrade is the RCC grade (characteristic strength)
type ConcreteGrade string

const (
	GradeM20 ConcreteGrade = "m20"
	GradeM25 ConcreteGrade = "m25"
	GradeM30 ConcreteGrade = "m30"
)

// ConcreteGrades lists the known grades
var ConcreteGrades = []ConcreteGrade{GradeM20, GradeM25, GradeM30}

// IsValid checks if the grade is known
func (g ConcreteGrade) IsValid() bool {
	for _, k := range ConcreteGrades {
		if g == k {
			return true
		}
	}
	return false
}

// CementType is reported on the estimate; it does not change quantities
type CementType string

const (
	CementOPC43 CementType = "opc43"
	CementOPC53 CementType = "opc53"
	CementPPC   CementType = "ppc"
)

// CementTypes lists the known cement types
var CementTypes = []CementType{CementOPC43, CementOPC53, CementPPC}

// IsValid checks if the cement type is known
func (c CementType) IsValid() bool {
	for _, k := range CementTypes {
		if c == k {
			return true
		}
	}
	return false
}

// Plan is a procurement plan that scales quantities and prices
type Plan string

const (
	PlanEconomy  Plan = "economy"
	PlanStandard Plan = "standard"
	PlanPremium  Plan = "premium"
)

// Plans lists every plan in comparison order
var Plans = []Plan{PlanEconomy, PlanStandard, PlanPremium}

// OrDefault returns the plan, or standard when empty
func (p Plan) OrDefault() Plan {
	if p == "" {
		return PlanStandard
	}
	return p
}

// IsValid checks if the plan is known. The empty plan is valid.
func (p Plan) IsValid() bool {
	switch p.OrDefault() {
	case PlanEconomy, PlanStandard, PlanPremium:
		return true
	}
	return false
}

// TileSizes are the accepted square tile edges in inches
var TileSizes = []int{12, 16, 24, 32}

// MaxPaintCoats bounds the paint coat count
const MaxPaintCoats = 5

// Upper bounds on building parameters. They keep every derived volume and
// amount finite.
const (
	MaxFloors = 200
	MaxCount  = 100000

	MaxLength   Feet       = 100000
	MaxSection  Inches     = 1200
	MaxPlanArea SquareFeet = 10000000
)

// Plot is the site footprint
type Plot struct {
	Length Feet `json:"length"`
	Width  Feet `json:"width"`
}

// Area returns the plot area
func (p Plot) Area() SquareFeet {
	return SquareFeet(float64(p.Length) * float64(p.Width))
}

// Foundation describes the footings and the PCC bed under them
type Foundation struct {
	Type         FoundationType `json:"type"`
	Count        int            `json:"count"`
	Length       Feet           `json:"length"`
	Width        Feet           `json:"width"`
	Depth        Feet           `json:"depth"`
	PCCThickness Inches         `json:"pcc_thickness"`
}

// Columns describes RCC columns; the count is per floor
type Columns struct {
	Count  int    `json:"count"`
	Length Inches `json:"length"`
	Width  Inches `json:"width"`
	Height Feet   `json:"height"`
}

// Beams describes RCC beams; the length is per floor
type Beams struct {
	TotalLength Feet   `json:"total_length"`
	Width       Inches `json:"width"`
	Depth       Inches `json:"depth"`
}

// Slab describes the RCC slab cast on every floor
type Slab struct {
	Area      SquareFeet `json:"area"`
	Thickness Inches     `json:"thickness"`
}

// Walls describes brick masonry; lengths are per floor
type Walls struct {
	ExternalLength Feet      `json:"external_length"`
	InternalLength Feet      `json:"internal_length"`
	Thickness      Inches    `json:"thickness"`
	Height         Feet      `json:"height"`
	Mortar         MortarMix `json:"mortar"`
}

// Finishing holds the finishing selections
type Finishing struct {
	Plaster bool `json:"plaster"`
	Tiles   bool `json:"tiles"`
	Paint   bool `json:"paint"`

	InternalPlaster Inches `json:"internal_plaster"`
	ExternalPlaster Inches `json:"external_plaster"`

	FlooringArea SquareFeet `json:"flooring_area"`
	TileSize     int        `json:"tile_size"`

	PaintType  PaintType `json:"paint_type"`
	PaintCoats int       `json:"paint_coats"`
}

// BuildingSpec is the full set of parameters for one estimate.
// It is not modified once submitted.
type BuildingSpec struct {
	Plot          Plot          `json:"plot"`
	Floors        int           `json:"floors"`
	FloorHeight   Feet          `json:"floor_height"`
	Structure     StructureType `json:"structure"`
	Foundation    Foundation    `json:"foundation"`
	Columns       Columns       `json:"columns"`
	Beams         Beams         `json:"beams"`
	Slab          Slab          `json:"slab"`
	Walls         Walls         `json:"walls"`
	Finishing     Finishing     `json:"finishing"`
	ConcreteGrade ConcreteGrade `json:"concrete_grade"`
	CementType    CementType    `json:"cement_type"`
	Plan          Plan          `json:"plan,omitempty"`
}

// HasColumns reports whether column concrete is part of the structure
func (b *BuildingSpec) HasColumns() bool {
	return b.Structure == StructureRCCFramed
}

// ColumnHeight returns the column height, falling back to the floor height
func (b *BuildingSpec) ColumnHeight() Feet {
	if b.Columns.Height > 0 {
		return b.Columns.Height
	}
	return b.FloorHeight
}

// WallHeight returns the wall height, falling back to the floor height
func (b *BuildingSpec) WallHeight() Feet {
	if b.Walls.Height > 0 {
		return b.Walls.Height
	}
	return b.FloorHeight
}

// BuiltUpArea is the plot area times the number of floors
func (b *BuildingSpec) BuiltUpArea() SquareFeet {
	return SquareFeet(float64(b.Plot.Area()) * float64(b.Floors))
}

// Validate checks every field and returns all violations combined.
// Each violation is an input error naming the offending field.
func (b *BuildingSpec) Validate() error {
	var err error
	add := func(e error) { err = multierr.Append(err, e) }

	add(positive("plot.length", float64(b.Plot.Length), float64(MaxLength)))
	add(positive("plot.width", float64(b.Plot.Width), float64(MaxLength)))
	if b.Floors < 1 || b.Floors > MaxFloors {
		add(errors.InvalidInput("floors", "must be between 1 and %d, got %d", MaxFloors, b.Floors))
	}
	add(positive("floor_height", float64(b.FloorHeight), float64(MaxLength)))
	if !b.Structure.IsValid() {
		add(unknown("structure", string(b.Structure)))
	}

	f := b.Foundation
	if !f.Type.IsValid() {
		add(unknown("foundation.type", string(f.Type)))
	}
	if f.Count < 1 || f.Count > MaxCount {
		add(errors.InvalidInput("foundation.count", "must be between 1 and %d, got %d", MaxCount, f.Count))
	}
	add(positive("foundation.length", float64(f.Length), float64(MaxLength)))
	add(positive("foundation.width", float64(f.Width), float64(MaxLength)))
	add(positive("foundation.depth", float64(f.Depth), float64(MaxLength)))
	add(positive("foundation.pcc_thickness", float64(f.PCCThickness), float64(MaxSection)))

	c := b.Columns
	switch {
	case c.Count < 0:
		add(errors.InvalidInput("columns.count", "must not be negative, got %d", c.Count))
	case c.Count > MaxCount:
		add(errors.InvalidInput("columns.count", "must be at most %d, got %d", MaxCount, c.Count))
	case c.Count < 1 && b.Structure == StructureRCCFramed:
		add(errors.InvalidInput("columns.count", "a framed structure needs at least 1 column"))
	}
	if b.HasColumns() {
		add(positive("columns.length", float64(c.Length), float64(MaxSection)))
		add(positive("columns.width", float64(c.Width), float64(MaxSection)))
		add(nonNegative("columns.height", float64(c.Height), float64(MaxLength)))
	}

	add(positive("beams.total_length", float64(b.Beams.TotalLength), float64(MaxLength)))
	add(positive("beams.width", float64(b.Beams.Width), float64(MaxSection)))
	add(positive("beams.depth", float64(b.Beams.Depth), float64(MaxSection)))

	add(positive("slab.area", float64(b.Slab.Area), float64(MaxPlanArea)))
	add(positive("slab.thickness", float64(b.Slab.Thickness), float64(MaxSection)))

	w := b.Walls
	add(positive("walls.external_length", float64(w.ExternalLength), float64(MaxLength)))
	add(nonNegative("walls.internal_length", float64(w.InternalLength), float64(MaxLength)))
	add(positive("walls.thickness", float64(w.Thickness), float64(MaxSection)))
	add(nonNegative("walls.height", float64(w.Height), float64(MaxLength)))
	if !w.Mortar.IsValid() {
		add(unknown("walls.mortar", string(w.Mortar)))
	}

	fin := b.Finishing
	if fin.Plaster {
		add(positive("finishing.internal_plaster", float64(fin.InternalPlaster), float64(MaxSection)))
		add(positive("finishing.external_plaster", float64(fin.ExternalPlaster), float64(MaxSection)))
	}
	if fin.Tiles {
		add(positive("finishing.flooring_area", float64(fin.FlooringArea), float64(MaxPlanArea)))
		if !validTileSize(fin.TileSize) {
			add(errors.InvalidInput("finishing.tile_size", "must be one of 12, 16, 24 or 32 inches, got %d", fin.TileSize))
		}
	}
	if fin.Paint {
		if !fin.PaintType.IsValid() {
			add(unknown("finishing.paint_type", string(fin.PaintType)))
		}
		if fin.PaintCoats < 1 || fin.PaintCoats > MaxPaintCoats {
			add(errors.InvalidInput("finishing.paint_coats", "must be between 1 and %d, got %d", MaxPaintCoats, fin.PaintCoats))
		}
	}

	if !b.ConcreteGrade.IsValid() {
		add(unknown("concrete_grade", string(b.ConcreteGrade)))
	}
	if !b.CementType.IsValid() {
		add(unknown("cement_type", string(b.CementType)))
	}
	if !b.Plan.IsValid() {
		add(unknown("plan", string(b.Plan)))
	}

	return err
}

func positive(field string, v, limit float64) error {
	switch {
	case !(v > 0):
		return errors.InvalidInput(field, "must be greater than 0, got %g", v)
	case v > limit:
		return errors.InvalidInput(field, "must be at most %g, got %g", limit, v)
	}
	return nil
}

func nonNegative(field string, v, limit float64) error {
	switch {
	case !(v >= 0):
		return errors.InvalidInput(field, "must not be negative, got %g", v)
	case v > limit:
		return errors.InvalidInput(field, "must be at most %g, got %g", limit, v)
	}
	return nil
}

func unknown(field, value string) error {
	if value == "" {
		return errors.InvalidInput(field, "is required")
	}
	return errors.InvalidInput(field, "unknown value %q", value)
}

func validTileSize(size int) bool {
	for _, s := range TileSizes {
		if s == size {
			return true
		}
	}
	return false
}

// ExampleSpec returns a two-storey framed house on a 40 x 25 ft plot.
// The web form starts from these values.
func ExampleSpec() BuildingSpec {
	return BuildingSpec{
		Plot:        Plot{Length: 40, Width: 25},
		Floors:      2,
		FloorHeight: 10,
		Structure:   StructureRCCFramed,
		Foundation: Foundation{
			Type:         FoundationStrip,
			Count:        12,
			Length:       4,
			Width:        4,
			Depth:        1.5,
			PCCThickness: 4,
		},
		Columns: Columns{Count: 12, Length: 9, Width: 12, Height: 10},
		Beams:   Beams{TotalLength: 260, Width: 9, Depth: 15},
		Slab:    Slab{Area: 1000, Thickness: 5},
		Walls: Walls{
			ExternalLength: 130,
			InternalLength: 90,
			Thickness:      9,
			Height:         10,
			Mortar:         Mortar1to6,
		},
		Finishing: Finishing{
			Plaster:         true,
			Tiles:           true,
			Paint:           true,
			InternalPlaster: 0.5,
			ExternalPlaster: 0.75,
			FlooringArea:    1800,
			TileSize:        24,
			PaintType:       PaintEmulsion,
			PaintCoats:      2,
		},
		ConcreteGrade: GradeM20,
		CementType:    CementOPC53,
		Plan:          PlanStandard,
	}
}
