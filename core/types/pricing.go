package types

import (
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"
	"go.uber.org/multierr"

	"construction-cost/core/determinism"
	"construction-cost/internal/errors"
)

// Currency represents a currency code
type Currency string

const (
	CurrencyINR Currency = "INR"
	CurrencyUSD Currency = "USD"
)

// Currencies lists the currencies rates may be quoted in
var Currencies = []Currency{CurrencyINR, CurrencyUSD}

// String returns the string representation
func (c Currency) String() string {
	return string(c)
}

// Known reports whether c is one of Currencies
func (c Currency) Known() bool {
	for _, k := range Currencies {
		if c == k {
			return true
		}
	}
	return false
}

// Material identifies a priced material
type Material string

const (
	MaterialCement    Material = "cement"
	MaterialSand      Material = "sand"
	MaterialAggregate Material = "aggregate"
	MaterialSteel     Material = "steel"
	MaterialBrick     Material = "brick"
	MaterialTile      Material = "tile"
	MaterialPaint     Material = "paint"
	MaterialPlaster   Material = "plaster"
)

// Materials lists every priced material
var Materials = []Material{
	MaterialCement, MaterialSand, MaterialAggregate, MaterialSteel,
	MaterialBrick, MaterialTile, MaterialPaint, MaterialPlaster,
}

// Unit returns the unit the estimator measures the material in.
// Prices must be quoted in the same unit.
func (m Material) Unit() string {
	switch m {
	case MaterialCement:
		return UnitBag
	case MaterialSand, MaterialAggregate, MaterialPlaster:
		return UnitM3
	case MaterialSteel:
		return UnitKg
	case MaterialBrick:
		return UnitNos
	case MaterialTile:
		return UnitM2
	case MaterialPaint:
		return UnitLitre
	}
	return ""
}

// Price is a unit price. Basis is the quantity the rate is quoted for,
// e.g. 100 for bricks sold per hundred.
type Price struct {
	Rate  decimal.Decimal `json:"rate"`
	Unit  string          `json:"unit"`
	Basis int64           `json:"basis"`
}

// PerUnit returns the rate for a single unit
func (p Price) PerUnit() decimal.Decimal {
	if p.Basis <= 1 {
		return p.Rate
	}
	return p.Rate.Div(decimal.NewFromInt(p.Basis))
}

// Ratio is a volumetric mix proportion. Aggregate is zero for mortar and plaster.
type Ratio struct {
	Cement    float64 `json:"cement"`
	Sand      float64 `json:"sand"`
	Aggregate float64 `json:"aggregate,omitempty"`
}

// Parts returns the total number of parts
func (r Ratio) Parts() float64 {
	return r.Cement + r.Sand + r.Aggregate
}

// String renders the ratio as 1:1.5:3 or 1:6
func (r Ratio) String() string {
	s := ftoa(r.Cement) + ":" + ftoa(r.Sand)
	if r.Aggregate > 0 {
		s += ":" + ftoa(r.Aggregate)
	}
	return s
}

func ftoa(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// Standards are the consumption coefficients behind every quantity
type Standards struct {
	CementBagKg   float64 `json:"cement_bag_kg"`
	CementDensity float64 `json:"cement_density_kg_m3"`

	// Wet to dry volume factors
	DryConcrete float64 `json:"dry_volume_concrete"`
	DryMortar   float64 `json:"dry_volume_mortar"`
	DryPlaster  float64 `json:"dry_volume_plaster"`

	PCCMix     Ratio                   `json:"pcc_mix"`
	RCCMix     map[ConcreteGrade]Ratio `json:"rcc_mix"`
	MortarMix  map[MortarMix]Ratio     `json:"mortar_mix"`
	PlasterMix Ratio                   `json:"plaster_mix"`

	// Reinforcement in kg per m3 of concrete
	SteelFoundation map[FoundationType]float64 `json:"steel_foundation_kg_m3"`
	SteelColumn     float64                    `json:"steel_column_kg_m3"`
	SteelBeam       float64                    `json:"steel_beam_kg_m3"`
	SteelSlab       float64                    `json:"steel_slab_kg_m3"`

	BrickLengthMM float64 `json:"brick_length_mm"`
	BrickWidthMM  float64 `json:"brick_width_mm"`
	BrickHeightMM float64 `json:"brick_height_mm"`
	BrickJointMM  float64 `json:"brick_joint_mm"`

	// Wastage as fractions, 0.05 = 5 %
	BrickWastage float64 `json:"brick_wastage"`
	TileWastage  float64 `json:"tile_wastage"`

	// Square metres per litre per coat
	PaintCoverage map[PaintType]float64 `json:"paint_coverage_m2_per_l"`
}

// PlanFactor scales quantities and prices for a plan
type PlanFactor struct {
	Quantity float64 `json:"quantity"`
	Rate     float64 `json:"rate"`
}

// MaterialRates is the process-wide pricing and coefficient table.
// It is built once at startup and only read afterwards.
type MaterialRates struct {
	Currency  Currency            `json:"currency"`
	Prices    map[Material]Price  `json:"prices"`
	Standards Standards           `json:"standards"`
	Plans     map[Plan]PlanFactor `json:"plans"`
	Sources   []string            `json:"sources,omitempty"`
}

// Price returns the price of a material
func (r *MaterialRates) Price(m Material) (Price, bool) {
	p, ok := r.Prices[m]
	return p, ok
}

// PlanFactor returns the factors for a plan; unknown plans get 1, 1
func (r *MaterialRates) PlanFactor(p Plan) PlanFactor {
	if f, ok := r.Plans[p.OrDefault()]; ok {
		return f
	}
	return PlanFactor{Quantity: 1, Rate: 1}
}

// Clone returns a deep copy so overrides never touch the receiver
func (r MaterialRates) Clone() MaterialRates {
	out := r
	out.Prices = make(map[Material]Price, len(r.Prices))
	for k, v := range r.Prices {
		out.Prices[k] = v
	}
	out.Plans = make(map[Plan]PlanFactor, len(r.Plans))
	for k, v := range r.Plans {
		out.Plans[k] = v
	}
	out.Sources = append([]string(nil), r.Sources...)

	s := &out.Standards
	s.RCCMix = make(map[ConcreteGrade]Ratio, len(r.Standards.RCCMix))
	for k, v := range r.Standards.RCCMix {
		s.RCCMix[k] = v
	}
	s.MortarMix = make(map[MortarMix]Ratio, len(r.Standards.MortarMix))
	for k, v := range r.Standards.MortarMix {
		s.MortarMix[k] = v
	}
	s.SteelFoundation = make(map[FoundationType]float64, len(r.Standards.SteelFoundation))
	for k, v := range r.Standards.SteelFoundation {
		s.SteelFoundation[k] = v
	}
	s.PaintCoverage = make(map[PaintType]float64, len(r.Standards.PaintCoverage))
	for k, v := range r.Standards.PaintCoverage {
		s.PaintCoverage[k] = v
	}
	return out
}

// Fingerprint is a short SHA-256 of the canonical JSON of prices, standards
// and plan factors. Sources are excluded so the same numbers loaded from
// different files fingerprint the same.
func (r MaterialRates) Fingerprint() string {
	r.Sources = nil
	h, err := determinism.HashJSON(r)
	if err != nil {
		return ""
	}
	return h.Short()
}

// Validate checks that every price and coefficient the estimator needs is
// present and positive.
func (r *MaterialRates) Validate() error {
	var err error
	add := func(e error) { err = multierr.Append(err, e) }
	bad := func(name string, format string, args ...interface{}) {
		add(errors.Newf(errors.TypeConfig, "%s: %s", name, fmt.Sprintf(format, args...)))
	}

	switch {
	case r.Currency == "":
		bad("currency", "is required")
	case !r.Currency.Known():
		bad("currency", "must be one of %v, got %q", Currencies, r.Currency)
	}
	for _, m := range Materials {
		p, ok := r.Prices[m]
		switch {
		case !ok:
			bad("prices."+string(m), "missing")
		case !p.Rate.IsPositive():
			bad("prices."+string(m), "rate must be greater than 0, got %s", p.Rate)
		case p.Basis < 1:
			bad("prices."+string(m), "basis must be at least 1, got %d", p.Basis)
		case p.Unit != m.Unit():
			bad("prices."+string(m), "unit must be %q, got %q", m.Unit(), p.Unit)
		}
	}

	s := r.Standards
	for _, c := range []struct {
		name string
		v    float64
	}{
		{"cement_bag_kg", s.CementBagKg},
		{"cement_density_kg_m3", s.CementDensity},
		{"dry_volume_concrete", s.DryConcrete},
		{"dry_volume_mortar", s.DryMortar},
		{"dry_volume_plaster", s.DryPlaster},
		{"steel_column_kg_m3", s.SteelColumn},
		{"steel_beam_kg_m3", s.SteelBeam},
		{"steel_slab_kg_m3", s.SteelSlab},
		{"brick_length_mm", s.BrickLengthMM},
		{"brick_width_mm", s.BrickWidthMM},
		{"brick_height_mm", s.BrickHeightMM},
	} {
		if !(c.v > 0) {
			bad("standards."+c.name, "must be greater than 0, got %g", c.v)
		}
	}
	for _, c := range []struct {
		name string
		v    float64
	}{
		{"brick_joint_mm", s.BrickJointMM},
		{"brick_wastage", s.BrickWastage},
		{"tile_wastage", s.TileWastage},
	} {
		if !(c.v >= 0) {
			bad("standards."+c.name, "must not be negative, got %g", c.v)
		}
	}
	checkMix := func(name string, m Ratio, needAggregate bool) {
		if !(m.Cement > 0) || !(m.Sand > 0) || (needAggregate && !(m.Aggregate > 0)) {
			bad(name, "invalid mix %s", m)
		}
	}
	checkMix("standards.pcc_mix", s.PCCMix, true)
	checkMix("standards.plaster_mix", s.PlasterMix, false)
	for _, g := range ConcreteGrades {
		m, ok := s.RCCMix[g]
		if !ok {
			bad("standards.rcc_mix."+string(g), "missing")
			continue
		}
		checkMix("standards.rcc_mix."+string(g), m, true)
	}
	for _, mm := range MortarMixes {
		m, ok := s.MortarMix[mm]
		if !ok {
			bad("standards.mortar_mix."+string(mm), "missing")
			continue
		}
		checkMix("standards.mortar_mix."+string(mm), m, false)
	}
	for _, ft := range FoundationTypes {
		if !(s.SteelFoundation[ft] > 0) {
			bad("standards.steel_foundation_kg_m3."+string(ft), "must be greater than 0")
		}
	}
	for _, pt := range PaintTypes {
		if !(s.PaintCoverage[pt] > 0) {
			bad("standards.paint_coverage_m2_per_l."+string(pt), "must be greater than 0")
		}
	}
	for _, p := range Plans {
		f, ok := r.Plans[p]
		if ok && (!(f.Quantity > 0) || !(f.Rate > 0)) {
			bad("plans."+string(p), "factors must be greater than 0")
		}
	}

	return err
}
