// Package ratesfile reads material prices, consumption standards and plan
// factors from an HCL file. Every setting is optional; a file overrides only
// what it names and keeps everything else from the base rates.
package ratesfile

import (
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/shopspring/decimal"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/function/stdlib"

	"construction-cost/core/types"
	"construction-cost/internal/errors"
)

// file is the top-level schema
type file struct {
	Currency  *string         `hcl:"currency,optional"`
	Prices    []priceBlock    `hcl:"price,block"`
	Standards *standardsBlock `hcl:"standards,block"`
	Plans     []planBlock     `hcl:"plan,block"`
}

type priceBlock struct {
	Material string         `hcl:"material,label"`
	Rate     hcl.Expression `hcl:"rate"`
	Unit     *string        `hcl:"unit,optional"`
	Per      *int64         `hcl:"per,optional"`
}

type standardsBlock struct {
	CementBagKg   *float64 `hcl:"cement_bag_kg,optional"`
	CementDensity *float64 `hcl:"cement_density_kg_m3,optional"`
	DryConcrete   *float64 `hcl:"dry_volume_concrete,optional"`
	DryMortar     *float64 `hcl:"dry_volume_mortar,optional"`
	DryPlaster    *float64 `hcl:"dry_volume_plaster,optional"`

	PCCMix     []float64            `hcl:"pcc_mix,optional"`
	RCCMix     map[string][]float64 `hcl:"rcc_mix,optional"`
	MortarMix  map[string][]float64 `hcl:"mortar_mix,optional"`
	PlasterMix []float64            `hcl:"plaster_mix,optional"`

	SteelFoundation map[string]float64 `hcl:"steel_foundation_kg_m3,optional"`
	SteelColumn     *float64           `hcl:"steel_column_kg_m3,optional"`
	SteelBeam       *float64           `hcl:"steel_beam_kg_m3,optional"`
	SteelSlab       *float64           `hcl:"steel_slab_kg_m3,optional"`

	BrickWastage  *float64           `hcl:"brick_wastage,optional"`
	TileWastage   *float64           `hcl:"tile_wastage,optional"`
	PaintCoverage map[string]float64 `hcl:"paint_coverage_m2_per_l,optional"`

	Brick *brickBlock `hcl:"brick,block"`
}

// brickBlock dimensions are lengths in metres; use unit.mm or unit.inch
type brickBlock struct {
	Length *float64 `hcl:"length,optional"`
	Width  *float64 `hcl:"width,optional"`
	Height *float64 `hcl:"height,optional"`
	Joint  *float64 `hcl:"joint,optional"`
}

type planBlock struct {
	Name     string   `hcl:"name,label"`
	Quantity *float64 `hcl:"quantity,optional"`
	Rate     *float64 `hcl:"rate,optional"`
}

// Units available to expressions as unit.<name>, as metric multipliers
var Units = map[string]float64{
	"m":       1,
	"mm":      types.MmToM,
	"inch":    types.InchToM,
	"ft":      types.FtToM,
	"sqm":     1,
	"sqft":    types.SqftToSqm,
	"percent": 0.01,
}

// Loader parses rates files
type Loader struct {
	parser *hclparse.Parser
}

// NewLoader creates a new loader
func NewLoader() *Loader {
	return &Loader{
		parser: hclparse.NewParser(),
	}
}

// Load reads path and applies it on top of base. base is not modified.
func Load(path string, base types.MaterialRates) (types.MaterialRates, error) {
	return NewLoader().Load(path, base)
}

// Load reads path and applies it on top of base. base is not modified.
func (l *Loader) Load(path string, base types.MaterialRates) (types.MaterialRates, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return types.MaterialRates{}, errors.Wrapf(errors.TypeConfig, err, "failed to read rates file %s", path)
	}
	return l.Parse(src, path, base)
}

// Parse decodes src and applies it on top of base. filename is used in
// diagnostics and recorded as a rates source.
func (l *Loader) Parse(src []byte, filename string, base types.MaterialRates) (types.MaterialRates, error) {
	hclFile, diags := l.parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return types.MaterialRates{}, diagError(filename, diags)
	}

	ctx := evalContext()

	var f file
	if diags := gohcl.DecodeBody(hclFile.Body, ctx, &f); diags.HasErrors() {
		return types.MaterialRates{}, diagError(filename, diags)
	}

	out := base.Clone()
	if err := f.apply(ctx, &out); err != nil {
		return types.MaterialRates{}, errors.Wrapf(errors.TypeConfig, err, "invalid rates file %s", filename)
	}
	out.Sources = append(out.Sources, filename)
	return out, nil
}

func evalContext() *hcl.EvalContext {
	units := make(map[string]cty.Value, len(Units))
	for name, v := range Units {
		units[name] = cty.NumberFloatVal(v)
	}
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"unit": cty.ObjectVal(units),
		},
		Functions: map[string]function.Function{
			"min":   stdlib.MinFunc,
			"max":   stdlib.MaxFunc,
			"ceil":  stdlib.CeilFunc,
			"floor": stdlib.FloorFunc,
		},
	}
}

func (f *file) apply(ctx *hcl.EvalContext, r *types.MaterialRates) error {
	if f.Currency != nil {
		r.Currency = types.Currency(strings.ToUpper(strings.TrimSpace(*f.Currency)))
	}

	for _, p := range f.Prices {
		m := types.Material(p.Material)
		if !knownMaterial(m) {
			return fmt.Errorf("price %q: unknown material", p.Material)
		}
		rate, err := decimalValue(ctx, p.Rate)
		if err != nil {
			return fmt.Errorf("price %q: %w", p.Material, err)
		}
		cur := r.Prices[m]
		cur.Rate = rate
		if p.Unit != nil {
			cur.Unit = *p.Unit
		}
		if p.Per != nil {
			cur.Basis = *p.Per
		}
		r.Prices[m] = cur
	}

	if f.Standards != nil {
		if err := f.Standards.apply(&r.Standards); err != nil {
			return err
		}
	}

	for _, p := range f.Plans {
		plan := types.Plan(p.Name)
		if plan == "" || !plan.IsValid() {
			return fmt.Errorf("plan %q: unknown plan", p.Name)
		}
		cur, ok := r.Plans[plan]
		if !ok {
			cur = types.PlanFactor{Quantity: 1, Rate: 1}
		}
		setFloat(&cur.Quantity, p.Quantity)
		setFloat(&cur.Rate, p.Rate)
		r.Plans[plan] = cur
	}
	return nil
}

func (s *standardsBlock) apply(st *types.Standards) error {
	setFloat(&st.CementBagKg, s.CementBagKg)
	setFloat(&st.CementDensity, s.CementDensity)
	setFloat(&st.DryConcrete, s.DryConcrete)
	setFloat(&st.DryMortar, s.DryMortar)
	setFloat(&st.DryPlaster, s.DryPlaster)
	setFloat(&st.SteelColumn, s.SteelColumn)
	setFloat(&st.SteelBeam, s.SteelBeam)
	setFloat(&st.SteelSlab, s.SteelSlab)
	setFloat(&st.BrickWastage, s.BrickWastage)
	setFloat(&st.TileWastage, s.TileWastage)

	if s.PCCMix != nil {
		r, err := ratio("pcc_mix", s.PCCMix, 3)
		if err != nil {
			return err
		}
		st.PCCMix = r
	}
	if s.PlasterMix != nil {
		r, err := ratio("plaster_mix", s.PlasterMix, 2)
		if err != nil {
			return err
		}
		st.PlasterMix = r
	}
	for grade, parts := range s.RCCMix {
		g := types.ConcreteGrade(strings.ToLower(grade))
		if !g.IsValid() {
			return fmt.Errorf("rcc_mix: unknown concrete grade %q", grade)
		}
		r, err := ratio("rcc_mix."+grade, parts, 3)
		if err != nil {
			return err
		}
		st.RCCMix[g] = r
	}
	for mix, parts := range s.MortarMix {
		m := types.MortarMix(mix)
		if !m.IsValid() {
			return fmt.Errorf("mortar_mix: unknown mix %q", mix)
		}
		r, err := ratio("mortar_mix."+mix, parts, 2)
		if err != nil {
			return err
		}
		st.MortarMix[m] = r
	}
	for name, v := range s.SteelFoundation {
		ft := types.FoundationType(name)
		if !ft.IsValid() {
			return fmt.Errorf("steel_foundation_kg_m3: unknown foundation type %q", name)
		}
		st.SteelFoundation[ft] = v
	}
	for name, v := range s.PaintCoverage {
		pt := types.PaintType(name)
		if !pt.IsValid() {
			return fmt.Errorf("paint_coverage_m2_per_l: unknown paint type %q", name)
		}
		st.PaintCoverage[pt] = v
	}

	if b := s.Brick; b != nil {
		setMM(&st.BrickLengthMM, b.Length)
		setMM(&st.BrickWidthMM, b.Width)
		setMM(&st.BrickHeightMM, b.Height)
		setMM(&st.BrickJointMM, b.Joint)
	}
	return nil
}

func ratio(name string, parts []float64, want int) (types.Ratio, error) {
	if len(parts) != want {
		return types.Ratio{}, fmt.Errorf("%s: expected %d parts, got %d", name, want, len(parts))
	}
	r := types.Ratio{Cement: parts[0], Sand: parts[1]}
	if want == 3 {
		r.Aggregate = parts[2]
	}
	return r, nil
}

func setFloat(dst *float64, v *float64) {
	if v != nil {
		*dst = *v
	}
}

// setMM stores a length given in metres as millimetres
func setMM(dst *float64, metres *float64) {
	if metres != nil {
		*dst = math.Round(*metres/types.MmToM*1e6) / 1e6
	}
}

// decimalValue evaluates a numeric expression without going through float64
func decimalValue(ctx *hcl.EvalContext, expr hcl.Expression) (decimal.Decimal, error) {
	v, diags := expr.Value(ctx)
	if diags.HasErrors() {
		return decimal.Zero, fmt.Errorf("%s", diags.Error())
	}
	v, err := convert.Convert(v, cty.Number)
	if err != nil {
		return decimal.Zero, fmt.Errorf("rate must be a number: %w", err)
	}
	if v.IsNull() || !v.IsKnown() {
		return decimal.Zero, fmt.Errorf("rate must be a known number")
	}
	return decimal.NewFromString(v.AsBigFloat().Text('f', -1))
}

func knownMaterial(m types.Material) bool {
	for _, k := range types.Materials {
		if k == m {
			return true
		}
	}
	return false
}

func diagError(filename string, diags hcl.Diagnostics) error {
	var lines []string
	for _, diag := range diags {
		if diag.Severity != hcl.DiagError {
			continue
		}
		line := 0
		if diag.Subject != nil {
			line = diag.Subject.Start.Line
		}
		lines = append(lines, fmt.Sprintf("%s:%d: %s: %s", filename, line, diag.Summary, diag.Detail))
	}
	return errors.Parsing("failed to parse rates file", fmt.Errorf("%s", strings.Join(lines, "; ")))
}
