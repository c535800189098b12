package ratesfile_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"

	"construction-cost/adapters/ratesfile"
	"construction-cost/core/pricing"
	"construction-cost/core/types"
	"construction-cost/internal/errors"
)

func TestTemplateReproducesDefaults(t *testing.T) {
	base := pricing.Defaults()
	got, err := ratesfile.NewLoader().Parse([]byte(ratesfile.Template), "template.hcl", base)
	if err != nil {
		t.Fatalf("template should parse: %v", err)
	}
	if got.Fingerprint() != base.Fingerprint() {
		t.Errorf("template fingerprint %s differs from defaults %s", got.Fingerprint(), base.Fingerprint())
	}
	if got.Standards.BrickLengthMM != 230 || got.Standards.BrickJointMM != 10 {
		t.Errorf("brick dims = %v x %v", got.Standards.BrickLengthMM, got.Standards.BrickJointMM)
	}
}

func TestPartialOverride(t *testing.T) {
	src := `
price "cement" {
  rate = 455.50
}

standards {
  steel_slab_kg_m3 = 95
  rcc_mix = {
    m25 = [1, 1.2, 2.4]
  }
  paint_coverage_m2_per_l = {
    enamel = 120 * unit.sqft
  }
}

plan "premium" {
  rate = 1.2
}
`
	base := pricing.Defaults()
	got, err := ratesfile.NewLoader().Parse([]byte(src), "override.hcl", base)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cement := got.Prices[types.MaterialCement]
	if !cement.Rate.Equal(decimal.RequireFromString("455.5")) {
		t.Errorf("cement rate = %s", cement.Rate)
	}
	if cement.Unit != types.UnitBag || cement.Basis != 1 {
		t.Errorf("unit and basis should be kept: %+v", cement)
	}
	if got.Standards.SteelSlab != 95 {
		t.Errorf("steel slab = %v", got.Standards.SteelSlab)
	}
	if got.Standards.RCCMix[types.GradeM25] != (types.Ratio{Cement: 1, Sand: 1.2, Aggregate: 2.4}) {
		t.Errorf("m25 = %+v", got.Standards.RCCMix[types.GradeM25])
	}
	if got.Standards.RCCMix[types.GradeM20] != base.Standards.RCCMix[types.GradeM20] {
		t.Error("m20 should be untouched")
	}
	if c := got.Standards.PaintCoverage[types.PaintEnamel]; c < 11.14 || c > 11.15 {
		t.Errorf("enamel coverage = %v, want about 11.148", c)
	}
	if p := got.Plans[types.PlanPremium]; p.Rate != 1.2 || p.Quantity != 0.95 {
		t.Errorf("premium = %+v", p)
	}

	// base untouched
	if !base.Prices[types.MaterialCement].Rate.Equal(decimal.NewFromInt(420)) {
		t.Error("base rates were modified")
	}
	if len(got.Sources) != 2 || got.Sources[1] != "override.hcl" {
		t.Errorf("sources = %v", got.Sources)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		typ  errors.Type
	}{
		{"syntax", `price "cement" {`, errors.TypeParsing},
		{"unknown attribute", `colour = "red"`, errors.TypeParsing},
		{"missing rate", `price "sand" {}`, errors.TypeParsing},
		{"unknown material", `price "glass" { rate = 10 }`, errors.TypeConfig},
		{"unknown grade", `standards { rcc_mix = { m40 = [1, 1, 1] } }`, errors.TypeConfig},
		{"short mix", `standards { pcc_mix = [1, 4] }`, errors.TypeConfig},
		{"unknown plan", `plan "luxury" { rate = 2 }`, errors.TypeConfig},
		{"string rate", `price "sand" { rate = "cheap" }`, errors.TypeConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ratesfile.NewLoader().Parse([]byte(tt.src), "bad.hcl", pricing.Defaults())
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.IsType(err, tt.typ) {
				t.Errorf("expected %s, got %v", tt.typ, err)
			}
		})
	}
}

func TestLoadFromDisk(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rates.hcl")
	if err := os.WriteFile(path, []byte(`price "steel" { rate = 72 }`), 0644); err != nil {
		t.Fatal(err)
	}
	got, err := ratesfile.Load(path, pricing.Defaults())
	if err != nil {
		t.Fatal(err)
	}
	if !got.Prices[types.MaterialSteel].Rate.Equal(decimal.NewFromInt(72)) {
		t.Errorf("steel = %s", got.Prices[types.MaterialSteel].Rate)
	}

	if _, err := ratesfile.Load(filepath.Join(t.TempDir(), "missing.hcl"), pricing.Defaults()); err == nil {
		t.Error("expected error for missing file")
	}
}
