package pricing

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"construction-cost/core/types"
	"construction-cost/internal/config"
	"construction-cost/internal/errors"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func writeWorkbook(t *testing.T, rows [][]interface{}) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	for r, row := range rows {
		for c, v := range row {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+1)
			f.SetCellValue("Sheet1", cell, v)
		}
	}
	path := filepath.Join(t.TempDir(), "prices.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefaultsAreValid(t *testing.T) {
	r := Defaults()
	if err := r.Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
	if r.Fingerprint() != Defaults().Fingerprint() {
		t.Error("fingerprint should be stable")
	}
}

func TestLoadLayers(t *testing.T) {
	hcl := writeFile(t, "rates.hcl", `
price "cement" { rate = 430 }
price "steel"  { rate = 70 }
`)
	xlsx := writeWorkbook(t, [][]interface{}{
		{"Material", "Unit", "Cost"},
		{"Cement", "bag", 450},
		{"Sand", "m3", 1300},
	})

	rates, err := Load(config.RatesConfig{StandardsFile: hcl, WorkbookFile: xlsx}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tests := []struct {
		material types.Material
		want     int64
	}{
		{types.MaterialCement, 450}, // workbook wins over the rates file
		{types.MaterialSteel, 70},
		{types.MaterialSand, 1300},
		{types.MaterialAggregate, 900},
	}
	for _, tt := range tests {
		if got := rates.Prices[tt.material].Rate; !got.Equal(decimal.NewFromInt(tt.want)) {
			t.Errorf("%s = %s, want %d", tt.material, got, tt.want)
		}
	}
	if len(rates.Sources) != 3 || rates.Sources[0] != SourceDefaults {
		t.Errorf("sources = %v", rates.Sources)
	}
}

func TestLoadMissingFilesKeepDefaults(t *testing.T) {
	dir := t.TempDir()
	rates, err := Load(config.RatesConfig{
		StandardsFile: filepath.Join(dir, "missing.hcl"),
		WorkbookFile:  filepath.Join(dir, "missing.xlsx"),
	}, nil)
	if err != nil {
		t.Fatalf("missing files should not fail: %v", err)
	}
	if rates.Fingerprint() != Defaults().Fingerprint() {
		t.Error("rates should equal the defaults")
	}
}

func TestLoadMalformedFiles(t *testing.T) {
	tests := []struct {
		name string
		cfg  func(t *testing.T) config.RatesConfig
		typ  errors.Type
	}{
		{
			name: "bad hcl",
			cfg: func(t *testing.T) config.RatesConfig {
				return config.RatesConfig{StandardsFile: writeFile(t, "rates.hcl", `price "cement" {`)}
			},
			typ: errors.TypeParsing,
		},
		{
			name: "bad workbook",
			cfg: func(t *testing.T) config.RatesConfig {
				return config.RatesConfig{WorkbookFile: writeFile(t, "prices.xlsx", "not a workbook")}
			},
			typ: errors.TypeConfig,
		},
		{
			name: "invalid result",
			cfg: func(t *testing.T) config.RatesConfig {
				return config.RatesConfig{StandardsFile: writeFile(t, "rates.hcl", `price "sand" { rate = 0 }`)}
			},
			typ: errors.TypeConfig,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(tt.cfg(t), nil)
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.IsType(err, tt.typ) {
				t.Errorf("expected %s, got %v", tt.typ, err)
			}
		})
	}
}

func TestStoreReturnsCopies(t *testing.T) {
	s, err := NewStore(Defaults())
	if err != nil {
		t.Fatal(err)
	}

	r := s.Rates()
	r.Prices[types.MaterialCement] = types.Price{Rate: decimal.NewFromInt(1), Unit: types.UnitBag, Basis: 1}
	r.Standards.RCCMix[types.GradeM20] = types.Ratio{Cement: 9, Sand: 9, Aggregate: 9}

	again := s.Rates()
	if !again.Prices[types.MaterialCement].Rate.Equal(decimal.NewFromInt(420)) {
		t.Error("store rates were modified through a copy")
	}
	if again.Standards.RCCMix[types.GradeM20].Cement != 1 {
		t.Error("store standards were modified through a copy")
	}
	if s.Fingerprint() != Defaults().Fingerprint() {
		t.Error("fingerprint mismatch")
	}
	if s.Currency() != types.CurrencyINR {
		t.Errorf("currency = %s", s.Currency())
	}
}

func TestNewStoreRejectsIncompleteRates(t *testing.T) {
	r := Defaults()
	delete(r.Prices, types.MaterialPaint)
	if _, err := NewStore(r); err == nil {
		t.Fatal("expected error")
	}
}

func TestValidateRejectsBadStandards(t *testing.T) {
	tests := []struct {
		name  string
		field string
		edit  func(r *types.MaterialRates)
	}{
		{"unknown currency", "currency", func(r *types.MaterialRates) { r.Currency = "XYZ" }},
		{"negative brick wastage", "standards.brick_wastage", func(r *types.MaterialRates) { r.Standards.BrickWastage = -0.1 }},
		{"NaN brick wastage", "standards.brick_wastage", func(r *types.MaterialRates) { r.Standards.BrickWastage = math.NaN() }},
		{"NaN tile wastage", "standards.tile_wastage", func(r *types.MaterialRates) { r.Standards.TileWastage = math.NaN() }},
		{"NaN brick joint", "standards.brick_joint_mm", func(r *types.MaterialRates) { r.Standards.BrickJointMM = math.NaN() }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Defaults()
			tt.edit(&r)
			err := r.Validate()
			if !errors.IsType(err, errors.TypeConfig) {
				t.Fatalf("error = %v, want a config error", err)
			}
			if !strings.Contains(err.Error(), tt.field) {
				t.Errorf("error %q does not name %s", err, tt.field)
			}
		})
	}

	r := Defaults()
	r.Currency = types.CurrencyUSD
	if err := r.Validate(); err != nil {
		t.Errorf("USD rates: %v", err)
	}
}
