package workbook_test

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"construction-cost/adapters/workbook"
	"construction-cost/core/pricing"
	"construction-cost/core/types"
	"construction-cost/internal/errors"
)

func writeSheet(t *testing.T, sheet string, rows [][]interface{}) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	if sheet != "Sheet1" {
		if err := f.SetSheetName("Sheet1", sheet); err != nil {
			t.Fatal(err)
		}
	}
	for r, row := range rows {
		for c, v := range row {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+1)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				t.Fatal(err)
			}
		}
	}
	path := filepath.Join(t.TempDir(), "costs.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestMatchMaterial(t *testing.T) {
	tests := []struct {
		name string
		want types.Material
		ok   bool
	}{
		{"OPC 53 Cement", types.MaterialCement, true},
		{"River sand", types.MaterialSand, true},
		{"20mm Stone Chips", types.MaterialAggregate, true},
		{"TMT Rebar Fe500", types.MaterialSteel, true},
		{"Red brick", types.MaterialBrick, true},
		{"Vitrified flooring", types.MaterialTile, true},
		{"Exterior coating", types.MaterialPaint, true},
		{"Wall finish", types.MaterialPlaster, true},
		{"Plumbing", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := workbook.MatchMaterial(tt.name)
		if got != tt.want || ok != tt.ok {
			t.Errorf("MatchMaterial(%q) = %q, %v; want %q, %v", tt.name, got, ok, tt.want, tt.ok)
		}
	}
}

func TestLoadAppliesKnownRows(t *testing.T) {
	path := writeSheet(t, "Rates", [][]interface{}{
		{"Material", "Unit", "Cost"},
		{"Cement (OPC 53)", "bag", 445},
		{"Steel rebar", "kg", "72.50"},
		{"Brick", "per 100", "1,100"},
		{"Electrical", "lot", 9000},
		{"Sand", "m3", "call for price"},
		{},
	})

	base := pricing.Defaults()
	got, report, err := workbook.Load(path, base)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if report.Sheet != "Rates" {
		t.Errorf("sheet = %q", report.Sheet)
	}
	if len(report.Applied) != 3 {
		t.Errorf("applied = %+v", report.Applied)
	}
	if len(report.Ignored) != 2 {
		t.Errorf("ignored = %+v", report.Ignored)
	}

	checks := map[types.Material]string{
		types.MaterialCement: "445",
		types.MaterialSteel:  "72.5",
		types.MaterialBrick:  "1100",
		types.MaterialSand:   "1200",
	}
	for m, want := range checks {
		if !got.Prices[m].Rate.Equal(decimal.RequireFromString(want)) {
			t.Errorf("%s = %s, want %s", m, got.Prices[m].Rate, want)
		}
	}
	if got.Prices[types.MaterialBrick].Basis != 100 {
		t.Error("brick basis should be kept from the base rates")
	}
	if !base.Prices[types.MaterialCement].Rate.Equal(decimal.NewFromInt(420)) {
		t.Error("base rates were modified")
	}
}

func TestLoadFallsBackToFirstSheet(t *testing.T) {
	path := writeSheet(t, "Prices 2024", [][]interface{}{
		{"Material", "Unit", "Cost"},
		{"Paint", "L", 540},
	})
	got, report, err := workbook.Load(path, pricing.Defaults())
	if err != nil {
		t.Fatal(err)
	}
	if report.Sheet != "Prices 2024" {
		t.Errorf("sheet = %q", report.Sheet)
	}
	if !got.Prices[types.MaterialPaint].Rate.Equal(decimal.NewFromInt(540)) {
		t.Errorf("paint = %s", got.Prices[types.MaterialPaint].Rate)
	}
}

func TestLoadRejectsNonWorkbook(t *testing.T) {
	_, _, err := workbook.Read(bytes.NewReader([]byte("not a zip")), "junk.xlsx", pricing.Defaults())
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.IsType(err, errors.TypeConfig) {
		t.Errorf("expected config error, got %v", err)
	}
}

func TestTemplateRoundTrip(t *testing.T) {
	base := pricing.Defaults()
	f, err := workbook.Template(base)
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		t.Fatal(err)
	}

	got, report, err := workbook.Read(&buf, "template.xlsx", base)
	if err != nil {
		t.Fatal(err)
	}
	if len(report.Applied) != len(types.Materials) {
		t.Errorf("applied %d rows, want %d", len(report.Applied), len(types.Materials))
	}
	for _, m := range types.Materials {
		if !got.Prices[m].Rate.Equal(base.Prices[m].Rate) {
			t.Errorf("%s = %s, want %s", m, got.Prices[m].Rate, base.Prices[m].Rate)
		}
	}
}
