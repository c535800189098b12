// Package workbook reads material prices from an Excel price sheet.
//
// The sheet has a header row followed by rows of material, unit and cost.
// Material names are matched by keyword, so "OPC 53 Cement" and "cement bag"
// both set the cement price. Rows that match no material are ignored.
package workbook

import (
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"construction-cost/core/types"
	"construction-cost/internal/errors"
)

// SheetNames are tried in order before falling back to the first sheet
var SheetNames = []string{"Materials", "Costs", "Material Costs", "Rates"}

// keywords maps name fragments to materials. Order matters: the first
// material with a matching keyword wins.
var keywords = []struct {
	material types.Material
	words    []string
}{
	{types.MaterialCement, []string{"cement"}},
	{types.MaterialSand, []string{"sand"}},
	{types.MaterialAggregate, []string{"aggregate", "gravel", "chips"}},
	{types.MaterialSteel, []string{"steel", "rebar", "reinforcement"}},
	{types.MaterialBrick, []string{"brick"}},
	{types.MaterialTile, []string{"tile", "flooring"}},
	{types.MaterialPaint, []string{"paint", "coating"}},
	{types.MaterialPlaster, []string{"plaster", "finish"}},
}

// MatchMaterial maps a free-text material name to a priced material
func MatchMaterial(name string) (types.Material, bool) {
	n := strings.ToLower(strings.TrimSpace(name))
	if n == "" {
		return "", false
	}
	for _, k := range keywords {
		for _, w := range k.words {
			if strings.Contains(n, w) {
				return k.material, true
			}
		}
	}
	return "", false
}

// Row is one data row of the price sheet
type Row struct {
	Number   int             `json:"row"`
	Name     string          `json:"name"`
	Unit     string          `json:"unit,omitempty"`
	Cost     decimal.Decimal `json:"cost"`
	Material types.Material  `json:"material,omitempty"`
	Reason   string          `json:"reason,omitempty"`
}

// Report describes what a load did
type Report struct {
	Sheet   string `json:"sheet"`
	Applied []Row  `json:"applied"`
	Ignored []Row  `json:"ignored"`
}

// Load reads the workbook at path and applies its prices on top of base.
// base is not modified.
func Load(path string, base types.MaterialRates) (types.MaterialRates, *Report, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return types.MaterialRates{}, nil, errors.Wrapf(errors.TypeConfig, err, "failed to open price workbook %s", path)
	}
	defer f.Close()
	return apply(f, path, base)
}

// Read is Load for an already open stream
func Read(r io.Reader, name string, base types.MaterialRates) (types.MaterialRates, *Report, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return types.MaterialRates{}, nil, errors.Wrapf(errors.TypeConfig, err, "failed to open price workbook %s", name)
	}
	defer f.Close()
	return apply(f, name, base)
}

func apply(f *excelize.File, name string, base types.MaterialRates) (types.MaterialRates, *Report, error) {
	sheet := pickSheet(f.GetSheetList())
	if sheet == "" {
		return types.MaterialRates{}, nil, errors.Newf(errors.TypeConfig, "price workbook %s has no sheets", name)
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return types.MaterialRates{}, nil, errors.Wrapf(errors.TypeConfig, err, "error reading sheet %q of %s", sheet, name)
	}

	out := base.Clone()
	report := &Report{Sheet: sheet, Applied: []Row{}, Ignored: []Row{}}

	// Row 1 is the header
	for i := 1; i < len(rows); i++ {
		cells := rows[i]
		row := Row{Number: i + 1}
		if len(cells) > 0 {
			row.Name = strings.TrimSpace(cells[0])
		}
		if len(cells) > 1 {
			row.Unit = strings.TrimSpace(cells[1])
		}
		if row.Name == "" {
			continue
		}

		var costCell string
		if len(cells) > 2 {
			costCell = cells[2]
		}
		cost, ok := parseCost(costCell)
		if !ok {
			row.Reason = fmt.Sprintf("cost %q is not a positive number", costCell)
			report.Ignored = append(report.Ignored, row)
			continue
		}
		row.Cost = cost

		m, ok := MatchMaterial(row.Name)
		if !ok {
			row.Reason = "no matching material"
			report.Ignored = append(report.Ignored, row)
			continue
		}
		row.Material = m

		p := out.Prices[m]
		p.Rate = cost
		out.Prices[m] = p
		report.Applied = append(report.Applied, row)
	}

	out.Sources = append(out.Sources, name)
	return out, report, nil
}

func pickSheet(sheets []string) string {
	for _, want := range SheetNames {
		for _, s := range sheets {
			if s == want {
				return s
			}
		}
	}
	if len(sheets) > 0 {
		return sheets[0]
	}
	return ""
}

// parseCost accepts plain and formatted numbers such as "1,200", "₹ 420"
// or "Rs. 65.50"
func parseCost(s string) (decimal.Decimal, bool) {
	s = strings.TrimSpace(s)
	for _, prefix := range []string{"₹", "Rs.", "Rs", "INR"} {
		s = strings.TrimSpace(strings.TrimPrefix(s, prefix))
	}
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(s)
	if err != nil || !d.IsPositive() {
		return decimal.Zero, false
	}
	return d, true
}

// Template builds a price sheet from rates, in the layout Load reads
func Template(rates types.MaterialRates) (*excelize.File, error) {
	f := excelize.NewFile()
	const sheet = "Materials"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, err
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"4F81BD"}, Pattern: 1},
	})
	if err != nil {
		return nil, err
	}

	headers := []string{"Material", "Unit", "Cost"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}
	f.SetCellStyle(sheet, "A1", "C1", headerStyle)
	f.SetColWidth(sheet, "A", "A", 24)
	f.SetColWidth(sheet, "B", "C", 12)

	for i, m := range types.Materials {
		p := rates.Prices[m]
		unit := p.Unit
		if p.Basis > 1 {
			unit = fmt.Sprintf("per %d %s", p.Basis, p.Unit)
		}
		row := i + 2
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), string(m))
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), unit)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), p.Rate.InexactFloat64())
	}
	return f, nil
}
