package output

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"construction-cost/core/estimate"
	"construction-cost/core/types"
	"construction-cost/internal/errors"
)

const summarySheet = "Summary"

// XLSXFormatter renders a bill of quantities workbook: a summary sheet and
// one sheet per plan
type XLSXFormatter struct{}

// NewXLSXFormatter creates an XLSX formatter
func NewXLSXFormatter() *XLSXFormatter {
	return &XLSXFormatter{}
}

// Format returns the format type
func (f *XLSXFormatter) Format() Format { return FormatXLSX }

// ContentType returns the MIME type
func (f *XLSXFormatter) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

type xlsxStyles struct {
	title, header, money, qty, bold int
}

func newXLSXStyles(f *excelize.File) (xlsxStyles, error) {
	var s xlsxStyles
	var err error
	border := []excelize.Border{
		{Type: "left", Color: "BFBFBF", Style: 1},
		{Type: "right", Color: "BFBFBF", Style: 1},
		{Type: "top", Color: "BFBFBF", Style: 1},
		{Type: "bottom", Color: "BFBFBF", Style: 1},
	}
	if s.title, err = f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 14},
	}); err != nil {
		return s, err
	}
	if s.header, err = f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:   excelize.Fill{Type: "pattern", Color: []string{"4F81BD"}, Pattern: 1},
		Border: border,
	}); err != nil {
		return s, err
	}
	if s.money, err = f.NewStyle(&excelize.Style{NumFmt: 4, Border: border}); err != nil {
		return s, err
	}
	if s.qty, err = f.NewStyle(&excelize.Style{NumFmt: 3, Border: border}); err != nil {
		return s, err
	}
	if s.bold, err = f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Bold: true},
		NumFmt: 4,
		Border: border,
	}); err != nil {
		return s, err
	}
	return s, nil
}

// Render writes the workbook
func (x *XLSXFormatter) Render(w io.Writer, report *Report) error {
	f, err := x.Build(report)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := f.Write(w); err != nil {
		return errors.Internal("failed to write workbook", err)
	}
	return nil
}

// Build creates the workbook in memory
func (x *XLSXFormatter) Build(report *Report) (*excelize.File, error) {
	f := excelize.NewFile()
	styles, err := newXLSXStyles(f)
	if err != nil {
		f.Close()
		return nil, errors.Internal("failed to create workbook styles", err)
	}

	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		f.Close()
		return nil, errors.Internal("failed to name summary sheet", err)
	}
	writeSummary(f, styles, report)

	for _, r := range report.Results {
		sheet := planSheetName(r.Plan)
		if _, err := f.NewSheet(sheet); err != nil {
			f.Close()
			return nil, errors.Internal("failed to add plan sheet", err)
		}
		writeBOQ(f, styles, sheet, r)
	}

	if report.ShowAssumptions {
		if p := report.Primary(); p != nil && len(p.Assumptions) > 0 {
			const sheet = "Assumptions"
			if _, err := f.NewSheet(sheet); err != nil {
				f.Close()
				return nil, errors.Internal("failed to add assumptions sheet", err)
			}
			f.SetCellValue(sheet, "A1", "Assumptions")
			f.SetCellStyle(sheet, "A1", "A1", styles.title)
			f.SetColWidth(sheet, "A", "A", 100)
			for i, a := range p.Assumptions {
				f.SetCellValue(sheet, fmt.Sprintf("A%d", i+3), a)
			}
		}
	}

	f.SetActiveSheet(0)
	return f, nil
}

func planSheetName(p types.Plan) string {
	return "BOQ " + string(p)
}

func writeSummary(f *excelize.File, s xlsxStyles, report *Report) {
	sh := summarySheet
	f.SetCellValue(sh, "A1", "Construction material estimate")
	f.SetCellStyle(sh, "A1", "A1", s.title)
	f.SetColWidth(sh, "A", "A", 24)
	f.SetColWidth(sh, "B", "E", 18)

	row := 3
	if p := report.Primary(); p != nil {
		for _, kv := range [][2]string{
			{"Input hash", p.InputHash},
			{"Rates fingerprint", p.RatesFingerprint},
			{"Currency", string(p.Currency)},
			{"Cement type", string(p.CementType)},
		} {
			f.SetCellValue(sh, fmt.Sprintf("A%d", row), kv[0])
			f.SetCellValue(sh, fmt.Sprintf("B%d", row), kv[1])
			row++
		}
		f.SetCellValue(sh, fmt.Sprintf("A%d", row), "Built-up area (sq ft)")
		f.SetCellValue(sh, fmt.Sprintf("B%d", row), p.BuiltUpArea.InexactFloat64())
		row++
	}
	row++

	// Category by plan
	header := row
	f.SetCellValue(sh, fmt.Sprintf("A%d", row), "Category")
	for i, r := range report.Results {
		cell, _ := excelize.CoordinatesToCellName(i+2, row)
		f.SetCellValue(sh, cell, string(r.Plan))
	}
	last, _ := excelize.CoordinatesToCellName(len(report.Results)+1, header)
	f.SetCellStyle(sh, fmt.Sprintf("A%d", header), last, s.header)
	row++

	first := row
	for _, c := range types.Categories {
		f.SetCellValue(sh, fmt.Sprintf("A%d", row), c.Label())
		for i, r := range report.Results {
			cell, _ := excelize.CoordinatesToCellName(i+2, row)
			if cc := r.Category(c); cc != nil {
				f.SetCellValue(sh, cell, cc.Subtotal.InexactFloat64())
			}
		}
		row++
	}
	for _, line := range []struct {
		label string
		value func(*types.EstimateResult) float64
	}{
		{"Total", func(r *types.EstimateResult) float64 { return r.TotalCost.InexactFloat64() }},
		{"Cost per sq ft", func(r *types.EstimateResult) float64 { return r.CostPerSqft.InexactFloat64() }},
	} {
		f.SetCellValue(sh, fmt.Sprintf("A%d", row), line.label)
		for i, r := range report.Results {
			cell, _ := excelize.CoordinatesToCellName(i+2, row)
			f.SetCellValue(sh, cell, line.value(r))
		}
		end, _ := excelize.CoordinatesToCellName(len(report.Results)+1, row)
		f.SetCellStyle(sh, fmt.Sprintf("A%d", row), end, s.bold)
		row++
	}
	if len(report.Results) > 0 {
		end, _ := excelize.CoordinatesToCellName(len(report.Results)+1, first+len(types.Categories)-1)
		f.SetCellStyle(sh, fmt.Sprintf("B%d", first), end, s.money)
	}

	if len(report.Sources) > 0 {
		row++
		f.SetCellValue(sh, fmt.Sprintf("A%d", row), "Rate sources")
		for i, src := range report.Sources {
			f.SetCellValue(sh, fmt.Sprintf("B%d", row+i), src)
		}
	}
}

func writeBOQ(f *excelize.File, s xlsxStyles, sheet string, r *types.EstimateResult) {
	headers := []string{"Section", "Item", "Unit", "Quantity", "Rate", "Per", "Amount"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}
	f.SetCellStyle(sheet, "A1", "G1", s.header)
	f.SetColWidth(sheet, "A", "A", 18)
	f.SetColWidth(sheet, "B", "B", 28)
	f.SetColWidth(sheet, "C", "C", 8)
	f.SetColWidth(sheet, "D", "G", 14)

	rows := estimate.BillOfQuantities(r)
	for i, b := range rows {
		n := i + 2
		f.SetCellValue(sheet, fmt.Sprintf("A%d", n), b.Section)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", n), b.Item)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", n), b.Unit)
		f.SetCellValue(sheet, fmt.Sprintf("D%d", n), b.Quantity.InexactFloat64())
		f.SetCellStyle(sheet, fmt.Sprintf("D%d", n), fmt.Sprintf("D%d", n), s.qty)
		if b.Priced {
			f.SetCellValue(sheet, fmt.Sprintf("E%d", n), b.Rate.InexactFloat64())
			f.SetCellValue(sheet, fmt.Sprintf("F%d", n), b.Per)
			f.SetCellValue(sheet, fmt.Sprintf("G%d", n), b.Amount.InexactFloat64())
			f.SetCellStyle(sheet, fmt.Sprintf("E%d", n), fmt.Sprintf("E%d", n), s.money)
			f.SetCellStyle(sheet, fmt.Sprintf("G%d", n), fmt.Sprintf("G%d", n), s.money)
		}
	}

	total := len(rows) + 2
	f.SetCellValue(sheet, fmt.Sprintf("B%d", total), "Total")
	f.SetCellValue(sheet, fmt.Sprintf("G%d", total), estimate.BOQTotal(rows).InexactFloat64())
	f.SetCellStyle(sheet, fmt.Sprintf("A%d", total), fmt.Sprintf("G%d", total), s.bold)
}
