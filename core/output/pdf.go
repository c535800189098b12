package output

import (
	"fmt"
	"io"

	"github.com/jung-kurt/gofpdf"

	"construction-cost/core/estimate"
	"construction-cost/core/types"
	"construction-cost/internal/errors"
)

// PDFFormatter renders a bill of quantities document
type PDFFormatter struct{}

// NewPDFFormatter creates a PDF formatter
func NewPDFFormatter() *PDFFormatter {
	return &PDFFormatter{}
}

// Format returns the format type
func (f *PDFFormatter) Format() Format { return FormatPDF }

// ContentType returns the MIME type
func (f *PDFFormatter) ContentType() string { return "application/pdf" }

// boqColumns are the BOQ table column widths in mm; they add up to 190
var boqColumns = []struct {
	title string
	width float64
	align string
}{
	{"Section", 30, "L"},
	{"Item", 52, "L"},
	{"Unit", 14, "C"},
	{"Quantity", 24, "R"},
	{"Rate", 22, "R"},
	{"Per", 10, "C"},
	{"Amount", 38, "R"},
}

// Render writes the PDF
func (f *PDFFormatter) Render(w io.Writer, report *Report) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Construction material estimate", false)
	pdf.AliasNbPages("")
	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont("Arial", "I", 8)
		pdf.CellFormat(0, 10, fmt.Sprintf("Page %d/{nb}", pdf.PageNo()), "", 0, "C", false, 0, "")
	})

	pdf.AddPage()
	pdf.SetFont("Arial", "B", 20)
	pdf.Cell(190, 10, "Construction Material Estimate")
	pdf.Ln(14)

	if p := report.Primary(); p != nil {
		pdf.SetFont("Arial", "B", 12)
		pdf.Cell(190, 8, "Details")
		pdf.Ln(9)
		for _, kv := range [][2]string{
			{"Plot", fmt.Sprintf("%s x %s ft, %d floors", ftoa(float64(report.Spec.Plot.Length)), ftoa(float64(report.Spec.Plot.Width)), report.Spec.Floors)},
			{"Built-up area", p.BuiltUpArea.StringFixed(2) + " sq ft"},
			{"Concrete grade", string(report.Spec.ConcreteGrade)},
			{"Cement type", string(p.CementType)},
			{"Input hash", p.InputHash},
			{"Rates fingerprint", p.RatesFingerprint},
		} {
			pdf.SetFont("Arial", "", 10)
			pdf.Cell(45, 6, kv[0]+":")
			pdf.SetFont("Arial", "B", 10)
			pdf.Cell(145, 6, kv[1])
			pdf.Ln(6)
		}
		pdf.Ln(4)
	}

	f.planSummary(pdf, report)

	for _, r := range report.Results {
		pdf.AddPage()
		f.boq(pdf, r)
	}

	if report.ShowAssumptions {
		if p := report.Primary(); p != nil && len(p.Assumptions) > 0 {
			pdf.Ln(6)
			pdf.SetFont("Arial", "B", 12)
			pdf.Cell(190, 8, "Assumptions")
			pdf.Ln(9)
			pdf.SetFont("Arial", "", 9)
			for _, a := range p.Assumptions {
				pdf.MultiCell(190, 5, "- "+a, "", "L", false)
			}
		}
	}

	if err := pdf.Output(w); err != nil {
		return errors.Internal("failed to write PDF", err)
	}
	return nil
}

func (f *PDFFormatter) planSummary(pdf *gofpdf.Fpdf, report *Report) {
	if len(report.Results) == 0 {
		return
	}
	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(190, 8, "Summary by Category")
	pdf.Ln(9)

	labelWidth := 50.0
	colWidth := (190 - labelWidth) / float64(len(report.Results))

	pdf.SetFillColor(230, 230, 230)
	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(labelWidth, 8, "Category", "1", 0, "L", true, 0, "")
	for _, r := range report.Results {
		pdf.CellFormat(colWidth, 8, string(r.Plan), "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 10)
	for _, c := range types.Categories {
		pdf.CellFormat(labelWidth, 7, c.Label(), "1", 0, "L", false, 0, "")
		for _, r := range report.Results {
			amount := "-"
			if cc := r.Category(c); cc != nil {
				amount = money(r, cc.Subtotal)
			}
			pdf.CellFormat(colWidth, 7, amount, "1", 0, "R", false, 0, "")
		}
		pdf.Ln(-1)
	}

	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(labelWidth, 8, "Total", "1", 0, "L", true, 0, "")
	for _, r := range report.Results {
		pdf.CellFormat(colWidth, 8, money(r, r.TotalCost), "1", 0, "R", true, 0, "")
	}
	pdf.Ln(-1)
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(labelWidth, 7, "Cost per sq ft", "1", 0, "L", false, 0, "")
	for _, r := range report.Results {
		pdf.CellFormat(colWidth, 7, money(r, r.CostPerSqft), "1", 0, "R", false, 0, "")
	}
	pdf.Ln(-1)
}

func (f *PDFFormatter) boq(pdf *gofpdf.Fpdf, r *types.EstimateResult) {
	pdf.SetFont("Arial", "B", 14)
	pdf.Cell(190, 8, fmt.Sprintf("Bill of Quantities - %s plan", r.Plan))
	pdf.Ln(12)

	pdf.SetFillColor(230, 230, 230)
	pdf.SetFont("Arial", "B", 9)
	for _, c := range boqColumns {
		pdf.CellFormat(c.width, 8, c.title, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	rows := estimate.BillOfQuantities(r)
	pdf.SetFont("Arial", "", 8)
	for _, b := range rows {
		cells := []string{b.Section, b.Item, b.Unit, quantity(b.Quantity), "", "", ""}
		if b.Priced {
			cells[4] = b.Rate.StringFixed(2)
			cells[5] = fmt.Sprintf("%d", b.Per)
			cells[6] = b.Amount.StringFixed(2)
		}
		for i, c := range boqColumns {
			pdf.CellFormat(c.width, 6, cells[i], "1", 0, c.align, false, 0, "")
		}
		pdf.Ln(-1)
	}

	pdf.SetFont("Arial", "B", 9)
	pdf.CellFormat(152, 8, "Total", "1", 0, "R", true, 0, "")
	pdf.CellFormat(38, 8, money(r, estimate.BOQTotal(rows)), "1", 0, "R", true, 0, "")
	pdf.Ln(-1)
}
