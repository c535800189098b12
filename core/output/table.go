package output

import (
	"fmt"
	"io"
	"strconv"

	"github.com/shopspring/decimal"

	"construction-cost/core/determinism"
	"construction-cost/core/types"
	"construction-cost/core/ui"
)

// TableFormatter renders estimates as terminal tables
type TableFormatter struct {
	noColor bool
}

// NewTableFormatter creates a table formatter
func NewTableFormatter(noColor bool) *TableFormatter {
	return &TableFormatter{noColor: noColor}
}

// Format returns the format type
func (f *TableFormatter) Format() Format { return FormatTable }

// ContentType returns the MIME type
func (f *TableFormatter) ContentType() string { return "text/plain; charset=utf-8" }

// Render writes the tables
func (f *TableFormatter) Render(w io.Writer, report *Report) error {
	out := ui.NewWriter(w, f.noColor)

	for _, r := range report.Results {
		s := out.NewEstimateSummary()
		s.Plan = string(r.Plan)
		s.Total = money(r, r.TotalCost)
		s.CostPerSqft = money(r, r.CostPerSqft)
		s.BuiltUpArea = determinism.GroupThousands(r.BuiltUpArea.StringFixed(2))
		s.Fingerprint = r.RatesFingerprint
		s.Render()

		out.Println("")
		cats := out.NewTable("Category", "Quantity", "Unit", "Subtotal").AlignRight(1, 3)
		for _, cc := range r.Categories {
			qty := "-"
			if cc.Unit != types.UnitMixed && len(cc.Items) > 0 {
				qty = quantity(cc.Quantity)
			}
			cats.AddRow(cc.Label, qty, cc.Unit, money(r, cc.Subtotal))
		}
		cats.SetFooter("Total", "", "", money(r, r.TotalCost))
		cats.Render()

		out.Println("")
		items := out.NewTable("Item", "Quantity", "Unit", "Rate", "Amount").AlignRight(1, 3, 4)
		for _, it := range r.LineItems() {
			items.AddRow(it.Label, quantity(it.Quantity), it.Unit, rate(it), money(r, it.Amount))
		}
		items.Render()
	}

	if len(report.Results) > 1 {
		primary := report.Primary()
		cmp := out.NewPlanComparison(string(primary.Plan))
		for _, r := range report.Results {
			diff := r.TotalCost.Sub(primary.TotalCost)
			cmp.Rows = append(cmp.Rows, ui.PlanRow{
				Plan:        string(r.Plan),
				Total:       money(r, r.TotalCost),
				CostPerSqft: money(r, r.CostPerSqft),
				Change:      money(r, diff),
				IsIncrease:  diff.IsPositive(),
			})
		}
		cmp.Render()
	}

	if report.ShowAssumptions {
		if p := report.Primary(); p != nil && len(p.Assumptions) > 0 {
			out.Header("Assumptions")
			for _, a := range p.Assumptions {
				out.Println("  • %s", a)
			}
		}
	}
	if len(report.Sources) > 0 {
		out.Println("")
		out.Info("Rates from %v", report.Sources)
	}
	return nil
}

func money(r *types.EstimateResult, d decimal.Decimal) string {
	return determinism.NewMoney(d, string(r.Currency)).String()
}

func quantity(d decimal.Decimal) string {
	return determinism.GroupThousands(d.String())
}

func rate(it *types.LineItem) string {
	s := determinism.GroupThousands(it.Rate.StringFixed(2))
	if it.RateBasis > 1 {
		return fmt.Sprintf("%s / %d", s, it.RateBasis)
	}
	return s
}

func ftoa(x float64) string {
	return strconv.FormatFloat(x, 'f', -1, 64)
}
