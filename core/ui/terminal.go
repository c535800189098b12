// Package ui - Terminal user interface
// CLI output with tables, colours and estimate summaries.
package ui

import (
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"
)

// Colors for terminal output
const (
	Reset  = "\033[0m"
	Bold   = "\033[1m"
	Dim    = "\033[2m"
	Red    = "\033[31m"
	Green  = "\033[32m"
	Yellow = "\033[33m"
	Blue   = "\033[34m"
	Cyan   = "\033[36m"
)

// Writer is the UI output destination
type Writer struct {
	out       io.Writer
	noColor   bool
	verbosity int
}

// NewWriter creates a UI writer
func NewWriter(out io.Writer, noColor bool) *Writer {
	if out == nil {
		out = os.Stdout
	}
	return &Writer{
		out:       out,
		noColor:   noColor,
		verbosity: 1,
	}
}

// SetVerbosity sets output verbosity (0=quiet, 1=normal, 2=verbose)
func (w *Writer) SetVerbosity(level int) {
	w.verbosity = level
}

// color applies color if enabled
func (w *Writer) color(c, text string) string {
	if w.noColor {
		return text
	}
	return c + text + Reset
}

// Print writes a line
func (w *Writer) Print(format string, args ...interface{}) {
	fmt.Fprintf(w.out, format, args...)
}

// Println writes a line with newline
func (w *Writer) Println(format string, args ...interface{}) {
	fmt.Fprintf(w.out, format+"\n", args...)
}

// Header prints a section header
func (w *Writer) Header(title string) {
	w.Println("")
	w.Println("%s", w.color(Bold+Cyan, "━━━ "+title+" ━━━"))
	w.Println("")
}

// SubHeader prints a subsection header
func (w *Writer) SubHeader(title string) {
	w.Println("%s", w.color(Bold, "▸ "+title))
}

// Success prints a success message
func (w *Writer) Success(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	w.Println("%s%s", w.color(Green, "✓ "), msg)
}

// Warning prints a warning
func (w *Writer) Warning(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	w.Println("%s%s", w.color(Yellow, "⚠ "), msg)
}

// Error prints an error
func (w *Writer) Error(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	w.Println("%s%s", w.color(Red, "✗ "), msg)
}

// Info prints an info message
func (w *Writer) Info(format string, args ...interface{}) {
	if w.verbosity < 1 {
		return
	}
	msg := fmt.Sprintf(format, args...)
	w.Println("%s%s", w.color(Blue, "ℹ "), msg)
}

// Debug prints a debug message
func (w *Writer) Debug(format string, args ...interface{}) {
	if w.verbosity < 2 {
		return
	}
	msg := fmt.Sprintf(format, args...)
	w.Println("%s", w.color(Dim, "  "+msg))
}

// Table renders a table
type Table struct {
	w       *Writer
	headers []string
	rows    [][]string
	widths  []int
	right   []bool
	footer  []string
}

// NewTable creates a table
func (w *Writer) NewTable(headers ...string) *Table {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = utf8.RuneCountInString(h)
	}
	return &Table{
		w:       w,
		headers: headers,
		rows:    [][]string{},
		widths:  widths,
		right:   make([]bool, len(headers)),
	}
}

// AlignRight right-aligns the given columns, for numbers
func (t *Table) AlignRight(cols ...int) *Table {
	for _, c := range cols {
		if c >= 0 && c < len(t.right) {
			t.right[c] = true
		}
	}
	return t
}

// AddRow adds a row to the table
func (t *Table) AddRow(cells ...string) {
	t.rows = append(t.rows, t.fit(cells))
}

// SetFooter sets a bold row printed below a separator
func (t *Table) SetFooter(cells ...string) {
	t.footer = t.fit(cells)
}

// fit pads or truncates cells to the header count and widens columns
func (t *Table) fit(cells []string) []string {
	row := make([]string, len(t.headers))
	for i := range row {
		if i < len(cells) {
			row[i] = cells[i]
		}
		if n := utf8.RuneCountInString(row[i]); n > t.widths[i] {
			t.widths[i] = n
		}
	}
	return row
}

func (t *Table) line(cells []string) string {
	var b strings.Builder
	for i, cell := range cells {
		if i > 0 {
			b.WriteString(" │ ")
		}
		pad := strings.Repeat(" ", t.widths[i]-utf8.RuneCountInString(cell))
		if t.right[i] {
			b.WriteString(pad + cell)
		} else {
			b.WriteString(cell + pad)
		}
	}
	return b.String()
}

func (t *Table) separator() string {
	parts := make([]string, len(t.widths))
	for i, w := range t.widths {
		parts[i] = strings.Repeat("─", w)
	}
	return strings.Join(parts, "─┼─")
}

// Render prints the table
func (t *Table) Render() {
	t.w.Println("%s", t.w.color(Bold, t.line(t.headers)))
	t.w.Println("%s", t.separator())
	for _, row := range t.rows {
		t.w.Println("%s", t.line(row))
	}
	if t.footer != nil {
		t.w.Println("%s", t.separator())
		t.w.Println("%s", t.w.color(Bold, t.line(t.footer)))
	}
}

// EstimateSummary renders the headline figures of one estimate
type EstimateSummary struct {
	w           *Writer
	Plan        string
	Total       string
	CostPerSqft string
	BuiltUpArea string
	Fingerprint string
}

// NewEstimateSummary creates an estimate summary
func (w *Writer) NewEstimateSummary() *EstimateSummary {
	return &EstimateSummary{w: w}
}

// Render prints the estimate summary
func (s *EstimateSummary) Render() {
	s.w.Header("Estimate Summary (" + s.Plan + ")")

	s.w.Println("%s", s.w.color(Bold, "╭──────────────────────────────────────────╮"))
	s.w.Println("%s%s%s", s.w.color(Bold, "│"), s.w.color(Green, fmt.Sprintf("  Total:        %-26s", s.Total)), s.w.color(Bold, "│"))
	s.w.Println("%s%s%s", s.w.color(Bold, "│"), s.w.color(Dim, fmt.Sprintf("  Per sq ft:    %-26s", s.CostPerSqft)), s.w.color(Bold, "│"))
	s.w.Println("%s", s.w.color(Bold, "╰──────────────────────────────────────────╯"))
	s.w.Println("")

	s.w.Println("%s", s.w.color(Dim, "  Built-up area: "+s.BuiltUpArea+" sq ft"))
	if s.Fingerprint != "" {
		s.w.Println("%s", s.w.color(Dim, "  Rates: "+s.Fingerprint))
	}
}

// PlanComparison shows plan totals against a reference plan
type PlanComparison struct {
	w         *Writer
	Reference string
	Rows      []PlanRow
}

// PlanRow is a single plan in a comparison
type PlanRow struct {
	Plan        string
	Total       string
	CostPerSqft string
	Change      string
	IsIncrease  bool
}

// NewPlanComparison creates a comparison view
func (w *Writer) NewPlanComparison(reference string) *PlanComparison {
	return &PlanComparison{w: w, Reference: reference}
}

// Render prints the comparison
func (c *PlanComparison) Render() {
	c.w.Header("Plan Comparison")

	table := c.w.NewTable("Plan", "Total", "Per sq ft", "vs "+c.Reference).AlignRight(1, 2, 3)
	for _, r := range c.Rows {
		change := r.Change
		switch {
		case r.Plan == c.Reference:
			change = "-"
		case r.IsIncrease:
			change = "+" + change
		}
		table.AddRow(r.Plan, r.Total, r.CostPerSqft, change)
	}
	table.Render()
}
