package ui

import (
	"bytes"
	"strings"
	"testing"
)

func TestTableAlignment(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, true)

	table := w.NewTable("Item", "Amount").AlignRight(1)
	table.AddRow("Cement", "1,200.00")
	table.AddRow("Tiles (m²)", "45.50")
	table.SetFooter("Total", "1,245.50")
	table.Render()

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 6 {
		t.Fatalf("lines = %d:\n%s", len(lines), buf.String())
	}
	want := []string{
		"Item       │   Amount",
		"Cement     │ 1,200.00",
		"Tiles (m²) │    45.50",
		"Total      │ 1,245.50",
	}
	got := []string{lines[0], lines[2], lines[3], lines[5]}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestTableFitsRows(t *testing.T) {
	var buf bytes.Buffer
	table := NewWriter(&buf, true).NewTable("A", "B")
	table.AddRow("only")
	table.AddRow("x", "y", "dropped")
	table.Render()

	if strings.Contains(buf.String(), "dropped") {
		t.Error("extra cells should be dropped")
	}
}

func TestPlanComparisonMarksChanges(t *testing.T) {
	var buf bytes.Buffer
	c := NewWriter(&buf, true).NewPlanComparison("standard")
	c.Rows = []PlanRow{
		{Plan: "economy", Total: "90", Change: "-10"},
		{Plan: "standard", Total: "100", Change: "0"},
		{Plan: "premium", Total: "115", Change: "15", IsIncrease: true},
	}
	c.Render()

	out := buf.String()
	for _, want := range []string{"vs standard", "+15", "-10"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestNoColor(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, true)
	w.Header("Rates")
	w.Success("ok")
	if strings.Contains(buf.String(), "\033[") {
		t.Error("no-color writer emitted escape codes")
	}

	buf.Reset()
	w = NewWriter(&buf, false)
	w.Success("ok")
	if !strings.Contains(buf.String(), "\033[") {
		t.Error("color writer emitted no escape codes")
	}
}
