package types

import (
	"testing"

	"github.com/shopspring/decimal"
)

func item(unit string, qty, amount string) *LineItem {
	return &LineItem{
		Unit:     unit,
		Quantity: decimal.RequireFromString(qty),
		Amount:   decimal.RequireFromString(amount),
	}
}

func TestCategoryCostAdd(t *testing.T) {
	c := NewCategoryCost(CategoryCement)
	c.Add(item(UnitBag, "12", "5040"))
	c.Add(item(UnitBag, "3", "1260.50"))

	if c.Unit != UnitBag {
		t.Errorf("unit = %q", c.Unit)
	}
	if !c.Quantity.Equal(decimal.NewFromInt(15)) {
		t.Errorf("quantity = %s", c.Quantity)
	}
	if !c.Subtotal.Equal(decimal.RequireFromString("6300.50")) {
		t.Errorf("subtotal = %s", c.Subtotal)
	}
}

func TestCategoryCostMixedUnits(t *testing.T) {
	c := NewCategoryCost(CategoryFinishing)
	c.Add(item(UnitM2, "100", "30000"))
	c.Add(item(UnitLitre, "20", "10000"))
	c.Add(item(UnitM2, "5", "1500"))

	if c.Unit != UnitMixed {
		t.Errorf("unit = %q, want mixed", c.Unit)
	}
	if !c.Quantity.IsZero() {
		t.Errorf("mixed quantity should be zero, got %s", c.Quantity)
	}
	if !c.Subtotal.Equal(decimal.NewFromInt(41500)) {
		t.Errorf("subtotal = %s", c.Subtotal)
	}
}

func TestSumOfCategories(t *testing.T) {
	r := &EstimateResult{}
	for i, cat := range Categories {
		cc := NewCategoryCost(cat)
		cc.Add(item(UnitKg, "1", decimal.NewFromInt(int64(i+1)).StringFixed(2)))
		r.Categories = append(r.Categories, cc)
	}
	if !r.SumOfCategories().Equal(decimal.NewFromInt(21)) {
		t.Errorf("sum = %s, want 21", r.SumOfCategories())
	}
	if r.Category(CategorySteel) == nil || r.Category("glass") != nil {
		t.Error("category lookup broken")
	}
	if len(r.LineItems()) != len(Categories) {
		t.Errorf("line items = %d", len(r.LineItems()))
	}
}

func TestRatioString(t *testing.T) {
	tests := []struct {
		r    Ratio
		want string
	}{
		{Ratio{Cement: 1, Sand: 1.5, Aggregate: 3}, "1:1.5:3"},
		{Ratio{Cement: 1, Sand: 6}, "1:6"},
		{Ratio{Cement: 1, Sand: 0.75, Aggregate: 1.5}, "1:0.75:1.5"},
	}
	for _, tt := range tests {
		if got := tt.r.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestPricePerUnit(t *testing.T) {
	p := Price{Rate: decimal.NewFromInt(350), Unit: UnitNos, Basis: 100}
	if !p.PerUnit().Equal(decimal.RequireFromString("3.5")) {
		t.Errorf("per unit = %s", p.PerUnit())
	}
}

func TestCloneIsIndependent(t *testing.T) {
	r := MaterialRates{
		Currency: CurrencyINR,
		Prices:   map[Material]Price{MaterialSteel: {Rate: decimal.NewFromInt(65), Unit: UnitKg, Basis: 1}},
		Plans:    map[Plan]PlanFactor{PlanStandard: {Quantity: 1, Rate: 1}},
		Standards: Standards{
			RCCMix: map[ConcreteGrade]Ratio{GradeM20: {Cement: 1, Sand: 1.5, Aggregate: 3}},
		},
	}
	c := r.Clone()
	c.Prices[MaterialSteel] = Price{Rate: decimal.NewFromInt(80), Unit: UnitKg, Basis: 1}
	c.Standards.RCCMix[GradeM20] = Ratio{Cement: 1, Sand: 2, Aggregate: 4}

	if !r.Prices[MaterialSteel].Rate.Equal(decimal.NewFromInt(65)) {
		t.Error("clone shares the price map")
	}
	if r.Standards.RCCMix[GradeM20].Sand != 1.5 {
		t.Error("clone shares the mix map")
	}
	if r.Fingerprint() == c.Fingerprint() {
		t.Error("different rates should fingerprint differently")
	}
}

func TestFingerprintIgnoresSources(t *testing.T) {
	r := MaterialRates{Currency: CurrencyINR}
	a := r.Clone()
	a.Sources = []string{"defaults"}
	b := r.Clone()
	b.Sources = []string{"defaults", "rates.hcl"}
	if a.Fingerprint() != b.Fingerprint() {
		t.Error("sources should not affect the fingerprint")
	}
}
