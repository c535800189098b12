// Package types - Estimate result types
package types

import "github.com/shopspring/decimal"

// Category groups line items on the estimate
type Category string

const (
	CategoryCement    Category = "cement"
	CategorySand      Category = "sand"
	CategoryAggregate Category = "aggregate"
	CategorySteel     Category = "steel"
	CategoryBricks    Category = "bricks"
	CategoryFinishing Category = "finishing"
)

// Categories lists every category in report order
var Categories = []Category{
	CategoryCement, CategorySand, CategoryAggregate,
	CategorySteel, CategoryBricks, CategoryFinishing,
}

// Label returns a human-readable label
func (c Category) Label() string {
	switch c {
	case CategoryCement:
		return "Cement"
	case CategorySand:
		return "Sand"
	case CategoryAggregate:
		return "Aggregate"
	case CategorySteel:
		return "Steel"
	case CategoryBricks:
		return "Bricks"
	case CategoryFinishing:
		return "Finishing"
	}
	return string(c)
}

// LineItem is a single priced quantity
type LineItem struct {
	// ID is stable across runs, e.g. "cement.rcc"
	ID string `json:"id"`

	// Label is a human-readable label
	Label string `json:"label"`

	// Category is the category the amount counts towards
	Category Category `json:"category"`

	// Material is the priced material
	Material Material `json:"material"`

	// Unit is the measure of Quantity
	Unit string `json:"unit"`

	// Quantity is the procured quantity after plan adjustment
	Quantity decimal.Decimal `json:"quantity"`

	// Rate is the plan-adjusted price per RateBasis units
	Rate decimal.Decimal `json:"rate"`

	// RateBasis is the quantity Rate is quoted for
	RateBasis int64 `json:"rate_basis"`

	// Amount is round2(Quantity * Rate / RateBasis)
	Amount decimal.Decimal `json:"amount"`

	// Formula describes how the quantity was derived
	Formula string `json:"formula,omitempty"`
}

// CategoryCost groups the line items of one category
type CategoryCost struct {
	Category Category    `json:"category"`
	Label    string      `json:"label"`
	Items    []*LineItem `json:"items"`

	// Quantity sums the items when they share a unit; Unit is "mixed" otherwise
	Quantity decimal.Decimal `json:"quantity"`
	Unit     string          `json:"unit"`

	// Subtotal is the exact sum of the item amounts
	Subtotal decimal.Decimal `json:"subtotal"`
}

// NewCategoryCost creates an empty category
func NewCategoryCost(c Category) *CategoryCost {
	return &CategoryCost{
		Category: c,
		Label:    c.Label(),
		Items:    []*LineItem{},
	}
}

// Add adds a line item and keeps the running subtotal
func (c *CategoryCost) Add(item *LineItem) {
	switch {
	case len(c.Items) == 0:
		c.Unit = item.Unit
		c.Quantity = item.Quantity
	case c.Unit == item.Unit:
		c.Quantity = c.Quantity.Add(item.Quantity)
	default:
		c.Unit = UnitMixed
		c.Quantity = decimal.Zero
	}
	c.Items = append(c.Items, item)
	c.Subtotal = c.Subtotal.Add(item.Amount)
}

// ConcreteVolumes are the wet concrete volumes per member in m3
type ConcreteVolumes struct {
	PCC     decimal.Decimal `json:"pcc"`
	Footing decimal.Decimal `json:"footing"`
	Columns decimal.Decimal `json:"columns"`
	Beams   decimal.Decimal `json:"beams"`
	Slab    decimal.Decimal `json:"slab"`
}

// RCC returns the reinforced concrete volume
func (v ConcreteVolumes) RCC() decimal.Decimal {
	return v.Footing.Add(v.Columns).Add(v.Beams).Add(v.Slab)
}

// Total returns PCC plus RCC
func (v ConcreteVolumes) Total() decimal.Decimal {
	return v.PCC.Add(v.RCC())
}

// MasonryQuantities are the brickwork takeoff figures
type MasonryQuantities struct {
	WallVolume  decimal.Decimal `json:"wall_volume_m3"`
	BricksPerM3 decimal.Decimal `json:"bricks_per_m3"`
	Bricks      decimal.Decimal `json:"bricks"`
	MortarWet   decimal.Decimal `json:"mortar_wet_m3"`
	MortarDry   decimal.Decimal `json:"mortar_dry_m3"`
	MortarMix   MortarMix       `json:"mortar_mix"`
}

// FinishingQuantities are the finishing takeoff figures.
// Disabled finishes stay zero.
type FinishingQuantities struct {
	InternalPlasterArea decimal.Decimal `json:"internal_plaster_area_m2"`
	ExternalPlasterArea decimal.Decimal `json:"external_plaster_area_m2"`
	PlasterVolume       decimal.Decimal `json:"plaster_volume_m3"`
	FlooringArea        decimal.Decimal `json:"flooring_area_m2"`
	Tiles               decimal.Decimal `json:"tiles"`
	PaintArea           decimal.Decimal `json:"paint_area_m2"`
	PaintLitres         decimal.Decimal `json:"paint_litres"`
}

// EstimateResult is the complete estimate for one spec under one plan.
// It carries no timestamps so identical inputs give identical results.
type EstimateResult struct {
	Plan       Plan       `json:"plan"`
	Currency   Currency   `json:"currency"`
	CementType CementType `json:"cement_type"`

	// InputHash identifies the building; RatesFingerprint identifies the rates
	InputHash        string `json:"input_hash"`
	RatesFingerprint string `json:"rates_fingerprint"`

	// Takeoff figures are design quantities before plan adjustment
	Concrete  ConcreteVolumes     `json:"concrete"`
	Masonry   MasonryQuantities   `json:"masonry"`
	Finishing FinishingQuantities `json:"finishing"`

	// Categories are always the six categories in report order
	Categories []*CategoryCost `json:"categories"`

	// TotalCost is the exact sum of the category subtotals
	TotalCost decimal.Decimal `json:"total_cost"`

	PlotArea    decimal.Decimal `json:"plot_area_sqft"`
	BuiltUpArea decimal.Decimal `json:"built_up_area_sqft"`
	CostPerSqft decimal.Decimal `json:"cost_per_sqft"`

	Assumptions []string `json:"assumptions"`
}

// Category returns the cost of one category, or nil
func (r *EstimateResult) Category(c Category) *CategoryCost {
	for _, cc := range r.Categories {
		if cc.Category == c {
			return cc
		}
	}
	return nil
}

// SumOfCategories adds the category subtotals
func (r *EstimateResult) SumOfCategories() decimal.Decimal {
	sum := decimal.Zero
	for _, cc := range r.Categories {
		sum = sum.Add(cc.Subtotal)
	}
	return sum
}

// LineItems returns every line item in report order
func (r *EstimateResult) LineItems() []*LineItem {
	var items []*LineItem
	for _, cc := range r.Categories {
		items = append(items, cc.Items...)
	}
	return items
}

// BOQRow is one row of a bill of quantities. Takeoff rows have no price.
type BOQRow struct {
	Section  string          `json:"section"`
	Item     string          `json:"item"`
	Unit     string          `json:"unit"`
	Quantity decimal.Decimal `json:"quantity"`
	Rate     decimal.Decimal `json:"rate"`
	Per      int64           `json:"per,omitempty"`
	Amount   decimal.Decimal `json:"amount"`
	Priced   bool            `json:"priced"`
}
