// Package estimate turns a building spec into a priced bill of materials.
//
// Quantities are taken off in metric units from the imperial spec, split
// into materials with nominal-mix coefficients, adjusted for the plan and
// priced with decimal arithmetic. Estimate is a pure function: it does not
// log, keep state or read the clock.
package estimate

import (
	"fmt"
	"math"
	"strconv"

	"github.com/shopspring/decimal"

	"construction-cost/core/determinism"
	"construction-cost/core/types"
	"construction-cost/internal/errors"
)

// draft is an unpriced line. Quantities stay float64 until pricing.
type draft struct {
	id       string
	label    string
	category types.Category
	material types.Material
	quantity float64
	discrete bool
	formula  string
}

// takeoff collects the design quantities of one spec
type takeoff struct {
	spec *types.BuildingSpec
	std  types.Standards

	concrete  concreteTakeoff
	masonry   masonryTakeoff
	finishing finishingTakeoff

	lines []draft
	notes []string
}

func (t *takeoff) add(d draft) {
	if d.quantity > 0 {
		t.lines = append(t.lines, d)
	}
}

func (t *takeoff) note(format string, args ...interface{}) {
	t.notes = append(t.notes, fmt.Sprintf(format, args...))
}

// Estimate computes the bill of materials for spec under spec.Plan.
// An invalid spec returns the input errors of every offending field.
func Estimate(spec types.BuildingSpec, rates types.MaterialRates) (*types.EstimateResult, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	if err := rates.Validate(); err != nil {
		return nil, errors.Config("rates are incomplete", err)
	}

	inputHash, err := hashSpec(spec)
	if err != nil {
		return nil, errors.Internal("failed to hash building spec", err)
	}

	t := &takeoff{spec: &spec, std: rates.Standards}
	t.takeConcrete()
	t.takeMasonry()
	t.takeFinishing()

	plan := spec.Plan.OrDefault()
	factor := rates.PlanFactor(plan)

	result := &types.EstimateResult{
		Plan:             plan,
		Currency:         rates.Currency,
		CementType:       spec.CementType,
		InputHash:        inputHash,
		RatesFingerprint: rates.Fingerprint(),
		Concrete:         t.concrete.result(),
		Masonry:          t.masonry.result(spec.Walls.Mortar),
		Finishing:        t.finishing.result(),
		Categories:       make([]*types.CategoryCost, 0, len(types.Categories)),
	}

	byCategory := make(map[types.Category]*types.CategoryCost, len(types.Categories))
	for _, c := range types.Categories {
		cc := types.NewCategoryCost(c)
		byCategory[c] = cc
		result.Categories = append(result.Categories, cc)
	}
	for _, d := range t.lines {
		byCategory[d.category].Add(priceLine(d, rates, factor))
	}

	total := decimal.Zero
	for _, cc := range result.Categories {
		total = total.Add(cc.Subtotal)
	}
	result.TotalCost = total

	builtUp := decimal.NewFromFloat(float64(spec.BuiltUpArea()))
	result.PlotArea = decimal.NewFromFloat(float64(spec.Plot.Area())).Round(2)
	result.BuiltUpArea = builtUp.Round(2)
	if builtUp.IsPositive() {
		result.CostPerSqft = total.Div(builtUp).Round(2)
	}

	t.note("Plan %s: quantities x%s, rates x%s", plan, ftoa(factor.Quantity), ftoa(factor.Rate))
	t.note("Cement type %s is reported only and does not change quantities", spec.CementType)
	result.Assumptions = t.notes

	return result, nil
}

// priceLine applies the plan factors and prices a draft.
// Discrete quantities are rounded up again after the quantity factor.
func priceLine(d draft, rates types.MaterialRates, factor types.PlanFactor) *types.LineItem {
	unit := d.material.Unit()
	qty := d.quantity * factor.Quantity
	if d.discrete {
		qty = ceilWhole(qty)
	}
	quantity := decimal.NewFromFloat(qty).Round(precision(unit))

	p := rates.Prices[d.material]
	basis := p.Basis
	if basis < 1 {
		basis = 1
	}
	rate := p.Rate.Mul(decimal.NewFromFloat(factor.Rate)).Round(2)
	amount := quantity.Mul(rate).Div(decimal.NewFromInt(basis)).Round(2)

	return &types.LineItem{
		ID:        d.id,
		Label:     d.label,
		Category:  d.category,
		Material:  d.material,
		Unit:      unit,
		Quantity:  quantity,
		Rate:      rate,
		RateBasis: basis,
		Amount:    amount,
		Formula:   d.formula,
	}
}

// hashSpec identifies a spec regardless of plan, so the plans of one
// building share an input hash
func hashSpec(spec types.BuildingSpec) (string, error) {
	spec.Plan = ""
	h, err := determinism.HashJSON(spec)
	if err != nil {
		return "", err
	}
	return h.Short(), nil
}

// precision is the number of decimal places kept for a unit
func precision(unit string) int32 {
	switch unit {
	case types.UnitBag, types.UnitNos:
		return 0
	case types.UnitM3:
		return 3
	}
	return 2
}

// ceilWhole rounds up, ignoring float noise just above a whole number
func ceilWhole(x float64) float64 {
	return math.Ceil(x - 1e-9)
}

func round(x float64, places int32) decimal.Decimal {
	return decimal.NewFromFloat(x).Round(places)
}

func ftoa(x float64) string {
	return strconv.FormatFloat(x, 'f', -1, 64)
}
