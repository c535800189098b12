// Package types defines core domain types shared across all layers.
// This package contains NO estimation logic - only type definitions,
// unit conversions and input validation.
package types

// Conversion factors from the imperial form units to metric
const (
	FtToM     = 0.3048
	InchToM   = 0.0254
	SqftToSqm = 0.09290304
	MmToM     = 0.001
)

// Feet is a length entered in feet
type Feet float64

// Meters converts to metres
func (f Feet) Meters() float64 {
	return float64(f) * FtToM
}

// Inches is a length entered in inches
type Inches float64

// Meters converts to metres
func (i Inches) Meters() float64 {
	return float64(i) * InchToM
}

// SquareFeet is an area entered in square feet
type SquareFeet float64

// SquareMeters converts to square metres
func (s SquareFeet) SquareMeters() float64 {
	return float64(s) * SqftToSqm
}

// Units of measure used on line items and bills of quantities
const (
	UnitBag   = "bag"
	UnitM3    = "m3"
	UnitM2    = "m2"
	UnitKg    = "kg"
	UnitNos   = "nos"
	UnitLitre = "L"
	UnitMixed = "mixed"
)
