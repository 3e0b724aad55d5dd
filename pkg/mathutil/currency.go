// Package mathutil provides common mathematical utility functions.
package mathutil

import (
	"math"

	"github.com/iwvelando/deal-calculator/pkg/constants"
	"github.com/shopspring/decimal"
)

// ceilGuardPlaces absorbs binary floating point noise (e.g. 105.00000000000001)
// before a ceiling is taken.
const ceilGuardPlaces = 6

// Finite returns val, or 0 when val is NaN or infinite.
func Finite(val float64) float64 {
	if math.IsNaN(val) || math.IsInf(val, 0) {
		return 0
	}
	return val
}

// Round rounds a value to two decimals, i.e. to represent real currency.
// Halves round away from zero on the decimal value as written, so 1.005
// becomes 1.01. Non-finite values round to 0.
func Round(val float64) float64 {
	val = Finite(val)
	return decimal.NewFromFloat(val).Round(constants.CentPlaces).InexactFloat64()
}

// SumCents adds the values exactly and rounds the total to cents.
func SumCents(vals ...float64) float64 {
	total := decimal.Zero
	for _, v := range vals {
		total = total.Add(decimal.NewFromFloat(Finite(v)))
	}
	return total.Round(constants.CentPlaces).InexactFloat64()
}

// CeilTo rounds val up to the next multiple of increment. A non-positive
// increment falls back to cent rounding.
func CeilTo(val, increment float64) float64 {
	val = Finite(val)
	increment = Finite(increment)
	if increment <= 0 {
		return Round(val)
	}
	d := decimal.NewFromFloat(val).Round(ceilGuardPlaces)
	step := decimal.NewFromFloat(increment)
	return d.Div(step).Ceil().Mul(step).Round(constants.CentPlaces).InexactFloat64()
}

// IsCents reports whether val carries no precision beyond whole cents.
func IsCents(val float64) bool {
	val = Finite(val)
	if val == 0 {
		return true
	}
	return decimal.NewFromFloat(val).Exponent() >= -constants.CentPlaces
}

// WithinTolerance checks if two values are within a specified tolerance
func WithinTolerance(val1, val2, tolerance float64) bool {
	return math.Abs(val1-val2) <= tolerance
}

// CalculatePercentage calculates what percentage value is of total
func CalculatePercentage(value, total float64) float64 {
	if total == 0 {
		return 0
	}
	return (value / total) * constants.PercentageMultiplier
}

// ApplyPercentage applies a percentage to a value
func ApplyPercentage(value, percentage float64) float64 {
	return value * (percentage / constants.PercentageMultiplier)
}
