// Package validation provides deal validation utilities. Every check returns
// a warning string (empty when the value is fine) rather than an error: an
// incomplete deal must still produce an offer sheet.
package validation

import (
	"fmt"
	"math"
)

// ValidateNonNegative warns about a negative or non-finite amount.
func ValidateNonNegative(field string, value float64) string {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return fmt.Sprintf("%s is not a number and will be treated as 0", field)
	}
	if value < 0 {
		return fmt.Sprintf("%s is negative (%.2f)", field, value)
	}
	return ""
}

// ValidatePercent warns about a rate outside [min, max].
func ValidatePercent(field string, value, min, max float64) string {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return fmt.Sprintf("%s is not a number and will be treated as 0", field)
	}
	if value < min || value > max {
		return fmt.Sprintf("%s of %.2f%% is outside %.2f%%-%.2f%%", field, value, min, max)
	}
	return ""
}

// ValidateIndex warns about an index that does not address a catalog of size entries.
func ValidateIndex(field string, index, size int) string {
	if index < 0 || index >= size {
		return fmt.Sprintf("%s index %d does not exist (catalog has %d entries) and is ignored", field, index, size)
	}
	return ""
}

// ValidateTerm warns about a loan term that cannot produce a payment.
func ValidateTerm(term int) string {
	if term <= 0 {
		return fmt.Sprintf("finance term of %d months yields no payment", term)
	}
	return ""
}
