package mathutil

import (
	"math"
	"testing"
)

func TestRound(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected float64
	}{
		{"Round up at midpoint", 1.235, 1.24},
		{"Round down below midpoint", 1.234, 1.23},
		{"Binary midpoint rounds up", 1.005, 1.01},
		{"Sales tax midpoint", 2074.8 * 0.065, 134.86},
		{"No rounding needed", 1.23, 1.23},
		{"Large number", 12345.678, 12345.68},
		{"Negative number round up", -1.235, -1.24},
		{"Zero", 0.0, 0.0},
		{"Very small positive", 0.001, 0.00},
		{"NaN coerces to zero", math.NaN(), 0.0},
		{"Infinity coerces to zero", math.Inf(1), 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Round(tt.input)
			if result != tt.expected {
				t.Errorf("Round(%v) = %v, expected %v", tt.input, result, tt.expected)
			}
		})
	}
}

func TestSumCents(t *testing.T) {
	tests := []struct {
		name     string
		input    []float64
		expected float64
	}{
		{"Empty", nil, 0},
		{"Float residue removed", []float64{0.1, 0.2}, 0.3},
		{"Cost basis", []float64{18500, 1250.55, 300, 149.45}, 20200},
		{"Sub-cent parts rounded after summing", []float64{0.004, 0.004}, 0.01},
		{"Non-finite ignored", []float64{10, math.NaN(), math.Inf(-1)}, 10},
		{"Negative values", []float64{100, -25.5}, 74.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := SumCents(tt.input...)
			if result != tt.expected {
				t.Errorf("SumCents(%v) = %v, expected %v", tt.input, result, tt.expected)
			}
		})
	}
}

func TestCeilTo(t *testing.T) {
	tests := []struct {
		name      string
		value     float64
		increment float64
		expected  float64
	}{
		{"Whole dollar up", 105.49, 1, 106},
		{"Whole dollar exact", 105, 1, 105},
		{"Float noise does not bump", 105.00000000000001, 1, 105},
		{"Cent up", 21103.5601, 0.01, 21103.57},
		{"Cent exact", 21103.56, 0.01, 21103.56},
		{"Hundred dollars", 21103.56, 100, 21200},
		{"Zero increment rounds to cents", 10.126, 0, 10.13},
		{"Zero value", 0, 1, 0},
		{"NaN value", math.NaN(), 1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CeilTo(tt.value, tt.increment)
			if result != tt.expected {
				t.Errorf("CeilTo(%v, %v) = %v, expected %v", tt.value, tt.increment, result, tt.expected)
			}
		})
	}
}

func TestFinite(t *testing.T) {
	if Finite(math.NaN()) != 0 {
		t.Error("expected NaN to coerce to 0")
	}
	if Finite(math.Inf(1)) != 0 || Finite(math.Inf(-1)) != 0 {
		t.Error("expected infinities to coerce to 0")
	}
	if Finite(-12.5) != -12.5 {
		t.Error("expected finite values to pass through")
	}
}

func TestIsCents(t *testing.T) {
	a, b := 0.1, 0.2
	tests := []struct {
		input    float64
		expected bool
	}{
		{0, true},
		{100, true},
		{12.5, true},
		{12.34, true},
		{12.345, false},
		{a + b, false},
		{0.30000000000000004, false},
		{Round(a + b), true},
	}

	for _, tt := range tests {
		if got := IsCents(tt.input); got != tt.expected {
			t.Errorf("IsCents(%v) = %v, expected %v", tt.input, got, tt.expected)
		}
	}
}

func TestWithinTolerance(t *testing.T) {
	tests := []struct {
		name      string
		val1      float64
		val2      float64
		tolerance float64
		expected  bool
	}{
		{"Exactly equal", 5.0, 5.0, 0.01, true},
		{"ROI within a hundredth", 5.0, 5.004, 0.01, true},
		{"ROI outside a hundredth", 5.0, 5.02, 0.01, false},
		{"Zero tolerance no match", 1.0, 1.001, 0.0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := WithinTolerance(tt.val1, tt.val2, tt.tolerance)
			if result != tt.expected {
				t.Errorf("WithinTolerance(%v, %v, %v) = %v, expected %v",
					tt.val1, tt.val2, tt.tolerance, result, tt.expected)
			}
		})
	}
}

func TestCalculatePercentage(t *testing.T) {
	tests := []struct {
		name     string
		value    float64
		total    float64
		expected float64
	}{
		{"Five percent profit", 1010, 20200, 5.0},
		{"Zero total", 50.0, 0.0, 0.0},
		{"Loss", -202, 20200, -1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CalculatePercentage(tt.value, tt.total)
			if math.Abs(result-tt.expected) > 0.001 {
				t.Errorf("CalculatePercentage(%v, %v) = %v, expected %v",
					tt.value, tt.total, result, tt.expected)
			}
		})
	}
}

func TestApplyPercentage(t *testing.T) {
	tests := []struct {
		name       string
		value      float64
		percentage float64
		expected   float64
	}{
		{"Sales tax", 20748, 6.5, 1348.62},
		{"Zero rate", 20748, 0, 0},
		{"Percentage of zero", 0.0, 9.5, 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ApplyPercentage(tt.value, tt.percentage)
			if math.Abs(result-tt.expected) > 0.001 {
				t.Errorf("ApplyPercentage(%v, %v) = %v, expected %v",
					tt.value, tt.percentage, result, tt.expected)
			}
		})
	}
}
