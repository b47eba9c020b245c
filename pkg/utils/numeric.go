package utils

import "math"

// ValueOr dereferences a nullable stat, falling back to def when unset.
func ValueOr(x *float64, def float64) float64 {
	if x == nil {
		return def
	}
	return *x
}

// SafeDivide returns n/d, or def when the denominator is zero or negative.
func SafeDivide(n, d, def float64) float64 {
	if d <= 0 {
		return def
	}
	return n / d
}

// Round1 rounds to one decimal place, the precision used for fantasy points.
func Round1(x float64) float64 {
	return math.Round(x*10) / 10
}

// Round2 rounds to two decimal places, used for rate and share statistics.
func Round2(x float64) float64 {
	return math.Round(x*100) / 100
}

// Ptr returns a pointer to v, for populating nullable stat fields.
func Ptr(v float64) *float64 {
	return &v
}
