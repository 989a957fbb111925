// Package money provides monetary rounding helpers. All monetary outputs of the
// portfolio computations are rounded to 2 decimal places at the point of
// emission, never accumulated with intermediate rounding.
package money

import "github.com/shopspring/decimal"

// Round2 rounds v to 2 decimal places, half away from zero.
func Round2(v float64) float64 {
	f, _ := decimal.NewFromFloat(v).Round(2).Float64()
	return f
}

// HasAtMostTwoDecimals reports whether v carries no more than 2 fractional
// digits, the precision accepted for transaction prices.
func HasAtMostTwoDecimals(v float64) bool {
	d := decimal.NewFromFloat(v)
	return d.Equal(d.Round(2))
}
