package percentile

import "math"

// Undefined marks a metric that is missing or not applicable for a record.
// No valid MolProbity measurement is ever negative, so -1 cannot collide with data.
const Undefined = -1.0

// NotFound is returned by Rank when the queried value is not in the table.
const NotFound = -1.0

// IsDefined reports whether v carries a usable value.
func IsDefined(v float64) bool {
	return v != Undefined && !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Normalize returns numerator/denominator as a percentage rounded to two
// decimals. Halves round away from zero (math.Round): 1/32 is 3.125% and
// normalizes to 3.13.
// The result is Undefined when either input is undefined or the denominator is 0.
func Normalize(numerator, denominator float64) float64 {
	if !IsDefined(numerator) || !IsDefined(denominator) || denominator == 0 {
		return Undefined
	}
	r := math.Round((numerator/denominator)*10000) / 100
	if !IsDefined(r) {
		return Undefined
	}
	return r
}
