package util

import "math"

// Round2 rounds v to two decimal places. Rates and percentages are rounded
// once at the response edge; intermediate accumulation stays unrounded.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
