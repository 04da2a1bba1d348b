package repositories

import "math"

// round2 keeps monetary values at 2 fraction digits.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
