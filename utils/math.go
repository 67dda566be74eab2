package utils

import "math"

// Round2 rounds a monetary or percentage value to 2 decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
