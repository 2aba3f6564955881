package common

import "math"

func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

// Clamp restricts v to [lo, hi]. When lo > hi the bounds are swapped.
func Clamp(v, lo, hi float64) float64 {
	if lo > hi {
		lo, hi = hi, lo
	}
	return math.Max(lo, math.Min(v, hi))
}

// Overlap reports whether the half-open ranges [a0, a0+aLen) and [b0, b0+bLen) intersect.
func Overlap(a0, aLen, b0, bLen float64) bool {
	return a0 < b0+bLen && a0+aLen > b0
}
