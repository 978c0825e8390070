package matrix

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// Mean returns the arithmetic mean of values.
func Mean(values []float64) float64 {
	return stat.Mean(values, nil)
}

// Sigma returns the sample standard deviation of values (n-1 divisor).
func Sigma(values []float64) float64 {
	return stat.StdDev(values, nil)
}

// IsApproxEqual reports whether a and b differ by less than eps.
func IsApproxEqual(a, b, eps float64) bool {
	return math.Abs(a-b) < eps
}

// IsApproxEqualSlice reports whether a and b have the same length and every
// pair of entries differs by less than eps.
func IsApproxEqualSlice(a, b []float64, eps float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !IsApproxEqual(a[i], b[i], eps) {
			return false
		}
	}

	return true
}
