package pitos

import (
	"math"
	"sort"
)

// OrderStatistics returns an ascending copy of sample; the input is left untouched.
func OrderStatistics(sample []float64) []float64 {
	xo := make([]float64, len(sample))
	copy(xo, sample)
	sort.Float64s(xo)
	return xo
}

// PairCount is the size of the quasi-random block for a sample of size n:
// round(10 * n * ln n). Zero for n <= 1.
func PairCount(n int) int {
	if n <= 1 {
		return 0
	}
	return int(math.Round(10 * float64(n) * math.Log(float64(n))))
}
