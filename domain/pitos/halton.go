package pitos

import "math"

// Halton bases for the two coordinates of the raw sequence.
const (
	HaltonBaseX = 2
	HaltonBaseY = 3
)

// Halton1D is the van der Corput radical inverse of i in base b.
// Halton1D(0, b) is 0 and every result lies in [0, 1). Bases below 2 yield NaN.
func Halton1D(i, b int) float64 {
	if b < 2 {
		return math.NaN()
	}
	result := 0.0
	f := 1.0
	for i > 0 {
		f /= float64(b)
		result += f * float64(i%b)
		i /= b
	}
	return result
}

// HaltonPoint is one point of the raw two dimensional sequence.
type HaltonPoint struct {
	X, Y float64
}

// HaltonPoints returns the points for i = 1..count in bases 2 and 3.
func HaltonPoints(count int) []HaltonPoint {
	if count < 0 {
		count = 0
	}
	points := make([]HaltonPoint, count)
	for i := 1; i <= count; i++ {
		points[i-1] = HaltonPoint{
			X: Halton1D(i, HaltonBaseX),
			Y: Halton1D(i, HaltonBaseY),
		}
	}
	return points
}
