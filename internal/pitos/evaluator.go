package pitos

import (
	"math"

	domain "pitos/domain/pitos"
	"pitos/ports"
)

// EvaluatePair computes the two-sided bidirectional PIT p-value of one pair
// against the order statistics xo of a sample of size n. Indices in pair are
// 1-based and must already be validated.
//
// Exact ties between distinct order statistics give u = 0, hence p = 0.
func EvaluatePair(dist ports.DistributionPort, xo []float64, n int, pair domain.Pair) float64 {
	u := pitU(dist, xo, n, pair)
	return 2 * math.Min(u, 1-u)
}

func pitU(dist ports.DistributionPort, xo []float64, n int, pair domain.Pair) float64 {
	start, finish := pair.Start, pair.Finish
	xs, xf := xo[start-1], xo[finish-1]

	switch pair.Direction() {
	case domain.Diagonal:
		// k-th order statistic of n uniforms is Beta(k, n-k+1)
		return dist.BetaCDF(xf, float64(finish), float64(n-finish+1))

	case domain.Forward:
		if xs == xf {
			return 0
		}
		val := (xf - xs) / (1 - xs)
		return dist.BetaCDF(val, float64(finish-start), float64(n-finish+1))

	default:
		if xs == xf {
			return 0
		}
		val := xf / xs
		return dist.BetaCDF(val, float64(finish), float64(start-finish))
	}
}
