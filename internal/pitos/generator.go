package pitos

import (
	"math"

	domain "pitos/domain/pitos"
	"pitos/internal/errors"
	"pitos/ports"
)

// Shape of the symmetric Beta warp applied to each Halton coordinate.
// Both parameters below 1 give a U-shaped density that over-samples the
// extreme order statistics.
const WarpShape = 0.7

// RawHalton returns the first count points of the 2-D Halton sequence in bases 2 and 3.
func RawHalton(count, n int) ([]domain.HaltonPoint, error) {
	if n <= 0 {
		return nil, errors.Newf(errors.CodeInvalidSize, "sample size n must be a positive integer, got %d", n)
	}
	return domain.HaltonPoints(count), nil
}

// GeneratePairs builds count weighted quasi-random pairs for a sample of size n
// followed by the marginal block (1,1)..(n,n).
func GeneratePairs(dist ports.DistributionPort, count, n int) (domain.PairSequence, error) {
	raw, err := RawHalton(count, n)
	if err != nil {
		return nil, err
	}

	pairs := make(domain.PairSequence, 0, len(raw)+n)
	for _, pt := range raw {
		pairs = append(pairs, domain.Pair{
			Start:  warpedIndex(dist, pt.X, n),
			Finish: warpedIndex(dist, pt.Y, n),
		})
	}
	return append(pairs, domain.Marginals(n)...), nil
}

// DefaultPairs is GeneratePairs with the standard block size round(10 n ln n).
func DefaultPairs(dist ports.DistributionPort, n int) (domain.PairSequence, error) {
	return GeneratePairs(dist, domain.PairCount(n), n)
}

// warpedIndex maps a raw coordinate in [0,1) to an index in [1,n].
func warpedIndex(dist ports.DistributionPort, coord float64, n int) int {
	w := dist.BetaQuantile(coord, WarpShape, WarpShape)
	if w == 0 {
		w = 1 / float64(n)
	}
	idx := int(math.Ceil(w * float64(n)))
	// A quantile that rounds up to 1 would ceil to n+1.
	if idx < 1 {
		idx = 1
	}
	if idx > n {
		idx = n
	}
	return idx
}
