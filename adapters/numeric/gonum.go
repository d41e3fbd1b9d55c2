package numeric

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"

	"pitos/ports"
)

// GonumDistributions implements ports.DistributionPort on top of gonum's distuv
type GonumDistributions struct{}

var _ ports.DistributionPort = (*GonumDistributions)(nil)

// NewGonumDistributions creates the gonum-backed distribution adapter
func NewGonumDistributions() *GonumDistributions {
	return &GonumDistributions{}
}

// BetaQuantile computes the inverse CDF of Beta(alpha, beta).
// p is clamped to [0,1] because distuv panics outside it.
func (g *GonumDistributions) BetaQuantile(p, alpha, beta float64) float64 {
	if math.IsNaN(p) {
		return math.NaN()
	}
	if p <= 0 {
		return 0
	}
	if p >= 1 {
		return 1
	}
	return distuv.Beta{Alpha: alpha, Beta: beta}.Quantile(p)
}

// BetaCDF computes the cumulative distribution function of Beta(alpha, beta)
func (g *GonumDistributions) BetaCDF(x, alpha, beta float64) float64 {
	if math.IsNaN(x) {
		return math.NaN()
	}
	return distuv.Beta{Alpha: alpha, Beta: beta}.CDF(x)
}

// CauchySurvival computes P(X > x) for the standard Cauchy distribution.
// For x > 0 it uses atan(1/x)/pi, which keeps relative precision far in the
// upper tail where 0.5 - atan(x)/pi cancels.
func (g *GonumDistributions) CauchySurvival(x float64) float64 {
	switch {
	case math.IsNaN(x):
		return math.NaN()
	case x > 0:
		return math.Atan(1/x) / math.Pi
	default:
		return 0.5 - math.Atan(x)/math.Pi
	}
}
