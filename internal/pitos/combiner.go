package pitos

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"pitos/internal/errors"
	"pitos/ports"
)

// CauchyStatistic is the mean of tan(pi*(0.5-p)) over pValues.
// Inputs are assumed validated.
func CauchyStatistic(pValues []float64) float64 {
	transformed := make([]float64, len(pValues))
	for i, p := range pValues {
		transformed[i] = math.Tan(math.Pi * (0.5 - p))
	}
	return stat.Mean(transformed, nil)
}

// CombineCauchy aggregates dependent p-values with the Cauchy combination test.
func CombineCauchy(dist ports.DistributionPort, pValues []float64) (float64, error) {
	if len(pValues) == 0 {
		return 0, errors.InvalidInput("cannot combine an empty p-value vector")
	}
	for i, p := range pValues {
		// written so that NaN fails too
		if !(p >= 0 && p <= 1) {
			return 0, errors.Newf(errors.CodeInvalidPValue,
				"all p-values must be in the range [0, 1]: element %d is %v", i, p)
		}
	}
	return dist.CauchySurvival(CauchyStatistic(pValues)), nil
}
