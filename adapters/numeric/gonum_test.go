package numeric

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/floats/scalar"
)

func TestBetaCDF(t *testing.T) {
	d := NewGonumDistributions()

	tests := []struct {
		x, alpha, beta, want float64
	}{
		// Beta(1,1) is Uniform(0,1).
		{0.25, 1, 1, 0.25},
		{0.8, 1, 1, 0.8},
		// Beta(2,1): F(x) = x^2.
		{0.5, 2, 1, 0.25},
		// Beta(1,2): F(x) = 1 - (1-x)^2.
		{0.5, 1, 2, 0.75},
		// Outside the support.
		{-0.1, 3, 4, 0},
		{0, 3, 4, 0},
		{1, 3, 4, 1},
		{math.Inf(1), 3, 4, 1},
	}
	for _, tt := range tests {
		got := d.BetaCDF(tt.x, tt.alpha, tt.beta)
		if !scalar.EqualWithinAbsOrRel(got, tt.want, 1e-12, 1e-12) {
			t.Errorf("BetaCDF(%v, %v, %v) = %v, want %v", tt.x, tt.alpha, tt.beta, got, tt.want)
		}
	}
	assert.True(t, math.IsNaN(d.BetaCDF(math.NaN(), 1, 1)))
}

func TestBetaQuantile(t *testing.T) {
	d := NewGonumDistributions()

	assert.Equal(t, 0.0, d.BetaQuantile(0, 0.7, 0.7))
	assert.Equal(t, 1.0, d.BetaQuantile(1, 0.7, 0.7))
	assert.Equal(t, 0.0, d.BetaQuantile(-0.5, 0.7, 0.7))
	assert.InDelta(t, 0.5, d.BetaQuantile(0.5, 0.7, 0.7), 1e-9)
	assert.True(t, math.IsNaN(d.BetaQuantile(math.NaN(), 0.7, 0.7)))

	// Symmetric shape: Q(p) = 1 - Q(1-p).
	for _, p := range []float64{0.01, 0.1, 0.3, 0.45} {
		assert.InDelta(t, 1-d.BetaQuantile(1-p, 0.7, 0.7), d.BetaQuantile(p, 0.7, 0.7), 1e-9)
	}

	// U-shaped density pushes mass to the tails.
	assert.Less(t, d.BetaQuantile(0.1, 0.7, 0.7), 0.1)
	assert.Greater(t, d.BetaQuantile(0.9, 0.7, 0.7), 0.9)
}

func TestBetaQuantileInvertsCDF(t *testing.T) {
	d := NewGonumDistributions()
	for _, p := range []float64{0.05, 0.25, 0.5, 0.75, 0.95} {
		x := d.BetaQuantile(p, 3, 6)
		assert.InDelta(t, p, d.BetaCDF(x, 3, 6), 1e-9)
	}
}

func TestCauchySurvival(t *testing.T) {
	d := NewGonumDistributions()

	assert.Equal(t, 0.5, d.CauchySurvival(0))
	assert.InDelta(t, 0.25, d.CauchySurvival(1), 1e-15)
	assert.InDelta(t, 0.75, d.CauchySurvival(-1), 1e-15)
	assert.Equal(t, 0.0, d.CauchySurvival(math.Inf(1)))
	assert.Equal(t, 1.0, d.CauchySurvival(math.Inf(-1)))
	assert.True(t, math.IsNaN(d.CauchySurvival(math.NaN())))

	// Far tail keeps relative precision: sf(x) ~ 1/(pi x).
	x := 1e12
	got := d.CauchySurvival(x)
	assert.InEpsilon(t, 1/(math.Pi*x), got, 1e-9)
}
