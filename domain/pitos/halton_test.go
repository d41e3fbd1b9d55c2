package pitos

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHalton1D_KnownValues(t *testing.T) {
	tests := []struct {
		i, b int
		want float64
	}{
		{0, 2, 0},
		{1, 2, 0.5},
		{2, 2, 0.25},
		{3, 2, 0.75},
		{4, 2, 0.125},
		{1, 3, 1.0 / 3},
		{2, 3, 2.0 / 3},
		{3, 3, 1.0 / 9},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, Halton1D(tt.i, tt.b), 1e-15, "Halton1D(%d, %d)", tt.i, tt.b)
	}

	// Exact in base 2.
	assert.Equal(t, 0.5, Halton1D(1, 2))
	assert.Equal(t, 0.25, Halton1D(2, 2))
	assert.Equal(t, 0.75, Halton1D(3, 2))
}

func TestHalton1D_RangeAndDeterminism(t *testing.T) {
	for _, b := range []int{2, 3, 5, 7, 10} {
		for i := 1; i <= 2000; i++ {
			v := Halton1D(i, b)
			if v < 0 || v >= 1 {
				t.Fatalf("Halton1D(%d, %d) = %v outside [0,1)", i, b, v)
			}
			if again := Halton1D(i, b); math.Float64bits(again) != math.Float64bits(v) {
				t.Fatalf("Halton1D(%d, %d) not deterministic: %v vs %v", i, b, v, again)
			}
		}
	}
}

func TestHalton1D_InvalidBase(t *testing.T) {
	assert.True(t, math.IsNaN(Halton1D(5, 1)))
	assert.True(t, math.IsNaN(Halton1D(5, 0)))
}

func TestHaltonPoints(t *testing.T) {
	points := HaltonPoints(3)
	assert.Len(t, points, 3)
	assert.Equal(t, 0.5, points[0].X)
	assert.InDelta(t, 1.0/3, points[0].Y, 1e-15)
	assert.Equal(t, 0.25, points[1].X)
	assert.InDelta(t, 2.0/3, points[1].Y, 1e-15)

	assert.Empty(t, HaltonPoints(0))
	assert.Empty(t, HaltonPoints(-4))
}
