package pitos

import (
	"testing"

	"github.com/stretchr/testify/assert"

	domain "pitos/domain/pitos"
	"pitos/internal/errors"
)

func TestValidatePairs(t *testing.T) {
	n := 10

	invalid := []domain.PairSequence{
		{{Start: 0, Finish: 5}},
		{{Start: 3, Finish: 0}},
		{{Start: -1, Finish: 7}},
		{{Start: 7, Finish: 11}},
		{{Start: 1, Finish: 2}, {Start: 11, Finish: 2}},
	}
	for _, pairs := range invalid {
		err := ValidatePairs(pairs, n)
		if assert.Error(t, err, "pairs %v", pairs) {
			assert.Equal(t, errors.CodeInvalidPairIndex, errors.GetCode(err))
		}
	}

	assert.NoError(t, ValidatePairs(domain.PairSequence{{Start: 1, Finish: 10}, {Start: 10, Finish: 1}, {Start: 5, Finish: 5}}, n))
	assert.NoError(t, ValidatePairs(nil, n))
}
