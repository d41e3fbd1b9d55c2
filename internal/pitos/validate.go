package pitos

import (
	domain "pitos/domain/pitos"
	"pitos/internal/errors"
)

// ValidatePairs fails on the first pair with an index outside [1, n].
func ValidatePairs(pairs domain.PairSequence, n int) error {
	for i, p := range pairs {
		if !p.InRange(n) {
			return errors.Newf(errors.CodeInvalidPairIndex,
				"all pair indices must be between 1 and n (where n=%d): pair %d is %s", n, i, p)
		}
	}
	return nil
}
