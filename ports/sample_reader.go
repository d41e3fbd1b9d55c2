package ports

import "context"

// SampleReader loads one or more samples; each row is tested independently
type SampleReader interface {
	ReadRows(ctx context.Context) ([][]float64, error)
}
