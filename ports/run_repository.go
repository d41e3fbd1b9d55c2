package ports

import (
	"context"

	"pitos/domain/core"
	"pitos/domain/run"
)

// RunRepository persists the run ledger
type RunRepository interface {
	SaveRun(ctx context.Context, record *run.Record) error
	// GetRun returns a NOT_FOUND error for an unknown id
	GetRun(ctx context.Context, id core.RunID) (*run.Record, error)
	// ListRuns returns the most recent runs first
	ListRuns(ctx context.Context, limit int) ([]run.Record, error)
}
