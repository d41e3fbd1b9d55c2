package run

import (
	"time"

	"pitos/domain/core"
)

// Kind distinguishes single tests from batch runs in the run ledger
type Kind string

const (
	KindTest  Kind = "test"
	KindBatch Kind = "batch"
)

// Record is the ledger entry kept for one test or batch invocation.
// For a batch, PValue is the median row p-value and SampleSize is zero.
type Record struct {
	RunID      core.RunID
	Kind       Kind
	SampleSize int
	PairCount  int
	RowCount   int
	PValue     float64
	Rejected   int
	RuntimeMs  int64
	CreatedAt  time.Time
}
