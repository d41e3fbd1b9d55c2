package postgres

import (
	"context"
	"database/sql"
	stderrors "errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"pitos/domain/core"
	"pitos/domain/run"
	"pitos/internal/errors"
	"pitos/ports"
)

const maxListLimit = 1000

// RunRepositoryImpl implements RunRepository on any sqlx database with the
// pitos_runs schema. Queries use '?' and are rebound for the driver.
type RunRepositoryImpl struct {
	db *sqlx.DB
}

// NewRunRepository creates a new run ledger repository
func NewRunRepository(db *sqlx.DB) ports.RunRepository {
	return &RunRepositoryImpl{db: db}
}

type runRow struct {
	RunID       string  `db:"run_id"`
	Kind        string  `db:"kind"`
	SampleSize  int     `db:"sample_size"`
	PairCount   int     `db:"pair_count"`
	RowCount    int     `db:"row_count"`
	PValue      float64 `db:"p_value"`
	Rejected    int     `db:"rejected"`
	RuntimeMs   int64   `db:"runtime_ms"`
	CreatedAtMs int64   `db:"created_at_ms"`
}

func toRow(r *run.Record) runRow {
	return runRow{
		RunID:       r.RunID.String(),
		Kind:        string(r.Kind),
		SampleSize:  r.SampleSize,
		PairCount:   r.PairCount,
		RowCount:    r.RowCount,
		PValue:      r.PValue,
		Rejected:    r.Rejected,
		RuntimeMs:   r.RuntimeMs,
		CreatedAtMs: r.CreatedAt.UnixMilli(),
	}
}

func (row runRow) record() run.Record {
	return run.Record{
		RunID:      core.RunID(row.RunID),
		Kind:       run.Kind(row.Kind),
		SampleSize: row.SampleSize,
		PairCount:  row.PairCount,
		RowCount:   row.RowCount,
		PValue:     row.PValue,
		Rejected:   row.Rejected,
		RuntimeMs:  row.RuntimeMs,
		CreatedAt:  time.UnixMilli(row.CreatedAtMs).UTC(),
	}
}

// SaveRun inserts a ledger entry. A zero CreatedAt is set to now.
func (r *RunRepositoryImpl) SaveRun(ctx context.Context, record *run.Record) error {
	if record == nil || record.RunID == "" {
		return errors.InvalidInput("run record requires a run ID")
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now().UTC()
	}

	_, err := r.db.NamedExecContext(ctx, `
		INSERT INTO pitos_runs (run_id, kind, sample_size, pair_count, row_count, p_value, rejected, runtime_ms, created_at_ms)
		VALUES (:run_id, :kind, :sample_size, :pair_count, :row_count, :p_value, :rejected, :runtime_ms, :created_at_ms)
	`, toRow(record))
	if err != nil {
		var pqErr *pq.Error
		if stderrors.As(err, &pqErr) && pqErr.Code == "23505" { // unique_violation
			return errors.Newf(errors.CodeInvalidInput, "run %s already recorded", record.RunID)
		}
		return errors.Wrapf(err, "failed to save run %s", record.RunID)
	}
	return nil
}

// GetRun retrieves a ledger entry by id
func (r *RunRepositoryImpl) GetRun(ctx context.Context, id core.RunID) (*run.Record, error) {
	var row runRow
	err := r.db.GetContext(ctx, &row, r.db.Rebind(`
		SELECT run_id, kind, sample_size, pair_count, row_count, p_value, rejected, runtime_ms, created_at_ms
		FROM pitos_runs
		WHERE run_id = ?
	`), id.String())
	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, errors.Newf(errors.CodeNotFound, "run %s not found", id)
		}
		return nil, errors.Wrapf(err, "failed to load run %s", id)
	}

	rec := row.record()
	return &rec, nil
}

// ListRuns returns up to limit entries, newest first. limit is clamped to [1, 1000].
func (r *RunRepositoryImpl) ListRuns(ctx context.Context, limit int) ([]run.Record, error) {
	limit = max(1, min(limit, maxListLimit))

	var rows []runRow
	err := r.db.SelectContext(ctx, &rows, r.db.Rebind(`
		SELECT run_id, kind, sample_size, pair_count, row_count, p_value, rejected, runtime_ms, created_at_ms
		FROM pitos_runs
		ORDER BY created_at_ms DESC, run_id DESC
		LIMIT ?
	`), limit)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list runs")
	}

	records := make([]run.Record, len(rows))
	for i, row := range rows {
		records[i] = row.record()
	}
	return records, nil
}
