package app

import (
	"context"
	"log/slog"
	"time"

	"github.com/montanaflynn/stats"
	"golang.org/x/sync/errgroup"

	"pitos/domain/core"
	domain "pitos/domain/pitos"
	"pitos/domain/run"
	"pitos/internal/errors"
	"pitos/internal/metrics"
	"pitos/internal/pitos"
	"pitos/ports"
)

// DefaultAlpha is the level used when summarizing batch rejections
const DefaultAlpha = 0.05

// PITOSService runs uniformity tests for the CLI and the HTTP API
type PITOSService struct {
	engine       *pitos.Engine
	batchWorkers int
	runs         ports.RunRepository
	logger       *slog.Logger
}

// TestReport is the outcome of a single test call
type TestReport struct {
	RunID       core.RunID `json:"run_id"`
	PValue      float64    `json:"p_value"`
	SampleSize  int        `json:"sample_size"`
	PairCount   int        `json:"pair_count"`
	PairPValues []float64  `json:"pair_p_values,omitempty"`
	RuntimeMs   int64      `json:"runtime_ms"`
}

// BatchSummary describes the distribution of per-row p-values
type BatchSummary struct {
	Rows     int     `json:"rows"`
	Min      float64 `json:"min"`
	Median   float64 `json:"median"`
	Max      float64 `json:"max"`
	Alpha    float64 `json:"alpha"`
	Rejected int     `json:"rejected"`
}

// BatchReport holds one p-value per input row, in row order
type BatchReport struct {
	RunID     core.RunID   `json:"run_id"`
	PValues   []float64    `json:"p_values"`
	Summary   BatchSummary `json:"summary"`
	RuntimeMs int64        `json:"runtime_ms"`
}

// NewPITOSService creates the service. batchWorkers bounds the rows evaluated at once.
func NewPITOSService(engine *pitos.Engine, batchWorkers int, logger *slog.Logger) *PITOSService {
	if batchWorkers < 1 {
		batchWorkers = 1
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PITOSService{
		engine:       engine,
		batchWorkers: batchWorkers,
		logger:       logger.With("component", "pitos_service"),
	}
}

// WithRunRepository records every completed test and batch in repo
func (s *PITOSService) WithRunRepository(repo ports.RunRepository) *PITOSService {
	s.runs = repo
	return s
}

// Runs returns the configured run ledger, or nil
func (s *PITOSService) Runs() ports.RunRepository {
	return s.runs
}

// Test runs one test. A nil pairs sequence uses the default weighted Halton sequence.
func (s *PITOSService) Test(ctx context.Context, sample []float64, pairs domain.PairSequence, includePairs bool) (*TestReport, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	runID := core.NewRunID()
	start := time.Now()

	res, err := s.engine.Run(sample, pairs)
	if err != nil {
		metrics.RecordTestError()
		s.logger.Warn("test failed", "run_id", runID, "code", errors.GetCode(err), "error", err)
		return nil, err
	}

	elapsed := time.Since(start)
	metrics.RecordTest(res.PValue, res.PairCount, elapsed)
	s.logger.Info("test complete",
		"run_id", runID,
		"sample_size", res.SampleSize,
		"pairs", res.PairCount,
		"p_value", res.PValue)

	report := &TestReport{
		RunID:      runID,
		PValue:     res.PValue,
		SampleSize: res.SampleSize,
		PairCount:  res.PairCount,
		RuntimeMs:  elapsed.Milliseconds(),
	}
	if includePairs {
		report.PairPValues = res.PairPValues
	}

	s.record(ctx, &run.Record{
		RunID:      runID,
		Kind:       run.KindTest,
		SampleSize: res.SampleSize,
		PairCount:  res.PairCount,
		RowCount:   1,
		PValue:     res.PValue,
		Rejected:   rejectedCount(res),
		RuntimeMs:  report.RuntimeMs,
	})
	return report, nil
}

// RunBatch tests every row with the default pair sequence. Rows run
// concurrently; the first failure cancels the rest and is returned with its
// 1-based row number.
func (s *PITOSService) RunBatch(ctx context.Context, rows [][]float64) (*BatchReport, error) {
	if len(rows) == 0 {
		return nil, errors.InvalidInput("batch has no rows")
	}

	runID := core.NewRunID()
	start := time.Now()
	s.logger.Info("batch started", "run_id", runID, "rows", len(rows), "workers", s.batchWorkers)
	metrics.RecordBatch(len(rows))

	pValues := make([]float64, len(rows))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.batchWorkers)
	for i, row := range rows {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			rowStart := time.Now()
			res, err := s.engine.Run(row, nil)
			if err != nil {
				metrics.RecordTestError()
				return errors.Wrapf(err, "row %d", i+1)
			}
			metrics.RecordTest(res.PValue, res.PairCount, time.Since(rowStart))
			pValues[i] = res.PValue
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		s.logger.Warn("batch failed", "run_id", runID, "code", errors.GetCode(err), "error", err)
		return nil, err
	}

	summary, err := Summarize(pValues, DefaultAlpha)
	if err != nil {
		return nil, err
	}

	elapsed := time.Since(start)
	s.logger.Info("batch complete",
		"run_id", runID,
		"rows", summary.Rows,
		"rejected", summary.Rejected,
		"median_p", summary.Median,
		"runtime_ms", elapsed.Milliseconds())

	s.record(ctx, &run.Record{
		RunID:     runID,
		Kind:      run.KindBatch,
		RowCount:  summary.Rows,
		PValue:    summary.Median,
		Rejected:  summary.Rejected,
		RuntimeMs: elapsed.Milliseconds(),
	})

	return &BatchReport{
		RunID:     runID,
		PValues:   pValues,
		Summary:   summary,
		RuntimeMs: elapsed.Milliseconds(),
	}, nil
}

// record writes to the run ledger. A ledger failure is logged and does not
// fail the run.
func (s *PITOSService) record(ctx context.Context, rec *run.Record) {
	if s.runs == nil {
		return
	}
	if err := s.runs.SaveRun(ctx, rec); err != nil {
		s.logger.Warn("failed to record run", "run_id", rec.RunID, "error", err)
	}
}

func rejectedCount(res *domain.Result) int {
	if res.Rejects(DefaultAlpha) {
		return 1
	}
	return 0
}

// Summarize reports min, median, max and the number of p-values below alpha.
func Summarize(pValues []float64, alpha float64) (BatchSummary, error) {
	data := stats.Float64Data(pValues)

	minP, err := stats.Min(data)
	if err != nil {
		return BatchSummary{}, errors.Wrap(errors.WithCode(errors.CodeInvalidInput, err), "summarizing p-values")
	}
	maxP, err := stats.Max(data)
	if err != nil {
		return BatchSummary{}, errors.Wrap(errors.WithCode(errors.CodeInvalidInput, err), "summarizing p-values")
	}
	median, err := stats.Median(data)
	if err != nil {
		return BatchSummary{}, errors.Wrap(errors.WithCode(errors.CodeInvalidInput, err), "summarizing p-values")
	}

	rejected := 0
	for _, p := range pValues {
		if p < alpha {
			rejected++
		}
	}

	return BatchSummary{
		Rows:     len(pValues),
		Min:      minP,
		Median:   median,
		Max:      maxP,
		Alpha:    alpha,
		Rejected: rejected,
	}, nil
}
