package pitos

import (
	"log/slog"

	"golang.org/x/sync/errgroup"

	domain "pitos/domain/pitos"
	"pitos/internal/errors"
	"pitos/ports"
)

// Engine runs the PITOS uniformity test. It holds no per-call state and is
// safe for concurrent use.
type Engine struct {
	dist    ports.DistributionPort
	workers int
	logger  *slog.Logger
}

// Option configures an Engine
type Option func(*Engine)

// WithWorkers evaluates pairs on up to k goroutines. k <= 1 is sequential.
// The result does not depend on k.
func WithWorkers(k int) Option {
	return func(e *Engine) {
		if k < 1 {
			k = 1
		}
		e.workers = k
	}
}

// WithLogger sets the logger used for debug output
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// NewEngine creates an engine over the given distribution backend
func NewEngine(dist ports.DistributionPort, opts ...Option) *Engine {
	e := &Engine{
		dist:    dist,
		workers: 1,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Workers returns the configured per-pair parallelism
func (e *Engine) Workers() int {
	return e.workers
}

// Test returns the overall p-value for sample. A nil pairs sequence is
// replaced by the default weighted Halton sequence.
func (e *Engine) Test(sample []float64, pairs domain.PairSequence) (float64, error) {
	res, err := e.Run(sample, pairs)
	if err != nil {
		return 0, err
	}
	return res.PValue, nil
}

// Run is Test with the per-pair p-values kept in the result.
func (e *Engine) Run(sample []float64, pairs domain.PairSequence) (*domain.Result, error) {
	n := len(sample)

	if pairs == nil {
		generated, err := DefaultPairs(e.dist, n)
		if err != nil {
			return nil, errors.Wrap(err, "generating pair sequence")
		}
		pairs = generated
	} else if len(pairs) == 0 {
		return nil, errors.InvalidInput("pair sequence is empty")
	}

	if err := ValidatePairs(pairs, n); err != nil {
		return nil, err
	}

	xo := domain.OrderStatistics(sample)
	pValues, err := e.evaluateAll(xo, n, pairs)
	if err != nil {
		return nil, errors.Wrap(err, "evaluating pairs")
	}

	overall, err := CombineCauchy(e.dist, pValues)
	if err != nil {
		return nil, errors.Wrap(err, "combining pair p-values")
	}

	e.logger.Debug("pitos test complete",
		"sample_size", n,
		"pairs", len(pairs),
		"workers", e.workers,
		"p_value", overall)

	return &domain.Result{
		PValue:      overall,
		SampleSize:  n,
		PairCount:   len(pairs),
		PairPValues: pValues,
	}, nil
}

// evaluateAll maps EvaluatePair over pairs; slot i always holds pair i.
func (e *Engine) evaluateAll(xo []float64, n int, pairs domain.PairSequence) ([]float64, error) {
	pValues := make([]float64, len(pairs))

	if e.workers <= 1 || len(pairs) < 2*e.workers {
		for i, p := range pairs {
			pValues[i] = EvaluatePair(e.dist, xo, n, p)
		}
		return pValues, nil
	}

	chunk := (len(pairs) + e.workers - 1) / e.workers
	var g errgroup.Group
	g.SetLimit(e.workers)
	for lo := 0; lo < len(pairs); lo += chunk {
		lo, hi := lo, min(lo+chunk, len(pairs))
		g.Go(func() error {
			for i := lo; i < hi; i++ {
				pValues[i] = EvaluatePair(e.dist, xo, n, pairs[i])
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return pValues, nil
}
