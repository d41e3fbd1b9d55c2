// Package metrics registers and records Prometheus metrics for test
// execution, batch runs and the HTTP API.
package metrics

import (
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome label values for TestsTotal
const (
	OutcomeAccepted = "accepted"
	OutcomeRejected = "rejected"
	OutcomeError    = "error"
)

// RejectionLevel is the alpha used to split accepted from rejected outcomes.
const RejectionLevel = 0.05

var (
	TestsTotal     *prometheus.CounterVec
	PairsEvaluated prometheus.Histogram
	TestDuration   prometheus.Histogram
	BatchRowsTotal prometheus.Counter
	HTTPRequests   *prometheus.CounterVec

	metricsMu         sync.RWMutex
	currentRegisterer prometheus.Registerer = prometheus.DefaultRegisterer
)

func init() {
	SetRegisterer(prometheus.DefaultRegisterer)
}

// SetRegisterer moves every collector to registerer and returns the previous one.
// Tests use it to get an isolated registry.
func SetRegisterer(registerer prometheus.Registerer) prometheus.Registerer {
	metricsMu.Lock()
	defer metricsMu.Unlock()

	previous := currentRegisterer
	if currentRegisterer != nil {
		unregisterAll(currentRegisterer)
	}
	currentRegisterer = registerer
	initializeMetrics(registerer)
	return previous
}

// initializeMetrics must be called while holding metricsMu.
func initializeMetrics(registerer prometheus.Registerer) {
	factory := promauto.With(registerer)

	TestsTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pitos_tests_total",
			Help: "Total number of PITOS tests by outcome",
		},
		[]string{"outcome"},
	)

	PairsEvaluated = factory.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "pitos_pairs_evaluated",
			Help:    "Number of index pairs evaluated per test",
			Buckets: prometheus.ExponentialBuckets(1, 4, 10),
		},
	)

	TestDuration = factory.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "pitos_test_duration_seconds",
			Help:    "Wall time of a single PITOS test",
			Buckets: prometheus.ExponentialBuckets(0.0001, 4, 10),
		},
	)

	BatchRowsTotal = factory.NewCounter(
		prometheus.CounterOpts{
			Name: "pitos_batch_rows_total",
			Help: "Total number of samples submitted through batch runs",
		},
	)

	HTTPRequests = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pitos_http_requests_total",
			Help: "HTTP API requests by route and status code",
		},
		[]string{"route", "code"},
	)
}

func unregisterAll(registerer prometheus.Registerer) {
	if TestsTotal != nil {
		registerer.Unregister(TestsTotal)
	}
	if PairsEvaluated != nil {
		registerer.Unregister(PairsEvaluated)
	}
	if TestDuration != nil {
		registerer.Unregister(TestDuration)
	}
	if BatchRowsTotal != nil {
		registerer.Unregister(BatchRowsTotal)
	}
	if HTTPRequests != nil {
		registerer.Unregister(HTTPRequests)
	}
}

// RecordTest records one completed test.
func RecordTest(pValue float64, pairs int, elapsed time.Duration) {
	metricsMu.RLock()
	defer metricsMu.RUnlock()

	outcome := OutcomeAccepted
	if pValue < RejectionLevel {
		outcome = OutcomeRejected
	}
	TestsTotal.WithLabelValues(outcome).Inc()
	PairsEvaluated.Observe(float64(pairs))
	TestDuration.Observe(elapsed.Seconds())
}

// RecordTestError records a test that failed before producing a p-value.
func RecordTestError() {
	metricsMu.RLock()
	defer metricsMu.RUnlock()

	TestsTotal.WithLabelValues(OutcomeError).Inc()
}

// RecordBatch records the number of rows in a batch run.
func RecordBatch(rows int) {
	metricsMu.RLock()
	defer metricsMu.RUnlock()

	BatchRowsTotal.Add(float64(rows))
}

// RecordHTTPRequest records one API response.
func RecordHTTPRequest(route string, code int) {
	metricsMu.RLock()
	defer metricsMu.RUnlock()

	HTTPRequests.WithLabelValues(route, strconv.Itoa(code)).Inc()
}
