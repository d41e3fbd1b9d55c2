package metrics

import (
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var registryMu sync.Mutex

func withRegistry(t *testing.T) *prometheus.Registry {
	registryMu.Lock()
	reg := prometheus.NewRegistry()
	previous := SetRegisterer(reg)
	t.Cleanup(func() {
		SetRegisterer(previous)
		registryMu.Unlock()
	})
	return reg
}

func TestRecordTest_Outcomes(t *testing.T) {
	withRegistry(t)

	RecordTest(0.5, 100, 2*time.Millisecond)
	RecordTest(0.01, 40, time.Millisecond)
	RecordTest(0.2, 10, time.Millisecond)
	RecordTestError()

	assert.Equal(t, 2.0, testutil.ToFloat64(TestsTotal.WithLabelValues(OutcomeAccepted)))
	assert.Equal(t, 1.0, testutil.ToFloat64(TestsTotal.WithLabelValues(OutcomeRejected)))
	assert.Equal(t, 1.0, testutil.ToFloat64(TestsTotal.WithLabelValues(OutcomeError)))
}

func TestRecordBatchAndHTTP(t *testing.T) {
	withRegistry(t)

	RecordBatch(3)
	RecordBatch(4)
	RecordHTTPRequest("/v1/test", 200)
	RecordHTTPRequest("/v1/test", 400)
	RecordHTTPRequest("/v1/test", 400)

	assert.Equal(t, 7.0, testutil.ToFloat64(BatchRowsTotal))
	assert.Equal(t, 1.0, testutil.ToFloat64(HTTPRequests.WithLabelValues("/v1/test", "200")))
	assert.Equal(t, 2.0, testutil.ToFloat64(HTTPRequests.WithLabelValues("/v1/test", "400")))
}

func TestSetRegisterer_RegistersOnce(t *testing.T) {
	reg := withRegistry(t)
	RecordTest(0.3, 5, time.Millisecond)
	RecordBatch(1)
	RecordHTTPRequest("/healthz", 200)

	fams, err := reg.Gather()
	require.NoError(t, err)
	names := make(map[string]bool, len(fams))
	for _, f := range fams {
		names[f.GetName()] = true
	}
	for _, want := range []string{
		"pitos_tests_total",
		"pitos_pairs_evaluated",
		"pitos_test_duration_seconds",
		"pitos_batch_rows_total",
		"pitos_http_requests_total",
	} {
		assert.True(t, names[want], "missing %s", want)
	}

	// Re-registering on the same registry must not panic.
	SetRegisterer(reg)
}

func TestInit_RegistersOnDefaultRegisterer(t *testing.T) {
	registryMu.Lock()
	defer registryMu.Unlock()

	require.NotNil(t, TestsTotal)
	require.NotNil(t, HTTPRequests)
	err := prometheus.DefaultRegisterer.Register(prometheus.NewCounter(prometheus.CounterOpts{
		Name: "pitos_batch_rows_total",
		Help: "duplicate",
	}))
	var already prometheus.AlreadyRegisteredError
	assert.ErrorAs(t, err, &already)
}

func TestUnregisterAll_BeforeInitialization(t *testing.T) {
	registryMu.Lock()
	defer registryMu.Unlock()

	metricsMu.Lock()
	saved := []interface{}{TestsTotal, PairsEvaluated, TestDuration, BatchRowsTotal, HTTPRequests}
	TestsTotal, PairsEvaluated, TestDuration, BatchRowsTotal, HTTPRequests = nil, nil, nil, nil, nil
	defer func() {
		TestsTotal = saved[0].(*prometheus.CounterVec)
		PairsEvaluated = saved[1].(prometheus.Histogram)
		TestDuration = saved[2].(prometheus.Histogram)
		BatchRowsTotal = saved[3].(prometheus.Counter)
		HTTPRequests = saved[4].(*prometheus.CounterVec)
		metricsMu.Unlock()
	}()

	assert.NotPanics(t, func() { unregisterAll(prometheus.NewRegistry()) })
}
