package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

// TestObserveLeague tests per-league counters
func TestObserveLeague(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.ObserveLeague("NFL", "ok", LeagueStats{Stored: 3, Deduplicated: 2, Skipped: 1, Errors: 1})
	m.ObserveLeague("NFL", "ok", LeagueStats{Stored: 1})
	m.ObserveLeague("NBA", "skipped", LeagueStats{})

	assert.Equal(t, 4.0, testutil.ToFloat64(m.snapshotsStored.WithLabelValues("NFL")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.deduplicated.WithLabelValues("NFL")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.skipped.WithLabelValues("NFL")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.errors.WithLabelValues("NFL")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.leagueRuns.WithLabelValues("NFL", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.leagueRuns.WithLabelValues("NBA", "skipped")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.snapshotsStored.WithLabelValues("NBA")))
}

// TestProviderMetrics tests request, retry and quota collectors
func TestProviderMetrics(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.ObserveProviderRequest("200")
	m.ObserveProviderRequest("429")
	m.ObserveProviderRequest("429")
	m.ObserveProviderRetry()
	m.SetRequestsRemaining(480)
	m.ObserveRun(2 * time.Second)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.providerRequests.WithLabelValues("200")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.providerRequests.WithLabelValues("429")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.providerRetries))
	assert.Equal(t, 480.0, testutil.ToFloat64(m.requestsRemaining))
	assert.Equal(t, 1, testutil.CollectAndCount(m.runDuration))
}

// TestNilMetrics tests that a nil recorder is a no-op
func TestNilMetrics(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.ObserveLeague("NFL", "ok", LeagueStats{Stored: 1})
		m.ObserveRun(time.Second)
		m.ObserveProviderRequest("200")
		m.ObserveProviderRetry()
		m.SetRequestsRemaining(1)
	})
}
