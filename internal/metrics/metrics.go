package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "odds_poller"

// Metrics holds the poller's Prometheus collectors.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	snapshotsStored   *prometheus.CounterVec
	deduplicated      *prometheus.CounterVec
	skipped           *prometheus.CounterVec
	errors            *prometheus.CounterVec
	leagueRuns        *prometheus.CounterVec
	runDuration       prometheus.Histogram
	providerRequests  *prometheus.CounterVec
	providerRetries   prometheus.Counter
	requestsRemaining prometheus.Gauge
}

// New creates and registers the collectors with reg
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		snapshotsStored: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "snapshots_stored_total",
			Help:      "Odds snapshots persisted (or counted in dry run).",
		}, []string{"league"}),
		deduplicated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "snapshots_deduplicated_total",
			Help:      "Quotes skipped because they matched the last stored value.",
		}, []string{"league"}),
		skipped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "quotes_skipped_total",
			Help:      "Quotes dropped because they could not be mapped.",
		}, []string{"league"}),
		errors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "quote_errors_total",
			Help:      "Per-quote persistence or lookup failures.",
		}, []string{"league"}),
		leagueRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "league_runs_total",
			Help:      "League polling outcomes.",
		}, []string{"league", "status"}),
		runDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "run_duration_seconds",
			Help:      "Duration of a full polling run.",
			Buckets:   prometheus.ExponentialBuckets(0.1, 2, 10),
		}),
		providerRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "provider_requests_total",
			Help:      "Provider HTTP requests by status code (\"error\" for transport failures).",
		}, []string{"code"}),
		providerRetries: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "provider_retries_total",
			Help:      "Provider requests retried after backoff.",
		}),
		requestsRemaining: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "provider_requests_remaining",
			Help:      "Provider quota remaining as reported by the last response.",
		}),
	}

	reg.MustRegister(
		m.snapshotsStored,
		m.deduplicated,
		m.skipped,
		m.errors,
		m.leagueRuns,
		m.runDuration,
		m.providerRequests,
		m.providerRetries,
		m.requestsRemaining,
	)

	return m
}

// LeagueStats are the per-league counters of one run
type LeagueStats struct {
	Stored       int
	Deduplicated int
	Skipped      int
	Errors       int
}

// ObserveLeague records the outcome and counters of one league run
func (m *Metrics) ObserveLeague(league, status string, stats LeagueStats) {
	if m == nil {
		return
	}
	m.leagueRuns.WithLabelValues(league, status).Inc()
	m.snapshotsStored.WithLabelValues(league).Add(float64(stats.Stored))
	m.deduplicated.WithLabelValues(league).Add(float64(stats.Deduplicated))
	m.skipped.WithLabelValues(league).Add(float64(stats.Skipped))
	m.errors.WithLabelValues(league).Add(float64(stats.Errors))
}

// ObserveRun records the duration of a polling run
func (m *Metrics) ObserveRun(d time.Duration) {
	if m == nil {
		return
	}
	m.runDuration.Observe(d.Seconds())
}

// ObserveProviderRequest counts one provider HTTP attempt
func (m *Metrics) ObserveProviderRequest(code string) {
	if m == nil {
		return
	}
	m.providerRequests.WithLabelValues(code).Inc()
}

// ObserveProviderRetry counts one backoff retry
func (m *Metrics) ObserveProviderRetry() {
	if m == nil {
		return
	}
	m.providerRetries.Inc()
}

// SetRequestsRemaining records the provider's reported quota
func (m *Metrics) SetRequestsRemaining(remaining int) {
	if m == nil {
		return
	}
	m.requestsRemaining.Set(float64(remaining))
}
