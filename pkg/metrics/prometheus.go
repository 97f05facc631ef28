package metrics

import (
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager owns every metric of the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	constLabels      prometheus.Labels
	registry         prometheus.Registerer

	// Scoring
	scoringPasses  prometheus.Counter
	scoringErrors  prometheus.Counter
	scoringLatency prometheus.Histogram
	scoreTotal     prometheus.Gauge
	scoreRaw       prometheus.Gauge
	sourceScore    *prometheus.GaugeVec
	entities       *prometheus.GaugeVec

	// Snapshot document
	documentOps *prometheus.CounterVec

	// Refresh and scheduler
	refreshes      *prometheus.CounterVec
	refreshLatency prometheus.Histogram
	schedulerRuns  *prometheus.CounterVec

	// HTTP
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	errorsByComponent *prometheus.CounterVec
}

var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics unless asked for.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a metrics manager and registers its metrics.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "moodmeter",
		subsystem:        "engine",
		histogramBuckets: prometheus.DefBuckets,
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) counterOpts(name, help string) prometheus.CounterOpts {
	return prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		ConstLabels: m.constLabels,
	}
}

func (m *Manager) gaugeOpts(name, help string) prometheus.GaugeOpts {
	return prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		ConstLabels: m.constLabels,
	}
}

func (m *Manager) histogramOpts(name, help string) prometheus.HistogramOpts {
	return prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		Buckets:     m.histogramBuckets,
		ConstLabels: m.constLabels,
	}
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.scoringPasses = auto.NewCounter(m.counterOpts("scoring_passes_total",
		"Total number of completed scoring passes"))
	m.scoringErrors = auto.NewCounter(m.counterOpts("scoring_errors_total",
		"Total number of scoring passes that failed"))
	m.scoringLatency = auto.NewHistogram(m.histogramOpts("scoring_latency_milliseconds",
		"Scoring pass latency in milliseconds"))
	m.scoreTotal = auto.NewGauge(m.gaugeOpts("score_display",
		"Display score of the latest pass (floored at zero)"))
	m.scoreRaw = auto.NewGauge(m.gaugeOpts("score_raw",
		"Raw score of the latest pass (negative means mood-improving)"))
	m.sourceScore = auto.NewGaugeVec(m.gaugeOpts("source_score",
		"Latest score contributed by each entity"), []string{"source", "kind"})
	m.entities = auto.NewGaugeVec(m.gaugeOpts("entities",
		"Number of entities in the loaded snapshot"), []string{"kind"})

	m.documentOps = auto.NewCounterVec(m.counterOpts("document_operations_total",
		"Snapshot document loads and saves by result"), []string{"operation", "result"})

	m.refreshes = auto.NewCounterVec(m.counterOpts("refresh_total",
		"Fantasy data refreshes by result"), []string{"result"})
	m.refreshLatency = auto.NewHistogram(m.histogramOpts("refresh_latency_milliseconds",
		"Fantasy data refresh latency in milliseconds"))
	m.schedulerRuns = auto.NewCounterVec(m.counterOpts("scheduler_runs_total",
		"Scheduled job runs by job and result"), []string{"job", "result"})

	m.httpRequests = auto.NewCounterVec(m.counterOpts("http_requests_total",
		"Total number of HTTP requests by endpoint and method"), []string{"endpoint", "method", "status_code"})
	m.httpRequestDuration = auto.NewHistogramVec(m.histogramOpts("http_request_duration_milliseconds",
		"HTTP request duration in milliseconds"), []string{"endpoint", "method", "status_code"})

	m.errorsByComponent = auto.NewCounterVec(m.counterOpts("errors_by_component_total",
		"Total number of errors by component"), []string{"component", "error_type"})
}

// Result label values.
const (
	ResultSuccess = "success"
	ResultFailure = "failure"
)

func result(ok bool) string {
	if ok {
		return ResultSuccess
	}
	return ResultFailure
}

// RecordScoringPass records a completed pass and its totals.
func RecordScoringPass(latencyMs, display, raw float64) {
	globalManager.scoringPasses.Inc()
	globalManager.scoringLatency.Observe(latencyMs)
	globalManager.scoreTotal.Set(display)
	globalManager.scoreRaw.Set(raw)
}

// RecordScoringError increments the scoring errors counter.
func RecordScoringError() {
	globalManager.scoringErrors.Inc()
}

// UpdateSourceScore sets the latest score of one entity.
func UpdateSourceScore(source, kind string, score float64) {
	globalManager.sourceScore.WithLabelValues(source, kind).Set(score)
}

// ResetSourceScores drops every per-entity gauge, e.g. after a reload
// removed entities.
func ResetSourceScores() {
	globalManager.sourceScore.Reset()
}

// UpdateEntityCount sets the number of loaded entities of a kind.
func UpdateEntityCount(kind string, count int) {
	globalManager.entities.WithLabelValues(kind).Set(float64(count))
}

// RecordDocumentOperation counts a document load or save.
func RecordDocumentOperation(operation string, ok bool) {
	globalManager.documentOps.WithLabelValues(operation, result(ok)).Inc()
}

// RecordRefresh counts a fantasy refresh and its latency.
func RecordRefresh(ok bool, latencyMs float64) {
	globalManager.refreshes.WithLabelValues(result(ok)).Inc()
	globalManager.refreshLatency.Observe(latencyMs)
}

// RecordSchedulerRun counts a scheduled job run.
func RecordSchedulerRun(job string, ok bool) {
	globalManager.schedulerRuns.WithLabelValues(job, result(ok)).Inc()
}

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// RecordErrorByComponent records an error with component and type labels.
func RecordErrorByComponent(component, errorType string) {
	globalManager.errorsByComponent.WithLabelValues(component, errorType).Inc()
}

// RegisterRuntimeCollectors adds Go runtime and process collectors to the
// service registry. Registering twice is not an error.
func RegisterRuntimeCollectors() error {
	for _, c := range []prometheus.Collector{
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	} {
		if err := customRegistry.Register(c); err != nil {
			var already prometheus.AlreadyRegisteredError
			if errors.As(err, &already) {
				continue
			}
			return fmt.Errorf("%w: %w", ErrRegister, err)
		}
	}
	return nil
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
