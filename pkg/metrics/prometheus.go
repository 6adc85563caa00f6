// Package metrics provides Prometheus metrics for the tribute recognition service.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Default metrics configuration constants.
const (
	defaultRefreshInterval = 10 * time.Second
)

// Manager owns all Prometheus metrics for the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	refreshInterval  time.Duration
	registry         prometheus.Registerer

	// Recognition pipeline metrics
	imagesProcessed   *prometheus.CounterVec
	imagesFailed      *prometheus.CounterVec
	recordsExtracted  *prometheus.CounterVec
	parseStrategyHits *prometheus.CounterVec
	coercionFailures  prometheus.Counter
	duplicateMembers  prometheus.Counter
	oracleRetries     prometheus.Counter
	oracleErrors      *prometheus.CounterVec

	// Latency metrics
	recognitionLatency prometheus.Histogram
	batchDuration      *prometheus.HistogramVec

	// Session state metrics
	membersTotal    prometheus.Gauge
	tierMembers     *prometheus.GaugeVec
	lastBatchImages *prometheus.GaugeVec

	// HTTP metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Error metrics
	errorsByComponent *prometheus.CounterVec

	// System metrics
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
	systemGCPauseTime    prometheus.Histogram
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "tribute",
		subsystem:        "recognition",
		histogramBuckets: prometheus.DefBuckets,
		enabled:          true,
		refreshInterval:  defaultRefreshInterval,
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.imagesProcessed = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "images_processed_total",
			Help:      "Total number of images that completed recognition",
		},
		[]string{"category"},
	)

	m.imagesFailed = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "images_failed_total",
			Help:      "Total number of images whose recognition failed",
		},
		[]string{"category", "reason"},
	)

	m.recordsExtracted = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "records_extracted_total",
			Help:      "Total number of contribution records extracted from oracle replies",
		},
		[]string{"category"},
	)

	m.parseStrategyHits = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "parse_strategy_total",
			Help:      "Parse outcomes by winning strategy",
		},
		[]string{"strategy"},
	)

	m.coercionFailures = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "parse_coercion_failures_total",
		Help:      "Matched values that could not be coerced to a number and were recorded as zero",
	})

	m.duplicateMembers = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "merge_duplicate_members_total",
		Help:      "Repeated sightings of a member within one category during merge",
	})

	m.oracleRetries = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "oracle_retries_total",
		Help:      "Total number of retried oracle calls",
	})

	m.oracleErrors = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "oracle_errors_total",
			Help:      "Oracle call failures by kind",
		},
		[]string{"kind"},
	)

	m.recognitionLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "oracle_latency_milliseconds",
		Help:      "Histogram of oracle round-trip latency in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.batchDuration = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "batch_duration_milliseconds",
			Help:      "Histogram of full batch duration in milliseconds",
			Buckets:   m.histogramBuckets,
		},
		[]string{"category"},
	)

	m.membersTotal = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "members_total",
		Help:      "Number of distinct members in the latest merge output",
	})

	m.tierMembers = auto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "tier_members",
			Help:      "Number of members per tier in the latest merge output",
		},
		[]string{"tier"},
	)

	m.lastBatchImages = auto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "last_batch_images",
			Help:      "Number of images in the most recent batch per category",
		},
		[]string{"category"},
	)

	m.httpRequests = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests by endpoint and method",
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.httpRequestDuration = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_request_duration_milliseconds",
			Help:      "HTTP request duration in milliseconds",
			Buckets:   m.histogramBuckets,
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.errorsByComponent = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "errors_by_component_total",
			Help:      "Errors by component and type",
		},
		[]string{"component", "error_type"},
	)

	m.systemMemoryUsage = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: "system",
		Name:      "memory_usage_bytes",
		Help:      "Current allocated heap bytes",
	})

	m.systemGoroutineCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: "system",
		Name:      "goroutines",
		Help:      "Current number of goroutines",
	})

	m.systemGCPauseTime = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: "system",
		Name:      "gc_pause_milliseconds",
		Help:      "Average GC pause time in milliseconds",
		Buckets:   m.histogramBuckets,
	})
}

// Package-level helpers delegating to the global manager.

func RecordImageProcessed(category string) {
	globalManager.imagesProcessed.WithLabelValues(category).Inc()
}

func RecordImageFailed(category, reason string) {
	globalManager.imagesFailed.WithLabelValues(category, reason).Inc()
}

func RecordRecordsExtracted(category string, count int) {
	globalManager.recordsExtracted.WithLabelValues(category).Add(float64(count))
}

func RecordParseStrategy(strategy string) {
	globalManager.parseStrategyHits.WithLabelValues(strategy).Inc()
}

func RecordCoercionFailure() {
	globalManager.coercionFailures.Inc()
}

func RecordDuplicateMember() {
	globalManager.duplicateMembers.Inc()
}

func RecordOracleRetry() {
	globalManager.oracleRetries.Inc()
}

func RecordOracleError(kind string) {
	globalManager.oracleErrors.WithLabelValues(kind).Inc()
}

func RecordOracleLatency(latencyMs float64) {
	globalManager.recognitionLatency.Observe(latencyMs)
}

func RecordBatchDuration(category string, durationMs float64) {
	globalManager.batchDuration.WithLabelValues(category).Observe(durationMs)
}

func UpdateMembersTotal(count int) {
	globalManager.membersTotal.Set(float64(count))
}

func UpdateTierMembers(tier string, count int) {
	globalManager.tierMembers.WithLabelValues(tier).Set(float64(count))
}

func UpdateLastBatchImages(category string, count int) {
	globalManager.lastBatchImages.WithLabelValues(category).Set(float64(count))
}

func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

func RecordHTTPRequestDuration(endpoint, method, statusCode string, durationMs float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(durationMs)
}

func RecordErrorByComponent(component, errorType string) {
	globalManager.errorsByComponent.WithLabelValues(component, errorType).Inc()
}

func UpdateSystemMemoryUsage(bytes uint64) {
	globalManager.systemMemoryUsage.Set(float64(bytes))
}

func UpdateSystemGoroutineCount(count int) {
	globalManager.systemGoroutineCount.Set(float64(count))
}

func RecordSystemGCPauseTime(pauseMs float64) {
	globalManager.systemGCPauseTime.Observe(pauseMs)
}

// GetRegistry returns the custom registry used by the global manager.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
