package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application. A nil *Metrics
// is valid and records nothing.
type Metrics struct {
	Inspections      *prometheus.CounterVec
	ParseStages      *prometheus.CounterVec
	NationalVariants prometheus.Counter
	CacheLookups     *prometheus.CounterVec
	PublishFailures  prometheus.Counter
	InspectLatency   prometheus.Histogram
	BatchSize        prometheus.Histogram
}

// New creates and registers all Prometheus metrics on the default registry.
func New() *Metrics {
	return NewWithRegistry(prometheus.DefaultRegisterer)
}

// NewWithRegistry registers the metrics on reg. Tests pass a fresh
// prometheus.NewRegistry() so repeated construction does not collide.
func NewWithRegistry(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Inspections: f.NewCounterVec(prometheus.CounterOpts{
			Name: "uvci_inspections_total",
			Help: "Total identifiers inspected by schema option and checksum outcome",
		}, []string{"schema_option", "checksum_verified"}),

		ParseStages: f.NewCounterVec(prometheus.CounterOpts{
			Name: "uvci_parse_stage_total",
			Help: "Total parses by the last stage reached",
		}, []string{"stage"}), // stage: rejected, checksum, header, schema, national

		NationalVariants: f.NewCounter(prometheus.CounterOpts{
			Name: "uvci_national_variants_total",
			Help: "Total inspected identifiers with a decodable national opaque part",
		}),

		CacheLookups: f.NewCounterVec(prometheus.CounterOpts{
			Name: "uvci_cache_lookups_total",
			Help: "Record cache lookups by result",
		}, []string{"result"}), // result: hit, miss, error

		PublishFailures: f.NewCounter(prometheus.CounterOpts{
			Name: "uvci_publish_failures_total",
			Help: "Inspection events that could not be published",
		}),

		InspectLatency: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "uvci_inspect_duration_seconds",
			Help:    "Duration of a single inspection including cache, store and publish",
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 1},
		}),

		BatchSize: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "uvci_batch_size",
			Help:    "Identifiers per batch request",
			Buckets: prometheus.ExponentialBuckets(1, 4, 6),
		}),
	}
}

// IncrementInspection records one inspected identifier.
func (m *Metrics) IncrementInspection(schemaOption uint8, checksumVerified bool, national bool) {
	if m == nil {
		return
	}
	m.Inspections.WithLabelValues(strconv.Itoa(int(schemaOption)), strconv.FormatBool(checksumVerified)).Inc()
	if national {
		m.NationalVariants.Inc()
	}
}

// IncrementParseStage records the last stage a parse reached.
func (m *Metrics) IncrementParseStage(stage string) {
	if m != nil {
		m.ParseStages.WithLabelValues(stage).Inc()
	}
}

// IncrementCacheLookup records a cache hit, miss or error.
func (m *Metrics) IncrementCacheLookup(result string) {
	if m != nil {
		m.CacheLookups.WithLabelValues(result).Inc()
	}
}

// IncrementPublishFailure records an event that was not delivered.
func (m *Metrics) IncrementPublishFailure() {
	if m != nil {
		m.PublishFailures.Inc()
	}
}

// ObserveInspectLatency records the duration of one inspection.
func (m *Metrics) ObserveInspectLatency(d time.Duration) {
	if m != nil {
		m.InspectLatency.Observe(d.Seconds())
	}
}

// ObserveBatchSize records the size of a batch request.
func (m *Metrics) ObserveBatchSize(n int) {
	if m != nil {
		m.BatchSize.Observe(float64(n))
	}
}
