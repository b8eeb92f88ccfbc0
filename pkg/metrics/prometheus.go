// Package metrics provides Prometheus metrics for raffle runs.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Failure kinds used as the "kind" label on validation failures.
const (
	KindIdentity   = "identity"
	KindAmount     = "amount"
	KindRow        = "row"
	KindNoEntrants = "no_entrants"
	KindUnknown    = "unknown"
)

const (
	defaultNamespace = "winnerpicker"
	defaultSubsystem = "raffle"
)

// Manager owns the Prometheus collectors for one registry.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	entryBuckets     []float64
	constLabels      prometheus.Labels
	registry         prometheus.Registerer

	// Ledger metrics
	recordsProcessed   prometheus.Counter
	validationFailures *prometheus.CounterVec
	donors             prometheus.Gauge
	raisedDollars      prometheus.Gauge

	// Allocation metrics
	entriesTotal     prometheus.Gauge
	entriesPerDonor  prometheus.Histogram
	eligibleEntrants prometheus.Gauge

	// Draw metrics
	draws       prometheus.Counter
	runDuration prometheus.Histogram
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
		namespace:        defaultNamespace,
		subsystem:        defaultSubsystem,
		histogramBuckets: prometheus.DefBuckets,
		entryBuckets:     []float64{1, 5, 10, 25, 50, 75, 100, 250, 500, 1000},
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.recordsProcessed = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "records_processed_total",
		Help:        "Donation records folded into the ledger",
		ConstLabels: m.constLabels,
	})

	m.validationFailures = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "validation_failures_total",
		Help:        "Runs aborted by a validation failure, by kind",
		ConstLabels: m.constLabels,
	}, []string{"kind"})

	m.donors = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "donors",
		Help:        "Distinct donors after identity deduplication",
		ConstLabels: m.constLabels,
	})

	m.raisedDollars = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "raised_dollars",
		Help:        "Sum of rounded donation totals",
		ConstLabels: m.constLabels,
	})

	m.entriesTotal = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "entries",
		Help:        "Total lottery entries across all donors",
		ConstLabels: m.constLabels,
	})

	m.entriesPerDonor = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "entries_per_donor",
		Help:        "Distribution of entries allocated per donor",
		Buckets:     m.entryBuckets,
		ConstLabels: m.constLabels,
	})

	m.eligibleEntrants = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "eligible_entrants",
		Help:        "Donors holding at least one entry",
		ConstLabels: m.constLabels,
	})

	m.draws = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "draws_total",
		Help:        "Winners drawn",
		ConstLabels: m.constLabels,
	})

	m.runDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "run_duration_milliseconds",
		Help:        "Time from first record to result",
		Buckets:     m.histogramBuckets,
		ConstLabels: m.constLabels,
	})
}

// RecordRecordProcessed increments the processed records counter.
func (m *Manager) RecordRecordProcessed() { m.recordsProcessed.Inc() }

// RecordValidationFailure counts an aborted run by failure kind.
func (m *Manager) RecordValidationFailure(kind string) {
	m.validationFailures.WithLabelValues(kind).Inc()
}

// UpdateLedger sets the donor and raised gauges.
func (m *Manager) UpdateLedger(donors int, raised int64) {
	m.donors.Set(float64(donors))
	m.raisedDollars.Set(float64(raised))
}

// ObserveDonorEntries records one donor's allocation.
func (m *Manager) ObserveDonorEntries(entries int64) {
	m.entriesPerDonor.Observe(float64(entries))
}

// UpdateEntries sets the entry and eligible entrant gauges.
func (m *Manager) UpdateEntries(total int64, eligible int) {
	m.entriesTotal.Set(float64(total))
	m.eligibleEntrants.Set(float64(eligible))
}

// RecordDraw increments the draws counter.
func (m *Manager) RecordDraw() { m.draws.Inc() }

// RecordRunDuration records a run's duration in milliseconds.
func (m *Manager) RecordRunDuration(ms float64) { m.runDuration.Observe(ms) }

// Global helpers delegate to the process-wide manager.

// RecordRecordProcessed increments the processed records counter.
func RecordRecordProcessed() { globalManager.RecordRecordProcessed() }

// RecordValidationFailure counts an aborted run by failure kind.
func RecordValidationFailure(kind string) { globalManager.RecordValidationFailure(kind) }

// UpdateLedger sets the donor and raised gauges.
func UpdateLedger(donors int, raised int64) { globalManager.UpdateLedger(donors, raised) }

// ObserveDonorEntries records one donor's allocation.
func ObserveDonorEntries(entries int64) { globalManager.ObserveDonorEntries(entries) }

// UpdateEntries sets the entry and eligible entrant gauges.
func UpdateEntries(total int64, eligible int) { globalManager.UpdateEntries(total, eligible) }

// RecordDraw increments the draws counter.
func RecordDraw() { globalManager.RecordDraw() }

// RecordRunDuration records a run's duration in milliseconds.
func RecordRunDuration(ms float64) { globalManager.RecordRunDuration(ms) }

// WriteTextfile writes the global registry in the node-exporter textfile
// collector format.
func WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, customRegistry); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteTextfile, err)
	}
	return nil
}
