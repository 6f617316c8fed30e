package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameHTTPRequestsTotal,
			Help: HelpTextHTTPRequestsTotal,
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameHTTPRequestDuration,
			Help:    HelpTextHTTPRequestDuration,
			Buckets: HTTPLatencyBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameHTTPRequestsInFlight,
			Help: HelpTextHTTPRequestsInFlight,
		},
	)
)

// Event Metrics
var (
	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventsPublished,
			Help: HelpTextEventsPublished,
		},
		[]string{LabelType},
	)

	EventHandlerErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventHandlerErrors,
			Help: HelpTextEventHandlerErrors,
		},
		[]string{LabelType},
	)
)

// Spin engine metrics
var (
	SpinsCommitted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameSpinsCommitted,
			Help: HelpTextSpinsCommitted,
		},
		[]string{LabelOutcome},
	)

	SpinsRejected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameSpinsRejected,
			Help: HelpTextSpinsRejected,
		},
		[]string{LabelReason},
	)

	SpinAttempts = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    MetricNameSpinAttempts,
			Help:    HelpTextSpinAttempts,
			Buckets: SpinAttemptBuckets,
		},
	)

	SpinDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    MetricNameSpinDuration,
			Help:    HelpTextSpinDuration,
			Buckets: HTTPLatencyBuckets,
		},
	)

	InventoryConflicts = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameInventoryConflicts,
			Help: HelpTextInventoryConflicts,
		},
	)

	ExhaustedRetryFallbacks = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameExhaustedRetryFallbacks,
			Help: HelpTextExhaustedRetryFallbacks,
		},
	)
)

// Token economy metrics
var (
	TokensEarned = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameTokensEarned,
			Help: HelpTextTokensEarned,
		},
	)

	TokensSpent = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameTokensSpent,
			Help: HelpTextTokensSpent,
		},
	)

	PrizesWon = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNamePrizesWon,
			Help: HelpTextPrizesWon,
		},
		[]string{LabelPrize},
	)

	LedgerDrift = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameLedgerDrift,
			Help: HelpTextLedgerDrift,
		},
	)
)

// Background job metrics
var (
	JobRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameJobRuns,
			Help: HelpTextJobRuns,
		},
		[]string{LabelJob, LabelStatus},
	)

	JobRecordsAffected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameJobRecordsAffected,
			Help: HelpTextJobRecordsAffected,
		},
		[]string{LabelJob},
	)
)
