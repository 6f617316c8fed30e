package metrics

// ============================================================================
// Metric Names
// ============================================================================

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
)

// Event metric names
const (
	MetricNameEventsPublished    = "events_published_total"
	MetricNameEventHandlerErrors = "event_handler_errors_total"
)

// Spin engine metric names
const (
	MetricNameSpinsCommitted          = "spins_committed_total"
	MetricNameSpinsRejected           = "spins_rejected_total"
	MetricNameSpinAttempts            = "spin_attempts"
	MetricNameSpinDuration            = "spin_duration_seconds"
	MetricNameInventoryConflicts      = "inventory_conflicts_total"
	MetricNameExhaustedRetryFallbacks = "spin_exhausted_retry_fallbacks_total"
)

// Token economy metric names
const (
	MetricNameTokensEarned = "tokens_earned_total"
	MetricNameTokensSpent  = "tokens_spent_total"
	MetricNamePrizesWon    = "prizes_won_total"
	MetricNameLedgerDrift  = "ledger_drift_detected_total"
)

// Job metric names
const (
	MetricNameJobRuns            = "job_runs_total"
	MetricNameJobRecordsAffected = "job_records_affected_total"
)

// ============================================================================
// Metric Help Text
// ============================================================================

// HTTP metric help text
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"
)

// Event metric help text
const (
	HelpTextEventsPublished    = "Total number of events published"
	HelpTextEventHandlerErrors = "Total number of event handler errors"
)

// Spin engine help text
const (
	HelpTextSpinsCommitted          = "Total number of committed spins by outcome"
	HelpTextSpinsRejected           = "Total number of spins rejected by the eligibility gate"
	HelpTextSpinAttempts            = "Transaction attempts needed to settle a spin"
	HelpTextSpinDuration            = "Spin settlement latency in seconds"
	HelpTextInventoryConflicts      = "Total number of draws that lost a race for the last unit of a prize"
	HelpTextExhaustedRetryFallbacks = "Total number of spins settled as no prize after retries ran out"
)

// Token economy help text
const (
	HelpTextTokensEarned = "Total tokens credited by scans"
	HelpTextTokensSpent  = "Total tokens debited by spins"
	HelpTextPrizesWon    = "Total prizes won by prize name"
	HelpTextLedgerDrift  = "Total number of players whose cached balance disagreed with the ledger"
)

// Job help text
const (
	HelpTextJobRuns            = "Total background job runs by status"
	HelpTextJobRecordsAffected = "Total records touched by background jobs"
)

// ============================================================================
// Metric Label Names
// ============================================================================

// Common label names used across metrics
const (
	LabelMethod  = "method"
	LabelPath    = "path"
	LabelStatus  = "status"
	LabelType    = "type"
	LabelOutcome = "outcome"
	LabelReason  = "reason"
	LabelPrize   = "prize"
	LabelJob     = "job"
)

// Job status label values
const (
	JobStatusSuccess = "success"
	JobStatusFailure = "failure"
)

// ============================================================================
// Histogram Buckets
// ============================================================================

// HTTPLatencyBuckets defines the histogram buckets for HTTP request duration
// in seconds. These buckets range from 1ms to 10s to capture various latency
// patterns: fast (1-10ms), normal (10-100ms), slow (100ms-1s), very slow (1-10s)
var HTTPLatencyBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}

// SpinAttemptBuckets counts transaction attempts per spin
var SpinAttemptBuckets = []float64{1, 2, 3, 4, 5}

// ============================================================================
// Log Messages
// ============================================================================

// Debug log messages
const (
	LogMsgEventPayloadDecodeFailed = "Event payload could not be decoded"
	LogMsgMetricsRecorded          = "Metrics recorded for event"
)
