package eventlog

import "github.com/osse101/SpinVault_Go/internal/event"

// LoggedEventTypes are the engine events persisted to the audit log
var LoggedEventTypes = []event.Type{
	event.SpinCommitted,
	event.SpinRejected,
	event.PrizeWon,
	event.TokensCredited,
	event.InventoryConflict,
	event.SessionsExpired,
	event.WonPrizesExpired,
	event.LedgerDrift,
}

// JobNameCleanup identifies the retention job in worker logs
const JobNameCleanup = "event_log_cleanup"

// Log messages - service events
const (
	LogMsgFailedToEncodeEvent = "Failed to encode event payload, skipping log"
	LogMsgFailedToLogEvent    = "Failed to log event to database"
	LogMsgEventLogged         = "Event logged to database"
)

// Log messages - cleanup job
const (
	LogMsgCleanupJobStarting  = "Starting event log cleanup job"
	LogMsgCleanupJobFailed    = "Event log cleanup failed"
	LogMsgCleanupJobCompleted = "Event log cleanup completed"
)

// Log field keys - structured logging fields
const (
	LogFieldType         = "type"
	LogFieldPlayerID     = "player_id"
	LogFieldError        = "error"
	LogFieldRetention    = "retention"
	LogFieldDuration     = "duration"
	LogFieldDeletedCount = "deletedCount"
)
