package bootstrap

const (
	DirPermission     = 0o755
	LogFilePermission = 0o644
)

// Session log files are named session_<timestamp>.log so that a plain sort
// orders them by age.
const (
	LogFileTimestampFormat = "2006-01-02_15-04-05"
	LogFileNamePattern     = "session_%s.log"
	LogFileExtension       = ".log"
	LogFileRetentionCount  = 9
)

// MaxReplayKeyBytes is the HMAC-SHA256 block size
const MaxReplayKeyBytes = 64

// Error messages
const (
	ErrMsgCreateLogsDir           = "failed to create logs directory"
	ErrMsgOpenLogFile             = "failed to open log file"
	ErrMsgCreateDeadLetterDir     = "failed to create dead-letter directory"
	ErrMsgCreatePublisher         = "failed to create resilient publisher"
	ErrMsgFailedRegisterMetrics   = "failed to register metrics collector"
	ErrMsgFailedSubscribeEventLog = "failed to subscribe event log"
	ErrMsgReplayKeyTooLong        = "REPLAY_HASH_KEY must be at most %d bytes"
)

// Log messages
const (
	LogMsgLoggingInitialized  = "Logging initialized"
	LogMsgStartingService     = "Starting SpinVault"
	LogMsgConfigurationLoaded = "Configuration loaded"
	LogMsgFailedDeleteOldLog  = "Failed to delete old log file"

	LogMsgEventSystemInitialized     = "Event system initialized"
	LogMsgMetricsCollectorRegistered = "Metrics collector registered"
	LogMsgEventLogSubscribed         = "Event log subscribed"
	LogMsgFeedSubscribed             = "Live feed subscribed"

	LogMsgReplayKeyMissing = "REPLAY_HASH_KEY is not set, scan replay hashes are unkeyed"
	LogMsgJobScheduled     = "Background job scheduled"
	LogMsgJobDisabled      = "Background job disabled"

	LogMsgStoppingFeed               = "Closing live feed streams..."
	LogMsgShuttingDownServer         = "Shutting down server..."
	LogMsgStoppingBackgroundJobs     = "Stopping background jobs..."
	LogMsgShuttingDownEventPublisher = "Shutting down event publisher..."
	LogMsgServerStopped              = "Server stopped"
	LogMsgServerForcedShutdown       = "Server forced to shutdown"
	LogMsgResilientPublisherFailed   = "Resilient publisher shutdown failed"
)
