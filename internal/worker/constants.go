package worker

// LogMsgWorkerJobFailed is logged when a worker fails to process a job
const LogMsgWorkerJobFailed = "Worker job failed"

// Job names
const (
	JobNameSessionCleanup = "session_cleanup"
	JobNameWonPrizeExpiry = "won_prize_expiry"
	JobNameLedgerSweep    = "ledger_reconcile"
)

// Log messages for maintenance jobs
const (
	LogMsgJobStarting        = "Maintenance job starting"
	LogMsgJobCompleted       = "Maintenance job completed"
	LogMsgReconcilePlayerErr = "Failed to reconcile player"
)

// Error messages
const (
	ErrMsgCleanupSessionsFailed = "session cleanup failed: %w"
	ErrMsgExpirePrizesFailed    = "won prize expiry failed: %w"
	ErrMsgListPlayersFailed     = "failed to list players after %q: %w"
)

// DefaultReconcileBatchSize is used when the ledger sweep has no batch size
const DefaultReconcileBatchSize = 500
