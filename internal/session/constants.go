package session

const (
	ErrMsgPlayerLookupFailed   = "failed to look up player: %w"
	ErrMsgBusinessLookupFailed = "failed to look up business: %w"
	ErrMsgReplayCheckFailed    = "failed to check scan replay: %w"
	ErrMsgCreateSessionFailed  = "failed to create scan session: %w"
	ErrMsgCreditFailed         = "failed to credit scan tokens: %w"
	ErrMsgHashFailed           = "failed to hash scan: %w"
	ErrMsgGetSessionFailed     = "failed to get session: %w"
	ErrMsgCleanupFailed        = "failed to delete expired sessions: %w"
	ErrMsgRemainingSpinsFailed = "failed to compute remaining spins: %w"
	ErrMsgMissingField         = "%w: %s is required"
)

const (
	LogMsgScanCredited         = "Scan credited"
	LogMsgScanReplay           = "Scan replay rejected"
	LogMsgEarnCapReached       = "Scan rejected, earn cap reached"
	LogMsgSessionsCleanedUp    = "Expired sessions removed"
	LogMsgRemainingSpinsFailed = "Could not compute remaining spins"
)

// scanDescription is the ledger description for scan credits
const scanDescription = "scan at business %s"
