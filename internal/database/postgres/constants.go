package postgres

// Constraint names referenced when translating store errors
const (
	ConstraintReplayUnique      = "scan_sessions_replay_unique"
	ConstraintIdempotencyUnique = "spin_records_idempotency_unique"
	ConstraintRedemptionUnique  = "won_prizes_code_unique"
)

// Paging defaults for audit queries
const (
	DefaultListLimit = 50
	MaxListLimit     = 500
)

// Error context strings
const (
	ErrContextInvalidID         = "invalid id"
	ErrContextGetPlayer         = "failed to get player"
	ErrContextLockPlayer        = "failed to lock player"
	ErrContextListPlayers       = "failed to list players"
	ErrContextAppendEntry       = "failed to append ledger entry"
	ErrContextGetBalance        = "failed to get balance"
	ErrContextListEntries       = "failed to list ledger entries"
	ErrContextUsage             = "failed to sum ledger usage"
	ErrContextReconcile         = "failed to reconcile ledger"
	ErrContextGetCampaign       = "failed to get campaign"
	ErrContextGetBusiness       = "failed to get business"
	ErrContextListCampaigns     = "failed to list campaigns"
	ErrContextListPrizes        = "failed to list prizes"
	ErrContextGetPrize          = "failed to get prize"
	ErrContextDecrementPrize    = "failed to decrement prize"
	ErrContextDecrementLocation = "failed to decrement location stock"
	ErrContextListLocationStock = "failed to list location stock"
	ErrContextCreateSession     = "failed to create session"
	ErrContextGetSession        = "failed to get session"
	ErrContextConsumeSession    = "failed to consume session"
	ErrContextDeleteSessions    = "failed to delete expired sessions"
	ErrContextGetSpin           = "failed to get spin"
	ErrContextCreateSpin        = "failed to create spin record"
	ErrContextListSpins         = "failed to list spins"
	ErrContextCountSpins        = "failed to count spins"
	ErrContextCreateWonPrize    = "failed to create won prize"
	ErrContextGetWonPrize       = "failed to get won prize"
	ErrContextExpireWonPrizes   = "failed to expire won prizes"
	ErrContextGetCooldown       = "failed to get cooldown"
	ErrContextLockCooldown      = "failed to acquire cooldown lock"
	ErrContextUpsertCooldown    = "failed to update cooldown"
	ErrContextDeleteCooldown    = "failed to delete cooldown"
	ErrContextBuildQuery        = "failed to build query"
	ErrContextLogEvent          = "failed to log event"
	ErrContextListEvents        = "failed to list events"
	ErrContextCleanupEvents     = "failed to clean up events"
)
