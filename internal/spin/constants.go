package spin

import "time"

// DefaultRetryBaseDelay is the first backoff after an inventory conflict
const DefaultRetryBaseDelay = 10 * time.Millisecond

const (
	ErrMsgLockPlayerFailed    = "failed to lock player: %w"
	ErrMsgIdempotencyFailed   = "failed to look up idempotency key: %w"
	ErrMsgLoadCampaignFailed  = "failed to load campaign: %w"
	ErrMsgSnapshotFailed      = "failed to build eligibility snapshot: %w"
	ErrMsgInventoryFailed     = "failed to read inventory: %w"
	ErrMsgDrawFailed          = "failed to draw: %w"
	ErrMsgDebitFailed         = "failed to debit spin cost: %w"
	ErrMsgOddsSnapshotFailed  = "failed to serialize odds: %w"
	ErrMsgRecordFailed        = "failed to record spin: %w"
	ErrMsgWonPrizeFailed      = "failed to issue won prize: %w"
	ErrMsgConsumeFailed       = "failed to consume session: %w"
	ErrMsgCooldownFailed      = "failed to mark spin cooldown: %w"
	ErrMsgReplayFailed        = "failed to load settled spin: %w"
	ErrMsgRedemptionCode      = "failed to generate redemption code: %w"
	ErrMsgGetSpinFailed       = "failed to get spin: %w"
	ErrMsgListSpinsFailed     = "failed to list spins: %w"
	ErrMsgVerifyFailed        = "failed to verify spin: %w"
	ErrMsgPersistenceFmt      = "%w: %w"
	ErrMsgMissingField        = "%w: %s is required"
	ErrMsgNegativeAttempt     = "%w: attempt must not be negative"
	ErrMsgRetriesExhaustedFmt = "%w: no stock after %d attempts"
)

const (
	LogMsgStateTransition   = "Spin state transition"
	LogMsgInvalidTransition = "Invalid spin state transition"
	LogMsgSpinCommitted     = "Spin committed"
	LogMsgSpinRejected      = "Spin rejected"
	LogMsgSpinReplayed      = "Spin replayed from idempotency key"
	LogMsgInventoryConflict = "Inventory conflict, retrying spin"
	LogMsgRetryableStoreErr = "Store aborted spin transaction, retrying"
	LogMsgExhaustedFallback = "Draw retries exhausted, settling as no prize"
	LogMsgExhaustedNoCharge = "Draw retries exhausted, spin not charged"
	LogMsgDuplicateSettled  = "Spin settled concurrently, replaying"
)

// spinDescription is the ledger description for spin debits
const spinDescription = "spin on campaign %s"
