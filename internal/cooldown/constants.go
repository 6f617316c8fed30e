package cooldown

import "time"

// =============================================================================
// Duration Constants
// =============================================================================

const (
	// DefaultCooldownDuration is the fallback cooldown when no specific duration is configured
	DefaultCooldownDuration = 5 * time.Minute

	// SecondsPerMinute is used for time duration calculations
	SecondsPerMinute = 60
)

const (
	// HashSeparator separates the action verb from the business id
	HashSeparator = ":"
)

// =============================================================================
// Error Message Constants
// =============================================================================

const (
	ErrMsgCheckCooldownFailed  = "failed to check cooldown: %w"
	ErrMsgAcquireLockFailed    = "failed to acquire cooldown lock: %w"
	ErrMsgGetCooldownTxFailed  = "failed to get cooldown within transaction: %w"
	ErrMsgUpdateCooldownFailed = "failed to update cooldown: %w"
	ErrMsgResetCooldownFailed  = "failed to reset cooldown: %w"
	ErrMsgGetLastUsedFailed    = "failed to get last used: %w"
)

// =============================================================================
// Log Message Constants
// =============================================================================

const (
	LogMsgDevModeBypass         = "DEV_MODE: Bypassing cooldown enforcement"
	LogMsgRaceConditionDetected = "Race condition detected - concurrent request on cooldown"
	LogMsgCooldownEnforced      = "Cooldown enforced successfully"
)

// Error format strings for ErrOnCooldown.Error()
const (
	ErrFmtCooldownWithMinutes = "You can %s again in %dm %ds"
	ErrFmtCooldownSecondsOnly = "You can %s again in %ds"
)
