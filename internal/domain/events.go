package domain

// Event type constants used across the application for event bus subscriptions
// and metrics tracking.
//
// Event types follow the pattern: <entity>.<action> (e.g., "spin.committed")
const (
	// EventTypeSpinCommitted is published after a spin transaction commits, win or not
	EventTypeSpinCommitted = "spin.committed"

	// EventTypeSpinRejected is published when the eligibility gate rejects a spin
	EventTypeSpinRejected = "spin.rejected"

	// EventTypePrizeWon is published after a winning spin commits
	EventTypePrizeWon = "prize.won"

	// EventTypeTokensCredited is published after a scan credits tokens
	EventTypeTokensCredited = "tokens.credited"

	// EventTypeInventoryConflict is published when a draw lost a race for the last unit of a prize
	EventTypeInventoryConflict = "inventory.conflict"

	// EventTypeSessionsExpired is published by the session cleanup job
	EventTypeSessionsExpired = "sessions.expired"

	// EventTypeWonPrizesExpired is published by the redemption expiry job
	EventTypeWonPrizesExpired = "won_prizes.expired"

	// EventTypeLedgerDrift is published when reconciliation finds a cached balance that disagrees with the ledger
	EventTypeLedgerDrift = "ledger.drift"
)
