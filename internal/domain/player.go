package domain

import "time"

// Player is a customer who earns tokens by scanning and spends them on spins.
// TokenBalance is a projection of the ledger and is only changed together with
// a ledger append.
type Player struct {
	ID           string    `json:"id"`
	DisplayName  string    `json:"display_name"`
	TokenBalance int64     `json:"token_balance"`
	IsActive     bool      `json:"is_active"`
	Version      int64     `json:"version"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Business owns campaigns and the physical locations players scan at.
type Business struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	// CooldownSeconds overrides the configured scan/spin cooldown when set
	CooldownSeconds *int      `json:"cooldown_seconds,omitempty"`
	IsActive        bool      `json:"is_active"`
	CreatedAt       time.Time `json:"created_at"`
}

// CooldownOverride returns the business override, if any.
func (b Business) CooldownOverride() (time.Duration, bool) {
	if b.CooldownSeconds == nil {
		return 0, false
	}
	return time.Duration(*b.CooldownSeconds) * time.Second, true
}
