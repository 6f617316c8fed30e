package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

// Outcome is the result of a draw.
type Outcome string

const (
	OutcomePrize   Outcome = "prize"
	OutcomeNoPrize Outcome = "no_prize"
)

// SpinState is a step in the spin transaction lifecycle.
type SpinState string

const (
	SpinStatePending   SpinState = "pending"
	SpinStateValidated SpinState = "validated"
	SpinStateDrawn     SpinState = "drawn"
	SpinStateCommitted SpinState = "committed"
	SpinStateRejected  SpinState = "rejected"
)

// SpinRecord is the immutable audit row written once per committed spin.
type SpinRecord struct {
	ID             string          `json:"id"`
	PlayerID       string          `json:"player_id"`
	CampaignID     string          `json:"campaign_id"`
	SessionID      string          `json:"session_id"`
	IdempotencyKey string          `json:"idempotency_key"`
	Outcome        Outcome         `json:"outcome"`
	PrizeID        *string         `json:"prize_id,omitempty"`
	TokensSpent    int64           `json:"tokens_spent"`
	BalanceAfter   int64           `json:"balance_after"`
	Seed           string          `json:"seed"`
	DrawValue      float64         `json:"draw_value"`
	OddsSnapshot   json.RawMessage `json:"odds_snapshot"`
	Attempts       int             `json:"attempts"`
	CreatedAt      time.Time       `json:"created_at"`
}

// SpinFilter narrows an audit query over spin records.
type SpinFilter struct {
	PlayerID   string
	CampaignID string
	Outcome    Outcome
	Since      *time.Time
	Limit      int
	Offset     int
}

// WonPrizeStatus tracks a won prize through redemption.
type WonPrizeStatus string

const (
	WonPrizeStatusPending  WonPrizeStatus = "pending"
	WonPrizeStatusRedeemed WonPrizeStatus = "redeemed"
	WonPrizeStatusExpired  WonPrizeStatus = "expired"
)

// WonPrize is issued in the same transaction as a winning spin.
type WonPrize struct {
	ID             string         `json:"id"`
	PlayerID       string         `json:"player_id"`
	PrizeID        string         `json:"prize_id"`
	SpinID         string         `json:"spin_id"`
	PrizeName      string         `json:"prize_name"`
	LocationID     *string        `json:"location_id,omitempty"`
	RedemptionCode string         `json:"redemption_code"`
	Status         WonPrizeStatus `json:"status"`
	ExpiresAt      time.Time      `json:"expires_at"`
	CreatedAt      time.Time      `json:"created_at"`
}

// SpinRequest identifies one spin attempt. Attempt lets a client retry the
// same request without being charged twice.
type SpinRequest struct {
	PlayerID   string
	CampaignID string
	SessionID  string
	Attempt    int
}

// IdempotencyKey is session + attempt.
func (r SpinRequest) IdempotencyKey() string {
	return fmt.Sprintf("%s:%d", r.SessionID, r.Attempt)
}

// WonPrizeInfo is the prize part of a spin result.
type WonPrizeInfo struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	RedemptionCode string    `json:"redemption_code"`
	ExpiresAt      time.Time `json:"expires_at"`
}

// SpinResult is returned after a spin commits (or is replayed).
type SpinResult struct {
	SpinID      string        `json:"spin_id"`
	Outcome     Outcome       `json:"outcome"`
	Prize       *WonPrizeInfo `json:"prize,omitempty"`
	TokensSpent int64         `json:"tokens_spent"`
	NewBalance  int64         `json:"new_balance"`
	State       SpinState     `json:"state"`
	Attempts    int           `json:"attempts"`
	Replayed    bool          `json:"replayed"`
}
