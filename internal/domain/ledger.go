package domain

import "time"

// EntryType classifies a ledger entry.
type EntryType string

const (
	EntryTypeEarn       EntryType = "earn"
	EntryTypeSpend      EntryType = "spend"
	EntryTypePurchase   EntryType = "purchase"
	EntryTypeBonus      EntryType = "bonus"
	EntryTypeAdjustment EntryType = "adjustment"
)

// IsValid reports whether t is a known entry type.
func (t EntryType) IsValid() bool {
	switch t {
	case EntryTypeEarn, EntryTypeSpend, EntryTypePurchase, EntryTypeBonus, EntryTypeAdjustment:
		return true
	}
	return false
}

// LedgerEntry is an immutable signed change to a player's token balance.
type LedgerEntry struct {
	ID           string    `json:"id"`
	PlayerID     string    `json:"player_id"`
	Amount       int64     `json:"amount"`
	Type         EntryType `json:"type"`
	Description  string    `json:"description"`
	RelatedID    *string   `json:"related_id,omitempty"`
	BalanceAfter int64     `json:"balance_after"`
	CreatedAt    time.Time `json:"created_at"`
}

// LedgerFilter narrows a ledger history query.
type LedgerFilter struct {
	Type   EntryType
	Since  *time.Time
	Until  *time.Time
	Limit  int
	Offset int
}

// LedgerUsage summarizes a player's earn/spend volume in the current day and week.
type LedgerUsage struct {
	EarnedToday    int64 `json:"earned_today"`
	SpentToday     int64 `json:"spent_today"`
	EarnedThisWeek int64 `json:"earned_this_week"`
	SpentThisWeek  int64 `json:"spent_this_week"`
}

// Reconciliation is the result of comparing a cached balance to its ledger.
type Reconciliation struct {
	PlayerID      string `json:"player_id"`
	CachedBalance int64  `json:"cached_balance"`
	LedgerBalance int64  `json:"ledger_balance"`
	EntryCount    int64  `json:"entry_count"`
}

// Drift is the difference between the cached balance and the ledger sum.
func (r Reconciliation) Drift() int64 {
	return r.CachedBalance - r.LedgerBalance
}
