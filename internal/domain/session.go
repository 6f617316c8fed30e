package domain

import "time"

// ScanSession is a time-boxed, replay-protected proof that a player was at a
// business location. It backs a bounded number of spins.
type ScanSession struct {
	ID             string    `json:"id"`
	PlayerID       string    `json:"player_id"`
	BusinessID     string    `json:"business_id"`
	Location       string    `json:"location"`
	ScannedAt      time.Time `json:"scanned_at"`
	ReplayHash     string    `json:"-"`
	TokensCredited int64     `json:"tokens_credited"`
	SpinsUsed      int       `json:"spins_used"`
	ExpiresAt      time.Time `json:"expires_at"`
	CreatedAt      time.Time `json:"created_at"`
}

// IsExpired reports whether the session can no longer back a spin.
func (s ScanSession) IsExpired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

// ScanResult is returned to the caller after a scan has been credited.
type ScanResult struct {
	SessionID           string    `json:"session_id"`
	TokensEarned        int64     `json:"tokens_earned"`
	NewBalance          int64     `json:"new_balance"`
	RemainingSpinsToday int       `json:"remaining_spins_today"`
	ExpiresAt           time.Time `json:"expires_at"`
}
