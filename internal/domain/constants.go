package domain

import "time"

// Session defaults
const (
	// DefaultSessionValidity is how long a scan session can back a spin
	DefaultSessionValidity = 10 * time.Minute

	// DefaultSessionMaxSpins is how many spins one scan session may back
	DefaultSessionMaxSpins = 1

	// DefaultScanClockSkew tolerates client clocks slightly ahead of the server
	DefaultScanClockSkew = 30 * time.Second

	// DefaultTokensPerScan is the number of tokens credited for one scan
	DefaultTokensPerScan = 5
)

// Cooldown defaults
const (
	DefaultSpinCooldown = 30 * time.Second
	DefaultScanCooldown = 5 * time.Minute
)

// Cooldown action prefixes, combined with a business id
const (
	ActionPrefixSpin = "spin:"
	ActionPrefixScan = "scan:"
)

// Spin transaction defaults
const (
	// DefaultMaxDrawAttempts bounds how many times a spin is redrawn after an inventory conflict
	DefaultMaxDrawAttempts = 3

	// DefaultRedemptionValidity is how long a won prize can be redeemed
	DefaultRedemptionValidity = 30 * 24 * time.Hour
)

// Redemption code format
const (
	RedemptionCodeBytes     = 10
	RedemptionCodeLength    = 12
	RedemptionCodeGroupSize = 4
	RedemptionCodeSeparator = "-"
)

// SpinActionKey returns the cooldown action for spins at a business.
func SpinActionKey(businessID string) string {
	return ActionPrefixSpin + businessID
}

// ScanActionKey returns the cooldown action for scans at a business.
func ScanActionKey(businessID string) string {
	return ActionPrefixScan + businessID
}
