package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/osse101/SpinVault_Go/internal/domain"
	"github.com/osse101/SpinVault_Go/internal/validation"
)

// SpinPolicy holds the business rules of the spin engine. It is read from
// configs/spin.yaml; fields missing from the file keep their defaults.
type SpinPolicy struct {
	SessionValidity time.Duration `yaml:"session_validity"`
	SessionMaxSpins int           `yaml:"session_max_spins"`
	ScanClockSkew   time.Duration `yaml:"scan_clock_skew"`
	TokensPerScan   int64         `yaml:"tokens_per_scan"`

	SpinCooldown time.Duration `yaml:"spin_cooldown"`
	ScanCooldown time.Duration `yaml:"scan_cooldown"`

	// Caps of 0 disable the check
	DailyEarnCap   int64 `yaml:"daily_earn_cap"`
	WeeklyEarnCap  int64 `yaml:"weekly_earn_cap"`
	DailySpendCap  int64 `yaml:"daily_spend_cap"`
	WeeklySpendCap int64 `yaml:"weekly_spend_cap"`

	MaxDrawAttempts          int           `yaml:"max_draw_attempts"`
	RetryBaseDelay           time.Duration `yaml:"retry_base_delay"`
	ChargeOnExhaustedRetries bool          `yaml:"charge_on_exhausted_retries"`
	RedemptionValidity       time.Duration `yaml:"redemption_validity"`

	// Timezone defines where days and weeks start for caps and spin counts
	Timezone string `yaml:"timezone"`

	CampaignCacheSize int           `yaml:"campaign_cache_size"`
	CampaignCacheTTL  time.Duration `yaml:"campaign_cache_ttl"`

	Jobs JobPolicy `yaml:"jobs"`
}

// JobPolicy holds background job intervals.
type JobPolicy struct {
	SessionCleanupInterval  time.Duration `yaml:"session_cleanup_interval"`
	WonPrizeExpiryInterval  time.Duration `yaml:"won_prize_expiry_interval"`
	ReconcileInterval       time.Duration `yaml:"reconcile_interval"`
	ReconcileBatchSize      int           `yaml:"reconcile_batch_size"`
	EventLogCleanupInterval time.Duration `yaml:"event_log_cleanup_interval"`
	EventLogRetention       time.Duration `yaml:"event_log_retention"`
}

// DefaultSpinPolicy returns the policy used when no file is present
func DefaultSpinPolicy() SpinPolicy {
	return SpinPolicy{
		SessionValidity:          domain.DefaultSessionValidity,
		SessionMaxSpins:          domain.DefaultSessionMaxSpins,
		ScanClockSkew:            domain.DefaultScanClockSkew,
		TokensPerScan:            domain.DefaultTokensPerScan,
		SpinCooldown:             domain.DefaultSpinCooldown,
		ScanCooldown:             domain.DefaultScanCooldown,
		DailyEarnCap:             100,
		WeeklyEarnCap:            500,
		DailySpendCap:            100,
		WeeklySpendCap:           500,
		MaxDrawAttempts:          domain.DefaultMaxDrawAttempts,
		RetryBaseDelay:           10 * time.Millisecond,
		ChargeOnExhaustedRetries: true,
		RedemptionValidity:       domain.DefaultRedemptionValidity,
		Timezone:                 "UTC",
		CampaignCacheSize:        256,
		CampaignCacheTTL:         30 * time.Second,
		Jobs: JobPolicy{
			SessionCleanupInterval:  5 * time.Minute,
			WonPrizeExpiryInterval:  time.Hour,
			ReconcileInterval:       6 * time.Hour,
			ReconcileBatchSize:      500,
			EventLogCleanupInterval: 24 * time.Hour,
			EventLogRetention:       90 * 24 * time.Hour,
		},
	}
}

// LoadSpinPolicy reads the policy file at path over the defaults. A missing
// file is not an error.
func LoadSpinPolicy(path string) (SpinPolicy, error) {
	policy := DefaultSpinPolicy()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return policy, nil
		}
		return policy, fmt.Errorf("%s: %w", ErrMsgReadSpinPolicy, err)
	}

	if err := yaml.Unmarshal(data, &policy); err != nil {
		return policy, fmt.Errorf("%s: %w", ErrMsgParseSpinPolicy, err)
	}

	// The schema catches misspelled keys that yaml would silently ignore.
	if err := validation.NewSchemaValidator().ValidateYAML(data, validation.SchemaSpinPolicy); err != nil {
		return policy, fmt.Errorf("%s: %w", ErrMsgInvalidPolicy, err)
	}

	if err := policy.Validate(); err != nil {
		return policy, err
	}
	return policy, nil
}

// Validate checks the policy for values the engine cannot run with
func (p SpinPolicy) Validate() error {
	var problems []error
	if p.SessionValidity <= 0 {
		problems = append(problems, errors.New("session_validity must be positive"))
	}
	if p.SessionMaxSpins < 1 {
		problems = append(problems, errors.New("session_max_spins must be at least 1"))
	}
	if p.TokensPerScan < 1 {
		problems = append(problems, errors.New("tokens_per_scan must be at least 1"))
	}
	if p.MaxDrawAttempts < 1 {
		problems = append(problems, errors.New("max_draw_attempts must be at least 1"))
	}
	if p.SpinCooldown < 0 || p.ScanCooldown < 0 {
		problems = append(problems, errors.New("cooldowns cannot be negative"))
	}
	if p.DailyEarnCap < 0 || p.WeeklyEarnCap < 0 || p.DailySpendCap < 0 || p.WeeklySpendCap < 0 {
		problems = append(problems, errors.New("caps cannot be negative"))
	}
	if p.RedemptionValidity <= 0 {
		problems = append(problems, errors.New("redemption_validity must be positive"))
	}
	if p.Jobs.EventLogCleanupInterval > 0 && p.Jobs.EventLogRetention <= 0 {
		problems = append(problems, errors.New("jobs.event_log_retention must be positive when cleanup is enabled"))
	}
	if _, err := time.LoadLocation(p.Timezone); err != nil {
		problems = append(problems, fmt.Errorf("%s: %w", ErrMsgInvalidTimezone, err))
	}
	if len(problems) > 0 {
		return fmt.Errorf("%s: %w", ErrMsgInvalidPolicy, errors.Join(problems...))
	}
	return nil
}

// Location returns the time zone days and weeks are computed in.
func (p SpinPolicy) Location() *time.Location {
	loc, err := time.LoadLocation(p.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
