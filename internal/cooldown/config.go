package cooldown

import (
	"strings"
	"time"

	"github.com/osse101/SpinVault_Go/internal/domain"
)

// Config holds cooldown service configuration
type Config struct {
	// DevMode bypasses all cooldowns when true
	DevMode bool

	SpinCooldown time.Duration
	ScanCooldown time.Duration

	// Now is the clock; time.Now when nil
	Now func() time.Time
}

// GetCooldownDuration returns the cooldown duration for an action. A business
// override replaces the configured duration for every action at that business.
func (c *Config) GetCooldownDuration(action string, business *domain.Business) time.Duration {
	if business != nil {
		if d, ok := business.CooldownOverride(); ok {
			return d
		}
	}

	switch {
	case strings.HasPrefix(action, domain.ActionPrefixSpin):
		return c.SpinCooldown
	case strings.HasPrefix(action, domain.ActionPrefixScan):
		return c.ScanCooldown
	default:
		// Unknown action - use default
		return DefaultCooldownDuration
	}
}

func (c *Config) now() time.Time {
	if c.Now != nil {
		return c.Now()
	}
	return time.Now()
}
