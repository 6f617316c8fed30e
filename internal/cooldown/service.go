package cooldown

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/osse101/SpinVault_Go/internal/domain"
)

// Service manages per-player action cooldowns
type Service interface {
	// CheckCooldown checks if a player's action is on cooldown
	// Returns: (onCooldown bool, remaining time.Duration, error)
	CheckCooldown(ctx context.Context, playerID, action string, duration time.Duration) (bool, time.Duration, error)

	// EnforceCooldown atomically checks the cooldown and runs fn if allowed.
	// The cooldown is only marked when fn succeeds, in the same transaction.
	EnforceCooldown(ctx context.Context, playerID, action string, duration time.Duration, fn func(ctx context.Context) error) error

	// MarkUsed records action as performed at the given time. Callers that
	// already hold a transaction use this instead of EnforceCooldown.
	MarkUsed(ctx context.Context, playerID, action string, at time.Time) error

	// ResetCooldown manually resets a cooldown (admin/testing)
	ResetCooldown(ctx context.Context, playerID, action string) error

	// GetLastUsed returns when action was last performed
	GetLastUsed(ctx context.Context, playerID, action string) (*time.Time, error)

	// Duration returns the cooldown for action, honoring a business override
	Duration(action string, business *domain.Business) time.Duration
}

// ErrOnCooldown is returned when action is still on cooldown
type ErrOnCooldown struct {
	Action    string
	Remaining time.Duration
}

func (e ErrOnCooldown) Error() string {
	verb := actionVerb(e.Action)
	minutes := int(e.Remaining.Minutes())
	seconds := int(e.Remaining.Seconds()) % SecondsPerMinute

	if minutes > 0 {
		return fmt.Sprintf(ErrFmtCooldownWithMinutes, verb, minutes, seconds)
	}
	return fmt.Sprintf(ErrFmtCooldownSecondsOnly, verb, seconds)
}

// Is allows errors.Is() to match ErrOnCooldown and domain.ErrCooldownActive
func (e ErrOnCooldown) Is(target error) bool {
	if target == domain.ErrCooldownActive {
		return true
	}
	_, ok := target.(ErrOnCooldown)
	return ok
}

// actionVerb turns "spin:<business>" into "spin"
func actionVerb(action string) string {
	if i := strings.Index(action, HashSeparator); i >= 0 {
		return action[:i]
	}
	return action
}

// Remaining reports whether lastUsed is still within duration at now, and
// how long is left. A nil lastUsed is never on cooldown.
func Remaining(now time.Time, lastUsed *time.Time, duration time.Duration) (bool, time.Duration) {
	if lastUsed == nil {
		return false, 0
	}

	elapsed := now.Sub(*lastUsed)
	if elapsed < duration {
		return true, duration - elapsed
	}

	return false, 0
}
