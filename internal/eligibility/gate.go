// Package eligibility decides whether a spin may proceed. Checks are pure
// functions over a Snapshot that the Loader assembles inside the spin's
// transaction, so a decision never mutates anything.
package eligibility

import (
	"fmt"
	"time"

	"github.com/osse101/SpinVault_Go/internal/cooldown"
	"github.com/osse101/SpinVault_Go/internal/domain"
	"github.com/osse101/SpinVault_Go/internal/limits"
)

// Snapshot is everything the gate looks at for one spin request.
type Snapshot struct {
	Now      time.Time
	PlayerID string
	Campaign domain.Campaign

	// Session is nil when the id did not resolve
	Session         *domain.ScanSession
	SessionMaxSpins int

	LastSpinAt *time.Time
	Cooldown   time.Duration

	SpinsToday int
	Balance    int64
	Usage      domain.LedgerUsage
	Caps       limits.Caps
}

// Decision is the outcome of Evaluate. Reason is empty when Allowed.
type Decision struct {
	Allowed bool
	Reason  domain.RejectReason
	Detail  string
}

// Err returns the rejection as an error, or nil when allowed.
func (d Decision) Err() error {
	if d.Allowed {
		return nil
	}
	return domain.NewRejection(d.Reason, d.Detail)
}

// Check inspects one rule. It returns a rejecting Decision, or ok=true.
type Check func(s Snapshot) (Decision, bool)

// Gate runs checks in order and stops at the first failure
type Gate struct {
	checks []Check
}

// NewGate returns a gate with the default check order. Extra checks run last.
func NewGate(extra ...Check) *Gate {
	checks := []Check{
		CheckCampaignActive,
		CheckSession,
		CheckCooldown,
		CheckDailySpins,
		CheckBalance,
		CheckSpendCaps,
	}
	return &Gate{checks: append(checks, extra...)}
}

// Evaluate applies each check to s.
func (g *Gate) Evaluate(s Snapshot) Decision {
	for _, check := range g.checks {
		if d, ok := check(s); !ok {
			return d
		}
	}
	return Decision{Allowed: true}
}

func reject(reason domain.RejectReason, detail string) (Decision, bool) {
	return Decision{Reason: reason, Detail: detail}, false
}

func pass() (Decision, bool) {
	return Decision{Allowed: true}, true
}

func CheckCampaignActive(s Snapshot) (Decision, bool) {
	if !s.Campaign.IsLive(s.Now) {
		return reject(domain.ReasonCampaignInactive, s.Campaign.ID)
	}
	return pass()
}

func CheckSession(s Snapshot) (Decision, bool) {
	switch {
	case s.Session == nil:
		return reject(domain.ReasonSessionExpired, "")
	case s.Session.PlayerID != s.PlayerID || s.Session.BusinessID != s.Campaign.BusinessID:
		return reject(domain.ReasonSessionMismatch, "")
	case s.Session.IsExpired(s.Now):
		return reject(domain.ReasonSessionExpired, "")
	case s.Session.SpinsUsed >= s.SessionMaxSpins:
		return reject(domain.ReasonSessionAlreadyConsumed, "")
	}
	return pass()
}

func CheckCooldown(s Snapshot) (Decision, bool) {
	if onCooldown, remaining := cooldown.Remaining(s.Now, s.LastSpinAt, s.Cooldown); onCooldown {
		return reject(domain.ReasonCooldownActive, fmt.Sprintf("%s remaining", remaining.Round(time.Second)))
	}
	return pass()
}

func CheckDailySpins(s Snapshot) (Decision, bool) {
	// 0 means no per-day limit
	if s.Campaign.MaxSpinsPerDay > 0 && s.SpinsToday >= s.Campaign.MaxSpinsPerDay {
		return reject(domain.ReasonDailySpinLimitReached, "")
	}
	return pass()
}

func CheckBalance(s Snapshot) (Decision, bool) {
	if s.Balance < s.Campaign.TokenCost {
		return reject(domain.ReasonInsufficientTokens,
			fmt.Sprintf("balance %d, cost %d", s.Balance, s.Campaign.TokenCost))
	}
	return pass()
}

func CheckSpendCaps(s Snapshot) (Decision, bool) {
	if reason, violated := s.Caps.SpendViolation(s.Usage, s.Campaign.TokenCost); violated {
		return reject(reason, "")
	}
	return pass()
}
