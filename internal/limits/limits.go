// Package limits computes day and week windows and the earn/spend usage a
// player has accumulated inside them.
package limits

import (
	"context"
	"fmt"
	"time"

	"github.com/osse101/SpinVault_Go/internal/domain"
	"github.com/osse101/SpinVault_Go/internal/repository"
)

const (
	ErrMsgUsageFailed      = "failed to read ledger usage: %w"
	ErrMsgSpinsTodayFailed = "failed to count spins today: %w"
)

// Caps bound token volume per window. Zero disables a cap.
type Caps struct {
	DailyEarn   int64
	WeeklyEarn  int64
	DailySpend  int64
	WeeklySpend int64
}

// Window holds the start of the current day and ISO week (Monday).
type Window struct {
	DayStart  time.Time
	WeekStart time.Time
}

// Service reads usage against caps
type Service interface {
	Windows(now time.Time) Window
	Usage(ctx context.Context, playerID string, now time.Time) (domain.LedgerUsage, error)
	SpinsToday(ctx context.Context, playerID, campaignID string, now time.Time) (int, error)
	Caps() Caps
}

type service struct {
	ledger repository.Ledger
	spins  repository.Spin
	caps   Caps
	loc    *time.Location
}

// NewService creates a limits service. Days and weeks start at midnight in loc.
func NewService(ledger repository.Ledger, spins repository.Spin, caps Caps, loc *time.Location) Service {
	if loc == nil {
		loc = time.UTC
	}
	return &service{ledger: ledger, spins: spins, caps: caps, loc: loc}
}

func (s *service) Windows(now time.Time) Window {
	return Windows(now, s.loc)
}

// Windows returns the day and week containing now, in loc.
func Windows(now time.Time, loc *time.Location) Window {
	local := now.In(loc)
	day := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
	// Monday is day 1 in Go's time.Weekday
	sinceMonday := (int(local.Weekday()) + 6) % 7
	return Window{
		DayStart:  day,
		WeekStart: day.AddDate(0, 0, -sinceMonday),
	}
}

func (s *service) Usage(ctx context.Context, playerID string, now time.Time) (domain.LedgerUsage, error) {
	w := s.Windows(now)
	usage, err := s.ledger.Usage(ctx, playerID, w.DayStart, w.WeekStart)
	if err != nil {
		return usage, fmt.Errorf(ErrMsgUsageFailed, err)
	}
	return usage, nil
}

func (s *service) SpinsToday(ctx context.Context, playerID, campaignID string, now time.Time) (int, error) {
	n, err := s.spins.CountSpinsSince(ctx, playerID, campaignID, s.Windows(now).DayStart)
	if err != nil {
		return 0, fmt.Errorf(ErrMsgSpinsTodayFailed, err)
	}
	return n, nil
}

func (s *service) Caps() Caps {
	return s.caps
}

// EarnAllowance clamps want to what the earn caps still allow.
func (c Caps) EarnAllowance(usage domain.LedgerUsage, want int64) int64 {
	allowed := want
	if c.DailyEarn > 0 {
		allowed = min(allowed, c.DailyEarn-usage.EarnedToday)
	}
	if c.WeeklyEarn > 0 {
		allowed = min(allowed, c.WeeklyEarn-usage.EarnedThisWeek)
	}
	return max(allowed, 0)
}

// SpendViolation returns the reason a spend of cost would break a cap, if any.
func (c Caps) SpendViolation(usage domain.LedgerUsage, cost int64) (domain.RejectReason, bool) {
	if c.DailySpend > 0 && usage.SpentToday+cost > c.DailySpend {
		return domain.ReasonDailySpendLimitExceeded, true
	}
	if c.WeeklySpend > 0 && usage.SpentThisWeek+cost > c.WeeklySpend {
		return domain.ReasonWeeklySpendLimitExceeded, true
	}
	return "", false
}
