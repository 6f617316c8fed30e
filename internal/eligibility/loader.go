package eligibility

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/osse101/SpinVault_Go/internal/cooldown"
	"github.com/osse101/SpinVault_Go/internal/domain"
	"github.com/osse101/SpinVault_Go/internal/limits"
	"github.com/osse101/SpinVault_Go/internal/repository"
)

const (
	ErrMsgLoadSessionFailed  = "failed to lock session: %w"
	ErrMsgLoadBusinessFailed = "failed to load business: %w"
	ErrMsgLoadCooldownFailed = "failed to load spin cooldown: %w"
)

// Loader assembles snapshots from the store
type Loader struct {
	sessions        repository.Session
	campaigns       repository.Campaign
	cooldowns       cooldown.Service
	limits          limits.Service
	sessionMaxSpins int
}

// NewLoader creates a snapshot loader
func NewLoader(sessions repository.Session, campaigns repository.Campaign, cooldowns cooldown.Service, lim limits.Service, sessionMaxSpins int) *Loader {
	return &Loader{
		sessions:        sessions,
		campaigns:       campaigns,
		cooldowns:       cooldowns,
		limits:          lim,
		sessionMaxSpins: sessionMaxSpins,
	}
}

// Load builds the snapshot for player spinning campaign with sessionID. The
// player row must already be locked by the caller; the session row is locked
// here, so Load has to run inside the spin transaction.
func (l *Loader) Load(ctx context.Context, player *domain.Player, campaign *domain.Campaign, sessionID string, now time.Time) (Snapshot, error) {
	s := Snapshot{
		Now:             now,
		PlayerID:        player.ID,
		Campaign:        *campaign,
		Balance:         player.TokenBalance,
		SessionMaxSpins: l.sessionMaxSpins,
		Caps:            l.limits.Caps(),
	}

	session, err := l.sessions.LockSession(ctx, sessionID)
	switch {
	case errors.Is(err, domain.ErrSessionNotFound):
		// rejected by CheckSession as expired
	case err != nil:
		return s, fmt.Errorf(ErrMsgLoadSessionFailed, err)
	default:
		s.Session = session
	}

	business, err := l.campaigns.GetBusiness(ctx, campaign.BusinessID)
	if err != nil {
		return s, fmt.Errorf(ErrMsgLoadBusinessFailed, err)
	}
	action := domain.SpinActionKey(business.ID)
	s.Cooldown = l.cooldowns.Duration(action, business)
	if s.LastSpinAt, err = l.cooldowns.GetLastUsed(ctx, player.ID, action); err != nil {
		return s, fmt.Errorf(ErrMsgLoadCooldownFailed, err)
	}

	if s.SpinsToday, err = l.limits.SpinsToday(ctx, player.ID, campaign.ID, now); err != nil {
		return s, err
	}
	if s.Usage, err = l.limits.Usage(ctx, player.ID, now); err != nil {
		return s, err
	}
	return s, nil
}
