// Package session turns a validated QR scan into tokens and a short-lived
// scan session that can back a spin.
package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/osse101/SpinVault_Go/internal/cooldown"
	"github.com/osse101/SpinVault_Go/internal/domain"
	"github.com/osse101/SpinVault_Go/internal/event"
	"github.com/osse101/SpinVault_Go/internal/ledger"
	"github.com/osse101/SpinVault_Go/internal/limits"
	"github.com/osse101/SpinVault_Go/internal/logger"
	"github.com/osse101/SpinVault_Go/internal/repository"
)

// Service handles scan credits and session reads
type Service interface {
	RequestScanCredit(ctx context.Context, req ScanRequest) (*domain.ScanResult, error)
	Get(ctx context.Context, sessionID string) (*domain.ScanSession, error)
	// RemainingSpinsToday reports spins left today at the business's first
	// live campaign
	RemainingSpinsToday(ctx context.Context, playerID, businessID string, now time.Time) (int, error)
	// CleanupExpired removes sessions that expired more than grace ago
	CleanupExpired(ctx context.Context, grace time.Duration) (int64, error)
}

// ScanRequest is a QR scan reported by the scanning surface
type ScanRequest struct {
	PlayerID   string
	BusinessID string
	Location   string
	ScannedAt  time.Time
}

// Config holds the scan policy
type Config struct {
	Validity      time.Duration
	MaxSpins      int
	ClockSkew     time.Duration
	TokensPerScan int64
	// ReplayKey keys the replay hash; at most 64 bytes
	ReplayKey []byte
	Now       func() time.Time
}

func (c Config) now() time.Time {
	if c.Now != nil {
		return c.Now()
	}
	return time.Now()
}

// Deps groups the collaborators of the session service
type Deps struct {
	Players   repository.Player
	Campaigns repository.Campaign
	Sessions  repository.Session
	Ledger    ledger.Service
	Cooldowns cooldown.Service
	Limits    limits.Service
	Tx        repository.TxManager
	Publisher event.Publisher
}

type service struct {
	Deps
	cfg Config
}

// NewService creates a new session service
func NewService(deps Deps, cfg Config) Service {
	return &service{Deps: deps, cfg: cfg}
}

func (s *service) RequestScanCredit(ctx context.Context, req ScanRequest) (*domain.ScanResult, error) {
	log := logger.FromContext(ctx)

	if err := validate(req); err != nil {
		return nil, err
	}

	player, err := s.Players.GetPlayer(ctx, req.PlayerID)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgPlayerLookupFailed, err)
	}
	if !player.IsActive {
		return nil, domain.ErrPlayerInactive
	}
	business, err := s.Campaigns.GetBusiness(ctx, req.BusinessID)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgBusinessLookupFailed, err)
	}
	if !business.IsActive {
		return nil, domain.ErrBusinessNotFound
	}

	now := s.cfg.now()
	scannedAt := req.ScannedAt.Truncate(time.Second)
	if scannedAt.After(now.Add(s.cfg.ClockSkew)) {
		return nil, domain.ErrScanTimestampInFuture
	}
	expiresAt := scannedAt.Add(s.cfg.Validity)
	if !now.Before(expiresAt) {
		return nil, domain.NewRejection(domain.ReasonSessionExpired, "scan is too old")
	}

	replayHash, err := ReplayHash(s.cfg.ReplayKey, req.PlayerID, req.BusinessID, req.Location, scannedAt)
	if err != nil {
		return nil, err
	}
	// The unique index on replay_hash is the real guard; this read only
	// answers duplicates before the cooldown check can mask them.
	seen, err := s.Sessions.ReplayExists(ctx, replayHash)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgReplayCheckFailed, err)
	}
	if seen {
		log.Info(LogMsgScanReplay, "player_id", req.PlayerID, "business_id", req.BusinessID)
		return nil, domain.NewRejection(domain.ReasonReplayDetected, "")
	}

	session := &domain.ScanSession{
		PlayerID:   req.PlayerID,
		BusinessID: req.BusinessID,
		Location:   domain.NormalizeLocation(req.Location),
		ScannedAt:  scannedAt,
		ReplayHash: replayHash,
		ExpiresAt:  expiresAt,
	}
	var entry *domain.LedgerEntry

	action := domain.ScanActionKey(business.ID)
	err = s.Cooldowns.EnforceCooldown(ctx, req.PlayerID, action, s.Cooldowns.Duration(action, business),
		func(ctx context.Context) error {
			// Serializes concurrent scans of one player so earn caps hold
			if _, err := s.Players.LockPlayer(ctx, req.PlayerID); err != nil {
				return fmt.Errorf(ErrMsgPlayerLookupFailed, err)
			}
			usage, err := s.Limits.Usage(ctx, req.PlayerID, now)
			if err != nil {
				return err
			}
			earned := s.Limits.Caps().EarnAllowance(usage, s.cfg.TokensPerScan)
			if earned == 0 {
				log.Info(LogMsgEarnCapReached, "player_id", req.PlayerID, "earned_today", usage.EarnedToday)
				return domain.NewRejection(domain.ReasonDailyEarnLimitExceeded, "")
			}
			session.TokensCredited = earned

			if err := s.Sessions.CreateSession(ctx, session); err != nil {
				if errors.Is(err, domain.ErrReplayDetected) {
					return domain.NewRejection(domain.ReasonReplayDetected, "")
				}
				return fmt.Errorf(ErrMsgCreateSessionFailed, err)
			}

			entry, err = s.Ledger.Credit(ctx, req.PlayerID, earned, domain.EntryTypeEarn,
				fmt.Sprintf(scanDescription, business.ID), &session.ID)
			if err != nil {
				return fmt.Errorf(ErrMsgCreditFailed, err)
			}
			return nil
		})
	if err != nil {
		var onCooldown cooldown.ErrOnCooldown
		if errors.As(err, &onCooldown) {
			return nil, domain.NewRejection(domain.ReasonCooldownActive, onCooldown.Error())
		}
		return nil, err
	}

	s.Publisher.PublishWithRetry(ctx, event.NewTokensCreditedEvent(*session, entry.BalanceAfter))
	log.Info(LogMsgScanCredited,
		"player_id", req.PlayerID, "business_id", req.BusinessID,
		"session_id", session.ID, "tokens", session.TokensCredited, "balance", entry.BalanceAfter)

	remaining, err := s.RemainingSpinsToday(ctx, req.PlayerID, req.BusinessID, now)
	if err != nil {
		// The credit is committed; a display value is not worth failing it
		log.Warn(LogMsgRemainingSpinsFailed, "error", err)
	}

	return &domain.ScanResult{
		SessionID:           session.ID,
		TokensEarned:        session.TokensCredited,
		NewBalance:          entry.BalanceAfter,
		RemainingSpinsToday: remaining,
		ExpiresAt:           session.ExpiresAt,
	}, nil
}

func validate(req ScanRequest) error {
	switch {
	case req.PlayerID == "":
		return fmt.Errorf(ErrMsgMissingField, domain.ErrInvalidInput, "player_id")
	case req.BusinessID == "":
		return fmt.Errorf(ErrMsgMissingField, domain.ErrInvalidInput, "business_id")
	case req.Location == "":
		return fmt.Errorf(ErrMsgMissingField, domain.ErrInvalidInput, "location")
	case req.ScannedAt.IsZero():
		return fmt.Errorf(ErrMsgMissingField, domain.ErrInvalidInput, "timestamp")
	}
	return nil
}

func (s *service) Get(ctx context.Context, sessionID string) (*domain.ScanSession, error) {
	session, err := s.Sessions.GetSession(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgGetSessionFailed, err)
	}
	return session, nil
}

func (s *service) RemainingSpinsToday(ctx context.Context, playerID, businessID string, now time.Time) (int, error) {
	campaigns, err := s.Campaigns.ListLiveCampaigns(ctx, businessID, now)
	if err != nil {
		return 0, fmt.Errorf(ErrMsgRemainingSpinsFailed, err)
	}
	if len(campaigns) == 0 {
		return 0, nil
	}
	c := campaigns[0]
	if c.MaxSpinsPerDay == 0 {
		// No daily limit; what bounds the player is the session itself
		return s.cfg.MaxSpins, nil
	}
	used, err := s.Limits.SpinsToday(ctx, playerID, c.ID, now)
	if err != nil {
		return 0, fmt.Errorf(ErrMsgRemainingSpinsFailed, err)
	}
	return max(c.MaxSpinsPerDay-used, 0), nil
}

func (s *service) CleanupExpired(ctx context.Context, grace time.Duration) (int64, error) {
	n, err := s.Sessions.DeleteExpiredSessions(ctx, s.cfg.now().Add(-grace))
	if err != nil {
		return 0, fmt.Errorf(ErrMsgCleanupFailed, err)
	}
	if n > 0 {
		logger.FromContext(ctx).Info(LogMsgSessionsCleanedUp, "count", n)
	}
	return n, nil
}
