// Package spin coordinates a spin request end to end: eligibility, draw,
// ledger debit, inventory decrement and the audit record all commit in one
// transaction or not at all.
package spin

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/sethvargo/go-retry"

	"github.com/osse101/SpinVault_Go/internal/cooldown"
	"github.com/osse101/SpinVault_Go/internal/database"
	"github.com/osse101/SpinVault_Go/internal/domain"
	"github.com/osse101/SpinVault_Go/internal/draw"
	"github.com/osse101/SpinVault_Go/internal/eligibility"
	"github.com/osse101/SpinVault_Go/internal/event"
	"github.com/osse101/SpinVault_Go/internal/inventory"
	"github.com/osse101/SpinVault_Go/internal/ledger"
	"github.com/osse101/SpinVault_Go/internal/logger"
	"github.com/osse101/SpinVault_Go/internal/metrics"
	"github.com/osse101/SpinVault_Go/internal/odds"
	"github.com/osse101/SpinVault_Go/internal/repository"
)

// Service is the spin transaction coordinator
type Service interface {
	// RequestSpin settles at most one spin per idempotency key. Business
	// rule failures return a *domain.RejectionError and change nothing.
	RequestSpin(ctx context.Context, req domain.SpinRequest) (*domain.SpinResult, error)
	GetSpin(ctx context.Context, spinID string) (*domain.SpinRecord, error)
	ListSpins(ctx context.Context, filter domain.SpinFilter) ([]domain.SpinRecord, error)
	// VerifySpin recomputes a recorded spin from its seed and odds snapshot
	// and reports whether the stored outcome matches.
	VerifySpin(ctx context.Context, spinID string) (bool, error)
}

// Config holds the spin policy
type Config struct {
	MaxDrawAttempts int
	RetryBaseDelay  time.Duration
	// ChargeOnExhaustedRetries settles a spin as no prize after the last
	// inventory conflict instead of failing it uncharged
	ChargeOnExhaustedRetries bool
	RedemptionValidity       time.Duration
	SessionMaxSpins          int
	// CodeSource feeds redemption codes; crypto/rand when nil
	CodeSource io.Reader
	Now        func() time.Time
}

func (c Config) now() time.Time {
	if c.Now != nil {
		return c.Now()
	}
	return time.Now()
}

// Deps groups the collaborators of the coordinator
type Deps struct {
	Players   repository.Player
	Campaigns repository.Campaign
	Sessions  repository.Session
	Spins     repository.Spin
	Ledger    ledger.Service
	Inventory inventory.Service
	Cooldowns cooldown.Service
	Loader    *eligibility.Loader
	Gate      *eligibility.Gate
	Engine    *draw.Engine
	Tx        repository.TxManager
	Publisher event.Publisher
}

type service struct {
	Deps
	cfg Config
}

// NewService creates a new spin coordinator
func NewService(deps Deps, cfg Config) Service {
	if cfg.MaxDrawAttempts < 1 {
		cfg.MaxDrawAttempts = domain.DefaultMaxDrawAttempts
	}
	if cfg.SessionMaxSpins < 1 {
		cfg.SessionMaxSpins = domain.DefaultSessionMaxSpins
	}
	if cfg.RetryBaseDelay <= 0 {
		cfg.RetryBaseDelay = DefaultRetryBaseDelay
	}
	if cfg.RedemptionValidity <= 0 {
		cfg.RedemptionValidity = domain.DefaultRedemptionValidity
	}
	return &service{Deps: deps, cfg: cfg}
}

// settlement is what one committed attempt produced
type settlement struct {
	result *domain.SpinResult
	record *domain.SpinRecord
	won    *domain.WonPrize
}

func (s *service) RequestSpin(ctx context.Context, req domain.SpinRequest) (*domain.SpinResult, error) {
	log := logger.FromContext(ctx)
	start := time.Now()
	defer func() { metrics.SpinDuration.Observe(time.Since(start).Seconds()) }()

	if err := validate(req); err != nil {
		return nil, err
	}
	key := req.IdempotencyKey()

	// Fast path for client retries of a settled spin
	if res, err := s.replayFor(ctx, req); err != nil || res != nil {
		return res, classify(err)
	}

	var settled *settlement
	attempt := 0
	backoff := retry.WithMaxRetries(uint64(s.cfg.MaxDrawAttempts-1), retry.NewExponential(s.cfg.RetryBaseDelay))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		attempt++
		out, err := s.attempt(ctx, req, attempt, false)
		if err == nil {
			settled = out
			return nil
		}
		return s.retryable(ctx, req, attempt, err)
	})

	if errors.Is(err, domain.ErrDuplicateSpin) {
		log.Info(LogMsgDuplicateSettled, "idempotency_key", key)
		res, rerr := s.replayFor(ctx, req)
		return res, classify(rerr)
	}

	if errors.Is(err, domain.ErrInventoryConflict) {
		if !s.cfg.ChargeOnExhaustedRetries {
			log.Warn(LogMsgExhaustedNoCharge, "idempotency_key", key, "attempts", attempt)
			return nil, fmt.Errorf(ErrMsgRetriesExhaustedFmt, domain.ErrInventoryConflict, attempt)
		}
		log.Warn(LogMsgExhaustedFallback, "idempotency_key", key, "attempts", attempt)
		metrics.ExhaustedRetryFallbacks.Inc()
		attempt++
		settled, err = s.attempt(ctx, req, attempt, true)
		if errors.Is(err, domain.ErrDuplicateSpin) {
			res, rerr := s.replayFor(ctx, req)
			return res, classify(rerr)
		}
	}

	if err != nil {
		if rej, ok := domain.AsRejection(err); ok {
			log.Info(LogMsgSpinRejected, "idempotency_key", key, "reason", rej.Reason)
			s.Publisher.PublishWithRetry(ctx, event.NewSpinRejectedEvent(req.PlayerID, req.CampaignID, rej.Reason))
			return nil, err
		}
		return nil, classify(err)
	}

	if settled.result.Replayed {
		log.Info(LogMsgSpinReplayed, "idempotency_key", key, "spin_id", settled.result.SpinID)
		return settled.result, nil
	}

	s.Publisher.PublishWithRetry(ctx, event.NewSpinCommittedEvent(*settled.record))
	if settled.won != nil {
		s.Publisher.PublishWithRetry(ctx, event.NewPrizeWonEvent(*settled.won))
	}
	log.Info(LogMsgSpinCommitted,
		"spin_id", settled.record.ID, "player_id", req.PlayerID, "campaign_id", req.CampaignID,
		"outcome", settled.record.Outcome, "attempts", settled.record.Attempts)
	return settled.result, nil
}

// retryable decides whether a failed attempt is tried again
func (s *service) retryable(ctx context.Context, req domain.SpinRequest, attempt int, err error) error {
	log := logger.FromContext(ctx)
	var conflict *conflictError
	switch {
	case errors.As(err, &conflict):
		log.Info(LogMsgInventoryConflict, "prize_id", conflict.prizeID, "attempt", attempt)
		s.Publisher.PublishWithRetry(ctx, event.NewInventoryConflictEvent(req.CampaignID, conflict.prizeID, attempt))
		return retry.RetryableError(err)
	case errors.Is(err, domain.ErrRedemptionCodeTaken), database.IsRetryable(err):
		log.Warn(LogMsgRetryableStoreErr, "attempt", attempt, "error", err)
		return retry.RetryableError(err)
	}
	return err
}

// conflictError marks an attempt lost to a concurrent decrement
type conflictError struct {
	prizeID string
}

func (e *conflictError) Error() string {
	return domain.ErrInventoryConflict.Error() + ": " + e.prizeID
}

func (e *conflictError) Unwrap() error {
	return domain.ErrInventoryConflict
}

// attempt runs one full spin transaction. forceNoPrize draws against a
// table without prizes so stock is never touched.
func (s *service) attempt(ctx context.Context, req domain.SpinRequest, attempt int, forceNoPrize bool) (*settlement, error) {
	key := req.IdempotencyKey()
	var out *settlement

	err := s.Tx.Do(ctx, func(ctx context.Context) error {
		sm := newMachine(key, attempt)

		// Player first: every spin of a player serializes here, before any
		// session or prize row is touched
		player, err := s.Players.LockPlayer(ctx, req.PlayerID)
		if err != nil {
			return fmt.Errorf(ErrMsgLockPlayerFailed, err)
		}
		if !player.IsActive {
			return domain.ErrPlayerInactive
		}

		if res, err := s.replayFor(ctx, req); err != nil || res != nil {
			out = &settlement{result: res}
			return err
		}

		campaign, err := s.Campaigns.GetCampaign(ctx, req.CampaignID)
		if err != nil {
			return fmt.Errorf(ErrMsgLoadCampaignFailed, err)
		}

		now := s.cfg.now()
		snap, err := s.Loader.Load(ctx, player, campaign, req.SessionID, now)
		if err != nil {
			return fmt.Errorf(ErrMsgSnapshotFailed, err)
		}
		if decision := s.Gate.Evaluate(snap); !decision.Allowed {
			sm.to(ctx, domain.SpinStateRejected)
			return decision.Err()
		}
		sm.to(ctx, domain.SpinStateValidated)
		session := snap.Session

		table := odds.WithoutPrizes()
		if !forceNoPrize {
			prizes, err := s.Inventory.Snapshot(ctx, campaign.ID, session.Location)
			if err != nil {
				return fmt.Errorf(ErrMsgInventoryFailed, err)
			}
			table = odds.Calculate(prizes)
		}
		drawn, err := s.Engine.Draw(table)
		if err != nil {
			return fmt.Errorf(ErrMsgDrawFailed, err)
		}
		sm.to(ctx, domain.SpinStateDrawn)

		spinID := uuid.NewString()
		balance := player.TokenBalance
		if campaign.TokenCost > 0 {
			entry, err := s.Ledger.Debit(ctx, player.ID, campaign.TokenCost, domain.EntryTypeSpend,
				fmt.Sprintf(spinDescription, campaign.ID), &spinID)
			if err != nil {
				return fmt.Errorf(ErrMsgDebitFailed, err)
			}
			balance = entry.BalanceAfter
		}

		if drawn.Outcome == domain.OutcomePrize {
			if err := s.Inventory.Decrement(ctx, drawn.PrizeID, session.Location); err != nil {
				if errors.Is(err, domain.ErrInventoryConflict) {
					return &conflictError{prizeID: drawn.PrizeID}
				}
				return err
			}
		}

		snapshot, err := table.Snapshot()
		if err != nil {
			return fmt.Errorf(ErrMsgOddsSnapshotFailed, err)
		}
		record := &domain.SpinRecord{
			ID:             spinID,
			PlayerID:       player.ID,
			CampaignID:     campaign.ID,
			SessionID:      session.ID,
			IdempotencyKey: key,
			Outcome:        drawn.Outcome,
			TokensSpent:    campaign.TokenCost,
			BalanceAfter:   balance,
			Seed:           drawn.Seed,
			DrawValue:      drawn.Value,
			OddsSnapshot:   snapshot,
			Attempts:       attempt,
		}
		if drawn.Outcome == domain.OutcomePrize {
			record.PrizeID = &drawn.PrizeID
		}
		if err := s.Spins.CreateSpinRecord(ctx, record); err != nil {
			if errors.Is(err, domain.ErrDuplicateSpin) {
				return err
			}
			return fmt.Errorf(ErrMsgRecordFailed, err)
		}

		var won *domain.WonPrize
		if drawn.Outcome == domain.OutcomePrize {
			if won, err = s.issuePrize(ctx, record, drawn, session.Location, now); err != nil {
				return err
			}
		}

		consumed, err := s.Sessions.ConsumeSession(ctx, session.ID, s.cfg.SessionMaxSpins)
		if err != nil {
			return fmt.Errorf(ErrMsgConsumeFailed, err)
		}
		if !consumed {
			sm.to(ctx, domain.SpinStateRejected)
			return domain.NewRejection(domain.ReasonSessionAlreadyConsumed, "")
		}
		if err := s.Cooldowns.MarkUsed(ctx, player.ID, domain.SpinActionKey(campaign.BusinessID), now); err != nil {
			return fmt.Errorf(ErrMsgCooldownFailed, err)
		}

		sm.to(ctx, domain.SpinStateCommitted)
		out = &settlement{
			result: buildResult(record, won, false),
			record: record,
			won:    won,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *service) issuePrize(ctx context.Context, record *domain.SpinRecord, drawn draw.Result, location string, now time.Time) (*domain.WonPrize, error) {
	code, err := NewRedemptionCode(s.cfg.CodeSource)
	if err != nil {
		return nil, err
	}
	won := &domain.WonPrize{
		PlayerID:       record.PlayerID,
		PrizeID:        drawn.PrizeID,
		SpinID:         record.ID,
		PrizeName:      drawn.PrizeName,
		RedemptionCode: code,
		Status:         domain.WonPrizeStatusPending,
		ExpiresAt:      now.Add(s.cfg.RedemptionValidity),
	}
	if location != "" {
		won.LocationID = &location
	}
	if err := s.Spins.CreateWonPrize(ctx, won); err != nil {
		if errors.Is(err, domain.ErrRedemptionCodeTaken) {
			return nil, err
		}
		return nil, fmt.Errorf(ErrMsgWonPrizeFailed, err)
	}
	return won, nil
}

// replayFor returns the stored result for the request's idempotency key, or
// nil when the key has not been settled. A key settled by another player or
// for another campaign is rejected without revealing the stored spin.
func (s *service) replayFor(ctx context.Context, req domain.SpinRequest) (*domain.SpinResult, error) {
	record, err := s.Spins.GetSpinByIdempotencyKey(ctx, req.IdempotencyKey())
	if errors.Is(err, domain.ErrSpinNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf(ErrMsgIdempotencyFailed, err)
	}
	if record.PlayerID != req.PlayerID || record.CampaignID != req.CampaignID {
		return nil, domain.NewRejection(domain.ReasonSessionMismatch, "")
	}

	var won *domain.WonPrize
	if record.Outcome == domain.OutcomePrize {
		if won, err = s.Spins.GetWonPrizeBySpin(ctx, record.ID); err != nil {
			return nil, fmt.Errorf(ErrMsgReplayFailed, err)
		}
	}
	return buildResult(record, won, true), nil
}

func buildResult(record *domain.SpinRecord, won *domain.WonPrize, replayed bool) *domain.SpinResult {
	res := &domain.SpinResult{
		SpinID:      record.ID,
		Outcome:     record.Outcome,
		TokensSpent: record.TokensSpent,
		NewBalance:  record.BalanceAfter,
		State:       domain.SpinStateCommitted,
		Attempts:    record.Attempts,
		Replayed:    replayed,
	}
	if won != nil {
		res.Prize = &domain.WonPrizeInfo{
			ID:             won.PrizeID,
			Name:           won.PrizeName,
			RedemptionCode: won.RedemptionCode,
			ExpiresAt:      won.ExpiresAt,
		}
	}
	return res
}

func validate(req domain.SpinRequest) error {
	switch {
	case req.PlayerID == "":
		return fmt.Errorf(ErrMsgMissingField, domain.ErrInvalidInput, "player_id")
	case req.CampaignID == "":
		return fmt.Errorf(ErrMsgMissingField, domain.ErrInvalidInput, "campaign_id")
	case req.SessionID == "":
		return fmt.Errorf(ErrMsgMissingField, domain.ErrInvalidInput, "session_id")
	case req.Attempt < 0:
		return fmt.Errorf(ErrMsgNegativeAttempt, domain.ErrInvalidInput)
	}
	return nil
}

// knownErrors pass through unchanged; anything else is a persistence failure
var knownErrors = []error{
	domain.ErrInvalidInput,
	domain.ErrPlayerNotFound,
	domain.ErrPlayerInactive,
	domain.ErrCampaignNotFound,
	domain.ErrBusinessNotFound,
	domain.ErrInventoryConflict,
	context.Canceled,
	context.DeadlineExceeded,
}

func classify(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := domain.AsRejection(err); ok {
		return err
	}
	for _, known := range knownErrors {
		if errors.Is(err, known) {
			return err
		}
	}
	return fmt.Errorf(ErrMsgPersistenceFmt, domain.ErrPersistenceFailure, err)
}

func (s *service) GetSpin(ctx context.Context, spinID string) (*domain.SpinRecord, error) {
	record, err := s.Spins.GetSpin(ctx, spinID)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgGetSpinFailed, err)
	}
	return record, nil
}

func (s *service) ListSpins(ctx context.Context, filter domain.SpinFilter) ([]domain.SpinRecord, error) {
	records, err := s.Spins.ListSpins(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgListSpinsFailed, err)
	}
	return records, nil
}

func (s *service) VerifySpin(ctx context.Context, spinID string) (bool, error) {
	record, err := s.GetSpin(ctx, spinID)
	if err != nil {
		return false, err
	}
	table, err := odds.FromSnapshot(record.OddsSnapshot)
	if err != nil {
		return false, fmt.Errorf(ErrMsgVerifyFailed, err)
	}
	replayed, err := draw.Replay(table, record.Seed)
	if err != nil {
		return false, fmt.Errorf(ErrMsgVerifyFailed, err)
	}
	if replayed.Outcome != record.Outcome {
		return false, nil
	}
	if record.PrizeID != nil && *record.PrizeID != replayed.PrizeID {
		return false, nil
	}
	return true, nil
}
