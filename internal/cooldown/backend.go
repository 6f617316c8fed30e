package cooldown

import (
	"context"
	"fmt"
	"time"

	"github.com/osse101/SpinVault_Go/internal/domain"
	"github.com/osse101/SpinVault_Go/internal/logger"
	"github.com/osse101/SpinVault_Go/internal/repository"
)

// backend implements Service over the cooldown repository
type backend struct {
	repo   repository.Cooldown
	tx     repository.TxManager
	config Config
}

// NewService creates a new cooldown service
func NewService(repo repository.Cooldown, tx repository.TxManager, config Config) Service {
	return &backend{
		repo:   repo,
		tx:     tx,
		config: config,
	}
}

// CheckCooldown checks if a player's action is on cooldown (unlocked read)
func (b *backend) CheckCooldown(ctx context.Context, playerID, action string, duration time.Duration) (bool, time.Duration, error) {
	if b.config.DevMode {
		return false, 0, nil
	}

	lastUsed, err := b.repo.GetLastUsed(ctx, playerID, action)
	if err != nil {
		return false, 0, fmt.Errorf(ErrMsgCheckCooldownFailed, err)
	}

	onCooldown, remaining := Remaining(b.config.now(), lastUsed, duration)
	return onCooldown, remaining, nil
}

// EnforceCooldown uses check-then-lock: a cheap unlocked read rejects most
// requests, then an advisory lock on player+action serializes the rest.
func (b *backend) EnforceCooldown(ctx context.Context, playerID, action string, duration time.Duration, fn func(ctx context.Context) error) error {
	log := logger.FromContext(ctx)

	onCooldown, remaining, err := b.CheckCooldown(ctx, playerID, action, duration)
	if err != nil {
		return err
	}
	if onCooldown {
		return ErrOnCooldown{Action: action, Remaining: remaining}
	}

	return b.tx.Do(ctx, func(ctx context.Context) error {
		if b.config.DevMode {
			log.Debug(LogMsgDevModeBypass, "action", action, "player_id", playerID)
		} else {
			// Advisory locks work even when no row exists (unlike SELECT FOR UPDATE)
			if err := b.repo.LockAction(ctx, playerID, action); err != nil {
				return fmt.Errorf(ErrMsgAcquireLockFailed, err)
			}

			lastUsed, err := b.repo.GetLastUsed(ctx, playerID, action)
			if err != nil {
				return fmt.Errorf(ErrMsgGetCooldownTxFailed, err)
			}
			if onCooldown, remaining := Remaining(b.config.now(), lastUsed, duration); onCooldown {
				log.Debug(LogMsgRaceConditionDetected,
					"action", action, "player_id", playerID, "remaining", remaining)
				return ErrOnCooldown{Action: action, Remaining: remaining}
			}
		}

		if err := fn(ctx); err != nil {
			return err
		}

		if err := b.repo.UpsertLastUsed(ctx, playerID, action, b.config.now()); err != nil {
			return fmt.Errorf(ErrMsgUpdateCooldownFailed, err)
		}

		log.Debug(LogMsgCooldownEnforced, "action", action, "player_id", playerID)
		return nil
	})
}

func (b *backend) MarkUsed(ctx context.Context, playerID, action string, at time.Time) error {
	if err := b.repo.UpsertLastUsed(ctx, playerID, action, at); err != nil {
		return fmt.Errorf(ErrMsgUpdateCooldownFailed, err)
	}
	return nil
}

// ResetCooldown manually resets a cooldown
func (b *backend) ResetCooldown(ctx context.Context, playerID, action string) error {
	if err := b.repo.DeleteCooldown(ctx, playerID, action); err != nil {
		return fmt.Errorf(ErrMsgResetCooldownFailed, err)
	}
	return nil
}

// GetLastUsed returns when action was last performed
func (b *backend) GetLastUsed(ctx context.Context, playerID, action string) (*time.Time, error) {
	lastUsed, err := b.repo.GetLastUsed(ctx, playerID, action)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgGetLastUsedFailed, err)
	}
	return lastUsed, nil
}

func (b *backend) Duration(action string, business *domain.Business) time.Duration {
	if b.config.DevMode {
		return 0
	}
	return b.config.GetCooldownDuration(action, business)
}
