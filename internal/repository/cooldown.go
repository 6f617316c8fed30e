package repository

import (
	"context"
	"time"
)

// Cooldown defines persistence for per-player action cooldowns
type Cooldown interface {
	GetLastUsed(ctx context.Context, playerID, action string) (*time.Time, error)
	// LockAction takes a transaction-scoped advisory lock on player+action.
	// It works even when no cooldown row exists yet.
	LockAction(ctx context.Context, playerID, action string) error
	UpsertLastUsed(ctx context.Context, playerID, action string, at time.Time) error
	DeleteCooldown(ctx context.Context, playerID, action string) error
}
