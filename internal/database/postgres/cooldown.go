package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/SpinVault_Go/internal/database"
)

// CooldownRepository implements repository.Cooldown
type CooldownRepository struct {
	base
}

// NewCooldownRepository creates a new CooldownRepository
func NewCooldownRepository(db *pgxpool.Pool) *CooldownRepository {
	return &CooldownRepository{base: newBase(db)}
}

func (r *CooldownRepository) GetLastUsed(ctx context.Context, playerID, action string) (*time.Time, error) {
	if err := checkID(playerID); err != nil {
		return nil, err
	}
	var lastUsed time.Time
	err := r.conn(ctx).QueryRow(ctx,
		`SELECT last_used_at FROM player_cooldowns WHERE player_id = $1 AND action_name = $2`,
		playerID, action).Scan(&lastUsed)
	if err != nil {
		if database.IsNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", ErrContextGetCooldown, err)
	}
	return &lastUsed, nil
}

// LockAction serializes check-then-set on player+action. The lock is
// released at commit or rollback and needs no row to exist.
func (r *CooldownRepository) LockAction(ctx context.Context, playerID, action string) error {
	if _, err := r.conn(ctx).Exec(ctx, `SELECT pg_advisory_xact_lock($1)`, advisoryKey(playerID, action)); err != nil {
		return fmt.Errorf("%s: %w", ErrContextLockCooldown, err)
	}
	return nil
}

func (r *CooldownRepository) UpsertLastUsed(ctx context.Context, playerID, action string, at time.Time) error {
	if err := checkID(playerID); err != nil {
		return err
	}
	_, err := r.conn(ctx).Exec(ctx, `
INSERT INTO player_cooldowns (player_id, action_name, last_used_at)
VALUES ($1, $2, $3)
ON CONFLICT (player_id, action_name) DO UPDATE SET last_used_at = EXCLUDED.last_used_at`,
		playerID, action, at)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrContextUpsertCooldown, err)
	}
	return nil
}

func (r *CooldownRepository) DeleteCooldown(ctx context.Context, playerID, action string) error {
	if err := checkID(playerID); err != nil {
		return err
	}
	if _, err := r.conn(ctx).Exec(ctx,
		`DELETE FROM player_cooldowns WHERE player_id = $1 AND action_name = $2`, playerID, action); err != nil {
		return fmt.Errorf("%s: %w", ErrContextDeleteCooldown, err)
	}
	return nil
}
