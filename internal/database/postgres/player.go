package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/SpinVault_Go/internal/database"
	"github.com/osse101/SpinVault_Go/internal/domain"
)

// PlayerRepository implements repository.Player
type PlayerRepository struct {
	base
}

// NewPlayerRepository creates a new PlayerRepository
func NewPlayerRepository(db *pgxpool.Pool) *PlayerRepository {
	return &PlayerRepository{base: newBase(db)}
}

const playerColumns = `player_id, display_name, token_balance, is_active, version, created_at, updated_at`

func (r *PlayerRepository) GetPlayer(ctx context.Context, playerID string) (*domain.Player, error) {
	return r.getPlayer(ctx, playerID, "", ErrContextGetPlayer)
}

// LockPlayer reads the player row FOR UPDATE
func (r *PlayerRepository) LockPlayer(ctx context.Context, playerID string) (*domain.Player, error) {
	return r.getPlayer(ctx, playerID, " FOR UPDATE", ErrContextLockPlayer)
}

func (r *PlayerRepository) getPlayer(ctx context.Context, playerID, suffix, errCtx string) (*domain.Player, error) {
	if err := checkID(playerID); err != nil {
		return nil, err
	}
	query := `SELECT ` + playerColumns + ` FROM players WHERE player_id = $1` + suffix

	var p domain.Player
	err := r.conn(ctx).QueryRow(ctx, query, playerID).Scan(
		&p.ID, &p.DisplayName, &p.TokenBalance, &p.IsActive, &p.Version, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if database.IsNoRows(err) {
			return nil, domain.ErrPlayerNotFound
		}
		return nil, fmt.Errorf("%s: %w", errCtx, err)
	}
	return &p, nil
}

// ListPlayerIDs pages through players in id order for background sweeps
func (r *PlayerRepository) ListPlayerIDs(ctx context.Context, afterID string, limit int) ([]string, error) {
	qb := psql.Select("player_id").From("players").OrderBy("player_id").Limit(clampLimit(limit))
	if afterID != "" {
		qb = qb.Where("player_id > ?", afterID)
	}
	query, args, err := qb.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextBuildQuery, err)
	}

	rows, err := r.conn(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextListPlayers, err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrContextListPlayers, err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
