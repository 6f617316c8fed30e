package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/SpinVault_Go/internal/database"
	"github.com/osse101/SpinVault_Go/internal/domain"
)

// SpinRepository implements repository.Spin
type SpinRepository struct {
	base
}

// NewSpinRepository creates a new SpinRepository
func NewSpinRepository(db *pgxpool.Pool) *SpinRepository {
	return &SpinRepository{base: newBase(db)}
}

var spinColumns = []string{
	"spin_id", "player_id", "campaign_id", "session_id", "idempotency_key", "outcome", "prize_id",
	"tokens_spent", "balance_after", "seed", "draw_value", "odds_snapshot", "attempts", "created_at",
}

func scanSpin(row pgx.Row) (domain.SpinRecord, error) {
	var s domain.SpinRecord
	var outcome string
	err := row.Scan(&s.ID, &s.PlayerID, &s.CampaignID, &s.SessionID, &s.IdempotencyKey, &outcome, &s.PrizeID,
		&s.TokensSpent, &s.BalanceAfter, &s.Seed, &s.DrawValue, &s.OddsSnapshot, &s.Attempts, &s.CreatedAt)
	s.Outcome = domain.Outcome(outcome)
	return s, err
}

func (r *SpinRepository) getSpinWhere(ctx context.Context, column, value string) (*domain.SpinRecord, error) {
	query, args, err := psql.Select(spinColumns...).From("spin_records").Where(column+" = ?", value).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextBuildQuery, err)
	}
	s, err := scanSpin(r.conn(ctx).QueryRow(ctx, query, args...))
	if err != nil {
		if database.IsNoRows(err) {
			return nil, domain.ErrSpinNotFound
		}
		return nil, fmt.Errorf("%s: %w", ErrContextGetSpin, err)
	}
	return &s, nil
}

// GetSpinByIdempotencyKey returns domain.ErrSpinNotFound when no spin was
// settled under key.
func (r *SpinRepository) GetSpinByIdempotencyKey(ctx context.Context, key string) (*domain.SpinRecord, error) {
	return r.getSpinWhere(ctx, "idempotency_key", key)
}

func (r *SpinRepository) GetSpin(ctx context.Context, spinID string) (*domain.SpinRecord, error) {
	if err := checkID(spinID); err != nil {
		return nil, err
	}
	return r.getSpinWhere(ctx, "spin_id", spinID)
}

func (r *SpinRepository) CreateSpinRecord(ctx context.Context, s *domain.SpinRecord) error {
	// The id may be assigned up front so ledger entries can reference it
	if s.ID == "" {
		s.ID = newID()
	}
	err := r.conn(ctx).QueryRow(ctx, `
INSERT INTO spin_records (spin_id, player_id, campaign_id, session_id, idempotency_key, outcome, prize_id,
	tokens_spent, balance_after, seed, draw_value, odds_snapshot, attempts)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
RETURNING created_at`,
		s.ID, s.PlayerID, s.CampaignID, s.SessionID, s.IdempotencyKey, string(s.Outcome), s.PrizeID,
		s.TokensSpent, s.BalanceAfter, s.Seed, s.DrawValue, s.OddsSnapshot, s.Attempts,
	).Scan(&s.CreatedAt)
	if err != nil {
		if database.IsUniqueViolation(err, ConstraintIdempotencyUnique) {
			return domain.ErrDuplicateSpin
		}
		return fmt.Errorf("%s: %w", ErrContextCreateSpin, err)
	}
	return nil
}

func (r *SpinRepository) ListSpins(ctx context.Context, filter domain.SpinFilter) ([]domain.SpinRecord, error) {
	qb := psql.Select(spinColumns...).From("spin_records").
		OrderBy("created_at DESC", "spin_id DESC").
		Limit(clampLimit(filter.Limit))
	if filter.PlayerID != "" {
		qb = qb.Where("player_id = ?", filter.PlayerID)
	}
	if filter.CampaignID != "" {
		qb = qb.Where("campaign_id = ?", filter.CampaignID)
	}
	if filter.Outcome != "" {
		qb = qb.Where("outcome = ?", string(filter.Outcome))
	}
	if filter.Since != nil {
		qb = qb.Where("created_at >= ?", *filter.Since)
	}
	if filter.Offset > 0 {
		qb = qb.Offset(uint64(filter.Offset))
	}
	query, args, err := qb.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextBuildQuery, err)
	}

	rows, err := r.conn(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextListSpins, err)
	}
	spins, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.SpinRecord, error) {
		return scanSpin(row)
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextListSpins, err)
	}
	return spins, nil
}

func (r *SpinRepository) CountSpinsSince(ctx context.Context, playerID, campaignID string, since time.Time) (int, error) {
	var n int
	err := r.conn(ctx).QueryRow(ctx,
		`SELECT COUNT(*) FROM spin_records WHERE player_id = $1 AND campaign_id = $2 AND created_at >= $3`,
		playerID, campaignID, since).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", ErrContextCountSpins, err)
	}
	return n, nil
}

func (r *SpinRepository) CreateWonPrize(ctx context.Context, w *domain.WonPrize) error {
	if w.Status == "" {
		w.Status = domain.WonPrizeStatusPending
	}
	err := r.conn(ctx).QueryRow(ctx, `
INSERT INTO won_prizes (player_id, prize_id, spin_id, prize_name, location_id, redemption_code, status, expires_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
RETURNING won_prize_id, created_at`,
		w.PlayerID, w.PrizeID, w.SpinID, w.PrizeName, w.LocationID, w.RedemptionCode, string(w.Status), w.ExpiresAt,
	).Scan(&w.ID, &w.CreatedAt)
	if err != nil {
		if database.IsUniqueViolation(err, ConstraintRedemptionUnique) {
			return domain.ErrRedemptionCodeTaken
		}
		return fmt.Errorf("%s: %w", ErrContextCreateWonPrize, err)
	}
	return nil
}

func (r *SpinRepository) GetWonPrizeBySpin(ctx context.Context, spinID string) (*domain.WonPrize, error) {
	if err := checkID(spinID); err != nil {
		return nil, err
	}
	var w domain.WonPrize
	var status string
	err := r.conn(ctx).QueryRow(ctx, `
SELECT won_prize_id, player_id, prize_id, spin_id, prize_name, location_id, redemption_code, status, expires_at, created_at
FROM won_prizes WHERE spin_id = $1`, spinID,
	).Scan(&w.ID, &w.PlayerID, &w.PrizeID, &w.SpinID, &w.PrizeName, &w.LocationID, &w.RedemptionCode, &status, &w.ExpiresAt, &w.CreatedAt)
	if err != nil {
		if database.IsNoRows(err) {
			return nil, domain.ErrWonPrizeNotFound
		}
		return nil, fmt.Errorf("%s: %w", ErrContextGetWonPrize, err)
	}
	w.Status = domain.WonPrizeStatus(status)
	return &w, nil
}

// ExpireWonPrizes flips pending prizes past their expiry to expired
func (r *SpinRepository) ExpireWonPrizes(ctx context.Context, now time.Time) (int64, error) {
	tag, err := r.conn(ctx).Exec(ctx,
		`UPDATE won_prizes SET status = 'expired' WHERE status = 'pending' AND expires_at <= $1`, now)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", ErrContextExpireWonPrizes, err)
	}
	return tag.RowsAffected(), nil
}
