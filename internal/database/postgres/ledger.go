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

// LedgerRepository implements repository.Ledger
type LedgerRepository struct {
	base
}

// NewLedgerRepository creates a new LedgerRepository
func NewLedgerRepository(db *pgxpool.Pool) *LedgerRepository {
	return &LedgerRepository{base: newBase(db)}
}

// The cached balance moves only when the entry row is written. A
// balance that would go negative matches no row, so nothing is inserted.
const appendEntryQuery = `
WITH upd AS (
	UPDATE players
	SET token_balance = token_balance + $2, version = version + 1, updated_at = NOW()
	WHERE player_id = $1 AND token_balance + $2 >= 0
	RETURNING token_balance
)
INSERT INTO ledger_entries (player_id, amount, entry_type, description, related_id, balance_after)
SELECT $1, $2, $3, $4, $5, token_balance FROM upd
RETURNING entry_id, balance_after, created_at`

func (r *LedgerRepository) AppendEntry(ctx context.Context, entry *domain.LedgerEntry) error {
	if err := checkID(entry.PlayerID); err != nil {
		return err
	}
	if entry.RelatedID != nil {
		if err := checkID(*entry.RelatedID); err != nil {
			return err
		}
	}
	if entry.Amount == 0 {
		return domain.ErrInvalidAmount
	}

	conn := r.conn(ctx)
	err := conn.QueryRow(ctx, appendEntryQuery,
		entry.PlayerID, entry.Amount, string(entry.Type), entry.Description, entry.RelatedID,
	).Scan(&entry.ID, &entry.BalanceAfter, &entry.CreatedAt)
	if err == nil {
		return nil
	}
	if !database.IsNoRows(err) {
		return fmt.Errorf("%s: %w", ErrContextAppendEntry, err)
	}

	var exists bool
	if err := conn.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM players WHERE player_id = $1)`, entry.PlayerID).Scan(&exists); err != nil {
		return fmt.Errorf("%s: %w", ErrContextAppendEntry, err)
	}
	if !exists {
		return domain.ErrPlayerNotFound
	}
	return domain.ErrInsufficientBalance
}

func (r *LedgerRepository) GetBalance(ctx context.Context, playerID string) (int64, error) {
	if err := checkID(playerID); err != nil {
		return 0, err
	}
	var balance int64
	err := r.conn(ctx).QueryRow(ctx, `SELECT token_balance FROM players WHERE player_id = $1`, playerID).Scan(&balance)
	if err != nil {
		if database.IsNoRows(err) {
			return 0, domain.ErrPlayerNotFound
		}
		return 0, fmt.Errorf("%s: %w", ErrContextGetBalance, err)
	}
	return balance, nil
}

func (r *LedgerRepository) ListEntries(ctx context.Context, playerID string, filter domain.LedgerFilter) ([]domain.LedgerEntry, error) {
	if err := checkID(playerID); err != nil {
		return nil, err
	}
	qb := psql.Select("entry_id", "player_id", "amount", "entry_type", "description", "related_id", "balance_after", "created_at").
		From("ledger_entries").
		Where("player_id = ?", playerID).
		OrderBy("created_at DESC", "entry_id DESC").
		Limit(clampLimit(filter.Limit))
	if filter.Type != "" {
		qb = qb.Where("entry_type = ?", string(filter.Type))
	}
	if filter.Since != nil {
		qb = qb.Where("created_at >= ?", *filter.Since)
	}
	if filter.Until != nil {
		qb = qb.Where("created_at < ?", *filter.Until)
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
		return nil, fmt.Errorf("%s: %w", ErrContextListEntries, err)
	}
	entries, err := pgx.CollectRows(rows, scanLedgerEntry)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextListEntries, err)
	}
	return entries, nil
}

func scanLedgerEntry(row pgx.CollectableRow) (domain.LedgerEntry, error) {
	var e domain.LedgerEntry
	var entryType string
	err := row.Scan(&e.ID, &e.PlayerID, &e.Amount, &entryType, &e.Description, &e.RelatedID, &e.BalanceAfter, &e.CreatedAt)
	e.Type = domain.EntryType(entryType)
	return e, err
}

// Usage sums earn entries as positive volume and spend entries as their
// absolute value. dayStart must not be before weekStart.
func (r *LedgerRepository) Usage(ctx context.Context, playerID string, dayStart, weekStart time.Time) (domain.LedgerUsage, error) {
	var u domain.LedgerUsage
	if err := checkID(playerID); err != nil {
		return u, err
	}
	const query = `
SELECT
	COALESCE(SUM(amount) FILTER (WHERE entry_type = 'earn' AND created_at >= $2), 0)::bigint,
	COALESCE(SUM(-amount) FILTER (WHERE entry_type = 'spend' AND created_at >= $2), 0)::bigint,
	COALESCE(SUM(amount) FILTER (WHERE entry_type = 'earn'), 0)::bigint,
	COALESCE(SUM(-amount) FILTER (WHERE entry_type = 'spend'), 0)::bigint
FROM ledger_entries
WHERE player_id = $1 AND created_at >= $3`
	err := r.conn(ctx).QueryRow(ctx, query, playerID, dayStart, weekStart).Scan(
		&u.EarnedToday, &u.SpentToday, &u.EarnedThisWeek, &u.SpentThisWeek,
	)
	if err != nil {
		return u, fmt.Errorf("%s: %w", ErrContextUsage, err)
	}
	return u, nil
}

// Reconcile compares the cached balance with the signed sum of entries
func (r *LedgerRepository) Reconcile(ctx context.Context, playerID string) (*domain.Reconciliation, error) {
	if err := checkID(playerID); err != nil {
		return nil, err
	}
	const query = `
SELECT p.token_balance, COALESCE(SUM(l.amount), 0)::bigint, COUNT(l.entry_id)
FROM players p
LEFT JOIN ledger_entries l ON l.player_id = p.player_id
WHERE p.player_id = $1
GROUP BY p.token_balance`

	rec := domain.Reconciliation{PlayerID: playerID}
	err := r.conn(ctx).QueryRow(ctx, query, playerID).Scan(&rec.CachedBalance, &rec.LedgerBalance, &rec.EntryCount)
	if err != nil {
		if database.IsNoRows(err) {
			return nil, domain.ErrPlayerNotFound
		}
		return nil, fmt.Errorf("%s: %w", ErrContextReconcile, err)
	}
	return &rec, nil
}
