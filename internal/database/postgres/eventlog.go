package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/SpinVault_Go/internal/eventlog"
)

// EventLogRepository implements eventlog.Repository
type EventLogRepository struct {
	base
}

// NewEventLogRepository creates a new PostgreSQL event log repository
func NewEventLogRepository(db *pgxpool.Pool) *EventLogRepository {
	return &EventLogRepository{base: newBase(db)}
}

// LogEvent stores an event in the database
func (r *EventLogRepository) LogEvent(ctx context.Context, eventType string, playerID *string, payload, metadata []byte) error {
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO event_log (event_type, player_id, payload, metadata)
		VALUES ($1, $2, $3, $4)
	`, eventType, playerID, payload, metadata)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrContextLogEvent, err)
	}
	return nil
}

// ListEvents retrieves events based on filter criteria
func (r *EventLogRepository) ListEvents(ctx context.Context, filter eventlog.Filter) ([]eventlog.Entry, error) {
	qb := psql.Select("id", "event_type", "player_id", "payload", "metadata", "created_at").
		From("event_log").
		OrderBy("created_at DESC", "id DESC").
		Limit(clampLimit(filter.Limit))
	if filter.PlayerID != "" {
		qb = qb.Where("player_id = ?", filter.PlayerID)
	}
	if filter.EventType != "" {
		qb = qb.Where("event_type = ?", filter.EventType)
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
		return nil, fmt.Errorf("%s: %w", ErrContextListEvents, err)
	}
	entries, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (eventlog.Entry, error) {
		var e eventlog.Entry
		var metadata []byte
		err := row.Scan(&e.ID, &e.EventType, &e.PlayerID, &e.Payload, &metadata, &e.CreatedAt)
		if len(metadata) > 0 {
			e.Metadata = metadata
		}
		return e, err
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextListEvents, err)
	}
	return entries, nil
}

// CleanupOldEvents removes events created before cutoff
func (r *EventLogRepository) CleanupOldEvents(ctx context.Context, cutoff time.Time) (int64, error) {
	result, err := r.conn(ctx).Exec(ctx, `DELETE FROM event_log WHERE created_at < $1`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", ErrContextCleanupEvents, err)
	}
	return result.RowsAffected(), nil
}
