package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/SpinVault_Go/internal/database"
	"github.com/osse101/SpinVault_Go/internal/domain"
)

// SessionRepository implements repository.Session
type SessionRepository struct {
	base
}

// NewSessionRepository creates a new SessionRepository
func NewSessionRepository(db *pgxpool.Pool) *SessionRepository {
	return &SessionRepository{base: newBase(db)}
}

const sessionColumns = `session_id, player_id, business_id, location, scanned_at, replay_hash, tokens_credited, spins_used, expires_at, created_at`

func (r *SessionRepository) CreateSession(ctx context.Context, s *domain.ScanSession) error {
	if err := checkID(s.PlayerID); err != nil {
		return err
	}
	if err := checkID(s.BusinessID); err != nil {
		return err
	}
	err := r.conn(ctx).QueryRow(ctx, `
INSERT INTO scan_sessions (player_id, business_id, location, scanned_at, replay_hash, tokens_credited, spins_used, expires_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
RETURNING session_id, created_at`,
		s.PlayerID, s.BusinessID, s.Location, s.ScannedAt, s.ReplayHash, s.TokensCredited, s.SpinsUsed, s.ExpiresAt,
	).Scan(&s.ID, &s.CreatedAt)
	if err != nil {
		if database.IsUniqueViolation(err, ConstraintReplayUnique) {
			return domain.ErrReplayDetected
		}
		return fmt.Errorf("%s: %w", ErrContextCreateSession, err)
	}
	return nil
}

func (r *SessionRepository) ReplayExists(ctx context.Context, replayHash string) (bool, error) {
	var exists bool
	err := r.conn(ctx).QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM scan_sessions WHERE replay_hash = $1)`, replayHash).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("%s: %w", ErrContextGetSession, err)
	}
	return exists, nil
}

func (r *SessionRepository) GetSession(ctx context.Context, sessionID string) (*domain.ScanSession, error) {
	return r.getSession(ctx, sessionID, "")
}

func (r *SessionRepository) LockSession(ctx context.Context, sessionID string) (*domain.ScanSession, error) {
	return r.getSession(ctx, sessionID, " FOR UPDATE")
}

func (r *SessionRepository) getSession(ctx context.Context, sessionID, suffix string) (*domain.ScanSession, error) {
	if err := checkID(sessionID); err != nil {
		return nil, err
	}
	var s domain.ScanSession
	err := r.conn(ctx).QueryRow(ctx,
		`SELECT `+sessionColumns+` FROM scan_sessions WHERE session_id = $1`+suffix, sessionID,
	).Scan(&s.ID, &s.PlayerID, &s.BusinessID, &s.Location, &s.ScannedAt, &s.ReplayHash,
		&s.TokensCredited, &s.SpinsUsed, &s.ExpiresAt, &s.CreatedAt)
	if err != nil {
		if database.IsNoRows(err) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, fmt.Errorf("%s: %w", ErrContextGetSession, err)
	}
	return &s, nil
}

func (r *SessionRepository) ConsumeSession(ctx context.Context, sessionID string, maxSpins int) (bool, error) {
	if err := checkID(sessionID); err != nil {
		return false, err
	}
	tag, err := r.conn(ctx).Exec(ctx,
		`UPDATE scan_sessions SET spins_used = spins_used + 1 WHERE session_id = $1 AND spins_used < $2`,
		sessionID, maxSpins)
	if err != nil {
		return false, fmt.Errorf("%s: %w", ErrContextConsumeSession, err)
	}
	return tag.RowsAffected() == 1, nil
}

func (r *SessionRepository) DeleteExpiredSessions(ctx context.Context, cutoff time.Time) (int64, error) {
	tag, err := r.conn(ctx).Exec(ctx, `DELETE FROM scan_sessions WHERE expires_at < $1`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", ErrContextDeleteSessions, err)
	}
	return tag.RowsAffected(), nil
}
