package repository

import (
	"context"
	"time"

	"github.com/osse101/SpinVault_Go/internal/domain"
)

// Session defines persistence for scan sessions
type Session interface {
	// CreateSession returns domain.ErrReplayDetected when the replay hash exists
	CreateSession(ctx context.Context, session *domain.ScanSession) error
	// ReplayExists reports whether a session with this replay hash was recorded
	ReplayExists(ctx context.Context, replayHash string) (bool, error)
	GetSession(ctx context.Context, sessionID string) (*domain.ScanSession, error)
	// LockSession reads the session with a row lock held until the
	// surrounding transaction ends
	LockSession(ctx context.Context, sessionID string) (*domain.ScanSession, error)
	// ConsumeSession uses one spin if fewer than maxSpins were used
	ConsumeSession(ctx context.Context, sessionID string, maxSpins int) (bool, error)
	// DeleteExpiredSessions removes sessions that expired before cutoff
	DeleteExpiredSessions(ctx context.Context, cutoff time.Time) (int64, error)
}
