package repository

import (
	"context"
	"time"

	"github.com/osse101/SpinVault_Go/internal/domain"
)

// Spin defines persistence for spin records and won prizes
type Spin interface {
	GetSpinByIdempotencyKey(ctx context.Context, key string) (*domain.SpinRecord, error)
	// CreateSpinRecord fills in ID (unless preset) and CreatedAt. Returns
	// domain.ErrDuplicateSpin when the idempotency key was already settled.
	CreateSpinRecord(ctx context.Context, record *domain.SpinRecord) error
	GetSpin(ctx context.Context, spinID string) (*domain.SpinRecord, error)
	ListSpins(ctx context.Context, filter domain.SpinFilter) ([]domain.SpinRecord, error)
	CountSpinsSince(ctx context.Context, playerID, campaignID string, since time.Time) (int, error)

	// CreateWonPrize returns domain.ErrRedemptionCodeTaken on a code collision
	CreateWonPrize(ctx context.Context, prize *domain.WonPrize) error
	GetWonPrizeBySpin(ctx context.Context, spinID string) (*domain.WonPrize, error)
	ExpireWonPrizes(ctx context.Context, now time.Time) (int64, error)
}
