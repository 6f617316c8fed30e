package repository

import (
	"context"
	"time"

	"github.com/osse101/SpinVault_Go/internal/domain"
)

// Ledger defines persistence for ledger entries and the cached balance
type Ledger interface {
	// AppendEntry inserts entry and moves the player's cached balance by
	// entry.Amount in a single statement. It fills in ID, BalanceAfter and
	// CreatedAt. Returns domain.ErrInsufficientBalance when the balance would
	// go negative and domain.ErrPlayerNotFound for unknown players.
	AppendEntry(ctx context.Context, entry *domain.LedgerEntry) error
	GetBalance(ctx context.Context, playerID string) (int64, error)
	ListEntries(ctx context.Context, playerID string, filter domain.LedgerFilter) ([]domain.LedgerEntry, error)
	// Usage sums earn and spend volume since the given window starts.
	Usage(ctx context.Context, playerID string, dayStart, weekStart time.Time) (domain.LedgerUsage, error)
	Reconcile(ctx context.Context, playerID string) (*domain.Reconciliation, error)
}
