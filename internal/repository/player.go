package repository

import (
	"context"

	"github.com/osse101/SpinVault_Go/internal/domain"
)

// Player defines persistence for players
type Player interface {
	GetPlayer(ctx context.Context, playerID string) (*domain.Player, error)
	// LockPlayer reads the player with a row lock held until the surrounding
	// transaction ends. Callers lock the player before any prize row.
	LockPlayer(ctx context.Context, playerID string) (*domain.Player, error)
	// ListPlayerIDs pages through player ids in id order, starting after afterID.
	ListPlayerIDs(ctx context.Context, afterID string, limit int) ([]string, error)
}
