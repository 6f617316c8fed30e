package repository

import (
	"context"

	"github.com/osse101/SpinVault_Go/internal/domain"
)

// Inventory defines access to prize stock
type Inventory interface {
	// ListPrizes returns every prize of a campaign ordered by sort order, read
	// fresh from the store.
	ListPrizes(ctx context.Context, campaignID string) ([]domain.Prize, error)
	GetPrize(ctx context.Context, prizeID string) (*domain.Prize, error)
	// DecrementPrize removes one unit if the prize is active and has stock.
	// It reports false when no unit was available.
	DecrementPrize(ctx context.Context, prizeID string) (bool, error)
	// DecrementLocationStock removes one unit from a location's share. tracked
	// is false when the prize has no stock split for that location.
	DecrementLocationStock(ctx context.Context, prizeID, locationID string) (tracked bool, ok bool, err error)
	ListLocationStock(ctx context.Context, prizeID string) ([]domain.LocationStock, error)
	// ListCampaignLocationStock returns the location shares of every prize in
	// a campaign held at locationID.
	ListCampaignLocationStock(ctx context.Context, campaignID, locationID string) ([]domain.LocationStock, error)
}
