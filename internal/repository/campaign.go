package repository

import (
	"context"
	"time"

	"github.com/osse101/SpinVault_Go/internal/domain"
)

// Campaign defines read access to campaigns and businesses. Campaign rows are
// owned by the campaign management surface.
type Campaign interface {
	GetCampaign(ctx context.Context, campaignID string) (*domain.Campaign, error)
	GetBusiness(ctx context.Context, businessID string) (*domain.Business, error)
	ListLiveCampaigns(ctx context.Context, businessID string, now time.Time) ([]domain.Campaign, error)
}
