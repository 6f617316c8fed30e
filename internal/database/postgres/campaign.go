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

// CampaignRepository implements repository.Campaign
type CampaignRepository struct {
	base
}

// NewCampaignRepository creates a new CampaignRepository
func NewCampaignRepository(db *pgxpool.Pool) *CampaignRepository {
	return &CampaignRepository{base: newBase(db)}
}

const campaignColumns = `campaign_id, business_id, name, token_cost, max_spins_per_day, starts_at, ends_at, is_active, targeting, created_at`

func scanCampaign(row pgx.Row) (domain.Campaign, error) {
	var c domain.Campaign
	err := row.Scan(&c.ID, &c.BusinessID, &c.Name, &c.TokenCost, &c.MaxSpinsPerDay,
		&c.StartsAt, &c.EndsAt, &c.IsActive, &c.Targeting, &c.CreatedAt)
	return c, err
}

func (r *CampaignRepository) GetCampaign(ctx context.Context, campaignID string) (*domain.Campaign, error) {
	if err := checkID(campaignID); err != nil {
		return nil, err
	}
	row := r.conn(ctx).QueryRow(ctx, `SELECT `+campaignColumns+` FROM campaigns WHERE campaign_id = $1`, campaignID)
	c, err := scanCampaign(row)
	if err != nil {
		if database.IsNoRows(err) {
			return nil, domain.ErrCampaignNotFound
		}
		return nil, fmt.Errorf("%s: %w", ErrContextGetCampaign, err)
	}
	return &c, nil
}

func (r *CampaignRepository) GetBusiness(ctx context.Context, businessID string) (*domain.Business, error) {
	if err := checkID(businessID); err != nil {
		return nil, err
	}
	var b domain.Business
	err := r.conn(ctx).QueryRow(ctx,
		`SELECT business_id, name, cooldown_seconds, is_active, created_at FROM businesses WHERE business_id = $1`,
		businessID,
	).Scan(&b.ID, &b.Name, &b.CooldownSeconds, &b.IsActive, &b.CreatedAt)
	if err != nil {
		if database.IsNoRows(err) {
			return nil, domain.ErrBusinessNotFound
		}
		return nil, fmt.Errorf("%s: %w", ErrContextGetBusiness, err)
	}
	return &b, nil
}

// ListLiveCampaigns returns the business's active campaigns whose window
// contains now, oldest first.
func (r *CampaignRepository) ListLiveCampaigns(ctx context.Context, businessID string, now time.Time) ([]domain.Campaign, error) {
	if err := checkID(businessID); err != nil {
		return nil, err
	}
	rows, err := r.conn(ctx).Query(ctx, `
SELECT `+campaignColumns+`
FROM campaigns
WHERE business_id = $1 AND is_active AND starts_at <= $2 AND ends_at > $2
ORDER BY starts_at, campaign_id`, businessID, now)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextListCampaigns, err)
	}
	campaigns, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Campaign, error) {
		return scanCampaign(row)
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextListCampaigns, err)
	}
	return campaigns, nil
}
