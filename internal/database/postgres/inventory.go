package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/SpinVault_Go/internal/database"
	"github.com/osse101/SpinVault_Go/internal/domain"
)

// InventoryRepository implements repository.Inventory
type InventoryRepository struct {
	base
}

// NewInventoryRepository creates a new InventoryRepository
func NewInventoryRepository(db *pgxpool.Pool) *InventoryRepository {
	return &InventoryRepository{base: newBase(db)}
}

const prizeColumns = `prize_id, campaign_id, name, description, total_quantity, remaining_quantity, win_probability, is_active, sort_order, version`

func scanPrize(row pgx.Row) (domain.Prize, error) {
	var p domain.Prize
	err := row.Scan(&p.ID, &p.CampaignID, &p.Name, &p.Description, &p.TotalQuantity,
		&p.RemainingQuantity, &p.WinProbability, &p.IsActive, &p.SortOrder, &p.Version)
	return p, err
}

func (r *InventoryRepository) ListPrizes(ctx context.Context, campaignID string) ([]domain.Prize, error) {
	if err := checkID(campaignID); err != nil {
		return nil, err
	}
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+prizeColumns+` FROM prizes WHERE campaign_id = $1 ORDER BY sort_order, prize_id`, campaignID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextListPrizes, err)
	}
	prizes, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Prize, error) {
		return scanPrize(row)
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextListPrizes, err)
	}
	return prizes, nil
}

func (r *InventoryRepository) GetPrize(ctx context.Context, prizeID string) (*domain.Prize, error) {
	if err := checkID(prizeID); err != nil {
		return nil, err
	}
	p, err := scanPrize(r.conn(ctx).QueryRow(ctx, `SELECT `+prizeColumns+` FROM prizes WHERE prize_id = $1`, prizeID))
	if err != nil {
		if database.IsNoRows(err) {
			return nil, domain.ErrPrizeNotFound
		}
		return nil, fmt.Errorf("%s: %w", ErrContextGetPrize, err)
	}
	return &p, nil
}

// DecrementPrize is a conditional decrement. The row lock it takes is
// released when the surrounding transaction ends.
func (r *InventoryRepository) DecrementPrize(ctx context.Context, prizeID string) (bool, error) {
	if err := checkID(prizeID); err != nil {
		return false, err
	}
	tag, err := r.conn(ctx).Exec(ctx, `
UPDATE prizes
SET remaining_quantity = remaining_quantity - 1, version = version + 1
WHERE prize_id = $1 AND is_active AND remaining_quantity > 0`, prizeID)
	if err != nil {
		return false, fmt.Errorf("%s: %w", ErrContextDecrementPrize, err)
	}
	return tag.RowsAffected() == 1, nil
}

func (r *InventoryRepository) DecrementLocationStock(ctx context.Context, prizeID, locationID string) (bool, bool, error) {
	if err := checkID(prizeID); err != nil {
		return false, false, err
	}
	conn := r.conn(ctx)
	tag, err := conn.Exec(ctx, `
UPDATE prize_location_stock
SET remaining_quantity = remaining_quantity - 1
WHERE prize_id = $1 AND location_id = $2 AND remaining_quantity > 0`, prizeID, locationID)
	if err != nil {
		return false, false, fmt.Errorf("%s: %w", ErrContextDecrementLocation, err)
	}
	if tag.RowsAffected() == 1 {
		return true, true, nil
	}

	var tracked bool
	err = conn.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM prize_location_stock WHERE prize_id = $1 AND location_id = $2)`,
		prizeID, locationID).Scan(&tracked)
	if err != nil {
		return false, false, fmt.Errorf("%s: %w", ErrContextDecrementLocation, err)
	}
	return tracked, false, nil
}

func (r *InventoryRepository) ListLocationStock(ctx context.Context, prizeID string) ([]domain.LocationStock, error) {
	if err := checkID(prizeID); err != nil {
		return nil, err
	}
	rows, err := r.conn(ctx).Query(ctx, `
SELECT prize_id, location_id, total_quantity, remaining_quantity
FROM prize_location_stock WHERE prize_id = $1 ORDER BY location_id`, prizeID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextListLocationStock, err)
	}
	stock, err := pgx.CollectRows(rows, pgx.RowToStructByPos[domain.LocationStock])
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextListLocationStock, err)
	}
	return stock, nil
}

func (r *InventoryRepository) ListCampaignLocationStock(ctx context.Context, campaignID, locationID string) ([]domain.LocationStock, error) {
	if err := checkID(campaignID); err != nil {
		return nil, err
	}
	rows, err := r.conn(ctx).Query(ctx, `
SELECT s.prize_id, s.location_id, s.total_quantity, s.remaining_quantity
FROM prize_location_stock s
JOIN prizes p ON p.prize_id = s.prize_id
WHERE p.campaign_id = $1 AND s.location_id = $2
ORDER BY s.prize_id`, campaignID, locationID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextListLocationStock, err)
	}
	stock, err := pgx.CollectRows(rows, pgx.RowToStructByPos[domain.LocationStock])
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextListLocationStock, err)
	}
	return stock, nil
}
