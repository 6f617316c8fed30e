// Package inventory owns prize stock. Reads are always fresh; the only write
// is a conditional single-unit decrement.
package inventory

import (
	"context"
	"fmt"

	"github.com/osse101/SpinVault_Go/internal/domain"
	"github.com/osse101/SpinVault_Go/internal/logger"
	"github.com/osse101/SpinVault_Go/internal/repository"
)

const (
	ErrMsgSnapshotFailed  = "failed to read prize snapshot: %w"
	ErrMsgDecrementFailed = "failed to decrement prize %s: %w"
	ErrMsgRemainingFailed = "failed to read remaining stock: %w"

	LogMsgDecrementConflict = "Prize decrement found no stock"
)

// Service defines inventory operations
type Service interface {
	// Snapshot returns the campaign's prizes ordered by sort order. When
	// location is set (in any spelling NormalizeLocation folds together), prizes with a share at that location report the
	// smaller of the prize and location remaining counts.
	Snapshot(ctx context.Context, campaignID, location string) ([]domain.Prize, error)
	// Decrement removes one unit of the prize, and one unit of the location
	// share when the prize is split for that location. It returns
	// domain.ErrInventoryConflict when either has no stock left.
	Decrement(ctx context.Context, prizeID, location string) error
	// Remaining is a read-only display helper
	Remaining(ctx context.Context, prizeID string) (int, error)
}

type service struct {
	repo repository.Inventory
	tx   repository.TxManager
}

// NewService creates a new inventory service
func NewService(repo repository.Inventory, tx repository.TxManager) Service {
	return &service{repo: repo, tx: tx}
}

func (s *service) Snapshot(ctx context.Context, campaignID, location string) ([]domain.Prize, error) {
	location = domain.NormalizeLocation(location)
	prizes, err := s.repo.ListPrizes(ctx, campaignID)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgSnapshotFailed, err)
	}
	if location == "" || len(prizes) == 0 {
		return prizes, nil
	}

	stock, err := s.repo.ListCampaignLocationStock(ctx, campaignID, location)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgSnapshotFailed, err)
	}
	return applyLocationStock(prizes, stock), nil
}

func applyLocationStock(prizes []domain.Prize, stock []domain.LocationStock) []domain.Prize {
	if len(stock) == 0 {
		return prizes
	}
	shares := make(map[string]int, len(stock))
	for _, st := range stock {
		shares[st.PrizeID] = st.RemainingQuantity
	}
	for i := range prizes {
		if share, ok := shares[prizes[i].ID]; ok && share < prizes[i].RemainingQuantity {
			prizes[i].RemainingQuantity = share
		}
	}
	return prizes
}

func (s *service) Decrement(ctx context.Context, prizeID, location string) error {
	location = domain.NormalizeLocation(location)
	return s.tx.Do(ctx, func(ctx context.Context) error {
		if location != "" {
			tracked, ok, err := s.repo.DecrementLocationStock(ctx, prizeID, location)
			if err != nil {
				return fmt.Errorf(ErrMsgDecrementFailed, prizeID, err)
			}
			if tracked && !ok {
				logger.FromContext(ctx).Debug(LogMsgDecrementConflict, "prize_id", prizeID, "location", location)
				return domain.ErrInventoryConflict
			}
		}

		ok, err := s.repo.DecrementPrize(ctx, prizeID)
		if err != nil {
			return fmt.Errorf(ErrMsgDecrementFailed, prizeID, err)
		}
		if !ok {
			logger.FromContext(ctx).Debug(LogMsgDecrementConflict, "prize_id", prizeID)
			return domain.ErrInventoryConflict
		}
		return nil
	})
}

func (s *service) Remaining(ctx context.Context, prizeID string) (int, error) {
	prize, err := s.repo.GetPrize(ctx, prizeID)
	if err != nil {
		return 0, fmt.Errorf(ErrMsgRemainingFailed, err)
	}
	return prize.RemainingQuantity, nil
}
