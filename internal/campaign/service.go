// Package campaign is the read model for campaign display surfaces. Spins
// never read through it; the coordinator loads campaign rows inside its own
// transaction.
package campaign

import (
	"context"
	"fmt"
	"time"

	"github.com/osse101/SpinVault_Go/internal/domain"
	"github.com/osse101/SpinVault_Go/internal/inventory"
	"github.com/osse101/SpinVault_Go/internal/odds"
	"github.com/osse101/SpinVault_Go/internal/repository"
)

const (
	ErrMsgGetCampaignFailed = "failed to get campaign: %w"
	ErrMsgListPrizesFailed  = "failed to list prizes: %w"
	ErrMsgListLiveFailed    = "failed to list live campaigns: %w"
)

// Service defines campaign read operations
type Service interface {
	GetCampaign(ctx context.Context, campaignID string) (*domain.Campaign, error)
	ListLive(ctx context.Context, businessID string) ([]domain.Campaign, error)
	// ListPrizes returns prizes with live remaining counts
	ListPrizes(ctx context.Context, campaignID string) ([]domain.Prize, error)
	// EffectiveOdds is the table a spin would draw against right now
	EffectiveOdds(ctx context.Context, campaignID, location string) (odds.Table, error)
	Invalidate(campaignID string)
}

type service struct {
	repo      repository.Campaign
	inventory inventory.Service
	cache     *campaignCache
}

// NewService creates a campaign read service caching up to size campaigns for ttl
func NewService(repo repository.Campaign, inv inventory.Service, size int, ttl time.Duration) Service {
	return &service{
		repo:      repo,
		inventory: inv,
		cache:     newCampaignCache(size, ttl),
	}
}

func (s *service) GetCampaign(ctx context.Context, campaignID string) (*domain.Campaign, error) {
	if c, ok := s.cache.Get(campaignID); ok {
		return c, nil
	}
	c, err := s.repo.GetCampaign(ctx, campaignID)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgGetCampaignFailed, err)
	}
	s.cache.Set(c)
	return c, nil
}

func (s *service) ListLive(ctx context.Context, businessID string) ([]domain.Campaign, error) {
	campaigns, err := s.repo.ListLiveCampaigns(ctx, businessID, time.Now())
	if err != nil {
		return nil, fmt.Errorf(ErrMsgListLiveFailed, err)
	}
	return campaigns, nil
}

func (s *service) ListPrizes(ctx context.Context, campaignID string) ([]domain.Prize, error) {
	if _, err := s.GetCampaign(ctx, campaignID); err != nil {
		return nil, err
	}
	prizes, err := s.inventory.Snapshot(ctx, campaignID, "")
	if err != nil {
		return nil, fmt.Errorf(ErrMsgListPrizesFailed, err)
	}
	return prizes, nil
}

func (s *service) EffectiveOdds(ctx context.Context, campaignID, location string) (odds.Table, error) {
	if _, err := s.GetCampaign(ctx, campaignID); err != nil {
		return odds.Table{}, err
	}
	prizes, err := s.inventory.Snapshot(ctx, campaignID, location)
	if err != nil {
		return odds.Table{}, fmt.Errorf(ErrMsgListPrizesFailed, err)
	}
	return odds.Calculate(prizes), nil
}

func (s *service) Invalidate(campaignID string) {
	s.cache.Invalidate(campaignID)
}
