package handler

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/osse101/SpinVault_Go/internal/domain"
	"github.com/osse101/SpinVault_Go/internal/odds"
	"github.com/osse101/SpinVault_Go/internal/session"
)

func mustTime(t *testing.T, s string) time.Time {
	t.Helper()
	ts, err := time.Parse(time.RFC3339, s)
	require.NoError(t, err)
	return ts
}

type mockSpinService struct {
	mock.Mock
}

func (m *mockSpinService) RequestSpin(ctx context.Context, req domain.SpinRequest) (*domain.SpinResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SpinResult), args.Error(1)
}

func (m *mockSpinService) GetSpin(ctx context.Context, spinID string) (*domain.SpinRecord, error) {
	args := m.Called(ctx, spinID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SpinRecord), args.Error(1)
}

func (m *mockSpinService) ListSpins(ctx context.Context, filter domain.SpinFilter) ([]domain.SpinRecord, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SpinRecord), args.Error(1)
}

func (m *mockSpinService) VerifySpin(ctx context.Context, spinID string) (bool, error) {
	args := m.Called(ctx, spinID)
	return args.Bool(0), args.Error(1)
}

type mockSessionService struct {
	mock.Mock
}

func (m *mockSessionService) RequestScanCredit(ctx context.Context, req session.ScanRequest) (*domain.ScanResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ScanResult), args.Error(1)
}

func (m *mockSessionService) Get(ctx context.Context, sessionID string) (*domain.ScanSession, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ScanSession), args.Error(1)
}

func (m *mockSessionService) RemainingSpinsToday(ctx context.Context, playerID, businessID string, now time.Time) (int, error) {
	args := m.Called(ctx, playerID, businessID, now)
	return args.Int(0), args.Error(1)
}

func (m *mockSessionService) CleanupExpired(ctx context.Context, grace time.Duration) (int64, error) {
	args := m.Called(ctx, grace)
	return args.Get(0).(int64), args.Error(1)
}

type mockLedgerService struct {
	mock.Mock
}

func (m *mockLedgerService) Credit(ctx context.Context, playerID string, amount int64, entryType domain.EntryType, description string, relatedID *string) (*domain.LedgerEntry, error) {
	args := m.Called(ctx, playerID, amount, entryType, description, relatedID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerEntry), args.Error(1)
}

func (m *mockLedgerService) Debit(ctx context.Context, playerID string, amount int64, entryType domain.EntryType, description string, relatedID *string) (*domain.LedgerEntry, error) {
	args := m.Called(ctx, playerID, amount, entryType, description, relatedID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerEntry), args.Error(1)
}

func (m *mockLedgerService) Balance(ctx context.Context, playerID string) (int64, error) {
	args := m.Called(ctx, playerID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockLedgerService) History(ctx context.Context, playerID string, filter domain.LedgerFilter) ([]domain.LedgerEntry, error) {
	args := m.Called(ctx, playerID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LedgerEntry), args.Error(1)
}

func (m *mockLedgerService) Reconcile(ctx context.Context, playerID string) (*domain.Reconciliation, error) {
	args := m.Called(ctx, playerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reconciliation), args.Error(1)
}

type mockCampaignService struct {
	mock.Mock
}

func (m *mockCampaignService) GetCampaign(ctx context.Context, campaignID string) (*domain.Campaign, error) {
	args := m.Called(ctx, campaignID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Campaign), args.Error(1)
}

func (m *mockCampaignService) ListLive(ctx context.Context, businessID string) ([]domain.Campaign, error) {
	args := m.Called(ctx, businessID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Campaign), args.Error(1)
}

func (m *mockCampaignService) ListPrizes(ctx context.Context, campaignID string) ([]domain.Prize, error) {
	args := m.Called(ctx, campaignID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Prize), args.Error(1)
}

func (m *mockCampaignService) EffectiveOdds(ctx context.Context, campaignID, location string) (odds.Table, error) {
	args := m.Called(ctx, campaignID, location)
	return args.Get(0).(odds.Table), args.Error(1)
}

func (m *mockCampaignService) Invalidate(campaignID string) {
	m.Called(campaignID)
}
