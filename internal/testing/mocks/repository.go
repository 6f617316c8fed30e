// Package mocks holds testify mocks of the repository interfaces shared by
// the service packages' unit tests.
package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/osse101/SpinVault_Go/internal/domain"
)

// Player implements repository.Player
type Player struct {
	mock.Mock
}

func (m *Player) GetPlayer(ctx context.Context, playerID string) (*domain.Player, error) {
	args := m.Called(ctx, playerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Player), args.Error(1)
}

func (m *Player) LockPlayer(ctx context.Context, playerID string) (*domain.Player, error) {
	args := m.Called(ctx, playerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Player), args.Error(1)
}

func (m *Player) ListPlayerIDs(ctx context.Context, afterID string, limit int) ([]string, error) {
	args := m.Called(ctx, afterID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// Ledger implements repository.Ledger
type Ledger struct {
	mock.Mock
}

func (m *Ledger) AppendEntry(ctx context.Context, entry *domain.LedgerEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *Ledger) GetBalance(ctx context.Context, playerID string) (int64, error) {
	args := m.Called(ctx, playerID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *Ledger) ListEntries(ctx context.Context, playerID string, filter domain.LedgerFilter) ([]domain.LedgerEntry, error) {
	args := m.Called(ctx, playerID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LedgerEntry), args.Error(1)
}

func (m *Ledger) Usage(ctx context.Context, playerID string, dayStart, weekStart time.Time) (domain.LedgerUsage, error) {
	args := m.Called(ctx, playerID, dayStart, weekStart)
	return args.Get(0).(domain.LedgerUsage), args.Error(1)
}

func (m *Ledger) Reconcile(ctx context.Context, playerID string) (*domain.Reconciliation, error) {
	args := m.Called(ctx, playerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reconciliation), args.Error(1)
}

// Campaign implements repository.Campaign
type Campaign struct {
	mock.Mock
}

func (m *Campaign) GetCampaign(ctx context.Context, campaignID string) (*domain.Campaign, error) {
	args := m.Called(ctx, campaignID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Campaign), args.Error(1)
}

func (m *Campaign) GetBusiness(ctx context.Context, businessID string) (*domain.Business, error) {
	args := m.Called(ctx, businessID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Business), args.Error(1)
}

func (m *Campaign) ListLiveCampaigns(ctx context.Context, businessID string, now time.Time) ([]domain.Campaign, error) {
	args := m.Called(ctx, businessID, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Campaign), args.Error(1)
}

// Inventory implements repository.Inventory
type Inventory struct {
	mock.Mock
}

func (m *Inventory) ListPrizes(ctx context.Context, campaignID string) ([]domain.Prize, error) {
	args := m.Called(ctx, campaignID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Prize), args.Error(1)
}

func (m *Inventory) GetPrize(ctx context.Context, prizeID string) (*domain.Prize, error) {
	args := m.Called(ctx, prizeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Prize), args.Error(1)
}

func (m *Inventory) DecrementPrize(ctx context.Context, prizeID string) (bool, error) {
	args := m.Called(ctx, prizeID)
	return args.Bool(0), args.Error(1)
}

func (m *Inventory) DecrementLocationStock(ctx context.Context, prizeID, locationID string) (bool, bool, error) {
	args := m.Called(ctx, prizeID, locationID)
	return args.Bool(0), args.Bool(1), args.Error(2)
}

func (m *Inventory) ListLocationStock(ctx context.Context, prizeID string) ([]domain.LocationStock, error) {
	args := m.Called(ctx, prizeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LocationStock), args.Error(1)
}

func (m *Inventory) ListCampaignLocationStock(ctx context.Context, campaignID, locationID string) ([]domain.LocationStock, error) {
	args := m.Called(ctx, campaignID, locationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LocationStock), args.Error(1)
}

// Session implements repository.Session
type Session struct {
	mock.Mock
}

func (m *Session) CreateSession(ctx context.Context, session *domain.ScanSession) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

func (m *Session) ReplayExists(ctx context.Context, replayHash string) (bool, error) {
	args := m.Called(ctx, replayHash)
	return args.Bool(0), args.Error(1)
}

func (m *Session) GetSession(ctx context.Context, sessionID string) (*domain.ScanSession, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ScanSession), args.Error(1)
}

func (m *Session) LockSession(ctx context.Context, sessionID string) (*domain.ScanSession, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ScanSession), args.Error(1)
}

func (m *Session) ConsumeSession(ctx context.Context, sessionID string, maxSpins int) (bool, error) {
	args := m.Called(ctx, sessionID, maxSpins)
	return args.Bool(0), args.Error(1)
}

func (m *Session) DeleteExpiredSessions(ctx context.Context, cutoff time.Time) (int64, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).(int64), args.Error(1)
}

// Spin implements repository.Spin
type Spin struct {
	mock.Mock
}

func (m *Spin) GetSpinByIdempotencyKey(ctx context.Context, key string) (*domain.SpinRecord, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SpinRecord), args.Error(1)
}

func (m *Spin) CreateSpinRecord(ctx context.Context, record *domain.SpinRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *Spin) GetSpin(ctx context.Context, spinID string) (*domain.SpinRecord, error) {
	args := m.Called(ctx, spinID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SpinRecord), args.Error(1)
}

func (m *Spin) ListSpins(ctx context.Context, filter domain.SpinFilter) ([]domain.SpinRecord, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SpinRecord), args.Error(1)
}

func (m *Spin) CountSpinsSince(ctx context.Context, playerID, campaignID string, since time.Time) (int, error) {
	args := m.Called(ctx, playerID, campaignID, since)
	return args.Int(0), args.Error(1)
}

func (m *Spin) CreateWonPrize(ctx context.Context, prize *domain.WonPrize) error {
	args := m.Called(ctx, prize)
	return args.Error(0)
}

func (m *Spin) GetWonPrizeBySpin(ctx context.Context, spinID string) (*domain.WonPrize, error) {
	args := m.Called(ctx, spinID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WonPrize), args.Error(1)
}

func (m *Spin) ExpireWonPrizes(ctx context.Context, now time.Time) (int64, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(int64), args.Error(1)
}

// Cooldown implements repository.Cooldown
type Cooldown struct {
	mock.Mock
}

func (m *Cooldown) GetLastUsed(ctx context.Context, playerID, action string) (*time.Time, error) {
	args := m.Called(ctx, playerID, action)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*time.Time), args.Error(1)
}

func (m *Cooldown) LockAction(ctx context.Context, playerID, action string) error {
	args := m.Called(ctx, playerID, action)
	return args.Error(0)
}

func (m *Cooldown) UpsertLastUsed(ctx context.Context, playerID, action string, at time.Time) error {
	args := m.Called(ctx, playerID, action, at)
	return args.Error(0)
}

func (m *Cooldown) DeleteCooldown(ctx context.Context, playerID, action string) error {
	args := m.Called(ctx, playerID, action)
	return args.Error(0)
}
