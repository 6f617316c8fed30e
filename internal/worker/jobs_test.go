package worker

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/osse101/SpinVault_Go/internal/domain"
	"github.com/osse101/SpinVault_Go/internal/event"
	"github.com/osse101/SpinVault_Go/internal/ledger"
	"github.com/osse101/SpinVault_Go/internal/testing/mocks"
)

func TestWonPrizeExpiryJob(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	spins := new(mocks.Spin)
	pub := new(mocks.Publisher)
	spins.On("ExpireWonPrizes", ctx, now).Return(int64(3), nil)

	job := &WonPrizeExpiryJob{Spins: spins, Publisher: pub, Now: func() time.Time { return now }}
	require.NoError(t, job.Process(ctx))

	assert.Equal(t, []event.Type{event.WonPrizesExpired}, pub.Types())
}

func TestWonPrizeExpiryJob_NothingExpiredPublishesNothing(t *testing.T) {
	ctx := context.Background()
	spins := new(mocks.Spin)
	pub := new(mocks.Publisher)
	spins.On("ExpireWonPrizes", ctx, mock.AnythingOfType("time.Time")).Return(int64(0), nil)

	job := &WonPrizeExpiryJob{Spins: spins, Publisher: pub}
	require.NoError(t, job.Process(ctx))
	assert.Empty(t, pub.Types())
}

func TestWonPrizeExpiryJob_Error(t *testing.T) {
	ctx := context.Background()
	spins := new(mocks.Spin)
	spins.On("ExpireWonPrizes", ctx, mock.AnythingOfType("time.Time")).Return(int64(0), errors.New("db down"))

	job := &WonPrizeExpiryJob{Spins: spins}
	assert.Error(t, job.Process(ctx))
}

func TestLedgerReconcileJob_PagesAndReportsDrift(t *testing.T) {
	ctx := context.Background()
	players := new(mocks.Player)
	repo := new(mocks.Ledger)
	pub := new(mocks.Publisher)

	players.On("ListPlayerIDs", ctx, "", 2).Return([]string{"a", "b"}, nil)
	players.On("ListPlayerIDs", ctx, "b", 2).Return([]string{"c"}, nil)
	repo.On("Reconcile", ctx, "a").Return(&domain.Reconciliation{PlayerID: "a", CachedBalance: 5, LedgerBalance: 5}, nil)
	repo.On("Reconcile", ctx, "b").Return(&domain.Reconciliation{PlayerID: "b", CachedBalance: 9, LedgerBalance: 4}, nil)
	repo.On("Reconcile", ctx, "c").Return(nil, errors.New("row vanished"))

	job := &LedgerReconcileJob{Players: players, Ledger: ledger.NewService(repo), Publisher: pub, BatchSize: 2}
	require.NoError(t, job.Process(ctx))

	assert.Equal(t, []event.Type{event.LedgerDrift}, pub.Types())
	players.AssertExpectations(t)
	repo.AssertExpectations(t)
}

func TestLedgerReconcileJob_ListError(t *testing.T) {
	ctx := context.Background()
	players := new(mocks.Player)
	players.On("ListPlayerIDs", ctx, "", DefaultReconcileBatchSize).Return(nil, errors.New("db down"))

	job := &LedgerReconcileJob{Players: players, Ledger: ledger.NewService(new(mocks.Ledger))}
	assert.Error(t, job.Process(ctx))
}

func TestJobNames(t *testing.T) {
	assert.Equal(t, JobNameSessionCleanup, (&SessionCleanupJob{}).Name())
	assert.Equal(t, JobNameWonPrizeExpiry, (&WonPrizeExpiryJob{}).Name())
	assert.Equal(t, JobNameLedgerSweep, (&LedgerReconcileJob{}).Name())
}
