package worker

import (
	"context"
	"fmt"
	"time"

	"github.com/osse101/SpinVault_Go/internal/event"
	"github.com/osse101/SpinVault_Go/internal/ledger"
	"github.com/osse101/SpinVault_Go/internal/logger"
	"github.com/osse101/SpinVault_Go/internal/repository"
	"github.com/osse101/SpinVault_Go/internal/session"
)

// SessionCleanupJob deletes scan sessions that expired more than Grace ago
type SessionCleanupJob struct {
	Sessions  session.Service
	Publisher event.Publisher
	Grace     time.Duration
}

func (j *SessionCleanupJob) Name() string { return JobNameSessionCleanup }

func (j *SessionCleanupJob) Process(ctx context.Context) error {
	n, err := j.Sessions.CleanupExpired(ctx, j.Grace)
	if err != nil {
		return fmt.Errorf(ErrMsgCleanupSessionsFailed, err)
	}
	publishMaintenance(ctx, j.Publisher, event.SessionsExpired, n)
	return nil
}

// WonPrizeExpiryJob marks unredeemed won prizes past their expiry as expired
type WonPrizeExpiryJob struct {
	Spins     repository.Spin
	Publisher event.Publisher
	Now       func() time.Time
}

func (j *WonPrizeExpiryJob) Name() string { return JobNameWonPrizeExpiry }

func (j *WonPrizeExpiryJob) Process(ctx context.Context) error {
	now := time.Now()
	if j.Now != nil {
		now = j.Now()
	}
	n, err := j.Spins.ExpireWonPrizes(ctx, now)
	if err != nil {
		return fmt.Errorf(ErrMsgExpirePrizesFailed, err)
	}
	logger.FromContext(ctx).Info(LogMsgJobCompleted, "job", j.Name(), "records_affected", n)
	publishMaintenance(ctx, j.Publisher, event.WonPrizesExpired, n)
	return nil
}

// LedgerReconcileJob walks every player in ID order and compares the cached
// balance with the ledger sum. Drift is reported, never repaired.
type LedgerReconcileJob struct {
	Players   repository.Player
	Ledger    ledger.Service
	Publisher event.Publisher
	BatchSize int
}

func (j *LedgerReconcileJob) Name() string { return JobNameLedgerSweep }

func (j *LedgerReconcileJob) Process(ctx context.Context) error {
	log := logger.FromContext(ctx)
	log.Info(LogMsgJobStarting, "job", j.Name())

	batch := j.BatchSize
	if batch <= 0 {
		batch = DefaultReconcileBatchSize
	}

	var checked, drifted int64
	after := ""
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		ids, err := j.Players.ListPlayerIDs(ctx, after, batch)
		if err != nil {
			return fmt.Errorf(ErrMsgListPlayersFailed, after, err)
		}
		for _, id := range ids {
			rec, err := j.Ledger.Reconcile(ctx, id)
			if err != nil {
				log.Warn(LogMsgReconcilePlayerErr, "player_id", id, "error", err)
				continue
			}
			checked++
			if rec.Drift() != 0 {
				drifted++
				if j.Publisher != nil {
					j.Publisher.PublishWithRetry(ctx, event.NewLedgerDriftEvent(*rec))
				}
			}
		}
		if len(ids) < batch {
			break
		}
		after = ids[len(ids)-1]
	}

	log.Info(LogMsgJobCompleted, "job", j.Name(), "players_checked", checked, "drifted", drifted)
	return nil
}

func publishMaintenance(ctx context.Context, pub event.Publisher, t event.Type, n int64) {
	if pub == nil || n == 0 {
		return
	}
	pub.PublishWithRetry(ctx, event.NewMaintenanceEvent(t, time.Now().UTC(), n))
}
