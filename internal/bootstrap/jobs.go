package bootstrap

import (
	"log/slog"
	"time"

	"github.com/osse101/SpinVault_Go/internal/config"
	"github.com/osse101/SpinVault_Go/internal/event"
	"github.com/osse101/SpinVault_Go/internal/eventlog"
	"github.com/osse101/SpinVault_Go/internal/scheduler"
	"github.com/osse101/SpinVault_Go/internal/worker"
)

// ScheduleJobs registers the periodic maintenance jobs. A zero interval in
// the policy disables the job.
func ScheduleJobs(sched *scheduler.Scheduler, jobs config.JobPolicy, repos *Repositories, svcs *Services, publisher event.Publisher) {
	add := func(interval time.Duration, job worker.Job) {
		if interval <= 0 {
			slog.Info(LogMsgJobDisabled, "job", job.Name())
			return
		}
		sched.Schedule(interval, job)
		slog.Info(LogMsgJobScheduled, "job", job.Name(), "interval", interval)
	}

	add(jobs.SessionCleanupInterval, &worker.SessionCleanupJob{
		Sessions:  svcs.Sessions,
		Publisher: publisher,
	})
	add(jobs.WonPrizeExpiryInterval, &worker.WonPrizeExpiryJob{
		Spins:     repos.Spins,
		Publisher: publisher,
	})
	add(jobs.ReconcileInterval, &worker.LedgerReconcileJob{
		Players:   repos.Players,
		Ledger:    svcs.Ledger,
		Publisher: publisher,
		BatchSize: jobs.ReconcileBatchSize,
	})
	add(jobs.EventLogCleanupInterval, eventlog.NewCleanupJob(svcs.EventLog, jobs.EventLogRetention))
}
