// Package scheduler enqueues maintenance jobs onto the worker pool at fixed
// intervals.
package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/osse101/SpinVault_Go/internal/logger"
	"github.com/osse101/SpinVault_Go/internal/worker"
)

// LogMsgJobDropped is logged when a tick finds the worker queue full
const LogMsgJobDropped = "Worker queue full, skipping scheduled job"

type entry struct {
	interval time.Duration
	job      worker.Job
}

// Scheduler manages scheduled jobs
type Scheduler struct {
	workerPool *worker.Pool
	entries    []entry
	quit       chan struct{}
	wg         sync.WaitGroup
	stopOnce   sync.Once
}

// New creates a new scheduler
func New(pool *worker.Pool) *Scheduler {
	return &Scheduler{
		workerPool: pool,
		quit:       make(chan struct{}),
	}
}

// Schedule registers a job to run at a fixed interval. Jobs with a
// non-positive interval are ignored. Call before Start.
func (s *Scheduler) Schedule(interval time.Duration, job worker.Job) {
	if interval <= 0 {
		return
	}
	s.entries = append(s.entries, entry{interval: interval, job: job})
}

// Start launches one ticker per registered job
func (s *Scheduler) Start(ctx context.Context) {
	for _, e := range s.entries {
		s.wg.Add(1)
		go s.run(ctx, e)
	}
}

func (s *Scheduler) run(ctx context.Context, e entry) {
	defer s.wg.Done()
	ticker := time.NewTicker(e.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			// A slow run of the same job may still hold the queue; skip this tick.
			if !s.workerPool.Enqueue(e.job) {
				logger.FromContext(ctx).Warn(LogMsgJobDropped, "job", e.job.Name())
			}
		case <-s.quit:
			return
		case <-ctx.Done():
			return
		}
	}
}

// Stop stops all scheduled jobs
func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() { close(s.quit) })
	s.wg.Wait()
}
