package main

import (
	"context"
	"sync/atomic"

	"github.com/osse101/SpinVault_Go/internal/database/postgres"
	"github.com/osse101/SpinVault_Go/internal/event"
	"github.com/osse101/SpinVault_Go/internal/ledger"
	"github.com/osse101/SpinVault_Go/internal/worker"
)

// driftReporter prints drift events instead of publishing them
type driftReporter struct {
	found atomic.Int64
}

func (d *driftReporter) PublishWithRetry(_ context.Context, evt event.Event) {
	if evt.Type != event.LedgerDrift {
		return
	}
	payload, err := event.DecodePayload[event.LedgerDriftPayloadV1](evt.Payload)
	if err != nil {
		return
	}
	d.found.Add(1)
	PrintWarning("player %s: cached %d, ledger %d",
		payload.PlayerID, payload.CachedBalance, payload.LedgerBalance)
}

type ReconcileCommand struct{}

func (c *ReconcileCommand) Name() string {
	return "reconcile"
}

func (c *ReconcileCommand) Description() string {
	return "Compare every cached balance with its ledger sum and report drift"
}

func (c *ReconcileCommand) Run(ctx context.Context, args []string) error {
	pool, err := connect(ctx)
	if err != nil {
		return err
	}
	defer pool.Close()

	PrintHeader("Reconciling balances...")
	reporter := &driftReporter{}
	job := &worker.LedgerReconcileJob{
		Players:   postgres.NewPlayerRepository(pool),
		Ledger:    ledger.NewService(postgres.NewLedgerRepository(pool)),
		Publisher: reporter,
	}
	if err := job.Process(ctx); err != nil {
		return err
	}

	if n := reporter.found.Load(); n > 0 {
		PrintWarning("%d player(s) drifted", n)
		return nil
	}
	PrintSuccess("All balances match the ledger")
	return nil
}
