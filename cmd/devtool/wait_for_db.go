package main

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-retry"
)

const (
	waitMaxRetries = 30
	waitInterval   = 2 * time.Second
)

type WaitForDBCommand struct{}

func (c *WaitForDBCommand) Name() string {
	return "wait-for-db"
}

func (c *WaitForDBCommand) Description() string {
	return "Wait for database to be ready (with retries)"
}

func (c *WaitForDBCommand) Run(ctx context.Context, args []string) error {
	PrintHeader("Waiting for database...")

	attempt := 0
	backoff := retry.WithMaxRetries(waitMaxRetries, retry.NewConstant(waitInterval))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		attempt++
		pool, err := connect(ctx)
		if err != nil {
			PrintInfo("Database not ready (%d/%d): %v", attempt, waitMaxRetries+1, err)
			return retry.RetryableError(err)
		}
		pool.Close()
		return nil
	})
	if err != nil {
		return fmt.Errorf("database failed to become ready after %d attempts: %w", attempt, err)
	}

	PrintSuccess("Database is ready")
	return nil
}
