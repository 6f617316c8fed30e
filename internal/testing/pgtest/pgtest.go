// Package pgtest starts a disposable Postgres for integration tests and seeds
// fixtures directly with SQL.
package pgtest

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/osse101/SpinVault_Go/internal/database"
)

const image = "postgres:15-alpine"

var (
	once      sync.Once
	shared    *pgxpool.Pool
	container *postgres.PostgresContainer
	startErr  error
)

// Pool returns a migrated pool backed by a container shared by the test
// binary, with all tables truncated. The test is skipped in -short mode or
// when Docker is unavailable.
func Pool(t testing.TB) *pgxpool.Pool {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	once.Do(start)
	if startErr != nil {
		t.Skipf("Skipping integration test: database not available: %v", startErr)
	}

	Reset(t, shared)
	return shared
}

// Terminate stops the shared container. Call it from TestMain after m.Run.
func Terminate() {
	if shared != nil {
		shared.Close()
	}
	if container != nil {
		_ = container.Terminate(context.Background())
	}
}

func start() {
	ctx := context.Background()

	// testcontainers panics when Docker is missing
	defer func() {
		if r := recover(); r != nil {
			startErr = fmt.Errorf("recovered from panic starting container: %v", r)
		}
	}()

	c, err := postgres.Run(ctx,
		image,
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	if err != nil {
		startErr = err
		return
	}
	container = c

	connStr, err := c.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		startErr = err
		return
	}

	pool, err := database.NewPool(ctx, connStr, database.PoolOptions{
		MaxConns:        60,
		MaxConnIdleTime: time.Minute,
		MaxConnLifetime: 5 * time.Minute,
	})
	if err != nil {
		startErr = err
		return
	}

	if err := database.Migrate(ctx, pool); err != nil {
		pool.Close()
		startErr = err
		return
	}
	shared = pool
}

// Reset empties every application table.
func Reset(t testing.TB, pool *pgxpool.Pool) {
	t.Helper()
	_, err := pool.Exec(context.Background(), `
		TRUNCATE won_prizes, spin_records, scan_sessions, player_cooldowns,
		         prize_location_stock, prizes, campaigns, businesses,
		         ledger_entries, players, event_log
		RESTART IDENTITY CASCADE`)
	if err != nil {
		t.Fatalf("failed to reset database: %v", err)
	}
}
