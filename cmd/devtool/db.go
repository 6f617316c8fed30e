package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/SpinVault_Go/internal/database"
)

const devtoolMaxConns = 4

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

// dbURL returns DB_URL or builds one from the DB_* variables the app uses
func dbURL() string {
	if url := os.Getenv("DB_URL"); url != "" {
		return url
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		getEnv("DB_USER", "spinvault"),
		getEnv("DB_PASSWORD", "change_this_secure_password"),
		getEnv("DB_HOST", "localhost"),
		getEnv("DB_PORT", "5432"),
		getEnv("DB_NAME", "spinvault"),
	)
}

func connect(ctx context.Context) (*pgxpool.Pool, error) {
	return database.NewPool(ctx, dbURL(), database.PoolOptions{
		MaxConns:        devtoolMaxConns,
		MaxConnIdleTime: time.Minute,
		MaxConnLifetime: 10 * time.Minute,
		ApplicationName: appName + "-devtool",
	})
}
