package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
)

func main() {
	// .env is optional
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	registry := NewRegistry(
		&MigrateCommand{},
		&WaitForDBCommand{},
		&SeedCommand{},
		&ReconcileCommand{},
		&HealthCheckCommand{},
	)

	if err := registry.Run(ctx, os.Args[1:]); err != nil {
		if !errors.Is(err, errUsage) {
			PrintError("%v", err)
		}
		stop()
		os.Exit(1)
	}
}
