package main

import (
	"context"
	"fmt"

	"github.com/osse101/SpinVault_Go/internal/database"
)

type MigrateCommand struct{}

func (c *MigrateCommand) Name() string {
	return "migrate"
}

func (c *MigrateCommand) Description() string {
	return "Apply or inspect the embedded database migrations (up, status)"
}

func (c *MigrateCommand) Run(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("subcommand required: up, status")
	}

	pool, err := connect(ctx)
	if err != nil {
		return err
	}
	defer pool.Close()

	switch args[0] {
	case "up":
		PrintHeader("Running migrations...")
		if err := database.Migrate(ctx, pool); err != nil {
			return err
		}
		PrintSuccess("Migrations completed successfully")
		return nil
	case "status":
		return database.MigrationStatus(ctx, pool)
	default:
		return fmt.Errorf("unknown subcommand: %s", args[0])
	}
}
