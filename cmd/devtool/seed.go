package main

import (
	"context"
	_ "embed"
	"fmt"
)

//go:embed seeds/demo.sql
var demoSeed string

type SeedCommand struct{}

func (c *SeedCommand) Name() string {
	return "seed"
}

func (c *SeedCommand) Description() string {
	return "Seed a demo business, campaign, prizes and player"
}

func (c *SeedCommand) Run(ctx context.Context, args []string) error {
	pool, err := connect(ctx)
	if err != nil {
		return err
	}
	defer pool.Close()

	PrintInfo("Running demo seed...")
	if _, err := pool.Exec(ctx, demoSeed); err != nil {
		return fmt.Errorf("failed to execute demo seed: %w", err)
	}

	PrintSuccess("Demo seed completed")
	PrintInfo("business 11111111-1111-4111-8111-111111111111, campaign 22222222-2222-4222-8222-222222222222")
	PrintInfo("player 44444444-4444-4444-8444-444444444444 starts with 20 tokens")
	return nil
}
