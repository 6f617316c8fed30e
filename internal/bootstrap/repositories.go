package bootstrap

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/SpinVault_Go/internal/database/postgres"
	"github.com/osse101/SpinVault_Go/internal/eventlog"
	"github.com/osse101/SpinVault_Go/internal/repository"
)

// Repositories holds all repository implementations used by the application.
type Repositories struct {
	Players   repository.Player
	Ledger    repository.Ledger
	Campaigns repository.Campaign
	Inventory repository.Inventory
	Sessions  repository.Session
	Spins     repository.Spin
	Cooldowns repository.Cooldown
	EventLog  eventlog.Repository
}

// InitializeRepositories creates the PostgreSQL repositories. All of them
// join the transaction carried in the request context when there is one.
func InitializeRepositories(dbPool *pgxpool.Pool) *Repositories {
	return &Repositories{
		Players:   postgres.NewPlayerRepository(dbPool),
		Ledger:    postgres.NewLedgerRepository(dbPool),
		Campaigns: postgres.NewCampaignRepository(dbPool),
		Inventory: postgres.NewInventoryRepository(dbPool),
		Sessions:  postgres.NewSessionRepository(dbPool),
		Spins:     postgres.NewSpinRepository(dbPool),
		Cooldowns: postgres.NewCooldownRepository(dbPool),
		EventLog:  postgres.NewEventLogRepository(dbPool),
	}
}
