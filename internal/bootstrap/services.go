package bootstrap

import (
	"fmt"
	"log/slog"

	"github.com/osse101/SpinVault_Go/internal/campaign"
	"github.com/osse101/SpinVault_Go/internal/config"
	"github.com/osse101/SpinVault_Go/internal/cooldown"
	"github.com/osse101/SpinVault_Go/internal/draw"
	"github.com/osse101/SpinVault_Go/internal/eligibility"
	"github.com/osse101/SpinVault_Go/internal/event"
	"github.com/osse101/SpinVault_Go/internal/eventlog"
	"github.com/osse101/SpinVault_Go/internal/inventory"
	"github.com/osse101/SpinVault_Go/internal/ledger"
	"github.com/osse101/SpinVault_Go/internal/limits"
	"github.com/osse101/SpinVault_Go/internal/repository"
	"github.com/osse101/SpinVault_Go/internal/session"
	"github.com/osse101/SpinVault_Go/internal/spin"
)

// Services holds the application services built over the repositories.
type Services struct {
	Ledger    ledger.Service
	Inventory inventory.Service
	Campaigns campaign.Service
	Cooldowns cooldown.Service
	Limits    limits.Service
	Sessions  session.Service
	Spins     spin.Service
	EventLog  eventlog.Service
}

// InitializeServices wires every service from the loaded configuration.
// tx is shared so a spin or scan runs as a single unit of work across
// repositories.
func InitializeServices(cfg *config.Config, repos *Repositories, tx repository.TxManager, publisher event.Publisher) (*Services, error) {
	policy := cfg.Spin

	replayKey := []byte(cfg.ReplayHashKey)
	if len(replayKey) > MaxReplayKeyBytes {
		return nil, fmt.Errorf(ErrMsgReplayKeyTooLong, MaxReplayKeyBytes)
	}
	if len(replayKey) == 0 {
		slog.Warn(LogMsgReplayKeyMissing)
	}

	ledgerSvc := ledger.NewService(repos.Ledger)
	inventorySvc := inventory.NewService(repos.Inventory, tx)
	cooldownSvc := cooldown.NewService(repos.Cooldowns, tx, cooldown.Config{
		DevMode:      cfg.DevMode,
		SpinCooldown: policy.SpinCooldown,
		ScanCooldown: policy.ScanCooldown,
	})
	limitsSvc := limits.NewService(repos.Ledger, repos.Spins, limits.Caps{
		DailyEarn:   policy.DailyEarnCap,
		WeeklyEarn:  policy.WeeklyEarnCap,
		DailySpend:  policy.DailySpendCap,
		WeeklySpend: policy.WeeklySpendCap,
	}, policy.Location())

	sessionSvc := session.NewService(session.Deps{
		Players:   repos.Players,
		Campaigns: repos.Campaigns,
		Sessions:  repos.Sessions,
		Ledger:    ledgerSvc,
		Cooldowns: cooldownSvc,
		Limits:    limitsSvc,
		Tx:        tx,
		Publisher: publisher,
	}, session.Config{
		Validity:      policy.SessionValidity,
		MaxSpins:      policy.SessionMaxSpins,
		ClockSkew:     policy.ScanClockSkew,
		TokensPerScan: policy.TokensPerScan,
		ReplayKey:     replayKey,
	})

	spinSvc := spin.NewService(spin.Deps{
		Players:   repos.Players,
		Campaigns: repos.Campaigns,
		Sessions:  repos.Sessions,
		Spins:     repos.Spins,
		Ledger:    ledgerSvc,
		Inventory: inventorySvc,
		Cooldowns: cooldownSvc,
		Loader:    eligibility.NewLoader(repos.Sessions, repos.Campaigns, cooldownSvc, limitsSvc, policy.SessionMaxSpins),
		Gate:      eligibility.NewGate(),
		Engine:    draw.NewEngine(nil),
		Tx:        tx,
		Publisher: publisher,
	}, spin.Config{
		MaxDrawAttempts:          policy.MaxDrawAttempts,
		RetryBaseDelay:           policy.RetryBaseDelay,
		ChargeOnExhaustedRetries: policy.ChargeOnExhaustedRetries,
		RedemptionValidity:       policy.RedemptionValidity,
		SessionMaxSpins:          policy.SessionMaxSpins,
	})

	return &Services{
		Ledger:    ledgerSvc,
		Inventory: inventorySvc,
		Campaigns: campaign.NewService(repos.Campaigns, inventorySvc, policy.CampaignCacheSize, policy.CampaignCacheTTL),
		Cooldowns: cooldownSvc,
		Limits:    limitsSvc,
		Sessions:  sessionSvc,
		Spins:     spinSvc,
		EventLog:  eventlog.NewService(repos.EventLog),
	}, nil
}
