package mocks

import "github.com/osse101/SpinVault_Go/internal/repository"

var (
	_ repository.Player    = (*Player)(nil)
	_ repository.Ledger    = (*Ledger)(nil)
	_ repository.Campaign  = (*Campaign)(nil)
	_ repository.Inventory = (*Inventory)(nil)
	_ repository.Session   = (*Session)(nil)
	_ repository.Spin      = (*Spin)(nil)
	_ repository.Cooldown  = (*Cooldown)(nil)
)
