// Package ledger is the only writer of token balances. Every balance change
// is an appended ledger entry; the cached balance on the player row moves in
// the same statement.
package ledger

import (
	"context"
	"errors"
	"fmt"

	"github.com/osse101/SpinVault_Go/internal/domain"
	"github.com/osse101/SpinVault_Go/internal/logger"
	"github.com/osse101/SpinVault_Go/internal/repository"
)

// Service defines ledger operations
type Service interface {
	// Credit adds amount to the player's balance. amount must be positive.
	Credit(ctx context.Context, playerID string, amount int64, entryType domain.EntryType, description string, relatedID *string) (*domain.LedgerEntry, error)
	// Debit removes amount from the player's balance, failing with
	// domain.ErrInsufficientBalance rather than going negative.
	Debit(ctx context.Context, playerID string, amount int64, entryType domain.EntryType, description string, relatedID *string) (*domain.LedgerEntry, error)
	Balance(ctx context.Context, playerID string) (int64, error)
	History(ctx context.Context, playerID string, filter domain.LedgerFilter) ([]domain.LedgerEntry, error)
	Reconcile(ctx context.Context, playerID string) (*domain.Reconciliation, error)
}

type service struct {
	repo repository.Ledger
}

// NewService creates a new ledger service
func NewService(repo repository.Ledger) Service {
	return &service{repo: repo}
}

var creditTypes = map[domain.EntryType]bool{
	domain.EntryTypeEarn:       true,
	domain.EntryTypePurchase:   true,
	domain.EntryTypeBonus:      true,
	domain.EntryTypeAdjustment: true,
}

var debitTypes = map[domain.EntryType]bool{
	domain.EntryTypeSpend:      true,
	domain.EntryTypeAdjustment: true,
}

func (s *service) Credit(ctx context.Context, playerID string, amount int64, entryType domain.EntryType, description string, relatedID *string) (*domain.LedgerEntry, error) {
	if amount <= 0 {
		return nil, domain.ErrInvalidAmount
	}
	if !creditTypes[entryType] {
		return nil, fmt.Errorf(ErrMsgInvalidEntryTypeFmt, ErrMsgInvalidEntryType, entryType, domain.ErrInvalidInput)
	}

	entry := &domain.LedgerEntry{
		PlayerID:    playerID,
		Amount:      amount,
		Type:        entryType,
		Description: description,
		RelatedID:   relatedID,
	}
	if err := s.repo.AppendEntry(ctx, entry); err != nil {
		return nil, fmt.Errorf(ErrMsgCreditFailedFmt, amount, err)
	}

	logger.FromContext(ctx).Debug(LogMsgCredited,
		"player_id", playerID, "amount", amount, "type", entryType, "balance", entry.BalanceAfter)
	return entry, nil
}

func (s *service) Debit(ctx context.Context, playerID string, amount int64, entryType domain.EntryType, description string, relatedID *string) (*domain.LedgerEntry, error) {
	if amount <= 0 {
		return nil, domain.ErrInvalidAmount
	}
	if !debitTypes[entryType] {
		return nil, fmt.Errorf(ErrMsgInvalidEntryTypeFmt, ErrMsgInvalidEntryType, entryType, domain.ErrInvalidInput)
	}

	entry := &domain.LedgerEntry{
		PlayerID:    playerID,
		Amount:      -amount,
		Type:        entryType,
		Description: description,
		RelatedID:   relatedID,
	}
	if err := s.repo.AppendEntry(ctx, entry); err != nil {
		if errors.Is(err, domain.ErrInsufficientBalance) {
			logger.FromContext(ctx).Debug(LogMsgDebitRefused, "player_id", playerID, "amount", amount)
		}
		return nil, fmt.Errorf(ErrMsgDebitFailedFmt, amount, err)
	}

	logger.FromContext(ctx).Debug(LogMsgDebited,
		"player_id", playerID, "amount", amount, "type", entryType, "balance", entry.BalanceAfter)
	return entry, nil
}

func (s *service) Balance(ctx context.Context, playerID string) (int64, error) {
	balance, err := s.repo.GetBalance(ctx, playerID)
	if err != nil {
		return 0, fmt.Errorf(ErrMsgGetBalanceFailed, err)
	}
	return balance, nil
}

func (s *service) History(ctx context.Context, playerID string, filter domain.LedgerFilter) ([]domain.LedgerEntry, error) {
	if filter.Type != "" && !filter.Type.IsValid() {
		return nil, fmt.Errorf(ErrMsgInvalidEntryTypeFmt, ErrMsgInvalidEntryType, filter.Type, domain.ErrInvalidInput)
	}
	entries, err := s.repo.ListEntries(ctx, playerID, filter)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgHistoryFailed, err)
	}
	return entries, nil
}

// Reconcile recomputes the balance from the ledger and reports drift
// between it and the cached value. Drift is logged, never repaired here.
func (s *service) Reconcile(ctx context.Context, playerID string) (*domain.Reconciliation, error) {
	rec, err := s.repo.Reconcile(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgReconcileFailed, err)
	}
	if rec.Drift() != 0 {
		logger.FromContext(ctx).Error(LogMsgDriftDetected,
			"player_id", playerID, "cached", rec.CachedBalance, "ledger", rec.LedgerBalance)
	}
	return rec, nil
}
