package domain

import (
	"errors"
	"fmt"
)

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// Player errors
	ErrMsgPlayerNotFound = "player not found"
	ErrMsgPlayerInactive = "player is inactive"

	// Campaign errors
	ErrMsgCampaignNotFound  = "campaign not found"
	ErrMsgCampaignInactive  = "campaign is not active"
	ErrMsgBusinessNotFound  = "business not found"
	ErrMsgPrizeNotFound     = "prize not found"
	ErrMsgSpinNotFound      = "spin not found"
	ErrMsgWonPrizeNotFound  = "won prize not found"

	// Session errors
	ErrMsgSessionNotFound         = "session not found"
	ErrMsgSessionExpired          = "session expired"
	ErrMsgSessionAlreadyConsumed  = "session already consumed"
	ErrMsgSessionMismatch         = "session does not belong to this player or business"
	ErrMsgReplayDetected          = "scan already processed"
	ErrMsgScanTimestampInFuture   = "scan timestamp is in the future"

	// Gate errors
	ErrMsgCooldownActive           = "cooldown active"
	ErrMsgDailySpinLimitReached    = "daily spin limit reached"
	ErrMsgInsufficientTokens       = "insufficient tokens"
	ErrMsgDailySpendLimitExceeded  = "daily spend limit exceeded"
	ErrMsgWeeklySpendLimitExceeded = "weekly spend limit exceeded"
	ErrMsgDailyEarnLimitExceeded   = "daily earn limit exceeded"

	// Ledger and inventory errors
	ErrMsgInsufficientBalance = "insufficient balance"
	ErrMsgInvalidAmount       = "amount must be positive"
	ErrMsgInventoryConflict   = "prize inventory changed during draw"
	ErrMsgRedemptionCodeTaken = "redemption code already issued"
	ErrMsgDuplicateSpin       = "spin already settled for this idempotency key"

	// Database/System errors
	ErrMsgPersistenceFailure = "persistence failure"

	// Input errors
	ErrMsgInvalidInput = "invalid input"
)

// Common domain errors
// These errors should be used consistently across all layers of the application.
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	ErrPlayerNotFound = errors.New(ErrMsgPlayerNotFound)
	ErrPlayerInactive = errors.New(ErrMsgPlayerInactive)

	ErrCampaignNotFound = errors.New(ErrMsgCampaignNotFound)
	ErrCampaignInactive = errors.New(ErrMsgCampaignInactive)
	ErrBusinessNotFound = errors.New(ErrMsgBusinessNotFound)
	ErrPrizeNotFound    = errors.New(ErrMsgPrizeNotFound)
	ErrSpinNotFound     = errors.New(ErrMsgSpinNotFound)
	ErrWonPrizeNotFound = errors.New(ErrMsgWonPrizeNotFound)

	ErrSessionNotFound        = errors.New(ErrMsgSessionNotFound)
	ErrSessionExpired         = errors.New(ErrMsgSessionExpired)
	ErrSessionAlreadyConsumed = errors.New(ErrMsgSessionAlreadyConsumed)
	ErrSessionMismatch        = errors.New(ErrMsgSessionMismatch)
	ErrReplayDetected         = errors.New(ErrMsgReplayDetected)
	ErrScanTimestampInFuture  = errors.New(ErrMsgScanTimestampInFuture)

	ErrCooldownActive           = errors.New(ErrMsgCooldownActive)
	ErrDailySpinLimitReached    = errors.New(ErrMsgDailySpinLimitReached)
	ErrInsufficientTokens       = errors.New(ErrMsgInsufficientTokens)
	ErrDailySpendLimitExceeded  = errors.New(ErrMsgDailySpendLimitExceeded)
	ErrWeeklySpendLimitExceeded = errors.New(ErrMsgWeeklySpendLimitExceeded)
	ErrDailyEarnLimitExceeded   = errors.New(ErrMsgDailyEarnLimitExceeded)

	ErrInsufficientBalance = errors.New(ErrMsgInsufficientBalance)
	ErrInvalidAmount       = errors.New(ErrMsgInvalidAmount)
	ErrInventoryConflict   = errors.New(ErrMsgInventoryConflict)
	ErrRedemptionCodeTaken = errors.New(ErrMsgRedemptionCodeTaken)
	ErrDuplicateSpin       = errors.New(ErrMsgDuplicateSpin)

	ErrPersistenceFailure = errors.New(ErrMsgPersistenceFailure)

	ErrInvalidInput = errors.New(ErrMsgInvalidInput)
)

// RejectReason tags a recoverable business-rule failure. Callers receive it
// alongside the sentinel error so they can branch without string matching.
type RejectReason string

const (
	ReasonCampaignInactive         RejectReason = "campaign_inactive"
	ReasonSessionExpired           RejectReason = "session_expired"
	ReasonSessionAlreadyConsumed   RejectReason = "session_already_consumed"
	ReasonSessionMismatch          RejectReason = "session_mismatch"
	ReasonCooldownActive           RejectReason = "cooldown_active"
	ReasonDailySpinLimitReached    RejectReason = "daily_spin_limit_reached"
	ReasonInsufficientTokens       RejectReason = "insufficient_tokens"
	ReasonDailySpendLimitExceeded  RejectReason = "daily_spend_limit_exceeded"
	ReasonWeeklySpendLimitExceeded RejectReason = "weekly_spend_limit_exceeded"
	ReasonDailyEarnLimitExceeded   RejectReason = "daily_earn_limit_exceeded"
	ReasonReplayDetected           RejectReason = "replay_detected"
)

var reasonErrors = map[RejectReason]error{
	ReasonCampaignInactive:         ErrCampaignInactive,
	ReasonSessionExpired:           ErrSessionExpired,
	ReasonSessionAlreadyConsumed:   ErrSessionAlreadyConsumed,
	ReasonSessionMismatch:          ErrSessionMismatch,
	ReasonCooldownActive:           ErrCooldownActive,
	ReasonDailySpinLimitReached:    ErrDailySpinLimitReached,
	ReasonInsufficientTokens:       ErrInsufficientTokens,
	ReasonDailySpendLimitExceeded:  ErrDailySpendLimitExceeded,
	ReasonWeeklySpendLimitExceeded: ErrWeeklySpendLimitExceeded,
	ReasonDailyEarnLimitExceeded:   ErrDailyEarnLimitExceeded,
	ReasonReplayDetected:           ErrReplayDetected,
}

// Err returns the sentinel error for the reason.
func (r RejectReason) Err() error {
	if err, ok := reasonErrors[r]; ok {
		return err
	}
	return ErrInvalidInput
}

// RejectionError is returned when a request fails a business rule. Nothing was
// mutated when this error is returned.
type RejectionError struct {
	Reason RejectReason
	Detail string
}

// NewRejection builds a RejectionError with an optional detail message.
func NewRejection(reason RejectReason, detail string) *RejectionError {
	return &RejectionError{Reason: reason, Detail: detail}
}

func (e *RejectionError) Error() string {
	if e.Detail == "" {
		return e.Reason.Err().Error()
	}
	return fmt.Sprintf("%s: %s", e.Reason.Err().Error(), e.Detail)
}

// Unwrap lets errors.Is match the reason's sentinel.
func (e *RejectionError) Unwrap() error {
	return e.Reason.Err()
}

// AsRejection extracts the RejectionError from err, if any.
func AsRejection(err error) (*RejectionError, bool) {
	var rej *RejectionError
	if errors.As(err, &rej) {
		return rej, true
	}
	return nil, false
}
