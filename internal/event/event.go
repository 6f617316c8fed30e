package event

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/osse101/SpinVault_Go/internal/domain"
)

// Type represents the type of an event
type Type string

// Metadata defines the type for event metadata
type Metadata interface{}

// Event represents a generic event in the system
type Event struct {
	Version  string      `json:"version"` // Event schema version (e.g., "1.0")
	Type     Type        `json:"type"`
	Payload  interface{} `json:"payload"`
	Metadata Metadata    `json:"metadata"`
}

// GetMetadataValue extracts a value from the event metadata safely
func (e Event) GetMetadataValue(key string) interface{} {
	if m, ok := e.Metadata.(map[string]interface{}); ok {
		return m[key]
	}
	return nil
}

// Event types, mirrored from domain so subscribers can use the typed form
const (
	SpinCommitted     Type = domain.EventTypeSpinCommitted
	SpinRejected      Type = domain.EventTypeSpinRejected
	PrizeWon          Type = domain.EventTypePrizeWon
	TokensCredited    Type = domain.EventTypeTokensCredited
	InventoryConflict Type = domain.EventTypeInventoryConflict
	SessionsExpired   Type = domain.EventTypeSessionsExpired
	WonPrizesExpired  Type = domain.EventTypeWonPrizesExpired
	LedgerDrift       Type = domain.EventTypeLedgerDrift
)

// Typed event payloads

// SpinCommittedPayloadV1 is published for every committed spin
type SpinCommittedPayloadV1 struct {
	SpinID      string `json:"spin_id"`
	PlayerID    string `json:"player_id"`
	CampaignID  string `json:"campaign_id"`
	Outcome     string `json:"outcome"`
	PrizeID     string `json:"prize_id,omitempty"`
	TokensSpent int64  `json:"tokens_spent"`
	NewBalance  int64  `json:"new_balance"`
	Attempts    int    `json:"attempts"`
	Timestamp   int64  `json:"timestamp"`
}

// PrizeWonPayloadV1 is published after a winning spin commits
type PrizeWonPayloadV1 struct {
	SpinID         string    `json:"spin_id"`
	PlayerID       string    `json:"player_id"`
	PrizeID        string    `json:"prize_id"`
	PrizeName      string    `json:"prize_name"`
	RedemptionCode string    `json:"redemption_code"`
	ExpiresAt      time.Time `json:"expires_at"`
	Timestamp      int64     `json:"timestamp"`
}

// SpinRejectedPayloadV1 carries the gate's rejection reason
type SpinRejectedPayloadV1 struct {
	PlayerID   string `json:"player_id"`
	CampaignID string `json:"campaign_id"`
	Reason     string `json:"reason"`
	Timestamp  int64  `json:"timestamp"`
}

// TokensCreditedPayloadV1 is published after a scan credit commits
type TokensCreditedPayloadV1 struct {
	PlayerID   string `json:"player_id"`
	BusinessID string `json:"business_id"`
	SessionID  string `json:"session_id"`
	Amount     int64  `json:"amount"`
	NewBalance int64  `json:"new_balance"`
	Timestamp  int64  `json:"timestamp"`
}

// InventoryConflictPayloadV1 is published when a draw lost the race for a prize
type InventoryConflictPayloadV1 struct {
	CampaignID string `json:"campaign_id"`
	PrizeID    string `json:"prize_id"`
	Attempt    int    `json:"attempt"`
	Timestamp  int64  `json:"timestamp"`
}

// MaintenancePayloadV1 reports the result of a background sweep
type MaintenancePayloadV1 struct {
	RecordsAffected int64     `json:"records_affected"`
	RanAt           time.Time `json:"ran_at"`
}

// LedgerDriftPayloadV1 reports a cached balance that disagrees with the ledger
type LedgerDriftPayloadV1 struct {
	PlayerID      string `json:"player_id"`
	CachedBalance int64  `json:"cached_balance"`
	LedgerBalance int64  `json:"ledger_balance"`
	Timestamp     int64  `json:"timestamp"`
}

// Type-safe event constructors

// NewSpinCommittedEvent creates a spin.committed event
func NewSpinCommittedEvent(rec domain.SpinRecord) Event {
	payload := SpinCommittedPayloadV1{
		SpinID:      rec.ID,
		PlayerID:    rec.PlayerID,
		CampaignID:  rec.CampaignID,
		Outcome:     string(rec.Outcome),
		TokensSpent: rec.TokensSpent,
		NewBalance:  rec.BalanceAfter,
		Attempts:    rec.Attempts,
		Timestamp:   rec.CreatedAt.Unix(),
	}
	if rec.PrizeID != nil {
		payload.PrizeID = *rec.PrizeID
	}
	return Event{
		Version: EventSchemaVersion,
		Type:    SpinCommitted,
		Payload: payload,
		Metadata: map[string]interface{}{
			MetadataKeyCampaignID: rec.CampaignID,
		},
	}
}

// NewPrizeWonEvent creates a prize.won event
func NewPrizeWonEvent(won domain.WonPrize) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    PrizeWon,
		Payload: PrizeWonPayloadV1{
			SpinID:         won.SpinID,
			PlayerID:       won.PlayerID,
			PrizeID:        won.PrizeID,
			PrizeName:      won.PrizeName,
			RedemptionCode: won.RedemptionCode,
			ExpiresAt:      won.ExpiresAt,
			Timestamp:      won.CreatedAt.Unix(),
		},
	}
}

// NewSpinRejectedEvent creates a spin.rejected event
func NewSpinRejectedEvent(playerID, campaignID string, reason domain.RejectReason) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    SpinRejected,
		Payload: SpinRejectedPayloadV1{
			PlayerID:   playerID,
			CampaignID: campaignID,
			Reason:     string(reason),
			Timestamp:  time.Now().Unix(),
		},
	}
}

// NewTokensCreditedEvent creates a tokens.credited event
func NewTokensCreditedEvent(session domain.ScanSession, newBalance int64) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    TokensCredited,
		Payload: TokensCreditedPayloadV1{
			PlayerID:   session.PlayerID,
			BusinessID: session.BusinessID,
			SessionID:  session.ID,
			Amount:     session.TokensCredited,
			NewBalance: newBalance,
			Timestamp:  session.CreatedAt.Unix(),
		},
	}
}

// NewInventoryConflictEvent creates an inventory.conflict event
func NewInventoryConflictEvent(campaignID, prizeID string, attempt int) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    InventoryConflict,
		Payload: InventoryConflictPayloadV1{
			CampaignID: campaignID,
			PrizeID:    prizeID,
			Attempt:    attempt,
			Timestamp:  time.Now().Unix(),
		},
	}
}

// NewMaintenanceEvent creates a sweep result event of the given type
func NewMaintenanceEvent(eventType Type, ranAt time.Time, recordsAffected int64) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    eventType,
		Payload: MaintenancePayloadV1{
			RecordsAffected: recordsAffected,
			RanAt:           ranAt,
		},
	}
}

// NewLedgerDriftEvent creates a ledger.drift event
func NewLedgerDriftEvent(rec domain.Reconciliation) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    LedgerDrift,
		Payload: LedgerDriftPayloadV1{
			PlayerID:      rec.PlayerID,
			CachedBalance: rec.CachedBalance,
			LedgerBalance: rec.LedgerBalance,
			Timestamp:     time.Now().Unix(),
		},
	}
}

// Handler is a function that handles an event
type Handler func(ctx context.Context, event Event) error

// Bus defines the interface for an event bus
type Bus interface {
	Publish(ctx context.Context, event Event) error
	Subscribe(eventType Type, handler Handler)
}

// Publisher is what services depend on. Publishing never fails the caller.
type Publisher interface {
	PublishWithRetry(ctx context.Context, event Event)
}

// MemoryBus is an in-memory implementation of the Event Bus
type MemoryBus struct {
	handlers map[Type][]Handler
	mu       sync.RWMutex
}

// NewMemoryBus creates a new MemoryBus
func NewMemoryBus() *MemoryBus {
	return &MemoryBus{
		handlers: make(map[Type][]Handler),
	}
}

// Publish publishes an event to all subscribers
func (b *MemoryBus) Publish(ctx context.Context, event Event) error {
	b.mu.RLock()
	handlers, ok := b.handlers[event.Type]
	b.mu.RUnlock()

	if !ok {
		return nil
	}

	// Handlers run synchronously on the publisher's goroutine
	var errs []error
	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf(LogMsgHandlerErrorFormat, len(errs), event.Type, errs)
	}

	return nil
}

// Subscribe subscribes a handler to an event type
func (b *MemoryBus) Subscribe(eventType Type, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)
}
