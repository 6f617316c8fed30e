package sse

import (
	"context"

	"github.com/osse101/SpinVault_Go/internal/event"
	"github.com/osse101/SpinVault_Go/internal/logger"
)

// Subscriber bridges the internal event bus to the SSE hub
type Subscriber struct {
	hub *Hub
}

// NewSubscriber creates a new SSE subscriber
func NewSubscriber(hub *Hub) *Subscriber {
	return &Subscriber{hub: hub}
}

// Subscribe registers feed handlers on bus
func (s *Subscriber) Subscribe(bus event.Bus) {
	bus.Subscribe(event.SpinCommitted, s.handleSpinCommitted)
	bus.Subscribe(event.PrizeWon, s.handlePrizeWon)
	bus.Subscribe(event.TokensCredited, s.handleTokensCredited)
	bus.Subscribe(event.InventoryConflict, s.handleInventoryConflict)

	logger.Info(LogMsgSubscribed, "types", []event.Type{
		event.SpinCommitted,
		event.PrizeWon,
		event.TokensCredited,
		event.InventoryConflict,
	})
}

// A malformed payload is logged and skipped; the feed never fails a publish.

func (s *Subscriber) handleSpinCommitted(ctx context.Context, evt event.Event) error {
	p, err := event.DecodePayload[event.SpinCommittedPayloadV1](evt.Payload)
	if err != nil {
		logger.FromContext(ctx).Warn(LogMsgInvalidPayload, "type", evt.Type, "error", err)
		return nil
	}
	s.hub.Broadcast(EventTypeSpin, p.CampaignID, SpinPayload{
		SpinID:     p.SpinID,
		CampaignID: p.CampaignID,
		Outcome:    p.Outcome,
		PrizeID:    p.PrizeID,
	})
	logger.FromContext(ctx).Debug(LogMsgEventBroadcast, "event_type", EventTypeSpin, "spin_id", p.SpinID)
	return nil
}

func (s *Subscriber) handlePrizeWon(ctx context.Context, evt event.Event) error {
	p, err := event.DecodePayload[event.PrizeWonPayloadV1](evt.Payload)
	if err != nil {
		logger.FromContext(ctx).Warn(LogMsgInvalidPayload, "type", evt.Type, "error", err)
		return nil
	}
	s.hub.Broadcast(EventTypePrize, "", PrizePayload{
		SpinID:    p.SpinID,
		PrizeID:   p.PrizeID,
		PrizeName: p.PrizeName,
	})
	return nil
}

func (s *Subscriber) handleTokensCredited(ctx context.Context, evt event.Event) error {
	p, err := event.DecodePayload[event.TokensCreditedPayloadV1](evt.Payload)
	if err != nil {
		logger.FromContext(ctx).Warn(LogMsgInvalidPayload, "type", evt.Type, "error", err)
		return nil
	}
	s.hub.Broadcast(EventTypeCredit, "", CreditPayload{
		BusinessID: p.BusinessID,
		Amount:     p.Amount,
	})
	return nil
}

func (s *Subscriber) handleInventoryConflict(ctx context.Context, evt event.Event) error {
	p, err := event.DecodePayload[event.InventoryConflictPayloadV1](evt.Payload)
	if err != nil {
		logger.FromContext(ctx).Warn(LogMsgInvalidPayload, "type", evt.Type, "error", err)
		return nil
	}
	s.hub.Broadcast(EventTypeStockOut, p.CampaignID, StockConflictPayload{
		CampaignID: p.CampaignID,
		PrizeID:    p.PrizeID,
		Attempt:    p.Attempt,
	})
	return nil
}
