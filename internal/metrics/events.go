package metrics

import (
	"context"

	"github.com/osse101/SpinVault_Go/internal/event"
	"github.com/osse101/SpinVault_Go/internal/logger"
)

// EventMetricsCollector subscribes to events and records metrics
type EventMetricsCollector struct{}

// NewEventMetricsCollector creates a new event metrics collector
func NewEventMetricsCollector() *EventMetricsCollector {
	return &EventMetricsCollector{}
}

// Register subscribes to all events
func (e *EventMetricsCollector) Register(bus event.Bus) error {
	eventTypes := []event.Type{
		event.SpinCommitted,
		event.SpinRejected,
		event.PrizeWon,
		event.TokensCredited,
		event.InventoryConflict,
		event.SessionsExpired,
		event.WonPrizesExpired,
		event.LedgerDrift,
	}

	for _, eventType := range eventTypes {
		bus.Subscribe(eventType, e.HandleEvent)
	}

	return nil
}

// HandleEvent processes events and updates metrics
func (e *EventMetricsCollector) HandleEvent(ctx context.Context, evt event.Event) error {
	log := logger.FromContext(ctx)

	// Always increment event counter
	EventsPublished.WithLabelValues(string(evt.Type)).Inc()

	var err error
	switch evt.Type {
	case event.SpinCommitted:
		var p event.SpinCommittedPayloadV1
		if p, err = event.DecodePayload[event.SpinCommittedPayloadV1](evt.Payload); err == nil {
			SpinsCommitted.WithLabelValues(p.Outcome).Inc()
			SpinAttempts.Observe(float64(p.Attempts))
			TokensSpent.Add(float64(p.TokensSpent))
		}

	case event.SpinRejected:
		var p event.SpinRejectedPayloadV1
		if p, err = event.DecodePayload[event.SpinRejectedPayloadV1](evt.Payload); err == nil {
			SpinsRejected.WithLabelValues(p.Reason).Inc()
		}

	case event.PrizeWon:
		var p event.PrizeWonPayloadV1
		if p, err = event.DecodePayload[event.PrizeWonPayloadV1](evt.Payload); err == nil {
			PrizesWon.WithLabelValues(p.PrizeName).Inc()
		}

	case event.TokensCredited:
		var p event.TokensCreditedPayloadV1
		if p, err = event.DecodePayload[event.TokensCreditedPayloadV1](evt.Payload); err == nil {
			TokensEarned.Add(float64(p.Amount))
		}

	case event.InventoryConflict:
		InventoryConflicts.Inc()

	case event.LedgerDrift:
		LedgerDrift.Inc()
	}

	if err != nil {
		log.Debug(LogMsgEventPayloadDecodeFailed, "type", evt.Type, "error", err)
		EventHandlerErrors.WithLabelValues(string(evt.Type)).Inc()
		return nil
	}

	log.Debug(LogMsgMetricsRecorded, "type", evt.Type)
	return nil
}
