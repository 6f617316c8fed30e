package bootstrap

import (
	"fmt"
	"log/slog"

	"github.com/osse101/SpinVault_Go/internal/event"
	"github.com/osse101/SpinVault_Go/internal/eventlog"
	"github.com/osse101/SpinVault_Go/internal/metrics"
	"github.com/osse101/SpinVault_Go/internal/sse"
)

// EventHandlerDependencies holds the dependencies needed for event handler registration.
type EventHandlerDependencies struct {
	EventBus        event.Bus
	EventLogService eventlog.Service
	FeedHub         *sse.Hub
}

// RegisterEventHandlers subscribes the metrics collector, the audit
// event logger and the live feed to the bus.
func RegisterEventHandlers(deps EventHandlerDependencies) error {
	metricsCollector := metrics.NewEventMetricsCollector()
	if err := metricsCollector.Register(deps.EventBus); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedRegisterMetrics, err)
	}
	slog.Info(LogMsgMetricsCollectorRegistered)

	if deps.EventLogService != nil {
		if err := deps.EventLogService.Subscribe(deps.EventBus); err != nil {
			return fmt.Errorf("%s: %w", ErrMsgFailedSubscribeEventLog, err)
		}
		slog.Info(LogMsgEventLogSubscribed)
	}

	if deps.FeedHub != nil {
		sse.NewSubscriber(deps.FeedHub).Subscribe(deps.EventBus)
		slog.Info(LogMsgFeedSubscribed)
	}

	return nil
}
