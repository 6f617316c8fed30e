package eventlog

import (
	"context"
	"encoding/json"
	"time"

	"github.com/osse101/SpinVault_Go/internal/event"
	"github.com/osse101/SpinVault_Go/internal/logger"
)

// Service records engine events for audit
type Service interface {
	// Subscribe registers the event logger for every engine event type
	Subscribe(bus event.Bus) error

	// ListEvents returns logged events matching filter, newest first
	ListEvents(ctx context.Context, filter Filter) ([]Entry, error)

	// CleanupOldEvents removes events older than retention
	CleanupOldEvents(ctx context.Context, retention time.Duration) (int64, error)
}

type service struct {
	repo Repository
	now  func() time.Time
}

// NewService creates a new event logging service
func NewService(repo Repository) Service {
	return &service{repo: repo, now: time.Now}
}

func (s *service) Subscribe(bus event.Bus) error {
	for _, eventType := range LoggedEventTypes {
		bus.Subscribe(eventType, s.handleEvent)
	}
	return nil
}

type playerRef struct {
	PlayerID string `json:"player_id"`
}

// handleEvent persists evt. Encoding failures are logged and dropped so a bad
// payload never fails the publisher.
func (s *service) handleEvent(ctx context.Context, evt event.Event) error {
	log := logger.FromContext(ctx)

	payload, err := json.Marshal(evt.Payload)
	if err != nil {
		log.Warn(LogMsgFailedToEncodeEvent, LogFieldType, evt.Type, LogFieldError, err)
		return nil
	}

	var metadata []byte
	if evt.Metadata != nil {
		if metadata, err = json.Marshal(evt.Metadata); err != nil {
			log.Warn(LogMsgFailedToEncodeEvent, LogFieldType, evt.Type, LogFieldError, err)
			metadata = nil
		}
	}

	var playerID *string
	var ref playerRef
	if json.Unmarshal(payload, &ref) == nil && ref.PlayerID != "" {
		playerID = &ref.PlayerID
	}

	if err := s.repo.LogEvent(ctx, string(evt.Type), playerID, payload, metadata); err != nil {
		log.Error(LogMsgFailedToLogEvent, LogFieldError, err, LogFieldType, evt.Type)
		return err
	}

	log.Debug(LogMsgEventLogged, LogFieldType, evt.Type, LogFieldPlayerID, ref.PlayerID)
	return nil
}

func (s *service) ListEvents(ctx context.Context, filter Filter) ([]Entry, error) {
	return s.repo.ListEvents(ctx, filter)
}

func (s *service) CleanupOldEvents(ctx context.Context, retention time.Duration) (int64, error) {
	return s.repo.CleanupOldEvents(ctx, s.now().Add(-retention))
}
