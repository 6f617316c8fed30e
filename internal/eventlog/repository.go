package eventlog

import (
	"context"
	"encoding/json"
	"time"
)

// Entry represents a logged event
type Entry struct {
	ID        int64           `json:"id"`
	EventType string          `json:"event_type"`
	PlayerID  *string         `json:"player_id,omitempty"`
	Payload   json.RawMessage `json:"payload"`
	Metadata  json.RawMessage `json:"metadata,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}

// Filter narrows event log queries. Zero values match everything.
type Filter struct {
	PlayerID  string
	EventType string
	Since     *time.Time
	Until     *time.Time
	Limit     int
	Offset    int
}

// Repository defines the interface for event logging storage
type Repository interface {
	// LogEvent stores an event. metadata may be nil.
	LogEvent(ctx context.Context, eventType string, playerID *string, payload, metadata []byte) error

	// ListEvents returns events newest first
	ListEvents(ctx context.Context, filter Filter) ([]Entry, error)

	// CleanupOldEvents removes events created before cutoff
	CleanupOldEvents(ctx context.Context, cutoff time.Time) (int64, error)
}
