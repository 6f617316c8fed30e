package handler

import (
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"github.com/osse101/SpinVault_Go/internal/eventlog"
)

// EventLogHandler serves the persisted engine event audit trail
type EventLogHandler struct {
	eventSvc eventlog.Service
}

// NewEventLogHandler creates a new event log handler
func NewEventLogHandler(eventSvc eventlog.Service) *EventLogHandler {
	return &EventLogHandler{eventSvc: eventSvc}
}

// HandleListPlayerEvents returns a player's logged events, newest first.
// Supports type, since, until, limit and offset query parameters.
func (h *EventLogHandler) HandleListPlayerEvents(w http.ResponseWriter, r *http.Request) {
	playerID, ok := pathUUID(w, r, "playerID")
	if !ok {
		return
	}
	h.listEvents(w, r, playerID)
}

// HandleListEvents is the admin query over every logged event. An optional
// player_id narrows it to one player.
func (h *EventLogHandler) HandleListEvents(w http.ResponseWriter, r *http.Request) {
	playerID := GetOptionalQueryParam(r, "player_id", "")
	if playerID != "" {
		if _, err := uuid.Parse(playerID); err != nil {
			respondError(w, http.StatusBadRequest, fmt.Sprintf(ErrMsgInvalidPathID, "player_id"))
			return
		}
	}
	h.listEvents(w, r, playerID)
}

func (h *EventLogHandler) listEvents(w http.ResponseWriter, r *http.Request, playerID string) {
	limit, offset, ok := parsePaging(w, r)
	if !ok {
		return
	}
	since, ok := parseTimeParam(w, r, "since")
	if !ok {
		return
	}
	until, ok := parseTimeParam(w, r, "until")
	if !ok {
		return
	}

	entries, err := h.eventSvc.ListEvents(r.Context(), eventlog.Filter{
		PlayerID:  playerID,
		EventType: GetOptionalQueryParam(r, "type", ""),
		Since:     since,
		Until:     until,
		Limit:     limit,
		Offset:    offset,
	})
	if err != nil {
		respondServiceError(w, r, "List events", err)
		return
	}
	respondJSON(w, http.StatusOK, ListResponse{Data: entries, Limit: limit, Offset: offset})
}
