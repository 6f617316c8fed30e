package handler

import (
	"net/http"

	"github.com/osse101/SpinVault_Go/internal/logger"
	"github.com/osse101/SpinVault_Go/internal/sse"
)

// AnnouncementRequest is an operator message pushed to feed clients
type AnnouncementRequest struct {
	CampaignID string `json:"campaign_id" validate:"omitempty,uuid"`
	Message    string `json:"message" validate:"required,max=280"`
}

// FeedHandler serves the live spin feed
type FeedHandler struct {
	hub *sse.Hub
}

// NewFeedHandler creates a new FeedHandler
func NewFeedHandler(hub *sse.Hub) *FeedHandler {
	return &FeedHandler{hub: hub}
}

// HandleStream streams feed events as server-sent events
// GET /api/v1/feed
func (h *FeedHandler) HandleStream(w http.ResponseWriter, r *http.Request) {
	sse.Handler(h.hub)(w, r)
}

// HandleAnnounce broadcasts an operator announcement
// POST /api/v1/admin/feed/announce
func (h *FeedHandler) HandleAnnounce(w http.ResponseWriter, r *http.Request) {
	var req AnnouncementRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Announce"); err != nil {
		return
	}

	h.hub.Broadcast(sse.EventTypeAnnouncement, req.CampaignID, sse.AnnouncementPayload{Message: req.Message})
	logger.FromContext(r.Context()).Info(LogMsgAnnouncementSent, "campaign_id", req.CampaignID)

	respondJSON(w, http.StatusAccepted, map[string]string{"type": sse.EventTypeAnnouncement})
}
