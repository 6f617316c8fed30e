package handler

import (
	"net/http"

	"github.com/osse101/SpinVault_Go/internal/domain"
	"github.com/osse101/SpinVault_Go/internal/logger"
	"github.com/osse101/SpinVault_Go/internal/spin"
)

// SpinRequest is the body of POST /spins. Attempt distinguishes deliberate
// repeat spins on one session; resending the same body replays the result.
type SpinRequest struct {
	PlayerID   string `json:"player_id" validate:"required,uuid"`
	CampaignID string `json:"campaign_id" validate:"required,uuid"`
	SessionID  string `json:"session_id" validate:"required,uuid"`
	Attempt    int    `json:"attempt" validate:"gte=0"`
}

// VerifyResponse reports whether a recorded spin replays to the same outcome
type VerifyResponse struct {
	SpinID   string `json:"spin_id"`
	Verified bool   `json:"verified"`
}

// SpinHandler handles spin requests and the spin audit trail
type SpinHandler struct {
	spinSvc spin.Service
}

// NewSpinHandler creates a new spin handler
func NewSpinHandler(spinSvc spin.Service) *SpinHandler {
	return &SpinHandler{spinSvc: spinSvc}
}

// HandleSpin settles one spin. A replayed request answers 200 with the
// original result; a fresh one answers 201.
func (h *SpinHandler) HandleSpin(w http.ResponseWriter, r *http.Request) {
	var req SpinRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Spin"); err != nil {
		return
	}

	result, err := h.spinSvc.RequestSpin(r.Context(), domain.SpinRequest{
		PlayerID:   req.PlayerID,
		CampaignID: req.CampaignID,
		SessionID:  req.SessionID,
		Attempt:    req.Attempt,
	})
	if err != nil {
		respondServiceError(w, r, "Spin", err)
		return
	}

	logger.FromContext(r.Context()).Info(LogMsgSpinSettled,
		"spin_id", result.SpinID,
		"outcome", result.Outcome,
		"replayed", result.Replayed)

	status := http.StatusCreated
	if result.Replayed {
		status = http.StatusOK
	}
	respondJSON(w, status, result)
}

// HandleGetSpin returns one spin record
func (h *SpinHandler) HandleGetSpin(w http.ResponseWriter, r *http.Request) {
	spinID, ok := pathUUID(w, r, "spinID")
	if !ok {
		return
	}

	record, err := h.spinSvc.GetSpin(r.Context(), spinID)
	if err != nil {
		respondServiceError(w, r, "Get spin", err)
		return
	}
	respondJSON(w, http.StatusOK, record)
}

// HandleVerifySpin replays a recorded spin from its seed and odds snapshot
func (h *SpinHandler) HandleVerifySpin(w http.ResponseWriter, r *http.Request) {
	spinID, ok := pathUUID(w, r, "spinID")
	if !ok {
		return
	}

	verified, err := h.spinSvc.VerifySpin(r.Context(), spinID)
	if err != nil {
		respondServiceError(w, r, "Verify spin", err)
		return
	}
	respondJSON(w, http.StatusOK, VerifyResponse{SpinID: spinID, Verified: verified})
}

// HandleListPlayerSpins lists a player's spins, newest first
func (h *SpinHandler) HandleListPlayerSpins(w http.ResponseWriter, r *http.Request) {
	playerID, ok := pathUUID(w, r, "playerID")
	if !ok {
		return
	}
	limit, offset, ok := parsePaging(w, r)
	if !ok {
		return
	}
	since, ok := parseTimeParam(w, r, "since")
	if !ok {
		return
	}

	records, err := h.spinSvc.ListSpins(r.Context(), domain.SpinFilter{
		PlayerID:   playerID,
		CampaignID: GetOptionalQueryParam(r, "campaign_id", ""),
		Outcome:    domain.Outcome(GetOptionalQueryParam(r, "outcome", "")),
		Since:      since,
		Limit:      limit,
		Offset:     offset,
	})
	if err != nil {
		respondServiceError(w, r, "List spins", err)
		return
	}
	respondJSON(w, http.StatusOK, ListResponse{Data: records, Limit: limit, Offset: offset})
}
