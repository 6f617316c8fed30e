package handler

import (
	"net/http"
	"time"

	"github.com/osse101/SpinVault_Go/internal/logger"
	"github.com/osse101/SpinVault_Go/internal/session"
)

// ScanRequest is the body of POST /scans
type ScanRequest struct {
	PlayerID   string     `json:"player_id" validate:"required,uuid"`
	BusinessID string     `json:"business_id" validate:"required,uuid"`
	Location   string     `json:"location" validate:"required,max=100,location"`
	Timestamp  *time.Time `json:"timestamp" validate:"required"`
}

// RemainingSpinsResponse is the answer to the remaining spins query
type RemainingSpinsResponse struct {
	PlayerID            string `json:"player_id"`
	BusinessID          string `json:"business_id"`
	RemainingSpinsToday int    `json:"remaining_spins_today"`
}

// ScanHandler handles QR scan credits
type ScanHandler struct {
	sessionSvc session.Service
}

// NewScanHandler creates a new scan handler
func NewScanHandler(sessionSvc session.Service) *ScanHandler {
	return &ScanHandler{sessionSvc: sessionSvc}
}

// HandleScan credits tokens for a scan and opens a spin session
func (h *ScanHandler) HandleScan(w http.ResponseWriter, r *http.Request) {
	var req ScanRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Scan"); err != nil {
		return
	}

	result, err := h.sessionSvc.RequestScanCredit(r.Context(), session.ScanRequest{
		PlayerID:   req.PlayerID,
		BusinessID: req.BusinessID,
		Location:   req.Location,
		ScannedAt:  *req.Timestamp,
	})
	if err != nil {
		respondServiceError(w, r, "Scan", err)
		return
	}

	logger.FromContext(r.Context()).Info(LogMsgScanCredited,
		"session_id", result.SessionID,
		"tokens", result.TokensEarned)
	respondJSON(w, http.StatusCreated, result)
}

// HandleRemainingSpins reports how many spins a player has left today at a business
func (h *ScanHandler) HandleRemainingSpins(w http.ResponseWriter, r *http.Request) {
	playerID, ok := pathUUID(w, r, "playerID")
	if !ok {
		return
	}
	businessID, ok := GetQueryParam(r, w, "business_id")
	if !ok {
		return
	}

	remaining, err := h.sessionSvc.RemainingSpinsToday(r.Context(), playerID, businessID, time.Now())
	if err != nil {
		respondServiceError(w, r, "Remaining spins", err)
		return
	}
	respondJSON(w, http.StatusOK, RemainingSpinsResponse{
		PlayerID:            playerID,
		BusinessID:          businessID,
		RemainingSpinsToday: remaining,
	})
}
