package handler

import (
	"net/http"

	"github.com/osse101/SpinVault_Go/internal/domain"
	"github.com/osse101/SpinVault_Go/internal/ledger"
)

// BalanceResponse is a player's current token balance
type BalanceResponse struct {
	PlayerID string `json:"player_id"`
	Balance  int64  `json:"balance"`
}

// PlayerHandler serves read-only player token data
type PlayerHandler struct {
	ledgerSvc ledger.Service
}

// NewPlayerHandler creates a new player handler
func NewPlayerHandler(ledgerSvc ledger.Service) *PlayerHandler {
	return &PlayerHandler{ledgerSvc: ledgerSvc}
}

// HandleGetBalance returns the cached balance
func (h *PlayerHandler) HandleGetBalance(w http.ResponseWriter, r *http.Request) {
	playerID, ok := pathUUID(w, r, "playerID")
	if !ok {
		return
	}

	balance, err := h.ledgerSvc.Balance(r.Context(), playerID)
	if err != nil {
		respondServiceError(w, r, "Get balance", err)
		return
	}
	respondJSON(w, http.StatusOK, BalanceResponse{PlayerID: playerID, Balance: balance})
}

// HandleGetLedger returns ledger entries, newest first. Supports type, since,
// until, limit and offset query parameters.
func (h *PlayerHandler) HandleGetLedger(w http.ResponseWriter, r *http.Request) {
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
	until, ok := parseTimeParam(w, r, "until")
	if !ok {
		return
	}

	entryType := domain.EntryType(GetOptionalQueryParam(r, "type", ""))
	if entryType != "" && !entryType.IsValid() {
		respondError(w, http.StatusBadRequest, ErrMsgInvalidRequestError)
		return
	}

	entries, err := h.ledgerSvc.History(r.Context(), playerID, domain.LedgerFilter{
		Type:   entryType,
		Since:  since,
		Until:  until,
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		respondServiceError(w, r, "Get ledger", err)
		return
	}
	respondJSON(w, http.StatusOK, ListResponse{Data: entries, Limit: limit, Offset: offset})
}
