package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/osse101/SpinVault_Go/internal/domain"
	"github.com/osse101/SpinVault_Go/internal/logger"
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// RejectionResponse is returned when a request fails a business rule.
// Reason is a stable machine-readable tag.
type RejectionResponse struct {
	Error  string              `json:"error"`
	Reason domain.RejectReason `json:"reason"`
	Detail string              `json:"detail,omitempty"`
}

// ListResponse wraps paged list payloads
type ListResponse struct {
	Data   interface{} `json:"data"`
	Limit  int         `json:"limit"`
	Offset int         `json:"offset"`
}

// respondJSON sends a JSON response with the given status code and payload
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	buf, err := encodeResponse(payload)
	if err != nil {
		slog.Error(LogMsgEncodeFailed, "error", err)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"` + ErrMsgGenericServerError + `"}` + "\n"))
		return
	}
	defer responseBuffers.put(buf)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		slog.Error(LogMsgWriteFailed, "error", err)
	}
}

// respondError sends a JSON error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

// User-facing error messages for service errors
const (
	ErrMsgGenericServerError  = "Something went wrong"
	ErrMsgInvalidRequestError = "Invalid request. Please check your inputs."
	ErrMsgUnavailableError    = "Server is temporarily unavailable. Please try again later."

	ErrMsgPlayerNotFoundError   = "Player not found"
	ErrMsgPlayerInactiveError   = "Player account is inactive"
	ErrMsgCampaignNotFoundError = "Campaign not found"
	ErrMsgBusinessNotFoundError = "Business not found"
	ErrMsgSpinNotFoundError     = "Spin not found"
	ErrMsgSessionNotFoundError  = "Scan session not found"
	ErrMsgScanInFutureError     = "Scan timestamp is in the future"
	ErrMsgInventoryBusyError    = "Prize stock changed while spinning. Please try again."
	ErrMsgRejectedError         = "Request rejected"
)

// rejectionStatus maps each reason to 409 when a retry later may succeed,
// and 422 when the request itself cannot succeed as sent.
var rejectionStatus = map[domain.RejectReason]int{
	domain.ReasonCampaignInactive:         http.StatusUnprocessableEntity,
	domain.ReasonSessionExpired:           http.StatusUnprocessableEntity,
	domain.ReasonSessionMismatch:          http.StatusUnprocessableEntity,
	domain.ReasonInsufficientTokens:       http.StatusUnprocessableEntity,
	domain.ReasonSessionAlreadyConsumed:   http.StatusConflict,
	domain.ReasonReplayDetected:           http.StatusConflict,
	domain.ReasonCooldownActive:           http.StatusConflict,
	domain.ReasonDailySpinLimitReached:    http.StatusConflict,
	domain.ReasonDailySpendLimitExceeded:  http.StatusConflict,
	domain.ReasonWeeklySpendLimitExceeded: http.StatusConflict,
	domain.ReasonDailyEarnLimitExceeded:   http.StatusConflict,
}

// mapServiceErrorToUserMessage maps domain errors to an HTTP status and a
// message safe to show to users.
func mapServiceErrorToUserMessage(err error) (int, string) {
	switch {
	case err == nil:
		return http.StatusInternalServerError, ErrMsgGenericServerError
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, ErrMsgInvalidRequestError
	case errors.Is(err, domain.ErrScanTimestampInFuture):
		return http.StatusBadRequest, ErrMsgScanInFutureError
	case errors.Is(err, domain.ErrPlayerNotFound):
		return http.StatusNotFound, ErrMsgPlayerNotFoundError
	case errors.Is(err, domain.ErrCampaignNotFound):
		return http.StatusNotFound, ErrMsgCampaignNotFoundError
	case errors.Is(err, domain.ErrBusinessNotFound):
		return http.StatusNotFound, ErrMsgBusinessNotFoundError
	case errors.Is(err, domain.ErrSpinNotFound):
		return http.StatusNotFound, ErrMsgSpinNotFoundError
	case errors.Is(err, domain.ErrSessionNotFound):
		return http.StatusNotFound, ErrMsgSessionNotFoundError
	case errors.Is(err, domain.ErrPlayerInactive):
		return http.StatusForbidden, ErrMsgPlayerInactiveError
	case errors.Is(err, domain.ErrInventoryConflict):
		return http.StatusConflict, ErrMsgInventoryBusyError
	case errors.Is(err, domain.ErrPersistenceFailure):
		return http.StatusServiceUnavailable, ErrMsgUnavailableError
	}
	return http.StatusInternalServerError, ErrMsgGenericServerError
}

// respondServiceError logs err and writes the matching response. Rejections
// carry their reason tag so clients can branch without parsing messages.
func respondServiceError(w http.ResponseWriter, r *http.Request, opName string, err error) {
	log := logger.FromContext(r.Context())

	if rej, ok := domain.AsRejection(err); ok {
		status, known := rejectionStatus[rej.Reason]
		if !known {
			status = http.StatusConflict
		}
		log.Info(opName+" rejected", "reason", rej.Reason, "detail", rej.Detail)
		respondJSON(w, status, RejectionResponse{
			Error:  ErrMsgRejectedError,
			Reason: rej.Reason,
			Detail: rej.Detail,
		})
		return
	}

	status, msg := mapServiceErrorToUserMessage(err)
	if status >= http.StatusInternalServerError {
		log.Error(opName+" failed", "error", err)
	} else {
		log.Warn(opName+" failed", "error", err)
	}
	respondError(w, status, msg)
}
