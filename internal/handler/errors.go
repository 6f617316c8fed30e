package handler

// Generic HTTP error messages for client responses.
// These messages intentionally do not expose internal error details.
const (
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"
	ErrMsgMissingQueryParam     = "Missing %s query parameter"
	ErrMsgInvalidLimit          = "Invalid limit parameter"
	ErrMsgInvalidOffset         = "Invalid offset parameter"
	ErrMsgInvalidTime           = "Invalid %s parameter, expected RFC3339"
	ErrMsgInvalidPathID         = "Invalid %s"
)

// Log messages
const (
	LogMsgEncodeFailed     = "Failed to encode JSON response"
	LogMsgWriteFailed      = "Failed to write response buffer"
	LogMsgDecodeFailed     = "Failed to decode request"
	LogMsgRequestDecoded   = "Request decoded"
	LogMsgSpinSettled      = "Spin settled"
	LogMsgScanCredited     = "Scan credited"
	LogMsgReadyzFailed     = "Readiness check failed"
	LogMsgAnnouncementSent = "Feed announcement sent"
)

// Paging defaults for list endpoints
const (
	DefaultListLimit = 50
	MaxListLimit     = 200
)
