package ledger

// Error messages
const (
	ErrMsgCreditFailedFmt     = "failed to credit %d tokens: %w"
	ErrMsgDebitFailedFmt      = "failed to debit %d tokens: %w"
	ErrMsgInvalidEntryType    = "entry type not allowed for this operation"
	ErrMsgGetBalanceFailed    = "failed to get balance: %w"
	ErrMsgHistoryFailed       = "failed to list ledger history: %w"
	ErrMsgReconcileFailed     = "failed to reconcile ledger: %w"
	ErrMsgInvalidEntryTypeFmt = "%s: %s: %w"
)

// Log messages
const (
	LogMsgCredited      = "Tokens credited"
	LogMsgDebited       = "Tokens debited"
	LogMsgDebitRefused  = "Debit refused, insufficient balance"
	LogMsgDriftDetected = "Ledger drift detected"
)
