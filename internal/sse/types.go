package sse

// SpinPayload is the public view of a committed spin. Balances stay private.
type SpinPayload struct {
	SpinID     string `json:"spin_id"`
	CampaignID string `json:"campaign_id"`
	Outcome    string `json:"outcome"`
	PrizeID    string `json:"prize_id,omitempty"`
}

// PrizePayload announces a win without the redemption code
type PrizePayload struct {
	SpinID    string `json:"spin_id"`
	PrizeID   string `json:"prize_id"`
	PrizeName string `json:"prize_name"`
}

// CreditPayload reports a scan credit at a business
type CreditPayload struct {
	BusinessID string `json:"business_id"`
	Amount     int64  `json:"amount"`
}

// StockConflictPayload is sent when two draws raced for the last unit of a prize
type StockConflictPayload struct {
	CampaignID string `json:"campaign_id"`
	PrizeID    string `json:"prize_id"`
	Attempt    int    `json:"attempt"`
}

// AnnouncementPayload is a free-form operator message
type AnnouncementPayload struct {
	Message string `json:"message"`
}
