package domain

import (
	"encoding/json"
	"time"
)

// Campaign is a merchant-defined prize pool that players spin against.
type Campaign struct {
	ID             string          `json:"id"`
	BusinessID     string          `json:"business_id"`
	Name           string          `json:"name"`
	TokenCost      int64           `json:"token_cost"`
	MaxSpinsPerDay int             `json:"max_spins_per_day"`
	StartsAt       time.Time       `json:"starts_at"`
	EndsAt         time.Time       `json:"ends_at"`
	IsActive       bool            `json:"is_active"`
	Targeting      json.RawMessage `json:"targeting,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
}

// IsLive reports whether spins may be processed at now.
func (c Campaign) IsLive(now time.Time) bool {
	return c.IsActive && !now.Before(c.StartsAt) && now.Before(c.EndsAt)
}

// Prize is a countable reward in a campaign.
type Prize struct {
	ID                string  `json:"id"`
	CampaignID        string  `json:"campaign_id"`
	Name              string  `json:"name"`
	Description       string  `json:"description,omitempty"`
	TotalQuantity     int     `json:"total_quantity"`
	RemainingQuantity int     `json:"remaining_quantity"`
	WinProbability    float64 `json:"win_probability"`
	IsActive          bool    `json:"is_active"`
	SortOrder         int     `json:"sort_order"`
	Version           int64   `json:"version"`
}

// IsDrawable reports whether the prize can currently be won.
func (p Prize) IsDrawable() bool {
	return p.IsActive && p.RemainingQuantity > 0
}

// LocationStock is the share of a prize's stock held at one location.
type LocationStock struct {
	PrizeID           string `json:"prize_id"`
	LocationID        string `json:"location_id"`
	TotalQuantity     int    `json:"total_quantity"`
	RemainingQuantity int    `json:"remaining_quantity"`
}
