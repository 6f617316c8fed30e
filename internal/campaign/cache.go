package campaign

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/osse101/SpinVault_Go/internal/domain"
)

// CacheSchemaVersion is the current version of the cache schema
// Increment this when the cached data structure changes to auto-invalidate old entries
const CacheSchemaVersion = "1.0"

// cachedCampaignEntry wraps a campaign with version metadata for cache invalidation
type cachedCampaignEntry struct {
	Version  string           `json:"version"`
	Campaign *domain.Campaign `json:"campaign"`
	CachedAt time.Time        `json:"cached_at"`
}

// campaignCache is an in-memory LRU of campaign rows with time-based
// expiration. Prize stock is never cached here.
type campaignCache struct {
	lru *expirable.LRU[string, *cachedCampaignEntry]
}

// newCampaignCache creates a new campaign cache with the specified size and TTL.
func newCampaignCache(size int, ttl time.Duration) *campaignCache {
	return &campaignCache{
		lru: expirable.NewLRU[string, *cachedCampaignEntry](size, nil, ttl),
	}
}

// Get returns (campaign, true) on a hit with a matching schema version.
// Entries with a mismatched version are dropped.
func (c *campaignCache) Get(campaignID string) (*domain.Campaign, bool) {
	entry, found := c.lru.Get(campaignID)
	if !found {
		return nil, false
	}

	if entry.Version != CacheSchemaVersion {
		c.lru.Remove(campaignID)
		return nil, false
	}

	return entry.Campaign, true
}

// Set stores a campaign in the cache with current schema version.
func (c *campaignCache) Set(campaign *domain.Campaign) {
	c.lru.Add(campaign.ID, &cachedCampaignEntry{
		Version:  CacheSchemaVersion,
		Campaign: campaign,
		CachedAt: time.Now(),
	})
}

// Invalidate removes a campaign from the cache.
func (c *campaignCache) Invalidate(campaignID string) {
	c.lru.Remove(campaignID)
}

// Clear removes all entries from the cache.
func (c *campaignCache) Clear() {
	c.lru.Purge()
}
