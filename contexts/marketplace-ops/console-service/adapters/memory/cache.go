package memory

import (
	"sync"
	"time"

	"opsdesk/contexts/marketplace-ops/console-service/domain/entities"
)

// FallbackCache is an in-process last-good-snapshot cache. Entries never
// expire on their own; a stale snapshot is always preferable to a mock one.
type FallbackCache struct {
	mu          sync.RWMutex
	collections map[entities.Collection]entities.Snapshot
	details     map[string]entities.DetailSnapshot
}

func NewFallbackCache() *FallbackCache {
	return &FallbackCache{
		collections: make(map[entities.Collection]entities.Snapshot),
		details:     make(map[string]entities.DetailSnapshot),
	}
}

func (c *FallbackCache) PutCollection(collection entities.Collection, items []entities.CampaignSummary, fetchedAt time.Time) {
	copied := make([]entities.CampaignSummary, len(items))
	copy(copied, items)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.collections[collection] = entities.Snapshot{
		Collection: collection,
		Items:      copied,
		FetchedAt:  fetchedAt,
	}
}

func (c *FallbackCache) GetCollection(collection entities.Collection) (entities.Snapshot, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	snapshot, ok := c.collections[collection]
	if !ok {
		return entities.Snapshot{}, false
	}
	items := make([]entities.CampaignSummary, len(snapshot.Items))
	copy(items, snapshot.Items)
	snapshot.Items = items
	return snapshot, true
}

func (c *FallbackCache) PutDetail(campaignID string, detail entities.CampaignDetail, fetchedAt time.Time) {
	creators := make([]entities.CreatorRow, len(detail.Creators))
	copy(creators, detail.Creators)
	detail.Creators = creators

	c.mu.Lock()
	defer c.mu.Unlock()
	c.details[campaignID] = entities.DetailSnapshot{
		Detail:    detail,
		FetchedAt: fetchedAt,
	}
}

func (c *FallbackCache) GetDetail(campaignID string) (entities.DetailSnapshot, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	snapshot, ok := c.details[campaignID]
	if !ok {
		return entities.DetailSnapshot{}, false
	}
	creators := make([]entities.CreatorRow, len(snapshot.Detail.Creators))
	copy(creators, snapshot.Detail.Creators)
	snapshot.Detail.Creators = creators
	return snapshot, true
}
