package ports

import (
	"context"
	"time"

	"opsdesk/contexts/marketplace-ops/console-service/domain/entities"
)

// CampaignSource is the console's read path into the campaign store. The
// composition root adapts the campaign store gateway to this interface and
// maps its read-failure taxonomy onto ErrSourceUnavailable.
type CampaignSource interface {
	ListCollection(ctx context.Context, collection entities.Collection) ([]entities.CampaignSummary, error)
	GetDetail(ctx context.Context, campaignID string) (entities.CampaignDetail, error)
}

// FallbackCache keeps the most recent successful result per query so a
// failed refresh can serve stale data instead of an empty console.
type FallbackCache interface {
	PutCollection(collection entities.Collection, items []entities.CampaignSummary, fetchedAt time.Time)
	GetCollection(collection entities.Collection) (entities.Snapshot, bool)
	PutDetail(campaignID string, detail entities.CampaignDetail, fetchedAt time.Time)
	GetDetail(campaignID string) (entities.DetailSnapshot, bool)
}

type Clock interface {
	Now() time.Time
}
