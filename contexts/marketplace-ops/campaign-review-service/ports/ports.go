package ports

import (
	"context"
	"time"

	contractsv1 "opsdesk/contracts/gen/events/v1"
	"opsdesk/contexts/marketplace-ops/campaign-review-service/domain/entities"
)

type CampaignFilter struct {
	BrandID  string
	Statuses []entities.CampaignStatus
	Limit    int
	Offset   int
}

// CampaignRepository is the campaign store gateway. Implementations classify
// store failures into the domain error taxonomy before returning them:
// reads fail with ErrStoreUnavailable / ErrStoreSchemaUnavailable /
// ErrCampaignNotFound, writes with ErrStoreWriteFailure.
type CampaignRepository interface {
	CreateCampaign(ctx context.Context, campaign entities.Campaign) error
	UpdateCampaign(ctx context.Context, campaign entities.Campaign) error
	GetCampaign(ctx context.Context, campaignID string) (entities.Campaign, error)
	ListCampaigns(ctx context.Context, filter CampaignFilter) ([]entities.Campaign, error)
}

type EditRequestRepository interface {
	CreateEditRequest(ctx context.Context, request entities.EditRequest) error
	GetEditRequest(ctx context.Context, editID string) (entities.EditRequest, error)
	UpdateEditRequest(ctx context.Context, request entities.EditRequest) error
	ListEditRequestsByCampaign(ctx context.Context, campaignID string) ([]entities.EditRequest, error)
	ListPendingEditRequests(ctx context.Context) ([]entities.EditRequest, error)
	// RawNewData returns the stored proposal payload as written, including
	// legacy field spellings, for the reviewer diff summary.
	RawNewData(ctx context.Context, editID string) ([]byte, error)
}

type CreatorRepository interface {
	ListCreatorsByCampaign(ctx context.Context, campaignID string) ([]entities.CampaignCreator, error)
	CountActiveCreators(ctx context.Context, campaignIDs []string) (map[string]int, error)
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}

type EventEnvelope = contractsv1.Envelope

type OutboxMessage struct {
	OutboxID     string
	EventType    string
	PartitionKey string
	Payload      []byte
	CreatedAt    time.Time
}

type OutboxWriter interface {
	AppendOutbox(ctx context.Context, envelope EventEnvelope) error
}

type OutboxRepository interface {
	ListPendingOutbox(ctx context.Context, limit int) ([]OutboxMessage, error)
	MarkOutboxPublished(ctx context.Context, outboxID string, publishedAt time.Time) error
}

type EventPublisher interface {
	Publish(ctx context.Context, topic string, event EventEnvelope) error
}
