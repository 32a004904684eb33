package commands

import (
	"encoding/json"
	"time"

	"opsdesk/contexts/marketplace-ops/campaign-review-service/ports"
)

const (
	EventCampaignSubmitted     = "campaign.submitted"
	EventCampaignApproved      = "campaign.approved"
	EventCampaignRejected      = "campaign.rejected"
	EventCampaignPaused        = "campaign.paused"
	EventCampaignResumed       = "campaign.resumed"
	EventCampaignCompleted     = "campaign.completed"
	EventCampaignEditSubmitted = "campaign.edit_submitted"
	EventCampaignEditApproved  = "campaign.edit_approved"
	EventCampaignEditRejected  = "campaign.edit_rejected"
)

// newCampaignEnvelope builds a transition event. The payload must carry the
// full justification fields so the notification runtime never needs a second
// read to compose brand-facing messages.
func newCampaignEnvelope(
	eventID string,
	eventType string,
	campaignID string,
	occurredAt time.Time,
	data map[string]any,
) (ports.EventEnvelope, error) {
	payload, err := json.Marshal(data)
	if err != nil {
		return ports.EventEnvelope{}, err
	}
	return ports.EventEnvelope{
		EventID:          eventID,
		EventType:        eventType,
		OccurredAt:       occurredAt.UTC(),
		SourceService:    "campaign-review-service",
		TraceID:          eventID,
		SchemaVersion:    1,
		PartitionKeyPath: "campaign_id",
		PartitionKey:     campaignID,
		Data:             payload,
	}, nil
}
