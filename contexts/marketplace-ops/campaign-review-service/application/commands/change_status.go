package commands

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	application "opsdesk/contexts/marketplace-ops/campaign-review-service/application"
	"opsdesk/contexts/marketplace-ops/campaign-review-service/domain/entities"
	domainerrors "opsdesk/contexts/marketplace-ops/campaign-review-service/domain/errors"
	"opsdesk/contexts/marketplace-ops/campaign-review-service/ports"
)

type ChangeStatusAction string

const (
	StatusActionPause    ChangeStatusAction = "pause"
	StatusActionResume   ChangeStatusAction = "resume"
	StatusActionComplete ChangeStatusAction = "complete"
)

type ChangeStatusCommand struct {
	CampaignID string
	Actor      Actor
	Action     ChangeStatusAction
	Reason     string
}

type ChangeStatusUseCase struct {
	Campaigns ports.CampaignRepository
	Outbox    ports.OutboxWriter
	Clock     ports.Clock
	IDGen     ports.IDGenerator
	Logger    *slog.Logger
}

// Execute runs the pause/resume/complete transitions. Re-invoking an action
// on a campaign already in the target state is an invalid transition, not a
// success; callers must not mask that with retries.
func (uc ChangeStatusUseCase) Execute(ctx context.Context, cmd ChangeStatusCommand) (entities.Campaign, error) {
	logger := application.ResolveLogger(uc.Logger)
	if err := requireReviewer(cmd.Actor); err != nil {
		return entities.Campaign{}, err
	}
	campaign, err := uc.Campaigns.GetCampaign(ctx, strings.TrimSpace(cmd.CampaignID))
	if err != nil {
		return entities.Campaign{}, err
	}

	now := uc.Clock.Now().UTC()
	from := campaign.Status
	eventType := ""
	switch cmd.Action {
	case StatusActionPause:
		if from != entities.CampaignStatusActive {
			return entities.Campaign{}, fmt.Errorf("%w: cannot pause campaign in status %q",
				domainerrors.ErrInvalidTransition, from)
		}
		if strings.TrimSpace(cmd.Reason) == "" {
			return entities.Campaign{}, fmt.Errorf("%w: pause reason is required", domainerrors.ErrValidation)
		}
		campaign.Status = entities.CampaignStatusPaused
		campaign.PauseReason = cmd.Reason
		eventType = EventCampaignPaused
	case StatusActionResume:
		if from != entities.CampaignStatusPaused {
			return entities.Campaign{}, fmt.Errorf("%w: cannot resume campaign in status %q",
				domainerrors.ErrInvalidTransition, from)
		}
		campaign.Status = entities.CampaignStatusActive
		campaign.PauseReason = ""
		eventType = EventCampaignResumed
	case StatusActionComplete:
		if from != entities.CampaignStatusActive && from != entities.CampaignStatusPaused {
			return entities.Campaign{}, fmt.Errorf("%w: cannot complete campaign in status %q",
				domainerrors.ErrInvalidTransition, from)
		}
		campaign.Status = entities.CampaignStatusCompleted
		campaign.PauseReason = ""
		campaign.CompletedAt = &now
		eventType = EventCampaignCompleted
	default:
		return entities.Campaign{}, fmt.Errorf("%w: unknown action %q from status %q",
			domainerrors.ErrInvalidTransition, cmd.Action, from)
	}

	campaign.UpdatedAt = now
	if err := uc.Campaigns.UpdateCampaign(ctx, campaign); err != nil {
		return entities.Campaign{}, err
	}

	eventID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return entities.Campaign{}, err
	}
	envelope, err := newCampaignEnvelope(eventID, eventType, campaign.CampaignID, now, map[string]any{
		"campaign_id": campaign.CampaignID,
		"brand_id":    campaign.BrandID,
		"reviewer_id": cmd.Actor.ID,
		"from_status": string(from),
		"to_status":   string(campaign.Status),
		"reason":      strings.TrimSpace(cmd.Reason),
	})
	if err != nil {
		return entities.Campaign{}, err
	}
	if err := uc.Outbox.AppendOutbox(ctx, envelope); err != nil {
		return entities.Campaign{}, err
	}

	logger.Info("campaign status changed",
		"event", "campaign_status_changed",
		"module", "marketplace-ops/campaign-review-service",
		"layer", "application",
		"campaign_id", campaign.CampaignID,
		"from_status", string(from),
		"to_status", string(campaign.Status),
	)
	return campaign, nil
}
