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

type CreateDraftCommand struct {
	Actor   Actor
	Payload entities.Campaign
}

type CreateDraftUseCase struct {
	Campaigns ports.CampaignRepository
	Clock     ports.Clock
	IDGen     ports.IDGenerator
	Logger    *slog.Logger
}

// Execute stores a new draft owned by the calling brand. Full submission
// validation happens later, at the draft→pending_approval transition; a
// draft only needs a title to be addressable in the console.
func (uc CreateDraftUseCase) Execute(ctx context.Context, cmd CreateDraftCommand) (entities.Campaign, error) {
	logger := application.ResolveLogger(uc.Logger)
	if strings.TrimSpace(cmd.Actor.ID) == "" || cmd.Actor.Role != RoleBrand {
		return entities.Campaign{}, fmt.Errorf("%w: brand role required", domainerrors.ErrUnauthorized)
	}
	if strings.TrimSpace(cmd.Payload.Title) == "" {
		return entities.Campaign{}, fmt.Errorf("%w: title is required", domainerrors.ErrValidation)
	}

	now := uc.Clock.Now().UTC()
	campaignID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return entities.Campaign{}, err
	}
	campaign := cmd.Payload.Clone()
	campaign.CampaignID = campaignID
	campaign.BrandID = cmd.Actor.ID
	campaign.Status = entities.CampaignStatusDraft
	campaign.RejectionFeedback = nil
	campaign.PauseReason = ""
	campaign.Metrics = entities.CampaignMetrics{}
	campaign.CreatedAt = now
	campaign.UpdatedAt = now
	if err := uc.Campaigns.CreateCampaign(ctx, campaign); err != nil {
		return entities.Campaign{}, err
	}

	logger.Info("campaign draft created",
		"event", "campaign_draft_created",
		"module", "marketplace-ops/campaign-review-service",
		"layer", "application",
		"campaign_id", campaign.CampaignID,
		"brand_id", campaign.BrandID,
	)
	return campaign, nil
}
