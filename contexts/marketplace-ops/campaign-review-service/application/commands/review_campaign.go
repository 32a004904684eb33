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

type ApproveCampaignCommand struct {
	CampaignID string
	Actor      Actor
	Notes      string
}

type RejectCampaignCommand struct {
	CampaignID      string
	Actor           Actor
	Reasons         string
	Recommendations string
}

type ReviewCampaignUseCase struct {
	Campaigns ports.CampaignRepository
	Edits     ports.EditRequestRepository
	Outbox    ports.OutboxWriter
	Clock     ports.Clock
	IDGen     ports.IDGenerator
	Logger    *slog.Logger
}

func (uc ReviewCampaignUseCase) Approve(ctx context.Context, cmd ApproveCampaignCommand) (entities.Campaign, error) {
	logger := application.ResolveLogger(uc.Logger)
	if err := requireReviewer(cmd.Actor); err != nil {
		return entities.Campaign{}, err
	}
	campaign, err := uc.Campaigns.GetCampaign(ctx, strings.TrimSpace(cmd.CampaignID))
	if err != nil {
		return entities.Campaign{}, err
	}
	if campaign.Status != entities.CampaignStatusPendingApproval {
		return entities.Campaign{}, fmt.Errorf("%w: cannot approve campaign in status %q",
			domainerrors.ErrInvalidTransition, campaign.Status)
	}
	pendingEdits, err := uc.Edits.ListEditRequestsByCampaign(ctx, campaign.CampaignID)
	if err != nil {
		return entities.Campaign{}, err
	}
	for _, edit := range pendingEdits {
		if edit.Status == entities.EditRequestStatusPending {
			return entities.Campaign{}, fmt.Errorf("%w: campaign has a pending edit request %s",
				domainerrors.ErrInvalidTransition, edit.EditID)
		}
	}

	now := uc.Clock.Now().UTC()
	campaign.Status = entities.CampaignStatusActive
	campaign.RejectionFeedback = nil
	campaign.ReviewedAt = &now
	campaign.UpdatedAt = now
	if err := uc.Campaigns.UpdateCampaign(ctx, campaign); err != nil {
		return entities.Campaign{}, err
	}

	eventID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return entities.Campaign{}, err
	}
	envelope, err := newCampaignEnvelope(eventID, EventCampaignApproved, campaign.CampaignID, now, map[string]any{
		"campaign_id": campaign.CampaignID,
		"brand_id":    campaign.BrandID,
		"reviewer_id": cmd.Actor.ID,
		"notes":       strings.TrimSpace(cmd.Notes),
	})
	if err != nil {
		return entities.Campaign{}, err
	}
	if err := uc.Outbox.AppendOutbox(ctx, envelope); err != nil {
		return entities.Campaign{}, err
	}

	logger.Info("campaign approved",
		"event", "campaign_approved",
		"module", "marketplace-ops/campaign-review-service",
		"layer", "application",
		"campaign_id", campaign.CampaignID,
		"reviewer_id", cmd.Actor.ID,
	)
	return campaign, nil
}

// Reject refuses unstructured feedback outright: both reasons and
// recommendations must be present because they are the brand's only signal
// for resubmission.
func (uc ReviewCampaignUseCase) Reject(ctx context.Context, cmd RejectCampaignCommand) (entities.Campaign, error) {
	logger := application.ResolveLogger(uc.Logger)
	if err := requireReviewer(cmd.Actor); err != nil {
		return entities.Campaign{}, err
	}
	if strings.TrimSpace(cmd.Reasons) == "" {
		return entities.Campaign{}, fmt.Errorf("%w: rejection reasons are required", domainerrors.ErrValidation)
	}
	if strings.TrimSpace(cmd.Recommendations) == "" {
		return entities.Campaign{}, fmt.Errorf("%w: rejection recommendations are required", domainerrors.ErrValidation)
	}
	campaign, err := uc.Campaigns.GetCampaign(ctx, strings.TrimSpace(cmd.CampaignID))
	if err != nil {
		return entities.Campaign{}, err
	}
	if campaign.Status != entities.CampaignStatusPendingApproval {
		return entities.Campaign{}, fmt.Errorf("%w: cannot reject campaign in status %q",
			domainerrors.ErrInvalidTransition, campaign.Status)
	}

	now := uc.Clock.Now().UTC()
	campaign.Status = entities.CampaignStatusRejected
	campaign.RejectionFeedback = &entities.RejectionFeedback{
		Reasons:         cmd.Reasons,
		Recommendations: cmd.Recommendations,
	}
	campaign.ReviewedAt = &now
	campaign.UpdatedAt = now
	if err := uc.Campaigns.UpdateCampaign(ctx, campaign); err != nil {
		return entities.Campaign{}, err
	}

	eventID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return entities.Campaign{}, err
	}
	envelope, err := newCampaignEnvelope(eventID, EventCampaignRejected, campaign.CampaignID, now, map[string]any{
		"campaign_id":     campaign.CampaignID,
		"brand_id":        campaign.BrandID,
		"reviewer_id":     cmd.Actor.ID,
		"reasons":         cmd.Reasons,
		"recommendations": cmd.Recommendations,
	})
	if err != nil {
		return entities.Campaign{}, err
	}
	if err := uc.Outbox.AppendOutbox(ctx, envelope); err != nil {
		return entities.Campaign{}, err
	}

	logger.Info("campaign rejected",
		"event", "campaign_rejected",
		"module", "marketplace-ops/campaign-review-service",
		"layer", "application",
		"campaign_id", campaign.CampaignID,
		"reviewer_id", cmd.Actor.ID,
	)
	return campaign, nil
}
