package commands

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	application "opsdesk/contexts/marketplace-ops/campaign-review-service/application"
	"opsdesk/contexts/marketplace-ops/campaign-review-service/domain/entities"
	domainerrors "opsdesk/contexts/marketplace-ops/campaign-review-service/domain/errors"
	"opsdesk/contexts/marketplace-ops/campaign-review-service/ports"
)

const minimumBudget = 1000

type SubmitCampaignCommand struct {
	CampaignID string
	Actor      Actor
}

type SubmitCampaignUseCase struct {
	Campaigns ports.CampaignRepository
	Outbox    ports.OutboxWriter
	Clock     ports.Clock
	IDGen     ports.IDGenerator
	Logger    *slog.Logger
}

// Execute moves a draft campaign into the review queue. All validation runs
// before the single gateway write; a write failure surfaces as-is and is
// never papered over with a synthesized success.
func (uc SubmitCampaignUseCase) Execute(ctx context.Context, cmd SubmitCampaignCommand) (entities.Campaign, error) {
	logger := application.ResolveLogger(uc.Logger)
	campaign, err := uc.Campaigns.GetCampaign(ctx, strings.TrimSpace(cmd.CampaignID))
	if err != nil {
		return entities.Campaign{}, err
	}
	if err := requireOwningBrand(cmd.Actor, campaign); err != nil {
		return entities.Campaign{}, err
	}
	if campaign.Status != entities.CampaignStatusDraft {
		return entities.Campaign{}, fmt.Errorf("%w: cannot submit campaign in status %q",
			domainerrors.ErrInvalidTransition, campaign.Status)
	}

	now := uc.Clock.Now().UTC()
	if err := validateSubmission(campaign, now); err != nil {
		return entities.Campaign{}, err
	}

	campaign.Status = entities.CampaignStatusPendingApproval
	campaign.SubmittedAt = &now
	campaign.UpdatedAt = now
	if err := uc.Campaigns.UpdateCampaign(ctx, campaign); err != nil {
		return entities.Campaign{}, err
	}

	eventID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return entities.Campaign{}, err
	}
	envelope, err := newCampaignEnvelope(eventID, EventCampaignSubmitted, campaign.CampaignID, now, map[string]any{
		"campaign_id": campaign.CampaignID,
		"brand_id":    campaign.BrandID,
		"title":       campaign.Title,
		"budget":      campaign.Budget,
	})
	if err != nil {
		return entities.Campaign{}, err
	}
	if err := uc.Outbox.AppendOutbox(ctx, envelope); err != nil {
		return entities.Campaign{}, err
	}

	logger.Info("campaign submitted for approval",
		"event", "campaign_submitted",
		"module", "marketplace-ops/campaign-review-service",
		"layer", "application",
		"campaign_id", campaign.CampaignID,
		"brand_id", campaign.BrandID,
	)
	return campaign, nil
}

func validateSubmission(campaign entities.Campaign, now time.Time) error {
	if err := validatePayload(campaign); err != nil {
		return err
	}
	if campaign.StartDate.UTC().Before(now.Truncate(24 * time.Hour)) {
		return fmt.Errorf("%w: start date may not be in the past", domainerrors.ErrValidation)
	}
	return nil
}

// validatePayload holds the rules every stored campaign payload must satisfy,
// whether it arrives through submission or through an approved edit. The
// start-date freshness rule is not here: a running campaign's original start
// is legitimately in the past.
func validatePayload(campaign entities.Campaign) error {
	if strings.TrimSpace(campaign.Title) == "" {
		return fmt.Errorf("%w: title is required", domainerrors.ErrValidation)
	}
	if campaign.Budget < minimumBudget {
		return fmt.Errorf("%w: budget must be at least %d", domainerrors.ErrValidation, minimumBudget)
	}
	if len(campaign.Platforms) == 0 {
		return fmt.Errorf("%w: at least one platform is required", domainerrors.ErrValidation)
	}
	if !entities.IsSupportedContentType(campaign.ContentType) {
		return fmt.Errorf("%w: unknown content type %q", domainerrors.ErrValidation, campaign.ContentType)
	}
	if campaign.StartDate.IsZero() || campaign.EndDate.IsZero() {
		return fmt.Errorf("%w: start and end dates are required", domainerrors.ErrValidation)
	}
	if !campaign.EndDate.After(campaign.StartDate) {
		return fmt.Errorf("%w: end date must be after start date", domainerrors.ErrValidation)
	}
	if !campaign.AllocationValid() {
		return fmt.Errorf("%w: budget allocation must sum to 100", domainerrors.ErrValidation)
	}
	return nil
}
