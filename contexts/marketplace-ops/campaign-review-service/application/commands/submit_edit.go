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

type SubmitEditCommand struct {
	CampaignID   string
	Actor        Actor
	NewData      entities.Campaign
	ChangeReason string
}

type SubmitEditUseCase struct {
	Campaigns ports.CampaignRepository
	Edits     ports.EditRequestRepository
	Outbox    ports.OutboxWriter
	Clock     ports.Clock
	IDGen     ports.IDGenerator
	Logger    *slog.Logger
}

// Execute records a proposed amendment against an active campaign. The live
// record stays untouched until a reviewer approves; the snapshot taken here
// is what the reviewer diffs against.
func (uc SubmitEditUseCase) Execute(ctx context.Context, cmd SubmitEditCommand) (entities.EditRequest, error) {
	logger := application.ResolveLogger(uc.Logger)
	campaign, err := uc.Campaigns.GetCampaign(ctx, strings.TrimSpace(cmd.CampaignID))
	if err != nil {
		return entities.EditRequest{}, err
	}
	if err := requireOwningBrand(cmd.Actor, campaign); err != nil {
		return entities.EditRequest{}, err
	}
	if campaign.Status != entities.CampaignStatusActive {
		return entities.EditRequest{}, fmt.Errorf("%w: edits may only target active campaigns, campaign is %q",
			domainerrors.ErrInvalidTransition, campaign.Status)
	}
	if strings.TrimSpace(cmd.ChangeReason) == "" {
		return entities.EditRequest{}, fmt.Errorf("%w: change reason is required", domainerrors.ErrValidation)
	}

	keyChanges := entities.DiffCampaigns(campaign, cmd.NewData)
	if len(keyChanges) == 0 {
		return entities.EditRequest{}, fmt.Errorf("%w: proposed payload changes nothing", domainerrors.ErrValidation)
	}

	now := uc.Clock.Now().UTC()
	// An approved edit must leave the campaign in a state submission would
	// accept; an edit that keeps the original start date is exempt from the
	// freshness rule because the campaign is already running.
	effective := entities.ApplyChanges(campaign, cmd.NewData, keyChanges)
	if err := validatePayload(effective); err != nil {
		return entities.EditRequest{}, err
	}
	if !effective.StartDate.Equal(campaign.StartDate) && effective.StartDate.UTC().Before(now.Truncate(24*time.Hour)) {
		return entities.EditRequest{}, fmt.Errorf("%w: start date may not be moved into the past", domainerrors.ErrValidation)
	}
	editID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return entities.EditRequest{}, err
	}
	request := entities.EditRequest{
		EditID:       editID,
		CampaignID:   campaign.CampaignID,
		RequestedBy:  cmd.Actor.ID,
		ChangeReason: cmd.ChangeReason,
		OldData:      campaign.Clone(),
		NewData:      cmd.NewData.Clone(),
		KeyChanges:   keyChanges,
		Status:       entities.EditRequestStatusPending,
		CreatedAt:    now,
	}
	if err := uc.Edits.CreateEditRequest(ctx, request); err != nil {
		return entities.EditRequest{}, err
	}

	eventID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return entities.EditRequest{}, err
	}
	envelope, err := newCampaignEnvelope(eventID, EventCampaignEditSubmitted, campaign.CampaignID, now, map[string]any{
		"campaign_id":   campaign.CampaignID,
		"edit_id":       request.EditID,
		"requested_by":  request.RequestedBy,
		"change_reason": request.ChangeReason,
		"key_changes":   request.KeyChanges,
	})
	if err != nil {
		return entities.EditRequest{}, err
	}
	if err := uc.Outbox.AppendOutbox(ctx, envelope); err != nil {
		return entities.EditRequest{}, err
	}

	logger.Info("campaign edit submitted",
		"event", "campaign_edit_submitted",
		"module", "marketplace-ops/campaign-review-service",
		"layer", "application",
		"campaign_id", campaign.CampaignID,
		"edit_id", request.EditID,
		"key_changes", strings.Join(keyChanges, ","),
	)
	return request, nil
}
