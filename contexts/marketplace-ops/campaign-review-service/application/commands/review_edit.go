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

type ApproveEditCommand struct {
	EditID string
	Actor  Actor
	Notes  string
}

type RejectEditCommand struct {
	EditID string
	Actor  Actor
	Reason string
}

type ReviewEditUseCase struct {
	Campaigns ports.CampaignRepository
	Edits     ports.EditRequestRepository
	Outbox    ports.OutboxWriter
	Clock     ports.Clock
	IDGen     ports.IDGenerator
	Logger    *slog.Logger
}

type ApproveEditResult struct {
	Request  entities.EditRequest
	Campaign entities.Campaign
}

// Approve replaces every field named in KeyChanges on the live campaign with
// the proposed value. Each named field is replaced whole, never merged with
// stale fragments.
func (uc ReviewEditUseCase) Approve(ctx context.Context, cmd ApproveEditCommand) (ApproveEditResult, error) {
	logger := application.ResolveLogger(uc.Logger)
	if err := requireReviewer(cmd.Actor); err != nil {
		return ApproveEditResult{}, err
	}
	request, err := uc.Edits.GetEditRequest(ctx, strings.TrimSpace(cmd.EditID))
	if err != nil {
		return ApproveEditResult{}, err
	}
	if request.Status != entities.EditRequestStatusPending {
		return ApproveEditResult{}, fmt.Errorf("%w: edit request %s is %q",
			domainerrors.ErrEditAlreadyResolved, request.EditID, request.Status)
	}
	campaign, err := uc.Campaigns.GetCampaign(ctx, request.CampaignID)
	if err != nil {
		return ApproveEditResult{}, err
	}

	now := uc.Clock.Now().UTC()
	updated := entities.ApplyChanges(campaign, request.NewData, request.KeyChanges)
	// Re-checked here because the live campaign may have changed since the
	// edit was submitted, and the combined record must still be storable.
	if err := validatePayload(updated); err != nil {
		return ApproveEditResult{}, err
	}
	updated.UpdatedAt = now
	if err := uc.Campaigns.UpdateCampaign(ctx, updated); err != nil {
		return ApproveEditResult{}, err
	}

	request.Status = entities.EditRequestStatusApproved
	request.ReviewNotes = strings.TrimSpace(cmd.Notes)
	request.ResolvedAt = &now
	if err := uc.Edits.UpdateEditRequest(ctx, request); err != nil {
		return ApproveEditResult{}, err
	}

	eventID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return ApproveEditResult{}, err
	}
	envelope, err := newCampaignEnvelope(eventID, EventCampaignEditApproved, campaign.CampaignID, now, map[string]any{
		"campaign_id": campaign.CampaignID,
		"edit_id":     request.EditID,
		"reviewer_id": cmd.Actor.ID,
		"key_changes": request.KeyChanges,
		"notes":       request.ReviewNotes,
	})
	if err != nil {
		return ApproveEditResult{}, err
	}
	if err := uc.Outbox.AppendOutbox(ctx, envelope); err != nil {
		return ApproveEditResult{}, err
	}

	logger.Info("campaign edit approved",
		"event", "campaign_edit_approved",
		"module", "marketplace-ops/campaign-review-service",
		"layer", "application",
		"campaign_id", campaign.CampaignID,
		"edit_id", request.EditID,
	)
	return ApproveEditResult{Request: request, Campaign: updated}, nil
}

// Reject records the reviewer's reason and leaves the live campaign exactly
// as it was before the edit was submitted.
func (uc ReviewEditUseCase) Reject(ctx context.Context, cmd RejectEditCommand) (entities.EditRequest, error) {
	logger := application.ResolveLogger(uc.Logger)
	if err := requireReviewer(cmd.Actor); err != nil {
		return entities.EditRequest{}, err
	}
	if strings.TrimSpace(cmd.Reason) == "" {
		return entities.EditRequest{}, fmt.Errorf("%w: edit rejection reason is required", domainerrors.ErrValidation)
	}
	request, err := uc.Edits.GetEditRequest(ctx, strings.TrimSpace(cmd.EditID))
	if err != nil {
		return entities.EditRequest{}, err
	}
	if request.Status != entities.EditRequestStatusPending {
		return entities.EditRequest{}, fmt.Errorf("%w: edit request %s is %q",
			domainerrors.ErrEditAlreadyResolved, request.EditID, request.Status)
	}

	now := uc.Clock.Now().UTC()
	request.Status = entities.EditRequestStatusRejected
	request.RejectionReason = cmd.Reason
	request.ResolvedAt = &now
	if err := uc.Edits.UpdateEditRequest(ctx, request); err != nil {
		return entities.EditRequest{}, err
	}

	eventID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return entities.EditRequest{}, err
	}
	envelope, err := newCampaignEnvelope(eventID, EventCampaignEditRejected, request.CampaignID, now, map[string]any{
		"campaign_id": request.CampaignID,
		"edit_id":     request.EditID,
		"reviewer_id": cmd.Actor.ID,
		"reason":      cmd.Reason,
	})
	if err != nil {
		return entities.EditRequest{}, err
	}
	if err := uc.Outbox.AppendOutbox(ctx, envelope); err != nil {
		return entities.EditRequest{}, err
	}

	logger.Info("campaign edit rejected",
		"event", "campaign_edit_rejected",
		"module", "marketplace-ops/campaign-review-service",
		"layer", "application",
		"campaign_id", request.CampaignID,
		"edit_id", request.EditID,
	)
	return request, nil
}
