package httpadapter

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"opsdesk/contexts/marketplace-ops/campaign-review-service/application/commands"
	"opsdesk/contexts/marketplace-ops/campaign-review-service/application/queries"
	"opsdesk/contexts/marketplace-ops/campaign-review-service/domain/entities"
	domainerrors "opsdesk/contexts/marketplace-ops/campaign-review-service/domain/errors"
	httptransport "opsdesk/contexts/marketplace-ops/campaign-review-service/transport/http"
)

type Handler struct {
	CreateDraft    commands.CreateDraftUseCase
	SubmitCampaign commands.SubmitCampaignUseCase
	ReviewCampaign commands.ReviewCampaignUseCase
	ChangeStatus   commands.ChangeStatusUseCase
	SubmitEdit     commands.SubmitEditUseCase
	ReviewEdit     commands.ReviewEditUseCase
	ListCampaigns  queries.ListCampaignsUseCase
	GetCampaign    queries.GetCampaignUseCase
	ListEdits      queries.ListEditRequestsUseCase
	GetEditSummary queries.GetEditRequestUseCase
	Logger         *slog.Logger
}

func (h Handler) CreateDraftHandler(ctx context.Context, actor commands.Actor, req httptransport.CampaignPayloadRequest) (httptransport.SubmitCampaignResponse, error) {
	payload, err := campaignFromPayload(req)
	if err != nil {
		return httptransport.SubmitCampaignResponse{}, err
	}
	campaign, err := h.CreateDraft.Execute(ctx, commands.CreateDraftCommand{
		Actor:   actor,
		Payload: payload,
	})
	if err != nil {
		return httptransport.SubmitCampaignResponse{}, err
	}
	return httptransport.SubmitCampaignResponse{Campaign: mapCampaign(campaign)}, nil
}

func (h Handler) SubmitCampaignHandler(ctx context.Context, actor commands.Actor, campaignID string) (httptransport.SubmitCampaignResponse, error) {
	campaign, err := h.SubmitCampaign.Execute(ctx, commands.SubmitCampaignCommand{
		CampaignID: campaignID,
		Actor:      actor,
	})
	if err != nil {
		return httptransport.SubmitCampaignResponse{}, err
	}
	return httptransport.SubmitCampaignResponse{Campaign: mapCampaign(campaign)}, nil
}

func (h Handler) ApproveCampaignHandler(ctx context.Context, actor commands.Actor, campaignID string, req httptransport.ApproveCampaignRequest) (httptransport.ReviewCampaignResponse, error) {
	campaign, err := h.ReviewCampaign.Approve(ctx, commands.ApproveCampaignCommand{
		CampaignID: campaignID,
		Actor:      actor,
		Notes:      req.Notes,
	})
	if err != nil {
		return httptransport.ReviewCampaignResponse{}, err
	}
	return httptransport.ReviewCampaignResponse{Campaign: mapCampaign(campaign)}, nil
}

func (h Handler) RejectCampaignHandler(ctx context.Context, actor commands.Actor, campaignID string, req httptransport.RejectCampaignRequest) (httptransport.ReviewCampaignResponse, error) {
	campaign, err := h.ReviewCampaign.Reject(ctx, commands.RejectCampaignCommand{
		CampaignID:      campaignID,
		Actor:           actor,
		Reasons:         req.Reasons,
		Recommendations: req.Recommendations,
	})
	if err != nil {
		return httptransport.ReviewCampaignResponse{}, err
	}
	return httptransport.ReviewCampaignResponse{Campaign: mapCampaign(campaign)}, nil
}

func (h Handler) PauseCampaignHandler(ctx context.Context, actor commands.Actor, campaignID string, req httptransport.StatusActionRequest) (httptransport.ReviewCampaignResponse, error) {
	return h.changeStatus(ctx, actor, campaignID, commands.StatusActionPause, req.Reason)
}

func (h Handler) ResumeCampaignHandler(ctx context.Context, actor commands.Actor, campaignID string) (httptransport.ReviewCampaignResponse, error) {
	return h.changeStatus(ctx, actor, campaignID, commands.StatusActionResume, "")
}

func (h Handler) CompleteCampaignHandler(ctx context.Context, actor commands.Actor, campaignID string, req httptransport.StatusActionRequest) (httptransport.ReviewCampaignResponse, error) {
	return h.changeStatus(ctx, actor, campaignID, commands.StatusActionComplete, req.Reason)
}

func (h Handler) changeStatus(ctx context.Context, actor commands.Actor, campaignID string, action commands.ChangeStatusAction, reason string) (httptransport.ReviewCampaignResponse, error) {
	campaign, err := h.ChangeStatus.Execute(ctx, commands.ChangeStatusCommand{
		CampaignID: campaignID,
		Actor:      actor,
		Action:     action,
		Reason:     reason,
	})
	if err != nil {
		return httptransport.ReviewCampaignResponse{}, err
	}
	return httptransport.ReviewCampaignResponse{Campaign: mapCampaign(campaign)}, nil
}

func (h Handler) SubmitEditHandler(ctx context.Context, actor commands.Actor, campaignID string, req httptransport.SubmitEditRequest) (httptransport.SubmitEditResponse, error) {
	proposed, err := campaignFromPayload(req.NewData)
	if err != nil {
		return httptransport.SubmitEditResponse{}, err
	}
	request, err := h.SubmitEdit.Execute(ctx, commands.SubmitEditCommand{
		CampaignID:   campaignID,
		Actor:        actor,
		NewData:      proposed,
		ChangeReason: req.ChangeReason,
	})
	if err != nil {
		return httptransport.SubmitEditResponse{}, err
	}
	return httptransport.SubmitEditResponse{EditRequest: mapEditRequest(request)}, nil
}

func (h Handler) ApproveEditHandler(ctx context.Context, actor commands.Actor, editID string, req httptransport.ApproveEditRequest) (httptransport.ApproveEditResponse, error) {
	result, err := h.ReviewEdit.Approve(ctx, commands.ApproveEditCommand{
		EditID: editID,
		Actor:  actor,
		Notes:  req.Notes,
	})
	if err != nil {
		return httptransport.ApproveEditResponse{}, err
	}
	return httptransport.ApproveEditResponse{
		EditRequest: mapEditRequest(result.Request),
		Campaign:    mapCampaign(result.Campaign),
	}, nil
}

func (h Handler) RejectEditHandler(ctx context.Context, actor commands.Actor, editID string, req httptransport.RejectEditRequest) (httptransport.RejectEditResponse, error) {
	request, err := h.ReviewEdit.Reject(ctx, commands.RejectEditCommand{
		EditID: editID,
		Actor:  actor,
		Reason: req.Reason,
	})
	if err != nil {
		return httptransport.RejectEditResponse{}, err
	}
	return httptransport.RejectEditResponse{EditRequest: mapEditRequest(request)}, nil
}

func (h Handler) ListCampaignsHandler(ctx context.Context, brandID string, statuses []entities.CampaignStatus, limit, offset int) (httptransport.ListCampaignsResponse, error) {
	items, err := h.ListCampaigns.Execute(ctx, queries.ListCampaignsQuery{
		BrandID:  brandID,
		Statuses: statuses,
		Limit:    limit,
		Offset:   offset,
	})
	if err != nil {
		return httptransport.ListCampaignsResponse{}, err
	}
	result := make([]httptransport.CampaignDTO, 0, len(items))
	for _, item := range items {
		result = append(result, mapCampaign(item))
	}
	return httptransport.ListCampaignsResponse{Items: result}, nil
}

func (h Handler) GetCampaignHandler(ctx context.Context, campaignID string) (httptransport.GetCampaignResponse, error) {
	detail, err := h.GetCampaign.Execute(ctx, campaignID)
	if err != nil {
		return httptransport.GetCampaignResponse{}, err
	}
	creators := make([]httptransport.CreatorDTO, 0, len(detail.Creators))
	for _, item := range detail.Creators {
		creators = append(creators, httptransport.CreatorDTO{
			CreatorID:  item.CreatorID,
			CampaignID: item.CampaignID,
			Status:     string(item.Status),
			Platforms:  append([]string(nil), item.Platforms...),
		})
	}
	return httptransport.GetCampaignResponse{
		Campaign: mapCampaign(detail.Campaign),
		Creators: creators,
	}, nil
}

func (h Handler) ListPendingEditsHandler(ctx context.Context) (httptransport.ListEditRequestsResponse, error) {
	items, err := h.ListEdits.Pending(ctx)
	if err != nil {
		return httptransport.ListEditRequestsResponse{}, err
	}
	return mapEditList(items), nil
}

func (h Handler) ListCampaignEditsHandler(ctx context.Context, campaignID string) (httptransport.ListEditRequestsResponse, error) {
	items, err := h.ListEdits.ByCampaign(ctx, campaignID)
	if err != nil {
		return httptransport.ListEditRequestsResponse{}, err
	}
	return mapEditList(items), nil
}

func (h Handler) GetEditSummaryHandler(ctx context.Context, editID string) (httptransport.EditSummaryResponse, error) {
	summary, err := h.GetEditSummary.Execute(ctx, editID)
	if err != nil {
		return httptransport.EditSummaryResponse{}, err
	}
	return httptransport.EditSummaryResponse{
		EditRequest:          mapEditRequest(summary.Request),
		Platforms:            summary.Platforms,
		Budget:               summary.Budget,
		MinViews:             summary.MinViews,
		GuidelinesOriginal:   summary.GuidelinesOriginal,
		GuidelinesRepurposed: summary.GuidelinesRepurposed,
		HashtagsOriginal:     summary.HashtagsOriginal,
		HashtagsRepurposed:   summary.HashtagsRepurposed,
	}, nil
}

func mapEditList(items []entities.EditRequest) httptransport.ListEditRequestsResponse {
	result := make([]httptransport.EditRequestDTO, 0, len(items))
	for _, item := range items {
		result = append(result, mapEditRequest(item))
	}
	return httptransport.ListEditRequestsResponse{Items: result}
}

func mapCampaign(item entities.Campaign) httptransport.CampaignDTO {
	targets := item.ViewTargets()
	dto := httptransport.CampaignDTO{
		CampaignID:           item.CampaignID,
		BrandID:              item.BrandID,
		Title:                item.Title,
		ContentType:          string(item.ContentType),
		Budget:               item.Budget,
		Platforms:            append([]string(nil), item.Platforms...),
		StartDate:            formatDate(item.StartDate),
		EndDate:              formatDate(item.EndDate),
		BriefOriginal:        item.BriefOriginal,
		BriefRepurposed:      item.BriefRepurposed,
		Guidelines:           item.Guidelines,
		HashtagsOriginal:     item.HashtagsOriginal,
		HashtagsRepurposed:   item.HashtagsRepurposed,
		RateOriginal:         item.RateOriginal,
		RateRepurposed:       item.RateRepurposed,
		MinViews:             item.MinViews,
		AllocationOriginal:   item.AllocationOriginal,
		AllocationRepurposed: item.AllocationRepurposed,
		Status:               string(item.Status),
		PauseReason:          item.PauseReason,
		Metrics: httptransport.MetricsDTO{
			Views:          item.Metrics.Views,
			Engagement:     item.Metrics.Engagement,
			CreatorsJoined: item.Metrics.CreatorsJoined,
			PostsSubmitted: item.Metrics.PostsSubmitted,
			PostsApproved:  item.Metrics.PostsApproved,
		},
		ViewTargets: httptransport.ViewTargetsDTO{
			Total:      targets.Total,
			Original:   targets.Original,
			Repurposed: targets.Repurposed,
		},
		CreatedAt:   formatTime(item.CreatedAt),
		UpdatedAt:   formatTime(item.UpdatedAt),
		SubmittedAt: formatOptionalTime(item.SubmittedAt),
		ReviewedAt:  formatOptionalTime(item.ReviewedAt),
		CompletedAt: formatOptionalTime(item.CompletedAt),
	}
	if item.RejectionFeedback != nil {
		dto.RejectionFeedback = &httptransport.RejectionFeedbackDTO{
			Reasons:         item.RejectionFeedback.Reasons,
			Recommendations: item.RejectionFeedback.Recommendations,
		}
	}
	return dto
}

func mapEditRequest(item entities.EditRequest) httptransport.EditRequestDTO {
	return httptransport.EditRequestDTO{
		EditID:          item.EditID,
		CampaignID:      item.CampaignID,
		RequestedBy:     item.RequestedBy,
		ChangeReason:    item.ChangeReason,
		OldData:         mapCampaign(item.OldData),
		NewData:         mapCampaign(item.NewData),
		KeyChanges:      append([]string(nil), item.KeyChanges...),
		Status:          string(item.Status),
		ReviewNotes:     item.ReviewNotes,
		RejectionReason: item.RejectionReason,
		CreatedAt:       formatTime(item.CreatedAt),
		ResolvedAt:      formatOptionalTime(item.ResolvedAt),
	}
}

func campaignFromPayload(req httptransport.CampaignPayloadRequest) (entities.Campaign, error) {
	start, err := parseDate(req.StartDate)
	if err != nil {
		return entities.Campaign{}, fmt.Errorf("%w: invalid start_date", domainerrors.ErrValidation)
	}
	end, err := parseDate(req.EndDate)
	if err != nil {
		return entities.Campaign{}, fmt.Errorf("%w: invalid end_date", domainerrors.ErrValidation)
	}
	return entities.Campaign{
		Title:                req.Title,
		ContentType:          entities.ContentType(req.ContentType),
		Budget:               req.Budget,
		Platforms:            append([]string(nil), req.Platforms...),
		StartDate:            start,
		EndDate:              end,
		BriefOriginal:        req.BriefOriginal,
		BriefRepurposed:      req.BriefRepurposed,
		Guidelines:           req.Guidelines,
		HashtagsOriginal:     append([]string(nil), req.HashtagsOriginal...),
		HashtagsRepurposed:   append([]string(nil), req.HashtagsRepurposed...),
		RateOriginal:         req.RateOriginal,
		RateRepurposed:       req.RateRepurposed,
		MinViews:             req.MinViews,
		AllocationOriginal:   req.AllocationOriginal,
		AllocationRepurposed: req.AllocationRepurposed,
	}, nil
}

func parseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, nil
	}
	if parsed, err := time.Parse(time.RFC3339, value); err == nil {
		return parsed.UTC(), nil
	}
	parsed, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, err
	}
	return parsed.UTC(), nil
}

func formatDate(value time.Time) string {
	if value.IsZero() {
		return ""
	}
	return value.UTC().Format("2006-01-02")
}

func formatTime(value time.Time) string {
	if value.IsZero() {
		return ""
	}
	return value.UTC().Format(time.RFC3339)
}

func formatOptionalTime(value *time.Time) string {
	if value == nil {
		return ""
	}
	return formatTime(*value)
}
