package queries

import (
	"context"
	"log/slog"
	"strings"

	"opsdesk/contexts/marketplace-ops/campaign-review-service/domain/entities"
	"opsdesk/contexts/marketplace-ops/campaign-review-service/ports"
)

type ListEditRequestsUseCase struct {
	Edits  ports.EditRequestRepository
	Logger *slog.Logger
}

func (uc ListEditRequestsUseCase) Pending(ctx context.Context) ([]entities.EditRequest, error) {
	return uc.Edits.ListPendingEditRequests(ctx)
}

func (uc ListEditRequestsUseCase) ByCampaign(ctx context.Context, campaignID string) ([]entities.EditRequest, error) {
	return uc.Edits.ListEditRequestsByCampaign(ctx, strings.TrimSpace(campaignID))
}

// EditSummary is the reviewer-facing diff view. Values come from the stored
// proposal payload through the legacy-tolerant accessors; rendering it never
// mutates the request or the campaign.
type EditSummary struct {
	Request              entities.EditRequest
	Platforms            []string
	Budget               int64
	MinViews             int64
	GuidelinesOriginal   string
	GuidelinesRepurposed string
	HashtagsOriginal     []string
	HashtagsRepurposed   []string
}

type GetEditRequestUseCase struct {
	Edits  ports.EditRequestRepository
	Logger *slog.Logger
}

func (uc GetEditRequestUseCase) Execute(ctx context.Context, editID string) (EditSummary, error) {
	request, err := uc.Edits.GetEditRequest(ctx, strings.TrimSpace(editID))
	if err != nil {
		return EditSummary{}, err
	}
	raw, err := uc.Edits.RawNewData(ctx, request.EditID)
	if err != nil {
		return EditSummary{}, err
	}
	view, err := entities.ParsePayloadView(raw)
	if err != nil {
		return EditSummary{}, err
	}
	return EditSummary{
		Request:              request,
		Platforms:            view.Platforms(),
		Budget:               view.Budget(),
		MinViews:             view.MinViews(),
		GuidelinesOriginal:   view.ContentGuidelines(entities.ContentTypeOriginal),
		GuidelinesRepurposed: view.ContentGuidelines(entities.ContentTypeRepurposed),
		HashtagsOriginal:     view.Hashtags(entities.ContentTypeOriginal),
		HashtagsRepurposed:   view.Hashtags(entities.ContentTypeRepurposed),
	}, nil
}
