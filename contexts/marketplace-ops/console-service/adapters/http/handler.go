package httpadapter

import (
	"context"
	"log/slog"
	"time"

	"opsdesk/contexts/marketplace-ops/console-service/application"
	"opsdesk/contexts/marketplace-ops/console-service/domain/entities"
	httptransport "opsdesk/contexts/marketplace-ops/console-service/transport/http"
)

type Handler struct {
	Controller *application.Controller
	Logger     *slog.Logger
}

func (h Handler) GetCollectionHandler(ctx context.Context, collection string, page int) (httptransport.CollectionPageResponse, error) {
	current, err := h.Controller.Page(ctx, entities.Collection(collection))
	if err != nil {
		return httptransport.CollectionPageResponse{}, err
	}
	for current.PageIndex < page && (current.PageIndex+1)*current.PageSize < current.TotalItems {
		current, err = h.Controller.NextPage(ctx, entities.Collection(collection))
		if err != nil {
			return httptransport.CollectionPageResponse{}, err
		}
	}
	for current.PageIndex > page && current.PageIndex > 0 {
		current, err = h.Controller.PrevPage(ctx, entities.Collection(collection))
		if err != nil {
			return httptransport.CollectionPageResponse{}, err
		}
	}
	return mapPage(current), nil
}

func (h Handler) GetCampaignDetailHandler(ctx context.Context, campaignID string) (httptransport.CampaignDetailResponse, error) {
	snapshot, err := h.Controller.Detail(ctx, campaignID)
	if err != nil {
		return httptransport.CampaignDetailResponse{}, err
	}
	creators := make([]httptransport.CreatorRowDTO, 0, len(snapshot.Detail.Creators))
	for _, creator := range snapshot.Detail.Creators {
		creators = append(creators, httptransport.CreatorRowDTO{
			CreatorID: creator.CreatorID,
			Status:    creator.Status,
			Platforms: creator.Platforms,
		})
	}
	return httptransport.CampaignDetailResponse{
		Campaign:  mapSummary(snapshot.Detail.Summary),
		Creators:  creators,
		IsStale:   snapshot.Stale,
		FetchedAt: snapshot.FetchedAt.UTC().Format(time.RFC3339),
	}, nil
}

func (h Handler) RefreshHandler(ctx context.Context) (httptransport.RefreshResponse, error) {
	if err := h.Controller.RefreshAll(ctx); err != nil {
		return httptransport.RefreshResponse{}, err
	}
	return httptransport.RefreshResponse{Refreshed: true}, nil
}

func mapPage(page application.Page) httptransport.CollectionPageResponse {
	items := make([]httptransport.CampaignSummaryDTO, 0, len(page.Items))
	for _, item := range page.Items {
		items = append(items, mapSummary(item))
	}
	return httptransport.CollectionPageResponse{
		Collection: string(page.Collection),
		Items:      items,
		PageIndex:  page.PageIndex,
		PageSize:   page.PageSize,
		TotalItems: page.TotalItems,
		IsStale:    page.Stale,
		IsMockData: page.MockData,
		FetchedAt:  page.FetchedAt.UTC().Format(time.RFC3339),
	}
}

func mapSummary(item entities.CampaignSummary) httptransport.CampaignSummaryDTO {
	return httptransport.CampaignSummaryDTO{
		CampaignID:     item.CampaignID,
		BrandID:        item.BrandID,
		Title:          item.Title,
		Status:         item.Status,
		ContentType:    item.ContentType,
		Budget:         item.Budget,
		Platforms:      item.Platforms,
		StartDate:      item.StartDate.UTC().Format("2006-01-02"),
		EndDate:        item.EndDate.UTC().Format("2006-01-02"),
		CreatorsJoined: item.CreatorsJoined,
		Views:          item.Views,
		PauseReason:    item.PauseReason,
		UpdatedAt:      item.UpdatedAt.UTC().Format(time.RFC3339),
	}
}
