package queries

import (
	"context"
	"log/slog"
	"strings"

	application "opsdesk/contexts/marketplace-ops/campaign-review-service/application"
	"opsdesk/contexts/marketplace-ops/campaign-review-service/domain/entities"
	"opsdesk/contexts/marketplace-ops/campaign-review-service/ports"
)

type ListCampaignsQuery struct {
	BrandID  string
	Statuses []entities.CampaignStatus
	Limit    int
	Offset   int
}

type ListCampaignsUseCase struct {
	Campaigns ports.CampaignRepository
	Creators  ports.CreatorRepository
	Logger    *slog.Logger
}

// Execute lists campaigns and reconciles creators_joined against the live
// join-record counts before returning. The stored counter is never trusted.
func (uc ListCampaignsUseCase) Execute(ctx context.Context, query ListCampaignsQuery) ([]entities.Campaign, error) {
	logger := application.ResolveLogger(uc.Logger)
	items, err := uc.Campaigns.ListCampaigns(ctx, ports.CampaignFilter{
		BrandID:  strings.TrimSpace(query.BrandID),
		Statuses: query.Statuses,
		Limit:    query.Limit,
		Offset:   query.Offset,
	})
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.CampaignID)
	}
	counts, err := uc.Creators.CountActiveCreators(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range items {
		items[i].Metrics.CreatorsJoined = counts[items[i].CampaignID]
	}

	logger.Debug("campaigns listed",
		"event", "campaigns_listed",
		"module", "marketplace-ops/campaign-review-service",
		"layer", "application",
		"count", len(items),
	)
	return items, nil
}
