package queries

import (
	"context"
	"log/slog"
	"strings"

	"opsdesk/contexts/marketplace-ops/campaign-review-service/domain/entities"
	"opsdesk/contexts/marketplace-ops/campaign-review-service/ports"
)

type CampaignDetail struct {
	Campaign entities.Campaign
	Creators []entities.CampaignCreator
	Targets  entities.ViewTargets
}

type GetCampaignUseCase struct {
	Campaigns ports.CampaignRepository
	Creators  ports.CreatorRepository
	Logger    *slog.Logger
}

// Execute loads a campaign with its join records. CreatorsJoined is
// recomputed from the rows and the view targets are derived fresh from
// budget, rates and allocation.
func (uc GetCampaignUseCase) Execute(ctx context.Context, campaignID string) (CampaignDetail, error) {
	campaign, err := uc.Campaigns.GetCampaign(ctx, strings.TrimSpace(campaignID))
	if err != nil {
		return CampaignDetail{}, err
	}
	creators, err := uc.Creators.ListCreatorsByCampaign(ctx, campaign.CampaignID)
	if err != nil {
		return CampaignDetail{}, err
	}
	campaign.Metrics.CreatorsJoined = entities.ActiveCreatorCount(creators)
	return CampaignDetail{
		Campaign: campaign,
		Creators: creators,
		Targets:  campaign.ViewTargets(),
	}, nil
}
