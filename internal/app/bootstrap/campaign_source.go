package bootstrap

import (
	"context"
	"errors"
	"fmt"

	"opsdesk/contexts/marketplace-ops/campaign-review-service/application/queries"
	reviewentities "opsdesk/contexts/marketplace-ops/campaign-review-service/domain/entities"
	reviewerrors "opsdesk/contexts/marketplace-ops/campaign-review-service/domain/errors"
	consoleentities "opsdesk/contexts/marketplace-ops/console-service/domain/entities"
	consoleerrors "opsdesk/contexts/marketplace-ops/console-service/domain/errors"
)

// campaignSource adapts the review service's query side to the console's
// CampaignSource port. Contexts never import each other; this glue is the
// one place both vocabularies meet, so the status-to-collection mapping and
// the error translation both live here.
type campaignSource struct {
	list   queries.ListCampaignsUseCase
	detail queries.GetCampaignUseCase
}

func (s campaignSource) ListCollection(ctx context.Context, collection consoleentities.Collection) ([]consoleentities.CampaignSummary, error) {
	statuses, err := collectionStatuses(collection)
	if err != nil {
		return nil, err
	}
	items, err := s.list.Execute(ctx, queries.ListCampaignsQuery{Statuses: statuses})
	if err != nil {
		return nil, translateSourceError(err)
	}
	summaries := make([]consoleentities.CampaignSummary, 0, len(items))
	for _, item := range items {
		summaries = append(summaries, toSummary(item))
	}
	return summaries, nil
}

func (s campaignSource) GetDetail(ctx context.Context, campaignID string) (consoleentities.CampaignDetail, error) {
	detail, err := s.detail.Execute(ctx, campaignID)
	if err != nil {
		return consoleentities.CampaignDetail{}, translateSourceError(err)
	}
	creators := make([]consoleentities.CreatorRow, 0, len(detail.Creators))
	for _, creator := range detail.Creators {
		creators = append(creators, consoleentities.CreatorRow{
			CreatorID: creator.CreatorID,
			Status:    string(creator.Status),
			Platforms: append([]string(nil), creator.Platforms...),
		})
	}
	return consoleentities.CampaignDetail{
		Summary:  toSummary(detail.Campaign),
		Creators: creators,
	}, nil
}

func collectionStatuses(collection consoleentities.Collection) ([]reviewentities.CampaignStatus, error) {
	switch collection {
	case consoleentities.CollectionPending:
		return []reviewentities.CampaignStatus{reviewentities.CampaignStatusPendingApproval}, nil
	case consoleentities.CollectionActive:
		return []reviewentities.CampaignStatus{
			reviewentities.CampaignStatusActive,
			reviewentities.CampaignStatusPaused,
		}, nil
	case consoleentities.CollectionCompleted:
		return []reviewentities.CampaignStatus{
			reviewentities.CampaignStatusCompleted,
			reviewentities.CampaignStatusRejected,
		}, nil
	default:
		return nil, fmt.Errorf("%w: %q", consoleerrors.ErrUnknownCollection, collection)
	}
}

// translateSourceError folds the gateway's absorbable read failures into
// the console's single fallback trigger and renames definitive misses into
// the console's vocabulary. Everything else crosses unchanged.
func translateSourceError(err error) error {
	if errors.Is(err, reviewerrors.ErrStoreUnavailable) || errors.Is(err, reviewerrors.ErrStoreSchemaUnavailable) {
		return fmt.Errorf("%w: %v", consoleerrors.ErrSourceUnavailable, err)
	}
	if errors.Is(err, reviewerrors.ErrCampaignNotFound) {
		return fmt.Errorf("%w: %v", consoleerrors.ErrCampaignNotFound, err)
	}
	return err
}

func toSummary(item reviewentities.Campaign) consoleentities.CampaignSummary {
	return consoleentities.CampaignSummary{
		CampaignID:     item.CampaignID,
		BrandID:        item.BrandID,
		Title:          item.Title,
		Status:         string(item.Status),
		ContentType:    string(item.ContentType),
		Budget:         item.Budget,
		Platforms:      append([]string(nil), item.Platforms...),
		StartDate:      item.StartDate,
		EndDate:        item.EndDate,
		CreatorsJoined: item.Metrics.CreatorsJoined,
		Views:          item.Metrics.Views,
		PauseReason:    item.PauseReason,
		UpdatedAt:      item.UpdatedAt,
	}
}
