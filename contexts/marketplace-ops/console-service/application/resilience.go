package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"opsdesk/contexts/marketplace-ops/console-service/domain/entities"
	domainerrors "opsdesk/contexts/marketplace-ops/console-service/domain/errors"
	"opsdesk/contexts/marketplace-ops/console-service/ports"
)

// Resilience wraps every console read with a bounded wait and a fallback
// policy. Mock synthesis lives here and nowhere else; no other component may
// decide to fabricate data.
type Resilience struct {
	Source      ports.CampaignSource
	Cache       ports.FallbackCache
	ReadTimeout time.Duration
	Clock       ports.Clock
	Logger      *slog.Logger
}

func (r Resilience) ListCollection(ctx context.Context, collection entities.Collection) (entities.Snapshot, error) {
	logger := resolveLogger(r.Logger)
	if !entities.IsSupportedCollection(collection) {
		return entities.Snapshot{}, fmt.Errorf("%w: %q", domainerrors.ErrUnknownCollection, collection)
	}

	readCtx, cancel := r.bound(ctx)
	defer cancel()

	items, err := r.Source.ListCollection(readCtx, collection)
	if err == nil {
		now := r.now()
		r.Cache.PutCollection(collection, items, now)
		return entities.Snapshot{
			Collection: collection,
			Items:      items,
			FetchedAt:  now,
		}, nil
	}
	if !fallbackEligible(readCtx, err) {
		return entities.Snapshot{}, err
	}

	if cached, ok := r.Cache.GetCollection(collection); ok {
		logger.Warn("serving stale console collection",
			"event", "console_collection_stale",
			"module", "marketplace-ops/console-service",
			"layer", "application",
			"collection", string(collection),
			"fetched_at", cached.FetchedAt.Format(time.RFC3339),
			"error", err.Error(),
		)
		cached.Stale = true
		return cached, nil
	}

	logger.Warn("serving mock console collection",
		"event", "console_collection_mock",
		"module", "marketplace-ops/console-service",
		"layer", "application",
		"collection", string(collection),
		"error", err.Error(),
	)
	return entities.Snapshot{
		Collection: collection,
		Items:      placeholderCollection(collection),
		MockData:   true,
		FetchedAt:  r.now(),
	}, nil
}

func (r Resilience) GetDetail(ctx context.Context, campaignID string) (entities.DetailSnapshot, error) {
	logger := resolveLogger(r.Logger)
	readCtx, cancel := r.bound(ctx)
	defer cancel()

	detail, err := r.Source.GetDetail(readCtx, campaignID)
	if err == nil {
		now := r.now()
		r.Cache.PutDetail(campaignID, detail, now)
		return entities.DetailSnapshot{Detail: detail, FetchedAt: now}, nil
	}
	if !fallbackEligible(readCtx, err) {
		return entities.DetailSnapshot{}, err
	}

	if cached, ok := r.Cache.GetDetail(campaignID); ok {
		logger.Warn("serving stale campaign detail",
			"event", "console_detail_stale",
			"module", "marketplace-ops/console-service",
			"layer", "application",
			"campaign_id", campaignID,
			"error", err.Error(),
		)
		cached.Stale = true
		return cached, nil
	}
	// Details are never synthesized; a placeholder row would invite
	// decisions about a campaign that does not exist.
	return entities.DetailSnapshot{}, fmt.Errorf("%w: campaign %s", domainerrors.ErrDetailNotCached, campaignID)
}

func (r Resilience) bound(ctx context.Context) (context.Context, context.CancelFunc) {
	timeout := r.ReadTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return context.WithTimeout(ctx, timeout)
}

func (r Resilience) now() time.Time {
	if r.Clock != nil {
		return r.Clock.Now().UTC()
	}
	return time.Now().UTC()
}

// fallbackEligible reports whether a read failure may be absorbed with
// cached or synthesized data. Only source-unavailable classifications and
// the bounded-wait timeout qualify; anything else propagates untouched.
func fallbackEligible(readCtx context.Context, err error) bool {
	if errors.Is(err, domainerrors.ErrSourceUnavailable) {
		return true
	}
	if errors.Is(err, context.DeadlineExceeded) && readCtx.Err() != nil {
		return true
	}
	return false
}

// placeholderCollection builds the deterministic mock rows for a list type.
// IDs are fixed so repeated fallbacks render identically.
func placeholderCollection(collection entities.Collection) []entities.CampaignSummary {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	switch collection {
	case entities.CollectionPending:
		return []entities.CampaignSummary{
			{
				CampaignID:  "mock-pending-1",
				BrandID:     "mock-brand-1",
				Title:       "Sample campaign awaiting review",
				Status:      "pending_approval",
				ContentType: "original",
				Budget:      5000,
				Platforms:   []string{"tiktok"},
				StartDate:   base,
				EndDate:     base.AddDate(0, 1, 0),
				UpdatedAt:   base,
			},
		}
	case entities.CollectionActive:
		return []entities.CampaignSummary{
			{
				CampaignID:  "mock-active-1",
				BrandID:     "mock-brand-1",
				Title:       "Sample live campaign",
				Status:      "active",
				ContentType: "both",
				Budget:      12000,
				Platforms:   []string{"tiktok", "instagram"},
				StartDate:   base,
				EndDate:     base.AddDate(0, 2, 0),
				UpdatedAt:   base,
			},
		}
	case entities.CollectionCompleted:
		return []entities.CampaignSummary{
			{
				CampaignID:  "mock-completed-1",
				BrandID:     "mock-brand-2",
				Title:       "Sample finished campaign",
				Status:      "completed",
				ContentType: "repurposed",
				Budget:      8000,
				Platforms:   []string{"youtube"},
				StartDate:   base.AddDate(0, -2, 0),
				EndDate:     base.AddDate(0, -1, 0),
				UpdatedAt:   base,
			},
		}
	default:
		return nil
	}
}
