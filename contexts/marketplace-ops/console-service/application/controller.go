package application

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"opsdesk/contexts/marketplace-ops/console-service/domain/entities"
	domainerrors "opsdesk/contexts/marketplace-ops/console-service/domain/errors"
)

const defaultPageSize = 20

// Page is one window of a collection snapshot together with the provenance
// of the snapshot it was cut from.
type Page struct {
	Collection entities.Collection
	Items      []entities.CampaignSummary
	PageIndex  int
	PageSize   int
	TotalItems int
	Stale      bool
	MockData   bool
	FetchedAt  time.Time
}

// Mutation is a write the controller dispatches on behalf of the console
// user. The returned summary, when non-nil, replaces the local row.
type Mutation func(ctx context.Context) (*entities.CampaignSummary, error)

// Controller orchestrates the three console collections: independent page
// cursors over a shared page size, background polling, manual refresh, and
// the mutation gate that keeps fallback data read-only.
type Controller struct {
	resilience   Resilience
	pageSize     int
	pollInterval time.Duration
	logger       *slog.Logger

	mu          sync.Mutex
	collections map[entities.Collection]entities.Snapshot
	cursors     map[entities.Collection]int
	inFlight    map[string]struct{}
}

func NewController(resilience Resilience, pageSize int, pollInterval time.Duration, logger *slog.Logger) *Controller {
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	return &Controller{
		resilience:   resilience,
		pageSize:     pageSize,
		pollInterval: pollInterval,
		logger:       resolveLogger(logger),
		collections:  make(map[entities.Collection]entities.Snapshot),
		cursors:      make(map[entities.Collection]int),
		inFlight:     make(map[string]struct{}),
	}
}

// Page returns the current window of a collection, fetching the collection
// first if it has never been loaded.
func (c *Controller) Page(ctx context.Context, collection entities.Collection) (Page, error) {
	if !entities.IsSupportedCollection(collection) {
		return Page{}, fmt.Errorf("%w: %q", domainerrors.ErrUnknownCollection, collection)
	}

	c.mu.Lock()
	snapshot, loaded := c.collections[collection]
	c.mu.Unlock()
	if !loaded {
		refreshed, err := c.Refresh(ctx, collection)
		if err != nil {
			return Page{}, err
		}
		snapshot = refreshed
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pageLocked(collection, snapshot), nil
}

// NextPage and PrevPage move a collection's cursor; each collection keeps
// its own cursor so paging one list never disturbs the others.
func (c *Controller) NextPage(ctx context.Context, collection entities.Collection) (Page, error) {
	return c.movePage(ctx, collection, 1)
}

func (c *Controller) PrevPage(ctx context.Context, collection entities.Collection) (Page, error) {
	return c.movePage(ctx, collection, -1)
}

func (c *Controller) movePage(ctx context.Context, collection entities.Collection, delta int) (Page, error) {
	page, err := c.Page(ctx, collection)
	if err != nil {
		return Page{}, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	cursor := c.cursors[collection] + delta
	if cursor < 0 {
		cursor = 0
	}
	if max := lastPageIndex(page.TotalItems, c.pageSize); cursor > max {
		cursor = max
	}
	c.cursors[collection] = cursor
	return c.pageLocked(collection, c.collections[collection]), nil
}

// Refresh fetches a collection through the resilience layer and merges the
// result into local state. Rows with an in-flight mutation keep their local
// copy; a background poll must not clobber a write that has not landed yet.
func (c *Controller) Refresh(ctx context.Context, collection entities.Collection) (entities.Snapshot, error) {
	snapshot, err := c.resilience.ListCollection(ctx, collection)
	if err != nil {
		return entities.Snapshot{}, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	previous, hadPrevious := c.collections[collection]
	if hadPrevious && len(c.inFlight) > 0 {
		snapshot.Items = mergeSkippingInFlight(previous.Items, snapshot.Items, c.inFlight)
	}
	c.collections[collection] = snapshot
	if max := lastPageIndex(len(snapshot.Items), c.pageSize); c.cursors[collection] > max {
		c.cursors[collection] = max
	}
	return snapshot, nil
}

// RefreshAll is the manual-refresh entry point. It refreshes every
// collection and returns the first error encountered.
func (c *Controller) RefreshAll(ctx context.Context) error {
	for _, collection := range []entities.Collection{
		entities.CollectionPending,
		entities.CollectionActive,
		entities.CollectionCompleted,
	} {
		if _, err := c.Refresh(ctx, collection); err != nil {
			return err
		}
	}
	return nil
}

// Run polls all collections on a fixed interval until the context ends.
func (c *Controller) Run(ctx context.Context) {
	interval := c.pollInterval
	if interval <= 0 {
		interval = 30 * time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := c.RefreshAll(ctx); err != nil {
				c.logger.Error("console poll refresh failed",
					"event", "console_poll_failed",
					"module", "marketplace-ops/console-service",
					"layer", "application",
					"error", err.Error(),
				)
			}
		}
	}
}

// Detail reads one campaign through the resilience layer.
func (c *Controller) Detail(ctx context.Context, campaignID string) (entities.DetailSnapshot, error) {
	return c.resilience.GetDetail(ctx, campaignID)
}

// RunMutation gates and dispatches a write against a campaign currently
// shown in a collection. If the row came from a stale or mock snapshot the
// mutation is rejected before any engine sees it; provenance is stripped
// from records everywhere else, so this is the only point that can check.
// The dispatch runs on a non-cancellable context: once a write starts it
// runs to completion even if the caller goes away, and its result is
// applied to local state.
func (c *Controller) RunMutation(ctx context.Context, campaignID string, mutation Mutation) error {
	c.mu.Lock()
	for _, snapshot := range c.collections {
		if !snapshot.Stale && !snapshot.MockData {
			continue
		}
		for _, item := range snapshot.Items {
			if item.CampaignID == campaignID {
				c.mu.Unlock()
				return fmt.Errorf("%w: campaign %s", domainerrors.ErrMutationDisabledOnFallbackData, campaignID)
			}
		}
	}
	c.inFlight[campaignID] = struct{}{}
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		delete(c.inFlight, campaignID)
		c.mu.Unlock()
	}()

	updated, err := mutation(context.WithoutCancel(ctx))
	if err != nil {
		return err
	}
	if updated != nil {
		c.applyResult(*updated)
	}
	return nil
}

// applyResult replaces the local copy of a row with the canonical record a
// mutation returned. A row whose status moved to another collection is
// dropped from its old list; the next refresh places it.
func (c *Controller) applyResult(updated entities.CampaignSummary) {
	c.mu.Lock()
	defer c.mu.Unlock()

	target := collectionForStatus(updated.Status)
	for collection, snapshot := range c.collections {
		items := snapshot.Items[:0:0]
		for _, item := range snapshot.Items {
			if item.CampaignID != updated.CampaignID {
				items = append(items, item)
				continue
			}
			if collection == target {
				items = append(items, updated)
			}
		}
		snapshot.Items = items
		c.collections[collection] = snapshot
	}
}

func (c *Controller) pageLocked(collection entities.Collection, snapshot entities.Snapshot) Page {
	cursor := c.cursors[collection]
	start := cursor * c.pageSize
	if start > len(snapshot.Items) {
		start = len(snapshot.Items)
	}
	end := start + c.pageSize
	if end > len(snapshot.Items) {
		end = len(snapshot.Items)
	}
	return Page{
		Collection: collection,
		Items:      snapshot.Items[start:end],
		PageIndex:  cursor,
		PageSize:   c.pageSize,
		TotalItems: len(snapshot.Items),
		Stale:      snapshot.Stale,
		MockData:   snapshot.MockData,
		FetchedAt:  snapshot.FetchedAt,
	}
}

func mergeSkippingInFlight(previous, fresh []entities.CampaignSummary, inFlight map[string]struct{}) []entities.CampaignSummary {
	local := make(map[string]entities.CampaignSummary, len(previous))
	for _, item := range previous {
		local[item.CampaignID] = item
	}
	merged := make([]entities.CampaignSummary, 0, len(fresh))
	for _, item := range fresh {
		if _, busy := inFlight[item.CampaignID]; busy {
			if kept, ok := local[item.CampaignID]; ok {
				merged = append(merged, kept)
				continue
			}
		}
		merged = append(merged, item)
	}
	return merged
}

func collectionForStatus(status string) entities.Collection {
	switch status {
	case "pending_approval":
		return entities.CollectionPending
	case "active", "paused":
		return entities.CollectionActive
	case "completed", "rejected":
		return entities.CollectionCompleted
	default:
		return ""
	}
}

func lastPageIndex(total, pageSize int) int {
	if total <= 0 {
		return 0
	}
	return (total - 1) / pageSize
}
