package unit

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	console "opsdesk/contexts/marketplace-ops/console-service"
	"opsdesk/contexts/marketplace-ops/console-service/domain/entities"
	consoleerrors "opsdesk/contexts/marketplace-ops/console-service/domain/errors"
)

// fakeSource is a programmable CampaignSource: set fail to force the
// resilience fallback path, or items to serve a live result.
type fakeSource struct {
	mu      sync.Mutex
	fail    error
	items   map[entities.Collection][]entities.CampaignSummary
	details map[string]entities.CampaignDetail
}

func (f *fakeSource) ListCollection(_ context.Context, collection entities.Collection) ([]entities.CampaignSummary, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail != nil {
		return nil, f.fail
	}
	return append([]entities.CampaignSummary(nil), f.items[collection]...), nil
}

func (f *fakeSource) GetDetail(_ context.Context, campaignID string) (entities.CampaignDetail, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail != nil {
		return entities.CampaignDetail{}, f.fail
	}
	detail, ok := f.details[campaignID]
	if !ok {
		return entities.CampaignDetail{}, errors.New("not found")
	}
	return detail, nil
}

func (f *fakeSource) setFail(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fail = err
}

func (f *fakeSource) setItems(collection entities.Collection, items []entities.CampaignSummary) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.items == nil {
		f.items = make(map[entities.Collection][]entities.CampaignSummary)
	}
	f.items[collection] = items
}

func newConsole(source *fakeSource) console.Module {
	return console.NewModule(console.Dependencies{
		Source:      source,
		ReadTimeout: time.Second,
		PageSize:    2,
	})
}

func pendingRow(id, title string) entities.CampaignSummary {
	return entities.CampaignSummary{
		CampaignID: id,
		BrandID:    "brand-1",
		Title:      title,
		Status:     "pending_approval",
	}
}

func TestConsoleServesLiveThenStale(t *testing.T) {
	source := &fakeSource{}
	source.setItems(entities.CollectionPending, []entities.CampaignSummary{pendingRow("cmp-1", "Live row")})
	module := newConsole(source)

	page, err := module.Controller.Page(context.Background(), entities.CollectionPending)
	if err != nil {
		t.Fatalf("page failed: %v", err)
	}
	if page.Stale || page.MockData {
		t.Fatalf("live result must carry no provenance flags: %+v", page)
	}
	if len(page.Items) != 1 || page.Items[0].CampaignID != "cmp-1" {
		t.Fatalf("unexpected live items: %+v", page.Items)
	}

	source.setFail(consoleerrors.ErrSourceUnavailable)
	if _, err := module.Controller.Refresh(context.Background(), entities.CollectionPending); err != nil {
		t.Fatalf("refresh with cached fallback failed: %v", err)
	}
	page, err = module.Controller.Page(context.Background(), entities.CollectionPending)
	if err != nil {
		t.Fatalf("page failed: %v", err)
	}
	if !page.Stale || page.MockData {
		t.Fatalf("expected stale cached result, got %+v", page)
	}
	if len(page.Items) != 1 || page.Items[0].CampaignID != "cmp-1" {
		t.Fatalf("stale result must re-serve cached rows, got %+v", page.Items)
	}
}

func TestConsoleMockFallbackWhenNothingCached(t *testing.T) {
	source := &fakeSource{}
	source.setFail(consoleerrors.ErrSourceUnavailable)
	module := newConsole(source)

	page, err := module.Controller.Page(context.Background(), entities.CollectionPending)
	if err != nil {
		t.Fatalf("page failed: %v", err)
	}
	if !page.MockData || page.Stale {
		t.Fatalf("expected mock result, got %+v", page)
	}
	if len(page.Items) == 0 || page.Items[0].CampaignID != "mock-pending-1" {
		t.Fatalf("mock placeholders must be deterministic, got %+v", page.Items)
	}

	// Repeated fallbacks render the same placeholders.
	again, err := module.Controller.Page(context.Background(), entities.CollectionPending)
	if err != nil {
		t.Fatalf("page failed: %v", err)
	}
	if again.Items[0].CampaignID != "mock-pending-1" {
		t.Fatalf("expected stable mock id, got %s", again.Items[0].CampaignID)
	}
}

func TestConsoleNonAbsorbableErrorsPropagate(t *testing.T) {
	source := &fakeSource{}
	boom := errors.New("schema migration gone wrong")
	source.setFail(boom)
	module := newConsole(source)

	_, err := module.Controller.Page(context.Background(), entities.CollectionPending)
	if !errors.Is(err, boom) {
		t.Fatalf("expected the raw error to propagate, got %v", err)
	}
}

func TestConsoleUnknownCollection(t *testing.T) {
	module := newConsole(&fakeSource{})

	_, err := module.Controller.Page(context.Background(), entities.Collection("archived"))
	if !errors.Is(err, consoleerrors.ErrUnknownCollection) {
		t.Fatalf("expected unknown collection, got %v", err)
	}
}

func TestConsoleDetailFallbackIsCacheOnly(t *testing.T) {
	source := &fakeSource{
		details: map[string]entities.CampaignDetail{
			"cmp-1": {Summary: pendingRow("cmp-1", "Live row")},
		},
	}
	module := newConsole(source)

	detail, err := module.Controller.Detail(context.Background(), "cmp-1")
	if err != nil {
		t.Fatalf("detail failed: %v", err)
	}
	if detail.Stale {
		t.Fatalf("live detail must not be stale")
	}

	source.setFail(consoleerrors.ErrSourceUnavailable)
	detail, err = module.Controller.Detail(context.Background(), "cmp-1")
	if err != nil {
		t.Fatalf("cached detail fallback failed: %v", err)
	}
	if !detail.Stale {
		t.Fatalf("expected stale cached detail")
	}

	// Never-seen campaigns have no fallback; details are never synthesized.
	_, err = module.Controller.Detail(context.Background(), "cmp-unknown")
	if !errors.Is(err, consoleerrors.ErrNoFallbackAvailable) {
		t.Fatalf("expected no-fallback error, got %v", err)
	}
	if !errors.Is(err, consoleerrors.ErrDetailNotCached) {
		t.Fatalf("expected detail-not-cached error, got %v", err)
	}
}

func TestMutationDisabledOnFallbackData(t *testing.T) {
	source := &fakeSource{}
	source.setFail(consoleerrors.ErrSourceUnavailable)
	module := newConsole(source)

	if _, err := module.Controller.Page(context.Background(), entities.CollectionPending); err != nil {
		t.Fatalf("page failed: %v", err)
	}

	called := false
	err := module.Controller.RunMutation(context.Background(), "mock-pending-1", func(context.Context) (*entities.CampaignSummary, error) {
		called = true
		return nil, nil
	})
	if !errors.Is(err, consoleerrors.ErrMutationDisabledOnFallbackData) {
		t.Fatalf("expected mutation disabled, got %v", err)
	}
	if called {
		t.Fatalf("gated mutation must never run")
	}
}

func TestMutationRunsAgainstLiveDataAndAppliesResult(t *testing.T) {
	source := &fakeSource{}
	source.setItems(entities.CollectionPending, []entities.CampaignSummary{pendingRow("cmp-1", "Live row")})
	module := newConsole(source)

	if _, err := module.Controller.Page(context.Background(), entities.CollectionPending); err != nil {
		t.Fatalf("page failed: %v", err)
	}

	updated := pendingRow("cmp-1", "Renamed")
	err := module.Controller.RunMutation(context.Background(), "cmp-1", func(context.Context) (*entities.CampaignSummary, error) {
		return &updated, nil
	})
	if err != nil {
		t.Fatalf("mutation failed: %v", err)
	}

	page, err := module.Controller.Page(context.Background(), entities.CollectionPending)
	if err != nil {
		t.Fatalf("page failed: %v", err)
	}
	if len(page.Items) != 1 || page.Items[0].Title != "Renamed" {
		t.Fatalf("expected mutation result applied locally, got %+v", page.Items)
	}
}

func TestRefreshKeepsRowsWithInFlightMutations(t *testing.T) {
	source := &fakeSource{}
	source.setItems(entities.CollectionPending, []entities.CampaignSummary{pendingRow("cmp-1", "Local title")})
	module := newConsole(source)

	if _, err := module.Controller.Page(context.Background(), entities.CollectionPending); err != nil {
		t.Fatalf("page failed: %v", err)
	}

	// While the mutation is in flight the source already sees a newer title;
	// the refresh must not clobber the row being mutated.
	source.setItems(entities.CollectionPending, []entities.CampaignSummary{pendingRow("cmp-1", "Remote title")})
	err := module.Controller.RunMutation(context.Background(), "cmp-1", func(ctx context.Context) (*entities.CampaignSummary, error) {
		if _, err := module.Controller.Refresh(ctx, entities.CollectionPending); err != nil {
			return nil, err
		}
		page, err := module.Controller.Page(ctx, entities.CollectionPending)
		if err != nil {
			return nil, err
		}
		if page.Items[0].Title != "Local title" {
			return nil, errors.New("refresh clobbered an in-flight row")
		}
		result := pendingRow("cmp-1", "Mutated title")
		return &result, nil
	})
	if err != nil {
		t.Fatalf("mutation failed: %v", err)
	}

	page, err := module.Controller.Page(context.Background(), entities.CollectionPending)
	if err != nil {
		t.Fatalf("page failed: %v", err)
	}
	if page.Items[0].Title != "Mutated title" {
		t.Fatalf("expected mutation result after completion, got %q", page.Items[0].Title)
	}
}

func TestCollectionCursorsAreIndependent(t *testing.T) {
	source := &fakeSource{}
	source.setItems(entities.CollectionPending, []entities.CampaignSummary{
		pendingRow("cmp-1", "One"),
		pendingRow("cmp-2", "Two"),
		pendingRow("cmp-3", "Three"),
	})
	source.setItems(entities.CollectionActive, []entities.CampaignSummary{
		{CampaignID: "cmp-a", Status: "active", Title: "Active"},
	})
	module := newConsole(source)

	next, err := module.Controller.NextPage(context.Background(), entities.CollectionPending)
	if err != nil {
		t.Fatalf("next page failed: %v", err)
	}
	if next.PageIndex != 1 || len(next.Items) != 1 || next.Items[0].CampaignID != "cmp-3" {
		t.Fatalf("expected second page with cmp-3, got %+v", next)
	}

	active, err := module.Controller.Page(context.Background(), entities.CollectionActive)
	if err != nil {
		t.Fatalf("active page failed: %v", err)
	}
	if active.PageIndex != 0 {
		t.Fatalf("paging one collection must not move another, got index %d", active.PageIndex)
	}

	// Cursor clamps at the last page.
	clamped, err := module.Controller.NextPage(context.Background(), entities.CollectionPending)
	if err != nil {
		t.Fatalf("next page failed: %v", err)
	}
	if clamped.PageIndex != 1 {
		t.Fatalf("expected cursor clamped to last page, got %d", clamped.PageIndex)
	}
}
