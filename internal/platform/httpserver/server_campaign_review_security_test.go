package httpserver

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	campaignreview "opsdesk/contexts/marketplace-ops/campaign-review-service"
	console "opsdesk/contexts/marketplace-ops/console-service"
	consoleentities "opsdesk/contexts/marketplace-ops/console-service/domain/entities"
	consoleerrors "opsdesk/contexts/marketplace-ops/console-service/domain/errors"
)

// emptySource backs the console module with empty live collections so the
// router can be exercised without a campaign store.
type emptySource struct{}

func (emptySource) ListCollection(context.Context, consoleentities.Collection) ([]consoleentities.CampaignSummary, error) {
	return nil, nil
}

func (emptySource) GetDetail(context.Context, string) (consoleentities.CampaignDetail, error) {
	return consoleentities.CampaignDetail{}, consoleerrors.ErrCampaignNotFound
}

// flakySource serves a fixed pending collection until failing is flipped,
// after which every read reports the source unavailable.
type flakySource struct {
	mu      sync.Mutex
	failing bool
	items   []consoleentities.CampaignSummary
}

func (f *flakySource) ListCollection(_ context.Context, collection consoleentities.Collection) ([]consoleentities.CampaignSummary, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failing {
		return nil, consoleerrors.ErrSourceUnavailable
	}
	if collection == consoleentities.CollectionPending {
		return append([]consoleentities.CampaignSummary(nil), f.items...), nil
	}
	return nil, nil
}

func (f *flakySource) GetDetail(context.Context, string) (consoleentities.CampaignDetail, error) {
	return consoleentities.CampaignDetail{}, consoleerrors.ErrCampaignNotFound
}

func (f *flakySource) setFailing(failing bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failing = failing
}

func newTestServer() *Server {
	return newTestServerWithSource(emptySource{})
}

func newTestServerWithSource(source interface {
	ListCollection(context.Context, consoleentities.Collection) ([]consoleentities.CampaignSummary, error)
	GetDetail(context.Context, string) (consoleentities.CampaignDetail, error)
}) *Server {
	return New(
		campaignreview.NewInMemoryModule(nil, slog.Default()),
		console.NewModule(console.Dependencies{
			Source: source,
			Logger: slog.Default(),
		}),
		slog.Default(),
		":0",
	)
}

func TestCampaignCreateRequiresIdentity(t *testing.T) {
	server := newTestServer()
	req := httptest.NewRequest(http.MethodPost, "/api/campaigns", bytes.NewReader([]byte(`{
		"title":"Launch"
	}`)))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-Role", "brand")

	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestCampaignApproveRequiresReviewerRole(t *testing.T) {
	server := newTestServer()
	req := httptest.NewRequest(http.MethodPost, "/api/campaigns/cmp-1/approve", bytes.NewReader([]byte(`{}`)))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-Id", "brand-1")
	req.Header.Set("X-User-Role", "brand")

	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)
	if rr.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestCampaignRejectRequiresStructuredFeedback(t *testing.T) {
	server := newTestServer()
	req := httptest.NewRequest(http.MethodPost, "/api/campaigns/cmp-1/reject", bytes.NewReader([]byte(`{
		"reasons":"budget unrealistic"
	}`)))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-Id", "admin-1")
	req.Header.Set("X-User-Role", "admin")

	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)
	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestCampaignGetUnknownReturnsNotFound(t *testing.T) {
	server := newTestServer()
	req := httptest.NewRequest(http.MethodGet, "/api/campaigns/cmp-missing", nil)

	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestEditApproveRequiresIdentity(t *testing.T) {
	server := newTestServer()
	req := httptest.NewRequest(http.MethodPost, "/api/edits/edit-1/approve", bytes.NewReader([]byte(`{}`)))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-Role", "admin")

	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestConsoleUnknownCollectionReturnsNotFound(t *testing.T) {
	server := newTestServer()
	req := httptest.NewRequest(http.MethodGet, "/api/console/collections/archived", nil)

	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestMutationRoutesBlockedWhileFallbackDataShown(t *testing.T) {
	source := &flakySource{items: []consoleentities.CampaignSummary{{
		CampaignID: "cmp-1",
		BrandID:    "brand-1",
		Title:      "Launch",
		Status:     "pending_approval",
	}}}
	server := newTestServerWithSource(source)

	// Load the pending collection live, then fail the source so the next
	// refresh re-serves the snapshot as stale.
	req := httptest.NewRequest(http.MethodGet, "/api/console/collections/pending", nil)
	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200 loading collection, got %d body=%s", rr.Code, rr.Body.String())
	}

	source.setFailing(true)
	req = httptest.NewRequest(http.MethodPost, "/api/console/refresh", nil)
	rr = httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200 refreshing onto stale data, got %d body=%s", rr.Code, rr.Body.String())
	}

	// The pause route must refuse before the lifecycle engine runs: a 409
	// from the gate, not a 404 from the (empty) campaign store.
	req = httptest.NewRequest(http.MethodPost, "/api/campaigns/cmp-1/pause", bytes.NewReader([]byte(`{
		"reason":"store outage"
	}`)))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-Id", "admin-1")
	req.Header.Set("X-User-Role", "admin")
	rr = httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)
	if rr.Code != http.StatusConflict {
		t.Fatalf("expected 409 while fallback data is shown, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestConsoleDetailUnknownCampaignReturnsNotFound(t *testing.T) {
	server := newTestServer()
	req := httptest.NewRequest(http.MethodGet, "/api/console/campaigns/cmp-missing", nil)

	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestConsoleCollectionRejectsNegativePage(t *testing.T) {
	server := newTestServer()
	req := httptest.NewRequest(http.MethodGet, "/api/console/collections/pending?page=-1", nil)

	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d body=%s", rr.Code, rr.Body.String())
	}
}
