package httpserver

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	campaignreview "opsdesk/contexts/marketplace-ops/campaign-review-service"
	"opsdesk/contexts/marketplace-ops/campaign-review-service/application/commands"
	console "opsdesk/contexts/marketplace-ops/console-service"

	httpSwagger "github.com/swaggo/http-swagger"
	_ "opsdesk/internal/platform/httpserver/docs"
)

type Server struct {
	mux     *http.ServeMux
	logger  *slog.Logger
	addr    string
	review  campaignreview.Module
	console console.Module
}

func New(
	review campaignreview.Module,
	consoleModule console.Module,
	logger *slog.Logger,
	addr string,
) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if addr == "" {
		addr = ":8080"
	}

	s := &Server{
		mux:     http.NewServeMux(),
		logger:  logger,
		addr:    addr,
		review:  review,
		console: consoleModule,
	}
	s.registerRoutes()
	return s
}

func (s *Server) Start() error {
	s.logger.Info("http server starting",
		"event", "http_server_starting",
		"module", "internal/platform/httpserver",
		"layer", "platform",
		"addr", s.addr,
	)
	return http.ListenAndServe(s.addr, s.mux)
}

func (s *Server) registerRoutes() {
	s.mux.Handle("/swagger/", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	s.mux.HandleFunc("GET /api/campaigns", s.handleListCampaigns)
	s.mux.HandleFunc("POST /api/campaigns", s.handleCreateDraft)
	s.mux.HandleFunc("GET /api/campaigns/{campaign_id}", s.handleGetCampaign)
	s.mux.HandleFunc("POST /api/campaigns/{campaign_id}/submit", s.handleSubmitCampaign)
	s.mux.HandleFunc("POST /api/campaigns/{campaign_id}/approve", s.handleApproveCampaign)
	s.mux.HandleFunc("POST /api/campaigns/{campaign_id}/reject", s.handleRejectCampaign)
	s.mux.HandleFunc("POST /api/campaigns/{campaign_id}/pause", s.handlePauseCampaign)
	s.mux.HandleFunc("POST /api/campaigns/{campaign_id}/resume", s.handleResumeCampaign)
	s.mux.HandleFunc("POST /api/campaigns/{campaign_id}/complete", s.handleCompleteCampaign)

	s.mux.HandleFunc("POST /api/campaigns/{campaign_id}/edits", s.handleSubmitEdit)
	s.mux.HandleFunc("GET /api/campaigns/{campaign_id}/edits", s.handleListCampaignEdits)
	s.mux.HandleFunc("GET /api/edits/pending", s.handleListPendingEdits)
	s.mux.HandleFunc("GET /api/edits/{edit_id}", s.handleGetEditSummary)
	s.mux.HandleFunc("POST /api/edits/{edit_id}/approve", s.handleApproveEdit)
	s.mux.HandleFunc("POST /api/edits/{edit_id}/reject", s.handleRejectEdit)

	s.mux.HandleFunc("GET /api/console/collections/{collection}", s.handleConsoleCollection)
	s.mux.HandleFunc("GET /api/console/campaigns/{campaign_id}", s.handleConsoleDetail)
	s.mux.HandleFunc("POST /api/console/refresh", s.handleConsoleRefresh)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// resolveActor reads the caller identity forwarded by the edge proxy.
func resolveActor(r *http.Request) commands.Actor {
	return commands.Actor{
		ID:   strings.TrimSpace(r.Header.Get("X-User-Id")),
		Role: strings.TrimSpace(strings.ToLower(r.Header.Get("X-User-Role"))),
	}
}
