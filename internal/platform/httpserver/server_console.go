package httpserver

import (
	"errors"
	"net/http"
	"strconv"

	consoleerrors "opsdesk/contexts/marketplace-ops/console-service/domain/errors"
	consolehttp "opsdesk/contexts/marketplace-ops/console-service/transport/http"
)

func (s *Server) handleConsoleCollection(w http.ResponseWriter, r *http.Request) {
	page := 0
	if pageRaw := r.URL.Query().Get("page"); pageRaw != "" {
		parsed, err := strconv.Atoi(pageRaw)
		if err != nil || parsed < 0 {
			writeConsoleError(w, http.StatusBadRequest, "invalid_page", "page must be a non-negative integer")
			return
		}
		page = parsed
	}

	resp, err := s.console.Handler.GetCollectionHandler(r.Context(), r.PathValue("collection"), page)
	if err != nil {
		writeConsoleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleConsoleDetail(w http.ResponseWriter, r *http.Request) {
	resp, err := s.console.Handler.GetCampaignDetailHandler(r.Context(), r.PathValue("campaign_id"))
	if err != nil {
		writeConsoleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleConsoleRefresh(w http.ResponseWriter, r *http.Request) {
	resp, err := s.console.Handler.RefreshHandler(r.Context())
	if err != nil {
		writeConsoleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeConsoleDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, consoleerrors.ErrUnknownCollection):
		writeConsoleError(w, http.StatusNotFound, "unknown_collection", err.Error())
	case errors.Is(err, consoleerrors.ErrCampaignNotFound):
		writeConsoleError(w, http.StatusNotFound, "campaign_not_found", err.Error())
	case errors.Is(err, consoleerrors.ErrMutationDisabledOnFallbackData):
		writeConsoleError(w, http.StatusConflict, "mutation_disabled_on_fallback_data", err.Error())
	case errors.Is(err, consoleerrors.ErrNoFallbackAvailable):
		writeConsoleError(w, http.StatusServiceUnavailable, "no_fallback_available", err.Error())
	case errors.Is(err, consoleerrors.ErrSourceUnavailable):
		writeConsoleError(w, http.StatusServiceUnavailable, "source_unavailable", err.Error())
	default:
		writeConsoleError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writeConsoleError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, consolehttp.ErrorResponse{
		Code:    code,
		Message: message,
	})
}
