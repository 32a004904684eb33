package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"opsdesk/contexts/marketplace-ops/campaign-review-service/domain/entities"
	reviewerrors "opsdesk/contexts/marketplace-ops/campaign-review-service/domain/errors"
	reviewhttp "opsdesk/contexts/marketplace-ops/campaign-review-service/transport/http"
	consoleentities "opsdesk/contexts/marketplace-ops/console-service/domain/entities"
)

func (s *Server) handleListCampaigns(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	var statuses []entities.CampaignStatus
	for _, raw := range query["status"] {
		statuses = append(statuses, entities.NormalizeStatus(raw))
	}

	limit := 0
	if limitRaw := query.Get("limit"); limitRaw != "" {
		parsed, err := strconv.Atoi(limitRaw)
		if err != nil {
			writeReviewError(w, http.StatusBadRequest, "invalid_limit", "limit must be an integer")
			return
		}
		limit = parsed
	}
	offset := 0
	if offsetRaw := query.Get("offset"); offsetRaw != "" {
		parsed, err := strconv.Atoi(offsetRaw)
		if err != nil {
			writeReviewError(w, http.StatusBadRequest, "invalid_offset", "offset must be an integer")
			return
		}
		offset = parsed
	}

	resp, err := s.review.Handler.ListCampaignsHandler(r.Context(), query.Get("brand_id"), statuses, limit, offset)
	if err != nil {
		writeReviewDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetCampaign(w http.ResponseWriter, r *http.Request) {
	campaignID := r.PathValue("campaign_id")
	resp, err := s.review.Handler.GetCampaignHandler(r.Context(), campaignID)
	if err != nil {
		writeReviewDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCreateDraft(w http.ResponseWriter, r *http.Request) {
	actor := resolveActor(r)
	if actor.ID == "" {
		writeReviewError(w, http.StatusUnauthorized, "missing_user", "X-User-Id header is required")
		return
	}

	var req reviewhttp.CampaignPayloadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeReviewError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.review.Handler.CreateDraftHandler(r.Context(), actor, req)
	if err != nil {
		writeReviewDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleSubmitCampaign(w http.ResponseWriter, r *http.Request) {
	actor := resolveActor(r)
	if actor.ID == "" {
		writeReviewError(w, http.StatusUnauthorized, "missing_user", "X-User-Id header is required")
		return
	}

	campaignID := r.PathValue("campaign_id")
	var resp reviewhttp.SubmitCampaignResponse
	err := s.console.Controller.RunMutation(r.Context(), campaignID, func(ctx context.Context) (*consoleentities.CampaignSummary, error) {
		out, err := s.review.Handler.SubmitCampaignHandler(ctx, actor, campaignID)
		if err != nil {
			return nil, err
		}
		resp = out
		return consoleRow(out.Campaign), nil
	})
	if err != nil {
		writeMutationError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleApproveCampaign(w http.ResponseWriter, r *http.Request) {
	actor := resolveActor(r)
	if actor.ID == "" {
		writeReviewError(w, http.StatusUnauthorized, "missing_user", "X-User-Id header is required")
		return
	}

	var req reviewhttp.ApproveCampaignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeReviewError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	campaignID := r.PathValue("campaign_id")
	var resp reviewhttp.ReviewCampaignResponse
	err := s.console.Controller.RunMutation(r.Context(), campaignID, func(ctx context.Context) (*consoleentities.CampaignSummary, error) {
		out, err := s.review.Handler.ApproveCampaignHandler(ctx, actor, campaignID, req)
		if err != nil {
			return nil, err
		}
		resp = out
		return consoleRow(out.Campaign), nil
	})
	if err != nil {
		writeMutationError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleRejectCampaign(w http.ResponseWriter, r *http.Request) {
	actor := resolveActor(r)
	if actor.ID == "" {
		writeReviewError(w, http.StatusUnauthorized, "missing_user", "X-User-Id header is required")
		return
	}

	var req reviewhttp.RejectCampaignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeReviewError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	campaignID := r.PathValue("campaign_id")
	var resp reviewhttp.ReviewCampaignResponse
	err := s.console.Controller.RunMutation(r.Context(), campaignID, func(ctx context.Context) (*consoleentities.CampaignSummary, error) {
		out, err := s.review.Handler.RejectCampaignHandler(ctx, actor, campaignID, req)
		if err != nil {
			return nil, err
		}
		resp = out
		return consoleRow(out.Campaign), nil
	})
	if err != nil {
		writeMutationError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handlePauseCampaign(w http.ResponseWriter, r *http.Request) {
	actor := resolveActor(r)
	if actor.ID == "" {
		writeReviewError(w, http.StatusUnauthorized, "missing_user", "X-User-Id header is required")
		return
	}

	var req reviewhttp.StatusActionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeReviewError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	campaignID := r.PathValue("campaign_id")
	var resp reviewhttp.ReviewCampaignResponse
	err := s.console.Controller.RunMutation(r.Context(), campaignID, func(ctx context.Context) (*consoleentities.CampaignSummary, error) {
		out, err := s.review.Handler.PauseCampaignHandler(ctx, actor, campaignID, req)
		if err != nil {
			return nil, err
		}
		resp = out
		return consoleRow(out.Campaign), nil
	})
	if err != nil {
		writeMutationError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleResumeCampaign(w http.ResponseWriter, r *http.Request) {
	actor := resolveActor(r)
	if actor.ID == "" {
		writeReviewError(w, http.StatusUnauthorized, "missing_user", "X-User-Id header is required")
		return
	}

	campaignID := r.PathValue("campaign_id")
	var resp reviewhttp.ReviewCampaignResponse
	err := s.console.Controller.RunMutation(r.Context(), campaignID, func(ctx context.Context) (*consoleentities.CampaignSummary, error) {
		out, err := s.review.Handler.ResumeCampaignHandler(ctx, actor, campaignID)
		if err != nil {
			return nil, err
		}
		resp = out
		return consoleRow(out.Campaign), nil
	})
	if err != nil {
		writeMutationError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCompleteCampaign(w http.ResponseWriter, r *http.Request) {
	actor := resolveActor(r)
	if actor.ID == "" {
		writeReviewError(w, http.StatusUnauthorized, "missing_user", "X-User-Id header is required")
		return
	}

	req := reviewhttp.StatusActionRequest{}
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeReviewError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
			return
		}
	}

	campaignID := r.PathValue("campaign_id")
	var resp reviewhttp.ReviewCampaignResponse
	err := s.console.Controller.RunMutation(r.Context(), campaignID, func(ctx context.Context) (*consoleentities.CampaignSummary, error) {
		out, err := s.review.Handler.CompleteCampaignHandler(ctx, actor, campaignID, req)
		if err != nil {
			return nil, err
		}
		resp = out
		return consoleRow(out.Campaign), nil
	})
	if err != nil {
		writeMutationError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeReviewDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, reviewerrors.ErrCampaignNotFound):
		writeReviewError(w, http.StatusNotFound, "campaign_not_found", err.Error())
	case errors.Is(err, reviewerrors.ErrEditNotFound):
		writeReviewError(w, http.StatusNotFound, "edit_not_found", err.Error())
	case errors.Is(err, reviewerrors.ErrEditAlreadyResolved):
		writeReviewError(w, http.StatusConflict, "edit_already_resolved", err.Error())
	case errors.Is(err, reviewerrors.ErrInvalidTransition):
		writeReviewError(w, http.StatusConflict, "invalid_transition", err.Error())
	case errors.Is(err, reviewerrors.ErrValidation):
		writeReviewError(w, http.StatusUnprocessableEntity, "validation_failed", err.Error())
	case errors.Is(err, reviewerrors.ErrUnauthorized):
		writeReviewError(w, http.StatusForbidden, "forbidden", err.Error())
	case errors.Is(err, reviewerrors.ErrStoreSchemaUnavailable),
		errors.Is(err, reviewerrors.ErrStoreUnavailable):
		writeReviewError(w, http.StatusServiceUnavailable, "store_unavailable", err.Error())
	case errors.Is(err, reviewerrors.ErrStoreWriteFailure):
		writeReviewError(w, http.StatusBadGateway, "store_write_failed", err.Error())
	default:
		writeReviewError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writeReviewError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, reviewhttp.ErrorResponse{
		Code:    code,
		Message: message,
	})
}
