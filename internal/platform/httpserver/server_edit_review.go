package httpserver

import (
	"context"
	"encoding/json"
	"net/http"

	reviewhttp "opsdesk/contexts/marketplace-ops/campaign-review-service/transport/http"
	consoleentities "opsdesk/contexts/marketplace-ops/console-service/domain/entities"
)

func (s *Server) handleSubmitEdit(w http.ResponseWriter, r *http.Request) {
	actor := resolveActor(r)
	if actor.ID == "" {
		writeReviewError(w, http.StatusUnauthorized, "missing_user", "X-User-Id header is required")
		return
	}

	var req reviewhttp.SubmitEditRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeReviewError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	campaignID := r.PathValue("campaign_id")
	var resp reviewhttp.SubmitEditResponse
	err := s.console.Controller.RunMutation(r.Context(), campaignID, func(ctx context.Context) (*consoleentities.CampaignSummary, error) {
		out, err := s.review.Handler.SubmitEditHandler(ctx, actor, campaignID, req)
		if err != nil {
			return nil, err
		}
		resp = out
		// The live campaign is untouched until a reviewer approves.
		return nil, nil
	})
	if err != nil {
		writeMutationError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleListCampaignEdits(w http.ResponseWriter, r *http.Request) {
	resp, err := s.review.Handler.ListCampaignEditsHandler(r.Context(), r.PathValue("campaign_id"))
	if err != nil {
		writeReviewDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListPendingEdits(w http.ResponseWriter, r *http.Request) {
	resp, err := s.review.Handler.ListPendingEditsHandler(r.Context())
	if err != nil {
		writeReviewDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetEditSummary(w http.ResponseWriter, r *http.Request) {
	resp, err := s.review.Handler.GetEditSummaryHandler(r.Context(), r.PathValue("edit_id"))
	if err != nil {
		writeReviewDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleApproveEdit(w http.ResponseWriter, r *http.Request) {
	actor := resolveActor(r)
	if actor.ID == "" {
		writeReviewError(w, http.StatusUnauthorized, "missing_user", "X-User-Id header is required")
		return
	}

	var req reviewhttp.ApproveEditRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeReviewError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	// An edit decision mutates the campaign the edit targets, so the gate
	// keys on the campaign id read from the edit request.
	editID := r.PathValue("edit_id")
	summary, err := s.review.Handler.GetEditSummaryHandler(r.Context(), editID)
	if err != nil {
		writeReviewDomainError(w, err)
		return
	}

	var resp reviewhttp.ApproveEditResponse
	err = s.console.Controller.RunMutation(r.Context(), summary.EditRequest.CampaignID, func(ctx context.Context) (*consoleentities.CampaignSummary, error) {
		out, err := s.review.Handler.ApproveEditHandler(ctx, actor, editID, req)
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

func (s *Server) handleRejectEdit(w http.ResponseWriter, r *http.Request) {
	actor := resolveActor(r)
	if actor.ID == "" {
		writeReviewError(w, http.StatusUnauthorized, "missing_user", "X-User-Id header is required")
		return
	}

	var req reviewhttp.RejectEditRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeReviewError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	editID := r.PathValue("edit_id")
	summary, err := s.review.Handler.GetEditSummaryHandler(r.Context(), editID)
	if err != nil {
		writeReviewDomainError(w, err)
		return
	}

	var resp reviewhttp.RejectEditResponse
	err = s.console.Controller.RunMutation(r.Context(), summary.EditRequest.CampaignID, func(ctx context.Context) (*consoleentities.CampaignSummary, error) {
		out, err := s.review.Handler.RejectEditHandler(ctx, actor, editID, req)
		if err != nil {
			return nil, err
		}
		resp = out
		return nil, nil
	})
	if err != nil {
		writeMutationError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
