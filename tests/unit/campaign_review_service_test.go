package unit

import (
	"context"
	"errors"
	"testing"
	"time"

	campaignreview "opsdesk/contexts/marketplace-ops/campaign-review-service"
	"opsdesk/contexts/marketplace-ops/campaign-review-service/application/commands"
	"opsdesk/contexts/marketplace-ops/campaign-review-service/domain/entities"
	domainerrors "opsdesk/contexts/marketplace-ops/campaign-review-service/domain/errors"
	httptransport "opsdesk/contexts/marketplace-ops/campaign-review-service/transport/http"
)

var (
	brandActor    = commands.Actor{ID: "brand-1", Role: commands.RoleBrand}
	reviewerActor = commands.Actor{ID: "reviewer-1", Role: commands.RoleAdmin}
)

func draftPayload(title string, budget int64) httptransport.CampaignPayloadRequest {
	return httptransport.CampaignPayloadRequest{
		Title:         title,
		ContentType:   "original",
		Budget:        budget,
		Platforms:     []string{"tiktok"},
		StartDate:     time.Now().UTC().AddDate(0, 0, 2).Format("2006-01-02"),
		EndDate:       time.Now().UTC().AddDate(0, 1, 2).Format("2006-01-02"),
		RateOriginal:  25,
		MinViews:      1000,
		BriefOriginal: "brief",
		Guidelines:    "guidelines",
	}
}

func createDraft(t *testing.T, module campaignreview.Module, title string, budget int64) string {
	t.Helper()
	created, err := module.Handler.CreateDraftHandler(context.Background(), brandActor, draftPayload(title, budget))
	if err != nil {
		t.Fatalf("create draft failed: %v", err)
	}
	return created.Campaign.CampaignID
}

func submitCampaign(t *testing.T, module campaignreview.Module, campaignID string) httptransport.SubmitCampaignResponse {
	t.Helper()
	resp, err := module.Handler.SubmitCampaignHandler(context.Background(), brandActor, campaignID)
	if err != nil {
		t.Fatalf("submit campaign failed: %v", err)
	}
	return resp
}

func TestSubmitCampaignBudgetValidation(t *testing.T) {
	module := campaignreview.NewInMemoryModule(nil, nil)

	tooSmall := createDraft(t, module, "Launch", 500)
	_, err := module.Handler.SubmitCampaignHandler(context.Background(), brandActor, tooSmall)
	if !errors.Is(err, domainerrors.ErrValidation) {
		t.Fatalf("expected validation error for budget 500, got %v", err)
	}

	ok := createDraft(t, module, "Launch", 2000)
	resp := submitCampaign(t, module, ok)
	if resp.Campaign.Status != string(entities.CampaignStatusPendingApproval) {
		t.Fatalf("expected pending_approval, got %s", resp.Campaign.Status)
	}
	if resp.Campaign.SubmittedAt == "" {
		t.Fatalf("expected submitted_at to be set")
	}
}

func TestSubmitRequiresDraftStatus(t *testing.T) {
	module := campaignreview.NewInMemoryModule(nil, nil)

	campaignID := createDraft(t, module, "Launch", 2000)
	submitCampaign(t, module, campaignID)

	_, err := module.Handler.SubmitCampaignHandler(context.Background(), brandActor, campaignID)
	if !errors.Is(err, domainerrors.ErrInvalidTransition) {
		t.Fatalf("expected invalid transition on resubmit, got %v", err)
	}
}

func TestApproveCampaign(t *testing.T) {
	module := campaignreview.NewInMemoryModule(nil, nil)

	campaignID := createDraft(t, module, "Launch", 2000)
	submitCampaign(t, module, campaignID)

	resp, err := module.Handler.ApproveCampaignHandler(context.Background(), reviewerActor, campaignID, httptransport.ApproveCampaignRequest{Notes: "ok"})
	if err != nil {
		t.Fatalf("approve failed: %v", err)
	}
	if resp.Campaign.Status != string(entities.CampaignStatusActive) {
		t.Fatalf("expected active, got %s", resp.Campaign.Status)
	}
	if resp.Campaign.RejectionFeedback != nil {
		t.Fatalf("expected rejection feedback cleared on approval")
	}

	_, err = module.Handler.ApproveCampaignHandler(context.Background(), reviewerActor, campaignID, httptransport.ApproveCampaignRequest{})
	if !errors.Is(err, domainerrors.ErrInvalidTransition) {
		t.Fatalf("expected invalid transition on double approve, got %v", err)
	}
}

func TestApproveRequiresReviewerRole(t *testing.T) {
	module := campaignreview.NewInMemoryModule(nil, nil)

	campaignID := createDraft(t, module, "Launch", 2000)
	submitCampaign(t, module, campaignID)

	_, err := module.Handler.ApproveCampaignHandler(context.Background(), brandActor, campaignID, httptransport.ApproveCampaignRequest{})
	if !errors.Is(err, domainerrors.ErrUnauthorized) {
		t.Fatalf("expected unauthorized for brand actor, got %v", err)
	}
}

func TestRejectRequiresReasonsAndRecommendations(t *testing.T) {
	module := campaignreview.NewInMemoryModule(nil, nil)

	campaignID := createDraft(t, module, "Launch", 2000)
	submitCampaign(t, module, campaignID)

	_, err := module.Handler.RejectCampaignHandler(context.Background(), reviewerActor, campaignID, httptransport.RejectCampaignRequest{
		Reasons: "budget unrealistic",
	})
	if !errors.Is(err, domainerrors.ErrValidation) {
		t.Fatalf("expected validation error without recommendations, got %v", err)
	}

	resp, err := module.Handler.RejectCampaignHandler(context.Background(), reviewerActor, campaignID, httptransport.RejectCampaignRequest{
		Reasons:         "budget unrealistic",
		Recommendations: "raise the payout rate",
	})
	if err != nil {
		t.Fatalf("reject failed: %v", err)
	}
	if resp.Campaign.Status != string(entities.CampaignStatusRejected) {
		t.Fatalf("expected rejected, got %s", resp.Campaign.Status)
	}
	if resp.Campaign.RejectionFeedback == nil {
		t.Fatalf("expected rejection feedback stored")
	}
	if resp.Campaign.RejectionFeedback.Reasons != "budget unrealistic" ||
		resp.Campaign.RejectionFeedback.Recommendations != "raise the payout rate" {
		t.Fatalf("expected feedback stored verbatim, got %+v", resp.Campaign.RejectionFeedback)
	}
}

func TestPauseResumeComplete(t *testing.T) {
	module := campaignreview.NewInMemoryModule(nil, nil)

	campaignID := createDraft(t, module, "Launch", 2000)
	submitCampaign(t, module, campaignID)
	if _, err := module.Handler.ApproveCampaignHandler(context.Background(), reviewerActor, campaignID, httptransport.ApproveCampaignRequest{}); err != nil {
		t.Fatalf("approve failed: %v", err)
	}

	_, err := module.Handler.PauseCampaignHandler(context.Background(), reviewerActor, campaignID, httptransport.StatusActionRequest{})
	if !errors.Is(err, domainerrors.ErrValidation) {
		t.Fatalf("expected validation error without pause reason, got %v", err)
	}

	paused, err := module.Handler.PauseCampaignHandler(context.Background(), reviewerActor, campaignID, httptransport.StatusActionRequest{Reason: "brand request"})
	if err != nil {
		t.Fatalf("pause failed: %v", err)
	}
	if paused.Campaign.Status != string(entities.CampaignStatusPaused) || paused.Campaign.PauseReason != "brand request" {
		t.Fatalf("expected paused with reason, got %s %q", paused.Campaign.Status, paused.Campaign.PauseReason)
	}

	_, err = module.Handler.PauseCampaignHandler(context.Background(), reviewerActor, campaignID, httptransport.StatusActionRequest{Reason: "again"})
	if !errors.Is(err, domainerrors.ErrInvalidTransition) {
		t.Fatalf("expected invalid transition on double pause, got %v", err)
	}

	resumed, err := module.Handler.ResumeCampaignHandler(context.Background(), reviewerActor, campaignID)
	if err != nil {
		t.Fatalf("resume failed: %v", err)
	}
	if resumed.Campaign.Status != string(entities.CampaignStatusActive) || resumed.Campaign.PauseReason != "" {
		t.Fatalf("expected active with cleared pause reason, got %s %q", resumed.Campaign.Status, resumed.Campaign.PauseReason)
	}

	completed, err := module.Handler.CompleteCampaignHandler(context.Background(), reviewerActor, campaignID, httptransport.StatusActionRequest{})
	if err != nil {
		t.Fatalf("complete failed: %v", err)
	}
	if completed.Campaign.Status != string(entities.CampaignStatusCompleted) {
		t.Fatalf("expected completed, got %s", completed.Campaign.Status)
	}

	_, err = module.Handler.CompleteCampaignHandler(context.Background(), reviewerActor, campaignID, httptransport.StatusActionRequest{})
	if !errors.Is(err, domainerrors.ErrInvalidTransition) {
		t.Fatalf("expected invalid transition on double complete, got %v", err)
	}
}

func TestTransitionEventsReachOutbox(t *testing.T) {
	module := campaignreview.NewInMemoryModule(nil, nil)

	campaignID := createDraft(t, module, "Launch", 2000)
	submitCampaign(t, module, campaignID)
	if _, err := module.Handler.ApproveCampaignHandler(context.Background(), reviewerActor, campaignID, httptransport.ApproveCampaignRequest{}); err != nil {
		t.Fatalf("approve failed: %v", err)
	}

	// submitted + approved
	if got := module.Store.PendingOutboxCount(); got != 2 {
		t.Fatalf("expected 2 pending outbox rows, got %d", got)
	}
}

func TestCreatorsJoinedRecomputedFromJoinRows(t *testing.T) {
	module := campaignreview.NewInMemoryModule(nil, nil)

	campaignID := createDraft(t, module, "Launch", 2000)
	module.Store.SeedCreators(campaignID, []entities.CampaignCreator{
		{CreatorID: "c1", CampaignID: campaignID, Status: entities.CreatorStatusActive},
		{CreatorID: "c2", CampaignID: campaignID, Status: entities.CreatorStatusActive},
		{CreatorID: "c3", CampaignID: campaignID, Status: entities.CreatorStatusActive},
		{CreatorID: "c4", CampaignID: campaignID, Status: entities.CreatorStatusPending},
		{CreatorID: "c5", CampaignID: campaignID, Status: entities.CreatorStatusRejected},
	})

	resp, err := module.Handler.GetCampaignHandler(context.Background(), campaignID)
	if err != nil {
		t.Fatalf("get campaign failed: %v", err)
	}
	if resp.Campaign.Metrics.CreatorsJoined != 3 {
		t.Fatalf("expected creators_joined 3, got %d", resp.Campaign.Metrics.CreatorsJoined)
	}
	if len(resp.Creators) != 5 {
		t.Fatalf("expected all 5 join rows returned, got %d", len(resp.Creators))
	}
}

func TestListCampaignsFiltersByStatus(t *testing.T) {
	module := campaignreview.NewInMemoryModule(nil, nil)

	draftID := createDraft(t, module, "Draft only", 2000)
	submittedID := createDraft(t, module, "Submitted", 2000)
	submitCampaign(t, module, submittedID)

	resp, err := module.Handler.ListCampaignsHandler(context.Background(), "", []entities.CampaignStatus{entities.CampaignStatusPendingApproval}, 0, 0)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(resp.Items) != 1 || resp.Items[0].CampaignID != submittedID {
		t.Fatalf("expected only the submitted campaign, got %+v", resp.Items)
	}
	_ = draftID
}

// campaignAtStatus drives a fresh campaign to the requested status through
// the public handlers.
func campaignAtStatus(t *testing.T, module campaignreview.Module, status entities.CampaignStatus) string {
	t.Helper()
	ctx := context.Background()
	campaignID := createDraft(t, module, "Sweep", 2000)
	if status == entities.CampaignStatusDraft {
		return campaignID
	}
	submitCampaign(t, module, campaignID)
	switch status {
	case entities.CampaignStatusPendingApproval:
		return campaignID
	case entities.CampaignStatusRejected:
		if _, err := module.Handler.RejectCampaignHandler(ctx, reviewerActor, campaignID, httptransport.RejectCampaignRequest{
			Reasons:         "budget unrealistic",
			Recommendations: "raise the payout rate",
		}); err != nil {
			t.Fatalf("reject failed: %v", err)
		}
		return campaignID
	}
	if _, err := module.Handler.ApproveCampaignHandler(ctx, reviewerActor, campaignID, httptransport.ApproveCampaignRequest{}); err != nil {
		t.Fatalf("approve failed: %v", err)
	}
	switch status {
	case entities.CampaignStatusActive:
		return campaignID
	case entities.CampaignStatusPaused:
		if _, err := module.Handler.PauseCampaignHandler(ctx, reviewerActor, campaignID, httptransport.StatusActionRequest{Reason: "pause"}); err != nil {
			t.Fatalf("pause failed: %v", err)
		}
		return campaignID
	case entities.CampaignStatusCompleted:
		if _, err := module.Handler.CompleteCampaignHandler(ctx, reviewerActor, campaignID, httptransport.StatusActionRequest{}); err != nil {
			t.Fatalf("complete failed: %v", err)
		}
		return campaignID
	default:
		t.Fatalf("unsupported sweep status %q", status)
		return ""
	}
}

func TestEveryPairOutsideTransitionTableFails(t *testing.T) {
	ctx := context.Background()
	events := []struct {
		name string
		run  func(module campaignreview.Module, campaignID string) error
	}{
		{"submit", func(m campaignreview.Module, id string) error {
			_, err := m.Handler.SubmitCampaignHandler(ctx, brandActor, id)
			return err
		}},
		{"approve", func(m campaignreview.Module, id string) error {
			_, err := m.Handler.ApproveCampaignHandler(ctx, reviewerActor, id, httptransport.ApproveCampaignRequest{})
			return err
		}},
		{"reject", func(m campaignreview.Module, id string) error {
			_, err := m.Handler.RejectCampaignHandler(ctx, reviewerActor, id, httptransport.RejectCampaignRequest{
				Reasons:         "budget unrealistic",
				Recommendations: "raise the payout rate",
			})
			return err
		}},
		{"pause", func(m campaignreview.Module, id string) error {
			_, err := m.Handler.PauseCampaignHandler(ctx, reviewerActor, id, httptransport.StatusActionRequest{Reason: "pause"})
			return err
		}},
		{"resume", func(m campaignreview.Module, id string) error {
			_, err := m.Handler.ResumeCampaignHandler(ctx, reviewerActor, id)
			return err
		}},
		{"complete", func(m campaignreview.Module, id string) error {
			_, err := m.Handler.CompleteCampaignHandler(ctx, reviewerActor, id, httptransport.StatusActionRequest{})
			return err
		}},
	}
	legal := map[string]bool{
		"draft/submit":             true,
		"pending_approval/approve": true,
		"pending_approval/reject":  true,
		"active/pause":             true,
		"active/complete":          true,
		"paused/resume":            true,
		"paused/complete":          true,
	}
	statuses := []entities.CampaignStatus{
		entities.CampaignStatusDraft,
		entities.CampaignStatusPendingApproval,
		entities.CampaignStatusActive,
		entities.CampaignStatusPaused,
		entities.CampaignStatusCompleted,
		entities.CampaignStatusRejected,
	}

	for _, status := range statuses {
		for _, event := range events {
			if legal[string(status)+"/"+event.name] {
				continue
			}
			module := campaignreview.NewInMemoryModule(nil, nil)
			campaignID := campaignAtStatus(t, module, status)
			if err := event.run(module, campaignID); !errors.Is(err, domainerrors.ErrInvalidTransition) {
				t.Fatalf("%s on %s: expected invalid transition, got %v", event.name, status, err)
			}
		}
	}
}
