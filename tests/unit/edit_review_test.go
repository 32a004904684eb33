package unit

import (
	"context"
	"errors"
	"testing"
	"time"

	campaignreview "opsdesk/contexts/marketplace-ops/campaign-review-service"
	"opsdesk/contexts/marketplace-ops/campaign-review-service/domain/entities"
	domainerrors "opsdesk/contexts/marketplace-ops/campaign-review-service/domain/errors"
	httptransport "opsdesk/contexts/marketplace-ops/campaign-review-service/transport/http"
)

func activateCampaign(t *testing.T, module campaignreview.Module, title string) string {
	t.Helper()
	campaignID := createDraft(t, module, title, 2000)
	submitCampaign(t, module, campaignID)
	if _, err := module.Handler.ApproveCampaignHandler(context.Background(), reviewerActor, campaignID, httptransport.ApproveCampaignRequest{}); err != nil {
		t.Fatalf("approve failed: %v", err)
	}
	return campaignID
}

func editedPayload(title string, budget int64) httptransport.CampaignPayloadRequest {
	payload := draftPayload(title, budget)
	payload.EndDate = time.Now().UTC().AddDate(0, 2, 2).Format("2006-01-02")
	return payload
}

func TestSubmitEditRequiresActiveCampaign(t *testing.T) {
	module := campaignreview.NewInMemoryModule(nil, nil)

	campaignID := createDraft(t, module, "Draft", 2000)
	_, err := module.Handler.SubmitEditHandler(context.Background(), brandActor, campaignID, httptransport.SubmitEditRequest{
		NewData:      editedPayload("Draft v2", 3000),
		ChangeReason: "extend window",
	})
	if !errors.Is(err, domainerrors.ErrInvalidTransition) {
		t.Fatalf("expected invalid transition for draft campaign, got %v", err)
	}
}

func TestSubmitEditRequiresChangeReasonAndDiff(t *testing.T) {
	module := campaignreview.NewInMemoryModule(nil, nil)
	campaignID := activateCampaign(t, module, "Launch")

	_, err := module.Handler.SubmitEditHandler(context.Background(), brandActor, campaignID, httptransport.SubmitEditRequest{
		NewData: editedPayload("Launch v2", 3000),
	})
	if !errors.Is(err, domainerrors.ErrValidation) {
		t.Fatalf("expected validation error without change reason, got %v", err)
	}

	current, err := module.Handler.GetCampaignHandler(context.Background(), campaignID)
	if err != nil {
		t.Fatalf("get campaign failed: %v", err)
	}
	identical := httptransport.CampaignPayloadRequest{
		Title:         current.Campaign.Title,
		ContentType:   current.Campaign.ContentType,
		Budget:        current.Campaign.Budget,
		Platforms:     current.Campaign.Platforms,
		StartDate:     current.Campaign.StartDate,
		EndDate:       current.Campaign.EndDate,
		BriefOriginal: current.Campaign.BriefOriginal,
		Guidelines:    current.Campaign.Guidelines,
		RateOriginal:  current.Campaign.RateOriginal,
		MinViews:      current.Campaign.MinViews,
	}
	_, err = module.Handler.SubmitEditHandler(context.Background(), brandActor, campaignID, httptransport.SubmitEditRequest{
		NewData:      identical,
		ChangeReason: "no-op",
	})
	if !errors.Is(err, domainerrors.ErrValidation) {
		t.Fatalf("expected validation error for empty diff, got %v", err)
	}
}

func TestEditApprovalAppliesProposedFields(t *testing.T) {
	module := campaignreview.NewInMemoryModule(nil, nil)
	campaignID := activateCampaign(t, module, "Launch")

	submitted, err := module.Handler.SubmitEditHandler(context.Background(), brandActor, campaignID, httptransport.SubmitEditRequest{
		NewData:      editedPayload("Launch v2", 3000),
		ChangeReason: "bigger budget",
	})
	if err != nil {
		t.Fatalf("submit edit failed: %v", err)
	}
	if submitted.EditRequest.Status != string(entities.EditRequestStatusPending) {
		t.Fatalf("expected pending edit, got %s", submitted.EditRequest.Status)
	}
	if !containsString(submitted.EditRequest.KeyChanges, entities.FieldTitle) ||
		!containsString(submitted.EditRequest.KeyChanges, entities.FieldBudget) {
		t.Fatalf("expected title and budget in key changes, got %v", submitted.EditRequest.KeyChanges)
	}

	// The live campaign stays untouched while the edit is pending.
	pendingView, err := module.Handler.GetCampaignHandler(context.Background(), campaignID)
	if err != nil {
		t.Fatalf("get campaign failed: %v", err)
	}
	if pendingView.Campaign.Title != "Launch" || pendingView.Campaign.Budget != 2000 {
		t.Fatalf("live campaign mutated before approval: %s %d", pendingView.Campaign.Title, pendingView.Campaign.Budget)
	}

	approved, err := module.Handler.ApproveEditHandler(context.Background(), reviewerActor, submitted.EditRequest.EditID, httptransport.ApproveEditRequest{Notes: "ok"})
	if err != nil {
		t.Fatalf("approve edit failed: %v", err)
	}
	if approved.Campaign.Title != "Launch v2" || approved.Campaign.Budget != 3000 {
		t.Fatalf("expected applied changes, got %s %d", approved.Campaign.Title, approved.Campaign.Budget)
	}
	if approved.Campaign.Status != string(entities.CampaignStatusActive) {
		t.Fatalf("edit approval must not change campaign status, got %s", approved.Campaign.Status)
	}

	_, err = module.Handler.ApproveEditHandler(context.Background(), reviewerActor, submitted.EditRequest.EditID, httptransport.ApproveEditRequest{})
	if !errors.Is(err, domainerrors.ErrEditAlreadyResolved) {
		t.Fatalf("expected already resolved on double approve, got %v", err)
	}
}

func TestSubmitEditRejectsPayloadBreakingSubmissionRules(t *testing.T) {
	module := campaignreview.NewInMemoryModule(nil, nil)
	campaignID := activateCampaign(t, module, "Launch")

	// Budget floor holds for amendments, not just first submission.
	_, err := module.Handler.SubmitEditHandler(context.Background(), brandActor, campaignID, httptransport.SubmitEditRequest{
		NewData:      editedPayload("Launch v2", 500),
		ChangeReason: "shrink budget",
	})
	if !errors.Is(err, domainerrors.ErrValidation) {
		t.Fatalf("expected validation error for budget 500, got %v", err)
	}

	view, err := module.Handler.GetCampaignHandler(context.Background(), campaignID)
	if err != nil {
		t.Fatalf("get campaign failed: %v", err)
	}
	if view.Campaign.Budget != 2000 {
		t.Fatalf("rejected edit must not touch the campaign, got budget %d", view.Campaign.Budget)
	}
}

func TestSubmitEditRejectsBrokenAllocationSplit(t *testing.T) {
	module := campaignreview.NewInMemoryModule(nil, nil)

	payload := draftPayload("Split", 2000)
	payload.ContentType = "both"
	payload.BriefRepurposed = "brief"
	payload.RateRepurposed = 15
	payload.AllocationOriginal = 60
	payload.AllocationRepurposed = 40
	created, err := module.Handler.CreateDraftHandler(context.Background(), brandActor, payload)
	if err != nil {
		t.Fatalf("create draft failed: %v", err)
	}
	campaignID := created.Campaign.CampaignID
	submitCampaign(t, module, campaignID)
	if _, err := module.Handler.ApproveCampaignHandler(context.Background(), reviewerActor, campaignID, httptransport.ApproveCampaignRequest{}); err != nil {
		t.Fatalf("approve failed: %v", err)
	}

	edited := payload
	edited.AllocationOriginal = 70
	_, err = module.Handler.SubmitEditHandler(context.Background(), brandActor, campaignID, httptransport.SubmitEditRequest{
		NewData:      edited,
		ChangeReason: "shift allocation",
	})
	if !errors.Is(err, domainerrors.ErrValidation) {
		t.Fatalf("expected validation error for 110%% allocation, got %v", err)
	}
}

func TestEditApprovalRevalidatesCombinedRecord(t *testing.T) {
	module := campaignreview.NewInMemoryModule(nil, nil)
	campaignID := activateCampaign(t, module, "Launch")

	// A pending edit written by an older writer may carry values current
	// submission rules forbid; approval must refuse to store them.
	if err := module.Store.CreateEditRequest(context.Background(), entities.EditRequest{
		EditID:       "edit-legacy-1",
		CampaignID:   campaignID,
		RequestedBy:  brandActor.ID,
		ChangeReason: "shrink budget",
		NewData:      entities.Campaign{Budget: 500},
		KeyChanges:   []string{entities.FieldBudget},
		Status:       entities.EditRequestStatusPending,
		CreatedAt:    time.Now().UTC(),
	}); err != nil {
		t.Fatalf("seed edit failed: %v", err)
	}

	_, err := module.Handler.ApproveEditHandler(context.Background(), reviewerActor, "edit-legacy-1", httptransport.ApproveEditRequest{})
	if !errors.Is(err, domainerrors.ErrValidation) {
		t.Fatalf("expected validation error on approval, got %v", err)
	}

	view, err := module.Handler.GetCampaignHandler(context.Background(), campaignID)
	if err != nil {
		t.Fatalf("get campaign failed: %v", err)
	}
	if view.Campaign.Budget != 2000 {
		t.Fatalf("refused edit must not touch the campaign, got budget %d", view.Campaign.Budget)
	}
}

func TestEditRejectionLeavesCampaignUntouched(t *testing.T) {
	module := campaignreview.NewInMemoryModule(nil, nil)
	campaignID := activateCampaign(t, module, "Launch")

	submitted, err := module.Handler.SubmitEditHandler(context.Background(), brandActor, campaignID, httptransport.SubmitEditRequest{
		NewData:      editedPayload("Launch v2", 3000),
		ChangeReason: "bigger budget",
	})
	if err != nil {
		t.Fatalf("submit edit failed: %v", err)
	}

	_, err = module.Handler.RejectEditHandler(context.Background(), reviewerActor, submitted.EditRequest.EditID, httptransport.RejectEditRequest{})
	if !errors.Is(err, domainerrors.ErrValidation) {
		t.Fatalf("expected validation error without rejection reason, got %v", err)
	}

	rejected, err := module.Handler.RejectEditHandler(context.Background(), reviewerActor, submitted.EditRequest.EditID, httptransport.RejectEditRequest{Reason: "budget jump too large"})
	if err != nil {
		t.Fatalf("reject edit failed: %v", err)
	}
	if rejected.EditRequest.Status != string(entities.EditRequestStatusRejected) ||
		rejected.EditRequest.RejectionReason != "budget jump too large" {
		t.Fatalf("expected rejected with reason, got %+v", rejected.EditRequest)
	}

	view, err := module.Handler.GetCampaignHandler(context.Background(), campaignID)
	if err != nil {
		t.Fatalf("get campaign failed: %v", err)
	}
	if view.Campaign.Title != "Launch" || view.Campaign.Budget != 2000 {
		t.Fatalf("rejected edit must not touch the campaign, got %s %d", view.Campaign.Title, view.Campaign.Budget)
	}
}

func TestPendingEditListing(t *testing.T) {
	module := campaignreview.NewInMemoryModule(nil, nil)
	campaignID := activateCampaign(t, module, "Launch")

	submitted, err := module.Handler.SubmitEditHandler(context.Background(), brandActor, campaignID, httptransport.SubmitEditRequest{
		NewData:      editedPayload("Launch v2", 3000),
		ChangeReason: "bigger budget",
	})
	if err != nil {
		t.Fatalf("submit edit failed: %v", err)
	}

	pending, err := module.Handler.ListPendingEditsHandler(context.Background())
	if err != nil {
		t.Fatalf("list pending edits failed: %v", err)
	}
	if len(pending.Items) != 1 || pending.Items[0].EditID != submitted.EditRequest.EditID {
		t.Fatalf("expected the submitted edit pending, got %+v", pending.Items)
	}

	if _, err := module.Handler.ApproveEditHandler(context.Background(), reviewerActor, submitted.EditRequest.EditID, httptransport.ApproveEditRequest{}); err != nil {
		t.Fatalf("approve edit failed: %v", err)
	}
	pending, err = module.Handler.ListPendingEditsHandler(context.Background())
	if err != nil {
		t.Fatalf("list pending edits failed: %v", err)
	}
	if len(pending.Items) != 0 {
		t.Fatalf("expected no pending edits after approval, got %d", len(pending.Items))
	}
}

func TestEditSummaryReadsLegacyPayloadSpellings(t *testing.T) {
	module := campaignreview.NewInMemoryModule(nil, nil)
	campaignID := activateCampaign(t, module, "Launch")

	submitted, err := module.Handler.SubmitEditHandler(context.Background(), brandActor, campaignID, httptransport.SubmitEditRequest{
		NewData:      editedPayload("Launch v2", 3000),
		ChangeReason: "bigger budget",
	})
	if err != nil {
		t.Fatalf("submit edit failed: %v", err)
	}

	module.Store.SeedRawEditPayload(submitted.EditRequest.EditID, []byte(`{
		"platform": "instagram",
		"minViews": 4000,
		"budget_total": 3000,
		"content_guidelines": "keep it short",
		"required_hashtags": ["#launch"]
	}`))

	summary, err := module.Handler.GetEditSummaryHandler(context.Background(), submitted.EditRequest.EditID)
	if err != nil {
		t.Fatalf("get edit summary failed: %v", err)
	}
	if len(summary.Platforms) != 1 || summary.Platforms[0] != "instagram" {
		t.Fatalf("expected single legacy platform, got %v", summary.Platforms)
	}
	if summary.MinViews != 4000 {
		t.Fatalf("expected legacy minViews 4000, got %d", summary.MinViews)
	}
	if summary.Budget != 3000 {
		t.Fatalf("expected legacy budget_total 3000, got %d", summary.Budget)
	}
	if summary.GuidelinesOriginal != "keep it short" || summary.GuidelinesRepurposed != "keep it short" {
		t.Fatalf("expected shared legacy guidelines, got %q %q", summary.GuidelinesOriginal, summary.GuidelinesRepurposed)
	}
	if len(summary.HashtagsOriginal) != 1 || summary.HashtagsOriginal[0] != "#launch" {
		t.Fatalf("expected legacy hashtags, got %v", summary.HashtagsOriginal)
	}
}

func containsString(items []string, target string) bool {
	for _, item := range items {
		if item == target {
			return true
		}
	}
	return false
}
