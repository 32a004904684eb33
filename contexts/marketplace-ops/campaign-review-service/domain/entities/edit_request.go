package entities

import (
	"time"
)

type EditRequestStatus string

const (
	EditRequestStatusPending  EditRequestStatus = "pending"
	EditRequestStatusApproved EditRequestStatus = "approved"
	EditRequestStatusRejected EditRequestStatus = "rejected"
)

// EditRequest is a proposed replacement payload for an active campaign,
// held until a reviewer resolves it. OldData is the campaign snapshot taken
// at submission time; NewData is the full proposed payload.
type EditRequest struct {
	EditID          string
	CampaignID      string
	RequestedBy     string
	ChangeReason    string
	OldData         Campaign
	NewData         Campaign
	KeyChanges      []string
	Status          EditRequestStatus
	ReviewNotes     string
	RejectionReason string
	CreatedAt       time.Time
	ResolvedAt      *time.Time
}

// Top-level field names reported in KeyChanges and applied on approval.
const (
	FieldTitle      = "title"
	FieldBudget     = "budget"
	FieldPlatforms  = "platforms"
	FieldDates      = "dates"
	FieldBriefs     = "briefs"
	FieldGuidelines = "guidelines"
	FieldHashtags   = "hashtags"
	FieldRates      = "payout_rates"
	FieldAllocation = "budget_allocation"
	FieldMinViews   = "min_views"
)

// DiffCampaigns lists the top-level fields that differ between the stored
// campaign and a proposed payload, in a stable order.
func DiffCampaigns(old, proposed Campaign) []string {
	changes := make([]string, 0, 10)
	if old.Title != proposed.Title {
		changes = append(changes, FieldTitle)
	}
	if old.Budget != proposed.Budget {
		changes = append(changes, FieldBudget)
	}
	if !stringSlicesEqual(old.Platforms, proposed.Platforms) {
		changes = append(changes, FieldPlatforms)
	}
	if !old.StartDate.Equal(proposed.StartDate) || !old.EndDate.Equal(proposed.EndDate) {
		changes = append(changes, FieldDates)
	}
	if old.BriefOriginal != proposed.BriefOriginal || old.BriefRepurposed != proposed.BriefRepurposed {
		changes = append(changes, FieldBriefs)
	}
	if old.Guidelines != proposed.Guidelines {
		changes = append(changes, FieldGuidelines)
	}
	if !stringSlicesEqual(old.HashtagsOriginal, proposed.HashtagsOriginal) ||
		!stringSlicesEqual(old.HashtagsRepurposed, proposed.HashtagsRepurposed) {
		changes = append(changes, FieldHashtags)
	}
	if old.RateOriginal != proposed.RateOriginal || old.RateRepurposed != proposed.RateRepurposed {
		changes = append(changes, FieldRates)
	}
	if old.AllocationOriginal != proposed.AllocationOriginal ||
		old.AllocationRepurposed != proposed.AllocationRepurposed {
		changes = append(changes, FieldAllocation)
	}
	if old.MinViews != proposed.MinViews {
		changes = append(changes, FieldMinViews)
	}
	return changes
}

// ApplyChanges replaces the named top-level fields of live with the values
// from proposed. It is a full replacement of each named field, never a merge
// of fragments inside a field.
func ApplyChanges(live Campaign, proposed Campaign, changes []string) Campaign {
	out := live.Clone()
	for _, field := range changes {
		switch field {
		case FieldTitle:
			out.Title = proposed.Title
		case FieldBudget:
			out.Budget = proposed.Budget
		case FieldPlatforms:
			out.Platforms = append([]string(nil), proposed.Platforms...)
		case FieldDates:
			out.StartDate = proposed.StartDate
			out.EndDate = proposed.EndDate
		case FieldBriefs:
			out.BriefOriginal = proposed.BriefOriginal
			out.BriefRepurposed = proposed.BriefRepurposed
		case FieldGuidelines:
			out.Guidelines = proposed.Guidelines
		case FieldHashtags:
			out.HashtagsOriginal = append([]string(nil), proposed.HashtagsOriginal...)
			out.HashtagsRepurposed = append([]string(nil), proposed.HashtagsRepurposed...)
		case FieldRates:
			out.RateOriginal = proposed.RateOriginal
			out.RateRepurposed = proposed.RateRepurposed
		case FieldAllocation:
			out.AllocationOriginal = proposed.AllocationOriginal
			out.AllocationRepurposed = proposed.AllocationRepurposed
		case FieldMinViews:
			out.MinViews = proposed.MinViews
		}
	}
	return out
}

func stringSlicesEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
