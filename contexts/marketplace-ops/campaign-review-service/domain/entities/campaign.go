package entities

import (
	"strings"
	"time"
)

type CampaignStatus string
type ContentType string

const (
	CampaignStatusDraft           CampaignStatus = "draft"
	CampaignStatusPendingApproval CampaignStatus = "pending_approval"
	CampaignStatusActive          CampaignStatus = "active"
	CampaignStatusPaused          CampaignStatus = "paused"
	CampaignStatusCompleted       CampaignStatus = "completed"
	CampaignStatusRejected        CampaignStatus = "rejected"

	ContentTypeOriginal   ContentType = "original"
	ContentTypeRepurposed ContentType = "repurposed"
	ContentTypeBoth       ContentType = "both"
)

// NormalizeStatus maps historical status spellings onto the closed enum.
// Only the gateway boundary may call this; downstream code compares against
// the canonical constants directly.
func NormalizeStatus(raw string) CampaignStatus {
	switch strings.ToLower(strings.TrimSpace(strings.ReplaceAll(raw, "-", "_"))) {
	case "draft":
		return CampaignStatusDraft
	case "pending_approval", "pending", "pending_review", "review":
		return CampaignStatusPendingApproval
	case "active", "live":
		return CampaignStatusActive
	case "paused":
		return CampaignStatusPaused
	case "completed", "complete":
		return CampaignStatusCompleted
	case "rejected":
		return CampaignStatusRejected
	default:
		return CampaignStatusDraft
	}
}

func IsSupportedContentType(value ContentType) bool {
	switch value {
	case ContentTypeOriginal, ContentTypeRepurposed, ContentTypeBoth:
		return true
	default:
		return false
	}
}

type CampaignMetrics struct {
	Views          int64
	Engagement     int64
	CreatorsJoined int
	PostsSubmitted int
	PostsApproved  int
}

type RejectionFeedback struct {
	Reasons         string
	Recommendations string
}

type Campaign struct {
	CampaignID           string
	BrandID              string
	Title                string
	ContentType          ContentType
	Budget               int64
	Platforms            []string
	StartDate            time.Time
	EndDate              time.Time
	BriefOriginal        string
	BriefRepurposed      string
	Guidelines           string
	HashtagsOriginal     []string
	HashtagsRepurposed   []string
	RateOriginal         int64
	RateRepurposed       int64
	MinViews             int64
	AllocationOriginal   int
	AllocationRepurposed int
	Status               CampaignStatus
	RejectionFeedback    *RejectionFeedback
	PauseReason          string
	Metrics              CampaignMetrics
	CreatedAt            time.Time
	UpdatedAt            time.Time
	SubmittedAt          *time.Time
	ReviewedAt           *time.Time
	CompletedAt          *time.Time
}

type ViewTargets struct {
	Total      int64
	Original   int64
	Repurposed int64
}

// ViewTargets recomputes the payable view targets from budget, payout rates
// and allocation. Targets are never stored; any persisted copy is a cache of
// this function and must not be trusted over it.
func (c Campaign) ViewTargets() ViewTargets {
	switch c.ContentType {
	case ContentTypeOriginal:
		total := viewsFor(c.Budget, c.RateOriginal)
		return ViewTargets{Total: total, Original: total}
	case ContentTypeRepurposed:
		total := viewsFor(c.Budget, c.RateRepurposed)
		return ViewTargets{Total: total, Repurposed: total}
	case ContentTypeBoth:
		original := viewsFor(c.Budget*int64(c.AllocationOriginal)/100, c.RateOriginal)
		repurposed := viewsFor(c.Budget*int64(c.AllocationRepurposed)/100, c.RateRepurposed)
		return ViewTargets{Total: original + repurposed, Original: original, Repurposed: repurposed}
	default:
		return ViewTargets{}
	}
}

func viewsFor(budget int64, ratePer1K int64) int64 {
	if budget <= 0 || ratePer1K <= 0 {
		return 0
	}
	return budget * 1000 / ratePer1K
}

func (c Campaign) AllocationValid() bool {
	if c.ContentType != ContentTypeBoth {
		return true
	}
	return c.AllocationOriginal >= 0 &&
		c.AllocationRepurposed >= 0 &&
		c.AllocationOriginal+c.AllocationRepurposed == 100
}

// Clone returns a deep copy so callers can hand out records without sharing
// slice backing arrays with stored state.
func (c Campaign) Clone() Campaign {
	out := c
	out.Platforms = append([]string(nil), c.Platforms...)
	out.HashtagsOriginal = append([]string(nil), c.HashtagsOriginal...)
	out.HashtagsRepurposed = append([]string(nil), c.HashtagsRepurposed...)
	if c.RejectionFeedback != nil {
		feedback := *c.RejectionFeedback
		out.RejectionFeedback = &feedback
	}
	out.SubmittedAt = copyTime(c.SubmittedAt)
	out.ReviewedAt = copyTime(c.ReviewedAt)
	out.CompletedAt = copyTime(c.CompletedAt)
	return out
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	value := *t
	return &value
}
