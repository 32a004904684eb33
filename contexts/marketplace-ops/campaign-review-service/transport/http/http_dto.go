package httptransport

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type MetricsDTO struct {
	Views          int64 `json:"views"`
	Engagement     int64 `json:"engagement"`
	CreatorsJoined int   `json:"creators_joined"`
	PostsSubmitted int   `json:"posts_submitted"`
	PostsApproved  int   `json:"posts_approved"`
}

type RejectionFeedbackDTO struct {
	Reasons         string `json:"reasons"`
	Recommendations string `json:"recommendations"`
}

type ViewTargetsDTO struct {
	Total      int64 `json:"total"`
	Original   int64 `json:"original"`
	Repurposed int64 `json:"repurposed"`
}

type CampaignDTO struct {
	CampaignID           string                `json:"campaign_id"`
	BrandID              string                `json:"brand_id"`
	Title                string                `json:"title"`
	ContentType          string                `json:"content_type"`
	Budget               int64                 `json:"budget"`
	Platforms            []string              `json:"platforms"`
	StartDate            string                `json:"start_date"`
	EndDate              string                `json:"end_date"`
	BriefOriginal        string                `json:"brief_original,omitempty"`
	BriefRepurposed      string                `json:"brief_repurposed,omitempty"`
	Guidelines           string                `json:"guidelines,omitempty"`
	HashtagsOriginal     []string              `json:"hashtags_original,omitempty"`
	HashtagsRepurposed   []string              `json:"hashtags_repurposed,omitempty"`
	RateOriginal         int64                 `json:"rate_original"`
	RateRepurposed       int64                 `json:"rate_repurposed"`
	MinViews             int64                 `json:"min_views"`
	AllocationOriginal   int                   `json:"allocation_original"`
	AllocationRepurposed int                   `json:"allocation_repurposed"`
	Status               string                `json:"status"`
	RejectionFeedback    *RejectionFeedbackDTO `json:"rejection_feedback,omitempty"`
	PauseReason          string                `json:"pause_reason,omitempty"`
	Metrics              MetricsDTO            `json:"metrics"`
	ViewTargets          ViewTargetsDTO        `json:"view_targets"`
	CreatedAt            string                `json:"created_at"`
	UpdatedAt            string                `json:"updated_at"`
	SubmittedAt          string                `json:"submitted_at,omitempty"`
	ReviewedAt           string                `json:"reviewed_at,omitempty"`
	CompletedAt          string                `json:"completed_at,omitempty"`
}

type CreatorDTO struct {
	CreatorID  string   `json:"creator_id"`
	CampaignID string   `json:"campaign_id"`
	Status     string   `json:"status"`
	Platforms  []string `json:"platforms"`
}

type EditRequestDTO struct {
	EditID          string      `json:"edit_id"`
	CampaignID      string      `json:"campaign_id"`
	RequestedBy     string      `json:"requested_by"`
	ChangeReason    string      `json:"change_reason"`
	OldData         CampaignDTO `json:"old_data"`
	NewData         CampaignDTO `json:"new_data"`
	KeyChanges      []string    `json:"key_changes"`
	Status          string      `json:"status"`
	ReviewNotes     string      `json:"review_notes,omitempty"`
	RejectionReason string      `json:"rejection_reason,omitempty"`
	CreatedAt       string      `json:"created_at"`
	ResolvedAt      string      `json:"resolved_at,omitempty"`
}

type SubmitCampaignResponse struct {
	Campaign CampaignDTO `json:"campaign"`
}

type ApproveCampaignRequest struct {
	Notes string `json:"notes"`
}

type RejectCampaignRequest struct {
	Reasons         string `json:"reasons"`
	Recommendations string `json:"recommendations"`
}

type StatusActionRequest struct {
	Reason string `json:"reason"`
}

type ReviewCampaignResponse struct {
	Campaign CampaignDTO `json:"campaign"`
}

type CampaignPayloadRequest struct {
	Title                string   `json:"title"`
	ContentType          string   `json:"content_type"`
	Budget               int64    `json:"budget"`
	Platforms            []string `json:"platforms"`
	StartDate            string   `json:"start_date"`
	EndDate              string   `json:"end_date"`
	BriefOriginal        string   `json:"brief_original"`
	BriefRepurposed      string   `json:"brief_repurposed"`
	Guidelines           string   `json:"guidelines"`
	HashtagsOriginal     []string `json:"hashtags_original"`
	HashtagsRepurposed   []string `json:"hashtags_repurposed"`
	RateOriginal         int64    `json:"rate_original"`
	RateRepurposed       int64    `json:"rate_repurposed"`
	MinViews             int64    `json:"min_views"`
	AllocationOriginal   int      `json:"allocation_original"`
	AllocationRepurposed int      `json:"allocation_repurposed"`
}

type SubmitEditRequest struct {
	NewData      CampaignPayloadRequest `json:"new_data"`
	ChangeReason string                 `json:"change_reason"`
}

type SubmitEditResponse struct {
	EditRequest EditRequestDTO `json:"edit_request"`
}

type ApproveEditRequest struct {
	Notes string `json:"notes"`
}

type ApproveEditResponse struct {
	EditRequest EditRequestDTO `json:"edit_request"`
	Campaign    CampaignDTO    `json:"campaign"`
}

type RejectEditRequest struct {
	Reason string `json:"reason"`
}

type RejectEditResponse struct {
	EditRequest EditRequestDTO `json:"edit_request"`
}

type ListCampaignsResponse struct {
	Items []CampaignDTO `json:"items"`
}

type GetCampaignResponse struct {
	Campaign CampaignDTO  `json:"campaign"`
	Creators []CreatorDTO `json:"creators"`
}

type ListEditRequestsResponse struct {
	Items []EditRequestDTO `json:"items"`
}

type EditSummaryResponse struct {
	EditRequest          EditRequestDTO `json:"edit_request"`
	Platforms            []string       `json:"platforms"`
	Budget               int64          `json:"budget"`
	MinViews             int64          `json:"min_views"`
	GuidelinesOriginal   string         `json:"guidelines_original,omitempty"`
	GuidelinesRepurposed string         `json:"guidelines_repurposed,omitempty"`
	HashtagsOriginal     []string       `json:"hashtags_original,omitempty"`
	HashtagsRepurposed   []string       `json:"hashtags_repurposed,omitempty"`
}
