package httptransport

// ErrorResponse is the uniform error body for console endpoints.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type CampaignSummaryDTO struct {
	CampaignID     string   `json:"campaign_id"`
	BrandID        string   `json:"brand_id"`
	Title          string   `json:"title"`
	Status         string   `json:"status"`
	ContentType    string   `json:"content_type"`
	Budget         int64    `json:"budget"`
	Platforms      []string `json:"platforms"`
	StartDate      string   `json:"start_date"`
	EndDate        string   `json:"end_date"`
	CreatorsJoined int      `json:"creators_joined"`
	Views          int64    `json:"views"`
	PauseReason    string   `json:"pause_reason,omitempty"`
	UpdatedAt      string   `json:"updated_at"`
}

type CreatorRowDTO struct {
	CreatorID string   `json:"creator_id"`
	Status    string   `json:"status"`
	Platforms []string `json:"platforms"`
}

// CollectionPageResponse carries one page of a collection plus the
// provenance banner flags the console renders.
type CollectionPageResponse struct {
	Collection string               `json:"collection"`
	Items      []CampaignSummaryDTO `json:"items"`
	PageIndex  int                  `json:"page_index"`
	PageSize   int                  `json:"page_size"`
	TotalItems int                  `json:"total_items"`
	IsStale    bool                 `json:"is_stale"`
	IsMockData bool                 `json:"is_mock_data"`
	FetchedAt  string               `json:"fetched_at"`
}

type CampaignDetailResponse struct {
	Campaign  CampaignSummaryDTO `json:"campaign"`
	Creators  []CreatorRowDTO    `json:"creators"`
	IsStale   bool               `json:"is_stale"`
	FetchedAt string             `json:"fetched_at"`
}

type RefreshResponse struct {
	Refreshed bool `json:"refreshed"`
}
