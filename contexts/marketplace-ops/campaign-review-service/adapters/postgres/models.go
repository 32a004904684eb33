package postgresadapter

import (
	"encoding/json"
	"strings"
	"time"

	"opsdesk/contexts/marketplace-ops/campaign-review-service/domain/entities"
)

type campaignModel struct {
	CampaignID           string     `gorm:"column:campaign_id;primaryKey"`
	BrandID              string     `gorm:"column:brand_id"`
	Title                string     `gorm:"column:title"`
	ContentType          string     `gorm:"column:content_type"`
	Budget               int64      `gorm:"column:budget"`
	Platforms            []string   `gorm:"column:platforms;type:text[]"`
	StartDate            time.Time  `gorm:"column:start_date"`
	EndDate              time.Time  `gorm:"column:end_date"`
	BriefOriginal        string     `gorm:"column:brief_original"`
	BriefRepurposed      string     `gorm:"column:brief_repurposed"`
	Guidelines           string     `gorm:"column:guidelines"`
	HashtagsOriginal     []string   `gorm:"column:hashtags_original;type:text[]"`
	HashtagsRepurposed   []string   `gorm:"column:hashtags_repurposed;type:text[]"`
	RateOriginal         int64      `gorm:"column:rate_original"`
	RateRepurposed       int64      `gorm:"column:rate_repurposed"`
	MinViews             int64      `gorm:"column:min_views"`
	AllocationOriginal   int        `gorm:"column:allocation_original"`
	AllocationRepurposed int        `gorm:"column:allocation_repurposed"`
	Status               string     `gorm:"column:status"`
	RejectionReasons     string     `gorm:"column:rejection_reasons"`
	RejectionRecs        string     `gorm:"column:rejection_recommendations"`
	PauseReason          string     `gorm:"column:pause_reason"`
	MetricViews          int64      `gorm:"column:metric_views"`
	MetricEngagement     int64      `gorm:"column:metric_engagement"`
	CreatorsJoined       int        `gorm:"column:creators_joined"`
	PostsSubmitted       int        `gorm:"column:posts_submitted"`
	PostsApproved        int        `gorm:"column:posts_approved"`
	CreatedAt            time.Time  `gorm:"column:created_at"`
	UpdatedAt            time.Time  `gorm:"column:updated_at"`
	SubmittedAt          *time.Time `gorm:"column:submitted_at"`
	ReviewedAt           *time.Time `gorm:"column:reviewed_at"`
	CompletedAt          *time.Time `gorm:"column:completed_at"`
}

func (campaignModel) TableName() string {
	return "campaigns"
}

func campaignModelFromEntity(item entities.Campaign) (campaignModel, error) {
	row := campaignModel{
		CampaignID:           strings.TrimSpace(item.CampaignID),
		BrandID:              strings.TrimSpace(item.BrandID),
		Title:                strings.TrimSpace(item.Title),
		ContentType:          string(item.ContentType),
		Budget:               item.Budget,
		Platforms:            copyOrEmpty(item.Platforms),
		StartDate:            item.StartDate.UTC(),
		EndDate:              item.EndDate.UTC(),
		BriefOriginal:        item.BriefOriginal,
		BriefRepurposed:      item.BriefRepurposed,
		Guidelines:           item.Guidelines,
		HashtagsOriginal:     copyOrEmpty(item.HashtagsOriginal),
		HashtagsRepurposed:   copyOrEmpty(item.HashtagsRepurposed),
		RateOriginal:         item.RateOriginal,
		RateRepurposed:       item.RateRepurposed,
		MinViews:             item.MinViews,
		AllocationOriginal:   item.AllocationOriginal,
		AllocationRepurposed: item.AllocationRepurposed,
		Status:               string(item.Status),
		PauseReason:          strings.TrimSpace(item.PauseReason),
		MetricViews:          item.Metrics.Views,
		MetricEngagement:     item.Metrics.Engagement,
		CreatorsJoined:       item.Metrics.CreatorsJoined,
		PostsSubmitted:       item.Metrics.PostsSubmitted,
		PostsApproved:        item.Metrics.PostsApproved,
		CreatedAt:            item.CreatedAt.UTC(),
		UpdatedAt:            item.UpdatedAt.UTC(),
		SubmittedAt:          normalizeOptionalTime(item.SubmittedAt),
		ReviewedAt:           normalizeOptionalTime(item.ReviewedAt),
		CompletedAt:          normalizeOptionalTime(item.CompletedAt),
	}
	if item.RejectionFeedback != nil {
		row.RejectionReasons = item.RejectionFeedback.Reasons
		row.RejectionRecs = item.RejectionFeedback.Recommendations
	}
	return row, nil
}

func campaignUpdatesFromEntity(item entities.Campaign) (map[string]any, error) {
	updates := map[string]any{
		"title":                     strings.TrimSpace(item.Title),
		"content_type":              string(item.ContentType),
		"budget":                    item.Budget,
		"platforms":                 copyOrEmpty(item.Platforms),
		"start_date":                item.StartDate.UTC(),
		"end_date":                  item.EndDate.UTC(),
		"brief_original":            item.BriefOriginal,
		"brief_repurposed":          item.BriefRepurposed,
		"guidelines":                item.Guidelines,
		"hashtags_original":         copyOrEmpty(item.HashtagsOriginal),
		"hashtags_repurposed":       copyOrEmpty(item.HashtagsRepurposed),
		"rate_original":             item.RateOriginal,
		"rate_repurposed":           item.RateRepurposed,
		"min_views":                 item.MinViews,
		"allocation_original":       item.AllocationOriginal,
		"allocation_repurposed":     item.AllocationRepurposed,
		"status":                    string(item.Status),
		"pause_reason":              strings.TrimSpace(item.PauseReason),
		"rejection_reasons":         "",
		"rejection_recommendations": "",
		"updated_at":                item.UpdatedAt.UTC(),
		"submitted_at":              normalizeOptionalTime(item.SubmittedAt),
		"reviewed_at":               normalizeOptionalTime(item.ReviewedAt),
		"completed_at":              normalizeOptionalTime(item.CompletedAt),
	}
	if item.RejectionFeedback != nil {
		updates["rejection_reasons"] = item.RejectionFeedback.Reasons
		updates["rejection_recommendations"] = item.RejectionFeedback.Recommendations
	}
	return updates, nil
}

// toEntity normalizes legacy status spellings exactly once; downstream code
// only ever sees the canonical enum.
func (m campaignModel) toEntity() (entities.Campaign, error) {
	campaign := entities.Campaign{
		CampaignID:           m.CampaignID,
		BrandID:              m.BrandID,
		Title:                m.Title,
		ContentType:          entities.ContentType(m.ContentType),
		Budget:               m.Budget,
		Platforms:            copyOrEmpty(m.Platforms),
		StartDate:            m.StartDate.UTC(),
		EndDate:              m.EndDate.UTC(),
		BriefOriginal:        m.BriefOriginal,
		BriefRepurposed:      m.BriefRepurposed,
		Guidelines:           m.Guidelines,
		HashtagsOriginal:     copyOrEmpty(m.HashtagsOriginal),
		HashtagsRepurposed:   copyOrEmpty(m.HashtagsRepurposed),
		RateOriginal:         m.RateOriginal,
		RateRepurposed:       m.RateRepurposed,
		MinViews:             m.MinViews,
		AllocationOriginal:   m.AllocationOriginal,
		AllocationRepurposed: m.AllocationRepurposed,
		Status:               entities.NormalizeStatus(m.Status),
		PauseReason:          m.PauseReason,
		Metrics: entities.CampaignMetrics{
			Views:          m.MetricViews,
			Engagement:     m.MetricEngagement,
			CreatorsJoined: m.CreatorsJoined,
			PostsSubmitted: m.PostsSubmitted,
			PostsApproved:  m.PostsApproved,
		},
		CreatedAt:   m.CreatedAt.UTC(),
		UpdatedAt:   m.UpdatedAt.UTC(),
		SubmittedAt: normalizeOptionalTime(m.SubmittedAt),
		ReviewedAt:  normalizeOptionalTime(m.ReviewedAt),
		CompletedAt: normalizeOptionalTime(m.CompletedAt),
	}
	if strings.TrimSpace(m.RejectionReasons) != "" || strings.TrimSpace(m.RejectionRecs) != "" {
		campaign.RejectionFeedback = &entities.RejectionFeedback{
			Reasons:         m.RejectionReasons,
			Recommendations: m.RejectionRecs,
		}
	}
	return campaign, nil
}

type editRequestModel struct {
	EditID          string          `gorm:"column:edit_id;primaryKey"`
	CampaignID      string          `gorm:"column:campaign_id"`
	RequestedBy     string          `gorm:"column:requested_by"`
	ChangeReason    string          `gorm:"column:change_reason"`
	OldData         json.RawMessage `gorm:"column:old_data;type:jsonb"`
	NewData         json.RawMessage `gorm:"column:new_data;type:jsonb"`
	KeyChanges      []string        `gorm:"column:key_changes;type:text[]"`
	Status          string          `gorm:"column:status"`
	ReviewNotes     string          `gorm:"column:review_notes"`
	RejectionReason string          `gorm:"column:rejection_reason"`
	CreatedAt       time.Time       `gorm:"column:created_at"`
	ResolvedAt      *time.Time      `gorm:"column:resolved_at"`
}

func (editRequestModel) TableName() string {
	return "campaign_edit_requests"
}

func editRequestModelFromEntity(item entities.EditRequest) (editRequestModel, error) {
	oldData, err := json.Marshal(campaignSnapshotFromEntity(item.OldData))
	if err != nil {
		return editRequestModel{}, err
	}
	newData, err := json.Marshal(campaignSnapshotFromEntity(item.NewData))
	if err != nil {
		return editRequestModel{}, err
	}
	return editRequestModel{
		EditID:          strings.TrimSpace(item.EditID),
		CampaignID:      strings.TrimSpace(item.CampaignID),
		RequestedBy:     strings.TrimSpace(item.RequestedBy),
		ChangeReason:    strings.TrimSpace(item.ChangeReason),
		OldData:         oldData,
		NewData:         newData,
		KeyChanges:      copyOrEmpty(item.KeyChanges),
		Status:          string(item.Status),
		ReviewNotes:     strings.TrimSpace(item.ReviewNotes),
		RejectionReason: strings.TrimSpace(item.RejectionReason),
		CreatedAt:       item.CreatedAt.UTC(),
		ResolvedAt:      normalizeOptionalTime(item.ResolvedAt),
	}, nil
}

func (m editRequestModel) toEntity() (entities.EditRequest, error) {
	var oldSnapshot, newSnapshot campaignSnapshot
	if len(m.OldData) > 0 {
		if err := json.Unmarshal(m.OldData, &oldSnapshot); err != nil {
			return entities.EditRequest{}, err
		}
	}
	if len(m.NewData) > 0 {
		if err := json.Unmarshal(m.NewData, &newSnapshot); err != nil {
			return entities.EditRequest{}, err
		}
	}
	return entities.EditRequest{
		EditID:          m.EditID,
		CampaignID:      m.CampaignID,
		RequestedBy:     m.RequestedBy,
		ChangeReason:    m.ChangeReason,
		OldData:         oldSnapshot.toEntity(),
		NewData:         newSnapshot.toEntity(),
		KeyChanges:      copyOrEmpty(m.KeyChanges),
		Status:          entities.EditRequestStatus(m.Status),
		ReviewNotes:     m.ReviewNotes,
		RejectionReason: m.RejectionReason,
		CreatedAt:       m.CreatedAt.UTC(),
		ResolvedAt:      normalizeOptionalTime(m.ResolvedAt),
	}, nil
}

// campaignSnapshot is the canonical JSON shape of a campaign payload stored
// inside an edit request. Legacy-shaped rows are read through PayloadView in
// the query layer; this struct only carries the canonical spellings.
type campaignSnapshot struct {
	CampaignID           string    `json:"campaign_id"`
	BrandID              string    `json:"brand_id"`
	Title                string    `json:"title"`
	ContentType          string    `json:"content_type"`
	Budget               int64     `json:"budget"`
	Platforms            []string  `json:"platforms"`
	StartDate            time.Time `json:"start_date"`
	EndDate              time.Time `json:"end_date"`
	BriefOriginal        string    `json:"brief_original"`
	BriefRepurposed      string    `json:"brief_repurposed"`
	Guidelines           string    `json:"guidelines_original"`
	HashtagsOriginal     []string  `json:"hashtags_original"`
	HashtagsRepurposed   []string  `json:"hashtags_repurposed"`
	RateOriginal         int64     `json:"rate_original"`
	RateRepurposed       int64     `json:"rate_repurposed"`
	MinViews             int64     `json:"min_views"`
	AllocationOriginal   int       `json:"allocation_original"`
	AllocationRepurposed int       `json:"allocation_repurposed"`
}

func campaignSnapshotFromEntity(item entities.Campaign) campaignSnapshot {
	return campaignSnapshot{
		CampaignID:           item.CampaignID,
		BrandID:              item.BrandID,
		Title:                item.Title,
		ContentType:          string(item.ContentType),
		Budget:               item.Budget,
		Platforms:            copyOrEmpty(item.Platforms),
		StartDate:            item.StartDate.UTC(),
		EndDate:              item.EndDate.UTC(),
		BriefOriginal:        item.BriefOriginal,
		BriefRepurposed:      item.BriefRepurposed,
		Guidelines:           item.Guidelines,
		HashtagsOriginal:     copyOrEmpty(item.HashtagsOriginal),
		HashtagsRepurposed:   copyOrEmpty(item.HashtagsRepurposed),
		RateOriginal:         item.RateOriginal,
		RateRepurposed:       item.RateRepurposed,
		MinViews:             item.MinViews,
		AllocationOriginal:   item.AllocationOriginal,
		AllocationRepurposed: item.AllocationRepurposed,
	}
}

func (s campaignSnapshot) toEntity() entities.Campaign {
	return entities.Campaign{
		CampaignID:           s.CampaignID,
		BrandID:              s.BrandID,
		Title:                s.Title,
		ContentType:          entities.ContentType(s.ContentType),
		Budget:               s.Budget,
		Platforms:            copyOrEmpty(s.Platforms),
		StartDate:            s.StartDate,
		EndDate:              s.EndDate,
		BriefOriginal:        s.BriefOriginal,
		BriefRepurposed:      s.BriefRepurposed,
		Guidelines:           s.Guidelines,
		HashtagsOriginal:     copyOrEmpty(s.HashtagsOriginal),
		HashtagsRepurposed:   copyOrEmpty(s.HashtagsRepurposed),
		RateOriginal:         s.RateOriginal,
		RateRepurposed:       s.RateRepurposed,
		MinViews:             s.MinViews,
		AllocationOriginal:   s.AllocationOriginal,
		AllocationRepurposed: s.AllocationRepurposed,
	}
}

type campaignCreatorModel struct {
	CreatorID  string   `gorm:"column:creator_id;primaryKey"`
	CampaignID string   `gorm:"column:campaign_id;primaryKey"`
	Status     string   `gorm:"column:status"`
	Platforms  []string `gorm:"column:platforms;type:text[]"`
}

func (campaignCreatorModel) TableName() string {
	return "campaign_creators"
}

func (m campaignCreatorModel) toEntity() entities.CampaignCreator {
	return entities.CampaignCreator{
		CreatorID:  m.CreatorID,
		CampaignID: m.CampaignID,
		Status:     entities.CreatorStatus(m.Status),
		Platforms:  copyOrEmpty(m.Platforms),
	}
}

type outboxModel struct {
	OutboxID     string          `gorm:"column:outbox_id;primaryKey"`
	EventType    string          `gorm:"column:event_type"`
	PartitionKey string          `gorm:"column:partition_key"`
	Payload      json.RawMessage `gorm:"column:payload;type:jsonb"`
	Status       string          `gorm:"column:status"`
	CreatedAt    time.Time       `gorm:"column:created_at"`
	PublishedAt  *time.Time      `gorm:"column:published_at"`
}

func (outboxModel) TableName() string {
	return "campaign_review_outbox"
}

func copyOrEmpty(values []string) []string {
	if len(values) == 0 {
		return []string{}
	}
	return append([]string(nil), values...)
}
