package memory

import (
	"context"
	"encoding/json"
	"sort"
	"strings"
	"sync"
	"time"

	"opsdesk/contexts/marketplace-ops/campaign-review-service/domain/entities"
	domainerrors "opsdesk/contexts/marketplace-ops/campaign-review-service/domain/errors"
	"opsdesk/contexts/marketplace-ops/campaign-review-service/ports"

	"github.com/google/uuid"
)

// Store is the in-memory gateway used by tests and local runs. It applies
// the same invariants as the postgres adapter: status spellings normalize at
// the boundary and creators_joined is recomputed from join rows on every
// fetch.
type Store struct {
	mu sync.RWMutex

	campaigns map[string]entities.Campaign
	edits     map[string]entities.EditRequest
	rawEdits  map[string][]byte
	creators  map[string][]entities.CampaignCreator
	outbox    []ports.OutboxMessage
	published map[string]time.Time
}

func NewStore(seed []entities.Campaign) *Store {
	campaigns := make(map[string]entities.Campaign, len(seed))
	for _, item := range seed {
		item.Status = entities.NormalizeStatus(string(item.Status))
		campaigns[item.CampaignID] = item.Clone()
	}
	return &Store{
		campaigns: campaigns,
		edits:     make(map[string]entities.EditRequest),
		rawEdits:  make(map[string][]byte),
		creators:  make(map[string][]entities.CampaignCreator),
		published: make(map[string]time.Time),
	}
}

func (s *Store) CreateCampaign(_ context.Context, campaign entities.Campaign) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.campaigns[campaign.CampaignID]; exists {
		return domainerrors.ErrStoreWriteFailure
	}
	campaign.Status = entities.NormalizeStatus(string(campaign.Status))
	s.campaigns[campaign.CampaignID] = campaign.Clone()
	return nil
}

func (s *Store) UpdateCampaign(_ context.Context, campaign entities.Campaign) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.campaigns[campaign.CampaignID]; !exists {
		return domainerrors.ErrCampaignNotFound
	}
	s.campaigns[campaign.CampaignID] = campaign.Clone()
	return nil
}

func (s *Store) GetCampaign(_ context.Context, campaignID string) (entities.Campaign, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	item, exists := s.campaigns[strings.TrimSpace(campaignID)]
	if !exists {
		return entities.Campaign{}, domainerrors.ErrCampaignNotFound
	}
	out := item.Clone()
	out.Metrics.CreatorsJoined = entities.ActiveCreatorCount(s.creators[out.CampaignID])
	return out, nil
}

func (s *Store) ListCampaigns(_ context.Context, filter ports.CampaignFilter) ([]entities.Campaign, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]entities.Campaign, 0, len(s.campaigns))
	for _, campaign := range s.campaigns {
		if strings.TrimSpace(filter.BrandID) != "" && campaign.BrandID != strings.TrimSpace(filter.BrandID) {
			continue
		}
		if len(filter.Statuses) > 0 && !statusIn(campaign.Status, filter.Statuses) {
			continue
		}
		out := campaign.Clone()
		out.Metrics.CreatorsJoined = entities.ActiveCreatorCount(s.creators[out.CampaignID])
		items = append(items, out)
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].CampaignID < items[j].CampaignID
		}
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
	items = window(items, filter.Offset, filter.Limit)
	return items, nil
}

func (s *Store) CreateEditRequest(_ context.Context, request entities.EditRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.edits[request.EditID]; exists {
		return domainerrors.ErrStoreWriteFailure
	}
	raw, err := json.Marshal(editPayload(request.NewData))
	if err != nil {
		return err
	}
	s.edits[request.EditID] = request
	s.rawEdits[request.EditID] = raw
	return nil
}

func (s *Store) GetEditRequest(_ context.Context, editID string) (entities.EditRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	item, exists := s.edits[strings.TrimSpace(editID)]
	if !exists {
		return entities.EditRequest{}, domainerrors.ErrEditNotFound
	}
	return item, nil
}

func (s *Store) UpdateEditRequest(_ context.Context, request entities.EditRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.edits[request.EditID]; !exists {
		return domainerrors.ErrEditNotFound
	}
	s.edits[request.EditID] = request
	return nil
}

func (s *Store) ListEditRequestsByCampaign(_ context.Context, campaignID string) ([]entities.EditRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]entities.EditRequest, 0)
	for _, item := range s.edits {
		if item.CampaignID == strings.TrimSpace(campaignID) {
			items = append(items, item)
		}
	}
	sortEdits(items)
	return items, nil
}

func (s *Store) ListPendingEditRequests(_ context.Context) ([]entities.EditRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]entities.EditRequest, 0)
	for _, item := range s.edits {
		if item.Status == entities.EditRequestStatusPending {
			items = append(items, item)
		}
	}
	sortEdits(items)
	return items, nil
}

func (s *Store) RawNewData(_ context.Context, editID string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	raw, exists := s.rawEdits[strings.TrimSpace(editID)]
	if !exists {
		return nil, domainerrors.ErrEditNotFound
	}
	return append([]byte(nil), raw...), nil
}

func (s *Store) ListCreatorsByCampaign(_ context.Context, campaignID string) ([]entities.CampaignCreator, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return append([]entities.CampaignCreator(nil), s.creators[strings.TrimSpace(campaignID)]...), nil
}

func (s *Store) CountActiveCreators(_ context.Context, campaignIDs []string) (map[string]int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	counts := make(map[string]int, len(campaignIDs))
	for _, id := range campaignIDs {
		counts[id] = entities.ActiveCreatorCount(s.creators[id])
	}
	return counts, nil
}

// SeedCreators replaces the join records for a campaign. Test helper.
func (s *Store) SeedCreators(campaignID string, creators []entities.CampaignCreator) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.creators[campaignID] = append([]entities.CampaignCreator(nil), creators...)
}

// SeedRawEditPayload overwrites the stored proposal payload for an edit,
// used to exercise legacy-shaped records in tests.
func (s *Store) SeedRawEditPayload(editID string, raw []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.rawEdits[editID] = append([]byte(nil), raw...)
}

func (s *Store) AppendOutbox(_ context.Context, envelope ports.EventEnvelope) error {
	payload, err := json.Marshal(envelope)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.outbox = append(s.outbox, ports.OutboxMessage{
		OutboxID:     envelope.EventID,
		EventType:    envelope.EventType,
		PartitionKey: envelope.PartitionKey,
		Payload:      payload,
		CreatedAt:    envelope.OccurredAt,
	})
	return nil
}

func (s *Store) ListPendingOutbox(_ context.Context, limit int) ([]ports.OutboxMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]ports.OutboxMessage, 0)
	for _, row := range s.outbox {
		if _, done := s.published[row.OutboxID]; done {
			continue
		}
		items = append(items, row)
		if limit > 0 && len(items) >= limit {
			break
		}
	}
	return items, nil
}

func (s *Store) MarkOutboxPublished(_ context.Context, outboxID string, publishedAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.published[outboxID] = publishedAt
	return nil
}

// PendingOutboxCount reports unpublished rows. Test helper.
func (s *Store) PendingOutboxCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for _, row := range s.outbox {
		if _, done := s.published[row.OutboxID]; !done {
			count++
		}
	}
	return count
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}

func statusIn(status entities.CampaignStatus, set []entities.CampaignStatus) bool {
	for _, item := range set {
		if item == status {
			return true
		}
	}
	return false
}

func window(items []entities.Campaign, offset, limit int) []entities.Campaign {
	if offset > 0 {
		if offset >= len(items) {
			return []entities.Campaign{}
		}
		items = items[offset:]
	}
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	return items
}

func sortEdits(items []entities.EditRequest) {
	sort.Slice(items, func(i, j int) bool {
		if items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].EditID < items[j].EditID
		}
		return items[i].CreatedAt.Before(items[j].CreatedAt)
	})
}

// editPayload renders the canonical stored shape of a proposal payload.
func editPayload(c entities.Campaign) map[string]any {
	return map[string]any{
		"title":                 c.Title,
		"budget":                c.Budget,
		"platforms":             c.Platforms,
		"start_date":            c.StartDate,
		"end_date":              c.EndDate,
		"guidelines_original":   c.Guidelines,
		"hashtags_original":     c.HashtagsOriginal,
		"hashtags_repurposed":   c.HashtagsRepurposed,
		"rate_original":         c.RateOriginal,
		"rate_repurposed":       c.RateRepurposed,
		"allocation_original":   c.AllocationOriginal,
		"allocation_repurposed": c.AllocationRepurposed,
		"min_views":             c.MinViews,
	}
}
