package postgresadapter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"strings"
	"time"

	"opsdesk/contexts/marketplace-ops/campaign-review-service/domain/entities"
	domainerrors "opsdesk/contexts/marketplace-ops/campaign-review-service/domain/errors"
	"opsdesk/contexts/marketplace-ops/campaign-review-service/ports"

	"opsdesk/internal/shared/outbox"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository is the campaign store gateway. It is the only code that sees
// raw store failures; everything leaving here is classified into the domain
// taxonomy: schema-unavailable and timeout on reads feed the resilience
// layer's fallback path, write failures are terminal and never retried.
type Repository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewRepository(db *gorm.DB, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{
		db:     db,
		logger: logger,
	}
}

func (r *Repository) CreateCampaign(ctx context.Context, campaign entities.Campaign) error {
	row, err := campaignModelFromEntity(campaign)
	if err != nil {
		return fmt.Errorf("%w: %v", domainerrors.ErrStoreWriteFailure, err)
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return classifyWriteError(err)
	}
	return nil
}

func (r *Repository) UpdateCampaign(ctx context.Context, campaign entities.Campaign) error {
	updates, err := campaignUpdatesFromEntity(campaign)
	if err != nil {
		return fmt.Errorf("%w: %v", domainerrors.ErrStoreWriteFailure, err)
	}
	result := r.db.WithContext(ctx).
		Model(&campaignModel{}).
		Where("campaign_id = ?", strings.TrimSpace(campaign.CampaignID)).
		Updates(updates)
	if result.Error != nil {
		return classifyWriteError(result.Error)
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrCampaignNotFound
	}
	return nil
}

func (r *Repository) GetCampaign(ctx context.Context, campaignID string) (entities.Campaign, error) {
	var row campaignModel
	err := r.db.WithContext(ctx).
		Where("campaign_id = ?", strings.TrimSpace(campaignID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Campaign{}, domainerrors.ErrCampaignNotFound
		}
		return entities.Campaign{}, classifyReadError(err)
	}
	campaign, err := row.toEntity()
	if err != nil {
		return entities.Campaign{}, err
	}
	count, err := r.activeCreatorCount(ctx, campaign.CampaignID)
	if err != nil {
		return entities.Campaign{}, err
	}
	campaign.Metrics.CreatorsJoined = count
	return campaign, nil
}

func (r *Repository) ListCampaigns(ctx context.Context, filter ports.CampaignFilter) ([]entities.Campaign, error) {
	tx := r.db.WithContext(ctx).Model(&campaignModel{})
	if strings.TrimSpace(filter.BrandID) != "" {
		tx = tx.Where("brand_id = ?", strings.TrimSpace(filter.BrandID))
	}
	if len(filter.Statuses) > 0 {
		statuses := make([]string, 0, len(filter.Statuses))
		for _, status := range filter.Statuses {
			statuses = append(statuses, string(status))
		}
		tx = tx.Where("status IN ?", statuses)
	}
	if filter.Offset > 0 {
		tx = tx.Offset(filter.Offset)
	}
	if filter.Limit > 0 {
		tx = tx.Limit(filter.Limit)
	}

	var rows []campaignModel
	if err := tx.Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, classifyReadError(err)
	}

	items := make([]entities.Campaign, 0, len(rows))
	ids := make([]string, 0, len(rows))
	for _, row := range rows {
		campaign, err := row.toEntity()
		if err != nil {
			return nil, err
		}
		items = append(items, campaign)
		ids = append(ids, campaign.CampaignID)
	}

	counts, err := r.CountActiveCreators(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range items {
		items[i].Metrics.CreatorsJoined = counts[items[i].CampaignID]
	}
	return items, nil
}

func (r *Repository) CreateEditRequest(ctx context.Context, request entities.EditRequest) error {
	row, err := editRequestModelFromEntity(request)
	if err != nil {
		return fmt.Errorf("%w: %v", domainerrors.ErrStoreWriteFailure, err)
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return classifyWriteError(err)
	}
	return nil
}

func (r *Repository) GetEditRequest(ctx context.Context, editID string) (entities.EditRequest, error) {
	var row editRequestModel
	err := r.db.WithContext(ctx).
		Where("edit_id = ?", strings.TrimSpace(editID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.EditRequest{}, domainerrors.ErrEditNotFound
		}
		return entities.EditRequest{}, classifyReadError(err)
	}
	return row.toEntity()
}

func (r *Repository) UpdateEditRequest(ctx context.Context, request entities.EditRequest) error {
	result := r.db.WithContext(ctx).
		Model(&editRequestModel{}).
		Where("edit_id = ?", strings.TrimSpace(request.EditID)).
		Updates(map[string]any{
			"status":           string(request.Status),
			"review_notes":     strings.TrimSpace(request.ReviewNotes),
			"rejection_reason": strings.TrimSpace(request.RejectionReason),
			"resolved_at":      normalizeOptionalTime(request.ResolvedAt),
		})
	if result.Error != nil {
		return classifyWriteError(result.Error)
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrEditNotFound
	}
	return nil
}

func (r *Repository) ListEditRequestsByCampaign(ctx context.Context, campaignID string) ([]entities.EditRequest, error) {
	return r.listEdits(ctx, r.db.WithContext(ctx).
		Where("campaign_id = ?", strings.TrimSpace(campaignID)))
}

func (r *Repository) ListPendingEditRequests(ctx context.Context) ([]entities.EditRequest, error) {
	return r.listEdits(ctx, r.db.WithContext(ctx).
		Where("status = ?", string(entities.EditRequestStatusPending)))
}

func (r *Repository) listEdits(_ context.Context, tx *gorm.DB) ([]entities.EditRequest, error) {
	var rows []editRequestModel
	if err := tx.Order("created_at ASC").Find(&rows).Error; err != nil {
		return nil, classifyReadError(err)
	}
	items := make([]entities.EditRequest, 0, len(rows))
	for _, row := range rows {
		item, err := row.toEntity()
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

func (r *Repository) RawNewData(ctx context.Context, editID string) ([]byte, error) {
	var row editRequestModel
	err := r.db.WithContext(ctx).
		Select("new_data").
		Where("edit_id = ?", strings.TrimSpace(editID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrEditNotFound
		}
		return nil, classifyReadError(err)
	}
	return append([]byte(nil), row.NewData...), nil
}

func (r *Repository) ListCreatorsByCampaign(ctx context.Context, campaignID string) ([]entities.CampaignCreator, error) {
	var rows []campaignCreatorModel
	if err := r.db.WithContext(ctx).
		Where("campaign_id = ?", strings.TrimSpace(campaignID)).
		Find(&rows).
		Error; err != nil {
		return nil, classifyReadError(err)
	}
	items := make([]entities.CampaignCreator, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

func (r *Repository) CountActiveCreators(ctx context.Context, campaignIDs []string) (map[string]int, error) {
	counts := make(map[string]int, len(campaignIDs))
	if len(campaignIDs) == 0 {
		return counts, nil
	}
	type countRow struct {
		CampaignID string
		Count      int
	}
	var rows []countRow
	if err := r.db.WithContext(ctx).
		Model(&campaignCreatorModel{}).
		Select("campaign_id, count(*) as count").
		Where("campaign_id IN ? AND status = ?", campaignIDs, string(entities.CreatorStatusActive)).
		Group("campaign_id").
		Find(&rows).
		Error; err != nil {
		return nil, classifyReadError(err)
	}
	for _, row := range rows {
		counts[row.CampaignID] = row.Count
	}
	return counts, nil
}

func (r *Repository) AppendOutbox(ctx context.Context, envelope ports.EventEnvelope) error {
	payload, err := json.Marshal(envelope)
	if err != nil {
		return fmt.Errorf("%w: %v", domainerrors.ErrStoreWriteFailure, err)
	}
	row := outboxModel{
		OutboxID:     strings.TrimSpace(envelope.EventID),
		EventType:    strings.TrimSpace(envelope.EventType),
		PartitionKey: strings.TrimSpace(envelope.PartitionKey),
		Payload:      payload,
		Status:       outbox.StatusPending,
		CreatedAt:    envelope.OccurredAt.UTC(),
	}
	if row.OutboxID == "" {
		row.OutboxID = uuid.NewString()
	}
	if row.CreatedAt.IsZero() {
		row.CreatedAt = time.Now().UTC()
	}
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "outbox_id"}},
			DoNothing: true,
		}).
		Create(&row).
		Error; err != nil {
		return classifyWriteError(err)
	}
	return nil
}

func (r *Repository) ListPendingOutbox(ctx context.Context, limit int) ([]ports.OutboxMessage, error) {
	tx := r.db.WithContext(ctx).
		Where("status = ?", outbox.StatusPending).
		Order("created_at ASC")
	if limit > 0 {
		tx = tx.Limit(limit)
	}
	var rows []outboxModel
	if err := tx.Find(&rows).Error; err != nil {
		return nil, classifyReadError(err)
	}
	items := make([]ports.OutboxMessage, 0, len(rows))
	for _, row := range rows {
		items = append(items, ports.OutboxMessage{
			OutboxID:     row.OutboxID,
			EventType:    row.EventType,
			PartitionKey: row.PartitionKey,
			Payload:      append([]byte(nil), row.Payload...),
			CreatedAt:    row.CreatedAt.UTC(),
		})
	}
	return items, nil
}

func (r *Repository) MarkOutboxPublished(ctx context.Context, outboxID string, publishedAt time.Time) error {
	result := r.db.WithContext(ctx).
		Model(&outboxModel{}).
		Where("outbox_id = ?", strings.TrimSpace(outboxID)).
		Updates(map[string]any{
			"status":       outbox.StatusPublished,
			"published_at": publishedAt.UTC(),
		})
	if result.Error != nil {
		return classifyWriteError(result.Error)
	}
	return nil
}

func (r *Repository) activeCreatorCount(ctx context.Context, campaignID string) (int, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&campaignCreatorModel{}).
		Where("campaign_id = ? AND status = ?", campaignID, string(entities.CreatorStatusActive)).
		Count(&count).
		Error; err != nil {
		return 0, classifyReadError(err)
	}
	return int(count), nil
}

// classifyReadError folds raw store failures into the read-path taxonomy.
// Missing relations mean a half-applied migration, which the resilience
// layer treats the same as a timeout: serve fallback, disable mutation.
func classifyReadError(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "42P01", "42703": // undefined_table, undefined_column
			return fmt.Errorf("%w: %s", domainerrors.ErrStoreSchemaUnavailable, pgErr.Message)
		}
	}
	if isTransient(err) {
		return fmt.Errorf("%w: %v", domainerrors.ErrStoreUnavailable, err)
	}
	return err
}

func classifyWriteError(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %v", domainerrors.ErrStoreWriteFailure, err)
}

func isTransient(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// connection exception class
		return strings.HasPrefix(pgErr.Code, "08")
	}
	return false
}

func normalizeOptionalTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	value := t.UTC()
	return &value
}
