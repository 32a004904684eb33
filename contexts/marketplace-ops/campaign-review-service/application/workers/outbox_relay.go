package workers

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	application "opsdesk/contexts/marketplace-ops/campaign-review-service/application"
	"opsdesk/contexts/marketplace-ops/campaign-review-service/ports"
)

// OutboxRelay publishes pending lifecycle transition events to the bus so
// the notification runtime can drive brand-facing messages.
type OutboxRelay struct {
	Outbox    ports.OutboxRepository
	Publisher ports.EventPublisher
	Clock     ports.Clock
	BatchSize int
	Logger    *slog.Logger
}

func (r OutboxRelay) RunOnce(ctx context.Context) error {
	logger := application.ResolveLogger(r.Logger)
	limit := r.BatchSize
	if limit <= 0 {
		limit = 100
	}

	pending, err := r.Outbox.ListPendingOutbox(ctx, limit)
	if err != nil {
		logger.Error("transition outbox list failed",
			"event", "transition_outbox_list_failed",
			"module", "marketplace-ops/campaign-review-service",
			"layer", "worker",
			"error", err.Error(),
		)
		return err
	}

	now := time.Now().UTC()
	if r.Clock != nil {
		now = r.Clock.Now().UTC()
	}

	for _, row := range pending {
		var event ports.EventEnvelope
		if err := json.Unmarshal(row.Payload, &event); err != nil {
			logger.Error("transition outbox decode failed",
				"event", "transition_outbox_decode_failed",
				"module", "marketplace-ops/campaign-review-service",
				"layer", "worker",
				"outbox_id", row.OutboxID,
				"error", err.Error(),
			)
			return err
		}

		topic := event.EventType
		if topic == "" {
			topic = row.EventType
		}
		if err := r.Publisher.Publish(ctx, topic, event); err != nil {
			logger.Error("transition outbox publish failed",
				"event", "transition_outbox_publish_failed",
				"module", "marketplace-ops/campaign-review-service",
				"layer", "worker",
				"outbox_id", row.OutboxID,
				"event_type", event.EventType,
				"error", err.Error(),
			)
			return err
		}
		if err := r.Outbox.MarkOutboxPublished(ctx, row.OutboxID, now); err != nil {
			logger.Error("transition outbox mark published failed",
				"event", "transition_outbox_mark_published_failed",
				"module", "marketplace-ops/campaign-review-service",
				"layer", "worker",
				"outbox_id", row.OutboxID,
				"error", err.Error(),
			)
			return err
		}
	}

	if len(pending) > 0 {
		logger.Info("transition outbox relay cycle completed",
			"event", "transition_outbox_relay_completed",
			"module", "marketplace-ops/campaign-review-service",
			"layer", "worker",
			"published_count", len(pending),
		)
	}
	return nil
}
