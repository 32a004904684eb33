package httpserver

import (
	"errors"
	"net/http"
	"time"

	reviewhttp "opsdesk/contexts/marketplace-ops/campaign-review-service/transport/http"
	consoleentities "opsdesk/contexts/marketplace-ops/console-service/domain/entities"
	consoleerrors "opsdesk/contexts/marketplace-ops/console-service/domain/errors"
)

// Every campaign-targeting write dispatches through the console controller's
// mutation gate, so a record currently shown from a stale or mock snapshot
// can never be mutated. The gate runs before the lifecycle engines are
// reached; this file holds the row mapping and error plumbing for it.

// consoleRow maps a canonical campaign response onto the console's read
// model so a completed mutation updates the local row without waiting for
// the next poll.
func consoleRow(dto reviewhttp.CampaignDTO) *consoleentities.CampaignSummary {
	row := consoleentities.CampaignSummary{
		CampaignID:     dto.CampaignID,
		BrandID:        dto.BrandID,
		Title:          dto.Title,
		Status:         dto.Status,
		ContentType:    dto.ContentType,
		Budget:         dto.Budget,
		Platforms:      append([]string(nil), dto.Platforms...),
		CreatorsJoined: dto.Metrics.CreatorsJoined,
		Views:          dto.Metrics.Views,
		PauseReason:    dto.PauseReason,
	}
	if parsed, err := time.Parse("2006-01-02", dto.StartDate); err == nil {
		row.StartDate = parsed
	}
	if parsed, err := time.Parse("2006-01-02", dto.EndDate); err == nil {
		row.EndDate = parsed
	}
	if parsed, err := time.Parse(time.RFC3339, dto.UpdatedAt); err == nil {
		row.UpdatedAt = parsed
	}
	return &row
}

func writeMutationError(w http.ResponseWriter, err error) {
	if errors.Is(err, consoleerrors.ErrMutationDisabledOnFallbackData) {
		writeConsoleDomainError(w, err)
		return
	}
	writeReviewDomainError(w, err)
}
