package commands

import (
	"fmt"
	"strings"

	"opsdesk/contexts/marketplace-ops/campaign-review-service/domain/entities"
	domainerrors "opsdesk/contexts/marketplace-ops/campaign-review-service/domain/errors"
)

// Actor is the caller identity supplied by the external identity provider.
// Commands trust it as-is; authentication mechanics live outside this core.
type Actor struct {
	ID   string
	Role string
}

const (
	RoleAdmin   = "admin"
	RoleBrand   = "brand"
	RoleCreator = "creator"
)

func requireReviewer(actor Actor) error {
	if strings.TrimSpace(actor.ID) == "" || actor.Role != RoleAdmin {
		return fmt.Errorf("%w: reviewer role required", domainerrors.ErrUnauthorized)
	}
	return nil
}

func requireOwningBrand(actor Actor, campaign entities.Campaign) error {
	if strings.TrimSpace(actor.ID) == "" || actor.Role != RoleBrand || actor.ID != campaign.BrandID {
		return fmt.Errorf("%w: owning brand role required", domainerrors.ErrUnauthorized)
	}
	return nil
}
