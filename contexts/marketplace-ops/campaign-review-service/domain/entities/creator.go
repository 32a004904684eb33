package entities

type CreatorStatus string

const (
	CreatorStatusPending  CreatorStatus = "pending"
	CreatorStatusActive   CreatorStatus = "active"
	CreatorStatusRejected CreatorStatus = "rejected"
)

// CampaignCreator is the join record between a creator and a campaign.
type CampaignCreator struct {
	CreatorID  string
	CampaignID string
	Status     CreatorStatus
	Platforms  []string
}

// ActiveCreatorCount is the authoritative value for
// Metrics.CreatorsJoined. Stored counters may lag; every read through the
// gateway recomputes from the join rows.
func ActiveCreatorCount(creators []CampaignCreator) int {
	count := 0
	for _, item := range creators {
		if item.Status == CreatorStatusActive {
			count++
		}
	}
	return count
}
