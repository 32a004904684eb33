package entities

import "time"

// Collection names the three independently paginated console lists.
type Collection string

const (
	CollectionPending   Collection = "pending"
	CollectionActive    Collection = "active"
	CollectionCompleted Collection = "completed"
)

func IsSupportedCollection(value Collection) bool {
	switch value {
	case CollectionPending, CollectionActive, CollectionCompleted:
		return true
	default:
		return false
	}
}

// CampaignSummary is the console's read model of a campaign row. It carries
// no provenance flags; those live on the Snapshot envelope so they can never
// leak into a mutation path.
type CampaignSummary struct {
	CampaignID     string
	BrandID        string
	Title          string
	Status         string
	ContentType    string
	Budget         int64
	Platforms      []string
	StartDate      time.Time
	EndDate        time.Time
	CreatorsJoined int
	Views          int64
	PauseReason    string
	UpdatedAt      time.Time
}

// CreatorRow mirrors a campaign-creator join record in the detail view.
type CreatorRow struct {
	CreatorID string
	Status    string
	Platforms []string
}

type CampaignDetail struct {
	Summary  CampaignSummary
	Creators []CreatorRow
}

// Snapshot is a console list result plus its provenance. Stale marks a
// previously successful result re-served after a failed refresh; MockData
// marks synthesized placeholders served when nothing real was ever fetched.
type Snapshot struct {
	Collection Collection
	Items      []CampaignSummary
	Stale      bool
	MockData   bool
	FetchedAt  time.Time
}

type DetailSnapshot struct {
	Detail    CampaignDetail
	Stale     bool
	FetchedAt time.Time
}
