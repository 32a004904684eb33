package outbox

// Row status lifecycle for transactional outbox tables. Rows are written in
// the same transaction as the state change; the relay worker reads pending
// rows and publishes them to the message bus.
const (
	StatusPending   = "pending"
	StatusPublished = "published"
	StatusFailed    = "failed"
)
