package types

// Status tracks the database lifecycle of a row and determines whether it
// participates in queries. This is distinct from entity-specific statuses
// like SubscriptionStatus or InvoiceStatus.
type Status string

const (
	StatusPublished Status = "published"
	StatusArchived  Status = "archived"
	StatusDeleted   Status = "deleted"
)
