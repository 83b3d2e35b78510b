package activitylog

import (
	"context"

	"github.com/scoopworks/scoopworks/internal/types"
)

// Repository defines the interface for the append-only activity log.
// There is no update or delete: the log only grows.
type Repository interface {
	// Append records an entry
	Append(ctx context.Context, entry *Entry) error

	// List retrieves entries for the organization in context, newest
	// first
	List(ctx context.Context, filter *types.QueryFilter) ([]*Entry, error)

	// Count returns the total number of entries for the organization in
	// context
	Count(ctx context.Context) (int, error)
}
