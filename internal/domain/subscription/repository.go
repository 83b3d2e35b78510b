package subscription

import (
	"context"

	"github.com/scoopworks/scoopworks/internal/types"
)

// Repository defines the interface for subscription persistence operations
type Repository interface {
	// Create creates a new subscription
	Create(ctx context.Context, sub *Subscription) error

	// Get retrieves a subscription by ID
	Get(ctx context.Context, id string) (*Subscription, error)

	// Update persists status or price changes to an existing subscription
	Update(ctx context.Context, sub *Subscription) error

	// ListByStatus retrieves all subscriptions in the given status for the
	// organization in context
	ListByStatus(ctx context.Context, status types.SubscriptionStatus) ([]*Subscription, error)

	// ListOrganizationsWithActive returns the distinct organization ids
	// that have at least one ACTIVE subscription. Used by the invoice
	// generator to enumerate billable organizations.
	ListOrganizationsWithActive(ctx context.Context) ([]string, error)
}
