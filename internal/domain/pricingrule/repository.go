package pricingrule

import (
	"context"

	"github.com/scoopworks/scoopworks/internal/types"
)

// Repository defines the interface for pricing rule persistence operations
type Repository interface {
	// Create creates a new pricing rule version
	Create(ctx context.Context, rule *PricingRule) error

	// Get retrieves a pricing rule by ID
	Get(ctx context.Context, id string) (*PricingRule, error)

	// List retrieves pricing rules based on filter criteria
	List(ctx context.Context, filter *types.PricingRuleFilter) ([]*PricingRule, error)

	// ListActiveByFrequency retrieves the active rules for a frequency
	// ordered by priority descending
	ListActiveByFrequency(ctx context.Context, frequency types.Frequency) ([]*PricingRule, error)
}
