package crosssell

import "context"

// Repository defines the interface for cross sell persistence operations
type Repository interface {
	// Create creates a new cross sell
	Create(ctx context.Context, cs *CrossSell) error

	// Get retrieves a cross sell by ID
	Get(ctx context.Context, id string) (*CrossSell, error)

	// ListActiveByClient retrieves a client's ACTIVE cross sells
	ListActiveByClient(ctx context.Context, clientID string) ([]*CrossSell, error)

	// ListActive retrieves all ACTIVE cross sells for the organization in
	// context, used by the quote surface's add-on catalog
	ListActive(ctx context.Context) ([]*CrossSell, error)
}
