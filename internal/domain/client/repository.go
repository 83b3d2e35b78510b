package client

import "context"

// Repository defines the interface for client persistence operations
type Repository interface {
	// Create creates a new client
	Create(ctx context.Context, c *Client) error

	// Get retrieves a client by ID
	Get(ctx context.Context, id string) (*Client, error)

	// GetByIDs retrieves clients by their IDs
	GetByIDs(ctx context.Context, ids []string) ([]*Client, error)
}
