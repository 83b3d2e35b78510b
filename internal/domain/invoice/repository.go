package invoice

import (
	"context"

	"github.com/scoopworks/scoopworks/internal/types"
)

// Repository defines the interface for invoice persistence operations
type Repository interface {
	// CreateWithLineItems creates a new invoice and its line items
	// atomically
	CreateWithLineItems(ctx context.Context, inv *Invoice) error

	// Get retrieves an invoice by ID including its line items
	Get(ctx context.Context, id string) (*Invoice, error)

	// GetByIDs retrieves invoices by their IDs; missing ids are simply
	// absent from the result
	GetByIDs(ctx context.Context, ids []string) ([]*Invoice, error)

	// Update persists status and paid-amount changes to an existing
	// invoice
	Update(ctx context.Context, inv *Invoice) error

	// DeleteWithLineItems removes a DRAFT invoice and its line items; line
	// items go first
	DeleteWithLineItems(ctx context.Context, id string) error

	// List retrieves invoices based on filter criteria
	List(ctx context.Context, filter *types.InvoiceFilter) ([]*Invoice, error)

	// Count returns the total count of invoices based on filter criteria
	Count(ctx context.Context, filter *types.InvoiceFilter) (int, error)

	// ExistsRecurringForPeriod reports whether the client already has a
	// recurring invoice for the billing interval and period. This is the
	// generator's idempotency check.
	ExistsRecurringForPeriod(ctx context.Context, clientID string, interval types.BillingInterval, period string) (bool, error)

	// NextInvoiceNumber derives the next invoice number for the
	// organization in context from the persisted maximum. It is re-read at
	// every allocation, never cached across a batch, to narrow the race
	// window with concurrent manual invoice creation.
	NextInvoiceNumber(ctx context.Context) (string, error)
}
