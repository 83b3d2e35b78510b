package types

import (
	"time"

	"github.com/samber/lo"
	ierr "github.com/scoopworks/scoopworks/internal/errors"
)

// InvoiceStatus represents the current state of an invoice in its lifecycle
type InvoiceStatus string

const (
	// InvoiceStatusDraft indicates the invoice can still be modified or
	// deleted and has not been presented for payment
	InvoiceStatusDraft InvoiceStatus = "DRAFT"
	// InvoiceStatusOpen indicates the invoice is finalized and awaiting
	// payment
	InvoiceStatusOpen InvoiceStatus = "OPEN"
	// InvoiceStatusPaid is terminal: the invoice has been collected in full
	InvoiceStatusPaid InvoiceStatus = "PAID"
	// InvoiceStatusOverdue indicates an open invoice past its due date
	InvoiceStatusOverdue InvoiceStatus = "OVERDUE"
	// InvoiceStatusVoid is terminal: the invoice was cancelled before
	// collection
	InvoiceStatusVoid InvoiceStatus = "VOID"
	// InvoiceStatusUncollectible is terminal: collection was abandoned
	InvoiceStatusUncollectible InvoiceStatus = "UNCOLLECTIBLE"
)

// invoiceTransitions defines the allowed status transitions. Terminal
// states (PAID, VOID, UNCOLLECTIBLE) have no outgoing edges.
var invoiceTransitions = map[InvoiceStatus][]InvoiceStatus{
	InvoiceStatusDraft: {InvoiceStatusOpen},
	InvoiceStatusOpen: {
		InvoiceStatusPaid,
		InvoiceStatusOverdue,
		InvoiceStatusVoid,
		InvoiceStatusUncollectible,
	},
	InvoiceStatusOverdue: {
		InvoiceStatusPaid,
		InvoiceStatusVoid,
		InvoiceStatusUncollectible,
	},
}

func (s InvoiceStatus) String() string {
	return string(s)
}

func (s InvoiceStatus) Validate() error {
	allowed := []InvoiceStatus{
		InvoiceStatusDraft,
		InvoiceStatusOpen,
		InvoiceStatusPaid,
		InvoiceStatusOverdue,
		InvoiceStatusVoid,
		InvoiceStatusUncollectible,
	}
	if !lo.Contains(allowed, s) {
		return ierr.NewError("invalid invoice status").
			WithHint("Please provide a valid invoice status").
			WithReportableDetails(map[string]any{
				"allowed": allowed,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// CanTransitionTo reports whether the state machine permits moving from s
// to target
func (s InvoiceStatus) CanTransitionTo(target InvoiceStatus) bool {
	return lo.Contains(invoiceTransitions[s], target)
}

// IsTerminal reports whether the status has no outgoing transitions
func (s InvoiceStatus) IsTerminal() bool {
	return len(invoiceTransitions[s]) == 0
}

// InvoiceBulkAction is the action applied to an explicit list of invoice
// ids. Preconditions are always re-validated against stored status; ids
// failing them are excluded from the affected count, not errored.
type InvoiceBulkAction string

const (
	InvoiceBulkActionFinalize     InvoiceBulkAction = "finalize"
	InvoiceBulkActionDelete       InvoiceBulkAction = "delete"
	InvoiceBulkActionEmail        InvoiceBulkAction = "email"
	InvoiceBulkActionUpdateStatus InvoiceBulkAction = "update_status"
)

func (a InvoiceBulkAction) Validate() error {
	allowed := []InvoiceBulkAction{
		InvoiceBulkActionFinalize,
		InvoiceBulkActionDelete,
		InvoiceBulkActionEmail,
		InvoiceBulkActionUpdateStatus,
	}
	if !lo.Contains(allowed, a) {
		return ierr.NewError("invalid bulk action").
			WithHint("Please provide a valid bulk action").
			WithReportableDetails(map[string]any{
				"allowed": allowed,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// InvoiceFilter represents the filter options for listing invoices
type InvoiceFilter struct {
	*QueryFilter

	// invoice_ids restricts results to invoices with the specified IDs
	InvoiceIDs []string `json:"invoice_ids,omitempty" form:"invoice_ids"`

	// client_id filters invoices for a specific client
	ClientID string `json:"client_id,omitempty" form:"client_id"`

	// invoice_status filters by lifecycle state; multiple values are OR-ed
	InvoiceStatus []InvoiceStatus `json:"invoice_status,omitempty" form:"invoice_status"`

	// billing_interval filters by the invoice's billing cadence
	BillingInterval BillingInterval `json:"billing_interval,omitempty" form:"billing_interval"`

	// recurring_only restricts to invoices linked to a subscription
	RecurringOnly bool `json:"recurring_only,omitempty" form:"recurring_only"`

	// created_after/created_before bound the invoice creation time
	CreatedAfter  *time.Time `json:"created_after,omitempty" form:"created_after"`
	CreatedBefore *time.Time `json:"created_before,omitempty" form:"created_before"`

	// search matches against invoice number
	Search string `json:"search,omitempty" form:"search"`
}

// NewInvoiceFilter creates a new invoice filter with default pagination
func NewInvoiceFilter() *InvoiceFilter {
	return &InvoiceFilter{
		QueryFilter: NewDefaultQueryFilter(),
	}
}

// NewNoLimitInvoiceFilter creates a new invoice filter without pagination
func NewNoLimitInvoiceFilter() *InvoiceFilter {
	return &InvoiceFilter{
		QueryFilter: NewNoLimitQueryFilter(),
	}
}

func (f *InvoiceFilter) Validate() error {
	if f.QueryFilter != nil {
		if err := f.QueryFilter.Validate(); err != nil {
			return err
		}
	}
	for _, s := range f.InvoiceStatus {
		if err := s.Validate(); err != nil {
			return err
		}
	}
	if f.CreatedAfter != nil && f.CreatedBefore != nil && f.CreatedBefore.Before(*f.CreatedAfter) {
		return ierr.NewError("invalid time range").
			WithHint("created_before must be after created_after").
			Mark(ierr.ErrValidation)
	}
	return nil
}

// GetLimit implements BaseFilter interface
func (f *InvoiceFilter) GetLimit() int {
	if f.QueryFilter == nil {
		return NewDefaultQueryFilter().GetLimit()
	}
	return f.QueryFilter.GetLimit()
}

// GetOffset implements BaseFilter interface
func (f *InvoiceFilter) GetOffset() int {
	if f.QueryFilter == nil {
		return NewDefaultQueryFilter().GetOffset()
	}
	return f.QueryFilter.GetOffset()
}

// IsUnlimited implements BaseFilter interface
func (f *InvoiceFilter) IsUnlimited() bool {
	if f.QueryFilter == nil {
		return NewDefaultQueryFilter().IsUnlimited()
	}
	return f.QueryFilter.IsUnlimited()
}
