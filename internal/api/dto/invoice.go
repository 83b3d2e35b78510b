package dto

import (
	"time"

	"github.com/scoopworks/scoopworks/internal/domain/invoice"
	ierr "github.com/scoopworks/scoopworks/internal/errors"
	"github.com/scoopworks/scoopworks/internal/types"
)

// InvoiceResponse is the API representation of an invoice
type InvoiceResponse struct {
	ID              string                `json:"id"`
	ClientID        string                `json:"client_id"`
	SubscriptionID  *string               `json:"subscription_id,omitempty"`
	InvoiceNumber   string                `json:"invoice_number"`
	InvoiceStatus   types.InvoiceStatus   `json:"invoice_status"`
	BillingInterval types.BillingInterval `json:"billing_interval"`
	BillingPeriod   *string               `json:"billing_period,omitempty"`
	SubtotalCents   int64                 `json:"subtotal_cents"`
	TotalCents      int64                 `json:"total_cents"`
	AmountPaidCents int64                 `json:"amount_paid_cents"`
	AmountDueCents  int64                 `json:"amount_due_cents"`
	DueDate         *time.Time            `json:"due_date,omitempty"`
	FinalizedAt     *time.Time            `json:"finalized_at,omitempty"`
	PaidAt          *time.Time            `json:"paid_at,omitempty"`
	VoidedAt        *time.Time            `json:"voided_at,omitempty"`
	LineItems       []*LineItemResponse   `json:"line_items,omitempty"`
	CreatedAt       time.Time             `json:"created_at"`
	UpdatedAt       time.Time             `json:"updated_at"`
}

// LineItemResponse is the API representation of an invoice line item
type LineItemResponse struct {
	ID             string `json:"id"`
	Description    string `json:"description"`
	Quantity       int64  `json:"quantity"`
	UnitPriceCents int64  `json:"unit_price_cents"`
	TotalCents     int64  `json:"total_cents"`
}

// NewInvoiceResponse converts a domain invoice to an API response
func NewInvoiceResponse(inv *invoice.Invoice) *InvoiceResponse {
	resp := &InvoiceResponse{
		ID:              inv.ID,
		ClientID:        inv.ClientID,
		SubscriptionID:  inv.SubscriptionID,
		InvoiceNumber:   inv.InvoiceNumber,
		InvoiceStatus:   inv.InvoiceStatus,
		BillingInterval: inv.BillingInterval,
		BillingPeriod:   inv.BillingPeriod,
		SubtotalCents:   inv.SubtotalCents,
		TotalCents:      inv.TotalCents,
		AmountPaidCents: inv.AmountPaidCents,
		AmountDueCents:  inv.AmountDueCents,
		DueDate:         inv.DueDate,
		FinalizedAt:     inv.FinalizedAt,
		PaidAt:          inv.PaidAt,
		VoidedAt:        inv.VoidedAt,
		CreatedAt:       inv.CreatedAt,
		UpdatedAt:       inv.UpdatedAt,
	}
	for _, item := range inv.LineItems {
		resp.LineItems = append(resp.LineItems, &LineItemResponse{
			ID:             item.ID,
			Description:    item.Description,
			Quantity:       item.Quantity,
			UnitPriceCents: item.UnitPriceCents,
			TotalCents:     item.TotalCents,
		})
	}
	return resp
}

// ListInvoicesResponse represents a paginated list of invoices
type ListInvoicesResponse = types.ListResponse[*InvoiceResponse]

// InvoiceBulkActionRequest applies one action to an explicit list of
// invoice ids
type InvoiceBulkActionRequest struct {
	Action     types.InvoiceBulkAction `json:"action" binding:"required"`
	InvoiceIDs []string                `json:"invoice_ids" binding:"required"`

	// TargetStatus is required for the update_status action
	TargetStatus *types.InvoiceStatus `json:"target_status,omitempty"`
}

func (r *InvoiceBulkActionRequest) Validate() error {
	if err := r.Action.Validate(); err != nil {
		return err
	}
	if len(r.InvoiceIDs) == 0 {
		return ierr.NewError("invalid bulk action request").
			WithHint("invoice_ids must not be empty").
			Mark(ierr.ErrValidation)
	}
	if r.Action == types.InvoiceBulkActionUpdateStatus {
		if r.TargetStatus == nil {
			return ierr.NewError("invalid bulk action request").
				WithHint("target_status is required for update_status").
				Mark(ierr.ErrValidation)
		}
		if err := r.TargetStatus.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// InvoiceBulkActionResponse reports how many invoices the action changed.
// Ids failing the action's precondition are excluded from the count, not
// errored.
type InvoiceBulkActionResponse struct {
	Affected int `json:"affected"`
}

// RecordPaymentRequest posts a payment against an OPEN or OVERDUE invoice
type RecordPaymentRequest struct {
	AmountCents int64 `json:"amount_cents" binding:"required"`
}

func (r *RecordPaymentRequest) Validate() error {
	if r.AmountCents <= 0 {
		return ierr.NewError("invalid payment").
			WithHint("amount_cents must be positive").
			Mark(ierr.ErrValidation)
	}
	return nil
}

// GenerationError is one per-client failure collected during an invoice
// generation run
type GenerationError struct {
	ClientID string `json:"client_id"`
	Message  string `json:"message"`
}

// GenerateInvoicesResponse summarizes one invoice generation run
type GenerateInvoicesResponse struct {
	InvoicesCreated int               `json:"invoices_created"`
	Skipped         int               `json:"skipped"`
	Errors          []GenerationError `json:"errors"`
}
