package invoice

import (
	"time"

	ierr "github.com/scoopworks/scoopworks/internal/errors"
	"github.com/scoopworks/scoopworks/internal/types"
)

// Invoice represents the invoice domain model. An invoice with a
// SubscriptionID is a recurring invoice; without one it is a one-time
// invoice. Rows are immutable once status leaves DRAFT except for status
// and paid-amount fields.
type Invoice struct {
	ID string `db:"id" json:"id"`

	// ClientID is the billed client
	ClientID string `db:"client_id" json:"client_id"`

	// SubscriptionID distinguishes recurring invoices from one-time ones
	SubscriptionID *string `db:"subscription_id" json:"subscription_id,omitempty"`

	// InvoiceNumber is unique per organization and monotonically
	// increasing, e.g. INV-00048
	InvoiceNumber string `db:"invoice_number" json:"invoice_number"`

	// InvoiceStatus is the lifecycle state
	InvoiceStatus types.InvoiceStatus `db:"invoice_status" json:"invoice_status"`

	// BillingInterval is the cadence that produced this invoice
	BillingInterval types.BillingInterval `db:"billing_interval" json:"billing_interval"`

	// BillingPeriod identifies the calendar period a recurring invoice
	// covers, formatted YYYY-MM. Backed by a unique constraint on
	// (organization, client, billing_interval, billing_period) so a re-run
	// cannot double-invoice even under concurrent execution.
	BillingPeriod *string `db:"billing_period" json:"billing_period,omitempty"`

	SubtotalCents   int64 `db:"subtotal_cents" json:"subtotal_cents"`
	TotalCents      int64 `db:"total_cents" json:"total_cents"`
	AmountPaidCents int64 `db:"amount_paid_cents" json:"amount_paid_cents"`
	AmountDueCents  int64 `db:"amount_due_cents" json:"amount_due_cents"`

	DueDate     *time.Time `db:"due_date" json:"due_date,omitempty"`
	FinalizedAt *time.Time `db:"finalized_at" json:"finalized_at,omitempty"`
	PaidAt      *time.Time `db:"paid_at" json:"paid_at,omitempty"`
	VoidedAt    *time.Time `db:"voided_at" json:"voided_at,omitempty"`

	LineItems []*LineItem `db:"-" json:"line_items,omitempty"`

	types.BaseModel
}

// IsRecurring reports whether the invoice was generated from a
// subscription
func (i *Invoice) IsRecurring() bool {
	return i.SubscriptionID != nil
}

// IsPastDue reports whether the invoice's due date has passed
func (i *Invoice) IsPastDue(now time.Time) bool {
	return i.DueDate != nil && i.DueDate.Before(now)
}

// RecomputeTotals derives subtotal, total and amount due from the line
// items. Called before a DRAFT invoice is persisted.
func (i *Invoice) RecomputeTotals() {
	var subtotal int64
	for _, item := range i.LineItems {
		subtotal += item.TotalCents
	}
	i.SubtotalCents = subtotal
	i.TotalCents = subtotal
	i.AmountDueCents = subtotal - i.AmountPaidCents
}

func (i *Invoice) Validate() error {
	if i.ClientID == "" {
		return ierr.NewError("invalid invoice").
			WithHint("client_id is required").
			Mark(ierr.ErrValidation)
	}
	if err := i.InvoiceStatus.Validate(); err != nil {
		return err
	}
	if i.TotalCents < 0 || i.SubtotalCents < 0 {
		return ierr.NewError("invalid invoice").
			WithHint("amounts must be non negative").
			Mark(ierr.ErrValidation)
	}
	if i.AmountPaidCents < 0 {
		return ierr.NewError("invalid invoice").
			WithHint("amount_paid_cents must be non negative").
			Mark(ierr.ErrValidation)
	}
	if i.AmountPaidCents > i.TotalCents {
		return ierr.NewError("invalid invoice").
			WithHint("amount_paid_cents must not exceed total_cents").
			Mark(ierr.ErrValidation)
	}
	if i.AmountPaidCents+i.AmountDueCents != i.TotalCents {
		return ierr.NewError("invalid invoice").
			WithHint("amount_due_cents must equal total minus amount paid").
			Mark(ierr.ErrValidation)
	}
	for _, item := range i.LineItems {
		if err := item.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// FormatBillingPeriod renders the calendar month key for recurring
// invoices, e.g. "2026-08"
func FormatBillingPeriod(t time.Time) string {
	return t.UTC().Format("2006-01")
}
