package invoice

import (
	ierr "github.com/scoopworks/scoopworks/internal/errors"
	"github.com/scoopworks/scoopworks/internal/types"
)

// LineItem is a single charge on an invoice. Line items are created
// atomically with their parent and deleted only when a DRAFT invoice is
// deleted.
type LineItem struct {
	ID        string `db:"id" json:"id"`
	InvoiceID string `db:"invoice_id" json:"invoice_id"`

	// Description is the human-readable charge label, e.g.
	// "Weekly - 2 Dogs ($23.00/visit)"
	Description string `db:"description" json:"description"`

	Quantity       int64 `db:"quantity" json:"quantity"`
	UnitPriceCents int64 `db:"unit_price_cents" json:"unit_price_cents"`

	// TotalCents is always Quantity times UnitPriceCents
	TotalCents int64 `db:"total_cents" json:"total_cents"`

	types.BaseModel
}

// NewLineItem builds a line item with its total derived from quantity and
// unit price
func NewLineItem(description string, quantity, unitPriceCents int64) *LineItem {
	return &LineItem{
		ID:             types.GenerateUUIDWithPrefix(types.UUID_PREFIX_INVOICE_LINE_ITEM),
		Description:    description,
		Quantity:       quantity,
		UnitPriceCents: unitPriceCents,
		TotalCents:     quantity * unitPriceCents,
	}
}

func (li *LineItem) Validate() error {
	if li.Description == "" {
		return ierr.NewError("invalid line item").
			WithHint("description is required").
			Mark(ierr.ErrValidation)
	}
	if li.Quantity < 1 {
		return ierr.NewError("invalid line item").
			WithHint("quantity must be at least 1").
			Mark(ierr.ErrValidation)
	}
	if li.TotalCents != li.Quantity*li.UnitPriceCents {
		return ierr.NewError("invalid line item").
			WithHint("total_cents must equal quantity times unit price").
			Mark(ierr.ErrValidation)
	}
	return nil
}
