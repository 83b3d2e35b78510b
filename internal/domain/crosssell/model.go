package crosssell

import (
	"github.com/scoopworks/scoopworks/internal/types"
)

// CrossSell is a recurring add-on attached to a client, billed alongside
// the core subscription at quantity times unit price. It is attached to
// the client, not a subscription, so it survives frequency changes.
type CrossSell struct {
	ID string `db:"id" json:"id"`

	// ClientID is the client the add-on bills to
	ClientID string `db:"client_id" json:"client_id"`

	// Name appears verbatim as the invoice line item description
	Name string `db:"name" json:"name"`

	// PricePerUnitCents is the recurring unit price
	PricePerUnitCents int64 `db:"price_per_unit_cents" json:"price_per_unit_cents"`

	// Quantity is the number of units billed per period
	Quantity int64 `db:"quantity" json:"quantity"`

	// CrossSellStatus gates billing: only ACTIVE add-ons are invoiced
	CrossSellStatus types.CrossSellStatus `db:"cross_sell_status" json:"cross_sell_status"`

	types.BaseModel
}

// IsActive reports whether the add-on participates in invoice generation
func (c *CrossSell) IsActive() bool {
	return c.CrossSellStatus == types.CrossSellStatusActive
}

// TotalCents is the per-period charge for the add-on
func (c *CrossSell) TotalCents() int64 {
	return c.PricePerUnitCents * c.Quantity
}
