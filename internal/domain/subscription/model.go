package subscription

import (
	ierr "github.com/scoopworks/scoopworks/internal/errors"
	"github.com/scoopworks/scoopworks/internal/types"
)

// Subscription is a recurring service agreement for one client at one
// location.
type Subscription struct {
	// ID is the unique identifier for the subscription
	ID string `db:"id" json:"id"`

	// ClientID is the client this subscription bills to
	ClientID string `db:"client_id" json:"client_id"`

	// LocationID is the serviced property
	LocationID string `db:"location_id" json:"location_id"`

	// Frequency is the visit cadence
	Frequency types.Frequency `db:"frequency" json:"frequency"`

	// PricePerVisitCents is the rate snapshot taken at signup or last price
	// change. Billing always uses this value; it is never re-resolved
	// through the pricing rules, so configured rule changes cannot silently
	// move a client's committed rate.
	PricePerVisitCents int64 `db:"price_per_visit_cents" json:"price_per_visit_cents"`

	// SubscriptionStatus gates billing: only ACTIVE subscriptions generate
	// invoices
	SubscriptionStatus types.SubscriptionStatus `db:"subscription_status" json:"subscription_status"`

	// BillingInterval is the invoicing cadence
	BillingInterval types.BillingInterval `db:"billing_interval" json:"billing_interval"`

	types.BaseModel
}

// IsActive reports whether the subscription participates in invoice
// generation
func (s *Subscription) IsActive() bool {
	return s.SubscriptionStatus == types.SubscriptionStatusActive
}

func (s *Subscription) Validate() error {
	if s.ClientID == "" {
		return ierr.NewError("invalid subscription").
			WithHint("client_id is required").
			Mark(ierr.ErrValidation)
	}
	if err := s.Frequency.Validate(); err != nil {
		return err
	}
	if err := s.SubscriptionStatus.Validate(); err != nil {
		return err
	}
	if err := s.BillingInterval.Validate(); err != nil {
		return err
	}
	if s.PricePerVisitCents < 0 {
		return ierr.NewError("invalid subscription").
			WithHint("price_per_visit_cents must be non negative").
			Mark(ierr.ErrValidation)
	}
	return nil
}
