package types

import (
	"github.com/samber/lo"
	ierr "github.com/scoopworks/scoopworks/internal/errors"
)

// SubscriptionStatus represents the current state of a recurring service
// subscription. Subscriptions are never deleted, only transitioned.
type SubscriptionStatus string

const (
	// SubscriptionStatusActive participates in invoice generation
	SubscriptionStatusActive SubscriptionStatus = "ACTIVE"
	// SubscriptionStatusPaused is temporarily suspended by the client
	SubscriptionStatusPaused SubscriptionStatus = "PAUSED"
	// SubscriptionStatusPastDue has unpaid invoices but service continues
	SubscriptionStatusPastDue SubscriptionStatus = "PAST_DUE"
	// SubscriptionStatusPendingCancel is scheduled to cancel at period end
	SubscriptionStatusPendingCancel SubscriptionStatus = "PENDING_CANCEL"
	// SubscriptionStatusCanceled is terminal
	SubscriptionStatusCanceled SubscriptionStatus = "CANCELED"
)

func (s SubscriptionStatus) String() string {
	return string(s)
}

func (s SubscriptionStatus) Validate() error {
	allowed := []SubscriptionStatus{
		SubscriptionStatusActive,
		SubscriptionStatusPaused,
		SubscriptionStatusPastDue,
		SubscriptionStatusPendingCancel,
		SubscriptionStatusCanceled,
	}
	if !lo.Contains(allowed, s) {
		return ierr.NewError("invalid subscription status").
			WithHint("Please provide a valid subscription status").
			WithReportableDetails(map[string]any{
				"allowed": allowed,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// BillingInterval is the cadence at which invoices are generated for a
// subscription. Only MONTHLY generation is automated today.
type BillingInterval string

const (
	BillingIntervalMonthly BillingInterval = "MONTHLY"
)

func (b BillingInterval) String() string {
	return string(b)
}

func (b BillingInterval) Validate() error {
	if b != BillingIntervalMonthly {
		return ierr.NewError("invalid billing interval").
			WithHint("Only MONTHLY billing is supported").
			Mark(ierr.ErrValidation)
	}
	return nil
}
