package types

import (
	"github.com/samber/lo"
	ierr "github.com/scoopworks/scoopworks/internal/errors"
)

// ClientStatus represents the standing of a client account. Only ACTIVE
// clients are billed.
type ClientStatus string

const (
	ClientStatusActive   ClientStatus = "ACTIVE"
	ClientStatusInactive ClientStatus = "INACTIVE"
)

func (s ClientStatus) String() string {
	return string(s)
}

func (s ClientStatus) Validate() error {
	allowed := []ClientStatus{
		ClientStatusActive,
		ClientStatusInactive,
	}
	if !lo.Contains(allowed, s) {
		return ierr.NewError("invalid client status").
			WithHint("Please provide a valid client status").
			WithReportableDetails(map[string]any{
				"allowed": allowed,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// CrossSellStatus represents the state of a recurring add-on attached to a
// client. Only ACTIVE cross sells are included in invoice generation.
type CrossSellStatus string

const (
	CrossSellStatusActive   CrossSellStatus = "ACTIVE"
	CrossSellStatusCanceled CrossSellStatus = "CANCELED"
)

func (s CrossSellStatus) String() string {
	return string(s)
}

func (s CrossSellStatus) Validate() error {
	allowed := []CrossSellStatus{
		CrossSellStatusActive,
		CrossSellStatusCanceled,
	}
	if !lo.Contains(allowed, s) {
		return ierr.NewError("invalid cross sell status").
			WithHint("Please provide a valid cross sell status").
			WithReportableDetails(map[string]any{
				"allowed": allowed,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}
