package invoice

import (
	ierr "github.com/scoopworks/scoopworks/internal/errors"
)

// ErrNotFound is returned when an invoice is not found
func ErrNotFound(id string) error {
	return ierr.NewError("invoice not found").
		WithHintf("Invoice %s was not found", id).
		WithReportableDetails(map[string]any{
			"invoice_id": id,
		}).
		Mark(ierr.ErrNotFound)
}

// ErrAlreadyVoided is returned when voiding an invoice that is already
// VOID
func ErrAlreadyVoided(id string) error {
	return ierr.NewError("invoice is already voided").
		WithHint("Invoice is already voided").
		WithReportableDetails(map[string]any{
			"invoice_id": id,
		}).
		Mark(ierr.ErrInvalidOperation)
}

// ErrVoidPaid is returned when voiding a PAID invoice
func ErrVoidPaid(id string) error {
	return ierr.NewError("cannot void a paid invoice").
		WithHint("Cannot void a paid invoice").
		WithReportableDetails(map[string]any{
			"invoice_id": id,
		}).
		Mark(ierr.ErrInvalidOperation)
}
