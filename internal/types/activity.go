package types

// ActivityAction identifies a state change recorded in the append-only
// activity log
type ActivityAction string

const (
	ActivityActionInvoiceCreated       ActivityAction = "invoice.created"
	ActivityActionInvoiceFinalized     ActivityAction = "invoice.finalized"
	ActivityActionInvoiceDeleted       ActivityAction = "invoice.deleted"
	ActivityActionInvoiceVoided        ActivityAction = "invoice.voided"
	ActivityActionInvoiceEmailed       ActivityAction = "invoice.emailed"
	ActivityActionInvoiceStatusUpdated ActivityAction = "invoice.status_updated"
	ActivityActionInvoicePaymentPosted ActivityAction = "invoice.payment_posted"
)

func (a ActivityAction) String() string {
	return string(a)
}
