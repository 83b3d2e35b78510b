package service

import (
	"context"
	"time"

	"github.com/scoopworks/scoopworks/internal/api/dto"
	"github.com/scoopworks/scoopworks/internal/domain/activitylog"
	"github.com/scoopworks/scoopworks/internal/domain/invoice"
	ierr "github.com/scoopworks/scoopworks/internal/errors"
	"github.com/scoopworks/scoopworks/internal/logger"
	"github.com/scoopworks/scoopworks/internal/types"
)

// InvoiceService drives the invoice lifecycle. Status and paid-amount
// fields are the only mutable fields once an invoice leaves DRAFT.
type InvoiceService interface {
	GetInvoice(ctx context.Context, id string) (*dto.InvoiceResponse, error)
	ListInvoices(ctx context.Context, filter *types.InvoiceFilter) (*dto.ListInvoicesResponse, error)

	// FinalizeInvoice moves a DRAFT invoice to OPEN
	FinalizeInvoice(ctx context.Context, id string) error

	// VoidInvoice cancels an OPEN or OVERDUE invoice before collection
	VoidInvoice(ctx context.Context, id string) error

	// DeleteDraftInvoice removes a DRAFT invoice and its line items
	DeleteDraftInvoice(ctx context.Context, id string) error

	// RecordPayment posts a payment and flips the invoice to PAID once
	// the total is covered
	RecordPayment(ctx context.Context, id string, req *dto.RecordPaymentRequest) (*dto.InvoiceResponse, error)

	// BulkAction applies one action to a list of invoice ids. Ids failing
	// the action's precondition are excluded from the affected count.
	BulkAction(ctx context.Context, req *dto.InvoiceBulkActionRequest) (*dto.InvoiceBulkActionResponse, error)
}

type invoiceService struct {
	invoiceRepo     invoice.Repository
	activityLogRepo activitylog.Repository
	logger          *logger.Logger
}

func NewInvoiceService(
	invoiceRepo invoice.Repository,
	activityLogRepo activitylog.Repository,
	logger *logger.Logger,
) InvoiceService {
	return &invoiceService{
		invoiceRepo:     invoiceRepo,
		activityLogRepo: activityLogRepo,
		logger:          logger,
	}
}

func (s *invoiceService) GetInvoice(ctx context.Context, id string) (*dto.InvoiceResponse, error) {
	inv, err := s.invoiceRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.NewInvoiceResponse(inv), nil
}

func (s *invoiceService) ListInvoices(ctx context.Context, filter *types.InvoiceFilter) (*dto.ListInvoicesResponse, error) {
	if filter == nil {
		filter = types.NewInvoiceFilter()
	}
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	invoices, err := s.invoiceRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	total, err := s.invoiceRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]*dto.InvoiceResponse, 0, len(invoices))
	for _, inv := range invoices {
		items = append(items, dto.NewInvoiceResponse(inv))
	}

	resp := types.NewListResponse(items, total, filter.GetLimit(), filter.GetOffset())
	return &resp, nil
}

func (s *invoiceService) FinalizeInvoice(ctx context.Context, id string) error {
	inv, err := s.invoiceRepo.Get(ctx, id)
	if err != nil {
		return err
	}

	if !inv.InvoiceStatus.CanTransitionTo(types.InvoiceStatusOpen) {
		return invalidTransition(inv, types.InvoiceStatusOpen)
	}

	now := time.Now().UTC()
	inv.InvoiceStatus = types.InvoiceStatusOpen
	inv.FinalizedAt = &now

	if err := s.invoiceRepo.Update(ctx, inv); err != nil {
		return err
	}

	s.logActivity(ctx, types.ActivityActionInvoiceFinalized, []string{inv.ID})
	return nil
}

func (s *invoiceService) VoidInvoice(ctx context.Context, id string) error {
	inv, err := s.invoiceRepo.Get(ctx, id)
	if err != nil {
		return err
	}

	switch {
	case inv.InvoiceStatus == types.InvoiceStatusVoid:
		return invoice.ErrAlreadyVoided(inv.ID)
	case inv.InvoiceStatus == types.InvoiceStatusPaid:
		return invoice.ErrVoidPaid(inv.ID)
	case !inv.InvoiceStatus.CanTransitionTo(types.InvoiceStatusVoid):
		return invalidTransition(inv, types.InvoiceStatusVoid)
	}

	now := time.Now().UTC()
	inv.InvoiceStatus = types.InvoiceStatusVoid
	inv.VoidedAt = &now

	if err := s.invoiceRepo.Update(ctx, inv); err != nil {
		return err
	}

	s.logActivity(ctx, types.ActivityActionInvoiceVoided, []string{inv.ID})
	return nil
}

func (s *invoiceService) DeleteDraftInvoice(ctx context.Context, id string) error {
	inv, err := s.invoiceRepo.Get(ctx, id)
	if err != nil {
		return err
	}

	if inv.InvoiceStatus != types.InvoiceStatusDraft {
		return ierr.NewError("cannot delete a non-draft invoice").
			WithHint("Only draft invoices can be deleted").
			WithReportableDetails(map[string]any{
				"invoice_id":     inv.ID,
				"invoice_status": inv.InvoiceStatus,
			}).
			Mark(ierr.ErrInvalidOperation)
	}

	if err := s.invoiceRepo.DeleteWithLineItems(ctx, inv.ID); err != nil {
		return err
	}

	s.logActivity(ctx, types.ActivityActionInvoiceDeleted, []string{inv.ID})
	return nil
}

func (s *invoiceService) RecordPayment(ctx context.Context, id string, req *dto.RecordPaymentRequest) (*dto.InvoiceResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	inv, err := s.invoiceRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if !inv.InvoiceStatus.CanTransitionTo(types.InvoiceStatusPaid) {
		return nil, invalidTransition(inv, types.InvoiceStatusPaid)
	}

	paid := inv.AmountPaidCents + req.AmountCents
	if paid > inv.TotalCents {
		return nil, ierr.NewError("payment exceeds amount due").
			WithHintf("Payment of %s exceeds the %s due", types.FormatCents(req.AmountCents), types.FormatCents(inv.AmountDueCents)).
			WithReportableDetails(map[string]any{
				"invoice_id":       inv.ID,
				"amount_cents":     req.AmountCents,
				"amount_due_cents": inv.AmountDueCents,
			}).
			Mark(ierr.ErrValidation)
	}

	inv.AmountPaidCents = paid
	inv.AmountDueCents = inv.TotalCents - paid
	if inv.AmountDueCents == 0 {
		now := time.Now().UTC()
		inv.InvoiceStatus = types.InvoiceStatusPaid
		inv.PaidAt = &now
	}

	if err := s.invoiceRepo.Update(ctx, inv); err != nil {
		return nil, err
	}

	s.logActivity(ctx, types.ActivityActionInvoicePaymentPosted, []string{inv.ID})
	return dto.NewInvoiceResponse(inv), nil
}

func (s *invoiceService) BulkAction(ctx context.Context, req *dto.InvoiceBulkActionRequest) (*dto.InvoiceBulkActionResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	invoices, err := s.invoiceRepo.GetByIDs(ctx, req.InvoiceIDs)
	if err != nil {
		return nil, err
	}

	var affected []string
	switch req.Action {
	case types.InvoiceBulkActionFinalize:
		affected, err = s.bulkFinalize(ctx, invoices)
	case types.InvoiceBulkActionDelete:
		affected, err = s.bulkDelete(ctx, invoices)
	case types.InvoiceBulkActionEmail:
		affected = s.bulkEmail(ctx, invoices)
	case types.InvoiceBulkActionUpdateStatus:
		affected, err = s.bulkUpdateStatus(ctx, invoices, *req.TargetStatus)
	}
	if err != nil {
		return nil, err
	}

	if len(affected) > 0 {
		action := bulkActivityAction(req.Action)
		s.logActivity(ctx, action, affected)
	}

	return &dto.InvoiceBulkActionResponse{Affected: len(affected)}, nil
}

func (s *invoiceService) bulkFinalize(ctx context.Context, invoices []*invoice.Invoice) ([]string, error) {
	now := time.Now().UTC()
	var affected []string
	for _, inv := range invoices {
		if inv.InvoiceStatus != types.InvoiceStatusDraft {
			continue
		}
		inv.InvoiceStatus = types.InvoiceStatusOpen
		inv.FinalizedAt = &now
		if err := s.invoiceRepo.Update(ctx, inv); err != nil {
			return nil, err
		}
		affected = append(affected, inv.ID)
	}
	return affected, nil
}

func (s *invoiceService) bulkDelete(ctx context.Context, invoices []*invoice.Invoice) ([]string, error) {
	var affected []string
	for _, inv := range invoices {
		if inv.InvoiceStatus != types.InvoiceStatusDraft {
			continue
		}
		if err := s.invoiceRepo.DeleteWithLineItems(ctx, inv.ID); err != nil {
			return nil, err
		}
		affected = append(affected, inv.ID)
	}
	return affected, nil
}

// bulkEmail marks finalized invoices as sent. Actual delivery is handled
// by the office tooling; the engine only records the event.
func (s *invoiceService) bulkEmail(ctx context.Context, invoices []*invoice.Invoice) []string {
	var affected []string
	for _, inv := range invoices {
		if inv.InvoiceStatus == types.InvoiceStatusDraft || inv.InvoiceStatus.IsTerminal() {
			continue
		}
		affected = append(affected, inv.ID)
	}
	return affected
}

func (s *invoiceService) bulkUpdateStatus(ctx context.Context, invoices []*invoice.Invoice, target types.InvoiceStatus) ([]string, error) {
	now := time.Now().UTC()
	var affected []string
	for _, inv := range invoices {
		if !inv.InvoiceStatus.CanTransitionTo(target) {
			continue
		}
		if target == types.InvoiceStatusOverdue && !inv.IsPastDue(now) {
			continue
		}

		inv.InvoiceStatus = target
		switch target {
		case types.InvoiceStatusPaid:
			inv.AmountPaidCents = inv.TotalCents
			inv.AmountDueCents = 0
			inv.PaidAt = &now
		case types.InvoiceStatusVoid:
			inv.VoidedAt = &now
		}

		if err := s.invoiceRepo.Update(ctx, inv); err != nil {
			return nil, err
		}
		affected = append(affected, inv.ID)
	}
	return affected, nil
}

// logActivity appends an audit entry best-effort. A failed append never
// fails the state change it records.
func (s *invoiceService) logActivity(ctx context.Context, action types.ActivityAction, invoiceIDs []string) {
	entry := activitylog.NewEntry(ctx, action, "invoice", invoiceIDs)
	if err := s.activityLogRepo.Append(ctx, entry); err != nil {
		s.logger.Errorw("failed to append activity log entry",
			"action", action,
			"invoice_ids", invoiceIDs,
			"error", err,
		)
	}
}

func bulkActivityAction(action types.InvoiceBulkAction) types.ActivityAction {
	switch action {
	case types.InvoiceBulkActionFinalize:
		return types.ActivityActionInvoiceFinalized
	case types.InvoiceBulkActionDelete:
		return types.ActivityActionInvoiceDeleted
	case types.InvoiceBulkActionEmail:
		return types.ActivityActionInvoiceEmailed
	default:
		return types.ActivityActionInvoiceStatusUpdated
	}
}

func invalidTransition(inv *invoice.Invoice, target types.InvoiceStatus) error {
	return ierr.NewError("invalid invoice status transition").
		WithHintf("Invoice cannot move from %s to %s", inv.InvoiceStatus, target).
		WithReportableDetails(map[string]any{
			"invoice_id":     inv.ID,
			"invoice_status": inv.InvoiceStatus,
			"target_status":  target,
		}).
		Mark(ierr.ErrInvalidOperation)
}
