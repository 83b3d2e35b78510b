package service

import (
	"testing"
	"time"

	"github.com/samber/lo"
	"github.com/scoopworks/scoopworks/internal/api/dto"
	"github.com/scoopworks/scoopworks/internal/domain/invoice"
	ierr "github.com/scoopworks/scoopworks/internal/errors"
	"github.com/scoopworks/scoopworks/internal/testutil"
	"github.com/scoopworks/scoopworks/internal/types"
	"github.com/stretchr/testify/suite"
)

type InvoiceServiceSuite struct {
	testutil.BaseServiceTestSuite
	service     InvoiceService
	invoiceRepo *testutil.InMemoryInvoiceStore
	activityLog *testutil.InMemoryActivityLogStore
	testData    struct {
		draft   *invoice.Invoice
		open    *invoice.Invoice
		overdue *invoice.Invoice
		paid    *invoice.Invoice
	}
}

func TestInvoiceService(t *testing.T) {
	suite.Run(t, new(InvoiceServiceSuite))
}

func (s *InvoiceServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.setupService()
	s.setupTestData()
}

func (s *InvoiceServiceSuite) setupService() {
	s.invoiceRepo = s.GetStores().InvoiceRepo.(*testutil.InMemoryInvoiceStore)
	s.activityLog = s.GetStores().ActivityLogRepo.(*testutil.InMemoryActivityLogStore)
	s.service = NewInvoiceService(
		s.GetStores().InvoiceRepo,
		s.GetStores().ActivityLogRepo,
		s.GetLogger(),
	)
}

func (s *InvoiceServiceSuite) newInvoice(id, number string, status types.InvoiceStatus, totalCents int64) *invoice.Invoice {
	item := invoice.NewLineItem("Weekly - 2 Dogs ($23.00/visit)", 1, totalCents)
	item.BaseModel = types.GetDefaultBaseModel(s.GetContext())

	inv := &invoice.Invoice{
		ID:              id,
		ClientID:        "client_1",
		InvoiceNumber:   number,
		InvoiceStatus:   status,
		BillingInterval: types.BillingIntervalMonthly,
		LineItems:       []*invoice.LineItem{item},
		BaseModel:       types.GetDefaultBaseModel(s.GetContext()),
	}
	inv.RecomputeTotals()
	return inv
}

func (s *InvoiceServiceSuite) setupTestData() {
	ctx := s.GetContext()

	s.testData.draft = s.newInvoice("inv_draft", "INV-00001", types.InvoiceStatusDraft, 9950)
	s.testData.open = s.newInvoice("inv_open", "INV-00002", types.InvoiceStatusOpen, 9950)

	pastDue := time.Now().UTC().AddDate(0, 0, -5)
	s.testData.overdue = s.newInvoice("inv_overdue", "INV-00003", types.InvoiceStatusOverdue, 9950)
	s.testData.overdue.DueDate = &pastDue

	s.testData.paid = s.newInvoice("inv_paid", "INV-00004", types.InvoiceStatusPaid, 9950)
	s.testData.paid.AmountPaidCents = 9950
	s.testData.paid.RecomputeTotals()

	for _, inv := range []*invoice.Invoice{
		s.testData.draft,
		s.testData.open,
		s.testData.overdue,
		s.testData.paid,
	} {
		s.NoError(s.invoiceRepo.CreateWithLineItems(ctx, inv))
	}
}

func (s *InvoiceServiceSuite) activityCount() int {
	count, err := s.activityLog.Count(s.GetContext())
	s.NoError(err)
	return count
}

func (s *InvoiceServiceSuite) TestGetInvoice() {
	resp, err := s.service.GetInvoice(s.GetContext(), "inv_draft")
	s.NoError(err)
	s.Equal("INV-00001", resp.InvoiceNumber)
	s.Equal(int64(9950), resp.TotalCents)
	s.Len(resp.LineItems, 1)
}

func (s *InvoiceServiceSuite) TestGetInvoiceNotFound() {
	_, err := s.service.GetInvoice(s.GetContext(), "inv_missing")
	s.Error(err)
	s.True(ierr.IsNotFound(err))
}

func (s *InvoiceServiceSuite) TestListInvoicesByStatus() {
	resp, err := s.service.ListInvoices(s.GetContext(), &types.InvoiceFilter{
		QueryFilter:   types.NewDefaultQueryFilter(),
		InvoiceStatus: []types.InvoiceStatus{types.InvoiceStatusDraft},
	})
	s.NoError(err)
	s.Equal(1, resp.Pagination.Total)
	s.Len(resp.Items, 1)
	s.Equal("inv_draft", resp.Items[0].ID)
}

func (s *InvoiceServiceSuite) TestFinalizeInvoice() {
	s.NoError(s.service.FinalizeInvoice(s.GetContext(), "inv_draft"))

	inv, err := s.invoiceRepo.Get(s.GetContext(), "inv_draft")
	s.NoError(err)
	s.Equal(types.InvoiceStatusOpen, inv.InvoiceStatus)
	s.NotNil(inv.FinalizedAt)
	s.Equal(1, s.activityCount())
}

func (s *InvoiceServiceSuite) TestFinalizeNonDraftRejected() {
	err := s.service.FinalizeInvoice(s.GetContext(), "inv_open")
	s.Error(err)
	s.True(ierr.IsInvalidOperation(err))
	s.Zero(s.activityCount())
}

func (s *InvoiceServiceSuite) TestVoidInvoice() {
	s.NoError(s.service.VoidInvoice(s.GetContext(), "inv_open"))

	inv, err := s.invoiceRepo.Get(s.GetContext(), "inv_open")
	s.NoError(err)
	s.Equal(types.InvoiceStatusVoid, inv.InvoiceStatus)
	s.NotNil(inv.VoidedAt)
}

func (s *InvoiceServiceSuite) TestVoidOverdueInvoice() {
	s.NoError(s.service.VoidInvoice(s.GetContext(), "inv_overdue"))

	inv, err := s.invoiceRepo.Get(s.GetContext(), "inv_overdue")
	s.NoError(err)
	s.Equal(types.InvoiceStatusVoid, inv.InvoiceStatus)
}

func (s *InvoiceServiceSuite) TestVoidVoidedInvoiceRejected() {
	s.NoError(s.service.VoidInvoice(s.GetContext(), "inv_open"))

	err := s.service.VoidInvoice(s.GetContext(), "inv_open")
	s.Error(err)
	s.True(ierr.IsInvalidOperation(err))
}

func (s *InvoiceServiceSuite) TestVoidPaidInvoiceRejected() {
	err := s.service.VoidInvoice(s.GetContext(), "inv_paid")
	s.Error(err)
	s.True(ierr.IsInvalidOperation(err))

	inv, getErr := s.invoiceRepo.Get(s.GetContext(), "inv_paid")
	s.NoError(getErr)
	s.Equal(types.InvoiceStatusPaid, inv.InvoiceStatus)
}

func (s *InvoiceServiceSuite) TestVoidDraftInvoiceRejected() {
	// Drafts are deleted, never voided
	err := s.service.VoidInvoice(s.GetContext(), "inv_draft")
	s.Error(err)
	s.True(ierr.IsInvalidOperation(err))
}

func (s *InvoiceServiceSuite) TestDeleteDraftInvoice() {
	s.NoError(s.service.DeleteDraftInvoice(s.GetContext(), "inv_draft"))

	_, err := s.invoiceRepo.Get(s.GetContext(), "inv_draft")
	s.Error(err)
	s.True(ierr.IsNotFound(err))
}

func (s *InvoiceServiceSuite) TestDeleteNonDraftRejected() {
	err := s.service.DeleteDraftInvoice(s.GetContext(), "inv_open")
	s.Error(err)
	s.True(ierr.IsInvalidOperation(err))

	_, getErr := s.invoiceRepo.Get(s.GetContext(), "inv_open")
	s.NoError(getErr)
}

func (s *InvoiceServiceSuite) TestRecordPartialPayment() {
	resp, err := s.service.RecordPayment(s.GetContext(), "inv_open", &dto.RecordPaymentRequest{
		AmountCents: 5000,
	})
	s.NoError(err)
	s.Equal(types.InvoiceStatusOpen, resp.InvoiceStatus)
	s.Equal(int64(5000), resp.AmountPaidCents)
	s.Equal(int64(4950), resp.AmountDueCents)
	s.Nil(resp.PaidAt)
}

func (s *InvoiceServiceSuite) TestRecordPaymentToFullCoverage() {
	_, err := s.service.RecordPayment(s.GetContext(), "inv_open", &dto.RecordPaymentRequest{
		AmountCents: 5000,
	})
	s.NoError(err)

	resp, err := s.service.RecordPayment(s.GetContext(), "inv_open", &dto.RecordPaymentRequest{
		AmountCents: 4950,
	})
	s.NoError(err)
	s.Equal(types.InvoiceStatusPaid, resp.InvoiceStatus)
	s.Zero(resp.AmountDueCents)
	s.NotNil(resp.PaidAt)
}

func (s *InvoiceServiceSuite) TestRecordPaymentOnOverdueInvoice() {
	resp, err := s.service.RecordPayment(s.GetContext(), "inv_overdue", &dto.RecordPaymentRequest{
		AmountCents: 9950,
	})
	s.NoError(err)
	s.Equal(types.InvoiceStatusPaid, resp.InvoiceStatus)
}

func (s *InvoiceServiceSuite) TestRecordPaymentOverpaymentRejected() {
	_, err := s.service.RecordPayment(s.GetContext(), "inv_open", &dto.RecordPaymentRequest{
		AmountCents: 10000,
	})
	s.Error(err)
	s.True(ierr.IsValidation(err))

	inv, getErr := s.invoiceRepo.Get(s.GetContext(), "inv_open")
	s.NoError(getErr)
	s.Zero(inv.AmountPaidCents)
}

func (s *InvoiceServiceSuite) TestRecordPaymentOnDraftRejected() {
	_, err := s.service.RecordPayment(s.GetContext(), "inv_draft", &dto.RecordPaymentRequest{
		AmountCents: 1000,
	})
	s.Error(err)
	s.True(ierr.IsInvalidOperation(err))
}

func (s *InvoiceServiceSuite) TestBulkFinalizeAffectsOnlyDrafts() {
	resp, err := s.service.BulkAction(s.GetContext(), &dto.InvoiceBulkActionRequest{
		Action:     types.InvoiceBulkActionFinalize,
		InvoiceIDs: []string{"inv_draft", "inv_open", "inv_paid"},
	})
	s.NoError(err)
	s.Equal(1, resp.Affected)

	inv, getErr := s.invoiceRepo.Get(s.GetContext(), "inv_draft")
	s.NoError(getErr)
	s.Equal(types.InvoiceStatusOpen, inv.InvoiceStatus)
	s.Equal(1, s.activityCount())
}

func (s *InvoiceServiceSuite) TestBulkDeleteAffectsOnlyDrafts() {
	resp, err := s.service.BulkAction(s.GetContext(), &dto.InvoiceBulkActionRequest{
		Action:     types.InvoiceBulkActionDelete,
		InvoiceIDs: []string{"inv_draft", "inv_open"},
	})
	s.NoError(err)
	s.Equal(1, resp.Affected)

	_, err = s.invoiceRepo.Get(s.GetContext(), "inv_draft")
	s.True(ierr.IsNotFound(err))
	_, err = s.invoiceRepo.Get(s.GetContext(), "inv_open")
	s.NoError(err)
}

func (s *InvoiceServiceSuite) TestBulkEmailSkipsDraftsAndTerminal() {
	resp, err := s.service.BulkAction(s.GetContext(), &dto.InvoiceBulkActionRequest{
		Action:     types.InvoiceBulkActionEmail,
		InvoiceIDs: []string{"inv_draft", "inv_open", "inv_overdue", "inv_paid"},
	})
	s.NoError(err)
	s.Equal(2, resp.Affected)
}

func (s *InvoiceServiceSuite) TestBulkUpdateStatusToOverdueRequiresPastDue() {
	// inv_open has no due date, so it cannot be marked overdue
	resp, err := s.service.BulkAction(s.GetContext(), &dto.InvoiceBulkActionRequest{
		Action:       types.InvoiceBulkActionUpdateStatus,
		InvoiceIDs:   []string{"inv_open"},
		TargetStatus: lo.ToPtr(types.InvoiceStatusOverdue),
	})
	s.NoError(err)
	s.Zero(resp.Affected)

	pastDue := time.Now().UTC().AddDate(0, 0, -1)
	inv, getErr := s.invoiceRepo.Get(s.GetContext(), "inv_open")
	s.NoError(getErr)
	inv.DueDate = &pastDue
	s.NoError(s.invoiceRepo.Update(s.GetContext(), inv))

	resp, err = s.service.BulkAction(s.GetContext(), &dto.InvoiceBulkActionRequest{
		Action:       types.InvoiceBulkActionUpdateStatus,
		InvoiceIDs:   []string{"inv_open"},
		TargetStatus: lo.ToPtr(types.InvoiceStatusOverdue),
	})
	s.NoError(err)
	s.Equal(1, resp.Affected)
}

func (s *InvoiceServiceSuite) TestBulkUpdateStatusToPaidSettlesAmounts() {
	resp, err := s.service.BulkAction(s.GetContext(), &dto.InvoiceBulkActionRequest{
		Action:       types.InvoiceBulkActionUpdateStatus,
		InvoiceIDs:   []string{"inv_open", "inv_overdue"},
		TargetStatus: lo.ToPtr(types.InvoiceStatusPaid),
	})
	s.NoError(err)
	s.Equal(2, resp.Affected)

	for _, id := range []string{"inv_open", "inv_overdue"} {
		inv, getErr := s.invoiceRepo.Get(s.GetContext(), id)
		s.NoError(getErr)
		s.Equal(types.InvoiceStatusPaid, inv.InvoiceStatus)
		s.Equal(inv.TotalCents, inv.AmountPaidCents)
		s.Zero(inv.AmountDueCents)
		s.NotNil(inv.PaidAt)
	}
}

func (s *InvoiceServiceSuite) TestBulkUpdateStatusRequiresTarget() {
	_, err := s.service.BulkAction(s.GetContext(), &dto.InvoiceBulkActionRequest{
		Action:     types.InvoiceBulkActionUpdateStatus,
		InvoiceIDs: []string{"inv_open"},
	})
	s.Error(err)
	s.True(ierr.IsValidation(err))
}
