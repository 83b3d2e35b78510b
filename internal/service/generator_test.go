package service

import (
	"context"
	"testing"
	"time"

	"github.com/samber/lo"
	"github.com/scoopworks/scoopworks/internal/domain/client"
	"github.com/scoopworks/scoopworks/internal/domain/crosssell"
	"github.com/scoopworks/scoopworks/internal/domain/invoice"
	"github.com/scoopworks/scoopworks/internal/domain/subscription"
	ierr "github.com/scoopworks/scoopworks/internal/errors"
	"github.com/scoopworks/scoopworks/internal/testutil"
	"github.com/scoopworks/scoopworks/internal/types"
	"github.com/stretchr/testify/suite"
)

type InvoiceGeneratorSuite struct {
	testutil.BaseServiceTestSuite
	service     InvoiceGeneratorService
	invoiceRepo *testutil.InMemoryInvoiceStore
	activityLog *testutil.InMemoryActivityLogStore
}

func TestInvoiceGeneratorService(t *testing.T) {
	suite.Run(t, new(InvoiceGeneratorSuite))
}

func (s *InvoiceGeneratorSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.invoiceRepo = s.GetStores().InvoiceRepo.(*testutil.InMemoryInvoiceStore)
	s.activityLog = s.GetStores().ActivityLogRepo.(*testutil.InMemoryActivityLogStore)

	s.service = NewInvoiceGeneratorService(
		s.GetConfig(),
		s.GetStores().SubscriptionRepo,
		s.GetStores().ClientRepo,
		s.GetStores().CrossSellRepo,
		s.GetStores().InvoiceRepo,
		s.GetStores().ActivityLogRepo,
		NewBillingService(s.GetLogger()),
		s.GetLogger(),
	)
}

func (s *InvoiceGeneratorSuite) createClient(id string, dogs int, status types.ClientStatus) *client.Client {
	c := &client.Client{
		ID:           id,
		Name:         "Test Client " + id,
		DogCount:     dogs,
		ClientStatus: status,
		BaseModel:    types.GetDefaultBaseModel(s.GetContext()),
	}
	s.NoError(s.GetStores().ClientRepo.Create(s.GetContext(), c))
	return c
}

func (s *InvoiceGeneratorSuite) createSubscription(id, clientID string, frequency types.Frequency, perVisitCents int64, status types.SubscriptionStatus) *subscription.Subscription {
	sub := &subscription.Subscription{
		ID:                 id,
		ClientID:           clientID,
		Frequency:          frequency,
		PricePerVisitCents: perVisitCents,
		SubscriptionStatus: status,
		BillingInterval:    types.BillingIntervalMonthly,
		BaseModel:          types.GetDefaultBaseModel(s.GetContext()),
	}
	s.NoError(s.GetStores().SubscriptionRepo.Create(s.GetContext(), sub))
	return sub
}

func (s *InvoiceGeneratorSuite) listRecurringInvoices() []*invoice.Invoice {
	filter := types.NewNoLimitInvoiceFilter()
	filter.RecurringOnly = true
	invoices, err := s.invoiceRepo.List(s.GetContext(), filter)
	s.NoError(err)
	return invoices
}

func (s *InvoiceGeneratorSuite) TestGenerateDraftInvoices() {
	s.createClient("client_1", 2, types.ClientStatusActive)
	s.createSubscription("subs_1", "client_1", types.FrequencyWeekly, 2300, types.SubscriptionStatusActive)

	resp, err := s.service.GenerateDraftInvoices(s.GetContext())
	s.NoError(err)
	s.Equal(1, resp.InvoicesCreated)
	s.Zero(resp.Skipped)
	s.Empty(resp.Errors)

	invoices := s.listRecurringInvoices()
	s.Require().Len(invoices, 1)

	inv := invoices[0]
	s.Equal(types.InvoiceStatusDraft, inv.InvoiceStatus)
	s.Equal("INV-00001", inv.InvoiceNumber)
	s.Equal("client_1", inv.ClientID)
	s.Require().NotNil(inv.BillingPeriod)
	s.Equal(invoice.FormatBillingPeriod(time.Now().UTC()), *inv.BillingPeriod)
	s.Require().NotNil(inv.DueDate)
	s.Equal(s.GetConfig().Billing.DueDayOfMonth, inv.DueDate.Day())

	s.Require().Len(inv.LineItems, 1)
	s.Equal("Weekly - 2 Dogs ($23.00/visit)", inv.LineItems[0].Description)
	s.Equal(int64(9950), inv.LineItems[0].TotalCents)
	s.Equal(int64(9950), inv.TotalCents)
	s.Equal(int64(9950), inv.AmountDueCents)

	s.Equal(1, s.mustActivityCount())
}

func (s *InvoiceGeneratorSuite) mustActivityCount() int {
	count, err := s.activityLog.Count(s.GetContext())
	s.NoError(err)
	return count
}

func (s *InvoiceGeneratorSuite) TestGenerateIsIdempotentWithinMonth() {
	s.createClient("client_1", 2, types.ClientStatusActive)
	s.createSubscription("subs_1", "client_1", types.FrequencyWeekly, 2300, types.SubscriptionStatusActive)

	first, err := s.service.GenerateDraftInvoices(s.GetContext())
	s.NoError(err)
	s.Equal(1, first.InvoicesCreated)

	second, err := s.service.GenerateDraftInvoices(s.GetContext())
	s.NoError(err)
	s.Zero(second.InvoicesCreated)
	s.Equal(1, second.Skipped)

	s.Len(s.listRecurringInvoices(), 1)
}

func (s *InvoiceGeneratorSuite) TestGenerateContinuesNumberingFromExisting() {
	existing := &invoice.Invoice{
		ID:              "inv_manual",
		ClientID:        "client_other",
		InvoiceNumber:   "INV-00047",
		InvoiceStatus:   types.InvoiceStatusOpen,
		BillingInterval: types.BillingIntervalMonthly,
		BaseModel:       types.GetDefaultBaseModel(s.GetContext()),
	}
	s.NoError(s.invoiceRepo.CreateWithLineItems(s.GetContext(), existing))

	s.createClient("client_1", 2, types.ClientStatusActive)
	s.createSubscription("subs_1", "client_1", types.FrequencyWeekly, 2300, types.SubscriptionStatusActive)

	resp, err := s.service.GenerateDraftInvoices(s.GetContext())
	s.NoError(err)
	s.Equal(1, resp.InvoicesCreated)

	invoices := s.listRecurringInvoices()
	s.Require().Len(invoices, 1)
	s.Equal("INV-00048", invoices[0].InvoiceNumber)
}

func (s *InvoiceGeneratorSuite) TestGenerateCombinesSubscriptionsOnOneInvoice() {
	s.createClient("client_1", 2, types.ClientStatusActive)
	s.createSubscription("subs_1", "client_1", types.FrequencyWeekly, 2300, types.SubscriptionStatusActive)
	s.createSubscription("subs_2", "client_1", types.FrequencyMonthly, 5000, types.SubscriptionStatusActive)

	resp, err := s.service.GenerateDraftInvoices(s.GetContext())
	s.NoError(err)
	s.Equal(1, resp.InvoicesCreated)

	invoices := s.listRecurringInvoices()
	s.Require().Len(invoices, 1)
	s.Len(invoices[0].LineItems, 2)
	// 9950 weekly + 5000 monthly
	s.Equal(int64(14950), invoices[0].TotalCents)
}

func (s *InvoiceGeneratorSuite) TestGenerateIncludesActiveCrossSells() {
	s.createClient("client_1", 2, types.ClientStatusActive)
	s.createSubscription("subs_1", "client_1", types.FrequencyWeekly, 2300, types.SubscriptionStatusActive)

	cs := &crosssell.CrossSell{
		ID:                "cs_1",
		ClientID:          "client_1",
		Name:              "Yard Deodorizer",
		PricePerUnitCents: 1500,
		Quantity:          2,
		CrossSellStatus:   types.CrossSellStatusActive,
		BaseModel:         types.GetDefaultBaseModel(s.GetContext()),
	}
	s.NoError(s.GetStores().CrossSellRepo.Create(s.GetContext(), cs))

	canceled := &crosssell.CrossSell{
		ID:                "cs_2",
		ClientID:          "client_1",
		Name:              "Canceled Add-on",
		PricePerUnitCents: 9900,
		Quantity:          1,
		CrossSellStatus:   types.CrossSellStatusCanceled,
		BaseModel:         types.GetDefaultBaseModel(s.GetContext()),
	}
	s.NoError(s.GetStores().CrossSellRepo.Create(s.GetContext(), canceled))

	resp, err := s.service.GenerateDraftInvoices(s.GetContext())
	s.NoError(err)
	s.Equal(1, resp.InvoicesCreated)

	invoices := s.listRecurringInvoices()
	s.Require().Len(invoices, 1)
	s.Require().Len(invoices[0].LineItems, 2)
	s.Equal("Yard Deodorizer", invoices[0].LineItems[1].Description)
	s.Equal(int64(3000), invoices[0].LineItems[1].TotalCents)
	// 9950 subscription + 3000 add-on
	s.Equal(int64(12950), invoices[0].TotalCents)
}

func (s *InvoiceGeneratorSuite) TestGenerateSkipsInactiveClients() {
	s.createClient("client_1", 2, types.ClientStatusInactive)
	s.createSubscription("subs_1", "client_1", types.FrequencyWeekly, 2300, types.SubscriptionStatusActive)

	resp, err := s.service.GenerateDraftInvoices(s.GetContext())
	s.NoError(err)
	s.Zero(resp.InvoicesCreated)
	s.Empty(resp.Errors)
	s.Empty(s.listRecurringInvoices())
}

func (s *InvoiceGeneratorSuite) TestGenerateSkipsNonActiveSubscriptions() {
	s.createClient("client_1", 2, types.ClientStatusActive)
	s.createSubscription("subs_1", "client_1", types.FrequencyWeekly, 2300, types.SubscriptionStatusPaused)
	s.createSubscription("subs_2", "client_1", types.FrequencyWeekly, 2300, types.SubscriptionStatusCanceled)

	resp, err := s.service.GenerateDraftInvoices(s.GetContext())
	s.NoError(err)
	s.Zero(resp.InvoicesCreated)
	s.Empty(s.listRecurringInvoices())
}

func (s *InvoiceGeneratorSuite) TestGenerateZeroPriceSubscriptionStillBills() {
	s.createClient("client_1", 1, types.ClientStatusActive)
	s.createSubscription("subs_1", "client_1", types.FrequencyWeekly, 0, types.SubscriptionStatusActive)

	resp, err := s.service.GenerateDraftInvoices(s.GetContext())
	s.NoError(err)
	s.Equal(1, resp.InvoicesCreated)

	invoices := s.listRecurringInvoices()
	s.Require().Len(invoices, 1)
	s.Zero(invoices[0].TotalCents)
	s.Equal("Weekly - 1 Dog ($0.00/visit)", invoices[0].LineItems[0].Description)
}

// failingCrossSellStore simulates a cross-sell lookup outage for one
// client while behaving normally for everyone else.
type failingCrossSellStore struct {
	crosssell.Repository
	failClientID string
}

func (s *failingCrossSellStore) ListActiveByClient(ctx context.Context, clientID string) ([]*crosssell.CrossSell, error) {
	if clientID == s.failClientID {
		return nil, ierr.NewError("cross sell lookup failed").
			WithHint("Failed to list cross sells").
			Mark(ierr.ErrDatabase)
	}
	return s.Repository.ListActiveByClient(ctx, clientID)
}

func (s *InvoiceGeneratorSuite) TestGenerateCollectsCrossSellFailuresAndContinues() {
	s.createClient("client_1", 2, types.ClientStatusActive)
	s.createSubscription("subs_1", "client_1", types.FrequencyWeekly, 2300, types.SubscriptionStatusActive)
	s.createClient("client_2", 1, types.ClientStatusActive)
	s.createSubscription("subs_2", "client_2", types.FrequencyMonthly, 5000, types.SubscriptionStatusActive)

	cs := &crosssell.CrossSell{
		ID:                "cs_1",
		ClientID:          "client_1",
		Name:              "Yard Deodorizer",
		PricePerUnitCents: 1500,
		Quantity:          1,
		CrossSellStatus:   types.CrossSellStatusActive,
		BaseModel:         types.GetDefaultBaseModel(s.GetContext()),
	}
	s.NoError(s.GetStores().CrossSellRepo.Create(s.GetContext(), cs))

	failing := NewInvoiceGeneratorService(
		s.GetConfig(),
		s.GetStores().SubscriptionRepo,
		s.GetStores().ClientRepo,
		&failingCrossSellStore{Repository: s.GetStores().CrossSellRepo, failClientID: "client_1"},
		s.GetStores().InvoiceRepo,
		s.GetStores().ActivityLogRepo,
		NewBillingService(s.GetLogger()),
		s.GetLogger(),
	)

	resp, err := failing.GenerateDraftInvoices(s.GetContext())
	s.NoError(err)
	s.Equal(1, resp.InvoicesCreated)
	s.Require().Len(resp.Errors, 1)
	s.Equal("client_1", resp.Errors[0].ClientID)
	s.NotEmpty(resp.Errors[0].Message)

	// No partial invoice was written for the failed client, so the next
	// run still owes them one.
	invoices := s.listRecurringInvoices()
	s.Require().Len(invoices, 1)
	s.Equal("client_2", invoices[0].ClientID)

	// A healthy re-run repairs the failed client, cross sell included.
	resp, err = s.service.GenerateDraftInvoices(s.GetContext())
	s.NoError(err)
	s.Equal(1, resp.InvoicesCreated)
	s.Equal(1, resp.Skipped)
	s.Empty(resp.Errors)

	invoices = s.listRecurringInvoices()
	s.Require().Len(invoices, 2)
	repaired, found := lo.Find(invoices, func(inv *invoice.Invoice) bool {
		return inv.ClientID == "client_1"
	})
	s.Require().True(found)
	s.Require().Len(repaired.LineItems, 2)
	// 9950 subscription + 1500 add-on
	s.Equal(int64(11450), repaired.TotalCents)
}

func (s *InvoiceGeneratorSuite) TestGenerateCoversEveryOrganization() {
	s.createClient("client_a", 2, types.ClientStatusActive)
	s.createSubscription("subs_a", "client_a", types.FrequencyWeekly, 2300, types.SubscriptionStatusActive)

	otherOrg := types.SetOrganizationID(s.GetContext(), "org_other")
	c := &client.Client{
		ID:           "client_b",
		Name:         "Other Org Client",
		DogCount:     1,
		ClientStatus: types.ClientStatusActive,
		BaseModel:    types.GetDefaultBaseModel(otherOrg),
	}
	s.NoError(s.GetStores().ClientRepo.Create(otherOrg, c))
	sub := &subscription.Subscription{
		ID:                 "subs_b",
		ClientID:           "client_b",
		Frequency:          types.FrequencyMonthly,
		PricePerVisitCents: 5000,
		SubscriptionStatus: types.SubscriptionStatusActive,
		BillingInterval:    types.BillingIntervalMonthly,
		BaseModel:          types.GetDefaultBaseModel(otherOrg),
	}
	s.NoError(s.GetStores().SubscriptionRepo.Create(otherOrg, sub))

	resp, err := s.service.GenerateDraftInvoices(s.GetContext())
	s.NoError(err)
	s.Equal(2, resp.InvoicesCreated)

	// Each organization only sees its own invoice
	s.Len(s.listRecurringInvoices(), 1)
	otherInvoices, err := s.invoiceRepo.List(otherOrg, types.NewNoLimitInvoiceFilter())
	s.NoError(err)
	s.Len(otherInvoices, 1)
	s.Equal("INV-00001", otherInvoices[0].InvoiceNumber)
}
