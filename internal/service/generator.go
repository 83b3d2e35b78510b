package service

import (
	"context"
	"time"

	"github.com/scoopworks/scoopworks/internal/api/dto"
	"github.com/scoopworks/scoopworks/internal/config"
	"github.com/scoopworks/scoopworks/internal/domain/activitylog"
	"github.com/scoopworks/scoopworks/internal/domain/client"
	"github.com/scoopworks/scoopworks/internal/domain/crosssell"
	"github.com/scoopworks/scoopworks/internal/domain/invoice"
	"github.com/scoopworks/scoopworks/internal/domain/subscription"
	ierr "github.com/scoopworks/scoopworks/internal/errors"
	"github.com/scoopworks/scoopworks/internal/logger"
	"github.com/scoopworks/scoopworks/internal/types"
)

// InvoiceGeneratorService produces the monthly draft invoices. Runs are
// idempotent within a calendar month: a client already holding a recurring
// invoice for the period is skipped, and the unique billing-period index
// backstops the check under concurrent runs.
type InvoiceGeneratorService interface {
	GenerateDraftInvoices(ctx context.Context) (*dto.GenerateInvoicesResponse, error)
}

type invoiceGeneratorService struct {
	cfg              *config.Configuration
	subscriptionRepo subscription.Repository
	clientRepo       client.Repository
	crossSellRepo    crosssell.Repository
	invoiceRepo      invoice.Repository
	activityLogRepo  activitylog.Repository
	billingService   BillingService
	logger           *logger.Logger
}

func NewInvoiceGeneratorService(
	cfg *config.Configuration,
	subscriptionRepo subscription.Repository,
	clientRepo client.Repository,
	crossSellRepo crosssell.Repository,
	invoiceRepo invoice.Repository,
	activityLogRepo activitylog.Repository,
	billingService BillingService,
	logger *logger.Logger,
) InvoiceGeneratorService {
	return &invoiceGeneratorService{
		cfg:              cfg,
		subscriptionRepo: subscriptionRepo,
		clientRepo:       clientRepo,
		crossSellRepo:    crossSellRepo,
		invoiceRepo:      invoiceRepo,
		activityLogRepo:  activityLogRepo,
		billingService:   billingService,
		logger:           logger,
	}
}

// GenerateDraftInvoices runs one generation pass over every organization
// with active subscriptions. Per-client failures are collected and the run
// continues; only a failure to enumerate organizations fails the run.
func (s *invoiceGeneratorService) GenerateDraftInvoices(ctx context.Context) (*dto.GenerateInvoicesResponse, error) {
	orgs, err := s.subscriptionRepo.ListOrganizationsWithActive(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	summary := &dto.GenerateInvoicesResponse{Errors: []dto.GenerationError{}}

	for _, orgID := range orgs {
		s.generateForOrganization(types.SetOrganizationID(ctx, orgID), now, summary)
	}

	s.logger.Infow("invoice generation run complete",
		"organizations", len(orgs),
		"invoices_created", summary.InvoicesCreated,
		"skipped", summary.Skipped,
		"errors", len(summary.Errors),
	)
	return summary, nil
}

func (s *invoiceGeneratorService) generateForOrganization(ctx context.Context, now time.Time, summary *dto.GenerateInvoicesResponse) {
	orgID := types.GetOrganizationID(ctx)

	subs, err := s.subscriptionRepo.ListByStatus(ctx, types.SubscriptionStatusActive)
	if err != nil {
		s.logger.Errorw("failed to list active subscriptions, skipping organization",
			"organization_id", orgID,
			"error", err,
		)
		summary.Errors = append(summary.Errors, dto.GenerationError{
			Message: "failed to list active subscriptions for organization " + orgID,
		})
		return
	}

	byClient := make(map[string][]*subscription.Subscription)
	clientIDs := make([]string, 0)
	for _, sub := range subs {
		if _, seen := byClient[sub.ClientID]; !seen {
			clientIDs = append(clientIDs, sub.ClientID)
		}
		byClient[sub.ClientID] = append(byClient[sub.ClientID], sub)
	}

	clients, err := s.clientRepo.GetByIDs(ctx, clientIDs)
	if err != nil {
		s.logger.Errorw("failed to load clients, skipping organization",
			"organization_id", orgID,
			"error", err,
		)
		summary.Errors = append(summary.Errors, dto.GenerationError{
			Message: "failed to load clients for organization " + orgID,
		})
		return
	}

	clientByID := make(map[string]*client.Client, len(clients))
	for _, c := range clients {
		clientByID[c.ID] = c
	}

	for _, clientID := range clientIDs {
		c, ok := clientByID[clientID]
		if !ok || !c.IsActive() {
			continue
		}

		created, skipped, err := s.generateForClient(ctx, now, c, byClient[clientID])
		switch {
		case err != nil:
			s.logger.Errorw("failed to generate invoice for client",
				"organization_id", orgID,
				"client_id", clientID,
				"error", err,
			)
			summary.Errors = append(summary.Errors, dto.GenerationError{
				ClientID: clientID,
				Message:  err.Error(),
			})
		case created:
			summary.InvoicesCreated++
		case skipped:
			summary.Skipped++
		}
	}
}

func (s *invoiceGeneratorService) generateForClient(ctx context.Context, now time.Time, c *client.Client, subs []*subscription.Subscription) (created, skipped bool, err error) {
	period := invoice.FormatBillingPeriod(now)

	exists, err := s.invoiceRepo.ExistsRecurringForPeriod(ctx, c.ID, types.BillingIntervalMonthly, period)
	if err != nil {
		return false, false, err
	}
	if exists {
		return false, true, nil
	}

	items, err := s.buildLineItems(ctx, c, subs)
	if err != nil {
		return false, false, err
	}
	if len(items) == 0 {
		return false, true, nil
	}

	// Re-derived from the persisted maximum at every allocation so a run
	// interleaved with manual invoice creation still numbers correctly.
	number, err := s.invoiceRepo.NextInvoiceNumber(ctx)
	if err != nil {
		return false, false, err
	}

	dueDate := time.Date(now.Year(), now.Month(), s.cfg.Billing.DueDayOfMonth, 0, 0, 0, 0, time.UTC)

	inv := &invoice.Invoice{
		ID:              types.GenerateUUIDWithPrefix(types.UUID_PREFIX_INVOICE),
		ClientID:        c.ID,
		SubscriptionID:  &subs[0].ID,
		InvoiceNumber:   number,
		InvoiceStatus:   types.InvoiceStatusDraft,
		BillingInterval: types.BillingIntervalMonthly,
		BillingPeriod:   &period,
		DueDate:         &dueDate,
		LineItems:       items,
		BaseModel:       types.GetDefaultBaseModel(ctx),
	}
	inv.RecomputeTotals()

	if err := inv.Validate(); err != nil {
		return false, false, err
	}

	if err := s.invoiceRepo.CreateWithLineItems(ctx, inv); err != nil {
		// A concurrent run won the billing-period unique index. The client
		// is invoiced, which is what this run wanted.
		if ierr.IsAlreadyExists(err) {
			s.logger.Infow("invoice already created by a concurrent run",
				"client_id", c.ID,
				"billing_period", period,
			)
			return false, true, nil
		}
		return false, false, err
	}

	entry := activitylog.NewEntry(ctx, types.ActivityActionInvoiceCreated, "invoice", []string{inv.ID})
	if err := s.activityLogRepo.Append(ctx, entry); err != nil {
		s.logger.Errorw("failed to append activity log entry",
			"invoice_id", inv.ID,
			"error", err,
		)
	}

	s.logger.Infow("created draft invoice",
		"invoice_id", inv.ID,
		"invoice_number", inv.InvoiceNumber,
		"client_id", c.ID,
		"total_cents", inv.TotalCents,
	)
	return true, false, nil
}

// buildLineItems renders one line per active subscription at its
// normalized monthly amount, then one line per active cross sell. Prices
// come from the subscription's stored per-visit rate, never re-resolved
// through the pricing rules.
//
// A cross-sell lookup failure fails the whole client: persisting a partial
// invoice would pass the next run's existence check and leave the add-on
// charges for the period unbilled. With no invoice written, a re-run picks
// the client up again.
func (s *invoiceGeneratorService) buildLineItems(ctx context.Context, c *client.Client, subs []*subscription.Subscription) ([]*invoice.LineItem, error) {
	base := types.GetDefaultBaseModel(ctx)

	var items []*invoice.LineItem
	for _, sub := range subs {
		monthly := s.billingService.MonthlyCharge(sub.PricePerVisitCents, sub.Frequency)
		desc := s.billingService.LineItemDescription(sub.Frequency, c.DogCount, sub.PricePerVisitCents)

		item := invoice.NewLineItem(desc, 1, monthly)
		item.BaseModel = base
		items = append(items, item)
	}

	sells, err := s.crossSellRepo.ListActiveByClient(ctx, c.ID)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHintf("Failed to list cross sells for client %s", c.ID).
			Mark(ierr.ErrDatabase)
	}
	for _, cs := range sells {
		item := invoice.NewLineItem(cs.Name, cs.Quantity, cs.PricePerUnitCents)
		item.BaseModel = base
		items = append(items, item)
	}

	return items, nil
}
