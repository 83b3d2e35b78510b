package testutil

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/samber/lo"
	"github.com/scoopworks/scoopworks/internal/domain/invoice"
	ierr "github.com/scoopworks/scoopworks/internal/errors"
	"github.com/scoopworks/scoopworks/internal/types"
)

const (
	testInvoiceNumberPrefix       = "INV"
	testInvoiceNumberSuffixLength = 5
)

// InMemoryInvoiceStore implements invoice.Repository, including the unique
// billing-period constraint the postgres schema enforces.
type InMemoryInvoiceStore struct {
	*InMemoryStore[*invoice.Invoice]
}

func NewInMemoryInvoiceStore() *InMemoryInvoiceStore {
	return &InMemoryInvoiceStore{
		InMemoryStore: NewInMemoryStore[*invoice.Invoice](),
	}
}

func (s *InMemoryInvoiceStore) CreateWithLineItems(ctx context.Context, inv *invoice.Invoice) error {
	if inv.IsRecurring() && inv.BillingPeriod != nil {
		exists, err := s.ExistsRecurringForPeriod(ctx, inv.ClientID, inv.BillingInterval, *inv.BillingPeriod)
		if err != nil {
			return err
		}
		if exists {
			return ierr.NewError("invoice already exists for billing period").
				WithHint("An invoice for this client and billing period already exists").
				Mark(ierr.ErrAlreadyExists)
		}
	}

	for _, item := range inv.LineItems {
		item.InvoiceID = inv.ID
	}

	if err := s.InMemoryStore.Create(ctx, inv.ID, inv); err != nil {
		return ierr.WithError(err).
			WithHint("An invoice with this identifier already exists").
			Mark(ierr.ErrAlreadyExists)
	}
	return nil
}

func (s *InMemoryInvoiceStore) Get(ctx context.Context, id string) (*invoice.Invoice, error) {
	inv, err := s.InMemoryStore.Get(ctx, id)
	if err != nil || !invoiceVisible(ctx, inv) {
		return nil, invoice.ErrNotFound(id)
	}
	return inv, nil
}

func (s *InMemoryInvoiceStore) GetByIDs(ctx context.Context, ids []string) ([]*invoice.Invoice, error) {
	filterFn := func(ctx context.Context, inv *invoice.Invoice, _ interface{}) bool {
		return invoiceVisible(ctx, inv) && lo.Contains(ids, inv.ID)
	}
	return s.InMemoryStore.List(ctx, nil, filterFn, nil)
}

func (s *InMemoryInvoiceStore) Update(ctx context.Context, inv *invoice.Invoice) error {
	if err := s.InMemoryStore.Update(ctx, inv.ID, inv); err != nil {
		return invoice.ErrNotFound(inv.ID)
	}
	return nil
}

func (s *InMemoryInvoiceStore) DeleteWithLineItems(ctx context.Context, id string) error {
	if err := s.InMemoryStore.Delete(ctx, id); err != nil {
		return invoice.ErrNotFound(id)
	}
	return nil
}

func (s *InMemoryInvoiceStore) List(ctx context.Context, filter *types.InvoiceFilter) ([]*invoice.Invoice, error) {
	if filter == nil {
		filter = types.NewInvoiceFilter()
	}

	filterFn := func(ctx context.Context, inv *invoice.Invoice, _ interface{}) bool {
		return invoiceFilterFn(ctx, inv, filter)
	}
	invoices, err := s.InMemoryStore.List(ctx, nil, filterFn, nil)
	if err != nil {
		return nil, err
	}

	sort.Slice(invoices, func(i, j int) bool {
		if !invoices[i].CreatedAt.Equal(invoices[j].CreatedAt) {
			return invoices[i].CreatedAt.After(invoices[j].CreatedAt)
		}
		return invoices[i].ID > invoices[j].ID
	})
	return paginate(invoices, filter), nil
}

func (s *InMemoryInvoiceStore) Count(ctx context.Context, filter *types.InvoiceFilter) (int, error) {
	if filter == nil {
		filter = types.NewInvoiceFilter()
	}
	return s.InMemoryStore.Count(ctx, filter, invoiceFilterFn)
}

func (s *InMemoryInvoiceStore) ExistsRecurringForPeriod(ctx context.Context, clientID string, interval types.BillingInterval, period string) (bool, error) {
	filterFn := func(ctx context.Context, inv *invoice.Invoice, _ interface{}) bool {
		return invoiceVisible(ctx, inv) &&
			inv.IsRecurring() &&
			inv.ClientID == clientID &&
			inv.BillingInterval == interval &&
			inv.BillingPeriod != nil && *inv.BillingPeriod == period
	}

	count, err := s.InMemoryStore.Count(ctx, nil, filterFn)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *InMemoryInvoiceStore) NextInvoiceNumber(ctx context.Context) (string, error) {
	filterFn := func(ctx context.Context, inv *invoice.Invoice, _ interface{}) bool {
		return inv.OrganizationID == types.GetOrganizationID(ctx) &&
			strings.HasPrefix(inv.InvoiceNumber, testInvoiceNumberPrefix+"-")
	}

	invoices, err := s.InMemoryStore.List(ctx, nil, filterFn, nil)
	if err != nil {
		return "", err
	}

	var maxSuffix int64
	for _, inv := range invoices {
		suffix := strings.TrimPrefix(inv.InvoiceNumber, testInvoiceNumberPrefix+"-")
		if n, err := strconv.ParseInt(suffix, 10, 64); err == nil && n > maxSuffix {
			maxSuffix = n
		}
	}

	return fmt.Sprintf("%s-%0*d", testInvoiceNumberPrefix, testInvoiceNumberSuffixLength, maxSuffix+1), nil
}

func invoiceFilterFn(ctx context.Context, inv *invoice.Invoice, f interface{}) bool {
	if !invoiceVisible(ctx, inv) {
		return false
	}

	filter, ok := f.(*types.InvoiceFilter)
	if !ok || filter == nil {
		return true
	}

	if len(filter.InvoiceIDs) > 0 && !lo.Contains(filter.InvoiceIDs, inv.ID) {
		return false
	}
	if filter.ClientID != "" && inv.ClientID != filter.ClientID {
		return false
	}
	if len(filter.InvoiceStatus) > 0 && !lo.Contains(filter.InvoiceStatus, inv.InvoiceStatus) {
		return false
	}
	if filter.BillingInterval != "" && inv.BillingInterval != filter.BillingInterval {
		return false
	}
	if filter.RecurringOnly && !inv.IsRecurring() {
		return false
	}
	if filter.CreatedAfter != nil && inv.CreatedAt.Before(*filter.CreatedAfter) {
		return false
	}
	if filter.CreatedBefore != nil && inv.CreatedAt.After(*filter.CreatedBefore) {
		return false
	}
	if filter.Search != "" && !strings.Contains(strings.ToLower(inv.InvoiceNumber), strings.ToLower(filter.Search)) {
		return false
	}
	return true
}

func invoiceVisible(ctx context.Context, inv *invoice.Invoice) bool {
	return inv.OrganizationID == types.GetOrganizationID(ctx) &&
		inv.Status != types.StatusDeleted
}
