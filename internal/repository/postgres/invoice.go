package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/scoopworks/scoopworks/internal/config"
	"github.com/scoopworks/scoopworks/internal/domain/invoice"
	ierr "github.com/scoopworks/scoopworks/internal/errors"
	"github.com/scoopworks/scoopworks/internal/logger"
	"github.com/scoopworks/scoopworks/internal/postgres"
	"github.com/scoopworks/scoopworks/internal/types"
)

type invoiceRepository struct {
	client postgres.IClient
	cfg    *config.Configuration
	logger *logger.Logger
}

func NewInvoiceRepository(client postgres.IClient, cfg *config.Configuration, logger *logger.Logger) invoice.Repository {
	return &invoiceRepository{client: client, cfg: cfg, logger: logger}
}

const invoiceColumns = `
	id, client_id, subscription_id, invoice_number, invoice_status,
	billing_interval, billing_period,
	subtotal_cents, total_cents, amount_paid_cents, amount_due_cents,
	due_date, finalized_at, paid_at, voided_at,
	organization_id, status, created_at, updated_at, created_by, updated_by
`

const lineItemColumns = `
	id, invoice_id, description, quantity, unit_price_cents, total_cents,
	organization_id, status, created_at, updated_at, created_by, updated_by
`

func (r *invoiceRepository) CreateWithLineItems(ctx context.Context, inv *invoice.Invoice) error {
	r.logger.Debugw("creating invoice",
		"invoice_id", inv.ID,
		"invoice_number", inv.InvoiceNumber,
		"client_id", inv.ClientID,
		"line_items", len(inv.LineItems),
	)

	return r.client.WithTx(ctx, func(ctx context.Context) error {
		q := r.client.Querier(ctx)

		query := `
		INSERT INTO invoices (` + invoiceColumns + `)
		VALUES (
			:id, :client_id, :subscription_id, :invoice_number, :invoice_status,
			:billing_interval, :billing_period,
			:subtotal_cents, :total_cents, :amount_paid_cents, :amount_due_cents,
			:due_date, :finalized_at, :paid_at, :voided_at,
			:organization_id, :status, :created_at, :updated_at, :created_by, :updated_by
		)`

		if _, err := sqlx.NamedExecContext(ctx, q, query, inv); err != nil {
			if isUniqueViolation(err) {
				return ierr.WithError(err).
					WithHint("An invoice for this client and billing period already exists").
					WithReportableDetails(map[string]any{
						"client_id":      inv.ClientID,
						"billing_period": inv.BillingPeriod,
					}).
					Mark(ierr.ErrAlreadyExists)
			}
			return ierr.WithError(err).
				WithHint("Failed to create invoice").
				Mark(ierr.ErrDatabase)
		}

		itemQuery := `
		INSERT INTO invoice_line_items (` + lineItemColumns + `)
		VALUES (
			:id, :invoice_id, :description, :quantity, :unit_price_cents, :total_cents,
			:organization_id, :status, :created_at, :updated_at, :created_by, :updated_by
		)`

		for _, item := range inv.LineItems {
			item.InvoiceID = inv.ID
			if _, err := sqlx.NamedExecContext(ctx, q, itemQuery, item); err != nil {
				return ierr.WithError(err).
					WithHint("Failed to create invoice line item").
					Mark(ierr.ErrDatabase)
			}
		}
		return nil
	})
}

func (r *invoiceRepository) Get(ctx context.Context, id string) (*invoice.Invoice, error) {
	query := `
	SELECT ` + invoiceColumns + `
	FROM invoices
	WHERE id = $1 AND organization_id = $2 AND status != $3`

	var inv invoice.Invoice
	err := r.client.Querier(ctx).GetContext(ctx, &inv, query,
		id, types.GetOrganizationID(ctx), types.StatusDeleted)
	if err != nil {
		if isNoRows(err) {
			return nil, invoice.ErrNotFound(id)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to retrieve invoice").
			Mark(ierr.ErrDatabase)
	}

	if err := r.loadLineItems(ctx, []*invoice.Invoice{&inv}); err != nil {
		return nil, err
	}
	return &inv, nil
}

func (r *invoiceRepository) GetByIDs(ctx context.Context, ids []string) ([]*invoice.Invoice, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query := `
	SELECT ` + invoiceColumns + `
	FROM invoices
	WHERE id IN (?) AND organization_id = ? AND status != ?`

	query, args, err := sqlx.In(query, ids, types.GetOrganizationID(ctx), types.StatusDeleted)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to build invoice lookup query").
			Mark(ierr.ErrDatabase)
	}

	q := r.client.Querier(ctx)
	query = q.Rebind(query)

	var invoices []*invoice.Invoice
	if err := q.SelectContext(ctx, &invoices, query, args...); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to retrieve invoices").
			Mark(ierr.ErrDatabase)
	}

	if err := r.loadLineItems(ctx, invoices); err != nil {
		return nil, err
	}
	return invoices, nil
}

func (r *invoiceRepository) Update(ctx context.Context, inv *invoice.Invoice) error {
	inv.UpdatedAt = time.Now().UTC()
	inv.UpdatedBy = types.GetUserID(ctx)

	query := `
	UPDATE invoices SET
		invoice_status = :invoice_status,
		amount_paid_cents = :amount_paid_cents,
		amount_due_cents = :amount_due_cents,
		due_date = :due_date,
		finalized_at = :finalized_at,
		paid_at = :paid_at,
		voided_at = :voided_at,
		status = :status,
		updated_at = :updated_at,
		updated_by = :updated_by
	WHERE id = :id AND organization_id = :organization_id`

	result, err := sqlx.NamedExecContext(ctx, r.client.Querier(ctx), query, inv)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to update invoice").
			Mark(ierr.ErrDatabase)
	}

	rows, err := result.RowsAffected()
	if err == nil && rows == 0 {
		return invoice.ErrNotFound(inv.ID)
	}
	return nil
}

func (r *invoiceRepository) DeleteWithLineItems(ctx context.Context, id string) error {
	return r.client.WithTx(ctx, func(ctx context.Context) error {
		q := r.client.Querier(ctx)
		orgID := types.GetOrganizationID(ctx)

		if _, err := q.ExecContext(ctx,
			`DELETE FROM invoice_line_items WHERE invoice_id = $1 AND organization_id = $2`,
			id, orgID); err != nil {
			return ierr.WithError(err).
				WithHint("Failed to delete invoice line items").
				Mark(ierr.ErrDatabase)
		}

		result, err := q.ExecContext(ctx,
			`DELETE FROM invoices WHERE id = $1 AND organization_id = $2`,
			id, orgID)
		if err != nil {
			return ierr.WithError(err).
				WithHint("Failed to delete invoice").
				Mark(ierr.ErrDatabase)
		}

		rows, err := result.RowsAffected()
		if err == nil && rows == 0 {
			return invoice.ErrNotFound(id)
		}
		return nil
	})
}

func (r *invoiceRepository) List(ctx context.Context, filter *types.InvoiceFilter) ([]*invoice.Invoice, error) {
	if filter == nil {
		filter = types.NewInvoiceFilter()
	}

	where, args := r.buildFilterConditions(ctx, filter)

	query := `
	SELECT ` + invoiceColumns + `
	FROM invoices
	WHERE ` + where + `
	ORDER BY created_at DESC, id DESC`

	if !filter.IsUnlimited() {
		args = append(args, filter.GetLimit())
		query += fmt.Sprintf(" LIMIT $%d", len(args))
		args = append(args, filter.GetOffset())
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	var invoices []*invoice.Invoice
	if err := r.client.Querier(ctx).SelectContext(ctx, &invoices, query, args...); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list invoices").
			Mark(ierr.ErrDatabase)
	}

	if err := r.loadLineItems(ctx, invoices); err != nil {
		return nil, err
	}
	return invoices, nil
}

func (r *invoiceRepository) Count(ctx context.Context, filter *types.InvoiceFilter) (int, error) {
	if filter == nil {
		filter = types.NewInvoiceFilter()
	}

	where, args := r.buildFilterConditions(ctx, filter)

	var count int
	query := `SELECT COUNT(*) FROM invoices WHERE ` + where
	if err := r.client.Querier(ctx).GetContext(ctx, &count, query, args...); err != nil {
		return 0, ierr.WithError(err).
			WithHint("Failed to count invoices").
			Mark(ierr.ErrDatabase)
	}
	return count, nil
}

func (r *invoiceRepository) ExistsRecurringForPeriod(ctx context.Context, clientID string, interval types.BillingInterval, period string) (bool, error) {
	query := `
	SELECT EXISTS (
		SELECT 1 FROM invoices
		WHERE organization_id = $1 AND status != $2
			AND client_id = $3 AND billing_interval = $4 AND billing_period = $5
			AND subscription_id IS NOT NULL
	)`

	var exists bool
	err := r.client.Querier(ctx).GetContext(ctx, &exists, query,
		types.GetOrganizationID(ctx), types.StatusDeleted, clientID, interval, period)
	if err != nil {
		return false, ierr.WithError(err).
			WithHint("Failed to check for an existing invoice").
			Mark(ierr.ErrDatabase)
	}
	return exists, nil
}

// NextInvoiceNumber reads the persisted per-organization maximum on every
// call. The numeric suffix is parsed out of invoice_number so manually
// created invoices count toward the sequence too.
func (r *invoiceRepository) NextInvoiceNumber(ctx context.Context) (string, error) {
	prefix := r.cfg.Billing.InvoiceNumberPrefix

	query := `
	SELECT COALESCE(MAX(CAST(SUBSTRING(invoice_number FROM '[0-9]+$') AS BIGINT)), 0)
	FROM invoices
	WHERE organization_id = $1 AND invoice_number LIKE $2`

	var maxSuffix int64
	err := r.client.Querier(ctx).GetContext(ctx, &maxSuffix, query,
		types.GetOrganizationID(ctx), prefix+"-%")
	if err != nil {
		return "", ierr.WithError(err).
			WithHint("Failed to derive the next invoice number").
			Mark(ierr.ErrDatabase)
	}

	return fmt.Sprintf("%s-%0*d", prefix, r.cfg.Billing.InvoiceNumberSuffixLength, maxSuffix+1), nil
}

func (r *invoiceRepository) buildFilterConditions(ctx context.Context, filter *types.InvoiceFilter) (string, []interface{}) {
	where := "organization_id = $1 AND status != $2"
	args := []interface{}{types.GetOrganizationID(ctx), types.StatusDeleted}

	if len(filter.InvoiceIDs) > 0 {
		placeholders := ""
		for i, id := range filter.InvoiceIDs {
			args = append(args, id)
			if i > 0 {
				placeholders += ", "
			}
			placeholders += fmt.Sprintf("$%d", len(args))
		}
		where += " AND id IN (" + placeholders + ")"
	}
	if filter.ClientID != "" {
		args = append(args, filter.ClientID)
		where += fmt.Sprintf(" AND client_id = $%d", len(args))
	}
	if len(filter.InvoiceStatus) > 0 {
		placeholders := ""
		for i, s := range filter.InvoiceStatus {
			args = append(args, s)
			if i > 0 {
				placeholders += ", "
			}
			placeholders += fmt.Sprintf("$%d", len(args))
		}
		where += " AND invoice_status IN (" + placeholders + ")"
	}
	if filter.BillingInterval != "" {
		args = append(args, filter.BillingInterval)
		where += fmt.Sprintf(" AND billing_interval = $%d", len(args))
	}
	if filter.RecurringOnly {
		where += " AND subscription_id IS NOT NULL"
	}
	if filter.CreatedAfter != nil {
		args = append(args, *filter.CreatedAfter)
		where += fmt.Sprintf(" AND created_at >= $%d", len(args))
	}
	if filter.CreatedBefore != nil {
		args = append(args, *filter.CreatedBefore)
		where += fmt.Sprintf(" AND created_at <= $%d", len(args))
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		where += fmt.Sprintf(" AND invoice_number ILIKE $%d", len(args))
	}

	return where, args
}

func (r *invoiceRepository) loadLineItems(ctx context.Context, invoices []*invoice.Invoice) error {
	if len(invoices) == 0 {
		return nil
	}

	ids := make([]string, 0, len(invoices))
	byID := make(map[string]*invoice.Invoice, len(invoices))
	for _, inv := range invoices {
		ids = append(ids, inv.ID)
		byID[inv.ID] = inv
	}

	query := `
	SELECT ` + lineItemColumns + `
	FROM invoice_line_items
	WHERE invoice_id IN (?) AND organization_id = ? AND status != ?
	ORDER BY created_at ASC, id ASC`

	query, args, err := sqlx.In(query, ids, types.GetOrganizationID(ctx), types.StatusDeleted)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to build line item lookup query").
			Mark(ierr.ErrDatabase)
	}

	q := r.client.Querier(ctx)
	query = q.Rebind(query)

	var items []*invoice.LineItem
	if err := q.SelectContext(ctx, &items, query, args...); err != nil {
		return ierr.WithError(err).
			WithHint("Failed to retrieve invoice line items").
			Mark(ierr.ErrDatabase)
	}

	for _, item := range items {
		if inv, ok := byID[item.InvoiceID]; ok {
			inv.LineItems = append(inv.LineItems, item)
		}
	}
	return nil
}
