package postgres

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/scoopworks/scoopworks/internal/domain/subscription"
	ierr "github.com/scoopworks/scoopworks/internal/errors"
	"github.com/scoopworks/scoopworks/internal/logger"
	"github.com/scoopworks/scoopworks/internal/postgres"
	"github.com/scoopworks/scoopworks/internal/types"
)

type subscriptionRepository struct {
	client postgres.IClient
	logger *logger.Logger
}

func NewSubscriptionRepository(client postgres.IClient, logger *logger.Logger) subscription.Repository {
	return &subscriptionRepository{client: client, logger: logger}
}

const subscriptionColumns = `
	id, client_id, location_id, frequency, price_per_visit_cents,
	subscription_status, billing_interval,
	organization_id, status, created_at, updated_at, created_by, updated_by
`

func (r *subscriptionRepository) Create(ctx context.Context, sub *subscription.Subscription) error {
	r.logger.Debugw("creating subscription",
		"subscription_id", sub.ID,
		"client_id", sub.ClientID,
		"frequency", sub.Frequency,
	)

	query := `
	INSERT INTO subscriptions (` + subscriptionColumns + `)
	VALUES (
		:id, :client_id, :location_id, :frequency, :price_per_visit_cents,
		:subscription_status, :billing_interval,
		:organization_id, :status, :created_at, :updated_at, :created_by, :updated_by
	)`

	_, err := sqlx.NamedExecContext(ctx, r.client.Querier(ctx), query, sub)
	if err != nil {
		if isUniqueViolation(err) {
			return ierr.WithError(err).
				WithHint("A subscription with this identifier already exists").
				Mark(ierr.ErrAlreadyExists)
		}
		return ierr.WithError(err).
			WithHint("Failed to create subscription").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *subscriptionRepository) Get(ctx context.Context, id string) (*subscription.Subscription, error) {
	query := `
	SELECT ` + subscriptionColumns + `
	FROM subscriptions
	WHERE id = $1 AND organization_id = $2 AND status != $3`

	var sub subscription.Subscription
	err := r.client.Querier(ctx).GetContext(ctx, &sub, query,
		id, types.GetOrganizationID(ctx), types.StatusDeleted)
	if err != nil {
		if isNoRows(err) {
			return nil, ierr.NewError("subscription not found").
				WithHintf("Subscription %s was not found", id).
				WithReportableDetails(map[string]any{
					"subscription_id": id,
				}).
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to retrieve subscription").
			Mark(ierr.ErrDatabase)
	}
	return &sub, nil
}

func (r *subscriptionRepository) Update(ctx context.Context, sub *subscription.Subscription) error {
	sub.UpdatedAt = time.Now().UTC()
	sub.UpdatedBy = types.GetUserID(ctx)

	query := `
	UPDATE subscriptions SET
		frequency = :frequency,
		price_per_visit_cents = :price_per_visit_cents,
		subscription_status = :subscription_status,
		billing_interval = :billing_interval,
		status = :status,
		updated_at = :updated_at,
		updated_by = :updated_by
	WHERE id = :id AND organization_id = :organization_id`

	result, err := sqlx.NamedExecContext(ctx, r.client.Querier(ctx), query, sub)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to update subscription").
			Mark(ierr.ErrDatabase)
	}

	rows, err := result.RowsAffected()
	if err == nil && rows == 0 {
		return ierr.NewError("subscription not found").
			WithHintf("Subscription %s was not found", sub.ID).
			Mark(ierr.ErrNotFound)
	}
	return nil
}

func (r *subscriptionRepository) ListOrganizationsWithActive(ctx context.Context) ([]string, error) {
	query := `
	SELECT DISTINCT organization_id
	FROM subscriptions
	WHERE status != $1 AND subscription_status = $2
	ORDER BY organization_id ASC`

	var orgs []string
	err := r.client.Querier(ctx).SelectContext(ctx, &orgs, query,
		types.StatusDeleted, types.SubscriptionStatusActive)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list organizations with active subscriptions").
			Mark(ierr.ErrDatabase)
	}
	return orgs, nil
}

func (r *subscriptionRepository) ListByStatus(ctx context.Context, status types.SubscriptionStatus) ([]*subscription.Subscription, error) {
	query := `
	SELECT ` + subscriptionColumns + `
	FROM subscriptions
	WHERE organization_id = $1 AND status != $2 AND subscription_status = $3
	ORDER BY created_at ASC, id ASC`

	var subs []*subscription.Subscription
	err := r.client.Querier(ctx).SelectContext(ctx, &subs, query,
		types.GetOrganizationID(ctx), types.StatusDeleted, status)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list subscriptions").
			Mark(ierr.ErrDatabase)
	}
	return subs, nil
}
