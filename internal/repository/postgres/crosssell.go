package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/scoopworks/scoopworks/internal/domain/crosssell"
	ierr "github.com/scoopworks/scoopworks/internal/errors"
	"github.com/scoopworks/scoopworks/internal/logger"
	"github.com/scoopworks/scoopworks/internal/postgres"
	"github.com/scoopworks/scoopworks/internal/types"
)

type crossSellRepository struct {
	client postgres.IClient
	logger *logger.Logger
}

func NewCrossSellRepository(client postgres.IClient, logger *logger.Logger) crosssell.Repository {
	return &crossSellRepository{client: client, logger: logger}
}

const crossSellColumns = `
	id, client_id, name, price_per_unit_cents, quantity, cross_sell_status,
	organization_id, status, created_at, updated_at, created_by, updated_by
`

func (r *crossSellRepository) Create(ctx context.Context, cs *crosssell.CrossSell) error {
	r.logger.Debugw("creating cross sell",
		"cross_sell_id", cs.ID,
		"client_id", cs.ClientID,
		"name", cs.Name,
	)

	query := `
	INSERT INTO client_cross_sells (` + crossSellColumns + `)
	VALUES (
		:id, :client_id, :name, :price_per_unit_cents, :quantity, :cross_sell_status,
		:organization_id, :status, :created_at, :updated_at, :created_by, :updated_by
	)`

	_, err := sqlx.NamedExecContext(ctx, r.client.Querier(ctx), query, cs)
	if err != nil {
		if isUniqueViolation(err) {
			return ierr.WithError(err).
				WithHint("A cross sell with this identifier already exists").
				Mark(ierr.ErrAlreadyExists)
		}
		return ierr.WithError(err).
			WithHint("Failed to create cross sell").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *crossSellRepository) Get(ctx context.Context, id string) (*crosssell.CrossSell, error) {
	query := `
	SELECT ` + crossSellColumns + `
	FROM client_cross_sells
	WHERE id = $1 AND organization_id = $2 AND status != $3`

	var cs crosssell.CrossSell
	err := r.client.Querier(ctx).GetContext(ctx, &cs, query,
		id, types.GetOrganizationID(ctx), types.StatusDeleted)
	if err != nil {
		if isNoRows(err) {
			return nil, ierr.NewError("cross sell not found").
				WithHintf("Cross sell %s was not found", id).
				WithReportableDetails(map[string]any{
					"cross_sell_id": id,
				}).
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to retrieve cross sell").
			Mark(ierr.ErrDatabase)
	}
	return &cs, nil
}

func (r *crossSellRepository) ListActiveByClient(ctx context.Context, clientID string) ([]*crosssell.CrossSell, error) {
	query := `
	SELECT ` + crossSellColumns + `
	FROM client_cross_sells
	WHERE organization_id = $1 AND status != $2 AND client_id = $3 AND cross_sell_status = $4
	ORDER BY created_at ASC, id ASC`

	var sells []*crosssell.CrossSell
	err := r.client.Querier(ctx).SelectContext(ctx, &sells, query,
		types.GetOrganizationID(ctx), types.StatusDeleted, clientID, types.CrossSellStatusActive)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list cross sells").
			Mark(ierr.ErrDatabase)
	}
	return sells, nil
}

func (r *crossSellRepository) ListActive(ctx context.Context) ([]*crosssell.CrossSell, error) {
	query := `
	SELECT ` + crossSellColumns + `
	FROM client_cross_sells
	WHERE organization_id = $1 AND status != $2 AND cross_sell_status = $3
	ORDER BY name ASC, id ASC`

	var sells []*crosssell.CrossSell
	err := r.client.Querier(ctx).SelectContext(ctx, &sells, query,
		types.GetOrganizationID(ctx), types.StatusDeleted, types.CrossSellStatusActive)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list cross sells").
			Mark(ierr.ErrDatabase)
	}
	return sells, nil
}
