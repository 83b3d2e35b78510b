package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/scoopworks/scoopworks/internal/domain/client"
	ierr "github.com/scoopworks/scoopworks/internal/errors"
	"github.com/scoopworks/scoopworks/internal/logger"
	"github.com/scoopworks/scoopworks/internal/postgres"
	"github.com/scoopworks/scoopworks/internal/types"
)

type clientRepository struct {
	client postgres.IClient
	logger *logger.Logger
}

func NewClientRepository(client postgres.IClient, logger *logger.Logger) client.Repository {
	return &clientRepository{client: client, logger: logger}
}

const clientColumns = `
	id, name, email, zip_code, dog_count, client_status,
	organization_id, status, created_at, updated_at, created_by, updated_by
`

func (r *clientRepository) Create(ctx context.Context, c *client.Client) error {
	r.logger.Debugw("creating client",
		"client_id", c.ID,
		"dog_count", c.DogCount,
	)

	query := `
	INSERT INTO clients (` + clientColumns + `)
	VALUES (
		:id, :name, :email, :zip_code, :dog_count, :client_status,
		:organization_id, :status, :created_at, :updated_at, :created_by, :updated_by
	)`

	_, err := sqlx.NamedExecContext(ctx, r.client.Querier(ctx), query, c)
	if err != nil {
		if isUniqueViolation(err) {
			return ierr.WithError(err).
				WithHint("A client with this identifier already exists").
				Mark(ierr.ErrAlreadyExists)
		}
		return ierr.WithError(err).
			WithHint("Failed to create client").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *clientRepository) Get(ctx context.Context, id string) (*client.Client, error) {
	query := `
	SELECT ` + clientColumns + `
	FROM clients
	WHERE id = $1 AND organization_id = $2 AND status != $3`

	var c client.Client
	err := r.client.Querier(ctx).GetContext(ctx, &c, query,
		id, types.GetOrganizationID(ctx), types.StatusDeleted)
	if err != nil {
		if isNoRows(err) {
			return nil, ierr.NewError("client not found").
				WithHintf("Client %s was not found", id).
				WithReportableDetails(map[string]any{
					"client_id": id,
				}).
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to retrieve client").
			Mark(ierr.ErrDatabase)
	}
	return &c, nil
}

func (r *clientRepository) GetByIDs(ctx context.Context, ids []string) ([]*client.Client, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query := `
	SELECT ` + clientColumns + `
	FROM clients
	WHERE id IN (?) AND organization_id = ? AND status != ?`

	query, args, err := sqlx.In(query, ids, types.GetOrganizationID(ctx), types.StatusDeleted)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to build client lookup query").
			Mark(ierr.ErrDatabase)
	}

	q := r.client.Querier(ctx)
	query = q.Rebind(query)

	var clients []*client.Client
	if err := q.SelectContext(ctx, &clients, query, args...); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to retrieve clients").
			Mark(ierr.ErrDatabase)
	}
	return clients, nil
}
