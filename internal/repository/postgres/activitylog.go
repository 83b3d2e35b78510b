package postgres

import (
	"context"
	"fmt"

	"github.com/lib/pq"
	"github.com/scoopworks/scoopworks/internal/domain/activitylog"
	ierr "github.com/scoopworks/scoopworks/internal/errors"
	"github.com/scoopworks/scoopworks/internal/logger"
	"github.com/scoopworks/scoopworks/internal/postgres"
	"github.com/scoopworks/scoopworks/internal/types"
)

type activityLogRepository struct {
	client postgres.IClient
	logger *logger.Logger
}

func NewActivityLogRepository(client postgres.IClient, logger *logger.Logger) activitylog.Repository {
	return &activityLogRepository{client: client, logger: logger}
}

func (r *activityLogRepository) Append(ctx context.Context, entry *activitylog.Entry) error {
	query := `
	INSERT INTO activity_logs (
		id, actor, action, entity_type, entity_ids, organization_id, created_at
	) VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.client.Querier(ctx).ExecContext(ctx, query,
		entry.ID,
		entry.Actor,
		entry.Action,
		entry.EntityType,
		pq.Array(entry.EntityIDs),
		entry.OrganizationID,
		entry.CreatedAt,
	)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to append activity log entry").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *activityLogRepository) List(ctx context.Context, filter *types.QueryFilter) ([]*activitylog.Entry, error) {
	if filter == nil {
		filter = types.NewDefaultQueryFilter()
	}

	query := `
	SELECT id, actor, action, entity_type, entity_ids, organization_id, created_at
	FROM activity_logs
	WHERE organization_id = $1
	ORDER BY created_at DESC, id DESC`
	args := []interface{}{types.GetOrganizationID(ctx)}

	if !filter.IsUnlimited() {
		args = append(args, filter.GetLimit())
		query += fmt.Sprintf(" LIMIT $%d", len(args))
		args = append(args, filter.GetOffset())
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	rows, err := r.client.Querier(ctx).QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list activity log entries").
			Mark(ierr.ErrDatabase)
	}
	defer rows.Close()

	var entries []*activitylog.Entry
	for rows.Next() {
		var entry activitylog.Entry
		var entityIDs pq.StringArray
		if err := rows.Scan(
			&entry.ID,
			&entry.Actor,
			&entry.Action,
			&entry.EntityType,
			&entityIDs,
			&entry.OrganizationID,
			&entry.CreatedAt,
		); err != nil {
			return nil, ierr.WithError(err).
				WithHint("Failed to scan activity log entry").
				Mark(ierr.ErrDatabase)
		}
		entry.EntityIDs = []string(entityIDs)
		entries = append(entries, &entry)
	}
	if err := rows.Err(); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list activity log entries").
			Mark(ierr.ErrDatabase)
	}
	return entries, nil
}

func (r *activityLogRepository) Count(ctx context.Context) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM activity_logs WHERE organization_id = $1`
	err := r.client.Querier(ctx).GetContext(ctx, &count, query, types.GetOrganizationID(ctx))
	if err != nil {
		return 0, ierr.WithError(err).
			WithHint("Failed to count activity log entries").
			Mark(ierr.ErrDatabase)
	}
	return count, nil
}
