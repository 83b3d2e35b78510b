package testutil

import (
	"context"
	"sort"

	"github.com/scoopworks/scoopworks/internal/domain/activitylog"
	ierr "github.com/scoopworks/scoopworks/internal/errors"
	"github.com/scoopworks/scoopworks/internal/types"
)

// InMemoryActivityLogStore implements activitylog.Repository
type InMemoryActivityLogStore struct {
	*InMemoryStore[*activitylog.Entry]
}

func NewInMemoryActivityLogStore() *InMemoryActivityLogStore {
	return &InMemoryActivityLogStore{
		InMemoryStore: NewInMemoryStore[*activitylog.Entry](),
	}
}

func (s *InMemoryActivityLogStore) Append(ctx context.Context, entry *activitylog.Entry) error {
	if err := s.InMemoryStore.Create(ctx, entry.ID, entry); err != nil {
		return ierr.WithError(err).
			WithHint("Failed to append activity log entry").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (s *InMemoryActivityLogStore) List(ctx context.Context, filter *types.QueryFilter) ([]*activitylog.Entry, error) {
	if filter == nil {
		filter = types.NewDefaultQueryFilter()
	}

	filterFn := func(ctx context.Context, entry *activitylog.Entry, _ interface{}) bool {
		return entry.OrganizationID == types.GetOrganizationID(ctx)
	}

	entries, err := s.InMemoryStore.List(ctx, nil, filterFn, nil)
	if err != nil {
		return nil, err
	}

	sort.Slice(entries, func(i, j int) bool {
		if !entries[i].CreatedAt.Equal(entries[j].CreatedAt) {
			return entries[i].CreatedAt.After(entries[j].CreatedAt)
		}
		return entries[i].ID > entries[j].ID
	})
	return paginate(entries, filter), nil
}

func (s *InMemoryActivityLogStore) Count(ctx context.Context) (int, error) {
	filterFn := func(ctx context.Context, entry *activitylog.Entry, _ interface{}) bool {
		return entry.OrganizationID == types.GetOrganizationID(ctx)
	}
	return s.InMemoryStore.Count(ctx, nil, filterFn)
}
