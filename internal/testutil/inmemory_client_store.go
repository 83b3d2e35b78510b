package testutil

import (
	"context"

	"github.com/samber/lo"
	"github.com/scoopworks/scoopworks/internal/domain/client"
	ierr "github.com/scoopworks/scoopworks/internal/errors"
	"github.com/scoopworks/scoopworks/internal/types"
)

// InMemoryClientStore implements client.Repository
type InMemoryClientStore struct {
	*InMemoryStore[*client.Client]
}

func NewInMemoryClientStore() *InMemoryClientStore {
	return &InMemoryClientStore{
		InMemoryStore: NewInMemoryStore[*client.Client](),
	}
}

func (s *InMemoryClientStore) Create(ctx context.Context, c *client.Client) error {
	if err := s.InMemoryStore.Create(ctx, c.ID, c); err != nil {
		return ierr.WithError(err).
			WithHint("A client with this identifier already exists").
			Mark(ierr.ErrAlreadyExists)
	}
	return nil
}

func (s *InMemoryClientStore) Get(ctx context.Context, id string) (*client.Client, error) {
	c, err := s.InMemoryStore.Get(ctx, id)
	if err != nil || !clientVisible(ctx, c) {
		return nil, ierr.NewError("client not found").
			WithHintf("Client %s was not found", id).
			Mark(ierr.ErrNotFound)
	}
	return c, nil
}

func (s *InMemoryClientStore) GetByIDs(ctx context.Context, ids []string) ([]*client.Client, error) {
	filterFn := func(ctx context.Context, c *client.Client, _ interface{}) bool {
		return clientVisible(ctx, c) && lo.Contains(ids, c.ID)
	}
	return s.InMemoryStore.List(ctx, nil, filterFn, nil)
}

func clientVisible(ctx context.Context, c *client.Client) bool {
	return c.OrganizationID == types.GetOrganizationID(ctx) &&
		c.Status != types.StatusDeleted
}
