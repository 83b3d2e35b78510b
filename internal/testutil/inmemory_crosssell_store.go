package testutil

import (
	"context"

	"github.com/scoopworks/scoopworks/internal/domain/crosssell"
	ierr "github.com/scoopworks/scoopworks/internal/errors"
	"github.com/scoopworks/scoopworks/internal/types"
)

// InMemoryCrossSellStore implements crosssell.Repository
type InMemoryCrossSellStore struct {
	*InMemoryStore[*crosssell.CrossSell]
}

func NewInMemoryCrossSellStore() *InMemoryCrossSellStore {
	return &InMemoryCrossSellStore{
		InMemoryStore: NewInMemoryStore[*crosssell.CrossSell](),
	}
}

func (s *InMemoryCrossSellStore) Create(ctx context.Context, cs *crosssell.CrossSell) error {
	if err := s.InMemoryStore.Create(ctx, cs.ID, cs); err != nil {
		return ierr.WithError(err).
			WithHint("A cross sell with this identifier already exists").
			Mark(ierr.ErrAlreadyExists)
	}
	return nil
}

func (s *InMemoryCrossSellStore) Get(ctx context.Context, id string) (*crosssell.CrossSell, error) {
	cs, err := s.InMemoryStore.Get(ctx, id)
	if err != nil || !crossSellVisible(ctx, cs) {
		return nil, ierr.NewError("cross sell not found").
			WithHintf("Cross sell %s was not found", id).
			Mark(ierr.ErrNotFound)
	}
	return cs, nil
}

func (s *InMemoryCrossSellStore) ListActiveByClient(ctx context.Context, clientID string) ([]*crosssell.CrossSell, error) {
	filterFn := func(ctx context.Context, cs *crosssell.CrossSell, _ interface{}) bool {
		return crossSellVisible(ctx, cs) && cs.IsActive() && cs.ClientID == clientID
	}
	return s.InMemoryStore.List(ctx, nil, filterFn, nil)
}

func (s *InMemoryCrossSellStore) ListActive(ctx context.Context) ([]*crosssell.CrossSell, error) {
	filterFn := func(ctx context.Context, cs *crosssell.CrossSell, _ interface{}) bool {
		return crossSellVisible(ctx, cs) && cs.IsActive()
	}
	return s.InMemoryStore.List(ctx, nil, filterFn, nil)
}

func crossSellVisible(ctx context.Context, cs *crosssell.CrossSell) bool {
	return cs.OrganizationID == types.GetOrganizationID(ctx) &&
		cs.Status != types.StatusDeleted
}
