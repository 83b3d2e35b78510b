package testutil

import (
	"context"
	"sort"

	"github.com/samber/lo"
	"github.com/scoopworks/scoopworks/internal/domain/subscription"
	ierr "github.com/scoopworks/scoopworks/internal/errors"
	"github.com/scoopworks/scoopworks/internal/types"
)

// InMemorySubscriptionStore implements subscription.Repository
type InMemorySubscriptionStore struct {
	*InMemoryStore[*subscription.Subscription]
}

func NewInMemorySubscriptionStore() *InMemorySubscriptionStore {
	return &InMemorySubscriptionStore{
		InMemoryStore: NewInMemoryStore[*subscription.Subscription](),
	}
}

func (s *InMemorySubscriptionStore) Create(ctx context.Context, sub *subscription.Subscription) error {
	if err := s.InMemoryStore.Create(ctx, sub.ID, sub); err != nil {
		return ierr.WithError(err).
			WithHint("A subscription with this identifier already exists").
			Mark(ierr.ErrAlreadyExists)
	}
	return nil
}

func (s *InMemorySubscriptionStore) Get(ctx context.Context, id string) (*subscription.Subscription, error) {
	sub, err := s.InMemoryStore.Get(ctx, id)
	if err != nil || !subscriptionVisible(ctx, sub) {
		return nil, ierr.NewError("subscription not found").
			WithHintf("Subscription %s was not found", id).
			Mark(ierr.ErrNotFound)
	}
	return sub, nil
}

func (s *InMemorySubscriptionStore) Update(ctx context.Context, sub *subscription.Subscription) error {
	if err := s.InMemoryStore.Update(ctx, sub.ID, sub); err != nil {
		return ierr.NewError("subscription not found").
			WithHintf("Subscription %s was not found", sub.ID).
			Mark(ierr.ErrNotFound)
	}
	return nil
}

func (s *InMemorySubscriptionStore) ListByStatus(ctx context.Context, status types.SubscriptionStatus) ([]*subscription.Subscription, error) {
	filterFn := func(ctx context.Context, sub *subscription.Subscription, _ interface{}) bool {
		return subscriptionVisible(ctx, sub) && sub.SubscriptionStatus == status
	}

	subs, err := s.InMemoryStore.List(ctx, nil, filterFn, nil)
	if err != nil {
		return nil, err
	}

	sort.Slice(subs, func(i, j int) bool {
		if !subs[i].CreatedAt.Equal(subs[j].CreatedAt) {
			return subs[i].CreatedAt.Before(subs[j].CreatedAt)
		}
		return subs[i].ID < subs[j].ID
	})
	return subs, nil
}

func (s *InMemorySubscriptionStore) ListOrganizationsWithActive(ctx context.Context) ([]string, error) {
	filterFn := func(ctx context.Context, sub *subscription.Subscription, _ interface{}) bool {
		return sub.Status != types.StatusDeleted &&
			sub.SubscriptionStatus == types.SubscriptionStatusActive
	}

	subs, err := s.InMemoryStore.List(ctx, nil, filterFn, nil)
	if err != nil {
		return nil, err
	}

	orgs := lo.Uniq(lo.Map(subs, func(sub *subscription.Subscription, _ int) string {
		return sub.OrganizationID
	}))
	sort.Strings(orgs)
	return orgs, nil
}

func subscriptionVisible(ctx context.Context, sub *subscription.Subscription) bool {
	return sub.OrganizationID == types.GetOrganizationID(ctx) &&
		sub.Status != types.StatusDeleted
}
