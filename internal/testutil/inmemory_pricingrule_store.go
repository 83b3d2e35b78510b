package testutil

import (
	"context"
	"sort"

	"github.com/scoopworks/scoopworks/internal/domain/pricingrule"
	ierr "github.com/scoopworks/scoopworks/internal/errors"
	"github.com/scoopworks/scoopworks/internal/types"
)

// InMemoryPricingRuleStore implements pricingrule.Repository
type InMemoryPricingRuleStore struct {
	*InMemoryStore[*pricingrule.PricingRule]
}

func NewInMemoryPricingRuleStore() *InMemoryPricingRuleStore {
	return &InMemoryPricingRuleStore{
		InMemoryStore: NewInMemoryStore[*pricingrule.PricingRule](),
	}
}

func (s *InMemoryPricingRuleStore) Create(ctx context.Context, rule *pricingrule.PricingRule) error {
	if err := s.InMemoryStore.Create(ctx, rule.ID, rule); err != nil {
		return ierr.WithError(err).
			WithHint("A pricing rule with this identifier already exists").
			Mark(ierr.ErrAlreadyExists)
	}
	return nil
}

func (s *InMemoryPricingRuleStore) Get(ctx context.Context, id string) (*pricingrule.PricingRule, error) {
	rule, err := s.InMemoryStore.Get(ctx, id)
	if err != nil || !ruleVisible(ctx, rule) {
		return nil, ierr.NewError("pricing rule not found").
			WithHintf("Pricing rule %s was not found", id).
			Mark(ierr.ErrNotFound)
	}
	return rule, nil
}

func (s *InMemoryPricingRuleStore) List(ctx context.Context, filter *types.PricingRuleFilter) ([]*pricingrule.PricingRule, error) {
	if filter == nil {
		filter = types.NewPricingRuleFilter()
	}

	filterFn := func(ctx context.Context, rule *pricingrule.PricingRule, f interface{}) bool {
		if !ruleVisible(ctx, rule) {
			return false
		}
		pf := f.(*types.PricingRuleFilter)
		if pf.Frequency != "" && rule.Frequency != pf.Frequency {
			return false
		}
		if pf.ActiveOnly && !rule.Active {
			return false
		}
		return true
	}

	sortFn := func(i, j *pricingrule.PricingRule) bool {
		if i.Frequency != j.Frequency {
			return i.Frequency < j.Frequency
		}
		return i.MinDogs < j.MinDogs
	}

	return s.InMemoryStore.List(ctx, filter, filterFn, sortFn)
}

func (s *InMemoryPricingRuleStore) ListActiveByFrequency(ctx context.Context, frequency types.Frequency) ([]*pricingrule.PricingRule, error) {
	filterFn := func(ctx context.Context, rule *pricingrule.PricingRule, _ interface{}) bool {
		return ruleVisible(ctx, rule) && rule.Active && rule.Frequency == frequency
	}

	rules, err := s.InMemoryStore.List(ctx, nil, filterFn, nil)
	if err != nil {
		return nil, err
	}

	sort.Slice(rules, func(i, j int) bool {
		if rules[i].Priority != rules[j].Priority {
			return rules[i].Priority > rules[j].Priority
		}
		return rules[i].MinDogs < rules[j].MinDogs
	})
	return rules, nil
}

func ruleVisible(ctx context.Context, rule *pricingrule.PricingRule) bool {
	return rule.OrganizationID == types.GetOrganizationID(ctx) &&
		rule.Status != types.StatusDeleted
}
