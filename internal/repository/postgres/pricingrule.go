package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/scoopworks/scoopworks/internal/domain/pricingrule"
	ierr "github.com/scoopworks/scoopworks/internal/errors"
	"github.com/scoopworks/scoopworks/internal/logger"
	"github.com/scoopworks/scoopworks/internal/postgres"
	"github.com/scoopworks/scoopworks/internal/types"
)

type pricingRuleRepository struct {
	client postgres.IClient
	logger *logger.Logger
}

func NewPricingRuleRepository(client postgres.IClient, logger *logger.Logger) pricingrule.Repository {
	return &pricingRuleRepository{client: client, logger: logger}
}

const pricingRuleColumns = `
	id, frequency, min_dogs, max_dogs, base_price_cents, per_dog_overage_cents,
	priority, active, organization_id, status, created_at, updated_at, created_by, updated_by
`

func (r *pricingRuleRepository) Create(ctx context.Context, rule *pricingrule.PricingRule) error {
	r.logger.Debugw("creating pricing rule",
		"rule_id", rule.ID,
		"frequency", rule.Frequency,
		"min_dogs", rule.MinDogs,
		"max_dogs", rule.MaxDogs,
	)

	query := `
	INSERT INTO pricing_rules (` + pricingRuleColumns + `)
	VALUES (
		:id, :frequency, :min_dogs, :max_dogs, :base_price_cents, :per_dog_overage_cents,
		:priority, :active, :organization_id, :status, :created_at, :updated_at, :created_by, :updated_by
	)`

	_, err := sqlx.NamedExecContext(ctx, r.client.Querier(ctx), query, rule)
	if err != nil {
		if isUniqueViolation(err) {
			return ierr.WithError(err).
				WithHint("A pricing rule with this identifier already exists").
				Mark(ierr.ErrAlreadyExists)
		}
		return ierr.WithError(err).
			WithHint("Failed to create pricing rule").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *pricingRuleRepository) Get(ctx context.Context, id string) (*pricingrule.PricingRule, error) {
	query := `
	SELECT ` + pricingRuleColumns + `
	FROM pricing_rules
	WHERE id = $1 AND organization_id = $2 AND status != $3`

	var rule pricingrule.PricingRule
	err := r.client.Querier(ctx).GetContext(ctx, &rule, query,
		id, types.GetOrganizationID(ctx), types.StatusDeleted)
	if err != nil {
		if isNoRows(err) {
			return nil, ierr.NewError("pricing rule not found").
				WithHintf("Pricing rule %s was not found", id).
				WithReportableDetails(map[string]any{
					"pricing_rule_id": id,
				}).
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to retrieve pricing rule").
			Mark(ierr.ErrDatabase)
	}
	return &rule, nil
}

func (r *pricingRuleRepository) List(ctx context.Context, filter *types.PricingRuleFilter) ([]*pricingrule.PricingRule, error) {
	if filter == nil {
		filter = types.NewPricingRuleFilter()
	}

	query := `
	SELECT ` + pricingRuleColumns + `
	FROM pricing_rules
	WHERE organization_id = $1 AND status != $2`
	args := []interface{}{types.GetOrganizationID(ctx), types.StatusDeleted}

	if filter.Frequency != "" {
		args = append(args, filter.Frequency)
		query += fmt.Sprintf(" AND frequency = $%d", len(args))
	}
	if filter.ActiveOnly {
		query += " AND active = true"
	}

	query += " ORDER BY frequency ASC, min_dogs ASC, priority DESC"

	if !filter.IsUnlimited() {
		args = append(args, filter.GetLimit())
		query += fmt.Sprintf(" LIMIT $%d", len(args))
		args = append(args, filter.GetOffset())
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	var rules []*pricingrule.PricingRule
	if err := r.client.Querier(ctx).SelectContext(ctx, &rules, query, args...); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list pricing rules").
			Mark(ierr.ErrDatabase)
	}
	return rules, nil
}

func (r *pricingRuleRepository) ListActiveByFrequency(ctx context.Context, frequency types.Frequency) ([]*pricingrule.PricingRule, error) {
	query := `
	SELECT ` + pricingRuleColumns + `
	FROM pricing_rules
	WHERE organization_id = $1 AND status != $2 AND frequency = $3 AND active = true
	ORDER BY priority DESC, min_dogs ASC`

	var rules []*pricingrule.PricingRule
	err := r.client.Querier(ctx).SelectContext(ctx, &rules, query,
		types.GetOrganizationID(ctx), types.StatusDeleted, frequency)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list active pricing rules").
			Mark(ierr.ErrDatabase)
	}
	return rules, nil
}
