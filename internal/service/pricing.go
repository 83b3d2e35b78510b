package service

import (
	"context"
	"time"

	"github.com/scoopworks/scoopworks/internal/api/dto"
	"github.com/scoopworks/scoopworks/internal/config"
	"github.com/scoopworks/scoopworks/internal/domain/crosssell"
	"github.com/scoopworks/scoopworks/internal/domain/pricingrule"
	ierr "github.com/scoopworks/scoopworks/internal/errors"
	"github.com/scoopworks/scoopworks/internal/logger"
	"github.com/scoopworks/scoopworks/internal/types"
)

// PriceResolution is the outcome of resolving a dog count and frequency
// against the active pricing bands. Matched false means no band covers the
// dog count; callers surface that as a flag, never as an error.
type PriceResolution struct {
	PerVisitCents int64
	Matched       bool
	Rule          *pricingrule.PricingRule
}

// PricingService resolves configured pricing bands and produces quotes
type PricingService interface {
	// ResolvePrice finds the per-visit price for a dog count and frequency
	ResolvePrice(ctx context.Context, dogCount int, frequency types.Frequency) (*PriceResolution, error)

	// GetQuote produces a dollar-denominated quote for the office console
	// and public quote form
	GetQuote(ctx context.Context, req *dto.PriceQuoteRequest) (*dto.PriceQuoteResponse, error)

	// CreateRule adds a new pricing band version
	CreateRule(ctx context.Context, rule *pricingrule.PricingRule) (*dto.PricingRuleResponse, error)

	// ListRules lists pricing bands for the office console
	ListRules(ctx context.Context, filter *types.PricingRuleFilter) (*dto.ListPricingRulesResponse, error)
}

type pricingService struct {
	cfg             *config.Configuration
	pricingRuleRepo pricingrule.Repository
	crossSellRepo   crosssell.Repository
	billingService  BillingService
	logger          *logger.Logger
}

func NewPricingService(
	cfg *config.Configuration,
	pricingRuleRepo pricingrule.Repository,
	crossSellRepo crosssell.Repository,
	billingService BillingService,
	logger *logger.Logger,
) PricingService {
	return &pricingService{
		cfg:             cfg,
		pricingRuleRepo: pricingRuleRepo,
		crossSellRepo:   crossSellRepo,
		billingService:  billingService,
		logger:          logger,
	}
}

// ResolvePrice walks the active bands for the frequency's pricing base in
// priority order and takes the first one containing the dog count.
// TWICE_WEEKLY is priced off the WEEKLY bands and doubled afterwards.
func (s *pricingService) ResolvePrice(ctx context.Context, dogCount int, frequency types.Frequency) (*PriceResolution, error) {
	if dogCount < 1 {
		return nil, ierr.NewError("invalid dog count").
			WithHint("dog count must be at least 1").
			Mark(ierr.ErrValidation)
	}

	base, multiplier := frequency.PricingBase()
	rules, err := s.pricingRuleRepo.ListActiveByFrequency(ctx, base)
	if err != nil {
		return nil, err
	}

	for _, rule := range rules {
		if rule.Contains(dogCount) {
			return &PriceResolution{
				PerVisitCents: rule.PriceFor(dogCount) * multiplier,
				Matched:       true,
				Rule:          rule,
			}, nil
		}
	}

	s.logger.Infow("no pricing band matched",
		"dog_count", dogCount,
		"frequency", frequency,
		"pricing_base", base,
	)
	return &PriceResolution{}, nil
}

func (s *pricingService) GetQuote(ctx context.Context, req *dto.PriceQuoteRequest) (*dto.PriceQuoteResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	frequency := req.ParsedFrequency()

	res, err := s.ResolvePrice(ctx, req.NumberOfDogs, frequency)
	if err != nil {
		return nil, err
	}

	resp := &dto.PriceQuoteResponse{
		BasePrice:          types.CentsToDollars(res.PerVisitCents),
		InitialCleanupFee:  types.CentsToDollars(s.initialCleanupFee(req.LastCleaned)),
		PriceNotConfigured: !res.Matched,
		CrossSells:         []dto.CrossSellOffer{},
	}

	if res.Matched && frequency != types.FrequencyOneTime {
		monthly := types.CentsToDollars(s.billingService.MonthlyCharge(res.PerVisitCents, frequency))
		resp.MonthlyPrice = &monthly
	}

	sells, err := s.crossSellRepo.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	for _, cs := range sells {
		resp.CrossSells = append(resp.CrossSells, dto.CrossSellOffer{
			Name:     cs.Name,
			Price:    types.CentsToDollars(cs.PricePerUnitCents),
			Quantity: cs.Quantity,
		})
	}

	return resp, nil
}

// initialCleanupFee returns the configured fee, waived when the yard was
// cleaned within the waiver window.
func (s *pricingService) initialCleanupFee(lastCleaned *time.Time) int64 {
	if lastCleaned != nil {
		waiverCutoff := time.Now().UTC().AddDate(0, 0, -s.cfg.Billing.CleanupWaiverDays)
		if lastCleaned.After(waiverCutoff) {
			return 0
		}
	}
	return s.cfg.Billing.InitialCleanupFeeCents
}

func (s *pricingService) CreateRule(ctx context.Context, rule *pricingrule.PricingRule) (*dto.PricingRuleResponse, error) {
	if err := rule.Validate(); err != nil {
		return nil, err
	}

	if rule.ID == "" {
		rule.ID = types.GenerateUUIDWithPrefix(types.UUID_PREFIX_PRICING_RULE)
	}
	rule.BaseModel = types.GetDefaultBaseModel(ctx)

	if err := s.pricingRuleRepo.Create(ctx, rule); err != nil {
		return nil, err
	}
	return dto.NewPricingRuleResponse(rule), nil
}

func (s *pricingService) ListRules(ctx context.Context, filter *types.PricingRuleFilter) (*dto.ListPricingRulesResponse, error) {
	if filter == nil {
		filter = types.NewPricingRuleFilter()
	}
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	rules, err := s.pricingRuleRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]*dto.PricingRuleResponse, 0, len(rules))
	for _, rule := range rules {
		items = append(items, dto.NewPricingRuleResponse(rule))
	}

	resp := types.NewListResponse(items, len(items), filter.GetLimit(), filter.GetOffset())
	return &resp, nil
}
