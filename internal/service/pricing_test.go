package service

import (
	"testing"
	"time"

	"github.com/scoopworks/scoopworks/internal/api/dto"
	"github.com/scoopworks/scoopworks/internal/domain/crosssell"
	"github.com/scoopworks/scoopworks/internal/domain/pricingrule"
	ierr "github.com/scoopworks/scoopworks/internal/errors"
	"github.com/scoopworks/scoopworks/internal/testutil"
	"github.com/scoopworks/scoopworks/internal/types"
	"github.com/stretchr/testify/suite"
)

type PricingServiceSuite struct {
	testutil.BaseServiceTestSuite
	service  PricingService
	testData struct {
		smallBand *pricingrule.PricingRule
		largeBand *pricingrule.PricingRule
	}
}

func TestPricingService(t *testing.T) {
	suite.Run(t, new(PricingServiceSuite))
}

func (s *PricingServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.setupService()
	s.setupTestData()
}

func (s *PricingServiceSuite) setupService() {
	billing := NewBillingService(s.GetLogger())
	s.service = NewPricingService(
		s.GetConfig(),
		s.GetStores().PricingRuleRepo,
		s.GetStores().CrossSellRepo,
		billing,
		s.GetLogger(),
	)
}

func (s *PricingServiceSuite) setupTestData() {
	ctx := s.GetContext()

	s.testData.smallBand = &pricingrule.PricingRule{
		ID:             "rule_weekly_small",
		Frequency:      types.FrequencyWeekly,
		MinDogs:        1,
		MaxDogs:        3,
		BasePriceCents: 2300,
		Active:         true,
		BaseModel:      types.GetDefaultBaseModel(ctx),
	}
	s.NoError(s.GetStores().PricingRuleRepo.Create(ctx, s.testData.smallBand))

	s.testData.largeBand = &pricingrule.PricingRule{
		ID:                 "rule_weekly_large",
		Frequency:          types.FrequencyWeekly,
		MinDogs:            4,
		MaxDogs:            types.UnboundedDogs,
		BasePriceCents:     2800,
		PerDogOverageCents: 500,
		Active:             true,
		BaseModel:          types.GetDefaultBaseModel(ctx),
	}
	s.NoError(s.GetStores().PricingRuleRepo.Create(ctx, s.testData.largeBand))
}

func (s *PricingServiceSuite) TestResolvePrice() {
	tests := []struct {
		name      string
		dogs      int
		frequency types.Frequency
		expected  int64
	}{
		{"band minimum", 1, types.FrequencyWeekly, 2300},
		{"band maximum", 3, types.FrequencyWeekly, 2300},
		{"open band minimum", 4, types.FrequencyWeekly, 2800},
		{"open band with overage", 6, types.FrequencyWeekly, 3800},
		{"twice weekly doubles the weekly rate", 2, types.FrequencyTwiceWeekly, 4600},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			res, err := s.service.ResolvePrice(s.GetContext(), tt.dogs, tt.frequency)
			s.NoError(err)
			s.True(res.Matched)
			s.Equal(tt.expected, res.PerVisitCents)
		})
	}
}

func (s *PricingServiceSuite) TestResolvePriceNoMatchingBand() {
	// No BIWEEKLY bands are configured
	res, err := s.service.ResolvePrice(s.GetContext(), 2, types.FrequencyBiweekly)
	s.NoError(err)
	s.False(res.Matched)
	s.Zero(res.PerVisitCents)
	s.Nil(res.Rule)
}

func (s *PricingServiceSuite) TestResolvePriceHigherPriorityWins() {
	ctx := s.GetContext()
	promo := &pricingrule.PricingRule{
		ID:             "rule_weekly_promo",
		Frequency:      types.FrequencyWeekly,
		MinDogs:        1,
		MaxDogs:        3,
		BasePriceCents: 2000,
		Priority:       10,
		Active:         true,
		BaseModel:      types.GetDefaultBaseModel(ctx),
	}
	s.NoError(s.GetStores().PricingRuleRepo.Create(ctx, promo))

	res, err := s.service.ResolvePrice(ctx, 2, types.FrequencyWeekly)
	s.NoError(err)
	s.True(res.Matched)
	s.Equal(int64(2000), res.PerVisitCents)
	s.Equal(promo.ID, res.Rule.ID)
}

func (s *PricingServiceSuite) TestResolvePriceIgnoresInactiveRules() {
	ctx := s.GetContext()
	retired := &pricingrule.PricingRule{
		ID:             "rule_weekly_retired",
		Frequency:      types.FrequencyWeekly,
		MinDogs:        1,
		MaxDogs:        3,
		BasePriceCents: 1500,
		Priority:       100,
		Active:         false,
		BaseModel:      types.GetDefaultBaseModel(ctx),
	}
	s.NoError(s.GetStores().PricingRuleRepo.Create(ctx, retired))

	res, err := s.service.ResolvePrice(ctx, 2, types.FrequencyWeekly)
	s.NoError(err)
	s.Equal(int64(2300), res.PerVisitCents)
}

func (s *PricingServiceSuite) TestResolvePriceRejectsInvalidDogCount() {
	_, err := s.service.ResolvePrice(s.GetContext(), 0, types.FrequencyWeekly)
	s.Error(err)
	s.True(ierr.IsValidation(err))
}

func (s *PricingServiceSuite) TestGetQuote() {
	resp, err := s.service.GetQuote(s.GetContext(), &dto.PriceQuoteRequest{
		ZipCode:      "80301",
		NumberOfDogs: 2,
		Frequency:    "weekly",
	})
	s.NoError(err)
	s.False(resp.PriceNotConfigured)
	s.Equal("23", resp.BasePrice.String())
	s.Require().NotNil(resp.MonthlyPrice)
	// 2300 * 52 / 12 = 9966.67, rounded to 9950 cents
	s.Equal("99.5", resp.MonthlyPrice.String())
	s.Equal("95", resp.InitialCleanupFee.String())
	s.Empty(resp.CrossSells)
}

func (s *PricingServiceSuite) TestGetQuoteAcceptsFrequencySynonyms() {
	ctx := s.GetContext()
	biweekly := &pricingrule.PricingRule{
		ID:             "rule_biweekly",
		Frequency:      types.FrequencyBiweekly,
		MinDogs:        1,
		MaxDogs:        3,
		BasePriceCents: 2800,
		Active:         true,
		BaseModel:      types.GetDefaultBaseModel(ctx),
	}
	s.NoError(s.GetStores().PricingRuleRepo.Create(ctx, biweekly))

	resp, err := s.service.GetQuote(ctx, &dto.PriceQuoteRequest{
		NumberOfDogs: 2,
		Frequency:    "every other week",
	})
	s.NoError(err)
	s.False(resp.PriceNotConfigured)
	s.Equal("28", resp.BasePrice.String())
}

func (s *PricingServiceSuite) TestGetQuoteUnconfiguredDogCount() {
	// No BIWEEKLY bands exist, so the quote flags rather than errors
	resp, err := s.service.GetQuote(s.GetContext(), &dto.PriceQuoteRequest{
		NumberOfDogs: 2,
		Frequency:    "biweekly",
	})
	s.NoError(err)
	s.True(resp.PriceNotConfigured)
	s.True(resp.BasePrice.IsZero())
	s.Nil(resp.MonthlyPrice)
}

func (s *PricingServiceSuite) TestGetQuoteOneTimeHasNoMonthlyPrice() {
	ctx := s.GetContext()
	oneTime := &pricingrule.PricingRule{
		ID:             "rule_one_time",
		Frequency:      types.FrequencyOneTime,
		MinDogs:        1,
		MaxDogs:        types.UnboundedDogs,
		BasePriceCents: 7500,
		Active:         true,
		BaseModel:      types.GetDefaultBaseModel(ctx),
	}
	s.NoError(s.GetStores().PricingRuleRepo.Create(ctx, oneTime))

	resp, err := s.service.GetQuote(ctx, &dto.PriceQuoteRequest{
		NumberOfDogs: 2,
		Frequency:    "one time",
	})
	s.NoError(err)
	s.Equal("75", resp.BasePrice.String())
	s.Nil(resp.MonthlyPrice)
}

func (s *PricingServiceSuite) TestGetQuoteCleanupFeeWaiver() {
	recent := time.Now().UTC().AddDate(0, 0, -10)
	resp, err := s.service.GetQuote(s.GetContext(), &dto.PriceQuoteRequest{
		NumberOfDogs: 2,
		Frequency:    "weekly",
		LastCleaned:  &recent,
	})
	s.NoError(err)
	s.True(resp.InitialCleanupFee.IsZero())

	stale := time.Now().UTC().AddDate(0, 0, -60)
	resp, err = s.service.GetQuote(s.GetContext(), &dto.PriceQuoteRequest{
		NumberOfDogs: 2,
		Frequency:    "weekly",
		LastCleaned:  &stale,
	})
	s.NoError(err)
	s.Equal("95", resp.InitialCleanupFee.String())
}

func (s *PricingServiceSuite) TestGetQuoteIncludesActiveCrossSells() {
	ctx := s.GetContext()
	cs := &crosssell.CrossSell{
		ID:                "cs_deodorizer",
		ClientID:          "client_1",
		Name:              "Yard Deodorizer",
		PricePerUnitCents: 1500,
		Quantity:          1,
		CrossSellStatus:   types.CrossSellStatusActive,
		BaseModel:         types.GetDefaultBaseModel(ctx),
	}
	s.NoError(s.GetStores().CrossSellRepo.Create(ctx, cs))

	canceled := &crosssell.CrossSell{
		ID:                "cs_canceled",
		ClientID:          "client_1",
		Name:              "Litter Box Service",
		PricePerUnitCents: 2000,
		Quantity:          1,
		CrossSellStatus:   types.CrossSellStatusCanceled,
		BaseModel:         types.GetDefaultBaseModel(ctx),
	}
	s.NoError(s.GetStores().CrossSellRepo.Create(ctx, canceled))

	resp, err := s.service.GetQuote(ctx, &dto.PriceQuoteRequest{
		NumberOfDogs: 2,
		Frequency:    "weekly",
	})
	s.NoError(err)
	s.Require().Len(resp.CrossSells, 1)
	s.Equal("Yard Deodorizer", resp.CrossSells[0].Name)
	s.Equal("15", resp.CrossSells[0].Price.String())
}

func (s *PricingServiceSuite) TestCreateRule() {
	resp, err := s.service.CreateRule(s.GetContext(), &pricingrule.PricingRule{
		Frequency:      types.FrequencyBiweekly,
		MinDogs:        1,
		MaxDogs:        3,
		BasePriceCents: 2800,
		Active:         true,
	})
	s.NoError(err)
	s.NotEmpty(resp.ID)
	s.Equal(types.FrequencyBiweekly, resp.Frequency)

	res, err := s.service.ResolvePrice(s.GetContext(), 2, types.FrequencyBiweekly)
	s.NoError(err)
	s.True(res.Matched)
	s.Equal(int64(2800), res.PerVisitCents)
}

func (s *PricingServiceSuite) TestCreateRuleRejectsInvalidBand() {
	_, err := s.service.CreateRule(s.GetContext(), &pricingrule.PricingRule{
		Frequency:      types.FrequencyWeekly,
		MinDogs:        4,
		MaxDogs:        2,
		BasePriceCents: 2800,
	})
	s.Error(err)
	s.True(ierr.IsValidation(err))
}

func (s *PricingServiceSuite) TestListRules() {
	resp, err := s.service.ListRules(s.GetContext(), &types.PricingRuleFilter{
		QueryFilter: types.NewDefaultQueryFilter(),
		Frequency:   types.FrequencyWeekly,
	})
	s.NoError(err)
	s.Len(resp.Items, 2)
}
