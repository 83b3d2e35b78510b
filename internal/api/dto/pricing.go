package dto

import (
	"time"

	"github.com/scoopworks/scoopworks/internal/domain/pricingrule"
	ierr "github.com/scoopworks/scoopworks/internal/errors"
	"github.com/scoopworks/scoopworks/internal/types"
	"github.com/shopspring/decimal"
)

// PriceQuoteRequest asks for a service quote. Frequency accepts loose
// synonyms (bi-weekly, 2x week) and is normalized during Validate.
type PriceQuoteRequest struct {
	ZipCode      string `json:"zip_code"`
	NumberOfDogs int    `json:"number_of_dogs" binding:"required"`
	Frequency    string `json:"frequency" binding:"required"`

	// LastCleaned waives the initial cleanup fee when the yard was
	// serviced recently
	LastCleaned *time.Time `json:"last_cleaned,omitempty"`

	parsed types.Frequency
}

func (r *PriceQuoteRequest) Validate() error {
	if r.NumberOfDogs < 1 {
		return ierr.NewError("invalid quote request").
			WithHint("number_of_dogs must be at least 1").
			Mark(ierr.ErrValidation)
	}
	freq, err := types.ParseFrequency(r.Frequency)
	if err != nil {
		return err
	}
	r.parsed = freq
	return nil
}

// ParsedFrequency returns the normalized frequency. Valid only after
// Validate has succeeded.
func (r *PriceQuoteRequest) ParsedFrequency() types.Frequency {
	return r.parsed
}

// CrossSellOffer is one recurring add-on shown alongside a quote
type CrossSellOffer struct {
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Quantity int64           `json:"quantity"`
}

// PriceQuoteResponse is the quote in dollars. PriceNotConfigured marks a
// dog count no active band covers; the quote still returns 200 with zero
// prices so the caller can fall back to a manual quote.
type PriceQuoteResponse struct {
	BasePrice          decimal.Decimal  `json:"base_price"`
	MonthlyPrice       *decimal.Decimal `json:"monthly_price,omitempty"`
	InitialCleanupFee  decimal.Decimal  `json:"initial_cleanup_fee"`
	PriceNotConfigured bool             `json:"price_not_configured"`
	CrossSells         []CrossSellOffer `json:"cross_sells"`
}

// PricingRuleResponse is the API representation of a pricing rule
type PricingRuleResponse struct {
	ID                 string          `json:"id"`
	Frequency          types.Frequency `json:"frequency"`
	MinDogs            int             `json:"min_dogs"`
	MaxDogs            int             `json:"max_dogs"`
	BasePriceCents     int64           `json:"base_price_cents"`
	PerDogOverageCents int64           `json:"per_dog_overage_cents"`
	Priority           int             `json:"priority"`
	Active             bool            `json:"active"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
}

// NewPricingRuleResponse converts a domain pricing rule to an API response
func NewPricingRuleResponse(rule *pricingrule.PricingRule) *PricingRuleResponse {
	return &PricingRuleResponse{
		ID:                 rule.ID,
		Frequency:          rule.Frequency,
		MinDogs:            rule.MinDogs,
		MaxDogs:            rule.MaxDogs,
		BasePriceCents:     rule.BasePriceCents,
		PerDogOverageCents: rule.PerDogOverageCents,
		Priority:           rule.Priority,
		Active:             rule.Active,
		CreatedAt:          rule.CreatedAt,
		UpdatedAt:          rule.UpdatedAt,
	}
}

// ListPricingRulesResponse represents a paginated list of pricing rules
type ListPricingRulesResponse = types.ListResponse[*PricingRuleResponse]
