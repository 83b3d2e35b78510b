package service

import (
	"fmt"

	"github.com/scoopworks/scoopworks/internal/logger"
	"github.com/scoopworks/scoopworks/internal/types"
	"github.com/shopspring/decimal"
)

// fallbackAnnualVisits is used when a persisted frequency is no longer in
// the visit table. Changing the table for a known frequency is a billing
// change and needs a new rule version, never an edit here.
const fallbackAnnualVisits = 12

// BillingService normalizes per-visit prices into monthly charges
type BillingService interface {
	// MonthlyCharge converts a per-visit price to the monthly amount
	// billed for the frequency, rounded to the nearest 50 cents
	MonthlyCharge(perVisitCents int64, frequency types.Frequency) int64

	// LineItemDescription renders the human-readable label for a
	// subscription's invoice line, e.g. "Weekly - 2 Dogs ($23.00/visit)"
	LineItemDescription(frequency types.Frequency, dogCount int, perVisitCents int64) string
}

type billingService struct {
	logger *logger.Logger
}

func NewBillingService(logger *logger.Logger) BillingService {
	return &billingService{logger: logger}
}

// MonthlyCharge is pure and reproducible for the same two inputs: the raw
// monthly amount perVisitCents × annualVisits / 12 is rounded half-up to
// integer cents first, then to the nearest 50-cent increment.
func (s *billingService) MonthlyCharge(perVisitCents int64, frequency types.Frequency) int64 {
	visits, ok := frequency.AnnualVisits()
	if !ok {
		s.logger.Warnw("unknown frequency in monthly charge, falling back to monthly cadence",
			"frequency", frequency,
			"fallback_annual_visits", fallbackAnnualVisits,
		)
		visits = fallbackAnnualVisits
	}

	raw := decimal.NewFromInt(perVisitCents).
		Mul(decimal.NewFromInt(visits)).
		DivRound(decimal.NewFromInt(12), 0)

	return types.RoundToNearest50(raw.IntPart())
}

func (s *billingService) LineItemDescription(frequency types.Frequency, dogCount int, perVisitCents int64) string {
	noun := "Dogs"
	if dogCount == 1 {
		noun = "Dog"
	}
	return fmt.Sprintf("%s - %d %s (%s/visit)",
		frequency.Label(), dogCount, noun, types.FormatCents(perVisitCents))
}
