package pricingrule

import (
	ierr "github.com/scoopworks/scoopworks/internal/errors"
	"github.com/scoopworks/scoopworks/internal/types"
)

// PricingRule is one tiered pricing band for a frequency: clients with a
// dog count inside [MinDogs, MaxDogs] pay BasePriceCents per visit. Rules
// are immutable per version; price changes deactivate the old row and
// insert a new one.
type PricingRule struct {
	ID string `db:"id" json:"id"`

	// Frequency is the recurrence class this band prices
	Frequency types.Frequency `db:"frequency" json:"frequency"`

	// MinDogs and MaxDogs are the inclusive bounds of the band. MaxDogs ==
	// types.UnboundedDogs marks the band as open-ended at the top.
	MinDogs int `db:"min_dogs" json:"min_dogs"`
	MaxDogs int `db:"max_dogs" json:"max_dogs"`

	// BasePriceCents is the per-visit price for dog counts inside the band
	BasePriceCents int64 `db:"base_price_cents" json:"base_price_cents"`

	// PerDogOverageCents is charged per dog above MinDogs when the band is
	// open-ended
	PerDogOverageCents int64 `db:"per_dog_overage_cents" json:"per_dog_overage_cents"`

	// Priority breaks ties when active bands overlap; highest wins
	Priority int `db:"priority" json:"priority"`

	// Active marks the current version of the band
	Active bool `db:"active" json:"active"`

	types.BaseModel
}

// Contains reports whether the band covers the given dog count
func (r *PricingRule) Contains(dogs int) bool {
	return dogs >= r.MinDogs && dogs <= r.MaxDogs
}

// IsOpenEnded reports whether the band has no upper bound
func (r *PricingRule) IsOpenEnded() bool {
	return r.MaxDogs >= types.UnboundedDogs
}

// PriceFor computes the per-visit price for a dog count inside the band:
// base price plus per-dog overage above the band minimum when open-ended.
func (r *PricingRule) PriceFor(dogs int) int64 {
	price := r.BasePriceCents
	if r.IsOpenEnded() && r.PerDogOverageCents > 0 {
		extra := int64(dogs - r.MinDogs)
		if extra < 0 {
			extra = 0
		}
		price += extra * r.PerDogOverageCents
	}
	return price
}

func (r *PricingRule) Validate() error {
	if err := r.Frequency.Validate(); err != nil {
		return err
	}
	if r.MinDogs < 1 {
		return ierr.NewError("invalid pricing rule").
			WithHint("min_dogs must be at least 1").
			Mark(ierr.ErrValidation)
	}
	if r.MaxDogs < r.MinDogs {
		return ierr.NewError("invalid pricing rule").
			WithHint("max_dogs must not be below min_dogs").
			Mark(ierr.ErrValidation)
	}
	if r.BasePriceCents < 0 || r.PerDogOverageCents < 0 {
		return ierr.NewError("invalid pricing rule").
			WithHint("prices must be non negative").
			Mark(ierr.ErrValidation)
	}
	return nil
}
