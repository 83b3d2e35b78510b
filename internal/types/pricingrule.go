package types

// UnboundedDogs is the sentinel MaxDogs value marking a pricing band as
// open-ended at the top. Bands ending here charge a per-dog overage above
// the band's minimum.
const UnboundedDogs = 99

// PricingRuleFilter represents the filter options for listing pricing rules
type PricingRuleFilter struct {
	*QueryFilter

	// frequency restricts rules to a single recurrence class
	Frequency Frequency `json:"frequency,omitempty" form:"frequency"`

	// active_only excludes deactivated rule versions
	ActiveOnly bool `json:"active_only,omitempty" form:"active_only"`
}

// NewPricingRuleFilter creates a new pricing rule filter with default
// pagination
func NewPricingRuleFilter() *PricingRuleFilter {
	return &PricingRuleFilter{
		QueryFilter: NewDefaultQueryFilter(),
	}
}

func (f *PricingRuleFilter) Validate() error {
	if f.QueryFilter != nil {
		if err := f.QueryFilter.Validate(); err != nil {
			return err
		}
	}
	if f.Frequency != "" {
		if err := f.Frequency.Validate(); err != nil {
			return err
		}
	}
	return nil
}
