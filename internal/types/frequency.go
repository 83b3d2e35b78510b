package types

import (
	"strings"

	"github.com/samber/lo"
	ierr "github.com/scoopworks/scoopworks/internal/errors"
)

// Frequency is the recurrence cadence of a service visit. Frequencies
// arrive as loosely formatted strings from several call sites (signup
// forms, the quote widget, imports), so all external input goes through
// ParseFrequency before touching pricing or billing code.
type Frequency string

const (
	FrequencyWeekly          Frequency = "WEEKLY"
	FrequencyTwiceWeekly     Frequency = "TWICE_WEEKLY"
	FrequencyThreePerWeek    Frequency = "THREE_PER_WEEK"
	FrequencyFourPerWeek     Frequency = "FOUR_PER_WEEK"
	FrequencyFivePerWeek     Frequency = "FIVE_PER_WEEK"
	FrequencySixPerWeek      Frequency = "SIX_PER_WEEK"
	FrequencySevenPerWeek    Frequency = "SEVEN_PER_WEEK"
	FrequencyBiweekly        Frequency = "BIWEEKLY"
	FrequencyEveryThreeWeeks Frequency = "EVERY_THREE_WEEKS"
	FrequencyEveryFourWeeks  Frequency = "EVERY_FOUR_WEEKS"
	FrequencyTwiceMonthly    Frequency = "TWICE_MONTHLY"
	FrequencyMonthly         Frequency = "MONTHLY"
	FrequencyOneTime         Frequency = "ONE_TIME"
)

// annualVisits maps each frequency to the number of visits in a year.
// These constants are the basis for every monthly charge the system bills,
// so any edit here is a breaking billing change: version it, never adjust
// silently.
var annualVisits = map[Frequency]int64{
	FrequencyWeekly:          52,
	FrequencyTwiceWeekly:     104,
	FrequencyThreePerWeek:    156,
	FrequencyFourPerWeek:     208,
	FrequencyFivePerWeek:     260,
	FrequencySixPerWeek:      312,
	FrequencySevenPerWeek:    365,
	FrequencyBiweekly:        26,
	FrequencyEveryThreeWeeks: 17,
	FrequencyEveryFourWeeks:  13,
	FrequencyTwiceMonthly:    24,
	FrequencyMonthly:         12,
	FrequencyOneTime:         1,
}

// frequencyAliases normalizes the synonyms seen in the wild to canonical
// values. Keys are lowercased with separators collapsed to underscores.
var frequencyAliases = map[string]Frequency{
	"weekly":            FrequencyWeekly,
	"once_a_week":       FrequencyWeekly,
	"1x_week":           FrequencyWeekly,
	"twice_weekly":      FrequencyTwiceWeekly,
	"twice_a_week":      FrequencyTwiceWeekly,
	"2x_week":           FrequencyTwiceWeekly,
	"3x_week":           FrequencyThreePerWeek,
	"4x_week":           FrequencyFourPerWeek,
	"5x_week":           FrequencyFivePerWeek,
	"6x_week":           FrequencySixPerWeek,
	"7x_week":           FrequencySevenPerWeek,
	"daily":             FrequencySevenPerWeek,
	"biweekly":          FrequencyBiweekly,
	"bi_weekly":         FrequencyBiweekly,
	"every_other_week":  FrequencyBiweekly,
	"every_two_weeks":   FrequencyBiweekly,
	"every_three_weeks": FrequencyEveryThreeWeeks,
	"every_3_weeks":     FrequencyEveryThreeWeeks,
	"every_four_weeks":  FrequencyEveryFourWeeks,
	"every_4_weeks":     FrequencyEveryFourWeeks,
	"twice_monthly":     FrequencyTwiceMonthly,
	"twice_a_month":     FrequencyTwiceMonthly,
	"monthly":           FrequencyMonthly,
	"once_a_month":      FrequencyMonthly,
	"one_time":          FrequencyOneTime,
	"onetime":           FrequencyOneTime,
	"once":              FrequencyOneTime,
}

// ParseFrequency normalizes a loosely formatted frequency string to its
// canonical Frequency. Unrecognized values are rejected rather than
// defaulted, so a typo in a request cannot silently bill as monthly.
func ParseFrequency(s string) (Frequency, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	key = strings.NewReplacer("-", "_", " ", "_", "/", "_").Replace(key)

	if f, ok := frequencyAliases[key]; ok {
		return f, nil
	}
	if f := Frequency(strings.ToUpper(key)); f.IsValid() {
		return f, nil
	}

	return "", ierr.NewError("unrecognized frequency").
		WithHintf("Frequency %q is not recognized", s).
		WithReportableDetails(map[string]any{
			"frequency": s,
		}).
		Mark(ierr.ErrValidation)
}

func (f Frequency) String() string {
	return string(f)
}

func (f Frequency) IsValid() bool {
	_, ok := annualVisits[f]
	return ok
}

func (f Frequency) Validate() error {
	if !f.IsValid() {
		return ierr.NewError("invalid frequency").
			WithHint("Please provide a valid frequency").
			WithReportableDetails(map[string]any{
				"allowed": lo.Keys(annualVisits),
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// AnnualVisits returns the number of visits per year for the frequency and
// whether the frequency was recognized. Callers billing a persisted row may
// fall back to monthly (12) for unknown legacy values, but must log the
// decision.
func (f Frequency) AnnualVisits() (int64, bool) {
	n, ok := annualVisits[f]
	return n, ok
}

// PricingBase returns the frequency whose rule bands price this cadence and
// the multiplier applied after resolution. TWICE_WEEKLY has no rule bands of
// its own: it resolves through WEEKLY rules and doubles the result. Keeping
// this a post-step, not a separate band, matches how every other pricing
// surface quotes it.
func (f Frequency) PricingBase() (Frequency, int64) {
	if f == FrequencyTwiceWeekly {
		return FrequencyWeekly, 2
	}
	return f, 1
}

// Label returns the human form used in invoice line item descriptions
func (f Frequency) Label() string {
	switch f {
	case FrequencyWeekly:
		return "Weekly"
	case FrequencyTwiceWeekly:
		return "Twice Weekly"
	case FrequencyThreePerWeek:
		return "3x per Week"
	case FrequencyFourPerWeek:
		return "4x per Week"
	case FrequencyFivePerWeek:
		return "5x per Week"
	case FrequencySixPerWeek:
		return "6x per Week"
	case FrequencySevenPerWeek:
		return "7x per Week"
	case FrequencyBiweekly:
		return "Every Other Week"
	case FrequencyEveryThreeWeeks:
		return "Every Three Weeks"
	case FrequencyEveryFourWeeks:
		return "Every Four Weeks"
	case FrequencyTwiceMonthly:
		return "Twice Monthly"
	case FrequencyMonthly:
		return "Monthly"
	case FrequencyOneTime:
		return "One Time"
	default:
		return string(f)
	}
}
