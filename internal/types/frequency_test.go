package types

import (
	"testing"

	ierr "github.com/scoopworks/scoopworks/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFrequency(t *testing.T) {
	tests := []struct {
		input    string
		expected Frequency
	}{
		{"weekly", FrequencyWeekly},
		{"WEEKLY", FrequencyWeekly},
		{"  Weekly  ", FrequencyWeekly},
		{"once a week", FrequencyWeekly},
		{"1x-week", FrequencyWeekly},
		{"twice weekly", FrequencyTwiceWeekly},
		{"2x_week", FrequencyTwiceWeekly},
		{"3x week", FrequencyThreePerWeek},
		{"daily", FrequencySevenPerWeek},
		{"bi-weekly", FrequencyBiweekly},
		{"every other week", FrequencyBiweekly},
		{"every two weeks", FrequencyBiweekly},
		{"every 3 weeks", FrequencyEveryThreeWeeks},
		{"twice a month", FrequencyTwiceMonthly},
		{"once a month", FrequencyMonthly},
		{"one-time", FrequencyOneTime},
		{"onetime", FrequencyOneTime},
		{"TWICE_WEEKLY", FrequencyTwiceWeekly},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseFrequency(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestParseFrequencyRejectsUnknown(t *testing.T) {
	for _, input := range []string{"", "fortnightly-ish", "whenever", "52"} {
		t.Run(input, func(t *testing.T) {
			_, err := ParseFrequency(input)
			require.Error(t, err)
			assert.True(t, ierr.IsValidation(err))
		})
	}
}

func TestFrequencyAnnualVisits(t *testing.T) {
	tests := []struct {
		frequency Frequency
		visits    int64
	}{
		{FrequencyWeekly, 52},
		{FrequencyTwiceWeekly, 104},
		{FrequencyThreePerWeek, 156},
		{FrequencySevenPerWeek, 365},
		{FrequencyBiweekly, 26},
		{FrequencyEveryThreeWeeks, 17},
		{FrequencyEveryFourWeeks, 13},
		{FrequencyTwiceMonthly, 24},
		{FrequencyMonthly, 12},
		{FrequencyOneTime, 1},
	}

	for _, tt := range tests {
		t.Run(tt.frequency.String(), func(t *testing.T) {
			n, ok := tt.frequency.AnnualVisits()
			require.True(t, ok)
			assert.Equal(t, tt.visits, n)
		})
	}

	_, ok := Frequency("SOMETIMES").AnnualVisits()
	assert.False(t, ok)
}

func TestFrequencyPricingBase(t *testing.T) {
	base, mult := FrequencyTwiceWeekly.PricingBase()
	assert.Equal(t, FrequencyWeekly, base)
	assert.Equal(t, int64(2), mult)

	base, mult = FrequencyBiweekly.PricingBase()
	assert.Equal(t, FrequencyBiweekly, base)
	assert.Equal(t, int64(1), mult)
}

func TestFrequencyLabel(t *testing.T) {
	assert.Equal(t, "Weekly", FrequencyWeekly.Label())
	assert.Equal(t, "Twice Weekly", FrequencyTwiceWeekly.Label())
	assert.Equal(t, "3x per Week", FrequencyThreePerWeek.Label())
	assert.Equal(t, "Every Other Week", FrequencyBiweekly.Label())
	assert.Equal(t, "One Time", FrequencyOneTime.Label())
}
