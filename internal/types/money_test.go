package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoundToNearest50(t *testing.T) {
	tests := []struct {
		name     string
		cents    int64
		expected int64
	}{
		{"exact dollar stays", 1000, 1000},
		{"low remainder rounds down", 1024, 1000},
		{"mid remainder rounds to half dollar", 1074, 1050},
		{"high remainder rounds up", 1075, 1100},
		{"remainder below 25 rounds down", 123, 100},
		{"remainder of exactly 25 rounds to half dollar", 1025, 1050},
		{"remainder of exactly 74 rounds to half dollar", 1174, 1150},
		{"half dollar stays", 1050, 1050},
		{"zero stays", 0, 0},
		{"derived weekly monthly amount", 9967, 9950},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RoundToNearest50(tt.cents)
			assert.Equal(t, tt.expected, got)
			assert.Zero(t, got%50, "result must be a multiple of 50")
		})
	}
}

func TestFormatCents(t *testing.T) {
	assert.Equal(t, "$23.00", FormatCents(2300))
	assert.Equal(t, "$0.50", FormatCents(50))
	assert.Equal(t, "$99.67", FormatCents(9967))
	assert.Equal(t, "$0.00", FormatCents(0))
}

func TestCentsToDollars(t *testing.T) {
	assert.Equal(t, "23", CentsToDollars(2300).String())
	assert.Equal(t, "99.5", CentsToDollars(9950).String())
	assert.Equal(t, "0.01", CentsToDollars(1).String())
}
