package entity

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	errs "github.com/adsmarket/ledger-engine/internal/domain/error"
)

func TestParseAmount(t *testing.T) {
	t.Run("Valid amounts", func(t *testing.T) {
		testCases := []struct {
			input    string
			expected string
		}{
			{"100.00", "100.00"},
			{"0.01", "0.01"},
			{"1", "1.00"},
			{"1.5", "1.50"},
			{"1234567.89", "1234567.89"},
			{"-25.40", "-25.40"},
			{"0", "0.00"},
		}

		for _, tc := range testCases {
			t.Run(tc.input, func(t *testing.T) {
				d, err := ParseAmount(tc.input)
				assert.NoError(t, err)
				assert.Equal(t, tc.expected, FormatMoney(d))
			})
		}
	})

	t.Run("Invalid amounts", func(t *testing.T) {
		testCases := []struct {
			input       string
			description string
		}{
			{"", "Empty string"},
			{"abc", "Non-numeric"},
			{"1.234", "Too many decimal places"},
			{"1,000.00", "Comma as thousands separator"},
			{"$100", "Currency symbol"},
		}

		for _, tc := range testCases {
			t.Run(tc.description, func(t *testing.T) {
				_, err := ParseAmount(tc.input)
				assert.Error(t, err)
				assert.ErrorIs(t, err, errs.ErrInvalidAmount)
			})
		}
	})
}

func TestParsePositiveAmount(t *testing.T) {
	t.Run("Positive amount passes", func(t *testing.T) {
		d, err := ParsePositiveAmount("10.50")
		assert.NoError(t, err)
		assert.Equal(t, "10.50", FormatMoney(d))
	})

	t.Run("Zero and negative rejected", func(t *testing.T) {
		for _, input := range []string{"0", "0.00", "-1", "-0.01"} {
			t.Run(input, func(t *testing.T) {
				_, err := ParsePositiveAmount(input)
				assert.ErrorIs(t, err, errs.ErrInvalidAmount)
			})
		}
	})
}

func TestRoundMoney(t *testing.T) {
	testCases := []struct {
		input    string
		expected string
	}{
		{"1.005", "1.01"},
		{"1.004", "1.00"},
		{"2.5", "2.50"},
		{"0.125", "0.13"},
		{"-1.005", "-1.01"},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			d := decimal.RequireFromString(tc.input)
			assert.Equal(t, tc.expected, FormatMoney(RoundMoney(d)))
		})
	}
}
