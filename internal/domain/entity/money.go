package entity

import (
	"fmt"

	"github.com/shopspring/decimal"

	errs "github.com/adsmarket/ledger-engine/internal/domain/error"
)

// MoneyDecimalPlaces is the scale every stored monetary amount is rounded to.
const MoneyDecimalPlaces = 2

// ParseAmount parses a string into a monetary amount with at most two
// decimal places. Returns ErrInvalidAmount for malformed input.
func ParseAmount(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %s", errs.ErrInvalidAmount, err.Error())
	}
	if d.Exponent() < -MoneyDecimalPlaces {
		return decimal.Zero, fmt.Errorf("%w: maximum %d decimal places allowed", errs.ErrInvalidAmount, MoneyDecimalPlaces)
	}
	return d, nil
}

// ParsePositiveAmount parses a string amount and requires it to be strictly positive.
func ParsePositiveAmount(s string) (decimal.Decimal, error) {
	d, err := ParseAmount(s)
	if err != nil {
		return decimal.Zero, err
	}
	if !d.IsPositive() {
		return decimal.Zero, fmt.Errorf("%w: must be positive, got %s", errs.ErrInvalidAmount, d.String())
	}
	return d, nil
}

// RoundMoney rounds half-up to the monetary scale. Commission computations
// produce fractions below a cent; stored amounts never do.
func RoundMoney(d decimal.Decimal) decimal.Decimal {
	return d.Round(MoneyDecimalPlaces)
}

// FormatMoney renders an amount with exactly two decimal places.
func FormatMoney(d decimal.Decimal) string {
	return d.StringFixed(MoneyDecimalPlaces)
}
