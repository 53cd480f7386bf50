package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Settings is the singleton configuration record holding commission
// rates and withdrawal bounds. Read-only to the engine at operation time.
type Settings struct {
	ID                  uint64
	ReferralCommission  decimal.Decimal // fraction in [0, 1]
	PlatformCommission  decimal.Decimal // fraction in [0, 1]
	MinWithdrawalAmount decimal.Decimal
	MaxWithdrawalAmount decimal.Decimal
	MaintenanceMode     bool
	RegistrationEnabled bool
	UpdatedAt           time.Time
}

// DefaultSettings returns the values the settings row is seeded with
func DefaultSettings() *Settings {
	return &Settings{
		ID:                  1,
		ReferralCommission:  decimal.NewFromFloat(0.05),
		PlatformCommission:  decimal.NewFromFloat(0.10),
		MinWithdrawalAmount: decimal.NewFromInt(10),
		MaxWithdrawalAmount: decimal.NewFromInt(100000),
		RegistrationEnabled: true,
	}
}

// WithdrawalInBounds checks an amount against the configured limits
func (s *Settings) WithdrawalInBounds(amount decimal.Decimal) bool {
	return amount.GreaterThanOrEqual(s.MinWithdrawalAmount) &&
		amount.LessThanOrEqual(s.MaxWithdrawalAmount)
}

// ReferralCommissionFor computes the rounded commission for a triggering amount
func (s *Settings) ReferralCommissionFor(triggeringAmount decimal.Decimal) decimal.Decimal {
	return RoundMoney(triggeringAmount.Mul(s.ReferralCommission))
}

// PlatformFeeFor computes the rounded platform fee for a deal amount
func (s *Settings) PlatformFeeFor(amount decimal.Decimal) decimal.Decimal {
	return RoundMoney(amount.Mul(s.PlatformCommission))
}
