package entity

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errs "github.com/adsmarket/ledger-engine/internal/domain/error"
	coremocks "github.com/adsmarket/ledger-engine/mocks/port/core"
)

func TestNewPayout(t *testing.T) {
	fixedTime := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	mockTime := coremocks.NewMockTimeProvider(fixedTime)

	t.Run("Valid payout", func(t *testing.T) {
		payout, err := NewPayout(9, decimal.NewFromFloat(49.995), MethodBankTransfer, "IBAN123", mockTime)

		require.NoError(t, err)
		assert.Equal(t, uint64(9), payout.UserID)
		assert.Equal(t, PayoutPending, payout.Status)
		assert.Equal(t, "50.00", FormatMoney(payout.Amount))
		assert.Equal(t, fixedTime, payout.CreatedAt)
	})

	t.Run("Invalid inputs", func(t *testing.T) {
		_, err := NewPayout(0, decimal.NewFromInt(50), MethodBankTransfer, "", mockTime)
		assert.ErrorIs(t, err, errs.ErrInvalidUserID)

		_, err = NewPayout(9, decimal.Zero, MethodBankTransfer, "", mockTime)
		assert.ErrorIs(t, err, errs.ErrInvalidAmount)

		_, err = NewPayout(9, decimal.NewFromInt(-5), MethodBankTransfer, "", mockTime)
		assert.ErrorIs(t, err, errs.ErrInvalidAmount)

		_, err = NewPayout(9, decimal.NewFromInt(50), PaymentMethod("carrier_pigeon"), "", mockTime)
		assert.ErrorIs(t, err, errs.ErrInvalidAmount)
	})
}

func TestPayout_Lifecycle(t *testing.T) {
	testCases := []struct {
		status           PayoutStatus
		terminal         bool
		consumesHeadroom bool
	}{
		{PayoutPending, false, true},
		{PayoutCompleted, true, true},
		{PayoutFailed, true, false},
		{PayoutCancelled, true, false},
	}

	for _, tc := range testCases {
		t.Run(string(tc.status), func(t *testing.T) {
			payout := &Payout{Status: tc.status}
			assert.Equal(t, tc.terminal, payout.IsTerminal())
			assert.Equal(t, tc.consumesHeadroom, payout.ConsumesHeadroom())
		})
	}
}
