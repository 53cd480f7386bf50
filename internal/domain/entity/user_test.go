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

func TestNewUser(t *testing.T) {
	fixedTime := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	mockTime := coremocks.NewMockTimeProvider(fixedTime)

	t.Run("Valid user", func(t *testing.T) {
		user, err := NewUser(42, decimal.NewFromInt(100), mockTime)

		require.NoError(t, err)
		assert.Equal(t, uint64(42), user.ID)
		assert.Equal(t, RoleUser, user.Role)
		assert.Equal(t, "100.00", FormatMoney(user.Balance))
	})

	t.Run("Zero id rejected", func(t *testing.T) {
		_, err := NewUser(0, decimal.Zero, mockTime)
		assert.ErrorIs(t, err, errs.ErrInvalidUserID)
	})

	t.Run("Negative balance rejected", func(t *testing.T) {
		_, err := NewUser(42, decimal.NewFromInt(-1), mockTime)
		assert.ErrorIs(t, err, errs.ErrInvalidAmount)
	})
}

func TestUser_CanDeduct(t *testing.T) {
	user := &User{Balance: decimal.NewFromInt(50)}

	assert.True(t, user.CanDeduct(decimal.NewFromInt(50)))
	assert.True(t, user.CanDeduct(decimal.NewFromInt(10)))
	assert.False(t, user.CanDeduct(decimal.NewFromFloat(50.01)))
}

func TestUser_HasReferrer(t *testing.T) {
	referrerID := uint64(5)
	zeroID := uint64(0)

	assert.True(t, (&User{ReferredByID: &referrerID}).HasReferrer())
	assert.False(t, (&User{}).HasReferrer())
	assert.False(t, (&User{ReferredByID: &zeroID}).HasReferrer())
}
