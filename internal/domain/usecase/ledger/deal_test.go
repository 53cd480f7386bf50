package ledger

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/adsmarket/ledger-engine/internal/domain/entity"
	errs "github.com/adsmarket/ledger-engine/internal/domain/error"
)

func TestService_SettleDeal(t *testing.T) {
	ctx := context.Background()

	t.Run("Splits the amount between seller and platform", func(t *testing.T) {
		svc, m := newTestService()
		m.ledger.On("ExistsByExternalID", mock.Anything, "deal-1").Return(false, nil)
		m.settings.On("Get", mock.Anything).Return(entity.DefaultSettings(), nil)
		m.users.On("AdjustBalance", mock.Anything, uint64(1), decimalEq("-200")).
			Return(decimal.NewFromInt(300), nil)
		m.users.On("AdjustBalance", mock.Anything, uint64(2), decimalEq("180")).
			Return(decimal.NewFromInt(180), nil)
		m.users.On("AdjustBalance", mock.Anything, testSystemActorID, decimalEq("20")).
			Return(decimal.NewFromInt(20), nil)
		m.ledger.On("Create", mock.Anything, mock.Anything).Return(nil)

		result, err := svc.SettleDeal(ctx, DealParams{
			BuyerID:    1,
			SellerID:   2,
			Amount:     decimal.NewFromInt(200),
			ExternalID: "deal-1",
		})

		require.NoError(t, err)
		assert.Equal(t, "20.00", entity.FormatMoney(result.PlatformFee))
		assert.Equal(t, "-200.00", entity.FormatMoney(result.BuyerEntry.Amount))
		assert.Equal(t, "180.00", entity.FormatMoney(result.SellerEntry.Amount))
		assert.Equal(t, entity.TypeCommission, result.FeeEntry.Type)
		assert.Equal(t, testSystemActorID, result.FeeEntry.UserID)
		assert.Equal(t, entity.StatusCompleted, result.BuyerEntry.Status)
		m.ledger.AssertNumberOfCalls(t, "Create", 3)
		m.users.AssertExpectations(t)
	})

	t.Run("Retried settlement is rejected without balance effect", func(t *testing.T) {
		svc, m := newTestService()
		m.ledger.On("ExistsByExternalID", mock.Anything, "deal-1").Return(true, nil)

		_, err := svc.SettleDeal(ctx, DealParams{
			BuyerID:    1,
			SellerID:   2,
			Amount:     decimal.NewFromInt(200),
			ExternalID: "deal-1",
		})

		assert.ErrorIs(t, err, errs.ErrAlreadyProcessed)
		m.users.AssertNotCalled(t, "AdjustBalance", mock.Anything, mock.Anything, mock.Anything)
		m.ledger.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Buyer and seller must differ", func(t *testing.T) {
		svc, m := newTestService()

		_, err := svc.SettleDeal(ctx, DealParams{
			BuyerID:    1,
			SellerID:   1,
			Amount:     decimal.NewFromInt(200),
			ExternalID: "deal-1",
		})

		assert.ErrorIs(t, err, errs.ErrForbidden)
		m.uow.AssertNotCalled(t, "Begin", mock.Anything)
	})

	t.Run("External id is required", func(t *testing.T) {
		svc, _ := newTestService()

		_, err := svc.SettleDeal(ctx, DealParams{
			BuyerID:  1,
			SellerID: 2,
			Amount:   decimal.NewFromInt(200),
		})

		assert.ErrorIs(t, err, errs.ErrInvalidAmount)
	})

	t.Run("Buyer with insufficient balance aborts the settlement", func(t *testing.T) {
		svc, m := newTestService()
		m.ledger.On("ExistsByExternalID", mock.Anything, "deal-2").Return(false, nil)
		m.settings.On("Get", mock.Anything).Return(entity.DefaultSettings(), nil)
		m.users.On("AdjustBalance", mock.Anything, uint64(1), decimalEq("-200")).
			Return(decimal.Zero, errs.NewInsufficientBalanceError(1, decimal.NewFromInt(200), decimal.NewFromInt(10)))

		_, err := svc.SettleDeal(ctx, DealParams{
			BuyerID:    1,
			SellerID:   2,
			Amount:     decimal.NewFromInt(200),
			ExternalID: "deal-2",
		})

		assert.ErrorIs(t, err, errs.ErrInsufficientBalance)
		m.ledger.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		m.uow.AssertCalled(t, "Rollback", mock.Anything)
	})
}
