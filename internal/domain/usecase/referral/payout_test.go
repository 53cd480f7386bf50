package referral

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

func TestService_RequestPayout(t *testing.T) {
	ctx := context.Background()

	headroom := func(m *serviceMocks, earned, held string) {
		m.ledger.On("SumAmounts", mock.Anything, mock.Anything).
			Return(decimal.RequireFromString(earned), nil)
		m.payouts.On("SumAmountsByStatuses", mock.Anything, uint64(5),
			[]entity.PayoutStatus{entity.PayoutPending, entity.PayoutCompleted}).
			Return(decimal.RequireFromString(held), nil)
	}

	t.Run("Within headroom", func(t *testing.T) {
		svc, m := newTestService()
		headroom(m, "100", "30")
		m.payouts.On("Create", mock.Anything, mock.Anything).Return(nil)
		m.events.On("Create", mock.Anything, mock.Anything).Return(nil)

		payout, err := svc.RequestPayout(ctx, 5, decimal.NewFromInt(70), entity.MethodBankTransfer, "IBAN123")

		require.NoError(t, err)
		assert.Equal(t, entity.PayoutPending, payout.Status)
		assert.Equal(t, "70.00", entity.FormatMoney(payout.Amount))
		m.payouts.AssertNumberOfCalls(t, "Create", 1)
	})

	t.Run("Pending payouts count against headroom", func(t *testing.T) {
		svc, m := newTestService()
		headroom(m, "100", "30")

		_, err := svc.RequestPayout(ctx, 5, decimal.NewFromInt(71), entity.MethodBankTransfer, "")

		assert.ErrorIs(t, err, errs.ErrInsufficientBalance)
		m.payouts.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		m.uow.AssertCalled(t, "Rollback", mock.Anything)
	})

	t.Run("Unknown payment method rejected before any read", func(t *testing.T) {
		svc, m := newTestService()

		_, err := svc.RequestPayout(ctx, 5, decimal.NewFromInt(10), entity.PaymentMethod("cash"), "")

		assert.ErrorIs(t, err, errs.ErrInvalidAmount)
		m.uow.AssertNotCalled(t, "Begin", mock.Anything)
	})
}

func TestService_ResolvePayout(t *testing.T) {
	ctx := context.Background()

	pendingPayout := func() *entity.Payout {
		return &entity.Payout{
			ID:     3,
			UserID: 5,
			Amount: decimal.NewFromInt(70),
			Status: entity.PayoutPending,
		}
	}

	t.Run("Approve completes the payout", func(t *testing.T) {
		svc, m := newTestService()
		m.payouts.On("GetByID", mock.Anything, uint64(3)).Return(pendingPayout(), nil)
		m.payouts.On("UpdateStatus", mock.Anything, uint64(3), entity.PayoutPending, entity.PayoutCompleted).
			Return(nil)
		m.events.On("Create", mock.Anything, mock.Anything).Return(nil)

		payout, err := svc.ResolvePayout(ctx, 3, true)

		require.NoError(t, err)
		assert.Equal(t, entity.PayoutCompleted, payout.Status)
	})

	t.Run("Reject cancels the payout and releases headroom", func(t *testing.T) {
		svc, m := newTestService()
		m.payouts.On("GetByID", mock.Anything, uint64(3)).Return(pendingPayout(), nil)
		m.payouts.On("UpdateStatus", mock.Anything, uint64(3), entity.PayoutPending, entity.PayoutCancelled).
			Return(nil)
		m.events.On("Create", mock.Anything, mock.Anything).Return(nil)

		payout, err := svc.ResolvePayout(ctx, 3, false)

		require.NoError(t, err)
		assert.Equal(t, entity.PayoutCancelled, payout.Status)
	})

	t.Run("Terminal payout cannot be resolved again", func(t *testing.T) {
		svc, m := newTestService()
		completed := &entity.Payout{ID: 3, UserID: 5, Status: entity.PayoutCompleted}
		m.payouts.On("GetByID", mock.Anything, uint64(3)).Return(completed, nil)

		_, err := svc.ResolvePayout(ctx, 3, true)

		assert.ErrorIs(t, err, errs.ErrInvalidTransition)
		m.payouts.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}
