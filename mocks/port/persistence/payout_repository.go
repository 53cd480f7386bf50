package persistence

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/adsmarket/ledger-engine/internal/domain/entity"
)

// MockPayoutRepository is a testify mock for the PayoutRepository port
type MockPayoutRepository struct {
	mock.Mock
}

func (m *MockPayoutRepository) Create(ctx context.Context, payout *entity.Payout) error {
	args := m.Called(ctx, payout)
	return args.Error(0)
}

func (m *MockPayoutRepository) UpdateStatus(ctx context.Context, id uint64, from, to entity.PayoutStatus) error {
	args := m.Called(ctx, id, from, to)
	return args.Error(0)
}

func (m *MockPayoutRepository) GetByID(ctx context.Context, id uint64) (*entity.Payout, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Payout), args.Error(1)
}

func (m *MockPayoutRepository) ListByUser(ctx context.Context, userID uint64) ([]*entity.Payout, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Payout), args.Error(1)
}

func (m *MockPayoutRepository) SumAmountsByStatuses(ctx context.Context, userID uint64, statuses []entity.PayoutStatus) (decimal.Decimal, error) {
	args := m.Called(ctx, userID, statuses)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}
