package persistence

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/adsmarket/ledger-engine/internal/domain/entity"
	"github.com/adsmarket/ledger-engine/internal/domain/port/persistence"
)

// MockLedgerRepository is a testify mock for the LedgerRepository port
type MockLedgerRepository struct {
	mock.Mock
}

func (m *MockLedgerRepository) Create(ctx context.Context, entry *entity.LedgerEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockLedgerRepository) UpdateStatus(ctx context.Context, id uint64, from, to entity.EntryStatus) error {
	args := m.Called(ctx, id, from, to)
	return args.Error(0)
}

func (m *MockLedgerRepository) GetByID(ctx context.Context, id uint64) (*entity.LedgerEntry, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.LedgerEntry), args.Error(1)
}

func (m *MockLedgerRepository) GetByExternalID(ctx context.Context, externalID string) (*entity.LedgerEntry, error) {
	args := m.Called(ctx, externalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.LedgerEntry), args.Error(1)
}

func (m *MockLedgerRepository) ExistsByExternalID(ctx context.Context, externalID string) (bool, error) {
	args := m.Called(ctx, externalID)
	return args.Bool(0), args.Error(1)
}

func (m *MockLedgerRepository) Find(ctx context.Context, criteria persistence.LedgerCriteria) ([]*entity.LedgerEntry, error) {
	args := m.Called(ctx, criteria)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.LedgerEntry), args.Error(1)
}

func (m *MockLedgerRepository) SumAmounts(ctx context.Context, criteria persistence.LedgerCriteria) (decimal.Decimal, error) {
	args := m.Called(ctx, criteria)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockLedgerRepository) Statistics(ctx context.Context, from, to *time.Time) ([]persistence.LedgerStatistics, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]persistence.LedgerStatistics), args.Error(1)
}
