package persistence

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/adsmarket/ledger-engine/internal/domain/port/persistence"
)

// MockUnitOfWork is a testify mock for the UnitOfWork port
type MockUnitOfWork struct {
	mock.Mock
}

// NewMockUnitOfWork creates a unit of work mock whose Begin returns the
// given context unchanged and whose Commit and Rollback succeed. Repo
// getters still need explicit expectations.
func NewMockUnitOfWork() *MockUnitOfWork {
	m := &MockUnitOfWork{}
	m.On("Begin", mock.Anything).Return(context.Background(), nil).Maybe()
	m.On("Commit", mock.Anything).Return(nil).Maybe()
	m.On("Rollback", mock.Anything).Return(nil).Maybe()
	return m
}

func (m *MockUnitOfWork) Begin(ctx context.Context) (context.Context, error) {
	args := m.Called(ctx)
	return args.Get(0).(context.Context), args.Error(1)
}

func (m *MockUnitOfWork) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUnitOfWork) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUnitOfWork) Users(ctx context.Context) persistence.UserRepository {
	args := m.Called(ctx)
	return args.Get(0).(persistence.UserRepository)
}

func (m *MockUnitOfWork) Ledger(ctx context.Context) persistence.LedgerRepository {
	args := m.Called(ctx)
	return args.Get(0).(persistence.LedgerRepository)
}

func (m *MockUnitOfWork) Payouts(ctx context.Context) persistence.PayoutRepository {
	args := m.Called(ctx)
	return args.Get(0).(persistence.PayoutRepository)
}

func (m *MockUnitOfWork) Campaigns(ctx context.Context) persistence.CampaignRepository {
	args := m.Called(ctx)
	return args.Get(0).(persistence.CampaignRepository)
}

func (m *MockUnitOfWork) Settings(ctx context.Context) persistence.SettingsRepository {
	args := m.Called(ctx)
	return args.Get(0).(persistence.SettingsRepository)
}

func (m *MockUnitOfWork) Events(ctx context.Context) persistence.EventRepository {
	args := m.Called(ctx)
	return args.Get(0).(persistence.EventRepository)
}
