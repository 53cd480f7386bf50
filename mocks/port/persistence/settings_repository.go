package persistence

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/adsmarket/ledger-engine/internal/domain/entity"
)

// MockSettingsRepository is a testify mock for the SettingsRepository port
type MockSettingsRepository struct {
	mock.Mock
}

func (m *MockSettingsRepository) Get(ctx context.Context) (*entity.Settings, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Settings), args.Error(1)
}

func (m *MockSettingsRepository) Update(ctx context.Context, settings *entity.Settings) error {
	args := m.Called(ctx, settings)
	return args.Error(0)
}
