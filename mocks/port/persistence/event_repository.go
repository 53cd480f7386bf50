package persistence

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/adsmarket/ledger-engine/internal/domain/entity"
)

// MockEventRepository is a testify mock for the EventRepository port
type MockEventRepository struct {
	mock.Mock
}

func (m *MockEventRepository) Create(ctx context.Context, event *entity.Event) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockEventRepository) ListUnpublished(ctx context.Context, limit int) ([]*entity.Event, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Event), args.Error(1)
}

func (m *MockEventRepository) MarkPublished(ctx context.Context, id string, at time.Time) error {
	args := m.Called(ctx, id, at)
	return args.Error(0)
}
