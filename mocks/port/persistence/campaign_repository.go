package persistence

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/adsmarket/ledger-engine/internal/domain/entity"
	"github.com/adsmarket/ledger-engine/internal/domain/port/persistence"
)

// MockCampaignRepository is a testify mock for the CampaignRepository port
type MockCampaignRepository struct {
	mock.Mock
}

func (m *MockCampaignRepository) Create(ctx context.Context, campaign *entity.Campaign) error {
	args := m.Called(ctx, campaign)
	return args.Error(0)
}

func (m *MockCampaignRepository) GetByID(ctx context.Context, id uint64) (*entity.Campaign, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Campaign), args.Error(1)
}

func (m *MockCampaignRepository) ListByAdvertiser(ctx context.Context, advertiserID uint64) ([]*entity.Campaign, error) {
	args := m.Called(ctx, advertiserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Campaign), args.Error(1)
}

func (m *MockCampaignRepository) TransitionStatus(ctx context.Context, id uint64, from, to entity.CampaignStatus, startDate *time.Time, budgetCharged bool) error {
	args := m.Called(ctx, id, from, to, startDate, budgetCharged)
	return args.Error(0)
}

func (m *MockCampaignRepository) RecordClick(ctx context.Context, id uint64, now time.Time) (*persistence.ClickResult, error) {
	args := m.Called(ctx, id, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*persistence.ClickResult), args.Error(1)
}
