package campaign

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/adsmarket/ledger-engine/internal/domain/entity"
	errs "github.com/adsmarket/ledger-engine/internal/domain/error"
	"github.com/adsmarket/ledger-engine/internal/domain/port/persistence"
	coremocks "github.com/adsmarket/ledger-engine/mocks/port/core"
	persistencemocks "github.com/adsmarket/ledger-engine/mocks/port/persistence"
)

var testFixedTime = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

type serviceMocks struct {
	uow       *persistencemocks.MockUnitOfWork
	users     *persistencemocks.MockUserRepository
	ledger    *persistencemocks.MockLedgerRepository
	campaigns *persistencemocks.MockCampaignRepository
}

func newTestService() (*Service, *serviceMocks) {
	m := &serviceMocks{
		uow:       persistencemocks.NewMockUnitOfWork(),
		users:     &persistencemocks.MockUserRepository{},
		ledger:    &persistencemocks.MockLedgerRepository{},
		campaigns: &persistencemocks.MockCampaignRepository{},
	}
	m.uow.On("Users", mock.Anything).Return(m.users).Maybe()
	m.uow.On("Ledger", mock.Anything).Return(m.ledger).Maybe()
	m.uow.On("Campaigns", mock.Anything).Return(m.campaigns).Maybe()

	svc := NewService(m.uow, coremocks.NewMockTimeProvider(testFixedTime), coremocks.NewMockLogger())
	return svc, m
}

func decimalEq(expected string) any {
	want := decimal.RequireFromString(expected)
	return mock.MatchedBy(func(d decimal.Decimal) bool {
		return d.Equal(want)
	})
}

func draftCampaign() *entity.Campaign {
	return &entity.Campaign{
		ID:            1,
		AdvertiserID:  7,
		Budget:        decimal.NewFromInt(500),
		PricePerClick: decimal.NewFromInt(2),
		Status:        entity.CampaignDraft,
	}
}

func TestService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("Creates a draft for a known advertiser", func(t *testing.T) {
		svc, m := newTestService()
		m.users.On("GetByID", mock.Anything, uint64(7)).Return(&entity.User{ID: 7}, nil)
		m.campaigns.On("Create", mock.Anything, mock.Anything).Return(nil)

		campaign, err := svc.Create(ctx, 7, decimal.NewFromInt(500), decimal.NewFromInt(2), nil)

		require.NoError(t, err)
		assert.Equal(t, entity.CampaignDraft, campaign.Status)
		assert.False(t, campaign.BudgetCharged)
	})

	t.Run("Unknown advertiser rejected", func(t *testing.T) {
		svc, m := newTestService()
		m.users.On("GetByID", mock.Anything, uint64(7)).Return(nil, errs.ErrUserNotFound)

		_, err := svc.Create(ctx, 7, decimal.NewFromInt(500), decimal.NewFromInt(2), nil)

		assert.ErrorIs(t, err, errs.ErrUserNotFound)
		m.campaigns.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestService_Start(t *testing.T) {
	ctx := context.Background()

	t.Run("First start reserves the budget", func(t *testing.T) {
		svc, m := newTestService()
		m.campaigns.On("GetByID", mock.Anything, uint64(1)).Return(draftCampaign(), nil)
		m.users.On("AdjustBalance", mock.Anything, uint64(7), decimalEq("-500")).
			Return(decimal.NewFromInt(100), nil)
		m.ledger.On("Create", mock.Anything, mock.Anything).Return(nil)
		m.campaigns.On("TransitionStatus", mock.Anything, uint64(1),
			entity.CampaignDraft, entity.CampaignActive, mock.Anything, true).Return(nil)

		campaign, err := svc.Start(ctx, 1, 7)

		require.NoError(t, err)
		assert.Equal(t, entity.CampaignActive, campaign.Status)
		assert.True(t, campaign.BudgetCharged)
		require.NotNil(t, campaign.StartDate)
		assert.Equal(t, testFixedTime, *campaign.StartDate)
		m.users.AssertExpectations(t)
	})

	t.Run("Restart from paused is a pure status change", func(t *testing.T) {
		svc, m := newTestService()
		paused := draftCampaign()
		paused.Status = entity.CampaignPaused
		paused.BudgetCharged = true
		m.campaigns.On("GetByID", mock.Anything, uint64(1)).Return(paused, nil)
		m.campaigns.On("TransitionStatus", mock.Anything, uint64(1),
			entity.CampaignPaused, entity.CampaignActive, mock.Anything, true).Return(nil)

		campaign, err := svc.Start(ctx, 1, 7)

		require.NoError(t, err)
		assert.Equal(t, entity.CampaignActive, campaign.Status)
		m.users.AssertNotCalled(t, "AdjustBalance", mock.Anything, mock.Anything, mock.Anything)
		m.ledger.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Only the owner can start", func(t *testing.T) {
		svc, m := newTestService()
		m.campaigns.On("GetByID", mock.Anything, uint64(1)).Return(draftCampaign(), nil)

		_, err := svc.Start(ctx, 1, 99)

		assert.ErrorIs(t, err, errs.ErrForbidden)
		m.users.AssertNotCalled(t, "AdjustBalance", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Advertiser without funds cannot start", func(t *testing.T) {
		svc, m := newTestService()
		m.campaigns.On("GetByID", mock.Anything, uint64(1)).Return(draftCampaign(), nil)
		m.users.On("AdjustBalance", mock.Anything, uint64(7), decimalEq("-500")).
			Return(decimal.Zero, errs.NewInsufficientBalanceError(7, decimal.NewFromInt(500), decimal.NewFromInt(10)))

		_, err := svc.Start(ctx, 1, 7)

		assert.ErrorIs(t, err, errs.ErrInsufficientBalance)
		m.campaigns.AssertNotCalled(t, "TransitionStatus",
			mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		m.uow.AssertCalled(t, "Rollback", mock.Anything)
	})

	t.Run("Completed campaign cannot restart", func(t *testing.T) {
		svc, m := newTestService()
		done := draftCampaign()
		done.Status = entity.CampaignCompleted
		m.campaigns.On("GetByID", mock.Anything, uint64(1)).Return(done, nil)

		_, err := svc.Start(ctx, 1, 7)

		assert.ErrorIs(t, err, errs.ErrInvalidTransition)
	})
}

func TestService_Pause(t *testing.T) {
	ctx := context.Background()

	t.Run("Pausing keeps the budget reserved", func(t *testing.T) {
		svc, m := newTestService()
		active := draftCampaign()
		active.Status = entity.CampaignActive
		active.BudgetCharged = true
		m.campaigns.On("GetByID", mock.Anything, uint64(1)).Return(active, nil)
		m.campaigns.On("TransitionStatus", mock.Anything, uint64(1),
			entity.CampaignActive, entity.CampaignPaused, (*time.Time)(nil), true).Return(nil)

		campaign, err := svc.Pause(ctx, 1, 7)

		require.NoError(t, err)
		assert.Equal(t, entity.CampaignPaused, campaign.Status)
		m.users.AssertNotCalled(t, "AdjustBalance", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Draft cannot be paused", func(t *testing.T) {
		svc, m := newTestService()
		m.campaigns.On("GetByID", mock.Anything, uint64(1)).Return(draftCampaign(), nil)

		_, err := svc.Pause(ctx, 1, 7)

		assert.ErrorIs(t, err, errs.ErrInvalidTransition)
	})
}

func TestService_Cancel(t *testing.T) {
	ctx := context.Background()

	t.Run("Refunds the unspent budget", func(t *testing.T) {
		svc, m := newTestService()
		active := draftCampaign()
		active.Status = entity.CampaignActive
		active.BudgetCharged = true
		active.CurrentClicks = 100 // 200 spent of 500
		m.campaigns.On("GetByID", mock.Anything, uint64(1)).Return(active, nil)
		m.campaigns.On("TransitionStatus", mock.Anything, uint64(1),
			entity.CampaignActive, entity.CampaignCancelled, (*time.Time)(nil), true).Return(nil)
		m.users.On("AdjustBalance", mock.Anything, uint64(7), decimalEq("300")).
			Return(decimal.NewFromInt(300), nil)
		m.ledger.On("Create", mock.Anything, mock.Anything).Return(nil)

		campaign, err := svc.Cancel(ctx, 1, 7)

		require.NoError(t, err)
		assert.Equal(t, entity.CampaignCancelled, campaign.Status)
		m.users.AssertExpectations(t)
	})

	t.Run("Cancelling a draft moves no money", func(t *testing.T) {
		svc, m := newTestService()
		m.campaigns.On("GetByID", mock.Anything, uint64(1)).Return(draftCampaign(), nil)
		m.campaigns.On("TransitionStatus", mock.Anything, uint64(1),
			entity.CampaignDraft, entity.CampaignCancelled, (*time.Time)(nil), false).Return(nil)

		campaign, err := svc.Cancel(ctx, 1, 7)

		require.NoError(t, err)
		assert.Equal(t, entity.CampaignCancelled, campaign.Status)
		m.users.AssertNotCalled(t, "AdjustBalance", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Fully spent budget yields no refund", func(t *testing.T) {
		svc, m := newTestService()
		active := draftCampaign()
		active.Status = entity.CampaignActive
		active.BudgetCharged = true
		active.CurrentClicks = 250
		m.campaigns.On("GetByID", mock.Anything, uint64(1)).Return(active, nil)
		m.campaigns.On("TransitionStatus", mock.Anything, uint64(1),
			entity.CampaignActive, entity.CampaignCancelled, (*time.Time)(nil), true).Return(nil)

		_, err := svc.Cancel(ctx, 1, 7)

		require.NoError(t, err)
		m.users.AssertNotCalled(t, "AdjustBalance", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestService_RecordClick(t *testing.T) {
	ctx := context.Background()

	t.Run("Accepted click below the cap", func(t *testing.T) {
		svc, m := newTestService()
		m.campaigns.On("RecordClick", mock.Anything, uint64(1), testFixedTime).
			Return(&persistence.ClickResult{CurrentClicks: 5, Completed: false}, nil)

		result, err := svc.RecordClick(ctx, 1)

		require.NoError(t, err)
		assert.Equal(t, int64(5), result.CurrentClicks)
		assert.False(t, result.Completed)
	})

	t.Run("Click that reaches the cap completes the campaign", func(t *testing.T) {
		svc, m := newTestService()
		m.campaigns.On("RecordClick", mock.Anything, uint64(1), testFixedTime).
			Return(&persistence.ClickResult{CurrentClicks: 100, Completed: true}, nil)

		result, err := svc.RecordClick(ctx, 1)

		require.NoError(t, err)
		assert.True(t, result.Completed)
	})

	t.Run("Inactive campaign rejects clicks", func(t *testing.T) {
		svc, m := newTestService()
		m.campaigns.On("RecordClick", mock.Anything, uint64(1), testFixedTime).
			Return(nil, errs.ErrCampaignNotActive)

		_, err := svc.RecordClick(ctx, 1)

		assert.ErrorIs(t, err, errs.ErrCampaignNotActive)
	})

	t.Run("Exhausted cap rejects further clicks", func(t *testing.T) {
		svc, m := newTestService()
		m.campaigns.On("RecordClick", mock.Anything, uint64(1), testFixedTime).
			Return(nil, errs.ErrClickLimitReached)

		_, err := svc.RecordClick(ctx, 1)

		assert.ErrorIs(t, err, errs.ErrClickLimitReached)
	})
}

// clickStore is a stateful stand-in for the campaign repository whose
// RecordClick mirrors the atomic conditional increment.
type clickStore struct {
	mu        sync.Mutex
	status    entity.CampaignStatus
	maxClicks *int64
	clicks    int64
}

func (s *clickStore) Create(ctx context.Context, campaign *entity.Campaign) error { return nil }

func (s *clickStore) GetByID(ctx context.Context, id uint64) (*entity.Campaign, error) {
	return nil, errs.ErrCampaignNotFound
}

func (s *clickStore) ListByAdvertiser(ctx context.Context, advertiserID uint64) ([]*entity.Campaign, error) {
	return nil, nil
}

func (s *clickStore) TransitionStatus(ctx context.Context, id uint64, from, to entity.CampaignStatus, startDate *time.Time, budgetCharged bool) error {
	return nil
}

func (s *clickStore) RecordClick(ctx context.Context, id uint64, now time.Time) (*persistence.ClickResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.status != entity.CampaignActive {
		if s.maxClicks != nil && s.clicks >= *s.maxClicks {
			return nil, errs.ErrClickLimitReached
		}
		return nil, errs.ErrCampaignNotActive
	}
	s.clicks++
	completed := s.maxClicks != nil && s.clicks >= *s.maxClicks
	if completed {
		s.status = entity.CampaignCompleted
	}
	return &persistence.ClickResult{CurrentClicks: s.clicks, Completed: completed}, nil
}

func TestService_RecordClick_Concurrent(t *testing.T) {
	ctx := context.Background()

	newClickService := func(store *clickStore) *Service {
		uow := persistencemocks.NewMockUnitOfWork()
		uow.On("Campaigns", mock.Anything).Return(store)
		return NewService(uow, coremocks.NewMockTimeProvider(testFixedTime), coremocks.NewMockLogger())
	}

	t.Run("Every concurrent click lands on the counter", func(t *testing.T) {
		limit := int64(100)
		store := &clickStore{status: entity.CampaignActive, maxClicks: &limit}
		svc := newClickService(store)

		const clicks = 32
		var wg sync.WaitGroup
		errCh := make(chan error, clicks)
		for i := 0; i < clicks; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := svc.RecordClick(ctx, 1)
				errCh <- err
			}()
		}
		wg.Wait()
		close(errCh)

		for err := range errCh {
			require.NoError(t, err)
		}
		assert.Equal(t, int64(clicks), store.clicks)
	})

	t.Run("Cap admits exactly its number of clicks", func(t *testing.T) {
		limit := int64(3)
		store := &clickStore{status: entity.CampaignActive, maxClicks: &limit}
		svc := newClickService(store)

		const attempts = 10
		var wg sync.WaitGroup
		results := make(chan *persistence.ClickResult, attempts)
		errCh := make(chan error, attempts)
		for i := 0; i < attempts; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				result, err := svc.RecordClick(ctx, 1)
				if err != nil {
					errCh <- err
					return
				}
				results <- result
			}()
		}
		wg.Wait()
		close(results)
		close(errCh)

		accepted, completions := 0, 0
		for result := range results {
			accepted++
			if result.Completed {
				completions++
			}
		}
		for err := range errCh {
			assert.ErrorIs(t, err, errs.ErrClickLimitReached)
		}

		assert.Equal(t, 3, accepted)
		assert.Equal(t, 1, completions)
		assert.Equal(t, int64(3), store.clicks)
	})
}
