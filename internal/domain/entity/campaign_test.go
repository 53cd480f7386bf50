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

func TestNewCampaign(t *testing.T) {
	fixedTime := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	mockTime := coremocks.NewMockTimeProvider(fixedTime)

	t.Run("Valid campaign", func(t *testing.T) {
		maxClicks := int64(100)
		campaign, err := NewCampaign(7, decimal.NewFromInt(500), decimal.NewFromInt(2), &maxClicks, mockTime)

		require.NoError(t, err)
		assert.Equal(t, uint64(7), campaign.AdvertiserID)
		assert.Equal(t, CampaignDraft, campaign.Status)
		assert.False(t, campaign.BudgetCharged)
		assert.Nil(t, campaign.StartDate)
	})

	t.Run("Uncapped campaign", func(t *testing.T) {
		campaign, err := NewCampaign(7, decimal.NewFromInt(500), decimal.NewFromInt(2), nil, mockTime)

		require.NoError(t, err)
		assert.Equal(t, int64(-1), campaign.ClicksRemaining())
	})

	t.Run("Invalid inputs", func(t *testing.T) {
		zeroClicks := int64(0)

		_, err := NewCampaign(0, decimal.NewFromInt(500), decimal.NewFromInt(2), nil, mockTime)
		assert.ErrorIs(t, err, errs.ErrInvalidUserID)

		_, err = NewCampaign(7, decimal.Zero, decimal.NewFromInt(2), nil, mockTime)
		assert.ErrorIs(t, err, errs.ErrInvalidAmount)

		_, err = NewCampaign(7, decimal.NewFromInt(500), decimal.Zero, nil, mockTime)
		assert.ErrorIs(t, err, errs.ErrInvalidAmount)

		_, err = NewCampaign(7, decimal.NewFromInt(500), decimal.NewFromInt(2), &zeroClicks, mockTime)
		assert.ErrorIs(t, err, errs.ErrInvalidAmount)
	})
}

func TestCampaign_StatusChecks(t *testing.T) {
	testCases := []struct {
		status    CampaignStatus
		canStart  bool
		canPause  bool
		canCancel bool
	}{
		{CampaignDraft, true, false, true},
		{CampaignActive, false, true, true},
		{CampaignPaused, true, false, true},
		{CampaignCompleted, false, false, false},
		{CampaignCancelled, false, false, false},
	}

	for _, tc := range testCases {
		t.Run(string(tc.status), func(t *testing.T) {
			campaign := &Campaign{Status: tc.status}
			assert.Equal(t, tc.canStart, campaign.CanStart())
			assert.Equal(t, tc.canPause, campaign.CanPause())
			assert.Equal(t, tc.canCancel, campaign.CanCancel())
		})
	}
}

func TestCampaign_ClicksRemaining(t *testing.T) {
	maxClicks := int64(10)
	campaign := &Campaign{MaxClicks: &maxClicks, CurrentClicks: 7}
	assert.Equal(t, int64(3), campaign.ClicksRemaining())

	campaign.CurrentClicks = 10
	assert.Equal(t, int64(0), campaign.ClicksRemaining())

	campaign.CurrentClicks = 12
	assert.Equal(t, int64(0), campaign.ClicksRemaining())
}

func TestCampaign_UnspentBudget(t *testing.T) {
	campaign := &Campaign{
		Budget:        decimal.NewFromInt(100),
		PricePerClick: decimal.NewFromInt(3),
		CurrentClicks: 20,
	}
	assert.Equal(t, "40.00", FormatMoney(campaign.UnspentBudget()))

	campaign.CurrentClicks = 40
	assert.True(t, campaign.UnspentBudget().IsZero())
}

func TestCampaign_IsOwnedBy(t *testing.T) {
	campaign := &Campaign{AdvertiserID: 3}
	assert.True(t, campaign.IsOwnedBy(3))
	assert.False(t, campaign.IsOwnedBy(4))
}
