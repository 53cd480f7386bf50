package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/adsmarket/ledger-engine/internal/domain/entity"
	errs "github.com/adsmarket/ledger-engine/internal/domain/error"
)

func TestClassifyClickRejection(t *testing.T) {
	cap3 := int64(3)
	cap100 := int64(100)

	testCases := []struct {
		name     string
		campaign *entity.Campaign
		expected error
	}{
		{
			// The increment that reaches the cap also completes the
			// campaign, so the next click finds it completed at cap.
			name: "Completed at cap reports the click limit",
			campaign: &entity.Campaign{
				Status:        entity.CampaignCompleted,
				MaxClicks:     &cap3,
				CurrentClicks: 3,
			},
			expected: errs.ErrClickLimitReached,
		},
		{
			name: "Paused under the cap reports inactive",
			campaign: &entity.Campaign{
				Status:        entity.CampaignPaused,
				MaxClicks:     &cap100,
				CurrentClicks: 5,
			},
			expected: errs.ErrCampaignNotActive,
		},
		{
			name: "Cancelled uncapped reports inactive",
			campaign: &entity.Campaign{
				Status:        entity.CampaignCancelled,
				CurrentClicks: 42,
			},
			expected: errs.ErrCampaignNotActive,
		},
		{
			name: "Draft reports inactive",
			campaign: &entity.Campaign{
				Status:    entity.CampaignDraft,
				MaxClicks: &cap100,
			},
			expected: errs.ErrCampaignNotActive,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.ErrorIs(t, classifyClickRejection(tc.campaign), tc.expected)
		})
	}
}
