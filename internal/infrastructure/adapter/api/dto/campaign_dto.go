package dto

import (
	"github.com/adsmarket/ledger-engine/internal/domain/entity"
)

// CreateCampaignRequest represents the API request for registering a campaign
type CreateCampaignRequest struct {
	AdvertiserID  uint64 `json:"advertiserId" binding:"required"`
	Budget        string `json:"budget" binding:"required"`
	PricePerClick string `json:"pricePerClick" binding:"required"`
	MaxClicks     *int64 `json:"maxClicks,omitempty"`
}

// CampaignActionRequest identifies the acting advertiser for lifecycle operations
type CampaignActionRequest struct {
	AdvertiserID uint64 `json:"advertiserId" binding:"required"`
}

// CampaignResponse represents a campaign in API responses
type CampaignResponse struct {
	ID            uint64 `json:"id"`
	AdvertiserID  uint64 `json:"advertiserId"`
	Budget        string `json:"budget"`
	PricePerClick string `json:"pricePerClick"`
	MaxClicks     *int64 `json:"maxClicks,omitempty"`
	CurrentClicks int64  `json:"currentClicks"`
	Status        string `json:"status"`
	StartDate     string `json:"startDate,omitempty"`
}

// NewCampaignResponse maps a campaign to its API representation
func NewCampaignResponse(campaign *entity.Campaign) CampaignResponse {
	response := CampaignResponse{
		ID:            campaign.ID,
		AdvertiserID:  campaign.AdvertiserID,
		Budget:        entity.FormatMoney(campaign.Budget),
		PricePerClick: entity.FormatMoney(campaign.PricePerClick),
		MaxClicks:     campaign.MaxClicks,
		CurrentClicks: campaign.CurrentClicks,
		Status:        string(campaign.Status),
	}
	if campaign.StartDate != nil {
		response.StartDate = campaign.StartDate.UTC().Format("2006-01-02T15:04:05Z07:00")
	}
	return response
}

// NewCampaignResponses maps a slice of campaigns
func NewCampaignResponses(campaigns []*entity.Campaign) []CampaignResponse {
	responses := make([]CampaignResponse, 0, len(campaigns))
	for _, campaign := range campaigns {
		responses = append(responses, NewCampaignResponse(campaign))
	}
	return responses
}

// ClickResponse reports the click counter after a recorded click
type ClickResponse struct {
	CampaignID    uint64 `json:"campaignId"`
	CurrentClicks int64  `json:"currentClicks"`
	Completed     bool   `json:"completed"`
}
