package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/adsmarket/ledger-engine/internal/domain/entity"
	coreport "github.com/adsmarket/ledger-engine/internal/domain/port/core"
	campaignUseCase "github.com/adsmarket/ledger-engine/internal/domain/usecase/campaign"
	"github.com/adsmarket/ledger-engine/internal/infrastructure/adapter/api/dto"
	"github.com/adsmarket/ledger-engine/internal/infrastructure/adapter/metrics"
)

// CampaignHandler handles campaign lifecycle HTTP requests
type CampaignHandler struct {
	campaignService *campaignUseCase.Service
	logger          coreport.Logger
}

// NewCampaignHandler creates a new campaign handler instance
func NewCampaignHandler(campaignService *campaignUseCase.Service, logger coreport.Logger) *CampaignHandler {
	return &CampaignHandler{
		campaignService: campaignService,
		logger:          logger,
	}
}

// Create handles POST /campaigns
func (h *CampaignHandler) Create(c *gin.Context) {
	var req dto.CreateCampaignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request format: "+err.Error())
		return
	}

	budget, err := entity.ParsePositiveAmount(req.Budget)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	pricePerClick, err := entity.ParsePositiveAmount(req.PricePerClick)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	campaign, err := h.campaignService.Create(
		c.Request.Context(), req.AdvertiserID, budget, pricePerClick, req.MaxClicks,
	)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewCampaignResponse(campaign))
}

// Start handles POST /campaigns/:id/start
func (h *CampaignHandler) Start(c *gin.Context) {
	h.lifecycle(c, h.campaignService.Start)
}

// Pause handles POST /campaigns/:id/pause
func (h *CampaignHandler) Pause(c *gin.Context) {
	h.lifecycle(c, h.campaignService.Pause)
}

// Cancel handles POST /campaigns/:id/cancel
func (h *CampaignHandler) Cancel(c *gin.Context) {
	h.lifecycle(c, h.campaignService.Cancel)
}

// RecordClick handles POST /campaigns/:id/clicks
func (h *CampaignHandler) RecordClick(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	result, err := h.campaignService.RecordClick(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	metrics.ClicksTotal.Inc()
	c.JSON(http.StatusOK, dto.ClickResponse{
		CampaignID:    id,
		CurrentClicks: result.CurrentClicks,
		Completed:     result.Completed,
	})
}

// Get handles GET /campaigns/:id
func (h *CampaignHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	campaign, err := h.campaignService.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewCampaignResponse(campaign))
}

// ListByAdvertiser handles GET /users/:userId/campaigns
func (h *CampaignHandler) ListByAdvertiser(c *gin.Context) {
	userID, ok := pathID(c, "userId")
	if !ok {
		return
	}

	campaigns, err := h.campaignService.ListByAdvertiser(c.Request.Context(), userID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"campaigns": dto.NewCampaignResponses(campaigns)})
}

// lifecycle runs one ownership-checked status transition
func (h *CampaignHandler) lifecycle(
	c *gin.Context,
	op func(ctx context.Context, campaignID, advertiserID uint64) (*entity.Campaign, error),
) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.CampaignActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request format: "+err.Error())
		return
	}

	campaign, err := op(c.Request.Context(), id, req.AdvertiserID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewCampaignResponse(campaign))
}
