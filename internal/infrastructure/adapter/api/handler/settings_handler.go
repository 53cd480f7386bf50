package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/adsmarket/ledger-engine/internal/domain/entity"
	coreport "github.com/adsmarket/ledger-engine/internal/domain/port/core"
	settingsUseCase "github.com/adsmarket/ledger-engine/internal/domain/usecase/settings"
	"github.com/adsmarket/ledger-engine/internal/infrastructure/adapter/api/dto"
)

// SettingsHandler handles platform settings HTTP requests
type SettingsHandler struct {
	settingsService *settingsUseCase.Service
	logger          coreport.Logger
}

// NewSettingsHandler creates a new settings handler instance
func NewSettingsHandler(settingsService *settingsUseCase.Service, logger coreport.Logger) *SettingsHandler {
	return &SettingsHandler{
		settingsService: settingsService,
		logger:          logger,
	}
}

// Get handles GET /settings
func (h *SettingsHandler) Get(c *gin.Context) {
	settings, err := h.settingsService.Get(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewSettingsResponse(settings))
}

// Update handles PUT /settings
func (h *SettingsHandler) Update(c *gin.Context) {
	var req dto.UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request format: "+err.Error())
		return
	}

	// Commission rates are fractions, not money amounts, so the
	// two-decimal-place limit does not apply.
	referral, err := decimal.NewFromString(req.ReferralCommission)
	if err != nil {
		badRequest(c, "invalid referralCommission: "+err.Error())
		return
	}
	platform, err := decimal.NewFromString(req.PlatformCommission)
	if err != nil {
		badRequest(c, "invalid platformCommission: "+err.Error())
		return
	}
	minWithdrawal, err := entity.ParsePositiveAmount(req.MinWithdrawalAmount)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	maxWithdrawal, err := entity.ParsePositiveAmount(req.MaxWithdrawalAmount)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	settings, err := h.settingsService.Update(c.Request.Context(), settingsUseCase.UpdateParams{
		ReferralCommission:  referral,
		PlatformCommission:  platform,
		MinWithdrawalAmount: minWithdrawal,
		MaxWithdrawalAmount: maxWithdrawal,
		MaintenanceMode:     req.MaintenanceMode,
		RegistrationEnabled: req.RegistrationEnabled,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewSettingsResponse(settings))
}
