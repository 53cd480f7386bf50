package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/adsmarket/ledger-engine/internal/domain/entity"
	coreport "github.com/adsmarket/ledger-engine/internal/domain/port/core"
	referralUseCase "github.com/adsmarket/ledger-engine/internal/domain/usecase/referral"
	"github.com/adsmarket/ledger-engine/internal/infrastructure/adapter/api/dto"
	"github.com/adsmarket/ledger-engine/internal/infrastructure/adapter/metrics"
)

// ReferralHandler handles referral commission and payout HTTP requests
type ReferralHandler struct {
	referralService *referralUseCase.Service
	logger          coreport.Logger
}

// NewReferralHandler creates a new referral handler instance
func NewReferralHandler(referralService *referralUseCase.Service, logger coreport.Logger) *ReferralHandler {
	return &ReferralHandler{
		referralService: referralService,
		logger:          logger,
	}
}

// ProcessCommission handles POST /referrals/commission
func (h *ReferralHandler) ProcessCommission(c *gin.Context) {
	var req dto.CommissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request format: "+err.Error())
		return
	}

	amount, err := entity.ParsePositiveAmount(req.Amount)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	result, err := h.referralService.ProcessCommission(
		c.Request.Context(), req.ReferredUserID, amount, req.Description, req.ExternalID,
	)
	if err != nil {
		metrics.EntriesRejected.WithLabelValues("commission").Inc()
		respondError(c, h.logger, err)
		return
	}

	response := dto.CommissionResponse{Credited: result.Credited}
	if result.Credited {
		metrics.EntriesTotal.WithLabelValues(string(entity.TypeReferral)).Inc()
		response.ReferrerID = result.ReferrerID
		response.Commission = entity.FormatMoney(result.Commission)
		if result.Entry != nil {
			entryResponse := dto.NewEntryResponse(result.Entry)
			response.Entry = &entryResponse
		}
	}
	c.JSON(http.StatusOK, response)
}

// GetEarnings handles GET /users/:userId/referrals/earnings
func (h *ReferralHandler) GetEarnings(c *gin.Context) {
	userID, ok := pathID(c, "userId")
	if !ok {
		return
	}

	earnings, err := h.referralService.Earnings(c.Request.Context(), userID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.EarningsResponse{
		UserID:    userID,
		Total:     entity.FormatMoney(earnings.Total),
		PaidOut:   entity.FormatMoney(earnings.PaidOut),
		Reserved:  entity.FormatMoney(earnings.Reserved),
		Available: entity.FormatMoney(earnings.Available),
	})
}

// RequestPayout handles POST /users/:userId/payouts
func (h *ReferralHandler) RequestPayout(c *gin.Context) {
	userID, ok := pathID(c, "userId")
	if !ok {
		return
	}

	var req dto.PayoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request format: "+err.Error())
		return
	}

	amount, err := entity.ParsePositiveAmount(req.Amount)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	payout, err := h.referralService.RequestPayout(
		c.Request.Context(), userID, amount, entity.PaymentMethod(req.Method), req.AccountDetails,
	)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewPayoutResponse(payout))
}

// ResolvePayout handles POST /payouts/:id/resolve
func (h *ReferralHandler) ResolvePayout(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.ResolvePayoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request format: "+err.Error())
		return
	}

	payout, err := h.referralService.ResolvePayout(c.Request.Context(), id, req.Approve)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewPayoutResponse(payout))
}

// ListPayouts handles GET /users/:userId/payouts
func (h *ReferralHandler) ListPayouts(c *gin.Context) {
	userID, ok := pathID(c, "userId")
	if !ok {
		return
	}

	payouts, err := h.referralService.ListPayouts(c.Request.Context(), userID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"payouts": dto.NewPayoutResponses(payouts)})
}
