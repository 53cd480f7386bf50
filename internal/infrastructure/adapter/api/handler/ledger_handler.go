package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/adsmarket/ledger-engine/internal/domain/entity"
	coreport "github.com/adsmarket/ledger-engine/internal/domain/port/core"
	"github.com/adsmarket/ledger-engine/internal/domain/port/persistence"
	ledgerUseCase "github.com/adsmarket/ledger-engine/internal/domain/usecase/ledger"
	"github.com/adsmarket/ledger-engine/internal/infrastructure/adapter/api/dto"
	"github.com/adsmarket/ledger-engine/internal/infrastructure/adapter/metrics"
)

// LedgerHandler handles ledger-related HTTP requests
type LedgerHandler struct {
	ledgerService *ledgerUseCase.Service
	logger        coreport.Logger
}

// NewLedgerHandler creates a new ledger handler instance
func NewLedgerHandler(ledgerService *ledgerUseCase.Service, logger coreport.Logger) *LedgerHandler {
	return &LedgerHandler{
		ledgerService: ledgerService,
		logger:        logger,
	}
}

// CreateEntry handles POST /ledger
func (h *LedgerHandler) CreateEntry(c *gin.Context) {
	var req dto.CreateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request format: "+err.Error())
		return
	}

	amount, err := entity.ParseAmount(req.Amount)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	entry, err := h.ledgerService.Create(c.Request.Context(), ledgerUseCase.CreateParams{
		UserID:      req.UserID,
		Kind:        entity.EntryKind(req.Kind),
		Type:        entity.EntryType(req.Type),
		Amount:      amount,
		Method:      entity.PaymentMethod(req.Method),
		Description: req.Description,
		ExternalID:  req.ExternalID,
		Metadata:    req.Metadata,
		Settled:     req.Settled,
	})
	if err != nil {
		metrics.EntriesRejected.WithLabelValues("create").Inc()
		respondError(c, h.logger, err)
		return
	}

	metrics.EntriesTotal.WithLabelValues(string(entry.Type)).Inc()
	c.JSON(http.StatusCreated, dto.NewEntryResponse(entry))
}

// ConfirmEntry handles POST /ledger/:id/confirm
func (h *LedgerHandler) ConfirmEntry(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	entry, err := h.ledgerService.Confirm(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewEntryResponse(entry))
}

// CancelEntry handles POST /ledger/:id/cancel
func (h *LedgerHandler) CancelEntry(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	entry, err := h.ledgerService.Cancel(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewEntryResponse(entry))
}

// FailEntry handles POST /ledger/:id/fail
func (h *LedgerHandler) FailEntry(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	entry, err := h.ledgerService.Fail(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewEntryResponse(entry))
}

// GetEntry handles GET /ledger/:id
func (h *LedgerHandler) GetEntry(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	entry, err := h.ledgerService.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewEntryResponse(entry))
}

// ListEntries handles GET /ledger
func (h *LedgerHandler) ListEntries(c *gin.Context) {
	criteria, err := parseLedgerCriteria(c)
	if err != nil {
		badRequest(c, err.Error())
		return
	}

	entries, err := h.ledgerService.List(c.Request.Context(), criteria)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"entries": dto.NewEntryResponses(entries)})
}

// Statistics handles GET /ledger/statistics
func (h *LedgerHandler) Statistics(c *gin.Context) {
	from, err := parseTimeQuery(c, "from")
	if err != nil {
		badRequest(c, err.Error())
		return
	}
	to, err := parseTimeQuery(c, "to")
	if err != nil {
		badRequest(c, err.Error())
		return
	}

	rows, err := h.ledgerService.Statistics(c.Request.Context(), from, to)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	out := make([]dto.StatisticsRow, 0, len(rows))
	for _, row := range rows {
		out = append(out, dto.StatisticsRow{
			Type:   string(row.Type),
			Status: string(row.Status),
			Count:  row.Count,
			Total:  entity.FormatMoney(row.Total),
		})
	}
	c.JSON(http.StatusOK, gin.H{"statistics": out})
}

// RequestWithdrawal handles POST /users/:userId/withdrawals
func (h *LedgerHandler) RequestWithdrawal(c *gin.Context) {
	userID, ok := pathID(c, "userId")
	if !ok {
		return
	}

	var req dto.WithdrawalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request format: "+err.Error())
		return
	}

	amount, err := entity.ParsePositiveAmount(req.Amount)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	entry, err := h.ledgerService.RequestWithdrawal(
		c.Request.Context(), userID, amount, entity.PaymentMethod(req.Method), req.Details,
	)
	if err != nil {
		metrics.EntriesRejected.WithLabelValues("withdrawal").Inc()
		respondError(c, h.logger, err)
		return
	}

	metrics.EntriesTotal.WithLabelValues(string(entity.TypeWithdrawal)).Inc()
	c.JSON(http.StatusCreated, dto.NewEntryResponse(entry))
}

// SettleDeal handles POST /deals/settle
func (h *LedgerHandler) SettleDeal(c *gin.Context) {
	var req dto.DealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request format: "+err.Error())
		return
	}

	amount, err := entity.ParsePositiveAmount(req.Amount)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	result, err := h.ledgerService.SettleDeal(c.Request.Context(), ledgerUseCase.DealParams{
		BuyerID:     req.BuyerID,
		SellerID:    req.SellerID,
		Amount:      amount,
		ExternalID:  req.ExternalID,
		Description: req.Description,
	})
	if err != nil {
		metrics.EntriesRejected.WithLabelValues("deal").Inc()
		respondError(c, h.logger, err)
		return
	}

	metrics.EntriesTotal.WithLabelValues(string(entity.TypePayment)).Inc()
	c.JSON(http.StatusOK, dto.DealResponse{
		BuyerEntry:  dto.NewEntryResponse(result.BuyerEntry),
		SellerEntry: dto.NewEntryResponse(result.SellerEntry),
		PlatformFee: entity.FormatMoney(result.PlatformFee),
	})
}

func parseLedgerCriteria(c *gin.Context) (persistence.LedgerCriteria, error) {
	var criteria persistence.LedgerCriteria

	if v := c.Query("userId"); v != "" {
		userID, ok := parseUintQuery(v)
		if !ok {
			return criteria, errInvalidQuery("userId")
		}
		criteria.UserID = userID
	}
	if v := c.Query("kind"); v != "" {
		criteria.Kind = entity.EntryKind(v)
	}
	if v := c.Query("type"); v != "" {
		criteria.Type = entity.EntryType(v)
	}
	if v := c.Query("status"); v != "" {
		criteria.Status = entity.EntryStatus(v)
	}
	if v := c.Query("limit"); v != "" {
		limit, ok := parseUintQuery(v)
		if !ok {
			return criteria, errInvalidQuery("limit")
		}
		criteria.Limit = int(limit)
	}
	if v := c.Query("offset"); v != "" {
		offset, ok := parseUintQuery(v)
		if !ok {
			return criteria, errInvalidQuery("offset")
		}
		criteria.Offset = int(offset)
	}

	from, err := parseTimeQuery(c, "from")
	if err != nil {
		return criteria, err
	}
	to, err := parseTimeQuery(c, "to")
	if err != nil {
		return criteria, err
	}
	criteria.CreatedFrom = from
	criteria.CreatedTo = to

	return criteria, nil
}

func parseTimeQuery(c *gin.Context, name string) (*time.Time, error) {
	v := c.Query(name)
	if v == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		return nil, errInvalidQuery(name)
	}
	return &t, nil
}
