package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	domainerr "github.com/adsmarket/ledger-engine/internal/domain/error"
	coreport "github.com/adsmarket/ledger-engine/internal/domain/port/core"
	"github.com/adsmarket/ledger-engine/internal/infrastructure/adapter/api/dto"
)

// httpStatus maps domain errors to HTTP status codes. Business
// rejections map to 400, concurrency and idempotency conflicts to 409.
func httpStatus(err error) int {
	switch {
	case errors.Is(err, domainerr.ErrInsufficientBalance),
		errors.Is(err, domainerr.ErrAmountOutOfBounds),
		errors.Is(err, domainerr.ErrInvalidAmount),
		errors.Is(err, domainerr.ErrInvalidEntryType),
		errors.Is(err, domainerr.ErrInvalidUserID):
		return http.StatusBadRequest
	case errors.Is(err, domainerr.ErrForbidden):
		return http.StatusForbidden
	case domainerr.IsNotFoundError(err):
		return http.StatusNotFound
	case errors.Is(err, domainerr.ErrAlreadyProcessed),
		errors.Is(err, domainerr.ErrDuplicateEntry),
		errors.Is(err, domainerr.ErrDuplicateCommission),
		errors.Is(err, domainerr.ErrInvalidTransition),
		errors.Is(err, domainerr.ErrCampaignNotActive),
		errors.Is(err, domainerr.ErrClickLimitReached),
		errors.Is(err, domainerr.ErrTxConflict):
		return http.StatusConflict
	case errors.Is(err, domainerr.ErrUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes the standardized error body for a domain error
func respondError(c *gin.Context, logger coreport.Logger, err error) {
	status := httpStatus(err)
	if status >= http.StatusInternalServerError {
		logger.Error("Request failed", map[string]any{
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
			"error":  err.Error(),
		})
	}
	c.JSON(status, dto.ErrorResponse{
		Code:    domainerr.ErrorCode(err),
		Message: err.Error(),
	})
}

// pathID parses a numeric path parameter
func pathID(c *gin.Context, name string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Code:    domainerr.CodeInvalidUserID,
			Message: "invalid " + name + " path parameter",
		})
		return 0, false
	}
	return id, true
}

// parseUintQuery parses a positive integer query value
func parseUintQuery(v string) (uint64, bool) {
	n, err := strconv.ParseUint(v, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// errInvalidQuery reports a malformed query parameter
func errInvalidQuery(name string) error {
	return errors.New("invalid " + name + " query parameter")
}

// badRequest writes a 400 with a validation message
func badRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, dto.ErrorResponse{
		Code:    domainerr.CodeInvalidAmount,
		Message: message,
	})
}
