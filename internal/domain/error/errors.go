package error

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Error codes for standardized API responses
const (
	// 4xxx - Client errors
	CodeInsufficientBalance = 4001
	CodeInvalidAmount       = 4002
	CodeInvalidUserID       = 4003
	CodeAmountOutOfBounds   = 4004
	CodeInvalidTransition   = 4005
	CodeAlreadyProcessed    = 4006
	CodeDuplicateEntry      = 4007
	CodeDuplicateCommission = 4008
	CodeCampaignNotActive   = 4009
	CodeClickLimitReached   = 4010
	CodeInvalidEntryType    = 4011
	CodeForbidden           = 4030
	CodeNotFound            = 4040
	CodeTxConflict          = 4090

	// 5xxx - Server errors
	CodeInternalServer = 5000
	CodeUnavailable    = 5030
)

// Base error types
var (
	// ErrInsufficientBalance is returned when a debit would drive a balance below zero
	ErrInsufficientBalance = errors.New("insufficient balance")

	// ErrAmountOutOfBounds is returned when a withdrawal amount falls outside the configured limits
	ErrAmountOutOfBounds = errors.New("amount outside allowed withdrawal bounds")

	// ErrInvalidTransition is returned on an illegal status state-machine move
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrAlreadyProcessed is returned when confirming an already-completed ledger entry
	ErrAlreadyProcessed = errors.New("entry already processed")

	// ErrCampaignNotActive is returned when recording a click on a non-active campaign
	ErrCampaignNotActive = errors.New("campaign is not active")

	// ErrClickLimitReached is returned when a campaign click cap has been reached
	ErrClickLimitReached = errors.New("campaign click limit reached")

	// ErrDuplicateCommission is returned when a commission external ID was already processed
	ErrDuplicateCommission = errors.New("commission already processed for this event")

	// ErrDuplicateEntry is returned when a ledger entry with the same external ID exists
	ErrDuplicateEntry = errors.New("ledger entry with this external ID already exists")

	// ErrForbidden is returned when the actor does not own the resource
	ErrForbidden = errors.New("actor does not own this resource")

	// ErrInvalidAmount is returned when a monetary amount is malformed or non-positive
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrInvalidEntryType is returned when an entry kind or type value
	// is not one of the known enum members
	ErrInvalidEntryType = errors.New("unknown entry kind or type")

	// ErrInvalidUserID is returned when the user ID is not a positive integer
	ErrInvalidUserID = errors.New("user ID must be positive")

	// ErrNotFound is returned when a generic resource is not found
	ErrNotFound = errors.New("resource not found")

	// ErrUserNotFound is returned when the requested user doesn't exist
	ErrUserNotFound = errors.New("user not found")

	// ErrEntryNotFound is returned when the requested ledger entry doesn't exist
	ErrEntryNotFound = errors.New("ledger entry not found")

	// ErrCampaignNotFound is returned when the requested campaign doesn't exist
	ErrCampaignNotFound = errors.New("campaign not found")

	// ErrPayoutNotFound is returned when the requested payout doesn't exist
	ErrPayoutNotFound = errors.New("payout not found")

	// ErrSettingsNotFound is returned when the settings row has not been seeded
	ErrSettingsNotFound = errors.New("settings not found")

	// ErrTxConflict is returned when a transaction lost a serialization
	// conflict under SERIALIZABLE isolation. The operation left no trace
	// and may be retried as-is.
	ErrTxConflict = errors.New("transaction serialization conflict")

	// ErrUnavailable is returned for storage failures, distinct from business rejections
	ErrUnavailable = errors.New("storage unavailable")
)

// ErrorCode returns standardized error codes for known errors
func ErrorCode(err error) int {
	switch {
	case errors.Is(err, ErrInsufficientBalance):
		return CodeInsufficientBalance
	case errors.Is(err, ErrAmountOutOfBounds):
		return CodeAmountOutOfBounds
	case errors.Is(err, ErrInvalidAmount):
		return CodeInvalidAmount
	case errors.Is(err, ErrInvalidEntryType):
		return CodeInvalidEntryType
	case errors.Is(err, ErrInvalidUserID):
		return CodeInvalidUserID
	case errors.Is(err, ErrInvalidTransition):
		return CodeInvalidTransition
	case errors.Is(err, ErrAlreadyProcessed):
		return CodeAlreadyProcessed
	case errors.Is(err, ErrDuplicateEntry):
		return CodeDuplicateEntry
	case errors.Is(err, ErrDuplicateCommission):
		return CodeDuplicateCommission
	case errors.Is(err, ErrCampaignNotActive):
		return CodeCampaignNotActive
	case errors.Is(err, ErrClickLimitReached):
		return CodeClickLimitReached
	case errors.Is(err, ErrTxConflict):
		return CodeTxConflict
	case errors.Is(err, ErrForbidden):
		return CodeForbidden
	case IsNotFoundError(err):
		return CodeNotFound
	case errors.Is(err, ErrUnavailable):
		return CodeUnavailable
	default:
		return CodeInternalServer
	}
}

// InsufficientBalanceError carries the have/need figures for an actionable message
type InsufficientBalanceError struct {
	UserID uint64
	Need   decimal.Decimal
	Have   decimal.Decimal
}

// Error implements the error interface
func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("insufficient balance for user %d: have %s, need %s",
		e.UserID, e.Have.StringFixed(2), e.Need.StringFixed(2))
}

// Is checks if the target error is an ErrInsufficientBalance
func (e *InsufficientBalanceError) Is(target error) bool {
	return target == ErrInsufficientBalance
}

// LogFields returns a map of fields for structured logging
func (e *InsufficientBalanceError) LogFields() map[string]any {
	return map[string]any{
		"error_type": "insufficient_balance",
		"user_id":    e.UserID,
		"need":       e.Need.StringFixed(2),
		"have":       e.Have.StringFixed(2),
		"error_code": CodeInsufficientBalance,
	}
}

// NewInsufficientBalanceError creates a detailed insufficient balance error
func NewInsufficientBalanceError(userID uint64, need, have decimal.Decimal) error {
	return &InsufficientBalanceError{UserID: userID, Need: need, Have: have}
}

// AmountOutOfBoundsError reports a withdrawal amount outside the configured limits
type AmountOutOfBoundsError struct {
	Amount decimal.Decimal
	Min    decimal.Decimal
	Max    decimal.Decimal
}

// Error implements the error interface
func (e *AmountOutOfBoundsError) Error() string {
	return fmt.Sprintf("amount %s outside allowed bounds [%s, %s]",
		e.Amount.StringFixed(2), e.Min.StringFixed(2), e.Max.StringFixed(2))
}

// Is checks if the target error is an ErrAmountOutOfBounds
func (e *AmountOutOfBoundsError) Is(target error) bool {
	return target == ErrAmountOutOfBounds
}

// LogFields returns a map of fields for structured logging
func (e *AmountOutOfBoundsError) LogFields() map[string]any {
	return map[string]any{
		"error_type": "amount_out_of_bounds",
		"amount":     e.Amount.StringFixed(2),
		"min":        e.Min.StringFixed(2),
		"max":        e.Max.StringFixed(2),
		"error_code": CodeAmountOutOfBounds,
	}
}

// NewAmountOutOfBoundsError creates a detailed bounds error
func NewAmountOutOfBoundsError(amount, min, max decimal.Decimal) error {
	return &AmountOutOfBoundsError{Amount: amount, Min: min, Max: max}
}

// InvalidTransitionError reports an illegal state-machine move
type InvalidTransitionError struct {
	Resource string
	From     string
	To       string
}

// Error implements the error interface
func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid %s transition from %s to %s", e.Resource, e.From, e.To)
}

// Is checks if the target error is an ErrInvalidTransition
func (e *InvalidTransitionError) Is(target error) bool {
	return target == ErrInvalidTransition
}

// LogFields returns a map of fields for structured logging
func (e *InvalidTransitionError) LogFields() map[string]any {
	return map[string]any{
		"error_type": "invalid_transition",
		"resource":   e.Resource,
		"from":       e.From,
		"to":         e.To,
		"error_code": CodeInvalidTransition,
	}
}

// NewInvalidTransitionError creates a detailed transition error
func NewInvalidTransitionError(resource, from, to string) error {
	return &InvalidTransitionError{Resource: resource, From: from, To: to}
}

// DuplicateCommissionError reports a commission external ID seen before
type DuplicateCommissionError struct {
	ExternalID     string
	ReferredUserID uint64
}

// Error implements the error interface
func (e *DuplicateCommissionError) Error() string {
	return fmt.Sprintf("duplicate commission: externalID=%s for referred user %d",
		e.ExternalID, e.ReferredUserID)
}

// Is checks if the target error is an ErrDuplicateCommission
func (e *DuplicateCommissionError) Is(target error) bool {
	return target == ErrDuplicateCommission
}

// LogFields returns a map of fields for structured logging
func (e *DuplicateCommissionError) LogFields() map[string]any {
	return map[string]any{
		"error_type":       "duplicate_commission",
		"external_id":      e.ExternalID,
		"referred_user_id": e.ReferredUserID,
		"error_code":       CodeDuplicateCommission,
	}
}

// NewDuplicateCommissionError creates a detailed duplicate commission error
func NewDuplicateCommissionError(externalID string, referredUserID uint64) error {
	return &DuplicateCommissionError{ExternalID: externalID, ReferredUserID: referredUserID}
}

// IsInsufficientBalanceError checks if the error is related to insufficient balance
func IsInsufficientBalanceError(err error) bool {
	return errors.Is(err, ErrInsufficientBalance)
}

// IsInvalidTransitionError checks if the error is an illegal state-machine move
func IsInvalidTransitionError(err error) bool {
	return errors.Is(err, ErrInvalidTransition)
}

// IsAlreadyProcessedError checks if the error is an idempotency rejection
func IsAlreadyProcessedError(err error) bool {
	return errors.Is(err, ErrAlreadyProcessed)
}

// IsNotFoundError checks if the error is any "not found" type of error
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrUserNotFound) ||
		errors.Is(err, ErrEntryNotFound) ||
		errors.Is(err, ErrCampaignNotFound) ||
		errors.Is(err, ErrPayoutNotFound) ||
		errors.Is(err, ErrSettingsNotFound)
}

// IsConflictError checks if the error should map to an HTTP conflict
func IsConflictError(err error) bool {
	return errors.Is(err, ErrAlreadyProcessed) ||
		errors.Is(err, ErrInvalidTransition) ||
		errors.Is(err, ErrDuplicateEntry) ||
		errors.Is(err, ErrDuplicateCommission) ||
		errors.Is(err, ErrCampaignNotActive) ||
		errors.Is(err, ErrClickLimitReached) ||
		errors.Is(err, ErrTxConflict)
}
