package error

import (
	"errors"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
)

func TestErrorCode(t *testing.T) {
	testCases := []struct {
		name     string
		err      error
		expected int
	}{
		{"InsufficientBalance", ErrInsufficientBalance, 4001},
		{"InvalidAmount", ErrInvalidAmount, 4002},
		{"InvalidUserID", ErrInvalidUserID, 4003},
		{"AmountOutOfBounds", ErrAmountOutOfBounds, 4004},
		{"InvalidTransition", ErrInvalidTransition, 4005},
		{"AlreadyProcessed", ErrAlreadyProcessed, 4006},
		{"DuplicateEntry", ErrDuplicateEntry, 4007},
		{"DuplicateCommission", ErrDuplicateCommission, 4008},
		{"CampaignNotActive", ErrCampaignNotActive, 4009},
		{"ClickLimitReached", ErrClickLimitReached, 4010},
		{"InvalidEntryType", ErrInvalidEntryType, 4011},
		{"TxConflict", ErrTxConflict, 4090},
		{"Forbidden", ErrForbidden, 4030},
		{"NotFound", ErrNotFound, 4040},
		{"UserNotFound", ErrUserNotFound, 4040},
		{"EntryNotFound", ErrEntryNotFound, 4040},
		{"SettingsNotFound", ErrSettingsNotFound, 4040},
		{"Unavailable", ErrUnavailable, 5030},
		{"UnknownError", errors.New("unknown error"), 5000},
		{"WrappedError", fmt.Errorf("wrapped: %w", ErrInvalidUserID), 4003},
		{"DetailedInsufficientBalance", NewInsufficientBalanceError(1, decimal.NewFromInt(100), decimal.NewFromInt(50)), 4001},
		{"DetailedOutOfBounds", NewAmountOutOfBoundsError(decimal.NewFromInt(5), decimal.NewFromInt(10), decimal.NewFromInt(100)), 4004},
		{"DetailedInvalidTransition", NewInvalidTransitionError("payout", "completed", "cancelled"), 4005},
		{"DetailedDuplicateCommission", NewDuplicateCommissionError("order-1", 2), 4008},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			code := ErrorCode(tc.err)
			if code != tc.expected {
				t.Errorf("ErrorCode(%v) = %d, want %d", tc.err, code, tc.expected)
			}
		})
	}
}

func TestInsufficientBalanceError(t *testing.T) {
	err := NewInsufficientBalanceError(123, decimal.NewFromFloat(100.5), decimal.NewFromFloat(50.25))

	expected := "insufficient balance for user 123: have 50.25, need 100.50"
	if err.Error() != expected {
		t.Errorf("Error() = %s, want %s", err.Error(), expected)
	}
	if !errors.Is(err, ErrInsufficientBalance) {
		t.Error("detailed error should match ErrInsufficientBalance")
	}
	if !IsInsufficientBalanceError(err) {
		t.Error("IsInsufficientBalanceError should report true")
	}
}

func TestAmountOutOfBoundsError(t *testing.T) {
	err := NewAmountOutOfBoundsError(decimal.NewFromInt(5), decimal.NewFromInt(10), decimal.NewFromInt(100000))

	expected := "amount 5.00 outside allowed bounds [10.00, 100000.00]"
	if err.Error() != expected {
		t.Errorf("Error() = %s, want %s", err.Error(), expected)
	}
	if !errors.Is(err, ErrAmountOutOfBounds) {
		t.Error("detailed error should match ErrAmountOutOfBounds")
	}
}

func TestInvalidTransitionError(t *testing.T) {
	err := NewInvalidTransitionError("ledger entry", "completed", "cancelled")

	expected := "invalid ledger entry transition from completed to cancelled"
	if err.Error() != expected {
		t.Errorf("Error() = %s, want %s", err.Error(), expected)
	}
	if !IsInvalidTransitionError(err) {
		t.Error("IsInvalidTransitionError should report true")
	}
}

func TestIsConflictError(t *testing.T) {
	conflicts := []error{
		ErrAlreadyProcessed,
		ErrInvalidTransition,
		ErrDuplicateEntry,
		ErrDuplicateCommission,
		ErrCampaignNotActive,
		ErrClickLimitReached,
		ErrTxConflict,
		NewDuplicateCommissionError("order-1", 2),
	}
	for _, err := range conflicts {
		if !IsConflictError(err) {
			t.Errorf("IsConflictError(%v) = false, want true", err)
		}
	}

	if IsConflictError(ErrInsufficientBalance) {
		t.Error("IsConflictError(ErrInsufficientBalance) = true, want false")
	}
	if IsConflictError(ErrUserNotFound) {
		t.Error("IsConflictError(ErrUserNotFound) = true, want false")
	}
}
