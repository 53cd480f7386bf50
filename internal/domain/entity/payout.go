package entity

import (
	"time"

	"github.com/shopspring/decimal"

	errs "github.com/adsmarket/ledger-engine/internal/domain/error"
	coreport "github.com/adsmarket/ledger-engine/internal/domain/port/core"
)

// PayoutStatus defines the payout state machine values
type PayoutStatus string

// Payout statuses
const (
	PayoutPending   PayoutStatus = "pending"
	PayoutCompleted PayoutStatus = "completed"
	PayoutFailed    PayoutStatus = "failed"
	PayoutCancelled PayoutStatus = "cancelled"
)

// Payout is a request to withdraw accumulated referral commission.
// Distinct from a withdrawal ledger entry: it draws on referral
// earnings headroom, not the live balance.
type Payout struct {
	ID             uint64
	UserID         uint64
	Amount         decimal.Decimal
	Status         PayoutStatus
	Method         PaymentMethod
	AccountDetails string
	Metadata       map[string]any
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// NewPayout creates a pending payout with basic validation
func NewPayout(
	userID uint64,
	amount decimal.Decimal,
	method PaymentMethod,
	accountDetails string,
	timeProvider coreport.TimeProvider,
) (*Payout, error) {
	if userID == 0 {
		return nil, errs.ErrInvalidUserID
	}
	if !amount.IsPositive() {
		return nil, errs.ErrInvalidAmount
	}
	if !IsValidPaymentMethod(string(method)) {
		return nil, errs.ErrInvalidAmount
	}

	now := timeProvider.Now()
	return &Payout{
		UserID:         userID,
		Amount:         RoundMoney(amount),
		Status:         PayoutPending,
		Method:         method,
		AccountDetails: accountDetails,
		Metadata:       map[string]any{},
		CreatedAt:      now,
		UpdatedAt:      now,
	}, nil
}

// IsTerminal reports whether no further status transition is legal
func (p *Payout) IsTerminal() bool {
	return p.Status != PayoutPending
}

// ConsumesHeadroom reports whether the payout counts against referral
// earnings headroom. Cancelled and failed payouts release it.
func (p *Payout) ConsumesHeadroom() bool {
	return p.Status == PayoutPending || p.Status == PayoutCompleted
}
