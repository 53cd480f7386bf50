package dto

import (
	"github.com/adsmarket/ledger-engine/internal/domain/entity"
)

// CommissionRequest represents the API request for crediting a referral commission
type CommissionRequest struct {
	ReferredUserID uint64 `json:"referredUserId" binding:"required"`
	Amount         string `json:"amount" binding:"required"`
	ExternalID     string `json:"externalId" binding:"required"`
	Description    string `json:"description,omitempty"`
}

// CommissionResponse represents the outcome of a commission credit
type CommissionResponse struct {
	Credited   bool           `json:"credited"`
	ReferrerID uint64         `json:"referrerId,omitempty"`
	Commission string         `json:"commission,omitempty"`
	Entry      *EntryResponse `json:"entry,omitempty"`
}

// EarningsResponse represents a user's referral earnings breakdown
type EarningsResponse struct {
	UserID    uint64 `json:"userId"`
	Total     string `json:"total"`
	PaidOut   string `json:"paidOut"`
	Reserved  string `json:"reserved"`
	Available string `json:"available"`
}

// PayoutRequest represents the API request for a referral earnings payout
type PayoutRequest struct {
	Amount         string `json:"amount" binding:"required"`
	Method         string `json:"method" binding:"required"`
	AccountDetails string `json:"accountDetails,omitempty"`
}

// ResolvePayoutRequest approves or rejects a pending payout
type ResolvePayoutRequest struct {
	Approve bool `json:"approve"`
}

// PayoutResponse represents a payout in API responses
type PayoutResponse struct {
	ID        uint64 `json:"id"`
	UserID    uint64 `json:"userId"`
	Amount    string `json:"amount"`
	Status    string `json:"status"`
	Method    string `json:"method"`
	CreatedAt string `json:"createdAt"`
}

// NewPayoutResponse maps a payout to its API representation
func NewPayoutResponse(payout *entity.Payout) PayoutResponse {
	return PayoutResponse{
		ID:        payout.ID,
		UserID:    payout.UserID,
		Amount:    entity.FormatMoney(payout.Amount),
		Status:    string(payout.Status),
		Method:    string(payout.Method),
		CreatedAt: payout.CreatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
	}
}

// NewPayoutResponses maps a slice of payouts
func NewPayoutResponses(payouts []*entity.Payout) []PayoutResponse {
	responses := make([]PayoutResponse, 0, len(payouts))
	for _, payout := range payouts {
		responses = append(responses, NewPayoutResponse(payout))
	}
	return responses
}
