package dto

import (
	"github.com/adsmarket/ledger-engine/internal/domain/entity"
)

// CreateEntryRequest represents the API request for creating a ledger entry
type CreateEntryRequest struct {
	UserID      uint64         `json:"userId" binding:"required"`
	Kind        string         `json:"kind" binding:"required,oneof=transaction payment"`
	Type        string         `json:"type" binding:"required"`
	Amount      string         `json:"amount" binding:"required"`
	Method      string         `json:"method,omitempty"`
	Description string         `json:"description,omitempty"`
	ExternalID  string         `json:"externalId,omitempty"`
	Metadata    map[string]any `json:"metadata,omitempty"`
	Settled     bool           `json:"settled,omitempty"`
}

// EntryResponse represents a ledger entry in API responses
type EntryResponse struct {
	ID          uint64         `json:"id"`
	UserID      uint64         `json:"userId"`
	Kind        string         `json:"kind"`
	Type        string         `json:"type"`
	Amount      string         `json:"amount"`
	Status      string         `json:"status"`
	Method      string         `json:"method,omitempty"`
	Description string         `json:"description,omitempty"`
	ExternalID  string         `json:"externalId,omitempty"`
	Metadata    map[string]any `json:"metadata,omitempty"`
	CreatedAt   string         `json:"createdAt"`
}

// NewEntryResponse maps a ledger entry to its API representation
func NewEntryResponse(entry *entity.LedgerEntry) EntryResponse {
	return EntryResponse{
		ID:          entry.ID,
		UserID:      entry.UserID,
		Kind:        string(entry.Kind),
		Type:        string(entry.Type),
		Amount:      entity.FormatMoney(entry.Amount),
		Status:      string(entry.Status),
		Method:      string(entry.Method),
		Description: entry.Description,
		ExternalID:  entry.ExternalID,
		Metadata:    entry.Metadata,
		CreatedAt:   entry.CreatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
	}
}

// NewEntryResponses maps a slice of ledger entries
func NewEntryResponses(entries []*entity.LedgerEntry) []EntryResponse {
	responses := make([]EntryResponse, 0, len(entries))
	for _, entry := range entries {
		responses = append(responses, NewEntryResponse(entry))
	}
	return responses
}

// WithdrawalRequest represents the API request for a withdrawal
type WithdrawalRequest struct {
	Amount  string `json:"amount" binding:"required"`
	Method  string `json:"method" binding:"required"`
	Details string `json:"details,omitempty"`
}

// DealRequest represents the API request for settling a deal
type DealRequest struct {
	BuyerID     uint64 `json:"buyerId" binding:"required"`
	SellerID    uint64 `json:"sellerId" binding:"required"`
	Amount      string `json:"amount" binding:"required"`
	ExternalID  string `json:"externalId" binding:"required"`
	Description string `json:"description,omitempty"`
}

// DealResponse represents the outcome of a deal settlement
type DealResponse struct {
	BuyerEntry  EntryResponse `json:"buyerEntry"`
	SellerEntry EntryResponse `json:"sellerEntry"`
	PlatformFee string        `json:"platformFee"`
}

// StatisticsRow represents one aggregated ledger statistics row
type StatisticsRow struct {
	Type   string `json:"type"`
	Status string `json:"status"`
	Count  int64  `json:"count"`
	Total  string `json:"total"`
}
