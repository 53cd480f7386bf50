package entity

import (
	"time"

	"github.com/google/uuid"

	coreport "github.com/adsmarket/ledger-engine/internal/domain/port/core"
)

// Event topics consumed by the notification collaborator
const (
	TopicReferralCommissionCompleted = "referral.commission.completed"
	TopicWithdrawalStatusChanged     = "withdrawal.status_changed"
	TopicPayoutStatusChanged         = "payout.status_changed"
)

// Event is an outbox row appended in the same unit of work as the
// change it describes. The notifier polls unpublished rows; the engine
// never formats or delivers notification content.
type Event struct {
	ID          string
	Topic       string
	UserID      uint64
	Payload     map[string]any
	CreatedAt   time.Time
	PublishedAt *time.Time
}

// NewEvent creates an unpublished outbox event
func NewEvent(topic string, userID uint64, payload map[string]any, timeProvider coreport.TimeProvider) *Event {
	if payload == nil {
		payload = map[string]any{}
	}
	return &Event{
		ID:        uuid.NewString(),
		Topic:     topic,
		UserID:    userID,
		Payload:   payload,
		CreatedAt: timeProvider.Now(),
	}
}
