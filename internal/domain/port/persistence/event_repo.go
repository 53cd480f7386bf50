package persistence

import (
	"context"
	"time"

	"github.com/adsmarket/ledger-engine/internal/domain/entity"
)

// EventRepository stores outbox events for the notification collaborator
type EventRepository interface {
	// Create appends an unpublished event
	Create(ctx context.Context, event *entity.Event) error

	// ListUnpublished returns events the notifier has not consumed yet
	ListUnpublished(ctx context.Context, limit int) ([]*entity.Event, error)

	// MarkPublished stamps an event as delivered
	MarkPublished(ctx context.Context, id string, at time.Time) error
}
