package notifier

import (
	"context"

	"github.com/adsmarket/ledger-engine/internal/domain/entity"
	coreport "github.com/adsmarket/ledger-engine/internal/domain/port/core"
)

// LogPublisher writes outbox events to the structured log. It stands
// in for a real notification transport; the engine's contract ends at
// handing the event over.
type LogPublisher struct {
	logger coreport.Logger
}

// NewLogPublisher creates a log-backed event publisher
func NewLogPublisher(logger coreport.Logger) *LogPublisher {
	return &LogPublisher{logger: logger}
}

// Publish emits the event as a structured log line
func (p *LogPublisher) Publish(_ context.Context, event *entity.Event) error {
	p.logger.Info("Outbox event", map[string]any{
		"event_id": event.ID,
		"topic":    event.Topic,
		"user_id":  event.UserID,
		"payload":  event.Payload,
	})
	return nil
}
