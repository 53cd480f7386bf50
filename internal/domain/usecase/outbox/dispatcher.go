package outbox

import (
	"context"
	"time"

	"github.com/adsmarket/ledger-engine/internal/domain/entity"
	coreport "github.com/adsmarket/ledger-engine/internal/domain/port/core"
	"github.com/adsmarket/ledger-engine/internal/domain/port/persistence"
)

// Publisher delivers an outbox event to the notification collaborator.
// Delivery is at-least-once: an event is marked published only after
// Publish returns nil, so a crash in between produces a redelivery,
// never a loss.
type Publisher interface {
	Publish(ctx context.Context, event *entity.Event) error
}

// Dispatcher polls unpublished outbox rows and hands them to the
// publisher in creation order.
type Dispatcher struct {
	uow          persistence.UnitOfWork
	publisher    Publisher
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
	interval     time.Duration
	batchSize    int
}

// NewDispatcher creates an outbox dispatcher
func NewDispatcher(
	uow persistence.UnitOfWork,
	publisher Publisher,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
	interval time.Duration,
	batchSize int,
) *Dispatcher {
	if interval <= 0 {
		interval = 5 * time.Second
	}
	if batchSize <= 0 {
		batchSize = 100
	}
	return &Dispatcher{
		uow:          uow,
		publisher:    publisher,
		timeProvider: timeProvider,
		logger:       logger,
		interval:     interval,
		batchSize:    batchSize,
	}
}

// Run polls until the context is cancelled. Errors are logged and the
// next tick retries; the dispatcher never stops on its own.
func (d *Dispatcher) Run(ctx context.Context) {
	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			d.logger.Info("Outbox dispatcher stopped", nil)
			return
		case <-ticker.C:
			if _, err := d.DrainOnce(ctx); err != nil {
				d.logger.Error("Outbox drain failed", map[string]any{"error": err.Error()})
			}
		}
	}
}

// DrainOnce publishes one batch of unpublished events and returns how
// many were delivered.
func (d *Dispatcher) DrainOnce(ctx context.Context) (int, error) {
	events, err := d.uow.Events(ctx).ListUnpublished(ctx, d.batchSize)
	if err != nil {
		return 0, err
	}

	delivered := 0
	for _, event := range events {
		if err := d.publisher.Publish(ctx, event); err != nil {
			// Stop the batch to preserve per-user ordering; the
			// failed event is retried on the next tick.
			d.logger.Warn("Event publish failed", map[string]any{
				"event_id": event.ID,
				"topic":    event.Topic,
				"error":    err.Error(),
			})
			return delivered, err
		}
		if err := d.uow.Events(ctx).MarkPublished(ctx, event.ID, d.timeProvider.Now()); err != nil {
			return delivered, err
		}
		delivered++
	}

	if delivered > 0 {
		d.logger.Debug("Outbox batch delivered", map[string]any{"count": delivered})
	}
	return delivered, nil
}
