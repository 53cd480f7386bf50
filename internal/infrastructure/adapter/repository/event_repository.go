package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/adsmarket/ledger-engine/internal/domain/entity"
	errs "github.com/adsmarket/ledger-engine/internal/domain/error"
	coreport "github.com/adsmarket/ledger-engine/internal/domain/port/core"
	"github.com/adsmarket/ledger-engine/internal/infrastructure/adapter/model"
)

// EventRepository implements persistence.EventRepository using GORM
type EventRepository struct {
	db     *gorm.DB
	logger coreport.Logger
}

// NewEventRepository creates a new EventRepository instance
func NewEventRepository(db *gorm.DB, logger coreport.Logger) *EventRepository {
	return &EventRepository{
		db:     db,
		logger: logger,
	}
}

// Create appends an unpublished outbox event
func (r *EventRepository) Create(ctx context.Context, event *entity.Event) error {
	eventModel := &model.Event{
		ID:          event.ID,
		Topic:       event.Topic,
		UserID:      event.UserID,
		Payload:     marshalMetadata(event.Payload),
		CreatedAt:   event.CreatedAt,
		PublishedAt: event.PublishedAt,
	}

	result := r.db.WithContext(ctx).Create(eventModel)
	if result.Error != nil {
		return fmt.Errorf("%w: %s", errs.ErrUnavailable, result.Error.Error())
	}
	return nil
}

// ListUnpublished returns events the notifier has not consumed yet,
// oldest first
func (r *EventRepository) ListUnpublished(ctx context.Context, limit int) ([]*entity.Event, error) {
	var eventModels []model.Event
	query := r.db.WithContext(ctx).
		Where("published_at IS NULL").
		Order("created_at ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	if err := query.Find(&eventModels).Error; err != nil {
		return nil, fmt.Errorf("%w: %s", errs.ErrUnavailable, err.Error())
	}

	events := make([]*entity.Event, 0, len(eventModels))
	for i := range eventModels {
		events = append(events, r.modelToEntity(&eventModels[i]))
	}
	return events, nil
}

// MarkPublished stamps an event as delivered
func (r *EventRepository) MarkPublished(ctx context.Context, id string, at time.Time) error {
	result := r.db.WithContext(ctx).Model(&model.Event{}).
		Where("id = ? AND published_at IS NULL", id).
		Update("published_at", at)

	if result.Error != nil {
		return fmt.Errorf("%w: %s", errs.ErrUnavailable, result.Error.Error())
	}
	if result.RowsAffected == 0 {
		return errs.ErrNotFound
	}
	return nil
}

func (r *EventRepository) modelToEntity(eventModel *model.Event) *entity.Event {
	return &entity.Event{
		ID:          eventModel.ID,
		Topic:       eventModel.Topic,
		UserID:      eventModel.UserID,
		Payload:     unmarshalMetadata(eventModel.Payload),
		CreatedAt:   eventModel.CreatedAt,
		PublishedAt: eventModel.PublishedAt,
	}
}
