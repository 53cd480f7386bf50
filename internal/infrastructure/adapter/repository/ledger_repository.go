package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/adsmarket/ledger-engine/internal/domain/entity"
	errs "github.com/adsmarket/ledger-engine/internal/domain/error"
	coreport "github.com/adsmarket/ledger-engine/internal/domain/port/core"
	"github.com/adsmarket/ledger-engine/internal/domain/port/persistence"
	"github.com/adsmarket/ledger-engine/internal/infrastructure/adapter/model"
)

// LedgerRepository implements persistence.LedgerRepository using GORM
type LedgerRepository struct {
	db              *gorm.DB
	timeProvider    coreport.TimeProvider
	logger          coreport.Logger
	errorClassifier *ErrorClassifier
}

// NewLedgerRepository creates a new LedgerRepository instance
func NewLedgerRepository(db *gorm.DB, timeProvider coreport.TimeProvider, logger coreport.Logger) *LedgerRepository {
	return &LedgerRepository{
		db:              db,
		timeProvider:    timeProvider,
		logger:          logger,
		errorClassifier: NewErrorClassifier(),
	}
}

func (r *LedgerRepository) entityToModel(e *entity.LedgerEntry) model.LedgerEntry {
	var externalID *string
	if e.ExternalID != "" {
		externalID = &e.ExternalID
	}
	return model.LedgerEntry{
		ID:            e.ID,
		UserID:        e.UserID,
		Kind:          string(e.Kind),
		Type:          string(e.Type),
		Amount:        e.Amount,
		Status:        string(e.Status),
		Method:        string(e.Method),
		Description:   e.Description,
		ExternalID:    externalID,
		Metadata:      marshalMetadata(e.Metadata),
		FundsReserved: e.FundsReserved,
		CreatedAt:     e.CreatedAt,
		UpdatedAt:     e.UpdatedAt,
	}
}

func (r *LedgerRepository) modelToEntity(m *model.LedgerEntry) *entity.LedgerEntry {
	externalID := ""
	if m.ExternalID != nil {
		externalID = *m.ExternalID
	}
	return &entity.LedgerEntry{
		ID:            m.ID,
		UserID:        m.UserID,
		Kind:          entity.EntryKind(m.Kind),
		Type:          entity.EntryType(m.Type),
		Amount:        m.Amount,
		Status:        entity.EntryStatus(m.Status),
		Method:        entity.PaymentMethod(m.Method),
		Description:   m.Description,
		ExternalID:    externalID,
		Metadata:      unmarshalMetadata(m.Metadata),
		FundsReserved: m.FundsReserved,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

// Create saves a new entry and backfills its generated identifier
func (r *LedgerRepository) Create(ctx context.Context, entry *entity.LedgerEntry) error {
	entryModel := r.entityToModel(entry)

	result := r.db.WithContext(ctx).Create(&entryModel)
	if result.Error != nil {
		if r.errorClassifier.IsDuplicateKeyError(result.Error) {
			r.logger.Warn("Duplicate ledger entry", map[string]any{
				"external_id": entry.ExternalID,
				"user_id":     entry.UserID,
			})
			return errs.ErrDuplicateEntry
		}
		r.logger.Error("Failed to create ledger entry", map[string]any{
			"user_id": entry.UserID,
			"type":    string(entry.Type),
			"error":   result.Error.Error(),
		})
		return fmt.Errorf("%w: %s", errs.ErrUnavailable, result.Error.Error())
	}

	entry.ID = entryModel.ID
	return nil
}

// UpdateStatus moves an entry between statuses as one conditional
// update; a zero affected-row count reports the lost race as
// ErrInvalidTransition after ruling out a missing row.
func (r *LedgerRepository) UpdateStatus(ctx context.Context, id uint64, from, to entity.EntryStatus) error {
	result := r.db.WithContext(ctx).Model(&model.LedgerEntry{}).
		Where("id = ? AND status = ?", id, string(from)).
		Updates(map[string]interface{}{
			"status":     string(to),
			"updated_at": r.timeProvider.Now(),
		})

	if result.Error != nil {
		r.logger.Error("Failed to update ledger entry status", map[string]any{
			"entry_id": id,
			"error":    result.Error.Error(),
		})
		return fmt.Errorf("%w: %s", errs.ErrUnavailable, result.Error.Error())
	}

	if result.RowsAffected == 0 {
		var count int64
		if err := r.db.WithContext(ctx).Model(&model.LedgerEntry{}).
			Where("id = ?", id).Count(&count).Error; err != nil {
			return fmt.Errorf("%w: %s", errs.ErrUnavailable, err.Error())
		}
		if count == 0 {
			return errs.ErrEntryNotFound
		}
		return errs.NewInvalidTransitionError("ledger entry", "unknown", string(to))
	}

	return nil
}

// GetByID retrieves an entry by its identifier
func (r *LedgerRepository) GetByID(ctx context.Context, id uint64) (*entity.LedgerEntry, error) {
	var entryModel model.LedgerEntry
	result := r.db.WithContext(ctx).First(&entryModel, id)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, errs.ErrEntryNotFound
		}
		return nil, fmt.Errorf("%w: %s", errs.ErrUnavailable, result.Error.Error())
	}

	return r.modelToEntity(&entryModel), nil
}

// GetByExternalID retrieves an entry by its reconciliation key
func (r *LedgerRepository) GetByExternalID(ctx context.Context, externalID string) (*entity.LedgerEntry, error) {
	var entryModel model.LedgerEntry
	result := r.db.WithContext(ctx).Where("external_id = ?", externalID).First(&entryModel)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, errs.ErrEntryNotFound
		}
		return nil, fmt.Errorf("%w: %s", errs.ErrUnavailable, result.Error.Error())
	}

	return r.modelToEntity(&entryModel), nil
}

// ExistsByExternalID checks an idempotency key without loading the row
func (r *LedgerRepository) ExistsByExternalID(ctx context.Context, externalID string) (bool, error) {
	var count int64
	result := r.db.WithContext(ctx).Model(&model.LedgerEntry{}).
		Where("external_id = ?", externalID).
		Count(&count)

	if result.Error != nil {
		return false, fmt.Errorf("%w: %s", errs.ErrUnavailable, result.Error.Error())
	}
	return count > 0, nil
}

func applyCriteria(db *gorm.DB, criteria persistence.LedgerCriteria) *gorm.DB {
	if criteria.UserID != 0 {
		db = db.Where("user_id = ?", criteria.UserID)
	}
	if criteria.Kind != "" {
		db = db.Where("kind = ?", string(criteria.Kind))
	}
	if criteria.Type != "" {
		db = db.Where("type = ?", string(criteria.Type))
	}
	if criteria.Status != "" {
		db = db.Where("status = ?", string(criteria.Status))
	}
	if criteria.CreatedFrom != nil {
		db = db.Where("created_at >= ?", *criteria.CreatedFrom)
	}
	if criteria.CreatedTo != nil {
		db = db.Where("created_at < ?", *criteria.CreatedTo)
	}
	return db
}

// Find returns entries matching the criteria
func (r *LedgerRepository) Find(ctx context.Context, criteria persistence.LedgerCriteria) ([]*entity.LedgerEntry, error) {
	db := applyCriteria(r.db.WithContext(ctx).Model(&model.LedgerEntry{}), criteria)

	order := "created_at DESC"
	if criteria.Ascending {
		order = "created_at ASC"
	}
	db = db.Order(order)

	if criteria.Limit > 0 {
		db = db.Limit(criteria.Limit)
	}
	if criteria.Offset > 0 {
		db = db.Offset(criteria.Offset)
	}

	var models []model.LedgerEntry
	if err := db.Find(&models).Error; err != nil {
		return nil, fmt.Errorf("%w: %s", errs.ErrUnavailable, err.Error())
	}

	entries := make([]*entity.LedgerEntry, 0, len(models))
	for i := range models {
		entries = append(entries, r.modelToEntity(&models[i]))
	}
	return entries, nil
}

// SumAmounts totals the amounts of matching entries
func (r *LedgerRepository) SumAmounts(ctx context.Context, criteria persistence.LedgerCriteria) (decimal.Decimal, error) {
	var total decimal.NullDecimal
	db := applyCriteria(r.db.WithContext(ctx).Model(&model.LedgerEntry{}), criteria)

	if err := db.Select("COALESCE(SUM(amount), 0)").Scan(&total).Error; err != nil {
		return decimal.Zero, fmt.Errorf("%w: %s", errs.ErrUnavailable, err.Error())
	}
	if !total.Valid {
		return decimal.Zero, nil
	}
	return total.Decimal, nil
}

// Statistics returns counts and sums grouped by type and status
func (r *LedgerRepository) Statistics(ctx context.Context, from, to *time.Time) ([]persistence.LedgerStatistics, error) {
	type row struct {
		Type   string
		Status string
		Count  int64
		Total  decimal.Decimal
	}

	db := r.db.WithContext(ctx).Model(&model.LedgerEntry{}).
		Select("type, status, COUNT(*) AS count, COALESCE(SUM(amount), 0) AS total").
		Group("type, status")
	if from != nil {
		db = db.Where("created_at >= ?", *from)
	}
	if to != nil {
		db = db.Where("created_at < ?", *to)
	}

	var rows []row
	if err := db.Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("%w: %s", errs.ErrUnavailable, err.Error())
	}

	stats := make([]persistence.LedgerStatistics, 0, len(rows))
	for _, r := range rows {
		stats = append(stats, persistence.LedgerStatistics{
			Type:   entity.EntryType(r.Type),
			Status: entity.EntryStatus(r.Status),
			Count:  r.Count,
			Total:  r.Total,
		})
	}
	return stats, nil
}
