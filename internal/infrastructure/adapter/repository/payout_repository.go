package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/adsmarket/ledger-engine/internal/domain/entity"
	errs "github.com/adsmarket/ledger-engine/internal/domain/error"
	coreport "github.com/adsmarket/ledger-engine/internal/domain/port/core"
	"github.com/adsmarket/ledger-engine/internal/infrastructure/adapter/model"
)

// PayoutRepository implements persistence.PayoutRepository using GORM
type PayoutRepository struct {
	db           *gorm.DB
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
}

// NewPayoutRepository creates a new PayoutRepository instance
func NewPayoutRepository(db *gorm.DB, timeProvider coreport.TimeProvider, logger coreport.Logger) *PayoutRepository {
	return &PayoutRepository{
		db:           db,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

func (r *PayoutRepository) modelToEntity(m *model.Payout) *entity.Payout {
	return &entity.Payout{
		ID:             m.ID,
		UserID:         m.UserID,
		Amount:         m.Amount,
		Status:         entity.PayoutStatus(m.Status),
		Method:         entity.PaymentMethod(m.Method),
		AccountDetails: m.AccountDetails,
		Metadata:       unmarshalMetadata(m.Metadata),
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}

// Create saves a new payout and backfills its generated identifier
func (r *PayoutRepository) Create(ctx context.Context, payout *entity.Payout) error {
	payoutModel := model.Payout{
		UserID:         payout.UserID,
		Amount:         payout.Amount,
		Status:         string(payout.Status),
		Method:         string(payout.Method),
		AccountDetails: payout.AccountDetails,
		Metadata:       marshalMetadata(payout.Metadata),
		CreatedAt:      payout.CreatedAt,
		UpdatedAt:      payout.UpdatedAt,
	}

	result := r.db.WithContext(ctx).Create(&payoutModel)
	if result.Error != nil {
		r.logger.Error("Failed to create payout", map[string]any{
			"user_id": payout.UserID,
			"error":   result.Error.Error(),
		})
		return fmt.Errorf("%w: %s", errs.ErrUnavailable, result.Error.Error())
	}

	payout.ID = payoutModel.ID
	return nil
}

// UpdateStatus moves a payout between statuses conditionally
func (r *PayoutRepository) UpdateStatus(ctx context.Context, id uint64, from, to entity.PayoutStatus) error {
	result := r.db.WithContext(ctx).Model(&model.Payout{}).
		Where("id = ? AND status = ?", id, string(from)).
		Updates(map[string]interface{}{
			"status":     string(to),
			"updated_at": r.timeProvider.Now(),
		})

	if result.Error != nil {
		return fmt.Errorf("%w: %s", errs.ErrUnavailable, result.Error.Error())
	}

	if result.RowsAffected == 0 {
		var count int64
		if err := r.db.WithContext(ctx).Model(&model.Payout{}).
			Where("id = ?", id).Count(&count).Error; err != nil {
			return fmt.Errorf("%w: %s", errs.ErrUnavailable, err.Error())
		}
		if count == 0 {
			return errs.ErrPayoutNotFound
		}
		return errs.NewInvalidTransitionError("payout", string(from), string(to))
	}

	return nil
}

// GetByID retrieves a payout by its identifier
func (r *PayoutRepository) GetByID(ctx context.Context, id uint64) (*entity.Payout, error) {
	var payoutModel model.Payout
	result := r.db.WithContext(ctx).First(&payoutModel, id)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, errs.ErrPayoutNotFound
		}
		return nil, fmt.Errorf("%w: %s", errs.ErrUnavailable, result.Error.Error())
	}

	return r.modelToEntity(&payoutModel), nil
}

// ListByUser returns a user's payouts, newest first
func (r *PayoutRepository) ListByUser(ctx context.Context, userID uint64) ([]*entity.Payout, error) {
	var models []model.Payout
	result := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&models)

	if result.Error != nil {
		return nil, fmt.Errorf("%w: %s", errs.ErrUnavailable, result.Error.Error())
	}

	payouts := make([]*entity.Payout, 0, len(models))
	for i := range models {
		payouts = append(payouts, r.modelToEntity(&models[i]))
	}
	return payouts, nil
}

// SumAmountsByStatuses totals payout amounts for a user across statuses
func (r *PayoutRepository) SumAmountsByStatuses(
	ctx context.Context,
	userID uint64,
	statuses []entity.PayoutStatus,
) (decimal.Decimal, error) {
	values := make([]string, 0, len(statuses))
	for _, s := range statuses {
		values = append(values, string(s))
	}

	var total decimal.NullDecimal
	result := r.db.WithContext(ctx).Model(&model.Payout{}).
		Where("user_id = ? AND status IN ?", userID, values).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total)

	if result.Error != nil {
		return decimal.Zero, fmt.Errorf("%w: %s", errs.ErrUnavailable, result.Error.Error())
	}
	if !total.Valid {
		return decimal.Zero, nil
	}
	return total.Decimal, nil
}
