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

// UserRepository implements persistence.UserRepository using GORM
type UserRepository struct {
	db              *gorm.DB
	timeProvider    coreport.TimeProvider
	logger          coreport.Logger
	errorClassifier *ErrorClassifier
}

// NewUserRepository creates a new UserRepository instance
func NewUserRepository(db *gorm.DB, timeProvider coreport.TimeProvider, logger coreport.Logger) *UserRepository {
	return &UserRepository{
		db:              db,
		timeProvider:    timeProvider,
		logger:          logger,
		errorClassifier: NewErrorClassifier(),
	}
}

func (r *UserRepository) modelToEntity(m *model.User) *entity.User {
	return &entity.User{
		ID:           m.ID,
		Balance:      m.Balance,
		ReferredByID: m.ReferredByID,
		Role:         entity.UserRole(m.Role),
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id uint64) (*entity.User, error) {
	var userModel model.User
	result := r.db.WithContext(ctx).First(&userModel, id)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, errs.ErrUserNotFound
		}
		r.logger.Error("Database error when getting user", map[string]any{
			"user_id": id,
			"error":   result.Error.Error(),
		})
		return nil, fmt.Errorf("%w: %s", errs.ErrUnavailable, result.Error.Error())
	}

	return r.modelToEntity(&userModel), nil
}

// Create creates a new user
func (r *UserRepository) Create(ctx context.Context, user *entity.User) error {
	userModel := model.User{
		ID:           user.ID,
		Balance:      user.Balance,
		ReferredByID: user.ReferredByID,
		Role:         string(user.Role),
		CreatedAt:    user.CreatedAt,
		UpdatedAt:    user.UpdatedAt,
	}

	result := r.db.WithContext(ctx).Create(&userModel)
	if result.Error != nil {
		r.logger.Error("Failed to create user", map[string]any{
			"user_id": user.ID,
			"error":   result.Error.Error(),
		})
		return fmt.Errorf("%w: %s", errs.ErrUnavailable, result.Error.Error())
	}

	user.ID = userModel.ID
	r.logger.Info("User created", map[string]any{
		"user_id": user.ID,
		"balance": entity.FormatMoney(user.Balance),
	})
	return nil
}

// AdjustBalance applies a signed delta as one conditional update. The
// WHERE clause carries the non-negativity check, so the read and the
// write are indivisible with respect to concurrent adjustments for
// the same user.
func (r *UserRepository) AdjustBalance(ctx context.Context, userID uint64, delta decimal.Decimal) (decimal.Decimal, error) {
	result := r.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ? AND balance + ? >= 0", userID, delta).
		Updates(map[string]interface{}{
			"balance":    gorm.Expr("balance + ?", delta),
			"updated_at": r.timeProvider.Now(),
		})

	if result.Error != nil {
		r.logger.Error("Database error during balance adjustment", map[string]any{
			"user_id": userID,
			"delta":   entity.FormatMoney(delta),
			"error":   result.Error.Error(),
		})
		return decimal.Zero, fmt.Errorf("%w: %s", errs.ErrUnavailable, result.Error.Error())
	}

	if result.RowsAffected == 0 {
		// Zero rows means either an unknown user or a failed
		// non-negativity check; re-read to tell them apart.
		var userModel model.User
		lookup := r.db.WithContext(ctx).First(&userModel, userID)
		if lookup.Error != nil {
			if errors.Is(lookup.Error, gorm.ErrRecordNotFound) {
				return decimal.Zero, errs.ErrUserNotFound
			}
			return decimal.Zero, fmt.Errorf("%w: %s", errs.ErrUnavailable, lookup.Error.Error())
		}

		r.logger.Warn("Insufficient balance for adjustment", map[string]any{
			"user_id": userID,
			"delta":   entity.FormatMoney(delta),
			"balance": entity.FormatMoney(userModel.Balance),
		})
		return decimal.Zero, errs.NewInsufficientBalanceError(userID, delta.Abs(), userModel.Balance)
	}

	var userModel model.User
	if err := r.db.WithContext(ctx).First(&userModel, userID).Error; err != nil {
		return decimal.Zero, fmt.Errorf("%w: %s", errs.ErrUnavailable, err.Error())
	}

	r.logger.Debug("Balance adjusted", map[string]any{
		"user_id":     userID,
		"delta":       entity.FormatMoney(delta),
		"new_balance": entity.FormatMoney(userModel.Balance),
	})
	return userModel.Balance, nil
}
