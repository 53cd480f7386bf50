package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/adsmarket/ledger-engine/internal/domain/entity"
	errs "github.com/adsmarket/ledger-engine/internal/domain/error"
	coreport "github.com/adsmarket/ledger-engine/internal/domain/port/core"
	"github.com/adsmarket/ledger-engine/internal/infrastructure/adapter/model"
)

// settingsRowID is the fixed primary key of the singleton row
const settingsRowID = 1

// SettingsRepository implements persistence.SettingsRepository using GORM
type SettingsRepository struct {
	db           *gorm.DB
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
}

// NewSettingsRepository creates a new SettingsRepository instance
func NewSettingsRepository(db *gorm.DB, timeProvider coreport.TimeProvider, logger coreport.Logger) *SettingsRepository {
	return &SettingsRepository{
		db:           db,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// Get returns the settings row
func (r *SettingsRepository) Get(ctx context.Context) (*entity.Settings, error) {
	var settingsModel model.Settings
	result := r.db.WithContext(ctx).First(&settingsModel, settingsRowID)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, errs.ErrSettingsNotFound
		}
		return nil, fmt.Errorf("%w: %s", errs.ErrUnavailable, result.Error.Error())
	}

	return &entity.Settings{
		ID:                  settingsModel.ID,
		ReferralCommission:  settingsModel.ReferralCommission,
		PlatformCommission:  settingsModel.PlatformCommission,
		MinWithdrawalAmount: settingsModel.MinWithdrawalAmount,
		MaxWithdrawalAmount: settingsModel.MaxWithdrawalAmount,
		MaintenanceMode:     settingsModel.MaintenanceMode,
		RegistrationEnabled: settingsModel.RegistrationEnabled,
		UpdatedAt:           settingsModel.UpdatedAt,
	}, nil
}

// Update persists new settings values
func (r *SettingsRepository) Update(ctx context.Context, settings *entity.Settings) error {
	result := r.db.WithContext(ctx).Model(&model.Settings{}).
		Where("id = ?", settingsRowID).
		Updates(map[string]interface{}{
			"referral_commission":   settings.ReferralCommission,
			"platform_commission":   settings.PlatformCommission,
			"min_withdrawal_amount": settings.MinWithdrawalAmount,
			"max_withdrawal_amount": settings.MaxWithdrawalAmount,
			"maintenance_mode":      settings.MaintenanceMode,
			"registration_enabled":  settings.RegistrationEnabled,
			"updated_at":            r.timeProvider.Now(),
		})

	if result.Error != nil {
		return fmt.Errorf("%w: %s", errs.ErrUnavailable, result.Error.Error())
	}
	if result.RowsAffected == 0 {
		return errs.ErrSettingsNotFound
	}
	return nil
}
