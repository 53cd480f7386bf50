package migration

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/adsmarket/ledger-engine/internal/domain/entity"
	coreport "github.com/adsmarket/ledger-engine/internal/domain/port/core"
	"github.com/adsmarket/ledger-engine/internal/infrastructure/adapter/model"
)

// SeedSettings inserts the singleton settings row if it does not exist yet
func SeedSettings(ctx context.Context, db *gorm.DB, logger coreport.Logger, timeProvider coreport.TimeProvider) error {
	var existing model.Settings
	err := db.WithContext(ctx).First(&existing, 1).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	defaults := entity.DefaultSettings()
	row := model.Settings{
		ID:                  defaults.ID,
		ReferralCommission:  defaults.ReferralCommission,
		PlatformCommission:  defaults.PlatformCommission,
		MinWithdrawalAmount: defaults.MinWithdrawalAmount,
		MaxWithdrawalAmount: defaults.MaxWithdrawalAmount,
		MaintenanceMode:     defaults.MaintenanceMode,
		RegistrationEnabled: defaults.RegistrationEnabled,
		UpdatedAt:           timeProvider.Now(),
	}

	if err := db.WithContext(ctx).Create(&row).Error; err != nil {
		return err
	}

	logger.Info("Seeded default settings", map[string]any{
		"referral_commission": defaults.ReferralCommission.String(),
		"platform_commission": defaults.PlatformCommission.String(),
	})
	return nil
}

// EnsureSystemActor returns the id of the platform account that collects
// commissions, creating it when the database is fresh
func EnsureSystemActor(ctx context.Context, db *gorm.DB, logger coreport.Logger, timeProvider coreport.TimeProvider) (uint64, error) {
	var existing model.User
	err := db.WithContext(ctx).Where("role = ?", string(entity.RoleAdmin)).Order("id asc").First(&existing).Error
	if err == nil {
		return existing.ID, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, err
	}

	now := timeProvider.Now()
	actor := model.User{
		Balance:   decimal.Zero,
		Role:      string(entity.RoleAdmin),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := db.WithContext(ctx).Create(&actor).Error; err != nil {
		return 0, err
	}

	logger.Info("Created platform system account", map[string]any{
		"user_id": actor.ID,
	})
	return actor.ID, nil
}
