package settings

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/adsmarket/ledger-engine/internal/domain/entity"
	errs "github.com/adsmarket/ledger-engine/internal/domain/error"
	coreport "github.com/adsmarket/ledger-engine/internal/domain/port/core"
	"github.com/adsmarket/ledger-engine/internal/domain/port/persistence"
)

// Service reads and updates the platform settings row
type Service struct {
	uow          persistence.UnitOfWork
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
}

// NewService creates a settings service
func NewService(
	uow persistence.UnitOfWork,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
) *Service {
	return &Service{
		uow:          uow,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// Get returns the current settings
func (s *Service) Get(ctx context.Context) (*entity.Settings, error) {
	return s.uow.Settings(ctx).Get(ctx)
}

// UpdateParams carries new settings values
type UpdateParams struct {
	ReferralCommission  decimal.Decimal
	PlatformCommission  decimal.Decimal
	MinWithdrawalAmount decimal.Decimal
	MaxWithdrawalAmount decimal.Decimal
	MaintenanceMode     bool
	RegistrationEnabled bool
}

// Update validates and persists new settings values
func (s *Service) Update(ctx context.Context, params UpdateParams) (*entity.Settings, error) {
	one := decimal.NewFromInt(1)
	if params.ReferralCommission.IsNegative() || params.ReferralCommission.GreaterThan(one) {
		return nil, errs.ErrInvalidAmount
	}
	if params.PlatformCommission.IsNegative() || params.PlatformCommission.GreaterThan(one) {
		return nil, errs.ErrInvalidAmount
	}
	if !params.MinWithdrawalAmount.IsPositive() || !params.MaxWithdrawalAmount.IsPositive() {
		return nil, errs.ErrInvalidAmount
	}
	if params.MinWithdrawalAmount.GreaterThan(params.MaxWithdrawalAmount) {
		return nil, errs.ErrInvalidAmount
	}

	updated := &entity.Settings{
		ID:                  1,
		ReferralCommission:  params.ReferralCommission,
		PlatformCommission:  params.PlatformCommission,
		MinWithdrawalAmount: entity.RoundMoney(params.MinWithdrawalAmount),
		MaxWithdrawalAmount: entity.RoundMoney(params.MaxWithdrawalAmount),
		MaintenanceMode:     params.MaintenanceMode,
		RegistrationEnabled: params.RegistrationEnabled,
		UpdatedAt:           s.timeProvider.Now(),
	}

	if err := s.uow.Settings(ctx).Update(ctx, updated); err != nil {
		return nil, err
	}

	s.logger.Info("Settings updated", map[string]any{
		"referral_commission": updated.ReferralCommission.String(),
		"platform_commission": updated.PlatformCommission.String(),
	})
	return updated, nil
}
