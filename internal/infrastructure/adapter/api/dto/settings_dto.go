package dto

import (
	"github.com/adsmarket/ledger-engine/internal/domain/entity"
)

// SettingsResponse represents the platform settings in API responses
type SettingsResponse struct {
	ReferralCommission  string `json:"referralCommission"`
	PlatformCommission  string `json:"platformCommission"`
	MinWithdrawalAmount string `json:"minWithdrawalAmount"`
	MaxWithdrawalAmount string `json:"maxWithdrawalAmount"`
	MaintenanceMode     bool   `json:"maintenanceMode"`
	RegistrationEnabled bool   `json:"registrationEnabled"`
}

// NewSettingsResponse maps settings to their API representation
func NewSettingsResponse(settings *entity.Settings) SettingsResponse {
	return SettingsResponse{
		ReferralCommission:  settings.ReferralCommission.String(),
		PlatformCommission:  settings.PlatformCommission.String(),
		MinWithdrawalAmount: entity.FormatMoney(settings.MinWithdrawalAmount),
		MaxWithdrawalAmount: entity.FormatMoney(settings.MaxWithdrawalAmount),
		MaintenanceMode:     settings.MaintenanceMode,
		RegistrationEnabled: settings.RegistrationEnabled,
	}
}

// UpdateSettingsRequest represents the API request for changing settings
type UpdateSettingsRequest struct {
	ReferralCommission  string `json:"referralCommission" binding:"required"`
	PlatformCommission  string `json:"platformCommission" binding:"required"`
	MinWithdrawalAmount string `json:"minWithdrawalAmount" binding:"required"`
	MaxWithdrawalAmount string `json:"maxWithdrawalAmount" binding:"required"`
	MaintenanceMode     bool   `json:"maintenanceMode"`
	RegistrationEnabled bool   `json:"registrationEnabled"`
}
