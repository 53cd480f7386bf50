package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Settings represents the singleton settings row
type Settings struct {
	ID                  uint64          `gorm:"primaryKey"`
	ReferralCommission  decimal.Decimal `gorm:"type:decimal(8,4);not null"`
	PlatformCommission  decimal.Decimal `gorm:"type:decimal(8,4);not null"`
	MinWithdrawalAmount decimal.Decimal `gorm:"type:decimal(20,2);not null"`
	MaxWithdrawalAmount decimal.Decimal `gorm:"type:decimal(20,2);not null"`
	MaintenanceMode     bool            `gorm:"not null;default:false"`
	RegistrationEnabled bool            `gorm:"not null;default:true"`
	UpdatedAt           time.Time       `gorm:"not null"`
}

// TableName specifies the table name for Settings
func (Settings) TableName() string {
	return "settings"
}
