package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payout represents the database model for affiliate payout requests
type Payout struct {
	ID             uint64          `gorm:"primaryKey;autoIncrement"`
	UserID         uint64          `gorm:"not null;index"`
	Amount         decimal.Decimal `gorm:"type:decimal(20,2);not null"`
	Status         string          `gorm:"not null;size:20;index"`
	Method         string          `gorm:"not null;size:30"`
	AccountDetails string          `gorm:"type:text"`
	Metadata       string          `gorm:"type:jsonb;default:'{}'"`
	CreatedAt      time.Time       `gorm:"not null"`
	UpdatedAt      time.Time       `gorm:"not null"`

	User User `gorm:"foreignKey:UserID;references:ID"`
}

// TableName specifies the table name for Payout
func (Payout) TableName() string {
	return "payouts"
}
