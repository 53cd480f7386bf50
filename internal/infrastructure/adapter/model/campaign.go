package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Campaign represents the database model for campaigns
type Campaign struct {
	ID            uint64          `gorm:"primaryKey;autoIncrement"`
	AdvertiserID  uint64          `gorm:"not null;index"`
	Budget        decimal.Decimal `gorm:"type:decimal(20,2);not null"`
	PricePerClick decimal.Decimal `gorm:"type:decimal(20,2);not null"`
	MaxClicks     *int64
	CurrentClicks int64      `gorm:"not null;default:0"`
	Status        string     `gorm:"not null;size:20;index"`
	BudgetCharged bool       `gorm:"not null;default:false"`
	StartDate     *time.Time
	CreatedAt     time.Time `gorm:"not null"`
	UpdatedAt     time.Time `gorm:"not null"`

	Advertiser User `gorm:"foreignKey:AdvertiserID;references:ID"`
}

// TableName specifies the table name for Campaign
func (Campaign) TableName() string {
	return "campaigns"
}
