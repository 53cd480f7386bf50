package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// User represents the database model for users
type User struct {
	ID           uint64          `gorm:"primaryKey"`
	Balance      decimal.Decimal `gorm:"type:decimal(20,2);not null;default:0"`
	ReferredByID *uint64         `gorm:"index"`
	Role         string          `gorm:"not null;size:20;default:'user'"`
	CreatedAt    time.Time       `gorm:"not null"`
	UpdatedAt    time.Time       `gorm:"not null"`
}

// TableName specifies the table name for User
func (User) TableName() string {
	return "users"
}
