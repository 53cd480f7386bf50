package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// LedgerEntry represents the database model for ledger entries.
// external_id carries a unique partial index (NULLs excluded) so empty
// reconciliation keys don't collide.
type LedgerEntry struct {
	ID            uint64          `gorm:"primaryKey;autoIncrement"`
	UserID        uint64          `gorm:"not null;index"`
	Kind          string          `gorm:"not null;size:20;index"`
	Type          string          `gorm:"not null;size:30;index"`
	Amount        decimal.Decimal `gorm:"type:decimal(20,2);not null"`
	Status        string          `gorm:"not null;size:20;index"`
	Method        string          `gorm:"size:30"`
	Description   string          `gorm:"type:text"`
	ExternalID    *string         `gorm:"uniqueIndex;size:255"`
	Metadata      string          `gorm:"type:jsonb;default:'{}'"`
	FundsReserved bool            `gorm:"not null;default:false"`
	CreatedAt     time.Time       `gorm:"not null;index"`
	UpdatedAt     time.Time       `gorm:"not null"`

	User User `gorm:"foreignKey:UserID;references:ID"`
}

// TableName specifies the table name for LedgerEntry
func (LedgerEntry) TableName() string {
	return "ledger_entries"
}
