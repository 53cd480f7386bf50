package model

import (
	"time"
)

// Event represents an outbox row for the notification collaborator
type Event struct {
	ID          string    `gorm:"primaryKey;size:36"`
	Topic       string    `gorm:"not null;size:100;index"`
	UserID      uint64    `gorm:"not null;index"`
	Payload     string    `gorm:"type:jsonb;default:'{}'"`
	CreatedAt   time.Time `gorm:"not null;index"`
	PublishedAt *time.Time `gorm:"index"`
}

// TableName specifies the table name for Event
func (Event) TableName() string {
	return "events"
}
