package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ClientHabit assigns a master habit to a client. A client cannot hold
// the same habit twice, and display order is unique per client; both
// constraints are scoped to active rows. Historical habit scores keep
// referencing the row after it is soft-deleted, so it is never erased.
type ClientHabit struct {
	ID           uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	ClientID     uuid.UUID      `gorm:"type:uuid;not null;column:client_id;uniqueIndex:uix_client_habit,where:deleted_at IS NULL;uniqueIndex:uix_client_order,where:deleted_at IS NULL" json:"client_id"`
	HabitID      uuid.UUID      `gorm:"type:uuid;not null;column:habit_id;uniqueIndex:uix_client_habit,where:deleted_at IS NULL" json:"habit_id"`
	CustomLabel  *string        `gorm:"column:custom_label" json:"custom_label,omitempty"`
	DisplayOrder int            `gorm:"not null;column:display_order;uniqueIndex:uix_client_order,where:deleted_at IS NULL" json:"display_order"`
	CreatedAt    time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"not null" json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

func (ClientHabit) TableName() string {
	return "client_habit"
}
