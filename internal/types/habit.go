package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Habit is a master-list entry shared by all clients. It is never
// owned by a single client, so deleting one is rejected while any
// active assignment references it.
type Habit struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string         `gorm:"not null;column:name;uniqueIndex:uix_habit_name,where:deleted_at IS NULL" json:"name"`
	Description string         `gorm:"column:description" json:"description"`
	CreatedAt   time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"not null" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Habit) TableName() string {
	return "habit"
}
