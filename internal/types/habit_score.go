package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// HabitScore is one scored habit inside a weekly assessment. Owned by
// the assessment; the client-habit reference is weak, so unassigning a
// habit leaves its historical scores in place as an audit trail.
type HabitScore struct {
	ID            uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	AssessmentID  uuid.UUID      `gorm:"type:uuid;not null;column:assessment_id;uniqueIndex:uix_assessment_habit,where:deleted_at IS NULL" json:"assessment_id"`
	ClientHabitID uuid.UUID      `gorm:"type:uuid;not null;column:client_habit_id;uniqueIndex:uix_assessment_habit,where:deleted_at IS NULL" json:"client_habit_id"`
	Score         int            `gorm:"not null;column:score" json:"score"`
	Note          *string        `gorm:"column:note" json:"note,omitempty"`
	CreatedAt     time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt     time.Time      `gorm:"not null" json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

func (HabitScore) TableName() string {
	return "habit_score"
}
