package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// WeeklyAssessment is one client week. WellbeingScore is a stored
// aggregate: the mean of the assessment's active habit scores rounded
// to two decimals, recomputed transactionally on every score mutation
// and never edited directly. It is nil until the first score lands and
// goes back to nil when the last active score is removed.
type WeeklyAssessment struct {
	ID             uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	ClientID       uuid.UUID      `gorm:"type:uuid;not null;column:client_id;uniqueIndex:uix_client_week,where:deleted_at IS NULL" json:"client_id"`
	WeekStart      datatypes.Date `gorm:"not null;column:week_start_date;uniqueIndex:uix_client_week,where:deleted_at IS NULL" json:"week_start_date"`
	WellbeingScore *float64       `gorm:"type:decimal(4,2);column:wellbeing_score" json:"wellbeing_score"`
	OverallComment *string        `gorm:"column:overall_comment" json:"overall_comment,omitempty"`
	SubmittedAt    time.Time      `gorm:"not null;column:submitted_at" json:"submitted_at"`
	CreatedAt      time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt      time.Time      `gorm:"not null" json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}

func (WeeklyAssessment) TableName() string {
	return "weekly_assessment"
}
