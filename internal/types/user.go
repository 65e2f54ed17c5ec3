package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Role string

const (
	RoleClient     Role = "client"
	RoleCounsellor Role = "counsellor"
)

func (r Role) Valid() bool {
	return r == RoleClient || r == RoleCounsellor
}

// User is either a client or a counsellor. Email uniqueness only
// applies among active rows, hence the partial index; the email is
// stored lower-cased so the uniqueness is case-insensitive. Role is
// immutable after creation.
type User struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	FirstName string         `gorm:"not null;column:first_name" json:"first_name"`
	LastName  string         `gorm:"not null;column:last_name" json:"last_name"`
	Email     string         `gorm:"not null;column:email;uniqueIndex:uix_user_email,where:deleted_at IS NULL" json:"email"`
	Password  string         `gorm:"not null;column:password" json:"-"`
	Role      Role           `gorm:"type:varchar(16);not null;default:'client';column:role" json:"role"`
	CreatedAt time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (User) TableName() string {
	return "user"
}
