package types

import (
	"time"

	"github.com/google/uuid"
)

// UserToken holds the hash of an issued refresh token. Tokens are
// plumbing, not domain records, so they are hard-deleted on logout or
// rotation.
type UserToken struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index;column:user_id" json:"user_id"`
	Token     string    `gorm:"not null;column:token" json:"-"`
	ExpiresAt time.Time `gorm:"not null;column:expires_at" json:"expires_at"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

func (UserToken) TableName() string {
	return "user_token"
}
