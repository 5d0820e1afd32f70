package models

import (
	"time"

	"github.com/google/uuid"
)

// AuthToken is the opaque bearer credential, at most one per user. The key is
// reused across logins and replaced only on explicit logout.
type AuthToken struct {
	Key       string    `gorm:"size:64;primaryKey" json:"-"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	User      User      `gorm:"foreignKey:UserID" json:"-"`
}
