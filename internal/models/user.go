package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User authenticates by email; username is a required display name and is
// deliberately not unique.
type User struct {
	ID          uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Username    string         `gorm:"size:150;not null" json:"username"`
	Email       string         `gorm:"size:255;not null;uniqueIndex" json:"email"`
	Password    string         `gorm:"not null" json:"-"`
	FirstName   string         `gorm:"size:150" json:"first_name"`
	LastName    string         `gorm:"size:150" json:"last_name"`
	IsActive    bool           `gorm:"not null;default:true" json:"is_active"`
	IsStaff     bool           `gorm:"not null;default:false" json:"is_staff"`
	IsSuperuser bool           `gorm:"not null;default:false" json:"is_superuser"`
	DateJoined  time.Time      `gorm:"<-:create;autoCreateTime" json:"date_joined"`
	UpdatedAt   time.Time      `json:"-"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}
