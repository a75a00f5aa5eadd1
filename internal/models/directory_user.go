package models

import (
	"time"

	"github.com/google/uuid"
)

// DirectoryUser is the application profile of a non-allow-listed account.
// Email is the lookup key but is not unique at the storage level.
type DirectoryUser struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UID       string    `gorm:"size:64;index" json:"uid"`
	Name      string    `gorm:"size:255" json:"name"`
	Email     string    `gorm:"size:255;not null;index" json:"email"`
	IsEnabled bool      `gorm:"not null" json:"isEnabled"`
	IsAdmin   bool      `gorm:"not null" json:"isAdmin"`
	CreatedAt time.Time `gorm:"index" json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (DirectoryUser) TableName() string { return "users" }

// AuthAccount is the authentication provider's own credential record.
type AuthAccount struct {
	UID          string    `gorm:"size:64;primaryKey" json:"uid"`
	Email        string    `gorm:"size:255;not null;uniqueIndex" json:"email"`
	PasswordHash string    `gorm:"not null" json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
