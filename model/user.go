package model

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	ID           string `gorm:"primaryKey" json:"id"`
	Name         string `gorm:"not null" json:"name"`
	Email        string `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"not null" json:"-"`

	// Both are nil or both are set. Cleared together with the password
	// update when a reset token is redeemed.
	ResetTokenHash   *string    `gorm:"index" json:"-"`
	ResetTokenExpiry *time.Time `json:"-"`

	CreatedAt time.Time      `json:"-"`
	UpdatedAt time.Time      `json:"-"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// Public returns the fields that are safe to send to clients.
func (u *User) Public() map[string]string {
	return map[string]string{
		"id":    u.ID,
		"name":  u.Name,
		"email": u.Email,
	}
}
