package model

import (
	"time"

	"gorm.io/gorm"
)

const (
	RoleStudent = "student"
	RoleAdmin   = "admin"
)

type User struct {
	ID       string `gorm:"primaryKey;size:21" json:"id"`
	UID      string `gorm:"uniqueIndex;not null" json:"uid"` // Issued by the identity provider
	Email    string `gorm:"not null" json:"email"`
	Name     string `gorm:"not null" json:"name"`
	Role     string `gorm:"not null;index" json:"role"`
	Verified bool   `gorm:"not null" json:"verified"`

	// Single use, cleared once an admin follows the approval link
	VerificationToken *string    `gorm:"index" json:"-"`
	TokenIssuedAt     *time.Time `json:"-"`
	TokenExpiresAt    *time.Time `json:"-"`

	FCMToken       *string    `gorm:"index" json:"fcmToken"`
	TokenUpdatedAt *time.Time `json:"tokenUpdatedAt"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (u *User) BeforeCreate(*gorm.DB) error {
	return assignID(&u.ID)
}
