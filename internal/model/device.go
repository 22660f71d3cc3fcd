package model

import (
	"time"

	"gorm.io/gorm"
)

type Device struct {
	ID             string    `gorm:"primaryKey;size:21" json:"id"`
	Name           string    `gorm:"not null;index" json:"name"`
	Category       string    `gorm:"not null;index" json:"category"` // Name of a Category
	Description    string    `gorm:"not null" json:"description"`
	Reference      string    `gorm:"not null" json:"reference"`
	LinkOfResource string    `gorm:"not null" json:"linkOfResource"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

func (d *Device) BeforeCreate(*gorm.DB) error {
	return assignID(&d.ID)
}
