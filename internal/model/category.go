package model

import (
	"time"

	"gorm.io/gorm"
)

type Category struct {
	ID          string    `gorm:"primaryKey;size:21" json:"id"`
	Name        string    `gorm:"uniqueIndex;not null" json:"name"`
	Description string    `gorm:"not null" json:"description"`
	Image       *string   `json:"image"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (c *Category) BeforeCreate(*gorm.DB) error {
	return assignID(&c.ID)
}
