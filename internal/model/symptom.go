package model

import (
	"time"

	"gorm.io/gorm"
)

type Symptom struct {
	ID           string    `gorm:"primaryKey;size:21" json:"id"`
	Name         string    `gorm:"uniqueIndex;not null" json:"name"`
	Description  string    `gorm:"not null" json:"description"`
	ResourceLink string    `gorm:"not null" json:"resourceLink"`
	Image        *string   `json:"image"` // Public URL of the stored image
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func (s *Symptom) BeforeCreate(*gorm.DB) error {
	return assignID(&s.ID)
}
