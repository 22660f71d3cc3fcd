package model

import (
	"time"

	"gorm.io/gorm"
)

type Note struct {
	ID        string    `gorm:"primaryKey;size:21" json:"id"`
	UserID    string    `gorm:"not null;index" json:"userId"`
	Text      string    `gorm:"not null" json:"text"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (n *Note) BeforeCreate(*gorm.DB) error {
	return assignID(&n.ID)
}
