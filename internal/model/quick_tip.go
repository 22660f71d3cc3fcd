package model

import (
	"time"

	"gorm.io/gorm"
)

const (
	DefaultTipIcon     = "lightbulb"
	DefaultTipPriority = 1
	MinTipPriority     = 1
	MaxTipPriority     = 5
)

// QuickTip groups the tips shown for one category. There is at most one
// per category.
type QuickTip struct {
	ID         string    `gorm:"primaryKey;size:21" json:"id"`
	CategoryID string    `gorm:"uniqueIndex;not null" json:"categoryId"`
	Tips       []Tip     `gorm:"constraint:OnDelete:CASCADE" json:"tips"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

func (q *QuickTip) BeforeCreate(*gorm.DB) error {
	return assignID(&q.ID)
}

type Tip struct {
	ID         string `gorm:"primaryKey;size:21" json:"id"`
	QuickTipID string `gorm:"not null;index" json:"-"`
	Title      string `gorm:"not null" json:"title"`
	Content    string `gorm:"not null" json:"content"`
	Icon       string `gorm:"not null" json:"icon"`
	Priority   int    `gorm:"not null" json:"priority"`
	IsActive   bool   `gorm:"not null" json:"isActive"`
	// Keeps insertion order stable for tips sharing a priority
	Position int `gorm:"not null" json:"-"`
}

func (t *Tip) BeforeCreate(*gorm.DB) error {
	return assignID(&t.ID)
}
