package model

import (
	"time"

	"gorm.io/gorm"
)

const (
	QuestionPending  = "pending"
	QuestionAnswered = "answered"
)

type Question struct {
	ID          string     `gorm:"primaryKey;size:21" json:"id"`
	StudentID   string     `gorm:"not null;index" json:"studentId"`
	StudentName string     `gorm:"not null" json:"studentName"`
	Question    string     `gorm:"not null" json:"question"`
	Status      string     `gorm:"not null;index" json:"status"`
	Reply       *string    `json:"reply"`
	Timestamp   time.Time  `gorm:"not null;index" json:"timestamp"`
	RepliedAt   *time.Time `json:"repliedAt"`
}

func (q *Question) BeforeCreate(*gorm.DB) error {
	return assignID(&q.ID)
}
