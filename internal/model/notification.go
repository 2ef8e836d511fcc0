package model

import (
	"time"

	"gorm.io/gorm"
)

// Notification fans out to every student of a class.
type Notification struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	ClassID   uint           `json:"class_id" gorm:"not null;index"`
	Title     string         `json:"title" gorm:"not null"`
	Message   string         `json:"message" gorm:"type:text;not null"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
