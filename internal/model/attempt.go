package model

import (
	"time"

	"gorm.io/gorm"
)

const (
	AttemptStatusStarted   = "STARTED"
	AttemptStatusSubmitted = "SUBMITTED"
)

// Attempt is one student's instance of taking a test. It is created in STARTED
// state together with the mock test and transitions once to SUBMITTED.
type Attempt struct {
	ID                uint           `gorm:"primarykey" json:"id"`
	TestID            uint           `json:"test_id" gorm:"not null;index"`
	Test              Test           `json:"test,omitempty" gorm:"foreignKey:TestID"`
	StudentID         uint           `json:"student_id" gorm:"not null;index"`
	Student           Student        `json:"student,omitempty" gorm:"foreignKey:StudentID"`
	Status            string         `json:"status" gorm:"default:'STARTED'"` // "STARTED", "SUBMITTED"
	TotalScore        float64        `json:"total_score"`
	Percentage        float64        `json:"percentage"`
	IsResultPublished bool           `json:"is_result_published" gorm:"default:false"`
	StartedAt         time.Time      `json:"started_at" gorm:"autoCreateTime"`
	SubmittedAt       *time.Time     `json:"submitted_at,omitempty"`
	Answers           []Answer       `json:"answers,omitempty" gorm:"foreignKey:AttemptID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Result            *Result        `json:"result,omitempty" gorm:"foreignKey:AttemptID"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
	DeletedAt         gorm.DeletedAt `gorm:"index" json:"-"`
}
