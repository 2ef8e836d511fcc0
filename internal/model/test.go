package model

import (
	"time"

	"gorm.io/gorm"
)

const (
	TestTypeMock      = "MOCK"
	TestTypeScheduled = "SCHEDULED"

	TestStatusDraft     = "DRAFT"
	TestStatusPublished = "PUBLISHED"
)

type Test struct {
	ID            uint            `gorm:"primarykey" json:"id"`
	Title         string          `json:"title" gorm:"not null"`
	Description   string          `json:"description,omitempty"`
	TestType      string          `json:"test_type" gorm:"not null;index"` // "MOCK", "SCHEDULED"
	ClassID       uint            `json:"class_id" gorm:"not null;index"`
	Class         Class           `json:"class,omitempty" gorm:"foreignKey:ClassID"`
	SubjectID     uint            `json:"subject_id" gorm:"not null;index"`
	Subject       Subject         `json:"subject,omitempty" gorm:"foreignKey:SubjectID"`
	CreatedByID   *uint           `json:"created_by_id,omitempty"`
	TotalMarks    float64         `json:"total_marks" gorm:"not null"`
	DurationMin   int             `json:"duration_min" gorm:"not null"`
	PassingMarks  float64         `json:"passing_marks" gorm:"not null"`
	Status        string          `json:"status" gorm:"default:'DRAFT'"`
	TestQuestions []TestQuestion  `json:"test_questions,omitempty" gorm:"foreignKey:TestID"`
	MockConfig    *MockTestConfig `json:"mock_config,omitempty" gorm:"foreignKey:TestID"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
	DeletedAt     gorm.DeletedAt  `gorm:"index" json:"-"`
}

// TestQuestion links a test to a bank question. OrderNo is 1-based and fixed at
// creation; it defines the presentation order for serving and review.
type TestQuestion struct {
	ID         uint                 `gorm:"primarykey" json:"id"`
	TestID     uint                 `json:"test_id" gorm:"not null;index"`
	QuestionID uint                 `json:"question_id" gorm:"not null;index"`
	Question   QuestionBankQuestion `json:"question,omitempty" gorm:"foreignKey:QuestionID"`
	OrderNo    int                  `json:"order_no" gorm:"not null"`
	CreatedAt  time.Time            `json:"created_at"`
	UpdatedAt  time.Time            `json:"updated_at"`
}

// MockTestConfig records the requested sample size for a system-generated mock test.
type MockTestConfig struct {
	ID                uint      `gorm:"primarykey" json:"id"`
	TestID            uint      `json:"test_id" gorm:"not null;uniqueIndex"`
	NumberOfQuestions int       `json:"number_of_questions" gorm:"not null"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}
