package model

import (
	"time"

	"gorm.io/gorm"
)

// Question types stored in the bank. MCQ questions carry options; every other
// type carries exactly one reference answer used for delegated grading.
const (
	QuestionTypeMCQ        = "MCQ"
	QuestionTypeTrueFalse  = "TRUE_FALSE"
	QuestionTypeInteger    = "INTEGER"
	QuestionTypeShort      = "SHORT"
	QuestionTypeSubjective = "SUBJECTIVE"
)

// QuestionSource records the provenance of imported questions (board, paper, year).
type QuestionSource struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	Board     string         `json:"board" gorm:"not null"`
	PaperName string         `json:"paper_name" gorm:"not null"`
	Year      int            `json:"year" gorm:"not null"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

type QuestionBankQuestion struct {
	ID            uint                       `gorm:"primarykey" json:"id"`
	ClassID       uint                       `json:"class_id" gorm:"not null;index"`
	Class         Class                      `json:"class,omitempty" gorm:"foreignKey:ClassID"`
	SubjectID     uint                       `json:"subject_id" gorm:"not null;index"`
	Subject       Subject                    `json:"subject,omitempty" gorm:"foreignKey:SubjectID"`
	SourceID      *uint                      `json:"source_id,omitempty" gorm:"index"`
	Source        *QuestionSource            `json:"source,omitempty" gorm:"foreignKey:SourceID"`
	QuestionText  string                     `json:"question_text" gorm:"type:text;not null"`
	QuestionType  string                     `json:"question_type" gorm:"not null"`
	Marks         float64                    `json:"marks" gorm:"not null"`
	Difficulty    string                     `json:"difficulty" gorm:"default:'MEDIUM'"`
	ImageURL      *string                    `json:"image_url,omitempty"`
	IsActive      bool                       `json:"is_active" gorm:"not null;default:true"`
	Options       []QuestionBankOption       `json:"options,omitempty" gorm:"foreignKey:QuestionID"`
	CorrectAnswer *QuestionBankCorrectAnswer `json:"correct_answer,omitempty" gorm:"foreignKey:QuestionID"`
	CreatedAt     time.Time                  `json:"created_at"`
	UpdatedAt     time.Time                  `json:"updated_at"`
	DeletedAt     gorm.DeletedAt             `gorm:"index" json:"-"`
}

type QuestionBankOption struct {
	ID         uint      `gorm:"primarykey" json:"id"`
	QuestionID uint      `json:"question_id" gorm:"not null;index"`
	OptionText string    `json:"option_text" gorm:"type:text;not null"`
	IsCorrect  bool      `json:"is_correct" gorm:"not null;default:false"`
	OrderNo    int       `json:"order_no" gorm:"not null"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// QuestionBankCorrectAnswer holds the reference answer for non-MCQ questions.
type QuestionBankCorrectAnswer struct {
	ID         uint      `gorm:"primarykey" json:"id"`
	QuestionID uint      `json:"question_id" gorm:"not null;uniqueIndex"`
	Correct    string    `json:"correct" gorm:"type:text;not null"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// IsMCQ reports whether the question is objectively gradable from its options.
func (q *QuestionBankQuestion) IsMCQ() bool {
	return q.QuestionType == QuestionTypeMCQ
}
