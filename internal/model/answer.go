package model

import (
	"time"
)

const EvaluationTypeAuto = "AUTO"

// Answer is unique per (attempt, question); resubmission overwrites in place.
// IsCorrect is nullable: nil means correctness could not be determined
// automatically (free-text grading degraded or skipped).
type Answer struct {
	ID               uint                `gorm:"primarykey" json:"id"`
	AttemptID        uint                `json:"attempt_id" gorm:"not null;uniqueIndex:idx_answers_attempt_question"`
	QuestionID       uint                `json:"question_id" gorm:"not null;uniqueIndex:idx_answers_attempt_question"`
	SelectedOptionID *uint               `json:"selected_option_id,omitempty"`
	SelectedOption   *QuestionBankOption `json:"selected_option,omitempty" gorm:"foreignKey:SelectedOptionID"`
	AnswerText       *string             `json:"answer_text,omitempty" gorm:"type:text"`
	MarksObtained    float64             `json:"marks_obtained"`
	IsCorrect        *bool               `json:"is_correct,omitempty"`
	SimilarityScore  *float64            `json:"similarity_score,omitempty"`
	EvaluationType   *string             `json:"evaluation_type,omitempty"`
	CreatedAt        time.Time           `json:"created_at"`
	UpdatedAt        time.Time           `json:"updated_at"`
}
