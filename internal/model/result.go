package model

import (
	"time"

	"gorm.io/gorm"
)

const (
	ResultStatusPass = "Pass"
	ResultStatusFail = "Fail"
)

// Result is the 1:1 aggregate outcome of an attempt. It is recomputed from the
// current answer set on every (re-)submission, never patched incrementally.
type Result struct {
	ID            uint           `gorm:"primarykey" json:"id"`
	AttemptID     uint           `json:"attempt_id" gorm:"not null;uniqueIndex"`
	Attempt       Attempt        `json:"attempt,omitempty" gorm:"foreignKey:AttemptID"`
	TotalMarks    float64        `json:"total_marks"`
	ObtainedMarks float64        `json:"obtained_marks"`
	Percentage    float64        `json:"percentage"`
	Status        string         `json:"status"` // "Pass", "Fail"
	Published     bool           `json:"published" gorm:"default:true"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}
