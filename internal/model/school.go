package model

import (
	"time"

	"gorm.io/gorm"
)

const (
	RoleStudent = "STUDENT"
	RoleTeacher = "TEACHER"
	RoleAdmin   = "ADMIN"
)

type Class struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	ClassName string         `json:"class_name" gorm:"not null"`
	Section   string         `json:"section,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

type Subject struct {
	ID          uint           `gorm:"primarykey" json:"id"`
	SubjectName string         `json:"subject_name" gorm:"not null;uniqueIndex"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

type User struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	Name      string         `json:"name" gorm:"not null"`
	Email     string         `json:"email" gorm:"not null;uniqueIndex"`
	Role      string         `json:"role" gorm:"not null"` // "STUDENT", "TEACHER", "ADMIN"
	Student   *Student       `json:"student,omitempty" gorm:"foreignKey:UserID"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

type Student struct {
	ID            uint           `gorm:"primarykey" json:"id"`
	UserID        uint           `json:"user_id" gorm:"not null;uniqueIndex"`
	ClassID       uint           `json:"class_id" gorm:"not null;index"`
	Class         Class          `json:"class,omitempty" gorm:"foreignKey:ClassID"`
	RollNo        *string        `json:"roll_no,omitempty"`
	GuardianName  *string        `json:"guardian_name,omitempty"`
	AdmissionDate *time.Time     `json:"admission_date,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}
