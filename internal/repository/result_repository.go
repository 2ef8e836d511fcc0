package repository

import (
	"github.com/shashanktechgrah/backend-ExamSetu/internal/model"
	"gorm.io/gorm"
)

type ResultRepository interface {
	FindAllByStudent(studentID uint) ([]model.Result, error)
}

type resultRepository struct {
	db *gorm.DB
}

func NewResultRepository(db *gorm.DB) ResultRepository {
	return &resultRepository{db: db}
}

func (r *resultRepository) FindAllByStudent(studentID uint) ([]model.Result, error) {
	var results []model.Result
	err := r.db.
		Preload("Attempt.Test.Subject").
		Preload("Attempt.Test.MockConfig").
		Preload("Attempt.Test.TestQuestions").
		Joins("JOIN attempts ON attempts.id = results.attempt_id").
		Where("attempts.student_id = ?", studentID).
		Order("results.created_at DESC").
		Find(&results).Error
	return results, err
}
