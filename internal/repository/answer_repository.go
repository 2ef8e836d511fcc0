package repository

import (
	"github.com/shashanktechgrah/backend-ExamSetu/internal/model"
	"gorm.io/gorm"
)

type AnswerRepository interface {
	FindByAttemptID(attemptID uint) ([]model.Answer, error)
}

type answerRepository struct {
	db *gorm.DB
}

func NewAnswerRepository(db *gorm.DB) AnswerRepository {
	return &answerRepository{db: db}
}

func (r *answerRepository) FindByAttemptID(attemptID uint) ([]model.Answer, error) {
	var answers []model.Answer
	err := r.db.Preload("SelectedOption").Where("attempt_id = ?", attemptID).Find(&answers).Error
	return answers, err
}
