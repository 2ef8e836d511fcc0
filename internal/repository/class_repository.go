package repository

import (
	"github.com/shashanktechgrah/backend-ExamSetu/internal/model"
	"gorm.io/gorm"
)

type ClassRepository interface {
	FindAll() ([]model.Class, error)
}

type classRepository struct {
	db *gorm.DB
}

func NewClassRepository(db *gorm.DB) ClassRepository {
	return &classRepository{db: db}
}

func (r *classRepository) FindAll() ([]model.Class, error) {
	var classes []model.Class
	err := r.db.Order("class_name ASC").Find(&classes).Error
	return classes, err
}
