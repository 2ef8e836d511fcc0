package repository

import (
	"github.com/shashanktechgrah/backend-ExamSetu/internal/model"
	"gorm.io/gorm"
)

type UserRepository interface {
	// FindWithStudentProfile loads the user with the student profile and its
	// class attached, when present.
	FindWithStudentProfile(userID uint) (*model.User, error)
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) FindWithStudentProfile(userID uint) (*model.User, error) {
	var user model.User
	if err := r.db.Preload("Student.Class").First(&user, userID).Error; err != nil {
		return nil, err
	}
	return &user, nil
}
