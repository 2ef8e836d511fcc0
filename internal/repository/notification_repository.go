package repository

import (
	"github.com/shashanktechgrah/backend-ExamSetu/internal/model"
	"gorm.io/gorm"
)

type NotificationRepository interface {
	Create(notification *model.Notification) error
	FindAllByClass(classID uint) ([]model.Notification, error)
}

type notificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(notification *model.Notification) error {
	return r.db.Create(notification).Error
}

func (r *notificationRepository) FindAllByClass(classID uint) ([]model.Notification, error) {
	var notifications []model.Notification
	err := r.db.
		Where("class_id = ?", classID).
		Order("created_at DESC").
		Find(&notifications).Error
	return notifications, err
}
