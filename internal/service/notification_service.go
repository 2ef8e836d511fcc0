package service

import (
	"errors"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/shashanktechgrah/backend-ExamSetu/internal/apperr"
	"github.com/shashanktechgrah/backend-ExamSetu/internal/dto"
	"github.com/shashanktechgrah/backend-ExamSetu/internal/model"
	"github.com/shashanktechgrah/backend-ExamSetu/internal/repository"
)

type NotificationService interface {
	// CreateNotifications fans one notification out per addressed class.
	// Classes are collected from classId, classIds and the classes of the
	// referenced users' student profiles.
	CreateNotifications(req dto.CreateNotificationRequest) ([]dto.NotificationDTO, error)
	// ListForStudent returns the notifications addressed to the calling
	// student's class, newest first.
	ListForStudent(userID uint) ([]dto.NotificationDTO, error)
}

type notificationService struct {
	notificationRepo repository.NotificationRepository
	userRepo         repository.UserRepository
}

func NewNotificationService(
	notificationRepo repository.NotificationRepository,
	userRepo repository.UserRepository,
) NotificationService {
	return &notificationService{notificationRepo: notificationRepo, userRepo: userRepo}
}

func (s *notificationService) CreateNotifications(req dto.CreateNotificationRequest) ([]dto.NotificationDTO, error) {
	classIDs := map[uint]bool{}
	if req.ClassID != nil {
		classIDs[*req.ClassID] = true
	}
	for _, id := range req.ClassIDs {
		classIDs[id] = true
	}
	for _, userID := range req.UserIDs {
		user, err := s.userRepo.FindWithStudentProfile(userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				log.Warn().Uint("user_id", userID).Msg("Notification target user not found, skipping")
				continue
			}
			return nil, apperr.Internal("failed to resolve notification target", err)
		}
		if user.Student != nil {
			classIDs[user.Student.ClassID] = true
		}
	}
	if len(classIDs) == 0 {
		return nil, apperr.Validation("notification needs at least one target class or user")
	}

	items := make([]dto.NotificationDTO, 0, len(classIDs))
	for classID := range classIDs {
		notification := &model.Notification{
			ClassID: classID,
			Title:   req.Title,
			Message: req.Message,
		}
		if err := s.notificationRepo.Create(notification); err != nil {
			return nil, apperr.Internal("failed to create notification", err)
		}
		items = append(items, notificationToDTO(notification))
	}
	return items, nil
}

func (s *notificationService) ListForStudent(userID uint) ([]dto.NotificationDTO, error) {
	user, err := resolveStudent(s.userRepo, userID)
	if err != nil {
		return nil, err
	}

	notifications, err := s.notificationRepo.FindAllByClass(user.Student.ClassID)
	if err != nil {
		return nil, apperr.Internal("failed to list notifications", err)
	}
	items := make([]dto.NotificationDTO, 0, len(notifications))
	for i := range notifications {
		items = append(items, notificationToDTO(&notifications[i]))
	}
	return items, nil
}

func notificationToDTO(n *model.Notification) dto.NotificationDTO {
	return dto.NotificationDTO{
		ID:        n.ID,
		ClassID:   n.ClassID,
		Title:     n.Title,
		Message:   n.Message,
		CreatedAt: n.CreatedAt,
	}
}
