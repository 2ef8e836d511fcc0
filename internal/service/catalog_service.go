package service

import (
	"github.com/jinzhu/copier"

	"github.com/shashanktechgrah/backend-ExamSetu/internal/apperr"
	"github.com/shashanktechgrah/backend-ExamSetu/internal/dto"
	"github.com/shashanktechgrah/backend-ExamSetu/internal/repository"
)

// CatalogService serves the small read-only lookups the portal front end
// boots from: classes, subjects and the calling student's profile.
type CatalogService interface {
	ListClasses() ([]dto.ClassDTO, error)
	ListSubjects() ([]dto.SubjectDTO, error)
	GetStudentProfile(userID uint) (*dto.StudentProfileResponse, error)
}

type catalogService struct {
	classRepo   repository.ClassRepository
	subjectRepo repository.SubjectRepository
	userRepo    repository.UserRepository
}

func NewCatalogService(
	classRepo repository.ClassRepository,
	subjectRepo repository.SubjectRepository,
	userRepo repository.UserRepository,
) CatalogService {
	return &catalogService{classRepo: classRepo, subjectRepo: subjectRepo, userRepo: userRepo}
}

func (s *catalogService) ListClasses() ([]dto.ClassDTO, error) {
	classes, err := s.classRepo.FindAll()
	if err != nil {
		return nil, apperr.Internal("failed to list classes", err)
	}
	var items []dto.ClassDTO
	if err := copier.Copy(&items, &classes); err != nil {
		return nil, apperr.Internal("failed to map classes", err)
	}
	return items, nil
}

func (s *catalogService) ListSubjects() ([]dto.SubjectDTO, error) {
	subjects, err := s.subjectRepo.FindAll()
	if err != nil {
		return nil, apperr.Internal("failed to list subjects", err)
	}
	var items []dto.SubjectDTO
	if err := copier.Copy(&items, &subjects); err != nil {
		return nil, apperr.Internal("failed to map subjects", err)
	}
	return items, nil
}

func (s *catalogService) GetStudentProfile(userID uint) (*dto.StudentProfileResponse, error) {
	user, err := resolveStudent(s.userRepo, userID)
	if err != nil {
		return nil, err
	}

	student := user.Student
	profile := &dto.StudentProfileResponse{
		UserID:        user.ID,
		StudentID:     student.ID,
		RollNo:        student.RollNo,
		AdmissionDate: student.AdmissionDate,
		GuardianName:  student.GuardianName,
	}
	if student.Class.ID != 0 {
		profile.ClassName = &student.Class.ClassName
		if student.Class.Section != "" {
			profile.Section = &student.Class.Section
		}
	}
	return profile, nil
}
