package service

import (
	"github.com/rs/zerolog/log"

	"github.com/shashanktechgrah/backend-ExamSetu/internal/apperr"
	"github.com/shashanktechgrah/backend-ExamSetu/internal/dto"
	"github.com/shashanktechgrah/backend-ExamSetu/internal/model"
	"github.com/shashanktechgrah/backend-ExamSetu/internal/repository"
)

// AdminTestService is the instructor-authored test path: totals, duration and
// the question list come from the caller instead of being derived.
type AdminTestService interface {
	CreateTest(req dto.CreateTestRequest) (*model.Test, error)
	ListTests(filter repository.TestFilter) ([]dto.TestSummaryDTO, error)
}

type adminTestService struct {
	testRepo repository.TestRepository
}

func NewAdminTestService(testRepo repository.TestRepository) AdminTestService {
	return &adminTestService{testRepo: testRepo}
}

func (s *adminTestService) CreateTest(req dto.CreateTestRequest) (*model.Test, error) {
	if req.PassingMarks > req.TotalMarks {
		return nil, apperr.Validation("passingMarks cannot exceed totalMarks")
	}

	status := model.TestStatusDraft
	if len(req.Questions) > 0 {
		status = model.TestStatusPublished
	}

	test := &model.Test{
		Title:        req.Title,
		Description:  req.Description,
		TestType:     req.TestType,
		ClassID:      req.ClassID,
		SubjectID:    req.SubjectID,
		CreatedByID:  req.CreatedByID,
		TotalMarks:   req.TotalMarks,
		DurationMin:  req.DurationMin,
		PassingMarks: req.PassingMarks,
		Status:       status,
	}
	links := make([]model.TestQuestion, 0, len(req.Questions))
	for i, ref := range req.Questions {
		links = append(links, model.TestQuestion{QuestionID: ref.QuestionID, OrderNo: i + 1})
	}

	if err := s.testRepo.CreateWithQuestions(test, links); err != nil {
		return nil, apperr.Internal("failed to create test", err)
	}

	log.Info().Uint("test_id", test.ID).Str("title", test.Title).Int("questions", len(links)).Msg("Test created")
	return test, nil
}

func (s *adminTestService) ListTests(filter repository.TestFilter) ([]dto.TestSummaryDTO, error) {
	tests, err := s.testRepo.FindAll(filter)
	if err != nil {
		return nil, apperr.Internal("failed to list tests", err)
	}

	items := make([]dto.TestSummaryDTO, 0, len(tests))
	for _, t := range tests {
		items = append(items, dto.TestSummaryDTO{
			ID:           t.ID,
			Title:        t.Title,
			Description:  t.Description,
			TestType:     t.TestType,
			ClassName:    t.Class.ClassName,
			Section:      t.Class.Section,
			SubjectName:  t.Subject.SubjectName,
			TotalMarks:   t.TotalMarks,
			DurationMin:  t.DurationMin,
			PassingMarks: t.PassingMarks,
			Status:       t.Status,
			CreatedAt:    t.CreatedAt,
		})
	}
	return items, nil
}
