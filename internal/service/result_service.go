package service

import (
	"math"

	"github.com/shashanktechgrah/backend-ExamSetu/internal/apperr"
	"github.com/shashanktechgrah/backend-ExamSetu/internal/dto"
	"github.com/shashanktechgrah/backend-ExamSetu/internal/repository"
)

type ResultService interface {
	// ListResults returns the calling student's finished attempts, newest
	// first, with time taken derived from the attempt timestamps.
	ListResults(userID uint) ([]dto.ResultSummaryDTO, error)
}

type resultService struct {
	userRepo   repository.UserRepository
	resultRepo repository.ResultRepository
}

func NewResultService(userRepo repository.UserRepository, resultRepo repository.ResultRepository) ResultService {
	return &resultService{userRepo: userRepo, resultRepo: resultRepo}
}

func (s *resultService) ListResults(userID uint) ([]dto.ResultSummaryDTO, error) {
	user, err := resolveStudent(s.userRepo, userID)
	if err != nil {
		return nil, err
	}

	results, err := s.resultRepo.FindAllByStudent(user.Student.ID)
	if err != nil {
		return nil, apperr.Internal("failed to list results", err)
	}

	items := make([]dto.ResultSummaryDTO, 0, len(results))
	for _, r := range results {
		attempt := r.Attempt
		test := attempt.Test

		totalQuestions := len(test.TestQuestions)
		if test.MockConfig != nil {
			totalQuestions = test.MockConfig.NumberOfQuestions
		}

		item := dto.ResultSummaryDTO{
			ID:             r.ID,
			AttemptID:      r.AttemptID,
			TestID:         attempt.TestID,
			Subject:        test.Subject.SubjectName,
			TestType:       test.TestType,
			Date:           r.CreatedAt,
			TotalQuestions: totalQuestions,
			DurationMin:    test.DurationMin,
			TotalMarks:     r.TotalMarks,
			ObtainedMarks:  r.ObtainedMarks,
			Percentage:     r.Percentage,
			Status:         r.Status,
			Published:      r.Published,
		}
		if attempt.SubmittedAt != nil {
			sec := int(attempt.SubmittedAt.Sub(attempt.StartedAt).Seconds())
			if sec < 0 {
				sec = 0
			}
			min := int(math.Ceil(float64(sec) / 60))
			item.TimeTakenSec = &sec
			item.TimeTakenMin = &min
		}
		items = append(items, item)
	}
	return items, nil
}
