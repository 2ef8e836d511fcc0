package service

import (
	"errors"

	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/shashanktechgrah/backend-ExamSetu/internal/apperr"
	"github.com/shashanktechgrah/backend-ExamSetu/internal/dto"
	"github.com/shashanktechgrah/backend-ExamSetu/internal/model"
	"github.com/shashanktechgrah/backend-ExamSetu/internal/repository"
)

type QuestionBankService interface {
	// CreateQuestion validates the per-type payload shape and inserts the
	// question with its options or reference answer.
	CreateQuestion(req dto.CreateQuestionRequest) (*model.QuestionBankQuestion, error)
	ListQuestions(filter repository.QuestionBankFilter) ([]dto.QuestionBankItemDTO, error)
	// DeactivateQuestion retires a question from future sampling without
	// touching tests that already reference it.
	DeactivateQuestion(id uint) error
}

type questionBankService struct {
	questionRepo repository.QuestionBankRepository
	sourceRepo   repository.QuestionSourceRepository
}

func NewQuestionBankService(
	questionRepo repository.QuestionBankRepository,
	sourceRepo repository.QuestionSourceRepository,
) QuestionBankService {
	return &questionBankService{questionRepo: questionRepo, sourceRepo: sourceRepo}
}

func (s *questionBankService) CreateQuestion(req dto.CreateQuestionRequest) (*model.QuestionBankQuestion, error) {
	if req.QuestionType == model.QuestionTypeMCQ {
		if len(req.Options) < 2 {
			return nil, apperr.Validation("MCQ questions need at least two options")
		}
		correct := 0
		for _, opt := range req.Options {
			if opt.IsCorrect {
				correct++
			}
		}
		if correct == 0 {
			return nil, apperr.Validation("MCQ questions need at least one correct option")
		}
	} else {
		if req.CorrectAnswer == nil || *req.CorrectAnswer == "" {
			return nil, apperr.Validation("non-MCQ questions need a reference answer")
		}
	}

	if req.SourceID != nil {
		if _, err := s.sourceRepo.FindByID(*req.SourceID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperr.Validation("invalid sourceId")
			}
			return nil, apperr.Internal("failed to verify question source", err)
		}
	}

	difficulty := req.Difficulty
	if difficulty == "" {
		difficulty = "MEDIUM"
	}

	question := &model.QuestionBankQuestion{
		ClassID:      req.ClassID,
		SubjectID:    req.SubjectID,
		SourceID:     req.SourceID,
		QuestionText: req.QuestionText,
		QuestionType: req.QuestionType,
		Marks:        req.Marks,
		Difficulty:   difficulty,
		ImageURL:     req.ImageURL,
		IsActive:     true,
	}
	if req.QuestionType == model.QuestionTypeMCQ {
		for i, opt := range req.Options {
			question.Options = append(question.Options, model.QuestionBankOption{
				OptionText: opt.Text,
				IsCorrect:  opt.IsCorrect,
				OrderNo:    i + 1,
			})
		}
	} else {
		question.CorrectAnswer = &model.QuestionBankCorrectAnswer{Correct: *req.CorrectAnswer}
	}

	if err := s.createWithSequenceRepair(question); err != nil {
		return nil, err
	}
	return question, nil
}

// createWithSequenceRepair retries a duplicate-key insert exactly once after
// resetting the identity sequence. Imported rows with explicit ids leave the
// sequence behind max(id); the first collision repairs it.
func (s *questionBankService) createWithSequenceRepair(question *model.QuestionBankQuestion) error {
	err := s.questionRepo.CreateWithDetails(question)
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrDuplicatedKey) {
		return apperr.Internal("failed to create question", err)
	}

	log.Warn().Err(err).Msg("Duplicate key on question insert, repairing id sequence")
	if repairErr := s.questionRepo.RepairIDSequence(); repairErr != nil {
		return apperr.Internal("failed to repair question id sequence", repairErr)
	}
	if err := s.questionRepo.CreateWithDetails(question); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperr.Conflict("question insert conflicts even after sequence repair", err)
		}
		return apperr.Internal("failed to create question", err)
	}
	return nil
}

func (s *questionBankService) ListQuestions(filter repository.QuestionBankFilter) ([]dto.QuestionBankItemDTO, error) {
	questions, err := s.questionRepo.Search(filter)
	if err != nil {
		return nil, apperr.Internal("failed to search question bank", err)
	}

	items := make([]dto.QuestionBankItemDTO, 0, len(questions))
	for _, q := range questions {
		item := dto.QuestionBankItemDTO{
			ID:           q.ID,
			ClassName:    q.Class.ClassName,
			SubjectName:  q.Subject.SubjectName,
			QuestionText: q.QuestionText,
			QuestionType: q.QuestionType,
			Marks:        q.Marks,
			Difficulty:   q.Difficulty,
			ImageURL:     q.ImageURL,
			IsActive:     q.IsActive,
			CreatedAt:    q.CreatedAt,
		}
		if q.Source != nil {
			item.Board = &q.Source.Board
			item.PaperName = &q.Source.PaperName
			item.Year = &q.Source.Year
		}
		if err := copier.Copy(&item.Options, &q.Options); err != nil {
			return nil, apperr.Internal("failed to map question options", err)
		}
		if q.CorrectAnswer != nil {
			item.CorrectAnswer = &q.CorrectAnswer.Correct
		}
		items = append(items, item)
	}
	return items, nil
}

func (s *questionBankService) DeactivateQuestion(id uint) error {
	if err := s.questionRepo.Deactivate(id); err != nil {
		return apperr.Internal("failed to deactivate question", err)
	}
	return nil
}
