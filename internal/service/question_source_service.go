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

type QuestionSourceService interface {
	// UpsertSource returns the existing source for (board, paper, year) or
	// creates it. Creation shares the one-shot sequence repair policy used
	// for bank questions.
	UpsertSource(req dto.UpsertQuestionSourceRequest) (*dto.QuestionSourceDTO, error)
	ListSources(filter repository.QuestionSourceFilter) ([]dto.QuestionSourceDTO, error)
}

type questionSourceService struct {
	sourceRepo repository.QuestionSourceRepository
}

func NewQuestionSourceService(sourceRepo repository.QuestionSourceRepository) QuestionSourceService {
	return &questionSourceService{sourceRepo: sourceRepo}
}

func (s *questionSourceService) UpsertSource(req dto.UpsertQuestionSourceRequest) (*dto.QuestionSourceDTO, error) {
	existing, err := s.sourceRepo.Find(req.Board, req.PaperName, req.Year)
	if err != nil {
		return nil, apperr.Internal("failed to look up question source", err)
	}
	if existing != nil {
		return sourceToDTO(existing), nil
	}

	source := &model.QuestionSource{
		Board:     req.Board,
		PaperName: req.PaperName,
		Year:      req.Year,
	}
	if err := s.createWithSequenceRepair(source); err != nil {
		return nil, err
	}
	return sourceToDTO(source), nil
}

func (s *questionSourceService) createWithSequenceRepair(source *model.QuestionSource) error {
	err := s.sourceRepo.Create(source)
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrDuplicatedKey) {
		return apperr.Internal("failed to create question source", err)
	}

	log.Warn().Err(err).Msg("Duplicate key on source insert, repairing id sequence")
	if repairErr := s.sourceRepo.RepairIDSequence(); repairErr != nil {
		return apperr.Internal("failed to repair source id sequence", repairErr)
	}
	if err := s.sourceRepo.Create(source); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperr.Conflict("source insert conflicts even after sequence repair", err)
		}
		return apperr.Internal("failed to create question source", err)
	}
	return nil
}

func (s *questionSourceService) ListSources(filter repository.QuestionSourceFilter) ([]dto.QuestionSourceDTO, error) {
	sources, err := s.sourceRepo.FindAll(filter)
	if err != nil {
		return nil, apperr.Internal("failed to list question sources", err)
	}
	items := make([]dto.QuestionSourceDTO, 0, len(sources))
	for i := range sources {
		items = append(items, *sourceToDTO(&sources[i]))
	}
	return items, nil
}

func sourceToDTO(source *model.QuestionSource) *dto.QuestionSourceDTO {
	return &dto.QuestionSourceDTO{
		ID:        source.ID,
		Board:     source.Board,
		PaperName: source.PaperName,
		Year:      source.Year,
		CreatedAt: source.CreatedAt,
	}
}
