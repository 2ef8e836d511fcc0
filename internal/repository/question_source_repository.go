package repository

import (
	"errors"

	"github.com/shashanktechgrah/backend-ExamSetu/internal/model"
	"gorm.io/gorm"
)

// QuestionSourceFilter narrows source listings; zero values mean "no filter".
type QuestionSourceFilter struct {
	Board string
	Year  int
}

type QuestionSourceRepository interface {
	// Find returns nil without error when no matching source exists.
	Find(board, paperName string, year int) (*model.QuestionSource, error)
	FindByID(id uint) (*model.QuestionSource, error)
	Create(source *model.QuestionSource) error
	// RepairIDSequence resets the source identity sequence to max(id)+1.
	RepairIDSequence() error
	FindAll(filter QuestionSourceFilter) ([]model.QuestionSource, error)
}

type questionSourceRepository struct {
	db *gorm.DB
}

func NewQuestionSourceRepository(db *gorm.DB) QuestionSourceRepository {
	return &questionSourceRepository{db: db}
}

func (r *questionSourceRepository) Find(board, paperName string, year int) (*model.QuestionSource, error) {
	var source model.QuestionSource
	err := r.db.
		Where("board = ? AND paper_name = ? AND year = ?", board, paperName, year).
		First(&source).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &source, nil
}

func (r *questionSourceRepository) FindByID(id uint) (*model.QuestionSource, error) {
	var source model.QuestionSource
	if err := r.db.First(&source, id).Error; err != nil {
		return nil, err
	}
	return &source, nil
}

func (r *questionSourceRepository) Create(source *model.QuestionSource) error {
	return r.db.Create(source).Error
}

func (r *questionSourceRepository) RepairIDSequence() error {
	return r.db.Exec(`
		SELECT setval(
			pg_get_serial_sequence('question_sources', 'id'),
			COALESCE((SELECT MAX(id) FROM question_sources), 0) + 1,
			false
		)`).Error
}

func (r *questionSourceRepository) FindAll(filter QuestionSourceFilter) ([]model.QuestionSource, error) {
	query := r.db.Model(&model.QuestionSource{})
	if filter.Board != "" {
		query = query.Where("board = ?", filter.Board)
	}
	if filter.Year != 0 {
		query = query.Where("year = ?", filter.Year)
	}

	var sources []model.QuestionSource
	err := query.
		Order("year DESC").
		Order("paper_name ASC").
		Order("created_at DESC").
		Find(&sources).Error
	return sources, err
}
