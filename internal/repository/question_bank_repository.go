package repository

import (
	"github.com/shashanktechgrah/backend-ExamSetu/internal/model"
	"gorm.io/gorm"
)

// QuestionBankFilter narrows bank listings; zero values mean "no filter".
type QuestionBankFilter struct {
	Board       string
	ClassName   string
	SubjectName string
	Year        int
}

type QuestionBankRepository interface {
	// CreateWithDetails inserts the question together with its options or
	// reference answer in one transaction.
	CreateWithDetails(question *model.QuestionBankQuestion) error
	// RepairIDSequence resets the bank's identity sequence to max(id)+1.
	// Used once after a duplicate-key insert caused by sequence drift.
	RepairIDSequence() error
	FindByIDs(ids []uint) ([]model.QuestionBankQuestion, error)
	// SampleActiveIDs draws up to n distinct active question ids for the
	// class/subject pair, uniformly at random without replacement.
	SampleActiveIDs(classID, subjectID uint, n int) ([]uint, error)
	Search(filter QuestionBankFilter) ([]model.QuestionBankQuestion, error)
	Deactivate(id uint) error
}

type questionBankRepository struct {
	db *gorm.DB
}

func NewQuestionBankRepository(db *gorm.DB) QuestionBankRepository {
	return &questionBankRepository{db: db}
}

func (r *questionBankRepository) CreateWithDetails(question *model.QuestionBankQuestion) error {
	// GORM creates the associated options and correct answer rows when the
	// struct fields are populated.
	return r.db.Create(question).Error
}

func (r *questionBankRepository) RepairIDSequence() error {
	return r.db.Exec(`
		SELECT setval(
			pg_get_serial_sequence('question_bank_questions', 'id'),
			COALESCE((SELECT MAX(id) FROM question_bank_questions), 0) + 1,
			false
		)`).Error
}

func (r *questionBankRepository) FindByIDs(ids []uint) ([]model.QuestionBankQuestion, error) {
	var questions []model.QuestionBankQuestion
	err := r.db.
		Preload("Options", func(db *gorm.DB) *gorm.DB {
			return db.Order("question_bank_options.order_no ASC")
		}).
		Preload("CorrectAnswer").
		Where("id IN ?", ids).
		Find(&questions).Error
	return questions, err
}

func (r *questionBankRepository) SampleActiveIDs(classID, subjectID uint, n int) ([]uint, error) {
	var ids []uint
	err := r.db.Raw(`
		SELECT id
		FROM question_bank_questions
		WHERE class_id = ?
		  AND subject_id = ?
		  AND is_active = true
		  AND deleted_at IS NULL
		ORDER BY RANDOM()
		LIMIT ?`, classID, subjectID, n).Scan(&ids).Error
	return ids, err
}

func (r *questionBankRepository) Search(filter QuestionBankFilter) ([]model.QuestionBankQuestion, error) {
	query := r.db.
		Preload("Options", func(db *gorm.DB) *gorm.DB {
			return db.Order("question_bank_options.order_no ASC")
		}).
		Preload("CorrectAnswer").
		Preload("Source").
		Preload("Class").
		Preload("Subject").
		Joins("LEFT JOIN question_sources ON question_sources.id = question_bank_questions.source_id").
		Joins("JOIN classes ON classes.id = question_bank_questions.class_id").
		Joins("JOIN subjects ON subjects.id = question_bank_questions.subject_id")

	if filter.Board != "" {
		query = query.Where("question_sources.board = ?", filter.Board)
	}
	if filter.ClassName != "" {
		query = query.Where("classes.class_name = ?", filter.ClassName)
	}
	if filter.SubjectName != "" {
		query = query.Where("subjects.subject_name = ?", filter.SubjectName)
	}
	if filter.Year != 0 {
		query = query.Where("question_sources.year = ?", filter.Year)
	}

	var questions []model.QuestionBankQuestion
	err := query.Order("question_bank_questions.created_at DESC").Find(&questions).Error
	return questions, err
}

func (r *questionBankRepository) Deactivate(id uint) error {
	// Bank questions are never hard-deleted while a test may reference them.
	return r.db.Model(&model.QuestionBankQuestion{}).
		Where("id = ?", id).
		Update("is_active", false).Error
}
