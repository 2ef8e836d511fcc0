package repository

import (
	"github.com/shashanktechgrah/backend-ExamSetu/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AttemptRepository interface {
	// FindByIDWithTest loads the attempt with its test, subject, class, mock
	// config and the ordered question links including options and reference
	// answers. Everything the reader and the evaluator need in one query.
	FindByIDWithTest(id uint) (*model.Attempt, error)
	// SaveSubmission persists one evaluation pass atomically: every answer
	// is upserted keyed by (attempt, question), the attempt flips to
	// SUBMITTED with fresh score fields, and the result row is upserted
	// keyed by attempt. A crash mid-way leaves nothing half-written.
	SaveSubmission(attempt *model.Attempt, answers []model.Answer, result *model.Result) error
}

type attemptRepository struct {
	db *gorm.DB
}

func NewAttemptRepository(db *gorm.DB) AttemptRepository {
	return &attemptRepository{db: db}
}

func (r *attemptRepository) FindByIDWithTest(id uint) (*model.Attempt, error) {
	var attempt model.Attempt
	err := r.db.
		Preload("Student").
		Preload("Test.Subject").
		Preload("Test.Class").
		Preload("Test.MockConfig").
		Preload("Test.TestQuestions", func(db *gorm.DB) *gorm.DB {
			return db.Order("test_questions.order_no ASC")
		}).
		Preload("Test.TestQuestions.Question.Options", func(db *gorm.DB) *gorm.DB {
			return db.Order("question_bank_options.order_no ASC")
		}).
		Preload("Test.TestQuestions.Question.CorrectAnswer").
		First(&attempt, id).Error
	if err != nil {
		return nil, err
	}
	return &attempt, nil
}

func (r *attemptRepository) SaveSubmission(attempt *model.Attempt, answers []model.Answer, result *model.Result) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if len(answers) > 0 {
			err := tx.Clauses(clause.OnConflict{
				Columns: []clause.Column{{Name: "attempt_id"}, {Name: "question_id"}},
				DoUpdates: clause.AssignmentColumns([]string{
					"selected_option_id", "answer_text", "marks_obtained",
					"is_correct", "similarity_score", "evaluation_type", "updated_at",
				}),
			}).Create(&answers).Error
			if err != nil {
				return err
			}
		}

		err := tx.Model(&model.Attempt{}).Where("id = ?", attempt.ID).Updates(map[string]interface{}{
			"status":       attempt.Status,
			"total_score":  attempt.TotalScore,
			"percentage":   attempt.Percentage,
			"submitted_at": attempt.SubmittedAt,
		}).Error
		if err != nil {
			return err
		}

		return tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "attempt_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"total_marks", "obtained_marks", "percentage", "status", "published", "updated_at",
			}),
		}).Create(result).Error
	})
}
