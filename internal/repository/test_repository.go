package repository

import (
	"github.com/shashanktechgrah/backend-ExamSetu/internal/model"
	"gorm.io/gorm"
)

// TestFilter narrows test listings; zero values mean "no filter".
type TestFilter struct {
	ClassName   string
	SubjectName string
	TestType    string
}

type TestRepository interface {
	// CreateMockTest commits the test definition, its mock config, the
	// ordered question links and the opening attempt as one atomic unit.
	CreateMockTest(test *model.Test, cfg *model.MockTestConfig, links []model.TestQuestion, attempt *model.Attempt) error
	// CreateWithQuestions is the instructor-authored path: the test and its
	// ordered links commit together, no attempt is opened.
	CreateWithQuestions(test *model.Test, links []model.TestQuestion) error
	FindAll(filter TestFilter) ([]model.Test, error)
}

type testRepository struct {
	db *gorm.DB
}

func NewTestRepository(db *gorm.DB) TestRepository {
	return &testRepository{db: db}
}

func (r *testRepository) CreateMockTest(test *model.Test, cfg *model.MockTestConfig, links []model.TestQuestion, attempt *model.Attempt) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(test).Error; err != nil {
			return err
		}

		cfg.TestID = test.ID
		if err := tx.Create(cfg).Error; err != nil {
			return err
		}

		for i := range links {
			links[i].TestID = test.ID
		}
		if err := tx.Create(&links).Error; err != nil {
			return err
		}

		attempt.TestID = test.ID
		return tx.Create(attempt).Error
	})
}

func (r *testRepository) CreateWithQuestions(test *model.Test, links []model.TestQuestion) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(test).Error; err != nil {
			return err
		}
		if len(links) == 0 {
			return nil
		}
		for i := range links {
			links[i].TestID = test.ID
		}
		return tx.Create(&links).Error
	})
}

func (r *testRepository) FindAll(filter TestFilter) ([]model.Test, error) {
	query := r.db.
		Preload("Class").
		Preload("Subject").
		Joins("JOIN classes ON classes.id = tests.class_id").
		Joins("JOIN subjects ON subjects.id = tests.subject_id")

	if filter.ClassName != "" {
		query = query.Where("classes.class_name = ?", filter.ClassName)
	}
	if filter.SubjectName != "" {
		query = query.Where("subjects.subject_name = ?", filter.SubjectName)
	}
	if filter.TestType != "" {
		query = query.Where("tests.test_type = ?", filter.TestType)
	}

	var tests []model.Test
	err := query.Order("tests.created_at DESC").Find(&tests).Error
	return tests, err
}
