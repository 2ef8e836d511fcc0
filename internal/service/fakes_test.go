package service

import (
	"context"
	"errors"
	"strings"
	"sync"

	"gorm.io/gorm"

	"github.com/shashanktechgrah/backend-ExamSetu/internal/model"
	"github.com/shashanktechgrah/backend-ExamSetu/internal/repository"
)

func boolPtr(v bool) *bool        { return &v }
func strPtr(v string) *string     { return &v }
func uintPtr(v uint) *uint        { return &v }
func floatPtr(v float64) *float64 { return &v }

type fakeUserRepo struct {
	users map[uint]*model.User
}

func (f *fakeUserRepo) FindWithStudentProfile(userID uint) (*model.User, error) {
	if u, ok := f.users[userID]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

type fakeSubjectRepo struct {
	subjects []model.Subject
}

func (f *fakeSubjectRepo) FindAll() ([]model.Subject, error) {
	return f.subjects, nil
}

func (f *fakeSubjectRepo) FindByFuzzyName(name string) (*model.Subject, error) {
	aliases, isMath := repository.SubjectAliases(name)
	for i := range f.subjects {
		lower := strings.ToLower(f.subjects[i].SubjectName)
		for _, alias := range aliases {
			if lower == alias {
				return &f.subjects[i], nil
			}
		}
		if isMath && strings.Contains(lower, "math") {
			return &f.subjects[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

type fakeQuestionBankRepo struct {
	questions map[uint]model.QuestionBankQuestion
	sampleIDs []uint

	createErrs []error
	created    []*model.QuestionBankQuestion
	repairs    int
	repairErr  error

	deactivated []uint
}

func (f *fakeQuestionBankRepo) CreateWithDetails(question *model.QuestionBankQuestion) error {
	var err error
	if len(f.createErrs) > 0 {
		err, f.createErrs = f.createErrs[0], f.createErrs[1:]
	}
	if err == nil {
		f.created = append(f.created, question)
	}
	return err
}

func (f *fakeQuestionBankRepo) RepairIDSequence() error {
	f.repairs++
	return f.repairErr
}

func (f *fakeQuestionBankRepo) FindByIDs(ids []uint) ([]model.QuestionBankQuestion, error) {
	var out []model.QuestionBankQuestion
	for _, id := range ids {
		if q, ok := f.questions[id]; ok {
			out = append(out, q)
		}
	}
	return out, nil
}

func (f *fakeQuestionBankRepo) SampleActiveIDs(classID, subjectID uint, n int) ([]uint, error) {
	if len(f.sampleIDs) > n {
		return f.sampleIDs[:n], nil
	}
	return f.sampleIDs, nil
}

func (f *fakeQuestionBankRepo) Search(filter repository.QuestionBankFilter) ([]model.QuestionBankQuestion, error) {
	var out []model.QuestionBankQuestion
	for _, q := range f.questions {
		out = append(out, q)
	}
	return out, nil
}

func (f *fakeQuestionBankRepo) Deactivate(id uint) error {
	f.deactivated = append(f.deactivated, id)
	return nil
}

type fakeSourceRepo struct {
	sources map[uint]*model.QuestionSource

	createErrs []error
	created    []*model.QuestionSource
	repairs    int
}

func (f *fakeSourceRepo) Find(board, paperName string, year int) (*model.QuestionSource, error) {
	for _, s := range f.sources {
		if s.Board == board && s.PaperName == paperName && s.Year == year {
			return s, nil
		}
	}
	return nil, nil
}

func (f *fakeSourceRepo) FindByID(id uint) (*model.QuestionSource, error) {
	if s, ok := f.sources[id]; ok {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeSourceRepo) Create(source *model.QuestionSource) error {
	var err error
	if len(f.createErrs) > 0 {
		err, f.createErrs = f.createErrs[0], f.createErrs[1:]
	}
	if err == nil {
		f.created = append(f.created, source)
	}
	return err
}

func (f *fakeSourceRepo) RepairIDSequence() error {
	f.repairs++
	return nil
}

func (f *fakeSourceRepo) FindAll(filter repository.QuestionSourceFilter) ([]model.QuestionSource, error) {
	var out []model.QuestionSource
	for _, s := range f.sources {
		out = append(out, *s)
	}
	return out, nil
}

type fakeTestRepo struct {
	createErr error

	test    *model.Test
	cfg     *model.MockTestConfig
	links   []model.TestQuestion
	attempt *model.Attempt
}

func (f *fakeTestRepo) CreateMockTest(test *model.Test, cfg *model.MockTestConfig, links []model.TestQuestion, attempt *model.Attempt) error {
	if f.createErr != nil {
		return f.createErr
	}
	test.ID = 1
	cfg.TestID = test.ID
	for i := range links {
		links[i].TestID = test.ID
	}
	attempt.TestID = test.ID
	attempt.ID = 10
	f.test, f.cfg, f.links, f.attempt = test, cfg, links, attempt
	return nil
}

func (f *fakeTestRepo) CreateWithQuestions(test *model.Test, links []model.TestQuestion) error {
	if f.createErr != nil {
		return f.createErr
	}
	test.ID = 1
	for i := range links {
		links[i].TestID = test.ID
	}
	f.test, f.links = test, links
	return nil
}

func (f *fakeTestRepo) FindAll(filter repository.TestFilter) ([]model.Test, error) {
	if f.test == nil {
		return nil, nil
	}
	return []model.Test{*f.test}, nil
}

type fakeAttemptRepo struct {
	attempt *model.Attempt
	saveErr error

	savedAttempt *model.Attempt
	savedAnswers []model.Answer
	savedResult  *model.Result
}

func (f *fakeAttemptRepo) FindByIDWithTest(id uint) (*model.Attempt, error) {
	if f.attempt == nil || f.attempt.ID != id {
		return nil, gorm.ErrRecordNotFound
	}
	return f.attempt, nil
}

func (f *fakeAttemptRepo) SaveSubmission(attempt *model.Attempt, answers []model.Answer, result *model.Result) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.savedAttempt = attempt
	f.savedAnswers = answers
	f.savedResult = result
	return nil
}

type fakeAnswerRepo struct {
	answers []model.Answer
}

func (f *fakeAnswerRepo) FindByAttemptID(attemptID uint) ([]model.Answer, error) {
	return f.answers, nil
}

type fakeGrader struct {
	mu    sync.Mutex
	calls int
	fn    func(reference, answer string, maxMarks float64) (*GradeResult, error)
}

func (f *fakeGrader) Grade(ctx context.Context, referenceAnswer, studentAnswer string, maxMarks float64) (*GradeResult, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	if f.fn != nil {
		return f.fn(referenceAnswer, studentAnswer, maxMarks)
	}
	return nil, errors.New("grader not configured")
}

func (f *fakeGrader) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}
