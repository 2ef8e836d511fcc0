package service

import (
	"math"
	"testing"

	"github.com/shashanktechgrah/backend-ExamSetu/internal/apperr"
	"github.com/shashanktechgrah/backend-ExamSetu/internal/dto"
	"github.com/shashanktechgrah/backend-ExamSetu/internal/model"
)

func newStudentUser(userID, studentID, classID uint) *model.User {
	return &model.User{
		ID:   userID,
		Name: "Asha",
		Role: model.RoleStudent,
		Student: &model.Student{
			ID:      studentID,
			UserID:  userID,
			ClassID: classID,
			Class:   model.Class{ID: classID, ClassName: "10"},
		},
	}
}

func mcqQuestion(id uint, marks float64) model.QuestionBankQuestion {
	return model.QuestionBankQuestion{
		ID:           id,
		QuestionType: model.QuestionTypeMCQ,
		QuestionText: "pick one",
		Marks:        marks,
		IsActive:     true,
		Options: []model.QuestionBankOption{
			{ID: id*10 + 1, QuestionID: id, OptionText: "A", IsCorrect: true, OrderNo: 1},
			{ID: id*10 + 2, QuestionID: id, OptionText: "B", OrderNo: 2},
		},
	}
}

func subjectiveQuestion(id uint, marks float64) model.QuestionBankQuestion {
	return model.QuestionBankQuestion{
		ID:           id,
		QuestionType: model.QuestionTypeSubjective,
		QuestionText: "explain",
		Marks:        marks,
		IsActive:     true,
		CorrectAnswer: &model.QuestionBankCorrectAnswer{
			QuestionID: id,
			Correct:    "reference answer",
		},
	}
}

func newMockTestFixture() (*fakeUserRepo, *fakeSubjectRepo, *fakeQuestionBankRepo, *fakeTestRepo, *fakeAttemptRepo, *fakeAnswerRepo, MockTestService) {
	users := &fakeUserRepo{users: map[uint]*model.User{1: newStudentUser(1, 5, 2)}}
	subjects := &fakeSubjectRepo{subjects: []model.Subject{
		{ID: 7, SubjectName: "Physics"},
		{ID: 8, SubjectName: "Advanced Mathematics"},
	}}
	bank := &fakeQuestionBankRepo{questions: map[uint]model.QuestionBankQuestion{
		1: mcqQuestion(1, 2),
		2: subjectiveQuestion(2, 5),
		3: mcqQuestion(3, 1),
	}}
	tests := &fakeTestRepo{}
	attempts := &fakeAttemptRepo{}
	answers := &fakeAnswerRepo{}
	svc := NewMockTestService(users, subjects, bank, tests, attempts, answers)
	return users, subjects, bank, tests, attempts, answers, svc
}

func TestStartMockTest_DerivesTotalsAndOrder(t *testing.T) {
	_, _, bank, tests, _, _, svc := newMockTestFixture()
	bank.sampleIDs = []uint{3, 1, 2}

	resp, err := svc.StartMockTest(dto.StartMockTestRequest{
		UserID:            1,
		Subject:           "physics",
		NumberOfQuestions: 3,
	})
	if err != nil {
		t.Fatalf("StartMockTest() error = %v", err)
	}

	if tests.test == nil {
		t.Fatal("expected test to be created")
	}
	if tests.test.Title != "Physics Mock Test" {
		t.Errorf("title = %q, want %q", tests.test.Title, "Physics Mock Test")
	}
	if tests.test.Description != "Student Mock Test" {
		t.Errorf("description = %q", tests.test.Description)
	}
	if tests.test.TestType != model.TestTypeMock || tests.test.Status != model.TestStatusPublished {
		t.Errorf("testType/status = %q/%q, want MOCK/PUBLISHED", tests.test.TestType, tests.test.Status)
	}
	if tests.test.TotalMarks != 8 {
		t.Errorf("totalMarks = %v, want 8", tests.test.TotalMarks)
	}
	// two MCQs at one minute each, one subjective at two.
	if tests.test.DurationMin != 4 {
		t.Errorf("durationMin = %v, want 4", tests.test.DurationMin)
	}
	if math.Abs(tests.test.PassingMarks-8*0.33) > 1e-9 {
		t.Errorf("passingMarks = %v, want %v", tests.test.PassingMarks, 8*0.33)
	}

	if len(tests.links) != 3 {
		t.Fatalf("links = %d, want 3", len(tests.links))
	}
	wantOrder := []uint{3, 1, 2}
	for i, link := range tests.links {
		if link.QuestionID != wantOrder[i] {
			t.Errorf("link[%d].QuestionID = %d, want %d", i, link.QuestionID, wantOrder[i])
		}
		if link.OrderNo != i+1 {
			t.Errorf("link[%d].OrderNo = %d, want %d", i, link.OrderNo, i+1)
		}
	}

	if tests.attempt.StudentID != 5 || tests.attempt.Status != model.AttemptStatusStarted {
		t.Errorf("attempt = %+v, want student 5 in STARTED", tests.attempt)
	}
	if tests.cfg.NumberOfQuestions != 3 {
		t.Errorf("cfg.NumberOfQuestions = %d, want 3", tests.cfg.NumberOfQuestions)
	}

	if resp.Counts.MCQ != 2 || resp.Counts.Subjective != 1 {
		t.Errorf("counts = %+v, want {2 1}", resp.Counts)
	}
	if resp.DurationMin != 4 || resp.TotalQuestions != 3 {
		t.Errorf("resp = %+v", resp)
	}
}

func TestStartMockTest_FuzzyMathSubject(t *testing.T) {
	_, _, bank, tests, _, _, svc := newMockTestFixture()
	bank.sampleIDs = []uint{1}

	resp, err := svc.StartMockTest(dto.StartMockTestRequest{
		UserID:            1,
		Subject:           "  MATHS ",
		NumberOfQuestions: 1,
	})
	if err != nil {
		t.Fatalf("StartMockTest() error = %v", err)
	}
	if resp.Subject != "Advanced Mathematics" {
		t.Errorf("subject = %q, want Advanced Mathematics", resp.Subject)
	}
	if tests.test.SubjectID != 8 {
		t.Errorf("subjectID = %d, want 8", tests.test.SubjectID)
	}
}

func TestStartMockTest_DeficitLeavesNoSideEffects(t *testing.T) {
	_, _, bank, tests, _, _, svc := newMockTestFixture()
	bank.sampleIDs = []uint{1}

	_, err := svc.StartMockTest(dto.StartMockTestRequest{
		UserID:            1,
		Subject:           "Physics",
		NumberOfQuestions: 3,
	})
	if err == nil {
		t.Fatal("expected deficit error")
	}
	appErr := apperr.From(err)
	if appErr.Kind != apperr.KindDeficit {
		t.Errorf("kind = %v, want KindDeficit", appErr.Kind)
	}
	if appErr.Available == nil || *appErr.Available != 1 {
		t.Errorf("available = %v, want 1", appErr.Available)
	}
	if tests.test != nil || tests.attempt != nil {
		t.Error("deficit must not create a test or attempt")
	}
}

func TestStartMockTest_Authorization(t *testing.T) {
	users, _, bank, _, _, _, svc := newMockTestFixture()
	bank.sampleIDs = []uint{1}
	users.users[2] = &model.User{ID: 2, Role: model.RoleTeacher}

	tests := []struct {
		name   string
		userID uint
	}{
		{name: "unknown user", userID: 99},
		{name: "non-student user", userID: 2},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.StartMockTest(dto.StartMockTestRequest{
				UserID:            tc.userID,
				Subject:           "Physics",
				NumberOfQuestions: 1,
			})
			if apperr.From(err).Kind != apperr.KindAuthorization {
				t.Errorf("kind = %v, want KindAuthorization", apperr.From(err).Kind)
			}
		})
	}
}

func TestStartMockTest_SubjectNotFound(t *testing.T) {
	_, _, bank, _, _, _, svc := newMockTestFixture()
	bank.sampleIDs = []uint{1}

	_, err := svc.StartMockTest(dto.StartMockTestRequest{
		UserID:            1,
		Subject:           "History",
		NumberOfQuestions: 1,
	})
	if apperr.From(err).Kind != apperr.KindNotFound {
		t.Errorf("kind = %v, want KindNotFound", apperr.From(err).Kind)
	}
}

func attemptGraph(attemptID, studentID uint) *model.Attempt {
	mcq := mcqQuestion(1, 2)
	subj := subjectiveQuestion(2, 5)
	return &model.Attempt{
		ID:        attemptID,
		TestID:    1,
		StudentID: studentID,
		Status:    model.AttemptStatusStarted,
		Test: model.Test{
			ID:           1,
			Title:        "Physics Mock Test",
			TestType:     model.TestTypeMock,
			TotalMarks:   7,
			DurationMin:  4,
			PassingMarks: 7 * 0.33,
			Subject:      model.Subject{ID: 7, SubjectName: "Physics"},
			Class:        model.Class{ID: 2, ClassName: "10"},
			TestQuestions: []model.TestQuestion{
				{ID: 1, TestID: 1, QuestionID: 1, OrderNo: 1, Question: mcq},
				{ID: 2, TestID: 1, QuestionID: 2, OrderNo: 2, Question: subj},
			},
		},
	}
}

func TestGetAttempt_HidesAnswerKey(t *testing.T) {
	_, _, _, _, attempts, _, svc := newMockTestFixture()
	attempts.attempt = attemptGraph(10, 5)

	resp, err := svc.GetAttempt(10, 1)
	if err != nil {
		t.Fatalf("GetAttempt() error = %v", err)
	}
	if len(resp.Questions) != 2 {
		t.Fatalf("questions = %d, want 2", len(resp.Questions))
	}
	if resp.Questions[0].Type != "objective" || resp.Questions[1].Type != "subjective" {
		t.Errorf("types = %q/%q", resp.Questions[0].Type, resp.Questions[1].Type)
	}
	if len(resp.Questions[0].Options) != 2 {
		t.Errorf("mcq options = %d, want 2", len(resp.Questions[0].Options))
	}
	if len(resp.Questions[1].Options) != 0 {
		t.Errorf("subjective options = %d, want 0", len(resp.Questions[1].Options))
	}
	if resp.Counts.MCQ != 1 || resp.Counts.Subjective != 1 {
		t.Errorf("counts = %+v", resp.Counts)
	}
}

func TestGetAttempt_ForeignAttemptReadsAsNotFound(t *testing.T) {
	_, _, _, _, attempts, _, svc := newMockTestFixture()
	attempts.attempt = attemptGraph(10, 99)

	_, err := svc.GetAttempt(10, 1)
	if apperr.From(err).Kind != apperr.KindNotFound {
		t.Errorf("kind = %v, want KindNotFound", apperr.From(err).Kind)
	}
}

func TestGetAttemptResponses_RequiresStoredAnswers(t *testing.T) {
	_, _, _, _, attempts, _, svc := newMockTestFixture()
	attempts.attempt = attemptGraph(10, 5)

	_, err := svc.GetAttemptResponses(10, 1)
	if apperr.From(err).Kind != apperr.KindNotFound {
		t.Errorf("kind = %v, want KindNotFound", apperr.From(err).Kind)
	}
}

func TestGetAttemptResponses_ReviewView(t *testing.T) {
	_, _, _, _, attempts, answers, svc := newMockTestFixture()
	attempts.attempt = attemptGraph(10, 5)
	selected := attempts.attempt.Test.TestQuestions[0].Question.Options[0]
	answers.answers = []model.Answer{
		{
			AttemptID:        10,
			QuestionID:       1,
			SelectedOptionID: &selected.ID,
			SelectedOption:   &selected,
			MarksObtained:    2,
			IsCorrect:        boolPtr(true),
		},
		{
			AttemptID:       10,
			QuestionID:      2,
			AnswerText:      strPtr("my essay"),
			MarksObtained:   3.5,
			IsCorrect:       boolPtr(true),
			SimilarityScore: floatPtr(0.8),
			EvaluationType:  strPtr(model.EvaluationTypeAuto),
		},
	}

	resp, err := svc.GetAttemptResponses(10, 1)
	if err != nil {
		t.Fatalf("GetAttemptResponses() error = %v", err)
	}
	if len(resp.Responses) != 2 {
		t.Fatalf("responses = %d, want 2", len(resp.Responses))
	}

	mcq := resp.Responses[0]
	if mcq.CorrectAnswer == nil || *mcq.CorrectAnswer != "A" {
		t.Errorf("mcq correctAnswer = %v, want A", mcq.CorrectAnswer)
	}
	if mcq.StudentAnswer == nil || *mcq.StudentAnswer != "A" {
		t.Errorf("mcq studentAnswer = %v, want A", mcq.StudentAnswer)
	}
	if mcq.MarksObtained == nil || *mcq.MarksObtained != 2 {
		t.Errorf("mcq marksObtained = %v, want 2", mcq.MarksObtained)
	}

	subj := resp.Responses[1]
	if subj.CorrectAnswer == nil || *subj.CorrectAnswer != "reference answer" {
		t.Errorf("subj correctAnswer = %v", subj.CorrectAnswer)
	}
	if subj.StudentAnswer == nil || *subj.StudentAnswer != "my essay" {
		t.Errorf("subj studentAnswer = %v", subj.StudentAnswer)
	}
	if subj.SimilarityScore == nil || *subj.SimilarityScore != 0.8 {
		t.Errorf("subj similarity = %v", subj.SimilarityScore)
	}
	if subj.EvaluationType == nil || *subj.EvaluationType != model.EvaluationTypeAuto {
		t.Errorf("subj evaluationType = %v", subj.EvaluationType)
	}
}
