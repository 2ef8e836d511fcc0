package service

import (
	"errors"
	"testing"

	"github.com/shashanktechgrah/backend-ExamSetu/internal/apperr"
	"github.com/shashanktechgrah/backend-ExamSetu/internal/dto"
	"github.com/shashanktechgrah/backend-ExamSetu/internal/model"
)

func newEvaluationFixture(grader GraderService) (*fakeAttemptRepo, EvaluationService) {
	users := &fakeUserRepo{users: map[uint]*model.User{1: newStudentUser(1, 5, 2)}}
	attempts := &fakeAttemptRepo{attempt: attemptGraph(10, 5)}
	return attempts, NewEvaluationService(users, attempts, grader)
}

func answerByQuestion(t *testing.T, answers []model.Answer, questionID uint) model.Answer {
	t.Helper()
	for _, ans := range answers {
		if ans.QuestionID == questionID {
			return ans
		}
	}
	t.Fatalf("no answer row for question %d", questionID)
	return model.Answer{}
}

func TestSubmitAttempt_MCQAndGradedFreeText(t *testing.T) {
	grader := &fakeGrader{fn: func(reference, answer string, maxMarks float64) (*GradeResult, error) {
		if reference != "reference answer" || answer != "my essay" {
			t.Errorf("grader got (%q, %q)", reference, answer)
		}
		return &GradeResult{Marks: 3.5, Similarity: 0.8}, nil
	}}
	attempts, svc := newEvaluationFixture(grader)

	resp, err := svc.SubmitAttempt(10, dto.SubmitAttemptRequest{
		UserID: 1,
		Answers: []dto.SubmittedAnswerDTO{
			{QuestionID: 1, SelectedOptionID: uintPtr(11)},
			{QuestionID: 2, AnswerText: strPtr("my essay")},
		},
	})
	if err != nil {
		t.Fatalf("SubmitAttempt() error = %v", err)
	}

	if resp.ObtainedMarks != 5.5 {
		t.Errorf("obtainedMarks = %v, want 5.5", resp.ObtainedMarks)
	}
	if resp.TotalMarks != 7 {
		t.Errorf("totalMarks = %v, want 7", resp.TotalMarks)
	}
	// 5.5 of 7 clears the 33% bar.
	if resp.Status != model.ResultStatusPass {
		t.Errorf("status = %q, want Pass", resp.Status)
	}
	if grader.callCount() != 1 {
		t.Errorf("grader calls = %d, want 1", grader.callCount())
	}

	mcq := answerByQuestion(t, attempts.savedAnswers, 1)
	if mcq.MarksObtained != 2 || mcq.IsCorrect == nil || !*mcq.IsCorrect {
		t.Errorf("mcq answer = %+v, want 2 marks correct", mcq)
	}
	if mcq.EvaluationType != nil {
		t.Errorf("mcq evaluationType = %v, want nil", mcq.EvaluationType)
	}

	subj := answerByQuestion(t, attempts.savedAnswers, 2)
	if subj.MarksObtained != 3.5 {
		t.Errorf("subj marks = %v, want 3.5", subj.MarksObtained)
	}
	if subj.SimilarityScore == nil || *subj.SimilarityScore != 0.8 {
		t.Errorf("subj similarity = %v, want 0.8", subj.SimilarityScore)
	}
	if subj.IsCorrect == nil || !*subj.IsCorrect {
		t.Errorf("subj isCorrect = %v, want true", subj.IsCorrect)
	}
	if subj.EvaluationType == nil || *subj.EvaluationType != model.EvaluationTypeAuto {
		t.Errorf("subj evaluationType = %v, want AUTO", subj.EvaluationType)
	}

	if attempts.savedAttempt.Status != model.AttemptStatusSubmitted {
		t.Errorf("attempt status = %q, want SUBMITTED", attempts.savedAttempt.Status)
	}
	if attempts.savedAttempt.SubmittedAt == nil {
		t.Error("submittedAt not set")
	}
	if attempts.savedResult == nil || attempts.savedResult.AttemptID != 10 || !attempts.savedResult.Published {
		t.Errorf("result = %+v", attempts.savedResult)
	}
}

func TestSubmitAttempt_WrongAndMissingMCQNeverUndetermined(t *testing.T) {
	grader := &fakeGrader{}
	attempts, svc := newEvaluationFixture(grader)

	// wrong option for the MCQ, nothing for the subjective.
	_, err := svc.SubmitAttempt(10, dto.SubmitAttemptRequest{
		UserID: 1,
		Answers: []dto.SubmittedAnswerDTO{
			{QuestionID: 1, SelectedOptionID: uintPtr(12)},
		},
	})
	if err != nil {
		t.Fatalf("SubmitAttempt() error = %v", err)
	}

	if len(attempts.savedAnswers) != 2 {
		t.Fatalf("saved answers = %d, want one row per question", len(attempts.savedAnswers))
	}

	mcq := answerByQuestion(t, attempts.savedAnswers, 1)
	if mcq.MarksObtained != 0 || mcq.IsCorrect == nil || *mcq.IsCorrect {
		t.Errorf("wrong-option answer = %+v, want 0 marks incorrect", mcq)
	}

	subj := answerByQuestion(t, attempts.savedAnswers, 2)
	if subj.MarksObtained != 0 || subj.IsCorrect != nil {
		t.Errorf("unanswered subjective = %+v, want 0 marks undetermined", subj)
	}
	if grader.callCount() != 0 {
		t.Errorf("grader calls = %d, want 0 for unanswered free text", grader.callCount())
	}
}

func TestSubmitAttempt_GraderFailureDegrades(t *testing.T) {
	grader := &fakeGrader{fn: func(reference, answer string, maxMarks float64) (*GradeResult, error) {
		return nil, errors.New("delegate unreachable")
	}}
	attempts, svc := newEvaluationFixture(grader)

	resp, err := svc.SubmitAttempt(10, dto.SubmitAttemptRequest{
		UserID: 1,
		Answers: []dto.SubmittedAnswerDTO{
			{QuestionID: 2, AnswerText: strPtr("my essay")},
		},
	})
	if err != nil {
		t.Fatalf("grader failure must not fail the submission, got %v", err)
	}

	subj := answerByQuestion(t, attempts.savedAnswers, 2)
	if subj.MarksObtained != 0 {
		t.Errorf("degraded marks = %v, want 0", subj.MarksObtained)
	}
	if subj.IsCorrect != nil {
		t.Errorf("degraded isCorrect = %v, want nil", subj.IsCorrect)
	}
	if subj.SimilarityScore != nil || subj.EvaluationType != nil {
		t.Errorf("degraded similarity/evaluationType = %v/%v, want nil/nil", subj.SimilarityScore, subj.EvaluationType)
	}
	// the stored answer text survives for later review.
	if subj.AnswerText == nil || *subj.AnswerText != "my essay" {
		t.Errorf("answerText = %v, want my essay", subj.AnswerText)
	}
	if resp.Status != model.ResultStatusFail {
		t.Errorf("status = %q, want Fail", resp.Status)
	}
}

func TestSubmitAttempt_ClampsDelegateOutput(t *testing.T) {
	grader := &fakeGrader{fn: func(reference, answer string, maxMarks float64) (*GradeResult, error) {
		return &GradeResult{Marks: 50, Similarity: 1.7}, nil
	}}
	attempts, svc := newEvaluationFixture(grader)

	_, err := svc.SubmitAttempt(10, dto.SubmitAttemptRequest{
		UserID: 1,
		Answers: []dto.SubmittedAnswerDTO{
			{QuestionID: 2, AnswerText: strPtr("my essay")},
		},
	})
	if err != nil {
		t.Fatalf("SubmitAttempt() error = %v", err)
	}

	subj := answerByQuestion(t, attempts.savedAnswers, 2)
	if subj.MarksObtained != 5 {
		t.Errorf("marks = %v, want clamped to question marks 5", subj.MarksObtained)
	}
	if subj.SimilarityScore == nil || *subj.SimilarityScore != 1 {
		t.Errorf("similarity = %v, want clamped to 1", subj.SimilarityScore)
	}
}

func TestSubmitAttempt_ZeroTotalMarks(t *testing.T) {
	grader := &fakeGrader{}
	attempts, svc := newEvaluationFixture(grader)
	attempts.attempt.Test.TotalMarks = 0
	attempts.attempt.Test.PassingMarks = 0

	resp, err := svc.SubmitAttempt(10, dto.SubmitAttemptRequest{UserID: 1})
	if err != nil {
		t.Fatalf("SubmitAttempt() error = %v", err)
	}
	if resp.Percentage != 0 {
		t.Errorf("percentage = %v, want 0 when total marks is 0", resp.Percentage)
	}
	if resp.Status != model.ResultStatusPass {
		t.Errorf("status = %q, want Pass at zero threshold", resp.Status)
	}
}

func TestSubmitAttempt_ForeignAttemptReadsAsNotFound(t *testing.T) {
	grader := &fakeGrader{}
	attempts, svc := newEvaluationFixture(grader)
	attempts.attempt.StudentID = 99

	_, err := svc.SubmitAttempt(10, dto.SubmitAttemptRequest{UserID: 1})
	if apperr.From(err).Kind != apperr.KindNotFound {
		t.Errorf("kind = %v, want KindNotFound", apperr.From(err).Kind)
	}
	if attempts.savedAttempt != nil {
		t.Error("foreign attempt must not be persisted")
	}
}
