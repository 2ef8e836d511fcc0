package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/shashanktechgrah/backend-ExamSetu/internal/apperr"
	"github.com/shashanktechgrah/backend-ExamSetu/internal/dto"
	"github.com/shashanktechgrah/backend-ExamSetu/internal/model"
	"github.com/shashanktechgrah/backend-ExamSetu/internal/repository"
)

type EvaluationService interface {
	// SubmitAttempt evaluates the submitted answer set against the attempt's
	// stored question order and persists answers, attempt transition and
	// result atomically. Grading-delegate failures degrade individual
	// answers to zero marks; they never fail the submission.
	SubmitAttempt(attemptID uint, req dto.SubmitAttemptRequest) (*dto.SubmitAttemptResponse, error)
}

type evaluationService struct {
	userRepo    repository.UserRepository
	attemptRepo repository.AttemptRepository
	grader      GraderService
}

func NewEvaluationService(
	userRepo repository.UserRepository,
	attemptRepo repository.AttemptRepository,
	grader GraderService,
) EvaluationService {
	return &evaluationService{
		userRepo:    userRepo,
		attemptRepo: attemptRepo,
		grader:      grader,
	}
}

type freeTextJob struct {
	questionID uint
	reference  string
	answer     string
	maxMarks   float64
}

type gradeOutcome struct {
	questionID uint
	marks      float64
	similarity *float64
	verdict    Correctness
}

func (s *evaluationService) SubmitAttempt(attemptID uint, req dto.SubmitAttemptRequest) (*dto.SubmitAttemptResponse, error) {
	user, err := resolveStudent(s.userRepo, req.UserID)
	if err != nil {
		return nil, err
	}

	attempt, err := s.attemptRepo.FindByIDWithTest(attemptID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("attempt not found")
		}
		return nil, apperr.Internal("failed to load attempt", err)
	}
	if attempt.StudentID != user.Student.ID {
		return nil, apperr.NotFound("attempt not found")
	}

	submitted := make(map[uint]dto.SubmittedAnswerDTO, len(req.Answers))
	for _, ans := range req.Answers {
		submitted[ans.QuestionID] = ans
	}

	// Every question gets an answer row, answered or not; evaluation walks
	// the stored question order.
	outcomes := make(map[uint]gradeOutcome, len(attempt.Test.TestQuestions))
	var jobs []freeTextJob
	for _, tq := range attempt.Test.TestQuestions {
		q := tq.Question
		sub, answered := submitted[q.ID]

		if q.IsMCQ() {
			var selected *uint
			if answered {
				selected = sub.SelectedOptionID
			}
			marks, verdict := ScoreMCQ(&q, selected)
			outcomes[q.ID] = gradeOutcome{questionID: q.ID, marks: marks, verdict: verdict}
			continue
		}

		text := ""
		if answered && sub.AnswerText != nil {
			text = strings.TrimSpace(*sub.AnswerText)
		}
		reference := ""
		if q.CorrectAnswer != nil {
			reference = q.CorrectAnswer.Correct
		}
		if text == "" || reference == "" {
			// Nothing to grade: zero marks, correctness undetermined.
			outcomes[q.ID] = gradeOutcome{questionID: q.ID, verdict: CorrectnessUndetermined}
			continue
		}
		jobs = append(jobs, freeTextJob{questionID: q.ID, reference: reference, answer: text, maxMarks: q.Marks})
	}

	for outcome := range s.gradeConcurrently(jobs) {
		outcomes[outcome.questionID] = outcome
	}

	var obtainedMarks float64
	answers := make([]model.Answer, 0, len(attempt.Test.TestQuestions))
	for _, tq := range attempt.Test.TestQuestions {
		q := tq.Question
		outcome := outcomes[q.ID]
		obtainedMarks += outcome.marks

		answer := model.Answer{
			AttemptID:       attempt.ID,
			QuestionID:      q.ID,
			MarksObtained:   outcome.marks,
			IsCorrect:       outcome.verdict.BoolPtr(),
			SimilarityScore: outcome.similarity,
		}
		if sub, ok := submitted[q.ID]; ok {
			if q.IsMCQ() {
				answer.SelectedOptionID = sub.SelectedOptionID
			} else {
				answer.AnswerText = sub.AnswerText
			}
		}
		if outcome.similarity != nil {
			evalType := model.EvaluationTypeAuto
			answer.EvaluationType = &evalType
		}
		answers = append(answers, answer)
	}

	totalMarks := attempt.Test.TotalMarks
	percentage := 0.0
	if totalMarks > 0 {
		percentage = obtainedMarks / totalMarks * 100
	}
	status := model.ResultStatusFail
	if obtainedMarks >= attempt.Test.PassingMarks {
		status = model.ResultStatusPass
	}

	now := time.Now()
	attempt.Status = model.AttemptStatusSubmitted
	attempt.SubmittedAt = &now
	attempt.TotalScore = obtainedMarks
	attempt.Percentage = percentage

	result := &model.Result{
		AttemptID:     attempt.ID,
		TotalMarks:    totalMarks,
		ObtainedMarks: obtainedMarks,
		Percentage:    percentage,
		Status:        status,
		Published:     true,
	}

	if err := s.attemptRepo.SaveSubmission(attempt, answers, result); err != nil {
		return nil, apperr.Internal("failed to save submission", err)
	}

	log.Info().
		Uint("attempt_id", attempt.ID).
		Float64("obtained", obtainedMarks).
		Float64("total", totalMarks).
		Str("status", status).
		Msg("Attempt submitted")

	return &dto.SubmitAttemptResponse{
		AttemptID:     attempt.ID,
		TestID:        attempt.TestID,
		Subject:       attempt.Test.Subject.SubjectName,
		TotalMarks:    totalMarks,
		ObtainedMarks: obtainedMarks,
		Percentage:    percentage,
		Status:        status,
	}, nil
}

// gradeConcurrently fans one goroutine out per free-text answer and streams
// the outcomes back. A failed delegate call scores zero with correctness left
// undetermined.
func (s *evaluationService) gradeConcurrently(jobs []freeTextJob) <-chan gradeOutcome {
	results := make(chan gradeOutcome, len(jobs))
	for _, job := range jobs {
		go func(job freeTextJob) {
			res, err := s.grader.Grade(context.Background(), job.reference, job.answer, job.maxMarks)
			if err != nil {
				log.Error().Err(err).Uint("question_id", job.questionID).Msg("Free-text grading failed, scoring zero")
				results <- gradeOutcome{questionID: job.questionID, verdict: CorrectnessUndetermined}
				return
			}
			marks := clamp(res.Marks, 0, job.maxMarks)
			similarity := clamp(res.Similarity, 0, 1)
			verdict := CorrectnessIncorrect
			if marks > 0 {
				verdict = CorrectnessCorrect
			}
			results <- gradeOutcome{
				questionID: job.questionID,
				marks:      marks,
				similarity: &similarity,
				verdict:    verdict,
			}
		}(job)
	}

	outcomes := make(chan gradeOutcome, len(jobs))
	go func() {
		defer close(outcomes)
		for i := 0; i < len(jobs); i++ {
			outcomes <- <-results
		}
	}()
	return outcomes
}
