package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/shashanktechgrah/backend-ExamSetu/internal/apperr"
	"github.com/shashanktechgrah/backend-ExamSetu/internal/dto"
	"github.com/shashanktechgrah/backend-ExamSetu/internal/model"
	"github.com/shashanktechgrah/backend-ExamSetu/internal/repository"
)

// Duration and pass-mark derivation for system-generated mock tests: one
// minute per objective question, two per subjective, and a pass threshold of
// 33% of the total marks.
const (
	minutesPerObjective  = 1
	minutesPerSubjective = 2
	passMarkRatio        = 0.33
)

type MockTestService interface {
	// StartMockTest assembles a fresh published mock test for the calling
	// student and opens a STARTED attempt on it, all in one transaction.
	StartMockTest(req dto.StartMockTestRequest) (*dto.StartMockTestResponse, error)
	// GetAttempt serves the pre-submission view: ordered questions without
	// correctness flags or reference answers.
	GetAttempt(attemptID, userID uint) (*dto.AttemptViewResponse, error)
	// GetAttemptResponses serves the post-submission review: the reference
	// answer and the stored evaluation per question.
	GetAttemptResponses(attemptID, userID uint) (*dto.AttemptResponsesResponse, error)
}

type mockTestService struct {
	userRepo     repository.UserRepository
	subjectRepo  repository.SubjectRepository
	questionRepo repository.QuestionBankRepository
	testRepo     repository.TestRepository
	attemptRepo  repository.AttemptRepository
	answerRepo   repository.AnswerRepository
}

func NewMockTestService(
	userRepo repository.UserRepository,
	subjectRepo repository.SubjectRepository,
	questionRepo repository.QuestionBankRepository,
	testRepo repository.TestRepository,
	attemptRepo repository.AttemptRepository,
	answerRepo repository.AnswerRepository,
) MockTestService {
	return &mockTestService{
		userRepo:     userRepo,
		subjectRepo:  subjectRepo,
		questionRepo: questionRepo,
		testRepo:     testRepo,
		attemptRepo:  attemptRepo,
		answerRepo:   answerRepo,
	}
}

// resolveStudent authorizes a student-only operation. A missing user and a
// non-student user are indistinguishable to the caller.
func resolveStudent(users repository.UserRepository, userID uint) (*model.User, error) {
	user, err := users.FindWithStudentProfile(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Authorization("only students can perform this action")
		}
		return nil, apperr.Internal("failed to load user", err)
	}
	if user.Role != model.RoleStudent || user.Student == nil {
		return nil, apperr.Authorization("only students can perform this action")
	}
	return user, nil
}

func (s *mockTestService) StartMockTest(req dto.StartMockTestRequest) (*dto.StartMockTestResponse, error) {
	user, err := resolveStudent(s.userRepo, req.UserID)
	if err != nil {
		return nil, err
	}

	subject, err := s.subjectRepo.FindByFuzzyName(req.Subject)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound(fmt.Sprintf("subject %q not found", req.Subject))
		}
		return nil, apperr.Internal("failed to resolve subject", err)
	}

	ids, err := s.questionRepo.SampleActiveIDs(user.Student.ClassID, subject.ID, req.NumberOfQuestions)
	if err != nil {
		return nil, apperr.Internal("failed to sample question bank", err)
	}
	if len(ids) != req.NumberOfQuestions {
		return nil, apperr.Deficit("not enough active questions for this class and subject", len(ids))
	}

	questions, err := s.questionRepo.FindByIDs(ids)
	if err != nil {
		return nil, apperr.Internal("failed to load sampled questions", err)
	}
	if len(questions) != len(ids) {
		return nil, apperr.Deficit("question pool changed during assembly", len(questions))
	}

	byID := make(map[uint]model.QuestionBankQuestion, len(questions))
	for _, q := range questions {
		byID[q.ID] = q
	}

	var totalMarks float64
	var counts dto.QuestionCounts
	links := make([]model.TestQuestion, 0, len(ids))
	for i, id := range ids {
		q := byID[id]
		totalMarks += q.Marks
		if q.IsMCQ() {
			counts.MCQ++
		} else {
			counts.Subjective++
		}
		links = append(links, model.TestQuestion{QuestionID: id, OrderNo: i + 1})
	}
	durationMin := counts.MCQ*minutesPerObjective + counts.Subjective*minutesPerSubjective

	test := &model.Test{
		Title:        subject.SubjectName + " Mock Test",
		Description:  "Student Mock Test",
		TestType:     model.TestTypeMock,
		ClassID:      user.Student.ClassID,
		SubjectID:    subject.ID,
		CreatedByID:  &user.ID,
		TotalMarks:   totalMarks,
		DurationMin:  durationMin,
		PassingMarks: totalMarks * passMarkRatio,
		Status:       model.TestStatusPublished,
	}
	cfg := &model.MockTestConfig{NumberOfQuestions: req.NumberOfQuestions}
	attempt := &model.Attempt{
		StudentID:         user.Student.ID,
		Status:            model.AttemptStatusStarted,
		IsResultPublished: true,
		StartedAt:         time.Now(),
	}

	if err := s.testRepo.CreateMockTest(test, cfg, links, attempt); err != nil {
		return nil, apperr.Internal("failed to create mock test", err)
	}

	log.Info().
		Uint("test_id", test.ID).
		Uint("attempt_id", attempt.ID).
		Str("subject", subject.SubjectName).
		Int("questions", len(ids)).
		Msg("Mock test assembled")

	return &dto.StartMockTestResponse{
		AttemptID:      attempt.ID,
		TestID:         test.ID,
		Subject:        subject.SubjectName,
		TotalQuestions: len(ids),
		DurationMin:    durationMin,
		Counts:         counts,
	}, nil
}

// loadOwnedAttempt fetches the attempt graph and verifies the student owns
// it. Foreign attempts are reported as not found, not as forbidden.
func (s *mockTestService) loadOwnedAttempt(attemptID, userID uint) (*model.Attempt, error) {
	user, err := resolveStudent(s.userRepo, userID)
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
	return attempt, nil
}

func (s *mockTestService) GetAttempt(attemptID, userID uint) (*dto.AttemptViewResponse, error) {
	attempt, err := s.loadOwnedAttempt(attemptID, userID)
	if err != nil {
		return nil, err
	}

	var counts dto.QuestionCounts
	questions := make([]dto.AttemptQuestionDTO, 0, len(attempt.Test.TestQuestions))
	for _, tq := range attempt.Test.TestQuestions {
		q := tq.Question
		item := dto.AttemptQuestionDTO{
			OrderNo:      tq.OrderNo,
			QuestionID:   q.ID,
			QuestionType: q.QuestionType,
			Type:         "subjective",
			QuestionText: q.QuestionText,
			Marks:        q.Marks,
			Options:      []dto.AttemptOptionDTO{},
		}
		if q.IsMCQ() {
			counts.MCQ++
			item.Type = "objective"
			for _, opt := range q.Options {
				item.Options = append(item.Options, dto.AttemptOptionDTO{ID: opt.ID, Text: opt.OptionText})
			}
		} else {
			counts.Subjective++
		}
		questions = append(questions, item)
	}

	return &dto.AttemptViewResponse{
		AttemptID:      attempt.ID,
		TestID:         attempt.TestID,
		Subject:        attempt.Test.Subject.SubjectName,
		ClassName:      attempt.Test.Class.ClassName,
		TotalQuestions: len(questions),
		DurationMin:    attempt.Test.DurationMin,
		Counts:         counts,
		Questions:      questions,
	}, nil
}

func (s *mockTestService) GetAttemptResponses(attemptID, userID uint) (*dto.AttemptResponsesResponse, error) {
	attempt, err := s.loadOwnedAttempt(attemptID, userID)
	if err != nil {
		return nil, err
	}

	answers, err := s.answerRepo.FindByAttemptID(attemptID)
	if err != nil {
		return nil, apperr.Internal("failed to load answers", err)
	}
	if len(answers) == 0 {
		return nil, apperr.NotFound("no responses recorded for this attempt")
	}

	answerByQuestion := make(map[uint]model.Answer, len(answers))
	for _, ans := range answers {
		answerByQuestion[ans.QuestionID] = ans
	}

	responses := make([]dto.AttemptResponseDTO, 0, len(attempt.Test.TestQuestions))
	for _, tq := range attempt.Test.TestQuestions {
		q := tq.Question
		item := dto.AttemptResponseDTO{
			OrderNo:      tq.OrderNo,
			QuestionID:   q.ID,
			QuestionType: q.QuestionType,
			QuestionText: q.QuestionText,
			Marks:        q.Marks,
		}

		if q.IsMCQ() {
			for _, opt := range q.Options {
				if opt.IsCorrect {
					text := opt.OptionText
					item.CorrectAnswer = &text
					break
				}
			}
		} else if q.CorrectAnswer != nil {
			item.CorrectAnswer = &q.CorrectAnswer.Correct
		}

		if ans, ok := answerByQuestion[q.ID]; ok {
			if q.IsMCQ() {
				if ans.SelectedOption != nil {
					item.StudentAnswer = &ans.SelectedOption.OptionText
				}
			} else {
				item.StudentAnswer = ans.AnswerText
			}
			marks := ans.MarksObtained
			item.MarksObtained = &marks
			item.SimilarityScore = ans.SimilarityScore
			item.EvaluationType = ans.EvaluationType
		}

		responses = append(responses, item)
	}

	return &dto.AttemptResponsesResponse{
		AttemptID: attempt.ID,
		TestID:    attempt.TestID,
		Subject:   attempt.Test.Subject.SubjectName,
		Responses: responses,
	}, nil
}
