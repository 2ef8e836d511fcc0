package dto

// StartMockTestRequest asks the engine to assemble a fresh mock test for the
// calling student. The question count is the only knob; marks, duration and
// pass threshold are derived server-side.
type StartMockTestRequest struct {
	UserID            uint   `json:"userId" binding:"required"`
	Subject           string `json:"subject" binding:"required"`
	NumberOfQuestions int    `json:"numberOfQuestions" binding:"required,gt=0"`
}

// SubmittedAnswerDTO carries one per-question answer: an option reference for
// MCQ questions or free text for everything else.
type SubmittedAnswerDTO struct {
	QuestionID       uint    `json:"questionId" binding:"required"`
	SelectedOptionID *uint   `json:"selectedOptionId"`
	AnswerText       *string `json:"answerText"`
}

type SubmitAttemptRequest struct {
	UserID  uint                 `json:"userId" binding:"required"`
	Answers []SubmittedAnswerDTO `json:"answers" binding:"omitempty,dive"`
}

type QuestionOptionCreateDTO struct {
	Text      string `json:"text" binding:"required"`
	IsCorrect bool   `json:"isCorrect"`
}

type CreateQuestionRequest struct {
	ClassID       uint                      `json:"classId" binding:"required"`
	SubjectID     uint                      `json:"subjectId" binding:"required"`
	SourceID      *uint                     `json:"sourceId"`
	QuestionText  string                    `json:"questionText" binding:"required"`
	QuestionType  string                    `json:"questionType" binding:"required,oneof=MCQ TRUE_FALSE INTEGER SHORT SUBJECTIVE"`
	Marks         float64                   `json:"marks" binding:"required,gt=0"`
	Difficulty    string                    `json:"difficulty"`
	ImageURL      *string                   `json:"imageUrl"`
	Options       []QuestionOptionCreateDTO `json:"options" binding:"omitempty,dive"`
	CorrectAnswer *string                   `json:"correctAnswer"`
}

type UpsertQuestionSourceRequest struct {
	Board     string `json:"board" binding:"required"`
	PaperName string `json:"paperName" binding:"required"`
	Year      int    `json:"year" binding:"required,gt=0"`
}

// TestQuestionRefDTO references an existing bank question when an instructor
// authors a test; link order follows slice order.
type TestQuestionRefDTO struct {
	QuestionID uint `json:"questionId" binding:"required"`
}

// CreateTestRequest is the instructor-authored creation path: totals and the
// question list are caller-supplied, not derived.
type CreateTestRequest struct {
	Title        string               `json:"title" binding:"required"`
	Description  string               `json:"description"`
	TestType     string               `json:"testType" binding:"required,oneof=MOCK SCHEDULED"`
	ClassID      uint                 `json:"classId" binding:"required"`
	SubjectID    uint                 `json:"subjectId" binding:"required"`
	TotalMarks   float64              `json:"totalMarks" binding:"required,gt=0"`
	DurationMin  int                  `json:"durationMin" binding:"required,gt=0"`
	PassingMarks float64              `json:"passingMarks" binding:"gte=0"`
	CreatedByID  *uint                `json:"createdById"`
	Questions    []TestQuestionRefDTO `json:"questions" binding:"omitempty,dive"`
}

type CreateNotificationRequest struct {
	Title    string `json:"title" binding:"required"`
	Message  string `json:"message" binding:"required"`
	ClassID  *uint  `json:"classId"`
	ClassIDs []uint `json:"classIds"`
	// UserIDs is kept for backward compatibility: each user is mapped to
	// their student's class before fan-out.
	UserIDs []uint `json:"userIds"`
}
