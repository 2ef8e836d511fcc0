package dto

// QuestionCounts splits a test into objective (MCQ) and subjective
// (delegated-grading) questions.
type QuestionCounts struct {
	MCQ        int `json:"mcq"`
	Subjective int `json:"subjective"`
}

type StartMockTestResponse struct {
	AttemptID      uint           `json:"attemptId"`
	TestID         uint           `json:"testId"`
	Subject        string         `json:"subject"`
	TotalQuestions int            `json:"totalQuestions"`
	DurationMin    int            `json:"durationMin"`
	Counts         QuestionCounts `json:"counts"`
}

type AttemptOptionDTO struct {
	ID   uint   `json:"id"`
	Text string `json:"text"`
}

// AttemptQuestionDTO is the pre-submission view of one question. Correctness
// flags and reference answers are never present here.
type AttemptQuestionDTO struct {
	OrderNo      int                `json:"orderNo"`
	QuestionID   uint               `json:"questionId"`
	QuestionType string             `json:"questionType"`
	Type         string             `json:"type"` // "objective" or "subjective"
	QuestionText string             `json:"questionText"`
	Marks        float64            `json:"marks"`
	Options      []AttemptOptionDTO `json:"options"`
}

type AttemptViewResponse struct {
	AttemptID      uint                 `json:"attemptId"`
	TestID         uint                 `json:"testId"`
	Subject        string               `json:"subject"`
	ClassName      string               `json:"className"`
	TotalQuestions int                  `json:"totalQuestions"`
	DurationMin    int                  `json:"durationMin"`
	Counts         QuestionCounts       `json:"counts"`
	Questions      []AttemptQuestionDTO `json:"questions"`
}

// AttemptResponseDTO is the post-submission review view of one question:
// correct answer, the student's stored answer, and how it was graded.
// Nullable fields stay null for unanswered questions.
type AttemptResponseDTO struct {
	OrderNo         int      `json:"orderNo"`
	QuestionID      uint     `json:"questionId"`
	QuestionType    string   `json:"questionType"`
	QuestionText    string   `json:"questionText"`
	Marks           float64  `json:"marks"`
	CorrectAnswer   *string  `json:"correctAnswer"`
	StudentAnswer   *string  `json:"studentAnswer"`
	MarksObtained   *float64 `json:"marksObtained"`
	SimilarityScore *float64 `json:"similarityScore"`
	EvaluationType  *string  `json:"evaluationType"`
}

type AttemptResponsesResponse struct {
	AttemptID uint                 `json:"attemptId"`
	TestID    uint                 `json:"testId"`
	Subject   string               `json:"subject"`
	Responses []AttemptResponseDTO `json:"responses"`
}

type SubmitAttemptResponse struct {
	AttemptID     uint    `json:"attemptId"`
	TestID        uint    `json:"testId"`
	Subject       string  `json:"subject"`
	TotalMarks    float64 `json:"totalMarks"`
	ObtainedMarks float64 `json:"obtainedMarks"`
	Percentage    float64 `json:"percentage"`
	Status        string  `json:"status"` // "Pass" or "Fail"
}
