package dto

import "time"

type ErrorResponse struct {
	Error   string   `json:"error"`
	Details []string `json:"details,omitempty"`
	// Available is set only for question-deficit rejections.
	Available *int `json:"available,omitempty"`
}

type ClassDTO struct {
	ID        uint   `json:"id"`
	ClassName string `json:"class_name"`
	Section   string `json:"section,omitempty"`
}

type SubjectDTO struct {
	ID          uint   `json:"id"`
	SubjectName string `json:"subject_name"`
}

type StudentProfileResponse struct {
	UserID        uint       `json:"userId"`
	StudentID     uint       `json:"studentId"`
	ClassName     *string    `json:"className"`
	Section       *string    `json:"section"`
	RollNo        *string    `json:"rollNo"`
	AdmissionDate *time.Time `json:"admissionDate"`
	GuardianName  *string    `json:"guardianName"`
}

type QuestionSourceDTO struct {
	ID        uint      `json:"id"`
	Board     string    `json:"board"`
	PaperName string    `json:"paper_name"`
	Year      int       `json:"year"`
	CreatedAt time.Time `json:"created_at"`
}

type QuestionBankOptionDTO struct {
	ID         uint   `json:"id"`
	OptionText string `json:"option_text"`
	IsCorrect  bool   `json:"is_correct"`
	OrderNo    int    `json:"order_no"`
}

type QuestionBankItemDTO struct {
	ID            uint                    `json:"id"`
	ClassName     string                  `json:"class_name"`
	SubjectName   string                  `json:"subject_name"`
	Board         *string                 `json:"board,omitempty"`
	PaperName     *string                 `json:"paper_name,omitempty"`
	Year          *int                    `json:"year,omitempty"`
	QuestionText  string                  `json:"question_text"`
	QuestionType  string                  `json:"question_type"`
	Marks         float64                 `json:"marks"`
	Difficulty    string                  `json:"difficulty"`
	ImageURL      *string                 `json:"image_url,omitempty"`
	IsActive      bool                    `json:"is_active"`
	Options       []QuestionBankOptionDTO `json:"options,omitempty"`
	CorrectAnswer *string                 `json:"correct_answer,omitempty"`
	CreatedAt     time.Time               `json:"created_at"`
}

type TestSummaryDTO struct {
	ID           uint      `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description,omitempty"`
	TestType     string    `json:"test_type"`
	ClassName    string    `json:"class_name"`
	Section      string    `json:"section,omitempty"`
	SubjectName  string    `json:"subject_name"`
	TotalMarks   float64   `json:"total_marks"`
	DurationMin  int       `json:"duration_min"`
	PassingMarks float64   `json:"passing_marks"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
}

// ResultSummaryDTO lists one finished attempt for the student's results page.
// Time taken is derived from the attempt timestamps, ceil'd to whole minutes.
type ResultSummaryDTO struct {
	ID             uint      `json:"id"`
	AttemptID      uint      `json:"attemptId"`
	TestID         uint      `json:"testId"`
	Subject        string    `json:"subject"`
	TestType       string    `json:"testType"`
	Date           time.Time `json:"date"`
	TotalQuestions int       `json:"totalQuestions"`
	DurationMin    int       `json:"durationMin"`
	TimeTakenSec   *int      `json:"timeTakenSec"`
	TimeTakenMin   *int      `json:"timeTakenMin"`
	TotalMarks     float64   `json:"totalMarks"`
	ObtainedMarks  float64   `json:"obtainedMarks"`
	Percentage     float64   `json:"percentage"`
	Status         string    `json:"status"`
	Published      bool      `json:"published"`
}

type NotificationDTO struct {
	ID        uint      `json:"id"`
	ClassID   uint      `json:"class_id"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}
