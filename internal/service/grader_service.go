package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/shashanktechgrah/backend-ExamSetu/config"
)

// GradeResult is the delegate's verdict on one free-text answer.
type GradeResult struct {
	Marks      float64
	Similarity float64
}

// GraderService scores a free-text answer against its reference answer.
// Implementations must respect the configured deadline; callers treat any
// error as a degraded grading pass, never as a submission failure.
type GraderService interface {
	Grade(ctx context.Context, referenceAnswer, studentAnswer string, maxMarks float64) (*GradeResult, error)
}

type httpGrader struct {
	client *http.Client
	url    string
}

// NewHTTPGrader talks to the external evaluation service over HTTP. One POST
// per answer, no retries; the client timeout is the only deadline.
func NewHTTPGrader(cfg *config.Config) GraderService {
	return &httpGrader{
		client: &http.Client{Timeout: cfg.Grader.Timeout},
		url:    cfg.Grader.URL,
	}
}

type gradeRequestBody struct {
	CorrectAnswer string  `json:"correct_answer"`
	StudentAnswer string  `json:"student_answer"`
	MaxMarks      float64 `json:"max_marks"`
}

type gradeResponseBody struct {
	MarksObtained   json.Number `json:"marks_obtained"`
	SimilarityScore json.Number `json:"similarity_score"`
}

func (g *httpGrader) Grade(ctx context.Context, referenceAnswer, studentAnswer string, maxMarks float64) (*GradeResult, error) {
	payload, err := json.Marshal(gradeRequestBody{
		CorrectAnswer: referenceAnswer,
		StudentAnswer: studentAnswer,
		MaxMarks:      maxMarks,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode grading request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to build grading request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("grading request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("grading service returned status %d", resp.StatusCode)
	}

	var body gradeResponseBody
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode grading response: %w", err)
	}

	result := &GradeResult{}
	if body.MarksObtained != "" {
		if result.Marks, err = body.MarksObtained.Float64(); err != nil {
			return nil, fmt.Errorf("non-numeric marks_obtained %q: %w", body.MarksObtained, err)
		}
	}
	if body.SimilarityScore != "" {
		if result.Similarity, err = body.SimilarityScore.Float64(); err != nil {
			return nil, fmt.Errorf("non-numeric similarity_score %q: %w", body.SimilarityScore, err)
		}
	}
	return result, nil
}
