package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"github.com/rs/zerolog/log"
	"google.golang.org/api/option"

	"github.com/shashanktechgrah/backend-ExamSetu/config"
)

type geminiGrader struct {
	model   *genai.GenerativeModel
	timeout time.Duration
}

// NewGeminiGrader grades free-text answers with Gemini instead of the HTTP
// delegate. A missing API key yields a non-functional grader rather than a
// startup failure; every Grade call then degrades to zero marks.
func NewGeminiGrader(cfg *config.Config) (GraderService, error) {
	if cfg.GeminiApiKey == "" {
		log.Warn().Msg("GEMINI_API_KEY is not set. Gemini grader will be non-functional.")
		return &geminiGrader{model: nil, timeout: cfg.Grader.Timeout}, nil
	}
	client, err := genai.NewClient(context.Background(), option.WithAPIKey(cfg.GeminiApiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Gemini client: %w", err)
	}
	return &geminiGrader{
		model:   client.GenerativeModel("gemini-1.5-flash"),
		timeout: cfg.Grader.Timeout,
	}, nil
}

func (g *geminiGrader) Grade(ctx context.Context, referenceAnswer, studentAnswer string, maxMarks float64) (*GradeResult, error) {
	if g.model == nil {
		return nil, fmt.Errorf("gemini client not initialized")
	}

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	prompt := fmt.Sprintf(`You are an examiner grading one written exam answer against a reference answer.

Reference answer:
%s

Student answer:
%s

Award marks from 0.0 to %.2f based on how completely and correctly the student answer covers the reference answer, and estimate their semantic similarity from 0.0 to 1.0.

Format your response strictly as:
Marks: [numerical marks from 0.0 to %.2f]
Similarity: [numerical similarity from 0.0 to 1.0]
`, referenceAnswer, studentAnswer, maxMarks, maxMarks)

	resp, err := g.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return nil, fmt.Errorf("gemini content generation failed: %w", err)
	}

	marks, similarity, err := parseMarksAndSimilarity(collectResponseText(resp))
	if err != nil {
		return nil, err
	}
	return &GradeResult{Marks: marks, Similarity: similarity}, nil
}

func collectResponseText(resp *genai.GenerateContentResponse) string {
	var sb strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if text, ok := part.(genai.Text); ok {
				sb.WriteString(string(text))
			}
		}
	}
	return sb.String()
}

func parseMarksAndSimilarity(raw string) (marks float64, similarity float64, err error) {
	var haveMarks, haveSimilarity bool
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		lower := strings.ToLower(line)
		switch {
		case strings.HasPrefix(lower, "marks:"):
			fields := strings.Fields(line[len("marks:"):])
			if len(fields) > 0 {
				if v, parseErr := strconv.ParseFloat(fields[0], 64); parseErr == nil {
					marks, haveMarks = v, true
				}
			}
		case strings.HasPrefix(lower, "similarity:"):
			fields := strings.Fields(line[len("similarity:"):])
			if len(fields) > 0 {
				if v, parseErr := strconv.ParseFloat(fields[0], 64); parseErr == nil {
					similarity, haveSimilarity = v, true
				}
			}
		}
	}
	if !haveMarks || !haveSimilarity {
		return 0, 0, fmt.Errorf("response does not contain 'Marks:' and 'Similarity:' lines. Raw: %s", raw)
	}
	return marks, similarity, nil
}
