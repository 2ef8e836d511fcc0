package service

import "github.com/shashanktechgrah/backend-ExamSetu/internal/model"

// Correctness is the tri-state verdict stored per answer. Undetermined means
// the system could not judge the answer automatically (free-text grading
// degraded or never ran); it is distinct from Incorrect.
type Correctness int

const (
	CorrectnessUndetermined Correctness = iota
	CorrectnessCorrect
	CorrectnessIncorrect
)

// BoolPtr maps the verdict onto the nullable database column.
func (c Correctness) BoolPtr() *bool {
	switch c {
	case CorrectnessCorrect:
		v := true
		return &v
	case CorrectnessIncorrect:
		v := false
		return &v
	default:
		return nil
	}
}

// ScoreMCQ grades an option selection: full marks for the correct option,
// zero otherwise. A missing or unknown option id counts as incorrect; MCQ
// verdicts are never undetermined.
func ScoreMCQ(question *model.QuestionBankQuestion, selectedOptionID *uint) (float64, Correctness) {
	if selectedOptionID == nil {
		return 0, CorrectnessIncorrect
	}
	for _, opt := range question.Options {
		if opt.ID == *selectedOptionID {
			if opt.IsCorrect {
				return question.Marks, CorrectnessCorrect
			}
			return 0, CorrectnessIncorrect
		}
	}
	return 0, CorrectnessIncorrect
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
