package service

import (
	"testing"

	"github.com/shashanktechgrah/backend-ExamSetu/internal/model"
)

func TestScoreMCQ(t *testing.T) {
	question := &model.QuestionBankQuestion{
		ID:           1,
		QuestionType: model.QuestionTypeMCQ,
		Marks:        2.5,
		Options: []model.QuestionBankOption{
			{ID: 11, OptionText: "A", IsCorrect: false, OrderNo: 1},
			{ID: 12, OptionText: "B", IsCorrect: true, OrderNo: 2},
			{ID: 13, OptionText: "C", IsCorrect: false, OrderNo: 3},
		},
	}

	tests := []struct {
		name     string
		selected *uint
		marks    float64
		verdict  Correctness
	}{
		{name: "correct option", selected: uintPtr(12), marks: 2.5, verdict: CorrectnessCorrect},
		{name: "wrong option", selected: uintPtr(11), marks: 0, verdict: CorrectnessIncorrect},
		{name: "no selection", selected: nil, marks: 0, verdict: CorrectnessIncorrect},
		{name: "unknown option id", selected: uintPtr(99), marks: 0, verdict: CorrectnessIncorrect},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			marks, verdict := ScoreMCQ(question, tc.selected)
			if marks != tc.marks {
				t.Errorf("marks = %v, want %v", marks, tc.marks)
			}
			if verdict != tc.verdict {
				t.Errorf("verdict = %v, want %v", verdict, tc.verdict)
			}
			if verdict == CorrectnessUndetermined {
				t.Error("MCQ verdict must never be undetermined")
			}
		})
	}
}

func TestCorrectnessBoolPtr(t *testing.T) {
	if got := CorrectnessCorrect.BoolPtr(); got == nil || !*got {
		t.Errorf("CorrectnessCorrect.BoolPtr() = %v, want true", got)
	}
	if got := CorrectnessIncorrect.BoolPtr(); got == nil || *got {
		t.Errorf("CorrectnessIncorrect.BoolPtr() = %v, want false", got)
	}
	if got := CorrectnessUndetermined.BoolPtr(); got != nil {
		t.Errorf("CorrectnessUndetermined.BoolPtr() = %v, want nil", got)
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		name      string
		v, lo, hi float64
		want      float64
	}{
		{name: "inside range", v: 2, lo: 0, hi: 5, want: 2},
		{name: "below range", v: -1, lo: 0, hi: 5, want: 0},
		{name: "above range", v: 9.5, lo: 0, hi: 5, want: 5},
		{name: "at upper bound", v: 5, lo: 0, hi: 5, want: 5},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := clamp(tc.v, tc.lo, tc.hi); got != tc.want {
				t.Errorf("clamp(%v, %v, %v) = %v, want %v", tc.v, tc.lo, tc.hi, got, tc.want)
			}
		})
	}
}
