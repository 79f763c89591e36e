package submission

import (
	"errors"
	"testing"

	"github.com/learnloop/backend/internal/models"
)

var sampleKeys = []models.QuestionKey{
	{QuestionID: 1, ExpectedAnswer: "Paris"},
	{QuestionID: 2, ExpectedAnswer: "blue whale"},
	{QuestionID: 3, ExpectedAnswer: "42"},
}

func TestEvaluateAnswers(t *testing.T) {
	answers := []models.SubmittedAnswer{
		{QuestionID: 1, AnswerText: "  paris  "},
		{QuestionID: 2, AnswerText: "Blue Whale"},
		{QuestionID: 3, AnswerText: "41"},
	}

	graded, err := EvaluateAnswers(sampleKeys, answers)
	if err != nil {
		t.Fatalf("EvaluateAnswers: %v", err)
	}
	if len(graded) != 3 {
		t.Fatalf("expected 3 graded answers, got %d", len(graded))
	}

	wantCorrect := []bool{true, true, false}
	for i, g := range graded {
		if g.IsCorrect != wantCorrect[i] {
			t.Errorf("answer %d: IsCorrect = %v, want %v", g.QuestionID, g.IsCorrect, wantCorrect[i])
		}
	}
	if graded[0].GivenText != "paris" {
		t.Errorf("given text not trimmed: %q", graded[0].GivenText)
	}
}

func TestEvaluateAnswers_PartialSubmission(t *testing.T) {
	graded, err := EvaluateAnswers(sampleKeys, []models.SubmittedAnswer{
		{QuestionID: 2, AnswerText: "blue whale"},
	})
	if err != nil {
		t.Fatalf("EvaluateAnswers: %v", err)
	}
	if len(graded) != 1 {
		t.Fatalf("expected an entry per submitted answer, got %d", len(graded))
	}
	if !graded[0].IsCorrect {
		t.Error("submitted answer should grade correct")
	}
}

func TestEvaluateAnswers_BlankAnswers(t *testing.T) {
	keys := []models.QuestionKey{
		{QuestionID: 1, ExpectedAnswer: ""},
		{QuestionID: 2, ExpectedAnswer: "Paris"},
	}
	graded, err := EvaluateAnswers(keys, []models.SubmittedAnswer{
		{QuestionID: 1, AnswerText: "   "},
		{QuestionID: 2, AnswerText: ""},
	})
	if err != nil {
		t.Fatalf("EvaluateAnswers: %v", err)
	}
	// A blank submission matches a blank expected answer after trimming.
	if !graded[0].IsCorrect {
		t.Error("blank answer against blank expected answer should be correct")
	}
	if graded[1].IsCorrect {
		t.Error("blank answer against a real expected answer should be incorrect")
	}
}

func TestEvaluateAnswers_UnknownQuestion(t *testing.T) {
	_, err := EvaluateAnswers(sampleKeys, []models.SubmittedAnswer{
		{QuestionID: 99, AnswerText: "whatever"},
	})
	if !errors.Is(err, ErrInvalidQuestion) {
		t.Fatalf("expected ErrInvalidQuestion, got %v", err)
	}
}

func TestEvaluateAnswers_DuplicateQuestion(t *testing.T) {
	_, err := EvaluateAnswers(sampleKeys, []models.SubmittedAnswer{
		{QuestionID: 1, AnswerText: "Paris"},
		{QuestionID: 1, AnswerText: "London"},
	})
	if !errors.Is(err, ErrDuplicateAnswer) {
		t.Fatalf("expected ErrDuplicateAnswer, got %v", err)
	}
}

func TestScorePercent(t *testing.T) {
	tests := []struct {
		correct, total, want int
	}{
		{0, 0, 0},
		{0, 10, 0},
		{10, 10, 100},
		{1, 3, 33},
		{2, 3, 67},
		{1, 8, 13},
		{5, 0, 0},
	}

	for _, tt := range tests {
		if got := ScorePercent(tt.correct, tt.total); got != tt.want {
			t.Errorf("ScorePercent(%d, %d) = %d, want %d", tt.correct, tt.total, got, tt.want)
		}
	}
}

func TestNormalizeAnswer(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"  Paris ", "Paris"},
		{"\tanswer\n", "answer"},
		{"", ""},
		{"  ", ""},
	}

	for _, tt := range tests {
		if got := NormalizeAnswer(tt.in); got != tt.want {
			t.Errorf("NormalizeAnswer(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
