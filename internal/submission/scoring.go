package submission

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/learnloop/backend/internal/models"
)

var (
	// ErrInvalidQuestion means an answer names a question outside the test.
	ErrInvalidQuestion = errors.New("answer references a question not in this test")

	// ErrDuplicateAnswer means two answers name the same question.
	ErrDuplicateAnswer = errors.New("duplicate answer for question")
)

// NormalizeAnswer strips surrounding whitespace; comparison is
// case-insensitive so callers need not fold here.
func NormalizeAnswer(s string) string {
	return strings.TrimSpace(s)
}

// EvaluatedAnswer is one graded submitted answer.
type EvaluatedAnswer struct {
	QuestionID int64
	GivenText  string
	IsCorrect  bool
}

// EvaluateAnswers grades submitted answers against the test's answer key,
// one entry per submitted answer in submission order. Unanswered questions
// produce no entry; they simply don't contribute to the correct count.
// Comparison is trimmed and case-insensitive, so a blank submission matches
// a blank expected answer.
func EvaluateAnswers(keys []models.QuestionKey, answers []models.SubmittedAnswer) ([]EvaluatedAnswer, error) {
	expected := make(map[int64]string, len(keys))
	for _, k := range keys {
		expected[k.QuestionID] = k.ExpectedAnswer
	}

	seen := make(map[int64]bool, len(answers))
	graded := make([]EvaluatedAnswer, len(answers))
	for i, a := range answers {
		want, ok := expected[a.QuestionID]
		if !ok {
			return nil, fmt.Errorf("%w: %d", ErrInvalidQuestion, a.QuestionID)
		}
		if seen[a.QuestionID] {
			return nil, fmt.Errorf("%w: %d", ErrDuplicateAnswer, a.QuestionID)
		}
		seen[a.QuestionID] = true

		given := NormalizeAnswer(a.AnswerText)
		graded[i] = EvaluatedAnswer{
			QuestionID: a.QuestionID,
			GivenText:  given,
			IsCorrect:  strings.EqualFold(given, NormalizeAnswer(want)),
		}
	}
	return graded, nil
}

// ScorePercent rounds correct/total to a whole percentage. A test with no
// questions scores zero.
func ScorePercent(correct, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(correct) / float64(total) * 100))
}
