package submission

import (
	"errors"
	"testing"
	"time"

	"github.com/learnloop/backend/internal/config"
	"github.com/learnloop/backend/internal/models"
)

type fixedKeys []models.QuestionKey

func (f fixedKeys) TestQuestionKeys(testID int64) ([]models.QuestionKey, error) {
	if len(f) == 0 {
		return nil, ErrTestNotFound
	}
	return f, nil
}

// Invalid batches must be rejected before any row is written; the service
// has no database here, so reaching the transaction would panic instead of
// failing the assertion.
func TestSubmit_RejectsInvalidBatchBeforePersisting(t *testing.T) {
	keys := fixedKeys{
		{QuestionID: 1, ExpectedAnswer: "Paris"},
		{QuestionID: 2, ExpectedAnswer: "42"},
	}
	svc := &Service{catalog: keys, cfg: config.DefaultEconomy()}
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		answers []models.SubmittedAnswer
		wantErr error
	}{
		{
			name: "duplicate answer",
			answers: []models.SubmittedAnswer{
				{QuestionID: 1, AnswerText: "Paris"},
				{QuestionID: 1, AnswerText: "London"},
			},
			wantErr: ErrDuplicateAnswer,
		},
		{
			name: "unknown question",
			answers: []models.SubmittedAnswer{
				{QuestionID: 99, AnswerText: "whatever"},
			},
			wantErr: ErrInvalidQuestion,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := svc.Submit(1, 10, models.SubmitTestRequest{Answers: tt.answers}, now)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Submit error = %v, want %v", err, tt.wantErr)
			}
			if result != nil {
				t.Errorf("rejected submission returned a result: %+v", result)
			}
		})
	}
}

func TestSubmit_UnknownTest(t *testing.T) {
	svc := &Service{catalog: fixedKeys{}, cfg: config.DefaultEconomy()}

	_, err := svc.Submit(1, 10, models.SubmitTestRequest{}, time.Now().UTC())
	if !errors.Is(err, ErrTestNotFound) {
		t.Fatalf("expected ErrTestNotFound, got %v", err)
	}
}
