package models

import "time"

// TestAttempt is one submission of a test; immutable once written together
// with its answer rows.
type TestAttempt struct {
	ID              int64     `json:"attempt_id"`
	UserID          int64     `json:"user_id"`
	TestID          int64     `json:"test_id"`
	AttemptedAt     time.Time `json:"attempted_at"`
	DurationSeconds int       `json:"duration_seconds"`
	CorrectCount    int       `json:"correct_count"`
	ScorePercent    int       `json:"score_percent"`
}

// AnswerRecord stores the given text and verdict only; it carries no
// reference back to the question it answered.
type AnswerRecord struct {
	ID        int64  `json:"answer_id"`
	AttemptID int64  `json:"attempt_id"`
	GivenText string `json:"given_text"`
	IsCorrect bool   `json:"is_correct"`
}

type SubmittedAnswer struct {
	QuestionID int64  `json:"question_id"`
	AnswerText string `json:"answer_text"`
}

type SubmitTestRequest struct {
	DurationSeconds int               `json:"duration_seconds"`
	Answers         []SubmittedAnswer `json:"answers"`
}

type SubmissionResult struct {
	AttemptID       int64     `json:"attempt_id"`
	AttemptedAt     time.Time `json:"attempted_at"`
	DurationSeconds int       `json:"duration_seconds"`
	TotalQuestions  int       `json:"total_questions"`
	AnsweredCount   int       `json:"answered_count"`
	CorrectCount    int       `json:"correct_count"`
	ScorePercent    int       `json:"score_percent"`
	IsPractice      bool      `json:"is_practice"`
	XPAwarded       int       `json:"xp_awarded"`
	EnergySpent     int       `json:"energy_spent"`
	StreakCreated   bool      `json:"streak_created"`
}
