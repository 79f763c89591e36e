package submission

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/learnloop/backend/internal/models"
)

type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) DB() *sql.DB {
	return s.db
}

// HasAttempt reports whether the user has any prior attempt at the test.
func (s *Store) HasAttempt(tx *sql.Tx, userID, testID int64) (bool, error) {
	var exists bool
	err := tx.QueryRow(
		`SELECT EXISTS(SELECT 1 FROM test_attempt WHERE user_id = $1 AND test_id = $2)`,
		userID, testID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check prior attempts: %w", err)
	}
	return exists, nil
}

func (s *Store) InsertAttempt(tx *sql.Tx, userID, testID int64, attemptedAt time.Time, durationSeconds, correctCount, scorePercent int) (*models.TestAttempt, error) {
	var attempt models.TestAttempt
	err := tx.QueryRow(
		`INSERT INTO test_attempt (user_id, test_id, attempted_at, duration_seconds, correct_count, score_percent)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, user_id, test_id, attempted_at, duration_seconds, correct_count, score_percent`,
		userID, testID, attemptedAt, durationSeconds, correctCount, scorePercent,
	).Scan(&attempt.ID, &attempt.UserID, &attempt.TestID, &attempt.AttemptedAt,
		&attempt.DurationSeconds, &attempt.CorrectCount, &attempt.ScorePercent)
	if err != nil {
		return nil, fmt.Errorf("insert attempt: %w", err)
	}
	return &attempt, nil
}

func (s *Store) InsertAnswers(tx *sql.Tx, attemptID int64, graded []EvaluatedAnswer) error {
	stmt, err := tx.Prepare(
		`INSERT INTO answer_record (attempt_id, given_text, is_correct) VALUES ($1, $2, $3)`,
	)
	if err != nil {
		return fmt.Errorf("prepare answer insert: %w", err)
	}
	defer stmt.Close()

	for _, g := range graded {
		if _, err := stmt.Exec(attemptID, g.GivenText, g.IsCorrect); err != nil {
			return fmt.Errorf("insert answer: %w", err)
		}
	}
	return nil
}

// ListAttempts returns the user's attempts at a test, newest first.
func (s *Store) ListAttempts(userID, testID int64) ([]models.TestAttempt, error) {
	rows, err := s.db.Query(
		`SELECT id, user_id, test_id, attempted_at, duration_seconds, correct_count, score_percent
		 FROM test_attempt WHERE user_id = $1 AND test_id = $2
		 ORDER BY attempted_at DESC, id DESC`,
		userID, testID,
	)
	if err != nil {
		return nil, fmt.Errorf("list attempts: %w", err)
	}
	defer rows.Close()

	attempts := []models.TestAttempt{}
	for rows.Next() {
		var a models.TestAttempt
		if err := rows.Scan(&a.ID, &a.UserID, &a.TestID, &a.AttemptedAt,
			&a.DurationSeconds, &a.CorrectCount, &a.ScorePercent); err != nil {
			return nil, err
		}
		attempts = append(attempts, a)
	}
	return attempts, rows.Err()
}
