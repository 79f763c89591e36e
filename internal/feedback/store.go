package feedback

import (
	"database/sql"
	"fmt"

	"github.com/learnloop/backend/internal/models"
)

type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Create(userID int64, rating int, message string) (*models.Feedback, error) {
	var fb models.Feedback
	err := s.db.QueryRow(
		`INSERT INTO feedback (user_id, rating, message) VALUES ($1, $2, $3)
		 RETURNING id, user_id, rating, message, created_at`,
		userID, rating, message,
	).Scan(&fb.ID, &fb.UserID, &fb.Rating, &fb.Message, &fb.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("create feedback: %w", err)
	}
	return &fb, nil
}

func (s *Store) ListForUser(userID int64) ([]models.Feedback, error) {
	rows, err := s.db.Query(
		`SELECT id, user_id, rating, message, created_at
		 FROM feedback WHERE user_id = $1 ORDER BY created_at DESC, id DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list feedback: %w", err)
	}
	defer rows.Close()

	items := []models.Feedback{}
	for rows.Next() {
		var fb models.Feedback
		if err := rows.Scan(&fb.ID, &fb.UserID, &fb.Rating, &fb.Message, &fb.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, fb)
	}
	return items, rows.Err()
}
