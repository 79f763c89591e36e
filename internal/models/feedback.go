package models

import "time"

type Feedback struct {
	ID        int64     `json:"feedback_id"`
	UserID    int64     `json:"user_id"`
	Rating    int       `json:"rating"` // 1-5
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

type FeedbackRequest struct {
	Rating  int    `json:"rating"`
	Message string `json:"message"`
}
