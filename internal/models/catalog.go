package models

import "time"

// Course statuses.
const (
	CourseActive   = "active"
	CourseDraft    = "draft"
	CourseArchived = "archived"
)

type Course struct {
	ID          int64     `json:"course_id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

type Chapter struct {
	ID         int64  `json:"chapter_id"`
	CourseID   int64  `json:"course_id"`
	Title      string `json:"title"`
	OrderIndex int    `json:"order_index"`
}

type Test struct {
	ID         int64  `json:"test_id"`
	ChapterID  int64  `json:"chapter_id"`
	Title      string `json:"title"`
	OrderIndex int    `json:"order_index"`
}

type Question struct {
	ID         int64  `json:"question_id"`
	TestID     int64  `json:"test_id"`
	Prompt     string `json:"prompt"`
	OrderIndex int    `json:"order_index"`
}

// QuestionKey pairs a question with its expected answer. This is the shape
// the submission scorer consumes; it never reaches the client surface.
type QuestionKey struct {
	QuestionID     int64
	ExpectedAnswer string
}
