package catalog

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/learnloop/backend/internal/models"
)

// ErrTestNotFound covers both a missing test and one whose course is not
// active; clients can't tell the two apart.
var ErrTestNotFound = errors.New("test not found")

type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) ListActiveCourses() ([]models.Course, error) {
	rows, err := s.db.Query(
		`SELECT id, title, COALESCE(description, ''), status, created_at
		 FROM courses WHERE status = $1 ORDER BY id ASC`,
		models.CourseActive,
	)
	if err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}
	defer rows.Close()

	courses := []models.Course{}
	for rows.Next() {
		var c models.Course
		if err := rows.Scan(&c.ID, &c.Title, &c.Description, &c.Status, &c.CreatedAt); err != nil {
			return nil, err
		}
		courses = append(courses, c)
	}
	return courses, rows.Err()
}

func (s *Store) ListChapters(courseID int64) ([]models.Chapter, error) {
	rows, err := s.db.Query(
		`SELECT id, course_id, title, order_index
		 FROM chapters WHERE course_id = $1 ORDER BY order_index ASC, id ASC`,
		courseID,
	)
	if err != nil {
		return nil, fmt.Errorf("list chapters: %w", err)
	}
	defer rows.Close()

	chapters := []models.Chapter{}
	for rows.Next() {
		var ch models.Chapter
		if err := rows.Scan(&ch.ID, &ch.CourseID, &ch.Title, &ch.OrderIndex); err != nil {
			return nil, err
		}
		chapters = append(chapters, ch)
	}
	return chapters, rows.Err()
}

func (s *Store) ListTests(chapterID int64) ([]models.Test, error) {
	rows, err := s.db.Query(
		`SELECT id, chapter_id, title, order_index
		 FROM tests WHERE chapter_id = $1 ORDER BY order_index ASC, id ASC`,
		chapterID,
	)
	if err != nil {
		return nil, fmt.Errorf("list tests: %w", err)
	}
	defer rows.Close()

	tests := []models.Test{}
	for rows.Next() {
		var tst models.Test
		if err := rows.Scan(&tst.ID, &tst.ChapterID, &tst.Title, &tst.OrderIndex); err != nil {
			return nil, err
		}
		tests = append(tests, tst)
	}
	return tests, rows.Err()
}

// ListQuestions returns a test's questions without their expected answers.
func (s *Store) ListQuestions(testID int64) ([]models.Question, error) {
	rows, err := s.db.Query(
		`SELECT id, test_id, prompt, order_index
		 FROM questions WHERE test_id = $1 ORDER BY order_index ASC, id ASC`,
		testID,
	)
	if err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}
	defer rows.Close()

	questions := []models.Question{}
	for rows.Next() {
		var q models.Question
		if err := rows.Scan(&q.ID, &q.TestID, &q.Prompt, &q.OrderIndex); err != nil {
			return nil, err
		}
		questions = append(questions, q)
	}
	return questions, rows.Err()
}

// TestQuestionKeys loads the answer key for a submittable test. A test
// whose course is not active is treated as missing.
func (s *Store) TestQuestionKeys(testID int64) ([]models.QuestionKey, error) {
	var exists bool
	err := s.db.QueryRow(
		`SELECT EXISTS(
		    SELECT 1 FROM tests t
		    JOIN chapters ch ON ch.id = t.chapter_id
		    JOIN courses c ON c.id = ch.course_id
		    WHERE t.id = $1 AND c.status = $2
		 )`,
		testID, models.CourseActive,
	).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("check test %d: %w", testID, err)
	}
	if !exists {
		return nil, ErrTestNotFound
	}

	rows, err := s.db.Query(
		`SELECT id, expected_answer FROM questions WHERE test_id = $1 ORDER BY order_index ASC, id ASC`,
		testID,
	)
	if err != nil {
		return nil, fmt.Errorf("load answer key for test %d: %w", testID, err)
	}
	defer rows.Close()

	var keys []models.QuestionKey
	for rows.Next() {
		var k models.QuestionKey
		if err := rows.Scan(&k.QuestionID, &k.ExpectedAnswer); err != nil {
			return nil, err
		}
		keys = append(keys, k)
	}
	return keys, rows.Err()
}
