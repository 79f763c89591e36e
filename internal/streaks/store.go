package streaks

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"
	"github.com/learnloop/backend/internal/models"
)

var (
	// ErrAlreadyMarked means the day already has a record; markers treat
	// this as success-no-op.
	ErrAlreadyMarked = errors.New("streak already recorded for this date")

	// ErrDateAlreadyCovered is the user-facing rejection on the saver path.
	ErrDateAlreadyCovered = errors.New("date already covered by a streak record")

	// ErrMonthlyLimitReached means the saver allowance for the calendar
	// month is used up.
	ErrMonthlyLimitReached = errors.New("streak saver monthly limit reached")
)

type querier interface {
	Exec(query string, args ...interface{}) (sql.Result, error)
	QueryRow(query string, args ...interface{}) *sql.Row
}

type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// Mark creates the record for the given calendar day. Returns
// ErrAlreadyMarked when the day is already covered.
func (s *Store) Mark(userID int64, date time.Time) (*models.StreakRecord, error) {
	return mark(s.db, userID, date)
}

// MarkTx does the same inside the caller's transaction; the submission
// service uses it so a rolled-back submission leaves no streak row behind.
func (s *Store) MarkTx(tx *sql.Tx, userID int64, date time.Time) (*models.StreakRecord, error) {
	return mark(tx, userID, date)
}

func mark(q querier, userID int64, date time.Time) (*models.StreakRecord, error) {
	day := Day(date)
	var rec models.StreakRecord
	err := q.QueryRow(
		`INSERT INTO streak_record (user_id, streak_date) VALUES ($1, $2)
		 ON CONFLICT (user_id, streak_date) DO NOTHING
		 RETURNING id, user_id, streak_date, is_saver_use, created_at`,
		userID, day,
	).Scan(&rec.ID, &rec.UserID, &rec.Date, &rec.IsSaverUse, &rec.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrAlreadyMarked
	}
	if err != nil {
		return nil, fmt.Errorf("mark streak: %w", err)
	}
	return &rec, nil
}

// Dates returns the user's covered days, newest first.
func (s *Store) Dates(userID int64) ([]models.StreakRecord, error) {
	rows, err := s.db.Query(
		`SELECT id, user_id, streak_date, is_saver_use, created_at
		 FROM streak_record WHERE user_id = $1
		 ORDER BY streak_date DESC, id DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list streaks: %w", err)
	}
	defer rows.Close()

	var recs []models.StreakRecord
	for rows.Next() {
		var rec models.StreakRecord
		if err := rows.Scan(&rec.ID, &rec.UserID, &rec.Date, &rec.IsSaverUse, &rec.CreatedAt); err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}

// SaverUsesInMonth counts saver records within the calendar month of ref.
func (s *Store) SaverUsesInMonth(q querier, userID int64, ref time.Time) (int, error) {
	start, end := MonthBounds(ref)
	var count int
	err := q.QueryRow(
		`SELECT COUNT(*) FROM streak_record
		 WHERE user_id = $1 AND is_saver_use = TRUE
		   AND streak_date >= $2 AND streak_date < $3`,
		userID, start, end,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count saver uses: %w", err)
	}
	return count, nil
}

// UseSaver covers targetDate with a saver record, enforcing the monthly
// limit. The count and insert run inside one transaction; the uniqueness
// constraint still backstops a concurrent cover of the same date.
func (s *Store) UseSaver(userID int64, targetDate time.Time, monthlyLimit int) (*models.StreakRecord, error) {
	day := Day(targetDate)

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("begin saver tx: %w", err)
	}
	defer tx.Rollback()

	var exists bool
	if err := tx.QueryRow(
		`SELECT EXISTS(SELECT 1 FROM streak_record WHERE user_id = $1 AND streak_date = $2)`,
		userID, day,
	).Scan(&exists); err != nil {
		return nil, fmt.Errorf("check covered date: %w", err)
	}
	if exists {
		return nil, ErrDateAlreadyCovered
	}

	used, err := s.SaverUsesInMonth(tx, userID, day)
	if err != nil {
		return nil, err
	}
	if used >= monthlyLimit {
		return nil, ErrMonthlyLimitReached
	}

	var rec models.StreakRecord
	err = tx.QueryRow(
		`INSERT INTO streak_record (user_id, streak_date, is_saver_use) VALUES ($1, $2, TRUE)
		 RETURNING id, user_id, streak_date, is_saver_use, created_at`,
		userID, day,
	).Scan(&rec.ID, &rec.UserID, &rec.Date, &rec.IsSaverUse, &rec.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			// Lost a race to cover the same date.
			return nil, ErrDateAlreadyCovered
		}
		return nil, fmt.Errorf("insert saver record: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit saver tx: %w", err)
	}
	return &rec, nil
}
