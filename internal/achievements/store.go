package achievements

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/learnloop/backend/internal/models"
)

// ErrNotFound means the requested achievement does not exist.
var ErrNotFound = errors.New("achievement not found")

type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) DB() *sql.DB {
	return s.db
}

func (s *Store) List() ([]models.Achievement, error) {
	rows, err := s.db.Query(
		`SELECT id, target_xp, target_streak, target_test_id,
		        reward_kind, reward_amount, reward_content, created_at, updated_at
		 FROM achievements ORDER BY id ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("list achievements: %w", err)
	}
	defer rows.Close()

	var achievements []models.Achievement
	for rows.Next() {
		var a models.Achievement
		if err := rows.Scan(&a.ID, &a.TargetXP, &a.TargetStreak, &a.TargetTestID,
			&a.RewardKind, &a.RewardAmount, &a.RewardContent, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, err
		}
		achievements = append(achievements, a)
	}
	return achievements, rows.Err()
}

func (s *Store) Get(id int64) (*models.Achievement, error) {
	var a models.Achievement
	err := s.db.QueryRow(
		`SELECT id, target_xp, target_streak, target_test_id,
		        reward_kind, reward_amount, reward_content, created_at, updated_at
		 FROM achievements WHERE id = $1`,
		id,
	).Scan(&a.ID, &a.TargetXP, &a.TargetStreak, &a.TargetTestID,
		&a.RewardKind, &a.RewardAmount, &a.RewardContent, &a.CreatedAt, &a.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get achievement %d: %w", id, err)
	}
	return &a, nil
}

// GetClaim returns the user's claim for an achievement, or nil if none.
func (s *Store) GetClaim(userID, achievementID int64) (*models.AchievementClaim, error) {
	var claim models.AchievementClaim
	err := s.db.QueryRow(
		`SELECT id, user_id, achievement_id, claimed_at
		 FROM achievement_claim WHERE user_id = $1 AND achievement_id = $2`,
		userID, achievementID,
	).Scan(&claim.ID, &claim.UserID, &claim.AchievementID, &claim.ClaimedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get claim: %w", err)
	}
	return &claim, nil
}

// ClaimedIDs returns the ids of achievements the user has already claimed.
func (s *Store) ClaimedIDs(userID int64) (map[int64]bool, error) {
	rows, err := s.db.Query(
		`SELECT achievement_id FROM achievement_claim WHERE user_id = $1`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list claims: %w", err)
	}
	defer rows.Close()

	claimed := make(map[int64]bool)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		claimed[id] = true
	}
	return claimed, rows.Err()
}

// InsertClaim creates the claim row if it does not exist. The bool reports
// whether this call created it; a concurrent claimer's row comes back with
// created=false.
func (s *Store) InsertClaim(tx *sql.Tx, userID, achievementID int64) (*models.AchievementClaim, bool, error) {
	var claim models.AchievementClaim
	err := tx.QueryRow(
		`INSERT INTO achievement_claim (user_id, achievement_id) VALUES ($1, $2)
		 ON CONFLICT (user_id, achievement_id) DO NOTHING
		 RETURNING id, user_id, achievement_id, claimed_at`,
		userID, achievementID,
	).Scan(&claim.ID, &claim.UserID, &claim.AchievementID, &claim.ClaimedAt)
	if err == nil {
		return &claim, true, nil
	}
	if err != sql.ErrNoRows {
		return nil, false, fmt.Errorf("insert claim: %w", err)
	}

	// Already claimed; fetch the existing row.
	err = tx.QueryRow(
		`SELECT id, user_id, achievement_id, claimed_at
		 FROM achievement_claim WHERE user_id = $1 AND achievement_id = $2`,
		userID, achievementID,
	).Scan(&claim.ID, &claim.UserID, &claim.AchievementID, &claim.ClaimedAt)
	if err != nil {
		return nil, false, fmt.Errorf("fetch existing claim: %w", err)
	}
	return &claim, false, nil
}

// AttemptedTests returns the set of test ids the user has at least one
// attempt for.
func (s *Store) AttemptedTests(userID int64) (map[int64]bool, error) {
	rows, err := s.db.Query(
		`SELECT DISTINCT test_id FROM test_attempt WHERE user_id = $1`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list attempted tests: %w", err)
	}
	defer rows.Close()

	attempted := make(map[int64]bool)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		attempted[id] = true
	}
	return attempted, rows.Err()
}
