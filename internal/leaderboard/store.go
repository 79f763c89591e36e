package leaderboard

import (
	"database/sql"
	"errors"
	"fmt"
)

// ErrUserNotRanked means the user has no economy row yet.
var ErrUserNotRanked = errors.New("user not on leaderboard")

type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// Top returns the highest-ranked rows in leaderboard order.
func (s *Store) Top(limit int) ([]Row, error) {
	rows, err := s.db.Query(
		`SELECT u.id, u.username, u.name, COALESCE(u.profile_icon, ''), e.xp_total, e.energy
		 FROM user_economy_state e
		 JOIN users u ON u.id = e.user_id
		 ORDER BY e.xp_total DESC, e.energy DESC, u.id ASC
		 LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query leaderboard: %w", err)
	}
	defer rows.Close()

	var result []Row
	for rows.Next() {
		var r Row
		if err := rows.Scan(&r.UserID, &r.Username, &r.Name, &r.ProfileIcon, &r.XPTotal, &r.Energy); err != nil {
			return nil, err
		}
		result = append(result, r)
	}
	return result, rows.Err()
}

// RowOf returns the user's own standing.
func (s *Store) RowOf(userID int64) (*Row, error) {
	var r Row
	err := s.db.QueryRow(
		`SELECT u.id, u.username, u.name, COALESCE(u.profile_icon, ''), e.xp_total, e.energy
		 FROM user_economy_state e
		 JOIN users u ON u.id = e.user_id
		 WHERE u.id = $1`,
		userID,
	).Scan(&r.UserID, &r.Username, &r.Name, &r.ProfileIcon, &r.XPTotal, &r.Energy)
	if err == sql.ErrNoRows {
		return nil, ErrUserNotRanked
	}
	if err != nil {
		return nil, fmt.Errorf("query user standing: %w", err)
	}
	return &r, nil
}

// RankOf computes the user's 1-based rank as one plus the number of users
// ahead of them in the (xp desc, energy desc, id asc) ordering.
func (s *Store) RankOf(row Row) (int, error) {
	var ahead int
	err := s.db.QueryRow(
		`SELECT COUNT(*)
		 FROM user_economy_state e
		 WHERE e.xp_total > $1
		    OR (e.xp_total = $1 AND e.energy > $2)
		    OR (e.xp_total = $1 AND e.energy = $2 AND e.user_id < $3)`,
		row.XPTotal, row.Energy, row.UserID,
	).Scan(&ahead)
	if err != nil {
		return 0, fmt.Errorf("compute rank: %w", err)
	}
	return ahead + 1, nil
}
