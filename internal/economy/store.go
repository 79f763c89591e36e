package economy

import (
	"database/sql"
	"fmt"

	"github.com/learnloop/backend/internal/models"
)

// querier is satisfied by both *sql.DB and *sql.Tx so the same store methods
// serve the plain read paths and the locked submission transaction.
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

func (s *Store) DB() *sql.DB { return s.db }

// GetOrCreate fetches the user's economy row, creating it lazily on first
// access.
func (s *Store) GetOrCreate(userID int64) (*models.UserEconomyState, error) {
	return getOrCreate(s.db, userID, false)
}

// GetOrCreateForUpdate does the same inside a transaction, holding a
// row-level lock until the transaction ends. This serializes concurrent
// submissions by the same user.
func (s *Store) GetOrCreateForUpdate(tx *sql.Tx, userID int64) (*models.UserEconomyState, error) {
	return getOrCreate(tx, userID, true)
}

func getOrCreate(q querier, userID int64, forUpdate bool) (*models.UserEconomyState, error) {
	_, err := q.Exec(
		`INSERT INTO user_economy_state (user_id) VALUES ($1)
		 ON CONFLICT (user_id) DO NOTHING`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("upsert economy state: %w", err)
	}

	query := `SELECT user_id, xp_total, energy, energy_last_updated, created_at, updated_at
	          FROM user_economy_state WHERE user_id = $1`
	if forUpdate {
		query += " FOR UPDATE"
	}

	var st models.UserEconomyState
	err = q.QueryRow(query, userID).Scan(
		&st.UserID, &st.XPTotal, &st.Energy, &st.EnergyLastUpdated, &st.CreatedAt, &st.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("get economy state: %w", err)
	}
	return &st, nil
}

// Save persists xp, energy and the energy timestamp.
func (s *Store) Save(st *models.UserEconomyState) error {
	return save(s.db, st)
}

// SaveTx persists inside the caller's transaction.
func (s *Store) SaveTx(tx *sql.Tx, st *models.UserEconomyState) error {
	return save(tx, st)
}

func save(q querier, st *models.UserEconomyState) error {
	_, err := q.Exec(
		`UPDATE user_economy_state SET
		    xp_total = $2, energy = $3, energy_last_updated = $4, updated_at = NOW()
		 WHERE user_id = $1`,
		st.UserID, st.XPTotal, st.Energy, st.EnergyLastUpdated,
	)
	if err != nil {
		return fmt.Errorf("save economy state: %w", err)
	}
	return nil
}

// EnergyStateOf converts a row into the pure energy view.
func EnergyStateOf(st *models.UserEconomyState) EnergyState {
	return EnergyState{Value: st.Energy, LastUpdated: st.EnergyLastUpdated}
}

// ApplyEnergyState writes a pure energy state back onto the row, keeping the
// timestamp monotone.
func ApplyEnergyState(st *models.UserEconomyState, es EnergyState) {
	st.Energy = es.Value
	if es.LastUpdated.After(st.EnergyLastUpdated) {
		st.EnergyLastUpdated = es.LastUpdated
	}
}
