package premium

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

// ActiveTier resolves the user's subscription tier at call time. The most
// recently updated active subscription wins; no active subscription means
// TierNone.
func (s *Store) ActiveTier(userID int64) (models.SubscriptionTier, error) {
	var subType string
	err := s.db.QueryRow(
		`SELECT type FROM premium_subscriptions
		 WHERE user_id = $1 AND status = 'active'
		 ORDER BY updated_at DESC
		 LIMIT 1`,
		userID,
	).Scan(&subType)
	if err == sql.ErrNoRows {
		return models.TierNone, nil
	}
	if err != nil {
		return models.TierNone, fmt.Errorf("get active subscription: %w", err)
	}

	switch subType {
	case models.SubscriptionMonth:
		return models.TierMonthly, nil
	case models.SubscriptionYear:
		return models.TierYearly, nil
	}
	return models.TierNone, nil
}

// Create inserts a subscription. The end date is derived from the type when
// absent (30 days for monthly, 365 for yearly).
func (s *Store) Create(userID int64, subType string, amount float64, now time.Time) (*models.PremiumSubscription, error) {
	days := 30
	if subType == models.SubscriptionYear {
		days = 365
	}
	endDate := now.AddDate(0, 0, days)

	var sub models.PremiumSubscription
	err := s.db.QueryRow(
		`INSERT INTO premium_subscriptions (user_id, type, start_date, end_date, status, amount)
		 VALUES ($1, $2, $3, $4, 'active', $5)
		 RETURNING id, user_id, type, start_date, end_date, status, is_renewable, amount, created_at, updated_at`,
		userID, subType, now, endDate, amount,
	).Scan(&sub.ID, &sub.UserID, &sub.Type, &sub.StartDate, &sub.EndDate, &sub.Status,
		&sub.IsRenewable, &sub.Amount, &sub.CreatedAt, &sub.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("create subscription: %w", err)
	}
	return &sub, nil
}

// ListForUser returns the user's subscriptions newest first, expiring any
// whose window has passed.
func (s *Store) ListForUser(userID int64, now time.Time) ([]models.PremiumSubscription, error) {
	_, err := s.db.Exec(
		`UPDATE premium_subscriptions SET status = 'expired', updated_at = NOW()
		 WHERE user_id = $1 AND status = 'active' AND end_date IS NOT NULL AND end_date < $2`,
		userID, now,
	)
	if err != nil {
		return nil, fmt.Errorf("expire subscriptions: %w", err)
	}

	rows, err := s.db.Query(
		`SELECT id, user_id, type, start_date, end_date, status, is_renewable, amount, created_at, updated_at
		 FROM premium_subscriptions
		 WHERE user_id = $1
		 ORDER BY updated_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list subscriptions: %w", err)
	}
	defer rows.Close()

	var subs []models.PremiumSubscription
	for rows.Next() {
		var sub models.PremiumSubscription
		if err := rows.Scan(&sub.ID, &sub.UserID, &sub.Type, &sub.StartDate, &sub.EndDate,
			&sub.Status, &sub.IsRenewable, &sub.Amount, &sub.CreatedAt, &sub.UpdatedAt); err != nil {
			return nil, err
		}
		subs = append(subs, sub)
	}
	if subs == nil {
		subs = []models.PremiumSubscription{}
	}
	return subs, rows.Err()
}
