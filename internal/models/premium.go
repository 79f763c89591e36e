package models

import "time"

// SubscriptionTier is resolved at call time from the user's active
// subscription; the economy never caches it.
type SubscriptionTier string

const (
	TierNone    SubscriptionTier = "none"
	TierMonthly SubscriptionTier = "monthly"
	TierYearly  SubscriptionTier = "yearly"
)

// Subscription statuses.
const (
	SubscriptionPending = "pending"
	SubscriptionActive  = "active"
	SubscriptionExpired = "expired"
)

// Subscription types as stored.
const (
	SubscriptionMonth = "month"
	SubscriptionYear  = "year"
)

type PremiumSubscription struct {
	ID          int64      `json:"subscription_id"`
	UserID      int64      `json:"user_id"`
	Type        string     `json:"type"`
	StartDate   time.Time  `json:"start_date"`
	EndDate     *time.Time `json:"end_date"`
	Status      string     `json:"status"`
	IsRenewable bool       `json:"is_renewable"`
	Amount      float64    `json:"amount"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

type SubscribeRequest struct {
	Type   string  `json:"type"` // "month" or "year"
	Amount float64 `json:"amount"`
}

type PremiumStatusResponse struct {
	Tier          SubscriptionTier     `json:"tier"`
	Subscription  *PremiumSubscription `json:"subscription,omitempty"`
	Subscriptions []PremiumSubscription `json:"subscriptions"`
}
