package models

import "time"

// Reward kinds.
const (
	RewardXP     = "xp"
	RewardEnergy = "energy"
	RewardBadge  = "badge"
)

// Achievement is a catalog row. Target columns are nullable in storage; the
// achievements package converts them into a structurally non-empty target
// set before evaluation.
type Achievement struct {
	ID            int64      `json:"achievement_id"`
	TargetXP      *int64     `json:"target_xp,omitempty"`
	TargetStreak  *int       `json:"target_streak,omitempty"`
	TargetTestID  *int64     `json:"target_test_id,omitempty"`
	RewardKind    string     `json:"reward_kind"`
	RewardAmount  *int       `json:"reward_amount,omitempty"`
	RewardContent *string    `json:"reward_content,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// AchievementClaim is the one-time grant record; at most one per
// (user, achievement), never updated or deleted.
type AchievementClaim struct {
	ID            int64     `json:"claim_id"`
	UserID        int64     `json:"user_id"`
	AchievementID int64     `json:"achievement_id"`
	ClaimedAt     time.Time `json:"claimed_at"`
}

type AchievementView struct {
	Achievement
	Claimed   bool `json:"claimed"`
	Claimable bool `json:"claimable"`
}

type ClaimResult struct {
	Claim        AchievementClaim `json:"claim"`
	NewlyClaimed bool             `json:"newly_claimed"`
	RewardKind   string           `json:"reward_kind"`
	RewardAmount int              `json:"reward_amount,omitempty"`
}
