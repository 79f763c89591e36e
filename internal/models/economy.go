package models

import "time"

// UserEconomyState is the per-user economy row. Created lazily on first
// access; energy stays within [0, cap] after every operation and
// EnergyLastUpdated never moves backwards.
type UserEconomyState struct {
	UserID            int64     `json:"user_id"`
	XPTotal           int64     `json:"xp_total"`
	Energy            int       `json:"energy"`
	EnergyLastUpdated time.Time `json:"energy_last_updated"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

type EconomyResponse struct {
	XPTotal            int64     `json:"xp_total"`
	Level              int       `json:"level"`
	NextLevelXP        int       `json:"next_level_xp"`
	LevelProgressPct   int       `json:"level_progress_pct"`
	Energy             int       `json:"energy"`
	EnergyMax          int       `json:"energy_max"`
	EnergyLastUpdated  time.Time `json:"energy_last_updated"`
	SecondsToFullEnergy int64    `json:"seconds_to_full_energy"`
}

type LeaderboardEntry struct {
	Rank        int    `json:"rank"`
	UserID      int64  `json:"user_id"`
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
	ProfileIcon string `json:"profile_icon,omitempty"`
	XPTotal     int64  `json:"xp_total"`
	Level       int    `json:"level"`
}

type LeaderboardResponse struct {
	Entries []LeaderboardEntry `json:"entries"`
}
