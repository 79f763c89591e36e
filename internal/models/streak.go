package models

import "time"

// StreakRecord covers one calendar day for one user. At most one row per
// (user, date); a day counts toward streaks whether or not a saver was used.
type StreakRecord struct {
	ID         int64     `json:"streak_id"`
	UserID     int64     `json:"user_id"`
	Date       time.Time `json:"date"` // calendar day, UTC midnight
	IsSaverUse bool      `json:"is_saver_use"`
	CreatedAt  time.Time `json:"created_at"`
}

type UseStreakSaverRequest struct {
	Date string `json:"date"` // "2006-01-02"
}

type StreakDayEntry struct {
	Date       string `json:"date"`
	IsSaverUse bool   `json:"is_saver_use"`
}

type StreaksResponse struct {
	CurrentStreak  int              `json:"current_streak"`
	LongestStreak  int              `json:"longest_streak"`
	SaverRemaining int              `json:"saver_remaining_this_month"`
	Days           []StreakDayEntry `json:"days"`
}
