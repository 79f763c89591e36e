package leaderboard

import (
	"github.com/learnloop/backend/internal/economy"
	"github.com/learnloop/backend/internal/models"
)

// Row is one user's standing before ranks are assigned.
type Row struct {
	UserID      int64
	Username    string
	Name        string
	ProfileIcon string
	XPTotal     int64
	Energy      int
}

// Ahead reports whether a outranks b: more XP first, then more energy,
// then the older account (lower id). Ids are unique, so the ordering is
// total and every user gets a distinct rank.
func Ahead(a, b Row) bool {
	if a.XPTotal != b.XPTotal {
		return a.XPTotal > b.XPTotal
	}
	if a.Energy != b.Energy {
		return a.Energy > b.Energy
	}
	return a.UserID < b.UserID
}

// AssignRanks converts rows already sorted by Ahead into entries with
// 1-based ranks, derived levels, and abbreviated display names.
func AssignRanks(rows []Row) []models.LeaderboardEntry {
	entries := make([]models.LeaderboardEntry, len(rows))
	for i, r := range rows {
		entries[i] = entryOf(r)
		entries[i].Rank = i + 1
	}
	return entries
}

func entryOf(r Row) models.LeaderboardEntry {
	return models.LeaderboardEntry{
		UserID:      r.UserID,
		Username:    r.Username,
		DisplayName: models.User{Name: r.Name}.DisplayName(),
		ProfileIcon: r.ProfileIcon,
		XPTotal:     r.XPTotal,
		Level:       economy.LevelFromTotalXP(r.XPTotal),
	}
}
