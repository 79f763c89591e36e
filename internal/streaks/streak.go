package streaks

import (
	"time"

	"github.com/learnloop/backend/internal/config"
	"github.com/learnloop/backend/internal/models"
)

// Day truncates an instant to its UTC calendar day.
func Day(t time.Time) time.Time {
	return time.Date(t.UTC().Year(), t.UTC().Month(), t.UTC().Day(), 0, 0, 0, 0, time.UTC)
}

// CurrentStreak counts consecutive covered calendar days ending at today.
//
// dates must be unique calendar days sorted descending. A streak that was
// last extended yesterday still counts (the walk tolerates an unmarked
// today at its head), but any interior gap breaks the chain.
func CurrentStreak(dates []time.Time, today time.Time) int {
	expected := Day(today)
	streak := 0
	for _, raw := range dates {
		d := Day(raw)
		if d.After(expected) {
			// Future-dated rows don't count toward today's streak.
			continue
		}
		if d.Equal(expected) || (streak == 0 && d.Equal(expected.AddDate(0, 0, -1))) {
			streak++
			expected = d.AddDate(0, 0, -1)
			continue
		}
		if d.Before(expected) {
			break
		}
	}
	return streak
}

// LongestStreak returns the longest run of consecutive days across all
// records. dates must be sorted descending. Exact duplicates are ignored
// rather than resetting the run.
func LongestStreak(dates []time.Time) int {
	if len(dates) == 0 {
		return 0
	}
	longest := 1
	current := 1
	prev := Day(dates[0])
	for _, raw := range dates[1:] {
		cur := Day(raw)
		switch {
		case prev.Sub(cur) == 24*time.Hour:
			current++
		case prev.Equal(cur):
			continue
		default:
			if current > longest {
				longest = current
			}
			current = 1
		}
		prev = cur
	}
	if current > longest {
		longest = current
	}
	return longest
}

// MonthBounds returns the first day of ref's calendar month and the first
// day of the next month, both UTC midnight.
func MonthBounds(ref time.Time) (start, end time.Time) {
	d := Day(ref)
	start = time.Date(d.Year(), d.Month(), 1, 0, 0, 0, 0, time.UTC)
	end = start.AddDate(0, 1, 0)
	return start, end
}

// SaverLimitForTier maps a subscription tier to its monthly streak-saver
// allowance. Non-premium users get none.
func SaverLimitForTier(cfg config.Economy, tier models.SubscriptionTier) int {
	switch tier {
	case models.TierMonthly:
		return cfg.SaverLimitMonthly
	case models.TierYearly:
		return cfg.SaverLimitYearly
	}
	return 0
}
