package streaks

import (
	"testing"
	"time"

	"github.com/learnloop/backend/internal/config"
	"github.com/learnloop/backend/internal/models"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestCurrentStreak(t *testing.T) {
	today := day("2026-03-10")

	tests := []struct {
		name  string
		dates []string
		want  int
	}{
		{"no records", nil, 0},
		{"today only", []string{"2026-03-10"}, 1},
		{"three consecutive ending today", []string{"2026-03-10", "2026-03-09", "2026-03-08"}, 3},
		{"yesterday still counts", []string{"2026-03-09", "2026-03-08"}, 2},
		{"gap breaks at one", []string{"2026-03-10", "2026-03-08"}, 1},
		{"two days stale", []string{"2026-03-08", "2026-03-07"}, 0},
		{"interior gap after grace", []string{"2026-03-09", "2026-03-07"}, 1},
		{"future dates skipped", []string{"2026-03-12", "2026-03-10", "2026-03-09"}, 2},
		{"across month boundary", []string{"2026-03-10", "2026-03-09", "2026-03-08", "2026-03-07", "2026-03-06", "2026-03-05", "2026-03-04", "2026-03-03", "2026-03-02", "2026-03-01", "2026-02-28"}, 11},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dates := make([]time.Time, len(tt.dates))
			for i, s := range tt.dates {
				dates[i] = day(s)
			}
			if got := CurrentStreak(dates, today); got != tt.want {
				t.Errorf("CurrentStreak(%v) = %d, want %d", tt.dates, got, tt.want)
			}
		})
	}
}

func TestLongestStreak(t *testing.T) {
	tests := []struct {
		name  string
		dates []string
		want  int
	}{
		{"empty", nil, 0},
		{"single day", []string{"2026-01-05"}, 1},
		{"one run", []string{"2026-01-07", "2026-01-06", "2026-01-05"}, 3},
		{"longer run in the past", []string{"2026-02-01", "2026-01-20", "2026-01-19", "2026-01-18", "2026-01-17"}, 4},
		{"duplicates ignored", []string{"2026-01-07", "2026-01-07", "2026-01-06"}, 2},
		{"two equal runs", []string{"2026-01-10", "2026-01-09", "2026-01-05", "2026-01-04"}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dates := make([]time.Time, len(tt.dates))
			for i, s := range tt.dates {
				dates[i] = day(s)
			}
			if got := LongestStreak(dates); got != tt.want {
				t.Errorf("LongestStreak(%v) = %d, want %d", tt.dates, got, tt.want)
			}
		})
	}
}

func TestCurrentStreakNeverExceedsLongest(t *testing.T) {
	today := day("2026-03-10")
	sets := [][]string{
		{"2026-03-10", "2026-03-09", "2026-03-05", "2026-03-04", "2026-03-03"},
		{"2026-03-09", "2026-03-08", "2026-03-07"},
		{"2026-03-10"},
	}
	for _, set := range sets {
		dates := make([]time.Time, len(set))
		for i, s := range set {
			dates[i] = day(s)
		}
		cur := CurrentStreak(dates, today)
		longest := LongestStreak(dates)
		if cur > longest {
			t.Errorf("current streak %d exceeds longest %d for %v", cur, longest, set)
		}
	}
}

func TestDay(t *testing.T) {
	loc := time.FixedZone("UTC+5", 5*3600)
	// 02:30 on March 10 UTC+5 is still March 9 in UTC.
	in := time.Date(2026, 3, 10, 2, 30, 0, 0, loc)
	got := Day(in)
	want := time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("Day(%v) = %v, want %v", in, got, want)
	}
}

func TestMonthBounds(t *testing.T) {
	tests := []struct {
		ref       string
		wantStart string
		wantEnd   string
	}{
		{"2026-03-15", "2026-03-01", "2026-04-01"},
		{"2026-12-31", "2026-12-01", "2027-01-01"},
		{"2024-02-29", "2024-02-01", "2024-03-01"},
	}

	for _, tt := range tests {
		start, end := MonthBounds(day(tt.ref))
		if !start.Equal(day(tt.wantStart)) || !end.Equal(day(tt.wantEnd)) {
			t.Errorf("MonthBounds(%s) = (%v, %v), want (%s, %s)", tt.ref, start, end, tt.wantStart, tt.wantEnd)
		}
	}
}

func TestSaverLimitForTier(t *testing.T) {
	cfg := config.DefaultEconomy()

	tests := []struct {
		tier models.SubscriptionTier
		want int
	}{
		{models.TierNone, 0},
		{models.TierMonthly, 1},
		{models.TierYearly, 2},
	}

	for _, tt := range tests {
		if got := SaverLimitForTier(cfg, tt.tier); got != tt.want {
			t.Errorf("SaverLimitForTier(%q) = %d, want %d", tt.tier, got, tt.want)
		}
	}
}
