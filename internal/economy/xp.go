package economy

import (
	"math"

	"github.com/learnloop/backend/internal/config"
	"github.com/learnloop/backend/internal/models"
)

// RequiredXPForLevel is the XP needed to advance from the given level to the
// next: level*50 + 50 (100 for L1->L2, 150 for L2->L3, ...). Levels below 1
// are treated as 1. Changing this curve changes every derived level in the
// system, so it stays a single pure function.
func RequiredXPForLevel(level int) int {
	if level < 1 {
		level = 1
	}
	return level*50 + 50
}

// LevelFromTotalXP derives the level from cumulative XP by walking the level
// cost curve. Level is never stored; it is recomputed on every read.
func LevelFromTotalXP(total int64) int {
	if total <= 0 {
		return 1
	}
	level := 1
	remaining := total
	for {
		req := int64(RequiredXPForLevel(level))
		if remaining < req {
			return level
		}
		remaining -= req
		level++
	}
}

// ProgressWithinLevel returns the XP earned inside the current level and the
// XP the level requires in total.
func ProgressWithinLevel(total int64) (xpIntoLevel, xpNeededForLevel int) {
	level := 1
	remaining := total
	if remaining < 0 {
		remaining = 0
	}
	for {
		req := int64(RequiredXPForLevel(level))
		if remaining < req {
			return int(remaining), int(req)
		}
		remaining -= req
		level++
	}
}

// LevelProgressPercent returns integer percent [0,100] toward the next level.
func LevelProgressPercent(total int64) int {
	if total <= 0 {
		return 0
	}
	into, needed := ProgressWithinLevel(total)
	if needed <= 0 {
		return 0
	}
	pct := int(math.Round(float64(into) / float64(needed) * 100))
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}

// XPBoostMultiplier returns the credit multiplier for a tier (>= 1.0).
func XPBoostMultiplier(cfg config.Economy, tier models.SubscriptionTier) float64 {
	switch tier {
	case models.TierMonthly:
		return 1.0 + cfg.MonthlyXPBoost
	case models.TierYearly:
		return 1.0 + cfg.YearlyXPBoost
	}
	return 1.0
}

// CreditXP applies a boosted credit to a cumulative total. Negative amounts
// are a no-op. Returns the new total and the boosted amount actually added.
func CreditXP(total int64, amount int, boost float64) (newTotal int64, boosted int) {
	if amount < 0 {
		return total, 0
	}
	boosted = int(math.Round(float64(amount) * boost))
	return total + int64(boosted), boosted
}
