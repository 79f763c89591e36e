package economy

import (
	"time"

	"github.com/learnloop/backend/internal/config"
	"github.com/learnloop/backend/internal/models"
)

// EnergyState is the pure in-memory view of a user's energy. All regen logic
// is a function of (state, now); there is no background ticker.
type EnergyState struct {
	Value       int
	LastUpdated time.Time
}

// RegenInterval returns the per-point regeneration interval for a tier.
// Boosts shrink the base interval; lower interval means faster regen.
func RegenInterval(cfg config.Economy, tier models.SubscriptionTier) time.Duration {
	base := cfg.RegenInterval
	switch tier {
	case models.TierMonthly:
		return time.Duration(float64(base) * (1 - cfg.MonthlyRegenBoost))
	case models.TierYearly:
		return time.Duration(float64(base) * (1 - cfg.YearlyRegenBoost))
	}
	return base
}

// ApplyPassiveRegen folds elapsed time into whole energy increments.
//
// The timestamp advances by exactly increments*interval, not to now, so the
// fractional progress toward the next point is preserved across reads. When
// no whole increment lands (or the cap leaves no headroom) the state is
// returned untouched, timestamp included.
func ApplyPassiveRegen(st EnergyState, now time.Time, interval time.Duration, cap int) EnergyState {
	if interval <= 0 {
		return st
	}
	elapsed := now.Sub(st.LastUpdated)
	if elapsed <= 0 {
		return st
	}

	increments := int(elapsed / interval)
	if increments <= 0 {
		return st
	}

	if cap > 0 {
		headroom := cap - st.Value
		if headroom < 0 {
			headroom = 0
		}
		if increments > headroom {
			increments = headroom
		}
		if increments == 0 {
			return st
		}
	}

	st.Value += increments
	st.LastUpdated = st.LastUpdated.Add(time.Duration(increments) * interval)
	if cap > 0 && st.Value > cap {
		st.Value = cap
	}
	return st
}

// SpendEnergy decrements energy, clamping at zero. Spends never fail: an
// insufficient balance silently clamps instead of rejecting. Spending from
// an already-empty ledger is a pure no-op.
func SpendEnergy(st EnergyState, amount int, now time.Time) EnergyState {
	if amount <= 0 || st.Value <= 0 {
		return st
	}
	st.Value -= amount
	if st.Value < 0 {
		st.Value = 0
	}
	st.LastUpdated = now
	return st
}

// CreditEnergy applies passive regen, then adds amount clamped to the cap.
// A non-positive amount still settles regen but credits nothing.
func CreditEnergy(st EnergyState, amount int, now time.Time, interval time.Duration, cap int) EnergyState {
	st = ApplyPassiveRegen(st, now, interval, cap)
	if amount <= 0 {
		return st
	}
	st.Value += amount
	if cap > 0 && st.Value > cap {
		st.Value = cap
	}
	st.LastUpdated = now
	return st
}

// SecondsToFull returns how long until energy reaches the cap, accounting
// for partial progress already made toward the next regen tick. Returns 0
// when already at or above the cap, or when no cap is configured.
func SecondsToFull(st EnergyState, now time.Time, interval time.Duration, cap int) int64 {
	if cap <= 0 || st.Value >= cap || interval <= 0 {
		return 0
	}
	elapsed := now.Sub(st.LastUpdated)
	if elapsed < 0 {
		elapsed = 0
	}
	remainder := elapsed % interval
	nextTick := interval - remainder
	missing := cap - st.Value
	total := nextTick + time.Duration(missing-1)*interval
	return int64(total / time.Second)
}
