package economy

import (
	"testing"
	"time"

	"github.com/learnloop/backend/internal/config"
	"github.com/learnloop/backend/internal/models"
)

var t0 = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func TestApplyPassiveRegen_WholeIntervals(t *testing.T) {
	interval := 10 * time.Minute
	st := EnergyState{Value: 50, LastUpdated: t0}

	// 25 minutes elapsed -> 2 whole ticks, 5 minutes of fractional progress kept
	got := ApplyPassiveRegen(st, t0.Add(25*time.Minute), interval, 100)
	if got.Value != 52 {
		t.Errorf("Value = %d, want 52", got.Value)
	}
	if want := t0.Add(20 * time.Minute); !got.LastUpdated.Equal(want) {
		t.Errorf("LastUpdated = %v, want %v (advance by whole intervals, not to now)", got.LastUpdated, want)
	}
}

func TestApplyPassiveRegen_NoTickIsNoOp(t *testing.T) {
	interval := 10 * time.Minute
	st := EnergyState{Value: 50, LastUpdated: t0}

	got := ApplyPassiveRegen(st, t0.Add(9*time.Minute), interval, 100)
	if got != st {
		t.Errorf("expected no-op for sub-interval elapsed, got %+v", got)
	}
}

func TestApplyPassiveRegen_CapClamp(t *testing.T) {
	interval := 10 * time.Minute

	tests := []struct {
		name      string
		energy    int
		elapsed   time.Duration
		wantValue int
		wantTicks int // whole intervals the timestamp should advance
	}{
		{"clamped to cap", 98, time.Hour, 100, 2},
		{"at cap is no-op", 100, time.Hour, 100, 0},
		{"above cap is no-op", 120, time.Hour, 120, 0},
		{"uncapped grows freely", 0, time.Hour, 6, 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cap := 100
			if tt.name == "uncapped grows freely" {
				cap = 0
			}
			st := EnergyState{Value: tt.energy, LastUpdated: t0}
			got := ApplyPassiveRegen(st, t0.Add(tt.elapsed), interval, cap)
			if got.Value != tt.wantValue {
				t.Errorf("Value = %d, want %d", got.Value, tt.wantValue)
			}
			want := t0.Add(time.Duration(tt.wantTicks) * interval)
			if !got.LastUpdated.Equal(want) {
				t.Errorf("LastUpdated = %v, want %v", got.LastUpdated, want)
			}
		})
	}
}

func TestApplyPassiveRegen_StaysWithinBounds(t *testing.T) {
	interval := 10 * time.Minute
	for energy := 0; energy <= 110; energy += 7 {
		for _, elapsed := range []time.Duration{0, time.Minute, time.Hour, 48 * time.Hour} {
			st := EnergyState{Value: energy, LastUpdated: t0}
			got := ApplyPassiveRegen(st, t0.Add(elapsed), interval, 100)
			if got.Value < 0 {
				t.Fatalf("energy %d elapsed %v: negative result %d", energy, elapsed, got.Value)
			}
			if energy <= 100 && got.Value > 100 {
				t.Fatalf("energy %d elapsed %v: exceeded cap: %d", energy, elapsed, got.Value)
			}
			if got.LastUpdated.Before(st.LastUpdated) {
				t.Fatalf("timestamp moved backwards: %v -> %v", st.LastUpdated, got.LastUpdated)
			}
		}
	}
}

func TestSpendEnergy_NeverNegative(t *testing.T) {
	tests := []struct {
		energy, amount, want int
	}{
		{10, 5, 5},
		{10, 10, 0},
		{10, 999, 0},
		{0, 5, 0},
		{10, 0, 10},
		{10, -3, 10},
	}
	for _, tt := range tests {
		st := SpendEnergy(EnergyState{Value: tt.energy, LastUpdated: t0}, tt.amount, t0.Add(time.Minute))
		if st.Value != tt.want {
			t.Errorf("SpendEnergy(%d, %d) = %d, want %d", tt.energy, tt.amount, st.Value, tt.want)
		}
		if st.Value < 0 {
			t.Errorf("SpendEnergy(%d, %d) went negative", tt.energy, tt.amount)
		}
	}
}

func TestCreditEnergy(t *testing.T) {
	interval := 10 * time.Minute
	now := t0.Add(time.Minute)

	st := CreditEnergy(EnergyState{Value: 90, LastUpdated: t0}, 25, now, interval, 100)
	if st.Value != 100 {
		t.Errorf("Value = %d, want clamp to 100", st.Value)
	}
	if !st.LastUpdated.Equal(now) {
		t.Errorf("LastUpdated = %v, want %v", st.LastUpdated, now)
	}

	// Non-positive credit still settles regen but adds nothing.
	st = CreditEnergy(EnergyState{Value: 50, LastUpdated: t0}, 0, t0.Add(25*time.Minute), interval, 100)
	if st.Value != 52 {
		t.Errorf("Value = %d, want 52 (regen only)", st.Value)
	}
}

func TestSecondsToFull(t *testing.T) {
	interval := 10 * time.Minute

	// 4 minutes into the current tick, 3 points missing:
	// 6 minutes to next tick + 2 more full intervals = 26 minutes.
	st := EnergyState{Value: 97, LastUpdated: t0}
	got := SecondsToFull(st, t0.Add(4*time.Minute), interval, 100)
	if want := int64(26 * 60); got != want {
		t.Errorf("SecondsToFull = %d, want %d", got, want)
	}

	// At or above cap, or uncapped: always 0.
	if got := SecondsToFull(EnergyState{Value: 100, LastUpdated: t0}, t0, interval, 100); got != 0 {
		t.Errorf("at cap: got %d, want 0", got)
	}
	if got := SecondsToFull(EnergyState{Value: 5, LastUpdated: t0}, t0, interval, 0); got != 0 {
		t.Errorf("uncapped: got %d, want 0", got)
	}
}

func TestRegenInterval_TierBoosts(t *testing.T) {
	cfg := config.DefaultEconomy()

	tests := []struct {
		tier models.SubscriptionTier
		want time.Duration
	}{
		{models.TierNone, 10 * time.Minute},
		{models.TierMonthly, 7*time.Minute + 30*time.Second}, // 25% faster
		{models.TierYearly, 6*time.Minute + 30*time.Second},  // 35% faster
	}
	for _, tt := range tests {
		if got := RegenInterval(cfg, tt.tier); got != tt.want {
			t.Errorf("RegenInterval(%s) = %v, want %v", tt.tier, got, tt.want)
		}
	}
}
