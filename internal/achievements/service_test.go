package achievements

import (
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/learnloop/backend/internal/config"
	"github.com/learnloop/backend/internal/models"
)

type memStore struct {
	achievements map[int64]models.Achievement
	claims       map[int64]models.AchievementClaim // keyed by achievement id
}

func (m *memStore) List() ([]models.Achievement, error) {
	var all []models.Achievement
	for _, a := range m.achievements {
		all = append(all, a)
	}
	return all, nil
}

func (m *memStore) Get(id int64) (*models.Achievement, error) {
	a, ok := m.achievements[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &a, nil
}

func (m *memStore) GetClaim(userID, achievementID int64) (*models.AchievementClaim, error) {
	c, ok := m.claims[achievementID]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (m *memStore) ClaimedIDs(userID int64) (map[int64]bool, error) {
	claimed := make(map[int64]bool)
	for id := range m.claims {
		claimed[id] = true
	}
	return claimed, nil
}

func (m *memStore) InsertClaim(tx *sql.Tx, userID, achievementID int64) (*models.AchievementClaim, bool, error) {
	if c, ok := m.claims[achievementID]; ok {
		return &c, false, nil
	}
	c := models.AchievementClaim{ID: int64(len(m.claims) + 1), UserID: userID, AchievementID: achievementID}
	m.claims[achievementID] = c
	return &c, true, nil
}

func (m *memStore) AttemptedTests(userID int64) (map[int64]bool, error) {
	return map[int64]bool{}, nil
}

func TestClaim_SecondClaimIsIdempotent(t *testing.T) {
	achievement := models.Achievement{
		ID:           7,
		TargetXP:     int64Ptr(100),
		RewardKind:   models.RewardXP,
		RewardAmount: intPtr(25),
	}
	existing := models.AchievementClaim{ID: 3, UserID: 1, AchievementID: 7}

	store := &memStore{
		achievements: map[int64]models.Achievement{7: achievement},
		claims:       map[int64]models.AchievementClaim{7: existing},
	}
	svc := &Service{store: store, cfg: config.DefaultEconomy()}

	// The re-claim returns the original claim before any eligibility check
	// or economy access, so no reward can be applied twice.
	result, err := svc.Claim(1, 7, time.Now().UTC())
	if err != nil {
		t.Fatalf("Claim: %v", err)
	}
	if result.NewlyClaimed {
		t.Error("re-claim reported as newly claimed")
	}
	if result.RewardAmount != 0 {
		t.Errorf("re-claim applied a reward of %d, want 0", result.RewardAmount)
	}
	if result.Claim.ID != existing.ID {
		t.Errorf("re-claim returned claim %d, want existing claim %d", result.Claim.ID, existing.ID)
	}
}

func TestClaim_UnknownAchievement(t *testing.T) {
	store := &memStore{
		achievements: map[int64]models.Achievement{},
		claims:       map[int64]models.AchievementClaim{},
	}
	svc := &Service{store: store, cfg: config.DefaultEconomy()}

	_, err := svc.Claim(1, 99, time.Now().UTC())
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestApplyRewardToState(t *testing.T) {
	cfg := config.DefaultEconomy()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name        string
		achievement models.Achievement
		tier        models.SubscriptionTier
		startXP     int64
		startEnergy int
		wantApplied int
		wantXP      int64
		wantEnergy  int
		wantChanged bool
	}{
		{
			name:        "xp reward unboosted",
			achievement: models.Achievement{RewardKind: models.RewardXP, RewardAmount: intPtr(25)},
			tier:        models.TierNone,
			startXP:     100, startEnergy: 50,
			wantApplied: 25, wantXP: 125, wantEnergy: 50, wantChanged: true,
		},
		{
			name:        "xp reward with yearly boost",
			achievement: models.Achievement{RewardKind: models.RewardXP, RewardAmount: intPtr(25)},
			tier:        models.TierYearly,
			startXP:     0, startEnergy: 50,
			wantApplied: 31, wantXP: 31, wantEnergy: 50, wantChanged: true, // round(25 * 1.25)
		},
		{
			name:        "energy reward clamps at cap",
			achievement: models.Achievement{RewardKind: models.RewardEnergy, RewardAmount: intPtr(40)},
			tier:        models.TierNone,
			startXP:     0, startEnergy: 90,
			wantApplied: 40, wantXP: 0, wantEnergy: 100, wantChanged: true,
		},
		{
			name:        "badge reward touches nothing",
			achievement: models.Achievement{RewardKind: models.RewardBadge},
			tier:        models.TierNone,
			startXP:     100, startEnergy: 50,
			wantApplied: 0, wantXP: 100, wantEnergy: 50, wantChanged: false,
		},
		{
			name:        "nil amount touches nothing",
			achievement: models.Achievement{RewardKind: models.RewardXP},
			tier:        models.TierNone,
			startXP:     100, startEnergy: 50,
			wantApplied: 0, wantXP: 100, wantEnergy: 50, wantChanged: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state := &models.UserEconomyState{
				UserID:            1,
				XPTotal:           tt.startXP,
				Energy:            tt.startEnergy,
				EnergyLastUpdated: now,
			}
			applied, changed := applyRewardToState(state, &tt.achievement, tt.tier, cfg, now)
			if applied != tt.wantApplied || changed != tt.wantChanged {
				t.Errorf("applied = (%d, %v), want (%d, %v)", applied, changed, tt.wantApplied, tt.wantChanged)
			}
			if state.XPTotal != tt.wantXP {
				t.Errorf("XPTotal = %d, want %d", state.XPTotal, tt.wantXP)
			}
			if state.Energy != tt.wantEnergy {
				t.Errorf("Energy = %d, want %d", state.Energy, tt.wantEnergy)
			}
		})
	}
}
