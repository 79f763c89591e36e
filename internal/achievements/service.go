package achievements

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/learnloop/backend/internal/config"
	"github.com/learnloop/backend/internal/economy"
	"github.com/learnloop/backend/internal/models"
	"github.com/learnloop/backend/internal/premium"
	"github.com/learnloop/backend/internal/streaks"
)

// ErrNotClaimable means the achievement's targets are not yet met.
var ErrNotClaimable = errors.New("achievement targets not met")

// achievementStore is the slice of Store the service uses; tests substitute
// an in-memory implementation.
type achievementStore interface {
	List() ([]models.Achievement, error)
	Get(id int64) (*models.Achievement, error)
	GetClaim(userID, achievementID int64) (*models.AchievementClaim, error)
	ClaimedIDs(userID int64) (map[int64]bool, error)
	InsertClaim(tx *sql.Tx, userID, achievementID int64) (*models.AchievementClaim, bool, error)
	AttemptedTests(userID int64) (map[int64]bool, error)
}

type Service struct {
	store   achievementStore
	economy *economy.Store
	premium *premium.Store
	streaks *streaks.Store
	cfg     config.Economy
}

func NewService(store *Store, economyStore *economy.Store, premiumStore *premium.Store, streakStore *streaks.Store, cfg config.Economy) *Service {
	return &Service{
		store:   store,
		economy: economyStore,
		premium: premiumStore,
		streaks: streakStore,
		cfg:     cfg,
	}
}

// List returns every achievement annotated with the user's claim state and
// whether its targets are currently met.
func (s *Service) List(userID int64, now time.Time) ([]models.AchievementView, error) {
	all, err := s.store.List()
	if err != nil {
		return nil, err
	}
	claimed, err := s.store.ClaimedIDs(userID)
	if err != nil {
		return nil, err
	}
	progress, err := s.progressFor(userID, now)
	if err != nil {
		return nil, err
	}

	views := make([]models.AchievementView, 0, len(all))
	for _, a := range all {
		view := models.AchievementView{Achievement: a, Claimed: claimed[a.ID]}
		if !view.Claimed {
			targets, err := NewTargetSet(a)
			if err != nil {
				log.Printf("[achievements] skipping achievement %d: %v", a.ID, err)
				continue
			}
			view.Claimable = targets.Satisfied(progress)
		}
		views = append(views, view)
	}
	return views, nil
}

// Claim grants the achievement's reward exactly once. Re-claiming returns
// the existing claim with NewlyClaimed=false and no reward applied;
// concurrent claimers race on the unique (user, achievement) constraint
// and all but one take that path.
func (s *Service) Claim(userID, achievementID int64, now time.Time) (*models.ClaimResult, error) {
	achievement, err := s.store.Get(achievementID)
	if err != nil {
		return nil, err
	}

	// An existing claim is an idempotent success even if eligibility has
	// since lapsed (a streak target can drop after the original claim).
	if existing, err := s.store.GetClaim(userID, achievementID); err != nil {
		return nil, err
	} else if existing != nil {
		return &models.ClaimResult{
			Claim:      *existing,
			RewardKind: achievement.RewardKind,
		}, nil
	}

	targets, err := NewTargetSet(*achievement)
	if err != nil {
		return nil, err
	}

	progress, err := s.progressFor(userID, now)
	if err != nil {
		return nil, err
	}
	if !targets.Satisfied(progress) {
		return nil, ErrNotClaimable
	}

	tier, err := s.premium.ActiveTier(userID)
	if err != nil {
		log.Printf("[achievements] premium lookup failed for user %d: %v", userID, err)
		tier = models.TierNone
	}

	tx, err := s.economy.DB().Begin()
	if err != nil {
		return nil, fmt.Errorf("begin claim tx: %w", err)
	}
	defer tx.Rollback()

	claim, created, err := s.store.InsertClaim(tx, userID, achievementID)
	if err != nil {
		return nil, err
	}

	result := &models.ClaimResult{
		Claim:        *claim,
		NewlyClaimed: created,
		RewardKind:   achievement.RewardKind,
	}
	if created {
		amount, err := s.applyReward(tx, userID, achievement, tier, now)
		if err != nil {
			return nil, err
		}
		result.RewardAmount = amount
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit claim tx: %w", err)
	}
	return result, nil
}

// applyReward locks the user's economy row inside the claim transaction,
// folds the reward into it, and persists the result.
func (s *Service) applyReward(tx *sql.Tx, userID int64, a *models.Achievement, tier models.SubscriptionTier, now time.Time) (int, error) {
	if a.RewardKind == models.RewardBadge {
		// The claim row itself is the badge; no economy effect.
		return 0, nil
	}

	state, err := s.economy.GetOrCreateForUpdate(tx, userID)
	if err != nil {
		return 0, err
	}

	applied, changed := applyRewardToState(state, a, tier, s.cfg, now)
	if !changed {
		return applied, nil
	}
	if err := s.economy.SaveTx(tx, state); err != nil {
		return 0, err
	}
	return applied, nil
}

// applyRewardToState folds a reward into an in-memory economy state and
// reports the amount actually granted and whether the state changed. Badge
// and unknown reward kinds leave the state untouched.
func applyRewardToState(state *models.UserEconomyState, a *models.Achievement, tier models.SubscriptionTier, cfg config.Economy, now time.Time) (applied int, changed bool) {
	amount := 0
	if a.RewardAmount != nil {
		amount = *a.RewardAmount
	}
	if amount <= 0 {
		return 0, false
	}

	switch a.RewardKind {
	case models.RewardXP:
		boost := economy.XPBoostMultiplier(cfg, tier)
		newTotal, boosted := economy.CreditXP(state.XPTotal, amount, boost)
		state.XPTotal = newTotal
		return boosted, true

	case models.RewardEnergy:
		interval := economy.RegenInterval(cfg, tier)
		es := economy.CreditEnergy(economy.EnergyStateOf(state), amount, now, interval, cfg.EnergyMax)
		economy.ApplyEnergyState(state, es)
		return amount, true
	}

	log.Printf("[achievements] unknown reward kind %q for achievement %d", a.RewardKind, a.ID)
	return 0, false
}

// progressFor snapshots the user's XP, current streak, and attempted tests.
func (s *Service) progressFor(userID int64, now time.Time) (Progress, error) {
	state, err := s.economy.GetOrCreate(userID)
	if err != nil {
		return Progress{}, err
	}

	recs, err := s.streaks.Dates(userID)
	if err != nil {
		return Progress{}, err
	}
	dates := make([]time.Time, len(recs))
	for i, rec := range recs {
		dates[i] = rec.Date
	}

	attempted, err := s.store.AttemptedTests(userID)
	if err != nil {
		return Progress{}, err
	}

	return Progress{
		XPTotal:        state.XPTotal,
		CurrentStreak:  streaks.CurrentStreak(dates, now),
		AttemptedTests: attempted,
	}, nil
}
