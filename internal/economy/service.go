package economy

import (
	"log"
	"time"

	"github.com/learnloop/backend/internal/config"
	"github.com/learnloop/backend/internal/models"
	"github.com/learnloop/backend/internal/premium"
)

type Service struct {
	store   *Store
	premium *premium.Store
	cfg     config.Economy
}

func NewService(store *Store, premiumStore *premium.Store, cfg config.Economy) *Service {
	return &Service{store: store, premium: premiumStore, cfg: cfg}
}

// GetMyEconomy returns the user's economy state with passive regen settled
// and the derived level fields the client displays.
func (s *Service) GetMyEconomy(userID int64, now time.Time) (*models.EconomyResponse, error) {
	st, err := s.store.GetOrCreate(userID)
	if err != nil {
		return nil, err
	}

	tier, err := s.premium.ActiveTier(userID)
	if err != nil {
		log.Printf("[economy] failed to resolve tier for user %d: %v", userID, err)
		tier = models.TierNone
	}
	interval := RegenInterval(s.cfg, tier)

	before := EnergyStateOf(st)
	after := ApplyPassiveRegen(before, now, interval, s.cfg.EnergyMax)
	if after != before {
		ApplyEnergyState(st, after)
		if err := s.store.Save(st); err != nil {
			return nil, err
		}
	}

	level := LevelFromTotalXP(st.XPTotal)
	return &models.EconomyResponse{
		XPTotal:             st.XPTotal,
		Level:               level,
		NextLevelXP:         RequiredXPForLevel(level),
		LevelProgressPct:    LevelProgressPercent(st.XPTotal),
		Energy:              st.Energy,
		EnergyMax:           s.cfg.EnergyMax,
		EnergyLastUpdated:   st.EnergyLastUpdated,
		SecondsToFullEnergy: SecondsToFull(after, now, interval, s.cfg.EnergyMax),
	}, nil
}
