package streaks

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/learnloop/backend/internal/config"
	"github.com/learnloop/backend/internal/models"
	"github.com/learnloop/backend/internal/premium"
)

// ErrInvalidDate rejects malformed or out-of-range saver dates.
var ErrInvalidDate = errors.New("invalid date")

type Service struct {
	store   *Store
	premium *premium.Store
	cfg     config.Economy
}

func NewService(store *Store, premiumStore *premium.Store, cfg config.Economy) *Service {
	return &Service{store: store, premium: premiumStore, cfg: cfg}
}

// MyStreaks computes the current and longest streaks plus this month's
// remaining saver allowance.
func (s *Service) MyStreaks(userID int64, now time.Time) (*models.StreaksResponse, error) {
	recs, err := s.store.Dates(userID)
	if err != nil {
		return nil, err
	}

	dates := make([]time.Time, len(recs))
	days := make([]models.StreakDayEntry, len(recs))
	for i, rec := range recs {
		dates[i] = rec.Date
		days[i] = models.StreakDayEntry{
			Date:       Day(rec.Date).Format("2006-01-02"),
			IsSaverUse: rec.IsSaverUse,
		}
	}

	limit := s.saverLimit(userID)
	used, err := s.store.SaverUsesInMonth(s.store.db, userID, now)
	if err != nil {
		return nil, err
	}
	remaining := limit - used
	if remaining < 0 {
		remaining = 0
	}

	return &models.StreaksResponse{
		CurrentStreak:  CurrentStreak(dates, now),
		LongestStreak:  LongestStreak(dates),
		SaverRemaining: remaining,
		Days:           days,
	}, nil
}

// MarkToday records today as covered. The bool reports whether a new
// record was created; an already-covered day is not an error.
func (s *Service) MarkToday(userID int64, now time.Time) (*models.StreakRecord, bool, error) {
	rec, err := s.store.Mark(userID, now)
	if err == ErrAlreadyMarked {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return rec, true, nil
}

// UseSaver covers the given "2006-01-02" date with a saver record. The
// date must not be in the future.
func (s *Service) UseSaver(userID int64, dateStr string, now time.Time) (*models.StreakRecord, error) {
	target, err := time.ParseInLocation("2006-01-02", dateStr, time.UTC)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidDate, dateStr)
	}
	if target.After(Day(now)) {
		return nil, fmt.Errorf("%w: date is in the future", ErrInvalidDate)
	}

	// Non-premium users have a limit of zero, which the count check below
	// rejects after the covered-date check, so both get the right error.
	return s.store.UseSaver(userID, target, s.saverLimit(userID))
}

func (s *Service) saverLimit(userID int64) int {
	tier, err := s.premium.ActiveTier(userID)
	if err != nil {
		log.Printf("[streaks] premium lookup failed for user %d: %v", userID, err)
		tier = models.TierNone
	}
	return SaverLimitForTier(s.cfg, tier)
}
