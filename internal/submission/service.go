package submission

import (
	"fmt"
	"log"
	"time"

	"github.com/learnloop/backend/internal/catalog"
	"github.com/learnloop/backend/internal/config"
	"github.com/learnloop/backend/internal/economy"
	"github.com/learnloop/backend/internal/models"
	"github.com/learnloop/backend/internal/premium"
	"github.com/learnloop/backend/internal/streaks"
)

// ErrTestNotFound re-exports the catalog sentinel so handlers need not
// import catalog just to classify errors.
var ErrTestNotFound = catalog.ErrTestNotFound

// answerKeySource is the slice of the catalog the service needs; tests
// substitute a fixture-backed implementation.
type answerKeySource interface {
	TestQuestionKeys(testID int64) ([]models.QuestionKey, error)
}

type Service struct {
	store   *Store
	catalog answerKeySource
	economy *economy.Store
	premium *premium.Store
	streaks *streaks.Store
	cfg     config.Economy
}

func NewService(store *Store, catalogStore *catalog.Store, economyStore *economy.Store, premiumStore *premium.Store, streakStore *streaks.Store, cfg config.Economy) *Service {
	return &Service{
		store:   store,
		catalog: catalogStore,
		economy: economyStore,
		premium: premiumStore,
		streaks: streakStore,
		cfg:     cfg,
	}
}

// Submit grades and records one test submission. The attempt row, answer
// rows, streak record, and economy mutation land in a single transaction;
// a failure anywhere leaves no trace of the submission.
//
// The first submission of a test is a scored run; every later one is
// practice, with a lower energy cost and XP award. Submitting with zero
// energy is allowed and simply spends nothing.
func (s *Service) Submit(userID, testID int64, req models.SubmitTestRequest, now time.Time) (*models.SubmissionResult, error) {
	keys, err := s.catalog.TestQuestionKeys(testID)
	if err != nil {
		return nil, err
	}

	graded, err := EvaluateAnswers(keys, req.Answers)
	if err != nil {
		return nil, err
	}

	correct := 0
	for _, g := range graded {
		if g.IsCorrect {
			correct++
		}
	}
	score := ScorePercent(correct, len(keys))

	duration := req.DurationSeconds
	if duration < 0 {
		duration = 0
	}

	tier, err := s.premium.ActiveTier(userID)
	if err != nil {
		log.Printf("[submission] premium lookup failed for user %d: %v", userID, err)
		tier = models.TierNone
	}

	tx, err := s.store.DB().Begin()
	if err != nil {
		return nil, fmt.Errorf("begin submission tx: %w", err)
	}
	defer tx.Rollback()

	// Practice is any repeat of a test the user has already attempted.
	isPractice, err := s.store.HasAttempt(tx, userID, testID)
	if err != nil {
		return nil, err
	}

	attempt, err := s.store.InsertAttempt(tx, userID, testID, now, duration, correct, score)
	if err != nil {
		return nil, err
	}
	if err := s.store.InsertAnswers(tx, attempt.ID, graded); err != nil {
		return nil, err
	}

	streakCreated := true
	if _, err := s.streaks.MarkTx(tx, userID, now); err != nil {
		if err != streaks.ErrAlreadyMarked {
			return nil, err
		}
		streakCreated = false
	}

	state, err := s.economy.GetOrCreateForUpdate(tx, userID)
	if err != nil {
		return nil, err
	}

	cost := s.cfg.EnergyCostTest
	award := s.cfg.XPAwardTest
	if isPractice {
		cost = s.cfg.EnergyCostPractice
		award = s.cfg.XPAwardPractice
	}

	interval := economy.RegenInterval(s.cfg, tier)
	es := economy.ApplyPassiveRegen(economy.EnergyStateOf(state), now, interval, s.cfg.EnergyMax)
	before := es.Value
	es = economy.SpendEnergy(es, cost, now)
	spent := before - es.Value
	economy.ApplyEnergyState(state, es)

	newTotal, boosted := economy.CreditXP(state.XPTotal, award, economy.XPBoostMultiplier(s.cfg, tier))
	state.XPTotal = newTotal

	if err := s.economy.SaveTx(tx, state); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit submission tx: %w", err)
	}

	return &models.SubmissionResult{
		AttemptID:       attempt.ID,
		AttemptedAt:     attempt.AttemptedAt,
		DurationSeconds: attempt.DurationSeconds,
		TotalQuestions:  len(keys),
		AnsweredCount:   len(graded),
		CorrectCount:    correct,
		ScorePercent:    score,
		IsPractice:      isPractice,
		XPAwarded:       boosted,
		EnergySpent:     spent,
		StreakCreated:   streakCreated,
	}, nil
}

// Attempts lists the user's history for one test.
func (s *Service) Attempts(userID, testID int64) ([]models.TestAttempt, error) {
	return s.store.ListAttempts(userID, testID)
}
