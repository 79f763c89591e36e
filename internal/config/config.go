package config

import (
	"os"
	"strconv"
	"time"
)

// Economy holds the process-wide gamification tunables. All of these are
// configuration, not per-user state; tests override them by constructing
// their own Economy value.
type Economy struct {
	// EnergyMax caps energy. Zero or negative disables the cap.
	EnergyMax int

	// RegenInterval is the base time to regenerate one energy point for
	// users without a subscription.
	RegenInterval time.Duration

	// Regen boosts reduce the interval by a fraction (0.25 = 25% faster).
	MonthlyRegenBoost float64
	YearlyRegenBoost  float64

	// XP boost multipliers applied to every XP credit.
	MonthlyXPBoost float64
	YearlyXPBoost  float64

	// Energy cost and XP award per test submission, by attempt kind.
	EnergyCostTest     int
	EnergyCostPractice int
	XPAwardTest        int
	XPAwardPractice    int

	// Streak saver uses allowed per calendar month, by tier.
	SaverLimitMonthly int
	SaverLimitYearly  int
}

// Server holds HTTP and infrastructure settings.
type Server struct {
	Port      string
	RedisAddr string // empty disables the leaderboard cache
	JWTSecret string
}

type Config struct {
	Server  Server
	Economy Economy
}

// DefaultEconomy returns the production defaults.
func DefaultEconomy() Economy {
	return Economy{
		EnergyMax:          100,
		RegenInterval:      10 * time.Minute,
		MonthlyRegenBoost:  0.25,
		YearlyRegenBoost:   0.35,
		MonthlyXPBoost:     0.20,
		YearlyXPBoost:      0.25,
		EnergyCostTest:     5,
		EnergyCostPractice: 2,
		XPAwardTest:        10,
		XPAwardPractice:    5,
		SaverLimitMonthly:  1,
		SaverLimitYearly:   2,
	}
}

// Load builds the configuration from environment variables, falling back to
// the defaults above.
func Load() Config {
	eco := DefaultEconomy()
	eco.EnergyMax = getEnvInt("ENERGY_MAX", eco.EnergyMax)
	eco.RegenInterval = getEnvDuration("ENERGY_REGEN_INTERVAL", eco.RegenInterval)
	eco.EnergyCostTest = getEnvInt("ENERGY_COST_TEST", eco.EnergyCostTest)
	eco.EnergyCostPractice = getEnvInt("ENERGY_COST_PRACTICE", eco.EnergyCostPractice)
	eco.XPAwardTest = getEnvInt("XP_AWARD_TEST", eco.XPAwardTest)
	eco.XPAwardPractice = getEnvInt("XP_AWARD_PRACTICE", eco.XPAwardPractice)
	eco.SaverLimitMonthly = getEnvInt("STREAK_SAVER_LIMIT_MONTHLY", eco.SaverLimitMonthly)
	eco.SaverLimitYearly = getEnvInt("STREAK_SAVER_LIMIT_YEARLY", eco.SaverLimitYearly)

	return Config{
		Server: Server{
			Port:      getEnv("PORT", "8080"),
			RedisAddr: getEnv("REDIS_ADDR", ""),
			JWTSecret: getEnv("JWT_SECRET", "learnloop-staging-signing-key-2026"),
		},
		Economy: eco,
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if v, err := strconv.Atoi(value); err == nil {
			return v
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok {
		if v, err := time.ParseDuration(value); err == nil && v > 0 {
			return v
		}
	}
	return fallback
}
