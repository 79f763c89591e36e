package main

import (
	"log"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/redis/go-redis/v9"
	"github.com/rs/cors"

	"github.com/learnloop/backend/internal/achievements"
	"github.com/learnloop/backend/internal/auth"
	"github.com/learnloop/backend/internal/catalog"
	"github.com/learnloop/backend/internal/config"
	"github.com/learnloop/backend/internal/database"
	"github.com/learnloop/backend/internal/economy"
	"github.com/learnloop/backend/internal/feedback"
	"github.com/learnloop/backend/internal/leaderboard"
	"github.com/learnloop/backend/internal/middleware"
	"github.com/learnloop/backend/internal/premium"
	"github.com/learnloop/backend/internal/streaks"
	"github.com/learnloop/backend/internal/submission"
)

func main() {
	cfg := config.Load()
	auth.JWTSecret = []byte(cfg.Server.JWTSecret)

	// Initialize database
	db, err := database.Connect()
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Stores
	premiumStore := premium.NewStore(db)
	catalogStore := catalog.NewStore(db)
	economyStore := economy.NewStore(db)
	streakStore := streaks.NewStore(db)
	achievementStore := achievements.NewStore(db)
	submissionStore := submission.NewStore(db)
	leaderboardStore := leaderboard.NewStore(db)
	feedbackStore := feedback.NewStore(db)

	// Leaderboard cache is optional; without Redis the ranking query runs
	// on every request.
	var leaderboardCache *leaderboard.Cache
	if cfg.Server.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.Server.RedisAddr})
		leaderboardCache = leaderboard.NewCache(rdb, 30*time.Second)
		log.Printf("Leaderboard cache enabled at %s", cfg.Server.RedisAddr)
	}

	// Services
	economyService := economy.NewService(economyStore, premiumStore, cfg.Economy)
	streakService := streaks.NewService(streakStore, premiumStore, cfg.Economy)
	achievementService := achievements.NewService(achievementStore, economyStore, premiumStore, streakStore, cfg.Economy)
	submissionService := submission.NewService(submissionStore, catalogStore, economyStore, premiumStore, streakStore, cfg.Economy)
	leaderboardService := leaderboard.NewService(leaderboardStore, leaderboardCache)

	// Handlers
	authHandler := auth.NewHandler(db)
	premiumHandler := premium.NewHandler(premiumStore)
	catalogHandler := catalog.NewHandler(catalogStore)
	economyHandler := economy.NewHandler(economyService)
	streakHandler := streaks.NewHandler(streakService)
	achievementHandler := achievements.NewHandler(achievementService)
	submissionHandler := submission.NewHandler(submissionService)
	leaderboardHandler := leaderboard.NewHandler(leaderboardService)
	feedbackHandler := feedback.NewHandler(feedbackStore)

	// Setup router
	r := mux.NewRouter()
	api := r.PathPrefix("/api/v1").Subrouter()

	// Public routes
	api.HandleFunc("/auth/register", authHandler.Register).Methods("POST")
	api.HandleFunc("/auth/login", authHandler.Login).Methods("POST")
	api.HandleFunc("/courses", catalogHandler.ListCourses).Methods("GET")
	api.HandleFunc("/courses/{id}/chapters", catalogHandler.ListChapters).Methods("GET")
	api.HandleFunc("/chapters/{id}/tests", catalogHandler.ListTests).Methods("GET")
	api.HandleFunc("/tests/{id}/questions", catalogHandler.ListQuestions).Methods("GET")
	api.HandleFunc("/achievements", achievementHandler.ListAll).Methods("GET")
	api.HandleFunc("/leaderboard/top", leaderboardHandler.Top).Methods("GET")

	// Protected routes
	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.AuthMiddleware)
	protected.HandleFunc("/auth/me", authHandler.GetCurrentUser).Methods("GET")
	protected.HandleFunc("/me/economy", economyHandler.GetMyEconomy).Methods("GET")
	protected.HandleFunc("/me/streaks", streakHandler.MyStreaks).Methods("GET")
	protected.HandleFunc("/me/streaks/today", streakHandler.MarkToday).Methods("POST")
	protected.HandleFunc("/me/streaks/saver", streakHandler.UseSaver).Methods("POST")
	protected.HandleFunc("/me/achievements", achievementHandler.ListMine).Methods("GET")
	protected.HandleFunc("/achievements/{id}/claim", achievementHandler.Claim).Methods("POST")
	protected.HandleFunc("/tests/{id}/submit", submissionHandler.SubmitTest).Methods("POST")
	protected.HandleFunc("/tests/{id}/attempts", submissionHandler.ListAttempts).Methods("GET")
	protected.HandleFunc("/leaderboard/me", leaderboardHandler.MyStanding).Methods("GET")
	protected.HandleFunc("/premium/me", premiumHandler.MyStatus).Methods("GET")
	protected.HandleFunc("/premium/subscribe", premiumHandler.Subscribe).Methods("POST")
	protected.HandleFunc("/feedback", feedbackHandler.Create).Methods("POST")
	protected.HandleFunc("/me/feedback", feedbackHandler.ListMine).Methods("GET")

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	// CORS
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	handler := c.Handler(r)

	log.Printf("Server starting on :%s", cfg.Server.Port)
	if err := http.ListenAndServe(":"+cfg.Server.Port, handler); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
