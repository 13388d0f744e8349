package main

import (
	"net/http"

	"github.com/gorilla/mux"

	"nba-props-go/config"
	"nba-props-go/database"
	"nba-props-go/handlers"
	"nba-props-go/logging"
	"nba-props-go/middleware"
	"nba-props-go/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatalf("Failed to load configuration: %v", err)
	}

	logging.Configure(cfg.ToLoggingConfig())
	cfg.LogConfiguration()

	// The database only backs accuracy tracking; everything else works
	// without it, so a connection failure degrades instead of aborting.
	var db *database.MongoDB
	var predictionRepo *database.MongoPredictionRepository
	db, err = database.NewMongoConnection(database.Config{
		Host:     cfg.Database.Host,
		Port:     cfg.Database.Port,
		Username: cfg.Database.Username,
		Password: cfg.Database.Password,
		Database: cfg.Database.Database,
	})
	if err != nil {
		logging.Warnf("Database connection failed: %v", err)
		logging.Warn("Continuing without accuracy tracking")
		db = nil
	} else {
		defer db.Close()
		predictionRepo = database.NewMongoPredictionRepository(db)
	}

	// Services
	statsService := services.NewNBAStatsService(cfg.Stats, cfg.Prediction.MinGames)
	oddsService := services.NewOddsService(cfg.Odds)
	if oddsService == nil {
		logging.Warn("ODDS_API_KEY not set; betting line endpoints disabled")
	}
	injuryService := services.NewInjuryService("", cfg.Stats.Timeout)
	engine := services.NewPredictionEngine(cfg.Prediction)
	authService := services.NewAuthService(cfg.Auth)

	var store services.PredictionStore
	var ledger services.PredictionLedger
	if predictionRepo != nil {
		store = predictionRepo
		ledger = predictionRepo
	}
	valueBetService := services.NewValueBetService(statsService, oddsService, engine, injuryService, store, cfg.Prediction)
	accuracyService := services.NewAccuracyService(ledger, statsService)
	refreshService := services.NewRefreshService(statsService, oddsService, injuryService, accuracyService, cfg.Refresh)

	refreshService.Start()
	defer refreshService.Stop()

	// Handlers
	healthHandler := handlers.NewHealthHandler(db, statsService, oddsService, cfg)
	gamesHandler := handlers.NewGamesHandler(statsService, oddsService)
	playerHandler := handlers.NewPlayerHandler(statsService, oddsService, engine)
	valueBetsHandler := handlers.NewValueBetsHandler(valueBetService)
	accuracyHandler := handlers.NewAccuracyHandler(accuracyService)
	adminHandler := handlers.NewAdminHandler(authService, refreshService)
	authMiddleware := middleware.NewAuthMiddleware(authService)

	// Routes
	r := mux.NewRouter()
	r.Use(middleware.SecurityMiddleware)

	r.HandleFunc("/health", healthHandler.GetHealth).Methods("GET")

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/status", healthHandler.GetStatus).Methods("GET")
	api.HandleFunc("/games/today", gamesHandler.GetTodaysGames).Methods("GET")
	api.HandleFunc("/odds/games", gamesHandler.GetGameOdds).Methods("GET")
	api.HandleFunc("/players/search", playerHandler.SearchPlayer).Methods("GET")
	api.HandleFunc("/players/{playerID}/games", playerHandler.GetGameLog).Methods("GET")
	api.HandleFunc("/players/{playerID}/predictions", playerHandler.GetAllPredictions).Methods("GET")
	api.HandleFunc("/players/{playerID}/predictions/{stat}", playerHandler.GetPrediction).Methods("GET")
	api.HandleFunc("/value-bets/today", valueBetsHandler.GetTodaysValueBets).Methods("GET")
	api.HandleFunc("/accuracy", accuracyHandler.GetAccuracy).Methods("GET")
	api.HandleFunc("/auth/token", adminHandler.IssueToken).Methods("POST")

	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(authMiddleware.RequireAdmin)
	admin.HandleFunc("/refresh", adminHandler.TriggerRefresh).Methods("POST")

	addr := cfg.GetServerAddress()
	logging.Infof("Server starting on %s", addr)
	logging.Fatalf("Server stopped: %v", http.ListenAndServe(addr, r))
}
