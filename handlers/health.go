package handlers

import (
	"net/http"
	"time"

	"nba-props-go/config"
	"nba-props-go/database"
	"nba-props-go/services"
)

const serviceVersion = "1.0.0"

// HealthHandler handles liveness and component status endpoints
type HealthHandler struct {
	db           *database.MongoDB
	statsService *services.NBAStatsService
	oddsService  *services.OddsService
	cfg          *config.Config
	startedAt    time.Time
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(db *database.MongoDB, statsService *services.NBAStatsService, oddsService *services.OddsService, cfg *config.Config) *HealthHandler {
	return &HealthHandler{
		db:           db,
		statsService: statsService,
		oddsService:  oddsService,
		cfg:          cfg,
		startedAt:    time.Now(),
	}
}

// GetHealth handles GET /health (cheap liveness probe)
func (h *HealthHandler) GetHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

// GetStatus handles GET /api/status with per-component detail.
// The odds API is only reported as configured or disabled; probing it
// would burn a metered request.
func (h *HealthHandler) GetStatus(w http.ResponseWriter, r *http.Request) {
	components := map[string]string{
		"stats_api": "up",
		"database":  "disabled",
		"odds_api":  "disabled",
	}

	if !h.statsService.HealthCheck() {
		components["stats_api"] = "down"
	}
	if h.db != nil {
		components["database"] = "up"
		if err := h.db.TestConnection(); err != nil {
			components["database"] = "down"
		}
	}
	if h.oddsService != nil {
		components["odds_api"] = "configured"
	}

	status := "ok"
	if components["stats_api"] == "down" {
		status = "degraded"
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"name":       "nba-props",
		"version":    serviceVersion,
		"status":     status,
		"uptime":     time.Since(h.startedAt).Round(time.Second).String(),
		"components": components,
		"features": map[string]bool{
			"smart_predictions": h.cfg.Prediction.SmartEnabled,
			"injury_data":       h.cfg.Prediction.InjuriesOn,
			"auto_refresh":      h.cfg.Refresh.Enabled,
		},
		"timestamp": time.Now(),
	})
}
