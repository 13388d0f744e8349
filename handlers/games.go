package handlers

import (
	"net/http"

	"nba-props-go/models"
	"nba-props-go/services"
)

// GamesHandler handles schedule and game odds requests
type GamesHandler struct {
	statsService *services.NBAStatsService
	oddsService  *services.OddsService
}

// NewGamesHandler creates a new games handler
func NewGamesHandler(statsService *services.NBAStatsService, oddsService *services.OddsService) *GamesHandler {
	return &GamesHandler{
		statsService: statsService,
		oddsService:  oddsService,
	}
}

// GetTodaysGames handles GET /api/games/today
func (h *GamesHandler) GetTodaysGames(w http.ResponseWriter, r *http.Request) {
	games, err := h.statsService.TodaysGames(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"games": games,
		"count": len(games),
	})
}

// GetGameOdds handles GET /api/odds/games
func (h *GamesHandler) GetGameOdds(w http.ResponseWriter, r *http.Request) {
	if h.oddsService == nil {
		respondError(w, models.ErrSourceUnavailable)
		return
	}

	odds, err := h.oddsService.GameOdds(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"games": odds,
		"count": len(odds),
	})
}
