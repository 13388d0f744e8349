package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"nba-props-go/models"
	"nba-props-go/services"
)

// PlayerHandler handles player lookup, game log and prediction requests
type PlayerHandler struct {
	statsService *services.NBAStatsService
	oddsService  *services.OddsService
	engine       *services.PredictionEngine
}

// NewPlayerHandler creates a new player handler. oddsService may be nil;
// predictions are then served without line comparisons.
func NewPlayerHandler(statsService *services.NBAStatsService, oddsService *services.OddsService, engine *services.PredictionEngine) *PlayerHandler {
	return &PlayerHandler{
		statsService: statsService,
		oddsService:  oddsService,
		engine:       engine,
	}
}

const (
	defaultGameLimit = 10
	maxGameLimit     = 82
)

// SearchPlayer handles GET /api/players/search?name=
func (h *PlayerHandler) SearchPlayer(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimSpace(r.URL.Query().Get("name"))
	if len(name) < 2 {
		respondError(w, fmt.Errorf("%w: name must be at least 2 characters", models.ErrValidation))
		return
	}

	player, err := h.statsService.SearchPlayer(r.Context(), name)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, player)
}

// GetGameLog handles GET /api/players/{playerID}/games?limit=
func (h *PlayerHandler) GetGameLog(w http.ResponseWriter, r *http.Request) {
	playerID := mux.Vars(r)["playerID"]

	limit := defaultGameLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > maxGameLimit {
			respondError(w, fmt.Errorf("%w: limit must be between 1 and %d", models.ErrValidation, maxGameLimit))
			return
		}
		limit = parsed
	}

	player, err := h.statsService.PlayerByID(r.Context(), playerID)
	if err != nil {
		respondError(w, err)
		return
	}

	games, err := h.statsService.PlayerGameLog(r.Context(), playerID)
	if err != nil {
		respondError(w, err)
		return
	}
	if len(games) > limit {
		games = games[:limit]
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"player": player,
		"games":  games,
		"count":  len(games),
	})
}

// GetPrediction handles GET /api/players/{playerID}/predictions/{stat}?use_smart=
func (h *PlayerHandler) GetPrediction(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	playerID := vars["playerID"]

	stat, ok := models.ParseStatType(vars["stat"])
	if !ok {
		respondError(w, fmt.Errorf("%w: unknown stat type %q", models.ErrValidation, vars["stat"]))
		return
	}

	player, err := h.statsService.PlayerByID(r.Context(), playerID)
	if err != nil {
		respondError(w, err)
		return
	}

	games, err := h.statsService.PlayerGameLog(r.Context(), playerID)
	if err != nil {
		respondError(w, err)
		return
	}

	pred, err := h.engine.Predict(player, games, stat, nil, parseBool(r, "use_smart"))
	if err != nil {
		respondError(w, err)
		return
	}

	recent := models.StatValues(games, stat)
	if len(recent) > pred.GamesUsed {
		recent = recent[:pred.GamesUsed]
	}

	resp := map[string]interface{}{
		"prediction":    pred,
		"recent_values": recent,
	}
	if line, ok := h.propLine(r, player.Name, stat); ok {
		vb := models.NewValueBet(*pred, line, 0)
		resp["line"] = line.Line
		resp["edge"] = vb.Edge
		resp["recommendation"] = vb.Recommendation
		resp["game"] = line.Game
	}
	respondJSON(w, http.StatusOK, resp)
}

// propLine finds the posted line for a player stat, if the odds source
// is configured and has one today.
func (h *PlayerHandler) propLine(r *http.Request, playerName string, stat models.StatType) (models.PropLine, bool) {
	if h.oddsService == nil {
		return models.PropLine{}, false
	}
	props, err := h.oddsService.AllPlayerProps(r.Context())
	if err != nil {
		// Lines are an enrichment here, not the payload
		return models.PropLine{}, false
	}
	pp, ok := props[playerName]
	if !ok {
		return models.PropLine{}, false
	}
	return pp.Line(stat)
}

// GetAllPredictions handles GET /api/players/{playerID}/predictions
func (h *PlayerHandler) GetAllPredictions(w http.ResponseWriter, r *http.Request) {
	playerID := mux.Vars(r)["playerID"]
	useSmart := parseBool(r, "use_smart")

	player, err := h.statsService.PlayerByID(r.Context(), playerID)
	if err != nil {
		respondError(w, err)
		return
	}

	games, err := h.statsService.PlayerGameLog(r.Context(), playerID)
	if err != nil {
		respondError(w, err)
		return
	}

	predictions := make(map[models.StatType]*models.Prediction, len(models.AllStatTypes))
	var lastErr error
	for _, stat := range models.AllStatTypes {
		pred, err := h.engine.Predict(player, games, stat, nil, useSmart)
		if err != nil {
			lastErr = err
			continue
		}
		predictions[stat] = pred
	}
	if len(predictions) == 0 {
		respondError(w, lastErr)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"player":      player,
		"predictions": predictions,
	})
}

// parseBool reads a boolean query parameter, treating "true" and "1" as set
func parseBool(r *http.Request, key string) bool {
	v := strings.ToLower(r.URL.Query().Get(key))
	return v == "true" || v == "1"
}
