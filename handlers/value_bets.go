package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"nba-props-go/models"
	"nba-props-go/services"
)

// ValueBetsHandler handles the value bet ranking endpoint
type ValueBetsHandler struct {
	valueBetService *services.ValueBetService
}

// NewValueBetsHandler creates a new value bets handler
func NewValueBetsHandler(valueBetService *services.ValueBetService) *ValueBetsHandler {
	return &ValueBetsHandler{
		valueBetService: valueBetService,
	}
}

// GetTodaysValueBets handles GET /api/value-bets/today?min_edge=&show_all=&use_smart=
func (h *ValueBetsHandler) GetTodaysValueBets(w http.ResponseWriter, r *http.Request) {
	var minEdge float64
	if raw := r.URL.Query().Get("min_edge"); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil || parsed <= 0 {
			respondError(w, fmt.Errorf("%w: min_edge must be a positive number", models.ErrValidation))
			return
		}
		minEdge = parsed
	}

	result, err := h.valueBetService.RankToday(r.Context(), minEdge, parseBool(r, "show_all"), parseBool(r, "use_smart"))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}
