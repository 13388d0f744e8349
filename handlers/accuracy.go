package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"nba-props-go/models"
	"nba-props-go/services"
)

// AccuracyHandler handles prediction accuracy reporting
type AccuracyHandler struct {
	accuracyService *services.AccuracyService
}

// NewAccuracyHandler creates a new accuracy handler
func NewAccuracyHandler(accuracyService *services.AccuracyService) *AccuracyHandler {
	return &AccuracyHandler{
		accuracyService: accuracyService,
	}
}

const defaultAccuracyDays = 7

// GetAccuracy handles GET /api/accuracy?days=
func (h *AccuracyHandler) GetAccuracy(w http.ResponseWriter, r *http.Request) {
	days := defaultAccuracyDays
	if raw := r.URL.Query().Get("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			respondError(w, fmt.Errorf("%w: days must be an integer", models.ErrValidation))
			return
		}
		days = parsed
	}

	stats, err := h.accuracyService.Stats(r.Context(), days)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, stats)
}
