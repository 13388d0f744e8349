package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"nba-props-go/models"
	"nba-props-go/services"
)

// AdminHandler handles token issuance and the manual refresh trigger
type AdminHandler struct {
	authService    *services.AuthService
	refreshService *services.RefreshService
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(authService *services.AuthService, refreshService *services.RefreshService) *AdminHandler {
	return &AdminHandler{
		authService:    authService,
		refreshService: refreshService,
	}
}

type tokenRequest struct {
	AdminKey string `json:"admin_key"`
}

type tokenResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// IssueToken handles POST /api/auth/token
func (h *AdminHandler) IssueToken(w http.ResponseWriter, r *http.Request) {
	var req tokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, fmt.Errorf("%w: invalid request body", models.ErrValidation))
		return
	}
	if req.AdminKey == "" {
		respondError(w, fmt.Errorf("%w: admin_key is required", models.ErrValidation))
		return
	}

	token, expiresAt, err := h.authService.IssueToken(req.AdminKey)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, tokenResponse{Token: token, ExpiresAt: expiresAt})
}

// TriggerRefresh handles POST /api/admin/refresh
func (h *AdminHandler) TriggerRefresh(w http.ResponseWriter, r *http.Request) {
	summary, err := h.refreshService.Refresh(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, summary)
}
