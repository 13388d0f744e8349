package middleware

import (
	"context"
	"net/http"
	"strings"

	"nba-props-go/models"
	"nba-props-go/services"
)

// ClaimsContextKey is the key used to store admin claims in request context
type ClaimsContextKey string

const ClaimsKey ClaimsContextKey = "claims"

// AuthMiddleware handles JWT authentication for admin endpoints
type AuthMiddleware struct {
	authService *services.AuthService
}

// NewAuthMiddleware creates a new authentication middleware
func NewAuthMiddleware(authService *services.AuthService) *AuthMiddleware {
	return &AuthMiddleware{
		authService: authService,
	}
}

// RequireAdmin rejects requests without a valid bearer token
func (m *AuthMiddleware) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, err := m.claimsFromRequest(r)
		if err != nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"error":"unauthorized","message":"valid bearer token required"}`))
			return
		}

		ctx := context.WithValue(r.Context(), ClaimsKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (m *AuthMiddleware) claimsFromRequest(r *http.Request) (*services.Claims, error) {
	header := r.Header.Get("Authorization")
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || token == "" {
		return nil, models.ErrUnauthorized
	}
	return m.authService.ValidateToken(token)
}

// ClaimsFromContext retrieves admin claims stored by RequireAdmin
func ClaimsFromContext(ctx context.Context) (*services.Claims, bool) {
	claims, ok := ctx.Value(ClaimsKey).(*services.Claims)
	return claims, ok
}
