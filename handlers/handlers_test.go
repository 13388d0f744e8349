package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"

	"nba-props-go/config"
	"nba-props-go/models"
	"nba-props-go/services"
)

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) errorResponse {
	t.Helper()
	var body errorResponse
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode error body: %v", err)
	}
	return body
}

func TestSearchPlayerRequiresName(t *testing.T) {
	h := NewPlayerHandler(nil, nil, nil)

	req := httptest.NewRequest("GET", "/api/players/search", nil)
	rec := httptest.NewRecorder()
	h.SearchPlayer(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
	if body := decodeError(t, rec); body.Error != models.KindValidation {
		t.Errorf("error kind = %q, want validation_error", body.Error)
	}
}

func TestGetGameLogValidatesLimit(t *testing.T) {
	h := NewPlayerHandler(nil, nil, nil)

	for _, limit := range []string{"0", "-3", "83", "abc"} {
		req := httptest.NewRequest("GET", "/api/players/203999/games?limit="+limit, nil)
		req = mux.SetURLVars(req, map[string]string{"playerID": "203999"})
		rec := httptest.NewRecorder()
		h.GetGameLog(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("limit=%q: status = %d, want 400", limit, rec.Code)
		}
	}
}

func TestGetPredictionRejectsUnknownStat(t *testing.T) {
	h := NewPlayerHandler(nil, nil, nil)

	req := httptest.NewRequest("GET", "/api/players/203999/predictions/BLK", nil)
	req = mux.SetURLVars(req, map[string]string{"playerID": "203999", "stat": "BLK"})
	rec := httptest.NewRecorder()
	h.GetPrediction(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestGetTodaysValueBetsValidatesMinEdge(t *testing.T) {
	h := NewValueBetsHandler(nil)

	for _, edge := range []string{"-1", "0", "abc"} {
		req := httptest.NewRequest("GET", "/api/value-bets/today?min_edge="+edge, nil)
		rec := httptest.NewRecorder()
		h.GetTodaysValueBets(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("min_edge=%q: status = %d, want 400", edge, rec.Code)
		}
	}
}

func TestGetAccuracyValidatesDays(t *testing.T) {
	h := NewAccuracyHandler(services.NewAccuracyService(nil, nil))

	tests := []struct {
		query    string
		wantCode int
	}{
		{"?days=0", http.StatusBadRequest},
		{"?days=31", http.StatusBadRequest},
		{"?days=abc", http.StatusBadRequest},
		// Valid days with no storage configured degrades to 503
		{"?days=7", http.StatusServiceUnavailable},
		{"", http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		req := httptest.NewRequest("GET", "/api/accuracy"+tt.query, nil)
		rec := httptest.NewRecorder()
		h.GetAccuracy(rec, req)

		if rec.Code != tt.wantCode {
			t.Errorf("query %q: status = %d, want %d", tt.query, rec.Code, tt.wantCode)
		}
	}
}

func TestGetGameOddsWithoutOddsSource(t *testing.T) {
	h := NewGamesHandler(nil, nil)

	req := httptest.NewRequest("GET", "/api/odds/games", nil)
	rec := httptest.NewRecorder()
	h.GetGameOdds(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", rec.Code)
	}
}

func TestGetHealth(t *testing.T) {
	h := NewHealthHandler(nil, nil, nil, nil)

	req := httptest.NewRequest("GET", "/health", nil)
	rec := httptest.NewRecorder()
	h.GetHealth(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", ct)
	}
	if !strings.Contains(rec.Body.String(), "healthy") {
		t.Errorf("body = %q, want healthy status", rec.Body.String())
	}
}

func newTestAuth(t *testing.T, key string) *services.AuthService {
	t.Helper()
	hash, err := services.HashAdminKey(key)
	if err != nil {
		t.Fatalf("HashAdminKey() error: %v", err)
	}
	return services.NewAuthService(config.AuthConfig{
		JWTSecret:    "test-secret",
		AdminKeyHash: hash,
		TokenExpiry:  time.Hour,
	})
}

func TestIssueTokenEndpoint(t *testing.T) {
	h := NewAdminHandler(newTestAuth(t, "letmein"), nil)

	tests := []struct {
		name     string
		body     string
		wantCode int
	}{
		{"valid key", `{"admin_key":"letmein"}`, http.StatusOK},
		{"wrong key", `{"admin_key":"nope"}`, http.StatusUnauthorized},
		{"missing key", `{}`, http.StatusBadRequest},
		{"malformed body", `{`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/api/auth/token", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			h.IssueToken(rec, req)

			if rec.Code != tt.wantCode {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantCode)
			}
			if tt.wantCode == http.StatusOK {
				var resp tokenResponse
				if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
					t.Fatalf("decode token response: %v", err)
				}
				if resp.Token == "" {
					t.Error("expected a token")
				}
			}
		})
	}
}
