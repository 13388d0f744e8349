package services

import (
	"errors"
	"testing"
	"time"

	"nba-props-go/config"
	"nba-props-go/models"
)

func newTestAuthService(t *testing.T, adminKey string) *AuthService {
	t.Helper()

	hash, err := HashAdminKey(adminKey)
	if err != nil {
		t.Fatalf("HashAdminKey() error: %v", err)
	}

	return NewAuthService(config.AuthConfig{
		JWTSecret:    "test-secret",
		AdminKeyHash: hash,
		TokenExpiry:  time.Hour,
	})
}

func TestIssueAndValidateToken(t *testing.T) {
	svc := newTestAuthService(t, "letmein")

	token, expiresAt, err := svc.IssueToken("letmein")
	if err != nil {
		t.Fatalf("IssueToken() error: %v", err)
	}
	if token == "" {
		t.Fatal("expected a non-empty token")
	}
	if !expiresAt.After(time.Now()) {
		t.Errorf("expiry %v should be in the future", expiresAt)
	}

	claims, err := svc.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken() error: %v", err)
	}
	if claims.Role != "admin" {
		t.Errorf("Role = %q, want admin", claims.Role)
	}
}

func TestIssueTokenWrongKey(t *testing.T) {
	svc := newTestAuthService(t, "letmein")

	_, _, err := svc.IssueToken("wrong")
	if !errors.Is(err, models.ErrUnauthorized) {
		t.Errorf("error = %v, want ErrUnauthorized", err)
	}
}

func TestIssueTokenNotConfigured(t *testing.T) {
	svc := NewAuthService(config.AuthConfig{JWTSecret: "test-secret", TokenExpiry: time.Hour})

	_, _, err := svc.IssueToken("anything")
	if !errors.Is(err, models.ErrUnauthorized) {
		t.Errorf("error = %v, want ErrUnauthorized when no hash is configured", err)
	}
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	svc := newTestAuthService(t, "letmein")

	for _, token := range []string{"", "not-a-jwt", "aaa.bbb.ccc"} {
		if _, err := svc.ValidateToken(token); !errors.Is(err, models.ErrUnauthorized) {
			t.Errorf("ValidateToken(%q) error = %v, want ErrUnauthorized", token, err)
		}
	}
}

func TestValidateTokenWrongSecret(t *testing.T) {
	svc := newTestAuthService(t, "letmein")
	token, _, err := svc.IssueToken("letmein")
	if err != nil {
		t.Fatalf("IssueToken() error: %v", err)
	}

	other := NewAuthService(config.AuthConfig{
		JWTSecret:    "different-secret",
		AdminKeyHash: svc.adminKeyHash,
		TokenExpiry:  time.Hour,
	})
	if _, err := other.ValidateToken(token); !errors.Is(err, models.ErrUnauthorized) {
		t.Errorf("token signed with another secret should be rejected, got %v", err)
	}
}
