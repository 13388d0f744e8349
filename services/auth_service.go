package services

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"nba-props-go/config"
	"nba-props-go/logging"
	"nba-props-go/models"
)

// AuthService guards the admin endpoints. A caller exchanges the admin
// key for a short-lived JWT; the key itself is only stored as a bcrypt
// hash in configuration.
type AuthService struct {
	jwtSecret    []byte
	adminKeyHash string
	tokenExpiry  time.Duration
	logger       *logging.Logger
}

// Claims are the JWT claims carried by an admin token
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

const adminRole = "admin"

// NewAuthService creates the auth service
func NewAuthService(cfg config.AuthConfig) *AuthService {
	return &AuthService{
		jwtSecret:    []byte(cfg.JWTSecret),
		adminKeyHash: cfg.AdminKeyHash,
		tokenExpiry:  cfg.TokenExpiry,
		logger:       logging.WithPrefix("Auth"),
	}
}

// IssueToken verifies the admin key against its stored hash and
// returns a signed token with its expiry.
func (s *AuthService) IssueToken(adminKey string) (string, time.Time, error) {
	if s.adminKeyHash == "" {
		return "", time.Time{}, fmt.Errorf("%w: admin access not configured", models.ErrUnauthorized)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(s.adminKeyHash), []byte(adminKey)); err != nil {
		s.logger.Warn("Admin key verification failed")
		return "", time.Time{}, fmt.Errorf("%w: invalid admin key", models.ErrUnauthorized)
	}

	expiresAt := time.Now().Add(s.tokenExpiry)
	claims := &Claims{
		Role: adminRole,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Subject:   adminRole,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}

	s.logger.Info("Issued admin token")
	return signed, expiresAt, nil
}

// ValidateToken parses and verifies a token string
func (s *AuthService) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrUnauthorized, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("%w: invalid token", models.ErrUnauthorized)
	}
	if claims.Role != adminRole {
		return nil, fmt.Errorf("%w: insufficient role", models.ErrUnauthorized)
	}
	return claims, nil
}

// HashAdminKey generates a bcrypt hash for an admin key. Used by
// operators to produce the ADMIN_KEY_HASH configuration value.
func HashAdminKey(key string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(key), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
