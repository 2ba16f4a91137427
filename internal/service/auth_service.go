package service

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	"github.com/qbankhq/qbank-backend/internal/config"
)

// Common auth errors.
var (
	ErrTokenInvalid = errors.New("invalid authentication token")
)

// Identity is the verified caller identity as reported by the external
// identity provider. The service never issues tokens and never inspects
// anything beyond these two claims.
type Identity struct {
	ID    string
	Email string
}

// identityClaims is the subset of the provider's JWT we care about.
type identityClaims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
}

// AuthService verifies bearer credentials issued by the external identity
// provider.
type AuthService struct {
	cfg *config.Config
}

// NewAuthService creates a new AuthService.
func NewAuthService(cfg *config.Config) *AuthService {
	return &AuthService{cfg: cfg}
}

// VerifyToken parses and validates a provider-issued JWT and returns the
// caller identity.
func (s *AuthService) VerifyToken(tokenStr string) (*Identity, error) {
	claims := &identityClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(s.cfg.AuthJWTSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, ErrTokenInvalid
	}
	if claims.Subject == "" {
		return nil, ErrTokenInvalid
	}
	return &Identity{ID: claims.Subject, Email: claims.Email}, nil
}
