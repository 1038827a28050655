package service

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/codebuster009/chunkr-pdf-extraction/internal/config"
	"github.com/codebuster009/chunkr-pdf-extraction/internal/domain"
)

// Claims are the JWT claims carried by an access token.
type Claims struct {
	jwt.RegisteredClaims
}

// AuthService issues and validates API access tokens. The service is a
// single-tenant deployment: callers exchange the configured API key
// (stored as a bcrypt hash) for a short-lived bearer token.
type AuthService interface {
	IssueToken(apiKey string) (*domain.TokenPair, error)
	ValidateToken(tokenString string) (*Claims, error)
}

type authService struct {
	cfg config.AuthConfig
}

// NewAuthService creates a new AuthService implementation.
func NewAuthService(cfg config.AuthConfig) AuthService {
	return &authService{cfg: cfg}
}

func (s *authService) IssueToken(apiKey string) (*domain.TokenPair, error) {
	if s.cfg.APIKeyHash == "" {
		return nil, domain.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(s.cfg.APIKeyHash), []byte(apiKey)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	now := time.Now()
	expiry := now.Add(s.cfg.AccessExpiry)
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.cfg.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiry),
			Audience:  jwt.ClaimStrings{"access"},
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return nil, fmt.Errorf("signing access token: %w", err)
	}

	return &domain.TokenPair{AccessToken: signed, ExpiresAt: expiry}, nil
}

func (s *authService) ValidateToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, domain.ErrUnauthorized
	}
	return claims, nil
}
