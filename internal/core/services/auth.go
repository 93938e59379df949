package services

import (
	"context"
	"time"

	"github.com/cam-barts/rs-document/internal/core/domain"
	"github.com/cam-barts/rs-document/internal/core/ports/driven"
	"github.com/cam-barts/rs-document/internal/core/ports/driving"
)

// Ensure authService implements AuthService
var _ driving.AuthService = (*authService)(nil)

// authService implements the AuthService interface against a single
// bcrypt-hashed API key rather than a user/session store: there is one
// key, one key ID, and no login/logout lifecycle to track.
type authService struct {
	keyID       string
	keyHash     string
	authAdapter driven.AuthAdapter
	tokenTTL    time.Duration
}

// NewAuthService creates a new AuthService that accepts the API key
// whose bcrypt hash is keyHash. keyID labels the key in minted tokens;
// it carries no authorization meaning of its own.
func NewAuthService(keyID, keyHash string, authAdapter driven.AuthAdapter, tokenTTL time.Duration) driving.AuthService {
	return &authService{
		keyID:       keyID,
		keyHash:     keyHash,
		authAdapter: authAdapter,
		tokenTTL:    tokenTTL,
	}
}

// Authenticate verifies apiKey against the configured hash and mints a
// bearer token for it.
func (s *authService) Authenticate(ctx context.Context, apiKey string) (string, error) {
	if apiKey == "" {
		return "", domain.ErrInvalidCredentials
	}

	if !s.authAdapter.VerifyAPIKey(apiKey, s.keyHash) {
		return "", domain.ErrInvalidCredentials
	}

	now := time.Now()
	claims := &domain.APIKeyClaims{
		KeyID:     s.keyID,
		IssuedAt:  now,
		ExpiresAt: now.Add(s.tokenTTL),
	}

	return s.authAdapter.GenerateToken(claims)
}

// ValidateToken validates a bearer token and returns the claims it carries.
func (s *authService) ValidateToken(ctx context.Context, token string) (*domain.APIKeyClaims, error) {
	if token == "" {
		return nil, domain.ErrTokenInvalid
	}

	claims, err := s.authAdapter.ParseToken(token)
	if err != nil {
		return nil, err
	}

	if time.Now().After(claims.ExpiresAt) {
		return nil, domain.ErrTokenExpired
	}

	return claims, nil
}
