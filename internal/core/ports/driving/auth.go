package driving

import (
	"context"

	"github.com/cam-barts/rs-document/internal/core/domain"
)

// AuthService authenticates API keys and validates the bearer tokens
// issued for them. There are no users, sessions, or roles: a key either
// verifies or it doesn't.
type AuthService interface {
	// Authenticate verifies apiKey against the configured key store and,
	// on success, mints a bearer token for it. Returns
	// domain.ErrInvalidCredentials if apiKey does not verify.
	Authenticate(ctx context.Context, apiKey string) (string, error)

	// ValidateToken validates a bearer token and returns the claims it
	// carries. Returns domain.ErrTokenExpired or domain.ErrTokenInvalid.
	ValidateToken(ctx context.Context, token string) (*domain.APIKeyClaims, error)
}
