package driven

import "github.com/cam-barts/rs-document/internal/core/domain"

// AuthAdapter handles the cryptographic side of API-key authentication:
// hashing keys for storage and minting/parsing the bearer tokens handed
// out once a key verifies. It does not persist anything itself.
type AuthAdapter interface {
	// HashAPIKey returns a bcrypt hash of an API key for storage.
	HashAPIKey(apiKey string) (string, error)

	// VerifyAPIKey reports whether apiKey matches hash.
	VerifyAPIKey(apiKey, hash string) bool

	// GenerateToken mints a signed, short-lived bearer token for claims.
	GenerateToken(claims *domain.APIKeyClaims) (string, error)

	// ParseToken validates a bearer token's signature and expiry and
	// returns the claims it carries. Returns domain.ErrTokenExpired or
	// domain.ErrTokenInvalid as appropriate.
	ParseToken(token string) (*domain.APIKeyClaims, error)
}
