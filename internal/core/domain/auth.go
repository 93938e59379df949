package domain

import "time"

// APIKeyClaims is what a bearer token carries once an API key has been
// verified. KeyID identifies the key without revealing it; tokens carry
// no role or tenancy information because this engine has none.
type APIKeyClaims struct {
	KeyID     string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Expired reports whether the claims' ExpiresAt has passed as of now.
func (c *APIKeyClaims) Expired(now time.Time) bool {
	return now.After(c.ExpiresAt)
}
