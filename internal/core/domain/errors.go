package domain

import "errors"

// Domain errors - used across all layers.
//
// The engine's own taxonomy is two kinds only: ErrInvalidArgument for bad
// caller input, validated before any work starts, and ErrInternal for
// implementation bugs (a compiled asset that failed to build). Cleaners
// never return either - they are total functions over strings. The
// remaining sentinels back the document-store and HTTP-auth adapters
// that surround the engine.
var (
	// ErrInvalidArgument indicates a caller-supplied parameter was
	// invalid (chunk_size <= 0, overlap >= chunk_size).
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrInternal indicates an implementation bug rather than bad
	// input. It must be surfaced with a diagnostic, never swallowed.
	ErrInternal = errors.New("internal error")

	// ErrNotFound indicates the requested resource was not found
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates the resource already exists
	ErrAlreadyExists = errors.New("already exists")

	// ErrUnauthorized indicates authentication failed or missing
	ErrUnauthorized = errors.New("unauthorized")

	// ErrTokenExpired indicates the auth token has expired
	ErrTokenExpired = errors.New("token expired")

	// ErrTokenInvalid indicates the auth token is malformed or invalid
	ErrTokenInvalid = errors.New("token invalid")

	// ErrInvalidCredentials indicates the supplied API key is wrong
	ErrInvalidCredentials = errors.New("invalid credentials")
)
