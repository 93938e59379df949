package services

import (
	"context"
	"errors"
	"testing"
	"time"

	authadapter "github.com/cam-barts/rs-document/internal/adapters/driven/auth"
	"github.com/cam-barts/rs-document/internal/core/domain"
)

func newTestAuthService(t *testing.T, apiKey string) (*authService, string) {
	t.Helper()
	adapter := authadapter.NewAdapterWithCost("jwt-secret", 4)
	hash, err := adapter.HashAPIKey(apiKey)
	if err != nil {
		t.Fatalf("failed to hash test key: %v", err)
	}
	svc := NewAuthService("primary", hash, adapter, time.Minute).(*authService)
	return svc, hash
}

func TestAuthService_AuthenticateSuccess(t *testing.T) {
	svc, _ := newTestAuthService(t, "sk-test-key")

	token, err := svc.Authenticate(context.Background(), "sk-test-key")
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if token == "" {
		t.Fatal("expected non-empty token")
	}
}

func TestAuthService_AuthenticateWrongKey(t *testing.T) {
	svc, _ := newTestAuthService(t, "sk-test-key")

	_, err := svc.Authenticate(context.Background(), "sk-wrong-key")
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_AuthenticateEmptyKey(t *testing.T) {
	svc, _ := newTestAuthService(t, "sk-test-key")

	_, err := svc.Authenticate(context.Background(), "")
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_ValidateTokenRoundTrip(t *testing.T) {
	svc, _ := newTestAuthService(t, "sk-test-key")

	token, err := svc.Authenticate(context.Background(), "sk-test-key")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	claims, err := svc.ValidateToken(context.Background(), token)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if claims.KeyID != "primary" {
		t.Errorf("expected KeyID %q, got %q", "primary", claims.KeyID)
	}
}

func TestAuthService_ValidateTokenExpired(t *testing.T) {
	adapter := authadapter.NewAdapterWithCost("jwt-secret", 4)
	hash, _ := adapter.HashAPIKey("sk-test-key")
	svc := NewAuthService("primary", hash, adapter, -time.Minute)

	token, err := svc.Authenticate(context.Background(), "sk-test-key")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err = svc.ValidateToken(context.Background(), token)
	if !errors.Is(err, domain.ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestAuthService_ValidateTokenEmpty(t *testing.T) {
	svc, _ := newTestAuthService(t, "sk-test-key")

	_, err := svc.ValidateToken(context.Background(), "")
	if !errors.Is(err, domain.ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}
