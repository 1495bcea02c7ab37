package adapters

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	domainerror "github.com/ledgerkeep/backend/internal/domain/error"
)

func TestTokenService(t *testing.T) {
	ctx := context.Background()

	t.Run("generate then validate round-trips the profile id", func(t *testing.T) {
		service := NewTokenService("test-secret", time.Hour)
		profileID := uuid.New()

		token, err := service.GenerateToken(ctx, profileID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if token == "" {
			t.Fatal("expected a non-empty token")
		}

		claims, err := service.ValidateToken(ctx, token)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if claims.ProfileID != profileID {
			t.Errorf("expected %s, got %s", profileID, claims.ProfileID)
		}
		if !claims.ExpiresAt.After(time.Now()) {
			t.Error("expected a future expiry")
		}
	})

	t.Run("wrong secret is rejected", func(t *testing.T) {
		issuer := NewTokenService("secret-a", time.Hour)
		verifier := NewTokenService("secret-b", time.Hour)

		token, err := issuer.GenerateToken(ctx, uuid.New())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if _, err := verifier.ValidateToken(ctx, token); !errors.Is(err, domainerror.ErrInvalidToken) {
			t.Errorf("expected ErrInvalidToken, got %v", err)
		}
	})

	t.Run("expired token is reported as expired", func(t *testing.T) {
		service := NewTokenService("test-secret", time.Hour)
		expired := &tokenService{secret: []byte("test-secret"), duration: -time.Hour}

		token, err := expired.GenerateToken(ctx, uuid.New())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if _, err := service.ValidateToken(ctx, token); !errors.Is(err, domainerror.ErrExpiredToken) {
			t.Errorf("expected ErrExpiredToken, got %v", err)
		}
	})

	t.Run("garbage token is invalid", func(t *testing.T) {
		service := NewTokenService("test-secret", time.Hour)
		if _, err := service.ValidateToken(ctx, "not-a-token"); !errors.Is(err, domainerror.ErrInvalidToken) {
			t.Errorf("expected ErrInvalidToken, got %v", err)
		}
	})
}
