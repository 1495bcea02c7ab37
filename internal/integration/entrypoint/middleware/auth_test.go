package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ledgerkeep/backend/internal/integration/adapters"
)

func newAuthRouter(t *testing.T) (*gin.Engine, string, uuid.UUID) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	tokens := adapters.NewTokenService("test-secret", time.Hour)
	profileID := uuid.New()
	token, err := tokens.GenerateToken(context.Background(), profileID)
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	router := gin.New()
	router.Use(NewAuthMiddleware(tokens).Authenticate())
	router.GET("/protected", func(c *gin.Context) {
		id, ok := GetProfileIDFromContext(c)
		if !ok {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.JSON(http.StatusOK, gin.H{"profile_id": id.String()})
	})
	return router, token, profileID
}

func TestAuthMiddleware(t *testing.T) {
	t.Run("valid token passes the profile id through", func(t *testing.T) {
		router, token, profileID := newAuthRouter(t)

		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if body := rec.Body.String(); !strings.Contains(body, profileID.String()) {
			t.Errorf("expected the profile id in %s", body)
		}
	})

	t.Run("missing header", func(t *testing.T) {
		router, _, _ := newAuthRouter(t)

		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
	})

	t.Run("malformed header", func(t *testing.T) {
		router, token, _ := newAuthRouter(t)

		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", token)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
	})

	t.Run("expired token", func(t *testing.T) {
		gin.SetMode(gin.TestMode)
		tokens := adapters.NewTokenService("test-secret", time.Hour)
		router := gin.New()
		router.Use(NewAuthMiddleware(tokens).Authenticate())
		router.GET("/protected", func(c *gin.Context) { c.Status(http.StatusOK) })

		// Signed with another secret so validation fails.
		other := adapters.NewTokenService("other-secret", time.Hour)
		bad, err := other.GenerateToken(context.Background(), uuid.New())
		if err != nil {
			t.Fatalf("failed to generate token: %v", err)
		}

		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+bad)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
	})
}

func TestRateLimiter(t *testing.T) {
	gin.SetMode(gin.TestMode)

	limiter := NewRateLimiterWithConfig(2, time.Minute)
	router := gin.New()
	router.Use(limiter.Middleware())
	router.POST("/limited", func(c *gin.Context) { c.Status(http.StatusCreated) })

	hit := func() int {
		req := httptest.NewRequest(http.MethodPost, "/limited", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		return rec.Code
	}

	if code := hit(); code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", code)
	}
	if code := hit(); code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", code)
	}
	if code := hit(); code != http.StatusTooManyRequests {
		t.Fatalf("expected 429 after the window fills, got %d", code)
	}
}
