// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ledgerkeep/backend/internal/domain/entity"
)

// Clock supplies the current time. Injected so due-date math and defaulted
// transaction dates are deterministic under test.
type Clock interface {
	Now() time.Time

	// Today returns the current date truncated to day granularity.
	Today() time.Time
}

// CurrencyConverter converts monetary amounts between currency codes using
// the historical rate table. Satisfied by fx.Converter.
type CurrencyConverter interface {
	Convert(amount decimal.Decimal, from, to string) (decimal.Decimal, error)
	ConvertOn(amount decimal.Decimal, from, to string, date time.Time) (decimal.Decimal, error)
}

// TokenClaims represents the claims contained in a profile token.
type TokenClaims struct {
	ProfileID uuid.UUID
	ExpiresAt time.Time
}

// TokenService defines the interface for profile bearer-token operations.
type TokenService interface {
	// GenerateToken mints a token scoped to the given profile.
	GenerateToken(ctx context.Context, profileID uuid.UUID) (string, error)

	// ValidateToken verifies a token and returns its claims.
	ValidateToken(ctx context.Context, token string) (*TokenClaims, error)
}

// SnapshotCache is a read-through cache over the snapshot read path. It is
// never the source of truth: rebalance invalidates, reads fall back to the
// repository on miss.
type SnapshotCache interface {
	Get(ctx context.Context, profileID uuid.UUID) (*entity.Snapshot, error)
	Set(ctx context.Context, snapshot *entity.Snapshot) error
	Invalidate(ctx context.Context, profileID uuid.UUID) error
}
