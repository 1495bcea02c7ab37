// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/ledgerkeep/backend/internal/domain/entity"
)

// ProfileRepository defines the interface for profile persistence operations.
type ProfileRepository interface {
	// Create inserts a new profile.
	Create(ctx context.Context, profile *entity.Profile) error

	// FindByID retrieves a profile by id.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Profile, error)

	// Update persists changes to a profile (base currency, spend accounts).
	Update(ctx context.Context, profile *entity.Profile) error

	// Lock takes the profile row lock, serializing concurrent units of work
	// against the same profile. Must be called inside a unit of work, before
	// any balance or snapshot write.
	Lock(ctx context.Context, id uuid.UUID) error
}

// SnapshotRepository defines the interface for the denormalized per-profile
// snapshot record.
type SnapshotRepository interface {
	// Create inserts the zeroed snapshot row for a new profile.
	Create(ctx context.Context, snapshot *entity.Snapshot) error

	// FindByProfile retrieves the profile's snapshot.
	FindByProfile(ctx context.Context, profileID uuid.UUID) (*entity.Snapshot, error)

	// Update persists recomputed snapshot fields. Last write wins per field;
	// no history is kept.
	Update(ctx context.Context, snapshot *entity.Snapshot) error
}

// CurrencyRepository defines the interface for the seeded currency reference
// table.
type CurrencyRepository interface {
	// Upsert inserts or refreshes a currency definition.
	Upsert(ctx context.Context, currency *entity.Currency) error

	// FindByCode retrieves a currency by its 3-letter code.
	FindByCode(ctx context.Context, code string) (*entity.Currency, error)

	// FindAll retrieves every seeded currency, ordered by code.
	FindAll(ctx context.Context) ([]*entity.Currency, error)
}
