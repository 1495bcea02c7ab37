package profile

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/ledgerkeep/backend/internal/application/adapter"
	"github.com/ledgerkeep/backend/internal/domain/entity"
	domainerror "github.com/ledgerkeep/backend/internal/domain/error"
)

// ProfileOutput represents profile data returned by use cases.
type ProfileOutput struct {
	ID              uuid.UUID
	BaseCurrency    string
	SpendAccountIDs []uuid.UUID
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func newProfileOutput(p *entity.Profile) *ProfileOutput {
	return &ProfileOutput{
		ID:              p.ID,
		BaseCurrency:    p.BaseCurrency,
		SpendAccountIDs: p.SpendAccountIDs,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}

// lockProfile serializes the unit of work against the profile row and loads
// the profile.
func lockProfile(ctx context.Context, repos *adapter.Repositories, profileID uuid.UUID) (*entity.Profile, error) {
	if err := repos.Profiles.Lock(ctx, profileID); err != nil {
		return nil, fmt.Errorf("failed to lock profile: %w", err)
	}
	return findProfile(ctx, repos, profileID)
}

func findProfile(ctx context.Context, repos *adapter.Repositories, profileID uuid.UUID) (*entity.Profile, error) {
	profile, err := repos.Profiles.FindByID(ctx, profileID)
	if err != nil {
		if errors.Is(err, domainerror.ErrProfileNotFound) {
			return nil, domainerror.NewProfileError(
				domainerror.ErrCodeProfileNotFound,
				"profile not found",
				domainerror.ErrProfileNotFound,
			)
		}
		return nil, fmt.Errorf("failed to find profile: %w", err)
	}
	return profile, nil
}

// invalidateSnapshot drops the cached snapshot after a committed write. The
// cache is not the source of truth, so a failed invalidation is logged and
// the write still succeeds.
func invalidateSnapshot(ctx context.Context, cache adapter.SnapshotCache, profileID uuid.UUID) {
	if cache == nil {
		return
	}
	if err := cache.Invalidate(ctx, profileID); err != nil {
		slog.Warn("Failed to invalidate snapshot cache", "profile_id", profileID, "error", err)
	}
}

func checkCurrency(ctx context.Context, repos *adapter.Repositories, code string) error {
	if _, err := repos.Currencies.FindByCode(ctx, code); err != nil {
		if errors.Is(err, domainerror.ErrCurrencyNotFound) {
			return domainerror.NewProfileError(
				domainerror.ErrCodeCurrencyNotFound,
				fmt.Sprintf("unknown currency code %q", code),
				domainerror.ErrCurrencyNotFound,
			)
		}
		return fmt.Errorf("failed to check currency: %w", err)
	}
	return nil
}
