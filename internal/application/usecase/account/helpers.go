// Package account contains payment-source use cases: account CRUD, the
// UNKNOWN-reassignment deletion path, and direct balance updates.
package account

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/ledgerkeep/backend/internal/application/adapter"
	"github.com/ledgerkeep/backend/internal/domain/entity"
	domainerror "github.com/ledgerkeep/backend/internal/domain/error"
)

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

func findAccount(ctx context.Context, repos *adapter.Repositories, accountID uuid.UUID) (*entity.Account, error) {
	account, err := repos.Accounts.FindByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, domainerror.ErrAccountNotFound) {
			return nil, domainerror.NewAccountError(
				domainerror.ErrCodeAccountNotFound,
				"account not found",
				domainerror.ErrAccountNotFound,
			)
		}
		return nil, fmt.Errorf("failed to find account: %w", err)
	}
	return account, nil
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

// checkNameAvailable rejects the reserved name and duplicates within the
// profile.
func checkNameAvailable(ctx context.Context, repos *adapter.Repositories, profileID uuid.UUID, name string) error {
	if name == entity.UnknownAccountName {
		return domainerror.NewAccountError(
			domainerror.ErrCodeReservedAccount,
			fmt.Sprintf("%q is a reserved account name", entity.UnknownAccountName),
			domainerror.ErrReservedAccount,
		)
	}
	if _, err := repos.Accounts.FindByName(ctx, profileID, name); err == nil {
		return domainerror.NewAccountError(
			domainerror.ErrCodeAccountNameTaken,
			"an account with this name already exists",
			domainerror.ErrAccountNameTaken,
		)
	} else if !errors.Is(err, domainerror.ErrAccountNotFound) {
		return fmt.Errorf("failed to check account name: %w", err)
	}
	return nil
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
