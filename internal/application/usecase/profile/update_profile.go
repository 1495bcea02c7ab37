package profile

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/ledgerkeep/backend/internal/application/adapter"
	"github.com/ledgerkeep/backend/internal/application/usecase/ledger"
	"github.com/ledgerkeep/backend/internal/domain/entity"
)

// UpdateProfileInput represents the input for profile update. Nil fields are
// left unchanged; a non-nil SpendAccountIDs replaces the whole set.
type UpdateProfileInput struct {
	ProfileID       uuid.UUID
	BaseCurrency    *string
	SpendAccountIDs []uuid.UUID
}

// UpdateProfileOutput represents the output of profile update.
type UpdateProfileOutput struct {
	Profile *ProfileOutput
}

// UpdateProfileUseCase handles profile update logic.
type UpdateProfileUseCase struct {
	uow     adapter.UnitOfWork
	updater *ledger.Updater
	cache   adapter.SnapshotCache
	clock   adapter.Clock
}

// NewUpdateProfileUseCase creates a new UpdateProfileUseCase instance.
func NewUpdateProfileUseCase(
	uow adapter.UnitOfWork,
	updater *ledger.Updater,
	cache adapter.SnapshotCache,
	clock adapter.Clock,
) *UpdateProfileUseCase {
	return &UpdateProfileUseCase{
		uow:     uow,
		updater: updater,
		cache:   cache,
		clock:   clock,
	}
}

// Execute performs the profile update. Changing the base currency renders
// every converted snapshot figure stale, so it triggers a full rebalance;
// changing only the spend-account set recomputes safe-to-spend.
func (uc *UpdateProfileUseCase) Execute(ctx context.Context, input UpdateProfileInput) (*UpdateProfileOutput, error) {
	rebalanced := false
	output := &UpdateProfileOutput{}
	err := uc.uow.Execute(ctx, func(ctx context.Context, repos *adapter.Repositories) error {
		profile, err := lockProfile(ctx, repos, input.ProfileID)
		if err != nil {
			return err
		}

		currencyChanged := false
		if input.BaseCurrency != nil && *input.BaseCurrency != profile.BaseCurrency {
			if err := checkCurrency(ctx, repos, *input.BaseCurrency); err != nil {
				return err
			}
			profile.BaseCurrency = *input.BaseCurrency
			currencyChanged = true
		}

		spendChanged := false
		if input.SpendAccountIDs != nil {
			for _, id := range input.SpendAccountIDs {
				if _, err := repos.Accounts.FindByID(ctx, id); err != nil {
					return fmt.Errorf("failed to verify spend account %s: %w", id, err)
				}
			}
			profile.SpendAccountIDs = input.SpendAccountIDs
			spendChanged = true
		}

		profile.UpdatedAt = uc.clock.Now()
		if err := repos.Profiles.Update(ctx, profile); err != nil {
			return fmt.Errorf("failed to update profile: %w", err)
		}
		output.Profile = newProfileOutput(profile)

		switch {
		case currencyChanged:
			rebalanced = true
			opts := ledger.DefaultRebalance()
			opts.AccountTypes = entity.AccountTypes
			return uc.updater.Rebalance(ctx, repos, profile, opts)
		case spendChanged:
			rebalanced = true
			return uc.updater.Rebalance(ctx, repos, profile, ledger.RebalanceOptions{SafeToSpend: true})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if rebalanced {
		invalidateSnapshot(ctx, uc.cache, input.ProfileID)
	}
	return output, nil
}
