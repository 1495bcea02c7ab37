// Package profile contains ledger-owner use cases: profile creation, base
// currency and spend-account management, and the snapshot read path.
package profile

import (
	"context"
	"fmt"

	"github.com/ledgerkeep/backend/internal/application/adapter"
	"github.com/ledgerkeep/backend/internal/domain/entity"
)

// CreateProfileInput represents the input for profile creation.
type CreateProfileInput struct {
	BaseCurrency string
}

// CreateProfileOutput represents the output of profile creation, including
// the bearer token callers use to reference the profile from then on.
type CreateProfileOutput struct {
	Profile *ProfileOutput
	Token   string
}

// CreateProfileUseCase handles profile creation logic.
type CreateProfileUseCase struct {
	uow    adapter.UnitOfWork
	tokens adapter.TokenService
	clock  adapter.Clock
}

// NewCreateProfileUseCase creates a new CreateProfileUseCase instance.
func NewCreateProfileUseCase(
	uow adapter.UnitOfWork,
	tokens adapter.TokenService,
	clock adapter.Clock,
) *CreateProfileUseCase {
	return &CreateProfileUseCase{
		uow:    uow,
		tokens: tokens,
		clock:  clock,
	}
}

// Execute performs the profile creation: the profile row, its zeroed
// snapshot and the reserved UNKNOWN fallback account are created together.
func (uc *CreateProfileUseCase) Execute(ctx context.Context, input CreateProfileInput) (*CreateProfileOutput, error) {
	var created *entity.Profile
	err := uc.uow.Execute(ctx, func(ctx context.Context, repos *adapter.Repositories) error {
		if err := checkCurrency(ctx, repos, input.BaseCurrency); err != nil {
			return err
		}

		now := uc.clock.Now()
		profile := entity.NewProfile(input.BaseCurrency, now)
		if err := repos.Profiles.Create(ctx, profile); err != nil {
			return fmt.Errorf("failed to create profile: %w", err)
		}

		if err := repos.Snapshots.Create(ctx, entity.NewSnapshot(profile.ID, now)); err != nil {
			return fmt.Errorf("failed to create snapshot: %w", err)
		}

		if _, err := repos.Accounts.FindOrCreateUnknown(ctx, profile.ID); err != nil {
			return fmt.Errorf("failed to create fallback account: %w", err)
		}

		created = profile
		return nil
	})
	if err != nil {
		return nil, err
	}

	token, err := uc.tokens.GenerateToken(ctx, created.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate profile token: %w", err)
	}

	return &CreateProfileOutput{
		Profile: newProfileOutput(created),
		Token:   token,
	}, nil
}
