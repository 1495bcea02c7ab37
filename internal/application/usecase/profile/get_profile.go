package profile

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/ledgerkeep/backend/internal/application/adapter"
	"github.com/ledgerkeep/backend/internal/domain/entity"
)

// GetProfileInput represents the input for retrieving a profile.
type GetProfileInput struct {
	ProfileID uuid.UUID
}

// GetProfileOutput represents the output of retrieving a profile.
type GetProfileOutput struct {
	Profile *ProfileOutput
}

// GetProfileUseCase handles profile retrieval logic.
type GetProfileUseCase struct {
	uow adapter.UnitOfWork
}

// NewGetProfileUseCase creates a new GetProfileUseCase instance.
func NewGetProfileUseCase(uow adapter.UnitOfWork) *GetProfileUseCase {
	return &GetProfileUseCase{uow: uow}
}

// Execute performs the profile retrieval.
func (uc *GetProfileUseCase) Execute(ctx context.Context, input GetProfileInput) (*GetProfileOutput, error) {
	output := &GetProfileOutput{}
	err := uc.uow.Execute(ctx, func(ctx context.Context, repos *adapter.Repositories) error {
		profile, err := findProfile(ctx, repos, input.ProfileID)
		if err != nil {
			return err
		}
		output.Profile = newProfileOutput(profile)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return output, nil
}

// ListCurrenciesOutput represents the output of listing seeded currencies.
type ListCurrenciesOutput struct {
	Currencies []*entity.Currency
}

// ListCurrenciesUseCase handles currency reference-data listing.
type ListCurrenciesUseCase struct {
	uow adapter.UnitOfWork
}

// NewListCurrenciesUseCase creates a new ListCurrenciesUseCase instance.
func NewListCurrenciesUseCase(uow adapter.UnitOfWork) *ListCurrenciesUseCase {
	return &ListCurrenciesUseCase{uow: uow}
}

// Execute performs the currency listing.
func (uc *ListCurrenciesUseCase) Execute(ctx context.Context) (*ListCurrenciesOutput, error) {
	output := &ListCurrenciesOutput{}
	err := uc.uow.Execute(ctx, func(ctx context.Context, repos *adapter.Repositories) error {
		currencies, err := repos.Currencies.FindAll(ctx)
		if err != nil {
			return fmt.Errorf("failed to list currencies: %w", err)
		}
		output.Currencies = currencies
		return nil
	})
	if err != nil {
		return nil, err
	}
	return output, nil
}
