package account

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/ledgerkeep/backend/internal/application/adapter"
	"github.com/ledgerkeep/backend/internal/domain/entity"
	domainerror "github.com/ledgerkeep/backend/internal/domain/error"
)

// CreateAccountInput represents the input for account creation.
type CreateAccountInput struct {
	ProfileID uuid.UUID
	Name      string
	Type      entity.AccountType
}

// CreateAccountOutput represents the output of account creation.
type CreateAccountOutput struct {
	Account *AccountOutput
}

// CreateAccountUseCase handles account creation logic.
type CreateAccountUseCase struct {
	uow   adapter.UnitOfWork
	clock adapter.Clock
}

// NewCreateAccountUseCase creates a new CreateAccountUseCase instance.
func NewCreateAccountUseCase(uow adapter.UnitOfWork, clock adapter.Clock) *CreateAccountUseCase {
	return &CreateAccountUseCase{uow: uow, clock: clock}
}

// Execute performs the account creation. Every account starts with exactly
// one zero balance denominated in the profile's base currency, so no
// rebalance is needed here.
func (uc *CreateAccountUseCase) Execute(ctx context.Context, input CreateAccountInput) (*CreateAccountOutput, error) {
	if !input.Type.Valid() {
		return nil, domainerror.NewAccountError(
			domainerror.ErrCodeInvalidAccountType,
			"account type must be SAVINGS, CHECKING, CASH, INVESTMENT or EWALLET",
			domainerror.ErrInvalidAccountType,
		)
	}

	output := &CreateAccountOutput{}
	err := uc.uow.Execute(ctx, func(ctx context.Context, repos *adapter.Repositories) error {
		profile, err := lockProfile(ctx, repos, input.ProfileID)
		if err != nil {
			return err
		}

		if err := checkNameAvailable(ctx, repos, input.ProfileID, input.Name); err != nil {
			return err
		}

		now := uc.clock.Now()
		account := entity.NewAccount(input.ProfileID, input.Name, input.Type, now)
		if err := repos.Accounts.Create(ctx, account); err != nil {
			return fmt.Errorf("failed to create account: %w", err)
		}

		balance := entity.NewBalance(account, profile.BaseCurrency, now)
		if err := repos.Balances.Create(ctx, balance); err != nil {
			return fmt.Errorf("failed to create balance: %w", err)
		}

		output.Account = newAccountOutput(account, balance)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return output, nil
}
