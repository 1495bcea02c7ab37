package account

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/ledgerkeep/backend/internal/application/adapter"
	"github.com/ledgerkeep/backend/internal/application/usecase/ledger"
	"github.com/ledgerkeep/backend/internal/domain/entity"
	domainerror "github.com/ledgerkeep/backend/internal/domain/error"
)

// UpdateAccountInput represents the input for account update. Nil pointer
// fields are left unchanged.
type UpdateAccountInput struct {
	ProfileID uuid.UUID
	AccountID uuid.UUID
	Name      *string
	Type      *entity.AccountType
}

// UpdateAccountOutput represents the output of account update.
type UpdateAccountOutput struct {
	Account *AccountOutput
}

// UpdateAccountUseCase handles account update logic.
type UpdateAccountUseCase struct {
	uow     adapter.UnitOfWork
	updater *ledger.Updater
	cache   adapter.SnapshotCache
	clock   adapter.Clock
}

// NewUpdateAccountUseCase creates a new UpdateAccountUseCase instance.
func NewUpdateAccountUseCase(
	uow adapter.UnitOfWork,
	updater *ledger.Updater,
	cache adapter.SnapshotCache,
	clock adapter.Clock,
) *UpdateAccountUseCase {
	return &UpdateAccountUseCase{
		uow:     uow,
		updater: updater,
		cache:   cache,
		clock:   clock,
	}
}

// Execute performs the account update. Changing the type moves the account's
// balance between two per-type snapshot totals, so both get recomputed.
func (uc *UpdateAccountUseCase) Execute(ctx context.Context, input UpdateAccountInput) (*UpdateAccountOutput, error) {
	rebalanced := false
	output := &UpdateAccountOutput{}
	err := uc.uow.Execute(ctx, func(ctx context.Context, repos *adapter.Repositories) error {
		profile, err := lockProfile(ctx, repos, input.ProfileID)
		if err != nil {
			return err
		}

		account, err := findAccount(ctx, repos, input.AccountID)
		if err != nil {
			return err
		}
		if account.IsUnknown() {
			return domainerror.NewAccountError(
				domainerror.ErrCodeReservedAccount,
				"the reserved fallback account cannot be modified",
				domainerror.ErrReservedAccount,
			)
		}

		if input.Name != nil && strings.ToLower(*input.Name) != account.Name {
			if err := checkNameAvailable(ctx, repos, input.ProfileID, strings.ToLower(*input.Name)); err != nil {
				return err
			}
			account.Name = strings.ToLower(*input.Name)
		}

		oldType := account.Type
		if input.Type != nil && *input.Type != oldType {
			if !input.Type.Valid() {
				return domainerror.NewAccountError(
					domainerror.ErrCodeInvalidAccountType,
					"account type must be SAVINGS, CHECKING, CASH, INVESTMENT or EWALLET",
					domainerror.ErrInvalidAccountType,
				)
			}
			account.Type = *input.Type
		}

		account.UpdatedAt = uc.clock.Now()
		if err := repos.Accounts.Update(ctx, account); err != nil {
			return fmt.Errorf("failed to update account: %w", err)
		}

		balance, err := repos.Balances.FindByAccount(ctx, account.ID)
		if err != nil {
			return fmt.Errorf("failed to find balance: %w", err)
		}
		output.Account = newAccountOutput(account, balance)

		if account.Type != oldType {
			rebalanced = true
			return uc.updater.AccountReassigned(ctx, repos, profile, oldType, account.Type)
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
