package account

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ledgerkeep/backend/internal/application/adapter"
	"github.com/ledgerkeep/backend/internal/application/usecase/ledger"
	"github.com/ledgerkeep/backend/internal/domain/entity"
)

// UpdateBalanceInput represents the input for a direct balance update. Nil
// pointer fields are left unchanged.
type UpdateBalanceInput struct {
	ProfileID uuid.UUID
	AccountID uuid.UUID
	Amount    *decimal.Decimal
	Currency  *string
}

// UpdateBalanceOutput represents the output of a direct balance update.
type UpdateBalanceOutput struct {
	Account *AccountOutput
}

// UpdateBalanceUseCase handles direct balance corrections, e.g. aligning an
// account with a bank statement. The new amount is authoritative; no
// transaction is recorded.
type UpdateBalanceUseCase struct {
	uow     adapter.UnitOfWork
	updater *ledger.Updater
	cache   adapter.SnapshotCache
	clock   adapter.Clock
}

// NewUpdateBalanceUseCase creates a new UpdateBalanceUseCase instance.
func NewUpdateBalanceUseCase(
	uow adapter.UnitOfWork,
	updater *ledger.Updater,
	cache adapter.SnapshotCache,
	clock adapter.Clock,
) *UpdateBalanceUseCase {
	return &UpdateBalanceUseCase{
		uow:     uow,
		updater: updater,
		cache:   cache,
		clock:   clock,
	}
}

// Execute performs the balance update and recomputes the snapshot fields the
// changed balance feeds: its account-type total, total assets and
// safe-to-spend.
func (uc *UpdateBalanceUseCase) Execute(ctx context.Context, input UpdateBalanceInput) (*UpdateBalanceOutput, error) {
	output := &UpdateBalanceOutput{}
	err := uc.uow.Execute(ctx, func(ctx context.Context, repos *adapter.Repositories) error {
		profile, err := lockProfile(ctx, repos, input.ProfileID)
		if err != nil {
			return err
		}

		account, err := findAccount(ctx, repos, input.AccountID)
		if err != nil {
			return err
		}

		balance, err := repos.Balances.FindByAccount(ctx, account.ID)
		if err != nil {
			return fmt.Errorf("failed to find balance: %w", err)
		}

		if input.Amount != nil {
			balance.Amount = input.Amount.Round(2)
		}
		if input.Currency != nil {
			if err := checkCurrency(ctx, repos, *input.Currency); err != nil {
				return err
			}
			balance.Currency = *input.Currency
		}

		balance.UpdatedAt = uc.clock.Now()
		if err := repos.Balances.Update(ctx, balance); err != nil {
			return fmt.Errorf("failed to update balance: %w", err)
		}

		output.Account = newAccountOutput(account, balance)
		return uc.updater.Rebalance(ctx, repos, profile, ledger.RebalanceOptions{
			AccountTypes: []entity.AccountType{account.Type},
			TotalAssets:  true,
			SafeToSpend:  true,
		})
	})
	if err != nil {
		return nil, err
	}

	invalidateSnapshot(ctx, uc.cache, input.ProfileID)
	return output, nil
}
