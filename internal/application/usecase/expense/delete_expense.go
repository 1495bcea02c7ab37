package expense

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/ledgerkeep/backend/internal/application/adapter"
	"github.com/ledgerkeep/backend/internal/application/usecase/ledger"
	domainerror "github.com/ledgerkeep/backend/internal/domain/error"
)

// DeleteExpenseInput represents the input for planned-expense deletion.
type DeleteExpenseInput struct {
	ProfileID uuid.UUID
	ExpenseID int64
}

// DeleteExpenseUseCase handles planned-expense deletion logic.
type DeleteExpenseUseCase struct {
	uow     adapter.UnitOfWork
	updater *ledger.Updater
	cache   adapter.SnapshotCache
}

// NewDeleteExpenseUseCase creates a new DeleteExpenseUseCase instance.
func NewDeleteExpenseUseCase(
	uow adapter.UnitOfWork,
	updater *ledger.Updater,
	cache adapter.SnapshotCache,
) *DeleteExpenseUseCase {
	return &DeleteExpenseUseCase{
		uow:     uow,
		updater: updater,
		cache:   cache,
	}
}

// Execute performs the planned-expense deletion. Transactions linked to the
// expense are detached, never deleted.
func (uc *DeleteExpenseUseCase) Execute(ctx context.Context, input DeleteExpenseInput) error {
	err := uc.uow.Execute(ctx, func(ctx context.Context, repos *adapter.Repositories) error {
		profile, err := lockProfile(ctx, repos, input.ProfileID)
		if err != nil {
			return err
		}

		if _, err := repos.Expenses.FindByID(ctx, input.ProfileID, input.ExpenseID); err != nil {
			if errors.Is(err, domainerror.ErrExpenseNotFound) {
				return domainerror.NewExpenseError(
					domainerror.ErrCodeExpenseNotFound,
					"planned expense not found",
					domainerror.ErrExpenseNotFound,
				)
			}
			return fmt.Errorf("failed to find planned expense: %w", err)
		}

		if err := repos.Transactions.ClearBill(ctx, input.ProfileID, input.ExpenseID); err != nil {
			return fmt.Errorf("failed to detach linked transactions: %w", err)
		}

		if err := repos.Expenses.Delete(ctx, input.ProfileID, input.ExpenseID); err != nil {
			return fmt.Errorf("failed to delete planned expense: %w", err)
		}

		return uc.updater.Rebalance(ctx, repos, profile, ledger.ExpenseRebalance())
	})
	if err != nil {
		return err
	}

	invalidateSnapshot(ctx, uc.cache, input.ProfileID)
	return nil
}
