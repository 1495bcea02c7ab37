package transaction

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/ledgerkeep/backend/internal/application/adapter"
	"github.com/ledgerkeep/backend/internal/application/usecase/expense"
	"github.com/ledgerkeep/backend/internal/application/usecase/ledger"
)

// DeleteTransactionInput represents the input for transaction deletion.
type DeleteTransactionInput struct {
	ProfileID uuid.UUID
	TxID      string
}

// DeleteTransactionUseCase handles transaction deletion logic.
type DeleteTransactionUseCase struct {
	uow       adapter.UnitOfWork
	updater   *ledger.Updater
	lifecycle *expense.Lifecycle
	cache     adapter.SnapshotCache
}

// NewDeleteTransactionUseCase creates a new DeleteTransactionUseCase instance.
func NewDeleteTransactionUseCase(
	uow adapter.UnitOfWork,
	updater *ledger.Updater,
	lifecycle *expense.Lifecycle,
	cache adapter.SnapshotCache,
) *DeleteTransactionUseCase {
	return &DeleteTransactionUseCase{
		uow:       uow,
		updater:   updater,
		lifecycle: lifecycle,
		cache:     cache,
	}
}

// Execute performs the transaction deletion. The row is removed before the
// reversal so the rebalance inside ReverseTransaction aggregates over a
// history that no longer contains it.
func (uc *DeleteTransactionUseCase) Execute(ctx context.Context, input DeleteTransactionInput) error {
	err := uc.uow.Execute(ctx, func(ctx context.Context, repos *adapter.Repositories) error {
		profile, err := lockProfile(ctx, repos, input.ProfileID)
		if err != nil {
			return err
		}

		tx, err := findTransaction(ctx, repos, input.ProfileID, input.TxID)
		if err != nil {
			return err
		}

		if tx.BillID != nil {
			if err := uc.lifecycle.HandleBillUnpaid(ctx, repos, input.ProfileID, *tx.BillID, tx.Date); err != nil {
				return err
			}
		}

		if err := repos.Transactions.Delete(ctx, tx); err != nil {
			return fmt.Errorf("failed to delete transaction: %w", err)
		}

		return uc.updater.ReverseTransaction(ctx, repos, profile, tx)
	})
	if err != nil {
		return err
	}

	invalidateSnapshot(ctx, uc.cache, input.ProfileID)
	return nil
}
