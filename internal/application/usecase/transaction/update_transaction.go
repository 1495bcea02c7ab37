package transaction

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ledgerkeep/backend/internal/application/adapter"
	"github.com/ledgerkeep/backend/internal/application/usecase/expense"
	"github.com/ledgerkeep/backend/internal/application/usecase/ledger"
	"github.com/ledgerkeep/backend/internal/domain/entity"
	domainerror "github.com/ledgerkeep/backend/internal/domain/error"
)

// UpdateTransactionInput represents the input for transaction update. Nil
// pointer fields are left unchanged; nil Tags leaves the tag set unchanged.
type UpdateTransactionInput struct {
	ProfileID   uuid.UUID
	TxID        string
	AccountID   *uuid.UUID
	Date        *time.Time
	Description *string
	Amount      *decimal.Decimal
	Currency    *string
	Type        *entity.TransactionType
	Tags        []string
	BillID      *int64
	ClearBill   bool
}

// UpdateTransactionOutput represents the output of transaction update.
type UpdateTransactionOutput struct {
	Transaction *TransactionOutput
}

// UpdateTransactionUseCase handles transaction update logic.
type UpdateTransactionUseCase struct {
	uow       adapter.UnitOfWork
	updater   *ledger.Updater
	lifecycle *expense.Lifecycle
	cache     adapter.SnapshotCache
}

// NewUpdateTransactionUseCase creates a new UpdateTransactionUseCase instance.
func NewUpdateTransactionUseCase(
	uow adapter.UnitOfWork,
	updater *ledger.Updater,
	lifecycle *expense.Lifecycle,
	cache adapter.SnapshotCache,
) *UpdateTransactionUseCase {
	return &UpdateTransactionUseCase{
		uow:       uow,
		updater:   updater,
		lifecycle: lifecycle,
		cache:     cache,
	}
}

// Execute performs the transaction update as reverse, apply, re-post. The
// old effect is negated out of the balance before the new state is applied,
// so the edit nets out correctly no matter which field changed. The cost is
// two rebalance passes per edit.
func (uc *UpdateTransactionUseCase) Execute(ctx context.Context, input UpdateTransactionInput) (*UpdateTransactionOutput, error) {
	var updated *entity.Transaction
	err := uc.uow.Execute(ctx, func(ctx context.Context, repos *adapter.Repositories) error {
		profile, err := lockProfile(ctx, repos, input.ProfileID)
		if err != nil {
			return err
		}

		tx, err := findTransaction(ctx, repos, input.ProfileID, input.TxID)
		if err != nil {
			return err
		}

		oldBillID := tx.BillID
		oldDate := tx.Date

		if err := uc.updater.ReverseTransaction(ctx, repos, profile, tx); err != nil {
			return err
		}

		// An edit steps the linked bill back before the new state decides
		// whether to pay it again.
		if oldBillID != nil {
			if err := uc.lifecycle.HandleBillUnpaid(ctx, repos, input.ProfileID, *oldBillID, oldDate); err != nil {
				return err
			}
		}

		if err := uc.applyChanges(ctx, repos, tx, input); err != nil {
			return err
		}

		tx.NormalizeAmount()
		if err := repos.Transactions.Update(ctx, tx); err != nil {
			return fmt.Errorf("failed to update transaction: %w", err)
		}

		if tx.BillID != nil {
			if err := uc.lifecycle.HandleBillPaid(ctx, repos, input.ProfileID, *tx.BillID, tx.Date); err != nil {
				return err
			}
		}

		updated = tx
		return uc.updater.PostTransaction(ctx, repos, profile, tx)
	})
	if err != nil {
		return nil, err
	}

	invalidateSnapshot(ctx, uc.cache, input.ProfileID)
	return &UpdateTransactionOutput{Transaction: newTransactionOutput(updated)}, nil
}

func (uc *UpdateTransactionUseCase) applyChanges(ctx context.Context, repos *adapter.Repositories, tx *entity.Transaction, input UpdateTransactionInput) error {
	if input.AccountID != nil {
		if _, err := findAccount(ctx, repos, *input.AccountID); err != nil {
			return err
		}
		tx.AccountID = *input.AccountID
	}

	if input.Date != nil {
		tx.Date = *input.Date
	}

	if input.Description != nil {
		if len(*input.Description) > MaxDescriptionLength {
			return domainerror.NewTransactionError(
				domainerror.ErrCodeDescriptionTooLong,
				fmt.Sprintf("description must not exceed %d characters", MaxDescriptionLength),
				domainerror.ErrDescriptionTooLong,
			)
		}
		tx.Description = *input.Description
	}

	if input.Amount != nil {
		if input.Amount.IsZero() {
			return domainerror.NewTransactionError(
				domainerror.ErrCodeInvalidTransactionAmount,
				"amount must not be zero",
				domainerror.ErrInvalidTransactionAmount,
			)
		}
		tx.Amount = *input.Amount
	}

	if input.Currency != nil {
		if err := checkCurrency(ctx, repos, *input.Currency); err != nil {
			return err
		}
		tx.Currency = *input.Currency
	}

	if input.Type != nil {
		if !input.Type.Valid() {
			return domainerror.NewTransactionError(
				domainerror.ErrCodeInvalidTransactionType,
				"transaction type must be EXPENSE, INCOME, XFER_IN or XFER_OUT",
				domainerror.ErrInvalidTransactionType,
			)
		}
		tx.Type = *input.Type
	}

	if input.Tags != nil {
		tx.Tags = input.Tags
	}

	if input.ClearBill {
		tx.BillID = nil
	} else if input.BillID != nil {
		tx.BillID = input.BillID
	}

	return nil
}
