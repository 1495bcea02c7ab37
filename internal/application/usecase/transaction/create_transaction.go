// Package transaction contains transaction-related use cases.
package transaction

import (
	"context"
	"errors"
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

// MaxDescriptionLength is the maximum allowed length for transaction
// descriptions.
const MaxDescriptionLength = 255

// txIDAttempts bounds the retry loop on public id collisions.
const txIDAttempts = 5

// CreateTransactionInput represents the input for transaction creation.
type CreateTransactionInput struct {
	ProfileID   uuid.UUID
	AccountID   uuid.UUID
	Date        time.Time
	Description string
	Amount      decimal.Decimal
	Currency    string
	Type        entity.TransactionType
	Tags        []string
	BillID      *int64
}

// CreateTransactionOutput represents the output of transaction creation.
type CreateTransactionOutput struct {
	Transaction *TransactionOutput
}

// CreateTransactionUseCase handles transaction creation logic.
type CreateTransactionUseCase struct {
	uow       adapter.UnitOfWork
	updater   *ledger.Updater
	lifecycle *expense.Lifecycle
	cache     adapter.SnapshotCache
	clock     adapter.Clock
}

// NewCreateTransactionUseCase creates a new CreateTransactionUseCase instance.
func NewCreateTransactionUseCase(
	uow adapter.UnitOfWork,
	updater *ledger.Updater,
	lifecycle *expense.Lifecycle,
	cache adapter.SnapshotCache,
	clock adapter.Clock,
) *CreateTransactionUseCase {
	return &CreateTransactionUseCase{
		uow:       uow,
		updater:   updater,
		lifecycle: lifecycle,
		cache:     cache,
		clock:     clock,
	}
}

// Execute performs the transaction creation: the record is inserted, a
// linked bill is marked paid, the account balance absorbs the delta and the
// snapshot is rebalanced, all in one unit of work.
func (uc *CreateTransactionUseCase) Execute(ctx context.Context, input CreateTransactionInput) (*CreateTransactionOutput, error) {
	if err := validateTransactionFields(input.Type, input.Amount, input.Description); err != nil {
		return nil, err
	}

	var created *entity.Transaction
	err := uc.uow.Execute(ctx, func(ctx context.Context, repos *adapter.Repositories) error {
		profile, err := lockProfile(ctx, repos, input.ProfileID)
		if err != nil {
			return err
		}

		if err := checkCurrency(ctx, repos, input.Currency); err != nil {
			return err
		}

		if _, err := findAccount(ctx, repos, input.AccountID); err != nil {
			return err
		}

		tx := entity.NewTransaction(
			input.ProfileID,
			input.AccountID,
			input.Date,
			input.Description,
			input.Amount,
			input.Currency,
			input.Type,
			input.Tags,
			input.BillID,
			uc.clock.Now(),
		)

		if err := uc.ensureUniqueTxID(ctx, repos, tx); err != nil {
			return err
		}

		if err := repos.Transactions.Create(ctx, tx); err != nil {
			return fmt.Errorf("failed to create transaction: %w", err)
		}

		// The bill transition must precede the rebalance so the recomputed
		// remaining-expense and safe-to-spend figures see the paid flag.
		if tx.BillID != nil {
			if err := uc.lifecycle.HandleBillPaid(ctx, repos, input.ProfileID, *tx.BillID, tx.Date); err != nil {
				return err
			}
		}

		created = tx
		return uc.updater.PostTransaction(ctx, repos, profile, tx)
	})
	if err != nil {
		return nil, err
	}

	invalidateSnapshot(ctx, uc.cache, input.ProfileID)
	return &CreateTransactionOutput{Transaction: newTransactionOutput(created)}, nil
}

// ensureUniqueTxID regenerates the public id on the rare collision within a
// profile.
func (uc *CreateTransactionUseCase) ensureUniqueTxID(ctx context.Context, repos *adapter.Repositories, tx *entity.Transaction) error {
	for i := 0; i < txIDAttempts; i++ {
		taken, err := repos.Transactions.ExistsByTxID(ctx, tx.ProfileID, tx.TxID)
		if err != nil {
			return fmt.Errorf("failed to check transaction id: %w", err)
		}
		if !taken {
			return nil
		}
		tx.TxID = entity.NewTxID(uc.clock.Now())
	}
	return domainerror.NewTransactionError(
		domainerror.ErrCodeDuplicateTransactionID,
		"could not allocate a unique transaction id",
		domainerror.ErrDuplicateTransactionID,
	)
}

func validateTransactionFields(txType entity.TransactionType, amount decimal.Decimal, description string) error {
	if !txType.Valid() {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransactionType,
			"transaction type must be EXPENSE, INCOME, XFER_IN or XFER_OUT",
			domainerror.ErrInvalidTransactionType,
		)
	}
	if amount.IsZero() {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransactionAmount,
			"amount must not be zero",
			domainerror.ErrInvalidTransactionAmount,
		)
	}
	if len(description) > MaxDescriptionLength {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeDescriptionTooLong,
			fmt.Sprintf("description must not exceed %d characters", MaxDescriptionLength),
			domainerror.ErrDescriptionTooLong,
		)
	}
	return nil
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
