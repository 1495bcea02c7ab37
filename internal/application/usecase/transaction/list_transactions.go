package transaction

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ledgerkeep/backend/internal/application/adapter"
	"github.com/ledgerkeep/backend/internal/domain/calc"
	"github.com/ledgerkeep/backend/internal/domain/entity"
)

// TransactionOutput represents transaction data returned by use cases.
type TransactionOutput struct {
	TxID        string
	AccountID   uuid.UUID
	Date        time.Time
	Description string
	Amount      decimal.Decimal
	Currency    string
	Type        entity.TransactionType
	Tags        []string
	BillID      *int64
	CreatedAt   time.Time
}

func newTransactionOutput(tx *entity.Transaction) *TransactionOutput {
	return &TransactionOutput{
		TxID:        tx.TxID,
		AccountID:   tx.AccountID,
		Date:        tx.Date,
		Description: tx.Description,
		Amount:      tx.Amount,
		Currency:    tx.Currency,
		Type:        tx.Type,
		Tags:        tx.Tags,
		BillID:      tx.BillID,
		CreatedAt:   tx.CreatedAt,
	}
}

// ListTransactionsInput represents the input for listing transactions.
type ListTransactionsInput struct {
	ProfileID uuid.UUID
	Filter    adapter.TransactionFilter
}

// ListTransactionsOutput represents the output of listing transactions. The
// per-type totals are converted into the profile's base currency over the
// filtered set.
type ListTransactionsOutput struct {
	Transactions []*TransactionOutput
	TotalsByType map[entity.TransactionType]decimal.Decimal
	BaseCurrency string
}

// ListTransactionsUseCase handles transaction listing logic.
type ListTransactionsUseCase struct {
	uow       adapter.UnitOfWork
	converter adapter.CurrencyConverter
}

// NewListTransactionsUseCase creates a new ListTransactionsUseCase instance.
func NewListTransactionsUseCase(uow adapter.UnitOfWork, converter adapter.CurrencyConverter) *ListTransactionsUseCase {
	return &ListTransactionsUseCase{uow: uow, converter: converter}
}

// Execute performs the transaction listing.
func (uc *ListTransactionsUseCase) Execute(ctx context.Context, input ListTransactionsInput) (*ListTransactionsOutput, error) {
	output := &ListTransactionsOutput{}
	err := uc.uow.Execute(ctx, func(ctx context.Context, repos *adapter.Repositories) error {
		profile, err := findProfile(ctx, repos, input.ProfileID)
		if err != nil {
			return err
		}

		txs, err := repos.Transactions.FindByFilter(ctx, input.ProfileID, input.Filter)
		if err != nil {
			return fmt.Errorf("failed to list transactions: %w", err)
		}

		fc := calc.NewCalculator(uc.converter, profile.BaseCurrency)
		totals := make(map[entity.TransactionType]decimal.Decimal)
		for _, t := range []entity.TransactionType{
			entity.TransactionTypeExpense,
			entity.TransactionTypeIncome,
			entity.TransactionTypeTransferIn,
			entity.TransactionTypeTransferOut,
		} {
			total, err := fc.TotalByTransactionType(txs, t)
			if err != nil {
				return err
			}
			totals[t] = total
		}

		output.Transactions = make([]*TransactionOutput, 0, len(txs))
		for _, tx := range txs {
			output.Transactions = append(output.Transactions, newTransactionOutput(tx))
		}
		output.TotalsByType = totals
		output.BaseCurrency = profile.BaseCurrency
		return nil
	})
	if err != nil {
		return nil, err
	}
	return output, nil
}
