package transaction

import (
	"context"

	"github.com/google/uuid"

	"github.com/ledgerkeep/backend/internal/application/adapter"
)

// GetTransactionInput represents the input for retrieving a transaction.
type GetTransactionInput struct {
	ProfileID uuid.UUID
	TxID      string
}

// GetTransactionOutput represents the output of retrieving a transaction.
type GetTransactionOutput struct {
	Transaction *TransactionOutput
}

// GetTransactionUseCase handles transaction retrieval logic.
type GetTransactionUseCase struct {
	uow adapter.UnitOfWork
}

// NewGetTransactionUseCase creates a new GetTransactionUseCase instance.
func NewGetTransactionUseCase(uow adapter.UnitOfWork) *GetTransactionUseCase {
	return &GetTransactionUseCase{uow: uow}
}

// Execute performs the transaction retrieval.
func (uc *GetTransactionUseCase) Execute(ctx context.Context, input GetTransactionInput) (*GetTransactionOutput, error) {
	output := &GetTransactionOutput{}
	err := uc.uow.Execute(ctx, func(ctx context.Context, repos *adapter.Repositories) error {
		tx, err := findTransaction(ctx, repos, input.ProfileID, input.TxID)
		if err != nil {
			return err
		}
		output.Transaction = newTransactionOutput(tx)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return output, nil
}
