package expense

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/ledgerkeep/backend/internal/application/adapter"
	domainerror "github.com/ledgerkeep/backend/internal/domain/error"
)

// GetExpenseInput represents the input for retrieving a planned expense.
type GetExpenseInput struct {
	ProfileID uuid.UUID
	ExpenseID int64
}

// GetExpenseOutput represents the output of retrieving a planned expense.
type GetExpenseOutput struct {
	Expense *ExpenseOutput
}

// GetExpenseUseCase handles planned-expense retrieval logic.
type GetExpenseUseCase struct {
	uow adapter.UnitOfWork
}

// NewGetExpenseUseCase creates a new GetExpenseUseCase instance.
func NewGetExpenseUseCase(uow adapter.UnitOfWork) *GetExpenseUseCase {
	return &GetExpenseUseCase{uow: uow}
}

// Execute performs the planned-expense retrieval.
func (uc *GetExpenseUseCase) Execute(ctx context.Context, input GetExpenseInput) (*GetExpenseOutput, error) {
	output := &GetExpenseOutput{}
	err := uc.uow.Execute(ctx, func(ctx context.Context, repos *adapter.Repositories) error {
		expense, err := repos.Expenses.FindByID(ctx, input.ProfileID, input.ExpenseID)
		if err != nil {
			if errors.Is(err, domainerror.ErrExpenseNotFound) {
				return domainerror.NewExpenseError(
					domainerror.ErrCodeExpenseNotFound,
					"planned expense not found",
					domainerror.ErrExpenseNotFound,
				)
			}
			return fmt.Errorf("failed to find planned expense: %w", err)
		}
		output.Expense = newExpenseOutput(expense)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return output, nil
}
