package expense

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ledgerkeep/backend/internal/application/adapter"
	"github.com/ledgerkeep/backend/internal/application/usecase/ledger"
	"github.com/ledgerkeep/backend/internal/domain/entity"
	domainerror "github.com/ledgerkeep/backend/internal/domain/error"
)

// CreateExpenseInput represents the input for planned-expense creation.
type CreateExpenseInput struct {
	ProfileID     uuid.UUID
	Name          string
	EstimatedCost decimal.Decimal
	Currency      string
	DueDate       *time.Time
	StartDate     *time.Time
	EndDate       *time.Time
	IsRecurring   bool
}

// CreateExpenseOutput represents the output of planned-expense creation.
type CreateExpenseOutput struct {
	Expense *ExpenseOutput
}

// CreateExpenseUseCase handles planned-expense creation logic.
type CreateExpenseUseCase struct {
	uow     adapter.UnitOfWork
	updater *ledger.Updater
	cache   adapter.SnapshotCache
	clock   adapter.Clock
}

// NewCreateExpenseUseCase creates a new CreateExpenseUseCase instance.
func NewCreateExpenseUseCase(
	uow adapter.UnitOfWork,
	updater *ledger.Updater,
	cache adapter.SnapshotCache,
	clock adapter.Clock,
) *CreateExpenseUseCase {
	return &CreateExpenseUseCase{
		uow:     uow,
		updater: updater,
		cache:   cache,
		clock:   clock,
	}
}

// Execute performs the planned-expense creation.
func (uc *CreateExpenseUseCase) Execute(ctx context.Context, input CreateExpenseInput) (*CreateExpenseOutput, error) {
	if input.EstimatedCost.IsNegative() {
		return nil, domainerror.NewExpenseError(
			domainerror.ErrCodeInvalidExpenseCost,
			"estimated cost must not be negative",
			domainerror.ErrInvalidExpenseCost,
		)
	}

	var created *entity.PlannedExpense
	err := uc.uow.Execute(ctx, func(ctx context.Context, repos *adapter.Repositories) error {
		profile, err := lockProfile(ctx, repos, input.ProfileID)
		if err != nil {
			return err
		}

		if err := checkCurrency(ctx, repos, input.Currency); err != nil {
			return err
		}

		// Expense names are unique per profile.
		if _, err := repos.Expenses.FindByName(ctx, input.ProfileID, input.Name); err == nil {
			return domainerror.NewExpenseError(
				domainerror.ErrCodeExpenseNameTaken,
				"a planned expense with this name already exists",
				domainerror.ErrExpenseNameTaken,
			)
		} else if !errors.Is(err, domainerror.ErrExpenseNotFound) {
			return fmt.Errorf("failed to check expense name: %w", err)
		}

		expense := entity.NewPlannedExpense(
			input.ProfileID,
			input.Name,
			input.EstimatedCost,
			input.Currency,
			input.DueDate,
			input.StartDate,
			input.EndDate,
			input.IsRecurring,
			uc.clock.Now(),
		)
		expense.ApplyRecurrenceExpiry(uc.clock.Today())

		if err := repos.Expenses.Create(ctx, expense); err != nil {
			return fmt.Errorf("failed to create planned expense: %w", err)
		}

		created = expense
		return uc.updater.Rebalance(ctx, repos, profile, ledger.ExpenseRebalance())
	})
	if err != nil {
		return nil, err
	}

	invalidateSnapshot(ctx, uc.cache, input.ProfileID)
	return &CreateExpenseOutput{Expense: newExpenseOutput(created)}, nil
}
