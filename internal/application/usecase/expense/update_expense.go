package expense

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ledgerkeep/backend/internal/application/adapter"
	"github.com/ledgerkeep/backend/internal/application/usecase/ledger"
	"github.com/ledgerkeep/backend/internal/domain/entity"
	domainerror "github.com/ledgerkeep/backend/internal/domain/error"
)

// UpdateExpenseInput represents the input for planned-expense update. Nil
// pointer fields are left unchanged; the Clear flags drop optional dates.
type UpdateExpenseInput struct {
	ProfileID     uuid.UUID
	ExpenseID     int64
	Name          *string
	EstimatedCost *decimal.Decimal
	Currency      *string
	DueDate       *time.Time
	StartDate     *time.Time
	EndDate       *time.Time
	ClearDueDate  bool
	ClearEndDate  bool
	PaidFlag      *bool
	IsRecurring   *bool
	Status        *entity.ExpenseStatus
}

// UpdateExpenseOutput represents the output of planned-expense update.
type UpdateExpenseOutput struct {
	Expense *ExpenseOutput
}

// UpdateExpenseUseCase handles planned-expense update logic.
type UpdateExpenseUseCase struct {
	uow     adapter.UnitOfWork
	updater *ledger.Updater
	cache   adapter.SnapshotCache
	clock   adapter.Clock
}

// NewUpdateExpenseUseCase creates a new UpdateExpenseUseCase instance.
func NewUpdateExpenseUseCase(
	uow adapter.UnitOfWork,
	updater *ledger.Updater,
	cache adapter.SnapshotCache,
	clock adapter.Clock,
) *UpdateExpenseUseCase {
	return &UpdateExpenseUseCase{
		uow:     uow,
		updater: updater,
		cache:   cache,
		clock:   clock,
	}
}

// Execute performs the planned-expense update.
func (uc *UpdateExpenseUseCase) Execute(ctx context.Context, input UpdateExpenseInput) (*UpdateExpenseOutput, error) {
	var updated *entity.PlannedExpense
	err := uc.uow.Execute(ctx, func(ctx context.Context, repos *adapter.Repositories) error {
		profile, err := lockProfile(ctx, repos, input.ProfileID)
		if err != nil {
			return err
		}

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

		if err := uc.applyChanges(ctx, repos, expense, input); err != nil {
			return err
		}

		expense.ApplyRecurrenceExpiry(uc.clock.Today())
		expense.UpdatedAt = uc.clock.Now()
		if err := repos.Expenses.Update(ctx, expense); err != nil {
			return fmt.Errorf("failed to update planned expense: %w", err)
		}

		updated = expense
		return uc.updater.Rebalance(ctx, repos, profile, ledger.ExpenseRebalance())
	})
	if err != nil {
		return nil, err
	}

	invalidateSnapshot(ctx, uc.cache, input.ProfileID)
	return &UpdateExpenseOutput{Expense: newExpenseOutput(updated)}, nil
}

func (uc *UpdateExpenseUseCase) applyChanges(ctx context.Context, repos *adapter.Repositories, expense *entity.PlannedExpense, input UpdateExpenseInput) error {
	if input.Name != nil && strings.ToLower(*input.Name) != expense.Name {
		if _, err := repos.Expenses.FindByName(ctx, input.ProfileID, *input.Name); err == nil {
			return domainerror.NewExpenseError(
				domainerror.ErrCodeExpenseNameTaken,
				"a planned expense with this name already exists",
				domainerror.ErrExpenseNameTaken,
			)
		} else if !errors.Is(err, domainerror.ErrExpenseNotFound) {
			return fmt.Errorf("failed to check expense name: %w", err)
		}
		expense.Name = strings.ToLower(*input.Name)
	}

	if input.EstimatedCost != nil {
		if input.EstimatedCost.IsNegative() {
			return domainerror.NewExpenseError(
				domainerror.ErrCodeInvalidExpenseCost,
				"estimated cost must not be negative",
				domainerror.ErrInvalidExpenseCost,
			)
		}
		expense.EstimatedCost = *input.EstimatedCost
	}

	if input.Currency != nil {
		if err := checkCurrency(ctx, repos, *input.Currency); err != nil {
			return err
		}
		expense.Currency = *input.Currency
	}

	if input.ClearDueDate {
		expense.DueDate = nil
	} else if input.DueDate != nil {
		expense.DueDate = input.DueDate
	}

	if input.StartDate != nil {
		expense.StartDate = input.StartDate
	}

	if input.ClearEndDate {
		expense.EndDate = nil
	} else if input.EndDate != nil {
		expense.EndDate = input.EndDate
	}

	if input.PaidFlag != nil {
		expense.PaidFlag = *input.PaidFlag
	}

	if input.IsRecurring != nil {
		expense.IsRecurring = *input.IsRecurring
	}

	if input.Status != nil {
		if !input.Status.Valid() {
			return domainerror.NewExpenseError(
				domainerror.ErrCodeInvalidExpenseStatus,
				"status must be PENDING, ACTIVE, COMPLETED or CANCELLED",
				domainerror.ErrInvalidExpenseStatus,
			)
		}
		expense.Status = *input.Status
	}

	return nil
}
